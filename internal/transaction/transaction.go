package transaction

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/lbarreto/equifinance/internal/participant"
)

// Type represents the type of transaction (income or expense).
type Type string

const (
	TypeIncome  Type = "income"
	TypeExpense Type = "expense"
)

// Valid reports whether t is a known transaction type.
func (t Type) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// Scope controls who a transaction belongs to. Shared transactions count
// toward the household equity split and are visible to every participant;
// private transactions are visible only to their owner and never enter the
// split.
type Scope string

const (
	ScopeShared  Scope = "SHARED"
	ScopePrivate Scope = "PRIVATE"
)

// Valid reports whether s is a known scope.
func (s Scope) Valid() bool {
	return s == ScopeShared || s == ScopePrivate
}

// Transaction is a single ledger entry. Once appended to the ledger it is
// immutable for the remainder of the session.
type Transaction struct {
	ID        int64 // assigned by the ledger store, strictly increasing
	Amount    decimal.Decimal
	Type      Type
	Category  string
	Date      time.Time // calendar date; time-of-day is ignored
	OwnerID   participant.ID
	Scope     Scope
	Card      *CardDetails // nil unless paid by credit card
	CreatedAt time.Time
}

// CardDetails records credit card metadata. Installments are recorded as
// entered but are not expanded into future-dated entries; the full amount
// lands on the transaction's date.
type CardDetails struct {
	Installments int
	StartDate    time.Time
}

// MonthKey returns the YYYY-MM bucket the transaction's date falls into.
func (t *Transaction) MonthKey() string {
	return t.Date.Format("2006-01")
}
