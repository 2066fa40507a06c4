// Package equity computes how shared spending splits between the household
// members. Everything here is a pure function over a ledger snapshot:
// results are recomputed on every view rather than maintained incrementally.
package equity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/lbarreto/equifinance/internal/participant"
	"github.com/lbarreto/equifinance/internal/transaction"
)

// PeriodAll selects the whole ledger.
const PeriodAll = "all"

// Period restricts a computation to a single calendar month, or to the whole
// ledger. The zero Period means all time.
type Period struct {
	month string // "YYYY-MM", empty for all time
}

// All returns the all-time period.
func All() Period {
	return Period{}
}

// Month returns the period covering a single YYYY-MM month key.
func Month(key string) Period {
	return Period{month: key}
}

// ParsePeriod accepts "all" or a YYYY-MM month key.
func ParsePeriod(s string) (Period, error) {
	if s == "" || s == PeriodAll {
		return All(), nil
	}

	if _, err := time.Parse("2006-01", s); err != nil {
		return Period{}, fmt.Errorf("invalid period %q: want %q or YYYY-MM", s, PeriodAll)
	}

	return Month(s), nil
}

// Matches reports whether the date falls inside the period.
func (p Period) Matches(date time.Time) bool {
	return p.month == "" || date.Format("2006-01") == p.month
}

// IsAll reports whether the period covers the whole ledger.
func (p Period) IsAll() bool {
	return p.month == ""
}

func (p Period) String() string {
	if p.month == "" {
		return PeriodAll
	}

	return p.month
}

// Share is one participant's slice of the shared spending in a period.
type Share struct {
	Participant participant.Participant
	Total       decimal.Decimal
	Percent     decimal.Decimal
}

// Split is the equity breakdown of shared expenses for a period. Shares are
// ordered like the roster. Percentages carry full decimal precision;
// rounding happens only at display time.
type Split struct {
	Period      Period
	TotalShared decimal.Decimal
	Shares      []Share
}

var hundred = decimal.NewFromInt(100)

// SplitShared computes the equity split for the period. Only shared expenses
// participate: private transactions and all income are excluded. When there
// is no shared spending in the period, the split falls back to equal
// percentages (50/50 for the two-member household) so there is a neutral
// starting point instead of a division by zero.
func SplitShared(txs []*transaction.Transaction, participants participant.Set, period Period) Split {
	members := participants.Members()

	totals := make(map[participant.ID]decimal.Decimal, len(members))
	totalShared := decimal.Zero

	for _, tx := range txs {
		if tx.Type != transaction.TypeExpense || tx.Scope != transaction.ScopeShared {
			continue
		}

		if !period.Matches(tx.Date) {
			continue
		}

		totalShared = totalShared.Add(tx.Amount)
		totals[tx.OwnerID] = totals[tx.OwnerID].Add(tx.Amount)
	}

	equalPercent := hundred.Div(decimal.NewFromInt(int64(len(members))))

	shares := make([]Share, 0, len(members))

	for _, p := range members {
		share := Share{Participant: p, Total: totals[p.ID]}

		if totalShared.IsPositive() {
			share.Percent = share.Total.Div(totalShared).Mul(hundred)
		} else {
			share.Percent = equalPercent
		}

		shares = append(shares, share)
	}

	return Split{Period: period, TotalShared: totalShared, Shares: shares}
}

// IncomeSummary reports income figures for a period: the whole household's
// income (visible to both members regardless of scope) and the viewer's own.
type IncomeSummary struct {
	Household decimal.Decimal
	Personal  decimal.Decimal
}

// Income sums income transactions in the period. Household counts every
// income entry; Personal counts only the viewer's.
func Income(txs []*transaction.Transaction, period Period, viewerID participant.ID) IncomeSummary {
	sum := IncomeSummary{Household: decimal.Zero, Personal: decimal.Zero}

	for _, tx := range txs {
		if tx.Type != transaction.TypeIncome || !period.Matches(tx.Date) {
			continue
		}

		sum.Household = sum.Household.Add(tx.Amount)

		if tx.OwnerID == viewerID {
			sum.Personal = sum.Personal.Add(tx.Amount)
		}
	}

	return sum
}
