package transaction

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/lbarreto/equifinance/internal/participant"
)

var (
	ErrNegativeAmount = errors.New("amount must not be negative")
	ErrInvalidType    = errors.New("invalid transaction type")
	ErrInvalidScope   = errors.New("invalid transaction scope")
	ErrZeroDate       = errors.New("date is required")
)

//go:generate mockgen -source=service.go -destination=ledger_mock.go -package=transaction
type Ledger interface {
	Append(ctx context.Context, tx *Transaction) error
	All(ctx context.Context) ([]*Transaction, error)
}

// Service owns the session ledger: it validates and appends new transactions
// and answers visibility-filtered views of the ledger. All derived figures
// (equity splits, monthly series) are computed elsewhere from the snapshots
// it returns.
type Service struct {
	ledger       Ledger
	participants participant.Set
}

func NewService(ledger Ledger, participants participant.Set) *Service {
	return &Service{ledger: ledger, participants: participants}
}

type CreateParams struct {
	Amount   decimal.Decimal
	Type     Type
	Category string
	Date     time.Time
	OwnerID  participant.ID
	Scope    Scope
	Card     *CardDetails
}

func (p CreateParams) validate(participants participant.Set) error {
	if p.Amount.IsNegative() {
		return ErrNegativeAmount
	}

	if !p.Type.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidType, p.Type)
	}

	if !p.Scope.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidScope, p.Scope)
	}

	if p.Date.IsZero() {
		return ErrZeroDate
	}

	if !participants.Contains(p.OwnerID) {
		return fmt.Errorf("owner %w: %q", participant.ErrUnknown, p.OwnerID)
	}

	if p.Card != nil && p.Card.Installments < 1 {
		return fmt.Errorf("installments must be at least 1, got %d", p.Card.Installments)
	}

	return nil
}

// Create validates the params and appends a new transaction to the ledger.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Transaction, error) {
	if err := params.validate(s.participants); err != nil {
		return nil, err
	}

	tx := &Transaction{
		Amount:   params.Amount,
		Type:     params.Type,
		Category: strings.TrimSpace(params.Category),
		Date:     params.Date,
		OwnerID:  params.OwnerID,
		Scope:    params.Scope,
		Card:     params.Card,
	}
	if err := s.ledger.Append(ctx, tx); err != nil {
		return nil, fmt.Errorf("appending transaction: %w", err)
	}

	return tx, nil
}

// CreateBatch appends a batch of transactions (e.g. a CSV import) in order.
// Validation happens up front so a bad row rejects the whole batch before
// anything is appended.
func (s *Service) CreateBatch(ctx context.Context, params []CreateParams) ([]*Transaction, error) {
	for i, p := range params {
		if err := p.validate(s.participants); err != nil {
			return nil, fmt.Errorf("entry %d: %w", i+1, err)
		}
	}

	txs := make([]*Transaction, 0, len(params))

	for _, p := range params {
		tx, err := s.Create(ctx, p)
		if err != nil {
			return nil, err
		}

		txs = append(txs, tx)
	}

	return txs, nil
}

// All returns the full ledger snapshot, newest first.
func (s *Service) All(ctx context.Context) ([]*Transaction, error) {
	return s.ledger.All(ctx)
}

// VisibleTo returns the subsequence of the ledger the viewer may see:
// shared transactions plus the viewer's own private ones, in ledger order
// (newest first).
func (s *Service) VisibleTo(ctx context.Context, viewerID participant.ID) ([]*Transaction, error) {
	if !s.participants.Contains(viewerID) {
		return nil, fmt.Errorf("viewer %w: %q", participant.ErrUnknown, viewerID)
	}

	all, err := s.ledger.All(ctx)
	if err != nil {
		return nil, err
	}

	visible := make([]*Transaction, 0, len(all))

	for _, tx := range all {
		if tx.Scope == ScopeShared || tx.OwnerID == viewerID {
			visible = append(visible, tx)
		}
	}

	return visible, nil
}

// Participants returns the roster the service validates owners against.
func (s *Service) Participants() participant.Set {
	return s.participants
}
