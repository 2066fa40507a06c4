package transaction

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/lbarreto/equifinance/internal/participant"
	"github.com/lbarreto/equifinance/internal/transaction"
)

type cardDetailsResponse struct {
	Installments int    `json:"installments"`
	StartDate    string `json:"start_date"`
}

type transactionResponse struct {
	ID        int64                `json:"id"`
	Amount    decimal.Decimal      `json:"amount"`
	Type      transaction.Type     `json:"type"`
	Category  string               `json:"category,omitempty"`
	Date      string               `json:"date"`
	Owner     participant.ID       `json:"owner"`
	Scope     transaction.Scope    `json:"scope"`
	Card      *cardDetailsResponse `json:"card,omitempty"`
	CreatedAt time.Time            `json:"created_at"`
}

func toResponse(tx *transaction.Transaction) transactionResponse {
	resp := transactionResponse{
		ID:        tx.ID,
		Amount:    tx.Amount,
		Type:      tx.Type,
		Category:  tx.Category,
		Date:      tx.Date.Format(time.DateOnly),
		Owner:     tx.OwnerID,
		Scope:     tx.Scope,
		CreatedAt: tx.CreatedAt,
	}

	if tx.Card != nil {
		resp.Card = &cardDetailsResponse{
			Installments: tx.Card.Installments,
			StartDate:    tx.Card.StartDate.Format(time.DateOnly),
		}
	}

	return resp
}

func toResponseList(txs []*transaction.Transaction) []transactionResponse {
	resp := make([]transactionResponse, len(txs))
	for i, tx := range txs {
		resp[i] = toResponse(tx)
	}

	return resp
}
