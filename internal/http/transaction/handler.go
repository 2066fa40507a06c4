package transaction

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/lbarreto/equifinance/internal/http/viewer"
	"github.com/lbarreto/equifinance/internal/participant"
	"github.com/lbarreto/equifinance/internal/transaction"
)

type Handler struct {
	svc *transaction.Service
}

func NewHandler(svc *transaction.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
}

type cardDetailsRequest struct {
	Installments int    `json:"installments"`
	StartDate    string `json:"start_date,omitempty"`
}

type createTransactionRequest struct {
	Amount   string              `json:"amount"`
	Type     transaction.Type    `json:"type"`
	Category string              `json:"category"`
	Date     string              `json:"date"`
	Owner    participant.ID      `json:"owner"`
	Scope    transaction.Scope   `json:"scope"`
	Card     *cardDetailsRequest `json:"card,omitempty"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		http.Error(w, "invalid amount", http.StatusBadRequest)
		return
	}

	date, err := time.Parse(time.DateOnly, req.Date)
	if err != nil {
		http.Error(w, "invalid date: want YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	params := transaction.CreateParams{
		Amount:   amount,
		Type:     req.Type,
		Category: req.Category,
		Date:     date,
		OwnerID:  req.Owner,
		Scope:    req.Scope,
	}

	if req.Card != nil {
		card := &transaction.CardDetails{Installments: req.Card.Installments, StartDate: date}

		if req.Card.StartDate != "" {
			start, err := time.Parse(time.DateOnly, req.Card.StartDate)
			if err != nil {
				http.Error(w, "invalid card start_date: want YYYY-MM-DD", http.StatusBadRequest)
				return
			}

			card.StartDate = start
		}

		params.Card = card
	}

	tx, err := h.svc.Create(r.Context(), params)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(tx)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	viewerID := viewer.ID(r)
	if viewerID == "" {
		http.Error(w, "missing "+viewer.Header+" header", http.StatusBadRequest)
		return
	}

	txs, err := h.svc.VisibleTo(r.Context(), viewerID)
	if err != nil {
		if errors.Is(err, participant.ErrUnknown) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	if month := r.URL.Query().Get("month"); month != "" {
		filtered := txs[:0:0]

		for _, tx := range txs {
			if tx.MonthKey() == month {
				filtered = append(filtered, tx)
			}
		}

		txs = filtered
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(txs)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
