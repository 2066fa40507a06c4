// Package dashboard serves the derived figures the UI renders: the equity
// split, the monthly comparison series, and income summaries. Every request
// recomputes from the current ledger snapshot; nothing is cached.
package dashboard

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/lbarreto/equifinance/internal/equity"
	"github.com/lbarreto/equifinance/internal/http/viewer"
	"github.com/lbarreto/equifinance/internal/monthly"
	"github.com/lbarreto/equifinance/internal/participant"
	"github.com/lbarreto/equifinance/internal/transaction"
)

type Handler struct {
	svc           *transaction.Service
	historyMonths int
	now           func() time.Time
}

func NewHandler(svc *transaction.Service, historyMonths int) *Handler {
	return &Handler{svc: svc, historyMonths: historyMonths, now: time.Now}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/equity", h.equity)
	r.Get("/monthly", h.monthly)
	r.Get("/income", h.income)
}

type shareResponse struct {
	Participant participant.ID  `json:"participant"`
	DisplayName string          `json:"display_name"`
	Total       decimal.Decimal `json:"total"`
	Percent     decimal.Decimal `json:"percent"`
}

type equityResponse struct {
	Period      string          `json:"period"`
	TotalShared decimal.Decimal `json:"total_shared"`
	Shares      []shareResponse `json:"shares"`
}

func (h *Handler) equity(w http.ResponseWriter, r *http.Request) {
	period, err := equity.ParsePeriod(r.URL.Query().Get("period"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	txs, err := h.svc.All(r.Context())
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	split := equity.SplitShared(txs, h.svc.Participants(), period)

	resp := equityResponse{
		Period:      split.Period.String(),
		TotalShared: split.TotalShared,
		Shares:      make([]shareResponse, 0, len(split.Shares)),
	}
	for _, s := range split.Shares {
		resp.Shares = append(resp.Shares, shareResponse{
			Participant: s.Participant.ID,
			DisplayName: s.Participant.DisplayName,
			Total:       s.Total,
			Percent:     s.Percent,
		})
	}

	writeJSON(w, resp)
}

type monthResponse struct {
	Month   string                             `json:"month"`
	Shared  decimal.Decimal                    `json:"shared"`
	Private map[participant.ID]decimal.Decimal `json:"private"`
}

func (h *Handler) monthly(w http.ResponseWriter, r *http.Request) {
	months := h.historyMonths

	if s := r.URL.Query().Get("months"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			http.Error(w, "months must be a positive integer", http.StatusBadRequest)
			return
		}

		months = n
	}

	txs, err := h.svc.All(r.Context())
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	participants := h.svc.Participants()
	stats := monthly.Stats(txs, participants)
	window := monthly.TrailingWindow(stats, participants, months, h.now())

	resp := make([]monthResponse, 0, len(window))
	for _, e := range window {
		resp = append(resp, monthResponse{Month: e.Key, Shared: e.Bucket.Shared, Private: e.Bucket.Private})
	}

	writeJSON(w, resp)
}

type incomeResponse struct {
	Period    string          `json:"period"`
	Household decimal.Decimal `json:"household"`
	Personal  decimal.Decimal `json:"personal"`
}

func (h *Handler) income(w http.ResponseWriter, r *http.Request) {
	viewerID := viewer.ID(r)
	if !h.svc.Participants().Contains(viewerID) {
		http.Error(w, "unknown or missing "+viewer.Header+" header", http.StatusBadRequest)
		return
	}

	period, err := equity.ParsePeriod(r.URL.Query().Get("period"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	txs, err := h.svc.All(r.Context())
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	sum := equity.Income(txs, period, viewerID)

	writeJSON(w, incomeResponse{Period: period.String(), Household: sum.Household, Personal: sum.Personal})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
