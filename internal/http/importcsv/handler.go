package importcsv

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/lbarreto/equifinance/internal/importer"
	"github.com/lbarreto/equifinance/internal/participant"
	"github.com/lbarreto/equifinance/internal/transaction"
)

type Handler struct {
	importSvc *importer.Service
	txSvc     *transaction.Service
}

func NewHandler(importSvc *importer.Service, txSvc *transaction.Service) *Handler {
	return &Handler{importSvc: importSvc, txSvc: txSvc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.preview)
	r.Post("/confirm", h.confirm)
}

type paramsDTO struct {
	Amount       decimal.Decimal   `json:"amount"`
	Type         transaction.Type  `json:"type"`
	Category     string            `json:"category,omitempty"`
	Date         string            `json:"date"`
	Owner        participant.ID    `json:"owner"`
	Scope        transaction.Scope `json:"scope"`
	Installments int               `json:"installments,omitempty"`
}

type previewResponse struct {
	Rows []paramsDTO `json:"rows"`
}

type confirmRequest struct {
	Rows []paramsDTO `json:"rows"`
}

type confirmResponse struct {
	Imported int `json:"imported"`
}

// preview parses the uploaded CSV and returns the rows it would create,
// without touching the ledger. The client reviews and posts them back to
// /confirm.
func (h *Handler) preview(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	format := importer.Format(r.FormValue("format"))
	if format == "" {
		format = importer.FormatPlanilha
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	params, err := h.importSvc.Import(format, file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	resp := previewResponse{Rows: make([]paramsDTO, 0, len(params))}
	for _, p := range params {
		resp.Rows = append(resp.Rows, toDTO(p))
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) confirm(w http.ResponseWriter, r *http.Request) {
	var req confirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	params := make([]transaction.CreateParams, 0, len(req.Rows))

	for i, row := range req.Rows {
		p, err := fromDTO(row)
		if err != nil {
			http.Error(w, fmt.Sprintf("row %d: %v", i+1, err), http.StatusBadRequest)
			return
		}

		params = append(params, p)
	}

	txs, err := h.txSvc.CreateBatch(r.Context(), params)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(confirmResponse{Imported: len(txs)}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func toDTO(p transaction.CreateParams) paramsDTO {
	dto := paramsDTO{
		Amount:   p.Amount,
		Type:     p.Type,
		Category: p.Category,
		Date:     p.Date.Format(time.DateOnly),
		Owner:    p.OwnerID,
		Scope:    p.Scope,
	}

	if p.Card != nil {
		dto.Installments = p.Card.Installments
	}

	return dto
}

func fromDTO(dto paramsDTO) (transaction.CreateParams, error) {
	date, err := time.Parse(time.DateOnly, dto.Date)
	if err != nil {
		return transaction.CreateParams{}, err
	}

	p := transaction.CreateParams{
		Amount:   dto.Amount,
		Type:     dto.Type,
		Category: dto.Category,
		Date:     date,
		OwnerID:  dto.Owner,
		Scope:    dto.Scope,
	}

	if dto.Installments > 1 {
		p.Card = &transaction.CardDetails{Installments: dto.Installments, StartDate: date}
	}

	return p, nil
}
