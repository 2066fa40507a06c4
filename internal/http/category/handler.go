package category

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lbarreto/equifinance/internal/category"
)

type Handler struct {
	registry *category.Registry
}

func NewHandler(registry *category.Registry) *Handler {
	return &Handler{registry: registry}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.add)
}

type categoriesResponse struct {
	Categories []string `json:"categories"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(categoriesResponse{Categories: h.registry.List()}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type addCategoryRequest struct {
	Name string `json:"name"`
}

func (h *Handler) add(w http.ResponseWriter, r *http.Request) {
	var req addCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.registry.Add(req.Name); err != nil {
		if errors.Is(err, category.ErrDuplicate) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}

		http.Error(w, err.Error(), http.StatusBadRequest)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(categoriesResponse{Categories: h.registry.List()}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
