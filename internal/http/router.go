package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/lbarreto/equifinance/internal/http/category"
	"github.com/lbarreto/equifinance/internal/http/dashboard"
	"github.com/lbarreto/equifinance/internal/http/importcsv"
	"github.com/lbarreto/equifinance/internal/http/transaction"
	"github.com/lbarreto/equifinance/internal/http/viewer"
)

func New(
	transactionsV1 *transaction.Handler,
	categoriesV1 *category.Handler,
	dashboardV1 *dashboard.Handler,
	importV1 *importcsv.Handler,
	corsOrigins []string,
) http.Handler {
	router := chi.NewRouter()

	router.Use(requestID)
	router.Use(logRequests)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: corsOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", viewer.Header},
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/transactions", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			transactionsV1.Routes(r)
		})

		r.Route("/categories", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			categoriesV1.Routes(r)
		})

		r.Route("/dashboard", dashboardV1.Routes)

		r.Route("/import", importV1.Routes)
	})

	return router
}
