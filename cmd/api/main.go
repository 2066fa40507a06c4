package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/lbarreto/equifinance/internal/category"
	"github.com/lbarreto/equifinance/internal/config"
	equiHttp "github.com/lbarreto/equifinance/internal/http"
	categoryHandler "github.com/lbarreto/equifinance/internal/http/category"
	dashboardHandler "github.com/lbarreto/equifinance/internal/http/dashboard"
	importHandler "github.com/lbarreto/equifinance/internal/http/importcsv"
	txHandler "github.com/lbarreto/equifinance/internal/http/transaction"
	"github.com/lbarreto/equifinance/internal/importer"
	"github.com/lbarreto/equifinance/internal/transaction"
	txStore "github.com/lbarreto/equifinance/internal/transaction/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	roster, err := cfg.Roster()
	if err != nil {
		slog.Error("failed to resolve household roster", "error", err)
		os.Exit(1)
	}

	var (
		transactionService = transaction.NewService(txStore.New(), roster)
		categoryRegistry   = category.NewRegistry(category.Defaults()...)
		importService      = importer.NewService()
	)

	var (
		transactionH = txHandler.NewHandler(transactionService)
		categoryH    = categoryHandler.NewHandler(categoryRegistry)
		dashboardH   = dashboardHandler.NewHandler(transactionService, cfg.Dashboard.HistoryMonths)
		importH      = importHandler.NewHandler(importService, transactionService)
	)

	router := equiHttp.New(transactionH, categoryH, dashboardH, importH, cfg.Server.CORSOrigins)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	slog.Info("starting server", "app", cfg.App.Name, "addr", server.Addr)

	if err := server.ListenAndServe(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
