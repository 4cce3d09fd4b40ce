package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/BankimKamila185/Bankim-Jewellery/internal/app"
	"github.com/BankimKamila185/Bankim-Jewellery/internal/catalog"
	"github.com/BankimKamila185/Bankim-Jewellery/internal/dealers"
	"github.com/BankimKamila185/Bankim-Jewellery/internal/invoices"
	"github.com/BankimKamila185/Bankim-Jewellery/internal/ledger"
	"github.com/BankimKamila185/Bankim-Jewellery/internal/plating"
	"github.com/BankimKamila185/Bankim-Jewellery/internal/platform/cache"
	"github.com/BankimKamila185/Bankim-Jewellery/internal/reports"
	"github.com/BankimKamila185/Bankim-Jewellery/internal/shared"
	"github.com/BankimKamila185/Bankim-Jewellery/internal/store"
	"github.com/BankimKamila185/Bankim-Jewellery/internal/workflow"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	st, err := buildStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("build store", slog.Any("error", err))
		os.Exit(1)
	}

	locks := shared.NewKeyedMutex()
	validate := validator.New()

	catalogService := catalog.NewService(st, locks, logger)
	catalogHandler := catalog.NewHandler(logger, catalogService, validate)

	dealersService := dealers.NewService(st, locks, logger)
	dealersHandler := dealers.NewHandler(logger, dealersService, validate)

	workflowService := workflow.NewService(st, locks, logger)
	workflowHandler := workflow.NewHandler(logger, workflowService, validate)

	platingService := plating.NewService(st, locks, logger, workflowService)
	platingHandler := plating.NewHandler(logger, platingService, validate)

	invoicesService := invoices.NewService(st, locks, logger, workflowService)
	invoicesHandler := invoices.NewHandler(logger, invoicesService, validate)

	ledgerService := ledger.NewService(st, locks, logger)
	ledgerHandler := ledger.NewHandler(logger, ledgerService, validate)

	reportsService := reports.NewService(st, logger)
	reportsHandler := reports.NewHandler(logger, reportsService)

	router := app.NewRouter(app.RouterParams{
		Logger:          logger,
		Config:          cfg,
		CatalogHandler:  catalogHandler,
		DealersHandler:  dealersHandler,
		WorkflowHandler: workflowHandler,
		PlatingHandler:  platingHandler,
		InvoicesHandler: invoicesHandler,
		LedgerHandler:   ledgerHandler,
		ReportsHandler:  reportsHandler,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}

// buildStore selects the record store backend: Google Sheets when a
// spreadsheet is configured, otherwise the in-memory store. A configured
// Redis address wraps the backend with a read-through cache.
func buildStore(ctx context.Context, cfg *app.Config, logger *slog.Logger) (store.Store, error) {
	var st store.Store
	if cfg.SpreadsheetID != "" {
		sheetsStore, err := store.NewSheetsStore(ctx, store.SheetsConfig{
			SpreadsheetID:   cfg.SpreadsheetID,
			CredentialsFile: cfg.GoogleCredentialsFile,
			CredentialsJSON: cfg.GoogleCredentialsJSON,
		})
		if err != nil {
			return nil, err
		}
		st = sheetsStore
		logger.Info("using google sheets store", slog.String("spreadsheet", cfg.SpreadsheetID))
	} else {
		st = store.NewMemory()
		logger.Warn("no spreadsheet configured, using in-memory store")
	}

	if cfg.RedisAddr == "" {
		return st, nil
	}
	client, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Warn("redis unavailable, serving uncached", slog.Any("error", err))
		return st, nil
	}
	return store.NewCached(st, client, cfg.CacheTTL, logger), nil
}
