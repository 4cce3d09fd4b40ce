package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/BankimKamila185/Bankim-Jewellery/internal/catalog"
	"github.com/BankimKamila185/Bankim-Jewellery/internal/dealers"
	"github.com/BankimKamila185/Bankim-Jewellery/internal/invoices"
	"github.com/BankimKamila185/Bankim-Jewellery/internal/ledger"
	"github.com/BankimKamila185/Bankim-Jewellery/internal/plating"
	"github.com/BankimKamila185/Bankim-Jewellery/internal/reports"
	"github.com/BankimKamila185/Bankim-Jewellery/internal/workflow"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger *slog.Logger
	Config *Config

	CatalogHandler  *catalog.Handler
	DealersHandler  *dealers.Handler
	WorkflowHandler *workflow.Handler
	PlatingHandler  *plating.Handler
	InvoicesHandler *invoices.Handler
	LedgerHandler   *ledger.Handler
	ReportsHandler  *reports.Handler
}

// NewRouter constructs the chi.Router with application defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger: params.Logger,
		Config: params.Config,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/designs", params.CatalogHandler.MountDesignRoutes)
		r.Route("/variants", params.CatalogHandler.MountVariantRoutes)
		r.Route("/dealers", params.DealersHandler.MountRoutes)
		r.Route("/progress", params.WorkflowHandler.MountRoutes)
		r.Route("/plating", params.PlatingHandler.MountRoutes)
		r.Route("/invoices", params.InvoicesHandler.MountRoutes)
		r.Route("/payments", params.LedgerHandler.MountRoutes)
		r.Route("/reports", params.ReportsHandler.MountRoutes)
	})

	return r
}
