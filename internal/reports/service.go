// Package reports aggregates read-only dashboard numbers over the
// production and ledger collections. Reads take no locks and fan out
// concurrently; the numbers are a point-in-time snapshot, not a ledger
// truth source.
package reports

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/BankimKamila185/Bankim-Jewellery/internal/store"
)

// Dashboard is the business summary served to the landing screen.
type Dashboard struct {
	TotalVariants  int `json:"total_variants"`
	ActiveVariants int `json:"active_variants"`

	TotalInvoices     int     `json:"total_invoices"`
	UnpaidInvoices    int     `json:"unpaid_invoices"`
	InvoiceReceivable float64 `json:"invoice_receivable"`

	TotalDealers     int     `json:"total_dealers"`
	DealerReceivable float64 `json:"dealer_receivable"`
	DealerPayable    float64 `json:"dealer_payable"`
	NetPosition      float64 `json:"net_position"`

	ActiveStages      int `json:"active_stages"`
	ActivePlatingJobs int `json:"active_plating_jobs"`

	LowStockMaterials int `json:"low_stock_materials"`
	ActiveDesigners   int `json:"active_designers"`
}

// Service computes reports.
type Service struct {
	store  store.Store
	logger *slog.Logger
}

// NewService builds Service instance.
func NewService(st store.Store, logger *slog.Logger) *Service {
	return &Service{store: st, logger: logger}
}

// Dashboard fetches the involved collections concurrently and reduces them
// into the summary.
func (s *Service) Dashboard(ctx context.Context) (Dashboard, error) {
	var (
		variants, invoices, dealers []store.Row
		progress, jobs              []store.Row
		materials, designers        []store.Row
	)

	g, gctx := errgroup.WithContext(ctx)
	fetch := func(c store.Collection, dst *[]store.Row) func() error {
		return func() error {
			rows, err := s.store.List(gctx, c)
			if err != nil {
				return err
			}
			*dst = rows
			return nil
		}
	}
	g.Go(fetch(store.Variants, &variants))
	g.Go(fetch(store.Invoices, &invoices))
	g.Go(fetch(store.Dealers, &dealers))
	g.Go(fetch(store.Progress, &progress))
	g.Go(fetch(store.PlatingJobs, &jobs))
	g.Go(fetch(store.Materials, &materials))
	g.Go(fetch(store.Designers, &designers))
	if err := g.Wait(); err != nil {
		return Dashboard{}, err
	}

	var d Dashboard

	d.TotalVariants = len(variants)
	for _, v := range variants {
		if v["status"] == "Active" {
			d.ActiveVariants++
		}
	}

	d.TotalInvoices = len(invoices)
	for _, inv := range invoices {
		switch inv["payment_status"] {
		case "Unpaid", "Partial":
			d.UnpaidInvoices++
			d.InvoiceReceivable += inv.Float("balance_due")
		}
	}

	for _, dealer := range dealers {
		if dealer["status"] != "Active" {
			continue
		}
		d.TotalDealers++
		balance := dealer.Float("current_balance")
		if balance > 0 {
			d.DealerReceivable += balance
		} else {
			d.DealerPayable += -balance
		}
	}
	d.NetPosition = d.DealerReceivable - d.DealerPayable

	for _, p := range progress {
		switch p["status"] {
		case "Pending", "InProgress":
			d.ActiveStages++
		}
	}

	for _, j := range jobs {
		if j["status"] != "Completed" {
			d.ActivePlatingJobs++
		}
	}

	for _, mat := range materials {
		if mat["status"] != "Active" {
			continue
		}
		if mat.Float("current_stock") <= mat.Float("min_stock_alert") {
			d.LowStockMaterials++
		}
	}

	for _, des := range designers {
		if des["status"] == "Active" {
			d.ActiveDesigners++
		}
	}

	return d, nil
}
