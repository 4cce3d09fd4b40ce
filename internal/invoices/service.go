package invoices

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/BankimKamila185/Bankim-Jewellery/internal/costing"
	"github.com/BankimKamila185/Bankim-Jewellery/internal/shared"
	"github.com/BankimKamila185/Bankim-Jewellery/internal/store"
	"github.com/BankimKamila185/Bankim-Jewellery/internal/workflow"
)

// Service handles invoice business logic.
type Service struct {
	store    store.Store
	locks    *shared.KeyedMutex
	logger   *slog.Logger
	workflow *workflow.Service
	now      func() time.Time
}

// NewService builds Service instance.
func NewService(st store.Store, locks *shared.KeyedMutex, logger *slog.Logger, wf *workflow.Service) *Service {
	return &Service{store: st, locks: locks, logger: logger, workflow: wf, now: time.Now}
}

// Create validates the dealer and every referenced product, derives the
// totals, and appends the invoice header followed by its line items. Header
// and items are separate writes; an item write failure after the header
// landed surfaces as inconsistent-state.
func (s *Service) Create(ctx context.Context, in CreateInput) (Invoice, error) {
	if len(in.Items) == 0 {
		return Invoice{}, fmt.Errorf("%w: at least one item is required", shared.ErrValidation)
	}
	if _, err := s.store.Get(ctx, store.Dealers, in.DealerID); err != nil {
		return Invoice{}, err
	}
	for _, item := range in.Items {
		if item.Quantity <= 0 {
			return Invoice{}, fmt.Errorf("%w: item %s quantity must be positive", shared.ErrValidation, item.ProductID)
		}
		if _, err := s.store.Get(ctx, store.Variants, item.ProductID); err != nil {
			return Invoice{}, err
		}
		// A variant is sellable only once its workflow reached the terminal stage.
		if in.InvoiceType == TypeSales {
			current, err := s.workflow.CurrentStage(ctx, item.ProductID)
			if err != nil && !errors.Is(err, shared.ErrNotFound) {
				return Invoice{}, err
			}
			if err != nil || current.Status != string(workflow.StatusCompleted) || current.StageCode != "DELIVERED" {
				return Invoice{}, fmt.Errorf("%w: variant %s is not DELIVERED and cannot be sold",
					shared.ErrValidation, item.ProductID)
			}
		}
	}

	lines := make([]costing.LineItem, 0, len(in.Items))
	for _, item := range in.Items {
		lines = append(lines, costing.LineItem{Quantity: item.Quantity, UnitPrice: item.UnitPrice})
	}
	totals := costing.Totals(lines, in.TaxPercent, in.DiscountPercent)

	unlock := s.locks.Lock(shared.PrefixLockKey("INV"))
	defer unlock()

	id, err := s.store.NextID(ctx, store.Invoices, "INV")
	if err != nil {
		return Invoice{}, err
	}
	number := store.InvoiceNumber(in.InvoiceType, s.now().Year(), id)

	invoiceDate := in.InvoiceDate
	if invoiceDate == "" {
		invoiceDate = s.now().UTC().Format(time.DateOnly)
	}

	header := store.Row{
		"invoice_id":       id,
		"invoice_number":   number,
		"invoice_type":     in.InvoiceType,
		"dealer_id":        in.DealerID,
		"invoice_date":     invoiceDate,
		"due_date":         in.DueDate,
		"sub_total":        store.FormatFloat(totals.SubTotal),
		"tax_percent":      store.FormatFloat(totals.TaxPercent),
		"tax_amount":       store.FormatFloat(totals.TaxAmount),
		"discount_percent": store.FormatFloat(totals.DiscountPercent),
		"discount_amount":  store.FormatFloat(totals.DiscountAmount),
		"grand_total":      store.FormatFloat(totals.GrandTotal),
		"amount_paid":      "0",
		"balance_due":      store.FormatFloat(totals.GrandTotal),
		"payment_status":   StatusUnpaid,
		"bill_image_link":  in.BillImageLink,
		"notes":            in.Notes,
	}
	if err := s.store.Append(ctx, store.Invoices, header); err != nil {
		return Invoice{}, err
	}

	seq := store.SequenceSuffix(id)
	for i, item := range in.Items {
		row := store.Row{
			"item_id":     fmt.Sprintf("ITM-%s-%03d", seq, i+1),
			"invoice_id":  id,
			"product_id":  item.ProductID,
			"description": item.Description,
			"quantity":    store.FormatFloat(item.Quantity),
			"unit_price":  store.FormatFloat(item.UnitPrice),
			"total_price": store.FormatFloat(costing.Round2(item.Quantity * item.UnitPrice)),
			"cost_type":   item.CostType,
			"notes":       item.Notes,
		}
		if err := s.store.Append(ctx, store.InvoiceItems, row); err != nil {
			return Invoice{}, fmt.Errorf("%w: invoice %s created but item %d not written: %v",
				shared.ErrInconsistentState, id, i+1, err)
		}
	}

	s.logger.Info("invoice created",
		slog.String("invoice_id", id),
		slog.String("invoice_number", number),
		slog.Float64("grand_total", totals.GrandTotal))
	return s.Invoice(ctx, id)
}

// Invoice returns one invoice with its line items.
func (s *Service) Invoice(ctx context.Context, id string) (Invoice, error) {
	row, err := s.store.Get(ctx, store.Invoices, id)
	if err != nil {
		return Invoice{}, err
	}
	inv := invoiceFromRow(row)

	itemRows, err := store.Filter(ctx, s.store, store.InvoiceItems, store.Row{"invoice_id": id})
	if err != nil {
		return Invoice{}, err
	}
	inv.Items = make([]Item, 0, len(itemRows))
	for _, r := range itemRows {
		inv.Items = append(inv.Items, itemFromRow(r))
	}
	return inv, nil
}

// Invoices lists invoice headers matching the query.
func (s *Service) Invoices(ctx context.Context, q Query) ([]Invoice, error) {
	match := store.Row{}
	if q.InvoiceType != "" {
		match["invoice_type"] = q.InvoiceType
	}
	if q.DealerID != "" {
		match["dealer_id"] = q.DealerID
	}
	rows, err := store.Filter(ctx, s.store, store.Invoices, match)
	if err != nil {
		return nil, err
	}
	out := make([]Invoice, 0, len(rows))
	for _, r := range rows {
		out = append(out, invoiceFromRow(r))
	}
	return out, nil
}
