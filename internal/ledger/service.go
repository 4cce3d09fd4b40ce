package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/BankimKamila185/Bankim-Jewellery/internal/shared"
	"github.com/BankimKamila185/Bankim-Jewellery/internal/store"
)

// Service handles payment recording and balance reconciliation.
type Service struct {
	store  store.Store
	locks  *shared.KeyedMutex
	logger *slog.Logger
	now    func() time.Time
}

// NewService builds Service instance.
func NewService(st store.Store, locks *shared.KeyedMutex, logger *slog.Logger) *Service {
	return &Service{store: st, locks: locks, logger: logger, now: time.Now}
}

// CreatePayment validates the target and dealer, appends the payment, moves
// the dealer balance by the sign law (IN subtracts, OUT adds), and, for
// invoice payments, recomputes the invoice aggregates. The writes are
// sequential and not rolled back; a failure after the payment landed
// surfaces as inconsistent-state and is repaired by RecomputeInvoice.
func (s *Service) CreatePayment(ctx context.Context, in CreateInput) (Payment, error) {
	if in.Amount <= 0 {
		return Payment{}, fmt.Errorf("%w: amount must be positive", shared.ErrValidation)
	}
	if in.PaymentType != TypeIncoming && in.PaymentType != TypeOutgoing {
		return Payment{}, fmt.Errorf("%w: payment_type must be IN or OUT", shared.ErrValidation)
	}

	switch in.RelatedTo {
	case RelatedToInvoice:
		if in.InvoiceID == "" {
			return Payment{}, fmt.Errorf("%w: invoice_id is required for invoice payments", shared.ErrValidation)
		}
		if _, err := s.store.Get(ctx, store.Invoices, in.InvoiceID); err != nil {
			return Payment{}, err
		}
	case RelatedToProgress:
		if in.ProgressID == "" {
			return Payment{}, fmt.Errorf("%w: progress_id is required for progress payments", shared.ErrValidation)
		}
		if _, err := s.store.Get(ctx, store.Progress, in.ProgressID); err != nil {
			return Payment{}, err
		}
	default:
		return Payment{}, fmt.Errorf("%w: related_to must be INVOICE or PROGRESS", shared.ErrValidation)
	}

	if _, err := s.store.Get(ctx, store.Dealers, in.DealerID); err != nil {
		return Payment{}, err
	}

	// Dealer first, then invoice: every writer takes the locks in this
	// order so two payments can never deadlock.
	unlockDealer := s.locks.Lock(shared.DealerLockKey(in.DealerID))
	defer unlockDealer()
	if in.RelatedTo == RelatedToInvoice {
		unlockInvoice := s.locks.Lock(shared.InvoiceLockKey(in.InvoiceID))
		defer unlockInvoice()
	}

	id, err := s.appendPayment(ctx, in)
	if err != nil {
		return Payment{}, err
	}

	if err := s.moveDealerBalance(ctx, in.DealerID, in.PaymentType, in.Amount); err != nil {
		return Payment{}, fmt.Errorf("%w: payment %s recorded but dealer balance not moved: %v",
			shared.ErrInconsistentState, id, err)
	}

	if in.RelatedTo == RelatedToInvoice {
		if err := s.recomputeInvoice(ctx, in.InvoiceID); err != nil {
			return Payment{}, fmt.Errorf("%w: payment %s recorded but invoice %s not reconciled: %v",
				shared.ErrInconsistentState, id, in.InvoiceID, err)
		}
	}

	s.logger.Info("payment recorded",
		slog.String("payment_id", id),
		slog.String("payment_type", in.PaymentType),
		slog.String("dealer_id", in.DealerID),
		slog.Float64("amount", in.Amount))

	row, err := s.store.Get(ctx, store.Payments, id)
	if err != nil {
		return Payment{}, err
	}
	return paymentFromRow(row), nil
}

// Payments lists ledger records matching the filter.
func (s *Service) Payments(ctx context.Context, f Filter) ([]Payment, error) {
	match := store.Row{}
	if f.InvoiceID != "" {
		match["invoice_id"] = f.InvoiceID
	}
	if f.DealerID != "" {
		match["dealer_id"] = f.DealerID
	}
	if f.ProgressID != "" {
		match["progress_id"] = f.ProgressID
	}
	rows, err := store.Filter(ctx, s.store, store.Payments, match)
	if err != nil {
		return nil, err
	}
	out := make([]Payment, 0, len(rows))
	for _, r := range rows {
		out = append(out, paymentFromRow(r))
	}
	return out, nil
}

// RecomputeInvoice rebuilds an invoice's payment aggregates from the full
// payment set. Safe to repeat: the same payments always yield the same
// aggregates. This is the repair operation for a payment whose invoice
// write failed.
func (s *Service) RecomputeInvoice(ctx context.Context, invoiceID string) error {
	unlock := s.locks.Lock(shared.InvoiceLockKey(invoiceID))
	defer unlock()
	return s.recomputeInvoice(ctx, invoiceID)
}

func (s *Service) appendPayment(ctx context.Context, in CreateInput) (string, error) {
	unlock := s.locks.Lock(shared.PrefixLockKey("PAY"))
	defer unlock()

	id, err := s.store.NextID(ctx, store.Payments, "PAY")
	if err != nil {
		return "", err
	}

	mode := in.PaymentMode
	if mode == "" {
		mode = "Cash"
	}
	reference := in.ReferenceNo
	if reference == "" {
		reference = uuid.NewString()
	}
	date := in.PaymentDate
	if date == "" {
		date = s.now().UTC().Format(time.DateOnly)
	}

	row := store.Row{
		"payment_id":   id,
		"payment_type": in.PaymentType,
		"related_to":   in.RelatedTo,
		"invoice_id":   in.InvoiceID,
		"progress_id":  in.ProgressID,
		"dealer_id":    in.DealerID,
		"amount":       store.FormatFloat(in.Amount),
		"payment_mode": mode,
		"reference_no": reference,
		"payment_date": date,
		"notes":        in.Notes,
	}
	if err := s.store.Append(ctx, store.Payments, row); err != nil {
		return "", err
	}
	return id, nil
}

// moveDealerBalance applies the sign law to the dealer's running balance.
// The balance reads as net receivable: positive means they owe us, so money
// received (IN) subtracts and money paid out (OUT) adds.
func (s *Service) moveDealerBalance(ctx context.Context, dealerID, paymentType string, amount float64) error {
	dealer, err := s.store.Get(ctx, store.Dealers, dealerID)
	if err != nil {
		return err
	}
	balance := dealer.Float("current_balance")
	if paymentType == TypeIncoming {
		balance -= amount
	} else {
		balance += amount
	}
	return s.store.UpdateByID(ctx, store.Dealers, dealerID, store.Row{
		"current_balance": store.FormatFloat(balance),
	})
}

// recomputeInvoice derives amount_paid, balance_due and payment_status from
// every payment referencing the invoice. All payments count toward
// settlement regardless of direction; balance due clamps at zero.
func (s *Service) recomputeInvoice(ctx context.Context, invoiceID string) error {
	invoice, err := s.store.Get(ctx, store.Invoices, invoiceID)
	if err != nil {
		return err
	}
	payments, err := store.Filter(ctx, s.store, store.Payments, store.Row{"invoice_id": invoiceID})
	if err != nil {
		return err
	}

	var totalPaid float64
	for _, p := range payments {
		totalPaid += p.Float("amount")
	}
	balanceDue := invoice.Float("grand_total") - totalPaid

	status := StatusUnpaid
	switch {
	case balanceDue <= 0:
		status = StatusPaid
		balanceDue = 0
	case totalPaid > 0:
		status = StatusPartial
	}

	return s.store.UpdateByID(ctx, store.Invoices, invoiceID, store.Row{
		"amount_paid":    store.FormatFloat(totalPaid),
		"balance_due":    store.FormatFloat(balanceDue),
		"payment_status": status,
	})
}
