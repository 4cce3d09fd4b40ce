package ledger

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/BankimKamila185/Bankim-Jewellery/internal/shared"
	"github.com/BankimKamila185/Bankim-Jewellery/internal/store"
)

func newFixture() (*Service, *store.Memory) {
	m := store.NewMemory()
	return NewService(m, shared.NewKeyedMutex(), slog.New(slog.NewTextHandler(io.Discard, nil))), m
}

func seed(t *testing.T, m *store.Memory) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, m.Append(ctx, store.Dealers, store.Row{
		"dealer_id": "DLR-00001", "dealer_type": "SELL", "dealer_category": "Customer",
		"name": "Ratan Jewellers", "opening_balance": "0", "current_balance": "0",
		"status": "Active",
	}))
	require.NoError(t, m.Append(ctx, store.Invoices, store.Row{
		"invoice_id": "INV-00001", "invoice_type": "Sales", "dealer_id": "DLR-00001",
		"grand_total": "1000", "amount_paid": "0", "balance_due": "1000",
		"payment_status": "Unpaid",
	}))
}

func dealerBalance(t *testing.T, m *store.Memory) float64 {
	t.Helper()
	row, err := m.Get(context.Background(), store.Dealers, "DLR-00001")
	require.NoError(t, err)
	return row.Float("current_balance")
}

func invoice(t *testing.T, m *store.Memory) store.Row {
	t.Helper()
	row, err := m.Get(context.Background(), store.Invoices, "INV-00001")
	require.NoError(t, err)
	return row
}

func TestCreatePaymentAppendsLedgerRecord(t *testing.T) {
	ctx := context.Background()
	s, m := newFixture()
	seed(t, m)

	p, err := s.CreatePayment(ctx, CreateInput{
		PaymentType: TypeIncoming,
		RelatedTo:   RelatedToInvoice,
		InvoiceID:   "INV-00001",
		DealerID:    "DLR-00001",
		Amount:      400,
	})
	require.NoError(t, err)
	require.Equal(t, "PAY-00001", p.PaymentID)
	require.Equal(t, "Cash", p.PaymentMode, "mode defaults to Cash")
	require.NotEmpty(t, p.ReferenceNo, "reference number generated when absent")
	require.NotEmpty(t, p.PaymentDate)
}

func TestBalanceSignLaw(t *testing.T) {
	ctx := context.Background()
	s, m := newFixture()
	seed(t, m)

	// Outgoing adds: we paid them, they owe us less than zero.
	_, err := s.CreatePayment(ctx, CreateInput{
		PaymentType: TypeOutgoing, RelatedTo: RelatedToInvoice,
		InvoiceID: "INV-00001", DealerID: "DLR-00001", Amount: 2000,
	})
	require.NoError(t, err)
	require.Equal(t, 2000.0, dealerBalance(t, m))

	// Incoming subtracts, even from a balance already in their favour.
	_, err = s.CreatePayment(ctx, CreateInput{
		PaymentType: TypeIncoming, RelatedTo: RelatedToInvoice,
		InvoiceID: "INV-00001", DealerID: "DLR-00001", Amount: 500,
	})
	require.NoError(t, err)
	require.Equal(t, 1500.0, dealerBalance(t, m))
}

func TestBalanceSignLawOutgoingFromNegative(t *testing.T) {
	ctx := context.Background()
	s, m := newFixture()
	seed(t, m)
	require.NoError(t, m.UpdateByID(ctx, store.Dealers, "DLR-00001", store.Row{"current_balance": "-2000"}))

	// We owed them 2000; an incoming 500 moves further negative per the law.
	_, err := s.CreatePayment(ctx, CreateInput{
		PaymentType: TypeIncoming, RelatedTo: RelatedToInvoice,
		InvoiceID: "INV-00001", DealerID: "DLR-00001", Amount: 500,
	})
	require.NoError(t, err)
	require.Equal(t, -2500.0, dealerBalance(t, m))
}

func TestInvoiceSettlementPartialThenPaid(t *testing.T) {
	ctx := context.Background()
	s, m := newFixture()
	seed(t, m)

	_, err := s.CreatePayment(ctx, CreateInput{
		PaymentType: TypeIncoming, RelatedTo: RelatedToInvoice,
		InvoiceID: "INV-00001", DealerID: "DLR-00001", Amount: 400,
	})
	require.NoError(t, err)

	inv := invoice(t, m)
	require.Equal(t, 400.0, inv.Float("amount_paid"))
	require.Equal(t, 600.0, inv.Float("balance_due"))
	require.Equal(t, StatusPartial, inv["payment_status"])

	_, err = s.CreatePayment(ctx, CreateInput{
		PaymentType: TypeIncoming, RelatedTo: RelatedToInvoice,
		InvoiceID: "INV-00001", DealerID: "DLR-00001", Amount: 600,
	})
	require.NoError(t, err)

	inv = invoice(t, m)
	require.Equal(t, 1000.0, inv.Float("amount_paid"))
	require.Equal(t, 0.0, inv.Float("balance_due"))
	require.Equal(t, StatusPaid, inv["payment_status"])
}

func TestInvoiceSettlementCountsAllDirections(t *testing.T) {
	ctx := context.Background()
	s, m := newFixture()
	seed(t, m)

	// Direction is not filtered: an OUT payment still counts toward
	// settlement of the invoice it references.
	_, err := s.CreatePayment(ctx, CreateInput{
		PaymentType: TypeOutgoing, RelatedTo: RelatedToInvoice,
		InvoiceID: "INV-00001", DealerID: "DLR-00001", Amount: 1000,
	})
	require.NoError(t, err)

	inv := invoice(t, m)
	require.Equal(t, StatusPaid, inv["payment_status"])
}

func TestBalanceDueClampsAtZero(t *testing.T) {
	ctx := context.Background()
	s, m := newFixture()
	seed(t, m)

	_, err := s.CreatePayment(ctx, CreateInput{
		PaymentType: TypeIncoming, RelatedTo: RelatedToInvoice,
		InvoiceID: "INV-00001", DealerID: "DLR-00001", Amount: 1500,
	})
	require.NoError(t, err)

	inv := invoice(t, m)
	require.Equal(t, 1500.0, inv.Float("amount_paid"))
	require.Equal(t, 0.0, inv.Float("balance_due"), "overpayment never drives balance due negative")
	require.Equal(t, StatusPaid, inv["payment_status"])
}

func TestRecomputeInvoiceIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s, m := newFixture()
	seed(t, m)

	_, err := s.CreatePayment(ctx, CreateInput{
		PaymentType: TypeIncoming, RelatedTo: RelatedToInvoice,
		InvoiceID: "INV-00001", DealerID: "DLR-00001", Amount: 400,
	})
	require.NoError(t, err)
	first := invoice(t, m)

	require.NoError(t, s.RecomputeInvoice(ctx, "INV-00001"))
	second := invoice(t, m)

	require.Equal(t, first.Float("amount_paid"), second.Float("amount_paid"))
	require.Equal(t, first.Float("balance_due"), second.Float("balance_due"))
	require.Equal(t, first["payment_status"], second["payment_status"])
}

func TestCreatePaymentValidation(t *testing.T) {
	ctx := context.Background()
	s, m := newFixture()
	seed(t, m)

	_, err := s.CreatePayment(ctx, CreateInput{
		PaymentType: TypeIncoming, RelatedTo: RelatedToInvoice,
		InvoiceID: "INV-00001", DealerID: "DLR-00001", Amount: 0,
	})
	require.ErrorIs(t, err, shared.ErrValidation)

	_, err = s.CreatePayment(ctx, CreateInput{
		PaymentType: TypeIncoming, RelatedTo: RelatedToInvoice,
		DealerID: "DLR-00001", Amount: 100,
	})
	require.ErrorIs(t, err, shared.ErrValidation)

	_, err = s.CreatePayment(ctx, CreateInput{
		PaymentType: TypeIncoming, RelatedTo: RelatedToInvoice,
		InvoiceID: "INV-99999", DealerID: "DLR-00001", Amount: 100,
	})
	require.ErrorIs(t, err, shared.ErrNotFound)

	_, err = s.CreatePayment(ctx, CreateInput{
		PaymentType: TypeIncoming, RelatedTo: RelatedToProgress,
		ProgressID: "PRG-99999", DealerID: "DLR-00001", Amount: 100,
	})
	require.ErrorIs(t, err, shared.ErrNotFound)

	// No writes landed for any rejected payment.
	payments, err := s.Payments(ctx, Filter{})
	require.NoError(t, err)
	require.Empty(t, payments)
	require.Equal(t, 0.0, dealerBalance(t, m))
}

func TestProgressPayment(t *testing.T) {
	ctx := context.Background()
	s, m := newFixture()
	seed(t, m)
	require.NoError(t, m.Append(ctx, store.Progress, store.Row{
		"progress_id": "PRG-00001", "variant_id": "VAR-00001",
		"stage_code": "MAKING", "status": "InProgress",
	}))

	p, err := s.CreatePayment(ctx, CreateInput{
		PaymentType: TypeOutgoing, RelatedTo: RelatedToProgress,
		ProgressID: "PRG-00001", DealerID: "DLR-00001", Amount: 250,
	})
	require.NoError(t, err)
	require.Equal(t, 250.0, dealerBalance(t, m))

	byProgress, err := s.Payments(ctx, Filter{ProgressID: "PRG-00001"})
	require.NoError(t, err)
	require.Len(t, byProgress, 1)
	require.Equal(t, p.PaymentID, byProgress[0].PaymentID)
}
