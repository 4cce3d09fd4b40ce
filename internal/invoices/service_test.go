package invoices

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/BankimKamila185/Bankim-Jewellery/internal/shared"
	"github.com/BankimKamila185/Bankim-Jewellery/internal/store"
	"github.com/BankimKamila185/Bankim-Jewellery/internal/workflow"
)

func newFixture() (*Service, *store.Memory) {
	m := store.NewMemory()
	locks := shared.NewKeyedMutex()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	wf := workflow.NewService(m, locks, logger)
	return NewService(m, locks, logger, wf), m
}

func seed(t *testing.T, m *store.Memory) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, m.Append(ctx, store.Dealers, store.Row{
		"dealer_id": "DLR-00001", "dealer_type": "BUY",
		"dealer_category": "Material", "name": "Shree Gold Works", "status": "Active",
	}))
	require.NoError(t, m.Append(ctx, store.Variants, store.Row{
		"variant_id": "VAR-00001", "design_id": "DES-00001", "status": "Active",
	}))
}

func TestCreateInvoiceDerivesTotals(t *testing.T) {
	ctx := context.Background()
	s, m := newFixture()
	seed(t, m)

	inv, err := s.Create(ctx, CreateInput{
		InvoiceType:     "Material",
		DealerID:        "DLR-00001",
		TaxPercent:      3,
		DiscountPercent: 5,
		Items: []ItemInput{
			{ProductID: "VAR-00001", Quantity: 2, UnitPrice: 1500, CostType: "Material"},
			{ProductID: "VAR-00001", Quantity: 1, UnitPrice: 700, CostType: "Material"},
		},
	})
	require.NoError(t, err)
	require.Equal(t, "INV-00001", inv.InvoiceID)
	require.Equal(t, 3700.0, inv.SubTotal)
	require.Equal(t, 111.0, inv.TaxAmount)
	require.Equal(t, 185.0, inv.DiscountAmount)
	require.Equal(t, 3626.0, inv.GrandTotal)
	require.Equal(t, 0.0, inv.AmountPaid)
	require.Equal(t, 3626.0, inv.BalanceDue)
	require.Equal(t, StatusUnpaid, inv.PaymentStatus)

	require.Len(t, inv.Items, 2)
	require.Equal(t, "ITM-00001-001", inv.Items[0].ItemID)
	require.Equal(t, "ITM-00001-002", inv.Items[1].ItemID)
	require.Equal(t, 3000.0, inv.Items[0].TotalPrice)
}

func TestCreateInvoiceDisplayNumber(t *testing.T) {
	ctx := context.Background()
	s, m := newFixture()
	seed(t, m)

	inv, err := s.Create(ctx, CreateInput{
		InvoiceType: "Making",
		DealerID:    "DLR-00001",
		Items:       []ItemInput{{ProductID: "VAR-00001", Quantity: 1, UnitPrice: 100}},
	})
	require.NoError(t, err)
	require.Regexp(t, `^MKG-\d{4}-00001$`, inv.InvoiceNumber)
}

func TestCreateInvoiceValidatesRelations(t *testing.T) {
	ctx := context.Background()
	s, m := newFixture()
	seed(t, m)

	_, err := s.Create(ctx, CreateInput{
		InvoiceType: "Material",
		DealerID:    "DLR-99999",
		Items:       []ItemInput{{ProductID: "VAR-00001", Quantity: 1, UnitPrice: 100}},
	})
	require.ErrorIs(t, err, shared.ErrNotFound)

	_, err = s.Create(ctx, CreateInput{
		InvoiceType: "Material",
		DealerID:    "DLR-00001",
		Items:       []ItemInput{{ProductID: "VAR-99999", Quantity: 1, UnitPrice: 100}},
	})
	require.ErrorIs(t, err, shared.ErrNotFound)

	_, err = s.Create(ctx, CreateInput{
		InvoiceType: "Material",
		DealerID:    "DLR-00001",
	})
	require.ErrorIs(t, err, shared.ErrValidation)
}

func TestCreateSalesInvoiceRequiresDelivered(t *testing.T) {
	ctx := context.Background()
	s, m := newFixture()
	seed(t, m)

	// No workflow history at all: not sellable.
	_, err := s.Create(ctx, CreateInput{
		InvoiceType: "Sales",
		DealerID:    "DLR-00001",
		Items:       []ItemInput{{ProductID: "VAR-00001", Quantity: 1, UnitPrice: 2500}},
	})
	require.ErrorIs(t, err, shared.ErrValidation)

	// An active MAKING stage: still not sellable.
	base := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	m.SetClock(func() time.Time { return base })
	require.NoError(t, m.Append(ctx, store.Progress, store.Row{
		"progress_id": "PRG-00001", "variant_id": "VAR-00001",
		"stage_code": "MAKING", "status": "InProgress",
	}))
	_, err = s.Create(ctx, CreateInput{
		InvoiceType: "Sales",
		DealerID:    "DLR-00001",
		Items:       []ItemInput{{ProductID: "VAR-00001", Quantity: 1, UnitPrice: 2500}},
	})
	require.ErrorIs(t, err, shared.ErrValidation)

	// Terminal DELIVERED entry: sellable.
	require.NoError(t, m.UpdateByID(ctx, store.Progress, "PRG-00001", store.Row{"status": "Completed"}))
	m.SetClock(func() time.Time { return base.Add(time.Hour) })
	require.NoError(t, m.Append(ctx, store.Progress, store.Row{
		"progress_id": "PRG-00002", "variant_id": "VAR-00001",
		"stage_code": "DELIVERED", "status": "Completed",
	}))

	inv, err := s.Create(ctx, CreateInput{
		InvoiceType: "Sales",
		DealerID:    "DLR-00001",
		Items:       []ItemInput{{ProductID: "VAR-00001", Quantity: 1, UnitPrice: 2500}},
	})
	require.NoError(t, err)
	require.Equal(t, 2500.0, inv.GrandTotal)
}

func TestInvoicesFilter(t *testing.T) {
	ctx := context.Background()
	s, m := newFixture()
	seed(t, m)

	_, err := s.Create(ctx, CreateInput{
		InvoiceType: "Material",
		DealerID:    "DLR-00001",
		Items:       []ItemInput{{ProductID: "VAR-00001", Quantity: 1, UnitPrice: 100}},
	})
	require.NoError(t, err)
	_, err = s.Create(ctx, CreateInput{
		InvoiceType: "Making",
		DealerID:    "DLR-00001",
		Items:       []ItemInput{{ProductID: "VAR-00001", Quantity: 1, UnitPrice: 200}},
	})
	require.NoError(t, err)

	making, err := s.Invoices(ctx, Query{InvoiceType: "Making"})
	require.NoError(t, err)
	require.Len(t, making, 1)
	require.Equal(t, 200.0, making[0].GrandTotal)

	all, err := s.Invoices(ctx, Query{DealerID: "DLR-00001"})
	require.NoError(t, err)
	require.Len(t, all, 2)
}
