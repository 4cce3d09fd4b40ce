package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/BankimKamila185/Bankim-Jewellery/internal/shared"
)

func TestMemoryAppendGetUpdate(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	err := m.Append(ctx, Dealers, Row{
		"dealer_id":       "DLR-00001",
		"name":            "Shree Gold Works",
		"current_balance": "0",
		"status":          "Active",
	})
	require.NoError(t, err)

	got, err := m.Get(ctx, Dealers, "DLR-00001")
	require.NoError(t, err)
	require.Equal(t, "Shree Gold Works", got["name"])
	require.NotEmpty(t, got["created_at"])
	require.NotEmpty(t, got["updated_at"])

	err = m.UpdateByID(ctx, Dealers, "DLR-00001", Row{"current_balance": "-2000"})
	require.NoError(t, err)

	got, err = m.Get(ctx, Dealers, "DLR-00001")
	require.NoError(t, err)
	require.Equal(t, "-2000", got["current_balance"])
	require.Equal(t, "Shree Gold Works", got["name"], "merge must keep untouched fields")
}

func TestMemoryGetMissingIsNotFound(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	_, err := m.Get(ctx, Variants, "VAR-99999")
	require.ErrorIs(t, err, shared.ErrNotFound)

	err = m.UpdateByID(ctx, Variants, "VAR-99999", Row{"status": "Inactive"})
	require.ErrorIs(t, err, shared.ErrNotFound)
}

func TestMemoryNextIDScansExisting(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	require.NoError(t, m.Append(ctx, Payments, Row{"payment_id": "PAY-00001"}))
	require.NoError(t, m.Append(ctx, Payments, Row{"payment_id": "PAY-00004"}))

	id, err := m.NextID(ctx, Payments, "PAY")
	require.NoError(t, err)
	require.Equal(t, "PAY-00005", id)
}

func TestMemoryFilter(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	require.NoError(t, m.Append(ctx, Progress, Row{"progress_id": "PRG-00001", "variant_id": "VAR-00001", "status": "Completed"}))
	require.NoError(t, m.Append(ctx, Progress, Row{"progress_id": "PRG-00002", "variant_id": "VAR-00001", "status": "Pending"}))
	require.NoError(t, m.Append(ctx, Progress, Row{"progress_id": "PRG-00003", "variant_id": "VAR-00002", "status": "Pending"}))

	rows, err := Filter(ctx, m, Progress, Row{"variant_id": "VAR-00001", "status": "Pending"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "PRG-00002", rows[0]["progress_id"])
}

func TestMemoryUpdateRefreshesUpdatedAt(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	m.SetClock(func() time.Time { return base })
	require.NoError(t, m.Append(ctx, Variants, Row{"variant_id": "VAR-00001"}))

	m.SetClock(func() time.Time { return base.Add(time.Hour) })
	require.NoError(t, m.UpdateByID(ctx, Variants, "VAR-00001", Row{"stock_qty": "5"}))

	got, err := m.Get(ctx, Variants, "VAR-00001")
	require.NoError(t, err)
	require.Equal(t, Timestamp(base), got["created_at"])
	require.Equal(t, Timestamp(base.Add(time.Hour)), got["updated_at"])
}
