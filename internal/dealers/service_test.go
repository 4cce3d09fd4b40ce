package dealers

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/BankimKamila185/Bankim-Jewellery/internal/shared"
	"github.com/BankimKamila185/Bankim-Jewellery/internal/store"
)

func newService() *Service {
	return NewService(store.NewMemory(), shared.NewKeyedMutex(), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestCreateDealerAssignsCodeAndBalance(t *testing.T) {
	ctx := context.Background()
	s := newService()

	d, err := s.Create(ctx, CreateInput{
		DealerType:     "BUY",
		DealerCategory: "Material",
		Name:           "Shree Gold Works",
		OpeningBalance: 1500,
	})
	require.NoError(t, err)
	require.Equal(t, "DLR-00001", d.DealerID)
	require.Equal(t, "MAT-0001", d.DealerCode)
	require.Equal(t, 1500.0, d.CurrentBalance, "running balance starts at the opening balance")

	second, err := s.Create(ctx, CreateInput{
		DealerType:     "BUY",
		DealerCategory: "Material",
		Name:           "Kamal Refiners",
	})
	require.NoError(t, err)
	require.Equal(t, "MAT-0002", second.DealerCode)
}

func TestCreateDealerCodePrefixes(t *testing.T) {
	ctx := context.Background()
	s := newService()

	cases := []struct {
		dealerType string
		category   string
		code       string
	}{
		{"BUY", "Making", "MKG-0001"},
		{"BUY", "Finishing", "FIN-0001"},
		{"BUY", "Packing", "PKG-0001"},
		{"SELL", "Customer", "CUS-0001"},
		{"SELL", "Wholesale", "DLR-0001"},
	}
	for _, tc := range cases {
		d, err := s.Create(ctx, CreateInput{
			DealerType:     tc.dealerType,
			DealerCategory: tc.category,
			Name:           tc.code,
		})
		require.NoError(t, err)
		require.Equal(t, tc.code, d.DealerCode)
	}
}

func TestCreateDealerValidation(t *testing.T) {
	ctx := context.Background()
	s := newService()

	_, err := s.Create(ctx, CreateInput{DealerType: "BUY", DealerCategory: "Material"})
	require.ErrorIs(t, err, shared.ErrValidation)

	_, err = s.Create(ctx, CreateInput{DealerType: "LEND", DealerCategory: "Material", Name: "X"})
	require.ErrorIs(t, err, shared.ErrValidation)
}

func TestDealersFilter(t *testing.T) {
	ctx := context.Background()
	s := newService()

	_, err := s.Create(ctx, CreateInput{DealerType: "BUY", DealerCategory: "Material", Name: "A"})
	require.NoError(t, err)
	_, err = s.Create(ctx, CreateInput{DealerType: "SELL", DealerCategory: "Customer", Name: "B"})
	require.NoError(t, err)

	buy, err := s.Dealers(ctx, Query{DealerType: "BUY"})
	require.NoError(t, err)
	require.Len(t, buy, 1)
	require.Equal(t, "A", buy[0].Name)

	all, err := s.Dealers(ctx, Query{})
	require.NoError(t, err)
	require.Len(t, all, 2)
}

func TestDeleteDealerIsSoft(t *testing.T) {
	ctx := context.Background()
	s := newService()

	d, err := s.Create(ctx, CreateInput{DealerType: "BUY", DealerCategory: "Material", Name: "A"})
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, d.DealerID))

	got, err := s.Dealer(ctx, d.DealerID)
	require.NoError(t, err)
	require.Equal(t, "Deleted", got.Status)

	active, err := s.Dealers(ctx, Query{})
	require.NoError(t, err)
	require.Empty(t, active)
}

func TestGenerateCodePreviewDoesNotReserve(t *testing.T) {
	ctx := context.Background()
	s := newService()

	code, err := s.GenerateCode(ctx, "SELL", "Customer")
	require.NoError(t, err)
	require.Equal(t, "CUS-0001", code)

	// Preview again; nothing was written so the code is unchanged.
	code, err = s.GenerateCode(ctx, "SELL", "Customer")
	require.NoError(t, err)
	require.Equal(t, "CUS-0001", code)
}
