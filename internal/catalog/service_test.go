package catalog

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

func seedDesign(t *testing.T, s *Service) Design {
	t.Helper()
	design, err := s.CreateDesign(context.Background(), CreateDesignInput{
		Name:     "Peacock Pendant",
		Category: "Pendant",
	})
	require.NoError(t, err)
	return design
}

func TestCreateDesignAssignsID(t *testing.T) {
	s := newService()

	design := seedDesign(t, s)
	require.Equal(t, "DES-00001", design.DesignID)
	require.Equal(t, string(DesignActive), design.Status)
	require.NotEmpty(t, design.CreatedAt)

	second, err := s.CreateDesign(context.Background(), CreateDesignInput{Name: "Lotus Ring"})
	require.NoError(t, err)
	require.Equal(t, "DES-00002", second.DesignID)
}

func TestCreateDesignRequiresName(t *testing.T) {
	s := newService()

	_, err := s.CreateDesign(context.Background(), CreateDesignInput{})
	require.ErrorIs(t, err, shared.ErrValidation)
}

func TestCreateVariantDerivesCostFields(t *testing.T) {
	ctx := context.Background()
	s := newService()
	design := seedDesign(t, s)

	v, err := s.CreateVariant(ctx, CreateVariantInput{
		DesignID:      design.DesignID,
		MaterialCost:  1200,
		MakingCost:    500,
		FinishingCost: 20,
		PackingCost:   30,
		DesignCost:    250,
		SellingPrice:  2500,
	})
	require.NoError(t, err)
	require.Equal(t, "VAR-00001", v.VariantID)
	require.Equal(t, 2000.0, v.FinalCost)
	require.Equal(t, 500.0, v.Profit)
	require.Equal(t, 20.0, v.ProfitMargin)
}

func TestCreateVariantUnknownDesign(t *testing.T) {
	s := newService()

	_, err := s.CreateVariant(context.Background(), CreateVariantInput{DesignID: "DES-99999"})
	require.ErrorIs(t, err, shared.ErrNotFound)
}

func TestUpdateVariantRecomputesDerivedFields(t *testing.T) {
	ctx := context.Background()
	s := newService()
	design := seedDesign(t, s)

	v, err := s.CreateVariant(ctx, CreateVariantInput{
		DesignID:     design.DesignID,
		MaterialCost: 1000,
		SellingPrice: 1500,
	})
	require.NoError(t, err)
	require.Equal(t, 1000.0, v.FinalCost)

	making := 200.0
	updated, err := s.UpdateVariant(ctx, v.VariantID, UpdateVariantInput{MakingCost: &making})
	require.NoError(t, err)
	require.Equal(t, 1200.0, updated.FinalCost)
	require.Equal(t, 300.0, updated.Profit)
	require.Equal(t, 20.0, updated.ProfitMargin)
	require.Equal(t, 1000.0, updated.MaterialCost, "untouched component survives the merge")
}

func TestVariantsFilterByDesignAndFinish(t *testing.T) {
	ctx := context.Background()
	s := newService()
	a := seedDesign(t, s)
	b := seedDesign(t, s)

	_, err := s.CreateVariant(ctx, CreateVariantInput{DesignID: a.DesignID, Finish: "Gold"})
	require.NoError(t, err)
	_, err = s.CreateVariant(ctx, CreateVariantInput{DesignID: a.DesignID, Finish: "Silver"})
	require.NoError(t, err)
	_, err = s.CreateVariant(ctx, CreateVariantInput{DesignID: b.DesignID, Finish: "Gold"})
	require.NoError(t, err)

	variants, err := s.Variants(ctx, VariantQuery{DesignID: a.DesignID})
	require.NoError(t, err)
	require.Len(t, variants, 2)

	variants, err = s.Variants(ctx, VariantQuery{DesignID: a.DesignID, Finish: "Gold"})
	require.NoError(t, err)
	require.Len(t, variants, 1)
}

func TestDeleteVariantIsSoft(t *testing.T) {
	ctx := context.Background()
	s := newService()
	design := seedDesign(t, s)

	v, err := s.CreateVariant(ctx, CreateVariantInput{DesignID: design.DesignID})
	require.NoError(t, err)

	require.NoError(t, s.DeleteVariant(ctx, v.VariantID))

	// Row survives with Inactive status and drops out of the default listing.
	got, err := s.Variant(ctx, v.VariantID)
	require.NoError(t, err)
	require.Equal(t, string(VariantInactive), got.Status)

	variants, err := s.Variants(ctx, VariantQuery{})
	require.NoError(t, err)
	require.Empty(t, variants)
}
