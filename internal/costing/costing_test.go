package costing

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDerive(t *testing.T) {
	b := Derive(Costs{
		Material:  1200,
		Making:    500,
		Finishing: 20,
		Packing:   30,
		Design:    250,
	}, 2500)

	require.Equal(t, 2000.0, b.FinalCost)
	require.Equal(t, 500.0, b.Profit)
	require.Equal(t, 20.0, b.ProfitMargin)
}

func TestDeriveMissingComponentsAreZero(t *testing.T) {
	b := Derive(Costs{Material: 100}, 0)

	require.Equal(t, 100.0, b.FinalCost)
	require.Equal(t, -100.0, b.Profit)
	require.Equal(t, 0.0, b.ProfitMargin, "margin is zero without a selling price")
}

func TestProfitMarginRounds(t *testing.T) {
	// 1/3 of the price is profit.
	require.Equal(t, 33.33, ProfitMargin(300, 100))
	require.Equal(t, 0.0, ProfitMargin(-10, 5))
}

func TestTotals(t *testing.T) {
	got := Totals([]LineItem{
		{Quantity: 2, UnitPrice: 1500},
		{Quantity: 1, UnitPrice: 700},
	}, 3, 5)

	require.Equal(t, 3700.0, got.SubTotal)
	require.Equal(t, 111.0, got.TaxAmount)
	require.Equal(t, 185.0, got.DiscountAmount)
	require.Equal(t, 3626.0, got.GrandTotal)
}

func TestTotalsNoItems(t *testing.T) {
	got := Totals(nil, 18, 0)

	require.Equal(t, 0.0, got.SubTotal)
	require.Equal(t, 0.0, got.GrandTotal)
}

func TestRound2(t *testing.T) {
	require.InDelta(t, 10.57, Round2(10.567), 1e-9)
	require.InDelta(t, -2.33, Round2(-2.334), 1e-9)
	require.Equal(t, 111.0, Round2(111))
}
