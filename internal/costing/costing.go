// Package costing holds the pure cost arithmetic shared by the catalog,
// the stage sequencer and invoice creation. No I/O; missing components are
// treated as zero.
package costing

import "math"

// Costs are the five cost components of a product variant.
type Costs struct {
	Material  float64
	Making    float64
	Finishing float64
	Packing   float64
	Design    float64
}

// FinalCost sums the five components.
func FinalCost(c Costs) float64 {
	return c.Material + c.Making + c.Finishing + c.Packing + c.Design
}

// Profit is selling price minus final cost.
func Profit(sellingPrice, finalCost float64) float64 {
	return sellingPrice - finalCost
}

// ProfitMargin is profit as a percentage of selling price, rounded to two
// decimals; zero when the selling price is not positive.
func ProfitMargin(sellingPrice, profit float64) float64 {
	if sellingPrice <= 0 {
		return 0
	}
	return Round2(profit / sellingPrice * 100)
}

// Breakdown carries every derived cost metric for a variant.
type Breakdown struct {
	Costs
	FinalCost    float64
	SellingPrice float64
	Profit       float64
	ProfitMargin float64
}

// Derive computes the full breakdown for a component set and selling price.
func Derive(c Costs, sellingPrice float64) Breakdown {
	finalCost := FinalCost(c)
	profit := Profit(sellingPrice, finalCost)
	return Breakdown{
		Costs:        c,
		FinalCost:    finalCost,
		SellingPrice: sellingPrice,
		Profit:       profit,
		ProfitMargin: ProfitMargin(sellingPrice, profit),
	}
}

// LineItem is the quantity/price pair of one invoice line.
type LineItem struct {
	Quantity  float64
	UnitPrice float64
}

// InvoiceTotals are the derived monetary totals of an invoice.
type InvoiceTotals struct {
	SubTotal        float64
	TaxPercent      float64
	TaxAmount       float64
	DiscountPercent float64
	DiscountAmount  float64
	GrandTotal      float64
}

// Totals computes invoice totals from line items; all monetary outputs are
// rounded to two decimals.
func Totals(items []LineItem, taxPercent, discountPercent float64) InvoiceTotals {
	var subTotal float64
	for _, item := range items {
		subTotal += item.Quantity * item.UnitPrice
	}
	taxAmount := subTotal * taxPercent / 100
	discountAmount := subTotal * discountPercent / 100
	return InvoiceTotals{
		SubTotal:        Round2(subTotal),
		TaxPercent:      taxPercent,
		TaxAmount:       Round2(taxAmount),
		DiscountPercent: discountPercent,
		DiscountAmount:  Round2(discountAmount),
		GrandTotal:      Round2(subTotal + taxAmount - discountAmount),
	}
}

// Round2 rounds to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
