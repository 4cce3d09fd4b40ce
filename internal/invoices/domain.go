// Package invoices creates purchase and sales invoices with line items.
// The payment aggregate fields (amount_paid, balance_due, payment_status)
// are a cache owned by the ledger recompute; this package only initialises
// them and never edits them afterwards.
package invoices

import "github.com/BankimKamila185/Bankim-Jewellery/internal/store"

// Invoice types accepted on creation.
const (
	TypeMaterial  = "Material"
	TypeMaking    = "Making"
	TypeFinishing = "Finishing"
	TypePacking   = "Packing"
	TypeSales     = "Sales"
)

// Payment status values derived by the ledger.
const (
	StatusUnpaid  = "Unpaid"
	StatusPartial = "Partial"
	StatusPaid    = "Paid"
)

// Invoice is one invoice header.
type Invoice struct {
	InvoiceID       string  `json:"invoice_id"`
	InvoiceNumber   string  `json:"invoice_number"`
	InvoiceType     string  `json:"invoice_type"`
	DealerID        string  `json:"dealer_id"`
	InvoiceDate     string  `json:"invoice_date"`
	DueDate         string  `json:"due_date"`
	SubTotal        float64 `json:"sub_total"`
	TaxPercent      float64 `json:"tax_percent"`
	TaxAmount       float64 `json:"tax_amount"`
	DiscountPercent float64 `json:"discount_percent"`
	DiscountAmount  float64 `json:"discount_amount"`
	GrandTotal      float64 `json:"grand_total"`
	AmountPaid      float64 `json:"amount_paid"`
	BalanceDue      float64 `json:"balance_due"`
	PaymentStatus   string  `json:"payment_status"`
	BillImageLink   string  `json:"bill_image_link"`
	Notes           string  `json:"notes"`
	CreatedAt       string  `json:"created_at"`
	UpdatedAt       string  `json:"updated_at"`

	Items []Item `json:"items,omitempty"`
}

func invoiceFromRow(r store.Row) Invoice {
	return Invoice{
		InvoiceID:       r["invoice_id"],
		InvoiceNumber:   r["invoice_number"],
		InvoiceType:     r["invoice_type"],
		DealerID:        r["dealer_id"],
		InvoiceDate:     r["invoice_date"],
		DueDate:         r["due_date"],
		SubTotal:        r.Float("sub_total"),
		TaxPercent:      r.Float("tax_percent"),
		TaxAmount:       r.Float("tax_amount"),
		DiscountPercent: r.Float("discount_percent"),
		DiscountAmount:  r.Float("discount_amount"),
		GrandTotal:      r.Float("grand_total"),
		AmountPaid:      r.Float("amount_paid"),
		BalanceDue:      r.Float("balance_due"),
		PaymentStatus:   r["payment_status"],
		BillImageLink:   r["bill_image_link"],
		Notes:           r["notes"],
		CreatedAt:       r["created_at"],
		UpdatedAt:       r["updated_at"],
	}
}

// Item is one invoice line.
type Item struct {
	ItemID      string  `json:"item_id"`
	InvoiceID   string  `json:"invoice_id"`
	ProductID   string  `json:"product_id"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	TotalPrice  float64 `json:"total_price"`
	CostType    string  `json:"cost_type"`
	Notes       string  `json:"notes"`
}

func itemFromRow(r store.Row) Item {
	return Item{
		ItemID:      r["item_id"],
		InvoiceID:   r["invoice_id"],
		ProductID:   r["product_id"],
		Description: r["description"],
		Quantity:    r.Float("quantity"),
		UnitPrice:   r.Float("unit_price"),
		TotalPrice:  r.Float("total_price"),
		CostType:    r["cost_type"],
		Notes:       r["notes"],
	}
}

// ItemInput is one line of a create request.
type ItemInput struct {
	ProductID   string  `json:"product_id" validate:"required"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity" validate:"gt=0"`
	UnitPrice   float64 `json:"unit_price" validate:"gte=0"`
	CostType    string  `json:"cost_type"`
	Notes       string  `json:"notes"`
}

// CreateInput is the request payload for a new invoice.
type CreateInput struct {
	InvoiceType     string      `json:"invoice_type" validate:"required,oneof=Material Making Finishing Packing Sales"`
	DealerID        string      `json:"dealer_id" validate:"required"`
	InvoiceDate     string      `json:"invoice_date"`
	DueDate         string      `json:"due_date"`
	TaxPercent      float64     `json:"tax_percent" validate:"gte=0"`
	DiscountPercent float64     `json:"discount_percent" validate:"gte=0"`
	BillImageLink   string      `json:"bill_image_link"`
	Notes           string      `json:"notes"`
	Items           []ItemInput `json:"items" validate:"required,min=1,dive"`
}

// Query filters invoice listings.
type Query struct {
	InvoiceType string
	DealerID    string
}
