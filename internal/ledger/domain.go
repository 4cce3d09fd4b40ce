// Package ledger records payments and reconciles their effects: the
// dealer's running balance and the invoice payment aggregates. Payments are
// append-only; the invoice aggregates are a cache recomputed fresh from the
// full payment set on every change, which makes the recompute idempotent.
package ledger

import "github.com/BankimKamila185/Bankim-Jewellery/internal/store"

// Direction of money flow.
const (
	TypeIncoming = "IN"
	TypeOutgoing = "OUT"
)

// Payment target kinds.
const (
	RelatedToInvoice  = "INVOICE"
	RelatedToProgress = "PROGRESS"
)

// Invoice payment status values derived by the recompute.
const (
	StatusUnpaid  = "Unpaid"
	StatusPartial = "Partial"
	StatusPaid    = "Paid"
)

// Payment is one immutable ledger record.
type Payment struct {
	PaymentID   string  `json:"payment_id"`
	PaymentType string  `json:"payment_type"`
	RelatedTo   string  `json:"related_to"`
	InvoiceID   string  `json:"invoice_id"`
	ProgressID  string  `json:"progress_id"`
	DealerID    string  `json:"dealer_id"`
	Amount      float64 `json:"amount"`
	PaymentMode string  `json:"payment_mode"`
	ReferenceNo string  `json:"reference_no"`
	PaymentDate string  `json:"payment_date"`
	Notes       string  `json:"notes"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

func paymentFromRow(r store.Row) Payment {
	return Payment{
		PaymentID:   r["payment_id"],
		PaymentType: r["payment_type"],
		RelatedTo:   r["related_to"],
		InvoiceID:   r["invoice_id"],
		ProgressID:  r["progress_id"],
		DealerID:    r["dealer_id"],
		Amount:      r.Float("amount"),
		PaymentMode: r["payment_mode"],
		ReferenceNo: r["reference_no"],
		PaymentDate: r["payment_date"],
		Notes:       r["notes"],
		CreatedAt:   r["created_at"],
		UpdatedAt:   r["updated_at"],
	}
}

// CreateInput is the request payload for a new payment.
type CreateInput struct {
	PaymentType string  `json:"payment_type" validate:"required,oneof=IN OUT"`
	RelatedTo   string  `json:"related_to" validate:"required,oneof=INVOICE PROGRESS"`
	InvoiceID   string  `json:"invoice_id"`
	ProgressID  string  `json:"progress_id"`
	DealerID    string  `json:"dealer_id" validate:"required"`
	Amount      float64 `json:"amount" validate:"gt=0"`
	PaymentMode string  `json:"payment_mode"`
	ReferenceNo string  `json:"reference_no"`
	PaymentDate string  `json:"payment_date"`
	Notes       string  `json:"notes"`
}

// Filter narrows payment listings; zero fields match everything.
type Filter struct {
	InvoiceID  string
	DealerID   string
	ProgressID string
}
