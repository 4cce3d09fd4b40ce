// Package dealers manages supplier (BUY) and customer (SELL) accounts.
// A dealer's current balance is a running account mutated only by the
// ledger; this package initialises it from the opening balance and never
// touches it afterwards.
package dealers

import "github.com/BankimKamila185/Bankim-Jewellery/internal/store"

// Type partitions dealers into suppliers and customers.
type Type string

const (
	TypeBuy  Type = "BUY"
	TypeSell Type = "SELL"
)

// Dealer is one account.
type Dealer struct {
	DealerID       string  `json:"dealer_id"`
	DealerCode     string  `json:"dealer_code"`
	DealerType     string  `json:"dealer_type"`
	DealerCategory string  `json:"dealer_category"`
	Name           string  `json:"name"`
	ContactPerson  string  `json:"contact_person"`
	Phone          string  `json:"phone"`
	Email          string  `json:"email"`
	Address        string  `json:"address"`
	GSTIN          string  `json:"gstin"`
	BankName       string  `json:"bank_name"`
	AccountNo      string  `json:"account_no"`
	IFSC           string  `json:"ifsc"`
	OpeningBalance float64 `json:"opening_balance"`
	CurrentBalance float64 `json:"current_balance"`
	Notes          string  `json:"notes"`
	Status         string  `json:"status"`
	CreatedAt      string  `json:"created_at"`
	UpdatedAt      string  `json:"updated_at"`
}

func dealerFromRow(r store.Row) Dealer {
	return Dealer{
		DealerID:       r["dealer_id"],
		DealerCode:     r["dealer_code"],
		DealerType:     r["dealer_type"],
		DealerCategory: r["dealer_category"],
		Name:           r["name"],
		ContactPerson:  r["contact_person"],
		Phone:          r["phone"],
		Email:          r["email"],
		Address:        r["address"],
		GSTIN:          r["gstin"],
		BankName:       r["bank_name"],
		AccountNo:      r["account_no"],
		IFSC:           r["ifsc"],
		OpeningBalance: r.Float("opening_balance"),
		CurrentBalance: r.Float("current_balance"),
		Notes:          r["notes"],
		Status:         r["status"],
		CreatedAt:      r["created_at"],
		UpdatedAt:      r["updated_at"],
	}
}

// CreateInput is the request payload for a new dealer.
type CreateInput struct {
	DealerType     string  `json:"dealer_type" validate:"required,oneof=BUY SELL"`
	DealerCategory string  `json:"dealer_category" validate:"required"`
	Name           string  `json:"name" validate:"required"`
	ContactPerson  string  `json:"contact_person"`
	Phone          string  `json:"phone"`
	Email          string  `json:"email" validate:"omitempty,email"`
	Address        string  `json:"address"`
	GSTIN          string  `json:"gstin"`
	BankName       string  `json:"bank_name"`
	AccountNo      string  `json:"account_no"`
	IFSC           string  `json:"ifsc"`
	OpeningBalance float64 `json:"opening_balance"`
	Notes          string  `json:"notes"`
}

// UpdateInput is a partial dealer update; nil fields are untouched. Balance
// fields are deliberately absent: only the ledger moves balances.
type UpdateInput struct {
	DealerCategory *string `json:"dealer_category"`
	Name           *string `json:"name"`
	ContactPerson  *string `json:"contact_person"`
	Phone          *string `json:"phone"`
	Email          *string `json:"email"`
	Address        *string `json:"address"`
	GSTIN          *string `json:"gstin"`
	BankName       *string `json:"bank_name"`
	AccountNo      *string `json:"account_no"`
	IFSC           *string `json:"ifsc"`
	Notes          *string `json:"notes"`
	Status         *string `json:"status"`
}

func (in UpdateInput) fields() store.Row {
	fields := store.Row{}
	set := func(key string, v *string) {
		if v != nil {
			fields[key] = *v
		}
	}
	set("dealer_category", in.DealerCategory)
	set("name", in.Name)
	set("contact_person", in.ContactPerson)
	set("phone", in.Phone)
	set("email", in.Email)
	set("address", in.Address)
	set("gstin", in.GSTIN)
	set("bank_name", in.BankName)
	set("account_no", in.AccountNo)
	set("ifsc", in.IFSC)
	set("notes", in.Notes)
	set("status", in.Status)
	return fields
}

// Query filters dealer listings. Status defaults to Active.
type Query struct {
	DealerType string
	Category   string
	Status     string
}
