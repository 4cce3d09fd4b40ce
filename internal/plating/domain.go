// Package plating manages the plating rate catalog and plating jobs.
// Assigning a job claims the variant's Pending PLATING stage (or creates
// one); completing a job drives the sequencer's cost-posting and advance.
package plating

import "github.com/BankimKamila185/Bankim-Jewellery/internal/store"

// JobStatus is the plating job lifecycle.
type JobStatus string

const (
	JobAssigned   JobStatus = "Assigned"
	JobInProgress JobStatus = "InProgress"
	JobCompleted  JobStatus = "Completed"
)

// Rate is one per-kg plating rate.
type Rate struct {
	RateID         string  `json:"rate_id"`
	PlatingType    string  `json:"plating_type"`
	RatePerKg      float64 `json:"rate_per_kg"`
	Unit           string  `json:"unit"`
	EffectiveFrom  string  `json:"effective_from"`
	VendorDealerID string  `json:"vendor_dealer_id"`
	Status         string  `json:"status"`
	CreatedAt      string  `json:"created_at"`
	UpdatedAt      string  `json:"updated_at"`
}

func rateFromRow(r store.Row) Rate {
	return Rate{
		RateID:         r["rate_id"],
		PlatingType:    r["plating_type"],
		RatePerKg:      r.Float("rate_per_kg"),
		Unit:           r["unit"],
		EffectiveFrom:  r["effective_from"],
		VendorDealerID: r["vendor_dealer_id"],
		Status:         r["status"],
		CreatedAt:      r["created_at"],
		UpdatedAt:      r["updated_at"],
	}
}

// Job is one plating assignment tied to a PLATING progress entry.
type Job struct {
	JobID          string  `json:"job_id"`
	ProgressID     string  `json:"progress_id"`
	VariantID      string  `json:"variant_id"`
	DesignID       string  `json:"design_id"`
	DealerID       string  `json:"dealer_id"`
	Quantity       int     `json:"quantity"`
	PlatingType    string  `json:"plating_type"`
	WeightInKg     float64 `json:"weight_in_kg"`
	RatePerKg      float64 `json:"rate_per_kg"`
	CalculatedCost float64 `json:"calculated_cost"`
	Status         string  `json:"status"`
	StartDate      string  `json:"start_date"`
	EndDate        string  `json:"end_date"`
	Notes          string  `json:"notes"`
	CreatedAt      string  `json:"created_at"`
	UpdatedAt      string  `json:"updated_at"`
}

func jobFromRow(r store.Row) Job {
	return Job{
		JobID:          r["job_id"],
		ProgressID:     r["progress_id"],
		VariantID:      r["variant_id"],
		DesignID:       r["design_id"],
		DealerID:       r["dealer_id"],
		Quantity:       r.Int("quantity"),
		PlatingType:    r["plating_type"],
		WeightInKg:     r.Float("weight_in_kg"),
		RatePerKg:      r.Float("rate_per_kg"),
		CalculatedCost: r.Float("calculated_cost"),
		Status:         r["status"],
		StartDate:      r["start_date"],
		EndDate:        r["end_date"],
		Notes:          r["notes"],
		CreatedAt:      r["created_at"],
		UpdatedAt:      r["updated_at"],
	}
}

// CreateRateInput is the request payload for a new plating rate.
type CreateRateInput struct {
	PlatingType    string  `json:"plating_type" validate:"required"`
	RatePerKg      float64 `json:"rate_per_kg" validate:"gte=0"`
	Unit           string  `json:"unit"`
	EffectiveFrom  string  `json:"effective_from"`
	VendorDealerID string  `json:"vendor_dealer_id"`
}

// UpdateRateInput is a partial rate update; nil fields are untouched.
type UpdateRateInput struct {
	RatePerKg      *float64 `json:"rate_per_kg"`
	Unit           *string  `json:"unit"`
	EffectiveFrom  *string  `json:"effective_from"`
	VendorDealerID *string  `json:"vendor_dealer_id"`
	Status         *string  `json:"status"`
}

func (in UpdateRateInput) fields() store.Row {
	fields := store.Row{}
	if in.RatePerKg != nil {
		fields["rate_per_kg"] = store.FormatFloat(*in.RatePerKg)
	}
	if in.Unit != nil {
		fields["unit"] = *in.Unit
	}
	if in.EffectiveFrom != nil {
		fields["effective_from"] = *in.EffectiveFrom
	}
	if in.VendorDealerID != nil {
		fields["vendor_dealer_id"] = *in.VendorDealerID
	}
	if in.Status != nil {
		fields["status"] = *in.Status
	}
	return fields
}

// AssignInput is the request payload for a new plating job. The design
// reference is denormalized from the variant, never client-supplied.
type AssignInput struct {
	VariantID   string  `json:"variant_id" validate:"required"`
	DealerID    string  `json:"dealer_id" validate:"required"`
	PlatingType string  `json:"plating_type" validate:"required"`
	WeightInKg  float64 `json:"weight_in_kg" validate:"gt=0"`
	Quantity    int     `json:"quantity" validate:"gte=0"`
	Notes       string  `json:"notes"`
}
