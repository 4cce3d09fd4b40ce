// Package catalog manages jewellery designs and their product variants.
// Variant cost fields (final cost, profit, margin) are derived, never
// client-supplied; every write recomputes them.
package catalog

import (
	"github.com/BankimKamila185/Bankim-Jewellery/internal/costing"
	"github.com/BankimKamila185/Bankim-Jewellery/internal/store"
)

// DesignStatus is the lifecycle status of a design.
type DesignStatus string

const (
	DesignActive   DesignStatus = "Active"
	DesignInactive DesignStatus = "Inactive"
)

// VariantStatus is the lifecycle status of a product variant.
type VariantStatus string

const (
	VariantActive     VariantStatus = "Active"
	VariantInactive   VariantStatus = "Inactive"
	VariantOutOfStock VariantStatus = "OutOfStock"
)

// Design is a catalog entry that variants are manufactured from.
type Design struct {
	DesignID       string  `json:"design_id"`
	Name           string  `json:"name"`
	Category       string  `json:"category"`
	DesignerID     string  `json:"designer_id"`
	BaseDesignCost float64 `json:"base_design_cost"`
	ImageDriveLink string  `json:"image_drive_link"`
	SpecDocLink    string  `json:"spec_doc_link"`
	Notes          string  `json:"notes"`
	Status         string  `json:"status"`
	CreatedAt      string  `json:"created_at"`
	UpdatedAt      string  `json:"updated_at"`
}

func designFromRow(r store.Row) Design {
	return Design{
		DesignID:       r["design_id"],
		Name:           r["name"],
		Category:       r["category"],
		DesignerID:     r["designer_id"],
		BaseDesignCost: r.Float("base_design_cost"),
		ImageDriveLink: r["image_drive_link"],
		SpecDocLink:    r["spec_doc_link"],
		Notes:          r["notes"],
		Status:         r["status"],
		CreatedAt:      r["created_at"],
		UpdatedAt:      r["updated_at"],
	}
}

// Variant is one physical SKU of a design, carrying the five cost
// components and the derived pricing fields.
type Variant struct {
	VariantID      string  `json:"variant_id"`
	DesignID       string  `json:"design_id"`
	VariantCode    string  `json:"variant_code"`
	Size           string  `json:"size"`
	Finish         string  `json:"finish"`
	MaterialCost   float64 `json:"material_cost"`
	MakingCost     float64 `json:"making_cost"`
	FinishingCost  float64 `json:"finishing_cost"`
	PackingCost    float64 `json:"packing_cost"`
	DesignCost     float64 `json:"design_cost"`
	FinalCost      float64 `json:"final_cost"`
	SellingPrice   float64 `json:"selling_price"`
	Profit         float64 `json:"profit"`
	ProfitMargin   float64 `json:"profit_margin"`
	StockQty       int     `json:"stock_qty"`
	ImageDriveLink string  `json:"image_drive_link"`
	Notes          string  `json:"notes"`
	Status         string  `json:"status"`
	CreatedAt      string  `json:"created_at"`
	UpdatedAt      string  `json:"updated_at"`
}

func variantFromRow(r store.Row) Variant {
	return Variant{
		VariantID:      r["variant_id"],
		DesignID:       r["design_id"],
		VariantCode:    r["variant_code"],
		Size:           r["size"],
		Finish:         r["finish"],
		MaterialCost:   r.Float("material_cost"),
		MakingCost:     r.Float("making_cost"),
		FinishingCost:  r.Float("finishing_cost"),
		PackingCost:    r.Float("packing_cost"),
		DesignCost:     r.Float("design_cost"),
		FinalCost:      r.Float("final_cost"),
		SellingPrice:   r.Float("selling_price"),
		Profit:         r.Float("profit"),
		ProfitMargin:   r.Float("profit_margin"),
		StockQty:       r.Int("stock_qty"),
		ImageDriveLink: r["image_drive_link"],
		Notes:          r["notes"],
		Status:         r["status"],
		CreatedAt:      r["created_at"],
		UpdatedAt:      r["updated_at"],
	}
}

// CostFields recomputes the derived cost columns from a variant row whose
// component or price cells may have just changed. Shared with the stage
// sequencer, which posts stage costs onto variants.
func CostFields(merged store.Row) store.Row {
	b := costing.Derive(costing.Costs{
		Material:  merged.Float("material_cost"),
		Making:    merged.Float("making_cost"),
		Finishing: merged.Float("finishing_cost"),
		Packing:   merged.Float("packing_cost"),
		Design:    merged.Float("design_cost"),
	}, merged.Float("selling_price"))

	return store.Row{
		"final_cost":    store.FormatFloat(b.FinalCost),
		"profit":        store.FormatFloat(b.Profit),
		"profit_margin": store.FormatFloat(b.ProfitMargin),
	}
}

// CreateDesignInput is the request payload for a new design.
type CreateDesignInput struct {
	Name           string  `json:"name" validate:"required"`
	Category       string  `json:"category"`
	DesignerID     string  `json:"designer_id"`
	BaseDesignCost float64 `json:"base_design_cost" validate:"gte=0"`
	ImageDriveLink string  `json:"image_drive_link"`
	SpecDocLink    string  `json:"spec_doc_link"`
	Notes          string  `json:"notes"`
}

// UpdateDesignInput is a partial design update; nil fields are untouched.
type UpdateDesignInput struct {
	Name           *string  `json:"name"`
	Category       *string  `json:"category"`
	DesignerID     *string  `json:"designer_id"`
	BaseDesignCost *float64 `json:"base_design_cost"`
	ImageDriveLink *string  `json:"image_drive_link"`
	SpecDocLink    *string  `json:"spec_doc_link"`
	Notes          *string  `json:"notes"`
	Status         *string  `json:"status"`
}

func (in UpdateDesignInput) fields() store.Row {
	fields := store.Row{}
	setString(fields, "name", in.Name)
	setString(fields, "category", in.Category)
	setString(fields, "designer_id", in.DesignerID)
	setFloat(fields, "base_design_cost", in.BaseDesignCost)
	setString(fields, "image_drive_link", in.ImageDriveLink)
	setString(fields, "spec_doc_link", in.SpecDocLink)
	setString(fields, "notes", in.Notes)
	setString(fields, "status", in.Status)
	return fields
}

// CreateVariantInput is the request payload for a new variant.
type CreateVariantInput struct {
	DesignID       string  `json:"design_id" validate:"required"`
	VariantCode    string  `json:"variant_code"`
	Size           string  `json:"size"`
	Finish         string  `json:"finish"`
	MaterialCost   float64 `json:"material_cost" validate:"gte=0"`
	MakingCost     float64 `json:"making_cost" validate:"gte=0"`
	FinishingCost  float64 `json:"finishing_cost" validate:"gte=0"`
	PackingCost    float64 `json:"packing_cost" validate:"gte=0"`
	DesignCost     float64 `json:"design_cost" validate:"gte=0"`
	SellingPrice   float64 `json:"selling_price" validate:"gte=0"`
	StockQty       int     `json:"stock_qty" validate:"gte=0"`
	ImageDriveLink string  `json:"image_drive_link"`
	Notes          string  `json:"notes"`
}

// UpdateVariantInput is a partial variant update; nil fields are untouched.
// Derived cost fields are recomputed regardless of which fields change.
type UpdateVariantInput struct {
	VariantCode    *string  `json:"variant_code"`
	Size           *string  `json:"size"`
	Finish         *string  `json:"finish"`
	MaterialCost   *float64 `json:"material_cost"`
	MakingCost     *float64 `json:"making_cost"`
	FinishingCost  *float64 `json:"finishing_cost"`
	PackingCost    *float64 `json:"packing_cost"`
	DesignCost     *float64 `json:"design_cost"`
	SellingPrice   *float64 `json:"selling_price"`
	StockQty       *int     `json:"stock_qty"`
	ImageDriveLink *string  `json:"image_drive_link"`
	Notes          *string  `json:"notes"`
	Status         *string  `json:"status"`
}

func (in UpdateVariantInput) fields() store.Row {
	fields := store.Row{}
	setString(fields, "variant_code", in.VariantCode)
	setString(fields, "size", in.Size)
	setString(fields, "finish", in.Finish)
	setFloat(fields, "material_cost", in.MaterialCost)
	setFloat(fields, "making_cost", in.MakingCost)
	setFloat(fields, "finishing_cost", in.FinishingCost)
	setFloat(fields, "packing_cost", in.PackingCost)
	setFloat(fields, "design_cost", in.DesignCost)
	setFloat(fields, "selling_price", in.SellingPrice)
	setInt(fields, "stock_qty", in.StockQty)
	setString(fields, "image_drive_link", in.ImageDriveLink)
	setString(fields, "notes", in.Notes)
	setString(fields, "status", in.Status)
	return fields
}

// VariantQuery filters variant listings.
type VariantQuery struct {
	DesignID string
	Finish   string
	Status   string
}

func setString(fields store.Row, key string, v *string) {
	if v != nil {
		fields[key] = *v
	}
}

func setFloat(fields store.Row, key string, v *float64) {
	if v != nil {
		fields[key] = store.FormatFloat(*v)
	}
}

func setInt(fields store.Row, key string, v *int) {
	if v != nil {
		fields[key] = store.FormatInt(*v)
	}
}
