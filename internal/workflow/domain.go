// Package workflow is the stage sequencer: it walks a product variant
// through the production stage catalog, one progress entry per stage
// occupancy, posting stage costs onto the variant as stages complete.
package workflow

import "github.com/BankimKamila185/Bankim-Jewellery/internal/store"

// ProgressStatus is the per-entry state machine.
type ProgressStatus string

const (
	StatusPending    ProgressStatus = "Pending"
	StatusInProgress ProgressStatus = "InProgress"
	StatusCompleted  ProgressStatus = "Completed"
)

// Stage codes referenced by the sequencer's cost posting.
const (
	StageOrdered = "ORDERED"
	StageMaking  = "MAKING"
	StagePlating = "PLATING"
	StagePacking = "PACKING"
)

// Stage is one step of the production workflow catalog.
type Stage struct {
	StageOrder   int    `json:"stage_order"`
	StageCode    string `json:"stage_code"`
	DisplayName  string `json:"display_name"`
	IsFinalStage bool   `json:"is_final_stage"`
}

// defaultStages is the compiled-in catalog used when the WorkflowStages
// collection is empty.
var defaultStages = []Stage{
	{StageOrder: 1, StageCode: "ORDERED", DisplayName: "Ordered"},
	{StageOrder: 2, StageCode: "MAKING", DisplayName: "Making"},
	{StageOrder: 3, StageCode: "PLATING", DisplayName: "Plating"},
	{StageOrder: 4, StageCode: "QUALITY_CHECK", DisplayName: "Quality Check"},
	{StageOrder: 5, StageCode: "PACKING", DisplayName: "Packing"},
	{StageOrder: 6, StageCode: "READY_TO_DISPATCH", DisplayName: "Ready to Dispatch"},
	{StageOrder: 7, StageCode: "DELIVERED", DisplayName: "Delivered", IsFinalStage: true},
}

func stageFromRow(r store.Row) Stage {
	return Stage{
		StageOrder:   r.Int("stage_order"),
		StageCode:    r["stage_code"],
		DisplayName:  r["display_name"],
		IsFinalStage: r.Bool("is_final_stage"),
	}
}

// costFieldForStage maps a stage code to the variant cost column its
// completion cost is posted into. Stages outside the map post no cost.
var costFieldForStage = map[string]string{
	StageMaking:  "making_cost",
	StagePlating: "finishing_cost",
	StagePacking: "packing_cost",
}

// costTypeForField names the cost type recorded in the audit trail.
var costTypeForField = map[string]string{
	"making_cost":    "Making",
	"finishing_cost": "Finishing",
	"packing_cost":   "Packing",
}

// ProgressEntry is the record of a variant occupying one stage.
type ProgressEntry struct {
	ProgressID       string  `json:"progress_id"`
	VariantID        string  `json:"variant_id"`
	DesignID         string  `json:"design_id"`
	StageCode        string  `json:"stage_code"`
	AssignedDealerID string  `json:"assigned_dealer_id"`
	Quantity         int     `json:"quantity"`
	Status           string  `json:"status"`
	Cost             float64 `json:"cost"`
	StartDate        string  `json:"start_date"`
	EndDate          string  `json:"end_date"`
	Remarks          string  `json:"remarks"`
	CreatedAt        string  `json:"created_at"`
	UpdatedAt        string  `json:"updated_at"`
}

func entryFromRow(r store.Row) ProgressEntry {
	return ProgressEntry{
		ProgressID:       r["progress_id"],
		VariantID:        r["variant_id"],
		DesignID:         r["design_id"],
		StageCode:        r["stage_code"],
		AssignedDealerID: r["assigned_dealer_id"],
		Quantity:         r.Int("quantity"),
		Status:           r["status"],
		Cost:             r.Float("cost"),
		StartDate:        r["start_date"],
		EndDate:          r["end_date"],
		Remarks:          r["remarks"],
		CreatedAt:        r["created_at"],
		UpdatedAt:        r["updated_at"],
	}
}

// StartInput is the request payload to begin tracking a variant.
type StartInput struct {
	VariantID        string `json:"variant_id" validate:"required"`
	StageCode        string `json:"stage_code"`
	AssignedDealerID string `json:"assigned_dealer_id"`
	Quantity         int    `json:"quantity" validate:"gte=0"`
	Remarks          string `json:"remarks"`
}

// CompleteInput carries the optional fields merged into an entry on
// completion. A positive cost triggers cost posting onto the variant.
type CompleteInput struct {
	Cost             float64 `json:"cost" validate:"gte=0"`
	AssignedDealerID string  `json:"assigned_dealer_id"`
	Remarks          string  `json:"remarks"`
}
