package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/BankimKamila185/Bankim-Jewellery/internal/costing"
	"github.com/BankimKamila185/Bankim-Jewellery/internal/shared"
	"github.com/BankimKamila185/Bankim-Jewellery/internal/store"
)

// Service handles design and variant business logic.
type Service struct {
	store  store.Store
	locks  *shared.KeyedMutex
	logger *slog.Logger
}

// NewService builds Service instance.
func NewService(st store.Store, locks *shared.KeyedMutex, logger *slog.Logger) *Service {
	return &Service{store: st, locks: locks, logger: logger}
}

// CreateDesign registers a new design with a generated DES id.
func (s *Service) CreateDesign(ctx context.Context, in CreateDesignInput) (Design, error) {
	if in.Name == "" {
		return Design{}, fmt.Errorf("%w: name is required", shared.ErrValidation)
	}

	unlock := s.locks.Lock(shared.PrefixLockKey("DES"))
	defer unlock()

	id, err := s.store.NextID(ctx, store.Designs, "DES")
	if err != nil {
		return Design{}, err
	}

	row := store.Row{
		"design_id":        id,
		"name":             in.Name,
		"category":         in.Category,
		"designer_id":      in.DesignerID,
		"base_design_cost": store.FormatFloat(in.BaseDesignCost),
		"image_drive_link": in.ImageDriveLink,
		"spec_doc_link":    in.SpecDocLink,
		"notes":            in.Notes,
		"status":           string(DesignActive),
	}
	if err := s.store.Append(ctx, store.Designs, row); err != nil {
		return Design{}, err
	}

	s.logger.Info("design created", slog.String("design_id", id))
	return s.Design(ctx, id)
}

// Design returns one design by id.
func (s *Service) Design(ctx context.Context, id string) (Design, error) {
	row, err := s.store.Get(ctx, store.Designs, id)
	if err != nil {
		return Design{}, err
	}
	return designFromRow(row), nil
}

// Designs lists designs, optionally filtered by status.
func (s *Service) Designs(ctx context.Context, status string) ([]Design, error) {
	rows, err := s.store.List(ctx, store.Designs)
	if err != nil {
		return nil, err
	}
	out := make([]Design, 0, len(rows))
	for _, r := range rows {
		if status != "" && r["status"] != status {
			continue
		}
		out = append(out, designFromRow(r))
	}
	return out, nil
}

// UpdateDesign applies a partial update to a design.
func (s *Service) UpdateDesign(ctx context.Context, id string, in UpdateDesignInput) (Design, error) {
	unlock := s.locks.Lock(shared.DesignLockKey(id))
	defer unlock()

	fields := in.fields()
	if len(fields) == 0 {
		return s.Design(ctx, id)
	}
	if err := s.store.UpdateByID(ctx, store.Designs, id, fields); err != nil {
		return Design{}, err
	}
	return s.Design(ctx, id)
}

// DeleteDesign soft-deletes a design by marking it Inactive.
func (s *Service) DeleteDesign(ctx context.Context, id string) error {
	unlock := s.locks.Lock(shared.DesignLockKey(id))
	defer unlock()

	return s.store.UpdateByID(ctx, store.Designs, id, store.Row{
		"status": string(DesignInactive),
	})
}

// DesignVariants lists the active variants of one design.
func (s *Service) DesignVariants(ctx context.Context, designID string) ([]Variant, error) {
	if _, err := s.store.Get(ctx, store.Designs, designID); err != nil {
		return nil, err
	}
	return s.Variants(ctx, VariantQuery{DesignID: designID})
}

// CreateVariant registers a new variant of an existing design. All derived
// cost fields are computed here; the client never supplies them.
func (s *Service) CreateVariant(ctx context.Context, in CreateVariantInput) (Variant, error) {
	if in.DesignID == "" {
		return Variant{}, fmt.Errorf("%w: design_id is required", shared.ErrValidation)
	}
	if _, err := s.store.Get(ctx, store.Designs, in.DesignID); err != nil {
		return Variant{}, err
	}

	unlock := s.locks.Lock(shared.PrefixLockKey("VAR"))
	defer unlock()

	id, err := s.store.NextID(ctx, store.Variants, "VAR")
	if err != nil {
		return Variant{}, err
	}

	b := costing.Derive(costing.Costs{
		Material:  in.MaterialCost,
		Making:    in.MakingCost,
		Finishing: in.FinishingCost,
		Packing:   in.PackingCost,
		Design:    in.DesignCost,
	}, in.SellingPrice)

	row := store.Row{
		"variant_id":       id,
		"design_id":        in.DesignID,
		"variant_code":     in.VariantCode,
		"size":             in.Size,
		"finish":           in.Finish,
		"material_cost":    store.FormatFloat(b.Material),
		"making_cost":      store.FormatFloat(b.Making),
		"finishing_cost":   store.FormatFloat(b.Finishing),
		"packing_cost":     store.FormatFloat(b.Packing),
		"design_cost":      store.FormatFloat(b.Design),
		"final_cost":       store.FormatFloat(b.FinalCost),
		"selling_price":    store.FormatFloat(b.SellingPrice),
		"profit":           store.FormatFloat(b.Profit),
		"profit_margin":    store.FormatFloat(b.ProfitMargin),
		"stock_qty":        store.FormatInt(in.StockQty),
		"image_drive_link": in.ImageDriveLink,
		"notes":            in.Notes,
		"status":           string(VariantActive),
	}
	if err := s.store.Append(ctx, store.Variants, row); err != nil {
		return Variant{}, err
	}

	s.logger.Info("variant created",
		slog.String("variant_id", id),
		slog.String("design_id", in.DesignID))
	return s.Variant(ctx, id)
}

// Variant returns one variant by id.
func (s *Service) Variant(ctx context.Context, id string) (Variant, error) {
	row, err := s.store.Get(ctx, store.Variants, id)
	if err != nil {
		return Variant{}, err
	}
	return variantFromRow(row), nil
}

// Variants lists variants matching the query. Status defaults to Active.
func (s *Service) Variants(ctx context.Context, q VariantQuery) ([]Variant, error) {
	if q.Status == "" {
		q.Status = string(VariantActive)
	}
	match := store.Row{"status": q.Status}
	if q.DesignID != "" {
		match["design_id"] = q.DesignID
	}
	rows, err := store.Filter(ctx, s.store, store.Variants, match)
	if err != nil {
		return nil, err
	}
	out := make([]Variant, 0, len(rows))
	for _, r := range rows {
		if q.Finish != "" && r["finish"] != q.Finish {
			continue
		}
		out = append(out, variantFromRow(r))
	}
	return out, nil
}

// UpdateVariant applies a partial update and recomputes the derived cost
// fields from the merged row.
func (s *Service) UpdateVariant(ctx context.Context, id string, in UpdateVariantInput) (Variant, error) {
	unlock := s.locks.Lock(shared.VariantLockKey(id))
	defer unlock()

	current, err := s.store.Get(ctx, store.Variants, id)
	if err != nil {
		return Variant{}, err
	}

	fields := in.fields()
	merged := current.Merge(fields)
	for k, v := range CostFields(merged) {
		fields[k] = v
	}

	if err := s.store.UpdateByID(ctx, store.Variants, id, fields); err != nil {
		return Variant{}, err
	}
	return s.Variant(ctx, id)
}

// DeleteVariant soft-deletes a variant by marking it Inactive.
func (s *Service) DeleteVariant(ctx context.Context, id string) error {
	unlock := s.locks.Lock(shared.VariantLockKey(id))
	defer unlock()

	return s.store.UpdateByID(ctx, store.Variants, id, store.Row{
		"status": string(VariantInactive),
	})
}
