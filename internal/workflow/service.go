package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/BankimKamila185/Bankim-Jewellery/internal/catalog"
	"github.com/BankimKamila185/Bankim-Jewellery/internal/shared"
	"github.com/BankimKamila185/Bankim-Jewellery/internal/store"
)

// Service drives the stage sequencer.
type Service struct {
	store  store.Store
	locks  *shared.KeyedMutex
	logger *slog.Logger
	now    func() time.Time
}

// NewService builds Service instance.
func NewService(st store.Store, locks *shared.KeyedMutex, logger *slog.Logger) *Service {
	return &Service{store: st, locks: locks, logger: logger, now: time.Now}
}

// Stages returns the configured stage catalog, or the compiled-in default
// sequence when the collection is empty.
func (s *Service) Stages(ctx context.Context) ([]Stage, error) {
	rows, err := s.store.List(ctx, store.WorkflowStages)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return defaultStages, nil
	}
	stages := make([]Stage, 0, len(rows))
	for _, r := range rows {
		stages = append(stages, stageFromRow(r))
	}
	sort.SliceStable(stages, func(i, j int) bool {
		return stages[i].StageOrder < stages[j].StageOrder
	})
	return stages, nil
}

// NextStage returns the stage following currentCode in the catalog, or
// false when currentCode is last or unrecognized.
func (s *Service) NextStage(ctx context.Context, currentCode string) (Stage, bool, error) {
	stages, err := s.Stages(ctx)
	if err != nil {
		return Stage{}, false, err
	}
	for i, stage := range stages {
		if stage.StageCode == currentCode {
			if i+1 < len(stages) {
				return stages[i+1], true, nil
			}
			return Stage{}, false, nil
		}
	}
	return Stage{}, false, nil
}

// StartProcess creates the first progress entry for a variant. It does not
// check whether an active stage already exists; callers that need that
// guarantee must consult CurrentStage first.
func (s *Service) StartProcess(ctx context.Context, in StartInput) (ProgressEntry, error) {
	if in.VariantID == "" {
		return ProgressEntry{}, fmt.Errorf("%w: variant_id is required", shared.ErrValidation)
	}

	variant, err := s.store.Get(ctx, store.Variants, in.VariantID)
	if err != nil {
		return ProgressEntry{}, err
	}

	stageCode := in.StageCode
	if stageCode == "" {
		stageCode = StageOrdered
	}

	unlock := s.locks.Lock(shared.PrefixLockKey("PRG"))
	defer unlock()

	id, err := s.store.NextID(ctx, store.Progress, "PRG")
	if err != nil {
		return ProgressEntry{}, err
	}

	row := store.Row{
		"progress_id":        id,
		"variant_id":         in.VariantID,
		"design_id":          variant["design_id"],
		"stage_code":         stageCode,
		"assigned_dealer_id": in.AssignedDealerID,
		"quantity":           store.FormatInt(in.Quantity),
		"status":             string(StatusPending),
		"start_date":         store.Timestamp(s.now()),
		"remarks":            in.Remarks,
	}
	if err := s.store.Append(ctx, store.Progress, row); err != nil {
		return ProgressEntry{}, err
	}

	s.logger.Info("process started",
		slog.String("progress_id", id),
		slog.String("variant_id", in.VariantID),
		slog.String("stage_code", stageCode))
	return s.entry(ctx, id)
}

// CurrentStage returns the variant's active entry: the first Pending or
// InProgress entry in store order, else the most recently created Completed
// entry, else not-found.
func (s *Service) CurrentStage(ctx context.Context, variantID string) (ProgressEntry, error) {
	history, err := store.Filter(ctx, s.store, store.Progress, store.Row{"variant_id": variantID})
	if err != nil {
		return ProgressEntry{}, err
	}
	for _, r := range history {
		switch ProgressStatus(r["status"]) {
		case StatusPending, StatusInProgress:
			return entryFromRow(r), nil
		}
	}
	if len(history) == 0 {
		return ProgressEntry{}, fmt.Errorf("%w: no progress entries for variant %s", shared.ErrNotFound, variantID)
	}
	latest := history[0]
	for _, r := range history[1:] {
		if r["created_at"] > latest["created_at"] {
			latest = r
		}
	}
	return entryFromRow(latest), nil
}

// VariantHistory returns every progress entry of a variant in store order.
func (s *Service) VariantHistory(ctx context.Context, variantID string) ([]ProgressEntry, error) {
	rows, err := store.Filter(ctx, s.store, store.Progress, store.Row{"variant_id": variantID})
	if err != nil {
		return nil, err
	}
	out := make([]ProgressEntry, 0, len(rows))
	for _, r := range rows {
		out = append(out, entryFromRow(r))
	}
	return out, nil
}

// CompleteStage marks an entry Completed, posts its cost onto the variant,
// and spawns a Pending entry for the next catalog stage. The sequence is
// not transactional: a spawn failure after the completion write leaves the
// variant without a current stage and surfaces as inconsistent-state.
// Calling CompleteStage again on the Completed entry repairs that state,
// spawning the missing entry without posting the cost a second time.
func (s *Service) CompleteStage(ctx context.Context, progressID string, in CompleteInput) (ProgressEntry, error) {
	if in.Cost < 0 {
		return ProgressEntry{}, fmt.Errorf("%w: cost must not be negative", shared.ErrValidation)
	}

	entry, err := s.store.Get(ctx, store.Progress, progressID)
	if err != nil {
		return ProgressEntry{}, err
	}
	variantID := entry["variant_id"]

	unlock := s.locks.Lock(shared.VariantLockKey(variantID))
	defer unlock()

	// Re-read under the lock; a concurrent completion may have advanced it,
	// and a retry after a failed spawn must repair rather than post twice.
	entry, err = s.store.Get(ctx, store.Progress, progressID)
	if err != nil {
		return ProgressEntry{}, err
	}
	if ProgressStatus(entry["status"]) == StatusCompleted {
		return s.repairAdvance(ctx, entry)
	}

	if in.Cost > 0 {
		if err := s.postCost(ctx, variantID, entry["stage_code"], in.Cost, in.AssignedDealerID); err != nil {
			return ProgressEntry{}, err
		}
	}

	updates := store.Row{
		"status":   string(StatusCompleted),
		"end_date": store.Timestamp(s.now()),
	}
	if in.Cost > 0 {
		updates["cost"] = store.FormatFloat(in.Cost)
	}
	if in.AssignedDealerID != "" {
		updates["assigned_dealer_id"] = in.AssignedDealerID
	}
	if in.Remarks != "" {
		updates["remarks"] = in.Remarks
	}
	if err := s.store.UpdateByID(ctx, store.Progress, progressID, updates); err != nil {
		return ProgressEntry{}, err
	}

	next, ok, err := s.NextStage(ctx, entry["stage_code"])
	if err != nil {
		return ProgressEntry{}, fmt.Errorf("%w: stage %s completed but next stage lookup failed: %v",
			shared.ErrInconsistentState, entry["stage_code"], err)
	}
	if ok {
		if err := s.spawnNext(ctx, entry, next); err != nil {
			return ProgressEntry{}, fmt.Errorf("%w: stage %s completed but %s entry not created: %v",
				shared.ErrInconsistentState, entry["stage_code"], next.StageCode, err)
		}
	}

	s.logger.Info("stage completed",
		slog.String("progress_id", progressID),
		slog.String("variant_id", variantID),
		slog.String("stage_code", entry["stage_code"]),
		slog.Float64("cost", in.Cost))
	return s.entry(ctx, progressID)
}

// repairAdvance finishes a completion whose next-stage spawn failed. The
// entry is already Completed, so its cost is never posted again and the
// next entry is spawned only when the variant has no active one left.
func (s *Service) repairAdvance(ctx context.Context, entry store.Row) (ProgressEntry, error) {
	history, err := store.Filter(ctx, s.store, store.Progress, store.Row{"variant_id": entry["variant_id"]})
	if err != nil {
		return ProgressEntry{}, err
	}
	for _, r := range history {
		if ProgressStatus(r["status"]) != StatusCompleted {
			return entryFromRow(entry), nil
		}
	}

	next, ok, err := s.NextStage(ctx, entry["stage_code"])
	if err != nil {
		return ProgressEntry{}, fmt.Errorf("%w: stage %s completed but next stage lookup failed: %v",
			shared.ErrInconsistentState, entry["stage_code"], err)
	}
	if ok {
		if err := s.spawnNext(ctx, entry, next); err != nil {
			return ProgressEntry{}, fmt.Errorf("%w: stage %s completed but %s entry not created: %v",
				shared.ErrInconsistentState, entry["stage_code"], next.StageCode, err)
		}
		s.logger.Info("stage advance repaired",
			slog.String("progress_id", entry["progress_id"]),
			slog.String("variant_id", entry["variant_id"]),
			slog.String("stage_code", next.StageCode))
	}
	return entryFromRow(entry), nil
}

// spawnNext creates the Pending entry for the next stage, carrying the
// quantity forward with no assignee.
func (s *Service) spawnNext(ctx context.Context, completed store.Row, next Stage) error {
	unlock := s.locks.Lock(shared.PrefixLockKey("PRG"))
	defer unlock()

	id, err := s.store.NextID(ctx, store.Progress, "PRG")
	if err != nil {
		return err
	}
	return s.store.Append(ctx, store.Progress, store.Row{
		"progress_id": id,
		"variant_id":  completed["variant_id"],
		"design_id":   completed["design_id"],
		"stage_code":  next.StageCode,
		"quantity":    completed["quantity"],
		"status":      string(StatusPending),
		"start_date":  store.Timestamp(s.now()),
	})
}

// postCost adds amount into the variant cost column mapped from the stage
// code, recomputes the derived cost fields, and appends an audit row.
// Stages outside the cost map post nothing.
func (s *Service) postCost(ctx context.Context, variantID, stageCode string, amount float64, dealerID string) error {
	field, ok := costFieldForStage[stageCode]
	if !ok {
		return nil
	}

	variant, err := s.store.Get(ctx, store.Variants, variantID)
	if err != nil {
		return err
	}

	fields := store.Row{field: store.FormatFloat(variant.Float(field) + amount)}
	merged := variant.Merge(fields)
	for k, v := range catalog.CostFields(merged) {
		fields[k] = v
	}
	if err := s.store.UpdateByID(ctx, store.Variants, variantID, fields); err != nil {
		return err
	}

	unlock := s.locks.Lock(shared.PrefixLockKey("CBD"))
	defer unlock()

	breakdownID, err := s.store.NextID(ctx, store.CostBreakdown, "CBD")
	if err != nil {
		return err
	}
	return s.store.Append(ctx, store.CostBreakdown, store.Row{
		"breakdown_id": breakdownID,
		"product_id":   variantID,
		"cost_type":    costTypeForField[field],
		"dealer_id":    dealerID,
		"amount":       store.FormatFloat(amount),
		"date":         store.Timestamp(s.now()),
		"notes":        "stage " + stageCode + " completed",
	})
}

func (s *Service) entry(ctx context.Context, id string) (ProgressEntry, error) {
	row, err := s.store.Get(ctx, store.Progress, id)
	if err != nil {
		return ProgressEntry{}, err
	}
	return entryFromRow(row), nil
}
