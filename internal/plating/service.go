package plating

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/BankimKamila185/Bankim-Jewellery/internal/shared"
	"github.com/BankimKamila185/Bankim-Jewellery/internal/store"
	"github.com/BankimKamila185/Bankim-Jewellery/internal/workflow"
)

// Service handles plating rates and jobs.
type Service struct {
	store    store.Store
	locks    *shared.KeyedMutex
	logger   *slog.Logger
	workflow *workflow.Service
	now      func() time.Time
}

// NewService builds Service instance.
func NewService(st store.Store, locks *shared.KeyedMutex, logger *slog.Logger, wf *workflow.Service) *Service {
	return &Service{store: st, locks: locks, logger: logger, workflow: wf, now: time.Now}
}

// Rates lists the Active plating rates.
func (s *Service) Rates(ctx context.Context) ([]Rate, error) {
	rows, err := store.Filter(ctx, s.store, store.PlatingRates, store.Row{"status": "Active"})
	if err != nil {
		return nil, err
	}
	out := make([]Rate, 0, len(rows))
	for _, r := range rows {
		out = append(out, rateFromRow(r))
	}
	return out, nil
}

// CreateRate adds a new Active rate. Older rates for the same type stay
// Active; ActiveRate prefers the most recently created one.
func (s *Service) CreateRate(ctx context.Context, in CreateRateInput) (Rate, error) {
	if in.PlatingType == "" {
		return Rate{}, fmt.Errorf("%w: plating_type is required", shared.ErrValidation)
	}

	unlock := s.locks.Lock(shared.PrefixLockKey("RATE"))
	defer unlock()

	id, err := s.store.NextID(ctx, store.PlatingRates, "RATE")
	if err != nil {
		return Rate{}, err
	}

	unit := in.Unit
	if unit == "" {
		unit = "kg"
	}
	row := store.Row{
		"rate_id":          id,
		"plating_type":     in.PlatingType,
		"rate_per_kg":      store.FormatFloat(in.RatePerKg),
		"unit":             unit,
		"effective_from":   in.EffectiveFrom,
		"vendor_dealer_id": in.VendorDealerID,
		"status":           "Active",
	}
	if err := s.store.Append(ctx, store.PlatingRates, row); err != nil {
		return Rate{}, err
	}

	s.logger.Info("plating rate created",
		slog.String("rate_id", id),
		slog.String("plating_type", in.PlatingType),
		slog.Float64("rate_per_kg", in.RatePerKg))
	return s.rate(ctx, id)
}

// UpdateRate applies a partial update to a rate.
func (s *Service) UpdateRate(ctx context.Context, id string, in UpdateRateInput) (Rate, error) {
	fields := in.fields()
	if len(fields) == 0 {
		return s.rate(ctx, id)
	}
	if err := s.store.UpdateByID(ctx, store.PlatingRates, id, fields); err != nil {
		return Rate{}, err
	}
	return s.rate(ctx, id)
}

// ActiveRate resolves the per-kg rate for a plating type: the most recently
// created Active rate. Resolving to 0 when no rate matches is a silent
// degraded case; it is logged and the job proceeds at zero cost.
func (s *Service) ActiveRate(ctx context.Context, platingType string) (float64, error) {
	rates, err := s.Rates(ctx)
	if err != nil {
		return 0, err
	}
	var best *Rate
	for i := range rates {
		if rates[i].PlatingType != platingType {
			continue
		}
		if best == nil || rates[i].CreatedAt > best.CreatedAt {
			best = &rates[i]
		}
	}
	if best == nil {
		s.logger.Warn("no active plating rate, job will cost zero",
			slog.String("plating_type", platingType))
		return 0, nil
	}
	return best.RatePerKg, nil
}

// Jobs lists plating jobs, optionally scoped to one dealer.
func (s *Service) Jobs(ctx context.Context, dealerID string) ([]Job, error) {
	match := store.Row{}
	if dealerID != "" {
		match["dealer_id"] = dealerID
	}
	rows, err := store.Filter(ctx, s.store, store.PlatingJobs, match)
	if err != nil {
		return nil, err
	}
	out := make([]Job, 0, len(rows))
	for _, r := range rows {
		out = append(out, jobFromRow(r))
	}
	return out, nil
}

// AssignJob resolves the rate, computes cost = rate × weight, claims the
// variant's Pending PLATING entry (or creates one) as InProgress with the
// assignee and cost, and appends the job row.
func (s *Service) AssignJob(ctx context.Context, in AssignInput) (Job, error) {
	variant, err := s.store.Get(ctx, store.Variants, in.VariantID)
	if err != nil {
		return Job{}, err
	}
	if _, err := s.store.Get(ctx, store.Dealers, in.DealerID); err != nil {
		return Job{}, err
	}

	rate, err := s.ActiveRate(ctx, in.PlatingType)
	if err != nil {
		return Job{}, err
	}
	cost := rate * in.WeightInKg

	unlock := s.locks.Lock(shared.VariantLockKey(in.VariantID))
	defer unlock()

	progressID, err := s.claimPlatingStage(ctx, in, variant["design_id"], cost)
	if err != nil {
		return Job{}, err
	}

	unlockJob := s.locks.Lock(shared.PrefixLockKey("JOB"))
	defer unlockJob()

	jobID, err := s.store.NextID(ctx, store.PlatingJobs, "JOB")
	if err != nil {
		return Job{}, err
	}
	row := store.Row{
		"job_id":          jobID,
		"progress_id":     progressID,
		"variant_id":      in.VariantID,
		"design_id":       variant["design_id"],
		"dealer_id":       in.DealerID,
		"quantity":        store.FormatInt(in.Quantity),
		"plating_type":    in.PlatingType,
		"weight_in_kg":    store.FormatFloat(in.WeightInKg),
		"rate_per_kg":     store.FormatFloat(rate),
		"calculated_cost": store.FormatFloat(cost),
		"status":          string(JobAssigned),
		"start_date":      store.Timestamp(s.now()),
		"notes":           in.Notes,
	}
	if err := s.store.Append(ctx, store.PlatingJobs, row); err != nil {
		return Job{}, err
	}

	s.logger.Info("plating job assigned",
		slog.String("job_id", jobID),
		slog.String("variant_id", in.VariantID),
		slog.String("dealer_id", in.DealerID),
		slog.Float64("calculated_cost", cost))
	return s.job(ctx, jobID)
}

// claimPlatingStage updates the variant's Pending PLATING entry to
// InProgress, or creates one when the variant jumped the queue.
func (s *Service) claimPlatingStage(ctx context.Context, in AssignInput, designID string, cost float64) (string, error) {
	entries, err := store.Filter(ctx, s.store, store.Progress, store.Row{
		"variant_id": in.VariantID,
		"stage_code": workflow.StagePlating,
		"status":     string(workflow.StatusPending),
	})
	if err != nil {
		return "", err
	}

	if len(entries) > 0 {
		progressID := entries[0]["progress_id"]
		err := s.store.UpdateByID(ctx, store.Progress, progressID, store.Row{
			"assigned_dealer_id": in.DealerID,
			"quantity":           store.FormatInt(in.Quantity),
			"status":             string(workflow.StatusInProgress),
			"start_date":         store.Timestamp(s.now()),
			"cost":               store.FormatFloat(cost),
		})
		if err != nil {
			return "", err
		}
		return progressID, nil
	}

	unlock := s.locks.Lock(shared.PrefixLockKey("PRG"))
	defer unlock()

	progressID, err := s.store.NextID(ctx, store.Progress, "PRG")
	if err != nil {
		return "", err
	}
	err = s.store.Append(ctx, store.Progress, store.Row{
		"progress_id":        progressID,
		"variant_id":         in.VariantID,
		"design_id":          designID,
		"stage_code":         workflow.StagePlating,
		"assigned_dealer_id": in.DealerID,
		"quantity":           store.FormatInt(in.Quantity),
		"status":             string(workflow.StatusInProgress),
		"start_date":         store.Timestamp(s.now()),
		"cost":               store.FormatFloat(cost),
	})
	if err != nil {
		return "", err
	}
	return progressID, nil
}

// CompleteJob marks the job Completed and completes its linked PLATING
// entry with the job's calculated cost, driving cost posting and the
// advance to the next stage.
func (s *Service) CompleteJob(ctx context.Context, jobID string) (Job, error) {
	unlock := s.locks.Lock(shared.JobLockKey(jobID))
	defer unlock()

	row, err := s.store.Get(ctx, store.PlatingJobs, jobID)
	if err != nil {
		return Job{}, err
	}
	job := jobFromRow(row)

	err = s.store.UpdateByID(ctx, store.PlatingJobs, jobID, store.Row{
		"status":   string(JobCompleted),
		"end_date": store.Timestamp(s.now()),
	})
	if err != nil {
		return Job{}, err
	}

	_, err = s.workflow.CompleteStage(ctx, job.ProgressID, workflow.CompleteInput{
		Cost:             job.CalculatedCost,
		AssignedDealerID: job.DealerID,
		Remarks:          fmt.Sprintf("plating completed (job %s)", jobID),
	})
	if err != nil {
		return Job{}, fmt.Errorf("%w: job %s completed but stage advance failed: %v",
			shared.ErrInconsistentState, jobID, err)
	}

	s.logger.Info("plating job completed",
		slog.String("job_id", jobID),
		slog.String("progress_id", job.ProgressID))
	return s.job(ctx, jobID)
}

func (s *Service) rate(ctx context.Context, id string) (Rate, error) {
	row, err := s.store.Get(ctx, store.PlatingRates, id)
	if err != nil {
		return Rate{}, err
	}
	return rateFromRow(row), nil
}

func (s *Service) job(ctx context.Context, id string) (Job, error) {
	row, err := s.store.Get(ctx, store.PlatingJobs, id)
	if err != nil {
		return Job{}, err
	}
	return jobFromRow(row), nil
}
