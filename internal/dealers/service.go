package dealers

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/BankimKamila185/Bankim-Jewellery/internal/shared"
	"github.com/BankimKamila185/Bankim-Jewellery/internal/store"
)

// Service handles dealer business logic.
type Service struct {
	store  store.Store
	locks  *shared.KeyedMutex
	logger *slog.Logger
}

// NewService builds Service instance.
func NewService(st store.Store, locks *shared.KeyedMutex, logger *slog.Logger) *Service {
	return &Service{store: st, locks: locks, logger: logger}
}

// Create registers a new dealer. The dealer code is derived from the
// (type, category) prefix table over codes already in use, and the running
// balance starts at the opening balance.
func (s *Service) Create(ctx context.Context, in CreateInput) (Dealer, error) {
	if in.Name == "" {
		return Dealer{}, fmt.Errorf("%w: name is required", shared.ErrValidation)
	}
	if in.DealerType != string(TypeBuy) && in.DealerType != string(TypeSell) {
		return Dealer{}, fmt.Errorf("%w: dealer_type must be BUY or SELL", shared.ErrValidation)
	}

	id, code, err := s.insert(ctx, in)
	if err != nil {
		return Dealer{}, err
	}

	s.logger.Info("dealer created",
		slog.String("dealer_id", id),
		slog.String("dealer_code", code))
	return s.Dealer(ctx, id)
}

// insert generates the dealer code and id and appends the row. Code
// generation scans existing codes, so the whole sequence holds the
// id-prefix lock against concurrent creates.
func (s *Service) insert(ctx context.Context, in CreateInput) (string, string, error) {
	unlock := s.locks.Lock(shared.PrefixLockKey("dealer_code"))
	defer unlock()

	code, err := s.nextCode(ctx, in.DealerType, in.DealerCategory)
	if err != nil {
		return "", "", err
	}

	id, err := s.store.NextID(ctx, store.Dealers, "DLR")
	if err != nil {
		return "", "", err
	}

	row := store.Row{
		"dealer_id":       id,
		"dealer_code":     code,
		"dealer_type":     in.DealerType,
		"dealer_category": in.DealerCategory,
		"name":            in.Name,
		"contact_person":  in.ContactPerson,
		"phone":           in.Phone,
		"email":           in.Email,
		"address":         in.Address,
		"gstin":           in.GSTIN,
		"bank_name":       in.BankName,
		"account_no":      in.AccountNo,
		"ifsc":            in.IFSC,
		"opening_balance": store.FormatFloat(in.OpeningBalance),
		"current_balance": store.FormatFloat(in.OpeningBalance),
		"notes":           in.Notes,
		"status":          "Active",
	}
	if err := s.store.Append(ctx, store.Dealers, row); err != nil {
		return "", "", err
	}
	return id, code, nil
}

// Dealer returns one dealer by id.
func (s *Service) Dealer(ctx context.Context, id string) (Dealer, error) {
	row, err := s.store.Get(ctx, store.Dealers, id)
	if err != nil {
		return Dealer{}, err
	}
	return dealerFromRow(row), nil
}

// Dealers lists dealers matching the query. Status defaults to Active.
func (s *Service) Dealers(ctx context.Context, q Query) ([]Dealer, error) {
	if q.Status == "" {
		q.Status = "Active"
	}
	rows, err := s.store.List(ctx, store.Dealers)
	if err != nil {
		return nil, err
	}
	out := make([]Dealer, 0, len(rows))
	for _, r := range rows {
		if r["status"] != q.Status {
			continue
		}
		if q.DealerType != "" && r["dealer_type"] != q.DealerType {
			continue
		}
		if q.Category != "" && r["dealer_category"] != q.Category {
			continue
		}
		out = append(out, dealerFromRow(r))
	}
	return out, nil
}

// Update applies a partial update to a dealer.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Dealer, error) {
	unlock := s.locks.Lock(shared.DealerLockKey(id))
	defer unlock()

	fields := in.fields()
	if len(fields) == 0 {
		return s.Dealer(ctx, id)
	}
	if err := s.store.UpdateByID(ctx, store.Dealers, id, fields); err != nil {
		return Dealer{}, err
	}
	return s.Dealer(ctx, id)
}

// Delete soft-deletes a dealer by marking it Deleted.
func (s *Service) Delete(ctx context.Context, id string) error {
	unlock := s.locks.Lock(shared.DealerLockKey(id))
	defer unlock()

	return s.store.UpdateByID(ctx, store.Dealers, id, store.Row{"status": "Deleted"})
}

// GenerateCode previews the next dealer code for a type/category pair
// without reserving it.
func (s *Service) GenerateCode(ctx context.Context, dealerType, category string) (string, error) {
	return s.nextCode(ctx, dealerType, category)
}

func (s *Service) nextCode(ctx context.Context, dealerType, category string) (string, error) {
	rows, err := s.store.List(ctx, store.Dealers)
	if err != nil {
		return "", err
	}
	existing := make([]string, 0, len(rows))
	for _, r := range rows {
		existing = append(existing, r["dealer_code"])
	}
	return store.GenerateDealerCode(dealerType, category, existing), nil
}
