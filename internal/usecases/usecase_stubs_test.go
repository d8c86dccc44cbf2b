package usecases

import (
	"context"
	"time"

	"github.com/google/uuid"

	"vendor-pay.backend/internal/domain/entities"
	domainerrors "vendor-pay.backend/internal/domain/errors"
	"vendor-pay.backend/internal/domain/repositories"
)

// In-memory stand-ins for the repository interfaces, just enough state to
// drive the scoring and calculation paths.

type stubTrialRepo struct {
	exists      bool
	ipCount     int64
	domainCount int64
	created     []*entities.TrialUsage
}

func (s *stubTrialRepo) Create(_ context.Context, usage *entities.TrialUsage) error {
	s.created = append(s.created, usage)
	return nil
}

func (s *stubTrialRepo) GetByID(context.Context, uuid.UUID) (*entities.TrialUsage, error) {
	return nil, domainerrors.ErrNotFound
}

func (s *stubTrialRepo) ExistsMatching(context.Context, repositories.TrialUsageQuery) (bool, error) {
	return s.exists, nil
}

func (s *stubTrialRepo) CountByIPSince(context.Context, string, time.Time) (int64, error) {
	return s.ipCount, nil
}

func (s *stubTrialRepo) CountByEmailDomainSince(context.Context, string, time.Time) (int64, error) {
	return s.domainCount, nil
}

func (s *stubTrialRepo) CountFlaggedSince(context.Context, time.Time) (int64, error) {
	return 0, nil
}

func (s *stubTrialRepo) UpdateStatus(context.Context, uuid.UUID, entities.TrialStatus) error {
	return nil
}

func (s *stubTrialRepo) GetExpiredActive(context.Context, int) ([]*entities.TrialUsage, error) {
	return nil, nil
}

func (s *stubTrialRepo) ExpireTrials(context.Context, []uuid.UUID) error { return nil }

type stubPlanRepo struct {
	plans map[uuid.UUID]*entities.SubscriptionPlan
}

func (s *stubPlanRepo) GetByID(_ context.Context, id uuid.UUID) (*entities.SubscriptionPlan, error) {
	if plan, ok := s.plans[id]; ok {
		return plan, nil
	}
	return nil, domainerrors.ErrNotFound
}

func (s *stubPlanRepo) ListActive(context.Context) ([]*entities.SubscriptionPlan, error) {
	out := make([]*entities.SubscriptionPlan, 0, len(s.plans))
	for _, p := range s.plans {
		out = append(out, p)
	}
	return out, nil
}

type stubAuditRepo struct {
	entries []*entities.AuditLog
}

func (s *stubAuditRepo) Create(_ context.Context, entry *entities.AuditLog) error {
	s.entries = append(s.entries, entry)
	return nil
}

func (s *stubAuditRepo) ListByEntity(context.Context, string, string, int, int) ([]*entities.AuditLog, int, error) {
	return nil, 0, nil
}

type stubVendorRepo struct {
	vendors map[uuid.UUID]*entities.Vendor
}

func (s *stubVendorRepo) Create(_ context.Context, v *entities.Vendor) error {
	s.vendors[v.ID] = v
	return nil
}

func (s *stubVendorRepo) GetByID(_ context.Context, id uuid.UUID) (*entities.Vendor, error) {
	if v, ok := s.vendors[id]; ok {
		return v, nil
	}
	return nil, domainerrors.ErrNotFound
}

func (s *stubVendorRepo) GetByUserID(_ context.Context, userID uuid.UUID) (*entities.Vendor, error) {
	for _, v := range s.vendors {
		if v.UserID == userID {
			return v, nil
		}
	}
	return nil, domainerrors.ErrNotFound
}

func (s *stubVendorRepo) UpdateStatus(_ context.Context, id uuid.UUID, status entities.VendorStatus) error {
	v, ok := s.vendors[id]
	if !ok {
		return domainerrors.ErrNotFound
	}
	v.Status = status
	return nil
}

func (s *stubVendorRepo) List(context.Context, int, int) ([]*entities.Vendor, int, error) {
	return nil, 0, nil
}

func (s *stubVendorRepo) CountByStatus(context.Context, entities.VendorStatus) (int64, error) {
	return 0, nil
}

type stubSubscriptionRepo struct {
	active map[uuid.UUID]*entities.Subscription
}

func (s *stubSubscriptionRepo) Create(_ context.Context, sub *entities.Subscription) error {
	s.active[sub.VendorID] = sub
	return nil
}

func (s *stubSubscriptionRepo) GetByID(context.Context, uuid.UUID) (*entities.Subscription, error) {
	return nil, domainerrors.ErrNotFound
}

func (s *stubSubscriptionRepo) GetActiveByVendorID(_ context.Context, vendorID uuid.UUID) (*entities.Subscription, error) {
	if sub, ok := s.active[vendorID]; ok {
		return sub, nil
	}
	return nil, domainerrors.ErrNotFound
}

func (s *stubSubscriptionRepo) UpdateStatus(context.Context, uuid.UUID, entities.SubscriptionStatus) error {
	return nil
}

func (s *stubSubscriptionRepo) Cancel(context.Context, uuid.UUID) error { return nil }

type stubCommissionRepo struct {
	created []*entities.Commission
}

func (s *stubCommissionRepo) Create(_ context.Context, c *entities.Commission) error {
	s.created = append(s.created, c)
	return nil
}

func (s *stubCommissionRepo) GetByID(context.Context, uuid.UUID) (*entities.Commission, error) {
	return nil, domainerrors.ErrNotFound
}

func (s *stubCommissionRepo) GetByOrderID(context.Context, uuid.UUID) (*entities.Commission, error) {
	return nil, domainerrors.ErrNotFound
}

func (s *stubCommissionRepo) GetByVendorID(context.Context, uuid.UUID) ([]*entities.Commission, error) {
	return s.created, nil
}

func (s *stubCommissionRepo) GetUnassignedByVendorID(context.Context, uuid.UUID) ([]*entities.Commission, error) {
	return s.created, nil
}

func (s *stubCommissionRepo) GetByPayoutID(context.Context, uuid.UUID) ([]*entities.Commission, error) {
	return nil, nil
}

func (s *stubCommissionRepo) AssignToPayout(context.Context, []uuid.UUID, uuid.UUID) error {
	return nil
}

func (s *stubCommissionRepo) UnassignFromPayout(context.Context, uuid.UUID) error { return nil }

func (s *stubCommissionRepo) MarkPaidByPayoutID(context.Context, uuid.UUID) error { return nil }

func (s *stubCommissionRepo) SumByVendor(context.Context, uuid.UUID, time.Time, time.Time) (float64, error) {
	return 0, nil
}

type stubPayoutRepo struct {
	payouts []*entities.Payout
}

func (s *stubPayoutRepo) Create(_ context.Context, p *entities.Payout) error {
	s.payouts = append(s.payouts, p)
	return nil
}

func (s *stubPayoutRepo) GetByID(_ context.Context, id uuid.UUID) (*entities.Payout, error) {
	for _, p := range s.payouts {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, domainerrors.ErrNotFound
}

func (s *stubPayoutRepo) GetByVendorID(context.Context, uuid.UUID, int, int) ([]*entities.Payout, int, error) {
	return s.payouts, len(s.payouts), nil
}

func (s *stubPayoutRepo) SumByVendorID(_ context.Context, vendorID uuid.UUID) (float64, error) {
	total := 0.0
	for _, p := range s.payouts {
		if p.VendorID == vendorID {
			total += p.Amount
		}
	}
	return total, nil
}

func (s *stubPayoutRepo) SumByVendorGroupedByStatus(context.Context, uuid.UUID, time.Time, time.Time) (map[entities.PayoutStatus]float64, error) {
	return nil, nil
}

func (s *stubPayoutRepo) Update(context.Context, *entities.Payout) error { return nil }

func (s *stubPayoutRepo) SoftDelete(context.Context, uuid.UUID) error { return nil }

type stubUnitOfWork struct{}

func (stubUnitOfWork) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type stubLocker struct {
	held map[string]bool
}

func (s *stubLocker) Lock(_ context.Context, vendorID string) error {
	if s.held == nil {
		s.held = map[string]bool{}
	}
	if s.held[vendorID] {
		return domainerrors.ErrConflict
	}
	s.held[vendorID] = true
	return nil
}

func (s *stubLocker) Unlock(_ context.Context, vendorID string) error {
	delete(s.held, vendorID)
	return nil
}
