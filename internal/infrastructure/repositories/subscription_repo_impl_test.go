package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"vendor-pay.backend/internal/domain/entities"
	domainerrors "vendor-pay.backend/internal/domain/errors"
)

func TestSubscriptionPlanRepository_ListActive(t *testing.T) {
	db := newTestDB(t)
	createSubscriptionPlanTable(t, db)
	repo := NewSubscriptionPlanRepository(db)
	ctx := context.Background()

	proID := uuid.New()
	mustExec(t, db, `INSERT INTO subscription_plans
		(id, name, tier, price, billing_cycle, trial_days, requires_payment_card, is_active, created_at, updated_at)
		VALUES (?, 'Pro', 'PRO', 79, 'MONTHLY', 14, 1, 1, ?, ?)`, proID, time.Now(), time.Now())
	mustExec(t, db, `INSERT INTO subscription_plans
		(id, name, tier, price, billing_cycle, trial_days, requires_payment_card, is_active, created_at, updated_at)
		VALUES (?, 'Starter', 'STARTER', 9, 'MONTHLY', 7, 0, 1, ?, ?)`, uuid.New(), time.Now(), time.Now())
	mustExec(t, db, `INSERT INTO subscription_plans
		(id, name, tier, price, billing_cycle, trial_days, requires_payment_card, is_active, created_at, updated_at)
		VALUES (?, 'Legacy', 'BASIC', 19, 'MONTHLY', 0, 0, 0, ?, ?)`, uuid.New(), time.Now(), time.Now())

	plans, err := repo.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, plans, 2, "inactive plans are hidden")
	require.Equal(t, "Starter", plans[0].Name, "cheapest first")

	pro, err := repo.GetByID(ctx, proID)
	require.NoError(t, err)
	require.Equal(t, entities.SubscriptionTierPro, pro.Tier)
	require.Equal(t, 14, pro.TrialDays)
	require.True(t, pro.RequiresPaymentCard)

	_, err = repo.GetByID(ctx, uuid.New())
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestSubscriptionRepository_Lifecycle(t *testing.T) {
	db := newTestDB(t)
	createSubscriptionPlanTable(t, db)
	createSubscriptionTable(t, db)
	repo := NewSubscriptionRepository(db)
	ctx := context.Background()

	vendorID := uuid.New()
	planID := uuid.New()
	mustExec(t, db, `INSERT INTO subscription_plans
		(id, name, tier, price, billing_cycle, trial_days, requires_payment_card, is_active, created_at, updated_at)
		VALUES (?, 'Pro', 'PRO', 79, 'MONTHLY', 14, 1, 1, ?, ?)`, planID, time.Now(), time.Now())

	sub := &entities.Subscription{
		ID:           uuid.New(),
		VendorID:     vendorID,
		PlanID:       planID,
		Tier:         entities.SubscriptionTierPro,
		Status:       entities.SubscriptionStatusActive,
		Price:        79,
		BillingCycle: entities.BillingCycleMonthly,
		StartedAt:    time.Now(),
	}
	require.NoError(t, repo.Create(ctx, sub))

	active, err := repo.GetActiveByVendorID(ctx, vendorID)
	require.NoError(t, err)
	require.Equal(t, sub.ID, active.ID)
	require.Equal(t, entities.SubscriptionTierPro, active.Tier)
	require.NotNil(t, active.Plan, "plan is preloaded")
	require.Equal(t, "Pro", active.Plan.Name)

	require.NoError(t, repo.Cancel(ctx, sub.ID))

	cancelled, err := repo.GetByID(ctx, sub.ID)
	require.NoError(t, err)
	require.Equal(t, entities.SubscriptionStatusCancelled, cancelled.Status)
	require.True(t, cancelled.CancelledAt.Valid)

	_, err = repo.GetActiveByVendorID(ctx, vendorID)
	require.ErrorIs(t, err, domainerrors.ErrNotFound, "no active subscription left")
}

func TestSubscriptionRepository_NotFoundBranches(t *testing.T) {
	db := newTestDB(t)
	createSubscriptionTable(t, db)
	createSubscriptionPlanTable(t, db)
	repo := NewSubscriptionRepository(db)
	ctx := context.Background()
	id := uuid.New()

	_, err := repo.GetByID(ctx, id)
	require.ErrorIs(t, err, domainerrors.ErrNotFound)

	err = repo.UpdateStatus(ctx, id, entities.SubscriptionStatusInactive)
	require.ErrorIs(t, err, domainerrors.ErrNotFound)

	err = repo.Cancel(ctx, id)
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}
