package usecases

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"vendor-pay.backend/internal/domain/entities"
	domainerrors "vendor-pay.backend/internal/domain/errors"
	"vendor-pay.backend/internal/domain/repositories"
	"vendor-pay.backend/pkg/utils"
)

// SubscriptionUsecase handles vendor plan membership
type SubscriptionUsecase struct {
	subscriptionRepo repositories.SubscriptionRepository
	planRepo         repositories.SubscriptionPlanRepository
	vendorRepo       repositories.VendorRepository
	auditRepo        repositories.AuditLogRepository
	uow              repositories.UnitOfWork
}

// NewSubscriptionUsecase creates a new subscription usecase
func NewSubscriptionUsecase(
	subscriptionRepo repositories.SubscriptionRepository,
	planRepo repositories.SubscriptionPlanRepository,
	vendorRepo repositories.VendorRepository,
	auditRepo repositories.AuditLogRepository,
	uow repositories.UnitOfWork,
) *SubscriptionUsecase {
	return &SubscriptionUsecase{
		subscriptionRepo: subscriptionRepo,
		planRepo:         planRepo,
		vendorRepo:       vendorRepo,
		auditRepo:        auditRepo,
		uow:              uow,
	}
}

// ListPlans returns subscribable plans.
func (u *SubscriptionUsecase) ListPlans(ctx context.Context) ([]*entities.SubscriptionPlan, error) {
	return u.planRepo.ListActive(ctx)
}

// Subscribe puts the vendor on a plan, cancelling any currently active
// subscription first so the one-active-subscription invariant holds. The
// tier is snapshotted onto the subscription row.
func (u *SubscriptionUsecase) Subscribe(ctx context.Context, vendorID uuid.UUID, in *entities.SubscribeInput) (*entities.Subscription, error) {
	vendor, err := u.vendorRepo.GetByID(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	if vendor.Status != entities.VendorStatusActive {
		return nil, domainerrors.ErrInvalidState
	}

	plan, err := u.planRepo.GetByID(ctx, in.PlanID)
	if err != nil {
		return nil, err
	}
	if !plan.IsActive {
		return nil, domainerrors.ErrInvalidState
	}

	sub := &entities.Subscription{
		ID:           utils.GenerateUUIDv7(),
		VendorID:     vendorID,
		PlanID:       plan.ID,
		Tier:         plan.Tier,
		Status:       entities.SubscriptionStatusActive,
		Price:        plan.Price,
		BillingCycle: plan.BillingCycle,
		StartedAt:    time.Now(),
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	if plan.TrialDays > 0 {
		sub.TrialEndDate = null.TimeFrom(time.Now().AddDate(0, 0, plan.TrialDays))
	}

	if err := u.uow.Do(ctx, func(txCtx context.Context) error {
		if current, err := u.subscriptionRepo.GetActiveByVendorID(txCtx, vendorID); err == nil {
			if err := u.subscriptionRepo.Cancel(txCtx, current.ID); err != nil {
				return err
			}
		} else if err != domainerrors.ErrNotFound {
			return err
		}
		if err := u.subscriptionRepo.Create(txCtx, sub); err != nil {
			return err
		}
		return u.auditRepo.Create(txCtx, &entities.AuditLog{
			ID:         utils.GenerateUUIDv7(),
			Action:     entities.AuditActionSubscribed,
			EntityType: "subscription",
			EntityID:   sub.ID.String(),
			Details: map[string]interface{}{
				"vendorId": vendorID.String(),
				"planId":   plan.ID.String(),
				"tier":     string(plan.Tier),
			},
			CreatedAt: time.Now(),
		})
	}); err != nil {
		return nil, err
	}

	return sub, nil
}

// Cancel ends a subscription. Historical commissions keep their
// snapshotted rates.
func (u *SubscriptionUsecase) Cancel(ctx context.Context, subscriptionID, vendorID uuid.UUID) error {
	sub, err := u.subscriptionRepo.GetByID(ctx, subscriptionID)
	if err != nil {
		return err
	}
	if sub.VendorID != vendorID {
		return domainerrors.ErrForbidden
	}
	if sub.Status != entities.SubscriptionStatusActive {
		return domainerrors.ErrInvalidState
	}

	if err := u.subscriptionRepo.Cancel(ctx, subscriptionID); err != nil {
		return err
	}
	return u.auditRepo.Create(ctx, &entities.AuditLog{
		ID:         utils.GenerateUUIDv7(),
		Action:     entities.AuditActionUnsubscribed,
		EntityType: "subscription",
		EntityID:   subscriptionID.String(),
		Details:    map[string]interface{}{"vendorId": vendorID.String()},
		CreatedAt:  time.Now(),
	})
}
