package usecases

import (
	"context"
	"time"

	"github.com/google/uuid"
	"vendor-pay.backend/internal/domain/entities"
	domainerrors "vendor-pay.backend/internal/domain/errors"
	"vendor-pay.backend/internal/domain/repositories"
	"vendor-pay.backend/internal/metrics"
	"vendor-pay.backend/pkg/utils"
)

// CommissionUsecase computes and persists per-order commissions
type CommissionUsecase struct {
	commissionRepo   repositories.CommissionRepository
	vendorRepo       repositories.VendorRepository
	subscriptionRepo repositories.SubscriptionRepository
	auditRepo        repositories.AuditLogRepository
}

// NewCommissionUsecase creates a new commission usecase
func NewCommissionUsecase(
	commissionRepo repositories.CommissionRepository,
	vendorRepo repositories.VendorRepository,
	subscriptionRepo repositories.SubscriptionRepository,
	auditRepo repositories.AuditLogRepository,
) *CommissionUsecase {
	return &CommissionUsecase{
		commissionRepo:   commissionRepo,
		vendorRepo:       vendorRepo,
		subscriptionRepo: subscriptionRepo,
		auditRepo:        auditRepo,
	}
}

// ResolveRate resolves the vendor's commission rate from their active
// subscription tier, or the default rate when none is active.
func (u *CommissionUsecase) ResolveRate(ctx context.Context, vendorID uuid.UUID) (float64, entities.SubscriptionTier, error) {
	sub, err := u.subscriptionRepo.GetActiveByVendorID(ctx, vendorID)
	if err != nil {
		if err == domainerrors.ErrNotFound {
			return DefaultCommissionRate, "", nil
		}
		return 0, "", err
	}
	return CommissionRateForTier(sub.Tier), sub.Tier, nil
}

// Calculate computes the commission for an order and persists the record
// with a breakdown snapshot. The rate is resolved now, not at query time:
// a later tier change must not rewrite history.
func (u *CommissionUsecase) Calculate(ctx context.Context, orderID, vendorID uuid.UUID, orderTotal float64) (*entities.CommissionResult, error) {
	if orderTotal <= 0 {
		return nil, domainerrors.ErrInvalidInput
	}

	if _, err := u.vendorRepo.GetByID(ctx, vendorID); err != nil {
		return nil, err
	}

	rate, tier, err := u.ResolveRate(ctx, vendorID)
	if err != nil {
		return nil, err
	}

	amount := utils.RoundCents(orderTotal * rate)
	netPayout := utils.RoundCents(orderTotal - amount)

	commission := &entities.Commission{
		ID:       utils.GenerateUUIDv7(),
		OrderID:  orderID,
		VendorID: vendorID,
		Amount:   amount,
		Rate:     rate,
		Status:   entities.CommissionStatusPending,
		Breakdown: &entities.CommissionBreakdown{
			OrderTotal: orderTotal,
			Rate:       rate,
			Tier:       tier,
		},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := u.commissionRepo.Create(ctx, commission); err != nil {
		return nil, err
	}

	if err := u.auditRepo.Create(ctx, &entities.AuditLog{
		ID:         utils.GenerateUUIDv7(),
		Action:     entities.AuditActionCommissionCreated,
		EntityType: "commission",
		EntityID:   commission.ID.String(),
		Details: map[string]interface{}{
			"orderId":    orderID.String(),
			"vendorId":   vendorID.String(),
			"orderTotal": orderTotal,
			"rate":       rate,
			"amount":     amount,
		},
		CreatedAt: time.Now(),
	}); err != nil {
		return nil, err
	}

	metrics.CommissionsCalculated.Inc()
	metrics.CommissionAmount.Add(amount)

	return &entities.CommissionResult{
		CommissionAmount: amount,
		NetPayout:        netPayout,
		Rate:             rate,
	}, nil
}

// GetByVendor lists a vendor's commissions, oldest first.
func (u *CommissionUsecase) GetByVendor(ctx context.Context, vendorID uuid.UUID) ([]*entities.Commission, error) {
	return u.commissionRepo.GetByVendorID(ctx, vendorID)
}
