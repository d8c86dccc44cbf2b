package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"vendor-pay.backend/internal/domain/entities"
	domainerrors "vendor-pay.backend/internal/domain/errors"
	"vendor-pay.backend/internal/infrastructure/models"
)

// SubscriptionPlanRepository implements plan catalog reads
type SubscriptionPlanRepository struct {
	db *gorm.DB
}

// NewSubscriptionPlanRepository creates a new plan repository
func NewSubscriptionPlanRepository(db *gorm.DB) *SubscriptionPlanRepository {
	return &SubscriptionPlanRepository{db: db}
}

// GetByID gets a plan by ID
func (r *SubscriptionPlanRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.SubscriptionPlan, error) {
	var m models.SubscriptionPlan
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return planToEntity(&m), nil
}

// ListActive lists plans available for purchase
func (r *SubscriptionPlanRepository) ListActive(ctx context.Context) ([]*entities.SubscriptionPlan, error) {
	var ms []models.SubscriptionPlan
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("price ASC").
		Find(&ms).Error; err != nil {
		return nil, err
	}
	plans := make([]*entities.SubscriptionPlan, 0, len(ms))
	for i := range ms {
		plans = append(plans, planToEntity(&ms[i]))
	}
	return plans, nil
}

func planToEntity(m *models.SubscriptionPlan) *entities.SubscriptionPlan {
	return &entities.SubscriptionPlan{
		ID:                  m.ID,
		Name:                m.Name,
		Tier:                entities.SubscriptionTier(m.Tier),
		Price:               m.Price,
		BillingCycle:        entities.BillingCycle(m.BillingCycle),
		TrialDays:           m.TrialDays,
		RequiresPaymentCard: m.RequiresPaymentCard,
		IsActive:            m.IsActive,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
}

// SubscriptionRepository implements subscription data operations
type SubscriptionRepository struct {
	db *gorm.DB
}

// NewSubscriptionRepository creates a new subscription repository
func NewSubscriptionRepository(db *gorm.DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

// Create creates a new subscription
func (r *SubscriptionRepository) Create(ctx context.Context, sub *entities.Subscription) error {
	m := &models.Subscription{
		ID:           sub.ID,
		VendorID:     sub.VendorID,
		PlanID:       sub.PlanID,
		Tier:         string(sub.Tier),
		Status:       string(sub.Status),
		Price:        sub.Price,
		BillingCycle: string(sub.BillingCycle),
		TrialEndDate: sub.TrialEndDate.Ptr(),
		StartedAt:    sub.StartedAt,
		CancelledAt:  sub.CancelledAt.Ptr(),
	}
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	sub.ID = m.ID
	sub.CreatedAt = m.CreatedAt
	sub.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByID gets a subscription by ID
func (r *SubscriptionRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Subscription, error) {
	var m models.Subscription
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Preload("Plan").Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return subToEntity(&m), nil
}

// GetActiveByVendorID gets the vendor's current active subscription.
// Returns ErrNotFound when the vendor has none.
func (r *SubscriptionRepository) GetActiveByVendorID(ctx context.Context, vendorID uuid.UUID) (*entities.Subscription, error) {
	var m models.Subscription
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Preload("Plan").
		Where("vendor_id = ? AND status = ?", vendorID, string(entities.SubscriptionStatusActive)).
		Order("started_at DESC").
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return subToEntity(&m), nil
}

// UpdateStatus updates a subscription's status
func (r *SubscriptionRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.SubscriptionStatus) error {
	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).Model(&models.Subscription{}).
		Where("id = ?", id).
		Update("status", string(status))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// Cancel marks a subscription cancelled and stamps the cancellation time
func (r *SubscriptionRepository) Cancel(ctx context.Context, id uuid.UUID) error {
	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).Model(&models.Subscription{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":       string(entities.SubscriptionStatusCancelled),
			"cancelled_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func subToEntity(m *models.Subscription) *entities.Subscription {
	sub := &entities.Subscription{
		ID:           m.ID,
		VendorID:     m.VendorID,
		PlanID:       m.PlanID,
		Tier:         entities.SubscriptionTier(m.Tier),
		Status:       entities.SubscriptionStatus(m.Status),
		Price:        m.Price,
		BillingCycle: entities.BillingCycle(m.BillingCycle),
		TrialEndDate: null.TimeFromPtr(m.TrialEndDate),
		StartedAt:    m.StartedAt,
		CancelledAt:  null.TimeFromPtr(m.CancelledAt),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
	if m.Plan.ID != uuid.Nil {
		sub.Plan = planToEntity(&m.Plan)
	}
	return sub
}
