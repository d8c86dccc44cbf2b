package repositories

import (
	"context"

	"github.com/google/uuid"
	"vendor-pay.backend/internal/domain/entities"
)

// SubscriptionPlanRepository defines plan data operations
type SubscriptionPlanRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entities.SubscriptionPlan, error)
	ListActive(ctx context.Context) ([]*entities.SubscriptionPlan, error)
}

// SubscriptionRepository defines subscription data operations
type SubscriptionRepository interface {
	Create(ctx context.Context, sub *entities.Subscription) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Subscription, error)
	// GetActiveByVendorID returns the vendor's single ACTIVE subscription,
	// or ErrNotFound when none exists.
	GetActiveByVendorID(ctx context.Context, vendorID uuid.UUID) (*entities.Subscription, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entities.SubscriptionStatus) error
	Cancel(ctx context.Context, id uuid.UUID) error
}
