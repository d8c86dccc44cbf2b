package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"vendor-pay.backend/internal/domain/entities"
)

// CommissionRepository defines commission data operations
type CommissionRepository interface {
	Create(ctx context.Context, commission *entities.Commission) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Commission, error)
	GetByOrderID(ctx context.Context, orderID uuid.UUID) (*entities.Commission, error)
	// GetByVendorID returns the vendor's commissions with orders preloaded,
	// oldest first.
	GetByVendorID(ctx context.Context, vendorID uuid.UUID) ([]*entities.Commission, error)
	// GetUnassignedByVendorID returns commissions with no payout yet,
	// oldest first, excluding cancelled ones.
	GetUnassignedByVendorID(ctx context.Context, vendorID uuid.UUID) ([]*entities.Commission, error)
	GetByPayoutID(ctx context.Context, payoutID uuid.UUID) ([]*entities.Commission, error)
	// AssignToPayout sets payout_id and moves status to CALCULATED on the
	// given commissions.
	AssignToPayout(ctx context.Context, ids []uuid.UUID, payoutID uuid.UUID) error
	// UnassignFromPayout clears payout_id and returns the commissions to
	// PENDING so they are eligible for a future payout.
	UnassignFromPayout(ctx context.Context, payoutID uuid.UUID) error
	MarkPaidByPayoutID(ctx context.Context, payoutID uuid.UUID) error
	// SumByVendor returns total commission taken for a vendor in [from, to).
	SumByVendor(ctx context.Context, vendorID uuid.UUID, from, to time.Time) (float64, error)
}
