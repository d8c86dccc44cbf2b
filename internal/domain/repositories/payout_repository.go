package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"vendor-pay.backend/internal/domain/entities"
)

// PayoutRepository defines payout data operations
type PayoutRepository interface {
	Create(ctx context.Context, payout *entities.Payout) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Payout, error)
	GetByVendorID(ctx context.Context, vendorID uuid.UUID, limit, offset int) ([]*entities.Payout, int, error)
	// SumByVendorID returns the total of all the vendor's payout amounts
	// regardless of status.
	SumByVendorID(ctx context.Context, vendorID uuid.UUID) (float64, error)
	// SumByVendorGroupedByStatus returns payout totals per status for a
	// vendor in [from, to). Zero vendorID aggregates across all vendors.
	SumByVendorGroupedByStatus(ctx context.Context, vendorID uuid.UUID, from, to time.Time) (map[entities.PayoutStatus]float64, error)
	Update(ctx context.Context, payout *entities.Payout) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}
