package repositories

import (
	"context"

	"github.com/google/uuid"
	"vendor-pay.backend/internal/domain/entities"
)

// VendorRepository defines vendor data operations
type VendorRepository interface {
	Create(ctx context.Context, vendor *entities.Vendor) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Vendor, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.Vendor, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entities.VendorStatus) error
	List(ctx context.Context, limit, offset int) ([]*entities.Vendor, int, error)
	CountByStatus(ctx context.Context, status entities.VendorStatus) (int64, error)
}
