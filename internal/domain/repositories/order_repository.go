package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"vendor-pay.backend/internal/domain/entities"
)

// ProductRepository defines product data operations
type ProductRepository interface {
	Create(ctx context.Context, product *entities.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Product, error)
	// DecrementStock atomically reduces stock by quantity, failing with
	// ErrOutOfStock when fewer than quantity units remain.
	DecrementStock(ctx context.Context, id uuid.UUID, quantity int) error
	ListByVendorID(ctx context.Context, vendorID uuid.UUID, limit, offset int) ([]*entities.Product, int, error)
}

// OrderRepository defines order data operations
type OrderRepository interface {
	Create(ctx context.Context, order *entities.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Order, error)
	GetByVendorID(ctx context.Context, vendorID uuid.UUID, limit, offset int) ([]*entities.Order, int, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entities.OrderStatus) error
	// AggregateByVendor returns order count and gross sales for a vendor in
	// [from, to). Zero vendorID aggregates across all vendors.
	AggregateByVendor(ctx context.Context, vendorID uuid.UUID, from, to time.Time) (int64, float64, error)
}
