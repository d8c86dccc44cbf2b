package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"vendor-pay.backend/internal/domain/entities"
	domainerrors "vendor-pay.backend/internal/domain/errors"
	"vendor-pay.backend/internal/infrastructure/models"
)

// OrderRepository implements order data operations
type OrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Create creates a new order
func (r *OrderRepository) Create(ctx context.Context, order *entities.Order) error {
	m := &models.Order{
		ID:         order.ID,
		VendorID:   order.VendorID,
		CustomerID: order.CustomerID,
		ProductID:  order.ProductID,
		Quantity:   order.Quantity,
		TotalPrice: order.TotalPrice,
		Status:     string(order.Status),
	}
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	order.ID = m.ID
	order.CreatedAt = m.CreatedAt
	order.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByID gets an order by ID
func (r *OrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Order, error) {
	var m models.Order
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Preload("Product").Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// GetByVendorID lists a vendor's orders with pagination
func (r *OrderRepository) GetByVendorID(ctx context.Context, vendorID uuid.UUID, limit, offset int) ([]*entities.Order, int, error) {
	db := GetDB(ctx, r.db)

	var total int64
	if err := db.WithContext(ctx).Model(&models.Order{}).
		Where("vendor_id = ?", vendorID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ms []models.Order
	if err := db.WithContext(ctx).
		Where("vendor_id = ?", vendorID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&ms).Error; err != nil {
		return nil, 0, err
	}

	orders := make([]*entities.Order, 0, len(ms))
	for i := range ms {
		orders = append(orders, r.toEntity(&ms[i]))
	}
	return orders, int(total), nil
}

// UpdateStatus updates an order's status
func (r *OrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.OrderStatus) error {
	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).Model(&models.Order{}).
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

// AggregateByVendor returns order count and gross sales for the period.
// Cancelled orders are excluded. A nil vendor ID aggregates all vendors.
func (r *OrderRepository) AggregateByVendor(ctx context.Context, vendorID uuid.UUID, from, to time.Time) (int64, float64, error) {
	type row struct {
		OrderCount int64
		GrossSales float64
	}
	var agg row

	db := GetDB(ctx, r.db)
	query := db.WithContext(ctx).Model(&models.Order{}).
		Select("COUNT(*) AS order_count, COALESCE(SUM(total_price), 0) AS gross_sales").
		Where("status <> ?", string(entities.OrderStatusCancelled)).
		Where("created_at >= ? AND created_at < ?", from, to)
	if vendorID != uuid.Nil {
		query = query.Where("vendor_id = ?", vendorID)
	}
	if err := query.Scan(&agg).Error; err != nil {
		return 0, 0, err
	}
	return agg.OrderCount, agg.GrossSales, nil
}

func (r *OrderRepository) toEntity(m *models.Order) *entities.Order {
	order := &entities.Order{
		ID:         m.ID,
		VendorID:   m.VendorID,
		CustomerID: m.CustomerID,
		ProductID:  m.ProductID,
		Quantity:   m.Quantity,
		TotalPrice: m.TotalPrice,
		Status:     entities.OrderStatus(m.Status),
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
	if m.Product.ID != uuid.Nil {
		order.Product = productToEntity(&m.Product)
	}
	return order
}
