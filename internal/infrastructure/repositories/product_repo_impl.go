package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"vendor-pay.backend/internal/domain/entities"
	domainerrors "vendor-pay.backend/internal/domain/errors"
	"vendor-pay.backend/internal/infrastructure/models"
)

// ProductRepository implements product data operations
type ProductRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// Create creates a new product
func (r *ProductRepository) Create(ctx context.Context, product *entities.Product) error {
	m := &models.Product{
		ID:       product.ID,
		VendorID: product.VendorID,
		Name:     product.Name,
		Price:    product.Price,
		Stock:    product.Stock,
		IsActive: product.IsActive,
	}
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	product.ID = m.ID
	product.CreatedAt = m.CreatedAt
	product.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByID gets a product by ID
func (r *ProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Product, error) {
	var m models.Product
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return productToEntity(&m), nil
}

// DecrementStock atomically reserves stock for an order. The guard in the
// WHERE clause prevents overselling under concurrent orders.
func (r *ProductRepository) DecrementStock(ctx context.Context, id uuid.UUID, quantity int) error {
	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).Model(&models.Product{}).
		Where("id = ? AND stock >= ?", id, quantity).
		Update("stock", gorm.Expr("stock - ?", quantity))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrOutOfStock
	}
	return nil
}

// ListByVendorID lists a vendor's products with pagination
func (r *ProductRepository) ListByVendorID(ctx context.Context, vendorID uuid.UUID, limit, offset int) ([]*entities.Product, int, error) {
	db := GetDB(ctx, r.db)

	var total int64
	if err := db.WithContext(ctx).Model(&models.Product{}).
		Where("vendor_id = ?", vendorID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ms []models.Product
	if err := db.WithContext(ctx).
		Where("vendor_id = ?", vendorID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&ms).Error; err != nil {
		return nil, 0, err
	}

	products := make([]*entities.Product, 0, len(ms))
	for i := range ms {
		products = append(products, productToEntity(&ms[i]))
	}
	return products, int(total), nil
}

func productToEntity(m *models.Product) *entities.Product {
	p := &entities.Product{
		ID:        m.ID,
		VendorID:  m.VendorID,
		Name:      m.Name,
		Price:     m.Price,
		Stock:     m.Stock,
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	if m.DeletedAt.Valid {
		p.DeletedAt = null.TimeFrom(m.DeletedAt.Time)
	}
	return p
}
