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

// VendorRepository implements vendor data operations
type VendorRepository struct {
	db *gorm.DB
}

// NewVendorRepository creates a new vendor repository
func NewVendorRepository(db *gorm.DB) *VendorRepository {
	return &VendorRepository{db: db}
}

// Create creates a new vendor
func (r *VendorRepository) Create(ctx context.Context, vendor *entities.Vendor) error {
	m := &models.Vendor{
		ID:            vendor.ID,
		UserID:        vendor.UserID,
		BusinessName:  vendor.BusinessName,
		BusinessEmail: vendor.BusinessEmail,
		Status:        string(vendor.Status),
		MinimumPayout: vendor.MinimumPayout,
		VerifiedAt:    vendor.VerifiedAt.Ptr(),
	}
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	vendor.ID = m.ID
	vendor.CreatedAt = m.CreatedAt
	vendor.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByID gets a vendor by ID
func (r *VendorRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Vendor, error) {
	var m models.Vendor
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// GetByUserID gets a vendor by owning user ID
func (r *VendorRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.Vendor, error) {
	var m models.Vendor
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Where("user_id = ?", userID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// UpdateStatus updates a vendor's status. Moving to ACTIVE also stamps the
// verification time the first time it happens.
func (r *VendorRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.VendorStatus) error {
	updates := map[string]interface{}{"status": string(status)}
	if status == entities.VendorStatusActive {
		updates["verified_at"] = gorm.Expr("COALESCE(verified_at, ?)", time.Now())
	}
	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).Model(&models.Vendor{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// List lists vendors with pagination
func (r *VendorRepository) List(ctx context.Context, limit, offset int) ([]*entities.Vendor, int, error) {
	db := GetDB(ctx, r.db)

	var total int64
	if err := db.WithContext(ctx).Model(&models.Vendor{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ms []models.Vendor
	if err := db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&ms).Error; err != nil {
		return nil, 0, err
	}

	vendors := make([]*entities.Vendor, 0, len(ms))
	for i := range ms {
		vendors = append(vendors, r.toEntity(&ms[i]))
	}
	return vendors, int(total), nil
}

// CountByStatus counts vendors in the given status
func (r *VendorRepository) CountByStatus(ctx context.Context, status entities.VendorStatus) (int64, error) {
	var count int64
	db := GetDB(ctx, r.db)
	err := db.WithContext(ctx).Model(&models.Vendor{}).
		Where("status = ?", string(status)).
		Count(&count).Error
	return count, err
}

func (r *VendorRepository) toEntity(m *models.Vendor) *entities.Vendor {
	return &entities.Vendor{
		ID:            m.ID,
		UserID:        m.UserID,
		BusinessName:  m.BusinessName,
		BusinessEmail: m.BusinessEmail,
		Status:        entities.VendorStatus(m.Status),
		MinimumPayout: m.MinimumPayout,
		VerifiedAt:    null.TimeFromPtr(m.VerifiedAt),
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}
