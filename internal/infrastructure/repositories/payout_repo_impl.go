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

// PayoutRepository implements payout data operations
type PayoutRepository struct {
	db *gorm.DB
}

// NewPayoutRepository creates a new payout repository
func NewPayoutRepository(db *gorm.DB) *PayoutRepository {
	return &PayoutRepository{db: db}
}

// Create creates a new payout
func (r *PayoutRepository) Create(ctx context.Context, payout *entities.Payout) error {
	m := &models.Payout{
		ID:            payout.ID,
		VendorID:      payout.VendorID,
		Amount:        payout.Amount,
		Status:        string(payout.Status),
		ScheduledDate: payout.ScheduledDate,
		ProcessedAt:   payout.ProcessedAt.Ptr(),
		FailureReason: payout.FailureReason.Ptr(),
		Notes:         payout.Notes.Ptr(),
	}
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	payout.ID = m.ID
	payout.CreatedAt = m.CreatedAt
	payout.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByID gets a payout by ID
func (r *PayoutRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Payout, error) {
	var m models.Payout
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// GetByVendorID lists a vendor's payouts with pagination, newest first
func (r *PayoutRepository) GetByVendorID(ctx context.Context, vendorID uuid.UUID, limit, offset int) ([]*entities.Payout, int, error) {
	db := GetDB(ctx, r.db)

	var total int64
	if err := db.WithContext(ctx).Model(&models.Payout{}).
		Where("vendor_id = ?", vendorID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ms []models.Payout
	if err := db.WithContext(ctx).
		Where("vendor_id = ?", vendorID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&ms).Error; err != nil {
		return nil, 0, err
	}

	payouts := make([]*entities.Payout, 0, len(ms))
	for i := range ms {
		payouts = append(payouts, r.toEntity(&ms[i]))
	}
	return payouts, int(total), nil
}

// SumByVendorID returns the total of the vendor's payout amounts across all
// statuses. Soft-deleted payouts are excluded by GORM's default scope.
func (r *PayoutRepository) SumByVendorID(ctx context.Context, vendorID uuid.UUID) (float64, error) {
	var total float64
	db := GetDB(ctx, r.db)
	err := db.WithContext(ctx).Model(&models.Payout{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("vendor_id = ?", vendorID).
		Scan(&total).Error
	return total, err
}

// SumByVendorGroupedByStatus returns payout totals per status for the period.
// Zero vendorID aggregates across all vendors.
func (r *PayoutRepository) SumByVendorGroupedByStatus(ctx context.Context, vendorID uuid.UUID, from, to time.Time) (map[entities.PayoutStatus]float64, error) {
	type row struct {
		Status string
		Total  float64
	}
	var rows []row

	db := GetDB(ctx, r.db)
	query := db.WithContext(ctx).Model(&models.Payout{}).
		Select("status, COALESCE(SUM(amount), 0) AS total").
		Where("created_at >= ? AND created_at < ?", from, to).
		Group("status")
	if vendorID != uuid.Nil {
		query = query.Where("vendor_id = ?", vendorID)
	}
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}

	totals := make(map[entities.PayoutStatus]float64, len(rows))
	for _, r := range rows {
		totals[entities.PayoutStatus(r.Status)] = r.Total
	}
	return totals, nil
}

// Update persists status, processed time, failure reason and notes
func (r *PayoutRepository) Update(ctx context.Context, payout *entities.Payout) error {
	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).Model(&models.Payout{}).
		Where("id = ?", payout.ID).
		Updates(map[string]interface{}{
			"status":         string(payout.Status),
			"processed_at":   payout.ProcessedAt.Ptr(),
			"failure_reason": payout.FailureReason.Ptr(),
			"notes":          payout.Notes.Ptr(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// SoftDelete removes a payout from the books without destroying history
func (r *PayoutRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).Where("id = ?", id).Delete(&models.Payout{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *PayoutRepository) toEntity(m *models.Payout) *entities.Payout {
	p := &entities.Payout{
		ID:            m.ID,
		VendorID:      m.VendorID,
		Amount:        m.Amount,
		Status:        entities.PayoutStatus(m.Status),
		ScheduledDate: m.ScheduledDate,
		ProcessedAt:   null.TimeFromPtr(m.ProcessedAt),
		FailureReason: null.StringFromPtr(m.FailureReason),
		Notes:         null.StringFromPtr(m.Notes),
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
	if m.DeletedAt.Valid {
		p.DeletedAt = null.TimeFrom(m.DeletedAt.Time)
	}
	return p
}
