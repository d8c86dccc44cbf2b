package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"vendor-pay.backend/internal/domain/entities"
	domainerrors "vendor-pay.backend/internal/domain/errors"
	"vendor-pay.backend/internal/infrastructure/models"
)

// CommissionRepository implements commission data operations
type CommissionRepository struct {
	db *gorm.DB
}

// NewCommissionRepository creates a new commission repository
func NewCommissionRepository(db *gorm.DB) *CommissionRepository {
	return &CommissionRepository{db: db}
}

// Create creates a new commission record
func (r *CommissionRepository) Create(ctx context.Context, commission *entities.Commission) error {
	breakdown := "{}"
	if commission.Breakdown != nil {
		raw, err := json.Marshal(commission.Breakdown)
		if err != nil {
			return err
		}
		breakdown = string(raw)
	}

	m := &models.Commission{
		ID:        commission.ID,
		OrderID:   commission.OrderID,
		VendorID:  commission.VendorID,
		Amount:    commission.Amount,
		Rate:      commission.Rate,
		Status:    string(commission.Status),
		PayoutID:  commission.PayoutID,
		Breakdown: breakdown,
	}
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	commission.ID = m.ID
	commission.CreatedAt = m.CreatedAt
	commission.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByID gets a commission by ID
func (r *CommissionRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Commission, error) {
	var m models.Commission
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// GetByOrderID gets the commission linked to an order
func (r *CommissionRepository) GetByOrderID(ctx context.Context, orderID uuid.UUID) (*entities.Commission, error) {
	var m models.Commission
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Where("order_id = ?", orderID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// GetByVendorID gets a vendor's commissions with orders preloaded, oldest first
func (r *CommissionRepository) GetByVendorID(ctx context.Context, vendorID uuid.UUID) ([]*entities.Commission, error) {
	var ms []models.Commission
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Preload("Order").
		Where("vendor_id = ?", vendorID).
		Order("created_at ASC").
		Find(&ms).Error; err != nil {
		return nil, err
	}
	return r.toEntities(ms), nil
}

// GetUnassignedByVendorID gets commissions not yet linked to any payout,
// oldest first. Cancelled commissions never enter a payout.
func (r *CommissionRepository) GetUnassignedByVendorID(ctx context.Context, vendorID uuid.UUID) ([]*entities.Commission, error) {
	var ms []models.Commission
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Preload("Order").
		Where("vendor_id = ? AND payout_id IS NULL AND status <> ?",
			vendorID, string(entities.CommissionStatusCancelled)).
		Order("created_at ASC").
		Find(&ms).Error; err != nil {
		return nil, err
	}
	return r.toEntities(ms), nil
}

// GetByPayoutID gets the commissions linked to a payout, oldest first
func (r *CommissionRepository) GetByPayoutID(ctx context.Context, payoutID uuid.UUID) ([]*entities.Commission, error) {
	var ms []models.Commission
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Preload("Order").
		Where("payout_id = ?", payoutID).
		Order("created_at ASC").
		Find(&ms).Error; err != nil {
		return nil, err
	}
	return r.toEntities(ms), nil
}

// AssignToPayout links the given commissions to a payout and moves them
// to CALCULATED
func (r *CommissionRepository) AssignToPayout(ctx context.Context, ids []uuid.UUID, payoutID uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	db := GetDB(ctx, r.db)
	return db.WithContext(ctx).Model(&models.Commission{}).
		Where("id IN ?", ids).
		Updates(map[string]interface{}{
			"payout_id": payoutID,
			"status":    string(entities.CommissionStatusCalculated),
		}).Error
}

// UnassignFromPayout releases a payout's commissions back to PENDING so a
// later payout can pick them up
func (r *CommissionRepository) UnassignFromPayout(ctx context.Context, payoutID uuid.UUID) error {
	db := GetDB(ctx, r.db)
	return db.WithContext(ctx).Model(&models.Commission{}).
		Where("payout_id = ?", payoutID).
		Updates(map[string]interface{}{
			"payout_id": nil,
			"status":    string(entities.CommissionStatusPending),
		}).Error
}

// MarkPaidByPayoutID moves a payout's commissions to PAID
func (r *CommissionRepository) MarkPaidByPayoutID(ctx context.Context, payoutID uuid.UUID) error {
	db := GetDB(ctx, r.db)
	return db.WithContext(ctx).Model(&models.Commission{}).
		Where("payout_id = ?", payoutID).
		Update("status", string(entities.CommissionStatusPaid)).Error
}

// SumByVendor returns total commission taken for a vendor in [from, to).
// Cancelled commissions are excluded.
func (r *CommissionRepository) SumByVendor(ctx context.Context, vendorID uuid.UUID, from, to time.Time) (float64, error) {
	var total float64
	db := GetDB(ctx, r.db)
	query := db.WithContext(ctx).Model(&models.Commission{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("status <> ?", string(entities.CommissionStatusCancelled)).
		Where("created_at >= ? AND created_at < ?", from, to)
	if vendorID != uuid.Nil {
		query = query.Where("vendor_id = ?", vendorID)
	}
	if err := query.Scan(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (r *CommissionRepository) toEntity(m *models.Commission) *entities.Commission {
	c := &entities.Commission{
		ID:        m.ID,
		OrderID:   m.OrderID,
		VendorID:  m.VendorID,
		Amount:    m.Amount,
		Rate:      m.Rate,
		Status:    entities.CommissionStatus(m.Status),
		PayoutID:  m.PayoutID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	if m.Breakdown != "" && m.Breakdown != "{}" {
		var b entities.CommissionBreakdown
		if err := json.Unmarshal([]byte(m.Breakdown), &b); err == nil {
			c.Breakdown = &b
		}
	}
	if m.Order.ID != uuid.Nil {
		c.Order = &entities.Order{
			ID:         m.Order.ID,
			VendorID:   m.Order.VendorID,
			CustomerID: m.Order.CustomerID,
			ProductID:  m.Order.ProductID,
			Quantity:   m.Order.Quantity,
			TotalPrice: m.Order.TotalPrice,
			Status:     entities.OrderStatus(m.Order.Status),
			CreatedAt:  m.Order.CreatedAt,
			UpdatedAt:  m.Order.UpdatedAt,
		}
	}
	return c
}

func (r *CommissionRepository) toEntities(ms []models.Commission) []*entities.Commission {
	commissions := make([]*entities.Commission, 0, len(ms))
	for i := range ms {
		commissions = append(commissions, r.toEntity(&ms[i]))
	}
	return commissions
}
