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
	domainRepos "vendor-pay.backend/internal/domain/repositories"
	"vendor-pay.backend/internal/infrastructure/models"
)

// TrialUsageRepository implements trial usage data operations
type TrialUsageRepository struct {
	db *gorm.DB
}

// NewTrialUsageRepository creates a new trial usage repository
func NewTrialUsageRepository(db *gorm.DB) *TrialUsageRepository {
	return &TrialUsageRepository{db: db}
}

// Create creates a new trial usage record
func (r *TrialUsageRepository) Create(ctx context.Context, usage *entities.TrialUsage) error {
	m := &models.TrialUsage{
		ID:               usage.ID,
		UserID:           usage.UserID,
		PlanID:           usage.PlanID,
		Email:            usage.Email,
		IPAddress:        usage.IPAddress,
		PhoneNumber:      usage.PhoneNumber.Ptr(),
		PaymentCardLast4: usage.PaymentCardLast4.Ptr(),
		TrialStartDate:   usage.TrialStartDate,
		TrialEndDate:     usage.TrialEndDate,
		FraudScore:       usage.FraudScore,
		IsFraudulent:     usage.IsFraudulent,
		RiskNotes:        usage.RiskNotes,
		Status:           string(usage.Status),
	}
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	usage.ID = m.ID
	usage.CreatedAt = m.CreatedAt
	usage.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByID gets a trial usage record by ID
func (r *TrialUsageRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.TrialUsage, error) {
	var m models.TrialUsage
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// ExistsMatching reports whether any prior trial matches one of the query's
// identity fields. Empty fields are skipped.
func (r *TrialUsageRepository) ExistsMatching(ctx context.Context, q domainRepos.TrialUsageQuery) (bool, error) {
	conditions := make([]string, 0, 5)
	args := make([]interface{}, 0, 5)

	if q.UserID != uuid.Nil {
		conditions = append(conditions, "user_id = ?")
		args = append(args, q.UserID)
	}
	if q.Email != "" {
		conditions = append(conditions, "email = ?")
		args = append(args, q.Email)
	}
	if q.IPAddress != "" {
		conditions = append(conditions, "ip_address = ?")
		args = append(args, q.IPAddress)
	}
	if q.PhoneNumber != "" {
		conditions = append(conditions, "phone_number = ?")
		args = append(args, q.PhoneNumber)
	}
	if q.PaymentCardLast4 != "" {
		conditions = append(conditions, "payment_card_last4 = ?")
		args = append(args, q.PaymentCardLast4)
	}
	if len(conditions) == 0 {
		return false, nil
	}

	where := conditions[0]
	for _, c := range conditions[1:] {
		where += " OR " + c
	}

	var count int64
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Model(&models.TrialUsage{}).
		Where(where, args...).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountByIPSince counts trials started from an IP since the given time
func (r *TrialUsageRepository) CountByIPSince(ctx context.Context, ipAddress string, since time.Time) (int64, error) {
	var count int64
	db := GetDB(ctx, r.db)
	err := db.WithContext(ctx).Model(&models.TrialUsage{}).
		Where("ip_address = ? AND created_at >= ?", ipAddress, since).
		Count(&count).Error
	return count, err
}

// CountByEmailDomainSince counts trials whose signup email belongs to the
// given domain since the given time
func (r *TrialUsageRepository) CountByEmailDomainSince(ctx context.Context, domain string, since time.Time) (int64, error) {
	var count int64
	db := GetDB(ctx, r.db)
	err := db.WithContext(ctx).Model(&models.TrialUsage{}).
		Where("email LIKE ? AND created_at >= ?", "%@"+domain, since).
		Count(&count).Error
	return count, err
}

// CountFlaggedSince counts trials flagged as fraudulent since the given time
func (r *TrialUsageRepository) CountFlaggedSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	db := GetDB(ctx, r.db)
	err := db.WithContext(ctx).Model(&models.TrialUsage{}).
		Where("is_fraudulent = ? AND created_at >= ?", true, since).
		Count(&count).Error
	return count, err
}

// UpdateStatus updates a trial's lifecycle status
func (r *TrialUsageRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.TrialStatus) error {
	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).Model(&models.TrialUsage{}).
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

// GetExpiredActive returns active trials whose end date has passed
func (r *TrialUsageRepository) GetExpiredActive(ctx context.Context, limit int) ([]*entities.TrialUsage, error) {
	var ms []models.TrialUsage
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).
		Where("status = ? AND trial_end_date < ?", string(entities.TrialStatusActive), time.Now()).
		Order("trial_end_date ASC").
		Limit(limit).
		Find(&ms).Error; err != nil {
		return nil, err
	}
	usages := make([]*entities.TrialUsage, 0, len(ms))
	for i := range ms {
		usages = append(usages, r.toEntity(&ms[i]))
	}
	return usages, nil
}

// ExpireTrials moves the given trials to EXPIRED
func (r *TrialUsageRepository) ExpireTrials(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	db := GetDB(ctx, r.db)
	return db.WithContext(ctx).Model(&models.TrialUsage{}).
		Where("id IN ?", ids).
		Update("status", string(entities.TrialStatusExpired)).Error
}

func (r *TrialUsageRepository) toEntity(m *models.TrialUsage) *entities.TrialUsage {
	return &entities.TrialUsage{
		ID:               m.ID,
		UserID:           m.UserID,
		PlanID:           m.PlanID,
		Email:            m.Email,
		IPAddress:        m.IPAddress,
		PhoneNumber:      null.StringFromPtr(m.PhoneNumber),
		PaymentCardLast4: null.StringFromPtr(m.PaymentCardLast4),
		TrialStartDate:   m.TrialStartDate,
		TrialEndDate:     m.TrialEndDate,
		FraudScore:       m.FraudScore,
		IsFraudulent:     m.IsFraudulent,
		RiskNotes:        m.RiskNotes,
		Status:           entities.TrialStatus(m.Status),
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}
