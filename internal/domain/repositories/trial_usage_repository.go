package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"vendor-pay.backend/internal/domain/entities"
)

// TrialUsageQuery matches prior trial usage by any of its identity signals.
// Empty string fields are ignored.
type TrialUsageQuery struct {
	UserID           uuid.UUID
	Email            string
	IPAddress        string
	PhoneNumber      string
	PaymentCardLast4 string
}

// TrialUsageRepository defines trial usage data operations
type TrialUsageRepository interface {
	Create(ctx context.Context, usage *entities.TrialUsage) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.TrialUsage, error)
	// ExistsMatching reports whether any prior trial matches one or more of
	// the query's signals.
	ExistsMatching(ctx context.Context, q TrialUsageQuery) (bool, error)
	CountByIPSince(ctx context.Context, ipAddress string, since time.Time) (int64, error)
	CountByEmailDomainSince(ctx context.Context, domain string, since time.Time) (int64, error)
	CountFlaggedSince(ctx context.Context, since time.Time) (int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entities.TrialStatus) error
	// GetExpiredActive returns ACTIVE trials whose end date has passed.
	GetExpiredActive(ctx context.Context, limit int) ([]*entities.TrialUsage, error)
	ExpireTrials(ctx context.Context, ids []uuid.UUID) error
}
