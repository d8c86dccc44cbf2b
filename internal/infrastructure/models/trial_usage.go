package models

import (
	"time"

	"github.com/google/uuid"
)

type TrialUsage struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	UserID           uuid.UUID `gorm:"type:uuid;not null;index"`
	PlanID           uuid.UUID `gorm:"type:uuid;not null"`
	Email            string    `gorm:"type:varchar(255);not null;index"`
	IPAddress        string    `gorm:"type:varchar(64);not null;index"`
	PhoneNumber      *string   `gorm:"type:varchar(50)"`
	PaymentCardLast4 *string   `gorm:"type:varchar(4)"`
	TrialStartDate   time.Time `gorm:"not null"`
	TrialEndDate     time.Time `gorm:"not null;index"`
	FraudScore       int       `gorm:"not null;default:0"`
	IsFraudulent     bool      `gorm:"not null;default:false;index"`
	RiskNotes        string    `gorm:"type:text"`
	Status           string    `gorm:"type:varchar(50);not null;index"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (TrialUsage) TableName() string {
	return "trial_usage"
}
