package models

import (
	"time"

	"github.com/google/uuid"
)

type SubscriptionPlan struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	Name                string    `gorm:"type:varchar(255);not null"`
	Tier                string    `gorm:"type:varchar(50);not null"`
	Price               float64   `gorm:"type:decimal(12,2);not null"`
	BillingCycle        string    `gorm:"type:varchar(50);not null;default:'MONTHLY'"`
	TrialDays           int       `gorm:"not null;default:0"`
	RequiresPaymentCard bool      `gorm:"not null;default:false"`
	IsActive            bool      `gorm:"not null;default:true;index"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

type Subscription struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	VendorID     uuid.UUID `gorm:"type:uuid;not null;index"`
	PlanID       uuid.UUID `gorm:"type:uuid;not null"`
	Tier         string    `gorm:"type:varchar(50);not null"`
	Status       string    `gorm:"type:varchar(50);not null;index"`
	Price        float64   `gorm:"type:decimal(12,2);not null"`
	BillingCycle string    `gorm:"type:varchar(50);not null"`
	TrialEndDate *time.Time
	StartedAt    time.Time `gorm:"not null"`
	CancelledAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Plan SubscriptionPlan `gorm:"foreignKey:PlanID"`
}
