package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Payout struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	VendorID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Amount        float64   `gorm:"type:decimal(12,2);not null"`
	Status        string    `gorm:"type:varchar(50);not null;index"`
	ScheduledDate time.Time `gorm:"not null"`
	ProcessedAt   *time.Time
	FailureReason *string `gorm:"type:text"`
	Notes         *string `gorm:"type:text"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}
