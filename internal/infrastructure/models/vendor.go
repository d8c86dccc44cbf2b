package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Vendor struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;index"`
	BusinessName  string    `gorm:"type:varchar(255);not null"`
	BusinessEmail string    `gorm:"type:varchar(255);not null"`
	Status        string    `gorm:"type:varchar(50);not null;default:'PENDING_VERIFICATION';index"`
	MinimumPayout float64   `gorm:"type:decimal(12,2);not null;default:50"`
	VerifiedAt    *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}
