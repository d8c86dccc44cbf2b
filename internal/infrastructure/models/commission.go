package models

import (
	"time"

	"github.com/google/uuid"
)

type Commission struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	OrderID   uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex"`
	VendorID  uuid.UUID  `gorm:"type:uuid;not null;index"`
	Amount    float64    `gorm:"type:decimal(12,2);not null"`
	Rate      float64    `gorm:"type:decimal(5,4);not null"`
	Status    string     `gorm:"type:varchar(50);not null;index"`
	PayoutID  *uuid.UUID `gorm:"type:uuid;index"` // Nullable until assigned to a payout
	Breakdown string     `gorm:"type:jsonb;default:'{}'"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Order Order `gorm:"foreignKey:OrderID"`
}
