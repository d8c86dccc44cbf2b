package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Product struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	VendorID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Name      string    `gorm:"type:varchar(255);not null"`
	Price     float64   `gorm:"type:decimal(12,2);not null"`
	Stock     int       `gorm:"not null;default:0"`
	IsActive  bool      `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

type Order struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	VendorID   uuid.UUID `gorm:"type:uuid;not null;index"`
	CustomerID uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID  uuid.UUID `gorm:"type:uuid;not null"`
	Quantity   int       `gorm:"not null"`
	TotalPrice float64   `gorm:"type:decimal(12,2);not null"`
	Status     string    `gorm:"type:varchar(50);not null;index"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Product Product `gorm:"foreignKey:ProductID"`
}
