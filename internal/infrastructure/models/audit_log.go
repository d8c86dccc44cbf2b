package models

import (
	"time"

	"github.com/google/uuid"
)

type AuditLog struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	ActorID    *uuid.UUID `gorm:"type:uuid;index"`
	Action     string     `gorm:"type:varchar(100);not null;index"`
	EntityType string     `gorm:"type:varchar(50);not null;index"`
	EntityID   string     `gorm:"type:varchar(100);not null;index"`
	Details    string     `gorm:"type:jsonb;default:'{}'"`
	CreatedAt  time.Time
}
