package repositories

import (
	"context"

	"vendor-pay.backend/internal/domain/entities"
)

// AuditLogRepository defines audit trail data operations
type AuditLogRepository interface {
	Create(ctx context.Context, entry *entities.AuditLog) error
	ListByEntity(ctx context.Context, entityType, entityID string, limit, offset int) ([]*entities.AuditLog, int, error)
}
