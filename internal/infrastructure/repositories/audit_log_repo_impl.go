package repositories

import (
	"context"
	"encoding/json"

	"gorm.io/gorm"
	"vendor-pay.backend/internal/domain/entities"
	"vendor-pay.backend/internal/infrastructure/models"
)

// AuditLogRepository implements audit trail persistence
type AuditLogRepository struct {
	db *gorm.DB
}

// NewAuditLogRepository creates a new audit log repository
func NewAuditLogRepository(db *gorm.DB) *AuditLogRepository {
	return &AuditLogRepository{db: db}
}

// Create appends an audit entry
func (r *AuditLogRepository) Create(ctx context.Context, entry *entities.AuditLog) error {
	details := "{}"
	if len(entry.Details) > 0 {
		raw, err := json.Marshal(entry.Details)
		if err != nil {
			return err
		}
		details = string(raw)
	}

	m := &models.AuditLog{
		ID:         entry.ID,
		ActorID:    entry.ActorID,
		Action:     entry.Action,
		EntityType: entry.EntityType,
		EntityID:   entry.EntityID,
		Details:    details,
	}
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	entry.ID = m.ID
	entry.CreatedAt = m.CreatedAt
	return nil
}

// ListByEntity lists audit entries for one entity, newest first
func (r *AuditLogRepository) ListByEntity(ctx context.Context, entityType, entityID string, limit, offset int) ([]*entities.AuditLog, int, error) {
	db := GetDB(ctx, r.db)

	var total int64
	if err := db.WithContext(ctx).Model(&models.AuditLog{}).
		Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ms []models.AuditLog
	if err := db.WithContext(ctx).
		Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&ms).Error; err != nil {
		return nil, 0, err
	}

	entries := make([]*entities.AuditLog, 0, len(ms))
	for i := range ms {
		entries = append(entries, r.toEntity(&ms[i]))
	}
	return entries, int(total), nil
}

func (r *AuditLogRepository) toEntity(m *models.AuditLog) *entities.AuditLog {
	entry := &entities.AuditLog{
		ID:         m.ID,
		ActorID:    m.ActorID,
		Action:     m.Action,
		EntityType: m.EntityType,
		EntityID:   m.EntityID,
		CreatedAt:  m.CreatedAt,
	}
	if m.Details != "" && m.Details != "{}" {
		var details map[string]interface{}
		if err := json.Unmarshal([]byte(m.Details), &details); err == nil {
			entry.Details = details
		}
	}
	return entry
}
