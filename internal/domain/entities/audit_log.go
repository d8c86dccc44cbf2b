package entities

import (
	"time"

	"github.com/google/uuid"
)

// AuditLog records one state-changing operation on a core entity
type AuditLog struct {
	ID         uuid.UUID              `json:"id"`
	ActorID    *uuid.UUID             `json:"actorId,omitempty"`
	Action     string                 `json:"action"`
	EntityType string                 `json:"entityType"`
	EntityID   string                 `json:"entityId"`
	Details    map[string]interface{} `json:"details,omitempty"`
	CreatedAt  time.Time              `json:"createdAt"`
}

// Audit actions written by the financial core.
const (
	AuditActionOrderCreated        = "order.created"
	AuditActionCommissionCreated   = "commission.created"
	AuditActionPayoutRequested     = "payout.requested"
	AuditActionPayoutProcessed     = "payout.processed"
	AuditActionPayoutFailed        = "payout.failed"
	AuditActionPayoutUpdated       = "payout.updated"
	AuditActionPayoutDeleted       = "payout.deleted"
	AuditActionTrialRecorded       = "trial.recorded"
	AuditActionVendorStatusChanged = "vendor.status_changed"
	AuditActionSubscribed          = "subscription.created"
	AuditActionUnsubscribed        = "subscription.cancelled"
)
