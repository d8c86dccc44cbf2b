package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// VendorStatus represents vendor verification status
type VendorStatus string

const (
	VendorStatusPendingVerification VendorStatus = "PENDING_VERIFICATION"
	VendorStatusActive              VendorStatus = "ACTIVE"
	VendorStatusSuspended           VendorStatus = "SUSPENDED"
	VendorStatusInactive            VendorStatus = "INACTIVE"
	VendorStatusRejected            VendorStatus = "REJECTED"
)

// DefaultMinimumPayout is applied when a vendor has not configured one.
const DefaultMinimumPayout = 50.0

// Vendor represents a marketplace vendor
type Vendor struct {
	ID            uuid.UUID    `json:"id"`
	UserID        uuid.UUID    `json:"userId"`
	BusinessName  string       `json:"businessName"`
	BusinessEmail string       `json:"businessEmail"`
	Status        VendorStatus `json:"status"`
	MinimumPayout float64      `json:"minimumPayout"`
	VerifiedAt    null.Time    `json:"verifiedAt,omitempty"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`
	DeletedAt     null.Time    `json:"-"`

	// Joins
	Subscription *Subscription `json:"subscription,omitempty"`
}

// VendorApplyInput represents input for vendor registration
type VendorApplyInput struct {
	BusinessName  string  `json:"businessName" binding:"required,min=2,max=255"`
	BusinessEmail string  `json:"businessEmail" binding:"required,email"`
	MinimumPayout float64 `json:"minimumPayout,omitempty"`
}

// VendorStatusUpdateInput represents admin input for changing vendor status
type VendorStatusUpdateInput struct {
	Status VendorStatus `json:"status" binding:"required"`
	Reason string       `json:"reason,omitempty"`
}

// ValidVendorStatus reports whether s is a known vendor status.
func ValidVendorStatus(s VendorStatus) bool {
	switch s {
	case VendorStatusPendingVerification, VendorStatusActive, VendorStatusSuspended,
		VendorStatusInactive, VendorStatusRejected:
		return true
	}
	return false
}
