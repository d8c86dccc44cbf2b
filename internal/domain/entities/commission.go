package entities

import (
	"time"

	"github.com/google/uuid"
)

// CommissionStatus represents commission lifecycle status
type CommissionStatus string

const (
	CommissionStatusPending    CommissionStatus = "PENDING"
	CommissionStatusCalculated CommissionStatus = "CALCULATED"
	CommissionStatusPaid       CommissionStatus = "PAID"
	CommissionStatusCancelled  CommissionStatus = "CANCELLED"
)

// Commission represents the platform's cut of a single order.
// Amount and rate are snapshotted at order time; the breakdown keeps the
// inputs so historical records stay auditable after tier changes.
type Commission struct {
	ID        uuid.UUID            `json:"id"`
	OrderID   uuid.UUID            `json:"orderId"`
	VendorID  uuid.UUID            `json:"vendorId"`
	Amount    float64              `json:"amount"`
	Rate      float64              `json:"rate"`
	Status    CommissionStatus     `json:"status"`
	PayoutID  *uuid.UUID           `json:"payoutId,omitempty"`
	Breakdown *CommissionBreakdown `json:"breakdown,omitempty"`
	CreatedAt time.Time            `json:"createdAt"`
	UpdatedAt time.Time            `json:"updatedAt"`

	// Joins
	Order *Order `json:"order,omitempty"`
}

// CommissionBreakdown stores the rate inputs captured at calculation time
type CommissionBreakdown struct {
	OrderTotal float64          `json:"orderTotal"`
	Rate       float64          `json:"rate"`
	Tier       SubscriptionTier `json:"tier"`
}

// NetAmount returns the vendor's share of the commission's order, preferring
// the snapshot and falling back to the linked order's current total.
func (c *Commission) NetAmount() float64 {
	if c.Breakdown != nil {
		return c.Breakdown.OrderTotal - c.Amount
	}
	if c.Order != nil {
		return c.Order.TotalPrice - c.Amount
	}
	return -c.Amount
}

// CommissionResult represents the computed commission for one order
type CommissionResult struct {
	CommissionAmount float64 `json:"commissionAmount"`
	NetPayout        float64 `json:"netPayout"`
	Rate             float64 `json:"rate"`
}
