package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// PayoutStatus represents payout lifecycle status
type PayoutStatus string

const (
	PayoutStatusPending    PayoutStatus = "PENDING"
	PayoutStatusProcessing PayoutStatus = "PROCESSING"
	PayoutStatusCompleted  PayoutStatus = "COMPLETED"
	PayoutStatusFailed     PayoutStatus = "FAILED"
)

// Payout represents a settlement of accumulated commissions to a vendor
type Payout struct {
	ID            uuid.UUID    `json:"id"`
	VendorID      uuid.UUID    `json:"vendorId"`
	Amount        float64      `json:"amount"`
	Status        PayoutStatus `json:"status"`
	ScheduledDate time.Time    `json:"scheduledDate"`
	ProcessedAt   null.Time    `json:"processedAt,omitempty"`
	FailureReason null.String  `json:"failureReason,omitempty"`
	Notes         null.String  `json:"notes,omitempty"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`
	DeletedAt     null.Time    `json:"-"`

	// Joins
	Commissions []*Commission `json:"commissions,omitempty"`
}

// Deletable reports whether the payout may be removed. Payouts that are
// in flight or already settled must stay on the books.
func (p *Payout) Deletable() bool {
	return p.Status != PayoutStatusCompleted && p.Status != PayoutStatusProcessing
}

// RequestPayoutInput represents vendor input for requesting a payout
type RequestPayoutInput struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
	Notes  string  `json:"notes,omitempty"`
}

// UpdatePayoutInput represents admin input for a payout status change
type UpdatePayoutInput struct {
	Status PayoutStatus `json:"status" binding:"required"`
	Notes  string       `json:"notes,omitempty"`
}

// BalanceResponse represents a vendor's available balance
type BalanceResponse struct {
	VendorID         uuid.UUID `json:"vendorId"`
	TotalEarnings    float64   `json:"totalEarnings"`
	TotalPayouts     float64   `json:"totalPayouts"`
	AvailableBalance float64   `json:"availableBalance"`
	MinimumPayout    float64   `json:"minimumPayout"`
}
