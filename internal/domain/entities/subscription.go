package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// SubscriptionTier represents subscription plan tiers
type SubscriptionTier string

const (
	SubscriptionTierStarter    SubscriptionTier = "STARTER"
	SubscriptionTierBasic      SubscriptionTier = "BASIC"
	SubscriptionTierPro        SubscriptionTier = "PRO"
	SubscriptionTierEnterprise SubscriptionTier = "ENTERPRISE"
)

// SubscriptionStatus represents subscription lifecycle status
type SubscriptionStatus string

const (
	SubscriptionStatusActive    SubscriptionStatus = "ACTIVE"
	SubscriptionStatusInactive  SubscriptionStatus = "INACTIVE"
	SubscriptionStatusCancelled SubscriptionStatus = "CANCELLED"
)

// BillingCycle represents how often a subscription is billed
type BillingCycle string

const (
	BillingCycleMonthly BillingCycle = "MONTHLY"
	BillingCycleYearly  BillingCycle = "YEARLY"
)

// SubscriptionPlan represents a purchasable plan
type SubscriptionPlan struct {
	ID                  uuid.UUID        `json:"id"`
	Name                string           `json:"name"`
	Tier                SubscriptionTier `json:"tier"`
	Price               float64          `json:"price"`
	BillingCycle        BillingCycle     `json:"billingCycle"`
	TrialDays           int              `json:"trialDays"`
	RequiresPaymentCard bool             `json:"requiresPaymentCard"`
	IsActive            bool             `json:"isActive"`
	CreatedAt           time.Time        `json:"createdAt"`
	UpdatedAt           time.Time        `json:"updatedAt"`
}

// Subscription represents a vendor's plan membership.
// The tier is snapshotted at subscribe time so that historical commission
// rates survive later plan changes.
type Subscription struct {
	ID           uuid.UUID          `json:"id"`
	VendorID     uuid.UUID          `json:"vendorId"`
	PlanID       uuid.UUID          `json:"planId"`
	Tier         SubscriptionTier   `json:"tier"`
	Status       SubscriptionStatus `json:"status"`
	Price        float64            `json:"price"`
	BillingCycle BillingCycle       `json:"billingCycle"`
	TrialEndDate null.Time          `json:"trialEndDate,omitempty"`
	StartedAt    time.Time          `json:"startedAt"`
	CancelledAt  null.Time          `json:"cancelledAt,omitempty"`
	CreatedAt    time.Time          `json:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt"`

	// Joins
	Plan *SubscriptionPlan `json:"plan,omitempty"`
}

// SubscribeInput represents input for subscribing a vendor to a plan
type SubscribeInput struct {
	PlanID uuid.UUID `json:"planId" binding:"required"`
}
