package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// TrialStatus represents trial lifecycle status
type TrialStatus string

const (
	TrialStatusActive    TrialStatus = "ACTIVE"
	TrialStatusConverted TrialStatus = "CONVERTED"
	TrialStatusExpired   TrialStatus = "EXPIRED"
	TrialStatusCancelled TrialStatus = "CANCELLED"
)

// RiskLevel buckets a fraud score into an allow/deny decision band
type RiskLevel string

const (
	RiskLevelLow    RiskLevel = "LOW"
	RiskLevelMedium RiskLevel = "MEDIUM"
	RiskLevelHigh   RiskLevel = "HIGH"
)

// TrialUsage records one trial signup attempt. The fraud score and reasons
// are immutable once written; only the lifecycle status changes afterwards.
type TrialUsage struct {
	ID                uuid.UUID   `json:"id"`
	UserID            uuid.UUID   `json:"userId"`
	PlanID            uuid.UUID   `json:"planId"`
	Email             string      `json:"email"`
	IPAddress         string      `json:"ipAddress"`
	PhoneNumber       null.String `json:"phoneNumber,omitempty"`
	PaymentCardLast4  null.String `json:"paymentCardLast4,omitempty"`
	TrialStartDate    time.Time   `json:"trialStartDate"`
	TrialEndDate      time.Time   `json:"trialEndDate"`
	FraudScore        int         `json:"fraudScore"`
	IsFraudulent      bool        `json:"isFraudulent"`
	RiskNotes         string      `json:"riskNotes,omitempty"`
	Status            TrialStatus `json:"status"`
	CreatedAt         time.Time   `json:"createdAt"`
	UpdatedAt         time.Time   `json:"updatedAt"`
}

// TrialSignupInput represents a trial signup request to be scored
type TrialSignupInput struct {
	UserID           uuid.UUID `json:"userId" binding:"required"`
	PlanID           uuid.UUID `json:"planId" binding:"required"`
	Email            string    `json:"email" binding:"required,email"`
	IPAddress        string    `json:"ipAddress" binding:"required"`
	PhoneNumber      string    `json:"phoneNumber,omitempty"`
	PaymentCardLast4 string    `json:"paymentCardLast4,omitempty"`
	AccountCreatedAt time.Time `json:"accountCreatedAt,omitempty"`
}

// FraudCheckResult represents the outcome of a trial eligibility check
type FraudCheckResult struct {
	IsAllowed  bool      `json:"isAllowed"`
	FraudScore int       `json:"fraudScore"`
	Reasons    []string  `json:"reasons"`
	RiskLevel  RiskLevel `json:"riskLevel"`
}
