package usecases

import (
	"time"

	"vendor-pay.backend/internal/domain/entities"
)

// Commission rates by subscription tier. Resolved once at order time and
// snapshotted on the commission record.
var tierCommissionRates = map[entities.SubscriptionTier]float64{
	entities.SubscriptionTierStarter:    0.20,
	entities.SubscriptionTierBasic:      0.20,
	entities.SubscriptionTierPro:        0.15,
	entities.SubscriptionTierEnterprise: 0.10,
}

// DefaultCommissionRate applies when a vendor has no active subscription.
const DefaultCommissionRate = 0.15

// CommissionRateForTier resolves the commission rate for a tier, falling
// back to the default rate for unknown tiers.
func CommissionRateForTier(tier entities.SubscriptionTier) float64 {
	if rate, ok := tierCommissionRates[tier]; ok {
		return rate
	}
	return DefaultCommissionRate
}

// Fraud signal weights. Signals are independent and additive so the total
// stays auditable and individually tunable.
const (
	FraudWeightPreviousTrial  = 50
	FraudWeightIPReuse        = 30
	FraudWeightDomainReuse    = 25
	FraudWeightSuspiciousMail = 20
	FraudWeightMissingCard    = 40
	FraudWeightYoungAccount   = 15
)

// Fraud signal trigger thresholds.
const (
	FraudIPReuseLimit     = 3
	FraudDomainReuseLimit = 5
	FraudLookbackWindow   = 30 * 24 * time.Hour
	FraudYoungAccountAge  = time.Hour
)

// Risk score thresholds. Denials start at MEDIUM: trial abuse is direct
// revenue loss, so the bias is toward false positives.
const (
	RiskScoreHigh        = 70
	RiskScoreMediumDeny  = 40
	RiskScoreMediumAllow = 20
	MaxFraudScore        = 100
)
