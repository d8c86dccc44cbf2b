package usecases

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/volatiletech/null/v8"
	"vendor-pay.backend/internal/domain/entities"
	domainerrors "vendor-pay.backend/internal/domain/errors"
	"vendor-pay.backend/internal/domain/repositories"
	"vendor-pay.backend/internal/metrics"
	"vendor-pay.backend/pkg/utils"
)

// Known throwaway email providers.
var disposableDomains = map[string]bool{
	"mailinator.com":    true,
	"guerrillamail.com": true,
	"10minutemail.com":  true,
	"tempmail.com":      true,
	"throwaway.email":   true,
	"yopmail.com":       true,
	"sharklasers.com":   true,
	"trashmail.com":     true,
}

var (
	suspiciousLocalPart  = regexp.MustCompile(`(test|fake|temp)\d+@`)
	suspiciousDomainWord = regexp.MustCompile(`(example|test|fake|temp)`)
)

// fraudSignal is one independent additive check. It returns a weight and a
// reason when triggered, or zero weight when not.
type fraudSignal func(ctx context.Context, in *entities.TrialSignupInput, plan *entities.SubscriptionPlan) (int, string, error)

// TrialFraudUsecase scores trial signups and records trial usage
type TrialFraudUsecase struct {
	trialRepo repositories.TrialUsageRepository
	planRepo  repositories.SubscriptionPlanRepository
	auditRepo repositories.AuditLogRepository
	now       func() time.Time
	signals   []fraudSignal
}

// NewTrialFraudUsecase creates a new trial fraud usecase
func NewTrialFraudUsecase(
	trialRepo repositories.TrialUsageRepository,
	planRepo repositories.SubscriptionPlanRepository,
	auditRepo repositories.AuditLogRepository,
) *TrialFraudUsecase {
	u := &TrialFraudUsecase{
		trialRepo: trialRepo,
		planRepo:  planRepo,
		auditRepo: auditRepo,
		now:       time.Now,
	}
	u.signals = []fraudSignal{
		u.checkPreviousTrial,
		u.checkIPReuse,
		u.checkDomainReuse,
		u.checkSuspiciousEmail,
		u.checkMissingCard,
		u.checkAccountAge,
	}
	return u
}

// CheckTrialEligibility folds the ordered signal list into a total score
// and buckets it into a risk level. Signals are additive, never
// multiplicative, so adding a triggered signal can only raise the score.
func (u *TrialFraudUsecase) CheckTrialEligibility(ctx context.Context, in *entities.TrialSignupInput) (*entities.FraudCheckResult, error) {
	plan, err := u.planRepo.GetByID(ctx, in.PlanID)
	if err != nil {
		return nil, err
	}

	score := 0
	var reasons []string
	for _, signal := range u.signals {
		weight, reason, err := signal(ctx, in, plan)
		if err != nil {
			return nil, err
		}
		if weight > 0 {
			score += weight
			reasons = append(reasons, reason)
		}
	}
	if score > MaxFraudScore {
		score = MaxFraudScore
	}

	result := &entities.FraudCheckResult{
		FraudScore: score,
		Reasons:    reasons,
	}
	switch {
	case score >= RiskScoreHigh:
		result.RiskLevel = entities.RiskLevelHigh
		result.IsAllowed = false
	case score >= RiskScoreMediumDeny:
		result.RiskLevel = entities.RiskLevelMedium
		result.IsAllowed = false
	case score >= RiskScoreMediumAllow:
		// Flagged but admitted.
		result.RiskLevel = entities.RiskLevelMedium
		result.IsAllowed = true
	default:
		result.RiskLevel = entities.RiskLevelLow
		result.IsAllowed = true
	}

	metrics.TrialChecks.WithLabelValues(string(result.RiskLevel)).Inc()
	metrics.FraudScore.Observe(float64(score))
	if !result.IsAllowed {
		metrics.TrialDenials.Inc()
	}
	return result, nil
}

func (u *TrialFraudUsecase) checkPreviousTrial(ctx context.Context, in *entities.TrialSignupInput, _ *entities.SubscriptionPlan) (int, string, error) {
	found, err := u.trialRepo.ExistsMatching(ctx, repositories.TrialUsageQuery{
		UserID:           in.UserID,
		Email:            in.Email,
		IPAddress:        in.IPAddress,
		PhoneNumber:      in.PhoneNumber,
		PaymentCardLast4: in.PaymentCardLast4,
	})
	if err != nil {
		return 0, "", err
	}
	if found {
		return FraudWeightPreviousTrial, "Previous trial usage detected", nil
	}
	return 0, "", nil
}

func (u *TrialFraudUsecase) checkIPReuse(ctx context.Context, in *entities.TrialSignupInput, _ *entities.SubscriptionPlan) (int, string, error) {
	since := u.now().Add(-FraudLookbackWindow)
	count, err := u.trialRepo.CountByIPSince(ctx, in.IPAddress, since)
	if err != nil {
		return 0, "", err
	}
	if count >= FraudIPReuseLimit {
		return FraudWeightIPReuse, "Multiple trials from the same IP address", nil
	}
	return 0, "", nil
}

func (u *TrialFraudUsecase) checkDomainReuse(ctx context.Context, in *entities.TrialSignupInput, _ *entities.SubscriptionPlan) (int, string, error) {
	domain := emailDomain(in.Email)
	if domain == "" {
		return 0, "", nil
	}
	since := u.now().Add(-FraudLookbackWindow)
	count, err := u.trialRepo.CountByEmailDomainSince(ctx, domain, since)
	if err != nil {
		return 0, "", err
	}
	if count >= FraudDomainReuseLimit {
		return FraudWeightDomainReuse, "Multiple trials from the same email domain", nil
	}
	return 0, "", nil
}

func (u *TrialFraudUsecase) checkSuspiciousEmail(_ context.Context, in *entities.TrialSignupInput, _ *entities.SubscriptionPlan) (int, string, error) {
	if IsSuspiciousEmail(in.Email) {
		return FraudWeightSuspiciousMail, "Suspicious or disposable email address", nil
	}
	return 0, "", nil
}

func (u *TrialFraudUsecase) checkMissingCard(_ context.Context, in *entities.TrialSignupInput, plan *entities.SubscriptionPlan) (int, string, error) {
	if plan.RequiresPaymentCard && in.PaymentCardLast4 == "" {
		return FraudWeightMissingCard, "Plan requires a payment card but none was provided", nil
	}
	return 0, "", nil
}

func (u *TrialFraudUsecase) checkAccountAge(_ context.Context, in *entities.TrialSignupInput, _ *entities.SubscriptionPlan) (int, string, error) {
	if in.AccountCreatedAt.IsZero() {
		return 0, "", nil
	}
	if u.now().Sub(in.AccountCreatedAt) < FraudYoungAccountAge {
		return FraudWeightYoungAccount, "Account created less than an hour before signup", nil
	}
	return 0, "", nil
}

// IsSuspiciousEmail reports whether the address matches a known throwaway
// provider or a disposable naming pattern.
func IsSuspiciousEmail(email string) bool {
	lower := strings.ToLower(strings.TrimSpace(email))
	if suspiciousLocalPart.MatchString(lower) {
		return true
	}
	domain := emailDomain(lower)
	if domain == "" {
		return false
	}
	if disposableDomains[domain] {
		return true
	}
	return suspiciousDomainWord.MatchString(domain)
}

func emailDomain(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return ""
	}
	return strings.ToLower(email[at+1:])
}

// RecordTrialUsage persists the trial row for an admitted (or flagged)
// signup. The fraud score and reasons are written once and never mutated.
func (u *TrialFraudUsecase) RecordTrialUsage(ctx context.Context, in *entities.TrialSignupInput, result *entities.FraudCheckResult) (*entities.TrialUsage, error) {
	plan, err := u.planRepo.GetByID(ctx, in.PlanID)
	if err != nil {
		return nil, err
	}
	if plan.TrialDays <= 0 {
		return nil, domainerrors.ErrInvalidState
	}

	// Denied signups are still recorded so repeat attempts keep scoring,
	// but they never become an active trial.
	status := entities.TrialStatusActive
	if !result.IsAllowed {
		status = entities.TrialStatusCancelled
	}

	start := u.now()
	usage := &entities.TrialUsage{
		ID:             utils.GenerateUUIDv7(),
		UserID:         in.UserID,
		PlanID:         in.PlanID,
		Email:          in.Email,
		IPAddress:      in.IPAddress,
		TrialStartDate: start,
		TrialEndDate:   start.AddDate(0, 0, plan.TrialDays),
		FraudScore:     result.FraudScore,
		IsFraudulent:   result.RiskLevel == entities.RiskLevelHigh,
		RiskNotes:      strings.Join(result.Reasons, "; "),
		Status:         status,
		CreatedAt:      start,
		UpdatedAt:      start,
	}
	if in.PhoneNumber != "" {
		usage.PhoneNumber = null.StringFrom(in.PhoneNumber)
	}
	if in.PaymentCardLast4 != "" {
		usage.PaymentCardLast4 = null.StringFrom(in.PaymentCardLast4)
	}

	if err := u.trialRepo.Create(ctx, usage); err != nil {
		return nil, err
	}

	actorID := in.UserID
	if err := u.auditRepo.Create(ctx, &entities.AuditLog{
		ID:         utils.GenerateUUIDv7(),
		ActorID:    &actorID,
		Action:     entities.AuditActionTrialRecorded,
		EntityType: "trial_usage",
		EntityID:   usage.ID.String(),
		Details: map[string]interface{}{
			"planId":     in.PlanID.String(),
			"fraudScore": result.FraudScore,
			"riskLevel":  string(result.RiskLevel),
		},
		CreatedAt: start,
	}); err != nil {
		return nil, err
	}

	return usage, nil
}
