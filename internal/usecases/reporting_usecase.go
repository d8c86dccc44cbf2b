package usecases

import (
	"context"
	"time"

	"github.com/google/uuid"
	"vendor-pay.backend/internal/domain/entities"
	domainerrors "vendor-pay.backend/internal/domain/errors"
	"vendor-pay.backend/internal/domain/repositories"
	"vendor-pay.backend/pkg/utils"
)

// ReportingUsecase rolls up financial activity into period summaries
type ReportingUsecase struct {
	orderRepo      repositories.OrderRepository
	commissionRepo repositories.CommissionRepository
	payoutRepo     repositories.PayoutRepository
	vendorRepo     repositories.VendorRepository
	trialRepo      repositories.TrialUsageRepository
	payoutUC       *PayoutUsecase
}

// NewReportingUsecase creates a new reporting usecase
func NewReportingUsecase(
	orderRepo repositories.OrderRepository,
	commissionRepo repositories.CommissionRepository,
	payoutRepo repositories.PayoutRepository,
	vendorRepo repositories.VendorRepository,
	trialRepo repositories.TrialUsageRepository,
	payoutUC *PayoutUsecase,
) *ReportingUsecase {
	return &ReportingUsecase{
		orderRepo:      orderRepo,
		commissionRepo: commissionRepo,
		payoutRepo:     payoutRepo,
		vendorRepo:     vendorRepo,
		trialRepo:      trialRepo,
		payoutUC:       payoutUC,
	}
}

// VendorSummary aggregates one vendor's activity for [from, to).
func (u *ReportingUsecase) VendorSummary(ctx context.Context, vendorID uuid.UUID, from, to time.Time) (*entities.VendorSummary, error) {
	if !to.After(from) {
		return nil, domainerrors.ErrInvalidInput
	}

	orderCount, gross, err := u.orderRepo.AggregateByVendor(ctx, vendorID, from, to)
	if err != nil {
		return nil, err
	}

	commissionTotal, err := u.commissionRepo.SumByVendor(ctx, vendorID, from, to)
	if err != nil {
		return nil, err
	}

	payoutsByStatus, err := u.payoutRepo.SumByVendorGroupedByStatus(ctx, vendorID, from, to)
	if err != nil {
		return nil, err
	}

	balance, err := u.payoutUC.GetAvailableBalance(ctx, vendorID)
	if err != nil {
		return nil, err
	}

	return &entities.VendorSummary{
		VendorID:         vendorID,
		From:             from,
		To:               to,
		OrderCount:       orderCount,
		GrossSales:       utils.RoundCents(gross),
		CommissionTotal:  utils.RoundCents(commissionTotal),
		NetEarnings:      utils.RoundCents(gross - commissionTotal),
		PayoutsByStatus:  payoutsByStatus,
		AvailableBalance: balance.AvailableBalance,
	}, nil
}

// PlatformSummary aggregates activity across all vendors for [from, to).
func (u *ReportingUsecase) PlatformSummary(ctx context.Context, from, to time.Time) (*entities.PlatformSummary, error) {
	if !to.After(from) {
		return nil, domainerrors.ErrInvalidInput
	}

	orderCount, gross, err := u.orderRepo.AggregateByVendor(ctx, uuid.Nil, from, to)
	if err != nil {
		return nil, err
	}

	commissionTotal, err := u.commissionRepo.SumByVendor(ctx, uuid.Nil, from, to)
	if err != nil {
		return nil, err
	}

	payoutsByStatus, err := u.payoutRepo.SumByVendorGroupedByStatus(ctx, uuid.Nil, from, to)
	if err != nil {
		return nil, err
	}
	payoutTotal := 0.0
	for _, amount := range payoutsByStatus {
		payoutTotal += amount
	}

	activeVendors, err := u.vendorRepo.CountByStatus(ctx, entities.VendorStatusActive)
	if err != nil {
		return nil, err
	}

	flagged, err := u.trialRepo.CountFlaggedSince(ctx, from)
	if err != nil {
		return nil, err
	}

	return &entities.PlatformSummary{
		From:            from,
		To:              to,
		OrderCount:      orderCount,
		GrossSales:      utils.RoundCents(gross),
		CommissionTotal: utils.RoundCents(commissionTotal),
		PayoutTotal:     utils.RoundCents(payoutTotal),
		ActiveVendors:   activeVendors,
		TrialsFlagged:   flagged,
	}, nil
}
