package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"vendor-pay.backend/internal/domain/entities"
	domainerrors "vendor-pay.backend/internal/domain/errors"
	"vendor-pay.backend/internal/domain/repositories"
	"vendor-pay.backend/internal/metrics"
	"vendor-pay.backend/pkg/utils"
)

// PayoutProcessor performs the external settlement step for a payout.
// Implementations talk to the payment provider; failures are recorded on
// the payout, never propagated past the processing boundary.
type PayoutProcessor interface {
	Process(ctx context.Context, payout *entities.Payout) error
}

// PayoutUsecase handles balance computation, payout requests and the
// payout state machine
type PayoutUsecase struct {
	payoutRepo       repositories.PayoutRepository
	commissionRepo   repositories.CommissionRepository
	vendorRepo       repositories.VendorRepository
	subscriptionRepo repositories.SubscriptionRepository
	auditRepo        repositories.AuditLogRepository
	uow              repositories.UnitOfWork
	locker           repositories.VendorLocker
	processor        PayoutProcessor
}

// NewPayoutUsecase creates a new payout usecase
func NewPayoutUsecase(
	payoutRepo repositories.PayoutRepository,
	commissionRepo repositories.CommissionRepository,
	vendorRepo repositories.VendorRepository,
	subscriptionRepo repositories.SubscriptionRepository,
	auditRepo repositories.AuditLogRepository,
	uow repositories.UnitOfWork,
	locker repositories.VendorLocker,
	processor PayoutProcessor,
) *PayoutUsecase {
	return &PayoutUsecase{
		payoutRepo:       payoutRepo,
		commissionRepo:   commissionRepo,
		vendorRepo:       vendorRepo,
		subscriptionRepo: subscriptionRepo,
		auditRepo:        auditRepo,
		uow:              uow,
		locker:           locker,
		processor:        processor,
	}
}

// GetAvailableBalance computes the vendor's withdrawable balance.
// Earnings use each commission's breakdown snapshot, falling back to the
// linked order's current total when the snapshot is absent. Payouts count
// against the balance in every status: an in-flight or failed payout is
// still spoken for until an admin deletes it.
func (u *PayoutUsecase) GetAvailableBalance(ctx context.Context, vendorID uuid.UUID) (*entities.BalanceResponse, error) {
	vendor, err := u.vendorRepo.GetByID(ctx, vendorID)
	if err != nil {
		return nil, err
	}

	commissions, err := u.commissionRepo.GetByVendorID(ctx, vendorID)
	if err != nil {
		return nil, err
	}

	totalEarnings := 0.0
	for _, c := range commissions {
		if c.Status == entities.CommissionStatusCancelled {
			continue
		}
		totalEarnings += c.NetAmount()
	}
	totalEarnings = utils.RoundCents(totalEarnings)

	totalPayouts, err := u.payoutRepo.SumByVendorID(ctx, vendorID)
	if err != nil {
		return nil, err
	}

	minPayout := vendor.MinimumPayout
	if minPayout <= 0 {
		minPayout = entities.DefaultMinimumPayout
	}

	return &entities.BalanceResponse{
		VendorID:         vendorID,
		TotalEarnings:    totalEarnings,
		TotalPayouts:     utils.RoundCents(totalPayouts),
		AvailableBalance: utils.RoundCents(totalEarnings - totalPayouts),
		MinimumPayout:    minPayout,
	}, nil
}

// RequestPayout validates and creates a payout for the vendor, greedily
// associating their oldest unassigned commissions until the running net
// total covers the requested amount. The per-vendor lock spans the balance
// check and the insert so two concurrent requests cannot both pass it.
func (u *PayoutUsecase) RequestPayout(ctx context.Context, vendorID uuid.UUID, amount float64, notes string) (*entities.Payout, error) {
	if amount <= 0 {
		metrics.PayoutsRejected.WithLabelValues("invalid_input").Inc()
		return nil, domainerrors.ErrInvalidInput
	}

	if err := u.locker.Lock(ctx, vendorID.String()); err != nil {
		metrics.PayoutsRejected.WithLabelValues("conflict").Inc()
		return nil, err
	}
	defer u.locker.Unlock(ctx, vendorID.String())

	balance, err := u.GetAvailableBalance(ctx, vendorID)
	if err != nil {
		return nil, err
	}

	// The subscription anchors the payment method: no active plan, no payout.
	if _, err := u.subscriptionRepo.GetActiveByVendorID(ctx, vendorID); err != nil {
		if err == domainerrors.ErrNotFound {
			metrics.PayoutsRejected.WithLabelValues("no_subscription").Inc()
			return nil, domainerrors.ErrNoActiveSubscription
		}
		return nil, err
	}

	if amount < balance.MinimumPayout {
		metrics.PayoutsRejected.WithLabelValues("below_minimum").Inc()
		return nil, domainerrors.ErrBelowMinimumPayout
	}
	if amount > balance.AvailableBalance {
		metrics.PayoutsRejected.WithLabelValues("insufficient_balance").Inc()
		return nil, domainerrors.ErrInsufficientBalance
	}

	unassigned, err := u.commissionRepo.GetUnassignedByVendorID(ctx, vendorID)
	if err != nil {
		return nil, err
	}

	// Oldest first, stop once the cumulative net covers the request. The
	// linked sum may exceed the requested amount by design.
	var linked []uuid.UUID
	covered := 0.0
	for _, c := range unassigned {
		if covered >= amount {
			break
		}
		linked = append(linked, c.ID)
		covered += c.NetAmount()
	}

	payout := &entities.Payout{
		ID:            utils.GenerateUUIDv7(),
		VendorID:      vendorID,
		Amount:        utils.RoundCents(amount),
		Status:        entities.PayoutStatusPending,
		ScheduledDate: time.Now(),
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	if notes != "" {
		payout.Notes = null.StringFrom(notes)
	}

	// Payout insert and commission assignment commit together or not at all.
	if err := u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.payoutRepo.Create(txCtx, payout); err != nil {
			return err
		}
		if len(linked) > 0 {
			if err := u.commissionRepo.AssignToPayout(txCtx, linked, payout.ID); err != nil {
				return err
			}
		}
		return u.auditRepo.Create(txCtx, &entities.AuditLog{
			ID:         utils.GenerateUUIDv7(),
			Action:     entities.AuditActionPayoutRequested,
			EntityType: "payout",
			EntityID:   payout.ID.String(),
			Details: map[string]interface{}{
				"vendorId":          vendorID.String(),
				"amount":            payout.Amount,
				"linkedCommissions": len(linked),
			},
			CreatedAt: time.Now(),
		})
	}); err != nil {
		return nil, err
	}

	metrics.PayoutsRequested.Inc()
	return payout, nil
}

// ProcessPayout moves a PENDING payout to PROCESSING and runs the external
// settlement step. A processing failure is stored on the payout and its
// commissions are released back to the unassigned pool; the payout row
// keeps counting against the balance until an admin deletes it.
func (u *PayoutUsecase) ProcessPayout(ctx context.Context, payoutID uuid.UUID) error {
	payout, err := u.payoutRepo.GetByID(ctx, payoutID)
	if err != nil {
		return err
	}
	if payout.Status != entities.PayoutStatusPending {
		return domainerrors.ErrInvalidState
	}

	payout.Status = entities.PayoutStatusProcessing
	payout.ProcessedAt = null.TimeFrom(time.Now())
	payout.UpdatedAt = time.Now()
	if err := u.payoutRepo.Update(ctx, payout); err != nil {
		return err
	}

	if procErr := u.process(ctx, payout); procErr != nil {
		metrics.PayoutsProcessed.WithLabelValues("failed").Inc()
		return u.markFailed(ctx, payout, procErr.Error())
	}

	metrics.PayoutsProcessed.WithLabelValues("processing").Inc()
	return u.auditRepo.Create(ctx, &entities.AuditLog{
		ID:         utils.GenerateUUIDv7(),
		Action:     entities.AuditActionPayoutProcessed,
		EntityType: "payout",
		EntityID:   payout.ID.String(),
		Details:    map[string]interface{}{"status": string(payout.Status)},
		CreatedAt:  time.Now(),
	})
}

func (u *PayoutUsecase) process(ctx context.Context, payout *entities.Payout) error {
	if u.processor == nil {
		return nil
	}
	return u.processor.Process(ctx, payout)
}

// markFailed durably records a processing failure. Financial state must
// survive the external step failing, so this never returns the processing
// error itself.
func (u *PayoutUsecase) markFailed(ctx context.Context, payout *entities.Payout, reason string) error {
	payout.Status = entities.PayoutStatusFailed
	payout.FailureReason = null.StringFrom(reason)
	payout.UpdatedAt = time.Now()

	return u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.payoutRepo.Update(txCtx, payout); err != nil {
			return err
		}
		if err := u.commissionRepo.UnassignFromPayout(txCtx, payout.ID); err != nil {
			return err
		}
		return u.auditRepo.Create(txCtx, &entities.AuditLog{
			ID:         utils.GenerateUUIDv7(),
			Action:     entities.AuditActionPayoutFailed,
			EntityType: "payout",
			EntityID:   payout.ID.String(),
			Details:    map[string]interface{}{"failureReason": reason},
			CreatedAt:  time.Now(),
		})
	})
}

// payoutTransitions lists the admin-reachable status changes.
var payoutTransitions = map[entities.PayoutStatus][]entities.PayoutStatus{
	entities.PayoutStatusPending:    {entities.PayoutStatusProcessing, entities.PayoutStatusFailed},
	entities.PayoutStatusProcessing: {entities.PayoutStatusCompleted, entities.PayoutStatusFailed},
}

func transitionAllowed(from, to entities.PayoutStatus) bool {
	for _, next := range payoutTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// UpdatePayout applies an admin status change. COMPLETED marks the linked
// commissions PAID; FAILED releases them back to the pool.
func (u *PayoutUsecase) UpdatePayout(ctx context.Context, payoutID uuid.UUID, status entities.PayoutStatus, notes string, actorID uuid.UUID) (*entities.Payout, error) {
	payout, err := u.payoutRepo.GetByID(ctx, payoutID)
	if err != nil {
		return nil, err
	}
	if !transitionAllowed(payout.Status, status) {
		return nil, domainerrors.ErrInvalidState
	}

	prev := payout.Status
	payout.Status = status
	payout.UpdatedAt = time.Now()
	if notes != "" {
		payout.Notes = null.StringFrom(notes)
	}
	if status == entities.PayoutStatusProcessing && !payout.ProcessedAt.Valid {
		payout.ProcessedAt = null.TimeFrom(time.Now())
	}
	if status == entities.PayoutStatusFailed && notes != "" {
		payout.FailureReason = null.StringFrom(notes)
	}

	if err := u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.payoutRepo.Update(txCtx, payout); err != nil {
			return err
		}
		switch status {
		case entities.PayoutStatusCompleted:
			if err := u.commissionRepo.MarkPaidByPayoutID(txCtx, payout.ID); err != nil {
				return err
			}
		case entities.PayoutStatusFailed:
			if err := u.commissionRepo.UnassignFromPayout(txCtx, payout.ID); err != nil {
				return err
			}
		}
		return u.auditRepo.Create(txCtx, &entities.AuditLog{
			ID:         utils.GenerateUUIDv7(),
			ActorID:    &actorID,
			Action:     entities.AuditActionPayoutUpdated,
			EntityType: "payout",
			EntityID:   payout.ID.String(),
			Details: map[string]interface{}{
				"from": string(prev),
				"to":   string(status),
			},
			CreatedAt: time.Now(),
		})
	}); err != nil {
		return nil, err
	}

	if status == entities.PayoutStatusCompleted {
		metrics.PayoutsProcessed.WithLabelValues("completed").Inc()
	}
	return payout, nil
}

// DeletePayout removes a payout that never settled, unlinking its
// commissions first so they stay eligible for a future request.
// COMPLETED and PROCESSING payouts cannot be removed.
func (u *PayoutUsecase) DeletePayout(ctx context.Context, payoutID uuid.UUID, actorID uuid.UUID) error {
	payout, err := u.payoutRepo.GetByID(ctx, payoutID)
	if err != nil {
		return err
	}
	if !payout.Deletable() {
		return fmt.Errorf("payout %s is %s: %w", payoutID, payout.Status, domainerrors.ErrInvalidState)
	}

	return u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.commissionRepo.UnassignFromPayout(txCtx, payout.ID); err != nil {
			return err
		}
		if err := u.payoutRepo.SoftDelete(txCtx, payout.ID); err != nil {
			return err
		}
		return u.auditRepo.Create(txCtx, &entities.AuditLog{
			ID:         utils.GenerateUUIDv7(),
			ActorID:    &actorID,
			Action:     entities.AuditActionPayoutDeleted,
			EntityType: "payout",
			EntityID:   payout.ID.String(),
			Details:    map[string]interface{}{"status": string(payout.Status)},
			CreatedAt:  time.Now(),
		})
	})
}

// GetPayout returns a payout with its linked commissions.
func (u *PayoutUsecase) GetPayout(ctx context.Context, payoutID uuid.UUID) (*entities.Payout, error) {
	payout, err := u.payoutRepo.GetByID(ctx, payoutID)
	if err != nil {
		return nil, err
	}
	commissions, err := u.commissionRepo.GetByPayoutID(ctx, payoutID)
	if err != nil {
		return nil, err
	}
	payout.Commissions = commissions
	return payout, nil
}

// ListPayouts returns a vendor's payouts, newest first.
func (u *PayoutUsecase) ListPayouts(ctx context.Context, vendorID uuid.UUID, page, limit int) ([]*entities.Payout, int, error) {
	offset := (page - 1) * limit
	return u.payoutRepo.GetByVendorID(ctx, vendorID, limit, offset)
}
