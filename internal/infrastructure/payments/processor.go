package payments

import (
	"context"

	"go.uber.org/zap"
	"vendor-pay.backend/internal/domain/entities"
	"vendor-pay.backend/pkg/logger"
)

// ManualProcessor hands payouts to the finance team instead of an
// automated provider: processing succeeds immediately and the payout sits
// in PROCESSING until an admin confirms the bank transfer. A provider
// integration replaces this type without touching the payout flow.
type ManualProcessor struct{}

// NewManualProcessor creates a manual settlement processor
func NewManualProcessor() *ManualProcessor {
	return &ManualProcessor{}
}

// Process records the handoff. It never fails; transfer problems are
// reported back through the admin status endpoints.
func (p *ManualProcessor) Process(ctx context.Context, payout *entities.Payout) error {
	logger.Info(ctx, "Payout handed to finance for settlement",
		zap.String("payoutId", payout.ID.String()),
		zap.String("vendorId", payout.VendorID.String()),
		zap.Float64("amount", payout.Amount),
	)
	return nil
}
