package jobs

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"vendor-pay.backend/internal/domain/entities"
)

type trialExpiryRepo interface {
	GetExpiredActive(ctx context.Context, limit int) ([]*entities.TrialUsage, error)
	ExpireTrials(ctx context.Context, ids []uuid.UUID) error
}

// TrialExpiryJob moves active trials past their end date to EXPIRED
type TrialExpiryJob struct {
	repo     trialExpiryRepo
	interval time.Duration
	stop     chan struct{}
}

func NewTrialExpiryJob(repo trialExpiryRepo, interval time.Duration) *TrialExpiryJob {
	if interval <= 0 {
		interval = time.Minute
	}
	return &TrialExpiryJob{
		repo:     repo,
		interval: interval,
		stop:     make(chan struct{}),
	}
}

func (j *TrialExpiryJob) Start(ctx context.Context) {
	log.Println("🕐 Starting trial expiry job...")

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("⏹️ Trial expiry job stopped (context cancelled)")
			return
		case <-j.stop:
			log.Println("⏹️ Trial expiry job stopped")
			return
		case <-ticker.C:
			j.processExpiredTrials(ctx)
		}
	}
}

func (j *TrialExpiryJob) Stop() {
	close(j.stop)
}

func (j *TrialExpiryJob) processExpiredTrials(ctx context.Context) {
	expired, err := j.repo.GetExpiredActive(ctx, 100)
	if err != nil {
		log.Printf("❌ Error fetching expired trials: %v", err)
		return
	}

	if len(expired) == 0 {
		return
	}

	var ids []uuid.UUID
	for _, trial := range expired {
		ids = append(ids, trial.ID)
	}

	if err := j.repo.ExpireTrials(ctx, ids); err != nil {
		log.Printf("❌ Error expiring trials: %v", err)
		return
	}

	log.Printf("✅ Expired %d trials", len(expired))
}
