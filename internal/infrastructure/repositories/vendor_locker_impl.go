package repositories

import (
	"context"
	"time"

	domainerrors "vendor-pay.backend/internal/domain/errors"
	"vendor-pay.backend/pkg/redis"
)

const (
	payoutLockPrefix = "payout:lock:"
	payoutLockTTL    = 30 * time.Second
)

// VendorLockerImpl implements the per-vendor payout lock on Redis SET NX.
// The TTL guards against a crashed requester leaving the vendor locked.
type VendorLockerImpl struct {
	ttl time.Duration
}

// NewVendorLocker creates a new vendor locker
func NewVendorLocker() *VendorLockerImpl {
	return &VendorLockerImpl{ttl: payoutLockTTL}
}

// Lock acquires the vendor's payout lock. Returns ErrConflict when another
// payout request already holds it.
func (l *VendorLockerImpl) Lock(ctx context.Context, vendorID string) error {
	ok, err := redis.SetNX(ctx, payoutLockPrefix+vendorID, "1", l.ttl)
	if err != nil {
		return err
	}
	if !ok {
		return domainerrors.ErrConflict
	}
	return nil
}

// Unlock releases the vendor's payout lock
func (l *VendorLockerImpl) Unlock(ctx context.Context, vendorID string) error {
	return redis.Del(ctx, payoutLockPrefix+vendorID)
}
