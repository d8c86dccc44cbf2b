package repositories

import (
	"context"
)

// UnitOfWork defines the interface for atomic operations
type UnitOfWork interface {
	// Do executes the given function within a transaction scope
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// VendorLocker serializes payout creation per vendor so two concurrent
// requests cannot both pass the balance check.
type VendorLocker interface {
	// Lock acquires the vendor's payout lock, returning ErrConflict when
	// another request holds it.
	Lock(ctx context.Context, vendorID string) error
	Unlock(ctx context.Context, vendorID string) error
}
