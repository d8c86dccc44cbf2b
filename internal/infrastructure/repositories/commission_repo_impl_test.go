package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"vendor-pay.backend/internal/domain/entities"
	domainerrors "vendor-pay.backend/internal/domain/errors"
)

func seedCommission(t *testing.T, repo *CommissionRepository, vendorID uuid.UUID, amount float64) *entities.Commission {
	t.Helper()
	c := &entities.Commission{
		ID:       uuid.New(),
		OrderID:  uuid.New(),
		VendorID: vendorID,
		Amount:   amount,
		Rate:     0.15,
		Status:   entities.CommissionStatusPending,
		Breakdown: &entities.CommissionBreakdown{
			OrderTotal: amount / 0.15,
			Rate:       0.15,
			Tier:       entities.SubscriptionTierPro,
		},
	}
	require.NoError(t, repo.Create(context.Background(), c))
	return c
}

func TestCommissionRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	createCommissionTable(t, db)
	createOrderTable(t, db)
	repo := NewCommissionRepository(db)
	ctx := context.Background()

	vendorID := uuid.New()
	c := seedCommission(t, repo, vendorID, 150)

	byID, err := repo.GetByID(ctx, c.ID)
	require.NoError(t, err)
	require.Equal(t, c.OrderID, byID.OrderID)
	require.NotNil(t, byID.Breakdown, "breakdown snapshot round-trips")
	require.InDelta(t, 1000, byID.Breakdown.OrderTotal, 0.001)
	require.Equal(t, entities.SubscriptionTierPro, byID.Breakdown.Tier)

	byOrder, err := repo.GetByOrderID(ctx, c.OrderID)
	require.NoError(t, err)
	require.Equal(t, c.ID, byOrder.ID)
}

func TestCommissionRepository_UnassignedOrdering(t *testing.T) {
	db := newTestDB(t)
	createCommissionTable(t, db)
	createOrderTable(t, db)
	repo := NewCommissionRepository(db)
	ctx := context.Background()

	vendorID := uuid.New()
	first := seedCommission(t, repo, vendorID, 10)
	mustExec(t, db, `UPDATE commissions SET created_at = ? WHERE id = ?`,
		time.Now().Add(-2*time.Hour), first.ID)
	second := seedCommission(t, repo, vendorID, 20)
	mustExec(t, db, `UPDATE commissions SET created_at = ? WHERE id = ?`,
		time.Now().Add(-time.Hour), second.ID)
	cancelled := seedCommission(t, repo, vendorID, 30)
	mustExec(t, db, `UPDATE commissions SET status = ? WHERE id = ?`,
		string(entities.CommissionStatusCancelled), cancelled.ID)

	unassigned, err := repo.GetUnassignedByVendorID(ctx, vendorID)
	require.NoError(t, err)
	require.Len(t, unassigned, 2, "cancelled commissions are not eligible")
	require.Equal(t, first.ID, unassigned[0].ID, "oldest first")
	require.Equal(t, second.ID, unassigned[1].ID)
}

func TestCommissionRepository_PayoutAssignmentLifecycle(t *testing.T) {
	db := newTestDB(t)
	createCommissionTable(t, db)
	createOrderTable(t, db)
	repo := NewCommissionRepository(db)
	ctx := context.Background()

	vendorID := uuid.New()
	payoutID := uuid.New()
	a := seedCommission(t, repo, vendorID, 100)
	b := seedCommission(t, repo, vendorID, 200)

	require.NoError(t, repo.AssignToPayout(ctx, []uuid.UUID{a.ID, b.ID}, payoutID))

	linked, err := repo.GetByPayoutID(ctx, payoutID)
	require.NoError(t, err)
	require.Len(t, linked, 2)
	for _, c := range linked {
		require.Equal(t, entities.CommissionStatusCalculated, c.Status)
		require.NotNil(t, c.PayoutID)
	}

	unassigned, err := repo.GetUnassignedByVendorID(ctx, vendorID)
	require.NoError(t, err)
	require.Empty(t, unassigned)

	require.NoError(t, repo.UnassignFromPayout(ctx, payoutID))
	released, err := repo.GetUnassignedByVendorID(ctx, vendorID)
	require.NoError(t, err)
	require.Len(t, released, 2)
	for _, c := range released {
		require.Equal(t, entities.CommissionStatusPending, c.Status)
		require.Nil(t, c.PayoutID)
	}

	require.NoError(t, repo.AssignToPayout(ctx, []uuid.UUID{a.ID, b.ID}, payoutID))
	require.NoError(t, repo.MarkPaidByPayoutID(ctx, payoutID))
	paid, err := repo.GetByPayoutID(ctx, payoutID)
	require.NoError(t, err)
	for _, c := range paid {
		require.Equal(t, entities.CommissionStatusPaid, c.Status)
	}
}

func TestCommissionRepository_SumByVendor(t *testing.T) {
	db := newTestDB(t)
	createCommissionTable(t, db)
	createOrderTable(t, db)
	repo := NewCommissionRepository(db)
	ctx := context.Background()

	vendorID := uuid.New()
	seedCommission(t, repo, vendorID, 100)
	seedCommission(t, repo, vendorID, 50)
	cancelled := seedCommission(t, repo, vendorID, 999)
	mustExec(t, db, `UPDATE commissions SET status = ? WHERE id = ?`,
		string(entities.CommissionStatusCancelled), cancelled.ID)
	seedCommission(t, repo, uuid.New(), 70) // other vendor

	from := time.Now().Add(-time.Hour)
	to := time.Now().Add(time.Hour)

	total, err := repo.SumByVendor(ctx, vendorID, from, to)
	require.NoError(t, err)
	require.InDelta(t, 150, total, 0.001)

	all, err := repo.SumByVendor(ctx, uuid.Nil, from, to)
	require.NoError(t, err)
	require.InDelta(t, 220, all, 0.001)
}

func TestCommissionRepository_NotFoundBranches(t *testing.T) {
	db := newTestDB(t)
	createCommissionTable(t, db)
	repo := NewCommissionRepository(db)
	ctx := context.Background()

	_, err := repo.GetByID(ctx, uuid.New())
	require.ErrorIs(t, err, domainerrors.ErrNotFound)

	_, err = repo.GetByOrderID(ctx, uuid.New())
	require.ErrorIs(t, err, domainerrors.ErrNotFound)

	require.NoError(t, repo.AssignToPayout(ctx, nil, uuid.New()), "empty id list is a no-op")
}

func TestCommissionRepository_NoBreakdownFallsBackToOrder(t *testing.T) {
	db := newTestDB(t)
	createCommissionTable(t, db)
	createOrderTable(t, db)
	repo := NewCommissionRepository(db)
	ctx := context.Background()

	vendorID := uuid.New()
	orderID := uuid.New()
	mustExec(t, db, `INSERT INTO orders (id, vendor_id, customer_id, product_id, quantity, total_price, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, 1, 120, ?, ?, ?)`,
		orderID, vendorID, uuid.New(), uuid.New(),
		string(entities.OrderStatusDelivered), time.Now(), time.Now())

	c := &entities.Commission{
		ID:       uuid.New(),
		OrderID:  orderID,
		VendorID: vendorID,
		Amount:   18,
		Rate:     0.15,
		Status:   entities.CommissionStatusPending,
	}
	require.NoError(t, repo.Create(ctx, c))

	loaded, err := repo.GetByVendorID(ctx, vendorID)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	require.Nil(t, loaded[0].Breakdown, "empty snapshot column stays a nil breakdown")
	require.NotNil(t, loaded[0].Order)
	require.InDelta(t, 102, loaded[0].NetAmount(), 0.001, "net derives from the order total")

	// A later correction of the order total moves the net along with it.
	mustExec(t, db, `UPDATE orders SET total_price = 90 WHERE id = ?`, orderID)
	loaded, err = repo.GetByVendorID(ctx, vendorID)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	require.InDelta(t, 72, loaded[0].NetAmount(), 0.001)
}
