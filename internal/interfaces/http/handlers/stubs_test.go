package handlers

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"vendor-pay.backend/internal/domain/entities"
	domainerrors "vendor-pay.backend/internal/domain/errors"
	"vendor-pay.backend/internal/domain/repositories"
)

// In-memory repository stubs shared by the handler tests. They implement
// just enough of the repository contracts for the usecases to run end to
// end without a database.

type userRepoStub struct {
	users map[uuid.UUID]*entities.User
}

func newUserRepoStub() *userRepoStub {
	return &userRepoStub{users: map[uuid.UUID]*entities.User{}}
}

func (s *userRepoStub) Create(_ context.Context, user *entities.User) error {
	s.users[user.ID] = user
	return nil
}

func (s *userRepoStub) GetByID(_ context.Context, id uuid.UUID) (*entities.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	return u, nil
}

func (s *userRepoStub) GetByEmail(_ context.Context, email string) (*entities.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domainerrors.ErrNotFound
}

type vendorRepoStub struct {
	vendors map[uuid.UUID]*entities.Vendor
}

func newVendorRepoStub() *vendorRepoStub {
	return &vendorRepoStub{vendors: map[uuid.UUID]*entities.Vendor{}}
}

func (s *vendorRepoStub) Create(_ context.Context, vendor *entities.Vendor) error {
	s.vendors[vendor.ID] = vendor
	return nil
}

func (s *vendorRepoStub) GetByID(_ context.Context, id uuid.UUID) (*entities.Vendor, error) {
	v, ok := s.vendors[id]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	return v, nil
}

func (s *vendorRepoStub) GetByUserID(_ context.Context, userID uuid.UUID) (*entities.Vendor, error) {
	for _, v := range s.vendors {
		if v.UserID == userID {
			return v, nil
		}
	}
	return nil, domainerrors.ErrNotFound
}

func (s *vendorRepoStub) UpdateStatus(_ context.Context, id uuid.UUID, status entities.VendorStatus) error {
	v, ok := s.vendors[id]
	if !ok {
		return domainerrors.ErrNotFound
	}
	v.Status = status
	return nil
}

func (s *vendorRepoStub) List(_ context.Context, limit, offset int) ([]*entities.Vendor, int, error) {
	all := make([]*entities.Vendor, 0, len(s.vendors))
	for _, v := range s.vendors {
		all = append(all, v)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.Before(all[j].CreatedAt) })
	total := len(all)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return all[offset:end], total, nil
}

func (s *vendorRepoStub) CountByStatus(_ context.Context, status entities.VendorStatus) (int64, error) {
	var n int64
	for _, v := range s.vendors {
		if v.Status == status {
			n++
		}
	}
	return n, nil
}

type planRepoStub struct {
	plans map[uuid.UUID]*entities.SubscriptionPlan
}

func newPlanRepoStub(plans ...*entities.SubscriptionPlan) *planRepoStub {
	s := &planRepoStub{plans: map[uuid.UUID]*entities.SubscriptionPlan{}}
	for _, p := range plans {
		s.plans[p.ID] = p
	}
	return s
}

func (s *planRepoStub) GetByID(_ context.Context, id uuid.UUID) (*entities.SubscriptionPlan, error) {
	p, ok := s.plans[id]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	return p, nil
}

func (s *planRepoStub) ListActive(context.Context) ([]*entities.SubscriptionPlan, error) {
	var out []*entities.SubscriptionPlan
	for _, p := range s.plans {
		if p.IsActive {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	return out, nil
}

type subscriptionRepoStub struct {
	subs map[uuid.UUID]*entities.Subscription
}

func newSubscriptionRepoStub() *subscriptionRepoStub {
	return &subscriptionRepoStub{subs: map[uuid.UUID]*entities.Subscription{}}
}

func (s *subscriptionRepoStub) Create(_ context.Context, sub *entities.Subscription) error {
	s.subs[sub.ID] = sub
	return nil
}

func (s *subscriptionRepoStub) GetByID(_ context.Context, id uuid.UUID) (*entities.Subscription, error) {
	sub, ok := s.subs[id]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	return sub, nil
}

func (s *subscriptionRepoStub) GetActiveByVendorID(_ context.Context, vendorID uuid.UUID) (*entities.Subscription, error) {
	for _, sub := range s.subs {
		if sub.VendorID == vendorID && sub.Status == entities.SubscriptionStatusActive {
			return sub, nil
		}
	}
	return nil, domainerrors.ErrNotFound
}

func (s *subscriptionRepoStub) UpdateStatus(_ context.Context, id uuid.UUID, status entities.SubscriptionStatus) error {
	sub, ok := s.subs[id]
	if !ok {
		return domainerrors.ErrNotFound
	}
	sub.Status = status
	return nil
}

func (s *subscriptionRepoStub) Cancel(_ context.Context, id uuid.UUID) error {
	return s.UpdateStatus(context.Background(), id, entities.SubscriptionStatusCancelled)
}

type commissionRepoStub struct {
	commissions []*entities.Commission
}

func newCommissionRepoStub() *commissionRepoStub { return &commissionRepoStub{} }

func (s *commissionRepoStub) Create(_ context.Context, c *entities.Commission) error {
	s.commissions = append(s.commissions, c)
	return nil
}

func (s *commissionRepoStub) GetByID(_ context.Context, id uuid.UUID) (*entities.Commission, error) {
	for _, c := range s.commissions {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, domainerrors.ErrNotFound
}

func (s *commissionRepoStub) GetByOrderID(_ context.Context, orderID uuid.UUID) (*entities.Commission, error) {
	for _, c := range s.commissions {
		if c.OrderID == orderID {
			return c, nil
		}
	}
	return nil, domainerrors.ErrNotFound
}

func (s *commissionRepoStub) GetByVendorID(_ context.Context, vendorID uuid.UUID) ([]*entities.Commission, error) {
	var out []*entities.Commission
	for _, c := range s.commissions {
		if c.VendorID == vendorID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *commissionRepoStub) GetUnassignedByVendorID(_ context.Context, vendorID uuid.UUID) ([]*entities.Commission, error) {
	var out []*entities.Commission
	for _, c := range s.commissions {
		if c.VendorID == vendorID && c.PayoutID == nil && c.Status != entities.CommissionStatusCancelled {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *commissionRepoStub) GetByPayoutID(_ context.Context, payoutID uuid.UUID) ([]*entities.Commission, error) {
	var out []*entities.Commission
	for _, c := range s.commissions {
		if c.PayoutID != nil && *c.PayoutID == payoutID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *commissionRepoStub) AssignToPayout(_ context.Context, ids []uuid.UUID, payoutID uuid.UUID) error {
	wanted := map[uuid.UUID]bool{}
	for _, id := range ids {
		wanted[id] = true
	}
	for _, c := range s.commissions {
		if wanted[c.ID] {
			pid := payoutID
			c.PayoutID = &pid
			c.Status = entities.CommissionStatusCalculated
		}
	}
	return nil
}

func (s *commissionRepoStub) UnassignFromPayout(_ context.Context, payoutID uuid.UUID) error {
	for _, c := range s.commissions {
		if c.PayoutID != nil && *c.PayoutID == payoutID {
			c.PayoutID = nil
			c.Status = entities.CommissionStatusPending
		}
	}
	return nil
}

func (s *commissionRepoStub) MarkPaidByPayoutID(_ context.Context, payoutID uuid.UUID) error {
	for _, c := range s.commissions {
		if c.PayoutID != nil && *c.PayoutID == payoutID {
			c.Status = entities.CommissionStatusPaid
		}
	}
	return nil
}

func (s *commissionRepoStub) SumByVendor(_ context.Context, vendorID uuid.UUID, from, to time.Time) (float64, error) {
	total := 0.0
	for _, c := range s.commissions {
		if vendorID != uuid.Nil && c.VendorID != vendorID {
			continue
		}
		if c.Status == entities.CommissionStatusCancelled {
			continue
		}
		if c.CreatedAt.Before(from) || !c.CreatedAt.Before(to) {
			continue
		}
		total += c.Amount
	}
	return total, nil
}

type payoutRepoStub struct {
	payouts map[uuid.UUID]*entities.Payout
	deleted map[uuid.UUID]bool
}

func newPayoutRepoStub() *payoutRepoStub {
	return &payoutRepoStub{
		payouts: map[uuid.UUID]*entities.Payout{},
		deleted: map[uuid.UUID]bool{},
	}
}

func (s *payoutRepoStub) Create(_ context.Context, p *entities.Payout) error {
	s.payouts[p.ID] = p
	return nil
}

func (s *payoutRepoStub) GetByID(_ context.Context, id uuid.UUID) (*entities.Payout, error) {
	p, ok := s.payouts[id]
	if !ok || s.deleted[id] {
		return nil, domainerrors.ErrNotFound
	}
	return p, nil
}

func (s *payoutRepoStub) GetByVendorID(_ context.Context, vendorID uuid.UUID, limit, offset int) ([]*entities.Payout, int, error) {
	var all []*entities.Payout
	for id, p := range s.payouts {
		if s.deleted[id] || p.VendorID != vendorID {
			continue
		}
		all = append(all, p)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	total := len(all)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return all[offset:end], total, nil
}

func (s *payoutRepoStub) SumByVendorID(_ context.Context, vendorID uuid.UUID) (float64, error) {
	total := 0.0
	for id, p := range s.payouts {
		if s.deleted[id] || p.VendorID != vendorID {
			continue
		}
		total += p.Amount
	}
	return total, nil
}

func (s *payoutRepoStub) SumByVendorGroupedByStatus(_ context.Context, vendorID uuid.UUID, from, to time.Time) (map[entities.PayoutStatus]float64, error) {
	out := map[entities.PayoutStatus]float64{}
	for id, p := range s.payouts {
		if s.deleted[id] {
			continue
		}
		if vendorID != uuid.Nil && p.VendorID != vendorID {
			continue
		}
		if p.CreatedAt.Before(from) || !p.CreatedAt.Before(to) {
			continue
		}
		out[p.Status] += p.Amount
	}
	return out, nil
}

func (s *payoutRepoStub) Update(_ context.Context, p *entities.Payout) error {
	if _, ok := s.payouts[p.ID]; !ok || s.deleted[p.ID] {
		return domainerrors.ErrNotFound
	}
	s.payouts[p.ID] = p
	return nil
}

func (s *payoutRepoStub) SoftDelete(_ context.Context, id uuid.UUID) error {
	if _, ok := s.payouts[id]; !ok || s.deleted[id] {
		return domainerrors.ErrNotFound
	}
	s.deleted[id] = true
	return nil
}

type productRepoStub struct {
	products map[uuid.UUID]*entities.Product
}

func newProductRepoStub(products ...*entities.Product) *productRepoStub {
	s := &productRepoStub{products: map[uuid.UUID]*entities.Product{}}
	for _, p := range products {
		s.products[p.ID] = p
	}
	return s
}

func (s *productRepoStub) Create(_ context.Context, p *entities.Product) error {
	s.products[p.ID] = p
	return nil
}

func (s *productRepoStub) GetByID(_ context.Context, id uuid.UUID) (*entities.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	return p, nil
}

func (s *productRepoStub) DecrementStock(_ context.Context, id uuid.UUID, quantity int) error {
	p, ok := s.products[id]
	if !ok {
		return domainerrors.ErrNotFound
	}
	if p.Stock < quantity {
		return domainerrors.ErrOutOfStock
	}
	p.Stock -= quantity
	return nil
}

func (s *productRepoStub) ListByVendorID(_ context.Context, vendorID uuid.UUID, limit, offset int) ([]*entities.Product, int, error) {
	var out []*entities.Product
	for _, p := range s.products {
		if p.VendorID == vendorID {
			out = append(out, p)
		}
	}
	return out, len(out), nil
}

type orderRepoStub struct {
	orders map[uuid.UUID]*entities.Order
}

func newOrderRepoStub() *orderRepoStub {
	return &orderRepoStub{orders: map[uuid.UUID]*entities.Order{}}
}

func (s *orderRepoStub) Create(_ context.Context, o *entities.Order) error {
	s.orders[o.ID] = o
	return nil
}

func (s *orderRepoStub) GetByID(_ context.Context, id uuid.UUID) (*entities.Order, error) {
	o, ok := s.orders[id]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	return o, nil
}

func (s *orderRepoStub) GetByVendorID(_ context.Context, vendorID uuid.UUID, limit, offset int) ([]*entities.Order, int, error) {
	var out []*entities.Order
	for _, o := range s.orders {
		if o.VendorID == vendorID {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, len(out), nil
}

func (s *orderRepoStub) UpdateStatus(_ context.Context, id uuid.UUID, status entities.OrderStatus) error {
	o, ok := s.orders[id]
	if !ok {
		return domainerrors.ErrNotFound
	}
	o.Status = status
	return nil
}

func (s *orderRepoStub) AggregateByVendor(_ context.Context, vendorID uuid.UUID, from, to time.Time) (int64, float64, error) {
	var count int64
	gross := 0.0
	for _, o := range s.orders {
		if vendorID != uuid.Nil && o.VendorID != vendorID {
			continue
		}
		if o.Status == entities.OrderStatusCancelled {
			continue
		}
		if o.CreatedAt.Before(from) || !o.CreatedAt.Before(to) {
			continue
		}
		count++
		gross += o.TotalPrice
	}
	return count, gross, nil
}

type trialRepoStub struct {
	trials []*entities.TrialUsage
}

func newTrialRepoStub() *trialRepoStub { return &trialRepoStub{} }

func (s *trialRepoStub) Create(_ context.Context, usage *entities.TrialUsage) error {
	s.trials = append(s.trials, usage)
	return nil
}

func (s *trialRepoStub) GetByID(_ context.Context, id uuid.UUID) (*entities.TrialUsage, error) {
	for _, t := range s.trials {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, domainerrors.ErrNotFound
}

func (s *trialRepoStub) ExistsMatching(_ context.Context, q repositories.TrialUsageQuery) (bool, error) {
	for _, t := range s.trials {
		if q.UserID != uuid.Nil && t.UserID == q.UserID {
			return true, nil
		}
		if q.Email != "" && t.Email == q.Email {
			return true, nil
		}
		if q.IPAddress != "" && t.IPAddress == q.IPAddress {
			return true, nil
		}
		if q.PhoneNumber != "" && t.PhoneNumber.String == q.PhoneNumber {
			return true, nil
		}
		if q.PaymentCardLast4 != "" && t.PaymentCardLast4.String == q.PaymentCardLast4 {
			return true, nil
		}
	}
	return false, nil
}

func (s *trialRepoStub) CountByIPSince(_ context.Context, ip string, since time.Time) (int64, error) {
	var n int64
	for _, t := range s.trials {
		if t.IPAddress == ip && t.CreatedAt.After(since) {
			n++
		}
	}
	return n, nil
}

func (s *trialRepoStub) CountByEmailDomainSince(_ context.Context, domain string, since time.Time) (int64, error) {
	var n int64
	for _, t := range s.trials {
		if strings.HasSuffix(t.Email, "@"+domain) && t.CreatedAt.After(since) {
			n++
		}
	}
	return n, nil
}

func (s *trialRepoStub) CountFlaggedSince(_ context.Context, since time.Time) (int64, error) {
	var n int64
	for _, t := range s.trials {
		if t.IsFraudulent && t.CreatedAt.After(since) {
			n++
		}
	}
	return n, nil
}

func (s *trialRepoStub) UpdateStatus(_ context.Context, id uuid.UUID, status entities.TrialStatus) error {
	for _, t := range s.trials {
		if t.ID == id {
			t.Status = status
			return nil
		}
	}
	return domainerrors.ErrNotFound
}

func (s *trialRepoStub) GetExpiredActive(context.Context, int) ([]*entities.TrialUsage, error) {
	return nil, nil
}

func (s *trialRepoStub) ExpireTrials(context.Context, []uuid.UUID) error { return nil }

type auditRepoStub struct {
	entries []*entities.AuditLog
}

func newAuditRepoStub() *auditRepoStub { return &auditRepoStub{} }

func (s *auditRepoStub) Create(_ context.Context, entry *entities.AuditLog) error {
	s.entries = append(s.entries, entry)
	return nil
}

func (s *auditRepoStub) ListByEntity(_ context.Context, entityType, entityID string, limit, offset int) ([]*entities.AuditLog, int, error) {
	var out []*entities.AuditLog
	for _, e := range s.entries {
		if e.EntityType == entityType && e.EntityID == entityID {
			out = append(out, e)
		}
	}
	return out, len(out), nil
}

// uowStub runs the function directly; there is no transaction to manage.
type uowStub struct{}

func (uowStub) Do(ctx context.Context, fn func(ctx context.Context) error) error { return fn(ctx) }

type lockerStub struct {
	held map[string]bool
}

func newLockerStub() *lockerStub { return &lockerStub{held: map[string]bool{}} }

func (s *lockerStub) Lock(_ context.Context, vendorID string) error {
	if s.held[vendorID] {
		return domainerrors.ErrConflict
	}
	s.held[vendorID] = true
	return nil
}

func (s *lockerStub) Unlock(_ context.Context, vendorID string) error {
	delete(s.held, vendorID)
	return nil
}

// processorStub fails settlement when err is set.
type processorStub struct {
	err error
}

func (s processorStub) Process(context.Context, *entities.Payout) error { return s.err }

var errProcessorDown = errors.New("payment provider unavailable")
