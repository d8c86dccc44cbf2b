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

// OrderUsecase handles order creation and its coupled financial side
// effects
type OrderUsecase struct {
	orderRepo    repositories.OrderRepository
	productRepo  repositories.ProductRepository
	auditRepo    repositories.AuditLogRepository
	commissionUC *CommissionUsecase
	uow          repositories.UnitOfWork
}

// NewOrderUsecase creates a new order usecase
func NewOrderUsecase(
	orderRepo repositories.OrderRepository,
	productRepo repositories.ProductRepository,
	auditRepo repositories.AuditLogRepository,
	commissionUC *CommissionUsecase,
	uow repositories.UnitOfWork,
) *OrderUsecase {
	return &OrderUsecase{
		orderRepo:    orderRepo,
		productRepo:  productRepo,
		auditRepo:    auditRepo,
		commissionUC: commissionUC,
		uow:          uow,
	}
}

// CreateOrder creates an order, decrements product stock and computes the
// commission in one transaction. Partial application would leave stock
// decremented with no commission on the books, so all three commit or none.
func (u *OrderUsecase) CreateOrder(ctx context.Context, customerID uuid.UUID, in *entities.CreateOrderInput) (*entities.CreateOrderResponse, error) {
	if in.Quantity <= 0 {
		return nil, domainerrors.ErrInvalidInput
	}

	product, err := u.productRepo.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if !product.IsActive {
		return nil, domainerrors.ErrInvalidState
	}

	order := &entities.Order{
		ID:         utils.GenerateUUIDv7(),
		VendorID:   product.VendorID,
		CustomerID: customerID,
		ProductID:  product.ID,
		Quantity:   in.Quantity,
		TotalPrice: utils.RoundCents(product.Price * float64(in.Quantity)),
		Status:     entities.OrderStatusPending,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}

	var result *entities.CommissionResult
	if err := u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.productRepo.DecrementStock(txCtx, product.ID, in.Quantity); err != nil {
			return err
		}
		if err := u.orderRepo.Create(txCtx, order); err != nil {
			return err
		}
		res, err := u.commissionUC.Calculate(txCtx, order.ID, order.VendorID, order.TotalPrice)
		if err != nil {
			return err
		}
		result = res
		return u.auditRepo.Create(txCtx, &entities.AuditLog{
			ID:         utils.GenerateUUIDv7(),
			ActorID:    &customerID,
			Action:     entities.AuditActionOrderCreated,
			EntityType: "order",
			EntityID:   order.ID.String(),
			Details: map[string]interface{}{
				"vendorId":   order.VendorID.String(),
				"productId":  order.ProductID.String(),
				"quantity":   order.Quantity,
				"totalPrice": order.TotalPrice,
			},
			CreatedAt: time.Now(),
		})
	}); err != nil {
		return nil, err
	}

	return &entities.CreateOrderResponse{
		OrderID:          order.ID,
		Status:           order.Status,
		TotalPrice:       order.TotalPrice,
		CommissionAmount: result.CommissionAmount,
		NetPayout:        result.NetPayout,
		Rate:             result.Rate,
	}, nil
}

// GetOrder returns an order by ID.
func (u *OrderUsecase) GetOrder(ctx context.Context, orderID uuid.UUID) (*entities.Order, error) {
	return u.orderRepo.GetByID(ctx, orderID)
}

// ListVendorOrders returns a vendor's orders, newest first.
func (u *OrderUsecase) ListVendorOrders(ctx context.Context, vendorID uuid.UUID, page, limit int) ([]*entities.Order, int, error) {
	offset := (page - 1) * limit
	return u.orderRepo.GetByVendorID(ctx, vendorID, limit, offset)
}
