package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// OrderStatus represents order lifecycle status
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusPaid      OrderStatus = "PAID"
	OrderStatusShipped   OrderStatus = "SHIPPED"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// Product represents a vendor-owned product
type Product struct {
	ID        uuid.UUID `json:"id"`
	VendorID  uuid.UUID `json:"vendorId"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Stock     int       `json:"stock"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	DeletedAt null.Time `json:"-"`
}

// Order represents a customer order against a single vendor
type Order struct {
	ID         uuid.UUID   `json:"id"`
	VendorID   uuid.UUID   `json:"vendorId"`
	CustomerID uuid.UUID   `json:"customerId"`
	ProductID  uuid.UUID   `json:"productId"`
	Quantity   int         `json:"quantity"`
	TotalPrice float64     `json:"totalPrice"`
	Status     OrderStatus `json:"status"`
	CreatedAt  time.Time   `json:"createdAt"`
	UpdatedAt  time.Time   `json:"updatedAt"`

	// Joins
	Product *Product `json:"product,omitempty"`
}

// CreateOrderInput represents input for creating an order
type CreateOrderInput struct {
	ProductID uuid.UUID `json:"productId" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
}

// CreateOrderResponse represents the order creation result including the
// commission computed at order time.
type CreateOrderResponse struct {
	OrderID          uuid.UUID   `json:"orderId"`
	Status           OrderStatus `json:"status"`
	TotalPrice       float64     `json:"totalPrice"`
	CommissionAmount float64     `json:"commissionAmount"`
	NetPayout        float64     `json:"netPayout"`
	Rate             float64     `json:"rate"`
}
