package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"vendor-pay.backend/internal/domain/entities"
	domainerrors "vendor-pay.backend/internal/domain/errors"
	"vendor-pay.backend/internal/interfaces/http/middleware"
	"vendor-pay.backend/internal/interfaces/http/response"
	"vendor-pay.backend/internal/usecases"
	"vendor-pay.backend/pkg/utils"
)

// OrderHandler handles order endpoints
type OrderHandler struct {
	orderUsecase  *usecases.OrderUsecase
	vendorUsecase *usecases.VendorUsecase
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderUsecase *usecases.OrderUsecase, vendorUsecase *usecases.VendorUsecase) *OrderHandler {
	return &OrderHandler{
		orderUsecase:  orderUsecase,
		vendorUsecase: vendorUsecase,
	}
}

// Create places an order as the current customer
// POST /api/v1/orders
func (h *OrderHandler) Create(c *gin.Context) {
	var input entities.CreateOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	customerID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	resp, err := h.orderUsecase.CreateOrder(c.Request.Context(), customerID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp)
}

// Get returns one order
// GET /api/v1/orders/:id
func (h *OrderHandler) Get(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid order id"))
		return
	}

	order, err := h.orderUsecase.GetOrder(c.Request.Context(), orderID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, order)
}

// ListMine lists the current vendor's orders
// GET /api/v1/vendors/me/orders
func (h *OrderHandler) ListMine(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	vendor, err := h.vendorUsecase.GetByUser(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	var params utils.PaginationParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p := utils.GetPaginationParams(params.Page, params.Limit)

	orders, total, err := h.orderUsecase.ListVendorOrders(c.Request.Context(), vendor.ID, p.Page, p.Limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"items": orders,
		"meta":  utils.CalculateMeta(int64(total), p.Page, p.Limit),
	})
}
