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
)

// SubscriptionHandler handles plan and subscription endpoints
type SubscriptionHandler struct {
	subscriptionUsecase *usecases.SubscriptionUsecase
	vendorUsecase       *usecases.VendorUsecase
}

// NewSubscriptionHandler creates a new subscription handler
func NewSubscriptionHandler(subscriptionUsecase *usecases.SubscriptionUsecase, vendorUsecase *usecases.VendorUsecase) *SubscriptionHandler {
	return &SubscriptionHandler{
		subscriptionUsecase: subscriptionUsecase,
		vendorUsecase:       vendorUsecase,
	}
}

// currentVendor resolves the vendor owned by the authenticated user
func (h *SubscriptionHandler) currentVendor(c *gin.Context) (*entities.Vendor, error) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return nil, domainerrors.Unauthorized("authentication required")
	}
	return h.vendorUsecase.GetByUser(c.Request.Context(), userID)
}

// ListPlans lists purchasable plans
// GET /api/v1/plans
func (h *SubscriptionHandler) ListPlans(c *gin.Context) {
	plans, err := h.subscriptionUsecase.ListPlans(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, plans)
}

// Subscribe subscribes the current vendor to a plan
// POST /api/v1/subscriptions
func (h *SubscriptionHandler) Subscribe(c *gin.Context) {
	var input entities.SubscribeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	vendor, err := h.currentVendor(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	sub, err := h.subscriptionUsecase.Subscribe(c.Request.Context(), vendor.ID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, sub)
}

// Cancel cancels the current vendor's subscription
// DELETE /api/v1/subscriptions/:id
func (h *SubscriptionHandler) Cancel(c *gin.Context) {
	subID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid subscription id"))
		return
	}

	vendor, err := h.currentVendor(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.subscriptionUsecase.Cancel(c.Request.Context(), subID, vendor.ID); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
