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

// PayoutHandler handles vendor payout endpoints
type PayoutHandler struct {
	payoutUsecase *usecases.PayoutUsecase
	vendorUsecase *usecases.VendorUsecase
}

// NewPayoutHandler creates a new payout handler
func NewPayoutHandler(payoutUsecase *usecases.PayoutUsecase, vendorUsecase *usecases.VendorUsecase) *PayoutHandler {
	return &PayoutHandler{
		payoutUsecase: payoutUsecase,
		vendorUsecase: vendorUsecase,
	}
}

func (h *PayoutHandler) currentVendor(c *gin.Context) (*entities.Vendor, error) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return nil, domainerrors.Unauthorized("authentication required")
	}
	return h.vendorUsecase.GetByUser(c.Request.Context(), userID)
}

// GetBalance returns the current vendor's available balance
// GET /api/v1/payouts/balance
func (h *PayoutHandler) GetBalance(c *gin.Context) {
	vendor, err := h.currentVendor(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	balance, err := h.payoutUsecase.GetAvailableBalance(c.Request.Context(), vendor.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, balance)
}

// Request requests a payout for the current vendor
// POST /api/v1/payouts
func (h *PayoutHandler) Request(c *gin.Context) {
	var input entities.RequestPayoutInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	vendor, err := h.currentVendor(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	payout, err := h.payoutUsecase.RequestPayout(c.Request.Context(), vendor.ID, input.Amount, input.Notes)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, payout)
}

// Get returns one payout with its commissions
// GET /api/v1/payouts/:id
func (h *PayoutHandler) Get(c *gin.Context) {
	payoutID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid payout id"))
		return
	}

	payout, err := h.payoutUsecase.GetPayout(c.Request.Context(), payoutID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, payout)
}

// List lists the current vendor's payouts
// GET /api/v1/payouts
func (h *PayoutHandler) List(c *gin.Context) {
	vendor, err := h.currentVendor(c)
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

	payouts, total, err := h.payoutUsecase.ListPayouts(c.Request.Context(), vendor.ID, p.Page, p.Limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"items": payouts,
		"meta":  utils.CalculateMeta(int64(total), p.Page, p.Limit),
	})
}

// AdminPayoutHandler handles finance-team payout operations
type AdminPayoutHandler struct {
	payoutUsecase *usecases.PayoutUsecase
}

// NewAdminPayoutHandler creates a new admin payout handler
func NewAdminPayoutHandler(payoutUsecase *usecases.PayoutUsecase) *AdminPayoutHandler {
	return &AdminPayoutHandler{payoutUsecase: payoutUsecase}
}

// Process pushes a pending payout through the payment processor
// POST /api/v1/admin/payouts/:id/process
func (h *AdminPayoutHandler) Process(c *gin.Context) {
	payoutID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid payout id"))
		return
	}

	if err := h.payoutUsecase.ProcessPayout(c.Request.Context(), payoutID); err != nil {
		response.Error(c, err)
		return
	}

	payout, err := h.payoutUsecase.GetPayout(c.Request.Context(), payoutID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, payout)
}

// Update applies a manual status change to a payout
// PATCH /api/v1/admin/payouts/:id
func (h *AdminPayoutHandler) Update(c *gin.Context) {
	payoutID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid payout id"))
		return
	}

	var input entities.UpdatePayoutInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actorID, _ := middleware.GetUserID(c)

	payout, err := h.payoutUsecase.UpdatePayout(c.Request.Context(), payoutID, input.Status, input.Notes, actorID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, payout)
}

// Delete removes a payout that never reached processing
// DELETE /api/v1/admin/payouts/:id
func (h *AdminPayoutHandler) Delete(c *gin.Context) {
	payoutID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid payout id"))
		return
	}

	actorID, _ := middleware.GetUserID(c)

	if err := h.payoutUsecase.DeletePayout(c.Request.Context(), payoutID, actorID); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
