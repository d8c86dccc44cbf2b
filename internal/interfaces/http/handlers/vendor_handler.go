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

// VendorHandler handles vendor endpoints
type VendorHandler struct {
	vendorUsecase *usecases.VendorUsecase
}

// NewVendorHandler creates a new vendor handler
func NewVendorHandler(vendorUsecase *usecases.VendorUsecase) *VendorHandler {
	return &VendorHandler{vendorUsecase: vendorUsecase}
}

// Apply handles vendor application
// POST /api/v1/vendors/apply
func (h *VendorHandler) Apply(c *gin.Context) {
	var input entities.VendorApplyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	vendor, err := h.vendorUsecase.Apply(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, vendor)
}

// GetMe returns the vendor profile of the current user
// GET /api/v1/vendors/me
func (h *VendorHandler) GetMe(c *gin.Context) {
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

	response.Success(c, http.StatusOK, vendor)
}

// UpdateStatus handles admin vendor status changes
// PATCH /api/v1/admin/vendors/:id/status
func (h *VendorHandler) UpdateStatus(c *gin.Context) {
	vendorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid vendor id"))
		return
	}

	var input entities.VendorStatusUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actorID, _ := middleware.GetUserID(c)

	vendor, err := h.vendorUsecase.UpdateStatus(c.Request.Context(), vendorID, &input, actorID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, vendor)
}

// List handles admin vendor listing
// GET /api/v1/admin/vendors
func (h *VendorHandler) List(c *gin.Context) {
	var params utils.PaginationParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p := utils.GetPaginationParams(params.Page, params.Limit)

	vendors, total, err := h.vendorUsecase.List(c.Request.Context(), p.Page, p.Limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"items": vendors,
		"meta":  utils.CalculateMeta(int64(total), p.Page, p.Limit),
	})
}
