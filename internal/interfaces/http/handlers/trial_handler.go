package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"vendor-pay.backend/internal/domain/entities"
	"vendor-pay.backend/internal/interfaces/http/response"
	"vendor-pay.backend/internal/usecases"
)

// TrialHandler handles trial signup fraud checks
type TrialHandler struct {
	trialUsecase *usecases.TrialFraudUsecase
}

// NewTrialHandler creates a new trial handler
func NewTrialHandler(trialUsecase *usecases.TrialFraudUsecase) *TrialHandler {
	return &TrialHandler{trialUsecase: trialUsecase}
}

// CheckEligibility scores a trial signup without recording it
// POST /api/v1/trials/check
func (h *TrialHandler) CheckEligibility(c *gin.Context) {
	var input entities.TrialSignupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.IPAddress == "" {
		input.IPAddress = c.ClientIP()
	}

	result, err := h.trialUsecase.CheckTrialEligibility(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// Signup scores a trial signup and records the attempt. A denied signup is
// still recorded, flagged, so repeat attempts keep raising the score.
// POST /api/v1/trials
func (h *TrialHandler) Signup(c *gin.Context) {
	var input entities.TrialSignupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.IPAddress == "" {
		input.IPAddress = c.ClientIP()
	}

	result, err := h.trialUsecase.CheckTrialEligibility(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	usage, err := h.trialUsecase.RecordTrialUsage(c.Request.Context(), &input, result)
	if err != nil {
		response.Error(c, err)
		return
	}

	status := http.StatusCreated
	if !result.IsAllowed {
		status = http.StatusForbidden
	}
	response.Success(c, status, gin.H{
		"trial":  usage,
		"result": result,
	})
}
