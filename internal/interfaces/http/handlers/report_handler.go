package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	domainerrors "vendor-pay.backend/internal/domain/errors"
	"vendor-pay.backend/internal/interfaces/http/middleware"
	"vendor-pay.backend/internal/interfaces/http/response"
	"vendor-pay.backend/internal/usecases"
)

// ReportHandler handles reporting endpoints
type ReportHandler struct {
	reportingUsecase *usecases.ReportingUsecase
	vendorUsecase    *usecases.VendorUsecase
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportingUsecase *usecases.ReportingUsecase, vendorUsecase *usecases.VendorUsecase) *ReportHandler {
	return &ReportHandler{
		reportingUsecase: reportingUsecase,
		vendorUsecase:    vendorUsecase,
	}
}

// parsePeriod reads from/to query params. Dates accept RFC 3339 or
// YYYY-MM-DD; an omitted period defaults to the last 30 days.
func parsePeriod(c *gin.Context) (time.Time, time.Time, error) {
	now := time.Now()
	from := now.AddDate(0, 0, -30)
	to := now

	if raw := c.Query("from"); raw != "" {
		parsed, err := parseDate(raw)
		if err != nil {
			return time.Time{}, time.Time{}, domainerrors.BadRequest("invalid from date")
		}
		from = parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := parseDate(raw)
		if err != nil {
			return time.Time{}, time.Time{}, domainerrors.BadRequest("invalid to date")
		}
		to = parsed
	}
	return from, to, nil
}

func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}

// MySummary returns the current vendor's financial summary
// GET /api/v1/reports/vendors/me
func (h *ReportHandler) MySummary(c *gin.Context) {
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

	from, to, err := parsePeriod(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	summary, err := h.reportingUsecase.VendorSummary(c.Request.Context(), vendor.ID, from, to)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, summary)
}

// VendorSummary returns one vendor's financial summary for the back office
// GET /api/v1/admin/reports/vendors/:id
func (h *ReportHandler) VendorSummary(c *gin.Context) {
	vendorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid vendor id"))
		return
	}

	from, to, err := parsePeriod(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	summary, err := h.reportingUsecase.VendorSummary(c.Request.Context(), vendorID, from, to)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, summary)
}

// PlatformSummary returns the platform-wide financial summary
// GET /api/v1/admin/reports/platform
func (h *ReportHandler) PlatformSummary(c *gin.Context) {
	from, to, err := parsePeriod(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	summary, err := h.reportingUsecase.PlatformSummary(c.Request.Context(), from, to)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, summary)
}
