package api

import (
	"errors"
	"net/http"

	"gymhub/gym-api/internal/service"

	"github.com/gin-gonic/gin"
)

// ReportHandler serves the manager dashboard.
type ReportHandler struct {
	reportService service.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Dashboard returns per-gym totals: members, trainers, and schedules dated
// today.
func (h *ReportHandler) Dashboard(c *gin.Context) {
	managerID, err := callerID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller from token")
		return
	}

	report, err := h.reportService.Dashboard(c.Request.Context(), managerID)
	if err != nil {
		if errors.Is(err, service.ErrManagerNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		abortWithServerError(c, "Failed to build dashboard", err)
		return
	}

	c.JSON(http.StatusOK, report)
}
