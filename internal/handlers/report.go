package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/masakimorita/work-report-api/internal/errors"
	"github.com/masakimorita/work-report-api/internal/middleware"
	"github.com/masakimorita/work-report-api/internal/models"
	"github.com/masakimorita/work-report-api/internal/services"
)

// ReportHandler coordinates daily-report HTTP handlers. Reports are
// scoped to the session user except for the admin-only All route.
type ReportHandler struct {
	reportService *services.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

// ListReports returns the caller's reports, newest date first.
func (h *ReportHandler) ListReports(c *gin.Context) {
	username, ok := middleware.GetUsername(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	reports, err := h.reportService.List(c.Request.Context(), username)
	if err != nil {
		respondReportError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"reports": reports})
}

// AddReport appends a report to the caller's list.
func (h *ReportHandler) AddReport(c *gin.Context) {
	username, ok := middleware.GetUsername(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	type AddReportRequest struct {
		Date     string                 `json:"date"`
		Projects []models.ReportProject `json:"projects"`
	}

	var req AddReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	report, err := h.reportService.Add(c.Request.Context(), services.AddReportInput{
		Username: username,
		Date:     req.Date,
		Projects: req.Projects,
	})
	if err != nil {
		respondReportError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "report": report})
}

// UpdateReport modifies one of the caller's reports.
func (h *ReportHandler) UpdateReport(c *gin.Context) {
	username, ok := middleware.GetUsername(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	type UpdateReportRequest struct {
		ID       string                 `json:"id"`
		Date     *string                `json:"date"`
		Projects []models.ReportProject `json:"projects"`
	}

	var req UpdateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	report, err := h.reportService.Update(c.Request.Context(), services.UpdateReportInput{
		Username: username,
		ID:       req.ID,
		Date:     req.Date,
		Projects: req.Projects,
	})
	if err != nil {
		respondReportError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "report": report})
}

// DeleteReport removes one of the caller's reports.
func (h *ReportHandler) DeleteReport(c *gin.Context) {
	username, ok := middleware.GetUsername(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	type DeleteReportRequest struct {
		ID string `json:"id"`
	}

	var req DeleteReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.reportService.Delete(c.Request.Context(), username, req.ID); err != nil {
		respondReportError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GetReportsByDate returns the caller's reports filed for one date.
func (h *ReportHandler) GetReportsByDate(c *gin.Context) {
	username, ok := middleware.GetUsername(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	reports, err := h.reportService.ByDate(c.Request.Context(), username, c.Param("date"))
	if err != nil {
		respondReportError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"reports": reports})
}

// GetAllReports merges every user's reports, stamped with the owner's
// username. Admin only.
func (h *ReportHandler) GetAllReports(c *gin.Context) {
	reports, err := h.reportService.All(c.Request.Context())
	if err != nil {
		respondReportError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"reports": reports})
}

func respondReportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrReportNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.StorageFailure(c, "")
	}
}
