package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/masakimorita/work-report-api/internal/errors"
	"github.com/masakimorita/work-report-api/internal/models"
	"github.com/masakimorita/work-report-api/internal/services"
)

// WorkTypeHandler coordinates work-type-master HTTP handlers.
type WorkTypeHandler struct {
	workTypeService *services.WorkTypeService
}

// NewWorkTypeHandler creates a new WorkTypeHandler.
func NewWorkTypeHandler(workTypeService *services.WorkTypeService) *WorkTypeHandler {
	return &WorkTypeHandler{
		workTypeService: workTypeService,
	}
}

// ListWorkTypes returns every work type in display order.
func (h *WorkTypeHandler) ListWorkTypes(c *gin.Context) {
	workTypes, err := h.workTypeService.List(c.Request.Context())
	if err != nil {
		respondWorkTypeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"work_types": workTypes})
}

// AddWorkType appends a work type.
func (h *WorkTypeHandler) AddWorkType(c *gin.Context) {
	type AddWorkTypeRequest struct {
		Name string `json:"name"`
	}

	var req AddWorkTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	workType, err := h.workTypeService.Add(c.Request.Context(), req.Name)
	if err != nil {
		respondWorkTypeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "work_type": workType})
}

// UpdateWorkType renames a work type.
func (h *WorkTypeHandler) UpdateWorkType(c *gin.Context) {
	type UpdateWorkTypeRequest struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}

	var req UpdateWorkTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	workType, err := h.workTypeService.Update(c.Request.Context(), req.ID, req.Name)
	if err != nil {
		respondWorkTypeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "work_type": workType})
}

// DeleteWorkType removes a work type from the master.
func (h *WorkTypeHandler) DeleteWorkType(c *gin.Context) {
	type DeleteWorkTypeRequest struct {
		ID string `json:"id"`
	}

	var req DeleteWorkTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.workTypeService.Delete(c.Request.Context(), req.ID); err != nil {
		respondWorkTypeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// UpdateWorkTypeOrder replaces the whole list with the client's
// ordering.
func (h *WorkTypeHandler) UpdateWorkTypeOrder(c *gin.Context) {
	type UpdateOrderRequest struct {
		WorkTypes []models.WorkType `json:"work_types"`
	}

	var req UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.workTypeService.UpdateOrder(c.Request.Context(), req.WorkTypes); err != nil {
		respondWorkTypeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func respondWorkTypeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrWorkTypeNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.StorageFailure(c, "")
	}
}
