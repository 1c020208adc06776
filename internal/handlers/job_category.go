package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/masakimorita/work-report-api/internal/errors"
	"github.com/masakimorita/work-report-api/internal/services"
)

// JobCategoryHandler coordinates job-category-master HTTP handlers.
type JobCategoryHandler struct {
	categoryService *services.JobCategoryService
}

// NewJobCategoryHandler creates a new JobCategoryHandler.
func NewJobCategoryHandler(categoryService *services.JobCategoryService) *JobCategoryHandler {
	return &JobCategoryHandler{
		categoryService: categoryService,
	}
}

// ListJobCategories returns every job category.
func (h *JobCategoryHandler) ListJobCategories(c *gin.Context) {
	categories, err := h.categoryService.List(c.Request.Context())
	if err != nil {
		apierrors.StorageFailure(c, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// SaveJobCategories replaces the whole category list.
func (h *JobCategoryHandler) SaveJobCategories(c *gin.Context) {
	type SaveCategoriesRequest struct {
		Categories []string `json:"categories"`
	}

	var req SaveCategoriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.categoryService.Save(c.Request.Context(), req.Categories); err != nil {
		apierrors.StorageFailure(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
