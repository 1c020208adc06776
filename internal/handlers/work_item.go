package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/masakimorita/work-report-api/internal/dto"
	apierrors "github.com/masakimorita/work-report-api/internal/errors"
	"github.com/masakimorita/work-report-api/internal/hierarchy"
	"github.com/masakimorita/work-report-api/internal/middleware"
	"github.com/masakimorita/work-report-api/internal/models"
	"github.com/masakimorita/work-report-api/internal/services"
)

// WorkItemHandler coordinates work-item-master HTTP handlers.
type WorkItemHandler struct {
	workItemService *services.WorkItemService
}

// NewWorkItemHandler creates a new WorkItemHandler.
func NewWorkItemHandler(workItemService *services.WorkItemService) *WorkItemHandler {
	return &WorkItemHandler{
		workItemService: workItemService,
	}
}

// GetWorkItems returns items visible to the caller. Without a
// work_type_id query it aggregates every process.
func (h *WorkItemHandler) GetWorkItems(c *gin.Context) {
	items, err := h.workItemService.List(c.Request.Context(), services.ListInput{
		WorkTypeID:     c.Query("work_type_id"),
		Role:           middleware.GetRole(c),
		UserCategories: requestCategories(c),
	})
	if err != nil {
		respondWorkItemError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

// SaveWorkItems overwrites a process's whole item list.
func (h *WorkItemHandler) SaveWorkItems(c *gin.Context) {
	type SaveRequest struct {
		WorkTypeID string            `json:"work_type_id"`
		Items      []models.WorkItem `json:"items"`
	}

	var req SaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.workItemService.SaveAll(c.Request.Context(), req.WorkTypeID, req.Items); err != nil {
		respondWorkItemError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "作業項目マスターを保存しました",
	})
}

// AddWorkItem creates one work item.
func (h *WorkItemHandler) AddWorkItem(c *gin.Context) {
	type AddRequest struct {
		WorkTypeID            string   `json:"work_type_id"`
		Name                  string   `json:"name"`
		Level                 int      `json:"level"`
		ParentID              string   `json:"parent_id"`
		Attribute             string   `json:"attribute"`
		TargetMinutes         *int     `json:"target_minutes"`
		Checklist             []string `json:"checklist"`
		Method                []string `json:"method"`
		InternalLeadtime      bool     `json:"internal_leadtime"`
		ExternalLeadtime      bool     `json:"external_leadtime"`
		InternalLeadtimeItems []string `json:"internal_leadtime_items"`
		ExternalLeadtimeItems []string `json:"external_leadtime_items"`
		JobCategories         []string `json:"job_categories"`
		IsLeaf                bool     `json:"is_leaf"`
	}

	var req AddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	item, err := h.workItemService.Add(c.Request.Context(), services.AddInput{
		WorkTypeID:            req.WorkTypeID,
		Name:                  req.Name,
		Level:                 req.Level,
		ParentID:              req.ParentID,
		Attribute:             req.Attribute,
		TargetMinutes:         req.TargetMinutes,
		Checklist:             req.Checklist,
		Method:                req.Method,
		InternalLeadtime:      req.InternalLeadtime,
		ExternalLeadtime:      req.ExternalLeadtime,
		InternalLeadtimeItems: req.InternalLeadtimeItems,
		ExternalLeadtimeItems: req.ExternalLeadtimeItems,
		JobCategories:         req.JobCategories,
		IsLeaf:                req.IsLeaf,
	})
	if err != nil {
		respondWorkItemError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "item": item})
}

// UpdateWorkItem modifies one work item. Absent fields keep their
// stored value.
func (h *WorkItemHandler) UpdateWorkItem(c *gin.Context) {
	type UpdateRequest struct {
		ID                    string   `json:"id"`
		WorkTypeID            string   `json:"work_type_id"`
		Name                  *string  `json:"name"`
		Level                 *int     `json:"level"`
		ParentID              *string  `json:"parent_id"`
		Attribute             *string  `json:"attribute"`
		TargetMinutes         *int     `json:"target_minutes"`
		Checklist             []string `json:"checklist"`
		Method                []string `json:"method"`
		InternalLeadtime      *bool    `json:"internal_leadtime"`
		ExternalLeadtime      *bool    `json:"external_leadtime"`
		InternalLeadtimeItems []string `json:"internal_leadtime_items"`
		ExternalLeadtimeItems []string `json:"external_leadtime_items"`
		JobCategories         []string `json:"job_categories"`
		IsLeaf                *bool    `json:"is_leaf"`
	}

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	item, err := h.workItemService.Update(c.Request.Context(), services.UpdateInput{
		ID:                    req.ID,
		WorkTypeID:            req.WorkTypeID,
		Name:                  req.Name,
		Level:                 req.Level,
		ParentID:              req.ParentID,
		Attribute:             req.Attribute,
		TargetMinutes:         req.TargetMinutes,
		Checklist:             req.Checklist,
		Method:                req.Method,
		InternalLeadtime:      req.InternalLeadtime,
		ExternalLeadtime:      req.ExternalLeadtime,
		InternalLeadtimeItems: req.InternalLeadtimeItems,
		ExternalLeadtimeItems: req.ExternalLeadtimeItems,
		JobCategories:         req.JobCategories,
		IsLeaf:                req.IsLeaf,
	})
	if err != nil {
		respondWorkItemError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "item": item})
}

// DeleteWorkItems removes the given items and their descendants. A
// single id is accepted for older clients.
func (h *WorkItemHandler) DeleteWorkItems(c *gin.Context) {
	type DeleteRequest struct {
		WorkTypeID string   `json:"work_type_id"`
		ID         string   `json:"id"`
		IDs        []string `json:"ids"`
	}

	var req DeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	ids := req.IDs
	if len(ids) == 0 && req.ID != "" {
		ids = []string{req.ID}
	}

	if err := h.workItemService.Delete(c.Request.Context(), req.WorkTypeID, ids); err != nil {
		respondWorkItemError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ExportWorkItems streams a process's items as the exchange workbook.
func (h *WorkItemHandler) ExportWorkItems(c *gin.Context) {
	f, err := h.workItemService.Export(c.Request.Context(), c.Query("work_type_id"))
	if err != nil {
		respondWorkItemError(c, err)
		return
	}

	respondWorkbook(c, f, "作業項目マスター.xlsx")
}

// PreviewWorkItems decodes an uploaded workbook without persisting
// anything.
func (h *WorkItemHandler) PreviewWorkItems(c *gin.Context) {
	file, ok := openUpload(c)
	if !ok {
		return
	}
	defer file.Close()

	items, err := h.workItemService.Preview(file)
	if err != nil {
		apierrors.BadRequest(c, fmt.Sprintf("プレビューの読み込みに失敗しました: %v", err))
		return
	}

	rows := dto.ToWorkItemPreviewDTOs(items)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"items":   rows,
		"count":   len(rows),
	})
}

// ImportWorkItems decodes an uploaded workbook and reconciles it
// against the stored tree.
func (h *WorkItemHandler) ImportWorkItems(c *gin.Context) {
	file, ok := openUpload(c)
	if !ok {
		return
	}
	defer file.Close()

	workTypeID := c.PostForm("work_type_id")
	if workTypeID == "" {
		apierrors.MissingParameter(c, "工程IDが必要です")
		return
	}

	result, err := h.workItemService.Import(c.Request.Context(), workTypeID, file)
	if err != nil {
		respondWorkItemError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": fmt.Sprintf("%d件の作業項目をインポートしました（新規: %d件、更新: %d件、削除: %d件）",
			result.Count, result.Added, result.Updated, result.Deleted),
		"count":   result.Count,
		"added":   result.Added,
		"updated": result.Updated,
		"deleted": result.Deleted,
	})
}

func respondWorkItemError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrMissingWorkTypeID):
		apierrors.MissingParameter(c, err.Error())
	case errors.Is(err, services.ErrWorkItemNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, hierarchy.ErrCycleDetected):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.StorageFailure(c, "")
	}
}
