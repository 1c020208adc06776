package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apierrors "github.com/masakimorita/work-report-api/internal/errors"
	"github.com/masakimorita/work-report-api/internal/services"
	"github.com/masakimorita/work-report-api/internal/utils"
)

// ProjectHandler coordinates project-master HTTP handlers.
type ProjectHandler struct {
	projectService *services.ProjectService
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(projectService *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
	}
}

// ListProjects returns every project.
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	projects, err := h.projectService.List(c.Request.Context())
	if err != nil {
		respondProjectError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"projects": projects})
}

// AddProject creates a project.
func (h *ProjectHandler) AddProject(c *gin.Context) {
	type AddProjectRequest struct {
		Name        string   `json:"name"`
		Status      string   `json:"status"`
		WorkTypeIDs []string `json:"work_type_ids"`
	}

	var req AddProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	project, err := h.projectService.Add(c.Request.Context(), services.AddProjectInput{
		Name:        req.Name,
		Status:      req.Status,
		WorkTypeIDs: req.WorkTypeIDs,
	})
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "project": project})
}

// UpdateProject modifies a project. Absent fields keep their stored
// value.
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	type UpdateProjectRequest struct {
		ID          string   `json:"id"`
		Name        *string  `json:"name"`
		Status      *string  `json:"status"`
		WorkTypeIDs []string `json:"work_type_ids"`
	}

	var req UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	project, err := h.projectService.Update(c.Request.Context(), services.UpdateProjectInput{
		ID:          req.ID,
		Name:        req.Name,
		Status:      req.Status,
		WorkTypeIDs: req.WorkTypeIDs,
	})
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "project": project})
}

// DeleteProject removes one project.
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	type DeleteProjectRequest struct {
		ID string `json:"id"`
	}

	var req DeleteProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.projectService.Delete(c.Request.Context(), req.ID); err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ExportProject streams one project's reports as a workbook. The
// format query selects the per-user pivot or the dated detail layout.
func (h *ProjectHandler) ExportProject(c *gin.Context) {
	format := c.DefaultQuery("format", services.ExportFormatUser)

	f, project, err := h.projectService.Export(c.Request.Context(), c.Query("project_id"), format)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	name := utils.SafeFilename(project.Name, "プロジェクト")
	filename := fmt.Sprintf("%s_%s.xlsx", name, time.Now().Format("20060102"))
	respondWorkbook(c, f, filename)
}

// ExportProjectView streams the cross-project pivot covering every
// work process.
func (h *ProjectHandler) ExportProjectView(c *gin.Context) {
	f, err := h.projectService.ExportView(c.Request.Context())
	if err != nil {
		respondProjectError(c, err)
		return
	}

	filename := fmt.Sprintf("プロジェクト別表示_%s.xlsx", time.Now().Format("20060102"))
	respondWorkbook(c, f, filename)
}

func respondProjectError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrMissingProjectID):
		apierrors.MissingParameter(c, err.Error())
	case errors.Is(err, services.ErrUnknownFormat):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrProjectNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.StorageFailure(c, "")
	}
}
