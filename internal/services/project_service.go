package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/masakimorita/work-report-api/internal/constants"
	"github.com/masakimorita/work-report-api/internal/excel"
	"github.com/masakimorita/work-report-api/internal/models"
	"github.com/masakimorita/work-report-api/internal/repository"
)

var (
	ErrProjectNotFound  = errors.New("プロジェクトが見つかりません")
	ErrMissingProjectID = errors.New("プロジェクトIDが必要です")
	ErrUnknownFormat    = errors.New("不明なエクスポート形式です")
)

// ExportFormatUser and ExportFormatDetail select the project export
// layout
const (
	ExportFormatUser   = "user"
	ExportFormatDetail = "detail"
)

// ProjectService handles the project master and project-scoped exports
type ProjectService struct {
	projectRepo  repository.ProjectRepository
	workTypeRepo repository.WorkTypeRepository
	itemRepo     repository.WorkItemRepository
	reportRepo   repository.ReportRepository
	userRepo     repository.UserRepository
}

// NewProjectService creates a new ProjectService
func NewProjectService(
	projectRepo repository.ProjectRepository,
	workTypeRepo repository.WorkTypeRepository,
	itemRepo repository.WorkItemRepository,
	reportRepo repository.ReportRepository,
	userRepo repository.UserRepository,
) *ProjectService {
	return &ProjectService{
		projectRepo:  projectRepo,
		workTypeRepo: workTypeRepo,
		itemRepo:     itemRepo,
		reportRepo:   reportRepo,
		userRepo:     userRepo,
	}
}

// List returns every project
func (s *ProjectService) List(ctx context.Context) ([]models.Project, error) {
	projects, err := s.projectRepo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load projects: %w", err)
	}
	if projects == nil {
		projects = []models.Project{}
	}
	return projects, nil
}

// AddProjectInput represents input for creating a project
type AddProjectInput struct {
	Name        string
	Status      string
	WorkTypeIDs []string
}

// Add creates a project. An empty status defaults to not started.
func (s *ProjectService) Add(ctx context.Context, input AddProjectInput) (*models.Project, error) {
	projects, err := s.projectRepo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load projects: %w", err)
	}

	status := input.Status
	if status == "" {
		status = constants.ProjectStatusNotStarted
	}
	project := models.Project{
		ID:          uuid.NewString(),
		Name:        input.Name,
		Status:      status,
		WorkTypeIDs: emptyIfNil(input.WorkTypeIDs),
	}
	if status == constants.ProjectStatusDone {
		project.CompletedDate = time.Now().Format("2006-01-02")
	}

	projects = append(projects, project)
	if err := s.projectRepo.Save(ctx, projects); err != nil {
		return nil, err
	}
	return &project, nil
}

// UpdateProjectInput represents input for updating a project. Nil
// fields keep the stored value.
type UpdateProjectInput struct {
	ID          string
	Name        *string
	Status      *string
	WorkTypeIDs []string
}

// Update modifies a project. Moving the status to done stamps the
// completion date; moving it anywhere else clears it.
func (s *ProjectService) Update(ctx context.Context, input UpdateProjectInput) (*models.Project, error) {
	projects, err := s.projectRepo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load projects: %w", err)
	}

	for i := range projects {
		if projects[i].ID != input.ID {
			continue
		}
		project := &projects[i]
		if input.Name != nil {
			project.Name = *input.Name
		}
		if input.WorkTypeIDs != nil {
			project.WorkTypeIDs = input.WorkTypeIDs
		}
		if input.Status != nil && *input.Status != project.Status {
			project.Status = *input.Status
			if project.Status == constants.ProjectStatusDone {
				project.CompletedDate = time.Now().Format("2006-01-02")
			} else {
				project.CompletedDate = ""
			}
		}
		if err := s.projectRepo.Save(ctx, projects); err != nil {
			return nil, err
		}
		return project, nil
	}

	return nil, ErrProjectNotFound
}

// Delete removes one project
func (s *ProjectService) Delete(ctx context.Context, id string) error {
	projects, err := s.projectRepo.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load projects: %w", err)
	}

	kept := make([]models.Project, 0, len(projects))
	found := false
	for _, project := range projects {
		if project.ID == id {
			found = true
			continue
		}
		kept = append(kept, project)
	}
	if !found {
		return ErrProjectNotFound
	}
	return s.projectRepo.Save(ctx, kept)
}

// Export renders one project's reports as a workbook, either the
// per-user pivot or the dated detail layout
func (s *ProjectService) Export(ctx context.Context, projectID, format string) (*excelize.File, *models.Project, error) {
	if projectID == "" {
		return nil, nil, ErrMissingProjectID
	}
	if format != ExportFormatUser && format != ExportFormatDetail {
		return nil, nil, ErrUnknownFormat
	}

	projects, err := s.projectRepo.Load(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load projects: %w", err)
	}
	var project *models.Project
	for i := range projects {
		if projects[i].ID == projectID {
			project = &projects[i]
			break
		}
	}
	if project == nil {
		return nil, nil, ErrProjectNotFound
	}

	workTypes, itemsByType, allReports, err := s.exportContext(ctx, project.WorkTypeIDs)
	if err != nil {
		return nil, nil, err
	}

	var f *excelize.File
	if format == ExportFormatDetail {
		f, err = excel.ExportProjectDetail(*project, workTypes, itemsByType, allReports)
	} else {
		f, err = excel.ExportProjectPivot(*project, workTypes, itemsByType, allReports)
	}
	if err != nil {
		return nil, nil, err
	}
	return f, project, nil
}

// ExportView renders the cross-project pivot covering every work
// process
func (s *ProjectService) ExportView(ctx context.Context) (*excelize.File, error) {
	workTypes, err := s.workTypeRepo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load work types: %w", err)
	}
	projects, err := s.projectRepo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load projects: %w", err)
	}

	typeIDs := make([]string, 0, len(workTypes))
	for _, workType := range workTypes {
		typeIDs = append(typeIDs, workType.ID)
	}
	_, itemsByType, allReports, err := s.exportContext(ctx, typeIDs)
	if err != nil {
		return nil, err
	}

	return excel.ExportProjectView(workTypes, projects, itemsByType, allReports)
}

// exportContext gathers the shared inputs of the workbook exports:
// the work-type master, the item lists of the requested processes and
// everyone's reports
func (s *ProjectService) exportContext(ctx context.Context, workTypeIDs []string) ([]models.WorkType, map[string][]models.WorkItem, []models.Report, error) {
	workTypes, err := s.workTypeRepo.Load(ctx)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load work types: %w", err)
	}

	itemsByType := map[string][]models.WorkItem{}
	for _, workTypeID := range workTypeIDs {
		if _, ok := itemsByType[workTypeID]; ok {
			continue
		}
		items, err := s.itemRepo.LoadItems(ctx, workTypeID)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to load work items: %w", err)
		}
		itemsByType[workTypeID] = items
	}

	users, err := s.userRepo.Load(ctx)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load users: %w", err)
	}
	usernames := make([]string, 0, len(users))
	for username := range users {
		usernames = append(usernames, username)
	}
	allReports, err := s.reportRepo.LoadAllReports(ctx, usernames)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load reports: %w", err)
	}

	return workTypes, itemsByType, allReports, nil
}
