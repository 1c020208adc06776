package repository

import (
	"context"

	"github.com/masakimorita/work-report-api/internal/models"
)

// WorkItemRepository defines data access for per-process item lists
type WorkItemRepository interface {
	// LoadItems returns the stored item list for one work process
	LoadItems(ctx context.Context, workTypeID string) ([]models.WorkItem, error)

	// LoadAllItems returns the items of every work process, with each
	// item's work type id stamped from its document key when unset
	LoadAllItems(ctx context.Context) ([]models.WorkItem, error)

	// SaveItems overwrites the stored item list for one work process
	SaveItems(ctx context.Context, workTypeID string, items []models.WorkItem) error
}

// ReportRepository defines data access for per-user report lists
type ReportRepository interface {
	// LoadReports returns one user's reports
	LoadReports(ctx context.Context, username string) ([]models.Report, error)

	// LoadAllReports merges the reports of the given users, stamping
	// each report with its owner's username
	LoadAllReports(ctx context.Context, usernames []string) ([]models.Report, error)

	// SaveReports overwrites one user's report list
	SaveReports(ctx context.Context, username string, reports []models.Report) error
}

// UserRepository defines data access for the user master
type UserRepository interface {
	Load(ctx context.Context) (models.UserDocument, error)
	Save(ctx context.Context, users models.UserDocument) error
}

// ProjectRepository defines data access for the project master
type ProjectRepository interface {
	Load(ctx context.Context) ([]models.Project, error)
	Save(ctx context.Context, projects []models.Project) error
}

// WorkTypeRepository defines data access for the work-type master
type WorkTypeRepository interface {
	Load(ctx context.Context) ([]models.WorkType, error)
	Save(ctx context.Context, workTypes []models.WorkType) error
}

// JobCategoryRepository defines data access for the job-category master
type JobCategoryRepository interface {
	Load(ctx context.Context) ([]string, error)
	Save(ctx context.Context, categories []string) error
}
