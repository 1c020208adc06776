package repository

import (
	"context"

	"github.com/masakimorita/work-report-api/internal/models"
	"github.com/masakimorita/work-report-api/internal/store"
)

// DocumentUserRepository reads and writes the user master document
type DocumentUserRepository struct {
	store store.DocumentStore
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(s store.DocumentStore) UserRepository {
	return &DocumentUserRepository{store: s}
}

func (r *DocumentUserRepository) Load(ctx context.Context) (models.UserDocument, error) {
	users := models.UserDocument{}
	if err := r.store.Load(ctx, store.KeyUsers, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *DocumentUserRepository) Save(ctx context.Context, users models.UserDocument) error {
	return r.store.Save(ctx, store.KeyUsers, users)
}

// DocumentProjectRepository reads and writes the project master document
type DocumentProjectRepository struct {
	store store.DocumentStore
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(s store.DocumentStore) ProjectRepository {
	return &DocumentProjectRepository{store: s}
}

func (r *DocumentProjectRepository) Load(ctx context.Context) ([]models.Project, error) {
	var doc models.ProjectDocument
	if err := r.store.Load(ctx, store.KeyProjects, &doc); err != nil {
		return nil, err
	}
	return doc.Projects, nil
}

func (r *DocumentProjectRepository) Save(ctx context.Context, projects []models.Project) error {
	return r.store.Save(ctx, store.KeyProjects, models.ProjectDocument{Projects: projects})
}

// DocumentWorkTypeRepository reads and writes the work-type master document
type DocumentWorkTypeRepository struct {
	store store.DocumentStore
}

// NewWorkTypeRepository creates a new WorkTypeRepository
func NewWorkTypeRepository(s store.DocumentStore) WorkTypeRepository {
	return &DocumentWorkTypeRepository{store: s}
}

func (r *DocumentWorkTypeRepository) Load(ctx context.Context) ([]models.WorkType, error) {
	var doc models.WorkTypeDocument
	if err := r.store.Load(ctx, store.KeyWorkTypes, &doc); err != nil {
		return nil, err
	}
	return doc.WorkTypes, nil
}

func (r *DocumentWorkTypeRepository) Save(ctx context.Context, workTypes []models.WorkType) error {
	return r.store.Save(ctx, store.KeyWorkTypes, models.WorkTypeDocument{WorkTypes: workTypes})
}

// DocumentJobCategoryRepository reads and writes the job-category master
type DocumentJobCategoryRepository struct {
	store store.DocumentStore
}

// NewJobCategoryRepository creates a new JobCategoryRepository
func NewJobCategoryRepository(s store.DocumentStore) JobCategoryRepository {
	return &DocumentJobCategoryRepository{store: s}
}

func (r *DocumentJobCategoryRepository) Load(ctx context.Context) ([]string, error) {
	var doc models.JobCategoryDocument
	if err := r.store.Load(ctx, store.KeyJobCategories, &doc); err != nil {
		return nil, err
	}
	return doc.Categories, nil
}

func (r *DocumentJobCategoryRepository) Save(ctx context.Context, categories []string) error {
	return r.store.Save(ctx, store.KeyJobCategories, models.JobCategoryDocument{Categories: categories})
}
