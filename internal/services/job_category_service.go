package services

import (
	"context"
	"fmt"

	"github.com/masakimorita/work-report-api/internal/repository"
)

// JobCategoryService handles the job-category master
type JobCategoryService struct {
	categoryRepo repository.JobCategoryRepository
}

// NewJobCategoryService creates a new JobCategoryService
func NewJobCategoryService(categoryRepo repository.JobCategoryRepository) *JobCategoryService {
	return &JobCategoryService{categoryRepo: categoryRepo}
}

// List returns every job category
func (s *JobCategoryService) List(ctx context.Context) ([]string, error) {
	categories, err := s.categoryRepo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load job categories: %w", err)
	}
	if categories == nil {
		categories = []string{}
	}
	return categories, nil
}

// Save replaces the whole category list
func (s *JobCategoryService) Save(ctx context.Context, categories []string) error {
	if categories == nil {
		categories = []string{}
	}
	return s.categoryRepo.Save(ctx, categories)
}
