package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/masakimorita/work-report-api/internal/models"
	"github.com/masakimorita/work-report-api/internal/repository"
)

var ErrWorkTypeNotFound = errors.New("工種が見つかりません")

// WorkTypeService handles the work-type master
type WorkTypeService struct {
	workTypeRepo repository.WorkTypeRepository
}

// NewWorkTypeService creates a new WorkTypeService
func NewWorkTypeService(workTypeRepo repository.WorkTypeRepository) *WorkTypeService {
	return &WorkTypeService{workTypeRepo: workTypeRepo}
}

// List returns every work type in display order
func (s *WorkTypeService) List(ctx context.Context) ([]models.WorkType, error) {
	workTypes, err := s.workTypeRepo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load work types: %w", err)
	}
	if workTypes == nil {
		workTypes = []models.WorkType{}
	}
	return workTypes, nil
}

// Add appends a work type
func (s *WorkTypeService) Add(ctx context.Context, name string) (*models.WorkType, error) {
	workTypes, err := s.workTypeRepo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load work types: %w", err)
	}

	workType := models.WorkType{ID: uuid.NewString(), Name: name}
	workTypes = append(workTypes, workType)
	if err := s.workTypeRepo.Save(ctx, workTypes); err != nil {
		return nil, err
	}
	return &workType, nil
}

// Update renames a work type
func (s *WorkTypeService) Update(ctx context.Context, id, name string) (*models.WorkType, error) {
	workTypes, err := s.workTypeRepo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load work types: %w", err)
	}

	for i := range workTypes {
		if workTypes[i].ID != id {
			continue
		}
		workTypes[i].Name = name
		if err := s.workTypeRepo.Save(ctx, workTypes); err != nil {
			return nil, err
		}
		return &workTypes[i], nil
	}
	return nil, ErrWorkTypeNotFound
}

// Delete removes a work type from the master. Its item document is
// left in place so a re-added process with the same id would see it.
func (s *WorkTypeService) Delete(ctx context.Context, id string) error {
	workTypes, err := s.workTypeRepo.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load work types: %w", err)
	}

	kept := make([]models.WorkType, 0, len(workTypes))
	found := false
	for _, workType := range workTypes {
		if workType.ID == id {
			found = true
			continue
		}
		kept = append(kept, workType)
	}
	if !found {
		return ErrWorkTypeNotFound
	}
	return s.workTypeRepo.Save(ctx, kept)
}

// UpdateOrder replaces the whole list with the client's ordering
func (s *WorkTypeService) UpdateOrder(ctx context.Context, workTypes []models.WorkType) error {
	if workTypes == nil {
		workTypes = []models.WorkType{}
	}
	return s.workTypeRepo.Save(ctx, workTypes)
}
