package services

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/masakimorita/work-report-api/internal/excel"
	"github.com/masakimorita/work-report-api/internal/hierarchy"
	"github.com/masakimorita/work-report-api/internal/models"
	"github.com/masakimorita/work-report-api/internal/repository"
)

var (
	ErrMissingWorkTypeID = errors.New("工種IDが必要です")
	ErrWorkItemNotFound  = errors.New("作業項目が見つかりません")
)

// WorkItemService handles the work-item master and spreadsheet
// import/export
type WorkItemService struct {
	itemRepo repository.WorkItemRepository
}

// NewWorkItemService creates a new WorkItemService
func NewWorkItemService(itemRepo repository.WorkItemRepository) *WorkItemService {
	return &WorkItemService{itemRepo: itemRepo}
}

// ListInput represents filters for listing work items
type ListInput struct {
	WorkTypeID     string // empty means every work process
	Role           string
	UserCategories []string
}

// List returns items visible to the requesting user. Leaf visibility
// follows the user's category set; ancestors of visible leaves stay
// visible.
func (s *WorkItemService) List(ctx context.Context, input ListInput) ([]models.WorkItem, error) {
	var items []models.WorkItem
	var err error
	if input.WorkTypeID != "" {
		items, err = s.itemRepo.LoadItems(ctx, input.WorkTypeID)
	} else {
		items, err = s.itemRepo.LoadAllItems(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load work items: %w", err)
	}

	filtered := hierarchy.FilterByCategories(items, input.UserCategories, input.Role)
	if filtered == nil {
		filtered = []models.WorkItem{}
	}
	return filtered, nil
}

// SaveAll overwrites a process's whole item list
func (s *WorkItemService) SaveAll(ctx context.Context, workTypeID string, items []models.WorkItem) error {
	if workTypeID == "" {
		return ErrMissingWorkTypeID
	}
	return s.itemRepo.SaveItems(ctx, workTypeID, items)
}

// AddInput represents input for creating a work item
type AddInput struct {
	WorkTypeID            string
	Name                  string
	Level                 int
	ParentID              string
	Attribute             string
	TargetMinutes         *int
	Checklist             []string
	Method                []string
	InternalLeadtime      bool
	ExternalLeadtime      bool
	InternalLeadtimeItems []string
	ExternalLeadtimeItems []string
	JobCategories         []string
	IsLeaf                bool
}

// Add appends one item to a process's list
func (s *WorkItemService) Add(ctx context.Context, input AddInput) (*models.WorkItem, error) {
	if input.WorkTypeID == "" {
		return nil, ErrMissingWorkTypeID
	}

	items, err := s.itemRepo.LoadItems(ctx, input.WorkTypeID)
	if err != nil {
		return nil, fmt.Errorf("failed to load work items: %w", err)
	}

	level := input.Level
	if level == 0 {
		level = 1
	}
	item := models.WorkItem{
		ID:                    uuid.NewString(),
		Name:                  input.Name,
		Level:                 level,
		ParentID:              input.ParentID,
		WorkTypeID:            input.WorkTypeID,
		Attribute:             input.Attribute,
		TargetMinutes:         input.TargetMinutes,
		Checklist:             emptyIfNil(input.Checklist),
		Method:                emptyIfNil(input.Method),
		InternalLeadtime:      input.InternalLeadtime,
		ExternalLeadtime:      input.ExternalLeadtime,
		InternalLeadtimeItems: emptyIfNil(input.InternalLeadtimeItems),
		ExternalLeadtimeItems: emptyIfNil(input.ExternalLeadtimeItems),
		JobCategories:         emptyIfNil(input.JobCategories),
		IsLeaf:                input.IsLeaf,
	}

	items = append(items, item)
	if err := s.itemRepo.SaveItems(ctx, input.WorkTypeID, items); err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateInput represents input for updating a work item. Nil fields
// keep the stored value.
type UpdateInput struct {
	ID                    string
	WorkTypeID            string
	Name                  *string
	Level                 *int
	ParentID              *string
	Attribute             *string
	TargetMinutes         *int
	Checklist             []string
	Method                []string
	InternalLeadtime      *bool
	ExternalLeadtime      *bool
	InternalLeadtimeItems []string
	ExternalLeadtimeItems []string
	JobCategories         []string
	IsLeaf                *bool
}

// Update modifies one item in place
func (s *WorkItemService) Update(ctx context.Context, input UpdateInput) (*models.WorkItem, error) {
	if input.WorkTypeID == "" {
		return nil, ErrMissingWorkTypeID
	}

	items, err := s.itemRepo.LoadItems(ctx, input.WorkTypeID)
	if err != nil {
		return nil, fmt.Errorf("failed to load work items: %w", err)
	}

	for i := range items {
		if items[i].ID != input.ID {
			continue
		}
		item := &items[i]
		item.WorkTypeID = input.WorkTypeID
		if input.Name != nil {
			item.Name = *input.Name
		}
		if input.Level != nil {
			item.Level = *input.Level
		}
		if input.ParentID != nil {
			item.ParentID = *input.ParentID
		}
		if input.Attribute != nil {
			item.Attribute = *input.Attribute
		}
		if input.TargetMinutes != nil {
			item.TargetMinutes = input.TargetMinutes
		}
		if input.Checklist != nil {
			item.Checklist = input.Checklist
		}
		if input.Method != nil {
			item.Method = input.Method
		}
		if input.InternalLeadtime != nil {
			item.InternalLeadtime = *input.InternalLeadtime
		}
		if input.ExternalLeadtime != nil {
			item.ExternalLeadtime = *input.ExternalLeadtime
		}
		if input.InternalLeadtimeItems != nil {
			item.InternalLeadtimeItems = input.InternalLeadtimeItems
		}
		if input.ExternalLeadtimeItems != nil {
			item.ExternalLeadtimeItems = input.ExternalLeadtimeItems
		}
		if input.JobCategories != nil {
			item.JobCategories = input.JobCategories
		}
		if input.IsLeaf != nil {
			item.IsLeaf = *input.IsLeaf
		}
		if err := s.itemRepo.SaveItems(ctx, input.WorkTypeID, items); err != nil {
			return nil, err
		}
		return item, nil
	}

	return nil, ErrWorkItemNotFound
}

// Delete removes the given items and every descendant of each
func (s *WorkItemService) Delete(ctx context.Context, workTypeID string, ids []string) error {
	if workTypeID == "" {
		return ErrMissingWorkTypeID
	}

	items, err := s.itemRepo.LoadItems(ctx, workTypeID)
	if err != nil {
		return fmt.Errorf("failed to load work items: %w", err)
	}

	doomed := map[string]struct{}{}
	for _, id := range ids {
		for descendant := range hierarchy.DescendantIDs(id, items) {
			doomed[descendant] = struct{}{}
		}
	}

	kept := make([]models.WorkItem, 0, len(items))
	for _, item := range items {
		if _, ok := doomed[item.ID]; !ok {
			kept = append(kept, item)
		}
	}

	return s.itemRepo.SaveItems(ctx, workTypeID, kept)
}

// Export renders a process's leaf items as the exchange workbook
func (s *WorkItemService) Export(ctx context.Context, workTypeID string) (*excelize.File, error) {
	if workTypeID == "" {
		return nil, ErrMissingWorkTypeID
	}

	items, err := s.itemRepo.LoadItems(ctx, workTypeID)
	if err != nil {
		return nil, fmt.Errorf("failed to load work items: %w", err)
	}
	return excel.EncodeWorkItems(items)
}

// Preview decodes an uploaded workbook without persisting anything
func (s *WorkItemService) Preview(r io.Reader) ([]models.WorkItem, error) {
	return excel.DecodeWorkItems(r)
}

// ImportResult reports the outcome of an import
type ImportResult struct {
	Count   int
	Added   int
	Updated int
	Deleted int
}

// Import decodes an uploaded workbook and reconciles it against the
// stored tree, persisting the merged list
func (s *WorkItemService) Import(ctx context.Context, workTypeID string, r io.Reader) (*ImportResult, error) {
	if workTypeID == "" {
		return nil, ErrMissingWorkTypeID
	}

	imported, err := excel.DecodeWorkItems(r)
	if err != nil {
		return nil, err
	}

	existing, err := s.itemRepo.LoadItems(ctx, workTypeID)
	if err != nil {
		return nil, fmt.Errorf("failed to load work items: %w", err)
	}

	merged, err := hierarchy.Merge(existing, imported)
	if err != nil {
		return nil, err
	}

	if err := s.itemRepo.SaveItems(ctx, workTypeID, merged.Items); err != nil {
		return nil, err
	}

	return &ImportResult{
		Count:   merged.Count,
		Added:   merged.Added,
		Updated: merged.Updated,
		Deleted: merged.Deleted,
	}, nil
}

func emptyIfNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
