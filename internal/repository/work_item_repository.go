package repository

import (
	"context"

	"github.com/masakimorita/work-report-api/internal/models"
	"github.com/masakimorita/work-report-api/internal/store"
)

// DocumentWorkItemRepository reads and writes work-item documents
type DocumentWorkItemRepository struct {
	store store.DocumentStore
}

// NewWorkItemRepository creates a new WorkItemRepository
func NewWorkItemRepository(s store.DocumentStore) WorkItemRepository {
	return &DocumentWorkItemRepository{store: s}
}

// LoadItems returns the stored item list for one work process
func (r *DocumentWorkItemRepository) LoadItems(ctx context.Context, workTypeID string) ([]models.WorkItem, error) {
	var doc models.WorkItemDocument
	if err := r.store.Load(ctx, store.WorkItemsKey(workTypeID), &doc); err != nil {
		return nil, err
	}
	return doc.Items, nil
}

// LoadAllItems returns the items of every work process
func (r *DocumentWorkItemRepository) LoadAllItems(ctx context.Context) ([]models.WorkItem, error) {
	keys, err := r.store.ListKeys(ctx, store.WorkItemsKeyPrefix)
	if err != nil {
		return nil, err
	}

	var all []models.WorkItem
	for _, key := range keys {
		var doc models.WorkItemDocument
		if err := r.store.Load(ctx, key, &doc); err != nil {
			return nil, err
		}
		workTypeID := store.WorkTypeIDFromKey(key)
		for _, item := range doc.Items {
			if item.WorkTypeID == "" {
				item.WorkTypeID = workTypeID
			}
			all = append(all, item)
		}
	}
	return all, nil
}

// SaveItems overwrites the stored item list for one work process
func (r *DocumentWorkItemRepository) SaveItems(ctx context.Context, workTypeID string, items []models.WorkItem) error {
	return r.store.Save(ctx, store.WorkItemsKey(workTypeID), models.WorkItemDocument{Items: items})
}
