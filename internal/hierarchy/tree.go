// Package hierarchy holds the pure functions over a work process's flat
// item list: hierarchy-path resolution, leaf detection, descendant
// enumeration, category filtering, and import reconciliation. Nothing
// here touches storage.
package hierarchy

import (
	"errors"

	"github.com/masakimorita/work-report-api/internal/constants"
	"github.com/masakimorita/work-report-api/internal/models"
)

// ErrCycleDetected is returned when a parent chain does not reach a
// root within the maximum hierarchy depth.
var ErrCycleDetected = errors.New("hierarchy: parent chain exceeds maximum depth")

// IndexByID builds an id lookup for a flat item list. The index is
// rebuilt per operation; child pointers are never materialized.
func IndexByID(items []models.WorkItem) map[string]*models.WorkItem {
	byID := make(map[string]*models.WorkItem, len(items))
	for i := range items {
		byID[items[i].ID] = &items[i]
	}
	return byID
}

// Path returns the ordered name sequence from the root down to item.
// A parent_id that refers to nothing in items terminates the walk, so a
// dangling reference behaves like a root. The walk is bounded by the
// maximum hierarchy depth; past the bound the chain is cyclic.
func Path(item models.WorkItem, byID map[string]*models.WorkItem) ([]string, error) {
	path := make([]string, 0, constants.MaxHierarchyDepth)
	current := &item
	for steps := 0; ; steps++ {
		if steps >= constants.MaxHierarchyDepth {
			return nil, ErrCycleDetected
		}
		path = append([]string{current.Name}, path...)
		if current.ParentID == "" {
			return path, nil
		}
		parent, ok := byID[current.ParentID]
		if !ok {
			return path, nil
		}
		current = parent
	}
}

// PathOf is Path with the index built on the fly.
func PathOf(item models.WorkItem, items []models.WorkItem) ([]string, error) {
	return Path(item, IndexByID(items))
}

// IsLeaf reports whether no element of items names item as its parent.
// The stored is_leaf flag is advisory and deliberately ignored.
func IsLeaf(item models.WorkItem, items []models.WorkItem) bool {
	for i := range items {
		if items[i].ParentID == item.ID {
			return false
		}
	}
	return true
}

// LeafFlags derives leaf status for every item in one pass.
func LeafFlags(items []models.WorkItem) map[string]bool {
	hasChildren := make(map[string]bool, len(items))
	for i := range items {
		if items[i].ParentID != "" {
			hasChildren[items[i].ParentID] = true
		}
	}
	flags := make(map[string]bool, len(items))
	for i := range items {
		flags[items[i].ID] = !hasChildren[items[i].ID]
	}
	return flags
}

// DescendantIDs returns rootID plus every id whose parent chain reaches
// rootID. Used for cascading delete.
func DescendantIDs(rootID string, items []models.WorkItem) map[string]struct{} {
	ids := map[string]struct{}{rootID: {}}
	// Iterative frontier walk; bounded by tree depth.
	frontier := []string{rootID}
	for len(frontier) > 0 {
		next := frontier[:0:0]
		for i := range items {
			if _, ok := ids[items[i].ID]; ok {
				continue
			}
			for _, parent := range frontier {
				if items[i].ParentID == parent {
					ids[items[i].ID] = struct{}{}
					next = append(next, items[i].ID)
					break
				}
			}
		}
		frontier = next
	}
	return ids
}
