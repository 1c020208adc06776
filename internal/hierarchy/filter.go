package hierarchy

import (
	"github.com/masakimorita/work-report-api/internal/constants"
	"github.com/masakimorita/work-report-api/internal/models"
)

// FilterByCategories restricts items to what a user's category set may
// see. Admins and holders of the "all" sentinel see everything. A leaf
// is visible iff it has no categories or shares one with the user; a
// non-leaf is visible iff some leaf below it is. The filtered set is
// closed under taking ancestors of visible items.
func FilterByCategories(items []models.WorkItem, userCategories []string, role string) []models.WorkItem {
	if role == constants.RoleAdmin {
		return items
	}
	for _, cat := range userCategories {
		if cat == constants.CategoryAll {
			return items
		}
	}

	leafFlags := LeafFlags(items)
	userSet := make(map[string]struct{}, len(userCategories))
	for _, cat := range userCategories {
		userSet[cat] = struct{}{}
	}

	leafVisible := func(item models.WorkItem) bool {
		if len(item.JobCategories) == 0 {
			return true
		}
		for _, cat := range item.JobCategories {
			if _, ok := userSet[cat]; ok {
				return true
			}
		}
		return false
	}

	children := make(map[string][]*models.WorkItem, len(items))
	for i := range items {
		if items[i].ParentID != "" {
			children[items[i].ParentID] = append(children[items[i].ParentID], &items[i])
		}
	}

	// Subtree visibility, memoized per item. Recursion depth is bounded
	// by the tree depth.
	memo := make(map[string]bool, len(items))
	var subtreeVisible func(item models.WorkItem) bool
	subtreeVisible = func(item models.WorkItem) bool {
		if v, ok := memo[item.ID]; ok {
			return v
		}
		visible := false
		if leafFlags[item.ID] {
			visible = leafVisible(item)
		} else {
			for _, child := range children[item.ID] {
				if subtreeVisible(*child) {
					visible = true
					break
				}
			}
		}
		memo[item.ID] = visible
		return visible
	}

	filtered := make([]models.WorkItem, 0, len(items))
	for _, item := range items {
		if subtreeVisible(item) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}
