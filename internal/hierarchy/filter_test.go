package hierarchy

import (
	"testing"

	"github.com/masakimorita/work-report-api/internal/constants"
	"github.com/masakimorita/work-report-api/internal/models"
	"github.com/stretchr/testify/require"
)

func filterFixture() []models.WorkItem {
	return []models.WorkItem{
		{ID: "root", Name: "設計", Level: 1},
		{ID: "leaf-design", Name: "詳細設計", Level: 2, ParentID: "root", JobCategories: []string{"設計"}},
		{ID: "leaf-inspect", Name: "検図", Level: 2, ParentID: "root", JobCategories: []string{"検査"}},
		{ID: "leaf-open", Name: "打合せ", Level: 2, ParentID: "root"},
		{ID: "sales-root", Name: "営業", Level: 1},
		{ID: "leaf-sales", Name: "見積", Level: 2, ParentID: "sales-root", JobCategories: []string{"営業"}},
	}
}

func idsOf(items []models.WorkItem) []string {
	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}
	return ids
}

func TestFilterByCategories_AdminSeesEverything(t *testing.T) {
	items := filterFixture()
	got := FilterByCategories(items, nil, constants.RoleAdmin)
	require.Equal(t, idsOf(items), idsOf(got))
}

func TestFilterByCategories_AllSentinelSeesEverything(t *testing.T) {
	items := filterFixture()
	got := FilterByCategories(items, []string{constants.CategoryAll}, constants.RoleUser)
	require.Equal(t, idsOf(items), idsOf(got))
}

func TestFilterByCategories_LeafAndAncestorVisibility(t *testing.T) {
	items := filterFixture()
	got := FilterByCategories(items, []string{"設計"}, constants.RoleUser)

	ids := idsOf(got)
	require.Contains(t, ids, "leaf-design")
	// Uncategorized leaves are unrestricted.
	require.Contains(t, ids, "leaf-open")
	// Ancestor of a visible leaf is visible.
	require.Contains(t, ids, "root")
	require.NotContains(t, ids, "leaf-inspect")
	require.NotContains(t, ids, "leaf-sales")
	// A parent with no visible leaves disappears with its subtree.
	require.NotContains(t, ids, "sales-root")
}

func TestFilterByCategories_AncestorClosure(t *testing.T) {
	items := filterFixture()
	got := FilterByCategories(items, []string{"営業"}, constants.RoleUser)

	visible := make(map[string]bool)
	for _, item := range got {
		visible[item.ID] = true
	}
	byID := IndexByID(items)
	for _, item := range got {
		parentID := item.ParentID
		for parentID != "" {
			require.True(t, visible[parentID], "ancestor %s of visible %s must be visible", parentID, item.ID)
			parentID = byID[parentID].ParentID
		}
	}
}
