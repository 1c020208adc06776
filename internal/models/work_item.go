package models

// WorkItem is one node in a work process's hierarchy, stored as a flat
// list with parent pointers. IsLeaf is advisory only; leaf status is
// always derived from the sibling list (see internal/hierarchy).
type WorkItem struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Level      int    `json:"level"`
	ParentID   string `json:"parent_id,omitempty"`
	WorkTypeID string `json:"work_type_id,omitempty"`

	Attribute     string `json:"attribute,omitempty"`
	TargetMinutes *int   `json:"target_minutes,omitempty"`

	Checklist []string `json:"checklist"`
	Method    []string `json:"method"`

	InternalLeadtime      bool     `json:"internal_leadtime"`
	ExternalLeadtime      bool     `json:"external_leadtime"`
	InternalLeadtimeItems []string `json:"internal_leadtime_items"`
	ExternalLeadtimeItems []string `json:"external_leadtime_items"`

	JobCategories []string `json:"job_categories"`

	IsLeaf bool `json:"is_leaf"`
}

// WorkItemDocument is the stored shape of one process's item list.
type WorkItemDocument struct {
	Items []WorkItem `json:"items"`
}
