package models

// ReportWorkItem is one logged unit of work inside a report.
type ReportWorkItem struct {
	WorkItemID string `json:"work_item_id"`
	WorkTypeID string `json:"work_type_id"`
	Minutes    int    `json:"minutes"`
}

// ReportProject groups a report's entries by project.
type ReportProject struct {
	ProjectID string           `json:"project_id"`
	WorkItems []ReportWorkItem `json:"work_items"`
}

// Report is one user's submission for one date. Multiple reports may
// share a date; the system does not enforce one report per day.
type Report struct {
	ID        string          `json:"id"`
	Date      string          `json:"date"`
	Projects  []ReportProject `json:"projects"`
	CreatedAt string          `json:"created_at"`
	UpdatedAt string          `json:"updated_at"`

	// Username is stamped when reports from several users are merged
	// for admin views; it is not persisted in the per-user document.
	Username string `json:"username,omitempty"`
}

// ReportDocument is the stored shape of one user's report list.
type ReportDocument struct {
	Reports []Report `json:"reports"`
}
