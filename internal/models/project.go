package models

// Project tracks one project and the work processes it spans.
// CompletedDate is set when Status transitions into the done value and
// cleared when it transitions away from it.
type Project struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Status        string   `json:"status"`
	WorkTypeIDs   []string `json:"work_type_ids"`
	CompletedDate string   `json:"completed_date,omitempty"`
}

// ProjectDocument is the stored shape of the project master.
type ProjectDocument struct {
	Projects []Project `json:"projects"`
}
