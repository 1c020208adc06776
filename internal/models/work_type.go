package models

// WorkType is a named work process owning its own work-item tree.
type WorkType struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// WorkTypeDocument is the stored shape of the work-type master. Order
// is significant; update-order overwrites the whole list.
type WorkTypeDocument struct {
	WorkTypes []WorkType `json:"work_types"`
}

// JobCategoryDocument is the stored shape of the job-category master.
type JobCategoryDocument struct {
	Categories []string `json:"categories"`
}
