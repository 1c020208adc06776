package dto

import (
	"strconv"
	"strings"

	"github.com/masakimorita/work-report-api/internal/hierarchy"
	"github.com/masakimorita/work-report-api/internal/models"
)

// WorkItemPreviewDTO is one decoded spreadsheet row shaped for the
// import preview screen: the hierarchy flattened to level columns and
// the list fields joined back to display strings
type WorkItemPreviewDTO struct {
	UUID                  string `json:"uuid"`
	Level1                string `json:"level1"`
	Level2                string `json:"level2"`
	Level3                string `json:"level3"`
	Level4                string `json:"level4"`
	Checklist             string `json:"checklist"`
	Method                string `json:"method"`
	Attribute             string `json:"attribute"`
	TargetMinutes         string `json:"target_minutes"`
	InternalLeadtime      bool   `json:"internal_leadtime"`
	ExternalLeadtime      bool   `json:"external_leadtime"`
	InternalLeadtimeItems string `json:"internal_leadtime_items"`
	ExternalLeadtimeItems string `json:"external_leadtime_items"`
	JobCategories         string `json:"job_categories"`
}

// ToWorkItemPreviewDTOs flattens decoded items into preview rows
func ToWorkItemPreviewDTOs(items []models.WorkItem) []WorkItemPreviewDTO {
	rows := make([]WorkItemPreviewDTO, 0, len(items))
	for _, item := range items {
		path, err := hierarchy.PathOf(item, items)
		if err != nil {
			path = []string{item.Name}
		}

		row := WorkItemPreviewDTO{
			UUID:                  item.ID,
			Checklist:             strings.Join(item.Checklist, "\n"),
			Method:                strings.Join(item.Method, "\n"),
			Attribute:             item.Attribute,
			InternalLeadtime:      item.InternalLeadtime,
			ExternalLeadtime:      item.ExternalLeadtime,
			InternalLeadtimeItems: strings.Join(item.InternalLeadtimeItems, ","),
			ExternalLeadtimeItems: strings.Join(item.ExternalLeadtimeItems, ","),
			JobCategories:         strings.Join(item.JobCategories, ","),
		}
		if item.TargetMinutes != nil {
			row.TargetMinutes = strconv.Itoa(*item.TargetMinutes)
		}

		levels := []*string{&row.Level1, &row.Level2, &row.Level3, &row.Level4}
		for i, name := range path {
			if i >= len(levels) {
				break
			}
			*levels[i] = name
		}

		rows = append(rows, row)
	}
	return rows
}
