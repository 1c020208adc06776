package excel

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/masakimorita/work-report-api/internal/models"
)

func exportFixture() ([]models.WorkType, map[string][]models.WorkItem, models.Project, []models.Report) {
	workTypes := []models.WorkType{{ID: "wt1", Name: "設計工程"}}
	itemsByType := map[string][]models.WorkItem{
		"wt1": {
			{ID: "root", Name: "設計", Level: 1},
			{ID: "draw", Name: "作図", Level: 2, ParentID: "root"},
			{ID: "check", Name: "検図", Level: 2, ParentID: "root",
				InternalLeadtime: true, InternalLeadtimeItems: []string{"draw"}},
			{ID: "idle", Name: "予備", Level: 2, ParentID: "root"},
		},
	}
	project := models.Project{ID: "p1", Name: "案件A", WorkTypeIDs: []string{"wt1"}}
	reports := []models.Report{
		{ID: "r1", Date: "2024-01-10", Username: "tanaka", Projects: []models.ReportProject{
			{ProjectID: "p1", WorkItems: []models.ReportWorkItem{
				{WorkItemID: "draw", WorkTypeID: "wt1", Minutes: 60},
			}},
		}},
		{ID: "r2", Date: "2024-01-12", Username: "tanaka", Projects: []models.ReportProject{
			{ProjectID: "p1", WorkItems: []models.ReportWorkItem{
				{WorkItemID: "check", WorkTypeID: "wt1", Minutes: 30},
			}},
		}},
		{ID: "r3", Date: "2024-01-11", Username: "suzuki", Projects: []models.ReportProject{
			{ProjectID: "p1", WorkItems: []models.ReportWorkItem{
				{WorkItemID: "draw", WorkTypeID: "wt1", Minutes: 45},
			}},
		}},
		// Admin reports never appear in exports.
		{ID: "r4", Date: "2024-01-13", Username: "admin", Projects: []models.ReportProject{
			{ProjectID: "p1", WorkItems: []models.ReportWorkItem{
				{WorkItemID: "draw", WorkTypeID: "wt1", Minutes: 99},
			}},
		}},
	}
	return workTypes, itemsByType, project, reports
}

func TestExportProjectPivot(t *testing.T) {
	workTypes, itemsByType, project, reports := exportFixture()

	f, err := ExportProjectPivot(project, workTypes, itemsByType, reports)
	require.NoError(t, err)

	rows, err := f.GetRows("設計工程")
	require.NoError(t, err)

	// Columns: item path, then users sorted ascending.
	require.Equal(t, []string{"作業項目", "suzuki", "tanaka"}, rows[0])

	byPath := map[string][]string{}
	for _, row := range rows[1:] {
		padded := append(row, make([]string, 3)...)
		byPath[padded[0]] = padded[1:3]
	}
	require.Equal(t, []string{"2024-01-11", "2024-01-10"}, byPath["設計 > 作図"])
	require.Equal(t, []string{"", "2024-01-12"}, byPath["設計 > 検図"])
	// A leaf with no records still emits its row.
	require.Contains(t, byPath, "設計 > 予備")
}

func TestExportProjectDetail_LeadtimeDays(t *testing.T) {
	workTypes, itemsByType, project, reports := exportFixture()

	f, err := ExportProjectDetail(project, workTypes, itemsByType, reports)
	require.NoError(t, err)

	rows, err := f.GetRows("設計工程")
	require.NoError(t, err)
	require.Equal(t, detailColumns, rows[0])

	var checkRow []string
	for _, row := range rows[1:] {
		if len(row) > 1 && row[0] == "設計 > 検図" {
			checkRow = append(row, make([]string, 5)...)
		}
	}
	require.NotNil(t, checkRow)
	require.Equal(t, "2024-01-12", checkRow[1])
	require.Equal(t, "30", checkRow[2])
	// Closest preceding 作図 date is 2024-01-11: lead time is one day.
	require.Equal(t, "1", checkRow[3])
	// No external lead-time target: blank.
	require.Equal(t, "", checkRow[4])

	// Record-less leaves emit one path-only row.
	var idleRows int
	for _, row := range rows[1:] {
		if len(row) > 0 && row[0] == "設計 > 予備" {
			idleRows++
			require.LessOrEqual(t, len(row), 1)
		}
	}
	require.Equal(t, 1, idleRows)
}

func TestExportProjectView(t *testing.T) {
	workTypes, itemsByType, project, reports := exportFixture()
	projects := []models.Project{project, {ID: "p2", Name: "案件B", WorkTypeIDs: []string{"wt1"}}}

	f, err := ExportProjectView(workTypes, projects, itemsByType, reports)
	require.NoError(t, err)

	rows, err := f.GetRows("設計工程")
	require.NoError(t, err)
	require.Equal(t, []string{"作業項目", "案件A", "案件B"}, rows[0])

	byPath := map[string][]string{}
	for _, row := range rows[1:] {
		padded := append(row, make([]string, 3)...)
		byPath[padded[0]] = padded[1:3]
	}
	require.Equal(t, "2024-01-10, 2024-01-11, 2024-01-13", byPath["設計 > 作図"][0])
	require.Equal(t, "", byPath["設計 > 作図"][1])
}

func TestDateDiffDays(t *testing.T) {
	require.Equal(t, 2, dateDiffDays("2024-01-12", "2024-01-10"))
	require.Equal(t, 0, dateDiffDays("2024-01-10", "2024-01-10"))
	require.Equal(t, -1, dateDiffDays("2024-01-09", "2024-01-10"))
	require.Equal(t, -1, dateDiffDays("not-a-date", "2024-01-10"))
}
