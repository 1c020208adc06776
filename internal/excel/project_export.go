package excel

import (
	"sort"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/masakimorita/work-report-api/internal/constants"
	"github.com/masakimorita/work-report-api/internal/models"
)

// reportRecord is one (item, date, user, minutes) observation extracted
// from the report documents for a single project and work process.
type reportRecord struct {
	workItemID string
	date       string
	username   string
	minutes    int
}

// collectRecords flattens reports into records scoped to one project
// and one work process. Admin reports are excluded from exports.
func collectRecords(projectID, workTypeID string, reports []models.Report) []reportRecord {
	var records []reportRecord
	for _, report := range reports {
		if report.Username == "" || report.Username == constants.AdminUsername {
			continue
		}
		if report.Date == "" {
			continue
		}
		for _, rp := range report.Projects {
			if rp.ProjectID != projectID {
				continue
			}
			for _, wi := range rp.WorkItems {
				if wi.WorkItemID == "" || wi.WorkTypeID != workTypeID {
					continue
				}
				records = append(records, reportRecord{
					workItemID: wi.WorkItemID,
					date:       report.Date,
					username:   report.Username,
					minutes:    wi.Minutes,
				})
			}
		}
	}
	return records
}

// leadtimeTargetDate finds the closest report date against targetID
// strictly before current, or "" when none exists.
func leadtimeTargetDate(targetID, current string, records []reportRecord) string {
	best := ""
	for _, r := range records {
		if r.workItemID == targetID && r.date < current && r.date > best {
			best = r.date
		}
	}
	return best
}

// dateDiffDays returns whole elapsed days between two ISO dates, or -1
// when unparsable or negative.
func dateDiffDays(later, earlier string) int {
	a, err := time.Parse("2006-01-02", later)
	if err != nil {
		return -1
	}
	b, err := time.Parse("2006-01-02", earlier)
	if err != nil {
		return -1
	}
	days := int(a.Sub(b).Hours() / 24)
	if days < 0 {
		return -1
	}
	return days
}

func truncateSheetName(name string) string {
	runes := []rune(name)
	if len(runes) > constants.MaxSheetNameLength {
		return string(runes[:constants.MaxSheetNameLength])
	}
	return name
}

func findWorkType(workTypes []models.WorkType, id string) (models.WorkType, bool) {
	for _, wt := range workTypes {
		if wt.ID == id {
			return wt, true
		}
	}
	return models.WorkType{}, false
}

// newWorkbook returns an empty file plus the name of the default sheet,
// which is deleted once a real sheet exists.
func newWorkbook() (*excelize.File, string) {
	f := excelize.NewFile()
	return f, f.GetSheetName(0)
}

func writeHeaderRow(f *excelize.File, sheet string, titles []string) error {
	style, err := headerStyle(f)
	if err != nil {
		return err
	}
	for col, title := range titles {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			return err
		}
	}
	last, _ := excelize.CoordinatesToCellName(len(titles), 1)
	return f.SetCellStyle(sheet, "A1", last, style)
}

// ExportProjectPivot builds the item × user view: one sheet per work
// process the project spans, one row per leaf item, one column per
// reporting user, cells holding the ascending comma-joined report
// dates.
func ExportProjectPivot(project models.Project, workTypes []models.WorkType, itemsByType map[string][]models.WorkItem, allReports []models.Report) (*excelize.File, error) {
	f, defaultSheet := newWorkbook()
	created := false

	userSet := map[string]struct{}{}
	for _, report := range allReports {
		if report.Username == "" || report.Username == constants.AdminUsername {
			continue
		}
		for _, rp := range report.Projects {
			if rp.ProjectID == project.ID {
				userSet[report.Username] = struct{}{}
			}
		}
	}
	users := make([]string, 0, len(userSet))
	for u := range userSet {
		users = append(users, u)
	}
	sort.Strings(users)

	for _, workTypeID := range project.WorkTypeIDs {
		workType, ok := findWorkType(workTypes, workTypeID)
		if !ok {
			continue
		}
		items := itemsByType[workTypeID]
		if len(items) == 0 {
			continue
		}

		sheet := truncateSheetName(workType.Name)
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
		created = true

		if err := writeHeaderRow(f, sheet, append([]string{"作業項目"}, users...)); err != nil {
			return nil, err
		}

		records := collectRecords(project.ID, workTypeID, allReports)
		// {workItemID: {username: [dates]}}
		dates := map[string]map[string][]string{}
		for _, r := range records {
			if dates[r.workItemID] == nil {
				dates[r.workItemID] = map[string][]string{}
			}
			dates[r.workItemID][r.username] = append(dates[r.workItemID][r.username], r.date)
		}

		leaves, err := sortedLeaves(items)
		if err != nil {
			return nil, err
		}
		highlight, err := highlightStyle(f)
		if err != nil {
			return nil, err
		}

		for rowOffset, leaf := range leaves {
			row := rowOffset + 2
			cell, _ := excelize.CoordinatesToCellName(1, row)
			if err := f.SetCellValue(sheet, cell, strings.Join(leaf.path, " > ")); err != nil {
				return nil, err
			}
			for i, user := range users {
				cell, _ := excelize.CoordinatesToCellName(i+2, row)
				userDates := dates[leaf.item.ID][user]
				if len(userDates) == 0 {
					continue
				}
				sort.Strings(userDates)
				if err := f.SetCellValue(sheet, cell, strings.Join(userDates, ", ")); err != nil {
					return nil, err
				}
				if err := f.SetCellStyle(sheet, cell, cell, highlight); err != nil {
					return nil, err
				}
			}
		}

		if err := f.SetColWidth(sheet, "A", "A", 50); err != nil {
			return nil, err
		}
		if len(users) > 0 {
			first, _ := excelize.ColumnNumberToName(2)
			last, _ := excelize.ColumnNumberToName(len(users) + 1)
			if err := f.SetColWidth(sheet, first, last, 20); err != nil {
				return nil, err
			}
		}
	}

	if created {
		if err := f.DeleteSheet(defaultSheet); err != nil {
			return nil, err
		}
	}
	return f, nil
}

var detailColumns = []string{"作業項目", "作業の日付", "工数（分）", "社内リードタイム日数", "社外リードタイム日数"}

// ExportProjectDetail builds the detail view: one row per recorded
// (leaf item, date, user) with minutes and the elapsed-day lead times
// against each lead-time target's closest preceding report date.
// Items without records still emit a path-only row.
func ExportProjectDetail(project models.Project, workTypes []models.WorkType, itemsByType map[string][]models.WorkItem, allReports []models.Report) (*excelize.File, error) {
	f, defaultSheet := newWorkbook()
	created := false

	for _, workTypeID := range project.WorkTypeIDs {
		workType, ok := findWorkType(workTypes, workTypeID)
		if !ok {
			continue
		}
		items := itemsByType[workTypeID]
		if len(items) == 0 {
			continue
		}

		sheet := truncateSheetName(workType.Name)
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
		created = true

		if err := writeHeaderRow(f, sheet, detailColumns); err != nil {
			return nil, err
		}

		records := collectRecords(project.ID, workTypeID, allReports)
		leaves, err := sortedLeaves(items)
		if err != nil {
			return nil, err
		}
		highlight, err := highlightStyle(f)
		if err != nil {
			return nil, err
		}

		row := 2
		for _, leaf := range leaves {
			itemPath := strings.Join(leaf.path, " > ")

			var itemRecords []reportRecord
			for _, r := range records {
				if r.workItemID == leaf.item.ID {
					itemRecords = append(itemRecords, r)
				}
			}
			if len(itemRecords) == 0 {
				cell, _ := excelize.CoordinatesToCellName(1, row)
				if err := f.SetCellValue(sheet, cell, itemPath); err != nil {
					return nil, err
				}
				row++
				continue
			}

			sort.SliceStable(itemRecords, func(i, j int) bool { return itemRecords[i].date < itemRecords[j].date })
			for _, record := range itemRecords {
				pathCell, _ := excelize.CoordinatesToCellName(1, row)
				if err := f.SetCellValue(sheet, pathCell, itemPath); err != nil {
					return nil, err
				}
				dateCell, _ := excelize.CoordinatesToCellName(2, row)
				if err := f.SetCellValue(sheet, dateCell, record.date); err != nil {
					return nil, err
				}
				if err := f.SetCellStyle(sheet, dateCell, dateCell, highlight); err != nil {
					return nil, err
				}
				minutesCell, _ := excelize.CoordinatesToCellName(3, row)
				if err := f.SetCellValue(sheet, minutesCell, record.minutes); err != nil {
					return nil, err
				}

				if days, ok := leadtimeDays(leaf.item.InternalLeadtimeItems, record.date, records); ok {
					cell, _ := excelize.CoordinatesToCellName(4, row)
					if err := f.SetCellValue(sheet, cell, days); err != nil {
						return nil, err
					}
				}
				if days, ok := leadtimeDays(leaf.item.ExternalLeadtimeItems, record.date, records); ok {
					cell, _ := excelize.CoordinatesToCellName(5, row)
					if err := f.SetCellValue(sheet, cell, days); err != nil {
						return nil, err
					}
				}
				row++
			}
		}

		widths := []float64{50, 15, 12, 18, 18}
		for col, width := range widths {
			name, _ := excelize.ColumnNumberToName(col + 1)
			if err := f.SetColWidth(sheet, name, name, width); err != nil {
				return nil, err
			}
		}
	}

	if created {
		if err := f.DeleteSheet(defaultSheet); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// leadtimeDays computes elapsed days against the first target id; extra
// target entries are ignored.
func leadtimeDays(targets []string, current string, records []reportRecord) (int, bool) {
	if len(targets) == 0 {
		return 0, false
	}
	targetDate := leadtimeTargetDate(targets[0], current, records)
	if targetDate == "" {
		return 0, false
	}
	days := dateDiffDays(current, targetDate)
	if days < 0 {
		return 0, false
	}
	return days, true
}

// ExportProjectView builds the item × project view across every work
// process: one sheet per process, one row per leaf item, one column per
// project referencing that process.
func ExportProjectView(workTypes []models.WorkType, projects []models.Project, itemsByType map[string][]models.WorkItem, allReports []models.Report) (*excelize.File, error) {
	f, defaultSheet := newWorkbook()
	created := false

	for _, workType := range workTypes {
		items := itemsByType[workType.ID]
		if len(items) == 0 {
			continue
		}

		var related []models.Project
		for _, p := range projects {
			for _, id := range p.WorkTypeIDs {
				if id == workType.ID {
					related = append(related, p)
					break
				}
			}
		}
		if len(related) == 0 {
			continue
		}

		sheet := truncateSheetName(workType.Name)
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
		created = true

		titles := []string{"作業項目"}
		for _, p := range related {
			titles = append(titles, p.Name)
		}
		if err := writeHeaderRow(f, sheet, titles); err != nil {
			return nil, err
		}

		// {projectID: {workItemID: [dates]}}
		dates := map[string]map[string][]string{}
		relatedIDs := map[string]struct{}{}
		for _, p := range related {
			relatedIDs[p.ID] = struct{}{}
		}
		for _, report := range allReports {
			if report.Date == "" {
				continue
			}
			for _, rp := range report.Projects {
				if _, ok := relatedIDs[rp.ProjectID]; !ok {
					continue
				}
				for _, wi := range rp.WorkItems {
					if wi.WorkItemID == "" || wi.WorkTypeID != workType.ID {
						continue
					}
					if dates[rp.ProjectID] == nil {
						dates[rp.ProjectID] = map[string][]string{}
					}
					dates[rp.ProjectID][wi.WorkItemID] = append(dates[rp.ProjectID][wi.WorkItemID], report.Date)
				}
			}
		}

		leaves, err := sortedLeaves(items)
		if err != nil {
			return nil, err
		}
		highlight, err := highlightStyle(f)
		if err != nil {
			return nil, err
		}

		for rowOffset, leaf := range leaves {
			row := rowOffset + 2
			cell, _ := excelize.CoordinatesToCellName(1, row)
			if err := f.SetCellValue(sheet, cell, strings.Join(leaf.path, " > ")); err != nil {
				return nil, err
			}
			for i, p := range related {
				projectDates := dates[p.ID][leaf.item.ID]
				if len(projectDates) == 0 {
					continue
				}
				sort.Strings(projectDates)
				cell, _ := excelize.CoordinatesToCellName(i+2, row)
				if err := f.SetCellValue(sheet, cell, strings.Join(projectDates, ", ")); err != nil {
					return nil, err
				}
				if err := f.SetCellStyle(sheet, cell, cell, highlight); err != nil {
					return nil, err
				}
			}
		}

		if err := f.SetColWidth(sheet, "A", "A", 50); err != nil {
			return nil, err
		}
		first, _ := excelize.ColumnNumberToName(2)
		last, _ := excelize.ColumnNumberToName(len(related) + 1)
		if err := f.SetColWidth(sheet, first, last, 25); err != nil {
			return nil, err
		}
	}

	if created {
		if err := f.DeleteSheet(defaultSheet); err != nil {
			return nil, err
		}
	}
	return f, nil
}
