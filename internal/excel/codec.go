// Package excel maps work-item lists and report data to the fixed
// spreadsheet exchange format.
package excel

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/masakimorita/work-report-api/internal/constants"
	"github.com/masakimorita/work-report-api/internal/hierarchy"
	"github.com/masakimorita/work-report-api/internal/models"
)

// workItemColumns is the fixed column contract, in order.
var workItemColumns = []string{
	"UUID", "レベル1", "レベル2", "レベル3", "レベル4", "チェックリスト", "手段",
	"属性", "目標工数（分）", "社内リードタイム", "社内リードタイムUUID",
	"社外リードタイム", "社外リードタイムUUID", "担当種別",
}

const workItemColumnCount = 14

var workItemColumnWidths = []float64{36, 25, 25, 25, 25, 30, 30, 15, 15, 15, 40, 15, 40, 20}

const (
	headerFillColor    = "4472C4"
	highlightFillColor = "90EE90"
)

func headerStyle(f *excelize.File) (int, error) {
	return f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{headerFillColor}, Pattern: 1},
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
}

func highlightStyle(f *excelize.File) (int, error) {
	return f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{highlightFillColor}, Pattern: 1},
	})
}

// EncodeWorkItems writes the leaf items of one process as the
// 14-column exchange sheet: one row per leaf, hierarchy path split over
// the four level columns, list fields joined with newline or comma.
// Rows are ordered by hierarchy path level-by-level with the original
// list index as tiebreaker, so siblings group together while keeping
// insertion order.
func EncodeWorkItems(items []models.WorkItem) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := constants.WorkItemSheetName
	f.SetSheetName(f.GetSheetName(0), sheet)

	style, err := headerStyle(f)
	if err != nil {
		return nil, err
	}
	for col, title := range workItemColumns {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			return nil, err
		}
	}
	last, _ := excelize.CoordinatesToCellName(workItemColumnCount, 1)
	if err := f.SetCellStyle(sheet, "A1", last, style); err != nil {
		return nil, err
	}

	leaves, err := sortedLeaves(items)
	if err != nil {
		return nil, err
	}

	for rowOffset, leaf := range leaves {
		row := rowOffset + 2
		minutes := ""
		if leaf.item.TargetMinutes != nil {
			minutes = strconv.Itoa(*leaf.item.TargetMinutes)
		}
		values := []interface{}{
			leaf.item.ID,
			levelName(leaf.path, 1), levelName(leaf.path, 2), levelName(leaf.path, 3), levelName(leaf.path, 4),
			strings.Join(leaf.item.Checklist, "\n"),
			strings.Join(leaf.item.Method, "\n"),
			leaf.item.Attribute,
			minutes,
			leadtimeToken(leaf.item.InternalLeadtime),
			strings.Join(leaf.item.InternalLeadtimeItems, ","),
			leadtimeToken(leaf.item.ExternalLeadtime),
			strings.Join(leaf.item.ExternalLeadtimeItems, ","),
			strings.Join(leaf.item.JobCategories, ","),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	for col, width := range workItemColumnWidths {
		name, _ := excelize.ColumnNumberToName(col + 1)
		if err := f.SetColWidth(sheet, name, name, width); err != nil {
			return nil, err
		}
	}

	return f, nil
}

func leadtimeToken(flag bool) string {
	if flag {
		return constants.LeadtimeYes
	}
	return constants.LeadtimeNo
}

func levelName(path []string, level int) string {
	if level <= len(path) {
		return path[level-1]
	}
	return ""
}

type sortedLeaf struct {
	item models.WorkItem
	path []string
	idx  int
}

// sortedLeaves selects the leaf items and orders them by hierarchy path
// with the original index as stable tiebreaker.
func sortedLeaves(items []models.WorkItem) ([]sortedLeaf, error) {
	byID := hierarchy.IndexByID(items)
	flags := hierarchy.LeafFlags(items)

	leaves := make([]sortedLeaf, 0, len(items))
	for idx, item := range items {
		if !flags[item.ID] {
			continue
		}
		path, err := hierarchy.Path(item, byID)
		if err != nil {
			return nil, err
		}
		leaves = append(leaves, sortedLeaf{item: item, path: path, idx: idx})
	}

	sort.SliceStable(leaves, func(i, j int) bool {
		a, b := leaves[i], leaves[j]
		for level := 0; level < constants.MaxHierarchyDepth; level++ {
			pa, pb := levelName(a.path, level+1), levelName(b.path, level+1)
			if pa != pb {
				return pa < pb
			}
		}
		return a.idx < b.idx
	})
	return leaves, nil
}

// DecodeWorkItems parses an exchange sheet back into a flat item list.
// Parent nodes never appear as rows; they are synthesized from repeated
// path prefixes, each distinct prefix exactly once, emitted before the
// first leaf that needs it. Rows with fewer than two non-empty level
// cells are skipped (minimum depth policy, not an error).
func DecodeWorkItems(r io.Reader) ([]models.WorkItem, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("excel: open workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("excel: read rows: %w", err)
	}

	dec := &workItemDecoder{pathToID: make(map[string]string)}
	for i := 1; i < len(rows); i++ {
		dec.decodeRow(padRow(rows[i]))
	}
	return dec.items, nil
}

type workItemDecoder struct {
	items    []models.WorkItem
	pathToID map[string]string
}

func padRow(row []string) []string {
	if len(row) >= workItemColumnCount {
		return row
	}
	padded := make([]string, workItemColumnCount)
	copy(padded, row)
	return padded
}

func (d *workItemDecoder) decodeRow(row []string) {
	var path []string
	for col := 1; col <= constants.MaxHierarchyDepth; col++ {
		if name := strings.TrimSpace(row[col]); name != "" {
			path = append(path, name)
		}
	}
	if len(path) < 2 {
		return
	}

	id := strings.TrimSpace(row[0])
	if id == "" {
		id = uuid.NewString()
	}

	parentID := d.getOrCreateParent(path[:len(path)-1])

	item := models.WorkItem{
		ID:                    id,
		Name:                  path[len(path)-1],
		Level:                 len(path),
		ParentID:              parentID,
		Attribute:             strings.TrimSpace(row[7]),
		TargetMinutes:         parseMinutes(row[8]),
		Checklist:             splitList(row[5], "\n"),
		Method:                splitList(row[6], "\n"),
		InternalLeadtime:      row[9] == constants.LeadtimeYes,
		ExternalLeadtime:      row[11] == constants.LeadtimeYes,
		InternalLeadtimeItems: splitList(row[10], ","),
		ExternalLeadtimeItems: splitList(row[12], ","),
		JobCategories:         splitList(row[13], ","),
		IsLeaf:                true,
	}

	// A declared lead time with no explicit targets borrows the
	// previously emitted item, provided nothing emitted so far points
	// at it as a parent. This is a row-adjacency heuristic, not a
	// hierarchy lookup.
	if item.InternalLeadtime && len(item.InternalLeadtimeItems) == 0 {
		if prev, ok := d.previousLeaf(); ok {
			item.InternalLeadtimeItems = []string{prev}
		}
	}
	if item.ExternalLeadtime && len(item.ExternalLeadtimeItems) == 0 {
		if prev, ok := d.previousLeaf(); ok {
			item.ExternalLeadtimeItems = []string{prev}
		}
	}

	d.items = append(d.items, item)
	d.pathToID[pathKey(path)] = id
}

// getOrCreateParent resolves a path prefix to an item id, synthesizing
// the parent (and recursively its ancestors) on first encounter.
func (d *workItemDecoder) getOrCreateParent(prefix []string) string {
	if len(prefix) == 0 {
		return ""
	}
	if id, ok := d.pathToID[pathKey(prefix)]; ok {
		return id
	}

	grandparentID := d.getOrCreateParent(prefix[:len(prefix)-1])
	id := uuid.NewString()
	d.items = append(d.items, models.WorkItem{
		ID:                    id,
		Name:                  prefix[len(prefix)-1],
		Level:                 len(prefix),
		ParentID:              grandparentID,
		Checklist:             []string{},
		Method:                []string{},
		InternalLeadtimeItems: []string{},
		ExternalLeadtimeItems: []string{},
		JobCategories:         []string{},
		IsLeaf:                false,
	})
	d.pathToID[pathKey(prefix)] = id
	return id
}

// previousLeaf returns the id of the last emitted item when no emitted
// item names it as a parent.
func (d *workItemDecoder) previousLeaf() (string, bool) {
	if len(d.items) == 0 {
		return "", false
	}
	prev := d.items[len(d.items)-1]
	for _, item := range d.items {
		if item.ParentID == prev.ID {
			return "", false
		}
	}
	return prev.ID, true
}

func pathKey(path []string) string {
	return strings.Join(path, "\x1f")
}

func splitList(cell, sep string) []string {
	parts := strings.Split(cell, sep)
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// parseMinutes accepts digits only; anything else defaults to unset,
// tolerating loosely formatted sheets.
func parseMinutes(cell string) *int {
	trimmed := strings.TrimSpace(cell)
	if trimmed == "" {
		return nil
	}
	for _, r := range trimmed {
		if r < '0' || r > '9' {
			return nil
		}
	}
	n, err := strconv.Atoi(trimmed)
	if err != nil {
		return nil
	}
	return &n
}
