package excel

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/masakimorita/work-report-api/internal/hierarchy"
	"github.com/masakimorita/work-report-api/internal/models"
)

// sheetFromRows builds an uploaded workbook the way a user would: a
// header row then data rows.
func sheetFromRows(t *testing.T, rows [][]interface{}) *bytes.Reader {
	t.Helper()
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for i, title := range workItemColumns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		require.NoError(t, err)
		require.NoError(t, f.SetCellValue(sheet, cell, title))
	}
	for r, row := range rows {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, cell, v))
		}
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return bytes.NewReader(buf.Bytes())
}

func TestDecodeWorkItems_SynthesizesParents(t *testing.T) {
	r := sheetFromRows(t, [][]interface{}{
		{"", "設計", "詳細設計", "", "", "図面確認\n寸法確認", "CAD", "必須", "120", "なし", "", "なし", "", "設計,検査"},
		{"leaf-2", "設計", "検図", "", "", "", "", "", "", "なし", "", "なし", "", ""},
	})

	items, err := DecodeWorkItems(r)
	require.NoError(t, err)
	// One synthesized 設計 parent shared by both leaf rows.
	require.Len(t, items, 3)

	parent := items[0]
	require.Equal(t, "設計", parent.Name)
	require.Equal(t, 1, parent.Level)
	require.False(t, parent.IsLeaf)
	require.NotEmpty(t, parent.ID)

	first := items[1]
	require.Equal(t, "詳細設計", first.Name)
	require.Equal(t, 2, first.Level)
	require.Equal(t, parent.ID, first.ParentID)
	require.True(t, first.IsLeaf)
	require.NotEmpty(t, first.ID)
	require.Equal(t, []string{"図面確認", "寸法確認"}, first.Checklist)
	require.Equal(t, []string{"CAD"}, first.Method)
	require.Equal(t, "必須", first.Attribute)
	require.NotNil(t, first.TargetMinutes)
	require.Equal(t, 120, *first.TargetMinutes)
	require.Equal(t, []string{"設計", "検査"}, first.JobCategories)

	second := items[2]
	require.Equal(t, "leaf-2", second.ID)
	require.Equal(t, parent.ID, second.ParentID)
}

func TestDecodeWorkItems_SkipsShallowRows(t *testing.T) {
	r := sheetFromRows(t, [][]interface{}{
		{"", "設計", "", "", "", "", "", "", "", "なし", "", "なし", "", ""},
		{"", "", "", "", "", "", "", "", "", "", "", "", "", ""},
		{"ok", "設計", "検図", "", "", "", "", "", "", "なし", "", "なし", "", ""},
	})

	items, err := DecodeWorkItems(r)
	require.NoError(t, err)
	require.Len(t, items, 2) // parent + the one valid leaf
	require.Equal(t, "ok", items[1].ID)
}

func TestDecodeWorkItems_NonNumericMinutesDefaulted(t *testing.T) {
	r := sheetFromRows(t, [][]interface{}{
		{"a", "設計", "検図", "", "", "", "", "", "2時間", "なし", "", "なし", "", ""},
	})

	items, err := DecodeWorkItems(r)
	require.NoError(t, err)
	require.Nil(t, items[1].TargetMinutes)
}

func TestDecodeWorkItems_AdjacencyLeadtimeInference(t *testing.T) {
	r := sheetFromRows(t, [][]interface{}{
		{"first", "設計", "詳細設計", "", "", "", "", "", "", "なし", "", "なし", "", ""},
		{"second", "設計", "検図", "", "", "", "", "", "", "あり", "", "なし", "", ""},
		{"third", "設計", "承認", "", "", "", "", "", "", "あり", "explicit-id", "あり", "", ""},
	})

	items, err := DecodeWorkItems(r)
	require.NoError(t, err)

	byID := map[string]models.WorkItem{}
	for _, item := range items {
		byID[item.ID] = item
	}
	// Empty target borrows the previous emitted row.
	require.Equal(t, []string{"first"}, byID["second"].InternalLeadtimeItems)
	// Explicit targets are never overridden; the external flag borrows
	// independently.
	require.Equal(t, []string{"explicit-id"}, byID["third"].InternalLeadtimeItems)
	require.Equal(t, []string{"second"}, byID["third"].ExternalLeadtimeItems)
}

func TestEncodeDecode_RoundTripPaths(t *testing.T) {
	two := 30
	items := []models.WorkItem{
		{ID: "root", Name: "設計", Level: 1},
		{ID: "l1", Name: "詳細設計", Level: 2, ParentID: "root", TargetMinutes: &two,
			Checklist: []string{"c1"}, Method: []string{"m1"}, JobCategories: []string{"設計"}},
		{ID: "l2", Name: "検図", Level: 2, ParentID: "root", InternalLeadtime: true,
			InternalLeadtimeItems: []string{"l1"}},
	}

	f, err := EncodeWorkItems(items)
	require.NoError(t, err)
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	decoded, err := DecodeWorkItems(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)

	wantPaths := map[string]string{}
	for _, item := range items {
		if !hierarchy.IsLeaf(item, items) {
			continue
		}
		path, err := hierarchy.PathOf(item, items)
		require.NoError(t, err)
		wantPaths[item.ID] = strings.Join(path, "/")
	}

	gotPaths := map[string]string{}
	for _, item := range decoded {
		if !hierarchy.IsLeaf(item, decoded) {
			continue
		}
		path, err := hierarchy.PathOf(item, decoded)
		require.NoError(t, err)
		gotPaths[item.ID] = strings.Join(path, "/")
	}
	require.Equal(t, wantPaths, gotPaths)

	byID := map[string]models.WorkItem{}
	for _, item := range decoded {
		byID[item.ID] = item
	}
	require.Equal(t, 30, *byID["l1"].TargetMinutes)
	require.True(t, byID["l2"].InternalLeadtime)
	require.Equal(t, []string{"l1"}, byID["l2"].InternalLeadtimeItems)
}

func TestEncodeWorkItems_LeafOrderAndColumns(t *testing.T) {
	items := []models.WorkItem{
		{ID: "b-root", Name: "製造", Level: 1},
		{ID: "b-leaf", Name: "組立", Level: 2, ParentID: "b-root"},
		{ID: "a-root", Name: "設計", Level: 1},
		{ID: "a-leaf2", Name: "検図", Level: 2, ParentID: "a-root"},
		{ID: "a-leaf1", Name: "承認", Level: 2, ParentID: "a-root"},
	}

	f, err := EncodeWorkItems(items)
	require.NoError(t, err)
	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)

	require.Equal(t, workItemColumns, rows[0][:workItemColumnCount])
	// Sorted by full hierarchy path, level by level.
	require.Equal(t, "b-leaf", rows[1][0])
	require.Equal(t, "a-leaf1", rows[2][0])
	require.Equal(t, "a-leaf2", rows[3][0])
	require.Equal(t, "製造", rows[1][1])
	require.Equal(t, "組立", rows[1][2])
}
