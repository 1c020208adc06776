package hierarchy

import (
	"strings"

	"github.com/masakimorita/work-report-api/internal/models"
)

// MergeResult reports how an import reconciled against the stored tree.
// Added + Updated always equals Count, the deduplicated import size.
type MergeResult struct {
	Items   []models.WorkItem
	Count   int
	Added   int
	Updated int
	Deleted int
}

// pathKey joins a hierarchy path into a comparable key. The unit
// separator cannot appear in cell-derived names.
func pathKey(path []string) string {
	return strings.Join(path, "\x1f")
}

// Merge reconciles a decoded import snapshot against the currently
// stored item list for one work process.
//
// Imported items are deduplicated by id (first occurrence wins), then
// classified: id already stored means update (field-level overwrite of
// the stored record), otherwise add. A stored item absent from the
// import survives uncounted when its hierarchy path appears anywhere in
// the import; this protects against sheets that re-describe an existing
// node under a freshly synthesized id. Everything else is deleted.
// Output order is import order followed by the path-matched survivors.
func Merge(existing, imported []models.WorkItem) (MergeResult, error) {
	var res MergeResult

	existingByID := make(map[string]*models.WorkItem, len(existing))
	for i := range existing {
		existingByID[existing[i].ID] = &existing[i]
	}

	importedIndex := IndexByID(imported)
	importedPaths := make(map[string]struct{}, len(imported))
	for _, item := range imported {
		path, err := Path(item, importedIndex)
		if err != nil {
			return MergeResult{}, err
		}
		importedPaths[pathKey(path)] = struct{}{}
	}

	deduped := make([]models.WorkItem, 0, len(imported))
	importedIDs := make(map[string]struct{}, len(imported))
	for _, item := range imported {
		if _, seen := importedIDs[item.ID]; seen {
			continue
		}
		importedIDs[item.ID] = struct{}{}
		deduped = append(deduped, item)
	}
	res.Count = len(deduped)

	res.Items = make([]models.WorkItem, 0, len(deduped))
	for _, item := range deduped {
		if ex, ok := existingByID[item.ID]; ok {
			res.Items = append(res.Items, overwriteFields(*ex, item))
			res.Updated++
		} else {
			res.Items = append(res.Items, item)
			res.Added++
		}
	}

	existingIndex := IndexByID(existing)
	for _, item := range existing {
		if _, ok := importedIDs[item.ID]; ok {
			continue
		}
		path, err := Path(item, existingIndex)
		if err != nil {
			return MergeResult{}, err
		}
		if _, ok := importedPaths[pathKey(path)]; ok {
			res.Items = append(res.Items, item)
		} else {
			res.Deleted++
		}
	}

	return res, nil
}

// overwriteFields applies every field the spreadsheet codec defines
// onto a copy of the stored record. WorkTypeID is not a sheet column,
// so the stored value survives unless the import carries one.
func overwriteFields(stored, imported models.WorkItem) models.WorkItem {
	merged := stored
	merged.Name = imported.Name
	merged.Level = imported.Level
	merged.ParentID = imported.ParentID
	merged.Attribute = imported.Attribute
	merged.TargetMinutes = imported.TargetMinutes
	merged.Checklist = imported.Checklist
	merged.Method = imported.Method
	merged.InternalLeadtime = imported.InternalLeadtime
	merged.ExternalLeadtime = imported.ExternalLeadtime
	merged.InternalLeadtimeItems = imported.InternalLeadtimeItems
	merged.ExternalLeadtimeItems = imported.ExternalLeadtimeItems
	merged.JobCategories = imported.JobCategories
	merged.IsLeaf = imported.IsLeaf
	if imported.WorkTypeID != "" {
		merged.WorkTypeID = imported.WorkTypeID
	}
	return merged
}
