package cellkit

import (
	"github.com/ukaji3/cellkit-go/pkg/cellkit/models"
)

// mergeCellsAnchors lists, in order of precedence, the worksheet elements a
// new mergeCells element is placed after. The schema orders them after
// sheetData in reverse, so the first one present is the last in the sheet.
var mergeCellsAnchors = []models.ElementKind{
	models.ElementCustomSheetViews,
	models.ElementDataConsolidate,
	models.ElementSortState,
	models.ElementAutoFilter,
	models.ElementScenarios,
	models.ElementProtectedRanges,
	models.ElementSheetProtection,
	models.ElementSheetCalcPr,
}

// MergeTwoCells records a merge region spanning ref1:ref2 on the named sheet.
// Both cells, and their rows, are created empty if absent. The references
// are recorded verbatim: adjacency and overlap with other regions are not
// checked.
//
// An empty reference or a missing sheet is a no-op. A reference that is not
// column letters followed by a row number returns ErrInvalidCellReference.
func MergeTwoCells(doc *models.Document, sheetName, ref1, ref2 string) error {
	if ref1 == "" || ref2 == "" {
		return nil
	}

	sheet, ok := FindSheet(doc, sheetName)
	if !ok {
		return nil
	}

	column1, row1, err := SplitReference(ref1)
	if err != nil {
		return NewOperationError(sheetName, "merge", err)
	}
	column2, row2, err := SplitReference(ref2)
	if err != nil {
		return NewOperationError(sheetName, "merge", err)
	}

	GetCell(GetRow(sheet, row1), row1, column1)
	GetCell(GetRow(sheet, row2), row2, column2)

	merges := mergeCellsOf(sheet)
	merges.Cells = append(merges.Cells, &models.MergeCell{
		Ref:   ref1 + ":" + ref2,
		Dirty: true,
	})

	return nil
}

// mergeCellsOf returns the sheet's merge region list, creating it at its
// schema position if the sheet has none.
func mergeCellsOf(sheet *models.Sheet) *models.MergeCells {
	if sheet.MergeCells != nil {
		return sheet.MergeCells
	}

	sheet.MergeCells = &models.MergeCells{}
	if !sheet.HasElement(models.ElementMergeCells) {
		sheet.InsertElementAfter(models.ElementMergeCells, mergeCellsAnchor(sheet))
	}
	return sheet.MergeCells
}

// mergeCellsAnchor returns the first present element of mergeCellsAnchors,
// or sheetData.
func mergeCellsAnchor(sheet *models.Sheet) models.ElementKind {
	for _, kind := range mergeCellsAnchors {
		if sheet.HasElement(kind) {
			return kind
		}
	}
	return models.ElementSheetData
}
