package cellkit

import (
	"slices"

	"github.com/ukaji3/cellkit-go/pkg/cellkit/models"
)

// GetRow returns the row with the given 1-based index, creating an empty one
// if the sheet has none. New rows are inserted before the first row with a
// higher index so the sheet stays sorted.
func GetRow(sheet *models.Sheet, rowIndex int) *models.Row {
	pos := len(sheet.Rows)
	for i, row := range sheet.Rows {
		if row.Index == rowIndex {
			return row
		}
		if row.Index > rowIndex && pos == len(sheet.Rows) {
			pos = i
		}
	}

	row := &models.Row{Index: rowIndex}
	sheet.Rows = slices.Insert(sheet.Rows, pos, row)
	return row
}

// findRow returns the row with the given index without creating it.
func findRow(sheet *models.Sheet, rowIndex int) (*models.Row, bool) {
	for _, row := range sheet.Rows {
		if row.Index == rowIndex {
			return row, true
		}
	}
	return nil, false
}
