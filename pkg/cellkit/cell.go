package cellkit

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/ukaji3/cellkit-go/pkg/cellkit/models"
)

// GetCell returns the cell at column and rowIndex in row, creating an empty
// one if absent. New cells are inserted before the first cell with a higher
// column so the row stays in column order ("B1" sorts before "AA1").
func GetCell(row *models.Row, rowIndex int, column string) *models.Cell {
	ref := JoinReference(column, rowIndex)
	if cell, ok := findCellInRow(row, ref); ok {
		return cell
	}

	col := columnNumber(ref)
	pos := len(row.Cells)
	for i, cell := range row.Cells {
		if columnNumber(cell.Ref) >= col {
			pos = i
			break
		}
	}

	cell := &models.Cell{Ref: ref, Dirty: true}
	row.Cells = slices.Insert(row.Cells, pos, cell)
	return cell
}

// UpdateCell writes text and dataType to the cell at column and rowIndex of
// the named sheet, creating the row and cell if needed. A non-nil style
// replaces the cell's style index. The text is stored as given, whatever the
// data type.
//
// A missing sheet is not an error: the call returns nil and changes nothing.
// Use FindSheet first when a misspelt sheet name must not go unnoticed.
func UpdateCell(doc *models.Document, sheetName string, rowIndex int, column string, dataType models.CellType, text string, style *int) error {
	if err := validateColumn(column, rowIndex); err != nil {
		return NewOperationError(sheetName, "update", err)
	}

	sheet, ok := FindSheet(doc, sheetName)
	if !ok {
		return nil
	}

	cell := GetCell(GetRow(sheet, rowIndex), rowIndex, column)
	cell.Value = text
	cell.Type = dataType
	if style != nil {
		s := *style
		cell.Style = &s
		cell.StyleDirty = true
	}
	cell.Dirty = true

	return nil
}

// UpdateCellLike is UpdateCell with the style index taken from a template
// cell, which must exist.
func UpdateCellLike(doc *models.Document, sheetName string, rowIndex int, column string, dataType models.CellType, text string,
	templateSheet string, templateRow int, templateColumn string) error {
	template, err := findTemplateCell(doc, templateSheet, templateRow, templateColumn)
	if err != nil {
		return NewOperationError(sheetName, "update", err)
	}

	style := 0
	if template.Style != nil {
		style = *template.Style
	}
	return UpdateCell(doc, sheetName, rowIndex, column, dataType, text, &style)
}

// SetSharedString stores text in the shared-string table and points the cell
// at its index. A missing sheet is a no-op, as for UpdateCell.
func SetSharedString(doc *models.Document, sheetName string, rowIndex int, column string, text string) error {
	if err := validateColumn(column, rowIndex); err != nil {
		return NewOperationError(sheetName, "shared_string", err)
	}
	if _, ok := FindSheet(doc, sheetName); !ok {
		return nil
	}

	index := InsertSharedString(SharedStrings(doc), text)
	return UpdateCell(doc, sheetName, rowIndex, column, models.CellTypeSharedString, strconv.Itoa(index), nil)
}

// CopyCellStyle copies the style index of the template cell to the target
// cell, creating the target if absent. Only the style index changes.
//
// A missing template sheet or cell returns ErrTemplateNotFound. A missing
// target sheet is a no-op.
func CopyCellStyle(doc *models.Document, sheetName string, rowIndex int, column string,
	templateSheet string, templateRow int, templateColumn string) error {
	if err := validateColumn(column, rowIndex); err != nil {
		return NewOperationError(sheetName, "copy_style", err)
	}

	template, err := findTemplateCell(doc, templateSheet, templateRow, templateColumn)
	if err != nil {
		return NewOperationError(sheetName, "copy_style", err)
	}

	sheet, ok := FindSheet(doc, sheetName)
	if !ok {
		return nil
	}

	cell := GetCell(GetRow(sheet, rowIndex), rowIndex, column)
	if template.Style != nil {
		s := *template.Style
		cell.Style = &s
	} else {
		cell.Style = nil
	}
	cell.StyleDirty = true

	return nil
}

// FindCell returns an existing cell without creating it.
func FindCell(sheet *models.Sheet, rowIndex int, column string) (*models.Cell, bool) {
	row, ok := findRow(sheet, rowIndex)
	if !ok {
		return nil, false
	}
	return findCellInRow(row, JoinReference(column, rowIndex))
}

// CellText returns the text of a cell, resolving shared-string indexes.
// An index outside the table yields the raw value.
func CellText(doc *models.Document, cell *models.Cell) string {
	if cell.Type != models.CellTypeSharedString || doc.SharedStrings == nil {
		return cell.Value
	}
	index, err := strconv.Atoi(cell.Value)
	if err != nil || index < 0 || index >= len(doc.SharedStrings.Items) {
		return cell.Value
	}
	return doc.SharedStrings.Items[index]
}

func findCellInRow(row *models.Row, ref string) (*models.Cell, bool) {
	for _, cell := range row.Cells {
		if cell.Ref == ref {
			return cell, true
		}
	}
	return nil, false
}

func findTemplateCell(doc *models.Document, sheetName string, rowIndex int, column string) (*models.Cell, error) {
	sheet, ok := FindSheet(doc, sheetName)
	if !ok {
		return nil, fmt.Errorf("%w: sheet %q", ErrTemplateNotFound, sheetName)
	}
	cell, ok := FindCell(sheet, rowIndex, column)
	if !ok {
		return nil, fmt.Errorf("%w: cell %s in sheet %q", ErrTemplateNotFound, JoinReference(column, rowIndex), sheetName)
	}
	return cell, nil
}
