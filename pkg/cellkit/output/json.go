// Package output renders loaded documents as JSON.
package output

import (
	"encoding/json"

	"github.com/ukaji3/cellkit-go/pkg/cellkit"
	"github.com/ukaji3/cellkit-go/pkg/cellkit/models"
	"github.com/ukaji3/cellkit-go/pkg/cellkit/parser"
	"github.com/xuri/excelize/v2"
)

// WorkbookView is the JSON shape of a whole document.
type WorkbookView struct {
	BookName      string      `json:"book_name"`
	Sheets        []SheetView `json:"sheets"`
	SharedStrings int         `json:"shared_strings"`
	Styles        int         `json:"styles"`
}

// SheetView is the JSON shape of one worksheet.
type SheetView struct {
	Name        string               `json:"name"`
	ID          int                  `json:"id"`
	UsedRange   string               `json:"used_range,omitempty"`
	Elements    []models.ElementKind `json:"elements,omitempty"`
	Rows        []RowView            `json:"rows,omitempty"`
	MergedCells []MergeView          `json:"merged_cells,omitempty"`
}

// RowView is a row with its non-empty cells.
type RowView struct {
	R int        `json:"r"`
	C []CellView `json:"c"`
}

// CellView is a cell with its value resolved to a JSON type.
type CellView struct {
	Ref   string      `json:"ref"`
	Value interface{} `json:"v"`
	Type  string      `json:"t,omitempty"`
	Style *int        `json:"s,omitempty"`
}

// MergeView is a merge region and its coordinate bounds.
type MergeView struct {
	Ref  string       `json:"ref"`
	Area *models.Area `json:"area,omitempty"`
}

// ToJSON serializes a document to JSON.
func ToJSON(doc *models.Document, pretty bool) ([]byte, error) {
	return marshal(NewWorkbookView(doc), pretty)
}

// SheetToJSON serializes a single sheet of doc to JSON.
func SheetToJSON(doc *models.Document, sheet *models.Sheet, pretty bool) ([]byte, error) {
	return marshal(NewSheetView(doc, sheet), pretty)
}

// NewWorkbookView builds the view of every sheet in doc.
func NewWorkbookView(doc *models.Document) WorkbookView {
	view := WorkbookView{
		BookName: doc.Name,
		Sheets:   make([]SheetView, 0, len(doc.Sheets)),
		Styles:   doc.StyleCount,
	}
	if doc.SharedStrings != nil {
		view.SharedStrings = len(doc.SharedStrings.Items)
	}
	for _, sheet := range doc.Sheets {
		view.Sheets = append(view.Sheets, NewSheetView(doc, sheet))
	}
	return view
}

// NewSheetView builds the view of one sheet. Cells without a value or style
// are left out, as are rows left empty.
func NewSheetView(doc *models.Document, sheet *models.Sheet) SheetView {
	view := SheetView{
		Name:     sheet.Name,
		ID:       sheet.ID,
		Elements: sheet.Elements,
	}

	for _, row := range sheet.Rows {
		rv := RowView{R: row.Index}
		for _, cell := range row.Cells {
			if cell.Value == "" && cell.Style == nil {
				continue
			}
			rv.C = append(rv.C, CellView{
				Ref:   cell.Ref,
				Value: cellValue(doc, cell),
				Type:  string(cell.Type),
				Style: cell.Style,
			})
		}
		if len(rv.C) > 0 {
			view.Rows = append(view.Rows, rv)
		}
	}

	if area := usedRange(doc, sheet); area != nil {
		start, _ := excelize.CoordinatesToCellName(area.C1, area.R1)
		end, _ := excelize.CoordinatesToCellName(area.C2, area.R2)
		view.UsedRange = start + ":" + end
	}

	if sheet.MergeCells != nil {
		for _, merge := range sheet.MergeCells.Cells {
			mv := MergeView{Ref: merge.Ref}
			if area, err := parser.ParseRange(merge.Ref); err == nil {
				mv.Area = area
			}
			view.MergedCells = append(view.MergedCells, mv)
		}
	}

	return view
}

// cellValue converts a cell's text to the JSON value of its type.
func cellValue(doc *models.Document, cell *models.Cell) interface{} {
	switch cell.Type {
	case models.CellTypeSharedString, models.CellTypeString, models.CellTypeInlineString,
		models.CellTypeError, models.CellTypeDate:
		return cellkit.CellText(doc, cell)
	case models.CellTypeBoolean:
		return cell.Value == "1"
	default:
		return parser.ParseValue(cell.Value)
	}
}

// usedRange finds the bounding box of cells with text.
// It returns nil for a sheet without any.
func usedRange(doc *models.Document, sheet *models.Sheet) *models.Area {
	var area *models.Area

	for _, row := range sheet.Rows {
		for _, cell := range row.Cells {
			if cellkit.CellText(doc, cell) == "" {
				continue
			}
			col, rowIdx, err := excelize.CellNameToCoordinates(cell.Ref)
			if err != nil {
				continue
			}
			if area == nil {
				area = &models.Area{R1: rowIdx, C1: col, R2: rowIdx, C2: col}
				continue
			}
			area.R1 = min(area.R1, rowIdx)
			area.R2 = max(area.R2, rowIdx)
			area.C1 = min(area.C1, col)
			area.C2 = max(area.C2, col)
		}
	}

	return area
}

func marshal(v interface{}, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}
