package parser

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ukaji3/cellkit-go/pkg/cellkit/models"
	"github.com/xuri/excelize/v2"
)

// parseWorksheetXML fills sheet with the rows, cells and top-level element
// order of a worksheet part.
func parseWorksheetXML(data []byte, sheet *models.Sheet) error {
	decoder := xml.NewDecoder(strings.NewReader(string(data)))
	depth := 0

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			if depth != 2 {
				continue
			}
			sheet.Elements = append(sheet.Elements, models.ElementKind(t.Name.Local))
			switch t.Name.Local {
			case "sheetData":
				rows, err := parseSheetData(decoder)
				if err != nil {
					return err
				}
				sheet.Rows = rows
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}

	if !sheet.HasElement(models.ElementSheetData) {
		return fmt.Errorf("worksheet %q has no sheetData", sheet.Name)
	}
	return nil
}

// parseSheetData parses the row elements of sheetData.
// Rows and cells without an explicit reference follow their predecessor.
func parseSheetData(decoder *xml.Decoder) ([]*models.Row, error) {
	var rows []*models.Row
	lastRow := 0
	depth := 1

	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			return nil, err
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			if t.Name.Local != "row" {
				continue
			}
			row := &models.Row{Index: lastRow + 1}
			for _, attr := range t.Attr {
				if attr.Name.Local == "r" {
					if r, err := strconv.Atoi(attr.Value); err == nil {
						row.Index = r
					}
				}
			}
			cells, err := parseRow(decoder, row.Index)
			if err != nil {
				return nil, err
			}
			row.Cells = cells
			rows = append(rows, row)
			lastRow = row.Index
			depth--
		case xml.EndElement:
			depth--
		}
	}

	return rows, nil
}

// parseRow parses the c elements of a row.
func parseRow(decoder *xml.Decoder, rowIndex int) ([]*models.Cell, error) {
	var cells []*models.Cell
	lastCol := 0
	depth := 1

	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			return nil, err
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			if t.Name.Local != "c" {
				continue
			}
			cell, err := parseCellElement(decoder, t)
			if err != nil {
				return nil, err
			}
			col := lastCol + 1
			if cell.Ref != "" {
				if c, _, err := excelize.CellNameToCoordinates(cell.Ref); err == nil {
					col = c
				}
			} else {
				cell.Ref, _ = excelize.CoordinatesToCellName(col, rowIndex)
			}
			cells = append(cells, cell)
			lastCol = col
			depth--
		case xml.EndElement:
			depth--
		}
	}

	return cells, nil
}
