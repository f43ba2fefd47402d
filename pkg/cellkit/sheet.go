package cellkit

import (
	"fmt"
	"strconv"

	"github.com/ukaji3/cellkit-go/pkg/cellkit/models"
)

// FindSheet returns the first sheet whose name matches exactly.
// The boolean is false when no sheet has that name.
func FindSheet(doc *models.Document, name string) (*models.Sheet, bool) {
	for _, sheet := range doc.Sheets {
		if sheet.Name == name {
			return sheet, true
		}
	}
	return nil, false
}

// RequireSheet is FindSheet for callers that need the sheet to exist.
func RequireSheet(doc *models.Document, name string) (*models.Sheet, error) {
	sheet, ok := FindSheet(doc, name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrSheetNotFound, name)
	}
	return sheet, nil
}

// InsertWorksheet appends an empty worksheet named "Sheet" followed by one
// past the highest sheet id (1 for an empty workbook). If that name is
// already taken by a renamed sheet, the id keeps counting up.
func InsertWorksheet(doc *models.Document) *models.Sheet {
	id := 1
	for _, sheet := range doc.Sheets {
		if sheet.ID >= id {
			id = sheet.ID + 1
		}
	}

	name := "Sheet" + strconv.Itoa(id)
	for {
		if _, taken := FindSheet(doc, name); !taken {
			break
		}
		id++
		name = "Sheet" + strconv.Itoa(id)
	}

	sheet := &models.Sheet{
		Name:     name,
		ID:       id,
		Elements: []models.ElementKind{models.ElementSheetData},
		Created:  true,
	}
	doc.Sheets = append(doc.Sheets, sheet)
	return sheet
}

// InsertText inserts a new worksheet and writes text to its A1 cell as a
// shared string.
func InsertText(doc *models.Document, text string) *models.Sheet {
	index := InsertSharedString(SharedStrings(doc), text)
	sheet := InsertWorksheet(doc)

	cell := GetCell(GetRow(sheet, 1), 1, "A")
	cell.Value = strconv.Itoa(index)
	cell.Type = models.CellTypeSharedString
	cell.Dirty = true

	return sheet
}
