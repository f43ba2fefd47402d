package cellkit

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/ukaji3/cellkit-go/pkg/cellkit/models"
	"github.com/xuri/excelize/v2"
)

// createTestWorkbook saves a workbook with a bold A1 template cell and
// returns its path and the template's style id.
func createTestWorkbook(t *testing.T) (string, int) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "book.xlsx")

	f := excelize.NewFile()
	defer f.Close()

	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		t.Fatalf("Failed to create style: %v", err)
	}
	f.SetCellValue("Sheet1", "A1", "template")
	if err := f.SetCellStyle("Sheet1", "A1", "A1", style); err != nil {
		t.Fatalf("Failed to set style: %v", err)
	}
	f.SetCellValue("Sheet1", "A2", 10)
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("Failed to save test workbook: %v", err)
	}

	return path, style
}

func TestRead(t *testing.T) {
	path, style := createTestWorkbook(t)

	doc, err := Read(path, DefaultOptions())
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}

	if doc.Name != "book.xlsx" {
		t.Errorf("Expected book name book.xlsx, got %q", doc.Name)
	}
	sheet, ok := FindSheet(doc, "Sheet1")
	if !ok {
		t.Fatal("Expected Sheet1")
	}

	a1, ok := FindCell(sheet, 1, "A")
	if !ok {
		t.Fatal("Expected A1")
	}
	if CellText(doc, a1) != "template" {
		t.Errorf("Expected A1 text template, got %q", CellText(doc, a1))
	}
	if a1.Style == nil || *a1.Style != style {
		t.Errorf("Expected A1 style %d, got %v", style, a1.Style)
	}
	if a1.Dirty {
		t.Error("Expected loaded cells to be clean")
	}

	a2, ok := FindCell(sheet, 2, "A")
	if !ok || a2.Value != "10" {
		t.Errorf("Expected A2 value 10, got %+v", a2)
	}
}

func TestReadFileNotFound(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.xlsx")

	if _, err := Read(path, DefaultOptions()); !errors.Is(err, ErrFileNotFound) {
		t.Errorf("Expected ErrFileNotFound, got %v", err)
	}
}

func TestEditRoundTrip(t *testing.T) {
	path, style := createTestWorkbook(t)

	err := Edit(path, DefaultOptions(), func(doc *models.Document) error {
		if err := UpdateCell(doc, "Sheet1", 2, "B", models.CellTypeString, "hello", nil); err != nil {
			return err
		}
		if err := CopyCellStyle(doc, "Sheet1", 2, "B", "Sheet1", 1, "A"); err != nil {
			return err
		}
		if err := MergeTwoCells(doc, "Sheet1", "C3", "D3"); err != nil {
			return err
		}
		sheet := InsertWorksheet(doc)
		return SetSharedString(doc, sheet.Name, 1, "A", "shared")
	})
	if err != nil {
		t.Fatalf("Edit failed: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("Failed to reopen workbook: %v", err)
	}
	defer f.Close()

	tests := []struct {
		sheet    string
		cell     string
		expected string
	}{
		{"Sheet1", "A1", "template"},
		{"Sheet1", "A2", "10"},
		{"Sheet1", "B2", "hello"},
		{"Sheet2", "A1", "shared"},
	}

	for _, tt := range tests {
		value, err := f.GetCellValue(tt.sheet, tt.cell)
		if err != nil {
			t.Errorf("GetCellValue(%s!%s) failed: %v", tt.sheet, tt.cell, err)
			continue
		}
		if value != tt.expected {
			t.Errorf("GetCellValue(%s!%s) = %q, expected %q", tt.sheet, tt.cell, value, tt.expected)
		}
	}

	if got, err := f.GetCellStyle("Sheet1", "B2"); err != nil || got != style {
		t.Errorf("Expected B2 style %d, got %d (%v)", style, got, err)
	}

	merges, err := f.GetMergeCells("Sheet1")
	if err != nil {
		t.Fatalf("GetMergeCells failed: %v", err)
	}
	if len(merges) != 1 || merges[0].GetStartAxis() != "C3" || merges[0].GetEndAxis() != "D3" {
		t.Errorf("Expected merge C3:D3, got %v", merges)
	}
}

func TestEditAbortsOnError(t *testing.T) {
	path, _ := createTestWorkbook(t)
	abort := errors.New("abort")

	err := Edit(path, DefaultOptions(), func(doc *models.Document) error {
		if err := UpdateCell(doc, "Sheet1", 1, "A", models.CellTypeString, "changed", nil); err != nil {
			return err
		}
		return abort
	})
	if !errors.Is(err, abort) {
		t.Fatalf("Expected abort error, got %v", err)
	}

	doc, err := Read(path, DefaultOptions())
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	a1, _ := FindCell(doc.Sheets[0], 1, "A")
	if a1 == nil || CellText(doc, a1) != "template" {
		t.Errorf("Expected A1 unchanged, got %+v", a1)
	}
}

func TestEditCreateAndOutputPath(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "new.xlsx")
	output := filepath.Join(dir, "out.xlsx")

	opts := Options{Create: true, OutputPath: output}
	err := Edit(input, opts, func(doc *models.Document) error {
		return UpdateCell(doc, "Sheet1", 1, "A", "", "3.5", nil)
	})
	if err != nil {
		t.Fatalf("Edit failed: %v", err)
	}

	if _, err := Read(input, DefaultOptions()); !errors.Is(err, ErrFileNotFound) {
		t.Errorf("Expected input to stay absent, got %v", err)
	}

	doc, err := Read(output, DefaultOptions())
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	a1, ok := FindCell(doc.Sheets[0], 1, "A")
	if !ok || a1.Value != "3.5" || a1.Type != "" {
		t.Errorf("Expected numeric A1 3.5, got %+v", a1)
	}
}

func TestEditWithPassword(t *testing.T) {
	path := filepath.Join(t.TempDir(), "secret.xlsx")
	opts := Options{Password: "pass", Create: true}

	err := Edit(path, opts, func(doc *models.Document) error {
		return UpdateCell(doc, "Sheet1", 1, "A", models.CellTypeString, "hidden", nil)
	})
	if err != nil {
		t.Fatalf("Edit failed: %v", err)
	}

	if _, err := Read(path, DefaultOptions()); !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("Expected ErrInvalidFormat without password, got %v", err)
	}

	doc, err := Read(path, Options{Password: "pass"})
	if err != nil {
		t.Fatalf("Read with password failed: %v", err)
	}
	a1, _ := FindCell(doc.Sheets[0], 1, "A")
	if a1 == nil || CellText(doc, a1) != "hidden" {
		t.Errorf("Expected A1 hidden, got %+v", a1)
	}
}

func TestFlushClearsDirtyFlags(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	doc, err := Load(f)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if err := UpdateCell(doc, "Sheet1", 1, "A", models.CellTypeBoolean, "1", nil); err != nil {
		t.Fatalf("UpdateCell failed: %v", err)
	}
	if err := MergeTwoCells(doc, "Sheet1", "B1", "C1"); err != nil {
		t.Fatalf("MergeTwoCells failed: %v", err)
	}
	sheet := InsertWorksheet(doc)

	if err := Flush(f, doc); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}

	for _, row := range doc.Sheets[0].Rows {
		for _, cell := range row.Cells {
			if cell.Dirty {
				t.Errorf("Expected %s clean after flush", cell.Ref)
			}
		}
	}
	if doc.Sheets[0].MergeCells.Cells[0].Dirty || sheet.Created {
		t.Error("Expected merge and sheet flags cleared after flush")
	}

	if value, _ := f.GetCellValue("Sheet1", "A1"); value != "TRUE" {
		t.Errorf("Expected A1 TRUE, got %q", value)
	}
	if index, err := f.GetSheetIndex(sheet.Name); err != nil || index < 0 {
		t.Errorf("Expected sheet %s in workbook, got index %d (%v)", sheet.Name, index, err)
	}
}

func TestCopyCellStyleKeepsFormula(t *testing.T) {
	path, style := createTestWorkbook(t)

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("Failed to open test workbook: %v", err)
	}
	f.SetCellValue("Sheet1", "C1", 2)
	if err := f.SetCellFormula("Sheet1", "B1", "C1*21"); err != nil {
		t.Fatalf("Failed to set formula: %v", err)
	}
	if err := f.Save(); err != nil {
		t.Fatalf("Failed to save test workbook: %v", err)
	}
	f.Close()

	err = Edit(path, DefaultOptions(), func(doc *models.Document) error {
		return CopyCellStyle(doc, "Sheet1", 1, "B", "Sheet1", 1, "A")
	})
	if err != nil {
		t.Fatalf("Edit failed: %v", err)
	}

	f, err = excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("Failed to reopen workbook: %v", err)
	}
	defer f.Close()

	if formula, err := f.GetCellFormula("Sheet1", "B1"); err != nil || formula != "C1*21" {
		t.Errorf("Expected B1 formula C1*21, got %q (%v)", formula, err)
	}
	if got, err := f.GetCellStyle("Sheet1", "B1"); err != nil || got != style {
		t.Errorf("Expected B1 style %d, got %d (%v)", style, got, err)
	}
}

func TestEditKeepsInheritedStyle(t *testing.T) {
	path, style := createTestWorkbook(t)

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("Failed to open test workbook: %v", err)
	}
	if err := f.SetColStyle("Sheet1", "C", style); err != nil {
		t.Fatalf("Failed to set column style: %v", err)
	}
	if err := f.Save(); err != nil {
		t.Fatalf("Failed to save test workbook: %v", err)
	}
	f.Close()

	err = Edit(path, DefaultOptions(), func(doc *models.Document) error {
		return UpdateCell(doc, "Sheet1", 5, "C", models.CellTypeString, "in styled column", nil)
	})
	if err != nil {
		t.Fatalf("Edit failed: %v", err)
	}

	f, err = excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("Failed to reopen workbook: %v", err)
	}
	defer f.Close()

	if got, err := f.GetCellStyle("Sheet1", "C5"); err != nil || got != style {
		t.Errorf("Expected C5 to keep column style %d, got %d (%v)", style, got, err)
	}
}

func TestEditDateAndErrorValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "values.xlsx")

	err := Edit(path, Options{Create: true}, func(doc *models.Document) error {
		return UpdateCell(doc, "Sheet1", 1, "A", models.CellTypeDate, "2024-01-02T00:00:00Z", nil)
	})
	if err != nil {
		t.Fatalf("Edit failed: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("Failed to reopen workbook: %v", err)
	}
	raw, _ := f.GetCellValue("Sheet1", "A1", excelize.Options{RawCellValue: true})
	style, _ := f.GetCellStyle("Sheet1", "A1")
	f.Close()

	if raw != "45293" {
		t.Errorf("Expected A1 serial date 45293, got %q", raw)
	}
	if style == 0 {
		t.Error("Expected A1 to carry a date format")
	}

	tests := []struct {
		name     string
		dataType models.CellType
		value    string
	}{
		{"error value", models.CellTypeError, "#N/A"},
		{"bad date", models.CellTypeDate, "yesterday"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Edit(path, DefaultOptions(), func(doc *models.Document) error {
				return UpdateCell(doc, "Sheet1", 1, "B", tt.dataType, tt.value, nil)
			})
			if !errors.Is(err, ErrUnsupportedValue) {
				t.Fatalf("Expected ErrUnsupportedValue, got %v", err)
			}

			doc, err := Read(path, DefaultOptions())
			if err != nil {
				t.Fatalf("Read failed: %v", err)
			}
			if _, ok := FindCell(doc.Sheets[0], 1, "B"); ok {
				t.Error("Expected B1 not to be saved")
			}
		})
	}
}

func TestLoadSheetInfo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ids.xlsx")

	f := excelize.NewFile()
	for _, name := range []string{"Middle", "Last"} {
		if _, err := f.NewSheet(name); err != nil {
			t.Fatalf("Failed to add sheet: %v", err)
		}
	}
	if err := f.DeleteSheet("Middle"); err != nil {
		t.Fatalf("Failed to delete sheet: %v", err)
	}
	if err := f.MergeCell("Last", "B4", "A2"); err != nil {
		t.Fatalf("Failed to merge cells: %v", err)
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("Failed to save test workbook: %v", err)
	}
	f.Close()

	doc, err := Read(path, DefaultOptions())
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}

	last, ok := FindSheet(doc, "Last")
	if !ok {
		t.Fatal("Expected sheet Last")
	}
	if last.ID != 3 {
		t.Errorf("Expected Last to keep sheet id 3, got %d", last.ID)
	}
	if last.MergeCells == nil || len(last.MergeCells.Cells) != 1 || last.MergeCells.Cells[0].Ref != "A2:B4" {
		t.Errorf("Expected merge A2:B4, got %+v", last.MergeCells)
	}
	if last.MergeCells != nil && last.MergeCells.Cells[0].Dirty {
		t.Error("Expected loaded merge regions to be clean")
	}
	if first, _ := FindSheet(doc, "Sheet1"); first == nil || first.ID != 1 || first.MergeCells != nil {
		t.Errorf("Expected Sheet1 with id 1 and no merges, got %+v", first)
	}
}

func TestFlushRefreshesSheetID(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	// Sheet id 2 carries the name the next insert would use
	if _, err := f.NewSheet("Sheet3"); err != nil {
		t.Fatalf("Failed to add sheet: %v", err)
	}

	doc, err := Load(f)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	sheet := InsertWorksheet(doc)
	if sheet.Name != "Sheet4" {
		t.Fatalf("Expected Sheet4, got %q", sheet.Name)
	}

	if err := Flush(f, doc); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}

	var expected int
	for id, name := range f.GetSheetMap() {
		if name == sheet.Name {
			expected = id
		}
	}
	if expected == 0 || sheet.ID != expected {
		t.Errorf("Expected sheet id %d from the workbook, got %d", expected, sheet.ID)
	}
}
