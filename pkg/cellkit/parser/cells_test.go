package parser

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestParseSharedStrings(t *testing.T) {
	data := `<sst xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main" count="4" uniqueCount="3">
  <si><t>Header1</t></si>
  <si><r><rPr><b/></rPr><t>Rich </t></r><r><t>text</t></r></si>
  <si><t>漢字</t><rPh sb="0" eb="2"><t>カンジ</t></rPh></si>
</sst>`

	items, err := parseSharedStrings([]byte(data))
	if err != nil {
		t.Fatalf("parseSharedStrings failed: %v", err)
	}

	expected := []string{"Header1", "Rich text", "漢字"}
	if len(items) != len(expected) {
		t.Fatalf("Expected %d items, got %d (%q)", len(expected), len(items), items)
	}
	for i := range expected {
		if items[i] != expected[i] {
			t.Errorf("items[%d] = %q, expected %q", i, items[i], expected[i])
		}
	}
}

func TestReadPackage(t *testing.T) {
	// Create a workbook for testing
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Sheet1"
	f.SetCellValue(sheetName, "A1", "Header1")
	f.SetCellValue(sheetName, "B1", "Header2")
	f.SetCellValue(sheetName, "A2", 100)
	f.SetCellValue(sheetName, "B2", 200.5)
	f.SetCellValue(sheetName, "A3", "Header1")
	if err := f.MergeCell(sheetName, "A4", "B4"); err != nil {
		t.Fatalf("Failed to merge cells: %v", err)
	}
	if _, err := f.NewSheet("Other"); err != nil {
		t.Fatalf("Failed to add sheet: %v", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("Failed to write test workbook: %v", err)
	}
	r, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("Failed to open test workbook: %v", err)
	}

	doc, err := ReadPackage(r, "test.xlsx")
	if err != nil {
		t.Fatalf("ReadPackage failed: %v", err)
	}

	if doc.Name != "test.xlsx" {
		t.Errorf("Expected book name test.xlsx, got %q", doc.Name)
	}
	if len(doc.Sheets) != 2 {
		t.Fatalf("Expected 2 sheets, got %d", len(doc.Sheets))
	}
	if doc.Sheets[0].Name != "Sheet1" || doc.Sheets[1].Name != "Other" {
		t.Errorf("Unexpected sheet order: %q, %q", doc.Sheets[0].Name, doc.Sheets[1].Name)
	}
	if doc.Sheets[1].Path != "xl/worksheets/sheet2.xml" {
		t.Errorf("Expected part xl/worksheets/sheet2.xml, got %q", doc.Sheets[1].Path)
	}

	sheet := doc.Sheets[0]
	if len(sheet.Rows) < 3 {
		t.Fatalf("Expected at least 3 rows, got %d", len(sheet.Rows))
	}

	// Check first row
	if sheet.Rows[0].Index != 1 {
		t.Errorf("Expected row 1, got %d", sheet.Rows[0].Index)
	}
	a1 := sheet.Rows[0].Cells[0]
	if a1.Ref != "A1" {
		t.Errorf("Expected A1, got %q", a1.Ref)
	}
	if a1.Type == "s" {
		idx := ParseValue(a1.Value).(int64)
		if doc.SharedStrings.Items[idx] != "Header1" {
			t.Errorf("Expected 'Header1', got %q", doc.SharedStrings.Items[idx])
		}
	} else if a1.Value != "Header1" {
		t.Errorf("Expected 'Header1', got %q", a1.Value)
	}

	// Check numeric values
	if v := sheet.Rows[1].Cells[0].Value; v != "100" {
		t.Errorf("Expected 100, got %q", v)
	}
	if v := sheet.Rows[1].Cells[1].Value; v != "200.5" {
		t.Errorf("Expected 200.5, got %q", v)
	}

	if !sheet.HasElement("sheetData") || !sheet.HasElement("mergeCells") {
		t.Errorf("Expected sheetData and mergeCells elements, got %v", sheet.Elements)
	}
	if doc.StyleCount < 1 {
		t.Errorf("Expected at least one cell format, got %d", doc.StyleCount)
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		input    string
		expected interface{}
	}{
		{"123", int64(123)},
		{"123.45", 123.45},
		{"-100", int64(-100)},
		{"hello", "hello"},
		{"", ""},
		{"NaN", "NaN"},
		{"-Inf", "-Inf"},
	}

	for _, tt := range tests {
		result := ParseValue(tt.input)
		if result != tt.expected {
			t.Errorf("ParseValue(%q) = %v (type: %T), expected %v (type: %T)",
				tt.input, result, result, tt.expected, tt.expected)
		}
	}
}
