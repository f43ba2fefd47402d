package output

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/ukaji3/cellkit-go/pkg/cellkit/models"
)

func intPtr(v int) *int {
	return &v
}

func testDocument() *models.Document {
	return &models.Document{
		Name:          "test.xlsx",
		SharedStrings: &models.SharedStringTable{Items: []string{"Header"}},
		StyleCount:    2,
		Sheets: []*models.Sheet{
			{
				Name:     "Data",
				ID:       1,
				Elements: []models.ElementKind{models.ElementSheetData, models.ElementMergeCells},
				Rows: []*models.Row{
					{Index: 2, Cells: []*models.Cell{
						{Ref: "B2", Value: "0", Type: models.CellTypeSharedString},
						{Ref: "C2", Value: "12.5", Style: intPtr(1)},
					}},
					{Index: 3, Cells: []*models.Cell{
						{Ref: "B3", Value: "1", Type: models.CellTypeBoolean},
						{Ref: "D3"},
					}},
					{Index: 4, Cells: []*models.Cell{
						{Ref: "E4"},
					}},
				},
				MergeCells: &models.MergeCells{Cells: []*models.MergeCell{{Ref: "D3:E4"}}},
			},
			{Name: "Empty", ID: 2, Elements: []models.ElementKind{models.ElementSheetData}},
		},
	}
}

func TestNewSheetView(t *testing.T) {
	doc := testDocument()
	view := NewSheetView(doc, doc.Sheets[0])

	if view.UsedRange != "B2:C3" {
		t.Errorf("Expected used range B2:C3, got %q", view.UsedRange)
	}
	if len(view.Rows) != 2 {
		t.Fatalf("Expected 2 non-empty rows, got %d", len(view.Rows))
	}

	tests := []struct {
		row      int
		cell     int
		ref      string
		expected interface{}
	}{
		{0, 0, "B2", "Header"},
		{0, 1, "C2", 12.5},
		{1, 0, "B3", true},
	}

	for _, tt := range tests {
		cell := view.Rows[tt.row].C[tt.cell]
		if cell.Ref != tt.ref || cell.Value != tt.expected {
			t.Errorf("Rows[%d].C[%d] = (%q, %v), expected (%q, %v)",
				tt.row, tt.cell, cell.Ref, cell.Value, tt.ref, tt.expected)
		}
	}
	if len(view.Rows[1].C) != 1 {
		t.Errorf("Expected empty D3 to be left out, got %+v", view.Rows[1].C)
	}

	if len(view.MergedCells) != 1 {
		t.Fatalf("Expected 1 merge region, got %d", len(view.MergedCells))
	}
	expected := models.Area{R1: 3, C1: 4, R2: 4, C2: 5}
	if area := view.MergedCells[0].Area; area == nil || *area != expected {
		t.Errorf("Expected merge area %+v, got %+v", expected, area)
	}
}

func TestToJSON(t *testing.T) {
	doc := testDocument()

	data, err := ToJSON(doc, false)
	if err != nil {
		t.Fatalf("ToJSON failed: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
	if decoded["book_name"] != "test.xlsx" {
		t.Errorf("Expected book_name test.xlsx, got %v", decoded["book_name"])
	}
	sheets, ok := decoded["sheets"].([]interface{})
	if !ok || len(sheets) != 2 {
		t.Fatalf("Expected 2 sheets, got %v", decoded["sheets"])
	}
	empty := sheets[1].(map[string]interface{})
	if _, ok := empty["used_range"]; ok {
		t.Errorf("Expected no used range for an empty sheet, got %v", empty["used_range"])
	}

	pretty, err := ToJSON(doc, true)
	if err != nil {
		t.Fatalf("ToJSON(pretty) failed: %v", err)
	}
	if !strings.Contains(string(pretty), "\n  \"sheets\"") {
		t.Error("Expected indented output")
	}
}

func TestSheetToJSON(t *testing.T) {
	doc := testDocument()

	data, err := SheetToJSON(doc, doc.Sheets[0], false)
	if err != nil {
		t.Fatalf("SheetToJSON failed: %v", err)
	}

	for _, want := range []string{`"name":"Data"`, `"ref":"D3:E4"`, `"v":"Header"`} {
		if !strings.Contains(string(data), want) {
			t.Errorf("Expected %s in %s", want, data)
		}
	}
}
