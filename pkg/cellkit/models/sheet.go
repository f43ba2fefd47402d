package models

// ElementKind is the local name of a top-level worksheet element.
type ElementKind string

// Worksheet child elements, in schema order.
const (
	// ElementSheetPr holds sheet properties such as the tab color.
	ElementSheetPr ElementKind = "sheetPr"
	// ElementDimension holds the used range of the sheet.
	ElementDimension ElementKind = "dimension"
	// ElementSheetViews holds window views (selection, frozen panes).
	ElementSheetViews ElementKind = "sheetViews"
	// ElementSheetFormatPr holds default row height and column width.
	ElementSheetFormatPr ElementKind = "sheetFormatPr"
	// ElementCols holds column widths and styles.
	ElementCols ElementKind = "cols"
	// ElementSheetData holds the rows and cells.
	ElementSheetData ElementKind = "sheetData"
	// ElementSheetCalcPr holds sheet calculation properties.
	ElementSheetCalcPr ElementKind = "sheetCalcPr"
	// ElementSheetProtection holds sheet protection settings.
	ElementSheetProtection ElementKind = "sheetProtection"
	// ElementProtectedRanges holds ranges editable on a protected sheet.
	ElementProtectedRanges ElementKind = "protectedRanges"
	// ElementScenarios holds what-if scenarios.
	ElementScenarios ElementKind = "scenarios"
	// ElementAutoFilter holds the sheet's auto filter.
	ElementAutoFilter ElementKind = "autoFilter"
	// ElementSortState holds the sort conditions of the sheet.
	ElementSortState ElementKind = "sortState"
	// ElementDataConsolidate holds data consolidation settings.
	ElementDataConsolidate ElementKind = "dataConsolidate"
	// ElementCustomSheetViews holds custom views.
	ElementCustomSheetViews ElementKind = "customSheetViews"
	// ElementMergeCells holds the merge regions.
	ElementMergeCells ElementKind = "mergeCells"
	// ElementPageMargins holds print page margins.
	ElementPageMargins ElementKind = "pageMargins"
)

// MergeCell is a single merge region.
type MergeCell struct {
	// Ref is the region as "A1:B1".
	Ref string `json:"ref"`
	// Dirty reports whether the region was recorded since the document was loaded.
	Dirty bool `json:"-"`
}

// MergeCells is the sheet's merge region list.
type MergeCells struct {
	// Cells contains the regions in document order.
	Cells []*MergeCell `json:"cells"`
}

// Sheet represents a single worksheet.
type Sheet struct {
	// Name is the unique sheet name.
	Name string `json:"name"`
	// ID is the numeric sheet id from the workbook.
	ID int `json:"id"`
	// RelID is the workbook relationship id of the worksheet part.
	RelID string `json:"rel_id,omitempty"`
	// Path is the worksheet part name inside the package.
	Path string `json:"path,omitempty"`
	// Rows contains the sheet's rows ordered by index.
	Rows []*Row `json:"rows,omitempty"`
	// Elements lists the top-level worksheet elements in document order.
	Elements []ElementKind `json:"elements,omitempty"`
	// MergeCells is the merge region list (nil if the sheet has none).
	MergeCells *MergeCells `json:"merge_cells,omitempty"`
	// Created reports whether the sheet was inserted since the document was loaded.
	Created bool `json:"-"`
}

// HasElement reports whether the sheet has a top-level element of the given kind.
func (s *Sheet) HasElement(kind ElementKind) bool {
	return s.elementIndex(kind) >= 0
}

// InsertElementAfter places kind right after the first element of kind anchor.
// It appends when the anchor is absent.
func (s *Sheet) InsertElementAfter(kind, anchor ElementKind) {
	i := s.elementIndex(anchor)
	if i < 0 {
		s.Elements = append(s.Elements, kind)
		return
	}
	s.Elements = append(s.Elements, "")
	copy(s.Elements[i+2:], s.Elements[i+1:])
	s.Elements[i+1] = kind
}

func (s *Sheet) elementIndex(kind ElementKind) int {
	for i, k := range s.Elements {
		if k == kind {
			return i
		}
	}
	return -1
}
