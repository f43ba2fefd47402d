// Package models defines the in-memory spreadsheet document tree.
package models

// CellType is the cell data type tag (the OOXML "t" attribute).
type CellType string

const (
	// CellTypeNumber is the default type; an untagged cell holds a number.
	CellTypeNumber CellType = "n"
	// CellTypeSharedString marks a value that is an index into the shared-string table.
	CellTypeSharedString CellType = "s"
	// CellTypeString marks a formula string result stored inline in the value.
	CellTypeString CellType = "str"
	// CellTypeInlineString marks an inline rich string.
	CellTypeInlineString CellType = "inlineStr"
	// CellTypeBoolean marks a boolean stored as 0 or 1.
	CellTypeBoolean CellType = "b"
	// CellTypeError marks an error value such as #N/A.
	CellTypeError CellType = "e"
	// CellTypeDate marks an ISO 8601 date.
	CellTypeDate CellType = "d"
)

// Cell is a single worksheet cell.
type Cell struct {
	// Ref is the cell reference, column letters followed by the row number (e.g. "B12").
	Ref string `json:"ref"`
	// Value is the literal value: text, number text or a shared-string index.
	Value string `json:"v,omitempty"`
	// Type is the data type tag. Empty means number.
	Type CellType `json:"t,omitempty"`
	// Style is the index into the workbook cell formats (nil if unset).
	Style *int `json:"s,omitempty"`
	// Dirty reports whether the value or type changed since the document was loaded.
	Dirty bool `json:"-"`
	// StyleDirty reports whether the style index changed since the document was loaded.
	StyleDirty bool `json:"-"`
}

// Row is a worksheet row holding its cells in column order.
type Row struct {
	// Index is the row number (1-based).
	Index int `json:"r"`
	// Cells contains the row's cells ordered by column.
	Cells []*Cell `json:"c,omitempty"`
}
