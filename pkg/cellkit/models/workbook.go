package models

// SharedStringTable is the workbook's list of unique strings referenced by index.
type SharedStringTable struct {
	// Items holds the strings in table order; a cell of type "s" stores an index into it.
	Items []string `json:"items"`
}

// Document is the workbook-level container for sheets and shared strings.
type Document struct {
	// Name is the workbook file name (no path).
	Name string `json:"book_name"`
	// Sheets contains the worksheets in workbook order.
	Sheets []*Sheet `json:"sheets"`
	// SharedStrings is the shared-string table.
	SharedStrings *SharedStringTable `json:"shared_strings"`
	// StyleCount is the number of cell formats in the styles part.
	StyleCount int `json:"style_count"`
}
