package cellkit

import "github.com/ukaji3/cellkit-go/pkg/cellkit/models"

// InsertSharedString returns the index of text in the shared-string table,
// appending it when no item matches exactly. Matching is case-sensitive and
// the first match wins.
func InsertSharedString(table *models.SharedStringTable, text string) int {
	for i, item := range table.Items {
		if item == text {
			return i
		}
	}
	table.Items = append(table.Items, text)
	return len(table.Items) - 1
}

// SharedStrings returns the document's shared-string table, creating an
// empty one if the document has none.
func SharedStrings(doc *models.Document) *models.SharedStringTable {
	if doc.SharedStrings == nil {
		doc.SharedStrings = &models.SharedStringTable{}
	}
	return doc.SharedStrings
}
