// Package parser builds the document tree from an xlsx package.
package parser

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/ukaji3/cellkit-go/pkg/cellkit/models"
)

// Well-known part locations used when the workbook relationships omit them.
const (
	workbookPath      = "xl/workbook.xml"
	workbookRelsPath  = "xl/_rels/workbook.xml.rels"
	sharedStringsPath = "xl/sharedStrings.xml"
	stylesPath        = "xl/styles.xml"
)

// ErrMissingPart indicates a required package part is absent.
var ErrMissingPart = errors.New("missing package part")

// sheetEntry is a sheet element of workbook.xml.
type sheetEntry struct {
	name  string
	relID string
}

// relationship is a Relationship element with its target resolved to a part name.
type relationship struct {
	id      string
	relType string
	target  string
}

// ReadPackage builds a document from the parts of an xlsx package. It reads
// what excelize keeps unexported: worksheet element order, raw cell records
// and the shared-string table. Sheet ids and merge regions are left for the
// caller to fill from excelize.
func ReadPackage(r *zip.Reader, bookName string) (*models.Document, error) {
	workbookXML, err := readZipFile(r, workbookPath)
	if err != nil {
		return nil, err
	}
	if workbookXML == nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingPart, workbookPath)
	}

	wbRelsXML, err := readZipFile(r, workbookRelsPath)
	if err != nil {
		return nil, err
	}
	rels := parseWorkbookRels(wbRelsXML)

	doc := &models.Document{
		Name:          bookName,
		SharedStrings: &models.SharedStringTable{},
	}

	// Shared strings
	sstPath := findRelTarget(rels, "sharedStrings", sharedStringsPath)
	sstXML, err := readZipFile(r, sstPath)
	if err != nil {
		return nil, err
	}
	if sstXML != nil {
		items, err := parseSharedStrings(sstXML)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", sstPath, err)
		}
		doc.SharedStrings.Items = items
	}

	// Styles
	stylesXML, err := readZipFile(r, findRelTarget(rels, "styles", stylesPath))
	if err != nil {
		return nil, err
	}
	if stylesXML != nil {
		doc.StyleCount = parseStyleCount(stylesXML)
	}

	// Worksheets
	relByID := make(map[string]relationship, len(rels))
	for _, rel := range rels {
		relByID[rel.id] = rel
	}
	for _, entry := range parseWorkbookSheets(workbookXML) {
		rel, ok := relByID[entry.relID]
		if !ok || !strings.Contains(strings.ToLower(rel.relType), "worksheet") {
			// Chart sheets and dialog sheets carry no cell data
			continue
		}

		sheet := &models.Sheet{
			Name:  entry.name,
			RelID: entry.relID,
			Path:  rel.target,
		}

		sheetXML, err := readZipFile(r, rel.target)
		if err != nil {
			return nil, err
		}
		if sheetXML == nil {
			return nil, fmt.Errorf("%w: %s", ErrMissingPart, rel.target)
		}
		if err := parseWorksheetXML(sheetXML, sheet); err != nil {
			return nil, fmt.Errorf("parse %s: %w", rel.target, err)
		}

		doc.Sheets = append(doc.Sheets, sheet)
	}

	return doc, nil
}

// findRelTarget returns the target of the first relationship of the given
// kind, or fallback.
func findRelTarget(rels []relationship, kind, fallback string) string {
	for _, rel := range rels {
		if strings.HasSuffix(rel.relType, "/"+kind) {
			return rel.target
		}
	}
	return fallback
}

// Helper functions

func readZipFile(r *zip.Reader, name string) ([]byte, error) {
	for _, f := range r.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, nil
}

func readElementText(decoder *xml.Decoder) (string, error) {
	var text string
	depth := 1
	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			return text, err
		}
		switch t := token.(type) {
		case xml.CharData:
			text += string(t)
		case xml.StartElement:
			depth++
		case xml.EndElement:
			depth--
		}
	}
	return text, nil
}

// resolvePartPath resolves a relationship target against the directory of
// the source part. Absolute targets are package-rooted.
func resolvePartPath(target, baseDir string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(path.Clean(target), "/")
	}
	return path.Join(baseDir, target)
}

func parseWorkbookSheets(data []byte) []sheetEntry {
	var result []sheetEntry
	decoder := xml.NewDecoder(strings.NewReader(string(data)))

	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		if se, ok := token.(xml.StartElement); ok && se.Name.Local == "sheet" {
			var entry sheetEntry
			for _, attr := range se.Attr {
				switch attr.Name.Local {
				case "name":
					entry.name = attr.Value
				case "id":
					entry.relID = attr.Value
				}
			}
			if entry.name != "" && entry.relID != "" {
				result = append(result, entry)
			}
		}
	}

	return result
}

func parseWorkbookRels(data []byte) []relationship {
	var result []relationship
	decoder := xml.NewDecoder(strings.NewReader(string(data)))

	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		if se, ok := token.(xml.StartElement); ok && se.Name.Local == "Relationship" {
			var rel relationship
			var external bool
			for _, attr := range se.Attr {
				switch attr.Name.Local {
				case "Id":
					rel.id = attr.Value
				case "Type":
					rel.relType = attr.Value
				case "Target":
					rel.target = attr.Value
				case "TargetMode":
					external = attr.Value == "External"
				}
			}
			if rel.id == "" || external {
				continue
			}
			rel.target = resolvePartPath(rel.target, path.Dir(workbookPath))
			result = append(result, rel)
		}
	}

	return result
}

// parseStyleCount returns the number of cell formats (xf elements of cellXfs).
func parseStyleCount(data []byte) int {
	decoder := xml.NewDecoder(strings.NewReader(string(data)))
	inCellXfs := false
	count := 0

	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		switch t := token.(type) {
		case xml.StartElement:
			if t.Name.Local == "cellXfs" {
				inCellXfs = true
			} else if inCellXfs && t.Name.Local == "xf" {
				count++
				decoder.Skip()
			}
		case xml.EndElement:
			if t.Name.Local == "cellXfs" {
				return count
			}
		}
	}

	return count
}
