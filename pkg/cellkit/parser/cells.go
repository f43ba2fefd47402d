package parser

import (
	"encoding/xml"
	"math"
	"strconv"
	"strings"

	"github.com/ukaji3/cellkit-go/pkg/cellkit/models"
)

// parseCellElement parses a c element into a cell.
// Formulas are not kept; the cached value is.
func parseCellElement(decoder *xml.Decoder, start xml.StartElement) (*models.Cell, error) {
	cell := &models.Cell{}
	for _, attr := range start.Attr {
		switch attr.Name.Local {
		case "r":
			cell.Ref = attr.Value
		case "t":
			cell.Type = models.CellType(attr.Value)
		case "s":
			if s, err := strconv.Atoi(attr.Value); err == nil {
				cell.Style = &s
			}
		}
	}

	depth := 1
	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			return nil, err
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			switch t.Name.Local {
			case "v":
				text, err := readElementText(decoder)
				if err != nil {
					return nil, err
				}
				cell.Value = text
				depth--
			case "is":
				text, err := readStringItem(decoder)
				if err != nil {
					return nil, err
				}
				cell.Value = text
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}

	return cell, nil
}

// parseSharedStrings returns the si items of a shared-string part in order.
func parseSharedStrings(data []byte) ([]string, error) {
	decoder := xml.NewDecoder(strings.NewReader(string(data)))
	var items []string

	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		if se, ok := token.(xml.StartElement); ok && se.Name.Local == "si" {
			text, err := readStringItem(decoder)
			if err != nil {
				return nil, err
			}
			items = append(items, text)
		}
	}

	return items, nil
}

// readStringItem returns the plain text of a string item (si or is),
// joining rich text runs and skipping phonetic runs.
func readStringItem(decoder *xml.Decoder) (string, error) {
	var sb strings.Builder
	depth := 1

	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			return sb.String(), err
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			switch t.Name.Local {
			case "t":
				text, err := readElementText(decoder)
				if err != nil {
					return sb.String(), err
				}
				sb.WriteString(text)
				depth--
			case "rPh":
				if err := decoder.Skip(); err != nil {
					return sb.String(), err
				}
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}

	return sb.String(), nil
}

// ParseValue attempts to parse a string value as a number.
// Returns int64 for integers, float64 for finite decimals, or the original string.
func ParseValue(s string) interface{} {
	// Try integer first
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	// Try float
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return f
	}
	// Return as string
	return s
}
