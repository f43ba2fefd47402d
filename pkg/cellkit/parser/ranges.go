package parser

import (
	"fmt"
	"strings"

	"github.com/ukaji3/cellkit-go/pkg/cellkit/models"
	"github.com/xuri/excelize/v2"
)

// SplitRange splits a range like "A1:B2" (or "$A$1:$B$2") into its two
// endpoint references with "$" signs removed. A single reference yields the
// same reference twice.
func SplitRange(rangeStr string) (string, string, error) {
	rangeStr = strings.ReplaceAll(rangeStr, "$", "")

	parts := strings.Split(rangeStr, ":")
	switch len(parts) {
	case 1:
		return parts[0], parts[0], nil
	case 2:
		return parts[0], parts[1], nil
	default:
		return "", "", fmt.Errorf("invalid range %q", rangeStr)
	}
}

// ParseRange parses a range string to its coordinate bounds. The bounds are
// normalized so that R1 <= R2 and C1 <= C2.
func ParseRange(rangeStr string) (*models.Area, error) {
	start, end, err := SplitRange(rangeStr)
	if err != nil {
		return nil, err
	}

	startCol, startRow, err := excelize.CellNameToCoordinates(start)
	if err != nil {
		return nil, err
	}

	endCol, endRow, err := excelize.CellNameToCoordinates(end)
	if err != nil {
		return nil, err
	}

	if startRow > endRow {
		startRow, endRow = endRow, startRow
	}
	if startCol > endCol {
		startCol, endCol = endCol, startCol
	}

	return &models.Area{
		R1: startRow,
		C1: startCol,
		R2: endRow,
		C2: endCol,
	}, nil
}
