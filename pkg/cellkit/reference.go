package cellkit

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// SplitReference splits a cell reference like "B12" into its upper-cased
// column letters and row index.
func SplitReference(ref string) (string, int, error) {
	column, row, err := excelize.SplitCellName(ref)
	if err != nil || row < 1 {
		return "", 0, fmt.Errorf("%w: %q", ErrInvalidCellReference, ref)
	}
	column = strings.ToUpper(column)
	if _, err := excelize.ColumnNameToNumber(column); err != nil {
		return "", 0, fmt.Errorf("%w: %q", ErrInvalidCellReference, ref)
	}
	return column, row, nil
}

// ColumnName returns the column letters of a cell reference.
func ColumnName(ref string) (string, error) {
	column, _, err := SplitReference(ref)
	return column, err
}

// RowIndex returns the row index of a cell reference.
func RowIndex(ref string) (int, error) {
	_, row, err := SplitReference(ref)
	return row, err
}

// JoinReference builds a cell reference from column letters and a row index.
// The column is upper-cased.
func JoinReference(column string, rowIndex int) string {
	return strings.ToUpper(column) + strconv.Itoa(rowIndex)
}

// validateColumn checks column letters and the row index of a cell address.
func validateColumn(column string, rowIndex int) error {
	if _, err := excelize.ColumnNameToNumber(column); err != nil || rowIndex < 1 {
		return fmt.Errorf("%w: column %q row %d", ErrInvalidCellReference, column, rowIndex)
	}
	return nil
}

// columnNumber returns the 1-based column of a reference.
// Unparseable references sort after every valid one.
func columnNumber(ref string) int {
	column, _, err := excelize.SplitCellName(ref)
	if err != nil {
		return math.MaxInt
	}
	n, err := excelize.ColumnNameToNumber(column)
	if err != nil {
		return math.MaxInt
	}
	return n
}
