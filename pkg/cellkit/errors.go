package cellkit

import (
	"errors"
	"fmt"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrInvalidFormat indicates the input file is not a valid xlsx format.
var ErrInvalidFormat = errors.New("invalid xlsx format")

// ErrSheetNotFound indicates no sheet has the requested name.
var ErrSheetNotFound = errors.New("sheet not found")

// ErrTemplateNotFound indicates the template sheet or cell of a style copy does not exist.
var ErrTemplateNotFound = errors.New("template not found")

// ErrInvalidCellReference indicates a cell reference is not column letters followed by a row number.
var ErrInvalidCellReference = errors.New("invalid cell reference")

// ErrUnsupportedValue indicates a cell value that cannot be written for its data type.
var ErrUnsupportedValue = errors.New("unsupported cell value")

// OperationError represents an error while applying an operation to a sheet.
type OperationError struct {
	SheetName string
	Operation string // "update", "copy_style", "merge", "shared_string"
	Err       error
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("%s failed in sheet %q: %v", e.Operation, e.SheetName, e.Err)
}

func (e *OperationError) Unwrap() error {
	return e.Err
}

// NewOperationError creates a new OperationError.
func NewOperationError(sheetName, operation string, err error) *OperationError {
	return &OperationError{
		SheetName: sheetName,
		Operation: operation,
		Err:       err,
	}
}
