// Package cellkit provides lookup-or-create helpers over an in-memory
// spreadsheet document tree backed by excelize.
package cellkit

import "github.com/xuri/excelize/v2"

// Options configures how a workbook is opened and saved.
type Options struct {
	// Password opens and saves an encrypted workbook.
	Password string
	// OutputPath saves the edited workbook to another file.
	// If empty, the workbook is saved in place.
	OutputPath string
	// Create starts a new workbook when the input file does not exist.
	Create bool
}

// DefaultOptions returns default options: save in place, no password,
// missing files are an error.
func DefaultOptions() Options {
	return Options{}
}

// SavePath returns the path an edit of inputPath is saved to.
func (o Options) SavePath(inputPath string) string {
	if o.OutputPath != "" {
		return o.OutputPath
	}
	return inputPath
}

func (o Options) excelizeOptions() excelize.Options {
	return excelize.Options{Password: o.Password}
}
