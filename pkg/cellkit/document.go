package cellkit

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/ukaji3/cellkit-go/pkg/cellkit/models"
	"github.com/ukaji3/cellkit-go/pkg/cellkit/parser"
	"github.com/xuri/excelize/v2"
)

// Open opens a workbook through excelize. When the file does not exist it
// returns ErrFileNotFound, or a new empty workbook bound to path if
// opts.Create is set.
func Open(path string, opts Options) (*excelize.File, error) {
	f, err := excelize.OpenFile(path, opts.excelizeOptions())
	if err == nil {
		return f, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		if !opts.Create {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		f = excelize.NewFile(opts.excelizeOptions())
		f.Path = path
		return f, nil
	}
	return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
}

// Load builds the document tree of an open workbook.
//
// The workbook is serialized without encryption to read its parts, which
// resets the save options of f; pass them again to SaveAs.
func Load(f *excelize.File) (*models.Document, error) {
	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf, excelize.Options{}); err != nil {
		return nil, fmt.Errorf("serialize workbook: %w", err)
	}

	r, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}

	var bookName string
	if f.Path != "" {
		bookName = filepath.Base(f.Path)
	}

	doc, err := parser.ReadPackage(r, bookName)
	if err != nil {
		if errors.Is(err, parser.ErrMissingPart) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
		}
		return nil, err
	}

	if err := loadSheetInfo(f, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// loadSheetInfo fills the sheet ids and merge regions from excelize.
func loadSheetInfo(f *excelize.File, doc *models.Document) error {
	ids := sheetIDs(f)
	for _, sheet := range doc.Sheets {
		sheet.ID = ids[sheet.Name]

		merges, err := f.GetMergeCells(sheet.Name)
		if err != nil {
			return fmt.Errorf("read merge cells of %q: %w", sheet.Name, err)
		}
		if len(merges) == 0 {
			continue
		}
		sheet.MergeCells = &models.MergeCells{Cells: make([]*models.MergeCell, 0, len(merges))}
		for _, mc := range merges {
			sheet.MergeCells.Cells = append(sheet.MergeCells.Cells, &models.MergeCell{
				Ref: mc.GetStartAxis() + ":" + mc.GetEndAxis(),
			})
		}
	}
	return nil
}

// sheetIDs maps sheet names to their workbook sheet ids.
func sheetIDs(f *excelize.File) map[string]int {
	ids := make(map[string]int)
	for id, name := range f.GetSheetMap() {
		ids[name] = id
	}
	return ids
}

// Flush writes the changes recorded in doc since Load to f: inserted sheets,
// changed cells and new merge regions. Dirty flags are cleared as changes
// are written.
func Flush(f *excelize.File, doc *models.Document) error {
	for _, sheet := range doc.Sheets {
		if sheet.Created {
			if _, err := f.NewSheet(sheet.Name); err != nil {
				return fmt.Errorf("create sheet %q: %w", sheet.Name, err)
			}
			if id, ok := sheetIDs(f)[sheet.Name]; ok {
				sheet.ID = id
			}
			sheet.Created = false
		}

		for _, row := range sheet.Rows {
			for _, cell := range row.Cells {
				if !cell.Dirty && !cell.StyleDirty {
					continue
				}
				if err := writeCell(f, doc, sheet.Name, cell); err != nil {
					return NewOperationError(sheet.Name, "flush", err)
				}
				cell.Dirty = false
				cell.StyleDirty = false
			}
		}

		if sheet.MergeCells == nil {
			continue
		}
		for _, merge := range sheet.MergeCells.Cells {
			if !merge.Dirty {
				continue
			}
			start, end, err := parser.SplitRange(merge.Ref)
			if err != nil {
				return NewOperationError(sheet.Name, "flush", err)
			}
			if err := f.MergeCell(sheet.Name, start, end); err != nil {
				return NewOperationError(sheet.Name, "flush", fmt.Errorf("merge %s: %w", merge.Ref, err))
			}
			merge.Dirty = false
		}
	}

	return nil
}

// writeCell stores what changed on a cell: its value when Dirty, its style
// index when StyleDirty. A value write leaves the style excelize resolves
// for the cell in place.
func writeCell(f *excelize.File, doc *models.Document, sheetName string, cell *models.Cell) error {
	if cell.Dirty {
		if err := writeValue(f, doc, sheetName, cell); err != nil {
			return fmt.Errorf("write %s: %w", cell.Ref, err)
		}
	}
	if !cell.StyleDirty {
		return nil
	}

	// A copied empty style resets the cell to the default format
	style := 0
	if cell.Style != nil {
		style = *cell.Style
	}
	if err := f.SetCellStyle(sheetName, cell.Ref, cell.Ref, style); err != nil {
		return fmt.Errorf("style %s: %w", cell.Ref, err)
	}
	return nil
}

// writeValue stores a cell's value according to its type.
func writeValue(f *excelize.File, doc *models.Document, sheetName string, cell *models.Cell) error {
	switch cell.Type {
	case models.CellTypeSharedString, models.CellTypeString, models.CellTypeInlineString:
		return f.SetCellStr(sheetName, cell.Ref, CellText(doc, cell))
	case models.CellTypeBoolean:
		return f.SetCellBool(sheetName, cell.Ref, cell.Value == "1" || strings.EqualFold(cell.Value, "true"))
	case models.CellTypeDate:
		t, err := parseDate(cell.Value)
		if err != nil {
			return err
		}
		// Stored as a serial number with a date format
		return f.SetCellValue(sheetName, cell.Ref, t)
	case models.CellTypeError:
		return fmt.Errorf("%w: error value %q", ErrUnsupportedValue, cell.Value)
	default:
		// Numeric-looking text is stored as a number, anything else inline
		return f.SetCellDefault(sheetName, cell.Ref, cell.Value)
	}
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// parseDate parses the ISO 8601 text of a date cell.
func parseDate(value string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: date %q", ErrUnsupportedValue, value)
}

// Read opens a workbook and returns its document tree without keeping the
// file open.
func Read(path string, opts Options) (*models.Document, error) {
	f, err := Open(path, opts)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Load(f)
}

// Edit opens the workbook at path, passes its document tree to fn, then
// writes the changes and saves to opts.SavePath(path). Nothing is saved if
// fn returns an error.
func Edit(path string, opts Options, fn func(doc *models.Document) error) error {
	f, err := Open(path, opts)
	if err != nil {
		return err
	}
	defer f.Close()

	doc, err := Load(f)
	if err != nil {
		return err
	}

	if err := fn(doc); err != nil {
		return err
	}

	if err := Flush(f, doc); err != nil {
		return err
	}

	if err := f.SaveAs(opts.SavePath(path), opts.excelizeOptions()); err != nil {
		return fmt.Errorf("save %s: %w", opts.SavePath(path), err)
	}
	return nil
}
