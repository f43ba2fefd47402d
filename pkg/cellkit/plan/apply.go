package plan

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/ukaji3/cellkit-go/pkg/cellkit"
	"github.com/ukaji3/cellkit-go/pkg/cellkit/models"
)

// Result counts the outcome of applying a plan.
type Result struct {
	// Applied is the number of steps that changed the document.
	Applied int
	// Skipped is the number of steps whose target sheet does not exist.
	Skipped int
	// Sheets lists the names of sheets the plan inserted.
	Sheets []string
}

// Apply runs the plan's steps against doc in order and stops at the first
// failing step. Steps aimed at a missing sheet change nothing and are
// logged at warn level. A nil logger discards log output.
func Apply(doc *models.Document, p *Plan, logger *slog.Logger) (*Result, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	result := &Result{}
	for i, step := range p.Steps {
		log := logger.With("step", i+1, "op", step.Op)

		if needsSheet(step.Op) {
			if _, ok := cellkit.FindSheet(doc, step.Sheet); !ok {
				log.Warn("sheet not found, step skipped", "sheet", step.Sheet)
				result.Skipped++
				continue
			}
		}

		sheet, err := applyStep(doc, step)
		if err != nil {
			return result, fmt.Errorf("step %d (%s): %w", i+1, step.Op, err)
		}
		if sheet != nil {
			result.Sheets = append(result.Sheets, sheet.Name)
			log.Info("sheet inserted", "sheet", sheet.Name, "id", sheet.ID)
		} else {
			log.Debug("step applied", "sheet", step.Sheet)
		}
		result.Applied++
	}

	return result, nil
}

// applyStep runs one step. It returns the inserted sheet for the steps that
// insert one.
func applyStep(doc *models.Document, step Step) (*models.Sheet, error) {
	switch step.Op {
	case OpSet:
		column, row, err := cellkit.SplitReference(step.Cell)
		if err != nil {
			return nil, err
		}
		if step.TemplateSheet != "" {
			templateColumn, templateRow, err := cellkit.SplitReference(step.TemplateCell)
			if err != nil {
				return nil, err
			}
			return nil, cellkit.UpdateCellLike(doc, step.Sheet, row, column, models.CellType(step.Type), step.Value,
				step.TemplateSheet, templateRow, templateColumn)
		}
		return nil, cellkit.UpdateCell(doc, step.Sheet, row, column, models.CellType(step.Type), step.Value, step.Style)

	case OpSetString:
		column, row, err := cellkit.SplitReference(step.Cell)
		if err != nil {
			return nil, err
		}
		if err := cellkit.SetSharedString(doc, step.Sheet, row, column, step.Value); err != nil {
			return nil, err
		}
		if step.TemplateSheet != "" {
			templateColumn, templateRow, err := cellkit.SplitReference(step.TemplateCell)
			if err != nil {
				return nil, err
			}
			return nil, cellkit.CopyCellStyle(doc, step.Sheet, row, column, step.TemplateSheet, templateRow, templateColumn)
		}
		return nil, nil

	case OpMerge:
		return nil, cellkit.MergeTwoCells(doc, step.Sheet, step.From, step.To)

	case OpCopyStyle:
		column, row, err := cellkit.SplitReference(step.Cell)
		if err != nil {
			return nil, err
		}
		templateColumn, templateRow, err := cellkit.SplitReference(step.TemplateCell)
		if err != nil {
			return nil, err
		}
		return nil, cellkit.CopyCellStyle(doc, step.Sheet, row, column, step.TemplateSheet, templateRow, templateColumn)

	case OpAddSheet:
		return cellkit.InsertWorksheet(doc), nil

	case OpInsertText:
		return cellkit.InsertText(doc, step.Value), nil

	default:
		return nil, fmt.Errorf("%w: unknown op %q", ErrInvalidPlan, step.Op)
	}
}

func needsSheet(op string) bool {
	switch op {
	case OpAddSheet, OpInsertText:
		return false
	default:
		return true
	}
}
