package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/ukaji3/cellkit-go/pkg/cellkit"
	"github.com/ukaji3/cellkit-go/pkg/cellkit/models"
	"github.com/ukaji3/cellkit-go/pkg/cellkit/output"
	"github.com/ukaji3/cellkit-go/pkg/cellkit/plan"
)

func newDumpCommand() *cobra.Command {
	var (
		jsonPath  string
		pretty    bool
		sheetName string
	)

	cmd := &cobra.Command{
		Use:   "dump FILE",
		Short: "Print the document tree of a workbook as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := cellkit.Read(args[0], options())
			if err != nil {
				return fmt.Errorf("read failed: %w", err)
			}

			// Serialize to JSON
			var jsonData []byte
			if sheetName != "" {
				sheet, err := cellkit.RequireSheet(doc, sheetName)
				if err != nil {
					return err
				}
				jsonData, err = output.SheetToJSON(doc, sheet, pretty)
				if err != nil {
					return fmt.Errorf("serialization failed: %w", err)
				}
			} else {
				jsonData, err = output.ToJSON(doc, pretty)
				if err != nil {
					return fmt.Errorf("serialization failed: %w", err)
				}
			}

			// Write output
			if jsonPath != "" {
				if err := os.WriteFile(jsonPath, jsonData, 0644); err != nil {
					return fmt.Errorf("failed to write output: %w", err)
				}
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(jsonData))
			return nil
		},
	}

	cmd.Flags().StringVarP(&jsonPath, "output", "o", "", "Output file path (default: stdout)")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	cmd.Flags().StringVar(&sheetName, "sheet", "", "Dump a single sheet")

	return cmd
}

func newSetCommand() *cobra.Command {
	var (
		sheetName string
		ref       string
		dataType  string
		value     string
		style     int
		shared    bool
	)

	cmd := &cobra.Command{
		Use:   "set FILE",
		Short: "Write a value to a cell",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			column, row, err := cellkit.SplitReference(ref)
			if err != nil {
				return err
			}

			var stylePtr *int
			if cmd.Flags().Changed("style") {
				stylePtr = &style
			}

			return edit(args[0], sheetName, func(doc *models.Document) error {
				if shared {
					if err := cellkit.SetSharedString(doc, sheetName, row, column, value); err != nil {
						return err
					}
					if sheet, ok := cellkit.FindSheet(doc, sheetName); ok && stylePtr != nil {
						if cell, ok := cellkit.FindCell(sheet, row, column); ok {
							cell.Style = stylePtr
							cell.StyleDirty = true
						}
					}
					return nil
				}
				return cellkit.UpdateCell(doc, sheetName, row, column, models.CellType(dataType), value, stylePtr)
			})
		},
	}

	cmd.Flags().StringVar(&sheetName, "sheet", "", "Sheet name")
	cmd.Flags().StringVar(&ref, "cell", "", "Cell reference, e.g. B2")
	cmd.Flags().StringVar(&dataType, "type", "", "Cell data type: n, s, str, inlineStr, b, e, d (default: number)")
	cmd.Flags().StringVar(&value, "value", "", "Cell value")
	cmd.Flags().IntVar(&style, "style", 0, "Style index")
	cmd.Flags().BoolVar(&shared, "shared", false, "Store the value in the shared-string table")
	_ = cmd.MarkFlagRequired("sheet")
	_ = cmd.MarkFlagRequired("cell")

	return cmd
}

func newMergeCommand() *cobra.Command {
	var sheetName string

	cmd := &cobra.Command{
		Use:   "merge FILE REF1 REF2",
		Short: "Merge two cells into one region",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return edit(args[0], sheetName, func(doc *models.Document) error {
				return cellkit.MergeTwoCells(doc, sheetName, args[1], args[2])
			})
		},
	}

	cmd.Flags().StringVar(&sheetName, "sheet", "", "Sheet name")
	_ = cmd.MarkFlagRequired("sheet")

	return cmd
}

func newCopyStyleCommand() *cobra.Command {
	var (
		sheetName string
		ref       string
		fromSheet string
		fromRef   string
	)

	cmd := &cobra.Command{
		Use:   "copy-style FILE",
		Short: "Copy the style of a template cell to a cell",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			column, row, err := cellkit.SplitReference(ref)
			if err != nil {
				return err
			}
			templateColumn, templateRow, err := cellkit.SplitReference(fromRef)
			if err != nil {
				return err
			}
			if fromSheet == "" {
				fromSheet = sheetName
			}

			return edit(args[0], sheetName, func(doc *models.Document) error {
				return cellkit.CopyCellStyle(doc, sheetName, row, column, fromSheet, templateRow, templateColumn)
			})
		},
	}

	cmd.Flags().StringVar(&sheetName, "sheet", "", "Target sheet name")
	cmd.Flags().StringVar(&ref, "cell", "", "Target cell reference")
	cmd.Flags().StringVar(&fromSheet, "from-sheet", "", "Template sheet name (default: target sheet)")
	cmd.Flags().StringVar(&fromRef, "from-cell", "", "Template cell reference")
	_ = cmd.MarkFlagRequired("sheet")
	_ = cmd.MarkFlagRequired("cell")
	_ = cmd.MarkFlagRequired("from-cell")

	return cmd
}

func newAddSheetCommand() *cobra.Command {
	var text string

	cmd := &cobra.Command{
		Use:   "add-sheet FILE",
		Short: "Append a new worksheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var sheet *models.Sheet
			err := cellkit.Edit(args[0], options(), func(doc *models.Document) error {
				if cmd.Flags().Changed("text") {
					sheet = cellkit.InsertText(doc, text)
				} else {
					sheet = cellkit.InsertWorksheet(doc)
				}
				return nil
			})
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), sheet.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "Write this text to A1 of the new sheet")

	return cmd
}

func newApplyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "apply FILE PLAN.yaml",
		Short: "Apply a YAML edit plan to a workbook",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := plan.LoadFile(args[1])
			if err != nil {
				return err
			}

			var result *plan.Result
			err = cellkit.Edit(args[0], options(), func(doc *models.Document) error {
				var applyErr error
				result, applyErr = plan.Apply(doc, p, logger)
				return applyErr
			})
			if err != nil {
				return err
			}

			logger.Info("plan applied", "applied", result.Applied, "skipped", result.Skipped)
			return nil
		},
	}
}

// edit runs fn in a scoped edit of path. A missing sheet is logged at warn
// level; the library leaves the document unchanged in that case.
func edit(path, sheetName string, fn func(doc *models.Document) error) error {
	return cellkit.Edit(path, options(), func(doc *models.Document) error {
		if _, ok := cellkit.FindSheet(doc, sheetName); !ok {
			logger.Warn("sheet not found, nothing changed", "sheet", sheetName)
		}
		if err := fn(doc); err != nil {
			return err
		}
		logger.Debug("edit applied", "file", path, "sheet", sheetName)
		return nil
	})
}
