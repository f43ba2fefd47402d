// Package main provides the CLI entry point for cellkit-go.
package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/ukaji3/cellkit-go/pkg/cellkit"
)

var (
	password   string
	outputPath string
	create     bool
	verbose    bool

	logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "cellkit",
		Short: "Inspect and edit cells of Excel workbooks",
		Long: `cellkit-go reads xlsx workbooks into a document tree, edits cells,
shared strings, styles and merge regions, and saves the result.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		},
	}

	rootCmd.PersistentFlags().StringVar(&password, "password", "", "Password of an encrypted workbook")
	rootCmd.PersistentFlags().StringVar(&outputPath, "out", "", "Save the edited workbook to this path (default: in place)")
	rootCmd.PersistentFlags().BoolVar(&create, "create", false, "Start a new workbook if the input file does not exist")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log every applied operation")

	rootCmd.AddCommand(
		newDumpCommand(),
		newSetCommand(),
		newMergeCommand(),
		newCopyStyleCommand(),
		newAddSheetCommand(),
		newApplyCommand(),
	)

	return rootCmd
}

// options builds library options from the global flags.
func options() cellkit.Options {
	opts := cellkit.DefaultOptions()
	opts.Password = password
	opts.OutputPath = outputPath
	opts.Create = create
	return opts
}
