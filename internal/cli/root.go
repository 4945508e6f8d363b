// Package cli provides the Cobra command structure for codesurface.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/codesurface/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root codesurface command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "codesurface",
		Short: "Render and diff collapsible code surfaces",
		Long: `codesurface turns token streams into collapsible code surfaces.

A surface is a tree of foldable sections built from a stored token stream
(JSON or YAML), a Markdown file or a plain source file. codesurface flattens
surfaces into numbered display lines, expands detached leaf sections and
diffs two versions of a surface section by section.`,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
			cmd.SetContext(logging.WithLogger(cmd.Context(), logging.Default()))
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})

	rootCmd.AddCommand(newRenderCommand())
	rootCmd.AddCommand(newExpandCommand())
	rootCmd.AddCommand(newDiffCommand())
	rootCmd.AddCommand(newSectionsCommand())
	rootCmd.AddCommand(newBatchCommand())
	rootCmd.AddCommand(newConvertCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newConfigCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	helpFormatter := NewHelpFormatter(color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}
