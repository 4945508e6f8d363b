package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/yaklabco/codesurface/internal/logging"
	"github.com/yaklabco/codesurface/internal/ui/pretty"
	"github.com/yaklabco/codesurface/pkg/config"
	"github.com/yaklabco/codesurface/pkg/fsutil"
	"github.com/yaklabco/codesurface/pkg/reporter"
	"github.com/yaklabco/codesurface/pkg/surface"
	"github.com/yaklabco/codesurface/pkg/treediff"
)

type diffFlags struct {
	surfaceFlags
	exitCode bool
}

func newDiffCommand() *cobra.Command {
	flags := &diffFlags{}

	cmd := &cobra.Command{
		Use:   "diff BEFORE AFTER",
		Short: "Diff two versions of a surface section by section",
		Long: `Diff two versions of a surface.

Sections are aligned by heading and their contents are diffed recursively,
so a change deep inside a collapsed section marks its heading as changed
without expanding it. Lines keep the numbering of the side they come from.

Examples:
  codesurface diff v1.json v2.json
  codesurface diff old/README.md new/README.md --format json
  codesurface diff a.yaml b.yaml --exit-code   Exit 1 when anything changed`,
		Args: exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiff(cmd, args[0], args[1], flags)
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&flags.exitCode, "exit-code", false, "exit with status 1 when the surfaces differ")
	return cmd
}

func runDiff(cmd *cobra.Command, beforePath, afterPath string, flags *diffFlags) error {
	cfg, err := loadConfig(cmd, func(cfg *config.Config) { flags.apply(cmd, cfg) })
	if err != nil {
		return err
	}

	before, after, err := openPair(cmd, beforePath, afterPath, cfg)
	if err != nil {
		return err
	}

	doc := reporter.NewDiffDocument(diffName(beforePath, afterPath), after.RenderDiff(before), after.SectionsWithDiff(before))
	logging.FromContext(commandContext(cmd)).Debug("diffed surfaces",
		logging.FieldName, doc.Name,
		logging.FieldAdded, doc.Stats.Added,
		logging.FieldRemoved, doc.Stats.Removed,
		logging.FieldUnchanged, doc.Stats.Unchanged,
	)

	if err := report(cmd, cfg, &flags.surfaceFlags, doc); err != nil {
		return err
	}

	if flags.exitCode && doc.Stats.HasChanges() {
		return ErrDifferencesFound
	}
	return nil
}

func openPair(cmd *cobra.Command, beforePath, afterPath string, cfg *config.Config) (*surface.Surface, *surface.Surface, error) {
	ctx := commandContext(cmd)

	before, err := openSurface(ctx, beforePath, cfg)
	if err != nil {
		return nil, nil, err
	}
	after, err := openSurface(ctx, afterPath, cfg)
	if err != nil {
		return nil, nil, err
	}
	return before, after, nil
}

func diffName(beforePath, afterPath string) string {
	if beforePath == afterPath {
		return afterPath
	}
	return beforePath + " .. " + afterPath
}

func newSectionsCommand() *cobra.Command {
	flags := &surfaceFlags{}

	cmd := &cobra.Command{
		Use:   "sections BEFORE AFTER",
		Short: "List the sections of AFTER whose content changed",
		Long: `List the headings of AFTER whose section content differs from BEFORE.

Review pages use the list to flag collapsed sections that hide changes.
Text output is a table of line numbers and headings; json and yaml
output carry the line numbers as sectionsWithDiff.

Examples:
  codesurface sections v1.json v2.json
  codesurface sections v1.json v2.json --format json`,
		Args: exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSections(cmd, args[0], args[1], flags)
		},
	}

	flags.register(cmd)
	return cmd
}

func runSections(cmd *cobra.Command, beforePath, afterPath string, flags *surfaceFlags) (err error) {
	cfg, err := loadConfig(cmd, func(cfg *config.Config) { flags.apply(cmd, cfg) })
	if err != nil {
		return err
	}

	before, after, err := openPair(cmd, beforePath, afterPath, cfg)
	if err != nil {
		return err
	}

	changed := treediff.ChangedSections(after.Diff(before))

	switch cfg.Output.Format {
	case config.FormatJSON, config.FormatYAML:
		numbers := make([]int, 0, len(changed))
		for _, line := range changed {
			numbers = append(numbers, line.LineNumber)
		}
		doc := &reporter.Document{Name: diffName(beforePath, afterPath), Sections: numbers}
		return report(cmd, cfg, flags, doc)
	case config.FormatText:
	default:
		return usageError(fmt.Errorf("sections supports text, json and yaml output, not %q", cfg.Output.Format))
	}

	out := fsutil.OpenOutput(commandContext(cmd), flags.output, cmd.OutOrStdout())
	defer func() {
		if closeErr := out.Close(); err == nil {
			err = closeErr
		}
	}()

	styles := pretty.NewStyles(out.Path() == "" && pretty.IsColorEnabled(string(cfg.Output.Color), cmd.OutOrStdout()))

	if len(changed) == 0 {
		fmt.Fprintln(out, styles.Success.Render("No changed sections"))
		return nil
	}

	table := &pretty.Table{
		Headers: []string{"Line", "Section"},
		Flex:    1,
		Width:   cfg.Output.Width,
	}
	for _, line := range changed {
		table.AddRow(strconv.Itoa(line.LineNumber), line.Text)
	}
	fmt.Fprint(out, styles.FormatTable(table))
	return nil
}
