package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/yaklabco/codesurface/internal/logging"
	"github.com/yaklabco/codesurface/pkg/config"
	"github.com/yaklabco/codesurface/pkg/reporter"
)

// ErrUnknownLeafSection is returned when expand names an index the
// surface does not store.
var ErrUnknownLeafSection = errors.New("unknown leaf section")

func newRenderCommand() *cobra.Command {
	flags := &surfaceFlags{}

	cmd := &cobra.Command{
		Use:   "render FILE",
		Short: "Render a surface as numbered display lines",
		Long: `Build the section tree of a surface and flatten it into display lines.

FILE is a stored surface document (.json, .yaml, .yml), a Markdown file or
a plain source file. Markdown and source files are translated on the fly.

Examples:
  codesurface render api.json                 Render a stored surface
  codesurface render README.md --max-depth 2  Detach sections below level 2
  codesurface render main.go --format html    Emit an HTML table fragment`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args[0], flags)
		},
	}

	flags.register(cmd)
	return cmd
}

func runRender(cmd *cobra.Command, path string, flags *surfaceFlags) error {
	cfg, err := loadConfig(cmd, func(cfg *config.Config) { flags.apply(cmd, cfg) })
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)
	s, err := openSurface(ctx, path, cfg)
	if err != nil {
		return err
	}

	lines := s.Render()
	logging.FromContext(ctx).Debug("rendered surface",
		logging.FieldName, s.Name(),
		logging.FieldLines, len(lines),
	)

	return report(cmd, cfg, flags, reporter.NewRenderDocument(s.Name(), lines))
}

func newExpandCommand() *cobra.Command {
	flags := &surfaceFlags{}

	cmd := &cobra.Command{
		Use:   "expand FILE INDEX",
		Short: "Render one detached leaf section",
		Long: `Render the leaf section stored at INDEX on its own.

Leaf sections are the sections a translator or the --max-depth and
--max-lines limits detached from the tree. Their placeholders print as
"leaf section N" in rendered output.

Examples:
  codesurface expand api.json 0
  codesurface expand README.md 3 --max-depth 1`,
		Args: exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[1])
			if err != nil || index < 0 {
				return usageError(fmt.Errorf("leaf section index %q must be a non-negative integer", args[1]))
			}
			return runExpand(cmd, args[0], index, flags)
		},
	}

	flags.register(cmd)
	return cmd
}

func runExpand(cmd *cobra.Command, path string, index int, flags *surfaceFlags) error {
	cfg, err := loadConfig(cmd, func(cfg *config.Config) { flags.apply(cmd, cfg) })
	if err != nil {
		return err
	}

	s, err := openSurface(commandContext(cmd), path, cfg)
	if err != nil {
		return err
	}

	lines := s.ExpandLeaf(index)
	if lines == nil {
		return fmt.Errorf("%w: %s has no leaf section %d", ErrUnknownLeafSection, path, index)
	}

	name := fmt.Sprintf("%s#%d", s.Name(), index)
	return report(cmd, cfg, flags, reporter.NewRenderDocument(name, lines))
}

// exactArgs is cobra.ExactArgs reporting mistakes as usage errors.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		return usageError(cobra.ExactArgs(n)(cmd, args))
	}
}
