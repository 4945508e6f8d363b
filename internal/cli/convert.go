package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/codesurface/internal/logging"
	"github.com/yaklabco/codesurface/pkg/config"
	"github.com/yaklabco/codesurface/pkg/fsutil"
	"github.com/yaklabco/codesurface/pkg/surface"
)

// documentFilePermissions is the file mode for written surface documents.
const documentFilePermissions = 0o644

type convertFlags struct {
	output string
	format string
	flavor string
	name   string
}

func newConvertCommand() *cobra.Command {
	flags := &convertFlags{}

	cmd := &cobra.Command{
		Use:   "convert FILE",
		Short: "Translate a Markdown or source file into a surface document",
		Long: `Translate FILE into a stored surface document.

Markdown headings become sections nested by level and fenced code blocks
become sections headed by their language. Other files are folded by
braces or indentation according to their detected language.

The document is written as JSON or YAML. An existing output file is only
rewritten when its content changes.

Examples:
  codesurface convert README.md -o readme.json
  codesurface convert main.go --format yaml
  codesurface convert notes.md --flavor commonmark -o notes.yaml`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVar(&flags.format, "format", "", "document format: json or yaml (default: from --output, else json)")
	cmd.Flags().StringVar(&flags.flavor, "flavor", "gfm", "Markdown flavor: commonmark, gfm")
	cmd.Flags().StringVar(&flags.name, "name", "", "document name (default: the file's base name)")

	return cmd
}

func runConvert(cmd *cobra.Command, path string, flags *convertFlags) error {
	cfg, err := loadConfig(cmd, func(cfg *config.Config) {
		if cmd.Flags().Changed("flavor") {
			cfg.Convert.Flavor = config.Flavor(flags.flavor)
		}
	})
	if err != nil {
		return err
	}

	format, err := documentFormat(flags)
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	content, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return err
	}

	doc, err := translateDocument(ctx, path, content, cfg.Convert.Flavor)
	if err != nil {
		return err
	}
	if flags.name != "" {
		doc.Name = flags.name
	}

	encoded, err := surface.Marshal(doc, format)
	if err != nil {
		return err
	}

	if flags.output == "" || flags.output == "-" {
		_, err := cmd.OutOrStdout().Write(encoded)
		return err
	}

	written, err := fsutil.WriteAtomicIfChanged(ctx, flags.output, encoded, documentFilePermissions)
	if err != nil {
		return fmt.Errorf("write %s: %w", flags.output, err)
	}
	if written {
		logger.Info("wrote surface document",
			logging.FieldInput, path,
			logging.FieldOutput, flags.output,
			"tokens", len(doc.Tokens),
		)
	} else {
		logger.Info("surface document unchanged", logging.FieldOutput, flags.output)
	}
	return nil
}

func documentFormat(flags *convertFlags) (surface.Format, error) {
	switch flags.format {
	case "json":
		return surface.FormatJSON, nil
	case "yaml", "yml":
		return surface.FormatYAML, nil
	case "":
	default:
		return "", usageError(fmt.Errorf("invalid format %q: must be json or yaml", flags.format))
	}

	if flags.output == "" || flags.output == "-" {
		return surface.FormatJSON, nil
	}
	format, err := surface.FormatFromPath(flags.output)
	if err != nil {
		return "", usageError(err)
	}
	return format, nil
}
