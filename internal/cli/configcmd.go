package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/codesurface/internal/configloader"
	"github.com/yaklabco/codesurface/internal/ui/pretty"
)

func newConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the effective configuration",
		Long: `Inspect how codesurface resolves its configuration.

Settings are layered, lowest precedence first: defaults, the system file,
the user file, the nearest project .codesurface.yml, the --config file,
CODESURFACE_* environment variables and command line flags.`,
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigPathsCommand())
	cmd.AddCommand(newConfigEnvCommand())
	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as YAML",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, err := resolveConfig(cmd, nil)
			if err != nil {
				return err
			}

			var header strings.Builder
			header.WriteString("# effective codesurface configuration\n")
			if len(result.LoadedFrom) == 0 {
				header.WriteString("# no configuration files found; showing defaults\n")
			}
			for _, path := range result.LoadedFrom {
				fmt.Fprintf(&header, "# loaded from %s\n", path)
			}

			content, err := result.Config.ToYAMLWithHeader(header.String())
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(content)
			return err
		},
	}
}

func newConfigPathsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "paths",
		Short: "List the configuration files codesurface looks for",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, err := resolveConfig(cmd, nil)
			if err != nil {
				return err
			}

			userDir := configloader.UserConfigDir()
			paths := result.Paths

			table := &pretty.Table{Headers: []string{"Layer", "File"}, Flex: 1}
			table.AddRow("system", orNone(paths.System))
			table.AddRow("user", orNone(paths.User))
			table.AddRow("project", orNone(paths.Project))
			table.AddRow("explicit", orNone(paths.Explicit))

			out := cmd.OutOrStdout()
			styles := pretty.NewStyles(pretty.IsColorEnabled(colorFlag(cmd), out))
			fmt.Fprint(out, styles.FormatTable(table))
			if userDir != "" {
				fmt.Fprintln(out, styles.Dim.Render("user config directory: "+userDir))
			}
			return nil
		},
	}
}

func newConfigEnvCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "env",
		Short: "List the supported CODESURFACE_* environment variables",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			table := &pretty.Table{Headers: []string{"Variable", "Setting", "Description"}, Flex: 2}
			for _, v := range configloader.ListEnvVars() {
				table.AddRow(v.Name, v.Field, v.Help)
			}

			out := cmd.OutOrStdout()
			styles := pretty.NewStyles(pretty.IsColorEnabled(colorFlag(cmd), out))
			fmt.Fprint(out, styles.FormatTable(table))
			return nil
		},
	}
}

func colorFlag(cmd *cobra.Command) string {
	color, err := cmd.Flags().GetString("color")
	if err != nil {
		return "auto"
	}
	return color
}

func orNone(path string) string {
	if path == "" {
		return "-"
	}
	return path
}
