package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/codesurface/internal/logging"
	"github.com/yaklabco/codesurface/pkg/config"
	"github.com/yaklabco/codesurface/pkg/fsutil"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0o644

// defaultConfigFile is the project configuration written by init.
const defaultConfigFile = ".codesurface.yml"

type initFlags struct {
	force    bool
	resolved bool
	output   string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new codesurface configuration file",
		Long: `Create a .codesurface.yml configuration file in the current directory.

The default file documents every setting with its default value. With
--resolved the file instead holds the configuration currently in effect,
after user and system files and CODESURFACE_* variables are applied.

Examples:
  codesurface init                        Create .codesurface.yml
  codesurface init --resolved             Snapshot the effective settings
  codesurface init --output custom.yml    Write to a custom file path`,
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite an existing configuration file")
	cmd.Flags().BoolVar(&flags.resolved, "resolved", false, "write the effective configuration instead of the defaults")
	cmd.Flags().StringVarP(&flags.output, "output", "o", defaultConfigFile, "output file path")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	absPath, err := filepath.Abs(flags.output)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if _, err := os.Stat(absPath); err == nil {
		if !flags.force {
			return usageError(fmt.Errorf("file %q already exists; use --force to overwrite", flags.output))
		}
		logger.Warn("overwriting existing file", logging.FieldPath, flags.output)
	}

	content := config.Template()
	if flags.resolved {
		cfg, err := loadConfig(cmd, nil)
		if err != nil {
			return err
		}
		content, err = cfg.ToYAMLWithHeader("# codesurface configuration (resolved)\n")
		if err != nil {
			return err
		}
	}

	if err := fsutil.WriteAtomic(ctx, absPath, content, configFilePermissions); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	logger.Info("created configuration file", logging.FieldPath, flags.output)
	logger.Info("run 'codesurface config show' to see the effective settings")
	return nil
}
