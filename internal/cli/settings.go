package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/codesurface/internal/configloader"
	"github.com/yaklabco/codesurface/internal/logging"
	"github.com/yaklabco/codesurface/pkg/config"
	"github.com/yaklabco/codesurface/pkg/fsutil"
	"github.com/yaklabco/codesurface/pkg/reporter"
	"github.com/yaklabco/codesurface/pkg/surface"
	"github.com/yaklabco/codesurface/pkg/translate/markdown"
	"github.com/yaklabco/codesurface/pkg/translate/source"
)

// surfaceFlags are the rendering and output flags shared by the commands
// that print surfaces. Only flags set on the command line override the
// loaded configuration.
type surfaceFlags struct {
	format     string
	mode       string
	maxDepth   int
	maxLines   int
	width      int
	showHidden bool
	lazyLeaves bool
	flavor     string
	output     string
	noSummary  bool
}

func (f *surfaceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.format, "format", "text", "output format: text, json, yaml, html, summary")
	cmd.Flags().StringVar(&f.mode, "mode", "text", "line rendering: text or markup")
	cmd.Flags().IntVar(&f.maxDepth, "max-depth", 0, "detach sections nested deeper than this (0 = never)")
	cmd.Flags().IntVar(&f.maxLines, "max-lines", 0, "detach sections longer than this (0 = never)")
	cmd.Flags().IntVar(&f.width, "width", 0, "truncate text output to this many columns")
	cmd.Flags().BoolVar(&f.showHidden, "show-hidden", true, "print lines that start collapsed")
	cmd.Flags().BoolVar(&f.lazyLeaves, "lazy-leaves", false, "keep leaf placeholders collapsed")
	cmd.Flags().StringVar(&f.flavor, "flavor", "gfm", "Markdown flavor for .md inputs: commonmark, gfm")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "write output to this file instead of stdout")
	cmd.Flags().BoolVar(&f.noSummary, "no-summary", false, "omit the summary line from text output")
}

// apply copies changed flags onto cfg.
func (f *surfaceFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("format") {
		cfg.Output.Format = config.OutputFormat(f.format)
	}
	if flags.Changed("mode") {
		cfg.Render.Mode = config.Mode(f.mode)
	}
	if flags.Changed("max-depth") {
		cfg.Render.MaxDepth = f.maxDepth
	}
	if flags.Changed("max-lines") {
		cfg.Render.MaxLines = f.maxLines
	}
	if flags.Changed("width") {
		cfg.Output.Width = f.width
	}
	if flags.Changed("show-hidden") {
		cfg.Output.ShowHidden = f.showHidden
	}
	if flags.Changed("lazy-leaves") {
		cfg.Render.LazyLeaves = f.lazyLeaves
	}
	if flags.Changed("flavor") {
		cfg.Convert.Flavor = config.Flavor(f.flavor)
	}
}

// loadConfig resolves the configuration for cmd. overrides applies
// command flags on top of files and environment.
func loadConfig(cmd *cobra.Command, overrides func(*config.Config)) (*config.Config, error) {
	result, err := resolveConfig(cmd, overrides)
	if err != nil {
		return nil, err
	}
	return result.Config, nil
}

func resolveConfig(cmd *cobra.Command, overrides func(*config.Config)) (*configloader.LoadResult, error) {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	result, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		Overrides: func(cfg *config.Config) {
			if cmd.Flags().Changed("color") {
				color, _ := cmd.Flags().GetString("color")
				cfg.Output.Color = config.ColorMode(color)
			}
			if overrides != nil {
				overrides(cfg)
			}
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}

	for _, warning := range result.Warnings {
		logger.Warn(warning)
	}
	if len(result.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", "files", result.LoadedFrom)
	}

	cfg := result.Config
	logger.Debug("configuration loaded",
		logging.FieldFormat, cfg.Output.Format,
		logging.FieldMode, cfg.Render.Mode,
		logging.FieldMaxDepth, cfg.Render.MaxDepth,
		logging.FieldMaxLines, cfg.Render.MaxLines,
		logging.FieldJobs, cfg.Jobs,
	)
	return result, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// surfaceOptions returns the surface options selected by cfg.
func surfaceOptions(cfg *config.Config, logger *log.Logger) []surface.Option {
	opts := []surface.Option{
		surface.WithSectionOptions(cfg.SectionOptions()),
		surface.WithLogger(logger),
	}
	if cfg.Render.LazyLeaves {
		opts = append(opts, surface.WithLazyLeaves())
	}
	return opts
}

// openSurface loads path as a surface. Stored documents (.json, .yaml,
// .yml) are decoded; anything else is translated first.
func openSurface(ctx context.Context, path string, cfg *config.Config) (*surface.Surface, error) {
	logger := logging.FromContext(ctx)

	var doc *surface.Document
	if _, err := surface.FormatFromPath(path); err == nil {
		doc, err = surface.Load(path)
		if err != nil {
			return nil, err
		}
	} else {
		content, err := fsutil.ReadFile(ctx, path)
		if err != nil {
			return nil, err
		}
		doc, err = translateDocument(ctx, path, content, cfg.Convert.Flavor)
		if err != nil {
			return nil, err
		}
	}

	logger.Debug("opened surface",
		logging.FieldPath, path,
		logging.FieldName, doc.Name,
	)
	return surface.New(doc, surfaceOptions(cfg, logger)...), nil
}

// translateDocument converts a Markdown or source file into a document.
func translateDocument(ctx context.Context, path string, content []byte, flavor config.Flavor) (*surface.Document, error) {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		tokens, err := markdown.New(string(flavor)).Translate(ctx, content)
		if err != nil {
			return nil, fmt.Errorf("translate %s: %w", path, err)
		}
		return &surface.Document{Name: name, Language: "markdown", Tokens: tokens}, nil
	default:
		result, err := source.Translate(ctx, path, content)
		if err != nil {
			return nil, fmt.Errorf("translate %s: %w", path, err)
		}
		return &surface.Document{Name: name, Language: result.Language, Tokens: result.Tokens}, nil
	}
}

// report writes doc with the reporter selected by cfg, to stdout or the
// --output file.
func report(cmd *cobra.Command, cfg *config.Config, flags *surfaceFlags, doc *reporter.Document) (err error) {
	ctx := commandContext(cmd)

	out := fsutil.OpenOutput(ctx, flags.output, cmd.OutOrStdout())
	defer func() {
		if closeErr := out.Close(); err == nil {
			err = closeErr
		}
	}()

	var w io.Writer = out
	if out.Path() == "" {
		w = cmd.OutOrStdout()
	}

	rep, err := newReporter(cfg, w, !flags.noSummary)
	if err != nil {
		return err
	}
	if err := rep.Report(ctx, doc); err != nil {
		return fmt.Errorf("report: %w", err)
	}

	if out.Path() != "" {
		logging.FromContext(ctx).Debug("wrote output", logging.FieldOutput, out.Path())
	}
	return nil
}

func newReporter(cfg *config.Config, w io.Writer, summary bool) (reporter.Reporter, error) {
	format, err := reporter.ParseFormat(string(cfg.Output.Format))
	if err != nil {
		return nil, usageError(err)
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      w,
		Format:      format,
		Color:       string(cfg.Output.Color),
		Markup:      cfg.Render.Mode == config.ModeMarkup,
		Width:       cfg.Output.Width,
		ShowHidden:  cfg.Output.ShowHidden,
		ShowSummary: summary,
	})
	if err != nil {
		return nil, fmt.Errorf("create reporter: %w", err)
	}
	return rep, nil
}
