package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/codesurface/internal/logging"
	"github.com/yaklabco/codesurface/internal/ui/pretty"
	"github.com/yaklabco/codesurface/pkg/config"
	"github.com/yaklabco/codesurface/pkg/fsutil"
	"github.com/yaklabco/codesurface/pkg/reporter"
	"github.com/yaklabco/codesurface/pkg/runner"
	"github.com/yaklabco/codesurface/pkg/surface"
)

type batchFlags struct {
	surfaceFlags
	jobs       int
	pairs      []string
	beforeDir  string
	afterDir   string
	extensions []string
	exclude    []string
	exitCode   bool
	quiet      bool
}

func newBatchCommand() *cobra.Command {
	flags := &batchFlags{}

	cmd := &cobra.Command{
		Use:   "batch [paths...]",
		Short: "Render and diff many surfaces concurrently",
		Long: `Render and diff many independent surfaces on a bounded worker pool.

Every path argument is rendered; directories are searched recursively for
documents with the selected extensions. Each --pair BEFORE=AFTER is diffed,
and --before-dir with --after-dir diffs every document of the two trees
matched by relative path. A document present in one tree only is diffed
against an empty surface.

Results print in the order the jobs were given, whatever order the workers
finish in. A failing job is reported and does not stop the others.

Examples:
  codesurface batch surfaces/
  codesurface batch --pair v1/a.json=v2/a.json --pair v1/b.json=v2/b.json
  codesurface batch --before-dir v1 --after-dir v2 --format summary
  codesurface batch docs/ --ext .md --jobs 4`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, args, flags)
		},
	}

	flags.register(cmd)
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringArrayVar(&flags.pairs, "pair", nil, "diff BEFORE=AFTER (repeatable)")
	cmd.Flags().StringVar(&flags.beforeDir, "before-dir", "", "old side of a directory diff")
	cmd.Flags().StringVar(&flags.afterDir, "after-dir", "", "new side of a directory diff")
	cmd.Flags().StringSliceVar(&flags.extensions, "ext", nil, "file extensions to collect from directories (default .json,.yaml,.yml)")
	cmd.Flags().StringSliceVar(&flags.exclude, "exclude", nil, "glob patterns to skip in directories")
	cmd.Flags().BoolVar(&flags.exitCode, "exit-code", false, "exit with status 1 when any diff found changes")
	cmd.Flags().BoolVarP(&flags.quiet, "quiet", "q", false, "print only the batch summary")

	return cmd
}

func runBatch(cmd *cobra.Command, args []string, flags *batchFlags) (err error) {
	if (flags.beforeDir == "") != (flags.afterDir == "") {
		return usageError(fmt.Errorf("--before-dir and --after-dir must be given together"))
	}
	if len(args) == 0 && len(flags.pairs) == 0 && flags.beforeDir == "" {
		return usageError(fmt.Errorf("nothing to do: give paths, --pair or --before-dir/--after-dir"))
	}

	cfg, err := loadConfig(cmd, func(cfg *config.Config) {
		flags.apply(cmd, cfg)
		if cmd.Flags().Changed("jobs") {
			cfg.Jobs = flags.jobs
		}
	})
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	opts := runner.Options{
		Jobs: cfg.Jobs,
		Load: func(ctx context.Context, path string) (*surface.Surface, error) {
			return openSurface(ctx, path, cfg)
		},
		Extensions:   normalizeExtensions(flags.extensions),
		ExcludeGlobs: flags.exclude,
	}

	jobs, err := collectJobs(ctx, args, flags, opts)
	if err != nil {
		return err
	}

	logger.Debug("starting batch run",
		logging.FieldPaths, args,
		logging.FieldJobsTotal, len(jobs),
		logging.FieldJobs, opts.Jobs,
	)

	result, err := runner.New(opts).Run(ctx, jobs)
	if err != nil {
		return fmt.Errorf("batch run: %w", err)
	}

	out := fsutil.OpenOutput(ctx, flags.output, cmd.OutOrStdout())
	defer func() {
		if closeErr := out.Close(); err == nil {
			err = closeErr
		}
	}()

	if err := reportBatch(cmd, cfg, flags, out, result); err != nil {
		return err
	}

	if result.HasFailures() {
		for _, o := range result.Outcomes {
			if o.Err != nil {
				logger.Error("job failed", logging.FieldName, o.Job.Label(), logging.FieldError, o.Err)
			}
		}
		return fmt.Errorf("%d of %d jobs failed", result.Stats.Failed, result.Stats.Jobs)
	}
	if flags.exitCode && result.HasChanges() {
		return ErrDifferencesFound
	}
	return nil
}

func collectJobs(ctx context.Context, args []string, flags *batchFlags, opts runner.Options) ([]runner.Job, error) {
	var jobs []runner.Job

	if len(args) > 0 {
		found, err := runner.Discover(ctx, args, opts)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, found...)
	}

	for _, pair := range flags.pairs {
		before, after, ok := strings.Cut(pair, "=")
		if !ok || (before == "" && after == "") {
			return nil, usageError(fmt.Errorf("--pair %q must have the form BEFORE=AFTER", pair))
		}
		jobs = append(jobs, runner.Job{Mode: runner.ModeDiff, Before: before, After: after})
	}

	if flags.beforeDir != "" {
		paired, err := runner.PairDirs(ctx, flags.beforeDir, flags.afterDir, opts)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, paired...)
	}

	return jobs, nil
}

func reportBatch(cmd *cobra.Command, cfg *config.Config, flags *batchFlags, out *fsutil.Output, result *runner.Result) error {
	ctx := commandContext(cmd)

	w := cmd.OutOrStdout()
	if out.Path() != "" {
		w = out
	}

	if !flags.quiet {
		rep, err := newReporter(cfg, w, !flags.noSummary)
		if err != nil {
			return err
		}
		for _, o := range result.Outcomes {
			if o.Err != nil {
				continue
			}
			if err := rep.Report(ctx, outcomeDocument(o)); err != nil {
				return fmt.Errorf("report %s: %w", o.Job.Label(), err)
			}
		}
	}

	switch cfg.Output.Format {
	case config.FormatText, config.FormatSummary:
		colored := out.Path() == "" && pretty.IsColorEnabled(string(cfg.Output.Color), cmd.OutOrStdout())
		fmt.Fprint(w, pretty.NewStyles(colored).FormatBatchSummary(result.Stats))
	}
	return nil
}

func outcomeDocument(o runner.Outcome) *reporter.Document {
	if o.Job.Mode == runner.ModeDiff {
		return reporter.NewDiffDocument(o.Job.Label(), o.Diff, o.Sections)
	}
	return reporter.NewRenderDocument(o.Job.Label(), o.Lines)
}

// normalizeExtensions lowercases extensions and adds the leading dot.
func normalizeExtensions(exts []string) []string {
	if len(exts) == 0 {
		return nil
	}
	normalized := make([]string, 0, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		normalized = append(normalized, ext)
	}
	return normalized
}
