package reporter

import (
	"context"
	"fmt"
	"io"

	"github.com/yaklabco/codesurface/internal/ui/pretty"
)

// SummaryReporter prints one line of statistics per document.
type SummaryReporter struct {
	opts   Options
	styles *pretty.Styles
	out    io.Writer
}

// NewSummaryReporter creates a new summary reporter.
func NewSummaryReporter(opts Options) *SummaryReporter {
	return &SummaryReporter{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		out:    opts.Writer,
	}
}

// Report implements Reporter.
func (r *SummaryReporter) Report(_ context.Context, doc *Document) error {
	if doc == nil {
		return nil
	}

	var line string
	if doc.IsDiff() {
		line = r.styles.FormatDiffOneLine(doc.Stats, len(doc.Sections))
	} else {
		line = r.styles.FormatRenderOneLine(len(doc.Lines), countPlaceholders(doc.Lines))
	}
	if doc.Name != "" {
		line = r.styles.FilePath.Render(doc.Name) + ": " + line
	}

	if _, err := io.WriteString(r.out, line); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	return nil
}
