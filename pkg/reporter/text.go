package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yuin/goldmark/util"

	"github.com/yaklabco/codesurface/internal/ui/pretty"
	"github.com/yaklabco/codesurface/pkg/codeline"
	"github.com/yaklabco/codesurface/pkg/linediff"
	"github.com/yaklabco/codesurface/pkg/treediff"
)

// TextReporter prints a surface as styled terminal lines.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	width  int
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	width := opts.Width
	if width == 0 {
		width = pretty.TerminalWidth(opts.Writer)
	}
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		width:  width,
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(ctx context.Context, doc *Document) (err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if doc == nil {
		return nil
	}

	if doc.Name != "" {
		fmt.Fprintln(r.bw, r.styles.FilePath.Render(doc.Name))
	}

	if doc.IsDiff() {
		if err := r.reportDiff(ctx, doc.Diff); err != nil {
			return err
		}
		if r.opts.ShowSummary {
			fmt.Fprint(r.bw, r.styles.FormatDiffOneLine(doc.Stats, len(doc.Sections)))
		}
		return nil
	}

	if err := r.reportLines(ctx, doc.Lines); err != nil {
		return err
	}
	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatRenderOneLine(len(doc.Lines), countPlaceholders(doc.Lines)))
	}
	return nil
}

func (r *TextReporter) reportLines(ctx context.Context, lines []codeline.Line) error {
	layout := pretty.Layout{GutterWidth: pretty.GutterWidth(maxLineNumber(lines)), Width: r.width}

	for _, line := range lines {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !r.visible(line) {
			continue
		}
		fmt.Fprintln(r.bw, r.styles.FormatLine(r.view(line), layout))
	}
	return nil
}

func (r *TextReporter) reportDiff(ctx context.Context, diff []treediff.Line) error {
	maxNumber := 0
	for _, l := range diff {
		maxNumber = max(maxNumber, l.Value.LineNumber)
	}
	layout := pretty.Layout{GutterWidth: pretty.GutterWidth(maxNumber), Markers: true, Width: r.width}
	spans := r.inlineSpans(diff)

	for i, l := range diff {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !r.visible(l.Value) && l.Kind == linediff.Unchanged && !l.HasDescendantDiff {
			continue
		}

		view := r.view(l.Value)
		view.Kind = l.Kind
		view.Changed = l.HasDescendantDiff && l.Kind == linediff.Unchanged
		view.Spans = spans[i]
		fmt.Fprintln(r.bw, r.styles.FormatLine(view, layout))
	}
	return nil
}

// inlineSpans computes intra-line changes for each removed line paired
// with the added line that replaced it. Markup output is left unpaired.
func (r *TextReporter) inlineSpans(diff []treediff.Line) map[int][]linediff.Span {
	spans := make(map[int][]linediff.Span)
	if r.opts.Markup {
		return spans
	}
	for _, p := range linediff.Pairs(diff) {
		removed, added := diff[p.Removed].Value, diff[p.Added].Value
		if removed.Placeholder || added.Placeholder {
			continue
		}
		all := linediff.InlineSpans(removed.Text, added.Text)
		spans[p.Removed] = side(all, linediff.Removed)
		spans[p.Added] = side(all, linediff.Added)
	}
	return spans
}

// side keeps the spans visible on one side of a change.
func side(spans []linediff.Span, kind linediff.Kind) []linediff.Span {
	out := make([]linediff.Span, 0, len(spans))
	for _, s := range spans {
		if s.Kind == linediff.Unchanged || s.Kind == kind {
			out = append(out, s)
		}
	}
	return out
}

func (r *TextReporter) visible(line codeline.Line) bool {
	return r.opts.ShowHidden || !line.HasClass(codeline.HiddenClass)
}

func (r *TextReporter) view(line codeline.Line) pretty.LineView {
	_, heading := line.HeadingSection()
	return pretty.LineView{
		Number:        line.LineNumber,
		Text:          r.text(line),
		Indent:        line.Indent,
		Heading:       heading,
		Placeholder:   line.Placeholder,
		Hidden:        line.HasClass(codeline.HiddenClass),
		Documentation: line.Documentation,
		Deprecated:    line.Deprecated,
	}
}

func (r *TextReporter) text(line codeline.Line) string {
	if !r.opts.Markup || line.Placeholder {
		return line.Text
	}
	if line.Markup != "" {
		return line.Markup
	}
	return string(util.EscapeHTML([]byte(line.Text)))
}

func maxLineNumber(lines []codeline.Line) int {
	n := 0
	for _, l := range lines {
		n = max(n, l.LineNumber)
	}
	return n
}

func countPlaceholders(lines []codeline.Line) int {
	n := 0
	for _, l := range lines {
		if l.Placeholder {
			n++
		}
	}
	return n
}
