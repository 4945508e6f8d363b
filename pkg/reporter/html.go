package reporter

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/yuin/goldmark/util"

	"github.com/yaklabco/codesurface/pkg/codeline"
	"github.com/yaklabco/codesurface/pkg/linediff"
)

// Diff kind classes added to html rows.
const (
	classAdded   = "code-added"
	classRemoved = "code-removed"
	classChanged = "code-has-diff"
)

// HTMLReporter writes a surface as a table fragment for review pages. Row
// classes carry the section and hierarchy classes, so a page script can
// collapse and expand sections.
type HTMLReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewHTMLReporter creates a new HTML reporter.
func NewHTMLReporter(opts Options) *HTMLReporter {
	return &HTMLReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *HTMLReporter) Report(ctx context.Context, doc *Document) (err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if doc == nil {
		return nil
	}

	fmt.Fprintf(r.bw, "<table class=\"code-surface\" data-name=\"%s\">\n", escape(doc.Name))

	if doc.IsDiff() {
		for _, l := range doc.Diff {
			if err := ctx.Err(); err != nil {
				return err
			}
			r.row(l.Value, l.Kind, l.HasDescendantDiff && l.Kind == linediff.Unchanged)
		}
	} else {
		for _, l := range doc.Lines {
			if err := ctx.Err(); err != nil {
				return err
			}
			r.row(l, linediff.Unchanged, false)
		}
	}

	fmt.Fprintln(r.bw, "</table>")
	return nil
}

func (r *HTMLReporter) row(line codeline.Line, kind linediff.Kind, changed bool) {
	classes := []string{line.Class}
	switch kind {
	case linediff.Added:
		classes = append(classes, classAdded)
	case linediff.Removed:
		classes = append(classes, classRemoved)
	}
	if changed {
		classes = append(classes, classChanged)
	}

	var attrs strings.Builder
	fmt.Fprintf(&attrs, " class=\"%s\"", escape(codeline.JoinClasses(classes...)))
	if line.ID != "" {
		fmt.Fprintf(&attrs, " id=\"%s\"", escape(line.ID))
	}
	if line.Placeholder {
		fmt.Fprintf(&attrs, " data-leaf-section=\"%s\"", escape(line.Text))
	}

	number := ""
	if line.LineNumber > 0 {
		number = strconv.Itoa(line.LineNumber)
	}

	fmt.Fprintf(r.bw, "<tr%s><td class=\"line-number\">%s</td><td class=\"line-marker\">%s</td><td class=\"code\" style=\"padding-left: %dem\">%s</td></tr>\n",
		attrs.String(), number, kind.Marker(), line.Indent, body(line))
}

func body(line codeline.Line) string {
	if line.Placeholder {
		return ""
	}
	if line.Markup != "" {
		return line.Markup
	}
	return escape(line.Text)
}

func escape(s string) string {
	return string(util.EscapeHTML([]byte(s)))
}
