package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/codesurface/pkg/linediff"
	"github.com/yaklabco/codesurface/pkg/runner"
)

const summaryDividerWidth = 40

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// FormatDiffOneLine summarizes a single diff.
// Example: "3 added, 1 removed, 40 unchanged in 2 sections".
func (s *Styles) FormatDiffOneLine(stats linediff.Stats, sections int) string {
	if !stats.HasChanges() {
		return s.Success.Render("No differences") +
			s.Dim.Render(fmt.Sprintf(" (%d %s)", stats.Unchanged, plural(stats.Unchanged, "line", "lines"))) + "\n"
	}

	parts := []string{
		s.Added.Render(fmt.Sprintf("%d added", stats.Added)),
		s.Removed.Render(fmt.Sprintf("%d removed", stats.Removed)),
		s.Dim.Render(fmt.Sprintf("%d unchanged", stats.Unchanged)),
	}
	line := strings.Join(parts, ", ")
	if sections > 0 {
		line += fmt.Sprintf(" in %d %s", sections, plural(sections, "section", "sections"))
	}
	return line + "\n"
}

// FormatRenderOneLine summarizes a plain rendering.
func (s *Styles) FormatRenderOneLine(lines, placeholders int) string {
	msg := fmt.Sprintf("%d %s", lines, plural(lines, "line", "lines"))
	if placeholders > 0 {
		msg += s.Placeholder.Render(fmt.Sprintf(", %d collapsed %s", placeholders, plural(placeholders, "section", "sections")))
	}
	return msg + "\n"
}

// FormatBatchSummary formats batch statistics as a summary block.
func (s *Styles) FormatBatchSummary(stats runner.Stats) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	row := func(label, value string) {
		builder.WriteString(fmt.Sprintf("  %-18s %s\n", label+":", value))
	}

	row("Jobs", strconv.Itoa(stats.Jobs))
	if stats.Rendered > 0 {
		row("Rendered", strconv.Itoa(stats.Rendered))
	}
	if stats.Diffed > 0 {
		row("Diffed", strconv.Itoa(stats.Diffed))
		row("With changes", s.Changed.Render(strconv.Itoa(stats.Changed)))
	}
	if stats.Failed > 0 {
		row("Failed", s.Failure.Render(strconv.Itoa(stats.Failed)))
	}

	builder.WriteString("\n")
	row("Lines added", s.Added.Render(strconv.Itoa(stats.Lines.Added)))
	row("Lines removed", s.Removed.Render(strconv.Itoa(stats.Lines.Removed)))
	row("Lines unchanged", strconv.Itoa(stats.Lines.Unchanged))
	builder.WriteString("\n")

	switch {
	case stats.Failed > 0:
		builder.WriteString(s.Failure.Render(fmt.Sprintf("%d %s failed", stats.Failed, plural(stats.Failed, "job", "jobs"))))
	case stats.Changed > 0:
		builder.WriteString(s.Changed.Render(fmt.Sprintf("%d %s changed", stats.Changed, plural(stats.Changed, "surface", "surfaces"))))
	default:
		builder.WriteString(s.Success.Render("No differences"))
	}
	builder.WriteString("\n")

	return builder.String()
}
