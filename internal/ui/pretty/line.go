package pretty

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/yaklabco/codesurface/pkg/linediff"
)

const (
	indentUnit = "  "
	ellipsis   = "…"
)

// LineView is one display line prepared for the terminal.
type LineView struct {
	Number int
	Kind   linediff.Kind
	Text   string
	Indent int

	// Spans replaces Text with intra-line changes when set.
	Spans []linediff.Span

	Heading       bool
	Placeholder   bool
	Hidden        bool
	Documentation bool
	Deprecated    bool

	// Changed marks a heading whose collapsed content differs.
	Changed bool
}

// Layout fixes the columns shared by every line of one listing.
type Layout struct {
	// GutterWidth is the width of the line number column. Zero omits it.
	GutterWidth int

	// Markers prints the diff marker column.
	Markers bool

	// Width truncates lines to this many columns. Zero disables it.
	Width int
}

// GutterWidth returns the column width needed to print maxNumber.
func GutterWidth(maxNumber int) int {
	if maxNumber <= 0 {
		return 0
	}
	return len(strconv.Itoa(maxNumber))
}

// Truncate shortens s to width display columns, ending in an ellipsis.
// A width of zero or less returns s unchanged.
func Truncate(s string, width int) string {
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, ellipsis)
}

// FormatLine renders v as one terminal line, without a trailing newline.
func (s *Styles) FormatLine(v LineView, layout Layout) string {
	var prefix strings.Builder
	if layout.GutterWidth > 0 {
		number := ""
		if v.Number > 0 {
			number = strconv.Itoa(v.Number)
		}
		prefix.WriteString(s.Gutter.Render(runewidth.FillLeft(number, layout.GutterWidth)))
		prefix.WriteByte(' ')
	}
	if layout.Markers {
		marker := v.Kind.Marker()
		if v.Changed && v.Kind == linediff.Unchanged {
			marker = "~"
		}
		prefix.WriteString(s.markerStyle(v).Render(marker))
		prefix.WriteByte(' ')
	}
	prefix.WriteString(strings.Repeat(indentUnit, v.Indent))

	budget := 0
	if layout.Width > 0 {
		budget = max(layout.Width-lipgloss.Width(prefix.String()), 1)
	}

	return prefix.String() + s.body(v, budget)
}

func (s *Styles) markerStyle(v LineView) lipgloss.Style {
	if v.Changed && v.Kind == linediff.Unchanged {
		return s.Changed
	}
	return s.ForKind(v.Kind)
}

func (s *Styles) body(v LineView, budget int) string {
	if v.Placeholder {
		return s.Placeholder.Render(Truncate("… leaf section "+v.Text, budget))
	}

	if len(v.Spans) > 0 {
		return s.spans(v.Spans, v.Kind, budget)
	}

	return s.lineStyle(v).Render(Truncate(v.Text, budget))
}

func (s *Styles) lineStyle(v LineView) lipgloss.Style {
	switch {
	case v.Kind != linediff.Unchanged:
		return s.ForKind(v.Kind)
	case v.Changed:
		return s.Changed
	case v.Heading:
		return s.Heading
	case v.Deprecated:
		return s.Deprecated
	case v.Documentation:
		return s.Documentation
	case v.Hidden:
		return s.Hidden
	default:
		return s.Unchanged
	}
}

// spans renders intra-line changes, truncating the concatenation to budget.
// Unchanged fragments take the style of the line they belong to.
func (s *Styles) spans(spans []linediff.Span, line linediff.Kind, budget int) string {
	var out strings.Builder
	used := 0
	for _, span := range spans {
		text := span.Text
		if budget > 0 {
			remaining := budget - used
			if remaining <= 0 {
				break
			}
			if w := runewidth.StringWidth(text); w > remaining {
				text = runewidth.Truncate(text, remaining, ellipsis)
			}
		}
		used += runewidth.StringWidth(text)
		style := s.InlineFor(span.Kind)
		if span.Kind == linediff.Unchanged {
			style = s.ForKind(line)
		}
		out.WriteString(style.Render(text))
	}
	return out.String()
}
