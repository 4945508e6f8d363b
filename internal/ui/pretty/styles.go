// Package pretty provides Lipgloss-based styled output utilities.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"

	"github.com/yaklabco/codesurface/pkg/linediff"
)

// DefaultWidth is used when the terminal width cannot be determined.
const DefaultWidth = 100

// Styles contains all styled renderers for CLI output.
type Styles struct {
	// Diff markers and line bodies
	Added     lipgloss.Style
	Removed   lipgloss.Style
	Unchanged lipgloss.Style

	// Intra-line changes inside paired added and removed lines
	InlineAdded   lipgloss.Style
	InlineRemoved lipgloss.Style

	// Line components
	Gutter        lipgloss.Style
	Heading       lipgloss.Style
	Placeholder   lipgloss.Style
	Hidden        lipgloss.Style
	Documentation lipgloss.Style
	Deprecated    lipgloss.Style
	Changed       lipgloss.Style

	// Summary styles
	FilePath     lipgloss.Style
	SummaryTitle lipgloss.Style
	Success      lipgloss.Style
	Failure      lipgloss.Style

	// Table styles
	TableHeader    lipgloss.Style
	TableSeparator lipgloss.Style

	// Misc
	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// NewStyles creates a new Styles with the given color mode.
func NewStyles(colorEnabled bool) *Styles {
	if !colorEnabled {
		return newNoColorStyles()
	}
	return newColorStyles()
}

func newColorStyles() *Styles {
	return &Styles{
		Added:     lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Removed:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		Unchanged: lipgloss.NewStyle(),

		InlineAdded:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true).Underline(true),
		InlineRemoved: lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true).Strikethrough(true),

		Gutter:        lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Heading:       lipgloss.NewStyle().Bold(true),
		Placeholder:   lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Italic(true),
		Hidden:        lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Documentation: lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Italic(true),
		Deprecated:    lipgloss.NewStyle().Strikethrough(true),
		Changed:       lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),

		FilePath:     lipgloss.NewStyle().Bold(true),
		SummaryTitle: lipgloss.NewStyle().Bold(true),
		Success:      lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		Failure:      lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),

		TableHeader:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7")),
		TableSeparator: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),

		Dim:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Bold: lipgloss.NewStyle().Bold(true),
	}
}

func newNoColorStyles() *Styles {
	plain := lipgloss.NewStyle()
	return &Styles{
		Added:          plain,
		Removed:        plain,
		Unchanged:      plain,
		InlineAdded:    plain,
		InlineRemoved:  plain,
		Gutter:         plain,
		Heading:        plain,
		Placeholder:    plain,
		Hidden:         plain,
		Documentation:  plain,
		Deprecated:     plain,
		Changed:        plain,
		FilePath:       plain,
		SummaryTitle:   plain,
		Success:        plain,
		Failure:        plain,
		TableHeader:    plain,
		TableSeparator: plain,
		Dim:            plain,
		Bold:           plain,
	}
}

// ForKind returns the line style for a diff kind.
func (s *Styles) ForKind(kind linediff.Kind) lipgloss.Style {
	switch kind {
	case linediff.Added:
		return s.Added
	case linediff.Removed:
		return s.Removed
	default:
		return s.Unchanged
	}
}

// InlineFor returns the span style for a diff kind.
func (s *Styles) InlineFor(kind linediff.Kind) lipgloss.Style {
	switch kind {
	case linediff.Added:
		return s.InlineAdded
	case linediff.Removed:
		return s.InlineRemoved
	default:
		return s.ForKind(kind)
	}
}

// IsColorEnabled determines if color should be enabled based on mode and writer.
// Mode values: "auto" (default), "always", "never".
// In auto mode, color is enabled only if the writer is a TTY and NO_COLOR is not set.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		if f, ok := writer.(*os.File); ok {
			return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
		return false
	}
}

// TerminalWidth returns the column count of writer when it is a terminal,
// or 0.
func TerminalWidth(writer io.Writer) int {
	f, ok := writer.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return 0
	}
	return width
}
