package reporter

import (
	"io"
	"os"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// Options configures reporter behavior.
type Options struct {
	// Writer is the destination for output (typically os.Stdout).
	Writer io.Writer

	// Format specifies the output format.
	Format Format

	// Color controls colorized output.
	// Values: "auto" (default), "always", "never"
	Color string

	// Markup prints each line's HTML markup instead of its plain text.
	// Only the text format uses it; html always emits markup.
	Markup bool

	// Width truncates text output. Zero uses the terminal width when
	// writing to a terminal and disables truncation otherwise.
	Width int

	// ShowHidden prints lines that start collapsed.
	ShowHidden bool

	// ShowSummary appends a one-line summary to text output.
	ShowSummary bool
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Writer:      os.Stdout,
		Format:      FormatText,
		Color:       "auto",
		ShowHidden:  true,
		ShowSummary: true,
	}
}
