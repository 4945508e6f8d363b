package reporter

import "fmt"

// Format represents an output format.
type Format string

// Output formats supported by the reporter.
const (
	FormatText    Format = "text"
	FormatJSON    Format = "json"
	FormatYAML    Format = "yaml"
	FormatHTML    Format = "html"
	FormatSummary Format = "summary"
)

// ParseFormat parses a format string, returning an error for unknown formats.
func ParseFormat(formatStr string) (Format, error) {
	switch f := Format(formatStr); f {
	case "":
		return FormatText, nil
	case FormatText, FormatJSON, FormatYAML, FormatHTML, FormatSummary:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q; valid formats: text, json, yaml, html, summary", formatStr)
	}
}

// String returns the string representation of the format.
func (f Format) String() string {
	return string(f)
}

// IsValid returns true if the format is a known valid format.
func (f Format) IsValid() bool {
	_, err := ParseFormat(string(f))
	return err == nil && f != ""
}
