// Package codeline defines the display line produced by the section builder
// and consumed by the renderer and the web front end.
package codeline

import (
	"strconv"
	"strings"
)

// Class suffixes used to build section classes.
const (
	HeadingSuffix = "-heading"
	ContentSuffix = "-content"

	// HiddenClass hides a line until its section is expanded.
	HiddenClass = "d-none"
)

// Line is one display line of a code surface.
type Line struct {
	// Text is the plain rendered text. For leaf placeholders it holds the
	// decimal index of the detached section in the leaf section store.
	Text string `json:"text" yaml:"text"`

	// Markup is Text with HTML escaping and per-token span classes.
	Markup string `json:"markup,omitempty" yaml:"markup,omitempty"`

	// DiffKey is the normalized text used to align lines when diffing.
	// It omits tokens inside skip-diff ranges.
	DiffKey string `json:"-" yaml:"-"`

	// ID is the anchor id set by a LineIdMarker token.
	ID string `json:"id,omitempty" yaml:"id,omitempty"`

	// Class is the space-joined set of class tokens.
	Class string `json:"lineClass" yaml:"lineClass"`

	// LineNumber is 1-based; 0 means the line carries no number yet.
	LineNumber int `json:"lineNumber,omitempty" yaml:"lineNumber,omitempty"`

	// Indent is the section nesting depth of the line.
	Indent int `json:"indent" yaml:"indent"`

	// Placeholder marks a stand-in for a detached leaf section.
	Placeholder bool `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`

	Documentation bool `json:"documentation,omitempty" yaml:"documentation,omitempty"`
	Deprecated    bool `json:"deprecated,omitempty" yaml:"deprecated,omitempty"`
}

// LeafIndex parses the leaf section index of a placeholder line.
// It returns false for ordinary lines and for malformed placeholder text.
func (l Line) LeafIndex() (int, bool) {
	if !l.Placeholder {
		return 0, false
	}
	idx, err := strconv.Atoi(strings.TrimSpace(l.Text))
	if err != nil || idx < 0 {
		return 0, false
	}
	return idx, true
}

// Key returns the string the line is aligned on when diffing.
func (l Line) Key() string {
	return l.DiffKey
}

// HeadingClass returns the class of the heading line of section id.
func HeadingClass(id string) string {
	return id + HeadingSuffix
}

// ContentClass returns the class of content lines of section id.
func ContentClass(id string) string {
	return id + ContentSuffix
}

// JoinClasses joins non-empty class tokens with single spaces.
func JoinClasses(classes ...string) string {
	var b strings.Builder
	for _, c := range classes {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(c)
	}
	return b.String()
}

// HasClass reports whether class is one of the tokens of l.Class.
func (l Line) HasClass(class string) bool {
	for _, c := range strings.Fields(l.Class) {
		if c == class {
			return true
		}
	}
	return false
}

// ContentSection returns the id of the section whose content class l carries.
func (l Line) ContentSection() (string, bool) {
	for _, c := range strings.Fields(l.Class) {
		if id, ok := strings.CutSuffix(c, ContentSuffix); ok && id != "" {
			return id, true
		}
	}
	return "", false
}

// HeadingSection returns the id of the section l is the heading of.
func (l Line) HeadingSection() (string, bool) {
	for _, c := range strings.Fields(l.Class) {
		if id, ok := strings.CutSuffix(c, HeadingSuffix); ok && id != "" {
			return id, true
		}
	}
	return "", false
}
