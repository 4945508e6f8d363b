// Package reporter writes rendered code surfaces and their diffs.
package reporter

import (
	"context"
	"fmt"

	"github.com/yaklabco/codesurface/pkg/codeline"
	"github.com/yaklabco/codesurface/pkg/linediff"
	"github.com/yaklabco/codesurface/pkg/treediff"
)

// Document is one rendered surface, or the diff of two.
type Document struct {
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// Lines is set for a plain rendering.
	Lines []codeline.Line `json:"lines,omitempty" yaml:"lines,omitempty"`

	// Diff is set for a diff rendering.
	Diff []treediff.Line `json:"diff,omitempty" yaml:"diff,omitempty"`

	// Sections holds the heading line numbers of changed sections.
	Sections []int `json:"sectionsWithDiff,omitempty" yaml:"sectionsWithDiff,omitempty"`

	Stats linediff.Stats `json:"stats" yaml:"stats"`
}

// NewRenderDocument wraps a plain rendering.
func NewRenderDocument(name string, lines []codeline.Line) *Document {
	return &Document{
		Name:  name,
		Lines: lines,
		Stats: linediff.Stats{Unchanged: len(lines)},
	}
}

// NewDiffDocument wraps a diff rendering.
func NewDiffDocument(name string, diff []treediff.Line, sections []int) *Document {
	if diff == nil {
		diff = []treediff.Line{}
	}
	return &Document{
		Name:     name,
		Diff:     diff,
		Sections: sections,
		Stats:    linediff.Count(diff),
	}
}

// IsDiff reports whether d holds a diff.
func (d *Document) IsDiff() bool {
	return d.Diff != nil
}

// Reporter writes documents.
type Reporter interface {
	Report(ctx context.Context, doc *Document) error
}

// New creates a Reporter for the specified options.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}

	format := opts.Format
	if format == "" {
		format = FormatText
	}

	switch format {
	case FormatText:
		return NewTextReporter(opts), nil
	case FormatJSON:
		return NewJSONReporter(opts), nil
	case FormatYAML:
		return NewYAMLReporter(opts), nil
	case FormatHTML:
		return NewHTMLReporter(opts), nil
	case FormatSummary:
		return NewSummaryReporter(opts), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}
