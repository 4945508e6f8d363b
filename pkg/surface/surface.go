// Package surface ties a stored code surface document to the engine: it owns
// the token stream and leaf store, builds the section tree once, and renders
// plain and diff views.
package surface

import (
	"strconv"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/codesurface/internal/logging"
	"github.com/yaklabco/codesurface/pkg/codeline"
	"github.com/yaklabco/codesurface/pkg/leaf"
	"github.com/yaklabco/codesurface/pkg/render"
	"github.com/yaklabco/codesurface/pkg/section"
	"github.com/yaklabco/codesurface/pkg/tree"
	"github.com/yaklabco/codesurface/pkg/treediff"
)

// Option configures a Surface.
type Option func(*Surface)

// WithSectionOptions sets the depth and size limits used when building.
func WithSectionOptions(opts section.Options) Option {
	return func(s *Surface) {
		s.opts = opts
	}
}

// WithLogger sets the logger build anomalies are reported to.
func WithLogger(logger *log.Logger) Option {
	return func(s *Surface) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithLazyLeaves keeps leaf placeholders in rendered output.
func WithLazyLeaves() Option {
	return func(s *Surface) {
		s.lazy = true
	}
}

// Surface is a loaded code surface. The tree is built on first use and is
// read-only afterwards, so a Surface is safe for concurrent rendering.
type Surface struct {
	doc     *Document
	opts    section.Options
	logger  *log.Logger
	lazy    bool
	builder *section.Builder

	once   sync.Once
	result *section.Result
}

// New creates a surface for doc.
func New(doc *Document, opts ...Option) *Surface {
	if doc == nil {
		doc = &Document{}
	}

	s := &Surface{
		doc:    doc,
		opts:   section.DefaultOptions(),
		logger: logging.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.builder = section.NewBuilder(leaf.NewStore(doc.LeafSections...), s.opts)
	return s
}

// Name returns the document name.
func (s *Surface) Name() string {
	return s.doc.Name
}

// Document returns the underlying document.
func (s *Surface) Document() *Document {
	return s.doc
}

// Builder returns the builder that owns the surface's leaf store.
func (s *Surface) Builder() *section.Builder {
	return s.builder
}

// Tree returns the section tree, building it on first call.
func (s *Surface) Tree() *tree.Tree[codeline.Line] {
	s.once.Do(s.build)
	return s.result.Tree
}

// Report returns the anomalies found while building the tree.
func (s *Surface) Report() section.Report {
	s.once.Do(s.build)
	return s.result.Report
}

func (s *Surface) build() {
	s.result = s.builder.Build(s.doc.Tokens)

	r := s.result.Report
	if !r.Clean() {
		s.logger.Debug("recovered from malformed token stream",
			logging.FieldName, s.doc.Name,
			logging.FieldUnmatchedEnds, r.UnmatchedEnds,
			logging.FieldUnclosedSections, r.UnclosedSections,
			logging.FieldOrphanStarts, r.OrphanStarts,
			logging.FieldInvalidPlaceholders, r.InvalidPlaceholders,
			logging.FieldUnknownKinds, r.UnknownKinds,
		)
	}
	if r.Detached > 0 {
		s.logger.Debug("detached oversized sections",
			logging.FieldName, s.doc.Name,
			logging.FieldDetached, r.Detached,
		)
	}
}

func (s *Surface) renderOptions() []render.Option {
	if s.lazy {
		return []render.Option{render.WithLazyLeaves()}
	}
	return nil
}

// Render flattens the surface into display lines.
func (s *Surface) Render() []codeline.Line {
	return render.NewRenderer(s.builder, s.renderOptions()...).Flatten(s.Tree())
}

// ExpandLeaf renders the stored section at index on its own. Lines keep the
// content class of the section they were detached from when a placeholder
// for index exists in the tree. It returns nil for unknown indices.
func (s *Surface) ExpandLeaf(index int) []codeline.Line {
	placeholder := codeline.Line{Text: strconv.Itoa(index), Placeholder: true}

	t := s.Tree()
	ids := t.FindAll(func(n tree.Node[codeline.Line]) bool {
		idx, ok := n.Value.LeafIndex()
		return ok && idx == index
	})
	if len(ids) > 0 {
		placeholder = t.Value(ids[0])
	}

	return render.NewRenderer(s.builder).Expand(placeholder)
}

// Composer returns a composer diffing before against s.
func (s *Surface) Composer(before *Surface) *treediff.Composer {
	return treediff.NewComposer(before.builder, s.builder)
}

// Diff composes the diff tree from before to s.
func (s *Surface) Diff(before *Surface) *treediff.Tree {
	return s.Composer(before).Compose(before.Tree(), s.Tree())
}

// RenderDiff flattens the diff from before to s.
func (s *Surface) RenderDiff(before *Surface) []treediff.Line {
	c := s.Composer(before)
	return render.NewDiffRenderer(c, s.renderOptions()...).Flatten(c.Compose(before.Tree(), s.Tree()))
}

// SectionsWithDiff returns the line numbers of the headings in s whose
// section content changed since before. Review pages use them to flag
// collapsed sections.
func (s *Surface) SectionsWithDiff(before *Surface) []int {
	var numbers []int
	for _, line := range treediff.ChangedSections(s.Diff(before)) {
		numbers = append(numbers, line.LineNumber)
	}
	return numbers
}
