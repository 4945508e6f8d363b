package render

import (
	"github.com/yaklabco/codesurface/pkg/codeline"
	"github.com/yaklabco/codesurface/pkg/section"
	"github.com/yaklabco/codesurface/pkg/tree"
)

// Option configures a renderer.
type Option func(*settings)

type settings struct {
	lazy bool
}

// WithLazyLeaves keeps placeholders in the output instead of expanding them,
// leaving expansion to explicit Expand calls.
func WithLazyLeaves() Option {
	return func(s *settings) {
		s.lazy = true
	}
}

func newSettings(opts []Option) settings {
	var s settings
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// Renderer flattens section trees built by one builder.
// It never mutates the trees it reads and is safe for concurrent use.
type Renderer struct {
	builder  *section.Builder
	settings settings
}

// NewRenderer creates a renderer resolving placeholders through builder.
func NewRenderer(builder *section.Builder, opts ...Option) *Renderer {
	if builder == nil {
		builder = section.NewBuilder(nil, section.DefaultOptions())
	}
	return &Renderer{builder: builder, settings: newSettings(opts)}
}

// Flatten returns the display lines of t in pre-order, skipping the root.
func (r *Renderer) Flatten(t *tree.Tree[codeline.Line]) []codeline.Line {
	if t == nil {
		return nil
	}
	return r.flatten(t, anchor{}, expansionGuard{})
}

func (r *Renderer) flatten(t *tree.Tree[codeline.Line], at anchor, guard expansionGuard) []codeline.Line {
	lines := make([]codeline.Line, 0, t.Len()-1)

	//nolint:errcheck,revive // the callback never fails
	t.Walk(func(n tree.Node[codeline.Line]) error {
		if n.IsRoot() {
			return nil
		}

		level, position := at.place(n.Level, n.Position)
		line := n.Value
		line.Indent += at.level

		if line.Placeholder && !r.settings.lazy {
			if spliced := r.splice(line, level, guard); len(spliced) > 0 {
				lines = append(lines, spliced...)
				return nil
			}
		}

		lines = append(lines, withClasses(line, level, position, n.HasChildren()))
		return nil
	})

	return lines
}

// Expand builds and flattens the section behind a placeholder on its own,
// as if it were a top-level surface. It returns nil for malformed or unknown
// indices.
func (r *Renderer) Expand(placeholder codeline.Line) []codeline.Line {
	return r.expand(placeholder, anchor{}, expansionGuard{})
}

// ExpandAt expands a placeholder rendered at level and returns lines ready
// to replace it: top-level lines take the placeholder's level with positions
// counted within the spliced group, and line numbers continue from the
// placeholder's line number.
func (r *Renderer) ExpandAt(placeholder codeline.Line, level int) []codeline.Line {
	return r.splice(placeholder, level, expansionGuard{})
}

func (r *Renderer) splice(placeholder codeline.Line, level int, guard expansionGuard) []codeline.Line {
	lines := r.expand(placeholder, under(level), guard)
	Renumber(lines, placeholder.LineNumber)
	return lines
}

func (r *Renderer) expand(placeholder codeline.Line, at anchor, guard expansionGuard) []codeline.Line {
	idx, ok := placeholder.LeafIndex()
	if !ok {
		return nil
	}

	key := leafKey{side: sidePlain, index: idx}
	if !guard.enter(key) {
		return nil
	}
	defer guard.leave(key)

	tokens, ok := r.builder.Store().Get(idx)
	if !ok {
		return nil
	}

	enclosing, _ := placeholder.ContentSection()
	sub := r.builder.ForLeaf(enclosing).Build(tokens)
	return r.flatten(sub.Tree, at, guard)
}
