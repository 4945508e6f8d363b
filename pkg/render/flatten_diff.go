package render

import (
	"github.com/yaklabco/codesurface/pkg/codeline"
	"github.com/yaklabco/codesurface/pkg/linediff"
	"github.com/yaklabco/codesurface/pkg/tree"
	"github.com/yaklabco/codesurface/pkg/treediff"
)

// DiffRenderer flattens diff trees, expanding placeholder pairs through the
// composer that built them.
type DiffRenderer struct {
	composer *treediff.Composer
	settings settings
}

// NewDiffRenderer creates a diff renderer.
func NewDiffRenderer(composer *treediff.Composer, opts ...Option) *DiffRenderer {
	if composer == nil {
		composer = treediff.NewComposer(nil, nil)
	}
	return &DiffRenderer{composer: composer, settings: newSettings(opts)}
}

// Flatten returns the diff lines of t in pre-order, skipping the root.
func (r *DiffRenderer) Flatten(t *treediff.Tree) []treediff.Line {
	if t == nil {
		return nil
	}
	return r.flatten(t, anchor{}, expansionGuard{})
}

func (r *DiffRenderer) flatten(t *treediff.Tree, at anchor, guard expansionGuard) []treediff.Line {
	lines := make([]treediff.Line, 0, t.Len()-1)

	//nolint:errcheck,revive // the callback never fails
	t.Walk(func(n tree.Node[treediff.Line]) error {
		if n.IsRoot() {
			return nil
		}

		level, position := at.place(n.Level, n.Position)
		line := n.Value
		line.Value.Indent += at.level
		line.Other.Indent += at.level

		if line.Value.Placeholder && !r.settings.lazy {
			if spliced := r.splice(line, level, guard); len(spliced) > 0 {
				lines = append(lines, spliced...)
				return nil
			}
		}

		line.Value = withClasses(line.Value, level, position, n.HasChildren())
		if line.Kind == linediff.Unchanged {
			line.Other = withClasses(line.Other, level, position, n.HasChildren())
		}
		lines = append(lines, line)
		return nil
	})

	return lines
}

// ExpandAt diffs the detached content behind a placeholder line of a diff
// rendered at level, returning lines ready to replace it.
func (r *DiffRenderer) ExpandAt(placeholder treediff.Line, level int) []treediff.Line {
	return r.splice(placeholder, level, expansionGuard{})
}

func (r *DiffRenderer) splice(placeholder treediff.Line, level int, guard expansionGuard) []treediff.Line {
	keys := placeholderKeys(placeholder)
	if len(keys) == 0 || !guard.enter(keys...) {
		return nil
	}
	defer guard.leave(keys...)

	sub := r.composer.ExpandPlaceholder(placeholder)
	if sub == nil {
		return nil
	}

	lines := r.flatten(sub, under(level), guard)
	RenumberDiff(lines, placeholder.Value.LineNumber)
	return lines
}

// placeholderKeys returns the guard keys of the stored sections behind a
// placeholder diff line.
func placeholderKeys(l treediff.Line) []leafKey {
	var keys []leafKey
	switch l.Kind {
	case linediff.Removed:
		if idx, ok := l.Value.LeafIndex(); ok {
			keys = append(keys, leafKey{side: sideBefore, index: idx})
		}
	case linediff.Added:
		if idx, ok := l.Value.LeafIndex(); ok {
			keys = append(keys, leafKey{side: sideAfter, index: idx})
		}
	default:
		if idx, ok := l.Value.LeafIndex(); ok {
			keys = append(keys, leafKey{side: sideBefore, index: idx})
		}
		if idx, ok := l.Other.LeafIndex(); ok {
			keys = append(keys, leafKey{side: sideAfter, index: idx})
		}
	}
	return keys
}

// RenumberDiff assigns line numbers start, start+1, ... to the displayed
// value of each line in place.
func RenumberDiff(lines []treediff.Line, start int) {
	for i := range lines {
		lines[i].Value.LineNumber = start + i
	}
}

// Values extracts the displayed line of each diff line.
func Values(lines []treediff.Line) []codeline.Line {
	out := make([]codeline.Line, len(lines))
	for i, l := range lines {
		out[i] = l.Value
	}
	return out
}
