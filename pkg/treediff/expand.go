package treediff

import (
	"github.com/yaklabco/codesurface/pkg/codeline"
	"github.com/yaklabco/codesurface/pkg/linediff"
	"github.com/yaklabco/codesurface/pkg/section"
)

// ExpandPlaceholder diffs the detached content behind a placeholder line of a
// diff tree. Both sides' stored slices are built as content of the
// placeholder's section and composed. It returns nil when neither side
// resolves.
func (c *Composer) ExpandPlaceholder(line Line) *Tree {
	if !line.Value.Placeholder {
		return nil
	}

	enclosing, _ := line.Value.ContentSection()

	var beforeLine, afterLine codeline.Line
	var hasBefore, hasAfter bool
	switch line.Kind {
	case linediff.Removed:
		beforeLine, hasBefore = line.Value, true
	case linediff.Added:
		afterLine, hasAfter = line.Value, true
	default:
		beforeLine, hasBefore = line.Value, true
		afterLine, hasAfter = line.Other, true
	}

	beforeTree, beforeOK := c.build(c.before, beforeLine, hasBefore, enclosing)
	afterTree, afterOK := c.build(c.after, afterLine, hasAfter, enclosing)
	if !beforeOK && !afterOK {
		return nil
	}

	return c.Compose(beforeTree, afterTree)
}

// build materializes the stored slice behind a placeholder.
func (c *Composer) build(b *section.Builder, line codeline.Line, present bool, enclosing string) (*SectionTree, bool) {
	if !present {
		return nil, false
	}
	tokens, ok := lookup(b, line)
	if !ok {
		return nil, false
	}
	return b.ForLeaf(enclosing).Build(tokens).Tree, true
}

// HasDiff reports whether anything in the diff tree changed.
func HasDiff(t *Tree) bool {
	if t == nil {
		return false
	}
	return t.Root().Value.HasDescendantDiff
}

// ChangedSections returns the after-side heading lines of matched sections
// whose content contains a change, in pre-order.
func ChangedSections(t *Tree) []codeline.Line {
	if t == nil {
		return nil
	}

	var lines []codeline.Line
	for _, id := range t.FindAll(isChangedSection) {
		lines = append(lines, t.Value(id).Other)
	}
	return lines
}

func isChangedSection(n Node) bool {
	return !n.IsRoot() && n.HasChildren() &&
		n.Value.Kind == linediff.Unchanged && n.Value.HasDescendantDiff
}
