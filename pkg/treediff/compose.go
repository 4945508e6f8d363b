// Package treediff aligns two section trees level by level and produces a
// merged diff tree.
package treediff

import (
	"github.com/yaklabco/codesurface/pkg/codeline"
	"github.com/yaklabco/codesurface/pkg/linediff"
	"github.com/yaklabco/codesurface/pkg/section"
	"github.com/yaklabco/codesurface/pkg/token"
	"github.com/yaklabco/codesurface/pkg/tree"
)

// Line is a node value of a diff tree.
type Line = linediff.Line[codeline.Line]

// Tree is a merged diff tree.
type Tree = tree.Tree[Line]

// Node is a node of a diff tree.
type Node = tree.Node[Line]

// SectionTree is a plain section tree.
type SectionTree = tree.Tree[codeline.Line]

// placeholderKey aligns placeholders with each other regardless of the store
// index they carry. It cannot collide with rendered text.
const placeholderKey = "\x00leaf-section"

// Composer diffs section trees built by a pair of builders. The builders'
// leaf stores resolve placeholders on each side.
type Composer struct {
	before *section.Builder
	after  *section.Builder
}

// NewComposer creates a composer. Nil builders get empty private stores.
func NewComposer(before, after *section.Builder) *Composer {
	if before == nil {
		before = section.NewBuilder(nil, section.DefaultOptions())
	}
	if after == nil {
		after = section.NewBuilder(nil, section.DefaultOptions())
	}
	return &Composer{before: before, after: after}
}

// pending is an Unchanged pair whose children still need diffing. A side's
// tree is the tree its id refers to, which differs from the input tree when
// that side's detached content was materialized.
type pending struct {
	before, after     *SectionTree
	beforeID, afterID int
	out               int
}

// Compose aligns before and after and returns the merged diff tree.
//
// Sibling lists are diffed on their rendered text. Matched nodes are diffed
// recursively, removed and added nodes are copied with their whole subtree.
// Placeholders pair up with each other and are never expanded here. When a
// matched section is detached on one side only, that side's stored content
// is materialized so it is diffed line by line against the other side.
func (c *Composer) Compose(before, after *SectionTree) *Tree {
	if before == nil {
		before = tree.New(codeline.Line{})
	}
	if after == nil {
		after = tree.New(codeline.Line{})
	}

	out := tree.New(Line{Value: before.Root().Value, Other: after.Root().Value, Kind: linediff.Unchanged})

	queue := []pending{{before: before, after: after, beforeID: tree.RootID, afterID: tree.RootID, out: tree.RootID}}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		beforeIDs := cur.before.Children(cur.beforeID)
		afterIDs := cur.after.Children(cur.afterID)

		diff := linediff.Diff(keys(cur.before, beforeIDs), beforeIDs, keys(cur.after, afterIDs), afterIDs)
		for _, d := range diff {
			switch d.Kind {
			case linediff.Removed:
				tree.CopySubtree(cur.before, d.Value, out, cur.out, marked(linediff.Removed))
			case linediff.Added:
				tree.CopySubtree(cur.after, d.Value, out, cur.out, marked(linediff.Added))
			default:
				if next, ok := c.match(cur, d.Value, d.Other, out); ok {
					queue = append(queue, next)
				}
			}
		}
	}

	propagate(out)
	return out
}

// match adds an Unchanged node for the pair under parent.out and reports
// whether its children need diffing.
func (c *Composer) match(parent pending, beforeID, afterID int, out *Tree) (pending, bool) {
	bn, _ := parent.before.Node(beforeID)
	an, _ := parent.after.Node(afterID)

	line := Line{Value: bn.Value, Other: an.Value, Kind: linediff.Unchanged}
	if bn.Value.Placeholder && an.Value.Placeholder {
		line.HasDescendantDiff = c.leavesDiffer(bn.Value, an.Value)
		out.Add(parent.out, line)
		return pending{}, false
	}

	id := out.Add(parent.out, line)
	next := pending{before: parent.before, after: parent.after, beforeID: beforeID, afterID: afterID, out: id}

	switch {
	case bn.WasDetachedLeafParent && an.WasDetachedLeafParent:
		out.MarkDetachedLeafParent(id)
	case bn.WasDetachedLeafParent:
		next.before, next.beforeID = materialize(c.before, parent.before, beforeID)
	case an.WasDetachedLeafParent:
		next.after, next.afterID = materialize(c.after, parent.after, afterID)
	}

	if bn.IsLeaf() && an.IsLeaf() {
		return pending{}, false
	}
	return next, true
}

// materialize returns a tree whose root children are the children of node id
// in t, with every resolvable placeholder replaced by the stored content it
// stands for. Materialized lines are numbered from their placeholder's line
// number and indented to its depth.
func materialize(b *section.Builder, t *SectionTree, id int) (*SectionTree, int) {
	out := tree.New(t.Value(id))
	for _, child := range t.Children(id) {
		line := t.Value(child)
		tokens, ok := lookup(b, line)
		if !line.Placeholder || !ok {
			tree.CopySubtree(t, child, out, tree.RootID, nodeValue)
			continue
		}

		enclosing, _ := line.ContentSection()
		sub := b.ForLeaf(enclosing).Build(tokens).Tree
		number := line.LineNumber
		for _, top := range sub.Children(tree.RootID) {
			tree.CopySubtree(sub, top, out, tree.RootID, func(n tree.Node[codeline.Line]) codeline.Line {
				v := n.Value
				v.LineNumber = number
				v.Indent += line.Indent
				number++
				return v
			})
		}
	}
	return out, tree.RootID
}

func nodeValue(n tree.Node[codeline.Line]) codeline.Line {
	return n.Value
}

// leavesDiffer compares the stored token slices behind two placeholders.
func (c *Composer) leavesDiffer(before, after codeline.Line) bool {
	bt, bok := lookup(c.before, before)
	at, aok := lookup(c.after, after)
	if bok != aok {
		return true
	}
	return !token.Equal(bt, at)
}

func lookup(b *section.Builder, line codeline.Line) ([]token.Token, bool) {
	idx, ok := line.LeafIndex()
	if !ok {
		return nil, false
	}
	return b.Store().Get(idx)
}

// keys returns the alignment key of each node.
func keys(t *SectionTree, ids []int) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		line := t.Value(id)
		if line.Placeholder {
			out[i] = placeholderKey
			continue
		}
		out[i] = line.Key()
	}
	return out
}

// marked returns a converter that stamps every copied node with kind.
func marked(kind linediff.Kind) func(tree.Node[codeline.Line]) Line {
	return func(n tree.Node[codeline.Line]) Line {
		return Line{Value: n.Value, Kind: kind, HasDescendantDiff: true}
	}
}

// propagate computes HasDescendantDiff bottom-up. Every child id is larger
// than its parent's, so a reverse scan sees children first. A placeholder
// pair has no children but keeps the flag match set from comparing its
// stored slices, so collapsed sections are flagged without being expanded.
func propagate(t *Tree) {
	for id := t.Len() - 1; id >= 0; id-- {
		node, _ := t.Node(id)
		flag := node.Value.Kind != linediff.Unchanged || node.Value.HasDescendantDiff
		for _, child := range node.Children {
			if flag {
				break
			}
			flag = t.Value(child).HasDescendantDiff
		}
		if flag != node.Value.HasDescendantDiff {
			v := node.Value
			v.HasDescendantDiff = flag
			t.SetValue(id, v)
		}
	}
}
