package render_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/codesurface/pkg/leaf"
	"github.com/yaklabco/codesurface/pkg/linediff"
	"github.com/yaklabco/codesurface/pkg/render"
	"github.com/yaklabco/codesurface/pkg/section"
	"github.com/yaklabco/codesurface/pkg/token"
	"github.com/yaklabco/codesurface/pkg/treediff"
)

func diffPair(t *testing.T, opts section.Options, before, after *token.Stream) (*treediff.Composer, *treediff.Tree) {
	t.Helper()

	bb := section.NewBuilder(leaf.NewStore(), opts)
	ab := section.NewBuilder(leaf.NewStore(), opts)
	c := treediff.NewComposer(bb, ab)
	return c, c.Compose(bb.Build(before.Tokens()).Tree, ab.Build(after.Tokens()).Tree)
}

func kinds(lines []treediff.Line) []linediff.Kind {
	out := make([]linediff.Kind, len(lines))
	for i, l := range lines {
		out[i] = l.Kind
	}
	return out
}

func TestFlattenDiff(t *testing.T) {
	t.Parallel()

	before := token.NewStream().Section("A", "class A", func(s *token.Stream) {
		s.Line("x")
		s.Line("y")
	})
	after := token.NewStream().Section("A", "class A", func(s *token.Stream) {
		s.Line("x")
		s.Line("z")
	})

	c, d := diffPair(t, section.DefaultOptions(), before, after)
	got := render.NewDiffRenderer(c).Flatten(d)

	values := render.Values(got)
	assert.Equal(t, []string{"class A", "x", "y", "z"}, texts(values))
	assert.Equal(t, []linediff.Kind{linediff.Unchanged, linediff.Unchanged, linediff.Removed, linediff.Added}, kinds(got))
	assert.Equal(t, []string{
		"A-heading lvl_1_parent_0 lvl_1_child_0",
		"A-content lvl_2_child_0 d-none",
		"A-content lvl_2_child_1 d-none",
		"A-content lvl_2_child_2 d-none",
	}, classes(values))
	assert.True(t, got[0].HasDescendantDiff)
	assert.False(t, got[1].HasDescendantDiff)
	assert.Equal(t, got[1].Value.Class, got[1].Other.Class)
}

func TestFlattenDiffExpandsPlaceholders(t *testing.T) {
	t.Parallel()

	stream := func(body string) *token.Stream {
		return token.NewStream().Section("A", "class A", func(s *token.Stream) {
			s.Section("M", "void M()", func(s *token.Stream) { s.Line(body) })
		})
	}

	c, d := diffPair(t, section.Options{MaxDepth: 1}, stream("return 1;"), stream("return 2;"))

	got := render.NewDiffRenderer(c).Flatten(d)
	values := render.Values(got)
	assert.Equal(t, []string{"class A", "void M()", "return 1;", "return 2;"}, texts(values))
	assert.Equal(t, []linediff.Kind{linediff.Unchanged, linediff.Unchanged, linediff.Removed, linediff.Added}, kinds(got))
	assert.Equal(t, []string{
		"M-content lvl_3_child_0 d-none",
		"M-content lvl_3_child_1 d-none",
	}, classes(values[2:]))
	assert.Equal(t, []int{3, 4}, numbers(values[2:]))
	assert.Equal(t, 2, values[2].Indent)

	lazy := render.NewDiffRenderer(c, render.WithLazyLeaves())
	collapsed := lazy.Flatten(d)
	require.Len(t, collapsed, 3)
	placeholder := collapsed[2]
	assert.True(t, placeholder.Value.Placeholder)
	assert.True(t, placeholder.HasDescendantDiff)

	assert.Equal(t, got[2:], lazy.ExpandAt(placeholder, 3))
}

func TestFlattenDiffUnresolvedPlaceholder(t *testing.T) {
	t.Parallel()

	stream := token.NewStream().Add(token.LeafSectionPlaceholder, "5")
	c, d := diffPair(t, section.DefaultOptions(), stream, stream)

	got := render.NewDiffRenderer(c).Flatten(d)
	require.Len(t, got, 1)
	assert.True(t, got[0].Value.Placeholder)
	assert.Equal(t, "5", got[0].Value.Text)
}

func TestRenumberDiff(t *testing.T) {
	t.Parallel()

	lines := make([]treediff.Line, 3)
	render.RenumberDiff(lines, 10)
	assert.Equal(t, []int{10, 11, 12}, numbers(render.Values(lines)))
}

func TestFlattenDiffDetachedOnOneSide(t *testing.T) {
	t.Parallel()

	stream := func(body ...string) *token.Stream {
		return token.NewStream().Section("C", "class C", func(s *token.Stream) {
			for _, line := range body {
				s.Line(line)
			}
		})
	}

	c, d := diffPair(t, section.Options{MaxLines: 3}, stream("a", "b", "c"), stream("a", "b", "c", "d"))
	got := render.NewDiffRenderer(c).Flatten(d)

	assert.Equal(t, []string{"class C", "a", "b", "c", "d"}, texts(render.Values(got)))
	assert.Equal(t, linediff.Stats{Unchanged: 4, Added: 1}, linediff.Count(got))
	assert.Equal(t, "C-content lvl_2_child_3 d-none", got[4].Value.Class)
}
