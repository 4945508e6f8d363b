package surface_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/codesurface/internal/logging"
	"github.com/yaklabco/codesurface/pkg/codeline"
	"github.com/yaklabco/codesurface/pkg/linediff"
	"github.com/yaklabco/codesurface/pkg/section"
	"github.com/yaklabco/codesurface/pkg/surface"
	"github.com/yaklabco/codesurface/pkg/token"
)

func classDoc(body ...string) *surface.Document {
	s := token.NewStream().
		Keyword("namespace").Space().Text("N").Newline().
		Section("C", "class C", func(s *token.Stream) {
			s.Section("M", "void M()", func(s *token.Stream) {
				for _, line := range body {
					s.Line(line)
				}
			})
			s.Line("int X;")
		})
	return &surface.Document{Name: "N", Language: "C#", Tokens: s.Tokens()}
}

func texts(lines []codeline.Line) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.Text
	}
	return out
}

func TestSurfaceRender(t *testing.T) {
	t.Parallel()

	s := surface.New(classDoc("return;"), surface.WithLogger(logging.Discard()))
	assert.Equal(t, "N", s.Name())
	assert.True(t, s.Report().Clean())

	got := s.Render()
	assert.Equal(t, []string{"namespace N", "class C", "void M()", "return;", "int X;"}, texts(got))
	assert.Equal(t, "C-heading lvl_1_parent_1 lvl_1_child_1", got[1].Class)
}

func TestSurfaceTreeIsBuiltOnce(t *testing.T) {
	t.Parallel()

	s := surface.New(classDoc("return;"))

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Render()
		}()
	}
	wg.Wait()

	assert.Same(t, s.Tree(), s.Tree())
}

func TestSurfaceLogsAnomalies(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	doc := &surface.Document{Name: "broken", Tokens: token.NewStream().Line("x").Close().Tokens()}
	s := surface.New(doc, surface.WithLogger(logging.NewWithWriter(&buf, "debug")))

	assert.Equal(t, 1, s.Report().UnmatchedEnds)
	assert.Contains(t, buf.String(), "unmatched_ends=1")
	assert.Contains(t, buf.String(), "name=broken")
}

func TestSurfaceLeafSections(t *testing.T) {
	t.Parallel()

	doc := classDoc("a;", "b;")
	s := surface.New(doc, surface.WithSectionOptions(section.Options{MaxDepth: 1}), surface.WithLazyLeaves())

	lazy := s.Render()
	require.Len(t, lazy, 5)
	assert.True(t, lazy[3].Placeholder)
	assert.Equal(t, 1, s.Report().Detached)

	expanded := s.ExpandLeaf(0)
	assert.Equal(t, []string{"a;", "b;"}, texts(expanded))
	assert.True(t, expanded[0].HasClass("M-content"))

	assert.Nil(t, s.ExpandLeaf(9))

	eager := surface.New(doc, surface.WithSectionOptions(section.Options{MaxDepth: 1})).Render()
	assert.Equal(t, []string{"namespace N", "class C", "void M()", "a;", "b;", "int X;"}, texts(eager))
}

func TestSurfaceProducerLeafSections(t *testing.T) {
	t.Parallel()

	doc := &surface.Document{
		Name: "P",
		Tokens: token.NewStream().
			Section("T", "type T", func(s *token.Stream) { s.Placeholder(0) }).
			Tokens(),
		LeafSections: [][]token.Token{token.NewStream().Line("member").Tokens()},
	}

	got := surface.New(doc).Render()
	assert.Equal(t, []string{"type T", "member"}, texts(got))
	assert.Equal(t, "T-content lvl_2_child_0 d-none", got[1].Class)
	assert.Equal(t, 2, got[1].LineNumber)
}

func TestSurfaceDiff(t *testing.T) {
	t.Parallel()

	before := surface.New(classDoc("return 1;"))
	after := surface.New(classDoc("return 2;"))

	lines := after.RenderDiff(before)
	stats := linediff.Count(lines)
	assert.Equal(t, 1, stats.Added)
	assert.Equal(t, 1, stats.Removed)
	assert.Equal(t, 4, stats.Unchanged)

	assert.Equal(t, []int{2, 3}, after.SectionsWithDiff(before))
	assert.Empty(t, after.SectionsWithDiff(after))
}

func TestSurfaceDiffWithDetachedLeaves(t *testing.T) {
	t.Parallel()

	opts := surface.WithSectionOptions(section.Options{MaxDepth: 1})
	before := surface.New(classDoc("return 1;"), opts)
	after := surface.New(classDoc("return 2;"), opts)

	assert.Equal(t, []int{2, 3}, after.SectionsWithDiff(before))

	lines := after.RenderDiff(before)
	stats := linediff.Count(lines)
	assert.Equal(t, 1, stats.Added)
	assert.Equal(t, 1, stats.Removed)
}

func TestDocumentRoundTrip(t *testing.T) {
	t.Parallel()

	doc := classDoc("return;")
	doc.LeafSections = [][]token.Token{token.NewStream().Line("x").Tokens()}

	for _, format := range []surface.Format{surface.FormatJSON, surface.FormatYAML} {
		t.Run(string(format), func(t *testing.T) {
			t.Parallel()

			data, err := surface.Marshal(doc, format)
			require.NoError(t, err)

			got, err := surface.Decode(bytes.NewReader(data), format)
			require.NoError(t, err)
			assert.Equal(t, doc, got)
		})
	}
}

func TestDecodeKindNames(t *testing.T) {
	t.Parallel()

	src := `{"name":"n","tokens":[{"kind":"Keyword","value":"class"},{"kind":"Newline"}]}`
	doc, err := surface.Decode(strings.NewReader(src), surface.FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, []token.Token{token.New(token.Keyword, "class"), token.New(token.Newline, "")}, doc.Tokens)

	_, err = surface.Decode(strings.NewReader(src), surface.Format("toml"))
	require.ErrorIs(t, err, surface.ErrUnknownFormat)
}

func TestLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	data, err := surface.Marshal(&surface.Document{Tokens: token.NewStream().Line("x").Tokens()}, surface.FormatYAML)
	require.NoError(t, err)

	path := filepath.Join(dir, "api.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	doc, err := surface.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "api", doc.Name)
	assert.Len(t, doc.Tokens, 2)

	_, err = surface.Load(filepath.Join(dir, "api.txt"))
	require.ErrorIs(t, err, surface.ErrUnknownFormat)

	_, err = surface.Load(filepath.Join(dir, "missing.json"))
	require.Error(t, err)
}

func TestSurfaceRenderingLeavesStoreUntouched(t *testing.T) {
	t.Parallel()

	doc := func(body string) *surface.Document {
		s := token.NewStream().Section("C", "class C", func(s *token.Stream) {
			s.Section("M", "module M", func(s *token.Stream) {
				s.Section("N", "namespace N", func(s *token.Stream) {
					s.Section("O", "object O", func(s *token.Stream) { s.Line(body) })
				})
			})
		})
		return &surface.Document{Name: "nested", Tokens: s.Tokens()}
	}

	opts := surface.WithSectionOptions(section.Options{MaxDepth: 1})
	before := surface.New(doc("x"), opts)
	after := surface.New(doc("y"), opts)
	require.Equal(t, 1, after.Report().Detached)
	store := after.Builder().Store()
	size := store.Len()

	first := after.Render()
	for range 3 {
		assert.Equal(t, first, after.Render())
	}
	assert.Equal(t, []string{"class C", "module M", "namespace N", "object O", "y"}, texts(first))

	expanded := after.ExpandLeaf(0)
	assert.Equal(t, []string{"namespace N", "object O", "y"}, texts(expanded))
	assert.Equal(t, expanded, after.ExpandLeaf(0))

	stats := linediff.Count(after.RenderDiff(before))
	assert.Equal(t, linediff.Stats{Unchanged: 4, Added: 1, Removed: 1}, stats)

	assert.Equal(t, size, store.Len())
	assert.Equal(t, size, before.Builder().Store().Len())
}
