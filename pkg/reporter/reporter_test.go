package reporter_test

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/yaklabco/codesurface/internal/logging"
	"github.com/yaklabco/codesurface/pkg/reporter"
	"github.com/yaklabco/codesurface/pkg/surface"
	"github.com/yaklabco/codesurface/pkg/token"
)

func methodSurface(body ...string) *surface.Surface {
	s := token.NewStream().
		Section("C", "class C", func(s *token.Stream) {
			s.Section("M", "void M()", func(s *token.Stream) {
				for _, line := range body {
					s.Line(line)
				}
			})
		})
	return surface.New(&surface.Document{Name: "t", Tokens: s.Tokens()}, surface.WithLogger(logging.Discard()))
}

func renderDoc(body ...string) *reporter.Document {
	return reporter.NewRenderDocument("t", methodSurface(body...).Render())
}

func diffDoc(before, after string) *reporter.Document {
	b, a := methodSurface(before), methodSurface(after)
	return reporter.NewDiffDocument("t", a.RenderDiff(b), a.SectionsWithDiff(b))
}

func report(t *testing.T, opts reporter.Options, doc *reporter.Document) string {
	t.Helper()
	var buf bytes.Buffer
	opts.Writer = &buf
	if opts.Color == "" {
		opts.Color = "never"
	}
	rep, err := reporter.New(opts)
	require.NoError(t, err)
	require.NoError(t, rep.Report(context.Background(), doc))
	return buf.String()
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"text", "json", "yaml", "html", "summary"} {
		f, err := reporter.ParseFormat(name)
		require.NoError(t, err)
		assert.Equal(t, name, f.String())
		assert.True(t, f.IsValid())
	}

	f, err := reporter.ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, reporter.FormatText, f)

	_, err = reporter.ParseFormat("sarif")
	assert.Error(t, err)
	assert.False(t, reporter.Format("sarif").IsValid())

	_, err = reporter.New(reporter.Options{Format: "sarif"})
	assert.Error(t, err)
}

func TestTextRender(t *testing.T) {
	t.Parallel()

	got := report(t, reporter.Options{ShowHidden: true, ShowSummary: true}, renderDoc("return;"))
	assert.Equal(t, "t\n1 class C\n2   void M()\n3     return;\n3 lines\n", got)
}

func TestTextRenderHidesCollapsedLines(t *testing.T) {
	t.Parallel()

	got := report(t, reporter.Options{}, renderDoc("return;"))
	assert.Equal(t, "t\n1 class C\n", got)
}

func TestTextRenderMarkupAndWidth(t *testing.T) {
	t.Parallel()

	got := report(t, reporter.Options{ShowHidden: true, Markup: true}, renderDoc("a < b;"))
	assert.Contains(t, got, "a &lt; b;")

	got = report(t, reporter.Options{ShowHidden: true, Width: 10}, renderDoc("a very long statement;"))
	for _, line := range strings.Split(strings.TrimSpace(got), "\n") {
		assert.LessOrEqual(t, len([]rune(line)), 10, line)
	}
}

func TestTextDiff(t *testing.T) {
	t.Parallel()

	got := report(t, reporter.Options{ShowSummary: true}, diffDoc("return;", "return 1;"))
	lines := strings.Split(strings.TrimSuffix(got, "\n"), "\n")
	require.Len(t, lines, 6)

	assert.Equal(t, "t", lines[0])
	assert.Equal(t, "1 ~ class C", lines[1])
	assert.Equal(t, "2 ~   void M()", lines[2])
	assert.Equal(t, "3 -     return;", lines[3])
	assert.Equal(t, "3 +     return 1;", lines[4])
	assert.Contains(t, lines[5], "1 added, 1 removed, 2 unchanged")
}

func TestTextDiffWithoutChanges(t *testing.T) {
	t.Parallel()

	got := report(t, reporter.Options{ShowSummary: true}, diffDoc("x;", "x;"))
	assert.Equal(t, "t\n1   class C\nNo differences (3 lines)\n", got)
}

func TestJSON(t *testing.T) {
	t.Parallel()

	var rendered map[string]any
	require.NoError(t, json.Unmarshal([]byte(report(t, reporter.Options{Format: reporter.FormatJSON}, renderDoc("a < b;"))), &rendered))

	assert.Equal(t, "t", rendered["name"])
	lines := rendered["lines"].([]any)
	require.Len(t, lines, 3)
	first := lines[0].(map[string]any)
	assert.Equal(t, "class C", first["text"])
	assert.Contains(t, first["lineClass"], "C-heading")
	assert.EqualValues(t, 1, first["lineNumber"])
	assert.Contains(t, lines[2].(map[string]any)["markup"], "&lt;")

	var diffed map[string]any
	require.NoError(t, json.Unmarshal([]byte(report(t, reporter.Options{Format: reporter.FormatJSON}, diffDoc("x;", "y;"))), &diffed))

	diff := diffed["diff"].([]any)
	require.Len(t, diff, 4)
	assert.Equal(t, "removed", diff[2].(map[string]any)["kind"])
	assert.Equal(t, "added", diff[3].(map[string]any)["kind"])
	assert.Equal(t, true, diff[0].(map[string]any)["hasDescendantDiff"])
	assert.NotEmpty(t, diffed["sectionsWithDiff"])
	assert.EqualValues(t, 1, diffed["stats"].(map[string]any)["added"])
}

func TestYAML(t *testing.T) {
	t.Parallel()

	var out struct {
		Name  string `yaml:"name"`
		Diff  []struct {
			Kind string `yaml:"kind"`
			Line struct {
				Text string `yaml:"text"`
			} `yaml:"line"`
		} `yaml:"diff"`
		Stats struct {
			Added   int `yaml:"added"`
			Removed int `yaml:"removed"`
		} `yaml:"stats"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(report(t, reporter.Options{Format: reporter.FormatYAML}, diffDoc("x;", "y;"))), &out))

	assert.Equal(t, "t", out.Name)
	require.Len(t, out.Diff, 4)
	assert.Equal(t, "removed", out.Diff[2].Kind)
	assert.Equal(t, "x;", out.Diff[2].Line.Text)
	assert.Equal(t, 1, out.Stats.Added)
	assert.Equal(t, 1, out.Stats.Removed)
}

func TestHTML(t *testing.T) {
	t.Parallel()

	got := report(t, reporter.Options{Format: reporter.FormatHTML}, diffDoc("List<T> x;", "List<T> y;"))

	assert.True(t, strings.HasPrefix(got, `<table class="code-surface" data-name="t">`))
	assert.True(t, strings.HasSuffix(got, "</table>\n"))
	assert.Contains(t, got, "List&lt;T&gt; x;")
	assert.NotContains(t, got, "List<T>")
	assert.Contains(t, got, "code-removed")
	assert.Contains(t, got, "code-added")
	assert.Contains(t, got, "code-has-diff")
	assert.Contains(t, got, `<td class="line-number">1</td>`)
	assert.Contains(t, got, "M-content")
}

func TestHTMLPlaceholder(t *testing.T) {
	t.Parallel()

	doc := &surface.Document{
		Name:         "p",
		Tokens:       token.NewStream().Line("before").Placeholder(0).Tokens(),
		LeafSections: [][]token.Token{token.NewStream().Line("inner").Tokens()},
	}
	s := surface.New(doc, surface.WithLazyLeaves(), surface.WithLogger(logging.Discard()))

	got := report(t, reporter.Options{Format: reporter.FormatHTML}, reporter.NewRenderDocument("p", s.Render()))
	assert.Contains(t, got, `data-leaf-section="0"`)
	assert.NotContains(t, got, "inner")
}

func TestSummary(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "t: 3 lines\n", report(t, reporter.Options{Format: reporter.FormatSummary}, renderDoc("x;")))
	assert.Contains(t, report(t, reporter.Options{Format: reporter.FormatSummary}, diffDoc("x;", "y;")),
		"t: 1 added, 1 removed, 2 unchanged")
}

func TestNilDocument(t *testing.T) {
	t.Parallel()

	assert.Empty(t, report(t, reporter.Options{}, nil))
	assert.Empty(t, report(t, reporter.Options{Format: reporter.FormatHTML}, nil))
	assert.Equal(t, "{\n  \"stats\": {\n    \"unchanged\": 0,\n    \"added\": 0,\n    \"removed\": 0\n  }\n}\n",
		report(t, reporter.Options{Format: reporter.FormatJSON}, nil))
}
