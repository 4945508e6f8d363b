package source_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/codesurface/pkg/codeline"
	"github.com/yaklabco/codesurface/pkg/render"
	"github.com/yaklabco/codesurface/pkg/section"
	"github.com/yaklabco/codesurface/pkg/translate/source"
)

func flatten(t *testing.T, path, src string) (string, []codeline.Line) {
	t.Helper()

	res, err := source.Translate(context.Background(), path, []byte(src))
	require.NoError(t, err)

	built := section.NewBuilder(nil, section.DefaultOptions()).Build(res.Tokens)
	require.True(t, built.Report.Clean(), "%+v", built.Report)

	lines := render.NewRenderer(nil).Flatten(built.Tree)
	for i := range lines {
		lines[i].Class = render.StripHierarchy(lines[i].Class)
	}
	return res.Language, lines
}

func TestTranslateBraces(t *testing.T) {
	t.Parallel()

	src := "package main\n\n// Run starts.\nfunc Run() {\n\tif ok {\n\t\treturn\n\t}\n}\n"
	lang, got := flatten(t, "main.go", src)
	assert.Equal(t, "go", lang)

	var texts, classes []string
	for _, l := range got {
		texts = append(texts, l.Text)
		classes = append(classes, l.Class)
	}
	assert.Equal(t, []string{"package main", "", "// Run starts.", "func Run() {", "\tif ok {", "\t\treturn", "\t}", "}"}, texts)
	assert.Equal(t, []string{
		"", "", "",
		"func-run-heading",
		"if-ok-heading func-run-content",
		"if-ok-content",
		"func-run-content",
		"",
	}, classes)
	assert.Contains(t, got[2].Markup, `<span class="comment">`)
}

func TestTranslateIndent(t *testing.T) {
	t.Parallel()

	src := "class A:\n    def f(self):\n        pass\n\n    x = 1\ny = 2\n"
	lang, got := flatten(t, "a.py", src)
	assert.Equal(t, "python", lang)

	var classes []string
	for _, l := range got {
		classes = append(classes, l.Class)
	}
	assert.Equal(t, []string{
		"class-a-heading",
		"def-f-self-heading class-a-content",
		"def-f-self-content",
		"def-f-self-content",
		"class-a-content",
		"",
	}, classes)
}

func TestTranslatePlain(t *testing.T) {
	t.Parallel()

	lang, got := flatten(t, "notes.txt", "a {\nb\n")
	assert.Equal(t, "text", lang)
	require.Len(t, got, 2)
	assert.Empty(t, got[0].Class)
}

func TestTranslateUnbalancedBraces(t *testing.T) {
	t.Parallel()

	_, got := flatten(t, "x.go", "}\nfunc f() {\n\tx()\n")
	require.Len(t, got, 3)
	assert.Equal(t, "func-f-content", got[2].Class)
}

func TestTranslateCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := source.Translate(ctx, "x.go", nil)
	require.ErrorIs(t, err, context.Canceled)
}
