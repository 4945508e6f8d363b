package markdown_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/codesurface/pkg/codeline"
	"github.com/yaklabco/codesurface/pkg/render"
	"github.com/yaklabco/codesurface/pkg/section"
	"github.com/yaklabco/codesurface/pkg/token"
	"github.com/yaklabco/codesurface/pkg/translate/markdown"
)

const readme = "# Title\n\nIntro text.\n\n## Usage\n\nRun it:\n\n```go\npackage main\n```\n\n## Notes\n\n- one\n- two\n"

func translate(t *testing.T, flavor, src string) []codeline.Line {
	t.Helper()

	tokens, err := markdown.New(flavor).Translate(context.Background(), []byte(src))
	require.NoError(t, err)

	res := section.NewBuilder(nil, section.DefaultOptions()).Build(tokens)
	require.True(t, res.Report.Clean(), "%+v", res.Report)

	lines := render.NewRenderer(nil).Flatten(res.Tree)
	for i := range lines {
		lines[i].Class = render.StripHierarchy(lines[i].Class)
	}
	return lines
}

func TestTranslateSections(t *testing.T) {
	t.Parallel()

	got := translate(t, markdown.FlavorCommonMark, readme)

	var texts, classes []string
	for _, l := range got {
		texts = append(texts, l.Text)
		classes = append(classes, l.Class)
	}

	assert.Equal(t, []string{
		"# Title",
		"Intro text.",
		"## Usage",
		"Run it:",
		"```go",
		"package main",
		"```",
		"## Notes",
		"- one",
		"- two",
	}, texts)
	assert.Equal(t, []string{
		"title-heading",
		"title-content",
		"usage-heading title-content",
		"usage-content",
		"code-go-heading usage-content",
		"code-go-content",
		"usage-content",
		"notes-heading title-content",
		"notes-content",
		"notes-content",
	}, classes)
	assert.Equal(t, "title", got[0].ID)
}

func TestTranslateInlines(t *testing.T) {
	t.Parallel()

	got := translate(t, markdown.FlavorCommonMark, "Use `go test` and **see** [docs](https://example.com).\nNext line.\n")
	require.Len(t, got, 2)
	assert.Equal(t, "Use `go test` and **see** docs.", got[0].Text)
	assert.Contains(t, got[0].Markup, `<span class="literal">go test</span>`)
	assert.Contains(t, got[0].Markup, `<a href="https://example.com">docs</a>`)
	assert.Equal(t, "Next line.", got[1].Text)
}

func TestTranslateDuplicateHeadings(t *testing.T) {
	t.Parallel()

	got := translate(t, markdown.FlavorCommonMark, "## A\n\nx\n\n## A\n\ny\n")
	assert.Equal(t, "a-heading", got[0].Class)
	assert.Equal(t, "a-1-heading", got[2].Class)
	assert.Equal(t, "a-1-content", got[3].Class)
}

func TestTranslateQuotesAndOrderedLists(t *testing.T) {
	t.Parallel()

	got := translate(t, markdown.FlavorCommonMark, "> quoted\n> more\n\n3. three\n4. four\n")
	var texts []string
	for _, l := range got {
		texts = append(texts, l.Text)
	}
	assert.Equal(t, []string{"> quoted", "> more", "3. three", "4. four"}, texts)
}

func TestTranslateGFMTable(t *testing.T) {
	t.Parallel()

	tr := markdown.New(markdown.FlavorGFM)
	assert.Equal(t, markdown.FlavorGFM, tr.Flavor())

	got := translate(t, markdown.FlavorGFM, "| a | b |\n|---|---|\n| 1 | 2 |\n")
	require.Len(t, got, 3)
	assert.Equal(t, "| a | b |", got[0].Text)
	assert.Equal(t, "| --- | --- |", got[1].Text)
	assert.Equal(t, "| 1 | 2 |", got[2].Text)
}

func TestTranslateUnknownFlavor(t *testing.T) {
	t.Parallel()

	assert.Equal(t, markdown.FlavorCommonMark, markdown.New("bogus").Flavor())
}

func TestTranslateCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := markdown.New("").Translate(ctx, []byte("# x"))
	require.ErrorIs(t, err, context.Canceled)
}

func TestTranslateBalancesSections(t *testing.T) {
	t.Parallel()

	tokens, err := markdown.New("").Translate(context.Background(), []byte("# a\n### c\n## b\n#### d\n"))
	require.NoError(t, err)

	depth := 0
	for _, tok := range tokens {
		switch tok.Kind {
		case token.SectionContentStart:
			depth++
		case token.SectionContentEnd:
			depth--
		}
		assert.GreaterOrEqual(t, depth, 0)
	}
	assert.Zero(t, depth)
}
