package linediff_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/codesurface/pkg/linediff"
)

func TestInlineSpans(t *testing.T) {
	t.Parallel()

	spans := linediff.InlineSpans("func Get(id int)", "func Get(id string)")

	var before, after string
	for _, s := range spans {
		switch s.Kind {
		case linediff.Unchanged:
			before += s.Text
			after += s.Text
		case linediff.Removed:
			before += s.Text
		case linediff.Added:
			after += s.Text
		}
	}

	assert.Equal(t, "func Get(id int)", before)
	assert.Equal(t, "func Get(id string)", after)
	assert.Equal(t, linediff.Unchanged, spans[0].Kind)
}

func TestInlineSpansEqual(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []linediff.Span{{Kind: linediff.Unchanged, Text: "x"}}, linediff.InlineSpans("x", "x"))
	assert.Nil(t, linediff.InlineSpans("", ""))
}

func TestPairs(t *testing.T) {
	t.Parallel()

	lines := linediff.Strings(split("AXYB"), split("AZB"))
	// U A, R X, R Y, A Z, U B
	pairs := linediff.Pairs(lines)

	assert.Equal(t, []linediff.Pair{{Removed: 1, Added: 3}}, pairs)
}

func TestKindStringAndMarker(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "added", linediff.Added.String())
	assert.Equal(t, "+", linediff.Added.Marker())
	assert.Equal(t, "-", linediff.Removed.Marker())
	assert.Equal(t, " ", linediff.Unchanged.Marker())
}
