package linediff

import (
	"github.com/sergi/go-diff/diffmatchpatch"
)

// Span is a character-level fragment of a changed line pair.
type Span struct {
	Kind Kind   `json:"kind" yaml:"kind"`
	Text string `json:"text" yaml:"text"`
}

// InlineSpans computes the character-level changes between a removed line and
// the added line that replaces it. Adjacent fragments of the same kind are
// merged and the result is cleaned up for human reading.
func InlineSpans(before, after string) []Span {
	if before == after {
		if before == "" {
			return nil
		}
		return []Span{{Kind: Unchanged, Text: before}}
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(before, after, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	spans := make([]Span, 0, len(diffs))
	for _, d := range diffs {
		if d.Text == "" {
			continue
		}

		var kind Kind
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			kind = Added
		case diffmatchpatch.DiffDelete:
			kind = Removed
		default:
			kind = Unchanged
		}

		if n := len(spans); n > 0 && spans[n-1].Kind == kind {
			spans[n-1].Text += d.Text
			continue
		}
		spans = append(spans, Span{Kind: kind, Text: d.Text})
	}
	return spans
}

// Pair is a removed line matched with the added line that replaced it.
type Pair struct {
	Removed int
	Added   int
}

// Pairs matches removed and added lines within each edit run, in order,
// so callers can highlight inline changes. Indices refer to lines.
func Pairs[V any](lines []Line[V]) []Pair {
	var pairs []Pair
	var removed, added []int

	flush := func() {
		for k := 0; k < len(removed) && k < len(added); k++ {
			pairs = append(pairs, Pair{Removed: removed[k], Added: added[k]})
		}
		removed, added = removed[:0], added[:0]
	}

	for i, l := range lines {
		switch l.Kind {
		case Removed:
			if len(added) > 0 {
				flush()
			}
			removed = append(removed, i)
		case Added:
			added = append(added, i)
		default:
			flush()
		}
	}
	flush()

	return pairs
}
