package codeline_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/codesurface/pkg/codeline"
)

func TestLeafIndex(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		line   codeline.Line
		want   int
		wantOK bool
	}{
		{"placeholder", codeline.Line{Text: "3", Placeholder: true}, 3, true},
		{"padded", codeline.Line{Text: " 12 ", Placeholder: true}, 12, true},
		{"not a placeholder", codeline.Line{Text: "3"}, 0, false},
		{"malformed", codeline.Line{Text: "abc", Placeholder: true}, 0, false},
		{"negative", codeline.Line{Text: "-1", Placeholder: true}, 0, false},
		{"empty", codeline.Line{Placeholder: true}, 0, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, ok := tc.line.LeafIndex()
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestJoinClasses(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a b", codeline.JoinClasses("a", "", " b "))
	assert.Empty(t, codeline.JoinClasses("", " "))
	assert.Equal(t, "x-heading y-content",
		codeline.JoinClasses(codeline.HeadingClass("x"), codeline.ContentClass("y")))
}

func TestHasClass(t *testing.T) {
	t.Parallel()

	line := codeline.Line{Class: "a-content lvl_2_child_0 d-none"}
	assert.True(t, line.HasClass(codeline.HiddenClass))
	assert.True(t, line.HasClass("a-content"))
	assert.False(t, line.HasClass("a"))
}

func TestSectionIDsFromClass(t *testing.T) {
	t.Parallel()

	heading := codeline.Line{Class: "inner-heading outer-content lvl_2_parent_0"}
	id, ok := heading.HeadingSection()
	assert.True(t, ok)
	assert.Equal(t, "inner", id)

	parent, ok := heading.ContentSection()
	assert.True(t, ok)
	assert.Equal(t, "outer", parent)

	_, ok = codeline.Line{Class: "lvl_1_child_0"}.ContentSection()
	assert.False(t, ok)
}
