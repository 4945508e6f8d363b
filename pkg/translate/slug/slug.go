// Package slug derives section ids from heading text.
package slug

import (
	"strconv"
	"strings"
	"unicode"
)

// Make lowercases s, keeps letters and digits, and joins the remaining runs
// with single hyphens. It returns "section" for text with no usable runes.
func Make(s string) string {
	var b strings.Builder
	pendingDash := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
			continue
		}
		pendingDash = true
	}
	if b.Len() == 0 {
		return "section"
	}
	return b.String()
}

// Set hands out ids that are unique within one document.
type Set struct {
	seen map[string]int
}

// NewSet returns an empty set.
func NewSet() *Set {
	return &Set{seen: make(map[string]int)}
}

// Unique returns Make(s), suffixed with "-1", "-2", ... on repeats.
func (u *Set) Unique(s string) string {
	base := Make(s)
	n := u.seen[base]
	u.seen[base] = n + 1
	if n == 0 {
		return base
	}
	return base + "-" + strconv.Itoa(n)
}
