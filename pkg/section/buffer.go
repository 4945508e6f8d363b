package section

import (
	"strings"

	"github.com/yuin/goldmark/util"

	"github.com/yaklabco/codesurface/pkg/token"
)

// markupClasses maps text-bearing kinds to the span class used in markup.
//
//nolint:gochecknoglobals // Read-only lookup table.
var markupClasses = map[token.Kind]string{
	token.Keyword:       "keyword",
	token.TypeName:      "type",
	token.MemberName:    "member",
	token.StringLiteral: "string",
	token.Literal:       "literal",
	token.Comment:       "comment",
}

// lineBuffer accumulates the tokens of the line being built.
type lineBuffer struct {
	text    strings.Builder
	markup  strings.Builder
	diffKey strings.Builder

	id        string
	headingID string
	heading   bool
	tokens    int

	documentation bool
	deprecated    bool
}

// empty reports whether nothing has been written since the last reset.
func (b *lineBuffer) empty() bool {
	return b.tokens == 0 && !b.heading
}

func (b *lineBuffer) reset() {
	*b = lineBuffer{}
}

// write appends a text-bearing token.
func (b *lineBuffer) write(tok token.Token, skipDiff bool) {
	b.tokens++
	b.text.WriteString(tok.Value)
	if !skipDiff {
		b.diffKey.WriteString(tok.Value)
	}

	escaped := string(util.EscapeHTML([]byte(tok.Value)))
	if class, ok := markupClasses[tok.Kind]; ok && tok.Value != "" {
		b.markup.WriteString(`<span class="`)
		b.markup.WriteString(class)
		b.markup.WriteString(`">`)
		b.markup.WriteString(escaped)
		b.markup.WriteString("</span>")
		return
	}
	b.markup.WriteString(escaped)
}

// openLink starts an anchor in the markup only.
func (b *lineBuffer) openLink(target string) {
	b.tokens++
	href := util.EscapeHTML(util.URLEscape([]byte(target), false))
	b.markup.WriteString(`<a href="`)
	b.markup.Write(href)
	b.markup.WriteString(`">`)
}

func (b *lineBuffer) closeLink() {
	b.tokens++
	b.markup.WriteString("</a>")
}

// markHeading turns the current line into a heading for section id.
func (b *lineBuffer) markHeading(id string) {
	b.heading = true
	b.headingID = id
}
