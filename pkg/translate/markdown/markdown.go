// Package markdown translates Markdown documents into code surface token
// streams. Headings become foldable sections nested by heading level and
// fenced code blocks become sections headed by their language.
package markdown

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/codesurface/pkg/langdetect"
	"github.com/yaklabco/codesurface/pkg/token"
	"github.com/yaklabco/codesurface/pkg/translate/slug"
)

// Supported Markdown flavors.
const (
	FlavorCommonMark = "commonmark"
	FlavorGFM        = "gfm"
)

// Translator converts Markdown to tokens. It is safe for concurrent use.
type Translator struct {
	flavor string
	md     goldmark.Markdown
}

// New creates a translator for flavor. Unknown flavors fall back to
// CommonMark.
func New(flavor string) *Translator {
	var opts []goldmark.Option
	if flavor == FlavorGFM {
		opts = append(opts, goldmark.WithExtensions(extension.GFM))
	} else {
		flavor = FlavorCommonMark
	}
	return &Translator{flavor: flavor, md: goldmark.New(opts...)}
}

// Flavor returns the configured flavor.
func (t *Translator) Flavor() string {
	return t.flavor
}

// Translate parses content and returns its token stream.
func (t *Translator) Translate(ctx context.Context, content []byte) ([]token.Token, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("translate cancelled: %w", err)
	}

	doc := t.md.Parser().Parse(text.NewReader(content), parser.WithContext(parser.NewContext()))

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("translate cancelled: %w", err)
	}

	e := &emitter{src: content, out: token.NewStream(), ids: slug.NewSet()}
	for child := doc.FirstChild(); child != nil; child = child.NextSibling() {
		e.block(child, &prefix{})
	}
	e.closeTo(0)
	return e.out.Tokens(), nil
}

// prefix yields the text that starts each emitted line of a block: first
// for the block's first line, rest afterwards.
type prefix struct {
	first, rest string
	used        bool
}

func (p *prefix) next() string {
	if p.used {
		return p.rest
	}
	p.used = true
	return p.first
}

func (p *prefix) nested(first, rest string) *prefix {
	head := p.next()
	return &prefix{first: head + first, rest: p.rest + rest}
}

type emitter struct {
	src    []byte
	out    *token.Stream
	ids    *slug.Set
	levels []int
}

// closeTo closes open heading sections of level >= level.
func (e *emitter) closeTo(level int) {
	for len(e.levels) > 0 && e.levels[len(e.levels)-1] >= level {
		e.levels = e.levels[:len(e.levels)-1]
		e.out.Close()
	}
}

func (e *emitter) startLine(p *prefix) {
	if s := p.next(); s != "" {
		e.out.Punct(s)
	}
}

func (e *emitter) block(n ast.Node, p *prefix) {
	switch n := n.(type) {
	case *ast.Heading:
		e.heading(n)
	case *ast.Paragraph, *ast.TextBlock:
		e.startLine(p)
		e.inlines(n, p)
		e.out.Newline()
	case *ast.List:
		e.list(n, p)
	case *ast.Blockquote:
		q := p.nested("> ", "> ")
		for child := n.FirstChild(); child != nil; child = child.NextSibling() {
			e.block(child, q)
		}
	case *ast.FencedCodeBlock:
		e.fenced(n, p)
	case *ast.CodeBlock:
		e.lines(n.Lines(), p, "    ")
	case *ast.ThematicBreak:
		e.startLine(p)
		e.out.Punct("---").Newline()
	case *ast.HTMLBlock:
		e.lines(n.Lines(), p, "")
		if n.HasClosure() {
			e.startLine(p)
			e.out.Text(strings.TrimRight(string(n.ClosureLine.Value(e.src)), "\r\n")).Newline()
		}
	case *east.Table:
		e.table(n, p)
	default:
		for child := n.FirstChild(); child != nil; child = child.NextSibling() {
			e.block(child, p)
		}
	}
}

func (e *emitter) heading(h *ast.Heading) {
	e.closeTo(h.Level)

	id := e.ids.Unique(plainText(h, e.src))
	e.out.Add(token.LineIDMarker, id).
		Punct(strings.Repeat("#", h.Level) + " ").
		Heading(id)
	e.inlines(h, &prefix{})
	e.out.Newline().Open()

	e.levels = append(e.levels, h.Level)
}

func (e *emitter) list(l *ast.List, p *prefix) {
	i := 0
	for item := l.FirstChild(); item != nil; item = item.NextSibling() {
		marker := string([]byte{l.Marker, ' '})
		if l.IsOrdered() {
			marker = strconv.Itoa(l.Start+i) + string([]byte{l.Marker, ' '})
		}
		ip := p.nested(marker, strings.Repeat(" ", len(marker)))
		for child := item.FirstChild(); child != nil; child = child.NextSibling() {
			e.block(child, ip)
		}
		i++
	}
}

func (e *emitter) fenced(n *ast.FencedCodeBlock, p *prefix) {
	var code strings.Builder
	lines := n.Lines()
	for i := range lines.Len() {
		seg := lines.At(i)
		code.Write(seg.Value(e.src))
	}

	var info string
	if n.Info != nil {
		info = string(n.Info.Segment.Value(e.src))
	}
	lang := langdetect.FromInfo(info, []byte(code.String()))
	id := e.ids.Unique("code-" + lang)

	e.startLine(p)
	e.out.Punct("```").Heading(id).Keyword(lang).Newline().Open()
	e.lines(lines, &prefix{first: p.rest, rest: p.rest}, "")
	e.out.Close()
	e.startLine(p)
	e.out.Punct("```").Newline()
}

// lines emits raw source lines, such as code or HTML, one per display line.
func (e *emitter) lines(segs *text.Segments, p *prefix, indent string) {
	for i := range segs.Len() {
		seg := segs.At(i)
		e.startLine(p)
		if indent != "" {
			e.out.Add(token.Whitespace, indent)
		}
		if line := strings.TrimRight(string(seg.Value(e.src)), "\r\n"); line != "" {
			e.out.Text(line)
		}
		e.out.Newline()
	}
}

func (e *emitter) table(t *east.Table, p *prefix) {
	for row := t.FirstChild(); row != nil; row = row.NextSibling() {
		e.startLine(p)
		cells := 0
		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			e.out.Punct("| ")
			e.inlines(cell, p)
			e.out.Space()
			cells++
		}
		e.out.Punct("|").Newline()

		if _, ok := row.(*east.TableHeader); ok {
			e.startLine(p)
			e.out.Punct(strings.Repeat("| --- ", cells) + "|").Newline()
		}
	}
}

// inlines emits the inline children of n. Line breaks continue the block
// on a new display line.
func (e *emitter) inlines(n ast.Node, p *prefix) {
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		e.inline(child, p)
	}
}

func (e *emitter) inline(n ast.Node, p *prefix) {
	switch n := n.(type) {
	case *ast.Text:
		e.out.Text(string(n.Value(e.src)))
		if n.SoftLineBreak() || n.HardLineBreak() {
			e.out.Newline()
			e.startLine(p)
		}
	case *ast.String:
		e.out.Text(string(n.Value))
	case *ast.Emphasis:
		marks := strings.Repeat("*", n.Level)
		e.out.Punct(marks)
		e.inlines(n, p)
		e.out.Punct(marks)
	case *ast.CodeSpan:
		e.out.Punct("`").Add(token.Literal, plainText(n, e.src)).Punct("`")
	case *ast.Link:
		e.out.Add(token.ExternalLinkStart, string(n.Destination))
		e.inlines(n, p)
		e.out.Add(token.ExternalLinkEnd, "")
	case *ast.AutoLink:
		e.out.Add(token.ExternalLinkStart, string(n.URL(e.src))).
			Text(string(n.Label(e.src))).
			Add(token.ExternalLinkEnd, "")
	case *ast.Image:
		e.out.Punct("![").Text(plainText(n, e.src)).Punct("]")
	case *ast.RawHTML:
		for i := range n.Segments.Len() {
			seg := n.Segments.At(i)
			e.out.Text(string(seg.Value(e.src)))
		}
	case *east.Strikethrough:
		e.out.Punct("~~")
		e.inlines(n, p)
		e.out.Punct("~~")
	case *east.TaskCheckBox:
		if n.IsChecked {
			e.out.Punct("[x] ")
		} else {
			e.out.Punct("[ ] ")
		}
	default:
		e.inlines(n, p)
	}
}

// plainText concatenates the text of all descendants of n.
func plainText(n ast.Node, src []byte) string {
	var b strings.Builder

	//nolint:errcheck // the walker never returns an error
	ast.Walk(n, func(child ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch c := child.(type) {
		case *ast.Text:
			b.Write(c.Value(src))
			if c.SoftLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(c.Value)
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}
