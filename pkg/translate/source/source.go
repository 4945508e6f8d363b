// Package source translates plain source files into code surface token
// streams, folding brace-delimited or indentation-delimited blocks into
// sections.
package source

import (
	"context"
	"fmt"
	"strings"

	"github.com/yaklabco/codesurface/pkg/langdetect"
	"github.com/yaklabco/codesurface/pkg/token"
	"github.com/yaklabco/codesurface/pkg/translate/slug"
)

// Result is a translated source file.
type Result struct {
	// Language is the lowercase langdetect tag, such as "go" or "python".
	Language string
	Tokens   []token.Token
}

// commentPrefixes mark whole-line comments.
//
//nolint:gochecknoglobals // Read-only lookup table.
var commentPrefixes = []string{"//", "#", "--", "/*", "*", ";"}

// Translate converts content into tokens. The language, and so the fold
// style, is detected from path and content.
func Translate(ctx context.Context, path string, content []byte) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("translate cancelled: %w", err)
	}

	lang := langdetect.ForFile(path, content)
	t := &translator{out: token.NewStream(), ids: slug.NewSet()}

	lines := strings.Split(strings.ReplaceAll(string(content), "\r\n", "\n"), "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}

	switch langdetect.FoldFor(lang) {
	case langdetect.FoldBraces:
		t.braces(lines)
	case langdetect.FoldIndent:
		t.indent(lines)
	default:
		for _, line := range lines {
			t.line(line)
		}
	}

	return &Result{Language: lang, Tokens: t.out.Tokens()}, nil
}

type translator struct {
	out  *token.Stream
	ids  *slug.Set
	open []int // indentation widths of open indent sections
}

// braces opens a section after every line ending in "{" and closes one
// before every line starting with "}".
func (t *translator) braces(lines []string) {
	depth := 0
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "}") && depth > 0 {
			t.out.Close()
			depth--
		}
		if strings.HasSuffix(trimmed, "{") && !isComment(trimmed) {
			t.heading(line)
			depth++
			continue
		}
		t.line(line)
	}
	for range depth {
		t.out.Close()
	}
}

// indent opens a section after every line ending in ":" and closes it at
// the next non-blank line indented no deeper than that line.
func (t *translator) indent(lines []string) {
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed != "" {
			width := len(line) - len(strings.TrimLeft(line, " \t"))
			for len(t.open) > 0 && width <= t.open[len(t.open)-1] {
				t.open = t.open[:len(t.open)-1]
				t.out.Close()
			}
			if strings.HasSuffix(trimmed, ":") && !isComment(trimmed) {
				t.heading(line)
				t.open = append(t.open, width)
				continue
			}
		}
		t.line(line)
	}
	for range t.open {
		t.out.Close()
	}
	t.open = nil
}

func (t *translator) heading(line string) {
	trimmed := strings.TrimSpace(line)
	id := t.ids.Unique(strings.TrimRight(trimmed, "{: "))
	t.out.Heading(id)
	t.text(line)
	t.out.Newline().Open()
}

func (t *translator) line(line string) {
	t.text(line)
	t.out.Newline()
}

// text splits off leading whitespace and classifies comments.
func (t *translator) text(line string) {
	body := strings.TrimLeft(line, " \t")
	if lead := line[:len(line)-len(body)]; lead != "" {
		t.out.Add(token.Whitespace, lead)
	}
	body = strings.TrimRight(body, " \t")
	if body == "" {
		return
	}
	if isComment(body) {
		t.out.Add(token.Comment, body)
		return
	}
	t.out.Text(body)
}

func isComment(s string) bool {
	for _, p := range commentPrefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
