package section

import (
	"strconv"
	"strings"

	"github.com/yaklabco/codesurface/pkg/codeline"
	"github.com/yaklabco/codesurface/pkg/leaf"
	"github.com/yaklabco/codesurface/pkg/token"
	"github.com/yaklabco/codesurface/pkg/tree"
)

// noNode marks the absence of a pending heading.
const noNode = -1

// Result is the output of a build.
type Result struct {
	// Tree holds the built lines under a synthetic root.
	Tree *tree.Tree[codeline.Line]

	// Report lists the anomalies recovered from.
	Report Report
}

// Builder converts token streams into section trees. It is safe for
// concurrent use. Build appends to the leaf store only when a limit detaches
// a section; builders returned by ForLeaf never append.
type Builder struct {
	opts  Options
	store *leaf.Store
}

// NewBuilder creates a builder that detaches oversized sections into store.
// A nil store gets a fresh, private one.
func NewBuilder(store *leaf.Store, opts Options) *Builder {
	if store == nil {
		store = leaf.NewStore()
	}
	return &Builder{opts: opts, store: store}
}

// Store returns the leaf store the builder detaches into.
func (b *Builder) Store() *leaf.Store {
	return b.store
}

// Options returns the builder options.
func (b *Builder) Options() Options {
	return b.opts
}

// WithEnclosingSection returns a copy of b that builds content of section id.
func (b *Builder) WithEnclosingSection(id string) *Builder {
	opts := b.opts
	opts.EnclosingSection = id
	return &Builder{opts: opts, store: b.store}
}

// ForLeaf returns a copy of b for materializing a stored section of section
// id. Both limits are off, so nested sections stay inline and the shared
// store is only read.
func (b *Builder) ForLeaf(id string) *Builder {
	return &Builder{opts: Options{EnclosingSection: id}, store: b.store}
}

// Build converts tokens into a section tree.
func (b *Builder) Build(tokens []token.Token) *Result {
	st := newBuildState(b, tokens)
	st.run()
	return &Result{Tree: st.tree, Report: st.report}
}

// frame is an open section.
type frame struct {
	node    int
	id      string
	virtual bool // the enclosing section, never closed by the stream
}

type buildState struct {
	b      *Builder
	tokens []token.Token
	tree   *tree.Tree[codeline.Line]
	report Report

	frames []frame
	line   lineBuffer

	pendingHeading int
	pendingID      string

	lineNumber    int
	documentation bool
	deprecated    bool
	skipDiff      int

	// matchEnd[i] is the index of the SectionContentEnd closing the start at
	// i, or len(tokens) when the start is never closed.
	matchEnd map[int]int
	// newlines[i] counts Newline tokens in tokens[:i].
	newlines []int
}

func newBuildState(b *Builder, tokens []token.Token) *buildState {
	st := &buildState{
		b:              b,
		tokens:         tokens,
		tree:           tree.New(codeline.Line{}),
		pendingHeading: noNode,
	}
	if b.opts.EnclosingSection != "" {
		st.frames = append(st.frames, frame{node: tree.RootID, id: b.opts.EnclosingSection, virtual: true})
	}
	if b.opts.detaches() {
		st.indexSections()
	}
	return st
}

// indexSections pairs every content start with its end and counts newlines
// so the limits can be checked without rescanning.
func (st *buildState) indexSections() {
	st.matchEnd = make(map[int]int)
	st.newlines = make([]int, len(st.tokens)+1)

	var open []int
	for i, tok := range st.tokens {
		st.newlines[i+1] = st.newlines[i]
		switch tok.Kind {
		case token.Newline:
			st.newlines[i+1]++
		case token.SectionContentStart:
			open = append(open, i)
		case token.SectionContentEnd:
			if len(open) > 0 {
				st.matchEnd[open[len(open)-1]] = i
				open = open[:len(open)-1]
			}
		}
	}
	for _, start := range open {
		st.matchEnd[start] = len(st.tokens)
	}
}

func (st *buildState) run() {
	for i := 0; i < len(st.tokens); i++ {
		tok := st.tokens[i]

		switch tok.Kind {
		case token.Newline:
			st.flush()
		case token.SectionHeading:
			st.line.markHeading(tok.Value)
		case token.SectionContentStart:
			i = st.openSection(i)
		case token.SectionContentEnd:
			st.closeSection()
		case token.LeafSectionPlaceholder:
			st.flushPending()
			st.addPlaceholder(tok.Value)
		case token.LineIDMarker:
			st.line.id = tok.Value
		case token.DocumentRangeStart:
			st.documentation = true
		case token.DocumentRangeEnd:
			st.documentation = false
		case token.DeprecatedRangeStart:
			st.deprecated = true
		case token.DeprecatedRangeEnd:
			st.deprecated = false
		case token.SkipDiffRangeStart:
			st.skipDiff++
		case token.SkipDiffRangeEnd:
			if st.skipDiff > 0 {
				st.skipDiff--
			}
		case token.ExternalLinkStart:
			st.line.openLink(tok.Value)
		case token.ExternalLinkEnd:
			st.line.closeLink()
		case token.Text, token.Whitespace, token.Punctuation, token.Keyword, token.TypeName,
			token.MemberName, token.StringLiteral, token.Literal, token.Comment:
			st.write(tok)
		default:
			st.report.UnknownKinds++
			st.write(tok)
		}
	}

	st.flushPending()
	for _, f := range st.frames {
		if !f.virtual {
			st.report.UnclosedSections++
		}
	}
}

func (st *buildState) write(tok token.Token) {
	if st.documentation {
		st.line.documentation = true
	}
	if st.deprecated {
		st.line.deprecated = true
	}
	st.line.write(tok, st.skipDiff > 0)
}

// top returns the innermost open frame.
func (st *buildState) top() (frame, bool) {
	if len(st.frames) == 0 {
		return frame{}, false
	}
	return st.frames[len(st.frames)-1], true
}

// parent returns the node new lines attach to.
func (st *buildState) parent() int {
	if f, ok := st.top(); ok {
		return f.node
	}
	return tree.RootID
}

// depth returns the number of open sections started by the stream itself.
func (st *buildState) depth() int {
	depth := 0
	for _, f := range st.frames {
		if !f.virtual {
			depth++
		}
	}
	return depth
}

// contentClass returns the class content lines receive in the current scope.
func (st *buildState) contentClass() string {
	if f, ok := st.top(); ok && f.id != "" {
		return codeline.ContentClass(f.id)
	}
	return ""
}

// flushPending flushes the line buffer only if it holds something.
func (st *buildState) flushPending() {
	if !st.line.empty() {
		st.flush()
	}
}

// flush turns the line buffer into a node.
func (st *buildState) flush() {
	buf := &st.line
	st.lineNumber++

	line := codeline.Line{
		Text:          buf.text.String(),
		Markup:        buf.markup.String(),
		DiffKey:       buf.diffKey.String(),
		ID:            buf.id,
		LineNumber:    st.lineNumber,
		Indent:        st.depth(),
		Documentation: buf.documentation || st.documentation,
		Deprecated:    buf.deprecated,
	}

	if buf.heading {
		id := buf.headingID
		if id == "" {
			id = strings.TrimSpace(line.Text)
		}
		line.Class = codeline.JoinClasses(codeline.HeadingClass(id), st.contentClass())
		node := st.tree.Add(st.parent(), line)
		st.pendingHeading = node
		st.pendingID = id
	} else {
		line.Class = st.contentClass()
		st.tree.Add(st.parent(), line)
		if buf.tokens > 0 {
			st.pendingHeading = noNode
		}
	}

	buf.reset()
}

// openSection handles a SectionContentStart at index i and returns the index
// the main loop should continue from.
func (st *buildState) openSection(i int) int {
	st.flushPending()

	heading, id := st.pendingHeading, st.pendingID
	st.pendingHeading = noNode

	if heading == noNode {
		// Content with no heading: keep the current scope.
		st.report.OrphanStarts++
		f, _ := st.top()
		st.frames = append(st.frames, frame{node: st.parent(), id: f.id})
		return i
	}

	if end, ok := st.shouldDetach(i); ok {
		st.detach(heading, id, st.tokens[i+1:end])
		if end >= len(st.tokens) {
			st.report.UnclosedSections++
		}
		return end
	}

	st.frames = append(st.frames, frame{node: heading, id: id})
	return i
}

// shouldDetach reports whether the section starting at i exceeds a limit and
// returns the index of its end.
func (st *buildState) shouldDetach(i int) (int, bool) {
	if st.matchEnd == nil {
		return 0, false
	}
	end, ok := st.matchEnd[i]
	if !ok {
		return 0, false
	}

	opts := st.b.opts
	if opts.MaxDepth > 0 && st.depth()+1 > opts.MaxDepth {
		return end, true
	}
	if opts.MaxLines > 0 && st.newlines[end]-st.newlines[i+1] > opts.MaxLines {
		return end, true
	}
	return end, false
}

// detach stores content in the leaf store and adds a placeholder under heading.
func (st *buildState) detach(heading int, id string, content []token.Token) {
	idx := st.b.store.Append(content)
	st.report.Detached++
	st.lineNumber++

	st.tree.Add(heading, codeline.Line{
		Text:        strconv.Itoa(idx),
		Class:       codeline.ContentClass(id),
		LineNumber:  st.lineNumber,
		Indent:      st.depth() + 1,
		Placeholder: true,
	})
	st.tree.MarkDetachedLeafParent(heading)
}

// addPlaceholder adds a placeholder for a section the producer detached.
func (st *buildState) addPlaceholder(value string) {
	parent := st.parent()
	st.lineNumber++

	line := codeline.Line{
		Text:        value,
		Class:       st.contentClass(),
		LineNumber:  st.lineNumber,
		Indent:      st.depth(),
		Placeholder: true,
	}
	if idx, ok := line.LeafIndex(); !ok || idx >= st.b.store.Len() {
		st.report.InvalidPlaceholders++
	}

	st.tree.Add(parent, line)
	if parent != tree.RootID {
		st.tree.MarkDetachedLeafParent(parent)
	}
	st.pendingHeading = noNode
}

// closeSection handles a SectionContentEnd.
func (st *buildState) closeSection() {
	st.flushPending()
	st.pendingHeading = noNode

	f, ok := st.top()
	if !ok || f.virtual {
		st.report.UnmatchedEnds++
		return
	}
	st.frames = st.frames[:len(st.frames)-1]
}
