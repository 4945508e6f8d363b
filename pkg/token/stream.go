package token

import "strconv"

// Stream appends tokens fluently. Translators use it to emit surfaces.
type Stream struct {
	tokens []Token
}

// NewStream returns an empty stream.
func NewStream() *Stream {
	return &Stream{}
}

// Add appends a token of any kind.
func (s *Stream) Add(kind Kind, value string) *Stream {
	s.tokens = append(s.tokens, New(kind, value))
	return s
}

// Text appends plain text.
func (s *Stream) Text(value string) *Stream { return s.Add(Text, value) }

// Keyword appends a keyword.
func (s *Stream) Keyword(value string) *Stream { return s.Add(Keyword, value) }

// Type appends a type name.
func (s *Stream) Type(value string) *Stream { return s.Add(TypeName, value) }

// Member appends a member name.
func (s *Stream) Member(value string) *Stream { return s.Add(MemberName, value) }

// Punct appends punctuation.
func (s *Stream) Punct(value string) *Stream { return s.Add(Punctuation, value) }

// Space appends a single space.
func (s *Stream) Space() *Stream { return s.Add(Whitespace, " ") }

// Newline ends the current line.
func (s *Stream) Newline() *Stream { return s.Add(Newline, "") }

// Heading marks the current line as the heading of section id.
func (s *Stream) Heading(id string) *Stream { return s.Add(SectionHeading, id) }

// Open starts the content of the last heading.
func (s *Stream) Open() *Stream { return s.Add(SectionContentStart, "") }

// Close ends the innermost section content.
func (s *Stream) Close() *Stream { return s.Add(SectionContentEnd, "") }

// Placeholder appends a reference to leaf section idx.
func (s *Stream) Placeholder(idx int) *Stream {
	return s.Add(LeafSectionPlaceholder, strconv.Itoa(idx))
}

// Line appends a text line followed by a newline.
func (s *Stream) Line(text string) *Stream {
	return s.Text(text).Newline()
}

// Section appends a heading line for id and the content produced by body.
func (s *Stream) Section(id, heading string, body func(*Stream)) *Stream {
	s.Heading(id).Text(heading).Newline().Open()
	if body != nil {
		body(s)
	}
	return s.Close()
}

// Tokens returns a copy of the appended tokens.
func (s *Stream) Tokens() []Token {
	return Clone(s.tokens)
}

// Len returns the number of appended tokens.
func (s *Stream) Len() int {
	return len(s.tokens)
}
