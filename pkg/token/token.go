// Package token defines the classified token stream that language translators
// produce and the section builder consumes.
//
// The numeric value of every Kind is part of the stored document format and
// must never be renumbered or reordered.
package token

import (
	"fmt"
	"strings"
)

// Kind classifies a token in a code surface.
type Kind uint16

// Token kinds. Values are persisted; append new kinds at the end only.
const (
	Text                   Kind = 0
	Newline                Kind = 1
	Whitespace             Kind = 2
	Punctuation            Kind = 3
	Keyword                Kind = 4
	LineIDMarker           Kind = 5 // Value is the anchor id of the current line
	TypeName               Kind = 6
	MemberName             Kind = 7
	StringLiteral          Kind = 8
	Literal                Kind = 9
	Comment                Kind = 10
	DocumentRangeStart     Kind = 11
	DocumentRangeEnd       Kind = 12
	DeprecatedRangeStart   Kind = 13
	DeprecatedRangeEnd     Kind = 14
	SkipDiffRangeStart     Kind = 15
	SkipDiffRangeEnd       Kind = 16
	SectionHeading         Kind = 17 // Value is the section id
	SectionContentStart    Kind = 18
	SectionContentEnd      Kind = 19
	LeafSectionPlaceholder Kind = 20 // Value is an index into the leaf section store
	ExternalLinkStart      Kind = 21 // Value is the link target
	ExternalLinkEnd        Kind = 22

	kindCount = 23
)

//nolint:gochecknoglobals // Read-only lookup table.
var kindNames = [kindCount]string{
	Text:                   "Text",
	Newline:                "Newline",
	Whitespace:             "Whitespace",
	Punctuation:            "Punctuation",
	Keyword:                "Keyword",
	LineIDMarker:           "LineIdMarker",
	TypeName:               "TypeName",
	MemberName:             "MemberName",
	StringLiteral:          "StringLiteral",
	Literal:                "Literal",
	Comment:                "Comment",
	DocumentRangeStart:     "DocumentRangeStart",
	DocumentRangeEnd:       "DocumentRangeEnd",
	DeprecatedRangeStart:   "DeprecatedRangeStart",
	DeprecatedRangeEnd:     "DeprecatedRangeEnd",
	SkipDiffRangeStart:     "SkipDiffRangeStart",
	SkipDiffRangeEnd:       "SkipDiffRangeEnd",
	SectionHeading:         "FoldableSectionHeading",
	SectionContentStart:    "FoldableSectionContentStart",
	SectionContentEnd:      "FoldableSectionContentEnd",
	LeafSectionPlaceholder: "LeafSectionPlaceholder",
	ExternalLinkStart:      "ExternalLinkStart",
	ExternalLinkEnd:        "ExternalLinkEnd",
}

// String returns the wire name of the kind.
func (k Kind) String() string {
	if !k.IsValid() {
		return fmt.Sprintf("Kind(%d)", uint16(k))
	}
	return kindNames[k]
}

// IsValid reports whether k is a known kind.
func (k Kind) IsValid() bool {
	return k < kindCount
}

// IsStructural reports whether k shapes the section tree rather than the
// text of a line.
func (k Kind) IsStructural() bool {
	switch k {
	case Newline, SectionHeading, SectionContentStart, SectionContentEnd, LeafSectionPlaceholder:
		return true
	default:
		return false
	}
}

// HasText reports whether tokens of kind k contribute their value to the
// rendered text of a line.
func (k Kind) HasText() bool {
	switch k {
	case Text, Whitespace, Punctuation, Keyword, TypeName, MemberName,
		StringLiteral, Literal, Comment:
		return true
	default:
		return false
	}
}

// ParseKind resolves a kind from its wire name. Matching is case-insensitive
// and also accepts the short section names ("SectionHeading", ...).
func ParseKind(name string) (Kind, error) {
	for k, n := range kindNames {
		if strings.EqualFold(n, name) {
			return Kind(k), nil
		}
	}
	switch strings.ToLower(name) {
	case "sectionheading":
		return SectionHeading, nil
	case "sectioncontentstart":
		return SectionContentStart, nil
	case "sectioncontentend":
		return SectionContentEnd, nil
	}
	return 0, fmt.Errorf("unknown token kind %q", name)
}

// Token is a single classified span of a code surface.
type Token struct {
	// Value is the text of the token. Structural kinds use it for ids and
	// indices; Newline and range markers leave it empty.
	Value string `json:"value,omitempty" yaml:"value,omitempty"`

	// Kind classifies the token.
	Kind Kind `json:"kind" yaml:"kind"`
}

// New returns a token of the given kind and value.
func New(kind Kind, value string) Token {
	return Token{Value: value, Kind: kind}
}

// Equal reports whether two token slices are identical.
func Equal(a, b []Token) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy of tokens that shares no backing array with it.
func Clone(tokens []Token) []Token {
	if tokens == nil {
		return nil
	}
	out := make([]Token, len(tokens))
	copy(out, tokens)
	return out
}
