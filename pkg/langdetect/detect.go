// Package langdetect labels source content with a language name and the way
// that language nests blocks, so translators can fold it into sections.
package langdetect

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Text is returned when no language can be determined.
const Text = "text"

// Fold describes how a language nests blocks.
type Fold int

// Fold styles.
const (
	// FoldNone keeps every line at the top level.
	FoldNone Fold = iota
	// FoldBraces nests lines between an opening "{" and its closing "}".
	FoldBraces
	// FoldIndent nests lines indented deeper than a line ending in ":".
	FoldIndent
)

//nolint:gochecknoglobals // Read-only lookup tables.
var (
	braceLanguages = map[string]bool{
		"go": true, "c": true, "c++": true, "c#": true, "java": true, "javascript": true,
		"typescript": true, "rust": true, "kotlin": true, "swift": true, "scala": true,
		"php": true, "css": true, "json": true, "dart": true, "groovy": true,
	}
	indentLanguages = map[string]bool{
		"python": true, "yaml": true, "nim": true, "coffeescript": true,
	}

	// classifierCandidates bounds the enry classifier to common languages.
	classifierCandidates = []string{
		"Go", "Python", "Shell", "JavaScript", "TypeScript",
		"Ruby", "Rust", "Java", "C", "C++", "C#", "SQL", "JSON",
		"YAML", "HTML", "CSS", "Markdown", "Dockerfile",
	}
)

// FoldFor returns the fold style of a normalized language name.
func FoldFor(lang string) Fold {
	switch {
	case braceLanguages[lang]:
		return FoldBraces
	case indentLanguages[lang]:
		return FoldIndent
	default:
		return FoldNone
	}
}

// ForFile returns the language of a file from its name, falling back to its
// content.
func ForFile(path string, content []byte) string {
	if lang, safe := enry.GetLanguageByExtension(filepath.Base(path)); safe && lang != "" {
		return normalize(lang)
	}
	if lang, safe := enry.GetLanguageByFilename(filepath.Base(path)); safe && lang != "" {
		return normalize(lang)
	}
	return Detect(content)
}

// FromInfo returns the language named by a fenced code block info string,
// or the detected language of content when the info string is empty.
func FromInfo(info string, content []byte) string {
	if fields := strings.Fields(info); len(fields) > 0 {
		if lang, ok := enry.GetLanguageByAlias(fields[0]); ok {
			return normalize(lang)
		}
		return strings.ToLower(fields[0])
	}
	return Detect(content)
}

// Detect returns the language of a code snippet, or Text when unsure.
func Detect(content []byte) string {
	if len(bytes.TrimSpace(content)) == 0 {
		return Text
	}
	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return normalize(lang)
	}
	for _, p := range patterns {
		if p.match(content) {
			return p.lang
		}
	}
	if lang, safe := enry.GetLanguageByClassifier(content, classifierCandidates); safe && lang != "" {
		return normalize(lang)
	}
	return Text
}

// normalize converts enry language names to lowercase fence tags.
func normalize(lang string) string {
	if lang == "Shell" {
		return "bash"
	}
	return strings.ToLower(lang)
}
