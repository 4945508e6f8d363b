package surface

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/codesurface/pkg/token"
)

// ErrUnknownFormat is returned for documents whose format cannot be determined.
var ErrUnknownFormat = errors.New("unknown surface format")

// Format is the encoding of a stored document.
type Format string

// Supported document formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath infers the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
}

// Document is the stored form of a code surface: the token stream produced by
// a language translator plus any sections the translator detached itself.
type Document struct {
	Name     string `json:"name" yaml:"name"`
	// Language is a lowercase language tag ("go", "markdown").
	Language string `json:"language,omitempty" yaml:"language,omitempty"`
	Version  string `json:"version,omitempty" yaml:"version,omitempty"`

	Tokens []token.Token `json:"tokens" yaml:"tokens"`

	// LeafSections are referenced by LeafSectionPlaceholder tokens by index.
	LeafSections [][]token.Token `json:"leafSections,omitempty" yaml:"leafSections,omitempty"`
}

// Decode reads a document in the given format.
func Decode(r io.Reader, format Format) (*Document, error) {
	var doc Document

	switch format {
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode json surface: %w", err)
		}
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decode yaml surface: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	return &doc, nil
}

// Encode writes doc in the given format.
func Encode(w io.Writer, doc *Document, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode json surface: %w", err)
		}
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode yaml surface: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("encode yaml surface: %w", err)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	return nil
}

// Marshal encodes doc in the given format.
func Marshal(doc *Document, format Format) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, doc, format); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Load reads a document from path, choosing the format by extension.
func Load(path string) (*Document, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	//nolint:gosec // Path comes from the command line.
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open surface: %w", err)
	}
	defer f.Close()

	doc, err := Decode(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if doc.Name == "" {
		doc.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return doc, nil
}
