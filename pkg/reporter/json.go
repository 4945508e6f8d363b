package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// yamlIndent matches the configuration writer.
const yamlIndent = 2

// JSONReporter writes documents as JSON, one value per Report call.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, doc *Document) (err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	encoder := json.NewEncoder(r.bw)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(normalize(doc)); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

// YAMLReporter writes documents as YAML, one document per Report call.
type YAMLReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewYAMLReporter creates a new YAML reporter.
func NewYAMLReporter(opts Options) *YAMLReporter {
	return &YAMLReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *YAMLReporter) Report(_ context.Context, doc *Document) (err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	encoder := yaml.NewEncoder(r.bw)
	encoder.SetIndent(yamlIndent)
	if err := encoder.Encode(normalize(doc)); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("close yaml encoder: %w", err)
	}
	return nil
}

func normalize(doc *Document) *Document {
	if doc == nil {
		return &Document{}
	}
	return doc
}
