// Package config defines the configuration types for codesurface.
// These types are plain data; discovery and layering live in internal/configloader.
package config

import (
	"fmt"

	"github.com/yaklabco/codesurface/pkg/section"
)

// OutputFormat selects a reporter.
type OutputFormat string

// Output formats.
const (
	FormatText    OutputFormat = "text"
	FormatJSON    OutputFormat = "json"
	FormatYAML    OutputFormat = "yaml"
	FormatHTML    OutputFormat = "html"
	FormatSummary OutputFormat = "summary"
)

// IsValid reports whether f is a known format.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatText, FormatJSON, FormatYAML, FormatHTML, FormatSummary:
		return true
	default:
		return false
	}
}

// Mode selects which rendering of a line the text reporter prints.
type Mode string

// Render modes.
const (
	ModeText   Mode = "text"
	ModeMarkup Mode = "markup"
)

// IsValid reports whether m is a known mode.
func (m Mode) IsValid() bool {
	return m == ModeText || m == ModeMarkup
}

// ColorMode controls terminal coloring.
type ColorMode string

// Color modes.
const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// IsValid reports whether c is a known color mode.
func (c ColorMode) IsValid() bool {
	switch c {
	case ColorAuto, ColorAlways, ColorNever:
		return true
	default:
		return false
	}
}

// Flavor is the Markdown flavor used by convert.
type Flavor string

// Markdown flavors.
const (
	FlavorCommonMark Flavor = "commonmark"
	FlavorGFM        Flavor = "gfm"
)

// RenderConfig controls tree building and flattening.
type RenderConfig struct {
	// MaxDepth detaches sections nested deeper than this. Zero is unlimited.
	MaxDepth int `yaml:"max_depth"`

	// MaxLines detaches sections longer than this. Zero is unlimited.
	MaxLines int `yaml:"max_lines"`

	// Mode selects plain text or HTML markup in text output.
	Mode Mode `yaml:"mode"`

	// LazyLeaves keeps leaf placeholders instead of expanding them.
	LazyLeaves bool `yaml:"lazy_leaves"`
}

// OutputConfig controls reporting.
type OutputConfig struct {
	Format OutputFormat `yaml:"format"`
	Color  ColorMode    `yaml:"color"`

	// Width truncates text output to this many columns. Zero disables it.
	Width int `yaml:"width"`

	// ShowHidden prints lines that start collapsed.
	ShowHidden bool `yaml:"show_hidden"`
}

// ConvertConfig controls translation of source documents.
type ConvertConfig struct {
	Flavor Flavor `yaml:"flavor"`
}

// Config is the root configuration.
type Config struct {
	Render  RenderConfig  `yaml:"render"`
	Output  OutputConfig  `yaml:"output"`
	Convert ConvertConfig `yaml:"convert"`

	// Jobs bounds batch workers. Zero uses the CPU count.
	Jobs int `yaml:"jobs"`
}

// NewConfig returns the default configuration.
func NewConfig() *Config {
	return &Config{
		Render: RenderConfig{Mode: ModeText},
		Output: OutputConfig{
			Format:     FormatText,
			Color:      ColorAuto,
			ShowHidden: true,
		},
		Convert: ConvertConfig{Flavor: FlavorGFM},
	}
}

// SectionOptions returns the builder options selected by c.
func (c *Config) SectionOptions() section.Options {
	return section.Options{MaxDepth: c.Render.MaxDepth, MaxLines: c.Render.MaxLines}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch {
	case c.Render.MaxDepth < 0:
		return fmt.Errorf("render.max_depth must not be negative, got %d", c.Render.MaxDepth)
	case c.Render.MaxLines < 0:
		return fmt.Errorf("render.max_lines must not be negative, got %d", c.Render.MaxLines)
	case !c.Render.Mode.IsValid():
		return fmt.Errorf("render.mode %q must be text or markup", c.Render.Mode)
	case !c.Output.Format.IsValid():
		return fmt.Errorf("output.format %q must be one of text, json, yaml, html, summary", c.Output.Format)
	case !c.Output.Color.IsValid():
		return fmt.Errorf("output.color %q must be auto, always or never", c.Output.Color)
	case c.Output.Width < 0:
		return fmt.Errorf("output.width must not be negative, got %d", c.Output.Width)
	case c.Convert.Flavor != FlavorCommonMark && c.Convert.Flavor != FlavorGFM:
		return fmt.Errorf("convert.flavor %q must be commonmark or gfm", c.Convert.Flavor)
	case c.Jobs < 0:
		return fmt.Errorf("jobs must not be negative, got %d", c.Jobs)
	}
	return nil
}
