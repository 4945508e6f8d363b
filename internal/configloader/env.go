package configloader

import (
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/yaklabco/codesurface/pkg/config"
)

// envVarPrefix prefixes every codesurface environment variable.
const envVarPrefix = "CODESURFACE_"

type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeInt
)

type envMapping struct {
	field string
	typ   envFieldType
	help  string
}

//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"RENDER_MAX_DEPTH":   {field: "render.max_depth", typ: envTypeInt, help: "Detach sections deeper than this (0 = never)"},
	"RENDER_MAX_LINES":   {field: "render.max_lines", typ: envTypeInt, help: "Detach sections longer than this (0 = never)"},
	"RENDER_MODE":        {field: "render.mode", typ: envTypeString, help: "Line rendering: text or markup"},
	"RENDER_LAZY_LEAVES": {field: "render.lazy_leaves", typ: envTypeBool, help: "Keep leaf placeholders collapsed"},
	"OUTPUT_FORMAT":      {field: "output.format", typ: envTypeString, help: "Output format: text, json, yaml, html or summary"},
	"OUTPUT_COLOR":       {field: "output.color", typ: envTypeString, help: "Color: auto, always or never"},
	"OUTPUT_WIDTH":       {field: "output.width", typ: envTypeInt, help: "Truncate text output to this many columns"},
	"OUTPUT_SHOW_HIDDEN": {field: "output.show_hidden", typ: envTypeBool, help: "Print lines that start collapsed"},
	"CONVERT_FLAVOR":     {field: "convert.flavor", typ: envTypeString, help: "Markdown flavor: commonmark or gfm"},
	"JOBS":               {field: "jobs", typ: envTypeInt, help: "Batch workers (0 = CPU count)"},
}

// LoadFromEnv applies CODESURFACE_* variables to cfg.
func LoadFromEnv(cfg *config.Config) error {
	return applyEnv(cfg, os.LookupEnv)
}

func applyEnv(cfg *config.Config, lookup func(string) (string, bool)) error {
	if cfg == nil {
		return nil
	}

	for suffix, mapping := range envMappings {
		name := envVarPrefix + suffix
		value, ok := lookup(name)
		if !ok || value == "" {
			continue
		}
		if err := applyEnvValue(cfg, mapping, name, value); err != nil {
			return err
		}
	}
	return nil
}

func applyEnvValue(cfg *config.Config, mapping envMapping, name, value string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value)
	case envTypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", name, value)
		}
		return setBoolField(cfg, mapping.field, b)
	case envTypeInt:
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", name, value)
		}
		return setIntField(cfg, mapping.field, i)
	default:
		return fmt.Errorf("unknown field type for %s", name)
	}
}

func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "render.mode":
		cfg.Render.Mode = config.Mode(value)
	case "output.format":
		cfg.Output.Format = config.OutputFormat(value)
	case "output.color":
		cfg.Output.Color = config.ColorMode(value)
	case "convert.flavor":
		cfg.Convert.Flavor = config.Flavor(value)
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

func setBoolField(cfg *config.Config, field string, value bool) error {
	switch field {
	case "render.lazy_leaves":
		cfg.Render.LazyLeaves = value
	case "output.show_hidden":
		cfg.Output.ShowHidden = value
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

func setIntField(cfg *config.Config, field string, value int) error {
	switch field {
	case "render.max_depth":
		cfg.Render.MaxDepth = value
	case "render.max_lines":
		cfg.Render.MaxLines = value
	case "output.width":
		cfg.Output.Width = value
	case "jobs":
		cfg.Jobs = value
	default:
		return fmt.Errorf("unknown integer field: %s", field)
	}
	return nil
}

// EnvVarName returns the variable that sets field, or "".
func EnvVarName(field string) string {
	for suffix, mapping := range envMappings {
		if mapping.field == field {
			return envVarPrefix + suffix
		}
	}
	return ""
}

// EnvVar describes one supported variable.
type EnvVar struct {
	Name  string
	Field string
	Help  string
}

// ListEnvVars returns the supported variables sorted by name.
func ListEnvVars() []EnvVar {
	vars := make([]EnvVar, 0, len(envMappings))
	for suffix, mapping := range envMappings {
		vars = append(vars, EnvVar{Name: envVarPrefix + suffix, Field: mapping.field, Help: mapping.help})
	}
	sort.Slice(vars, func(i, j int) bool { return vars[i].Name < vars[j].Name })
	return vars
}
