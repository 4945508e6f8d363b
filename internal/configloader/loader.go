// Package configloader resolves the codesurface configuration from its
// layered sources: defaults, system, user and project files, an explicit
// --config file, CODESURFACE_* environment variables and flags.
package configloader

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/codesurface/pkg/config"
)

// LoadOptions controls configuration loading.
type LoadOptions struct {
	// WorkingDir is where the project config search starts. Defaults to
	// the current directory.
	WorkingDir string

	// ExplicitPath is the --config file. It is layered above the
	// project config.
	ExplicitPath string

	IgnoreSystemConfig  bool
	IgnoreUserConfig    bool
	IgnoreProjectConfig bool
	IgnoreEnv           bool

	// Overrides applies flag values last.
	Overrides func(cfg *config.Config)
}

// LoadResult is the resolved configuration and where it came from.
type LoadResult struct {
	Config *config.Config

	// Paths holds every discovered file, loaded or not.
	Paths *ConfigPaths

	// LoadedFrom lists the files applied, lowest precedence first.
	LoadedFrom []string

	Warnings []string
}

// Load resolves the final configuration. Precedence, highest first:
//  1. opts.Overrides
//  2. CODESURFACE_* environment variables
//  3. opts.ExplicitPath
//  4. project config (.codesurface.yml, upward search)
//  5. user config ($XDG_CONFIG_HOME/codesurface/config.yaml)
//  6. system config (/etc/codesurface/config.yaml)
//  7. defaults
//
// Each file is decoded over the layers below it, so keys a file omits
// keep their earlier values.
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	workDir := opts.WorkingDir
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
		workDir = wd
	}

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	paths.Explicit = opts.ExplicitPath

	result := &LoadResult{Paths: paths}
	cfg := config.NewConfig()

	layers := []struct {
		path string
		skip bool
	}{
		{path: paths.System, skip: opts.IgnoreSystemConfig},
		{path: paths.User, skip: opts.IgnoreUserConfig},
		{path: paths.Project, skip: opts.IgnoreProjectConfig},
		{path: paths.Explicit},
	}
	for _, layer := range layers {
		if layer.skip || layer.path == "" {
			continue
		}
		if err := loadConfigFile(layer.path, cfg); err != nil {
			return nil, err
		}
		result.LoadedFrom = append(result.LoadedFrom, layer.path)
	}

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}

	if opts.Overrides != nil {
		opts.Overrides(cfg)
	}

	validation := Validate(cfg)
	if !validation.Valid() {
		return nil, &validation.Errors[0]
	}
	for _, w := range validation.Warnings {
		result.Warnings = append(result.Warnings, w.Error())
	}

	result.Config = cfg
	return result, nil
}

// loadConfigFile decodes path over cfg. Unknown keys are rejected.
func loadConfigFile(path string, cfg *config.Config) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	decoder := yaml.NewDecoder(bytes.NewReader(content))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return &ValidationError{FilePath: path, Message: err.Error()}
	}
	return nil
}
