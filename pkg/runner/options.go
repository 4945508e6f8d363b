// Package runner renders and diffs many independent code surfaces
// concurrently.
package runner

import (
	"context"

	"github.com/yaklabco/codesurface/pkg/surface"
)

// Loader opens the surface stored at path.
type Loader func(ctx context.Context, path string) (*surface.Surface, error)

// Options controls a batch run.
type Options struct {
	// Jobs bounds concurrent workers. 0 or negative means runtime.NumCPU().
	Jobs int

	// Load opens a surface. Defaults to LoadDocument with no options.
	Load Loader

	// Extensions limits directory pairing to these suffixes (lowercase,
	// leading dot). Defaults to DefaultExtensions().
	Extensions []string

	// ExcludeGlobs skips matching files and directories when pairing.
	ExcludeGlobs []string
}

// DefaultExtensions returns the stored surface document extensions.
func DefaultExtensions() []string {
	return []string{".json", ".yaml", ".yml"}
}

func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

func (o Options) loader() Loader {
	if o.Load == nil {
		return LoadDocument()
	}
	return o.Load
}

// LoadDocument returns a Loader that reads JSON or YAML surface documents
// and builds them with opts.
func LoadDocument(opts ...surface.Option) Loader {
	return func(ctx context.Context, path string) (*surface.Surface, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		doc, err := surface.Load(path)
		if err != nil {
			return nil, err
		}
		return surface.New(doc, opts...), nil
	}
}
