package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/codesurface/pkg/config"
	"github.com/yaklabco/codesurface/pkg/section"
)

func TestNewConfigIsValid(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, config.FormatText, cfg.Output.Format)
	assert.Equal(t, section.DefaultOptions(), cfg.SectionOptions())
}

func TestTemplateMatchesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := config.FromYAML(config.Template())
	require.NoError(t, err)
	assert.Equal(t, config.NewConfig(), cfg)
}

func TestYAMLRoundTrip(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Render.MaxDepth = 3
	cfg.Output.Format = config.FormatHTML
	cfg.Jobs = 4

	data, err := cfg.ToYAMLWithHeader("# generated")
	require.NoError(t, err)
	assert.Contains(t, string(data), "# generated\n\n")

	got, err := config.FromYAML(data)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
	assert.Equal(t, section.Options{MaxDepth: 3}, got.SectionOptions())
}

func TestFromYAMLKeepsDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := config.FromYAML([]byte("render:\n  max_lines: 40\n"))
	require.NoError(t, err)
	assert.Equal(t, 40, cfg.Render.MaxLines)
	assert.Equal(t, config.ModeText, cfg.Render.Mode)
	assert.Equal(t, config.ColorAuto, cfg.Output.Color)

	_, err = config.FromYAML([]byte("render: ["))
	require.Error(t, err)
}

func TestClone(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	clone := cfg.Clone()
	clone.Jobs = 9
	assert.Zero(t, cfg.Jobs)

	var nilCfg *config.Config
	assert.Nil(t, nilCfg.Clone())
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"negative depth", func(c *config.Config) { c.Render.MaxDepth = -1 }},
		{"negative lines", func(c *config.Config) { c.Render.MaxLines = -1 }},
		{"bad mode", func(c *config.Config) { c.Render.Mode = "pdf" }},
		{"bad format", func(c *config.Config) { c.Output.Format = "sarif" }},
		{"bad color", func(c *config.Config) { c.Output.Color = "sometimes" }},
		{"negative width", func(c *config.Config) { c.Output.Width = -5 }},
		{"bad flavor", func(c *config.Config) { c.Convert.Flavor = "mmd" }},
		{"negative jobs", func(c *config.Config) { c.Jobs = -2 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := config.NewConfig()
			tt.mutate(cfg)
			require.Error(t, cfg.Validate())
		})
	}
}
