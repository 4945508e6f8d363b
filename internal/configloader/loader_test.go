package configloader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yaklabco/codesurface/pkg/config"
)

func isolated(dir string) LoadOptions {
	return LoadOptions{
		WorkingDir:         dir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEnv:          true,
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".git", "HEAD"), "ref: refs/heads/main\n")

	result, err := Load(context.Background(), isolated(tmpDir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.Output.Format != config.FormatText {
		t.Errorf("format = %q, want %q", result.Config.Output.Format, config.FormatText)
	}
	if !result.Config.Output.ShowHidden {
		t.Error("show_hidden should default to true")
	}
	if len(result.LoadedFrom) != 0 {
		t.Errorf("LoadedFrom = %v, want none", result.LoadedFrom)
	}
}

func TestLoad_ProjectConfigKeepsUnsetDefaults(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".git", "HEAD"), "")
	writeFile(t, filepath.Join(tmpDir, ".codesurface.yml"), `
render:
  max_depth: 3
output:
  show_hidden: false
`)

	result, err := Load(context.Background(), isolated(tmpDir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	cfg := result.Config
	if cfg.Render.MaxDepth != 3 {
		t.Errorf("max_depth = %d, want 3", cfg.Render.MaxDepth)
	}
	if cfg.Output.ShowHidden {
		t.Error("show_hidden = true, want false from project config")
	}
	if cfg.Render.Mode != config.ModeText {
		t.Errorf("mode = %q, want default %q", cfg.Render.Mode, config.ModeText)
	}
	if len(result.LoadedFrom) != 1 || filepath.Base(result.LoadedFrom[0]) != ".codesurface.yml" {
		t.Errorf("LoadedFrom = %v", result.LoadedFrom)
	}
}

func TestLoad_ProjectConfigFoundFromSubdirectory(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".git", "HEAD"), "")
	writeFile(t, filepath.Join(tmpDir, "codesurface.yaml"), "jobs: 4\n")
	sub := filepath.Join(tmpDir, "a", "b")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}

	result, err := Load(context.Background(), isolated(sub))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if result.Config.Jobs != 4 {
		t.Errorf("jobs = %d, want 4", result.Config.Jobs)
	}
}

func TestFindProjectConfig_StopsAtVCSRoot(t *testing.T) {
	t.Parallel()

	outer := t.TempDir()
	writeFile(t, filepath.Join(outer, ".codesurface.yml"), "jobs: 2\n")
	repo := filepath.Join(outer, "repo")
	writeFile(t, filepath.Join(repo, ".git", "HEAD"), "")

	path, err := FindProjectConfig(context.Background(), repo)
	if err != nil {
		t.Fatalf("FindProjectConfig() error = %v", err)
	}
	if path != "" {
		t.Errorf("found %q above the repository root", path)
	}
}

func TestLoad_ExplicitOverridesProject(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".git", "HEAD"), "")
	writeFile(t, filepath.Join(tmpDir, ".codesurface.yml"), "render:\n  max_depth: 2\n  max_lines: 10\n")
	explicit := filepath.Join(tmpDir, "custom.yaml")
	writeFile(t, explicit, "render:\n  max_depth: 5\n")

	opts := isolated(tmpDir)
	opts.ExplicitPath = explicit

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if result.Config.Render.MaxDepth != 5 {
		t.Errorf("max_depth = %d, want 5", result.Config.Render.MaxDepth)
	}
	if result.Config.Render.MaxLines != 10 {
		t.Errorf("max_lines = %d, want 10 from project", result.Config.Render.MaxLines)
	}
	if len(result.LoadedFrom) != 2 || result.LoadedFrom[1] != explicit {
		t.Errorf("LoadedFrom = %v", result.LoadedFrom)
	}
}

func TestLoad_OverridesWin(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".git", "HEAD"), "")
	writeFile(t, filepath.Join(tmpDir, ".codesurface.yml"), "output:\n  format: json\n")

	opts := isolated(tmpDir)
	opts.Overrides = func(cfg *config.Config) { cfg.Output.Format = config.FormatYAML }

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if result.Config.Output.Format != config.FormatYAML {
		t.Errorf("format = %q, want yaml", result.Config.Output.Format)
	}
}

func TestLoad_InvalidConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{name: "bad format", content: "output:\n  format: sarif\n", want: "output.format"},
		{name: "negative depth", content: "render:\n  max_depth: -1\n", want: "render.max_depth"},
		{name: "unknown key", content: "rules:\n  MD001: false\n", want: "rules"},
		{name: "bad yaml", content: "render: [\n", want: ".codesurface.yml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tmpDir := t.TempDir()
			writeFile(t, filepath.Join(tmpDir, ".git", "HEAD"), "")
			writeFile(t, filepath.Join(tmpDir, ".codesurface.yml"), tt.content)

			_, err := Load(context.Background(), isolated(tmpDir))
			if err == nil {
				t.Fatal("Load() succeeded, want error")
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("error %T is not a *ValidationError", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestLoad_Warnings(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".git", "HEAD"), "")
	writeFile(t, filepath.Join(tmpDir, ".codesurface.yml"), "render:\n  lazy_leaves: true\n")

	result, err := Load(context.Background(), isolated(tmpDir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0], "render.lazy_leaves") {
		t.Errorf("Warnings = %v", result.Warnings)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Parallel()

	env := map[string]string{
		"CODESURFACE_RENDER_MAX_LINES":   "40",
		"CODESURFACE_RENDER_MODE":        "markup",
		"CODESURFACE_OUTPUT_SHOW_HIDDEN": "false",
		"CODESURFACE_JOBS":               "",
	}
	lookup := func(name string) (string, bool) {
		v, ok := env[name]
		return v, ok
	}

	cfg := config.NewConfig()
	if err := applyEnv(cfg, lookup); err != nil {
		t.Fatalf("applyEnv() error = %v", err)
	}
	if cfg.Render.MaxLines != 40 {
		t.Errorf("max_lines = %d, want 40", cfg.Render.MaxLines)
	}
	if cfg.Render.Mode != config.ModeMarkup {
		t.Errorf("mode = %q, want markup", cfg.Render.Mode)
	}
	if cfg.Output.ShowHidden {
		t.Error("show_hidden should be false")
	}
	if cfg.Jobs != 0 {
		t.Errorf("empty variable changed jobs to %d", cfg.Jobs)
	}
}

func TestApplyEnv_InvalidValues(t *testing.T) {
	t.Parallel()

	for name, value := range map[string]string{
		"CODESURFACE_OUTPUT_WIDTH":       "wide",
		"CODESURFACE_RENDER_LAZY_LEAVES": "maybe",
	} {
		lookup := func(n string) (string, bool) {
			if n == name {
				return value, true
			}
			return "", false
		}
		err := applyEnv(config.NewConfig(), lookup)
		if err == nil || !strings.Contains(err.Error(), name) {
			t.Errorf("%s=%s: error = %v", name, value, err)
		}
	}
}

func TestListEnvVars(t *testing.T) {
	t.Parallel()

	vars := ListEnvVars()
	if len(vars) != len(envMappings) {
		t.Fatalf("got %d vars, want %d", len(vars), len(envMappings))
	}
	for i := 1; i < len(vars); i++ {
		if vars[i-1].Name >= vars[i].Name {
			t.Errorf("not sorted at %d: %s >= %s", i, vars[i-1].Name, vars[i].Name)
		}
	}
	if got := EnvVarName("output.format"); got != "CODESURFACE_OUTPUT_FORMAT" {
		t.Errorf("EnvVarName(output.format) = %q", got)
	}
}
