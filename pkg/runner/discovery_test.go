package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/codesurface/pkg/runner"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))
}

func TestDiscover(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	touch(t, filepath.Join(dir, "b.json"))
	touch(t, filepath.Join(dir, "a", "x.yaml"))
	touch(t, filepath.Join(dir, "notes.txt"))
	touch(t, filepath.Join(dir, ".hidden", "y.json"))
	touch(t, filepath.Join(dir, "vendor", "z.json"))

	jobs, err := runner.Discover(context.Background(), []string{dir, filepath.Join(dir, "b.json")},
		runner.Options{ExcludeGlobs: []string{"vendor/**"}})
	require.NoError(t, err)

	var got []string
	for _, j := range jobs {
		assert.Equal(t, runner.ModeRender, j.Mode)
		got = append(got, j.After)
	}
	assert.Equal(t, []string{
		filepath.Join(dir, "a", "x.yaml"),
		filepath.Join(dir, "b.json"),
	}, got)
}

func TestDiscoverMissingPath(t *testing.T) {
	t.Parallel()

	_, err := runner.Discover(context.Background(), []string{filepath.Join(t.TempDir(), "nope")}, runner.Options{})
	assert.Error(t, err)
}

func TestPairDirs(t *testing.T) {
	t.Parallel()

	before := t.TempDir()
	after := t.TempDir()
	touch(t, filepath.Join(before, "shared.json"))
	touch(t, filepath.Join(after, "shared.json"))
	touch(t, filepath.Join(before, "gone.json"))
	touch(t, filepath.Join(after, "pkg", "new.yml"))
	touch(t, filepath.Join(after, "README.md"))

	jobs, err := runner.PairDirs(context.Background(), before, after, runner.Options{})
	require.NoError(t, err)

	assert.Equal(t, []runner.Job{
		{Name: "gone.json", Mode: runner.ModeDiff, Before: filepath.Join(before, "gone.json")},
		{Name: filepath.Join("pkg", "new.yml"), Mode: runner.ModeDiff, After: filepath.Join(after, "pkg", "new.yml")},
		{
			Name:   "shared.json",
			Mode:   runner.ModeDiff,
			Before: filepath.Join(before, "shared.json"),
			After:  filepath.Join(after, "shared.json"),
		},
	}, jobs)
}

func TestPairDirsExtensions(t *testing.T) {
	t.Parallel()

	before := t.TempDir()
	after := t.TempDir()
	touch(t, filepath.Join(after, "README.md"))
	touch(t, filepath.Join(after, "doc.json"))

	jobs, err := runner.PairDirs(context.Background(), before, after, runner.Options{Extensions: []string{".md"}})
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "README.md", jobs[0].Name)
}
