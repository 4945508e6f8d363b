package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Discover returns a render job for every surface document under paths.
// Directories are walked recursively; files named explicitly are taken as
// they are. Jobs are sorted by path.
func Discover(ctx context.Context, paths []string, opts Options) ([]Job, error) {
	seen := make(map[string]struct{})
	var files []string

	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", p, err)
		}

		found := []string{p}
		if info.IsDir() {
			rel, err := walkDirectory(ctx, p, opts)
			if err != nil {
				return nil, err
			}
			found = found[:0]
			for _, r := range rel {
				found = append(found, filepath.Join(p, r))
			}
		}

		for _, f := range found {
			f = filepath.Clean(f)
			if _, ok := seen[f]; !ok {
				seen[f] = struct{}{}
				files = append(files, f)
			}
		}
	}

	sort.Strings(files)

	jobs := make([]Job, 0, len(files))
	for _, f := range files {
		jobs = append(jobs, Job{Mode: ModeRender, After: f})
	}
	return jobs, nil
}

// PairDirs returns a diff job for every document found under beforeDir or
// afterDir, matched by relative path. A document present on one side only
// is diffed against an empty surface. Jobs are sorted by relative path and
// named by it.
func PairDirs(ctx context.Context, beforeDir, afterDir string, opts Options) ([]Job, error) {
	before, err := walkDirectory(ctx, beforeDir, opts)
	if err != nil {
		return nil, err
	}
	after, err := walkDirectory(ctx, afterDir, opts)
	if err != nil {
		return nil, err
	}

	sides := make(map[string]*Job)
	for _, rel := range before {
		sides[rel] = &Job{Name: rel, Mode: ModeDiff, Before: filepath.Join(beforeDir, rel)}
	}
	for _, rel := range after {
		job, ok := sides[rel]
		if !ok {
			job = &Job{Name: rel, Mode: ModeDiff}
			sides[rel] = job
		}
		job.After = filepath.Join(afterDir, rel)
	}

	names := make([]string, 0, len(sides))
	for rel := range sides {
		names = append(names, rel)
	}
	sort.Strings(names)

	jobs := make([]Job, 0, len(names))
	for _, rel := range names {
		jobs = append(jobs, *sides[rel])
	}
	return jobs, nil
}

// walkDirectory returns the matching files under root, relative to root.
// Hidden files and directories are skipped.
func walkDirectory(ctx context.Context, root string, opts Options) ([]string, error) {
	extensions := opts.effectiveExtensions()
	var files []string

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = path
		}

		if entry.IsDir() {
			if path != root && strings.HasPrefix(entry.Name(), ".") {
				return filepath.SkipDir
			}
			if path != root && matchesAny(rel, opts.ExcludeGlobs) {
				return filepath.SkipDir
			}
			return nil
		}

		if strings.HasPrefix(entry.Name(), ".") {
			return nil
		}
		if !hasExtension(path, extensions) || matchesAny(rel, opts.ExcludeGlobs) {
			return nil
		}

		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory %s: %w", root, err)
	}

	return files, nil
}

func hasExtension(path string, extensions []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range extensions {
		if strings.ToLower(e) == ext {
			return true
		}
	}
	return false
}

func matchesAny(relPath string, patterns []string) bool {
	for _, pattern := range patterns {
		if matchGlob(relPath, pattern) {
			return true
		}
	}
	return false
}

// matchGlob matches relPath against pattern. A pattern without a slash
// also matches the base name; "dir/**" matches everything under dir and
// "**/name" matches name at any depth.
func matchGlob(relPath, pattern string) bool {
	relPath = filepath.ToSlash(relPath)
	pattern = filepath.ToSlash(pattern)

	if prefix, ok := strings.CutSuffix(pattern, "/**"); ok {
		return relPath == prefix || strings.HasPrefix(relPath, prefix+"/")
	}
	if suffix, ok := strings.CutPrefix(pattern, "**/"); ok {
		for _, part := range strings.Split(relPath, "/") {
			if matched, err := filepath.Match(suffix, part); err == nil && matched {
				return true
			}
		}
		return false
	}

	if matched, err := filepath.Match(pattern, relPath); err == nil && matched {
		return true
	}
	if !strings.Contains(pattern, "/") {
		matched, err := filepath.Match(pattern, filepath.Base(relPath))
		return err == nil && matched
	}
	return false
}
