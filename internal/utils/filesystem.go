package utils

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	kerrors "github.com/PolarWolf314/ejgo/internal/errors"
)

// SecretsExtensions are the file extensions picked up when a directory or
// glob is expanded.
var SecretsExtensions = []string{".ejson", ".json"}

// ResolveFiles expands patterns into a deduplicated list of files in the
// order they were named. A pattern may be:
//   - a directory, searched recursively for secrets files
//   - a glob, with ** support, filtered to secrets files
//   - a literal file path, used as is whatever its extension
//
// Returns ErrNoFilesFound if nothing matched.
func ResolveFiles(patterns []string) ([]string, error) {
	var files []string
	seen := make(map[string]bool)

	for _, pattern := range patterns {
		resolved, err := resolvePattern(pattern)
		if err != nil {
			return nil, err
		}

		for _, f := range resolved {
			if !seen[f] {
				seen[f] = true
				files = append(files, f)
			}
		}
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("%w: %s", kerrors.ErrNoFilesFound, strings.Join(patterns, " "))
	}

	return files, nil
}

func resolvePattern(pattern string) ([]string, error) {
	info, err := os.Stat(pattern)
	if err == nil && info.IsDir() {
		return findSecretsFiles(pattern)
	}

	if strings.ContainsAny(pattern, "*?[{") {
		return expandGlob(pattern)
	}

	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("file not found: %s: %w", pattern, err)
	}
	if err != nil {
		return nil, err
	}

	return []string{pattern}, nil
}

func expandGlob(pattern string) ([]string, error) {
	matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
	}

	var filtered []string
	for _, m := range matches {
		if IsSecretsFile(m) {
			filtered = append(filtered, m)
		}
	}
	sort.Strings(filtered)
	return filtered, nil
}

func findSecretsFiles(dir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() && IsSecretsFile(path) {
			files = append(files, path)
		}
		return nil
	})

	return files, err
}

// IsSecretsFile reports whether path has one of SecretsExtensions.
func IsSecretsFile(path string) bool {
	ext := filepath.Ext(path)
	for _, want := range SecretsExtensions {
		if ext == want {
			return true
		}
	}
	return false
}
