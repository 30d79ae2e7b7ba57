package files

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	kerrors "github.com/PolarWolf314/fortress/internal/errors"
	"github.com/PolarWolf314/fortress/internal/fortress"
	"github.com/bmatcuk/doublestar/v4"
)

// Mode selects which files a pattern may resolve to.
type Mode int

const (
	// ForEncryption accepts any regular file except containers.
	ForEncryption Mode = iota
	// ForDecryption accepts only containers.
	ForDecryption
)

func (m Mode) accepts(path string) bool {
	isContainer := IsContainer(path)
	if m == ForDecryption {
		return isContainer
	}
	return !isContainer
}

// IsContainer reports whether path carries the container extension.
func IsContainer(path string) bool {
	return strings.HasSuffix(filepath.Base(path), fortress.FileExtension)
}

// ResolveFiles expands user-supplied paths, directories and globs (with **
// support) relative to baseDir. The result is deduplicated and keeps the
// order in which files were first matched.
func ResolveFiles(patterns []string, baseDir string, mode Mode) ([]string, error) {
	if len(patterns) == 0 {
		return nil, fmt.Errorf("%w: no paths given", kerrors.ErrNoFilesFound)
	}

	var files []string
	seen := make(map[string]bool)

	for _, pattern := range patterns {
		resolved, err := resolvePattern(pattern, baseDir, mode)
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
		return nil, kerrors.ErrNoFilesFound
	}

	return files, nil
}

func resolvePattern(pattern, baseDir string, mode Mode) ([]string, error) {
	absPattern := pattern
	if !filepath.IsAbs(pattern) {
		absPattern = filepath.Join(baseDir, pattern)
	}

	info, err := os.Stat(absPattern)
	if err == nil && info.IsDir() {
		return findFilesInDir(absPattern, mode)
	}

	if strings.ContainsAny(pattern, "*?[{") {
		return expandGlob(pattern, absPattern, mode)
	}

	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", kerrors.ErrFileNotFound, pattern)
		}
		return nil, err
	}

	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s is not a regular file", kerrors.ErrInvalidFileType, pattern)
	}
	if !mode.accepts(absPattern) {
		if mode == ForDecryption {
			return nil, fmt.Errorf("%w: %s is not a %s file", kerrors.ErrInvalidFileType, pattern, fortress.FileExtension)
		}
		return nil, fmt.Errorf("%w: %s is already encrypted", kerrors.ErrInvalidFileType, pattern)
	}

	return []string{absPattern}, nil
}

func expandGlob(pattern, absPattern string, mode Mode) ([]string, error) {
	matches, err := doublestar.FilepathGlob(absPattern)
	if err != nil {
		return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
	}

	var filtered []string
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		if mode.accepts(m) {
			filtered = append(filtered, m)
		}
	}

	sort.Strings(filtered)
	return filtered, nil
}

// findFilesInDir walks dir recursively, skipping hidden subdirectories.
func findFilesInDir(dir string, mode Mode) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}

		if !d.Type().IsRegular() {
			return nil
		}

		if mode.accepts(path) {
			files = append(files, path)
		}

		return nil
	})

	return files, err
}
