// Package scanner finds files that Homebrew does not manage: libraries,
// headers, and config scripts left behind by non-brew installs.
package scanner

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

// StrayFiles walks root and returns every regular file whose root-relative
// path matches pattern and is not covered by any allow pattern. Patterns
// use doublestar syntax, so "**/*.dylib" matches at any depth. Symlinks
// are never reported. A missing root yields an empty result.
func StrayFiles(root, pattern string, allow []string) ([]string, error) {
	if _, err := os.Stat(root); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to stat %s: %w", root, err)
	}

	var stray []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		matched, err := doublestar.Match(pattern, rel)
		if err != nil {
			return fmt.Errorf("invalid pattern %q: %w", pattern, err)
		}
		if !matched {
			return nil
		}

		for _, a := range allow {
			ok, err := doublestar.Match(a, rel)
			if err != nil {
				return fmt.Errorf("invalid allow pattern %q: %w", a, err)
			}
			if ok {
				return nil
			}
		}

		stray = append(stray, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", root, err)
	}

	// WalkDir visits lexically, so the result is already sorted.
	return stray, nil
}
