// Package discover finds candidate kdig output files under a directory.
package discover

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// DefaultExtension is used when Options.Extension is empty.
const DefaultExtension = "txt"

// Options controls which files Find returns.
type Options struct {
	// Recursive descends into subdirectories. Otherwise only files directly
	// inside the root are considered.
	Recursive bool
	// Extension is matched case-insensitively, without the leading dot.
	Extension string
	// Pattern, if set, must match the file's base name.
	Pattern *regexp.Regexp
}

// Ext returns the effective extension, without a leading dot.
func (o Options) Ext() string {
	ext := strings.TrimPrefix(o.Extension, ".")
	if ext == "" {
		return DefaultExtension
	}
	return ext
}

// Find walks root and returns the paths of regular files that pass opts, in
// lexical order. Root must exist and be a directory. Entries that cannot be
// read are skipped, so an unlistable root yields no paths and no error.
func Find(root string, opts Options) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat input: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("input path is not a directory: %s", root)
	}

	ext := opts.Ext()
	var paths []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if path != root && !opts.Recursive {
				return fs.SkipDir
			}
			return nil
		}
		if !isRegular(path, d) {
			return nil
		}
		if !hasExtension(path, ext) {
			return nil
		}
		if opts.Pattern != nil && !opts.Pattern.MatchString(d.Name()) {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	return paths, nil
}

// isRegular reports whether path is a regular file, following symlinks.
func isRegular(path string, d fs.DirEntry) bool {
	if d.Type().IsRegular() {
		return true
	}
	if d.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func hasExtension(path, ext string) bool {
	got := strings.TrimPrefix(filepath.Ext(path), ".")
	return got != "" && strings.EqualFold(got, ext)
}
