// Package scan discovers source files under a project root. The core
// never touches the filesystem; this is the upstream collaborator that
// hands it an already-filtered file set.
package scan

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/efebarandurmaz/depscope/internal/plugins"
)

// defaultExcludedDirs are directory names skipped unless the caller opts
// out: virtualenvs, caches, VCS metadata, and build output.
var defaultExcludedDirs = map[string]struct{}{
	"venv":          {},
	".venv":         {},
	"env":           {},
	"node_modules":  {},
	"__pycache__":   {},
	".git":          {},
	".hg":           {},
	".tox":          {},
	".eggs":         {},
	".mypy_cache":   {},
	".pytest_cache": {},
	"build":         {},
	"dist":          {},
}

// Options controls discovery.
type Options struct {
	// ExcludePatterns are glob patterns matched against the root-relative
	// path and the base name of each candidate file.
	ExcludePatterns []string
	// SkipDefaultExcludes disables the built-in directory exclusions.
	SkipDefaultExcludes bool
	// Extensions limits discovery to the given file extensions
	// (lowercase, with leading dot). Empty means ".py".
	Extensions []string
}

// ForPlugin derives discovery options from a source plugin's declared
// file extensions.
func ForPlugin(src plugins.SourcePlugin, excludePatterns []string) Options {
	opts := Options{ExcludePatterns: excludePatterns}
	if fep, ok := src.(plugins.FileExtensionsProvider); ok {
		for _, ext := range fep.FileExtensions() {
			ext = strings.TrimSpace(strings.ToLower(ext))
			if ext == "" {
				continue
			}
			if ext[0] != '.' {
				ext = "." + ext
			}
			opts.Extensions = append(opts.Extensions, ext)
		}
	}
	return opts
}

// Project walks root and returns the matching source files with
// root-relative slash-separated paths, in lexical walk order. A root
// that is a single file is returned as-is.
func Project(root string, opts Options) ([]plugins.SourceFile, error) {
	allowed := make(map[string]struct{})
	if len(opts.Extensions) == 0 {
		allowed[".py"] = struct{}{}
	}
	for _, ext := range opts.Extensions {
		allowed[ext] = struct{}{}
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		data, err := os.ReadFile(root)
		if err != nil {
			return nil, err
		}
		return []plugins.SourceFile{{Path: filepath.Base(root), Content: data}}, nil
	}

	var files []plugins.SourceFile
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path == root {
				return nil
			}
			if _, skip := defaultExcludedDirs[d.Name()]; skip && !opts.SkipDefaultExcludes {
				return filepath.SkipDir
			}
			return nil
		}
		if _, ok := allowed[strings.ToLower(filepath.Ext(path))]; !ok {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if excluded(rel, opts.ExcludePatterns) {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		files = append(files, plugins.SourceFile{Path: rel, Content: data})
		return nil
	})
	return files, err
}

func excluded(rel string, patterns []string) bool {
	base := filepath.Base(rel)
	for _, pattern := range patterns {
		if ok, _ := filepath.Match(pattern, rel); ok {
			return true
		}
		if ok, _ := filepath.Match(pattern, base); ok {
			return true
		}
	}
	return false
}
