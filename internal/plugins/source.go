package plugins

import (
	"context"

	"github.com/efebarandurmaz/depscope/internal/depgraph"
)

// SourceFile represents a single input file handed to an extractor. Path
// is relative to the project root.
type SourceFile struct {
	Path    string
	Content []byte
}

// SourcePlugin extracts module identities and raw import tokens from
// source files of one language. Extraction never resolves anything; it
// only surfaces the textual import references for the core to resolve.
type SourcePlugin interface {
	// Language returns the source language identifier (e.g. "python").
	Language() string
	// Extract derives one module identity per file: the qualified module
	// name, the file location, and the raw import token set.
	Extract(ctx context.Context, files []SourceFile) ([]depgraph.ModuleIdentity, error)
}

// FileExtensionsProvider is an optional interface for source plugins to
// declare which file extensions they can parse.
type FileExtensionsProvider interface {
	FileExtensions() []string
}
