package graphstore

import (
	"context"

	"github.com/efebarandurmaz/depscope/internal/depgraph"
)

// Repository provides persistent storage for dependency graphs.
type Repository interface {
	// StoreGraph persists every module node and import edge under the
	// given project name.
	StoreGraph(ctx context.Context, project string, graph *depgraph.Graph) error
	// QueryImporters returns the names of modules that import the given
	// module within a project.
	QueryImporters(ctx context.Context, project, module string) ([]string, error)
	// Close releases resources.
	Close(ctx context.Context) error
}
