package neo4j

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/efebarandurmaz/depscope/internal/depgraph"
	"github.com/efebarandurmaz/depscope/internal/graphstore"
)

// Neo4jRepository implements graphstore.Repository using Neo4j.
type Neo4jRepository struct {
	driver neo4j.DriverWithContext
}

// NewNeo4j creates a Neo4j-backed repository.
func NewNeo4j(ctx context.Context, uri, username, password string) (*Neo4jRepository, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(username, password, ""))
	if err != nil {
		return nil, fmt.Errorf("neo4j driver: %w", err)
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		return nil, fmt.Errorf("neo4j connectivity: %w", err)
	}
	return &Neo4jRepository{driver: driver}, nil
}

func (r *Neo4jRepository) StoreGraph(ctx context.Context, project string, g *depgraph.Graph) error {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{})
	defer session.Close(ctx)

	for node := range g.Nodes() {
		_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
			_, err := tx.Run(ctx,
				"MERGE (m:Module {project: $project, name: $name}) "+
					"SET m.origin = $origin, m.location = $location",
				map[string]any{
					"project":  project,
					"name":     node.Name,
					"origin":   string(node.Origin),
					"location": node.Location,
				})
			if err != nil {
				return nil, err
			}
			for _, dep := range node.Dependencies() {
				_, err := tx.Run(ctx,
					"MERGE (a:Module {project: $project, name: $importer}) "+
						"MERGE (b:Module {project: $project, name: $imported}) "+
						"MERGE (a)-[:IMPORTS]->(b)",
					map[string]any{"project": project, "importer": node.Name, "imported": dep})
				if err != nil {
					return nil, err
				}
			}
			return nil, nil
		})
		if err != nil {
			return fmt.Errorf("store module %s: %w", node.Name, err)
		}
	}

	if len(g.Cycles) > 0 {
		_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
			for _, cycle := range g.Cycles {
				for _, name := range cycle {
					_, err := tx.Run(ctx,
						"MATCH (m:Module {project: $project, name: $name}) SET m.cyclic = true",
						map[string]any{"project": project, "name": name})
					if err != nil {
						return nil, err
					}
				}
			}
			return nil, nil
		})
		if err != nil {
			return fmt.Errorf("mark cycles: %w", err)
		}
	}
	return nil
}

func (r *Neo4jRepository) QueryImporters(ctx context.Context, project, module string) ([]string, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		records, err := tx.Run(ctx,
			"MATCH (a:Module {project: $project})-[:IMPORTS]->(:Module {project: $project, name: $name}) "+
				"RETURN a.name ORDER BY a.name",
			map[string]any{"project": project, "name": module})
		if err != nil {
			return nil, err
		}
		var names []string
		for records.Next(ctx) {
			n, _ := records.Record().Get("a.name")
			names = append(names, n.(string))
		}
		return names, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]string), nil
}

func (r *Neo4jRepository) Close(ctx context.Context) error {
	return r.driver.Close(ctx)
}

var _ graphstore.Repository = (*Neo4jRepository)(nil)
