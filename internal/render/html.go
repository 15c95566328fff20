package render

import (
	"encoding/json"
	"html/template"
	"io"
	"strings"

	"github.com/efebarandurmaz/depscope/internal/depgraph"
)

// HTML renders the graph as a standalone page embedding the node and
// link data for client-side exploration.
type HTML struct{}

func (HTML) Format() string { return "html" }

type htmlNode struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Type   string `json:"type"`
	Deps   int    `json:"deps_count"`
	Cyclic bool   `json:"cyclic"`
}

type htmlLink struct {
	Source int `json:"source"`
	Target int `json:"target"`
}

var htmlPage = template.Must(template.New("graph").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Dependency Graph</title>
    <style>
        body { font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; margin: 0; padding: 20px; background-color: #f5f5f5; }
        .container { max-width: 1200px; margin: 0 auto; background: white; padding: 20px; border-radius: 8px; box-shadow: 0 2px 4px rgba(0,0,0,0.1); }
        h1 { color: #2E86AB; margin-bottom: 20px; }
        .stats { background: #f8f9fa; padding: 15px; border-radius: 5px; margin-bottom: 20px; }
        .stats p { margin: 5px 0; }
        .cycles { background: #fff5f5; border: 1px solid #FF6B6B; padding: 15px; border-radius: 5px; }
        #graph { border: 1px solid #ddd; border-radius: 5px; min-height: 600px; background: #fafafa; }
    </style>
</head>
<body>
    <div class="container">
        <h1>Dependency Graph</h1>
        <div class="stats">
            <p><strong>Total Modules:</strong> {{.NodeCount}}</p>
            <p><strong>Total Dependencies:</strong> {{.LinkCount}}</p>
            <p><strong>Cycles:</strong> {{.CycleCount}}</p>
        </div>
        {{if .CycleList}}<div class="cycles">
            <p><strong>Circular dependencies:</strong></p>
            {{range .CycleList}}<p>{{.}}</p>
            {{end}}
        </div>{{end}}
        <div id="graph"></div>
    </div>
    <script>
        const nodes = {{.NodesJSON}};
        const links = {{.LinksJSON}};
        console.log("Graph data loaded:", { nodes, links });
    </script>
</body>
</html>
`))

func (HTML) Render(g *depgraph.Graph, w io.Writer) error {
	cycleNodes, _ := cycleMembership(g.Cycles)

	idx := make(map[string]int)
	var nodes []htmlNode
	for node := range g.Nodes() {
		idx[node.Name] = len(nodes)
		nodes = append(nodes, htmlNode{
			ID:     len(nodes),
			Name:   node.Name,
			Type:   string(node.Origin),
			Deps:   node.DependencyCount(),
			Cyclic: cycleNodes[node.Name],
		})
	}

	var links []htmlLink
	for node := range g.Nodes() {
		for _, dep := range node.Dependencies() {
			target, ok := idx[dep]
			if !ok {
				continue
			}
			links = append(links, htmlLink{Source: idx[node.Name], Target: target})
		}
	}

	nodesJSON, err := json.Marshal(nodes)
	if err != nil {
		return err
	}
	linksJSON, err := json.Marshal(links)
	if err != nil {
		return err
	}

	var cycleList []string
	for _, cycle := range g.Cycles {
		cycleList = append(cycleList, joinArrow(cycle))
	}

	return htmlPage.Execute(w, map[string]any{
		"NodeCount":  len(nodes),
		"LinkCount":  len(links),
		"CycleCount": g.CycleCount(),
		"CycleList":  cycleList,
		"NodesJSON":  template.JS(nodesJSON),
		"LinksJSON":  template.JS(linksJSON),
	})
}

func joinArrow(cycle []string) string {
	return strings.Join(cycle, " -> ")
}
