// Package graph renders DOT and Mermaid dependency graphs from a
// synthesized template.
package graph

import (
	"io"
	"sort"
	"strings"

	"github.com/emicklei/dot"

	vecstack "github.com/vecstack/vecstack"
	"github.com/vecstack/vecstack/internal/serialize"
)

// Format specifies the output format for the graph.
type Format string

const (
	// FormatDOT outputs Graphviz DOT format.
	FormatDOT Format = "dot"
	// FormatMermaid outputs Mermaid format for GitHub/markdown rendering.
	FormatMermaid Format = "mermaid"
)

// Generator creates dependency graphs from a synthesized template.
type Generator struct {
	// Format specifies the output format (dot or mermaid). Defaults to dot.
	Format Format

	// ClusterByService groups resources by AWS service.
	ClusterByService bool
}

// Generate renders the template's dependency graph to w. Reference edges
// (Ref/GetAtt) are drawn in blue; explicit DependsOn edges in black.
func (g *Generator) Generate(t *vecstack.Template, w io.Writer) error {
	graph := g.buildGraph(t)

	format := g.Format
	if format == "" {
		format = FormatDOT
	}

	var output string
	if format == FormatMermaid {
		output = dot.MermaidGraph(graph, dot.MermaidTopToBottom)
	} else {
		output = graph.String()
	}

	_, err := w.Write([]byte(output))
	return err
}

// GenerateString is a convenience method that returns the graph as a string.
func (g *Generator) GenerateString(t *vecstack.Template) (string, error) {
	var sb strings.Builder
	if err := g.Generate(t, &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func (g *Generator) buildGraph(t *vecstack.Template) *dot.Graph {
	graph := dot.NewGraph(dot.Directed)
	graph.Attr("rankdir", "TB")

	graph.NodeInitializer(func(n dot.Node) {
		n.Attr("shape", "box")
		n.Attr("fontname", "Arial")
	})
	graph.EdgeInitializer(func(e dot.Edge) {
		e.Attr("fontname", "Arial")
		e.Attr("fontsize", "10")
	})

	names := make([]string, 0, len(t.Resources))
	for name := range t.Resources {
		names = append(names, name)
	}
	sort.Strings(names)

	if g.ClusterByService {
		g.addClusteredNodes(graph, t, names)
	} else {
		for _, name := range names {
			n := graph.Node(name)
			n.Label(name + "\\n[" + t.Resources[name].Type + "]")
		}
	}

	for _, name := range names {
		res := t.Resources[name]

		for _, ref := range serialize.CollectRefs(res.Properties) {
			if _, ok := t.Resources[ref]; !ok {
				continue
			}
			e := graph.Edge(graph.Node(name), graph.Node(ref))
			e.Attr("color", "blue")
		}

		for _, dep := range res.DependsOn {
			if _, ok := t.Resources[dep]; !ok {
				continue
			}
			graph.Edge(graph.Node(name), graph.Node(dep))
		}
	}

	return graph
}

// addClusteredNodes adds resource nodes grouped by AWS service.
func (g *Generator) addClusteredNodes(graph *dot.Graph, t *vecstack.Template, names []string) {
	serviceResources := make(map[string][]string)
	for _, name := range names {
		service := extractService(t.Resources[name].Type)
		serviceResources[service] = append(serviceResources[service], name)
	}

	services := make([]string, 0, len(serviceResources))
	for service := range serviceResources {
		services = append(services, service)
	}
	sort.Strings(services)

	for _, service := range services {
		resNames := serviceResources[service]
		if len(resNames) > 1 {
			cluster := graph.Subgraph("cluster_"+service, dot.ClusterOption{})
			cluster.Attr("label", service)
			cluster.Attr("style", "rounded")
			cluster.Attr("bgcolor", "lightyellow")

			for _, name := range resNames {
				n := cluster.Node(name)
				n.Label(name + "\\n[" + t.Resources[name].Type + "]")
			}
		} else {
			for _, name := range resNames {
				n := graph.Node(name)
				n.Label(name + "\\n[" + t.Resources[name].Type + "]")
			}
		}
	}
}

// extractService extracts the service segment from a CloudFormation type.
// e.g., "AWS::RDS::DBCluster" -> "RDS", "Custom::VectorStoreInit" -> "Custom"
func extractService(cfType string) string {
	parts := strings.Split(cfType, "::")
	if len(parts) >= 2 && parts[0] == "AWS" {
		return parts[1]
	}
	if len(parts) >= 1 && parts[0] != "" {
		return parts[0]
	}
	return "Other"
}
