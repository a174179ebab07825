package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vecstack/vecstack/internal/graph"
)

func newGraphCmd() *cobra.Command {
	var (
		configFile       string
		outputFormat     string
		clusterByService bool
	)

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Generate DOT graph of resource dependencies",
		Long: `Generate a DOT or Mermaid format graph showing resource dependencies.

Reference edges are drawn in blue, explicit ordering edges in black.

The output can be rendered with Graphviz:
    vecstack graph -c stack.yaml | dot -Tpng -o deps.png

Or used in GitHub markdown (Mermaid format):
    vecstack graph -c stack.yaml -f mermaid

Examples:
    vecstack graph -c stack.yaml
    vecstack graph -c stack.yaml -s               # cluster by service
    vecstack graph -c stack.yaml -f mermaid`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGraph(configFile, outputFormat, clusterByService)
		},
	}

	cmd.Flags().StringVarP(&configFile, "config", "c", "stack.yaml", "Stack config file")
	cmd.Flags().StringVarP(&outputFormat, "format", "f", "dot", "Output format: dot or mermaid")
	cmd.Flags().BoolVarP(&clusterByService, "cluster", "s", false, "Cluster resources by AWS service")

	return cmd
}

func runGraph(configFile, format string, cluster bool) error {
	tmpl, err := synthFromConfig(configFile)
	if err != nil {
		return err
	}

	var graphFormat graph.Format
	switch format {
	case "dot":
		graphFormat = graph.FormatDOT
	case "mermaid":
		graphFormat = graph.FormatMermaid
	default:
		return fmt.Errorf("unknown format: %s (use 'dot' or 'mermaid')", format)
	}

	gen := &graph.Generator{
		Format:           graphFormat,
		ClusterByService: cluster,
	}

	return gen.Generate(tmpl, os.Stdout)
}
