// Command vecstack synthesizes a CloudFormation template for a
// vector-capable PostgreSQL cluster from a declarative config file.
//
// Usage:
//
//	vecstack synth -c stack.yaml       Synthesize the template
//	vecstack validate -c stack.yaml    Check the config and resource graph
//	vecstack graph -c stack.yaml       Render the dependency graph
//	vecstack watch -c stack.yaml       Re-synthesize on config changes
//	vecstack version                   Show version
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "vecstack",
		Short: "Synthesize a vector store cluster template",
		Long: `vecstack declares the managed resources behind a vector-capable
PostgreSQL cluster (the cluster, its network boundary, an optional
start/stop schedule, and a one-shot schema bootstrap) and emits them
as a CloudFormation template.

Describe the stack in YAML:

    name: docsearch
    vpcId: vpc-0123456789abcdef0
    subnetIds: [subnet-aaa, subnet-bbb]
    bootstrap:
      s3Bucket: artifacts
      s3Key: bootstrap.zip

Then synthesize:

    vecstack synth -c stack.yaml`,
	}

	rootCmd.AddCommand(
		newSynthCmd(),
		newValidateCmd(),
		newGraphCmd(),
		newWatchCmd(),
		newVersionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("vecstack %s\n", getVersion())
		},
	}
}
