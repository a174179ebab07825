package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	vecstack "github.com/vecstack/vecstack"
	"github.com/vecstack/vecstack/internal/builder"
	"github.com/vecstack/vecstack/stack"
)

func newSynthCmd() *cobra.Command {
	var (
		configFile   string
		outputFormat string
		outputFile   string
	)

	cmd := &cobra.Command{
		Use:   "synth",
		Short: "Synthesize the CloudFormation template",
		Long: `Synth loads the stack config, declares the resource graph and emits
the CloudFormation template.

Examples:
    vecstack synth -c stack.yaml
    vecstack synth -c stack.yaml -o template.json
    vecstack synth -c stack.yaml --format yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSynth(configFile, outputFormat, outputFile)
		},
	}

	cmd.Flags().StringVarP(&configFile, "config", "c", "stack.yaml", "Stack config file")
	cmd.Flags().StringVarP(&outputFormat, "format", "f", "json", "Output format: json or yaml")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")

	return cmd
}

func runSynth(configFile, format, outputFile string) error {
	tmpl, err := synthFromConfig(configFile)
	if err != nil {
		result := vecstack.SynthResult{
			Success: false,
			Errors:  []string{err.Error()},
		}
		return outputResult(result, format, outputFile)
	}

	names := make([]string, 0, len(tmpl.Resources))
	for name := range tmpl.Resources {
		names = append(names, name)
	}
	sort.Strings(names)

	result := vecstack.SynthResult{
		Success:   true,
		Template:  *tmpl,
		Resources: names,
	}
	return outputResult(result, format, outputFile)
}

// synthFromConfig runs the full pipeline: load, validate, declare, build.
func synthFromConfig(configFile string) (*vecstack.Template, error) {
	cfg, err := stack.Load(configFile)
	if err != nil {
		return nil, err
	}

	s, err := stack.New(cfg)
	if err != nil {
		return nil, err
	}

	return s.Synthesize()
}

func outputResult(result vecstack.SynthResult, format, outputFile string) error {
	// Failures go to stderr, never into the template output.
	if !result.Success {
		for _, e := range result.Errors {
			fmt.Fprintln(os.Stderr, e)
		}
		return fmt.Errorf("synth failed")
	}

	var data []byte
	var err error

	switch format {
	case "json":
		data, err = builder.ToJSON(&result.Template)
	case "yaml":
		data, err = builder.ToYAML(&result.Template)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	if err != nil {
		return err
	}

	if outputFile == "" {
		fmt.Println(string(data))
		return nil
	}

	return os.WriteFile(outputFile, data, 0644)
}
