package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	vecstack "github.com/vecstack/vecstack"
	"github.com/vecstack/vecstack/internal/builder"
	"github.com/vecstack/vecstack/internal/validation"
)

// newValidateCmd creates the "validate" subcommand for checking the config
// and the resource graph.
func newValidateCmd() *cobra.Command {
	var (
		configFile   string
		outputFormat string
		runLint      bool
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the config and resource graph",
		Long: `Validate loads the stack config and checks for issues.

Checks performed:
  - Config validity: cron expressions, capacity bounds, network context
  - Reference validity: all references point to declared resources
  - Dependency graph: edges exist and the graph is acyclic
  - Optionally (--lint): the synthesized template against the
    CloudFormation resource specification

Examples:
    vecstack validate -c stack.yaml
    vecstack validate -c stack.yaml --lint
    vecstack validate -c stack.yaml --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(configFile, outputFormat, runLint)
		},
	}

	cmd.Flags().StringVarP(&configFile, "config", "c", "stack.yaml", "Stack config file")
	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "Output format: text or json")
	cmd.Flags().BoolVar(&runLint, "lint", false, "Also lint the synthesized template")

	return cmd
}

func runValidate(configFile, format string, runLint bool) error {
	result := vecstack.ValidateResult{Success: true}

	tmpl, err := synthFromConfig(configFile)
	if err != nil {
		result.Success = false
		result.Errors = append(result.Errors, err.Error())
		return outputValidateResult(result, format)
	}
	result.Resources = len(tmpl.Resources)

	if runLint {
		lintResult, err := lintTemplate(tmpl)
		if err != nil {
			return fmt.Errorf("lint failed: %w", err)
		}
		result.Errors = append(result.Errors, lintResult.Errors...)
		result.Warnings = append(result.Warnings, lintResult.Warnings...)
		if !lintResult.Passed {
			result.Success = false
		}
	}

	return outputValidateResult(result, format)
}

// lintTemplate writes the template to a temp file and runs cfn-lint on it.
func lintTemplate(tmpl *vecstack.Template) (*validation.CfnLintResult, error) {
	data, err := builder.ToJSON(tmpl)
	if err != nil {
		return nil, err
	}

	dir, err := os.MkdirTemp("", "vecstack-lint")
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = os.RemoveAll(dir)
	}()

	path := filepath.Join(dir, "template.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return nil, err
	}

	return validation.LintTemplate(path)
}

func outputValidateResult(result vecstack.ValidateResult, format string) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))

	case "text":
		if result.Success {
			fmt.Printf("Validation passed: %d resources OK\n", result.Resources)
			for _, warnMsg := range result.Warnings {
				fmt.Printf("  WARNING: %s\n", warnMsg)
			}
			return nil
		}

		fmt.Println("Validation FAILED:")
		for _, errMsg := range result.Errors {
			fmt.Printf("  ERROR: %s\n", errMsg)
		}
		for _, warnMsg := range result.Warnings {
			fmt.Printf("  WARNING: %s\n", warnMsg)
		}

	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	if !result.Success {
		os.Exit(1)
	}

	return nil
}
