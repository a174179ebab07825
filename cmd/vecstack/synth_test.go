package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testConfig = `name: docsearch
vpcId: vpc-0123456789abcdef0
subnetIds:
  - subnet-aaa
  - subnet-bbb
encryption: true
bootstrap:
  s3Bucket: artifacts
  s3Key: bootstrap.zip
`

func writeTestConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "stack.yaml")
	if err := os.WriteFile(path, []byte(testConfig), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunSynth_JSON(t *testing.T) {
	configPath := writeTestConfig(t)
	outPath := filepath.Join(filepath.Dir(configPath), "template.json")

	if err := runSynth(configPath, "json", outPath); err != nil {
		t.Fatalf("runSynth failed: %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}

	var tmpl map[string]any
	if err := json.Unmarshal(data, &tmpl); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	resources, ok := tmpl["Resources"].(map[string]any)
	if !ok {
		t.Fatal("template has no Resources section")
	}
	if _, ok := resources["VectorCluster"]; !ok {
		t.Error("missing VectorCluster resource")
	}
	if _, ok := resources["VectorStoreInit"]; !ok {
		t.Error("missing VectorStoreInit resource")
	}
}

func TestRunSynth_YAML(t *testing.T) {
	configPath := writeTestConfig(t)
	outPath := filepath.Join(filepath.Dir(configPath), "template.yaml")

	if err := runSynth(configPath, "yaml", outPath); err != nil {
		t.Fatalf("runSynth failed: %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}
	yaml := string(data)
	if !strings.Contains(yaml, "AWS::RDS::DBCluster") {
		t.Error("YAML output missing cluster resource type")
	}

	// Intrinsic values must render in wire form, not as Go struct fields:
	// the bootstrap invocation's ServiceToken/Id and the endpoint output
	// are all deferred references.
	if !strings.Contains(yaml, "Fn::GetAtt") {
		t.Error("YAML output missing Fn::GetAtt for deferred references")
	}
	if !strings.Contains(yaml, "Ref: VectorSecret") {
		t.Error("YAML output missing Ref for the secret output")
	}
	if strings.Contains(yaml, "resource:") || strings.Contains(yaml, "attribute:") {
		t.Error("YAML output contains raw reference struct fields")
	}
}

func TestRunSynth_UnknownFormat(t *testing.T) {
	configPath := writeTestConfig(t)

	err := runSynth(configPath, "toml", "")
	if err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestRunSynth_MissingConfig(t *testing.T) {
	err := runSynth("/nonexistent/stack.yaml", "json", "")
	if err == nil {
		t.Fatal("expected error for missing config")
	}
}

func TestNewWatchCmd(t *testing.T) {
	cmd := newWatchCmd()

	if cmd.Use != "watch" {
		t.Errorf("Use = %q, want 'watch'", cmd.Use)
	}

	flag := cmd.Flags().Lookup("debounce")
	if flag == nil {
		t.Fatal("missing --debounce flag")
	}
	if flag.DefValue != "500ms" {
		t.Errorf("debounce default = %q, want '500ms'", flag.DefValue)
	}
}
