// Package vecstack provides the template and resource contracts for the
// vecstack provisioning library.
//
// vecstack declares the managed resources behind a vector-capable relational
// database cluster (the cluster itself, its network boundary, an optional
// start/stop schedule, and a one-shot bootstrap trigger) and emits the
// resulting resource graph as a CloudFormation template:
//
//	s, _ := stack.New(cfg)
//	tmpl, _ := s.Synthesize()
//
// The deployment engine consuming the template is responsible for applying
// resources in dependency order; this module only emits correct edges.
package vecstack

import (
	"encoding/json"
)

// Resource represents a single declared CloudFormation resource.
// All resource types (rds.DBCluster, ec2.SecurityGroup, etc.) implement this.
type Resource interface {
	// ResourceType returns the CloudFormation type (e.g., "AWS::RDS::DBCluster")
	ResourceType() string
}

// AttrRef is a deferred reference to a resource attribute. At declaration
// time it is only a placeholder; the deployment engine resolves it to a
// concrete value after the referenced resource is applied.
//
// Example:
//
//	AttrRef{Resource: "VectorCluster", Attribute: "Endpoint.Address"}
//
// serializes to:
//
//	{"Fn::GetAtt": ["VectorCluster", "Endpoint.Address"]}
type AttrRef struct {
	// Resource is the logical name of the referenced resource
	Resource string
	// Attribute is the attribute name (e.g., "Arn", "Endpoint.Address")
	Attribute string
}

// MarshalJSON serializes AttrRef to CloudFormation GetAtt syntax.
func (a AttrRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string][]string{
		"Fn::GetAtt": {a.Resource, a.Attribute},
	})
}

// IsZero returns true if the AttrRef has not been populated.
func (a AttrRef) IsZero() bool {
	return a.Resource == "" && a.Attribute == ""
}

// Template represents the emitted CloudFormation template.
type Template struct {
	AWSTemplateFormatVersion string                 `json:"AWSTemplateFormatVersion" yaml:"AWSTemplateFormatVersion"`
	Description              string                 `json:"Description,omitempty" yaml:"Description,omitempty"`
	Parameters               map[string]Parameter   `json:"Parameters,omitempty" yaml:"Parameters,omitempty"`
	Resources                map[string]ResourceDef `json:"Resources" yaml:"Resources"`
	Outputs                  map[string]Output      `json:"Outputs,omitempty" yaml:"Outputs,omitempty"`
}

// ResourceDef is a single resource in the emitted template.
type ResourceDef struct {
	Type       string         `json:"Type" yaml:"Type"`
	Properties map[string]any `json:"Properties,omitempty" yaml:"Properties,omitempty"`
	DependsOn  []string       `json:"DependsOn,omitempty" yaml:"DependsOn,omitempty"`
}

// Parameter is a template parameter.
type Parameter struct {
	Type          string   `json:"Type"`
	Description   string   `json:"Description,omitempty"`
	Default       any      `json:"Default,omitempty"`
	AllowedValues []string `json:"AllowedValues,omitempty"`
}

// Output is a template output.
type Output struct {
	Description string `json:"Description,omitempty"`
	Value       any    `json:"Value"`
	Export      *struct {
		Name string `json:"Name"`
	} `json:"Export,omitempty"`
}

// SynthResult is the JSON output from `vecstack synth`.
type SynthResult struct {
	Success   bool     `json:"success"`
	Template  Template `json:"template,omitempty"`
	Resources []string `json:"resources,omitempty"`
	Errors    []string `json:"errors,omitempty"`
}

// ValidateResult is the JSON output from `vecstack validate`.
type ValidateResult struct {
	Success   bool     `json:"success"`
	Resources int      `json:"resources"`
	Errors    []string `json:"errors,omitempty"`
	Warnings  []string `json:"warnings,omitempty"`
}
