// Package intrinsics provides CloudFormation intrinsic functions.
// This file contains IAM policy document types and helpers.
package intrinsics

import (
	"encoding/json"
)

// Json is a shorthand for map[string]any.
// Used for inline JSON objects like environment variable maps.
type Json = map[string]any

// Any creates a []any slice from the given items.
// Use for fields typed as []any that accept mixed types or intrinsics.
//
// Example:
//
//	VpcSecurityGroupIds: Any(Ref{"VectorBoundary"}),
func Any(items ...any) []any {
	return items
}

// PolicyDocument represents an IAM policy document.
//
// Example:
//
//	var SchedulerPolicy = PolicyDocument{
//	    Version:   "2012-10-17",
//	    Statement: []any{StartStopStatement},
//	}
type PolicyDocument struct {
	Version   string `json:"Version,omitempty"`
	Statement []any  `json:"Statement"`
}

// NewPolicyDocument creates a PolicyDocument with the default version.
func NewPolicyDocument() PolicyDocument {
	return PolicyDocument{Version: "2012-10-17"}
}

// PolicyStatement represents an IAM policy statement.
//
// Example:
//
//	var StartStopStatement = PolicyStatement{
//	    Effect:   "Allow",
//	    Action:   []any{"rds:StartDBCluster", "rds:StopDBCluster"},
//	    Resource: clusterArn,
//	}
type PolicyStatement struct {
	Sid       string `json:"Sid,omitempty"`
	Effect    string `json:"Effect"`
	Principal any    `json:"Principal,omitempty"`
	Action    any    `json:"Action,omitempty"`
	Resource  any    `json:"Resource,omitempty"`
	Condition Json   `json:"Condition,omitempty"`
}

// ServicePrincipal represents a service principal (e.g., scheduler.amazonaws.com).
// Serializes to {"Service": ...} format.
//
// Examples:
//
//	ServicePrincipal{"lambda.amazonaws.com"}
//	ServicePrincipal{"scheduler.amazonaws.com"}
type ServicePrincipal []any

// MarshalJSON serializes to {"Service": ...} format.
func (p ServicePrincipal) MarshalJSON() ([]byte, error) {
	if len(p) == 1 {
		return json.Marshal(map[string]any{"Service": p[0]})
	}
	return json.Marshal(map[string]any{"Service": []any(p)})
}
