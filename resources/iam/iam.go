// Package iam declares the IAM resources vecstack emits.
package iam

// Role_Policy is an inline policy attached to a Role.
type Role_Policy struct {
	PolicyName     string `json:"PolicyName"`
	PolicyDocument any    `json:"PolicyDocument"`
}

// Role is an AWS::IAM::Role.
type Role struct {
	RoleName                 any    `json:"RoleName,omitempty"`
	Description              string `json:"Description,omitempty"`
	AssumeRolePolicyDocument any    `json:"AssumeRolePolicyDocument"`
	ManagedPolicyArns        []any  `json:"ManagedPolicyArns,omitempty"`
	Policies                 []any  `json:"Policies,omitempty"`
	Tags                     []any  `json:"Tags,omitempty"`
}

// ResourceType returns the CloudFormation type.
func (Role) ResourceType() string { return "AWS::IAM::Role" }
