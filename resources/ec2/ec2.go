// Package ec2 declares the EC2 networking resources vecstack emits.
package ec2

// SecurityGroup is an AWS::EC2::SecurityGroup.
type SecurityGroup struct {
	GroupDescription     string `json:"GroupDescription"`
	GroupName            any    `json:"GroupName,omitempty"`
	VpcId                any    `json:"VpcId,omitempty"`
	SecurityGroupIngress []any  `json:"SecurityGroupIngress,omitempty"`
	SecurityGroupEgress  []any  `json:"SecurityGroupEgress,omitempty"`
	Tags                 []any  `json:"Tags,omitempty"`
}

// ResourceType returns the CloudFormation type.
func (SecurityGroup) ResourceType() string { return "AWS::EC2::SecurityGroup" }

// SecurityGroupIngress is a standalone AWS::EC2::SecurityGroupIngress rule.
//
// Standalone rules keep the boundary's rule set open for growth: each
// AllowFrom call declares one of these against the boundary group, so
// repeated deployments never rewrite the group itself.
type SecurityGroupIngress struct {
	Description           string `json:"Description,omitempty"`
	GroupId               any    `json:"GroupId,omitempty"`
	IpProtocol            string `json:"IpProtocol"`
	FromPort              int    `json:"FromPort,omitempty"`
	ToPort                int    `json:"ToPort,omitempty"`
	CidrIp                string `json:"CidrIp,omitempty"`
	SourceSecurityGroupId any    `json:"SourceSecurityGroupId,omitempty"`
}

// ResourceType returns the CloudFormation type.
func (SecurityGroupIngress) ResourceType() string { return "AWS::EC2::SecurityGroupIngress" }
