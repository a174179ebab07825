// Package rds declares the RDS resources vecstack emits.
package rds

// DBSubnetGroup is an AWS::RDS::DBSubnetGroup.
type DBSubnetGroup struct {
	DBSubnetGroupName        any    `json:"DBSubnetGroupName,omitempty"`
	DBSubnetGroupDescription string `json:"DBSubnetGroupDescription"`
	SubnetIds                []any  `json:"SubnetIds"`
	Tags                     []any  `json:"Tags,omitempty"`
}

// ResourceType returns the CloudFormation type.
func (DBSubnetGroup) ResourceType() string { return "AWS::RDS::DBSubnetGroup" }

// ServerlessV2ScalingConfiguration bounds the cluster's capacity units.
type ServerlessV2ScalingConfiguration struct {
	MinCapacity float64 `json:"MinCapacity"`
	MaxCapacity float64 `json:"MaxCapacity"`
}

// DBCluster is an AWS::RDS::DBCluster.
//
// StorageEncrypted and DeletionProtection are typed any so an explicit false
// survives serialization instead of being dropped as a zero value.
type DBCluster struct {
	DBClusterIdentifier              any                               `json:"DBClusterIdentifier,omitempty"`
	Engine                           string                            `json:"Engine"`
	EngineVersion                    string                            `json:"EngineVersion,omitempty"`
	DatabaseName                     string                            `json:"DatabaseName,omitempty"`
	Port                             int                               `json:"Port,omitempty"`
	MasterUsername                   any                               `json:"MasterUsername,omitempty"`
	MasterUserPassword               any                               `json:"MasterUserPassword,omitempty"`
	DBSubnetGroupName                any                               `json:"DBSubnetGroupName,omitempty"`
	VpcSecurityGroupIds              []any                             `json:"VpcSecurityGroupIds,omitempty"`
	ServerlessV2ScalingConfiguration *ServerlessV2ScalingConfiguration `json:"ServerlessV2ScalingConfiguration,omitempty"`
	StorageEncrypted                 any                               `json:"StorageEncrypted,omitempty"`
	DeletionProtection               any                               `json:"DeletionProtection,omitempty"`
	BackupRetentionPeriod            int                               `json:"BackupRetentionPeriod,omitempty"`
	Tags                             []any                             `json:"Tags,omitempty"`
}

// ResourceType returns the CloudFormation type.
func (DBCluster) ResourceType() string { return "AWS::RDS::DBCluster" }

// DBInstance is an AWS::RDS::DBInstance.
type DBInstance struct {
	DBInstanceIdentifier    any    `json:"DBInstanceIdentifier,omitempty"`
	DBClusterIdentifier     any    `json:"DBClusterIdentifier,omitempty"`
	DBInstanceClass         string `json:"DBInstanceClass"`
	Engine                  string `json:"Engine"`
	PubliclyAccessible      any    `json:"PubliclyAccessible,omitempty"`
	AutoMinorVersionUpgrade any    `json:"AutoMinorVersionUpgrade,omitempty"`
	PromotionTier           int    `json:"PromotionTier,omitempty"`
	Tags                    []any  `json:"Tags,omitempty"`
}

// ResourceType returns the CloudFormation type.
func (DBInstance) ResourceType() string { return "AWS::RDS::DBInstance" }
