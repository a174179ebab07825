package stack

import (
	vecstack "github.com/vecstack/vecstack"
	"github.com/vecstack/vecstack/internal/builder"
	. "github.com/vecstack/vecstack/intrinsics"
	"github.com/vecstack/vecstack/resources/rds"
	"github.com/vecstack/vecstack/resources/secretsmanager"
)

const (
	subnetGroupID = "VectorSubnets"
	secretID      = "VectorSecret"
	attachmentID  = "VectorSecretAttachment"
	clusterID     = "VectorCluster"
	writerID      = "VectorClusterWriter"
	readerID      = "VectorClusterReader"

	engine = "aurora-postgresql"
)

// ClusterHandle is a read-only handle to the provisioned cluster. The
// endpoint values are deferred references, resolved by the deployment
// engine only after the cluster is applied, never read eagerly.
type ClusterHandle struct {
	LogicalID       string
	WriterLogicalID string
	ReaderLogicalID string // empty when no reader is declared
}

// Identifier returns the cluster identifier as a deferred reference.
func (h ClusterHandle) Identifier() Ref {
	return Ref{LogicalName: h.LogicalID}
}

// EndpointHost returns the writer endpoint host as a deferred reference.
func (h ClusterHandle) EndpointHost() vecstack.AttrRef {
	return vecstack.AttrRef{Resource: h.LogicalID, Attribute: "Endpoint.Address"}
}

// EndpointPort returns the writer endpoint port as a deferred reference.
func (h ClusterHandle) EndpointPort() vecstack.AttrRef {
	return vecstack.AttrRef{Resource: h.LogicalID, Attribute: "Endpoint.Port"}
}

// SecretHandle is a read-only handle to the generated credential secret.
// The secret's values exist only at apply time; consumers share it by
// reference and none of them may mutate it.
type SecretHandle struct {
	LogicalID           string
	AttachmentLogicalID string
}

// Arn returns the secret's ARN as a deferred reference.
func (h SecretHandle) Arn() Ref {
	return Ref{LogicalName: h.LogicalID}
}

// newClusterUnit declares the database cluster: subnet group, generated
// credential secret, the serverless cluster scaling within the configured
// bounds, exactly one writer instance, and an optional reader replica. The
// secret attachment backfills live connection fields {host, port, dbname,
// dbClusterIdentifier} into the secret after provisioning.
func newClusterUnit(b *builder.Builder, cfg *Config) (ClusterHandle, SecretHandle, error) {
	cluster := ClusterHandle{LogicalID: clusterID, WriterLogicalID: writerID}
	secret := SecretHandle{LogicalID: secretID, AttachmentLogicalID: attachmentID}

	subnetIDs := make([]any, len(cfg.SubnetIDs))
	for i, id := range cfg.SubnetIDs {
		subnetIDs[i] = id
	}
	if err := b.Add(subnetGroupID, rds.DBSubnetGroup{
		DBSubnetGroupDescription: "Subnet group for the " + cfg.Name + " cluster",
		SubnetIds:                subnetIDs,
	}); err != nil {
		return cluster, secret, err
	}

	// The password is generated by the deployment engine at apply time;
	// the template only carries the generation rule.
	if err := b.Add(secretID, secretsmanager.Secret{
		Name:        Sub{String: "${AWS::StackName}-" + cfg.Name + "-credentials"},
		Description: "Master credentials for the " + cfg.Name + " cluster",
		GenerateSecretString: &secretsmanager.Secret_GenerateSecretString{
			SecretStringTemplate: `{"username": "` + cfg.MasterUsername + `"}`,
			GenerateStringKey:    "password",
			PasswordLength:       32,
			ExcludeCharacters:    `"@/\`,
		},
	}); err != nil {
		return cluster, secret, err
	}

	if err := b.Add(clusterID, rds.DBCluster{
		DBClusterIdentifier: Sub{String: "${AWS::StackName}-" + cfg.Name},
		Engine:              engine,
		EngineVersion:       cfg.EngineVersion,
		DatabaseName:        cfg.DatabaseName,
		Port:                clusterPort,
		MasterUsername:      resolveSecretField(secretID, "username"),
		MasterUserPassword:  resolveSecretField(secretID, "password"),
		DBSubnetGroupName:   Ref{LogicalName: subnetGroupID},
		VpcSecurityGroupIds: Any(vecstack.AttrRef{Resource: boundaryID, Attribute: "GroupId"}),
		ServerlessV2ScalingConfiguration: &rds.ServerlessV2ScalingConfiguration{
			MinCapacity: cfg.Scaling.MinCapacity,
			MaxCapacity: cfg.Scaling.MaxCapacity,
		},
		StorageEncrypted:      cfg.Encryption,
		DeletionProtection:    cfg.DeletionProtection,
		BackupRetentionPeriod: cfg.BackupRetentionDays,
	}); err != nil {
		return cluster, secret, err
	}

	if err := b.Add(writerID, rds.DBInstance{
		DBClusterIdentifier: Ref{LogicalName: clusterID},
		DBInstanceClass:     "db.serverless",
		Engine:              engine,
		PubliclyAccessible:  false,
	}); err != nil {
		return cluster, secret, err
	}

	if cfg.Reader {
		if err := b.Add(readerID, rds.DBInstance{
			DBClusterIdentifier: Ref{LogicalName: clusterID},
			DBInstanceClass:     "db.serverless",
			Engine:              engine,
			PubliclyAccessible:  false,
			PromotionTier:       1,
		}, writerID); err != nil {
			return cluster, secret, err
		}
		cluster.ReaderLogicalID = readerID
	}

	if err := b.Add(attachmentID, secretsmanager.SecretTargetAttachment{
		SecretId:   Ref{LogicalName: secretID},
		TargetId:   Ref{LogicalName: clusterID},
		TargetType: "AWS::RDS::DBCluster",
	}); err != nil {
		return cluster, secret, err
	}

	return cluster, secret, nil
}

// resolveSecretField defers a credential field to apply time via a dynamic
// reference, so no credential value ever lands in the template text.
func resolveSecretField(secretLogicalID, field string) any {
	return Join{
		Delimiter: "",
		Values: []any{
			"{{resolve:secretsmanager:",
			Ref{LogicalName: secretLogicalID},
			":SecretString:" + field + "}}",
		},
	}
}
