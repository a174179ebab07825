package stack

import (
	"fmt"

	vecstack "github.com/vecstack/vecstack"
	"github.com/vecstack/vecstack/internal/builder"
	. "github.com/vecstack/vecstack/intrinsics"
	"github.com/vecstack/vecstack/resources/cloudformation"
	"github.com/vecstack/vecstack/resources/ec2"
	"github.com/vecstack/vecstack/resources/iam"
	"github.com/vecstack/vecstack/resources/lambda"
)

const (
	bootstrapSGID       = "BootstrapSecurityGroup"
	bootstrapRoleID     = "BootstrapRole"
	bootstrapFunctionID = "BootstrapFunction"
	initID              = "VectorStoreInit"
)

// newBootstrapUnit declares the one-shot initializer: a function living in
// the cluster's VPC plus a custom resource that invokes it once per cluster
// endpoint. The function receives connection details by reference and the
// credential secret as an ARN only; it fetches the secret value itself at
// run time, so no credential ever passes through the template or the
// function's environment.
func newBootstrapUnit(b *builder.Builder, cfg *Config, boundary *networkBoundary, cluster ClusterHandle, secret SecretHandle) error {
	if err := b.Add(bootstrapSGID, ec2.SecurityGroup{
		GroupDescription: fmt.Sprintf("Egress boundary for the %s initializer", cfg.Name),
		VpcId:            cfg.VpcID,
	}); err != nil {
		return err
	}

	ruleID, err := boundary.AllowFrom("Bootstrap", Ref{LogicalName: bootstrapSGID})
	if err != nil {
		return err
	}

	if err := b.Add(bootstrapRoleID, iam.Role{
		Description: "Execution role for the " + cfg.Name + " initializer",
		AssumeRolePolicyDocument: PolicyDocument{
			Version: "2012-10-17",
			Statement: []any{
				PolicyStatement{
					Effect:    "Allow",
					Principal: ServicePrincipal{"lambda.amazonaws.com"},
					Action:    "sts:AssumeRole",
				},
			},
		},
		ManagedPolicyArns: []any{
			Sub{String: "arn:${AWS::Partition}:iam::aws:policy/service-role/AWSLambdaVPCAccessExecutionRole"},
		},
		Policies: []any{
			iam.Role_Policy{
				PolicyName: "read-credentials",
				PolicyDocument: PolicyDocument{
					Version: "2012-10-17",
					Statement: []any{
						PolicyStatement{
							Effect:   "Allow",
							Action:   "secretsmanager:GetSecretValue",
							Resource: secret.Arn(),
						},
					},
				},
			},
		},
	}); err != nil {
		return err
	}

	subnetIDs := make([]any, len(cfg.SubnetIDs))
	for i, id := range cfg.SubnetIDs {
		subnetIDs[i] = id
	}
	if err := b.Add(bootstrapFunctionID, lambda.Function{
		Description: "Initializes the " + cfg.Name + " database schema",
		Runtime:     cfg.Bootstrap.Runtime,
		Handler:     cfg.Bootstrap.Handler,
		Code: lambda.Function_Code{
			S3Bucket: cfg.Bootstrap.S3Bucket,
			S3Key:    cfg.Bootstrap.S3Key,
		},
		Role:       vecstack.AttrRef{Resource: bootstrapRoleID, Attribute: "Arn"},
		Timeout:    cfg.Bootstrap.Timeout,
		MemorySize: 256,
		VpcConfig: &lambda.Function_VpcConfig{
			SecurityGroupIds: Any(Ref{LogicalName: bootstrapSGID}),
			SubnetIds:        subnetIDs,
		},
		Environment: &lambda.Function_Environment{
			Variables: Json{
				"DB_HOST":               cluster.EndpointHost(),
				"DB_PORT":               cluster.EndpointPort(),
				"DB_NAME":               cfg.DatabaseName,
				"DB_CLUSTER_IDENTIFIER": cluster.Identifier(),
				"DB_SECRET_ARN":         secret.Arn(),
			},
		},
	}); err != nil {
		return err
	}

	// Keyed on the endpoint host: a cluster replacement changes the host,
	// which re-runs the initializer; any other update leaves it untouched.
	// The explicit edges hold the invocation back until the writer is up,
	// the secret carries connection fields, and the network path is open.
	return b.Add(initID, cloudformation.CustomResource{
		Type:         "Custom::VectorStoreInit",
		ServiceToken: vecstack.AttrRef{Resource: bootstrapFunctionID, Attribute: "Arn"},
		Extra: map[string]any{
			"Id": cluster.EndpointHost(),
		},
	}, cluster.WriterLogicalID, secret.AttachmentLogicalID, ruleID)
}
