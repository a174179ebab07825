// Package secretsmanager declares the Secrets Manager resources vecstack emits.
package secretsmanager

// Secret_GenerateSecretString asks the deployment engine to generate the
// credential at apply time; the value never appears in the template.
type Secret_GenerateSecretString struct {
	SecretStringTemplate string `json:"SecretStringTemplate,omitempty"`
	GenerateStringKey    string `json:"GenerateStringKey,omitempty"`
	PasswordLength       int    `json:"PasswordLength,omitempty"`
	ExcludeCharacters    string `json:"ExcludeCharacters,omitempty"`
}

// Secret is an AWS::SecretsManager::Secret.
type Secret struct {
	Name                 any                          `json:"Name,omitempty"`
	Description          string                       `json:"Description,omitempty"`
	GenerateSecretString *Secret_GenerateSecretString `json:"GenerateSecretString,omitempty"`
	Tags                 []any                        `json:"Tags,omitempty"`
}

// ResourceType returns the CloudFormation type.
func (Secret) ResourceType() string { return "AWS::SecretsManager::Secret" }

// SecretTargetAttachment is an AWS::SecretsManager::SecretTargetAttachment.
// Attaching the secret to the cluster backfills {host, port, dbname,
// dbClusterIdentifier} into the secret once the cluster is provisioned.
type SecretTargetAttachment struct {
	SecretId   any    `json:"SecretId"`
	TargetId   any    `json:"TargetId"`
	TargetType string `json:"TargetType"`
}

// ResourceType returns the CloudFormation type.
func (SecretTargetAttachment) ResourceType() string {
	return "AWS::SecretsManager::SecretTargetAttachment"
}
