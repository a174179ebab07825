// Package lambda declares the Lambda resources vecstack emits.
package lambda

// Function_Code locates the function's deployment package.
type Function_Code struct {
	S3Bucket string `json:"S3Bucket,omitempty"`
	S3Key    string `json:"S3Key,omitempty"`
	ZipFile  string `json:"ZipFile,omitempty"`
}

// Function_VpcConfig attaches the function to VPC subnets.
type Function_VpcConfig struct {
	SecurityGroupIds []any `json:"SecurityGroupIds"`
	SubnetIds        []any `json:"SubnetIds"`
}

// Function_Environment carries the function's environment configuration.
type Function_Environment struct {
	Variables map[string]any `json:"Variables"`
}

// Function is an AWS::Lambda::Function.
type Function struct {
	FunctionName any                   `json:"FunctionName,omitempty"`
	Description  string                `json:"Description,omitempty"`
	Runtime      string                `json:"Runtime,omitempty"`
	Handler      string                `json:"Handler,omitempty"`
	Code         Function_Code         `json:"Code"`
	Role         any                   `json:"Role"`
	Timeout      int                   `json:"Timeout,omitempty"`
	MemorySize   int                   `json:"MemorySize,omitempty"`
	VpcConfig    *Function_VpcConfig   `json:"VpcConfig,omitempty"`
	Environment  *Function_Environment `json:"Environment,omitempty"`
	Tags         []any                 `json:"Tags,omitempty"`
}

// ResourceType returns the CloudFormation type.
func (Function) ResourceType() string { return "AWS::Lambda::Function" }
