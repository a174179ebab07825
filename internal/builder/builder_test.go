package builder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vecstack "github.com/vecstack/vecstack"
	"github.com/vecstack/vecstack/resources/cloudformation"
	"github.com/vecstack/vecstack/resources/ec2"
	"github.com/vecstack/vecstack/resources/rds"
)

func paramString(description string) vecstack.Parameter {
	return vecstack.Parameter{Type: "String", Description: description}
}

func clusterReferencing(boundary string) rds.DBCluster {
	return rds.DBCluster{
		Engine:              "aurora-postgresql",
		VpcSecurityGroupIds: []any{map[string]string{"Ref": boundary}},
	}
}

func TestAdd_DuplicateName(t *testing.T) {
	b := New("test")
	require.NoError(t, b.Add("Boundary", ec2.SecurityGroup{GroupDescription: "db"}))

	err := b.Add("Boundary", ec2.SecurityGroup{GroupDescription: "db"})
	assert.ErrorContains(t, err, "duplicate resource name")
}

func TestBuild_EmitsTypeAndDependsOn(t *testing.T) {
	b := New("vector store")
	require.NoError(t, b.Add("Boundary", ec2.SecurityGroup{GroupDescription: "db"}))
	require.NoError(t, b.Add("Cluster", clusterReferencing("Boundary")))
	require.NoError(t, b.Add("Writer", rds.DBInstance{
		DBClusterIdentifier: map[string]string{"Ref": "Cluster"},
		DBInstanceClass:     "db.serverless",
		Engine:              "aurora-postgresql",
	}, "Boundary"))

	tmpl, err := b.Build()
	require.NoError(t, err)

	assert.Equal(t, "2010-09-09", tmpl.AWSTemplateFormatVersion)
	assert.Equal(t, "vector store", tmpl.Description)
	assert.Len(t, tmpl.Resources, 3)
	assert.Equal(t, "AWS::RDS::DBCluster", tmpl.Resources["Cluster"].Type)
	assert.Equal(t, []string{"Boundary"}, tmpl.Resources["Writer"].DependsOn)
	assert.Empty(t, tmpl.Resources["Cluster"].DependsOn)
}

func TestBuild_UndeclaredReference(t *testing.T) {
	b := New("test")
	require.NoError(t, b.Add("Cluster", clusterReferencing("MissingBoundary")))

	_, err := b.Build()
	assert.ErrorContains(t, err, `references undeclared resource "MissingBoundary"`)
}

func TestBuild_UndeclaredReferenceInCustomResource(t *testing.T) {
	b := New("test")
	require.NoError(t, b.Add("Init", cloudformation.CustomResource{
		Type:         "Custom::Init",
		ServiceToken: vecstack.AttrRef{Resource: "NoSuchFunction", Attribute: "Arn"},
	}))

	_, err := b.Build()
	assert.ErrorContains(t, err, `references undeclared resource "NoSuchFunction"`)
}

func TestBuild_UndeclaredDependsOn(t *testing.T) {
	b := New("test")
	require.NoError(t, b.Add("Boundary", ec2.SecurityGroup{GroupDescription: "db"}, "Nowhere"))

	_, err := b.Build()
	assert.ErrorContains(t, err, `depends on undeclared resource "Nowhere"`)
}

func TestBuild_ParameterRefsAreAllowed(t *testing.T) {
	b := New("test")
	b.AddParameter("VpcId", paramString("VPC for the boundary"))
	require.NoError(t, b.Add("Boundary", ec2.SecurityGroup{
		GroupDescription: "db",
		VpcId:            map[string]string{"Ref": "VpcId"},
	}))

	tmpl, err := b.Build()
	require.NoError(t, err)
	assert.Contains(t, tmpl.Parameters, "VpcId")
}

func TestBuild_CycleDetected(t *testing.T) {
	b := New("test")
	require.NoError(t, b.Add("A", ec2.SecurityGroup{GroupDescription: "a"}, "B"))
	require.NoError(t, b.Add("B", ec2.SecurityGroup{GroupDescription: "b"}, "A"))

	_, err := b.Build()
	assert.ErrorContains(t, err, "circular dependency")
}

func TestApplyOrder_DependenciesFirst(t *testing.T) {
	b := New("test")
	require.NoError(t, b.Add("Writer", rds.DBInstance{
		DBClusterIdentifier: map[string]string{"Ref": "Cluster"},
		DBInstanceClass:     "db.serverless",
		Engine:              "aurora-postgresql",
	}))
	require.NoError(t, b.Add("Cluster", clusterReferencing("Boundary")))
	require.NoError(t, b.Add("Boundary", ec2.SecurityGroup{GroupDescription: "db"}))

	order, err := b.ApplyOrder()
	require.NoError(t, err)
	require.Len(t, order, 3)

	position := make(map[string]int, len(order))
	for i, name := range order {
		position[name] = i
	}
	assert.Less(t, position["Boundary"], position["Cluster"])
	assert.Less(t, position["Cluster"], position["Writer"])
}

func TestToJSONAndYAML(t *testing.T) {
	b := New("test")
	require.NoError(t, b.Add("Boundary", ec2.SecurityGroup{GroupDescription: "db"}))

	tmpl, err := b.Build()
	require.NoError(t, err)

	jsonData, err := ToJSON(tmpl)
	require.NoError(t, err)
	assert.Contains(t, string(jsonData), `"AWS::EC2::SecurityGroup"`)

	yamlData, err := ToYAML(tmpl)
	require.NoError(t, err)
	assert.Contains(t, string(yamlData), "AWS::EC2::SecurityGroup")
}

func TestBuild_IntrinsicsReachYAMLInWireForm(t *testing.T) {
	b := New("test")
	require.NoError(t, b.Add("Fn", ec2.SecurityGroup{GroupDescription: "fn"}))
	require.NoError(t, b.Add("Init", cloudformation.CustomResource{
		Type:         "Custom::Init",
		ServiceToken: vecstack.AttrRef{Resource: "Fn", Attribute: "Arn"},
	}))
	b.AddOutput("FnId", vecstack.Output{
		Value: vecstack.AttrRef{Resource: "Fn", Attribute: "GroupId"},
	})

	tmpl, err := b.Build()
	require.NoError(t, err)

	yamlData, err := ToYAML(tmpl)
	require.NoError(t, err)

	yaml := string(yamlData)
	assert.Contains(t, yaml, "Fn::GetAtt")
	assert.NotContains(t, yaml, "resource:")
	assert.NotContains(t, yaml, "attribute:")
}

func TestApplyOrder_CustomResourceReferencesCount(t *testing.T) {
	b := New("test")
	// Zed sorts after Init, so only the reference edge can order them.
	require.NoError(t, b.Add("Zed", ec2.SecurityGroup{GroupDescription: "fn"}))
	require.NoError(t, b.Add("Init", cloudformation.CustomResource{
		Type:         "Custom::Init",
		ServiceToken: vecstack.AttrRef{Resource: "Zed", Attribute: "Arn"},
	}))

	order, err := b.ApplyOrder()
	require.NoError(t, err)
	assert.Equal(t, []string{"Zed", "Init"}, order)
}
