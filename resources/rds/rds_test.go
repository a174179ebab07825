package rds

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResourceTypes(t *testing.T) {
	assert.Equal(t, "AWS::RDS::DBCluster", DBCluster{}.ResourceType())
	assert.Equal(t, "AWS::RDS::DBInstance", DBInstance{}.ResourceType())
	assert.Equal(t, "AWS::RDS::DBSubnetGroup", DBSubnetGroup{}.ResourceType())
}

func TestDBClusterSerialization(t *testing.T) {
	cluster := DBCluster{
		Engine:        "aurora-postgresql",
		EngineVersion: "15.5",
		DatabaseName:  "vectors",
		Port:          5432,
		ServerlessV2ScalingConfiguration: &ServerlessV2ScalingConfiguration{
			MinCapacity: 0.5,
			MaxCapacity: 4,
		},
		StorageEncrypted: true,
	}

	data, err := json.Marshal(cluster)
	require.NoError(t, err)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal(data, &parsed))

	assert.Equal(t, "aurora-postgresql", parsed["Engine"])
	assert.Equal(t, float64(5432), parsed["Port"])
	assert.Equal(t, true, parsed["StorageEncrypted"])

	scaling := parsed["ServerlessV2ScalingConfiguration"].(map[string]any)
	assert.Equal(t, 0.5, scaling["MinCapacity"])
	assert.Equal(t, float64(4), scaling["MaxCapacity"])
}

// An explicit false must survive serialization; the encryption setting always
// mirrors the input flag.
func TestDBClusterSerialization_EncryptionOff(t *testing.T) {
	cluster := DBCluster{
		Engine:           "aurora-postgresql",
		StorageEncrypted: false,
	}

	data, err := json.Marshal(cluster)
	require.NoError(t, err)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal(data, &parsed))

	assert.Contains(t, parsed, "StorageEncrypted")
	assert.Equal(t, false, parsed["StorageEncrypted"])
}

func TestDBClusterSerialization_OmitsUnsetFields(t *testing.T) {
	data, err := json.Marshal(DBCluster{Engine: "aurora-postgresql"})
	require.NoError(t, err)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal(data, &parsed))

	assert.NotContains(t, parsed, "StorageEncrypted")
	assert.NotContains(t, parsed, "EngineVersion")
	assert.NotContains(t, parsed, "ServerlessV2ScalingConfiguration")
	assert.NotContains(t, parsed, "MasterUserPassword")
}
