// pkg/registry/registry_test.go
package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRegistry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "task-registry.json")
	content := `{
		"version": "1.0.0",
		"lastUpdated": "2026-08-01T00:00:00Z",
		"tasks": [
			{"id": "calculate-compatibility", "displayName": "Calculate Compatibility", "category": "matching", "taskType": "calculate-compatibility", "retries": 3},
			{"id": "rank-listings", "displayName": "Rank Listings", "category": "matching", "taskType": "rank-listings", "retries": 0}
		]
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	reg, err := LoadRegistry(path)
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", reg.Version)
	assert.Len(t, reg.Tasks, 2)

	task, err := reg.FindTask("calculate-compatibility")
	require.NoError(t, err)
	assert.Equal(t, "matching", task.Category)
	assert.Equal(t, 3, task.Retries)

	_, err = reg.FindTask("unknown-task")
	assert.Error(t, err)

	assert.Equal(t, []string{"calculate-compatibility", "rank-listings"}, reg.TaskTypes())
}

func TestLoadRegistry_MissingFile(t *testing.T) {
	_, err := LoadRegistry(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}
