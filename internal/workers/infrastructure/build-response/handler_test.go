// internal/workers/infrastructure/build-response/handler_test.go
package buildresponse

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"kingdom-workers/internal/common/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestRegistry(t *testing.T, templates []TemplateDefinition) string {
	dir := t.TempDir()
	path := filepath.Join(dir, "templates.json")

	payload := map[string]interface{}{"templates": templates}
	data, err := json.Marshal(payload)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	return path
}

func listingDetailTemplate() TemplateDefinition {
	return TemplateDefinition{
		ID:   "listing-detail",
		Type: "listing-detail",
		Schema: map[string]interface{}{
			"type":     "object",
			"required": []interface{}{"listing"},
			"properties": map[string]interface{}{
				"listing": map[string]interface{}{
					"type": "object",
				},
			},
		},
		Template: map[string]interface{}{
			"kingdom": map[string]interface{}{
				"number": "{{listing.kingdomNumber}}",
				"title":  "{{listing.title}}",
			},
			"matchScore": "{{matchScore}}",
			"source":     "kingdom-hub",
		},
		Version: "1.0",
	}
}

func newTestHandler(t *testing.T, registryPath string) *Handler {
	cfg := &Config{
		TemplateRegistry: registryPath,
		CacheTTL:         5 * time.Minute,
		AppVersion:       "test",
		Timeout:          10 * time.Second,
	}
	return NewHandler(cfg, logger.NewTestLogger(t))
}

func TestHandler_Execute_BuildsResponse(t *testing.T) {
	path := writeTestRegistry(t, []TemplateDefinition{listingDetailTemplate()})
	handler := newTestHandler(t, path)

	output, err := handler.Execute(context.Background(), &Input{
		TemplateId: "listing-detail",
		RequestId:  "req-1",
		Data: map[string]interface{}{
			"listing": map[string]interface{}{
				"kingdomNumber": float64(1829),
				"title":         "KD1829 recruiting",
			},
			"matchScore": 86,
		},
	})

	require.NoError(t, err)
	assert.Equal(t, "req-1", output.Response.RequestId)
	assert.Equal(t, "success", output.Response.Status)
	assert.Equal(t, "test", output.Response.Metadata.Version)

	kingdom := output.Response.Data["kingdom"].(map[string]interface{})
	assert.Equal(t, float64(1829), kingdom["number"])
	assert.Equal(t, "KD1829 recruiting", kingdom["title"])
	assert.Equal(t, float64(86), output.Response.Data["matchScore"])
	assert.Equal(t, "kingdom-hub", output.Response.Data["source"])
}

func TestHandler_Execute_TemplateNotFound(t *testing.T) {
	path := writeTestRegistry(t, []TemplateDefinition{listingDetailTemplate()})
	handler := newTestHandler(t, path)

	output, err := handler.Execute(context.Background(), &Input{
		TemplateId: "nonexistent",
		RequestId:  "req-2",
		Data:       map[string]interface{}{},
	})

	assert.ErrorIs(t, err, ErrTemplateNotFound)
	assert.Nil(t, output)
}

func TestHandler_Execute_SchemaValidationFails(t *testing.T) {
	path := writeTestRegistry(t, []TemplateDefinition{listingDetailTemplate()})
	handler := newTestHandler(t, path)

	// Required "listing" key missing.
	output, err := handler.Execute(context.Background(), &Input{
		TemplateId: "listing-detail",
		RequestId:  "req-3",
		Data:       map[string]interface{}{"matchScore": 10},
	})

	assert.ErrorIs(t, err, ErrTemplateValidationFailed)
	assert.Nil(t, output)
}

func TestHandler_Execute_MissingPlaceholderBecomesNil(t *testing.T) {
	path := writeTestRegistry(t, []TemplateDefinition{listingDetailTemplate()})
	handler := newTestHandler(t, path)

	output, err := handler.Execute(context.Background(), &Input{
		TemplateId: "listing-detail",
		RequestId:  "req-4",
		Data: map[string]interface{}{
			"listing": map[string]interface{}{
				"kingdomNumber": float64(2044),
			},
		},
	})

	require.NoError(t, err)
	kingdom := output.Response.Data["kingdom"].(map[string]interface{})
	assert.Nil(t, kingdom["title"])
	assert.Nil(t, output.Response.Data["matchScore"])
}

func TestHandler_Execute_CachesTemplate(t *testing.T) {
	path := writeTestRegistry(t, []TemplateDefinition{listingDetailTemplate()})
	handler := newTestHandler(t, path)

	input := &Input{
		TemplateId: "listing-detail",
		RequestId:  "req-5",
		Data: map[string]interface{}{
			"listing": map[string]interface{}{"title": "KD1829"},
		},
	}

	_, err := handler.Execute(context.Background(), input)
	require.NoError(t, err)

	// Registry file gone, cached template still serves.
	require.NoError(t, os.Remove(path))

	_, err = handler.Execute(context.Background(), input)
	assert.NoError(t, err)
}

func TestHandler_LookupNestedValue(t *testing.T) {
	handler := newTestHandler(t, "unused")

	data := map[string]interface{}{
		"a": map[string]interface{}{
			"b": map[string]interface{}{"c": "deep"},
		},
	}

	assert.Equal(t, "deep", handler.lookupNestedValue(data, "a.b.c"))
	assert.Nil(t, handler.lookupNestedValue(data, "a.x.c"))
	assert.Nil(t, handler.lookupNestedValue(data, "missing"))
}
