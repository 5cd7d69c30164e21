// internal/workers/transfer/validate-transfer-profile/handler.go
package validatetransferprofile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"kingdom-workers/internal/common/logger"
	"kingdom-workers/internal/common/validation"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "validate-transfer-profile"
)

var (
	ErrProfileValidationFailed = errors.New("PROFILE_VALIDATION_FAILED")
)

func floatPtr(f float64) *float64 { return &f }
func intPtr(i int) *int           { return &i }

var profileSchema = validation.JSONSchema{
	Type: "object",
	Properties: map[string]validation.Property{
		"playerName": {
			Type:      "string",
			MinLength: intPtr(2),
			MaxLength: intPtr(50),
		},
		"power": {
			Type:    "number",
			Minimum: floatPtr(0),
			Maximum: floatPtr(10000),
		},
		"tcLevel": {
			Type:    "integer",
			Minimum: floatPtr(1),
			Maximum: floatPtr(40),
		},
		"mainLanguage": {
			Type:      "string",
			MinLength: intPtr(2),
			MaxLength: intPtr(30),
		},
		"secondaryLanguages": {
			Type:  "array",
			Items: &validation.Property{Type: "string"},
		},
		"lookingFor": {
			Type:  "array",
			Items: &validation.Property{Type: "string"},
		},
	},
	Required:             []string{"playerName", "power", "tcLevel", "mainLanguage"},
	AdditionalProperties: false,
}

type Handler struct {
	logger logger.Logger
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	return &Handler{
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.failJob(client, job, "PARSE_ERROR", fmt.Sprintf("parse input: %v", err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.failJob(client, job, "PROFILE_VALIDATION_FAILED", err.Error())
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	if input.ProfileData == nil {
		return nil, fmt.Errorf("%w: profileData is required", ErrProfileValidationFailed)
	}

	result := validation.ValidateInput(input.ProfileData, profileSchema)
	if !result.Valid {
		h.logger.Info("profile validation failed", map[string]interface{}{
			"errorCount": len(result.Errors),
		})
		return nil, fmt.Errorf("%w: %d validation errors", ErrProfileValidationFailed, len(result.Errors))
	}

	validated := h.normalizeProfile(input.ProfileData)

	h.logger.Info("profile validated", map[string]interface{}{
		"playerName": validated["playerName"],
	})

	return &Output{
		IsValid:          true,
		ValidatedProfile: validated,
		ValidationErrors: []validation.ValidationError{},
	}, nil
}

// normalizeProfile trims string fields and deduplicates the tag lists.
func (h *Handler) normalizeProfile(data map[string]interface{}) map[string]interface{} {
	validated := make(map[string]interface{}, len(data))
	for k, v := range data {
		validated[k] = v
	}

	if name, ok := validated["playerName"].(string); ok {
		validated["playerName"] = strings.Join(strings.Fields(name), " ")
	}
	if lang, ok := validated["mainLanguage"].(string); ok {
		validated["mainLanguage"] = strings.TrimSpace(lang)
	}
	for _, field := range []string{"secondaryLanguages", "lookingFor"} {
		if raw, ok := validated[field].([]interface{}); ok {
			validated[field] = dedupeStrings(raw)
		}
	}

	return validated
}

func dedupeStrings(raw []interface{}) []string {
	seen := make(map[string]bool, len(raw))
	out := []string{}
	for _, item := range raw {
		s, ok := item.(string)
		if !ok {
			continue
		}
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	_, err = cmd.Send(context.Background())
	if err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) failJob(client worker.JobClient, job entities.Job, errorCode, errorMessage string) {
	h.logger.Error("job failed", map[string]interface{}{
		"jobKey":       job.Key,
		"errorCode":    errorCode,
		"errorMessage": errorMessage,
	})

	_, err := client.NewThrowErrorCommand().
		JobKey(job.Key).
		ErrorCode(errorCode).
		ErrorMessage(errorMessage).
		Send(context.Background())
	if err != nil {
		h.logger.Error("failed to throw error", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
