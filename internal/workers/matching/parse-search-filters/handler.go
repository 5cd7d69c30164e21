// internal/workers/matching/parse-search-filters/handler.go
package parsesearchfilters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"kingdom-workers/internal/common/logger"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const TaskType = "parse-search-filters"

var (
	ErrInvalidFilterFormat = errors.New("INVALID_FILTER_FORMAT")
)

// Power caps at 10 billion expressed in millions.
const maxPowerMillions = 10000

const maxTCLevel = 40

var validVibes = map[string]bool{
	"competitive": true, "casual": true, "organized": true, "social": true,
	"farming": true, "kvk": true, "war-focused": true, "f2p-friendly": true,
}

var validSortOptions = map[string]bool{
	"match_score": true, "power": true, "newest": true, "kingdom_number": true,
}

type Handler struct {
	config *Config
	logger logger.Logger
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	return &Handler{
		config: config,
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
		h.failJob(client, job, "PARSE_ERROR", fmt.Sprintf("parse input: %v", err), 0)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.failJob(client, job, "INVALID_FILTER_FORMAT", err.Error(), 0)
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	if input.RawFilters == nil {
		input.RawFilters = make(map[string]interface{})
	}

	parsed := ParsedFilters{
		Languages:  []string{},
		Vibes:      []string{},
		Keywords:   "",
		Recruiting: true,
		SortBy:     "match_score",
		Pagination: Pagination{Page: 1, Size: 20},
		PowerRange: PowerRange{Min: 0, Max: maxPowerMillions},
		TCLevel:    TCLevel{Min: 1, Max: maxTCLevel},
	}

	if languagesRaw, ok := input.RawFilters["languages"]; ok {
		parsed.Languages = h.parseStringArray(languagesRaw)
	}

	if vibesRaw, ok := input.RawFilters["vibes"]; ok {
		parsed.Vibes = h.parseStringArray(vibesRaw)
		for _, vibe := range parsed.Vibes {
			if !validVibes[vibe] {
				return nil, fmt.Errorf("%w: invalid vibe tag '%s'", ErrInvalidFilterFormat, vibe)
			}
		}
	}

	if powerRaw, ok := input.RawFilters["powerRange"]; ok {
		if powerMap, ok := powerRaw.(map[string]interface{}); ok {
			if minRaw, exists := powerMap["min"]; exists {
				if min, err := h.parseFloat(minRaw); err == nil && min >= 0 {
					parsed.PowerRange.Min = min
				}
			}
			if maxRaw, exists := powerMap["max"]; exists {
				if max, err := h.parseFloat(maxRaw); err == nil && max > 0 && max <= maxPowerMillions {
					parsed.PowerRange.Max = max
				}
			}
			if parsed.PowerRange.Min > parsed.PowerRange.Max {
				return nil, fmt.Errorf("%w: power min (%g) > max (%g)",
					ErrInvalidFilterFormat, parsed.PowerRange.Min, parsed.PowerRange.Max)
			}
		}
	}

	if tcRaw, ok := input.RawFilters["tcLevel"]; ok {
		if tcMap, ok := tcRaw.(map[string]interface{}); ok {
			if minRaw, exists := tcMap["min"]; exists {
				if min, err := h.parseInt(minRaw); err == nil && min >= 1 && min <= maxTCLevel {
					parsed.TCLevel.Min = min
				}
			}
			if maxRaw, exists := tcMap["max"]; exists {
				if max, err := h.parseInt(maxRaw); err == nil && max >= 1 && max <= maxTCLevel {
					parsed.TCLevel.Max = max
				}
			}
			if parsed.TCLevel.Min > parsed.TCLevel.Max {
				return nil, fmt.Errorf("%w: tc level min (%d) > max (%d)",
					ErrInvalidFilterFormat, parsed.TCLevel.Min, parsed.TCLevel.Max)
			}
		}
	}

	if keywordsRaw, ok := input.RawFilters["keywords"]; ok {
		if s, ok := keywordsRaw.(string); ok {
			parsed.Keywords = strings.TrimSpace(s)
		}
	}

	if recruitingRaw, ok := input.RawFilters["recruiting"]; ok {
		if b, ok := recruitingRaw.(bool); ok {
			parsed.Recruiting = b
		}
	}

	if sortByRaw, ok := input.RawFilters["sortBy"]; ok {
		if s, ok := sortByRaw.(string); ok {
			s = strings.TrimSpace(s)
			if validSortOptions[s] {
				parsed.SortBy = s
			} else {
				return nil, fmt.Errorf("%w: invalid sortBy '%s'", ErrInvalidFilterFormat, s)
			}
		}
	}

	if paginationRaw, ok := input.RawFilters["pagination"]; ok {
		if pgMap, ok := paginationRaw.(map[string]interface{}); ok {
			if pageRaw, exists := pgMap["page"]; exists {
				if page, err := h.parseInt(pageRaw); err == nil && page >= 1 {
					parsed.Pagination.Page = page
				}
			}
			if sizeRaw, exists := pgMap["size"]; exists {
				if size, err := h.parseInt(sizeRaw); err == nil && size >= 1 {
					if size <= 100 {
						parsed.Pagination.Size = size
					} else {
						parsed.Pagination.Size = 100
					}
				}
			}
		}
	}

	h.logger.Info("filters parsed successfully", map[string]interface{}{
		"languages":  parsed.Languages,
		"powerRange": parsed.PowerRange,
		"tcLevel":    parsed.TCLevel,
		"vibes":      parsed.Vibes,
		"keywords":   parsed.Keywords,
		"sortBy":     parsed.SortBy,
		"pagination": parsed.Pagination,
	})

	return &Output{ParsedFilters: parsed}, nil
}

func (h *Handler) parseStringArray(raw interface{}) []string {
	result := []string{}
	if raw == nil {
		return result
	}

	switch v := raw.(type) {
	case []interface{}:
		for _, item := range v {
			if s, ok := item.(string); ok {
				s = strings.TrimSpace(s)
				if s != "" {
					result = append(result, s)
				}
			}
		}
	case []string:
		for _, s := range v {
			s = strings.TrimSpace(s)
			if s != "" {
				result = append(result, s)
			}
		}
	case string:
		for _, s := range strings.Split(v, ",") {
			s = strings.TrimSpace(s)
			if s != "" {
				result = append(result, s)
			}
		}
	}

	return result
}

func (h *Handler) parseInt(raw interface{}) (int, error) {
	switch v := raw.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		return int(v), nil
	case string:
		return strconv.Atoi(strings.TrimSpace(v))
	}
	return 0, fmt.Errorf("not a number: %v", raw)
}

func (h *Handler) parseFloat(raw interface{}) (float64, error) {
	switch v := raw.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case string:
		return strconv.ParseFloat(strings.TrimSpace(v), 64)
	}
	return 0, fmt.Errorf("not a number: %v", raw)
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

func (h *Handler) failJob(client worker.JobClient, job entities.Job, errorCode, errorMessage string, _ int32) {
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
