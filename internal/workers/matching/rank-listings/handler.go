// internal/workers/matching/rank-listings/handler.go
package ranklistings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"kingdom-workers/internal/common/logger"
	"kingdom-workers/internal/common/metrics"
	"kingdom-workers/internal/match"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "rank-listings"
)

var (
	ErrNilInput = errors.New("input cannot be nil")
)

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

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.failJob(client, job, "RANKING_FAILED", err.Error(), 0)
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	start := time.Now()
	profile := toMatchProfile(input.PlayerProfile)

	processedIDs := make(map[string]bool)
	ranked := []RankedListing{}

	for i := range input.Listings {
		l := &input.Listings[i]
		if processedIDs[l.ID] {
			continue
		}
		processedIDs[l.ID] = true

		score := match.SortScore(toMatchListing(l), profile)
		metrics.MatchScoresComputed.WithLabelValues("sort_only").Inc()

		ranked = append(ranked, RankedListing{
			ID:            l.ID,
			KingdomNumber: l.KingdomNumber,
			Title:         l.Title,
			MatchScore:    score,
		})
	}

	// Highest score first, listing id breaks ties so output is stable.
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].MatchScore != ranked[j].MatchScore {
			return ranked[i].MatchScore > ranked[j].MatchScore
		}
		return ranked[i].ID < ranked[j].ID
	})

	if len(ranked) > h.config.MaxItems {
		ranked = ranked[:h.config.MaxItems]
	}

	duration := time.Since(start).Milliseconds()
	h.logger.Info("ranking completed", map[string]interface{}{
		"inputCount":  len(input.Listings),
		"outputCount": len(ranked),
		"durationMs":  duration,
	})

	if duration > 500 {
		h.logger.Warn("ranking exceeded 500ms", map[string]interface{}{
			"durationMs": duration,
		})
	}

	return &Output{RankedListings: ranked}, nil
}

func toMatchListing(l *ListingData) *match.Listing {
	if l == nil {
		return nil
	}
	return &match.Listing{
		MinPower:           l.MinPower,
		PowerRange:         l.PowerRange,
		MinTCLevel:         l.MinTCLevel,
		MainLanguage:       l.MainLanguage,
		SecondaryLanguages: l.SecondaryLanguages,
		KingdomVibe:        l.KingdomVibe,
		IsRecruiting:       l.IsRecruiting,
	}
}

func toMatchProfile(p *PlayerProfile) *match.Profile {
	if p == nil {
		return nil
	}
	return &match.Profile{
		Power:              p.Power,
		TCLevel:            p.TCLevel,
		MainLanguage:       p.MainLanguage,
		SecondaryLanguages: p.SecondaryLanguages,
		LookingFor:         p.LookingFor,
	}
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
