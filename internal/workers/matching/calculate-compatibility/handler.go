// internal/workers/matching/calculate-compatibility/handler.go
package calculatecompatibility

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"kingdom-workers/internal/common/logger"
	"kingdom-workers/internal/common/metrics"
	"kingdom-workers/internal/match"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/redis/go-redis/v9"
)

const (
	TaskType = "calculate-compatibility"
)

var (
	ErrMatchScoreFailed = errors.New("MATCH_SCORE_FAILED")
)

type Handler struct {
	config *Config
	db     *sql.DB
	redis  *redis.Client
	logger logger.Logger
}

func NewHandler(config *Config, db *sql.DB, redis *redis.Client, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		db:     db,
		redis:  redis,
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
		h.failJob(client, job, "MATCH_SCORE_FAILED", err.Error(), 0)
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	var profile *PlayerProfile
	if input.PlayerProfile != nil {
		profile = input.PlayerProfile
	} else if input.PlayerID != "" {
		var err error
		profile, err = h.getPlayerProfile(ctx, input.PlayerID)
		if err != nil {
			h.logger.Warn("failed to fetch player profile", map[string]interface{}{
				"playerId": input.PlayerID,
				"error":    err,
			})
		}
	}

	listing := toMatchListing(&input.ListingData)
	result := match.Score(listing, toMatchProfile(profile))

	metrics.MatchScoresComputed.WithLabelValues("full").Inc()
	metrics.MatchScoreDistribution.Observe(float64(result.Score))

	details := make([]MatchDetail, 0, len(result.Details))
	for _, d := range result.Details {
		details = append(details, MatchDetail{
			Label:   d.Label,
			Matched: d.Matched,
			Detail:  d.Detail,
		})
	}

	h.logger.Info("compatibility score calculated", map[string]interface{}{
		"playerId":  input.PlayerID,
		"listingId": input.ListingData.ID,
		"score":     result.Score,
		"factors":   len(details),
	})

	return &Output{
		MatchScore:   result.Score,
		MatchDetails: details,
	}, nil
}

func (h *Handler) getPlayerProfile(ctx context.Context, playerID string) (*PlayerProfile, error) {
	cacheKey := "player:profile:" + playerID
	if val, err := h.redis.Get(ctx, cacheKey).Result(); err == nil {
		var profile PlayerProfile
		if err := json.Unmarshal([]byte(val), &profile); err == nil {
			return &profile, nil
		}
	}

	row := h.db.QueryRowContext(ctx, `
		SELECT power, tc_level, main_language, secondary_languages, looking_for
		FROM transfer_profiles WHERE player_id = $1 AND is_active = true`, playerID)

	var profile PlayerProfile
	var secondaries, lookingFor []byte
	err := row.Scan(&profile.Power, &profile.TCLevel, &profile.MainLanguage, &secondaries, &lookingFor)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(secondaries, &profile.SecondaryLanguages); err != nil {
		profile.SecondaryLanguages = []string{}
	}
	if err := json.Unmarshal(lookingFor, &profile.LookingFor); err != nil {
		profile.LookingFor = []string{}
	}

	data, _ := json.Marshal(profile)
	h.redis.Set(ctx, cacheKey, data, h.config.CacheTTL)

	return &profile, nil
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
