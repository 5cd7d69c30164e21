// internal/workers/data-access/query-postgresql/queries/profile.go
package queries

import (
	"context"
	"database/sql"
	"time"
)

func TransferProfile(ctx context.Context, db *sql.DB, params map[string]interface{}) (interface{}, int, int64, error) {
	playerID, ok := params["playerId"].(string)
	if !ok {
		return nil, 0, 0, ErrMissingParam
	}

	start := time.Now()

	var id, playerName, mainLanguage string
	var tcLevel int
	var power float64
	var secondaryLanguages, lookingFor string
	var isActive bool

	err := db.QueryRowContext(ctx, `
		SELECT player_id, player_name, power, tc_level, main_language,
		       secondary_languages, looking_for, is_active
		FROM transfer_profiles
		WHERE player_id = $1`, playerID).Scan(
		&id, &playerName, &power, &tcLevel,
		&mainLanguage, &secondaryLanguages, &lookingFor, &isActive,
	)
	if err != nil {
		return nil, 0, 0, err
	}

	result := map[string]interface{}{
		"playerId":           id,
		"playerName":         playerName,
		"power":              power,
		"tcLevel":            tcLevel,
		"mainLanguage":       mainLanguage,
		"secondaryLanguages": secondaryLanguages,
		"lookingFor":         lookingFor,
		"isActive":           isActive,
	}

	execTime := time.Since(start).Milliseconds()
	return result, 1, execTime, nil
}
