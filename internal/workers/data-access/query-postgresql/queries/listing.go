// internal/workers/data-access/query-postgresql/queries/listing.go
package queries

import (
	"context"
	"database/sql"
	"time"
)

func ListingFullDetails(ctx context.Context, db *sql.DB, params map[string]interface{}) (interface{}, int, int64, error) {
	listingID, ok := params["listingId"].(string)
	if !ok {
		return nil, 0, 0, ErrMissingParam
	}

	start := time.Now()

	var id, title, description, mainLanguage string
	var kingdomNumber, minTCLevel int
	var minPower float64
	var secondaryLanguages, kingdomVibe string
	var isRecruiting, isVerified bool
	var createdAt, updatedAt string

	err := db.QueryRowContext(ctx, `
		SELECT id, kingdom_number, title, description, min_power, min_tc_level,
		       main_language, secondary_languages, kingdom_vibe,
		       is_recruiting, is_verified, created_at, updated_at
		FROM kingdom_listings
		WHERE id = $1`, listingID).Scan(
		&id, &kingdomNumber, &title, &description,
		&minPower, &minTCLevel,
		&mainLanguage, &secondaryLanguages, &kingdomVibe,
		&isRecruiting, &isVerified, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, 0, 0, err
	}

	result := map[string]interface{}{
		"id":                 id,
		"kingdomNumber":      kingdomNumber,
		"title":              title,
		"description":        description,
		"minPower":           minPower,
		"minTcLevel":         minTCLevel,
		"mainLanguage":       mainLanguage,
		"secondaryLanguages": secondaryLanguages,
		"kingdomVibe":        kingdomVibe,
		"isRecruiting":       isRecruiting,
		"isVerified":         isVerified,
		"createdAt":          createdAt,
		"updatedAt":          updatedAt,
	}

	execTime := time.Since(start).Milliseconds()
	return result, 1, execTime, nil
}

func ActiveListings(ctx context.Context, db *sql.DB, params map[string]interface{}) (interface{}, int, int64, error) {
	start := time.Now()

	rows, err := db.QueryContext(ctx, `
		SELECT id, kingdom_number, title, min_power, min_tc_level,
		       main_language, is_verified
		FROM kingdom_listings
		WHERE is_recruiting = true
		ORDER BY updated_at DESC`)
	if err != nil {
		return nil, 0, 0, err
	}
	defer rows.Close()

	var results []map[string]interface{}
	for rows.Next() {
		var id, title, mainLanguage string
		var kingdomNumber, minTCLevel int
		var minPower float64
		var isVerified bool
		err := rows.Scan(&id, &kingdomNumber, &title, &minPower, &minTCLevel, &mainLanguage, &isVerified)
		if err != nil {
			return nil, 0, 0, err
		}
		results = append(results, map[string]interface{}{
			"id":            id,
			"kingdomNumber": kingdomNumber,
			"title":         title,
			"minPower":      minPower,
			"minTcLevel":    minTCLevel,
			"mainLanguage":  mainLanguage,
			"isVerified":    isVerified,
		})
	}

	execTime := time.Since(start).Milliseconds()
	return results, len(results), execTime, nil
}

func ListingApplications(ctx context.Context, db *sql.DB, params map[string]interface{}) (interface{}, int, int64, error) {
	listingID, ok := params["listingId"].(string)
	if !ok {
		return nil, 0, 0, ErrMissingParam
	}

	start := time.Now()

	rows, err := db.QueryContext(ctx, `
		SELECT id, player_id, match_score, status, created_at
		FROM transfer_applications
		WHERE listing_id = $1
		ORDER BY created_at DESC`, listingID)
	if err != nil {
		return nil, 0, 0, err
	}
	defer rows.Close()

	var results []map[string]interface{}
	for rows.Next() {
		var id, playerID, status, createdAt string
		var matchScore int
		err := rows.Scan(&id, &playerID, &matchScore, &status, &createdAt)
		if err != nil {
			return nil, 0, 0, err
		}
		results = append(results, map[string]interface{}{
			"id":         id,
			"playerId":   playerID,
			"matchScore": matchScore,
			"status":     status,
			"createdAt":  createdAt,
		})
	}

	execTime := time.Since(start).Milliseconds()
	return results, len(results), execTime, nil
}
