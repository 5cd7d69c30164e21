// internal/workers/matching/calculate-compatibility/models.go
package calculatecompatibility

type Input struct {
	PlayerID      string         `json:"playerId"`
	ListingData   ListingData    `json:"listingData"`
	PlayerProfile *PlayerProfile `json:"playerProfile,omitempty"`
}

type ListingData struct {
	ID                 string   `json:"id"`
	KingdomNumber      int      `json:"kingdomNumber"`
	MinPower           float64  `json:"minPower"`
	PowerRange         string   `json:"powerRange,omitempty"`
	MinTCLevel         int      `json:"minTcLevel"`
	MainLanguage       string   `json:"mainLanguage"`
	SecondaryLanguages []string `json:"secondaryLanguages"`
	KingdomVibe        []string `json:"kingdomVibe"`
	IsRecruiting       bool     `json:"isRecruiting"`
}

type PlayerProfile struct {
	Power              float64  `json:"power"`
	TCLevel            int      `json:"tcLevel"`
	MainLanguage       string   `json:"mainLanguage"`
	SecondaryLanguages []string `json:"secondaryLanguages"`
	LookingFor         []string `json:"lookingFor"`
}

type Output struct {
	MatchScore   int           `json:"matchScore"`
	MatchDetails []MatchDetail `json:"matchDetails"`
}

type MatchDetail struct {
	Label   string `json:"label"`
	Matched bool   `json:"matched"`
	Detail  string `json:"detail"`
}
