// internal/workers/matching/rank-listings/models.go
package ranklistings

type Input struct {
	Listings      []ListingData  `json:"listings"`
	PlayerProfile *PlayerProfile `json:"playerProfile,omitempty"`
}

type ListingData struct {
	ID                 string   `json:"id"`
	KingdomNumber      int      `json:"kingdomNumber"`
	Title              string   `json:"title"`
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
	RankedListings []RankedListing `json:"rankedListings"`
}

type RankedListing struct {
	ID            string `json:"id"`
	KingdomNumber int    `json:"kingdomNumber"`
	Title         string `json:"title"`
	MatchScore    int    `json:"matchScore"`
}
