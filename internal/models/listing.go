package models

// KingdomListing is a recruiting post describing a kingdom's requirements
// and culture tags.
type KingdomListing struct {
	ID                 string   `json:"id"`
	KingdomNumber      int      `json:"kingdomNumber"`
	Title              string   `json:"title"`
	Description        string   `json:"description"`
	MinPower           float64  `json:"minPower"` // millions
	PowerRange         string   `json:"powerRange,omitempty"`
	MinTCLevel         int      `json:"minTcLevel"`
	MainLanguage       string   `json:"mainLanguage"`
	SecondaryLanguages []string `json:"secondaryLanguages"`
	KingdomVibe        []string `json:"kingdomVibe"`
	IsRecruiting       bool     `json:"isRecruiting"`
	IsVerified         bool     `json:"isVerified"`
	ApplicationCount   int      `json:"applicationCount"`
	ViewCount          int      `json:"viewCount"`
	CreatedAt          string   `json:"createdAt"`
	UpdatedAt          string   `json:"updatedAt"`
}
