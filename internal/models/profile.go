package models

// TransferProfile is a player's stated capabilities and preferences used
// to find a kingdom. A player has at most one active profile.
type TransferProfile struct {
	PlayerID           string   `json:"playerId"`
	PlayerName         string   `json:"playerName"`
	Power              float64  `json:"power"` // millions
	TCLevel            int      `json:"tcLevel"`
	MainLanguage       string   `json:"mainLanguage"`
	SecondaryLanguages []string `json:"secondaryLanguages"`
	LookingFor         []string `json:"lookingFor"`
	IsActive           bool     `json:"isActive"`
	CreatedAt          string   `json:"createdAt"`
	UpdatedAt          string   `json:"updatedAt"`
}
