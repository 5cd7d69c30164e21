package models

// TransferApplication records a player applying to a kingdom listing.
type TransferApplication struct {
	ID              string                 `json:"id"`
	PlayerID        string                 `json:"playerId"`
	ListingID       string                 `json:"listingId"`
	ApplicationData map[string]interface{} `json:"applicationData"`
	MatchScore      int                    `json:"matchScore"`
	Status          string                 `json:"status"`
	CreatedAt       string                 `json:"createdAt"`
	UpdatedAt       string                 `json:"updatedAt"`
}

// Application status values.
const (
	ApplicationStatusSubmitted = "submitted"
	ApplicationStatusAccepted  = "accepted"
	ApplicationStatusRejected  = "rejected"
	ApplicationStatusWithdrawn = "withdrawn"
)
