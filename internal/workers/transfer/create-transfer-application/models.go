// internal/workers/transfer/create-transfer-application/models.go
package createtransferapplication

type Input struct {
	PlayerID        string                 `json:"playerId"`
	ListingID       string                 `json:"listingId"`
	ApplicationData map[string]interface{} `json:"applicationData"`
	MatchScore      int                    `json:"matchScore"`
}

type Output struct {
	ApplicationID     string `json:"applicationId"`
	ApplicationStatus string `json:"applicationStatus"`
	CreatedAt         string `json:"createdAt"` // ISO 8601
}
