// internal/workers/data-access/query-postgresql/models.go
package querypostgresql

import "kingdom-workers/internal/models"

type Input struct {
	QueryType  string                 `json:"queryType"`
	ListingID  string                 `json:"listingId,omitempty"`
	ListingIDs []string               `json:"listingIds,omitempty"`
	PlayerID   string                 `json:"playerId,omitempty"`
	Filters    map[string]interface{} `json:"filters,omitempty"`
}

type Output struct {
	Data               interface{} `json:"data"`
	RowCount           int         `json:"rowCount"`
	QueryExecutionTime int64       `json:"queryExecutionTime"` // milliseconds
}

type QueryType = models.QueryType

var (
	QueryTypeListingFullDetails  = models.QueryTypeListingFullDetails
	QueryTypeActiveListings      = models.QueryTypeActiveListings
	QueryTypeTransferProfile     = models.QueryTypeTransferProfile
	QueryTypeListingApplications = models.QueryTypeListingApplications
)
