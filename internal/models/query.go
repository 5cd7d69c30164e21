package models

// QueryType names a pre-registered PostgreSQL query.
type QueryType string

const (
	QueryTypeListingFullDetails  QueryType = "listing_full_details"
	QueryTypeActiveListings      QueryType = "active_listings"
	QueryTypeTransferProfile     QueryType = "transfer_profile"
	QueryTypeListingApplications QueryType = "listing_applications"
)
