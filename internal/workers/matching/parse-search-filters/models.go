// internal/workers/matching/parse-search-filters/models.go
package parsesearchfilters

type Input struct {
	RawFilters map[string]interface{} `json:"rawFilters"`
}

type Output struct {
	ParsedFilters ParsedFilters `json:"parsedFilters"`
}

type ParsedFilters struct {
	Languages  []string   `json:"languages"`
	PowerRange PowerRange `json:"powerRange"`
	TCLevel    TCLevel    `json:"tcLevel"`
	Vibes      []string   `json:"vibes"`
	Keywords   string     `json:"keywords"`
	Recruiting bool       `json:"recruiting"`
	SortBy     string     `json:"sortBy"`
	Pagination Pagination `json:"pagination"`
}

// PowerRange is expressed in millions of power.
type PowerRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type TCLevel struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

type Pagination struct {
	Page int `json:"page"`
	Size int `json:"size"`
}
