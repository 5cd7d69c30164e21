// internal/workers/data-access/query-elasticsearch/queries/builders.go
package queries

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

var (
	ErrUnknownQueryType = errors.New("unknown query type")
	ErrMissingIndex     = errors.New("index name is required")
)

// ElasticsearchQuery defines the structure of a query request
type ElasticsearchQuery struct {
	Index      string
	QueryType  string
	Filters    map[string]interface{}
	ListingID  string
	Language   string
	Pagination struct {
		From int
		Size int
	}
}

// BuildQuery builds an Elasticsearch search request based on query type and filters
func BuildQuery(esClient *elasticsearch.Client, eq ElasticsearchQuery) (*esapi.SearchRequest, error) {
	if eq.Index == "" {
		return nil, ErrMissingIndex
	}

	var queryBody map[string]interface{}

	switch eq.QueryType {
	case "listing_index":
		queryBody = buildListingSearchQuery(eq)
	case "similar_listings":
		queryBody = buildSimilarListingsQuery(eq)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownQueryType, eq.QueryType)
	}

	body, _ := json.Marshal(queryBody)

	req := esapi.SearchRequest{
		Index:  []string{eq.Index},
		Body:   strings.NewReader(string(body)),
		From:   &eq.Pagination.From,
		Size:   &eq.Pagination.Size,
		Pretty: true,
	}

	return &req, nil
}

// buildListingSearchQuery builds the main kingdom listing search query dynamically
func buildListingSearchQuery(eq ElasticsearchQuery) map[string]interface{} {
	boolQuery := make(map[string]interface{})
	mustClauses := []interface{}{}
	filterClauses := []interface{}{}

	if keywords, ok := eq.Filters["keywords"].(string); ok && keywords != "" {
		mustClauses = append(mustClauses, map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  keywords,
				"fields": []string{"title^3", "description^2", "kingdom_vibe"},
				"type":   "best_fields",
			},
		})
	}

	if language, ok := eq.Filters["language"].(string); ok && language != "" {
		filterClauses = append(filterClauses, map[string]interface{}{
			"term": map[string]interface{}{"main_language": language},
		})
	} else if eq.Language != "" {
		filterClauses = append(filterClauses, map[string]interface{}{
			"term": map[string]interface{}{"main_language": eq.Language},
		})
	}

	// Power filter: the player must clear the listing's entry bar, so the
	// listing's min_power must not exceed the player's power.
	if powerRange, ok := eq.Filters["powerRange"].(map[string]interface{}); ok {
		if maxRaw, exists := powerRange["max"]; exists {
			if maxVal := toFloat(maxRaw); maxVal > 0 {
				filterClauses = append(filterClauses, map[string]interface{}{
					"range": map[string]interface{}{
						"min_power": map[string]interface{}{"lte": maxVal},
					},
				})
			}
		}
		if minRaw, exists := powerRange["min"]; exists {
			if minVal := toFloat(minRaw); minVal > 0 {
				filterClauses = append(filterClauses, map[string]interface{}{
					"range": map[string]interface{}{
						"min_power": map[string]interface{}{"gte": minVal},
					},
				})
			}
		}
	}

	if tcLevel, ok := eq.Filters["tcLevel"].(map[string]interface{}); ok {
		if maxRaw, exists := tcLevel["max"]; exists {
			if maxVal := toFloat(maxRaw); maxVal > 0 {
				filterClauses = append(filterClauses, map[string]interface{}{
					"range": map[string]interface{}{
						"min_tc_level": map[string]interface{}{"lte": maxVal},
					},
				})
			}
		}
	}

	if vibes, ok := eq.Filters["vibes"].([]interface{}); ok && len(vibes) > 0 {
		terms := make([]string, 0, len(vibes))
		for _, v := range vibes {
			if s, ok := v.(string); ok {
				terms = append(terms, s)
			}
		}
		if len(terms) > 0 {
			filterClauses = append(filterClauses, map[string]interface{}{
				"terms": map[string]interface{}{"kingdom_vibe": terms},
			})
		}
	}

	if recruiting, ok := eq.Filters["recruiting"].(bool); ok && recruiting {
		filterClauses = append(filterClauses, map[string]interface{}{
			"term": map[string]interface{}{"is_recruiting": true},
		})
	}

	if len(mustClauses) == 0 {
		mustClauses = append(mustClauses, map[string]interface{}{"match_all": map[string]interface{}{}})
	}

	boolQuery["must"] = mustClauses
	if len(filterClauses) > 0 {
		boolQuery["filter"] = filterClauses
	}

	query := map[string]interface{}{
		"query": map[string]interface{}{
			"bool": boolQuery,
		},
	}

	if sortBy, ok := eq.Filters["sortBy"].(string); ok {
		switch sortBy {
		case "power":
			query["sort"] = []map[string]interface{}{{"min_power": "asc"}}
		case "newest":
			query["sort"] = []map[string]interface{}{{"created_at": "desc"}}
		case "kingdom_number":
			query["sort"] = []map[string]interface{}{{"kingdom_number": "asc"}}
		}
	}

	return query
}

// buildSimilarListingsQuery builds a "similar kingdoms" query
func buildSimilarListingsQuery(eq ElasticsearchQuery) map[string]interface{} {
	if eq.ListingID == "" {
		return map[string]interface{}{
			"query": map[string]interface{}{
				"match_none": map[string]interface{}{},
			},
		}
	}

	return map[string]interface{}{
		"query": map[string]interface{}{
			"more_like_this": map[string]interface{}{
				"fields": []string{"title", "description", "kingdom_vibe"},
				"like": []map[string]interface{}{
					{"_index": eq.Index, "_id": eq.ListingID},
				},
				"min_term_freq":   1,
				"max_query_terms": 12,
				"min_doc_freq":    1,
			},
		},
	}
}

func toFloat(raw interface{}) float64 {
	switch v := raw.(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	}
	return 0
}
