package search

import (
	"github.com/wheelsup/flightschool-search/internal/domain"
	"github.com/wheelsup/flightschool-search/internal/gateway"
	"github.com/wheelsup/flightschool-search/internal/geo"
)

// ProcessResult converts a well-formed engine response into the typed search
// result. Engine hit order is preserved; this layer never re-sorts. Page and
// limit are echoed from the request's pagination, not re-derived from the
// response.
func ProcessResult(raw *gateway.RawResponse, params *domain.SearchParameters) *domain.SearchResult {
	schools := make([]domain.ScoredSchool, 0, len(raw.Hits.Hits))

	for _, hit := range raw.Hits.Hits {
		scored := domain.ScoredSchool{School: hit.Source}
		if scored.ID == "" {
			scored.ID = hit.ID
		}
		if hit.Score != nil {
			scored.RelevanceScore = *hit.Score
		}
		if d := distanceFromRequest(params.Location, hit.Source.Location.Coordinates); d != nil {
			scored.DistanceMiles = d
		}
		schools = append(schools, scored)
	}

	aggregations := ProcessAggregations(raw.Aggregations)
	page := CalculatePage(params.Pagination)

	return &domain.SearchResult{
		Schools:      schools,
		Total:        raw.Hits.Total.Value,
		Page:         page.Page,
		Limit:        page.Limit,
		TookMs:       int64(raw.Took),
		Aggregations: &aggregations,
	}
}

// distanceFromRequest computes the distance between the request location and
// the entity coordinates. Present only when the request carried a location
// and the entity has coordinates.
func distanceFromRequest(loc *domain.LocationFilter, coords *domain.GeoPoint) *float64 {
	if loc == nil || coords == nil {
		return nil
	}
	d := geo.Haversine(loc.Latitude, loc.Longitude, coords.Lat, coords.Lon, geo.Miles)
	return &d
}
