package search

import (
	"fmt"

	"github.com/wheelsup/flightschool-search/internal/domain"
	"github.com/wheelsup/flightschool-search/internal/gateway"
)

// DefaultRadiusMiles is applied when a location is supplied without an
// explicit radius.
const DefaultRadiusMiles = 100.0

// searchFields are the multi-match targets with their relevance weights.
var searchFields = []string{
	"name^3",
	"description^2",
	"location.city^2",
	"specialties",
	"accreditation.type",
}

// BuildQuery composes the boolean query for validated parameters. The filter
// clauses are appended in a fixed order so the output is deterministic:
// geo, state, city, va_approved, rating range, accreditation types,
// specialties, fleet size, then always exactly one is_active clause last.
func BuildQuery(p *domain.SearchParameters) gateway.BoolQuery {
	var q gateway.BoolQuery

	if p.Query != "" {
		q.Must = append(q.Must, map[string]any{
			"multi_match": map[string]any{
				"query":     p.Query,
				"fields":    searchFields,
				"type":      "best_fields",
				"fuzziness": "AUTO",
			},
		})
	} else {
		q.Must = append(q.Must, map[string]any{
			"match_all": map[string]any{},
		})
	}

	if p.Location != nil {
		radius := DefaultRadiusMiles
		if p.Location.RadiusMiles != nil {
			radius = *p.Location.RadiusMiles
		}
		q.Filter = append(q.Filter, map[string]any{
			"geo_distance": map[string]any{
				"distance": fmt.Sprintf("%gmi", radius),
				"location.coordinates": map[string]any{
					"lat": p.Location.Latitude,
					"lon": p.Location.Longitude,
				},
			},
		})
	}

	f := p.Filters

	if f.State != nil {
		q.Filter = append(q.Filter, map[string]any{
			"term": map[string]any{"location.state": *f.State},
		})
	}

	if f.City != nil {
		q.Filter = append(q.Filter, map[string]any{
			"term": map[string]any{"location.city.keyword": *f.City},
		})
	}

	// Explicitly set only: filtering on va_approved=false is meaningful.
	if f.VAApproved != nil {
		q.Filter = append(q.Filter, map[string]any{
			"term": map[string]any{"accreditation.va_approved": *f.VAApproved},
		})
	}

	if f.MinRating != nil || f.MaxRating != nil {
		bounds := map[string]any{}
		if f.MinRating != nil {
			bounds["gte"] = *f.MinRating
		}
		if f.MaxRating != nil {
			bounds["lte"] = *f.MaxRating
		}
		q.Filter = append(q.Filter, map[string]any{
			"range": map[string]any{"rating": bounds},
		})
	}

	if len(f.AccreditationTypes) > 0 {
		q.Filter = append(q.Filter, map[string]any{
			"terms": map[string]any{"accreditation.type": f.AccreditationTypes},
		})
	}

	if len(f.Specialties) > 0 {
		q.Filter = append(q.Filter, map[string]any{
			"terms": map[string]any{"specialties": f.Specialties},
		})
	}

	if f.MinFleetSize != nil {
		q.Filter = append(q.Filter, map[string]any{
			"range": map[string]any{"operations.fleet_size": map[string]any{"gte": *f.MinFleetSize}},
		})
	}

	// MaxCost has no filter: pricing is not colocated with school documents.

	// Inactive schools never surface, regardless of the other filters.
	q.Filter = append(q.Filter, map[string]any{
		"term": map[string]any{"is_active": true},
	})

	return q
}
