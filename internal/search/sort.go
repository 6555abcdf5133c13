package search

import (
	"github.com/wheelsup/flightschool-search/internal/domain"
	"github.com/wheelsup/flightschool-search/internal/gateway"
)

// relevanceDesc is the default ordering and the fallback for sort requests
// that cannot be honored.
func relevanceDesc() gateway.SortSpec {
	return gateway.SortSpec{{"_score": "desc"}}
}

// BuildSort maps a logical sort request to the engine sort specification.
// Distance sorting needs the request location; without one it falls back to
// relevance rather than erroring. Cost sorting is not supported (pricing
// lives in a separate index) and also falls back.
func BuildSort(sort *domain.SortRequest, location *domain.LocationFilter) gateway.SortSpec {
	if sort == nil {
		return relevanceDesc()
	}

	order := sort.Order
	if order == "" {
		order = domain.OrderDesc
	}

	switch sort.Field {
	case domain.SortRelevance:
		return gateway.SortSpec{{"_score": order}}

	case domain.SortRating:
		return gateway.SortSpec{
			{"rating": order},
			{"_score": "desc"},
		}

	case domain.SortName:
		return gateway.SortSpec{{"name.sort": order}}

	case domain.SortDistance:
		if location == nil {
			return relevanceDesc()
		}
		return gateway.SortSpec{{
			"_geo_distance": map[string]any{
				"location.coordinates": map[string]any{
					"lat": location.Latitude,
					"lon": location.Longitude,
				},
				"order": order,
				"unit":  "mi",
			},
		}}

	case domain.SortCost:
		return relevanceDesc()

	default:
		return relevanceDesc()
	}
}
