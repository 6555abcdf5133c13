package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wheelsup/flightschool-search/internal/domain"
	"github.com/wheelsup/flightschool-search/internal/gateway"
)

func rawHit(id string, score *float64, school domain.School) gateway.RawHit {
	school.ID = id
	return gateway.RawHit{ID: id, Score: score, Source: school}
}

func TestProcessResult_ZeroHits(t *testing.T) {
	raw := &gateway.RawResponse{Took: 3}
	result := ProcessResult(raw, &domain.SearchParameters{})

	assert.NotNil(t, result.Schools)
	assert.Empty(t, result.Schools)
	assert.Zero(t, result.Total)
	assert.Equal(t, 1, result.Page)
	assert.Equal(t, 20, result.Limit)
	assert.Equal(t, int64(3), result.TookMs)
	require.NotNil(t, result.Aggregations)
	assert.Empty(t, result.Aggregations.States)
}

func TestProcessResult_PreservesHitOrder(t *testing.T) {
	s1, s2 := 2.5, 1.25
	raw := &gateway.RawResponse{
		Took: 12,
		Hits: gateway.RawHits{
			Total: gateway.RawTotal{Value: 2},
			Hits: []gateway.RawHit{
				rawHit("school-b", &s1, domain.School{Name: "Bravo Aviation"}),
				rawHit("school-a", &s2, domain.School{Name: "Alpha Flight Academy"}),
			},
		},
	}

	result := ProcessResult(raw, &domain.SearchParameters{})
	require.Len(t, result.Schools, 2)
	assert.Equal(t, "school-b", result.Schools[0].ID)
	assert.Equal(t, 2.5, result.Schools[0].RelevanceScore)
	assert.Equal(t, "school-a", result.Schools[1].ID)
	assert.Equal(t, 2, result.Total)
}

func TestProcessResult_MissingScoreDefaultsToZero(t *testing.T) {
	raw := &gateway.RawResponse{
		Hits: gateway.RawHits{
			Total: gateway.RawTotal{Value: 1},
			Hits:  []gateway.RawHit{rawHit("s1", nil, domain.School{Name: "No Score"})},
		},
	}

	result := ProcessResult(raw, &domain.SearchParameters{})
	require.Len(t, result.Schools, 1)
	assert.Zero(t, result.Schools[0].RelevanceScore)
}

func TestProcessResult_IDFallsBackToHitID(t *testing.T) {
	raw := &gateway.RawResponse{
		Hits: gateway.RawHits{
			Total: gateway.RawTotal{Value: 1},
			Hits: []gateway.RawHit{
				{ID: "doc-7", Source: domain.School{Name: "Unidentified"}},
			},
		},
	}

	result := ProcessResult(raw, &domain.SearchParameters{})
	assert.Equal(t, "doc-7", result.Schools[0].ID)
}

func TestProcessResult_DistanceWhenLocationRequested(t *testing.T) {
	raw := &gateway.RawResponse{
		Hits: gateway.RawHits{
			Total: gateway.RawTotal{Value: 1},
			Hits: []gateway.RawHit{
				rawHit("s1", nil, domain.School{
					Name: "Van Nuys Flyers",
					Location: domain.Location{
						Coordinates: &domain.GeoPoint{Lat: 34.2098, Lon: -118.4890},
					},
				}),
			},
		},
	}

	params := &domain.SearchParameters{
		Location: &domain.LocationFilter{Latitude: 34.0522, Longitude: -118.2437},
	}

	result := ProcessResult(raw, params)
	require.NotNil(t, result.Schools[0].DistanceMiles)
	assert.Greater(t, *result.Schools[0].DistanceMiles, 10.0)
	assert.Less(t, *result.Schools[0].DistanceMiles, 30.0)
}

func TestProcessResult_NoDistanceWithoutRequestLocation(t *testing.T) {
	raw := &gateway.RawResponse{
		Hits: gateway.RawHits{
			Total: gateway.RawTotal{Value: 1},
			Hits: []gateway.RawHit{
				rawHit("s1", nil, domain.School{
					Location: domain.Location{
						Coordinates: &domain.GeoPoint{Lat: 34.2098, Lon: -118.4890},
					},
				}),
			},
		},
	}

	result := ProcessResult(raw, &domain.SearchParameters{})
	assert.Nil(t, result.Schools[0].DistanceMiles)
}

func TestProcessResult_NoDistanceWithoutSchoolCoordinates(t *testing.T) {
	raw := &gateway.RawResponse{
		Hits: gateway.RawHits{
			Total: gateway.RawTotal{Value: 1},
			Hits:  []gateway.RawHit{rawHit("s1", nil, domain.School{Name: "No Coords"})},
		},
	}

	params := &domain.SearchParameters{
		Location: &domain.LocationFilter{Latitude: 34.0522, Longitude: -118.2437},
	}

	result := ProcessResult(raw, params)
	assert.Nil(t, result.Schools[0].DistanceMiles)
}

func TestProcessResult_EchoesRequestedPagination(t *testing.T) {
	raw := &gateway.RawResponse{}
	params := &domain.SearchParameters{
		Pagination: &domain.PaginationRequest{Page: 4, Limit: 50},
	}

	result := ProcessResult(raw, params)
	assert.Equal(t, 4, result.Page)
	assert.Equal(t, 50, result.Limit)
}
