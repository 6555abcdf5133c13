package search

import (
	"fmt"

	"github.com/wheelsup/flightschool-search/internal/domain"
	"github.com/wheelsup/flightschool-search/internal/gateway"
)

// ratingBands is the fixed set of rating facet bands. BuildAggregations sends
// these bounds to the engine and ProcessAggregations decodes buckets through
// the same table, so the UI always renders the same band labels no matter
// what numeric bounds the engine echoes back.
var ratingBands = []struct {
	key      string
	from, to float64
}{
	{key: "0-2", from: 0, to: 2},
	{key: "2-3", from: 2, to: 3},
	{key: "3-4", from: 3, to: 4},
	{key: "4-5", from: 4, to: 5},
}

// Facet sizes: states covers all US states plus territories; specialties and
// accreditation types are bounded vocabularies from the ETL schemas.
const (
	statesFacetSize      = 60
	specialtiesFacetSize = 50
	accTypesFacetSize    = 10
)

// BuildAggregations returns the facet aggregation definitions sent with
// every search request.
func BuildAggregations() map[string]any {
	ranges := make([]map[string]any, 0, len(ratingBands))
	for _, b := range ratingBands {
		ranges = append(ranges, map[string]any{
			"key":  b.key,
			"from": b.from,
			"to":   b.to,
		})
	}

	return map[string]any{
		"states": map[string]any{
			"terms": map[string]any{"field": "location.state", "size": statesFacetSize},
		},
		"accreditation_types": map[string]any{
			"terms": map[string]any{"field": "accreditation.type", "size": accTypesFacetSize},
		},
		"specialties": map[string]any{
			"terms": map[string]any{"field": "specialties", "size": specialtiesFacetSize},
		},
		"va_approved": map[string]any{
			"terms": map[string]any{"field": "accreditation.va_approved"},
		},
		"rating_ranges": map[string]any{
			"range": map[string]any{"field": "rating", "ranges": ranges},
		},
	}
}

// ProcessAggregations normalizes raw facet payloads into a typed summary.
// A nil input (the engine returned no aggregations) yields an empty summary,
// never an error. Term bucket order is preserved as the engine returned it.
func ProcessAggregations(raw *gateway.RawAggregations) domain.FacetSummary {
	summary := domain.FacetSummary{
		States:             []domain.FacetBucket{},
		AccreditationTypes: []domain.FacetBucket{},
		Specialties:        []domain.FacetBucket{},
		RatingRanges:       []domain.RatingBand{},
	}
	if raw == nil {
		return summary
	}

	summary.States = termBuckets(raw.States)
	summary.AccreditationTypes = termBuckets(raw.AccreditationTypes)
	summary.Specialties = termBuckets(raw.Specialties)
	summary.VAApproved = flattenVAApproved(raw.VAApproved)
	summary.RatingRanges = ratingRanges(raw.RatingRanges)

	return summary
}

// termBuckets converts a raw terms aggregation into typed facet buckets.
func termBuckets(agg *gateway.TermsAggregation) []domain.FacetBucket {
	buckets := []domain.FacetBucket{}
	if agg == nil {
		return buckets
	}
	for _, b := range agg.Buckets {
		buckets = append(buckets, domain.FacetBucket{
			Key:   bucketKey(b),
			Count: b.DocCount,
		})
	}
	return buckets
}

// flattenVAApproved collapses the boolean term buckets into approved /
// not-approved counts. A missing bucket leaves its count at 0.
func flattenVAApproved(agg *gateway.TermsAggregation) domain.VAApprovedFacet {
	var facet domain.VAApprovedFacet
	if agg == nil {
		return facet
	}
	for _, b := range agg.Buckets {
		if isTrueKey(b) {
			facet.Approved = b.DocCount
		} else {
			facet.NotApproved = b.DocCount
		}
	}
	return facet
}

// ratingRanges maps raw range buckets through the fixed band table. Bands
// with no matching bucket report a count of 0; buckets outside the table are
// dropped.
func ratingRanges(agg *gateway.RangeAggregation) []domain.RatingBand {
	counts := make(map[string]int)
	if agg != nil {
		for _, b := range agg.Buckets {
			counts[b.Key] = b.DocCount
		}
	}

	bands := make([]domain.RatingBand, 0, len(ratingBands))
	for _, b := range ratingBands {
		from, to := b.from, b.to
		bands = append(bands, domain.RatingBand{
			Key:   b.key,
			From:  &from,
			To:    &to,
			Count: counts[b.key],
		})
	}
	return bands
}

// bucketKey renders a raw bucket key as a string, preferring the engine's
// own string rendering for non-string keys.
func bucketKey(b gateway.TermsBucket) string {
	if s, ok := b.Key.(string); ok {
		return s
	}
	if b.KeyAsString != "" {
		return b.KeyAsString
	}
	return fmt.Sprint(b.Key)
}

// isTrueKey reports whether a boolean term bucket represents "true". The
// engine encodes boolean keys as 1/0 with a "true"/"false" string rendering.
func isTrueKey(b gateway.TermsBucket) bool {
	if b.KeyAsString != "" {
		return b.KeyAsString == "true"
	}
	switch k := b.Key.(type) {
	case bool:
		return k
	case float64:
		return k == 1
	case string:
		return k == "true" || k == "1"
	default:
		return false
	}
}
