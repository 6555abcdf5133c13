// Package gateway defines the contract between the search layer and the
// search engine: the request the layer constructs, the raw response shape it
// expects back, and the error taxonomy for engine failures. The engine itself
// (connection pooling, auth, retries) lives behind the Gateway interface.
package gateway

import (
	"context"

	"github.com/wheelsup/flightschool-search/internal/domain"
)

// BoolQuery is a boolean query: relevance-scored must clauses combined with
// unscored AND filters. Clause order within Filter is preserved on the wire.
type BoolQuery struct {
	Must   []map[string]any `json:"must"`
	Filter []map[string]any `json:"filter,omitempty"`
}

// SortSpec is an ordered list of engine sort keys.
type SortSpec []map[string]any

// SearchRequest is the fully constructed engine request: query, sort,
// pagination window, and facet aggregation definitions.
type SearchRequest struct {
	Query        BoolQuery
	Sort         SortSpec
	From         int
	Size         int
	Aggregations map[string]any
}

// RawHit is a single engine hit. Score is a pointer because the engine omits
// _score when an explicit sort replaces relevance scoring.
type RawHit struct {
	ID     string        `json:"_id"`
	Score  *float64      `json:"_score"`
	Source domain.School `json:"_source"`
}

// RawTotal is the engine's reported total hit count.
type RawTotal struct {
	Value int `json:"value"`
}

// RawHits is the hits section of an engine response.
type RawHits struct {
	Total RawTotal `json:"total"`
	Hits  []RawHit `json:"hits"`
}

// RawResponse is a well-formed engine response. A Gateway returns either this
// or a *GatewayError, never a partially decoded payload.
type RawResponse struct {
	Took         int              `json:"took"`
	Hits         RawHits          `json:"hits"`
	Aggregations *RawAggregations `json:"aggregations,omitempty"`
}

// TermsBucket is a raw term aggregation bucket. Key may decode as a string,
// number, or bool depending on the field type; KeyAsString carries the
// engine's string rendering for non-string keys (notably booleans).
type TermsBucket struct {
	Key         any    `json:"key"`
	KeyAsString string `json:"key_as_string,omitempty"`
	DocCount    int    `json:"doc_count"`
}

// TermsAggregation is a raw terms aggregation payload.
type TermsAggregation struct {
	Buckets []TermsBucket `json:"buckets"`
}

// RangeBucket is a raw range aggregation bucket.
type RangeBucket struct {
	Key      string   `json:"key"`
	From     *float64 `json:"from,omitempty"`
	To       *float64 `json:"to,omitempty"`
	DocCount int      `json:"doc_count"`
}

// RangeAggregation is a raw range aggregation payload.
type RangeAggregation struct {
	Buckets []RangeBucket `json:"buckets"`
}

// RawAggregations holds the raw facet payloads, one typed record per
// aggregation kind. Every field is optional: the engine omits aggregations
// that were not requested.
type RawAggregations struct {
	States             *TermsAggregation `json:"states"`
	AccreditationTypes *TermsAggregation `json:"accreditation_types"`
	Specialties        *TermsAggregation `json:"specialties"`
	VAApproved         *TermsAggregation `json:"va_approved"`
	RatingRanges       *RangeAggregation `json:"rating_ranges"`
}

// Gateway executes search requests and maintains the school index. It is an
// injected dependency owned by the composition root; implementations own
// authentication, connection pooling, and transport policy.
type Gateway interface {
	// Execute runs a constructed search request and returns the raw
	// response, or a *GatewayError classified by cause.
	Execute(ctx context.Context, req *SearchRequest) (*RawResponse, error)

	// Index adds or updates a single school document.
	Index(ctx context.Context, school *domain.School) error

	// BulkIndex adds or updates multiple school documents.
	BulkIndex(ctx context.Context, schools []domain.School) error

	// Delete removes a school document by ID.
	Delete(ctx context.Context, id string) error

	// Ping checks engine reachability.
	Ping(ctx context.Context) error
}
