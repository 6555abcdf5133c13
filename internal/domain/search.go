package domain

// Sort fields accepted by a search request.
const (
	SortRelevance = "relevance"
	SortRating    = "rating"
	SortName      = "name"
	SortDistance  = "distance"
	SortCost      = "cost"
)

// Sort orders accepted by a search request.
const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// ValidSortFields returns the list of valid sort fields.
func ValidSortFields() []string {
	return []string{SortRelevance, SortRating, SortName, SortDistance, SortCost}
}

// IsValidSortField checks whether the given field is a valid sort field.
func IsValidSortField(field string) bool {
	for _, f := range ValidSortFields() {
		if f == field {
			return true
		}
	}
	return false
}

// IsValidSortOrder checks whether the given order is a valid sort order.
func IsValidSortOrder(order string) bool {
	return order == OrderAsc || order == OrderDesc
}

// LocationFilter restricts results to a radius around a point. RadiusMiles
// is a pointer so that an omitted radius can fall back to the default.
type LocationFilter struct {
	Latitude    float64  `json:"latitude"`
	Longitude   float64  `json:"longitude"`
	RadiusMiles *float64 `json:"radius_miles,omitempty"`
}

// Filters holds the optional exact-match and range filters of a search
// request. Pointer fields distinguish "not supplied" from zero values;
// va_approved in particular filters on both true and false when set.
type Filters struct {
	State              *string  `json:"state,omitempty"`
	City               *string  `json:"city,omitempty"`
	VAApproved         *bool    `json:"va_approved,omitempty"`
	MinRating          *float64 `json:"min_rating,omitempty"`
	MaxRating          *float64 `json:"max_rating,omitempty"`
	AccreditationTypes []string `json:"accreditation_types,omitempty"`
	Specialties        []string `json:"specialties,omitempty"`
	MinFleetSize       *int     `json:"min_fleet_size,omitempty"`

	// MaxCost is accepted by the schema but not filterable: pricing is
	// indexed separately from the school documents.
	MaxCost *float64 `json:"max_cost,omitempty"`
}

// SortRequest is a logical sort request (field + order).
type SortRequest struct {
	Field string `json:"field"`
	Order string `json:"order"`
}

// PaginationRequest holds the requested page and page size.
type PaginationRequest struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// SearchParameters holds all parameters for a school search request.
// Values are treated as immutable once constructed.
type SearchParameters struct {
	Query      string             `json:"query,omitempty"`
	Location   *LocationFilter    `json:"location,omitempty"`
	Filters    Filters            `json:"filters"`
	Sort       *SortRequest       `json:"sort,omitempty"`
	Pagination *PaginationRequest `json:"pagination,omitempty"`
}

// FacetBucket is a single term facet entry (key + document count).
type FacetBucket struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// RatingBand is a single fixed rating facet band. From/To are pointers so
// open-ended bands serialize without bounds.
type RatingBand struct {
	Key   string   `json:"key"`
	From  *float64 `json:"from,omitempty"`
	To    *float64 `json:"to,omitempty"`
	Count int      `json:"count"`
}

// VAApprovedFacet is the flattened VA-approval breakdown.
type VAApprovedFacet struct {
	Approved    int `json:"approved"`
	NotApproved int `json:"not_approved"`
}

// FacetSummary holds the normalized facet counts for the filter UI.
type FacetSummary struct {
	States             []FacetBucket   `json:"states"`
	AccreditationTypes []FacetBucket   `json:"accreditation_types"`
	Specialties        []FacetBucket   `json:"specialties"`
	VAApproved         VAApprovedFacet `json:"va_approved"`
	RatingRanges       []RatingBand    `json:"rating_ranges"`
}

// SearchResult holds the paginated search response. Page and Limit echo the
// original request so the caller always sees what it asked for.
type SearchResult struct {
	Schools      []ScoredSchool `json:"schools"`
	Total        int            `json:"total"`
	Page         int            `json:"page"`
	Limit        int            `json:"limit"`
	TookMs       int64          `json:"took_ms"`
	Aggregations *FacetSummary  `json:"aggregations,omitempty"`
}
