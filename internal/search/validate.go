// Package search turns an untrusted search request into a deterministic
// engine request and normalizes the engine's raw response back into typed
// results. Everything in this package is a pure function over immutable
// inputs; nothing here performs I/O.
package search

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/wheelsup/flightschool-search/internal/domain"
)

const (
	// MaxQueryLength is the maximum free-text query length after sanitization.
	MaxQueryLength = 200

	minRadiusMiles = 1.0
	maxRadiusMiles = 500.0
	minRating      = 0.0
	maxRating      = 5.0
	maxLimit       = 100
)

// ValidationError carries the complete set of violations found in a search
// request. It is never partial: Validate checks every rule in one pass.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return "invalid search parameters: " + strings.Join(e.Violations, "; ")
}

// Validate bounds-checks the given parameters and returns every violation
// found. It never short-circuits: a request with a bad page and a bad limit
// reports both. An empty result means the parameters are valid.
func Validate(p *domain.SearchParameters) []string {
	var violations []string

	if utf8.RuneCountInString(p.Query) > MaxQueryLength {
		violations = append(violations, fmt.Sprintf("query must be at most %d characters", MaxQueryLength))
	}

	if p.Location != nil {
		if p.Location.Latitude < -90 || p.Location.Latitude > 90 {
			violations = append(violations, "latitude must be between -90 and 90")
		}
		if p.Location.Longitude < -180 || p.Location.Longitude > 180 {
			violations = append(violations, "longitude must be between -180 and 180")
		}
		if r := p.Location.RadiusMiles; r != nil && (*r < minRadiusMiles || *r > maxRadiusMiles) {
			violations = append(violations, "radius_miles must be between 1 and 500")
		}
	}

	f := p.Filters
	if f.MinRating != nil && (*f.MinRating < minRating || *f.MinRating > maxRating) {
		violations = append(violations, "min_rating must be between 0 and 5")
	}
	if f.MaxRating != nil && (*f.MaxRating < minRating || *f.MaxRating > maxRating) {
		violations = append(violations, "max_rating must be between 0 and 5")
	}
	if f.MinRating != nil && f.MaxRating != nil && *f.MinRating > *f.MaxRating {
		violations = append(violations, "min_rating must not exceed max_rating")
	}

	if p.Sort != nil {
		if !domain.IsValidSortField(p.Sort.Field) {
			violations = append(violations, "sort field must be one of: "+strings.Join(domain.ValidSortFields(), ", "))
		}
		if !domain.IsValidSortOrder(p.Sort.Order) {
			violations = append(violations, "sort order must be one of: asc, desc")
		}
	}

	if p.Pagination != nil {
		if p.Pagination.Page < 1 {
			violations = append(violations, "page must be at least 1")
		}
		if p.Pagination.Limit < 1 || p.Pagination.Limit > maxLimit {
			violations = append(violations, "limit must be between 1 and 100")
		}
	}

	return violations
}

// Sanitize strips control characters (0x00-0x1F and 0x7F) and the characters
// <, >, /, and \ from the text, trims surrounding whitespace, and truncates
// the result to MaxQueryLength characters. Deterministic and locale-free.
func Sanitize(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	for _, r := range text {
		if r < 0x20 || r == 0x7f {
			continue
		}
		switch r {
		case '<', '>', '/', '\\':
			continue
		}
		b.WriteRune(r)
	}

	s := strings.TrimSpace(b.String())
	if utf8.RuneCountInString(s) > MaxQueryLength {
		s = string([]rune(s)[:MaxQueryLength])
	}
	return s
}
