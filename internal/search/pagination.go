package search

import (
	"github.com/wheelsup/flightschool-search/internal/domain"
)

// Pagination defaults.
const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)

// Page is the resolved pagination window: the engine offset/size plus the
// page/limit actually applied.
type Page struct {
	From  int
	Size  int
	Page  int
	Limit int
}

// CalculatePage resolves the pagination request into an engine window.
// Out-of-range values are clamped, never rejected.
func CalculatePage(p *domain.PaginationRequest) Page {
	page := DefaultPage
	limit := DefaultLimit

	if p != nil {
		if p.Page > 0 {
			page = p.Page
		}
		if p.Limit > 0 {
			limit = p.Limit
		}
		if limit > MaxLimit {
			limit = MaxLimit
		}
	}

	return Page{
		From:  (page - 1) * limit,
		Size:  limit,
		Page:  page,
		Limit: limit,
	}
}
