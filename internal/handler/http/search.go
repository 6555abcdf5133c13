package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/wheelsup/flightschool-search/pkg/httputil"
	"github.com/wheelsup/flightschool-search/pkg/validator"

	"github.com/wheelsup/flightschool-search/internal/domain"
	"github.com/wheelsup/flightschool-search/internal/search"
	"github.com/wheelsup/flightschool-search/internal/service"
)

// SearchHandler handles HTTP requests for the school search endpoints.
type SearchHandler struct {
	service *service.SearchService
	logger  *slog.Logger
}

// NewSearchHandler creates a new search HTTP handler.
func NewSearchHandler(svc *service.SearchService, logger *slog.Logger) *SearchHandler {
	return &SearchHandler{
		service: svc,
		logger:  logger,
	}
}

// --- Request DTOs ---

// IndexSchoolRequest is the JSON request body for indexing a school.
type IndexSchoolRequest struct {
	ID            string               `json:"id" validate:"required"`
	Name          string               `json:"name" validate:"required,min=1"`
	Description   string               `json:"description"`
	Specialties   []string             `json:"specialties"`
	Contact       domain.Contact       `json:"contact"`
	Location      domain.Location      `json:"location"`
	Accreditation domain.Accreditation `json:"accreditation"`
	Operations    domain.Operations    `json:"operations"`
	Rating        float64              `json:"rating" validate:"gte=0,lte=5"`
	ReviewCount   int                  `json:"review_count" validate:"gte=0"`
	IsActive      *bool                `json:"is_active"`
	SourceType    string               `json:"source_type"`
	SourceURL     string               `json:"source_url" validate:"omitempty,url"`
	Confidence    float64              `json:"confidence"`
	SnapshotID    string               `json:"snapshot_id"`
	ExtractedAt   time.Time            `json:"extracted_at"`
}

// BulkIndexRequest is the JSON request body for bulk indexing schools.
type BulkIndexRequest struct {
	Schools []IndexSchoolRequest `json:"schools" validate:"required,min=1,max=500,dive"`
}

func (req *IndexSchoolRequest) toInput() service.IndexSchoolInput {
	return service.IndexSchoolInput{
		ID:            req.ID,
		Name:          req.Name,
		Description:   req.Description,
		Specialties:   req.Specialties,
		Contact:       req.Contact,
		Location:      req.Location,
		Accreditation: req.Accreditation,
		Operations:    req.Operations,
		Rating:        req.Rating,
		ReviewCount:   req.ReviewCount,
		IsActive:      req.IsActive,
		SourceType:    req.SourceType,
		SourceURL:     req.SourceURL,
		Confidence:    req.Confidence,
		SnapshotID:    req.SnapshotID,
		ExtractedAt:   req.ExtractedAt,
	}
}

// --- Handlers ---

// Search handles GET /api/v1/schools/search.
//
// Malformed query parameters do not short-circuit: every parse failure is
// collected so one response names everything wrong with the request, in the
// same shape as semantic validation failures.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	params, violations := parseSearchParameters(r.URL.Query())
	if len(violations) > 0 {
		httputil.WriteViolations(w, violations)
		return
	}

	result, err := h.service.SearchSchools(r.Context(), params)
	if err != nil {
		var valErr *search.ValidationError
		if errors.As(err, &valErr) {
			httputil.WriteViolations(w, valErr.Violations)
			return
		}
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: result})
}

// parseSearchParameters maps URL query values onto search parameters,
// accumulating a violation per malformed value instead of failing fast.
func parseSearchParameters(q url.Values) (*domain.SearchParameters, []string) {
	var violations []string
	params := &domain.SearchParameters{
		Query: strings.TrimSpace(q.Get("q")),
	}

	parseFloat := func(name string) *float64 {
		v := q.Get(name)
		if v == "" {
			return nil
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			violations = append(violations, name+" must be a valid number")
			return nil
		}
		return &f
	}
	parseInt := func(name string) *int {
		v := q.Get(name)
		if v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			violations = append(violations, name+" must be a valid integer")
			return nil
		}
		return &n
	}
	parseBool := func(name string) *bool {
		v := q.Get(name)
		if v == "" {
			return nil
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			violations = append(violations, name+" must be true or false")
			return nil
		}
		return &b
	}
	parseList := func(name string) []string {
		var out []string
		for _, raw := range q[name] {
			for _, part := range strings.Split(raw, ",") {
				if part = strings.TrimSpace(part); part != "" {
					out = append(out, part)
				}
			}
		}
		return out
	}

	lat := parseFloat("lat")
	lon := parseFloat("lon")
	radius := parseFloat("radius")
	switch {
	case lat != nil && lon != nil:
		params.Location = &domain.LocationFilter{
			Latitude:    *lat,
			Longitude:   *lon,
			RadiusMiles: radius,
		}
	case lat != nil || lon != nil:
		violations = append(violations, "lat and lon must be supplied together")
	case radius != nil:
		violations = append(violations, "radius requires lat and lon")
	}

	if v := q.Get("state"); v != "" {
		state := strings.ToUpper(strings.TrimSpace(v))
		params.Filters.State = &state
	}
	if v := strings.TrimSpace(q.Get("city")); v != "" {
		params.Filters.City = &v
	}
	params.Filters.VAApproved = parseBool("va_approved")
	params.Filters.MinRating = parseFloat("min_rating")
	params.Filters.MaxRating = parseFloat("max_rating")
	params.Filters.AccreditationTypes = parseList("accreditation")
	params.Filters.Specialties = parseList("specialties")
	params.Filters.MinFleetSize = parseInt("min_fleet_size")
	params.Filters.MaxCost = parseFloat("max_cost")

	sortField := q.Get("sort")
	sortOrder := q.Get("order")
	if sortField != "" || sortOrder != "" {
		params.Sort = &domain.SortRequest{Field: sortField, Order: sortOrder}
	}

	page := parseInt("page")
	limit := parseInt("limit")
	if page != nil || limit != nil {
		// Fill the omitted half with its default so a request that only
		// names one of the pair validates on what it actually said.
		params.Pagination = &domain.PaginationRequest{
			Page:  search.DefaultPage,
			Limit: search.DefaultLimit,
		}
		if page != nil {
			params.Pagination.Page = *page
		}
		if limit != nil {
			params.Pagination.Limit = *limit
		}
	}

	return params, violations
}

// IndexSchool handles POST /api/v1/schools/search/index.
func (h *SearchHandler) IndexSchool(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req IndexSchoolRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	input := req.toInput()
	if err := h.service.IndexSchool(r.Context(), &input); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"id": req.ID, "status": "indexed"}})
}

// DeleteSchool handles DELETE /api/v1/schools/search/{id}.
func (h *SearchHandler) DeleteSchool(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "id is required"},
		})
		return
	}

	if err := h.service.DeleteSchool(r.Context(), id); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"id": id, "status": "deleted"}})
}

// BulkIndex handles POST /api/v1/schools/search/bulk.
func (h *SearchHandler) BulkIndex(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 10<<20) // 10MB limit for bulk endpoint

	var req BulkIndexRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	inputs := make([]service.IndexSchoolInput, 0, len(req.Schools))
	for i := range req.Schools {
		inputs = append(inputs, req.Schools[i].toInput())
	}

	if err := h.service.BulkIndexSchools(r.Context(), inputs); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]any{"indexed": len(inputs), "status": "ok"}})
}
