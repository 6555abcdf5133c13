package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	apperrors "github.com/wheelsup/flightschool-search/pkg/errors"

	"github.com/wheelsup/flightschool-search/internal/domain"
	"github.com/wheelsup/flightschool-search/internal/gateway"
	"github.com/wheelsup/flightschool-search/internal/search"
)

// SearchService implements the business logic for school search and index
// maintenance. The gateway is injected; the service owns no connections.
type SearchService struct {
	gateway gateway.Gateway
	logger  *slog.Logger
}

// NewSearchService creates a new search service.
func NewSearchService(gw gateway.Gateway, logger *slog.Logger) *SearchService {
	return &SearchService{
		gateway: gw,
		logger:  logger,
	}
}

// SearchSchools runs the full search pipeline: sanitize the free-text query,
// validate the parameters, derive the engine request, execute it, and
// normalize the raw response. Invalid parameters return a
// *search.ValidationError with the complete violation list; the query
// builders are never invoked on invalid input. Gateway failures are logged
// with their classified cause and translated to a generic safe message.
func (s *SearchService) SearchSchools(ctx context.Context, params *domain.SearchParameters) (*domain.SearchResult, error) {
	p := *params
	p.Query = search.Sanitize(p.Query)

	if violations := search.Validate(&p); len(violations) > 0 {
		return nil, &search.ValidationError{Violations: violations}
	}

	page := search.CalculatePage(p.Pagination)
	req := &gateway.SearchRequest{
		Query:        search.BuildQuery(&p),
		Sort:         search.BuildSort(p.Sort, p.Location),
		From:         page.From,
		Size:         page.Size,
		Aggregations: search.BuildAggregations(),
	}

	raw, err := s.gateway.Execute(ctx, req)
	if err != nil {
		var gwErr *gateway.GatewayError
		if errors.As(err, &gwErr) {
			s.logger.ErrorContext(ctx, "search gateway failure",
				slog.String("kind", string(gwErr.Kind)),
				slog.String("error", gwErr.Error()),
			)
			return nil, apperrors.ServiceUnavailable(gwErr.SafeMessage())
		}
		return nil, fmt.Errorf("search schools: %w", err)
	}

	result := search.ProcessResult(raw, &p)

	s.logger.DebugContext(ctx, "search executed",
		slog.String("query", p.Query),
		slog.Int("total", result.Total),
		slog.Int64("took_ms", result.TookMs),
	)

	return result, nil
}

// IndexSchoolInput holds the parameters for indexing a school. It mirrors
// the document the ETL data publisher emits.
type IndexSchoolInput struct {
	ID            string               `json:"id"`
	Name          string               `json:"name"`
	Description   string               `json:"description"`
	Specialties   []string             `json:"specialties"`
	Contact       domain.Contact       `json:"contact"`
	Location      domain.Location      `json:"location"`
	Accreditation domain.Accreditation `json:"accreditation"`
	Operations    domain.Operations    `json:"operations"`
	Rating        float64              `json:"rating"`
	ReviewCount   int                  `json:"review_count"`
	IsActive      *bool                `json:"is_active"`
	SourceType    string               `json:"source_type"`
	SourceURL     string               `json:"source_url"`
	Confidence    float64              `json:"confidence"`
	SnapshotID    string               `json:"snapshot_id"`
	ExtractedAt   time.Time            `json:"extracted_at"`
}

// school builds the index document. IsActive defaults to true when the
// publisher omits it, matching the ETL schema default.
func (in *IndexSchoolInput) school(now time.Time) *domain.School {
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}

	specialties := in.Specialties
	if specialties == nil {
		specialties = []string{}
	}

	return &domain.School{
		ID:            in.ID,
		Name:          in.Name,
		Description:   in.Description,
		Specialties:   specialties,
		Contact:       in.Contact,
		Location:      in.Location,
		Accreditation: in.Accreditation,
		Operations:    in.Operations,
		Rating:        in.Rating,
		ReviewCount:   in.ReviewCount,
		IsActive:      active,
		SourceType:    in.SourceType,
		SourceURL:     in.SourceURL,
		Confidence:    in.Confidence,
		SnapshotID:    in.SnapshotID,
		ExtractedAt:   in.ExtractedAt,
		IndexedAt:     now,
	}
}

// IndexSchool indexes a single school document.
func (s *SearchService) IndexSchool(ctx context.Context, input *IndexSchoolInput) error {
	if input.ID == "" {
		return fmt.Errorf("index school: id is required")
	}
	if input.Name == "" {
		return fmt.Errorf("index school: name is required")
	}

	school := input.school(time.Now().UTC())

	if err := s.gateway.Index(ctx, school); err != nil {
		return fmt.Errorf("index school: %w", err)
	}

	s.logger.InfoContext(ctx, "school indexed",
		slog.String("school_id", input.ID),
		slog.String("name", input.Name),
		slog.String("snapshot_id", input.SnapshotID),
	)

	return nil
}

// DeleteSchool removes a school from the index.
func (s *SearchService) DeleteSchool(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("delete school: id is required")
	}

	if err := s.gateway.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete school: %w", err)
	}

	s.logger.InfoContext(ctx, "school deleted from index",
		slog.String("school_id", id),
	)

	return nil
}

// BulkIndexSchools indexes multiple schools; inputs without an ID are
// skipped. The ETL publisher drives this with snapshot batches.
func (s *SearchService) BulkIndexSchools(ctx context.Context, inputs []IndexSchoolInput) error {
	schools := make([]domain.School, 0, len(inputs))
	now := time.Now().UTC()

	for i := range inputs {
		if inputs[i].ID == "" {
			continue
		}
		schools = append(schools, *inputs[i].school(now))
	}

	if err := s.gateway.BulkIndex(ctx, schools); err != nil {
		return fmt.Errorf("bulk index schools: %w", err)
	}

	s.logger.InfoContext(ctx, "bulk index completed",
		slog.Int("count", len(schools)),
	)

	return nil
}
