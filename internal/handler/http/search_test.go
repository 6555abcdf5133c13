package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wheelsup/flightschool-search/pkg/health"

	"github.com/wheelsup/flightschool-search/internal/domain"
	"github.com/wheelsup/flightschool-search/internal/gateway"
	"github.com/wheelsup/flightschool-search/internal/service"
)

// stubGateway returns canned responses so handler tests exercise the full
// service pipeline without a cluster.
type stubGateway struct {
	lastSearch *gateway.SearchRequest
	response   *gateway.RawResponse
	searchErr  error
	indexed    []*domain.School
	deleted    []string
	bulkCount  int
}

func (s *stubGateway) Execute(ctx context.Context, req *gateway.SearchRequest) (*gateway.RawResponse, error) {
	s.lastSearch = req
	if s.searchErr != nil {
		return nil, s.searchErr
	}
	if s.response != nil {
		return s.response, nil
	}
	return &gateway.RawResponse{}, nil
}

func (s *stubGateway) Index(ctx context.Context, school *domain.School) error {
	s.indexed = append(s.indexed, school)
	return nil
}

func (s *stubGateway) BulkIndex(ctx context.Context, schools []domain.School) error {
	s.bulkCount += len(schools)
	return nil
}

func (s *stubGateway) Delete(ctx context.Context, id string) error {
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *stubGateway) Ping(ctx context.Context) error { return nil }

func newTestRouter(gw *stubGateway) http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := service.NewSearchService(gw, logger)
	return NewRouter(svc, health.NewHandler(), RouterConfig{
		Environment:        "development",
		CORSAllowedOrigins: []string{"*"},
	}, logger)
}

type errorBody struct {
	Error struct {
		Code       string   `json:"code"`
		Message    string   `json:"message"`
		Violations []string `json:"violations"`
	} `json:"error"`
}

func TestSearch_OK(t *testing.T) {
	score := 1.2
	gw := &stubGateway{
		response: &gateway.RawResponse{
			Took: 5,
			Hits: gateway.RawHits{
				Total: gateway.RawTotal{Value: 1},
				Hits: []gateway.RawHit{
					{ID: "s1", Score: &score, Source: domain.School{ID: "s1", Name: "Alpha Aviation", IsActive: true}},
				},
			},
		},
	}
	router := newTestRouter(gw)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/schools/search?q=alpha&state=ca&page=2&limit=10", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var body struct {
		Data domain.SearchResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Data.Total)
	assert.Equal(t, 2, body.Data.Page)
	assert.Equal(t, 10, body.Data.Limit)
	require.Len(t, body.Data.Schools, 1)
	assert.Equal(t, "Alpha Aviation", body.Data.Schools[0].Name)

	// state is uppercased before filtering
	require.NotNil(t, gw.lastSearch)
	assert.Equal(t, map[string]any{"location.state": "CA"}, gw.lastSearch.Query.Filter[0]["term"])
}

func TestSearch_GeoParameters(t *testing.T) {
	gw := &stubGateway{}
	router := newTestRouter(gw)

	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/schools/search?lat=34.0522&lon=-118.2437&radius=50&sort=distance&order=asc", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.NotNil(t, gw.lastSearch)

	geo := gw.lastSearch.Query.Filter[0]["geo_distance"].(map[string]any)
	assert.Equal(t, "50mi", geo["distance"])
	assert.Contains(t, gw.lastSearch.Sort[0], "_geo_distance")
}

func TestSearch_MalformedParametersAccumulate(t *testing.T) {
	router := newTestRouter(&stubGateway{})

	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/schools/search?lat=abc&min_rating=x&page=y&va_approved=maybe", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)

	var body errorBody
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "VALIDATION_ERROR", body.Error.Code)
	assert.Len(t, body.Error.Violations, 4)
}

func TestSearch_LatWithoutLon(t *testing.T) {
	router := newTestRouter(&stubGateway{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/schools/search?lat=34.05", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)

	var body errorBody
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	require.Len(t, body.Error.Violations, 1)
	assert.Contains(t, body.Error.Violations[0], "lat and lon")
}

func TestSearch_SemanticViolationsReported(t *testing.T) {
	gw := &stubGateway{}
	router := newTestRouter(gw)

	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/schools/search?lat=95&lon=-200&limit=500", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)

	var body errorBody
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "VALIDATION_ERROR", body.Error.Code)
	assert.Len(t, body.Error.Violations, 3)
	assert.Nil(t, gw.lastSearch)
}

func TestSearch_GatewayFailureIsSafe(t *testing.T) {
	gw := &stubGateway{
		searchErr: &gateway.GatewayError{
			Kind:    gateway.KindConnectionRefused,
			Message: "dial tcp 127.0.0.1:9200: connect: connection refused",
		},
	}
	router := newTestRouter(gw)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/schools/search?q=alpha", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.NotContains(t, rr.Body.String(), "9200")

	var body errorBody
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "SERVICE_UNAVAILABLE", body.Error.Code)
}

func TestSearch_CommaSeparatedLists(t *testing.T) {
	gw := &stubGateway{}
	router := newTestRouter(gw)

	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/schools/search?specialties=helicopter,%20seaplane&accreditation=Part%20141", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.NotNil(t, gw.lastSearch)

	// accreditation types filter precedes specialties
	assert.Equal(t, map[string]any{"accreditation.type": []string{"Part 141"}}, gw.lastSearch.Query.Filter[0]["terms"])
	assert.Equal(t, map[string]any{"specialties": []string{"helicopter", "seaplane"}}, gw.lastSearch.Query.Filter[1]["terms"])
}

func TestIndexSchool_OK(t *testing.T) {
	gw := &stubGateway{}
	router := newTestRouter(gw)

	payload := `{
		"id": "school-1",
		"name": "Alpha Aviation",
		"description": "Part 141 flight school",
		"rating": 4.5,
		"review_count": 12,
		"extracted_at": "2026-08-01T12:00:00Z"
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/schools/search/index", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.Len(t, gw.indexed, 1)
	assert.Equal(t, "Alpha Aviation", gw.indexed[0].Name)

	// Provenance timestamps flow through to the document.
	want := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	assert.True(t, gw.indexed[0].ExtractedAt.Equal(want), gw.indexed[0].ExtractedAt)
}

func TestIndexSchool_ValidationFailure(t *testing.T) {
	router := newTestRouter(&stubGateway{})

	payload := `{"id": "", "name": "", "rating": 9}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/schools/search/index", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "VALIDATION_ERROR")
}

func TestIndexSchool_RejectsWrongContentType(t *testing.T) {
	router := newTestRouter(&stubGateway{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/schools/search/index", strings.NewReader("id=1"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, rr.Code)
}

func TestBulkIndex_OK(t *testing.T) {
	gw := &stubGateway{}
	router := newTestRouter(gw)

	payload := `{"schools": [
		{"id": "s1", "name": "Alpha"},
		{"id": "s2", "name": "Bravo"}
	]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/schools/search/bulk", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 2, gw.bulkCount)
	assert.Contains(t, rr.Body.String(), `"indexed":2`)
}

func TestBulkIndex_EmptyBatchRejected(t *testing.T) {
	router := newTestRouter(&stubGateway{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/schools/search/bulk", strings.NewReader(`{"schools": []}`))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestDeleteSchool_OK(t *testing.T) {
	gw := &stubGateway{}
	router := newTestRouter(gw)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/schools/search/school-1", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, []string{"school-1"}, gw.deleted)
}

func TestHealthEndpoints(t *testing.T) {
	router := newTestRouter(&stubGateway{})

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)

	req = httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
}
