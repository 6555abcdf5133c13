// Package elasticsearch implements the search gateway on top of an
// Elasticsearch cluster.
package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"

	"github.com/wheelsup/flightschool-search/internal/domain"
	"github.com/wheelsup/flightschool-search/internal/gateway"
)

// Gateway is the Elasticsearch-backed implementation of gateway.Gateway.
type Gateway struct {
	client    *elasticsearch.Client
	indexName string
	logger    *slog.Logger
}

// esErrorResponse is used to decode Elasticsearch error responses.
type esErrorResponse struct {
	Error struct {
		Type   string `json:"type"`
		Reason string `json:"reason"`
	} `json:"error"`
	Status int `json:"status"`
}

// esBulkResponse is used to decode Elasticsearch bulk responses.
type esBulkResponse struct {
	Errors bool `json:"errors"`
	Items  []struct {
		Index struct {
			ID     string `json:"_id"`
			Status int    `json:"status"`
			Error  struct {
				Type   string `json:"type"`
				Reason string `json:"reason"`
			} `json:"error"`
		} `json:"index"`
	} `json:"items"`
}

// New creates a gateway connected to the given URL and ensures the schools
// index exists, creating it with the standard mapping if necessary. If
// indexName is empty, DefaultIndexName ("wheelsup-schools") is used.
func New(esURL string, indexName string, logger *slog.Logger) (*Gateway, error) {
	if indexName == "" {
		indexName = DefaultIndexName
	}

	cfg := elasticsearch.Config{
		Addresses: []string{esURL},
	}

	client, err := elasticsearch.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("elasticsearch: failed to create client: %w", err)
	}

	g := &Gateway{
		client:    client,
		indexName: indexName,
		logger:    logger,
	}

	if err := g.ensureIndex(); err != nil {
		return nil, fmt.Errorf("elasticsearch: failed to ensure index: %w", err)
	}

	return g, nil
}

// Ping checks whether the Elasticsearch cluster is reachable.
func (g *Gateway) Ping(ctx context.Context) error {
	res, err := g.client.Ping(g.client.Ping.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("elasticsearch ping: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.IsError() {
		return fmt.Errorf("elasticsearch ping: unexpected status %s", res.Status())
	}
	return nil
}

// ensureIndex checks whether the schools index exists and creates it if not.
func (g *Gateway) ensureIndex() error {
	res, err := g.client.Indices.Exists([]string{g.indexName})
	if err != nil {
		return fmt.Errorf("check index exists: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	// Status 200 means the index exists.
	if res.StatusCode == 200 {
		g.logger.Info("elasticsearch index already exists", "index", g.indexName)
		return nil
	}

	mapping := buildIndexMapping()
	res, err = g.client.Indices.Create(
		g.indexName,
		g.client.Indices.Create.WithBody(strings.NewReader(mapping)),
	)
	if err != nil {
		return fmt.Errorf("create index: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.IsError() {
		var errResp esErrorResponse
		if decErr := json.NewDecoder(res.Body).Decode(&errResp); decErr == nil {
			return fmt.Errorf("create index: %s — %s", errResp.Error.Type, errResp.Error.Reason)
		}
		return fmt.Errorf("create index: unexpected status %s", res.Status())
	}

	g.logger.Info("elasticsearch index created", "index", g.indexName)
	return nil
}

// Execute runs a constructed search request against the schools index.
// Failures are returned as *gateway.GatewayError classified by cause.
func (g *Gateway) Execute(ctx context.Context, req *gateway.SearchRequest) (*gateway.RawResponse, error) {
	body := map[string]any{
		"query": map[string]any{
			"bool": req.Query,
		},
		"from":             req.From,
		"size":             req.Size,
		"track_total_hits": true,
	}
	if len(req.Sort) > 0 {
		body["sort"] = req.Sort
	}
	if len(req.Aggregations) > 0 {
		body["aggs"] = req.Aggregations
	}

	data, err := json.Marshal(body)
	if err != nil {
		return nil, &gateway.GatewayError{
			Kind:    gateway.KindMalformedQuery,
			Message: "marshal search request",
			Cause:   err,
		}
	}

	res, err := g.client.Search(
		g.client.Search.WithIndex(g.indexName),
		g.client.Search.WithBody(bytes.NewReader(data)),
		g.client.Search.WithContext(ctx),
	)
	if err != nil {
		return nil, gateway.ClassifyTransport(err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.IsError() {
		var errResp esErrorResponse
		if decErr := json.NewDecoder(res.Body).Decode(&errResp); decErr == nil {
			return nil, gateway.ClassifyEngine(errResp.Error.Type, errResp.Error.Reason, res.StatusCode)
		}
		return nil, gateway.ClassifyEngine("http_error", res.Status(), res.StatusCode)
	}

	var raw gateway.RawResponse
	if err := json.NewDecoder(res.Body).Decode(&raw); err != nil {
		return nil, &gateway.GatewayError{
			Kind:    gateway.KindUnknown,
			Message: "malformed search response",
			Cause:   err,
		}
	}

	return &raw, nil
}

// Index adds or updates a single school document.
func (g *Gateway) Index(ctx context.Context, school *domain.School) error {
	data, err := json.Marshal(school)
	if err != nil {
		return fmt.Errorf("elasticsearch index: marshal school: %w", err)
	}

	res, err := g.client.Index(
		g.indexName,
		bytes.NewReader(data),
		g.client.Index.WithDocumentID(school.ID),
		g.client.Index.WithRefresh("true"),
		g.client.Index.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("elasticsearch index: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.IsError() {
		var errResp esErrorResponse
		if decErr := json.NewDecoder(res.Body).Decode(&errResp); decErr == nil {
			return fmt.Errorf("elasticsearch index: %s — %s", errResp.Error.Type, errResp.Error.Reason)
		}
		return fmt.Errorf("elasticsearch index: unexpected status %s", res.Status())
	}

	g.logger.Debug("indexed school", "id", school.ID, "name", school.Name)
	return nil
}

// Delete removes a school document by ID. A 404 is not an error — the
// document may already be gone.
func (g *Gateway) Delete(ctx context.Context, id string) error {
	res, err := g.client.Delete(
		g.indexName,
		id,
		g.client.Delete.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("elasticsearch delete: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.IsError() && res.StatusCode != 404 {
		var errResp esErrorResponse
		if decErr := json.NewDecoder(res.Body).Decode(&errResp); decErr == nil {
			return fmt.Errorf("elasticsearch delete: %s — %s", errResp.Error.Type, errResp.Error.Reason)
		}
		return fmt.Errorf("elasticsearch delete: unexpected status %s", res.Status())
	}

	g.logger.Debug("deleted school", "id", id)
	return nil
}

// BulkIndex adds or updates multiple school documents using the bulk
// NDJSON API. The ETL publisher pushes snapshot batches through this path.
func (g *Gateway) BulkIndex(ctx context.Context, schools []domain.School) error {
	if len(schools) == 0 {
		return nil
	}

	var buf bytes.Buffer

	for i := range schools {
		action := map[string]any{
			"index": map[string]any{
				"_index": g.indexName,
				"_id":    schools[i].ID,
			},
		}
		if err := json.NewEncoder(&buf).Encode(action); err != nil {
			return fmt.Errorf("elasticsearch bulk index: encode action: %w", err)
		}

		if err := json.NewEncoder(&buf).Encode(schools[i]); err != nil {
			return fmt.Errorf("elasticsearch bulk index: encode document: %w", err)
		}
	}

	res, err := g.client.Bulk(
		bytes.NewReader(buf.Bytes()),
		g.client.Bulk.WithIndex(g.indexName),
		g.client.Bulk.WithRefresh("true"),
		g.client.Bulk.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("elasticsearch bulk index: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.IsError() {
		var errResp esErrorResponse
		if decErr := json.NewDecoder(res.Body).Decode(&errResp); decErr == nil {
			return fmt.Errorf("elasticsearch bulk index: %s — %s", errResp.Error.Type, errResp.Error.Reason)
		}
		return fmt.Errorf("elasticsearch bulk index: unexpected status %s", res.Status())
	}

	var bulkResp esBulkResponse
	if err := json.NewDecoder(res.Body).Decode(&bulkResp); err != nil {
		return fmt.Errorf("elasticsearch bulk index: decode response: %w", err)
	}

	if bulkResp.Errors {
		var errMsgs []string
		for _, item := range bulkResp.Items {
			if item.Index.Error.Type != "" {
				errMsgs = append(errMsgs, fmt.Sprintf("id=%s: %s — %s", item.Index.ID, item.Index.Error.Type, item.Index.Error.Reason))
			}
		}
		return fmt.Errorf("elasticsearch bulk index: partial errors: %s", strings.Join(errMsgs, "; "))
	}

	g.logger.Info("bulk indexed schools", "count", len(schools))
	return nil
}
