package event

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	pkgkafka "github.com/wheelsup/flightschool-search/pkg/kafka"

	"github.com/wheelsup/flightschool-search/internal/service"
)

// Kafka topics for school domain events consumed by the search service. The
// ETL data publisher emits one event per school per snapshot.
var (
	TopicSchoolCreated = pkgkafka.Topic("school", "created")
	TopicSchoolUpdated = pkgkafka.Topic("school", "updated")
	TopicSchoolDeleted = pkgkafka.Topic("school", "deleted")
)

// SchoolDeletedData is the payload of a school.deleted event.
type SchoolDeletedData struct {
	ID string `json:"id"`
}

// Consumer handles school change events and keeps the search index current.
type Consumer struct {
	searchService *service.SearchService
	logger        *slog.Logger
}

// NewConsumer creates a new event consumer for the search service.
func NewConsumer(searchService *service.SearchService, logger *slog.Logger) *Consumer {
	return &Consumer{
		searchService: searchService,
		logger:        logger,
	}
}

// Handle processes a Kafka event based on its type.
func (c *Consumer) Handle(ctx context.Context, event *pkgkafka.Event) error {
	switch event.EventType {
	case TopicSchoolCreated, TopicSchoolUpdated:
		return c.handleSchoolUpserted(ctx, event)
	case TopicSchoolDeleted:
		return c.handleSchoolDeleted(ctx, event)
	default:
		c.logger.WarnContext(ctx, "unknown event type received",
			slog.String("event_type", event.EventType),
			slog.String("event_id", event.EventID),
		)
		return nil
	}
}

// handleSchoolUpserted (re-)indexes a created or updated school. Created and
// updated events carry the full document, so both map to the same index call.
func (c *Consumer) handleSchoolUpserted(ctx context.Context, event *pkgkafka.Event) error {
	var input service.IndexSchoolInput
	if err := json.Unmarshal(event.Data, &input); err != nil {
		return fmt.Errorf("unmarshal %s data: %w", event.EventType, err)
	}

	if err := c.searchService.IndexSchool(ctx, &input); err != nil {
		return fmt.Errorf("index school from %s event: %w", event.EventType, err)
	}

	c.logger.InfoContext(ctx, "indexed school from event",
		slog.String("event_type", event.EventType),
		slog.String("school_id", input.ID),
		slog.String("snapshot_id", input.SnapshotID),
	)

	return nil
}

// handleSchoolDeleted removes a deleted school from the index.
func (c *Consumer) handleSchoolDeleted(ctx context.Context, event *pkgkafka.Event) error {
	var data SchoolDeletedData
	if err := json.Unmarshal(event.Data, &data); err != nil {
		return fmt.Errorf("unmarshal school.deleted data: %w", err)
	}

	if err := c.searchService.DeleteSchool(ctx, data.ID); err != nil {
		return fmt.Errorf("delete school from deleted event: %w", err)
	}

	c.logger.InfoContext(ctx, "deleted school from index",
		slog.String("school_id", data.ID),
	)

	return nil
}
