package events

import (
	"context"

	"github.com/google/uuid"

	"carhive-backend/internal/logger"
	"carhive-backend/internal/repository"
)

// StoreSink appends every event to the durable event log. Failures are
// logged and dropped; the event log is an audit mirror, not a write-ahead
// log for the aggregate.
type StoreSink struct {
	marketplaceID uuid.UUID
	repo          repository.EventRepository
}

func NewStoreSink(marketplaceID uuid.UUID, repo repository.EventRepository) *StoreSink {
	return &StoreSink{marketplaceID: marketplaceID, repo: repo}
}

func (s *StoreSink) Emit(ctx context.Context, e Event) {
	payload, err := e.PayloadToJSON()
	if err != nil {
		logger.ErrorContext(ctx, "Failed to encode event payload", "event_type", e.EventType(), "error", err)
		return
	}
	if err := s.repo.Append(ctx, s.marketplaceID, e.EventType(), payload); err != nil {
		logger.ErrorContext(ctx, "Failed to append event to log", "event_type", e.EventType(), "error", err)
	}
}
