package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"carhive-backend/internal/repository"
)

type eventRepository struct {
	db *sql.DB
}

func NewEventRepository(db *sql.DB) repository.EventRepository {
	return &eventRepository{db: db}
}

// Append writes one row to the append-only event log. Rows are never
// updated or deleted.
func (r *eventRepository) Append(ctx context.Context, marketplaceID uuid.UUID, eventType string, payload []byte) error {
	query := `INSERT INTO marketplace_events (marketplace_id, event_type, payload, occurred_on)
	          VALUES ($1, $2, $3, NOW())`
	_, err := r.db.ExecContext(ctx, query, marketplaceID, eventType, payload)
	return err
}
