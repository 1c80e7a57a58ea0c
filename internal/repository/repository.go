package repository

import (
	"context"

	"github.com/google/uuid"

	"carhive-backend/internal/domain"
)

// These repositories are durable mirrors of the in-memory marketplace
// aggregate. The aggregate stays authoritative; mirror writes happen after
// a transition commits and their failures are logged, never rolled back
// into the aggregate.

type ListingRepository interface {
	Upsert(ctx context.Context, marketplaceID uuid.UUID, entry *domain.ListingEntry) error
	Delete(ctx context.Context, marketplaceID uuid.UUID, index uint64) error
	GetByIndex(ctx context.Context, marketplaceID uuid.UUID, index uint64) (*domain.ListingEntry, error)
	List(ctx context.Context, marketplaceID uuid.UUID, page, pageSize int32) ([]domain.ListingEntry, int32, error)
}

type RentalRepository interface {
	Create(ctx context.Context, record *domain.RentalRecord) error
	Close(ctx context.Context, marketplaceID uuid.UUID, listingIndex uint64, status domain.RentalStatus) error
	UpdateExpiry(ctx context.Context, marketplaceID uuid.UUID, listingIndex uint64, expiresAtMillis int64) error
	ListExpiredActive(ctx context.Context, marketplaceID uuid.UUID, nowMillis int64) ([]domain.RentalRecord, error)
	ListByRenter(ctx context.Context, marketplaceID, renterID uuid.UUID, page, pageSize int32) ([]domain.RentalRecord, int32, error)
}

type LedgerRepository interface {
	CreateTransaction(ctx context.Context, tx *domain.LedgerTransaction) error
	ListTransactions(ctx context.Context, marketplaceID uuid.UUID, page, pageSize int32) ([]domain.LedgerTransaction, int32, error)
}

// EventRepository is the append-only event log backing the postgres event
// sink. Payloads are opaque JSON.
type EventRepository interface {
	Append(ctx context.Context, marketplaceID uuid.UUID, eventType string, payload []byte) error
}
