package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"carhive-backend/internal/domain"
	"carhive-backend/internal/repository"
)

type listingRepository struct {
	db *sql.DB
}

func NewListingRepository(db *sql.DB) repository.ListingRepository {
	return &listingRepository{db: db}
}

func (r *listingRepository) Upsert(ctx context.Context, marketplaceID uuid.UUID, entry *domain.ListingEntry) error {
	query := `INSERT INTO listings (marketplace_id, listing_index, title, description, price_per_day_cents, category, listed, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
	          ON CONFLICT (marketplace_id, listing_index)
	          DO UPDATE SET title = $3, description = $4, price_per_day_cents = $5, category = $6, listed = $7, updated_on = NOW()`
	_, err := r.db.ExecContext(ctx, query, marketplaceID, entry.Index, entry.Title, entry.Description, entry.PricePerDayCents, entry.Category, entry.Listed)
	return err
}

func (r *listingRepository) Delete(ctx context.Context, marketplaceID uuid.UUID, index uint64) error {
	query := `DELETE FROM listings WHERE marketplace_id = $1 AND listing_index = $2`
	_, err := r.db.ExecContext(ctx, query, marketplaceID, index)
	return err
}

func (r *listingRepository) GetByIndex(ctx context.Context, marketplaceID uuid.UUID, index uint64) (*domain.ListingEntry, error) {
	entry := &domain.ListingEntry{}
	query := `SELECT listing_index, title, COALESCE(description, ''), price_per_day_cents, category, listed
	          FROM listings WHERE marketplace_id = $1 AND listing_index = $2`
	err := r.db.QueryRowContext(ctx, query, marketplaceID, index).
		Scan(&entry.Index, &entry.Title, &entry.Description, &entry.PricePerDayCents, &entry.Category, &entry.Listed)
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func (r *listingRepository) List(ctx context.Context, marketplaceID uuid.UUID, page, pageSize int32) ([]domain.ListingEntry, int32, error) {
	var count int32
	countQuery := `SELECT count(*) FROM listings WHERE marketplace_id = $1`
	if err := r.db.QueryRowContext(ctx, countQuery, marketplaceID).Scan(&count); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	query := `SELECT listing_index, title, COALESCE(description, ''), price_per_day_cents, category, listed
	          FROM listings WHERE marketplace_id = $1 ORDER BY listing_index ASC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, marketplaceID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var entries []domain.ListingEntry
	for rows.Next() {
		var entry domain.ListingEntry
		if err := rows.Scan(&entry.Index, &entry.Title, &entry.Description, &entry.PricePerDayCents, &entry.Category, &entry.Listed); err != nil {
			return nil, 0, err
		}
		entries = append(entries, entry)
	}
	return entries, count, rows.Err()
}
