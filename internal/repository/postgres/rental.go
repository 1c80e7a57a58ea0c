package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"carhive-backend/internal/domain"
	"carhive-backend/internal/repository"
)

type rentalRepository struct {
	db *sql.DB
}

func NewRentalRepository(db *sql.DB) repository.RentalRepository {
	return &rentalRepository{db: db}
}

func (r *rentalRepository) Create(ctx context.Context, rec *domain.RentalRecord) error {
	query := `INSERT INTO rentals (marketplace_id, rental_id, listing_index, renter_id, title, description, price_per_day_cents, category, periods, rented_at_millis, expires_at_millis, status, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13) RETURNING id`
	now := time.Now().Format("2006-01-02")
	return r.db.QueryRowContext(ctx, query,
		rec.MarketplaceID, rec.RentalID, rec.ListingIndex, rec.RenterID, rec.Title, rec.Description,
		rec.PricePerDayCents, rec.Category, rec.Periods, rec.RentedAtMillis, rec.ExpiresAtMillis,
		rec.Status, now).Scan(&rec.ID)
}

func (r *rentalRepository) Close(ctx context.Context, marketplaceID uuid.UUID, listingIndex uint64, status domain.RentalStatus) error {
	query := `UPDATE rentals SET status = $1, closed_on = $2
	          WHERE marketplace_id = $3 AND listing_index = $4 AND status = 'ACTIVE'`
	_, err := r.db.ExecContext(ctx, query, status, time.Now().Format("2006-01-02"), marketplaceID, listingIndex)
	return err
}

func (r *rentalRepository) UpdateExpiry(ctx context.Context, marketplaceID uuid.UUID, listingIndex uint64, expiresAtMillis int64) error {
	query := `UPDATE rentals SET expires_at_millis = $1
	          WHERE marketplace_id = $2 AND listing_index = $3 AND status = 'ACTIVE'`
	_, err := r.db.ExecContext(ctx, query, expiresAtMillis, marketplaceID, listingIndex)
	return err
}

func (r *rentalRepository) ListExpiredActive(ctx context.Context, marketplaceID uuid.UUID, nowMillis int64) ([]domain.RentalRecord, error) {
	query := `SELECT id, marketplace_id, rental_id, listing_index, renter_id, title, COALESCE(description, ''), price_per_day_cents, category, periods, rented_at_millis, expires_at_millis, status
	          FROM rentals WHERE marketplace_id = $1 AND status = 'ACTIVE' AND expires_at_millis < $2`
	rows, err := r.db.QueryContext(ctx, query, marketplaceID, nowMillis)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.RentalRecord
	for rows.Next() {
		var rec domain.RentalRecord
		if err := rows.Scan(&rec.ID, &rec.MarketplaceID, &rec.RentalID, &rec.ListingIndex, &rec.RenterID, &rec.Title, &rec.Description,
			&rec.PricePerDayCents, &rec.Category, &rec.Periods, &rec.RentedAtMillis, &rec.ExpiresAtMillis, &rec.Status); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *rentalRepository) ListByRenter(ctx context.Context, marketplaceID, renterID uuid.UUID, page, pageSize int32) ([]domain.RentalRecord, int32, error) {
	var count int32
	countQuery := `SELECT count(*) FROM rentals WHERE marketplace_id = $1 AND renter_id = $2`
	if err := r.db.QueryRowContext(ctx, countQuery, marketplaceID, renterID).Scan(&count); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	query := `SELECT id, marketplace_id, rental_id, listing_index, renter_id, title, COALESCE(description, ''), price_per_day_cents, category, periods, rented_at_millis, expires_at_millis, status
	          FROM rentals WHERE marketplace_id = $1 AND renter_id = $2 ORDER BY id DESC LIMIT $3 OFFSET $4`
	rows, err := r.db.QueryContext(ctx, query, marketplaceID, renterID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var records []domain.RentalRecord
	for rows.Next() {
		var rec domain.RentalRecord
		if err := rows.Scan(&rec.ID, &rec.MarketplaceID, &rec.RentalID, &rec.ListingIndex, &rec.RenterID, &rec.Title, &rec.Description,
			&rec.PricePerDayCents, &rec.Category, &rec.Periods, &rec.RentedAtMillis, &rec.ExpiresAtMillis, &rec.Status); err != nil {
			return nil, 0, err
		}
		records = append(records, rec)
	}
	return records, count, rows.Err()
}
