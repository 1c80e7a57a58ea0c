package postgres_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"carhive-backend/internal/domain"
	"carhive-backend/internal/repository/postgres"
)

func TestRentalRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewRentalRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		rec := &domain.RentalRecord{
			MarketplaceID:    uuid.New(),
			RentalID:         uuid.New(),
			ListingIndex:     1,
			RenterID:         uuid.New(),
			Title:            "2018 Ford F-150",
			Description:      "Crew cab",
			PricePerDayCents: 100,
			Category:         "truck",
			Periods:          3,
			RentedAtMillis:   1_000,
			ExpiresAtMillis:  1_000 + 3*24*60*60*1000,
			Status:           domain.RentalStatusActive,
		}

		mock.ExpectQuery("INSERT INTO rentals").
			WithArgs(rec.MarketplaceID, rec.RentalID, rec.ListingIndex, rec.RenterID, rec.Title, rec.Description,
				rec.PricePerDayCents, rec.Category, rec.Periods, rec.RentedAtMillis, rec.ExpiresAtMillis,
				rec.Status, sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

		err := repo.Create(ctx, rec)
		assert.NoError(t, err)
		assert.Equal(t, int64(7), rec.ID)
	})
}

func TestRentalRepository_Close(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewRentalRepository(db)
	ctx := context.Background()
	marketplaceID := uuid.New()

	t.Run("Returned", func(t *testing.T) {
		mock.ExpectExec("UPDATE rentals SET status").
			WithArgs(domain.RentalStatusReturned, sqlmock.AnyArg(), marketplaceID, uint64(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Close(ctx, marketplaceID, 1, domain.RentalStatusReturned)
		assert.NoError(t, err)
	})
}

func TestRentalRepository_UpdateExpiry(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewRentalRepository(db)
	ctx := context.Background()
	marketplaceID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("UPDATE rentals SET expires_at_millis").
			WithArgs(int64(500_000), marketplaceID, uint64(2)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateExpiry(ctx, marketplaceID, 2, 500_000)
		assert.NoError(t, err)
	})
}

func TestRentalRepository_ListExpiredActive(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewRentalRepository(db)
	ctx := context.Background()
	marketplaceID := uuid.New()
	rentalID := uuid.New()
	renterID := uuid.New()

	t.Run("ReturnsOverdueRows", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, marketplace_id, rental_id, listing_index").
			WithArgs(marketplaceID, int64(90_000_000)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "marketplace_id", "rental_id", "listing_index", "renter_id", "title", "description", "price_per_day_cents", "category", "periods", "rented_at_millis", "expires_at_millis", "status"}).
				AddRow(4, marketplaceID, rentalID, 6, renterID, "2017 Mazda CX-5", "", 2000, "suv", 1, 100_000, 86_500_000, domain.RentalStatusActive))

		records, err := repo.ListExpiredActive(ctx, marketplaceID, 90_000_000)
		assert.NoError(t, err)
		assert.Len(t, records, 1)
		assert.Equal(t, uint64(6), records[0].ListingIndex)

		bearer := records[0].Bearer()
		assert.Equal(t, rentalID, bearer.RentalID)
		assert.Equal(t, uint64(6), bearer.ListingIndex)
		assert.Equal(t, renterID, bearer.RenterID)
		assert.Equal(t, int64(86_500_000), bearer.ExpiresAtMillis)
	})

	t.Run("Empty", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, marketplace_id, rental_id, listing_index").
			WithArgs(marketplaceID, int64(50)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "marketplace_id", "rental_id", "listing_index", "renter_id", "title", "description", "price_per_day_cents", "category", "periods", "rented_at_millis", "expires_at_millis", "status"}))

		records, err := repo.ListExpiredActive(ctx, marketplaceID, 50)
		assert.NoError(t, err)
		assert.Empty(t, records)
	})
}
