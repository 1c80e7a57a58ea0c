package postgres_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"carhive-backend/internal/domain"
	"carhive-backend/internal/repository/postgres"
)

func TestListingRepository_Upsert(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewListingRepository(db)
	ctx := context.Background()
	marketplaceID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		entry := &domain.ListingEntry{
			Index:            0,
			Title:            "2019 Honda Civic",
			Description:      "Compact sedan, 32k miles",
			PricePerDayCents: 4500,
			Category:         "sedan",
			Listed:           true,
		}

		mock.ExpectExec("INSERT INTO listings").
			WithArgs(marketplaceID, entry.Index, entry.Title, entry.Description, entry.PricePerDayCents, entry.Category, entry.Listed).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Upsert(ctx, marketplaceID, entry)
		assert.NoError(t, err)
	})
}

func TestListingRepository_GetByIndex(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewListingRepository(db)
	ctx := context.Background()
	marketplaceID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery("SELECT listing_index, title").
			WithArgs(marketplaceID, uint64(2)).
			WillReturnRows(sqlmock.NewRows([]string{"listing_index", "title", "description", "price_per_day_cents", "category", "listed"}).
				AddRow(2, "2021 Tesla Model 3", "Long range", 9900, "ev", true))

		entry, err := repo.GetByIndex(ctx, marketplaceID, 2)
		assert.NoError(t, err)
		assert.Equal(t, uint64(2), entry.Index)
		assert.Equal(t, uint64(9900), entry.PricePerDayCents)
		assert.True(t, entry.Listed)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT listing_index, title").
			WithArgs(marketplaceID, uint64(99)).
			WillReturnError(sql.ErrNoRows)

		entry, err := repo.GetByIndex(ctx, marketplaceID, 99)
		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, entry)
	})
}

func TestListingRepository_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewListingRepository(db)
	ctx := context.Background()
	marketplaceID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM listings").
			WithArgs(marketplaceID, uint64(5)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Delete(ctx, marketplaceID, 5)
		assert.NoError(t, err)
	})
}
