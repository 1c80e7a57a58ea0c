package postgres

import (
	"database/sql"

	"carhive-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.ListingRepository
	repository.RentalRepository
	repository.LedgerRepository
	repository.EventRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                db,
		ListingRepository: NewListingRepository(db),
		RentalRepository:  NewRentalRepository(db),
		LedgerRepository:  NewLedgerRepository(db),
		EventRepository:   NewEventRepository(db),
	}
}
