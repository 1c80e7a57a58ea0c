package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"carhive-backend/internal/domain"
	"carhive-backend/internal/repository"
)

type ledgerRepository struct {
	db *sql.DB
}

func NewLedgerRepository(db *sql.DB) repository.LedgerRepository {
	return &ledgerRepository{db: db}
}

func (r *ledgerRepository) CreateTransaction(ctx context.Context, tx *domain.LedgerTransaction) error {
	query := `INSERT INTO ledger_transactions (marketplace_id, amount_cents, type, listing_index, renter_id, description, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, NOW()) RETURNING id`
	return r.db.QueryRowContext(ctx, query, tx.MarketplaceID, tx.AmountCents, tx.Type, tx.ListingIndex, tx.RenterID, tx.Description).Scan(&tx.ID)
}

func (r *ledgerRepository) ListTransactions(ctx context.Context, marketplaceID uuid.UUID, page, pageSize int32) ([]domain.LedgerTransaction, int32, error) {
	var count int32
	countQuery := `SELECT count(*) FROM ledger_transactions WHERE marketplace_id = $1`
	if err := r.db.QueryRowContext(ctx, countQuery, marketplaceID).Scan(&count); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	query := `SELECT id, marketplace_id, amount_cents, type, listing_index, renter_id, COALESCE(description, ''), created_on
	          FROM ledger_transactions WHERE marketplace_id = $1 ORDER BY created_on DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, marketplaceID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var txs []domain.LedgerTransaction
	for rows.Next() {
		var tx domain.LedgerTransaction
		if err := rows.Scan(&tx.ID, &tx.MarketplaceID, &tx.AmountCents, &tx.Type, &tx.ListingIndex, &tx.RenterID, &tx.Description, &tx.CreatedOn); err != nil {
			return nil, 0, err
		}
		txs = append(txs, tx)
	}
	return txs, count, rows.Err()
}
