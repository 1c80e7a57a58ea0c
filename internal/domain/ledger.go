package domain

import (
	"time"

	"github.com/google/uuid"
)

type TransactionType string

const (
	TransactionTypeRentalFee      TransactionType = "RENTAL_FEE"
	TransactionTypeDepositHold    TransactionType = "DEPOSIT_HOLD"
	TransactionTypeDepositRefund  TransactionType = "DEPOSIT_REFUND"
	TransactionTypeDepositForfeit TransactionType = "DEPOSIT_FORFEIT"
	TransactionTypeExtensionFee   TransactionType = "EXTENSION_FEE"
	TransactionTypeWithdrawal     TransactionType = "WITHDRAWAL"
)

// LedgerTransaction is the durable audit row appended for every fund
// movement through the escrow ledger. Amount is positive for money
// entering the pool named by Type and negative for money leaving it.
type LedgerTransaction struct {
	ID            int64           `json:"id"`
	MarketplaceID uuid.UUID       `json:"marketplace_id"`
	AmountCents   int64           `json:"amount_cents"`
	Type          TransactionType `json:"type"`
	ListingIndex  *uint64         `json:"listing_index,omitempty"`
	RenterID      *uuid.UUID      `json:"renter_id,omitempty"`
	Description   string          `json:"description"`
	CreatedOn     time.Time       `json:"created_on"`
}
