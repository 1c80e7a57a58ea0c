package service

import (
	"context"

	"github.com/google/uuid"

	"carhive-backend/internal/domain"
)

// AddListingInput carries the authority-provided listing metadata.
type AddListingInput struct {
	Title            string `json:"title"`
	Description      string `json:"description"`
	PricePerDayCents uint64 `json:"price_per_day_cents"`
	Category         string `json:"category"`
}

// MarketplaceService is the application face of one marketplace: it drives
// the lifecycle engine and mirrors committed transitions into durable
// storage. Privileged operations take the capability JWT as presented by
// the caller.
type MarketplaceService interface {
	AddListing(ctx context.Context, capToken string, in AddListingInput) (*domain.ListingEntry, error)
	Unlist(ctx context.Context, capToken string, index uint64) error
	Rent(ctx context.Context, index, periods uint64, renterID uuid.UUID, paymentCents uint64) (*domain.ActiveRental, error)
	Return(ctx context.Context, rental *domain.ActiveRental) (uint64, error)
	Extend(ctx context.Context, rental *domain.ActiveRental, extraPeriods, paymentCents uint64) error
	Expire(ctx context.Context, rental *domain.ActiveRental) error
	ExpireOverdue(ctx context.Context) (int, error)
	Withdraw(ctx context.Context, capToken string, amountCents uint64, recipient string) (uint64, error)

	GetListing(ctx context.Context, index uint64) (*domain.ListingEntry, error)
	ListListings(ctx context.Context) ([]domain.ListingEntry, error)
	Balances(ctx context.Context, capToken string) (revenue, deposits uint64, err error)
}

// EmailService sends fire-and-forget lifecycle notices to the marketplace
// authority.
type EmailService interface {
	SendRentalNotice(ctx context.Context, carTitle string, renterID uuid.UUID, feeCents, depositCents uint64) error
	SendReturnNotice(ctx context.Context, carTitle string, refundCents uint64) error
	SendExpiryNotice(ctx context.Context, carTitle string, forfeitCents uint64) error
}
