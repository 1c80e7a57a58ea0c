package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"carhive-backend/internal/domain"
	"carhive-backend/internal/logger"
	"carhive-backend/internal/marketplace"
	"carhive-backend/internal/metrics"
	"carhive-backend/internal/repository"
	"carhive-backend/internal/security"
)

type marketplaceService struct {
	market      *marketplace.Marketplace
	tokens      security.TokenManager
	clock       marketplace.Clock
	listingRepo repository.ListingRepository
	rentalRepo  repository.RentalRepository
	ledgerRepo  repository.LedgerRepository
	emailSvc    EmailService
}

func NewMarketplaceService(
	market *marketplace.Marketplace,
	tokens security.TokenManager,
	clock marketplace.Clock,
	listingRepo repository.ListingRepository,
	rentalRepo repository.RentalRepository,
	ledgerRepo repository.LedgerRepository,
	emailSvc EmailService,
) MarketplaceService {
	return &marketplaceService{
		market:      market,
		tokens:      tokens,
		clock:       clock,
		listingRepo: listingRepo,
		rentalRepo:  rentalRepo,
		ledgerRepo:  ledgerRepo,
		emailSvc:    emailSvc,
	}
}

func (s *marketplaceService) capability(capToken string) (security.Capability, error) {
	cap, err := s.tokens.ValidateCapability(capToken)
	if err != nil {
		return security.Capability{}, fmt.Errorf("validating capability token: %w", err)
	}
	return cap, nil
}

func (s *marketplaceService) AddListing(ctx context.Context, capToken string, in AddListingInput) (*domain.ListingEntry, error) {
	cap, err := s.capability(capToken)
	if err != nil {
		return nil, err
	}

	index, err := s.market.AddListing(ctx, cap, in.Title, in.Description, in.PricePerDayCents, in.Category)
	if err != nil {
		return nil, err
	}
	metrics.ListingsAdded.Inc()

	entry, err := s.market.Listing(index)
	if err != nil {
		return nil, err
	}
	s.mirrorListing(ctx, &entry)
	return &entry, nil
}

func (s *marketplaceService) Unlist(ctx context.Context, capToken string, index uint64) error {
	cap, err := s.capability(capToken)
	if err != nil {
		return err
	}

	if err := s.market.Unlist(ctx, cap, index); err != nil {
		return err
	}
	metrics.ListingsUnlisted.Inc()

	if entry, err := s.market.Listing(index); err == nil {
		s.mirrorListing(ctx, &entry)
	}
	return nil
}

func (s *marketplaceService) Rent(ctx context.Context, index, periods uint64, renterID uuid.UUID, paymentCents uint64) (*domain.ActiveRental, error) {
	now := s.clock.Now()
	rental, err := s.market.Rent(ctx, index, periods, renterID, domain.NewFunds(paymentCents), now)
	if err != nil {
		return nil, err
	}
	metrics.Rentals.Inc()
	metrics.SetBalances(s.market.Balances())

	if entry, err := s.market.Listing(index); err == nil {
		s.mirrorListing(ctx, &entry)
	}

	feeCents := paymentCents - marketplace.DepositCents
	record := &domain.RentalRecord{
		MarketplaceID:    s.market.ID(),
		RentalID:         rental.RentalID,
		ListingIndex:     rental.ListingIndex,
		RenterID:         rental.RenterID,
		Title:            rental.Title,
		Description:      rental.Description,
		PricePerDayCents: rental.PricePerDayCents,
		Category:         rental.Category,
		Periods:          periods,
		RentedAtMillis:   rental.RentedAtMillis,
		ExpiresAtMillis:  rental.ExpiresAtMillis,
		Status:           domain.RentalStatusActive,
	}
	if err := s.rentalRepo.Create(ctx, record); err != nil {
		logger.ErrorContext(ctx, "Failed to mirror rental record", "listing_index", index, "error", err)
	}

	s.appendLedger(ctx, int64(feeCents), domain.TransactionTypeRentalFee, &index, &renterID,
		fmt.Sprintf("Rental fee for listing %d (%d days)", index, periods))
	s.appendLedger(ctx, int64(marketplace.DepositCents), domain.TransactionTypeDepositHold, &index, &renterID,
		fmt.Sprintf("Deposit held for listing %d", index))

	_ = s.emailSvc.SendRentalNotice(ctx, rental.Title, renterID, feeCents, marketplace.DepositCents)
	return rental, nil
}

func (s *marketplaceService) Return(ctx context.Context, rental *domain.ActiveRental) (uint64, error) {
	refund, err := s.market.Return(ctx, rental, s.clock.Now())
	if err != nil {
		return 0, err
	}
	metrics.Returns.Inc()
	metrics.SetBalances(s.market.Balances())

	if entry, err := s.market.Listing(rental.ListingIndex); err == nil {
		s.mirrorListing(ctx, &entry)
	}
	if err := s.rentalRepo.Close(ctx, s.market.ID(), rental.ListingIndex, domain.RentalStatusReturned); err != nil {
		logger.ErrorContext(ctx, "Failed to close rental record", "listing_index", rental.ListingIndex, "error", err)
	}
	s.appendLedger(ctx, -int64(refund.Value()), domain.TransactionTypeDepositRefund, &rental.ListingIndex, &rental.RenterID,
		fmt.Sprintf("Deposit refunded for listing %d", rental.ListingIndex))

	_ = s.emailSvc.SendReturnNotice(ctx, rental.Title, refund.Value())
	return refund.Value(), nil
}

func (s *marketplaceService) Extend(ctx context.Context, rental *domain.ActiveRental, extraPeriods, paymentCents uint64) error {
	if err := s.market.Extend(ctx, rental, extraPeriods, domain.NewFunds(paymentCents), s.clock.Now()); err != nil {
		return err
	}
	metrics.Extensions.Inc()
	metrics.SetBalances(s.market.Balances())

	if err := s.rentalRepo.UpdateExpiry(ctx, s.market.ID(), rental.ListingIndex, rental.ExpiresAtMillis); err != nil {
		logger.ErrorContext(ctx, "Failed to mirror extended expiry", "listing_index", rental.ListingIndex, "error", err)
	}
	s.appendLedger(ctx, int64(paymentCents), domain.TransactionTypeExtensionFee, &rental.ListingIndex, &rental.RenterID,
		fmt.Sprintf("Extension fee for listing %d (%d days)", rental.ListingIndex, extraPeriods))
	return nil
}

func (s *marketplaceService) Expire(ctx context.Context, rental *domain.ActiveRental) error {
	if err := s.market.Expire(ctx, rental, s.clock.Now()); err != nil {
		return err
	}
	metrics.Expiries.Inc()
	metrics.SetBalances(s.market.Balances())

	if err := s.listingRepo.Delete(ctx, s.market.ID(), rental.ListingIndex); err != nil {
		logger.ErrorContext(ctx, "Failed to delete mirrored listing", "listing_index", rental.ListingIndex, "error", err)
	}
	if err := s.rentalRepo.Close(ctx, s.market.ID(), rental.ListingIndex, domain.RentalStatusExpired); err != nil {
		logger.ErrorContext(ctx, "Failed to close rental record", "listing_index", rental.ListingIndex, "error", err)
	}
	s.appendLedger(ctx, int64(marketplace.DepositCents), domain.TransactionTypeDepositForfeit, &rental.ListingIndex, &rental.RenterID,
		fmt.Sprintf("Deposit forfeited for listing %d", rental.ListingIndex))

	_ = s.emailSvc.SendExpiryNotice(ctx, rental.Title, marketplace.DepositCents)
	return nil
}

// ExpireOverdue sweeps the mirror for active rentals past their expiry and
// drives each through the expire path. Invoked by the scheduler.
func (s *marketplaceService) ExpireOverdue(ctx context.Context) (int, error) {
	records, err := s.rentalRepo.ListExpiredActive(ctx, s.market.ID(), s.clock.Now())
	if err != nil {
		return 0, fmt.Errorf("listing expired rentals: %w", err)
	}

	expired := 0
	for i := range records {
		if err := s.Expire(ctx, records[i].Bearer()); err != nil {
			logger.ErrorContext(ctx, "Failed to expire overdue rental",
				"listing_index", records[i].ListingIndex, "error", err)
			continue
		}
		expired++
	}
	return expired, nil
}

func (s *marketplaceService) Withdraw(ctx context.Context, capToken string, amountCents uint64, recipient string) (uint64, error) {
	cap, err := s.capability(capToken)
	if err != nil {
		return 0, err
	}

	funds, err := s.market.Withdraw(ctx, cap, amountCents, recipient)
	if err != nil {
		return 0, err
	}
	metrics.Withdrawals.Inc()
	metrics.SetBalances(s.market.Balances())

	s.appendLedger(ctx, -int64(funds.Value()), domain.TransactionTypeWithdrawal, nil, nil,
		fmt.Sprintf("Withdrawal to %s", recipient))
	return funds.Value(), nil
}

func (s *marketplaceService) GetListing(ctx context.Context, index uint64) (*domain.ListingEntry, error) {
	entry, err := s.market.Listing(index)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (s *marketplaceService) ListListings(ctx context.Context) ([]domain.ListingEntry, error) {
	return s.market.Listings(), nil
}

func (s *marketplaceService) Balances(ctx context.Context, capToken string) (uint64, uint64, error) {
	cap, err := s.capability(capToken)
	if err != nil {
		return 0, 0, err
	}
	if err := security.Authorize(cap, s.market.ID()); err != nil {
		return 0, 0, err
	}
	revenue, deposits := s.market.Balances()
	return revenue, deposits, nil
}

func (s *marketplaceService) mirrorListing(ctx context.Context, entry *domain.ListingEntry) {
	if err := s.listingRepo.Upsert(ctx, s.market.ID(), entry); err != nil {
		logger.ErrorContext(ctx, "Failed to mirror listing", "listing_index", entry.Index, "error", err)
	}
}

func (s *marketplaceService) appendLedger(ctx context.Context, amount int64, txType domain.TransactionType, index *uint64, renterID *uuid.UUID, description string) {
	tx := &domain.LedgerTransaction{
		MarketplaceID: s.market.ID(),
		AmountCents:   amount,
		Type:          txType,
		ListingIndex:  index,
		RenterID:      renterID,
		Description:   description,
	}
	if err := s.ledgerRepo.CreateTransaction(ctx, tx); err != nil {
		logger.ErrorContext(ctx, "Failed to append ledger transaction", "type", txType, "error", err)
	}
}
