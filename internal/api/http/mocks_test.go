package http_test

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"carhive-backend/internal/domain"
	"carhive-backend/internal/service"
)

// MockMarketplaceService
type MockMarketplaceService struct {
	mock.Mock
}

func (m *MockMarketplaceService) AddListing(ctx context.Context, capToken string, in service.AddListingInput) (*domain.ListingEntry, error) {
	args := m.Called(ctx, capToken, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ListingEntry), args.Error(1)
}
func (m *MockMarketplaceService) Unlist(ctx context.Context, capToken string, index uint64) error {
	args := m.Called(ctx, capToken, index)
	return args.Error(0)
}
func (m *MockMarketplaceService) Rent(ctx context.Context, index, periods uint64, renterID uuid.UUID, paymentCents uint64) (*domain.ActiveRental, error) {
	args := m.Called(ctx, index, periods, renterID, paymentCents)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ActiveRental), args.Error(1)
}
func (m *MockMarketplaceService) Return(ctx context.Context, rental *domain.ActiveRental) (uint64, error) {
	args := m.Called(ctx, rental)
	return args.Get(0).(uint64), args.Error(1)
}
func (m *MockMarketplaceService) Extend(ctx context.Context, rental *domain.ActiveRental, extraPeriods, paymentCents uint64) error {
	args := m.Called(ctx, rental, extraPeriods, paymentCents)
	return args.Error(0)
}
func (m *MockMarketplaceService) Expire(ctx context.Context, rental *domain.ActiveRental) error {
	args := m.Called(ctx, rental)
	return args.Error(0)
}
func (m *MockMarketplaceService) ExpireOverdue(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}
func (m *MockMarketplaceService) Withdraw(ctx context.Context, capToken string, amountCents uint64, recipient string) (uint64, error) {
	args := m.Called(ctx, capToken, amountCents, recipient)
	return args.Get(0).(uint64), args.Error(1)
}
func (m *MockMarketplaceService) GetListing(ctx context.Context, index uint64) (*domain.ListingEntry, error) {
	args := m.Called(ctx, index)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ListingEntry), args.Error(1)
}
func (m *MockMarketplaceService) ListListings(ctx context.Context) ([]domain.ListingEntry, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.ListingEntry), args.Error(1)
}
func (m *MockMarketplaceService) Balances(ctx context.Context, capToken string) (uint64, uint64, error) {
	args := m.Called(ctx, capToken)
	return args.Get(0).(uint64), args.Get(1).(uint64), args.Error(2)
}
