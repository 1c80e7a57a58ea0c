package service_test

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"carhive-backend/internal/domain"
)

// MockListingRepo
type MockListingRepo struct {
	mock.Mock
}

func (m *MockListingRepo) Upsert(ctx context.Context, marketplaceID uuid.UUID, entry *domain.ListingEntry) error {
	args := m.Called(ctx, marketplaceID, entry)
	return args.Error(0)
}
func (m *MockListingRepo) Delete(ctx context.Context, marketplaceID uuid.UUID, index uint64) error {
	args := m.Called(ctx, marketplaceID, index)
	return args.Error(0)
}
func (m *MockListingRepo) GetByIndex(ctx context.Context, marketplaceID uuid.UUID, index uint64) (*domain.ListingEntry, error) {
	args := m.Called(ctx, marketplaceID, index)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ListingEntry), args.Error(1)
}
func (m *MockListingRepo) List(ctx context.Context, marketplaceID uuid.UUID, page, pageSize int32) ([]domain.ListingEntry, int32, error) {
	args := m.Called(ctx, marketplaceID, page, pageSize)
	return args.Get(0).([]domain.ListingEntry), args.Get(1).(int32), args.Error(2)
}

// MockRentalRepo
type MockRentalRepo struct {
	mock.Mock
}

func (m *MockRentalRepo) Create(ctx context.Context, record *domain.RentalRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}
func (m *MockRentalRepo) Close(ctx context.Context, marketplaceID uuid.UUID, listingIndex uint64, status domain.RentalStatus) error {
	args := m.Called(ctx, marketplaceID, listingIndex, status)
	return args.Error(0)
}
func (m *MockRentalRepo) UpdateExpiry(ctx context.Context, marketplaceID uuid.UUID, listingIndex uint64, expiresAtMillis int64) error {
	args := m.Called(ctx, marketplaceID, listingIndex, expiresAtMillis)
	return args.Error(0)
}
func (m *MockRentalRepo) ListExpiredActive(ctx context.Context, marketplaceID uuid.UUID, nowMillis int64) ([]domain.RentalRecord, error) {
	args := m.Called(ctx, marketplaceID, nowMillis)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RentalRecord), args.Error(1)
}
func (m *MockRentalRepo) ListByRenter(ctx context.Context, marketplaceID, renterID uuid.UUID, page, pageSize int32) ([]domain.RentalRecord, int32, error) {
	args := m.Called(ctx, marketplaceID, renterID, page, pageSize)
	return args.Get(0).([]domain.RentalRecord), args.Get(1).(int32), args.Error(2)
}

// MockLedgerRepo
type MockLedgerRepo struct {
	mock.Mock
}

func (m *MockLedgerRepo) CreateTransaction(ctx context.Context, tx *domain.LedgerTransaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}
func (m *MockLedgerRepo) ListTransactions(ctx context.Context, marketplaceID uuid.UUID, page, pageSize int32) ([]domain.LedgerTransaction, int32, error) {
	args := m.Called(ctx, marketplaceID, page, pageSize)
	return args.Get(0).([]domain.LedgerTransaction), args.Get(1).(int32), args.Error(2)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendRentalNotice(ctx context.Context, carTitle string, renterID uuid.UUID, feeCents, depositCents uint64) error {
	args := m.Called(ctx, carTitle, renterID, feeCents, depositCents)
	return args.Error(0)
}
func (m *MockEmailService) SendReturnNotice(ctx context.Context, carTitle string, refundCents uint64) error {
	args := m.Called(ctx, carTitle, refundCents)
	return args.Error(0)
}
func (m *MockEmailService) SendExpiryNotice(ctx context.Context, carTitle string, forfeitCents uint64) error {
	args := m.Called(ctx, carTitle, forfeitCents)
	return args.Error(0)
}
