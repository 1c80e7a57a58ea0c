package security

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carhive-backend/internal/domain"
)

func TestAuthorize(t *testing.T) {
	marketID := uuid.New()
	cap := NewCapability(marketID)

	assert.NoError(t, Authorize(cap, marketID))

	err := Authorize(cap, uuid.New())
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestTokenManager_RoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret-that-is-long-enough-0")
	marketID := uuid.New()

	token, err := tm.IssueCapability(marketID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	cap, err := tm.ValidateCapability(token)
	require.NoError(t, err)
	assert.Equal(t, marketID, cap.MarketplaceID())
}

func TestTokenManager_RejectsWrongSecret(t *testing.T) {
	issuer := NewTokenManager("secret-one-that-is-long-enough-00")
	validator := NewTokenManager("secret-two-that-is-long-enough-00")

	token, err := issuer.IssueCapability(uuid.New())
	require.NoError(t, err)

	_, err = validator.ValidateCapability(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_RejectsGarbage(t *testing.T) {
	tm := NewTokenManager("test-secret-that-is-long-enough-0")

	_, err := tm.ValidateCapability("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
