package security

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

// CapabilityClaims is the JWT encoding of an authority capability. The
// signature is what makes the capability unforgeable at the API boundary;
// inside the process only the marketplace identity matters.
type CapabilityClaims struct {
	MarketplaceID string `json:"marketplace_id"`
	jwt.RegisteredClaims
}

type TokenManager interface {
	IssueCapability(marketplaceID uuid.UUID) (string, error)
	ValidateCapability(tokenString string) (Capability, error)
}

type tokenManager struct {
	secret []byte
}

func NewTokenManager(secret string) TokenManager {
	return &tokenManager{
		secret: []byte(secret),
	}
}

// IssueCapability signs the one authority token for a marketplace.
// Capabilities do not expire; revocation means rotating the signing secret.
func (m *tokenManager) IssueCapability(marketplaceID uuid.UUID) (string, error) {
	claims := CapabilityClaims{
		MarketplaceID: marketplaceID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  marketplaceID.String(),
			IssuedAt: jwt.NewNumericDate(time.Now()),
			Issuer:   "carhive",
			Audience: jwt.ClaimStrings{"marketplace-authority"},
			ID:       generateJTI(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

func (m *tokenManager) ValidateCapability(tokenString string) (Capability, error) {
	token, err := jwt.ParseWithClaims(tokenString, &CapabilityClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Capability{}, ErrExpiredToken
		}
		return Capability{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(*CapabilityClaims)
	if !ok || !token.Valid {
		return Capability{}, ErrInvalidToken
	}

	id, err := uuid.Parse(claims.MarketplaceID)
	if err != nil {
		return Capability{}, ErrInvalidToken
	}
	return NewCapability(id), nil
}

// Simple unique ID generator
func generateJTI() string {
	return strconv.FormatInt(time.Now().UnixNano(), 16)
}
