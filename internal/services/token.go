package services

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ResetTokenCodec issues and validates the signed password-reset tokens that
// get emailed to users. Tokens are self-contained: nothing is stored
// server-side, and several outstanding tokens for one user are all valid
// until each expires.
type ResetTokenCodec struct {
	secret []byte
	ttl    time.Duration
}

func NewResetTokenCodec(secret string, ttl time.Duration) *ResetTokenCodec {
	return &ResetTokenCodec{secret: []byte(secret), ttl: ttl}
}

func (c *ResetTokenCodec) Issue(userID uuid.UUID) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

// Verify returns the user id a valid token was issued for. Tampered, malformed
// and expired tokens all collapse into the same error so callers cannot tell
// the cases apart.
func (c *ResetTokenCodec) Verify(token string) (uuid.UUID, error) {
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		return c.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil || !parsed.Valid {
		return uuid.Nil, ErrInvalidOrExpiredToken
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return uuid.Nil, ErrInvalidOrExpiredToken
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, ErrInvalidOrExpiredToken
	}

	return userID, nil
}
