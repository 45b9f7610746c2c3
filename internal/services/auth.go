package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
)

// AuthServiceInterface covers password verification and the session lifecycle.
type AuthServiceInterface interface {
	HashPassword(password string) (string, error)
	VerifyPassword(hash, password string) bool
	CreateSession(ctx context.Context, userID uuid.UUID) (string, error)
	GetSession(ctx context.Context, token string) (uuid.UUID, error)
	DeleteSession(ctx context.Context, token string) error
}

const sessionKeyPrefix = "session:"

// AuthService keeps sessions in redis: one key per session token, value is the
// user id, expiry handled by the key TTL.
type AuthService struct {
	redis      RedisClient
	sessionTTL time.Duration
}

func NewAuthService(redis RedisClient, sessionTTL time.Duration) *AuthService {
	return &AuthService{redis: redis, sessionTTL: sessionTTL}
}

func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(hash), nil
}

func (s *AuthService) VerifyPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func (s *AuthService) CreateSession(ctx context.Context, userID uuid.UUID) (string, error) {
	token, err := generateSessionToken()
	if err != nil {
		return "", err
	}

	if err := s.redis.Set(ctx, sessionKeyPrefix+token, userID.String(), s.sessionTTL); err != nil {
		return "", fmt.Errorf("storing session: %w", err)
	}

	return token, nil
}

// GetSession resolves a session token to a user id and refreshes the TTL, so
// active sessions slide forward instead of expiring mid-use.
func (s *AuthService) GetSession(ctx context.Context, token string) (uuid.UUID, error) {
	value, err := s.redis.Get(ctx, sessionKeyPrefix+token)
	if errors.Is(err, redis.Nil) {
		return uuid.Nil, ErrSessionNotFound
	}
	if err != nil {
		return uuid.Nil, fmt.Errorf("loading session: %w", err)
	}

	userID, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, ErrSessionNotFound
	}

	if err := s.redis.Expire(ctx, sessionKeyPrefix+token, s.sessionTTL); err != nil {
		return uuid.Nil, fmt.Errorf("refreshing session: %w", err)
	}

	return userID, nil
}

func (s *AuthService) DeleteSession(ctx context.Context, token string) error {
	if err := s.redis.Del(ctx, sessionKeyPrefix+token); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}

func generateSessionToken() (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("generating session token: %w", err)
	}
	return hex.EncodeToString(raw), nil
}
