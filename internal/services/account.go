package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type AccountServiceInterface interface {
	Balance(ctx context.Context, userID uuid.UUID) (float64, error)
	AdjustBalance(ctx context.Context, userID uuid.UUID, delta float64) (float64, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword, confirmPassword string) error
}

type AccountService struct {
	db     DB
	users  UserServiceInterface
	hasher AuthServiceInterface
}

func NewAccountService(db DB, users UserServiceInterface, hasher AuthServiceInterface) *AccountService {
	return &AccountService{db: db, users: users, hasher: hasher}
}

func (s *AccountService) Balance(ctx context.Context, userID uuid.UUID) (float64, error) {
	var balance float64
	err := s.db.QueryRow(ctx, "SELECT balance FROM users WHERE id = $1", userID).Scan(&balance)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrUserNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("getting balance: %w", err)
	}
	return balance, nil
}

// AdjustBalance applies delta in a single statement and returns the result.
// There is no floor: balances may go negative, matching the billing model
// where searches keep working and debt is settled out of band.
func (s *AccountService) AdjustBalance(ctx context.Context, userID uuid.UUID, delta float64) (float64, error) {
	var balance float64
	err := s.db.QueryRow(ctx,
		`UPDATE users SET balance = balance + $1, updated_at = NOW() WHERE id = $2 RETURNING balance`,
		delta, userID,
	).Scan(&balance)

	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrUserNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("adjusting balance: %w", err)
	}

	return balance, nil
}

// ChangePassword verifies the old password before looking at the new one, and
// fails closed on any mismatch.
func (s *AccountService) ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword, confirmPassword string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if !s.hasher.VerifyPassword(user.PasswordHash, oldPassword) {
		return ErrWrongOldPassword
	}

	if newPassword == "" || newPassword != confirmPassword {
		return ErrPasswordMismatch
	}

	newHash, err := s.hasher.HashPassword(newPassword)
	if err != nil {
		return err
	}

	return s.users.UpdatePassword(ctx, userID, newHash)
}
