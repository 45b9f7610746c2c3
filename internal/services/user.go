package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/medfinder/medfinder/internal/models"
)

// UserServiceInterface is what handlers depend on, so tests can swap in mocks.
type UserServiceInterface interface {
	Create(ctx context.Context, params models.CreateUserParams) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, params models.UpdateProfileParams) (*models.User, error)
	UpdatePassword(ctx context.Context, userID uuid.UUID, newPasswordHash string) error
}

const defaultBalance = 10.0

type UserService struct {
	db DB
}

func NewUserService(db DB) *UserService {
	return &UserService{db: db}
}

// normalizeEmail fixes the uniqueness policy: emails are compared
// case-insensitively by storing them lower-cased.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *UserService) Create(ctx context.Context, params models.CreateUserParams) (*models.User, error) {
	email := normalizeEmail(params.Email)
	if email == "" || params.PasswordHash == "" || params.FirstName == "" || params.LastName == "" {
		return nil, ErrValidationFailed
	}

	var exists bool
	err := s.db.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)", email).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("checking email existence: %w", err)
	}
	if exists {
		return nil, ErrEmailAlreadyExists
	}

	user := &models.User{}
	err = s.db.QueryRow(ctx,
		`INSERT INTO users (email, password_hash, first_name, last_name, phone, balance)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, email, password_hash, first_name, last_name, phone, balance, created_at, updated_at`,
		email, params.PasswordHash, params.FirstName, params.LastName, params.Phone, defaultBalance,
	).Scan(&user.ID, &user.Email, &user.PasswordHash, &user.FirstName, &user.LastName, &user.Phone, &user.Balance, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user := &models.User{}
	err := s.db.QueryRow(ctx,
		`SELECT id, email, password_hash, first_name, last_name, phone, balance, created_at, updated_at
		 FROM users WHERE id = $1`,
		id,
	).Scan(&user.ID, &user.Email, &user.PasswordHash, &user.FirstName, &user.LastName, &user.Phone, &user.Balance, &user.CreatedAt, &user.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting user by id: %w", err)
	}

	return user, nil
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user := &models.User{}
	err := s.db.QueryRow(ctx,
		`SELECT id, email, password_hash, first_name, last_name, phone, balance, created_at, updated_at
		 FROM users WHERE email = $1`,
		normalizeEmail(email),
	).Scan(&user.ID, &user.Email, &user.PasswordHash, &user.FirstName, &user.LastName, &user.Phone, &user.Balance, &user.CreatedAt, &user.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting user by email: %w", err)
	}

	return user, nil
}

// UpdateProfile requires every field: a blank submission must not blank out a
// stored record.
func (s *UserService) UpdateProfile(ctx context.Context, id uuid.UUID, params models.UpdateProfileParams) (*models.User, error) {
	email := normalizeEmail(params.Email)
	if params.FirstName == "" || params.LastName == "" || email == "" || params.Phone == "" {
		return nil, ErrValidationFailed
	}

	var takenBy uuid.UUID
	err := s.db.QueryRow(ctx, "SELECT id FROM users WHERE email = $1 AND id <> $2", email, id).Scan(&takenBy)
	if err == nil {
		return nil, ErrEmailAlreadyExists
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("checking email availability: %w", err)
	}

	user := &models.User{}
	err = s.db.QueryRow(ctx,
		`UPDATE users
		 SET first_name = $1, last_name = $2, email = $3, phone = $4, updated_at = NOW()
		 WHERE id = $5
		 RETURNING id, email, password_hash, first_name, last_name, phone, balance, created_at, updated_at`,
		params.FirstName, params.LastName, email, params.Phone, id,
	).Scan(&user.ID, &user.Email, &user.PasswordHash, &user.FirstName, &user.LastName, &user.Phone, &user.Balance, &user.CreatedAt, &user.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("updating profile: %w", err)
	}

	return user, nil
}

// UpdatePassword overwrites the stored hash. Outstanding reset tokens are
// stateless and stay valid until their own expiry.
func (s *UserService) UpdatePassword(ctx context.Context, userID uuid.UUID, newPasswordHash string) error {
	result, err := s.db.Exec(ctx,
		`UPDATE users SET password_hash = $1, updated_at = NOW() WHERE id = $2`,
		newPasswordHash, userID,
	)
	if err != nil {
		return fmt.Errorf("updating password: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrUserNotFound
	}

	return nil
}
