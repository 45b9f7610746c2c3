package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/medfinder/medfinder/internal/models"
)

func TestUserService_Create_Success(t *testing.T) {
	userID := uuid.New()
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	db := &fakeDB{
		QueryRowFunc: func(ctx context.Context, sql string, args ...any) Row {
			if strings.Contains(sql, "SELECT EXISTS") {
				if args[0] != "new@example.com" {
					t.Fatalf("expected normalized email, got %v", args[0])
				}
				return rowFromValues(false)
			}
			return rowFromValues(userRow(userID, "new@example.com", "hash", "Ada", "Lovelace", "555-0100", 10.0, now, now)...)
		},
	}

	service := NewUserService(db)
	user, err := service.Create(context.Background(), models.CreateUserParams{
		Email:        "NEW@Example.com",
		PasswordHash: "hash",
		FirstName:    "Ada",
		LastName:     "Lovelace",
		Phone:        "555-0100",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != userID {
		t.Fatalf("expected user id %s, got %s", userID, user.ID)
	}
	if user.Balance != 10.0 {
		t.Fatalf("expected starting balance 10.0, got %v", user.Balance)
	}
}

func TestUserService_Create_DuplicateEmail(t *testing.T) {
	inserted := false
	db := &fakeDB{
		QueryRowFunc: func(ctx context.Context, sql string, args ...any) Row {
			if strings.Contains(sql, "SELECT EXISTS") {
				return rowFromValues(true)
			}
			inserted = true
			return rowFromValues(userRow(uuid.New(), "", "", "", "", "", 0, time.Time{}, time.Time{})...)
		},
	}

	service := NewUserService(db)
	_, err := service.Create(context.Background(), models.CreateUserParams{
		Email:        "taken@example.com",
		PasswordHash: "hash",
		FirstName:    "Ada",
		LastName:     "Lovelace",
	})
	if !errors.Is(err, ErrEmailAlreadyExists) {
		t.Fatalf("expected ErrEmailAlreadyExists, got %v", err)
	}
	if inserted {
		t.Fatal("expected no insert after duplicate email check")
	}
}

func TestUserService_Create_MissingFields(t *testing.T) {
	service := NewUserService(&fakeDB{})

	_, err := service.Create(context.Background(), models.CreateUserParams{
		Email:        "a@example.com",
		PasswordHash: "hash",
		FirstName:    "",
		LastName:     "Lovelace",
	})
	if !errors.Is(err, ErrValidationFailed) {
		t.Fatalf("expected ErrValidationFailed, got %v", err)
	}
}

func TestUserService_GetByEmail_NotFound(t *testing.T) {
	db := &fakeDB{
		QueryRowFunc: func(ctx context.Context, sql string, args ...any) Row {
			return fakeRow{scanFunc: func(dest ...any) error { return pgx.ErrNoRows }}
		},
	}

	service := NewUserService(db)
	_, err := service.GetByEmail(context.Background(), "nobody@example.com")
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_GetByID_Success(t *testing.T) {
	userID := uuid.New()
	now := time.Now()
	db := &fakeDB{
		QueryRowFunc: func(ctx context.Context, sql string, args ...any) Row {
			return rowFromValues(userRow(userID, "a@example.com", "hash", "Ada", "Lovelace", "", 9.5, now, now)...)
		},
	}

	service := NewUserService(db)
	user, err := service.GetByID(context.Background(), userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Email != "a@example.com" || user.Balance != 9.5 {
		t.Fatalf("unexpected user: %+v", user)
	}
}

func TestUserService_UpdateProfile_MissingField(t *testing.T) {
	service := NewUserService(&fakeDB{})

	_, err := service.UpdateProfile(context.Background(), uuid.New(), models.UpdateProfileParams{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "a@example.com",
		Phone:     "",
	})
	if !errors.Is(err, ErrValidationFailed) {
		t.Fatalf("expected ErrValidationFailed, got %v", err)
	}
}

func TestUserService_UpdateProfile_EmailTaken(t *testing.T) {
	otherID := uuid.New()
	db := &fakeDB{
		QueryRowFunc: func(ctx context.Context, sql string, args ...any) Row {
			if strings.Contains(sql, "AND id <>") {
				return rowFromValues(otherID)
			}
			t.Fatalf("unexpected query: %s", sql)
			return nil
		},
	}

	service := NewUserService(db)
	_, err := service.UpdateProfile(context.Background(), uuid.New(), models.UpdateProfileParams{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "taken@example.com",
		Phone:     "555-0100",
	})
	if !errors.Is(err, ErrEmailAlreadyExists) {
		t.Fatalf("expected ErrEmailAlreadyExists, got %v", err)
	}
}

func TestUserService_UpdateProfile_Success(t *testing.T) {
	userID := uuid.New()
	now := time.Now()
	db := &fakeDB{
		QueryRowFunc: func(ctx context.Context, sql string, args ...any) Row {
			if strings.Contains(sql, "AND id <>") {
				return fakeRow{scanFunc: func(dest ...any) error { return pgx.ErrNoRows }}
			}
			return rowFromValues(userRow(userID, "new@example.com", "hash", "Ada", "King", "555-0101", 10.0, now, now)...)
		},
	}

	service := NewUserService(db)
	user, err := service.UpdateProfile(context.Background(), userID, models.UpdateProfileParams{
		FirstName: "Ada",
		LastName:  "King",
		Email:     "New@Example.com",
		Phone:     "555-0101",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.LastName != "King" || user.Email != "new@example.com" {
		t.Fatalf("unexpected user after update: %+v", user)
	}
}

func TestUserService_UpdatePassword_NotFound(t *testing.T) {
	db := &fakeDB{
		ExecFunc: func(ctx context.Context, sql string, args ...any) (CommandTag, error) {
			return fakeCommandTag{rowsAffected: 0}, nil
		},
	}

	service := NewUserService(db)
	err := service.UpdatePassword(context.Background(), uuid.New(), "newhash")
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_UpdatePassword_Success(t *testing.T) {
	var gotHash any
	db := &fakeDB{
		ExecFunc: func(ctx context.Context, sql string, args ...any) (CommandTag, error) {
			gotHash = args[0]
			return fakeCommandTag{rowsAffected: 1}, nil
		},
	}

	service := NewUserService(db)
	if err := service.UpdatePassword(context.Background(), uuid.New(), "newhash"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotHash != "newhash" {
		t.Fatalf("expected new hash to be written, got %v", gotHash)
	}
}
