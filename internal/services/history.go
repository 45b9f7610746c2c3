package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/medfinder/medfinder/internal/models"
)

type HistoryServiceInterface interface {
	Record(ctx context.Context, userID uuid.UUID, searchTerm string) (*models.SearchEntry, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]models.SearchEntry, error)
}

// HistoryService is the append-only search log. Timestamps are assigned by the
// database at insert time, never by the caller.
type HistoryService struct {
	db DB
}

func NewHistoryService(db DB) *HistoryService {
	return &HistoryService{db: db}
}

func (s *HistoryService) Record(ctx context.Context, userID uuid.UUID, searchTerm string) (*models.SearchEntry, error) {
	entry := &models.SearchEntry{}
	err := s.db.QueryRow(ctx,
		`INSERT INTO search_history (user_id, search_term)
		 VALUES ($1, $2)
		 RETURNING id, user_id, search_term, created_at`,
		userID, searchTerm,
	).Scan(&entry.ID, &entry.UserID, &entry.SearchTerm, &entry.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("recording search: %w", err)
	}

	return entry, nil
}

// ListForUser returns the user's entries newest first. Each call is a fresh
// snapshot; an empty history is an empty slice, not an error.
func (s *HistoryService) ListForUser(ctx context.Context, userID uuid.UUID) ([]models.SearchEntry, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, user_id, search_term, created_at
		 FROM search_history
		 WHERE user_id = $1
		 ORDER BY created_at DESC, id DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing search history: %w", err)
	}
	defer rows.Close()

	entries := []models.SearchEntry{}
	for rows.Next() {
		var entry models.SearchEntry
		if err := rows.Scan(&entry.ID, &entry.UserID, &entry.SearchTerm, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning search entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating search history: %w", err)
	}

	return entries, nil
}
