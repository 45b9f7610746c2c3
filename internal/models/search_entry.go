package models

import (
	"time"

	"github.com/google/uuid"
)

// SearchEntry is one row of a user's search history. Entries are append-only;
// nothing in the application updates or deletes them.
type SearchEntry struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	SearchTerm string    `json:"search_term"`
	CreatedAt  time.Time `json:"timestamp"`
}
