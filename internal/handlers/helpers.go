package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/medfinder/medfinder/internal/logging"
	"github.com/medfinder/medfinder/internal/models"
)

const sessionCookieName = "medfinder_session"

type contextKey string

const userContextKey contextKey = "user"

// SetUserInContext attaches the authenticated user; the auth middleware is the
// only production caller.
func SetUserInContext(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// GetUserFromContext returns the authenticated user, or nil for anonymous
// requests.
func GetUserFromContext(ctx context.Context) *models.User {
	user, _ := ctx.Value(userContextKey).(*models.User)
	return user
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logging.Error("Failed to encode response", map[string]interface{}{"error": err.Error()})
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}
