package middleware

import (
	"errors"
	"net/http"

	"github.com/medfinder/medfinder/internal/handlers"
	"github.com/medfinder/medfinder/internal/logging"
	"github.com/medfinder/medfinder/internal/services"
)

const sessionCookieName = "medfinder_session"

// AuthMiddleware resolves the session cookie into a user on every request.
type AuthMiddleware struct {
	auth  services.AuthServiceInterface
	users services.UserServiceInterface
}

func NewAuthMiddleware(auth services.AuthServiceInterface, users services.UserServiceInterface) *AuthMiddleware {
	return &AuthMiddleware{auth: auth, users: users}
}

// Authenticate loads the user for a valid session cookie and stores it in the
// request context. Requests without a valid session pass through anonymous;
// individual routes decide whether that is acceptable.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(sessionCookieName)
		if err != nil || cookie.Value == "" {
			next.ServeHTTP(w, r)
			return
		}

		userID, err := m.auth.GetSession(r.Context(), cookie.Value)
		if err != nil {
			if !errors.Is(err, services.ErrSessionNotFound) {
				logging.Error("Failed to resolve session", map[string]interface{}{"error": err.Error()})
			}
			next.ServeHTTP(w, r)
			return
		}

		user, err := m.users.GetByID(r.Context(), userID)
		if err != nil {
			if !errors.Is(err, services.ErrUserNotFound) {
				logging.Error("Failed to load session user", map[string]interface{}{"error": err.Error()})
			}
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(handlers.SetUserInContext(r.Context(), user)))
	})
}

// RequireSession rejects requests that did not authenticate.
func (m *AuthMiddleware) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if handlers.GetUserFromContext(r.Context()) == nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"Authentication required"}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}
