package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/medfinder/medfinder/internal/logging"
	"github.com/medfinder/medfinder/internal/models"
	"github.com/medfinder/medfinder/internal/services"
)

// searchCharge is debited from a user's balance for each paid lookup.
const searchCharge = 0.05

// AccountHandler exposes balance reads, the per-lookup debit and profile edits.
type AccountHandler struct {
	accounts services.AccountServiceInterface
	users    services.UserServiceInterface
}

func NewAccountHandler(accounts services.AccountServiceInterface, users services.UserServiceInterface) *AccountHandler {
	return &AccountHandler{accounts: accounts, users: users}
}

type BalanceResponse struct {
	Balance float64 `json:"balance"`
}

type UpdateProfileRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
}

func (h *AccountHandler) Balance(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	balance, err := h.accounts.Balance(r.Context(), user.ID)
	if errors.Is(err, services.ErrUserNotFound) {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		logging.Error("Failed to read balance", map[string]interface{}{"error": err.Error()})
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, BalanceResponse{Balance: balance})
}

// Deduct charges the fixed lookup fee and returns the remaining balance.
// The balance is allowed to go negative; there is no floor.
func (h *AccountHandler) Deduct(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	balance, err := h.accounts.AdjustBalance(r.Context(), user.ID, -searchCharge)
	if errors.Is(err, services.ErrUserNotFound) {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		logging.Error("Failed to adjust balance", map[string]interface{}{"error": err.Error()})
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, BalanceResponse{Balance: balance})
}

func (h *AccountHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.users.UpdateProfile(r.Context(), user.ID, models.UpdateProfileParams{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Email:     req.Email,
	})
	if errors.Is(err, services.ErrValidationFailed) {
		writeError(w, http.StatusBadRequest, "All fields must be filled")
		return
	}
	if errors.Is(err, services.ErrEmailAlreadyExists) {
		writeError(w, http.StatusConflict, "Email already registered")
		return
	}
	if errors.Is(err, services.ErrUserNotFound) {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		logging.Error("Failed to update profile", map[string]interface{}{"error": err.Error()})
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, UserResponse{User: updated})
}
