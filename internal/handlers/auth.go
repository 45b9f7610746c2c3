package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/medfinder/medfinder/internal/logging"
	"github.com/medfinder/medfinder/internal/models"
	"github.com/medfinder/medfinder/internal/services"
)

// AuthHandler owns registration, login, logout and the password flows.
type AuthHandler struct {
	users      services.UserServiceInterface
	auth       services.AuthServiceInterface
	accounts   services.AccountServiceInterface
	email      services.EmailServiceInterface
	tokens     *services.ResetTokenCodec
	baseURL    string
	secure     bool
	sessionTTL time.Duration
}

func NewAuthHandler(
	users services.UserServiceInterface,
	auth services.AuthServiceInterface,
	accounts services.AccountServiceInterface,
	email services.EmailServiceInterface,
	tokens *services.ResetTokenCodec,
	baseURL string,
	secure bool,
	sessionTTL time.Duration,
) *AuthHandler {
	return &AuthHandler{
		users:      users,
		auth:       auth,
		accounts:   accounts,
		email:      email,
		tokens:     tokens,
		baseURL:    baseURL,
		secure:     secure,
		sessionTTL: sessionTTL,
	}
}

type RegisterRequest struct {
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Phone           string `json:"phone"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ChangePasswordRequest struct {
	OldPassword     string `json:"old_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type ResetPasswordRequest struct {
	Token           string `json:"token"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type UserResponse struct {
	User *models.User `json:"user"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.FirstName == "" || req.LastName == "" || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "First name, last name, email and password are required")
		return
	}
	if req.Password != req.ConfirmPassword {
		writeError(w, http.StatusBadRequest, "Passwords do not match")
		return
	}

	hash, err := h.auth.HashPassword(req.Password)
	if err != nil {
		logging.Error("Failed to hash password", map[string]interface{}{"error": err.Error()})
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	user, err := h.users.Create(r.Context(), models.CreateUserParams{
		Email:        req.Email,
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        req.Phone,
	})
	if errors.Is(err, services.ErrEmailAlreadyExists) {
		writeError(w, http.StatusConflict, "Email already registered")
		return
	}
	if errors.Is(err, services.ErrValidationFailed) {
		writeError(w, http.StatusBadRequest, "All fields must be filled")
		return
	}
	if err != nil {
		logging.Error("Failed to create user", map[string]interface{}{"error": err.Error()})
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, UserResponse{User: user})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	user, err := h.users.GetByEmail(r.Context(), req.Email)
	if errors.Is(err, services.ErrUserNotFound) {
		writeError(w, http.StatusUnauthorized, "Incorrect email or password")
		return
	}
	if err != nil {
		logging.Error("Failed to load user for login", map[string]interface{}{"error": err.Error()})
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	if !h.auth.VerifyPassword(user.PasswordHash, req.Password) {
		writeError(w, http.StatusUnauthorized, "Incorrect email or password")
		return
	}

	token, err := h.auth.CreateSession(r.Context(), user.ID)
	if err != nil {
		logging.Error("Failed to create session", map[string]interface{}{"error": err.Error()})
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.setSessionCookie(w, token)
	writeJSON(w, http.StatusOK, UserResponse{User: user})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if GetUserFromContext(r.Context()) == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	if cookie, err := r.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
		if err := h.auth.DeleteSession(r.Context(), cookie.Value); err != nil {
			logging.Error("Failed to delete session", map[string]interface{}{"error": err.Error()})
		}
	}

	h.clearSessionCookie(w)
	writeJSON(w, http.StatusOK, MessageResponse{Message: "Logged out"})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}
	writeJSON(w, http.StatusOK, UserResponse{User: user})
}

func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	err := h.accounts.ChangePassword(r.Context(), user.ID, req.OldPassword, req.NewPassword, req.ConfirmPassword)
	if errors.Is(err, services.ErrWrongOldPassword) {
		writeError(w, http.StatusUnauthorized, "Old password is incorrect")
		return
	}
	if errors.Is(err, services.ErrPasswordMismatch) {
		writeError(w, http.StatusBadRequest, "New password and confirm password do not match")
		return
	}
	if err != nil {
		logging.Error("Failed to change password", map[string]interface{}{"error": err.Error()})
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Message: "Password updated successfully"})
}

func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req ForgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Email == "" {
		writeError(w, http.StatusBadRequest, "Email is required")
		return
	}

	user, err := h.users.GetByEmail(r.Context(), req.Email)
	if errors.Is(err, services.ErrUserNotFound) {
		writeError(w, http.StatusNotFound, "Email does not exist")
		return
	}
	if err != nil {
		logging.Error("Failed to load user for reset", map[string]interface{}{"error": err.Error()})
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		logging.Error("Failed to issue reset token", map[string]interface{}{"error": err.Error()})
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	resetURL := h.baseURL + "/reset-password?token=" + url.QueryEscape(token)
	if err := h.email.SendPasswordResetEmail(r.Context(), user.Email, resetURL); err != nil {
		logging.Error("Failed to send reset email", map[string]interface{}{"error": err.Error()})
		writeError(w, http.StatusInternalServerError, "Failed to send reset email")
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Message: "An email has been sent with instructions to reset your password"})
}

// ResetPassword persists the new hash on success. The system this replaced
// validated everything and then reported success without writing; that was a
// bug, not a contract.
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Token == "" || req.NewPassword == "" {
		writeError(w, http.StatusBadRequest, "Token and new password are required")
		return
	}

	userID, err := h.tokens.Verify(req.Token)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "That is an invalid or expired token")
		return
	}

	if req.NewPassword != req.ConfirmPassword {
		writeError(w, http.StatusBadRequest, "Passwords do not match")
		return
	}

	hash, err := h.auth.HashPassword(req.NewPassword)
	if err != nil {
		logging.Error("Failed to hash password", map[string]interface{}{"error": err.Error()})
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	if err := h.users.UpdatePassword(r.Context(), userID, hash); err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			writeError(w, http.StatusUnauthorized, "That is an invalid or expired token")
			return
		}
		logging.Error("Failed to update password", map[string]interface{}{"error": err.Error()})
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Message: "Your password has been updated"})
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.sessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteStrictMode,
	})
}

func (h *AuthHandler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteStrictMode,
		Expires:  time.Unix(0, 0),
	})
}
