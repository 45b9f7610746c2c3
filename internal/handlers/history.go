package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/medfinder/medfinder/internal/logging"
	"github.com/medfinder/medfinder/internal/models"
	"github.com/medfinder/medfinder/internal/services"
)

// HistoryHandler records and lists a user's past searches.
type HistoryHandler struct {
	history services.HistoryServiceInterface
}

func NewHistoryHandler(history services.HistoryServiceInterface) *HistoryHandler {
	return &HistoryHandler{history: history}
}

type SaveHistoryRequest struct {
	SearchTerm string `json:"search_term"`
}

type HistoryListResponse struct {
	History []models.SearchEntry `json:"history"`
}

func (h *HistoryHandler) Save(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req SaveHistoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	entry, err := h.history.Record(r.Context(), user.ID, req.SearchTerm)
	if err != nil {
		logging.Error("Failed to record search", map[string]interface{}{"error": err.Error()})
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, entry)
}

func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	entries, err := h.history.ListForUser(r.Context(), user.ID)
	if err != nil {
		logging.Error("Failed to list search history", map[string]interface{}{"error": err.Error()})
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, HistoryListResponse{History: entries})
}
