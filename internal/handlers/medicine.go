package handlers

import (
	"net/http"
	"strings"

	"github.com/medfinder/medfinder/internal/logging"
	"github.com/medfinder/medfinder/internal/models"
	"github.com/medfinder/medfinder/internal/services"
)

// MedicineHandler serves catalog lookups. Lookups are not charged here;
// the client posts the debit separately once it shows results.
type MedicineHandler struct {
	medicines services.MedicineServiceInterface
}

func NewMedicineHandler(medicines services.MedicineServiceInterface) *MedicineHandler {
	return &MedicineHandler{medicines: medicines}
}

type MedicineSearchResponse struct {
	Medicines []models.Medicine `json:"medicines"`
}

func (h *MedicineHandler) Search(w http.ResponseWriter, r *http.Request) {
	if GetUserFromContext(r.Context()) == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		writeError(w, http.StatusBadRequest, "Query parameter 'q' is required")
		return
	}

	medicines, err := h.medicines.Search(r.Context(), query)
	if err != nil {
		logging.Error("Failed to search medicines", map[string]interface{}{"error": err.Error()})
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, MedicineSearchResponse{Medicines: medicines})
}
