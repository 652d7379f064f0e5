// backend/src/handlers/settings_handler.go
package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"

	"github.com/username/wealthtrack/backend/src/logger"
	"github.com/username/wealthtrack/backend/src/model"
	"github.com/username/wealthtrack/backend/src/models"
	"github.com/username/wealthtrack/backend/src/services"
	"github.com/username/wealthtrack/backend/src/utils"
)

type SettingsHandler struct {
	db *sql.DB
}

func NewSettingsHandler(db *sql.DB) *SettingsHandler {
	return &SettingsHandler{db: db}
}

// HandleGet returns the user's settings, or null data when none exist yet.
func (h *SettingsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	settings, err := model.GetUserSettings(h.db, userID)
	if err != nil {
		logger.L.Error("Failed to fetch user settings", "userID", userID, "error", err)
		utils.SendJSONError(w, "Failed to fetch settings", http.StatusInternalServerError)
		return
	}
	utils.SendJSON(w, http.StatusOK, map[string]any{"data": settings})
}

// HandleSave applies a partial settings update. Sheet identifiers may be
// pasted as full URLs; they are reduced to bare IDs before storage.
func (h *SettingsHandler) HandleSave(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	var form models.SettingsFormData
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		utils.SendJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if form.GoogleSheetID != nil {
		id := services.SheetIDFromInput(*form.GoogleSheetID)
		form.GoogleSheetID = &id
	}
	if form.CreditCardsSheetID != nil {
		id := services.SheetIDFromInput(*form.CreditCardsSheetID)
		form.CreditCardsSheetID = &id
	}

	settings, err := model.SaveUserSettings(h.db, userID, form)
	if err != nil {
		logger.L.Error("Failed to save user settings", "userID", userID, "error", err)
		utils.SendJSONError(w, "Failed to save settings", http.StatusInternalServerError)
		return
	}
	utils.SendJSON(w, http.StatusOK, map[string]any{"data": settings})
}
