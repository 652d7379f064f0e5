// backend/src/handlers/sync_handler.go
package handlers

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/username/wealthtrack/backend/src/logger"
	"github.com/username/wealthtrack/backend/src/model"
	"github.com/username/wealthtrack/backend/src/models"
	"github.com/username/wealthtrack/backend/src/services"
	"github.com/username/wealthtrack/backend/src/utils"
)

// SyncHandler exposes the two sheet-pull endpoints and the template creation
// endpoints.
type SyncHandler struct {
	db     *sql.DB
	sync   services.SyncService
	source services.SheetSource
}

func NewSyncHandler(db *sql.DB, sync services.SyncService, source services.SheetSource) *SyncHandler {
	return &SyncHandler{db: db, sync: sync, source: source}
}

// syncErrorStatus maps the sync sentinel errors onto 400s; anything else is a
// server fault.
func syncErrorStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrNoSourceConfigured),
		errors.Is(err, services.ErrSourceUnreachable),
		errors.Is(err, services.ErrEmptySource):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (h *SyncHandler) HandleSyncNetWorth(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	result, err := h.sync.SyncNetWorth(r.Context(), userID)
	if err != nil {
		status := syncErrorStatus(err)
		if status == http.StatusInternalServerError {
			logger.L.Error("Net worth sync failed", "userID", userID, "error", err)
			utils.SendJSONError(w, "Sync failed", status)
			return
		}
		utils.SendJSONError(w, err.Error(), status)
		return
	}
	utils.SendJSON(w, http.StatusOK, result)
}

func (h *SyncHandler) HandleSyncCreditCards(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	result, err := h.sync.SyncCreditCards(r.Context(), userID)
	if err != nil {
		status := syncErrorStatus(err)
		if status == http.StatusInternalServerError {
			logger.L.Error("Credit card sync failed", "userID", userID, "error", err)
			utils.SendJSONError(w, "Sync failed", status)
			return
		}
		utils.SendJSONError(w, err.Error(), status)
		return
	}
	utils.SendJSON(w, http.StatusOK, result)
}

// HandleCreateNetWorthSheet provisions a pre-formatted net-worth template
// spreadsheet, shares it with the caller and connects it to their settings.
func (h *SyncHandler) HandleCreateNetWorthSheet(w http.ResponseWriter, r *http.Request) {
	h.createTemplate(w, r, false)
}

func (h *SyncHandler) HandleCreateCreditCardsSheet(w http.ResponseWriter, r *http.Request) {
	h.createTemplate(w, r, true)
}

func (h *SyncHandler) createTemplate(w http.ResponseWriter, r *http.Request, creditCards bool) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "authentication required", http.StatusUnauthorized)
		return
	}
	email := GetUserEmailFromContext(r.Context())
	if email == "" {
		utils.SendJSONError(w, "An email address is required to share the spreadsheet", http.StatusBadRequest)
		return
	}

	var info *services.SpreadsheetInfo
	var err error
	if creditCards {
		info, err = h.source.CreateCreditCardsTemplate(r.Context(), email)
	} else {
		info, err = h.source.CreateNetWorthTemplate(r.Context(), email)
	}
	if err != nil {
		logger.L.Error("Template spreadsheet creation failed",
			"userID", userID, "creditCards", creditCards, "error", err)
		utils.SendJSONError(w, "Failed to create spreadsheet", http.StatusInternalServerError)
		return
	}

	form := models.SettingsFormData{}
	if creditCards {
		form.CreditCardsSheetID = &info.SpreadsheetID
	} else {
		form.GoogleSheetID = &info.SpreadsheetID
	}
	if _, err := model.SaveUserSettings(h.db, userID, form); err != nil {
		logger.L.Error("Failed to connect created spreadsheet",
			"userID", userID, "spreadsheetID", info.SpreadsheetID, "error", err)
		utils.SendJSONError(w, "Spreadsheet created but could not be saved to settings", http.StatusInternalServerError)
		return
	}

	utils.SendJSON(w, http.StatusCreated, map[string]any{"data": info})
}
