// backend/src/handlers/networth_handler.go
package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/username/wealthtrack/backend/src/logger"
	"github.com/username/wealthtrack/backend/src/model"
	"github.com/username/wealthtrack/backend/src/models"
	"github.com/username/wealthtrack/backend/src/security/validation"
	"github.com/username/wealthtrack/backend/src/services"
	"github.com/username/wealthtrack/backend/src/utils"
)

type NetWorthHandler struct {
	db        *sql.DB
	dashboard services.DashboardService
}

func NewNetWorthHandler(db *sql.DB, dashboard services.DashboardService) *NetWorthHandler {
	return &NetWorthHandler{db: db, dashboard: dashboard}
}

func (h *NetWorthHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	entries, err := model.ListNetWorthEntries(h.db, userID)
	if err != nil {
		logger.L.Error("Failed to list net worth entries", "userID", userID, "error", err)
		utils.SendJSONError(w, "Failed to fetch entries", http.StatusInternalServerError)
		return
	}
	utils.SendJSON(w, http.StatusOK, map[string]any{"data": entries})
}

func validateNetWorthForm(form *models.NetWorthFormData) error {
	if err := validation.ValidateStringNotEmpty(form.Date, "date"); err != nil {
		return err
	}
	if err := validation.ValidateDateString(form.Date, "date"); err != nil {
		return err
	}
	for _, v := range []struct {
		value float64
		name  string
	}{
		{form.Stocks, "stocks"},
		{form.Bonds, "bonds"},
		{form.Cash, "cash"},
		{form.RealEstate, "real_estate"},
		{form.PointsValue, "points_value"},
		{form.OtherAssets, "other_assets"},
		{form.TotalDebts, "total_debts"},
	} {
		if err := validation.ValidateNonNegative(v.value, v.name); err != nil {
			return err
		}
	}
	if err := validation.ValidateStringMaxLength(form.Notes, validation.MaxNotesLength, "notes"); err != nil {
		return err
	}
	form.Notes = validation.SanitizeText(form.Notes)
	return nil
}

func (h *NetWorthHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	var form models.NetWorthFormData
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		utils.SendJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := validateNetWorthForm(&form); err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	entry, err := model.CreateNetWorthEntry(h.db, userID, form)
	if err != nil {
		if errors.Is(err, model.ErrDuplicateDate) {
			utils.SendJSONError(w, "An entry for this date already exists", http.StatusConflict)
			return
		}
		logger.L.Error("Failed to create net worth entry", "userID", userID, "error", err)
		utils.SendJSONError(w, "Failed to create entry", http.StatusInternalServerError)
		return
	}

	h.dashboard.InvalidateUserCache(userID)
	utils.SendJSON(w, http.StatusCreated, map[string]any{"data": entry})
}

func entryIDFromURL(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func (h *NetWorthHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "authentication required", http.StatusUnauthorized)
		return
	}
	id, err := entryIDFromURL(r)
	if err != nil {
		utils.SendJSONError(w, "Invalid entry ID", http.StatusBadRequest)
		return
	}

	var form models.NetWorthFormData
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		utils.SendJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := validateNetWorthForm(&form); err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	entry, err := model.UpdateNetWorthEntry(h.db, userID, id, form)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrNotFound):
			utils.SendJSONError(w, "Entry not found", http.StatusNotFound)
		case errors.Is(err, model.ErrDuplicateDate):
			utils.SendJSONError(w, "An entry for this date already exists", http.StatusConflict)
		default:
			logger.L.Error("Failed to update net worth entry", "userID", userID, "entryID", id, "error", err)
			utils.SendJSONError(w, "Failed to update entry", http.StatusInternalServerError)
		}
		return
	}

	h.dashboard.InvalidateUserCache(userID)
	utils.SendJSON(w, http.StatusOK, map[string]any{"data": entry})
}

func (h *NetWorthHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "authentication required", http.StatusUnauthorized)
		return
	}
	id, err := entryIDFromURL(r)
	if err != nil {
		utils.SendJSONError(w, "Invalid entry ID", http.StatusBadRequest)
		return
	}

	if err := model.DeleteNetWorthEntry(h.db, userID, id); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			utils.SendJSONError(w, "Entry not found", http.StatusNotFound)
			return
		}
		logger.L.Error("Failed to delete net worth entry", "userID", userID, "entryID", id, "error", err)
		utils.SendJSONError(w, "Failed to delete entry", http.StatusInternalServerError)
		return
	}

	h.dashboard.InvalidateUserCache(userID)
	w.WriteHeader(http.StatusNoContent)
}
