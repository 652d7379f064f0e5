// backend/src/handlers/creditcard_handler.go
package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/username/wealthtrack/backend/src/logger"
	"github.com/username/wealthtrack/backend/src/model"
	"github.com/username/wealthtrack/backend/src/models"
	"github.com/username/wealthtrack/backend/src/security/validation"
	"github.com/username/wealthtrack/backend/src/utils"
)

type CreditCardHandler struct {
	db *sql.DB
}

func NewCreditCardHandler(db *sql.DB) *CreditCardHandler {
	return &CreditCardHandler{db: db}
}

func (h *CreditCardHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	cards, err := model.ListCreditCards(h.db, userID)
	if err != nil {
		logger.L.Error("Failed to list credit cards", "userID", userID, "error", err)
		utils.SendJSONError(w, "Failed to fetch credit cards", http.StatusInternalServerError)
		return
	}
	utils.SendJSON(w, http.StatusOK, map[string]any{"data": cards})
}

func (h *CreditCardHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "authentication required", http.StatusUnauthorized)
		return
	}
	id := chi.URLParam(r, "id")

	card, err := model.GetCreditCard(h.db, userID, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			utils.SendJSONError(w, "Credit card not found", http.StatusNotFound)
			return
		}
		logger.L.Error("Failed to fetch credit card", "userID", userID, "cardID", id, "error", err)
		utils.SendJSONError(w, "Failed to fetch credit card", http.StatusInternalServerError)
		return
	}
	utils.SendJSON(w, http.StatusOK, map[string]any{"data": card})
}

func validateCreditCardForm(form *models.CreditCardFormData) error {
	if err := validation.ValidateStringNotEmpty(form.CardName, "card_name"); err != nil {
		return err
	}
	if err := validation.ValidateStringMaxLength(form.CardName, validation.MaxCardNameLength, "card_name"); err != nil {
		return err
	}
	if err := validation.ValidateLastFour(form.LastFour); err != nil {
		return err
	}
	for _, d := range []struct{ value, name string }{
		{form.SubDeadline, "sub_deadline"},
		{form.SignupDate, "signup_date"},
		{form.AnnualFeeDate, "annual_fee_date"},
		{form.CloseDate, "close_date"},
	} {
		if err := validation.ValidateDateString(d.value, d.name); err != nil {
			return err
		}
	}
	for _, v := range []struct {
		value float64
		name  string
	}{
		{form.SubRequirement, "sub_requirement"},
		{form.CurrentSpend, "current_spend"},
		{form.AnnualFee, "annual_fee"},
	} {
		if err := validation.ValidateNonNegative(v.value, v.name); err != nil {
			return err
		}
	}
	if err := validation.ValidateStringMaxLength(form.Notes, validation.MaxNotesLength, "notes"); err != nil {
		return err
	}

	form.CardName = validation.SanitizeText(form.CardName)
	form.SignupBonus = validation.SanitizeText(form.SignupBonus)
	form.Notes = validation.SanitizeText(form.Notes)
	return nil
}

func (h *CreditCardHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	var form models.CreditCardFormData
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		utils.SendJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := validateCreditCardForm(&form); err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	card, err := model.CreateCreditCard(h.db, userID, form)
	if err != nil {
		logger.L.Error("Failed to create credit card", "userID", userID, "error", err)
		utils.SendJSONError(w, "Failed to create credit card", http.StatusInternalServerError)
		return
	}
	utils.SendJSON(w, http.StatusCreated, map[string]any{"data": card})
}

func (h *CreditCardHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "authentication required", http.StatusUnauthorized)
		return
	}
	id := chi.URLParam(r, "id")

	var form models.CreditCardFormData
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		utils.SendJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := validateCreditCardForm(&form); err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	card, err := model.UpdateCreditCard(h.db, userID, id, form)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			utils.SendJSONError(w, "Credit card not found", http.StatusNotFound)
			return
		}
		logger.L.Error("Failed to update credit card", "userID", userID, "cardID", id, "error", err)
		utils.SendJSONError(w, "Failed to update credit card", http.StatusInternalServerError)
		return
	}
	utils.SendJSON(w, http.StatusOK, map[string]any{"data": card})
}

func (h *CreditCardHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "authentication required", http.StatusUnauthorized)
		return
	}
	id := chi.URLParam(r, "id")

	if err := model.DeleteCreditCard(h.db, userID, id); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			utils.SendJSONError(w, "Credit card not found", http.StatusNotFound)
			return
		}
		logger.L.Error("Failed to delete credit card", "userID", userID, "cardID", id, "error", err)
		utils.SendJSONError(w, "Failed to delete credit card", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
