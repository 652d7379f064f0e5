// backend/src/handlers/dashboard_handler.go
package handlers

import (
	"net/http"
	"time"

	"github.com/username/wealthtrack/backend/src/logger"
	"github.com/username/wealthtrack/backend/src/services"
	"github.com/username/wealthtrack/backend/src/utils"
)

type DashboardHandler struct {
	dashboard services.DashboardService
}

func NewDashboardHandler(dashboard services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// HandleGetDashboard serves the net-worth dashboard. Query parameters:
// preset (named window, wins over from/to), from and to (inclusive
// YYYY-MM-DD bounds) and chartRange (3m, 6m, 1y, all).
func (h *DashboardHandler) HandleGetDashboard(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	q := r.URL.Query()
	summary, err := h.dashboard.GetDashboard(userID,
		q.Get("preset"), q.Get("from"), q.Get("to"), q.Get("chartRange"), time.Now())
	if err != nil {
		logger.L.Error("Failed to build dashboard", "userID", userID, "error", err)
		utils.SendJSONError(w, "Failed to build dashboard", http.StatusInternalServerError)
		return
	}
	utils.SendJSON(w, http.StatusOK, map[string]any{"data": summary})
}

// HandleGetCardSummary serves per-card signup-bonus progress and deadline
// urgency.
func (h *DashboardHandler) HandleGetCardSummary(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	statuses, err := h.dashboard.GetCardStatuses(userID, time.Now())
	if err != nil {
		logger.L.Error("Failed to evaluate card statuses", "userID", userID, "error", err)
		utils.SendJSONError(w, "Failed to evaluate cards", http.StatusInternalServerError)
		return
	}
	utils.SendJSON(w, http.StatusOK, map[string]any{"data": statuses})
}
