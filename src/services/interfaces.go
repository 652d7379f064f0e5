// backend/src/services/interfaces.go
package services

import (
	"context"
	"errors"
	"time"

	"github.com/username/wealthtrack/backend/src/models"
)

// Define common service errors
var (
	// ErrNoSourceConfigured: the user has not connected a sheet for this
	// sync source. Caller error, never retried.
	ErrNoSourceConfigured = errors.New("no sheet configured for this sync source")
	// ErrSourceUnreachable: the external sheet could not be read or its
	// identity could not be verified. The underlying reason is wrapped.
	ErrSourceUnreachable = errors.New("sheet source unreachable")
	// ErrEmptySource: normalization produced zero valid net-worth rows.
	ErrEmptySource = errors.New("no data found in the sheet")
)

// SheetMetadata identifies a reachable spreadsheet.
type SheetMetadata struct {
	Title string
}

// SpreadsheetInfo describes a freshly created template spreadsheet.
type SpreadsheetInfo struct {
	SpreadsheetID  string `json:"spreadsheetId"`
	SpreadsheetURL string `json:"spreadsheetUrl"`
}

// SheetSource is the external spreadsheet collaborator: a read source of raw
// string cells plus a template-creation write path.
type SheetSource interface {
	// FetchRange reads a rectangular cell range, header row excluded by the
	// caller's range selection.
	FetchRange(ctx context.Context, sheetID, rangeA1 string) ([][]string, error)
	// Metadata verifies the sheet is reachable and returns its title.
	Metadata(ctx context.Context, sheetID string) (*SheetMetadata, error)
	CreateNetWorthTemplate(ctx context.Context, userEmail string) (*SpreadsheetInfo, error)
	CreateCreditCardsTemplate(ctx context.Context, userEmail string) (*SpreadsheetInfo, error)
}

// NetWorthSyncResult reports a per-row upsert batch. Errors counts rows that
// failed individually; they never abort the batch.
type NetWorthSyncResult struct {
	Synced     int    `json:"synced"`
	Errors     int    `json:"errors"`
	Total      int    `json:"total"`
	SheetTitle string `json:"sheetTitle"`
}

// CreditCardSyncResult reports a full replace of the user's card set.
type CreditCardSyncResult struct {
	Cards       []models.CreditCard `json:"data"`
	SyncedCount int                 `json:"syncedCount"`
	SyncedAt    time.Time           `json:"syncedAt"`
}

// SyncService reconciles persisted records against the external sheets.
type SyncService interface {
	SyncNetWorth(ctx context.Context, userID string) (*NetWorthSyncResult, error)
	SyncCreditCards(ctx context.Context, userID string) (*CreditCardSyncResult, error)
}

// DashboardService builds the read-path view models.
type DashboardService interface {
	GetDashboard(userID, preset, from, to, chartRange string, now time.Time) (*models.DashboardSummary, error)
	GetCardStatuses(userID string, now time.Time) ([]models.CardStatus, error)
	// InvalidateUserCache drops the cached entry list after any write.
	InvalidateUserCache(userID string)
}
