// backend/src/models/settings.go
package models

import "time"

// UserSettings holds the external sheet identifiers and last-sync timestamps
// for each of the two sync sources. One row per user, upserted on save.
type UserSettings struct {
	UserID                string     `json:"user_id"`
	GoogleSheetID         *string    `json:"google_sheet_id"`
	CreditCardsSheetID    *string    `json:"credit_cards_sheet_id"`
	LastSyncAt            *time.Time `json:"last_sync_at"`
	CreditCardsLastSyncAt *time.Time `json:"credit_cards_last_sync_at"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
}

// SettingsFormData carries a partial settings update. Only fields present in
// the request body are applied; an explicit empty string clears the value.
type SettingsFormData struct {
	GoogleSheetID      *string `json:"google_sheet_id"`
	CreditCardsSheetID *string `json:"credit_cards_sheet_id"`
}
