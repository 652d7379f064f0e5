// backend/src/model/settings.go
package model

import (
	"database/sql"
	"errors"
	"time"

	"github.com/username/wealthtrack/backend/src/models"
)

// GetUserSettings returns the user's settings row, or nil when none has been
// saved yet (that is not an error; the caller decides what missing means).
func GetUserSettings(db *sql.DB, userID string) (*models.UserSettings, error) {
	var s models.UserSettings
	var sheetID, ccSheetID sql.NullString
	var lastSync, ccLastSync sql.NullTime
	err := db.QueryRow(`
		SELECT user_id, google_sheet_id, credit_cards_sheet_id,
		       last_sync_at, credit_cards_last_sync_at, created_at, updated_at
		FROM user_settings WHERE user_id = ?`, userID).
		Scan(&s.UserID, &sheetID, &ccSheetID, &lastSync, &ccLastSync, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if sheetID.Valid {
		s.GoogleSheetID = &sheetID.String
	}
	if ccSheetID.Valid {
		s.CreditCardsSheetID = &ccSheetID.String
	}
	if lastSync.Valid {
		t := lastSync.Time
		s.LastSyncAt = &t
	}
	if ccLastSync.Valid {
		t := ccLastSync.Time
		s.CreditCardsLastSyncAt = &t
	}
	return &s, nil
}

// SaveUserSettings upserts the sheet identifiers, touching only the fields
// present in the form. An explicit empty string disconnects a sheet.
func SaveUserSettings(db *sql.DB, userID string, form models.SettingsFormData) (*models.UserSettings, error) {
	now := time.Now().UTC()
	if _, err := db.Exec(`
		INSERT INTO user_settings (user_id, created_at, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET updated_at = excluded.updated_at`,
		userID, now, now); err != nil {
		return nil, err
	}

	if form.GoogleSheetID != nil {
		if _, err := db.Exec(`UPDATE user_settings SET google_sheet_id = ? WHERE user_id = ?`,
			nullString(*form.GoogleSheetID), userID); err != nil {
			return nil, err
		}
	}
	if form.CreditCardsSheetID != nil {
		if _, err := db.Exec(`UPDATE user_settings SET credit_cards_sheet_id = ? WHERE user_id = ?`,
			nullString(*form.CreditCardsSheetID), userID); err != nil {
			return nil, err
		}
	}
	return GetUserSettings(db, userID)
}

// TouchLastSync records a completed sync of one of the two sources. It runs
// even after a partially failed net-worth batch, matching the sync contract.
func TouchLastSync(db *sql.DB, userID string, creditCards bool) error {
	column := "last_sync_at"
	if creditCards {
		column = "credit_cards_last_sync_at"
	}
	now := time.Now().UTC()
	_, err := db.Exec(`
		INSERT INTO user_settings (user_id, `+column+`, created_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			`+column+` = excluded.`+column+`,
			updated_at = excluded.updated_at`,
		userID, now, now, now)
	return err
}
