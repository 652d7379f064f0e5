// backend/src/services/sync_service_test.go
package services

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/username/wealthtrack/backend/src/model"
	"github.com/username/wealthtrack/backend/src/models"
)

var testDBSeq int

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	testDBSeq++
	dsn := fmt.Sprintf("file:synctest%d?mode=memory&cache=shared", testDBSeq)
	db, err := sql.Open("sqlite", dsn)
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`
		CREATE TABLE net_worth_entries (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id TEXT NOT NULL,
			date TEXT NOT NULL,
			stocks REAL NOT NULL DEFAULT 0,
			bonds REAL NOT NULL DEFAULT 0,
			cash REAL NOT NULL DEFAULT 0,
			real_estate REAL NOT NULL DEFAULT 0,
			points_value REAL NOT NULL DEFAULT 0,
			other_assets REAL NOT NULL DEFAULT 0,
			total_debts REAL NOT NULL DEFAULT 0,
			notes TEXT,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL,
			UNIQUE(user_id, date)
		);
		CREATE TABLE credit_cards (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			card_name TEXT NOT NULL,
			last_four TEXT,
			status TEXT NOT NULL DEFAULT 'active',
			signup_bonus TEXT,
			sub_requirement REAL,
			current_spend REAL NOT NULL DEFAULT 0,
			sub_deadline TEXT,
			got_bonus BOOLEAN NOT NULL DEFAULT 0,
			annual_fee REAL NOT NULL DEFAULT 0,
			signup_date TEXT,
			annual_fee_date TEXT,
			close_date TEXT,
			notes TEXT,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		);
		CREATE TABLE user_settings (
			user_id TEXT PRIMARY KEY,
			google_sheet_id TEXT,
			credit_cards_sheet_id TEXT,
			last_sync_at TIMESTAMP,
			credit_cards_last_sync_at TIMESTAMP,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		);`)
	require.NoError(t, err)
	return db
}

// fakeSheetSource serves canned rows keyed by sheet ID.
type fakeSheetSource struct {
	rows     map[string][][]string
	fetchErr error
	metaErr  error
}

func (f *fakeSheetSource) FetchRange(_ context.Context, sheetID, _ string) ([][]string, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.rows[sheetID], nil
}

func (f *fakeSheetSource) Metadata(_ context.Context, _ string) (*SheetMetadata, error) {
	if f.metaErr != nil {
		return nil, f.metaErr
	}
	return &SheetMetadata{Title: "Test Sheet"}, nil
}

func (f *fakeSheetSource) CreateNetWorthTemplate(context.Context, string) (*SpreadsheetInfo, error) {
	return nil, fmt.Errorf("not implemented")
}

func (f *fakeSheetSource) CreateCreditCardsTemplate(context.Context, string) (*SpreadsheetInfo, error) {
	return nil, fmt.Errorf("not implemented")
}

func newTestSync(t *testing.T, db *sql.DB, source SheetSource) SyncService {
	t.Helper()
	dash := NewDashboardService(db, cache.New(cache.NoExpiration, cache.NoExpiration))
	return NewSheetSyncService(db, source, dash, 1000)
}

func connectSheets(t *testing.T, db *sql.DB, userID, nwSheet, ccSheet string) {
	t.Helper()
	form := models.SettingsFormData{}
	if nwSheet != "" {
		form.GoogleSheetID = &nwSheet
	}
	if ccSheet != "" {
		form.CreditCardsSheetID = &ccSheet
	}
	_, err := model.SaveUserSettings(db, userID, form)
	require.NoError(t, err)
}

func TestSyncNetWorth_NoSheetConfigured(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestSync(t, db, &fakeSheetSource{})

	_, err := svc.SyncNetWorth(context.Background(), "user1")
	assert.ErrorIs(t, err, ErrNoSourceConfigured)
}

func TestSyncNetWorth_SheetUnreachable(t *testing.T) {
	db := setupTestDB(t)
	connectSheets(t, db, "user1", "sheet-nw", "")
	svc := newTestSync(t, db, &fakeSheetSource{metaErr: fmt.Errorf("403 forbidden")})

	_, err := svc.SyncNetWorth(context.Background(), "user1")
	assert.ErrorIs(t, err, ErrSourceUnreachable)
	assert.Contains(t, err.Error(), "403 forbidden")
}

func TestSyncNetWorth_EmptySheet(t *testing.T) {
	db := setupTestDB(t)
	connectSheets(t, db, "user1", "sheet-nw", "")
	source := &fakeSheetSource{rows: map[string][][]string{
		"sheet-nw": {{"", "100"}}, // blank date rows are skipped
	}}
	svc := newTestSync(t, db, source)

	_, err := svc.SyncNetWorth(context.Background(), "user1")
	assert.ErrorIs(t, err, ErrEmptySource)
}

func TestSyncNetWorth_UpsertIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	connectSheets(t, db, "user1", "sheet-nw", "")
	source := &fakeSheetSource{rows: map[string][][]string{
		"sheet-nw": {
			{"2025-01-15", "$50,000", "10000", "15000", "0", "5000", "0", "2000", "January"},
			{"2025-02-15", "52000", "10000", "15000", "0", "5000", "0", "1800", ""},
		},
	}}
	svc := newTestSync(t, db, source)

	result, err := svc.SyncNetWorth(context.Background(), "user1")
	require.NoError(t, err)
	assert.Equal(t, 2, result.Synced)
	assert.Equal(t, 0, result.Errors)
	assert.Equal(t, 2, result.Total)
	assert.Equal(t, "Test Sheet", result.SheetTitle)

	// A second sync of the same rows overwrites in place instead of piling up
	// duplicate dates.
	source.rows["sheet-nw"][0][1] = "55000"
	result, err = svc.SyncNetWorth(context.Background(), "user1")
	require.NoError(t, err)
	assert.Equal(t, 2, result.Synced)

	entries, err := model.ListNetWorthEntries(db, "user1")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "2025-02-15", entries[0].Date)
	assert.Equal(t, 55000.0, entries[1].Stocks)

	settings, err := model.GetUserSettings(db, "user1")
	require.NoError(t, err)
	require.NotNil(t, settings)
	assert.NotNil(t, settings.LastSyncAt)
	assert.Nil(t, settings.CreditCardsLastSyncAt)
}

func TestSyncNetWorth_DoesNotTouchOtherUsers(t *testing.T) {
	db := setupTestDB(t)
	connectSheets(t, db, "user1", "sheet-nw", "")
	_, err := model.CreateNetWorthEntry(db, "user2", models.NetWorthFormData{Date: "2025-01-15", Stocks: 999})
	require.NoError(t, err)

	source := &fakeSheetSource{rows: map[string][][]string{
		"sheet-nw": {{"2025-01-15", "100", "0", "0", "0", "0", "0", "0", ""}},
	}}
	svc := newTestSync(t, db, source)
	_, err = svc.SyncNetWorth(context.Background(), "user1")
	require.NoError(t, err)

	other, err := model.ListNetWorthEntries(db, "user2")
	require.NoError(t, err)
	require.Len(t, other, 1)
	assert.Equal(t, 999.0, other[0].Stocks)
}

func TestSyncCreditCards_FullReplace(t *testing.T) {
	db := setupTestDB(t)
	connectSheets(t, db, "user1", "", "sheet-cc")
	source := &fakeSheetSource{rows: map[string][][]string{
		"sheet-cc": {
			{"Sapphire Preferred", "1234", "active", "60k points", "$4,000", "1500", "2025-06-01", "no", "95", "2025-01-01", "", "", ""},
			{"Gold Card", "5678", "active", "", "6000", "6000", "2025-07-01", "yes", "250", "2025-02-01", "2026-02-01", "", "keep"},
			{"Old Card", "", "closed", "", "", "", "", "", "", "", "", "2024-12-31", ""},
		},
	}}
	svc := newTestSync(t, db, source)

	result, err := svc.SyncCreditCards(context.Background(), "user1")
	require.NoError(t, err)
	assert.Equal(t, 3, result.SyncedCount)
	require.Len(t, result.Cards, 3)

	firstIDs := make(map[string]bool)
	for _, c := range result.Cards {
		firstIDs[c.ID] = true
	}

	// A smaller sheet shrinks the stored set; nothing from the previous
	// generation survives, identities included.
	source.rows["sheet-cc"] = [][]string{
		{"Gold Card", "5678", "active", "", "6000", "6200", "2025-07-01", "yes", "250", "2025-02-01", "", "", ""},
	}
	result, err = svc.SyncCreditCards(context.Background(), "user1")
	require.NoError(t, err)
	assert.Equal(t, 1, result.SyncedCount)
	require.Len(t, result.Cards, 1)
	assert.Equal(t, "Gold Card", result.Cards[0].CardName)
	assert.False(t, firstIDs[result.Cards[0].ID])

	settings, err := model.GetUserSettings(db, "user1")
	require.NoError(t, err)
	assert.NotNil(t, settings.CreditCardsLastSyncAt)
	assert.Nil(t, settings.LastSyncAt)
}

func TestSyncCreditCards_EmptySheetClearsCards(t *testing.T) {
	db := setupTestDB(t)
	connectSheets(t, db, "user1", "", "sheet-cc")
	_, err := model.CreateCreditCard(db, "user1", models.CreditCardFormData{CardName: "Manual Card"})
	require.NoError(t, err)

	svc := newTestSync(t, db, &fakeSheetSource{rows: map[string][][]string{}})
	result, err := svc.SyncCreditCards(context.Background(), "user1")
	require.NoError(t, err)
	assert.Equal(t, 0, result.SyncedCount)
	assert.Empty(t, result.Cards)
}

func TestSyncCreditCards_NoSheetConfigured(t *testing.T) {
	db := setupTestDB(t)
	connectSheets(t, db, "user1", "sheet-nw", "") // net worth connected, cards not
	svc := newTestSync(t, db, &fakeSheetSource{})

	_, err := svc.SyncCreditCards(context.Background(), "user1")
	assert.ErrorIs(t, err, ErrNoSourceConfigured)
}

func TestSyncCreditCards_SanitizesFreeText(t *testing.T) {
	db := setupTestDB(t)
	connectSheets(t, db, "user1", "", "sheet-cc")
	source := &fakeSheetSource{rows: map[string][][]string{
		"sheet-cc": {
			{"<script>alert(1)</script>Amex", "", "active", "", "", "", "", "", "", "", "", "", "<b>bold</b> note"},
		},
	}}
	svc := newTestSync(t, db, source)

	result, err := svc.SyncCreditCards(context.Background(), "user1")
	require.NoError(t, err)
	require.Len(t, result.Cards, 1)
	assert.Equal(t, "Amex", result.Cards[0].CardName)
	require.NotNil(t, result.Cards[0].Notes)
	assert.Equal(t, "bold note", *result.Cards[0].Notes)
}
