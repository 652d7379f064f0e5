// backend/src/model/networth_test.go
package model

import (
	"database/sql"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/username/wealthtrack/backend/src/models"
)

var testDBSeq int

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	testDBSeq++
	dsn := fmt.Sprintf("file:modeltest%d?mode=memory&cache=shared", testDBSeq)
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
		);`)
	require.NoError(t, err)
	return db
}

func TestCreateNetWorthEntry_DuplicateDate(t *testing.T) {
	db := setupTestDB(t)

	first, err := CreateNetWorthEntry(db, "user1", models.NetWorthFormData{Date: "2025-03-01", Stocks: 100})
	require.NoError(t, err)
	require.NotNil(t, first)

	// A second snapshot on the same date for the same user is a conflict, not
	// an overwrite.
	_, err = CreateNetWorthEntry(db, "user1", models.NetWorthFormData{Date: "2025-03-01", Stocks: 200})
	assert.ErrorIs(t, err, ErrDuplicateDate)

	entries, err := ListNetWorthEntries(db, "user1")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 100.0, entries[0].Stocks)

	// The date is only taken per user.
	_, err = CreateNetWorthEntry(db, "user2", models.NetWorthFormData{Date: "2025-03-01"})
	assert.NoError(t, err)
}

func TestUpdateNetWorthEntry_OntoTakenDate(t *testing.T) {
	db := setupTestDB(t)

	_, err := CreateNetWorthEntry(db, "user1", models.NetWorthFormData{Date: "2025-03-01"})
	require.NoError(t, err)
	second, err := CreateNetWorthEntry(db, "user1", models.NetWorthFormData{Date: "2025-03-02"})
	require.NoError(t, err)

	_, err = UpdateNetWorthEntry(db, "user1", second.ID, models.NetWorthFormData{Date: "2025-03-01"})
	assert.ErrorIs(t, err, ErrDuplicateDate)

	// Keeping its own date still works.
	updated, err := UpdateNetWorthEntry(db, "user1", second.ID, models.NetWorthFormData{Date: "2025-03-02", Cash: 500})
	require.NoError(t, err)
	assert.Equal(t, 500.0, updated.Cash)
}

func TestUpdateNetWorthEntry_NotFound(t *testing.T) {
	db := setupTestDB(t)

	_, err := UpdateNetWorthEntry(db, "user1", 42, models.NetWorthFormData{Date: "2025-03-01"})
	assert.ErrorIs(t, err, ErrNotFound)

	// Another user's entry is invisible, not updatable.
	entry, err := CreateNetWorthEntry(db, "user2", models.NetWorthFormData{Date: "2025-03-01"})
	require.NoError(t, err)
	_, err = UpdateNetWorthEntry(db, "user1", entry.ID, models.NetWorthFormData{Date: "2025-03-05"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpsertNetWorthEntry_OverwritesExistingDate(t *testing.T) {
	db := setupTestDB(t)

	created, err := CreateNetWorthEntry(db, "user1", models.NetWorthFormData{Date: "2025-03-01", Stocks: 100})
	require.NoError(t, err)

	err = UpsertNetWorthEntry(db, "user1", models.SheetRow{Date: "2025-03-01", Stocks: 250, Notes: "synced"})
	require.NoError(t, err)

	entries, err := ListNetWorthEntries(db, "user1")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, created.ID, entries[0].ID)
	assert.Equal(t, 250.0, entries[0].Stocks)
}
