// backend/src/model/networth.go
package model

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/username/wealthtrack/backend/src/models"
)

var (
	ErrNotFound      = errors.New("record not found")
	ErrDuplicateDate = errors.New("entry for this date already exists")
)

// Execer lets the write helpers run against either *sql.DB or *sql.Tx.
type Execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

const netWorthColumns = `id, user_id, date, stocks, bonds, cash, real_estate,
	points_value, other_assets, total_debts, notes, created_at, updated_at`

func scanNetWorthEntry(row interface{ Scan(...any) error }) (*models.NetWorthEntry, error) {
	var e models.NetWorthEntry
	var notes sql.NullString
	err := row.Scan(&e.ID, &e.UserID, &e.Date, &e.Stocks, &e.Bonds, &e.Cash,
		&e.RealEstate, &e.PointsValue, &e.OtherAssets, &e.TotalDebts, &notes,
		&e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if notes.Valid {
		e.Notes = &notes.String
	}
	return &e, nil
}

// ListNetWorthEntries returns all of a user's snapshots, newest first.
func ListNetWorthEntries(db *sql.DB, userID string) ([]models.NetWorthEntry, error) {
	rows, err := db.Query(`SELECT `+netWorthColumns+`
		FROM net_worth_entries WHERE user_id = ? ORDER BY date DESC, id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []models.NetWorthEntry{}
	for rows.Next() {
		e, err := scanNetWorthEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

func GetNetWorthEntry(db *sql.DB, userID string, id int64) (*models.NetWorthEntry, error) {
	e, err := scanNetWorthEntry(db.QueryRow(`SELECT `+netWorthColumns+`
		FROM net_worth_entries WHERE id = ? AND user_id = ?`, id, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return e, err
}

// CreateNetWorthEntry inserts a new snapshot. A second snapshot on the same
// date for the same user violates the composite key and maps to
// ErrDuplicateDate; conflict-tolerant writes go through UpsertNetWorthEntry.
func CreateNetWorthEntry(db *sql.DB, userID string, form models.NetWorthFormData) (*models.NetWorthEntry, error) {
	now := time.Now().UTC()
	res, err := db.Exec(`
		INSERT INTO net_worth_entries
			(user_id, date, stocks, bonds, cash, real_estate, points_value,
			 other_assets, total_debts, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		userID, form.Date, form.Stocks, form.Bonds, form.Cash, form.RealEstate,
		form.PointsValue, form.OtherAssets, form.TotalDebts, nullString(form.Notes), now, now)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateDate
		}
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return GetNetWorthEntry(db, userID, id)
}

// UpdateNetWorthEntry overwrites every editable field of a snapshot the user
// owns. Moving it onto an already-taken date maps to ErrDuplicateDate.
func UpdateNetWorthEntry(db *sql.DB, userID string, id int64, form models.NetWorthFormData) (*models.NetWorthEntry, error) {
	res, err := db.Exec(`
		UPDATE net_worth_entries
		SET date = ?, stocks = ?, bonds = ?, cash = ?, real_estate = ?,
		    points_value = ?, other_assets = ?, total_debts = ?, notes = ?, updated_at = ?
		WHERE id = ? AND user_id = ?`,
		form.Date, form.Stocks, form.Bonds, form.Cash, form.RealEstate,
		form.PointsValue, form.OtherAssets, form.TotalDebts, nullString(form.Notes),
		time.Now().UTC(), id, userID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateDate
		}
		return nil, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrNotFound
	}
	return GetNetWorthEntry(db, userID, id)
}

func DeleteNetWorthEntry(db *sql.DB, userID string, id int64) error {
	res, err := db.Exec(`DELETE FROM net_worth_entries WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// UpsertNetWorthEntry writes one normalized sheet row keyed on (user_id,
// date): an existing snapshot for that date is overwritten in full, otherwise
// the row is inserted. The conflict is resolved by the storage layer, not by
// a read-then-branch check.
func UpsertNetWorthEntry(db Execer, userID string, row models.SheetRow) error {
	now := time.Now().UTC()
	_, err := db.Exec(`
		INSERT INTO net_worth_entries
			(user_id, date, stocks, bonds, cash, real_estate, points_value,
			 other_assets, total_debts, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id, date) DO UPDATE SET
			stocks = excluded.stocks,
			bonds = excluded.bonds,
			cash = excluded.cash,
			real_estate = excluded.real_estate,
			points_value = excluded.points_value,
			other_assets = excluded.other_assets,
			total_debts = excluded.total_debts,
			notes = excluded.notes,
			updated_at = excluded.updated_at`,
		userID, row.Date, row.Stocks, row.Bonds, row.Cash, row.RealEstate,
		row.PointsValue, row.OtherAssets, row.TotalDebts, nullString(row.Notes), now, now)
	return err
}
