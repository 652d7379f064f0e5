// backend/src/model/creditcard.go
package model

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/username/wealthtrack/backend/src/models"
)

const creditCardColumns = `id, user_id, card_name, last_four, status,
	signup_bonus, sub_requirement, current_spend, sub_deadline, got_bonus,
	annual_fee, signup_date, annual_fee_date, close_date, notes, created_at, updated_at`

func scanCreditCard(row interface{ Scan(...any) error }) (*models.CreditCard, error) {
	var c models.CreditCard
	var lastFour, signupBonus, subDeadline, signupDate, annualFeeDate, closeDate, notes sql.NullString
	var subRequirement sql.NullFloat64
	err := row.Scan(&c.ID, &c.UserID, &c.CardName, &lastFour, &c.Status,
		&signupBonus, &subRequirement, &c.CurrentSpend, &subDeadline, &c.GotBonus,
		&c.AnnualFee, &signupDate, &annualFeeDate, &closeDate, &notes,
		&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if lastFour.Valid {
		c.LastFour = &lastFour.String
	}
	if signupBonus.Valid {
		c.SignupBonus = &signupBonus.String
	}
	if subRequirement.Valid {
		c.SubRequirement = &subRequirement.Float64
	}
	if subDeadline.Valid {
		c.SubDeadline = &subDeadline.String
	}
	if signupDate.Valid {
		c.SignupDate = &signupDate.String
	}
	if annualFeeDate.Valid {
		c.AnnualFeeDate = &annualFeeDate.String
	}
	if closeDate.Valid {
		c.CloseDate = &closeDate.String
	}
	if notes.Valid {
		c.Notes = &notes.String
	}
	return &c, nil
}

// ListCreditCards returns all of a user's cards, newest first.
func ListCreditCards(db *sql.DB, userID string) ([]models.CreditCard, error) {
	rows, err := db.Query(`SELECT `+creditCardColumns+`
		FROM credit_cards WHERE user_id = ? ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cards := []models.CreditCard{}
	for rows.Next() {
		c, err := scanCreditCard(rows)
		if err != nil {
			return nil, err
		}
		cards = append(cards, *c)
	}
	return cards, rows.Err()
}

func GetCreditCard(db *sql.DB, userID, id string) (*models.CreditCard, error) {
	c, err := scanCreditCard(db.QueryRow(`SELECT `+creditCardColumns+`
		FROM credit_cards WHERE id = ? AND user_id = ?`, id, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return c, err
}

func nullFloat(f float64) any {
	if f == 0 {
		return nil
	}
	return f
}

func formStatus(s string) models.CreditCardStatus {
	switch models.CreditCardStatus(s) {
	case models.StatusPending, models.StatusClosed:
		return models.CreditCardStatus(s)
	}
	return models.StatusActive
}

func CreateCreditCard(db *sql.DB, userID string, form models.CreditCardFormData) (*models.CreditCard, error) {
	now := time.Now().UTC()
	id := uuid.New().String()
	_, err := db.Exec(`
		INSERT INTO credit_cards
			(id, user_id, card_name, last_four, status, signup_bonus,
			 sub_requirement, current_spend, sub_deadline, got_bonus, annual_fee,
			 signup_date, annual_fee_date, close_date, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, userID, form.CardName, nullString(form.LastFour), formStatus(form.Status),
		nullString(form.SignupBonus), nullFloat(form.SubRequirement), form.CurrentSpend,
		nullString(form.SubDeadline), form.GotBonus, form.AnnualFee,
		nullString(form.SignupDate), nullString(form.AnnualFeeDate),
		nullString(form.CloseDate), nullString(form.Notes), now, now)
	if err != nil {
		return nil, err
	}
	return GetCreditCard(db, userID, id)
}

func UpdateCreditCard(db *sql.DB, userID, id string, form models.CreditCardFormData) (*models.CreditCard, error) {
	res, err := db.Exec(`
		UPDATE credit_cards
		SET card_name = ?, last_four = ?, status = ?, signup_bonus = ?,
		    sub_requirement = ?, current_spend = ?, sub_deadline = ?, got_bonus = ?,
		    annual_fee = ?, signup_date = ?, annual_fee_date = ?, close_date = ?,
		    notes = ?, updated_at = ?
		WHERE id = ? AND user_id = ?`,
		form.CardName, nullString(form.LastFour), formStatus(form.Status),
		nullString(form.SignupBonus), nullFloat(form.SubRequirement), form.CurrentSpend,
		nullString(form.SubDeadline), form.GotBonus, form.AnnualFee,
		nullString(form.SignupDate), nullString(form.AnnualFeeDate),
		nullString(form.CloseDate), nullString(form.Notes), time.Now().UTC(), id, userID)
	if err != nil {
		return nil, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrNotFound
	}
	return GetCreditCard(db, userID, id)
}

func DeleteCreditCard(db *sql.DB, userID, id string) error {
	res, err := db.Exec(`DELETE FROM credit_cards WHERE id = ? AND user_id = ?`, id, userID)
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

// ReplaceCreditCards swaps the user's entire card set for the freshly
// normalized sheet rows. Delete and insert run inside one transaction so a
// failed insert can never leave the user with zero cards.
func ReplaceCreditCards(db *sql.DB, userID string, rows []models.CreditCardSheetRow) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin credit card replace: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM credit_cards WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("delete existing credit cards: %w", err)
	}

	now := time.Now().UTC()
	for _, row := range rows {
		_, err := tx.Exec(`
			INSERT INTO credit_cards
				(id, user_id, card_name, last_four, status, signup_bonus,
				 sub_requirement, current_spend, sub_deadline, got_bonus, annual_fee,
				 signup_date, annual_fee_date, close_date, notes, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			uuid.New().String(), userID, row.CardName, nullString(row.LastFour),
			row.Status, nullString(row.SignupBonus), nullFloat(row.SubRequirement),
			row.CurrentSpend, nullString(row.SubDeadline), row.GotBonus, row.AnnualFee,
			nullString(row.SignupDate), nullString(row.AnnualFeeDate),
			nullString(row.CloseDate), nullString(row.Notes), now, now)
		if err != nil {
			return fmt.Errorf("insert credit card %q: %w", row.CardName, err)
		}
	}

	return tx.Commit()
}
