// backend/src/models/creditcard.go
package models

import "time"

type CreditCardStatus string

const (
	StatusActive  CreditCardStatus = "active"
	StatusPending CreditCardStatus = "pending"
	StatusClosed  CreditCardStatus = "closed"
)

// CreditCard is one tracked card instance. It has no natural key; the sync
// path treats the external sheet as the sole source of truth and replaces the
// whole set, so the id is regenerated on every sync.
type CreditCard struct {
	ID             string           `json:"id"`
	UserID         string           `json:"user_id"`
	CardName       string           `json:"card_name"`
	LastFour       *string          `json:"last_four"`
	Status         CreditCardStatus `json:"status"`
	SignupBonus    *string          `json:"signup_bonus"`
	SubRequirement *float64         `json:"sub_requirement"`
	CurrentSpend   float64          `json:"current_spend"`
	SubDeadline    *string          `json:"sub_deadline"` // YYYY-MM-DD
	GotBonus       bool             `json:"got_bonus"`
	AnnualFee      float64          `json:"annual_fee"`
	SignupDate     *string          `json:"signup_date"`
	AnnualFeeDate  *string          `json:"annual_fee_date"`
	CloseDate      *string          `json:"close_date"`
	Notes          *string          `json:"notes"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// CreditCardFormData is the request body for creating or editing a card.
type CreditCardFormData struct {
	CardName       string  `json:"card_name"`
	LastFour       string  `json:"last_four"`
	Status         string  `json:"status"`
	SignupBonus    string  `json:"signup_bonus"`
	SubRequirement float64 `json:"sub_requirement"`
	CurrentSpend   float64 `json:"current_spend"`
	SubDeadline    string  `json:"sub_deadline"`
	GotBonus       bool    `json:"got_bonus"`
	AnnualFee      float64 `json:"annual_fee"`
	SignupDate     string  `json:"signup_date"`
	AnnualFeeDate  string  `json:"annual_fee_date"`
	CloseDate      string  `json:"close_date"`
	Notes          string  `json:"notes"`
}

// CreditCardSheetRow is a normalized credit-card row from the external
// spreadsheet. Optional date cells that were empty stay empty here.
type CreditCardSheetRow struct {
	CardName       string
	LastFour       string
	Status         CreditCardStatus
	SignupBonus    string
	SubRequirement float64
	CurrentSpend   float64
	SubDeadline    string
	GotBonus       bool
	AnnualFee      float64
	SignupDate     string
	AnnualFeeDate  string
	CloseDate      string
	Notes          string
}
