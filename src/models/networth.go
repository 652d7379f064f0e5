// backend/src/models/networth.go
package models

import (
	"encoding/json"
	"time"
)

// NetWorthEntry is one dated snapshot of a user's asset/liability composition.
// There is exactly one entry per (user_id, date); the storage layer enforces it.
type NetWorthEntry struct {
	ID          int64     `json:"id"`
	UserID      string    `json:"user_id"`
	Date        string    `json:"date"` // YYYY-MM-DD
	Stocks      float64   `json:"stocks"`
	Bonds       float64   `json:"bonds"`
	Cash        float64   `json:"cash"`
	RealEstate  float64   `json:"real_estate"`
	PointsValue float64   `json:"points_value"`
	OtherAssets float64   `json:"other_assets"`
	TotalDebts  float64   `json:"total_debts"`
	Notes       *string   `json:"notes"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TotalAssets is always recomputed from the six categories, never stored.
func (e *NetWorthEntry) TotalAssets() float64 {
	return e.Stocks + e.Bonds + e.Cash + e.RealEstate + e.PointsValue + e.OtherAssets
}

func (e *NetWorthEntry) NetWorth() float64 {
	return e.TotalAssets() - e.TotalDebts
}

// MarshalJSON adds the derived totals so clients never see a snapshot whose
// total_assets disagrees with its categories.
func (e NetWorthEntry) MarshalJSON() ([]byte, error) {
	type alias NetWorthEntry
	return json.Marshal(struct {
		alias
		TotalAssets float64 `json:"total_assets"`
		NetWorth    float64 `json:"net_worth"`
	}{
		alias:       alias(e),
		TotalAssets: e.TotalAssets(),
		NetWorth:    e.NetWorth(),
	})
}

// NetWorthFormData is the request body for creating or editing an entry.
type NetWorthFormData struct {
	Date        string  `json:"date"`
	Stocks      float64 `json:"stocks"`
	Bonds       float64 `json:"bonds"`
	Cash        float64 `json:"cash"`
	RealEstate  float64 `json:"real_estate"`
	PointsValue float64 `json:"points_value"`
	OtherAssets float64 `json:"other_assets"`
	TotalDebts  float64 `json:"total_debts"`
	Notes       string  `json:"notes"`
}

// SheetRow is a normalized net-worth row pulled from the external spreadsheet.
type SheetRow struct {
	Date        string
	Stocks      float64
	Bonds       float64
	Cash        float64
	RealEstate  float64
	PointsValue float64
	OtherAssets float64
	TotalDebts  float64
	Notes       string
}
