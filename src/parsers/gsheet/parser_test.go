// backend/src/parsers/gsheet/parser_test.go
package gsheet

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/username/wealthtrack/backend/src/models"
)

func TestParseDate(t *testing.T) {
	today := time.Now().Format(DateLayout)

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"iso", "2024-03-15", "2024-03-15"},
		{"slash ymd", "2024/03/15", "2024-03-15"},
		{"us slashes", "3/5/2024", "2024-03-05"},
		{"us slashes padded", "12/31/2023", "2023-12-31"},
		{"long form", "January 2, 2024", "2024-01-02"},
		{"short month", "Jan 2, 2024", "2024-01-02"},
		{"empty falls back to today", "", today},
		{"garbage falls back to today", "not a date", today},
		{"whitespace only", "   ", today},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseDate(tt.raw))
		})
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
	}{
		{"$1,234.50", 1234.50},
		{"1234.5", 1234.5},
		{"  $ 99 ", 99},
		{"€2,000", 2000},
		{"-150.25", -150.25},
		{"", 0},
		{"abc", 0},
		{"$", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseNumber(tt.raw), "ParseNumber(%q)", tt.raw)
	}
}

func TestParseBoolean(t *testing.T) {
	assert.True(t, ParseBoolean("true"))
	assert.True(t, ParseBoolean("TRUE"))
	assert.True(t, ParseBoolean("YES"))
	assert.True(t, ParseBoolean(" 1 "))
	assert.False(t, ParseBoolean("0"))
	assert.False(t, ParseBoolean("no"))
	assert.False(t, ParseBoolean(""))
	assert.False(t, ParseBoolean("truthy"))
}

func TestParseStatus(t *testing.T) {
	assert.Equal(t, models.StatusPending, ParseStatus("PENDING"))
	assert.Equal(t, models.StatusClosed, ParseStatus(" closed "))
	assert.Equal(t, models.StatusActive, ParseStatus("active"))
	assert.Equal(t, models.StatusActive, ParseStatus(""))
	assert.Equal(t, models.StatusActive, ParseStatus("bogus"))
}

func TestNormalizeNetWorthRows(t *testing.T) {
	rows := [][]string{
		{"2024-01-01", "$50,000", "10000", "15000", "0", "5000", "0", "2500", "start of year"},
		{"", "1", "2", "3"}, // no date: discarded
		{"2024-02-01"},      // short row: everything defaults
	}

	got := NormalizeNetWorthRows(rows)
	require.Len(t, got, 2)

	assert.Equal(t, models.SheetRow{
		Date:        "2024-01-01",
		Stocks:      50000,
		Bonds:       10000,
		Cash:        15000,
		PointsValue: 5000,
		TotalDebts:  2500,
		Notes:       "start of year",
	}, got[0])

	assert.Equal(t, "2024-02-01", got[1].Date)
	assert.Zero(t, got[1].Stocks)
	assert.Zero(t, got[1].TotalDebts)
	assert.Empty(t, got[1].Notes)
}

func TestNormalizeCreditCardRows(t *testing.T) {
	rows := [][]string{
		{"Chase Sapphire Preferred", "1234", "Active", "60,000 points", "$4,000", "$1,500", "2024-06-30", "FALSE", "95", "2024-01-15", "", "", "keep"},
		{"", "9999"}, // no card name: discarded
		{"Amex Gold", "", "bogus-status", "", "bad-number", "", "not a date", "yes", "", "", "", "", ""},
	}

	got := NormalizeCreditCardRows(rows)
	require.Len(t, got, 2)

	assert.Equal(t, models.CreditCardSheetRow{
		CardName:       "Chase Sapphire Preferred",
		LastFour:       "1234",
		Status:         models.StatusActive,
		SignupBonus:    "60,000 points",
		SubRequirement: 4000,
		CurrentSpend:   1500,
		SubDeadline:    "2024-06-30",
		GotBonus:       false,
		AnnualFee:      95,
		SignupDate:     "2024-01-15",
		Notes:          "keep",
	}, got[0])

	amex := got[1]
	assert.Equal(t, "Amex Gold", amex.CardName)
	assert.Equal(t, models.StatusActive, amex.Status)
	assert.Zero(t, amex.SubRequirement)
	assert.True(t, amex.GotBonus)
	// Garbage in a present deadline cell still falls back to today.
	assert.Equal(t, time.Now().Format(DateLayout), amex.SubDeadline)
	// Empty optional dates stay empty instead of defaulting to today.
	assert.Empty(t, amex.SignupDate)
	assert.Empty(t, amex.CloseDate)
}
