// backend/src/parsers/gsheet/parser.go
package gsheet

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/username/wealthtrack/backend/src/models"
)

// Every parser in this package is total: spreadsheet input is untrusted and
// partially malformed, and one bad cell must never abort a whole sync batch.
// Bad values degrade to defined defaults instead of errors.

const DateLayout = "2006-01-02"

// dateLayouts covers ISO and the locale-ish formats users actually type into
// sheet cells. MM/DD/YYYY is handled separately so short month/day parts
// still normalize.
var dateLayouts = []string{
	DateLayout,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006/01/02",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
}

// ParseDate converts a raw cell into a YYYY-MM-DD date string. Empty or
// unparseable input yields today's date.
func ParseDate(raw string) string {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Now().Format(DateLayout)
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format(DateLayout)
		}
	}

	// MM/DD/YYYY with possibly unpadded month/day.
	parts := strings.Split(value, "/")
	if len(parts) == 3 {
		candidate := fmt.Sprintf("%s-%s-%s", parts[2], pad2(parts[0]), pad2(parts[1]))
		if t, err := time.Parse(DateLayout, candidate); err == nil {
			return t.Format(DateLayout)
		}
	}

	return time.Now().Format(DateLayout)
}

func pad2(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}

var currencyReplacer = strings.NewReplacer(
	"$", "", "€", "", "£", "", ",", "", " ", "", "\t", "", " ", "",
)

// ParseNumber strips currency symbols, thousands separators and whitespace,
// then parses the remainder as a decimal. Empty or unparseable input yields 0.
func ParseNumber(raw string) float64 {
	cleaned := currencyReplacer.Replace(strings.TrimSpace(raw))
	if cleaned == "" {
		return 0
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0
	}
	return d.InexactFloat64()
}

// ParseBoolean treats "true", "yes" and "1" (any case) as true and anything
// else, including empty, as false.
func ParseBoolean(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "yes", "1":
		return true
	}
	return false
}

// ParseStatus recognizes "pending" and "closed" (any case); everything else
// defaults to active.
func ParseStatus(raw string) models.CreditCardStatus {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "pending":
		return models.StatusPending
	case "closed":
		return models.StatusClosed
	}
	return models.StatusActive
}

// cell returns the i-th cell of a possibly short row.
func cell(row []string, i int) string {
	if i < len(row) {
		return strings.TrimSpace(row[i])
	}
	return ""
}

// optionalDate parses a date cell that may legitimately be empty. The
// today-fallback of ParseDate only applies once we know the cell holds
// something; an empty Close Date stays empty instead of becoming today.
func optionalDate(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}
	return ParseDate(raw)
}

// NormalizeNetWorthRows maps raw sheet rows (header already excluded by the
// caller's range selection) to typed net-worth rows. A row is discarded only
// when its date cell is empty; every other field defaults via the parsers.
//
// Column order: Date, Stocks, Bonds, Cash, Real Estate, Points Value,
// Other Assets, Total Debts, Notes.
func NormalizeNetWorthRows(rows [][]string) []models.SheetRow {
	var out []models.SheetRow
	for _, row := range rows {
		if cell(row, 0) == "" {
			continue
		}
		out = append(out, models.SheetRow{
			Date:        ParseDate(cell(row, 0)),
			Stocks:      ParseNumber(cell(row, 1)),
			Bonds:       ParseNumber(cell(row, 2)),
			Cash:        ParseNumber(cell(row, 3)),
			RealEstate:  ParseNumber(cell(row, 4)),
			PointsValue: ParseNumber(cell(row, 5)),
			OtherAssets: ParseNumber(cell(row, 6)),
			TotalDebts:  ParseNumber(cell(row, 7)),
			Notes:       cell(row, 8),
		})
	}
	return out
}

// NormalizeCreditCardRows maps raw sheet rows to typed credit-card rows.
// A row is discarded only when its card-name cell is empty.
//
// Column order: Card Name, Last 4, Status, Signup Bonus, SUB Requirement,
// Current Spend, SUB Deadline, Got Bonus, Annual Fee, Signup Date,
// Annual Fee Date, Close Date, Notes.
func NormalizeCreditCardRows(rows [][]string) []models.CreditCardSheetRow {
	var out []models.CreditCardSheetRow
	for _, row := range rows {
		if cell(row, 0) == "" {
			continue
		}
		out = append(out, models.CreditCardSheetRow{
			CardName:       cell(row, 0),
			LastFour:       cell(row, 1),
			Status:         ParseStatus(cell(row, 2)),
			SignupBonus:    cell(row, 3),
			SubRequirement: ParseNumber(cell(row, 4)),
			CurrentSpend:   ParseNumber(cell(row, 5)),
			SubDeadline:    optionalDate(cell(row, 6)),
			GotBonus:       ParseBoolean(cell(row, 7)),
			AnnualFee:      ParseNumber(cell(row, 8)),
			SignupDate:     optionalDate(cell(row, 9)),
			AnnualFeeDate:  optionalDate(cell(row, 10)),
			CloseDate:      optionalDate(cell(row, 11)),
			Notes:          cell(row, 12),
		})
	}
	return out
}
