// backend/src/services/sheets_service.go
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"golang.org/x/oauth2/google"

	"github.com/username/wealthtrack/backend/src/logger"
)

const (
	sheetsAPIBase = "https://sheets.googleapis.com/v4/spreadsheets"
	driveAPIBase  = "https://www.googleapis.com/drive/v3/files"

	scopeSheetsReadonly = "https://www.googleapis.com/auth/spreadsheets.readonly"
	scopeSheets         = "https://www.googleapis.com/auth/spreadsheets"
	scopeDrive          = "https://www.googleapis.com/auth/drive"
)

// googleSheetsService talks to the Google Sheets and Drive REST APIs with a
// service-account identity. Reads use a readonly-scoped client; template
// creation needs the full scopes.
type googleSheetsService struct {
	readClient          *http.Client
	fullClient          *http.Client
	serviceAccountEmail string
}

// NewGoogleSheetsService builds a SheetSource from a service-account key
// file. The service-account email is shared as a reader on every template it
// creates, so it can read the sheet back during later syncs.
func NewGoogleSheetsService(keyPath, serviceAccountEmail string, timeout time.Duration) (SheetSource, error) {
	key, err := os.ReadFile(keyPath)
	if err != nil {
		return nil, fmt.Errorf("reading service account key: %w", err)
	}

	readCfg, err := google.JWTConfigFromJSON(key, scopeSheetsReadonly)
	if err != nil {
		return nil, fmt.Errorf("parsing service account key: %w", err)
	}
	fullCfg, err := google.JWTConfigFromJSON(key, scopeSheets, scopeDrive)
	if err != nil {
		return nil, fmt.Errorf("parsing service account key: %w", err)
	}

	ctx := context.Background()
	readClient := readCfg.Client(ctx)
	readClient.Timeout = timeout
	fullClient := fullCfg.Client(ctx)
	fullClient.Timeout = timeout

	return &googleSheetsService{
		readClient:          readClient,
		fullClient:          fullClient,
		serviceAccountEmail: serviceAccountEmail,
	}, nil
}

// disabledSheetSource stands in when no service-account key is configured;
// every call fails with the same explanation.
type disabledSheetSource struct{}

func NewDisabledSheetSource() SheetSource { return disabledSheetSource{} }

var errSheetsDisabled = fmt.Errorf("google sheets integration is not configured on this server")

func (disabledSheetSource) FetchRange(context.Context, string, string) ([][]string, error) {
	return nil, errSheetsDisabled
}

func (disabledSheetSource) Metadata(context.Context, string) (*SheetMetadata, error) {
	return nil, errSheetsDisabled
}

func (disabledSheetSource) CreateNetWorthTemplate(context.Context, string) (*SpreadsheetInfo, error) {
	return nil, errSheetsDisabled
}

func (disabledSheetSource) CreateCreditCardsTemplate(context.Context, string) (*SpreadsheetInfo, error) {
	return nil, errSheetsDisabled
}

type apiError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decodeAPIError(status int, body []byte) error {
	var e apiError
	if json.Unmarshal(body, &e) == nil && e.Error.Message != "" {
		return fmt.Errorf("google api error (%d): %s", status, e.Error.Message)
	}
	return fmt.Errorf("google api error (%d)", status)
}

func (s *googleSheetsService) getJSON(ctx context.Context, client *http.Client, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return decodeAPIError(resp.StatusCode, body)
	}
	return json.Unmarshal(body, out)
}

func (s *googleSheetsService) postJSON(ctx context.Context, client *http.Client, rawURL string, payload, out any) error {
	buf, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, bytes.NewReader(buf))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp.StatusCode, body)
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(body, out)
}

// FetchRange reads a value range. Formatted values come back as strings;
// anything else is stringified so the parsers always see raw cell text.
func (s *googleSheetsService) FetchRange(ctx context.Context, sheetID, rangeA1 string) ([][]string, error) {
	u := fmt.Sprintf("%s/%s/values/%s", sheetsAPIBase, url.PathEscape(sheetID), url.PathEscape(rangeA1))

	var payload struct {
		Values [][]any `json:"values"`
	}
	if err := s.getJSON(ctx, s.readClient, u, &payload); err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(payload.Values))
	for _, raw := range payload.Values {
		row := make([]string, 0, len(raw))
		for _, c := range raw {
			if str, ok := c.(string); ok {
				row = append(row, str)
			} else {
				row = append(row, fmt.Sprint(c))
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (s *googleSheetsService) Metadata(ctx context.Context, sheetID string) (*SheetMetadata, error) {
	u := fmt.Sprintf("%s/%s?fields=%s", sheetsAPIBase, url.PathEscape(sheetID), url.QueryEscape("properties.title"))

	var payload struct {
		Properties struct {
			Title string `json:"title"`
		} `json:"properties"`
	}
	if err := s.getJSON(ctx, s.readClient, u, &payload); err != nil {
		return nil, err
	}
	title := payload.Properties.Title
	if title == "" {
		title = "Unknown"
	}
	return &SheetMetadata{Title: title}, nil
}

// Cell value helpers for the spreadsheet create payload.

func stringCell(v string) map[string]any {
	return map[string]any{"userEnteredValue": map[string]any{"stringValue": v}}
}

func headerCell(v string) map[string]any {
	c := stringCell(v)
	c["userEnteredFormat"] = map[string]any{"textFormat": map[string]any{"bold": true}}
	return c
}

func currencyCell(v float64) map[string]any {
	return map[string]any{
		"userEnteredValue":  map[string]any{"numberValue": v},
		"userEnteredFormat": map[string]any{"numberFormat": map[string]any{"type": "CURRENCY"}},
	}
}

func rowData(cells ...map[string]any) map[string]any {
	return map[string]any{"values": cells}
}

func (s *googleSheetsService) createSpreadsheet(ctx context.Context, title, sheetTitle string, rows []map[string]any, userEmail string) (*SpreadsheetInfo, error) {
	payload := map[string]any{
		"properties": map[string]any{"title": title},
		"sheets": []map[string]any{{
			"properties": map[string]any{
				"title":          sheetTitle,
				"gridProperties": map[string]any{"frozenRowCount": 1},
			},
			"data": []map[string]any{{
				"startRow":    0,
				"startColumn": 0,
				"rowData":     rows,
			}},
		}},
	}

	var created struct {
		SpreadsheetID  string `json:"spreadsheetId"`
		SpreadsheetURL string `json:"spreadsheetUrl"`
	}
	if err := s.postJSON(ctx, s.fullClient, sheetsAPIBase, payload, &created); err != nil {
		return nil, fmt.Errorf("creating spreadsheet: %w", err)
	}
	if created.SpreadsheetID == "" {
		return nil, fmt.Errorf("creating spreadsheet: no id returned")
	}

	// Reader access for the service account keeps later syncs working; the
	// requesting user gets edit access. A failed share is surfaced because a
	// template nobody can read is useless.
	if err := s.share(ctx, created.SpreadsheetID, "reader", s.serviceAccountEmail, false); err != nil {
		return nil, err
	}
	if err := s.share(ctx, created.SpreadsheetID, "writer", userEmail, true); err != nil {
		return nil, err
	}

	info := &SpreadsheetInfo{
		SpreadsheetID:  created.SpreadsheetID,
		SpreadsheetURL: created.SpreadsheetURL,
	}
	if info.SpreadsheetURL == "" {
		info.SpreadsheetURL = "https://docs.google.com/spreadsheets/d/" + created.SpreadsheetID
	}
	logger.L.Info("Template spreadsheet created", "spreadsheetID", created.SpreadsheetID, "title", title)
	return info, nil
}

func (s *googleSheetsService) share(ctx context.Context, fileID, role, email string, notify bool) error {
	if email == "" {
		return nil
	}
	u := fmt.Sprintf("%s/%s/permissions?sendNotificationEmail=%t", driveAPIBase, url.PathEscape(fileID), notify)
	payload := map[string]any{"type": "user", "role": role, "emailAddress": email}
	if err := s.postJSON(ctx, s.fullClient, u, payload, nil); err != nil {
		return fmt.Errorf("sharing spreadsheet with %s: %w", email, err)
	}
	return nil
}

func (s *googleSheetsService) CreateNetWorthTemplate(ctx context.Context, userEmail string) (*SpreadsheetInfo, error) {
	today := time.Now().Format("2006-01-02")
	rows := []map[string]any{
		rowData(
			headerCell("Date"), headerCell("Stocks"), headerCell("Bonds"),
			headerCell("Cash"), headerCell("Real Estate"), headerCell("Points Value"),
			headerCell("Other Assets"), headerCell("Total Debts"), headerCell("Notes"),
		),
		rowData(
			stringCell(today), currencyCell(50000), currencyCell(10000),
			currencyCell(15000), currencyCell(0), currencyCell(5000),
			currencyCell(0), currencyCell(0),
			stringCell("Sample entry - update with your data"),
		),
	}
	return s.createSpreadsheet(ctx, "WealthTrack - Net Worth Tracker", "Net Worth", rows, userEmail)
}

func (s *googleSheetsService) CreateCreditCardsTemplate(ctx context.Context, userEmail string) (*SpreadsheetInfo, error) {
	today := time.Now()
	rows := []map[string]any{
		rowData(
			headerCell("Card Name"), headerCell("Last 4"), headerCell("Status"),
			headerCell("Signup Bonus"), headerCell("SUB Requirement"), headerCell("Current Spend"),
			headerCell("SUB Deadline"), headerCell("Got Bonus"), headerCell("Annual Fee"),
			headerCell("Signup Date"), headerCell("Annual Fee Date"), headerCell("Close Date"),
			headerCell("Notes"),
		),
		rowData(
			stringCell("Chase Sapphire Preferred"), stringCell("1234"), stringCell("active"),
			stringCell("60,000 points"), currencyCell(4000), currencyCell(1500),
			stringCell(today.AddDate(0, 0, 90).Format("2006-01-02")), stringCell("FALSE"), currencyCell(95),
			stringCell(today.Format("2006-01-02")), stringCell(""), stringCell(""),
			stringCell("Sample card - update with your data"),
		),
	}
	return s.createSpreadsheet(ctx, "WealthTrack - Credit Cards Tracker", "Credit Cards", rows, userEmail)
}

// NetWorthRange and CreditCardsRange bound the sync reads; the row
// normalizer itself enforces no limit.
func NetWorthRange(maxRows int) string {
	return fmt.Sprintf("A2:I%d", maxRows)
}

func CreditCardsRange(maxRows int) string {
	return fmt.Sprintf("Credit Cards!A2:M%d", maxRows)
}

// sheetIDFromInput tolerates users pasting the whole sheet URL instead of the
// bare ID.
func SheetIDFromInput(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if i := strings.Index(trimmed, "/spreadsheets/d/"); i >= 0 {
		rest := trimmed[i+len("/spreadsheets/d/"):]
		if j := strings.IndexAny(rest, "/?#"); j >= 0 {
			return rest[:j]
		}
		return rest
	}
	return trimmed
}
