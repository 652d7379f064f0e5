// backend/src/services/sync_service.go
package services

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/username/wealthtrack/backend/src/logger"
	"github.com/username/wealthtrack/backend/src/model"
	"github.com/username/wealthtrack/backend/src/models"
	"github.com/username/wealthtrack/backend/src/parsers/gsheet"
	"github.com/username/wealthtrack/backend/src/security/validation"
)

// sheetSyncService pulls rows from the user's connected spreadsheets and
// reconciles them into storage. Net worth rows are upserted by date; credit
// cards are replaced wholesale.
type sheetSyncService struct {
	db        *sql.DB
	source    SheetSource
	dashboard DashboardService
	maxRows   int

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewSheetSyncService(db *sql.DB, source SheetSource, dashboard DashboardService, maxRows int) SyncService {
	return &sheetSyncService{
		db:        db,
		source:    source,
		dashboard: dashboard,
		maxRows:   maxRows,
		locks:     make(map[string]*sync.Mutex),
	}
}

// userLock serializes syncs per user. Two concurrent replaces of the same
// card set, or interleaved upsert batches, would race each other; syncs for
// different users still run in parallel.
func (s *sheetSyncService) userLock(userID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[userID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[userID] = l
	}
	return l
}

func (s *sheetSyncService) SyncNetWorth(ctx context.Context, userID string) (*NetWorthSyncResult, error) {
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	settings, err := model.GetUserSettings(s.db, userID)
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}
	if settings == nil || settings.GoogleSheetID == nil || *settings.GoogleSheetID == "" {
		return nil, ErrNoSourceConfigured
	}
	sheetID := *settings.GoogleSheetID

	meta, err := s.source.Metadata(ctx, sheetID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnreachable, err)
	}

	raw, err := s.source.FetchRange(ctx, sheetID, NetWorthRange(s.maxRows))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnreachable, err)
	}

	rows := gsheet.NormalizeNetWorthRows(raw)
	if len(rows) == 0 {
		return nil, ErrEmptySource
	}

	result := &NetWorthSyncResult{Total: len(rows), SheetTitle: meta.Title}
	for _, row := range rows {
		row.Notes = validation.SanitizeText(row.Notes)
		if err := model.UpsertNetWorthEntry(s.db, userID, row); err != nil {
			logger.L.Warn("Net worth row failed to upsert",
				"userID", userID, "date", row.Date, "error", err)
			result.Errors++
			continue
		}
		result.Synced++
	}

	// The timestamp is recorded even when some rows failed; the sync itself
	// ran and the user should see when.
	if err := model.TouchLastSync(s.db, userID, false); err != nil {
		logger.L.Error("Failed to record net worth sync time", "userID", userID, "error", err)
	}

	s.dashboard.InvalidateUserCache(userID)
	logger.L.Info("Net worth sync finished",
		"userID", userID, "synced", result.Synced, "errors", result.Errors, "total", result.Total)
	return result, nil
}

func (s *sheetSyncService) SyncCreditCards(ctx context.Context, userID string) (*CreditCardSyncResult, error) {
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	settings, err := model.GetUserSettings(s.db, userID)
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}
	if settings == nil || settings.CreditCardsSheetID == nil || *settings.CreditCardsSheetID == "" {
		return nil, ErrNoSourceConfigured
	}
	sheetID := *settings.CreditCardsSheetID

	raw, err := s.source.FetchRange(ctx, sheetID, CreditCardsRange(s.maxRows))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnreachable, err)
	}

	// An empty sheet is a legitimate state here: the user cleared their
	// cards, so the replace empties the stored set too.
	rows := gsheet.NormalizeCreditCardRows(raw)
	for i := range rows {
		rows[i].CardName = validation.SanitizeText(rows[i].CardName)
		rows[i].SignupBonus = validation.SanitizeText(rows[i].SignupBonus)
		rows[i].Notes = validation.SanitizeText(rows[i].Notes)
	}

	if err := model.ReplaceCreditCards(s.db, userID, rows); err != nil {
		return nil, fmt.Errorf("replacing credit cards: %w", err)
	}

	if err := model.TouchLastSync(s.db, userID, true); err != nil {
		logger.L.Error("Failed to record credit card sync time", "userID", userID, "error", err)
	}

	cards, err := model.ListCreditCards(s.db, userID)
	if err != nil {
		return nil, fmt.Errorf("listing credit cards: %w", err)
	}
	if cards == nil {
		cards = []models.CreditCard{}
	}

	logger.L.Info("Credit card sync finished", "userID", userID, "cards", len(cards))
	return &CreditCardSyncResult{
		Cards:       cards,
		SyncedCount: len(cards),
		SyncedAt:    time.Now().UTC(),
	}, nil
}
