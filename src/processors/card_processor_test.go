// backend/src/processors/card_processor_test.go
package processors

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/username/wealthtrack/backend/src/models"
)

func fptr(f float64) *float64 { return &f }
func sptr(s string) *string   { return &s }

func TestEvaluateProgress(t *testing.T) {
	p := NewCardProcessor()
	now := time.Date(2025, 8, 30, 15, 30, 0, 0, time.UTC)

	// Meeting the requirement completes the bonus even without got_bonus.
	s := p.Evaluate(models.CreditCard{SubRequirement: fptr(4000), CurrentSpend: 4000}, now)
	assert.Equal(t, 100.0, s.Progress)
	assert.True(t, s.IsComplete)
	assert.Zero(t, s.Remaining)

	// No requirement -> no progress, no division by zero.
	s = p.Evaluate(models.CreditCard{CurrentSpend: 9999}, now)
	assert.Zero(t, s.Progress)
	assert.False(t, s.IsComplete)

	s = p.Evaluate(models.CreditCard{SubRequirement: fptr(0), CurrentSpend: 9999}, now)
	assert.Zero(t, s.Progress)

	// Overspend clamps at 100.
	s = p.Evaluate(models.CreditCard{SubRequirement: fptr(1000), CurrentSpend: 2500}, now)
	assert.Equal(t, 100.0, s.Progress)
	assert.True(t, s.IsComplete)

	// got_bonus alone completes and suppresses the remaining amount.
	s = p.Evaluate(models.CreditCard{SubRequirement: fptr(4000), CurrentSpend: 500, GotBonus: true}, now)
	assert.Equal(t, 12.5, s.Progress)
	assert.True(t, s.IsComplete)
	assert.Zero(t, s.Remaining)

	s = p.Evaluate(models.CreditCard{SubRequirement: fptr(4000), CurrentSpend: 1500}, now)
	assert.False(t, s.IsComplete)
	assert.Equal(t, 2500.0, s.Remaining)
}

func TestDaysUntil(t *testing.T) {
	p := NewCardProcessor()
	// Late in the day: truncation to midnight must keep "today" at exactly 0.
	now := time.Date(2025, 8, 30, 23, 45, 0, 0, time.UTC)

	assert.Nil(t, p.DaysUntil(nil, now))
	assert.Nil(t, p.DaysUntil(sptr(""), now))
	assert.Nil(t, p.DaysUntil(sptr("not-a-date"), now))

	today := p.DaysUntil(sptr("2025-08-30"), now)
	require.NotNil(t, today)
	assert.Equal(t, 0, *today)

	tomorrow := p.DaysUntil(sptr("2025-08-31"), now)
	require.NotNil(t, tomorrow)
	assert.Equal(t, 1, *tomorrow)

	past := p.DaysUntil(sptr("2025-08-20"), now)
	require.NotNil(t, past)
	assert.Equal(t, -10, *past)
}

func TestEvaluateUrgency(t *testing.T) {
	p := NewCardProcessor()
	now := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)

	card := models.CreditCard{SubRequirement: fptr(4000), CurrentSpend: 100}

	card.SubDeadline = sptr("2025-08-10") // 9 days out
	assert.Equal(t, "urgent", p.Evaluate(card, now).Urgency)

	card.SubDeadline = sptr("2025-08-25") // 24 days out
	assert.Equal(t, "soon", p.Evaluate(card, now).Urgency)

	card.SubDeadline = sptr("2025-10-01") // beyond 30 days
	assert.Empty(t, p.Evaluate(card, now).Urgency)

	// A completed bonus is never urgent, however close the deadline.
	card.SubDeadline = sptr("2025-08-02")
	card.GotBonus = true
	assert.Empty(t, p.Evaluate(card, now).Urgency)
}

func TestEvaluateFeeRenewalWindow(t *testing.T) {
	p := NewCardProcessor()
	now := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)

	card := models.CreditCard{AnnualFee: 95}

	card.AnnualFeeDate = sptr("2025-09-15") // 45 days out
	assert.True(t, p.Evaluate(card, now).FeeRenewalSoon)

	card.AnnualFeeDate = sptr("2025-08-01") // today: outside (0, 90]
	assert.False(t, p.Evaluate(card, now).FeeRenewalSoon)

	card.AnnualFeeDate = sptr("2025-12-01") // beyond 90 days
	assert.False(t, p.Evaluate(card, now).FeeRenewalSoon)

	card.AnnualFeeDate = sptr("2025-07-20") // already past
	assert.False(t, p.Evaluate(card, now).FeeRenewalSoon)
}

func TestEvaluateAllPreservesOrder(t *testing.T) {
	p := NewCardProcessor()
	now := time.Now()

	cards := []models.CreditCard{
		{ID: "a", CardName: "First"},
		{ID: "b", CardName: "Second"},
	}
	statuses := p.EvaluateAll(cards, now)
	require.Len(t, statuses, 2)
	assert.Equal(t, "a", statuses[0].Card.ID)
	assert.Equal(t, "b", statuses[1].Card.ID)
}
