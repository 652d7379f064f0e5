// backend/src/processors/card_processor.go
package processors

import (
	"math"
	"time"

	"github.com/username/wealthtrack/backend/src/models"
)

// CardProcessor evaluates sign-up-bonus progress and deadline urgency for a
// single credit card. Pure per-card function.
type CardProcessor struct{}

func NewCardProcessor() *CardProcessor { return &CardProcessor{} }

// DaysUntil is the calendar-day difference between date and now, negative if
// past and nil if the date is unset. Both sides are truncated to midnight
// first so a deadline equal to today is always exactly 0, regardless of
// time-of-day.
func (p *CardProcessor) DaysUntil(date *string, now time.Time) *int {
	if date == nil || *date == "" {
		return nil
	}
	target, err := time.Parse(dateLayout, *date)
	if err != nil {
		return nil
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	target = time.Date(target.Year(), target.Month(), target.Day(), 0, 0, 0, 0, time.UTC)
	days := int(math.Round(target.Sub(today).Hours() / 24))
	return &days
}

// Evaluate computes the dashboard status for one card.
func (p *CardProcessor) Evaluate(card models.CreditCard, now time.Time) models.CardStatus {
	status := models.CardStatus{Card: card}

	req := 0.0
	if card.SubRequirement != nil {
		req = *card.SubRequirement
	}

	// Progress is only meaningful when a spend threshold exists.
	if req > 0 {
		status.Progress = math.Min(100, math.Max(0, card.CurrentSpend/req*100))
	}
	status.IsComplete = card.GotBonus || status.Progress >= 100

	if !status.IsComplete && req > 0 {
		status.Remaining = math.Max(0, req-card.CurrentSpend)
	}

	status.DaysUntilDeadline = p.DaysUntil(card.SubDeadline, now)
	status.DaysUntilAnnualFee = p.DaysUntil(card.AnnualFeeDate, now)

	if d := status.DaysUntilDeadline; d != nil && !status.IsComplete {
		switch {
		case *d <= 14:
			status.Urgency = "urgent"
		case *d <= 30:
			status.Urgency = "soon"
		}
	}

	if d := status.DaysUntilAnnualFee; d != nil && *d > 0 && *d <= 90 {
		status.FeeRenewalSoon = true
	}

	return status
}

// EvaluateAll maps Evaluate over a card set, preserving order.
func (p *CardProcessor) EvaluateAll(cards []models.CreditCard, now time.Time) []models.CardStatus {
	out := make([]models.CardStatus, 0, len(cards))
	for _, c := range cards {
		out = append(out, p.Evaluate(c, now))
	}
	return out
}
