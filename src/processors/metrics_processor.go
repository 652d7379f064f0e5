// backend/src/processors/metrics_processor.go
package processors

import (
	"math"
	"sort"
	"time"

	"github.com/username/wealthtrack/backend/src/models"
)

const dateLayout = "2006-01-02"

// MetricsProcessor turns a user's snapshot history into dashboard figures.
// All methods are pure functions of their inputs; the reference time is
// passed in so results are reproducible.
type MetricsProcessor struct{}

func NewMetricsProcessor() *MetricsProcessor { return &MetricsProcessor{} }

func parseDay(s string) (time.Time, bool) {
	t, err := time.Parse(dateLayout, s)
	return t, err == nil
}

func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

func endOfMonth(t time.Time) time.Time {
	return startOfMonth(t).AddDate(0, 1, -1)
}

func startOfQuarter(t time.Time) time.Time {
	qMonth := time.Month((int(t.Month())-1)/3*3 + 1)
	return time.Date(t.Year(), qMonth, 1, 0, 0, 0, 0, t.Location())
}

func endOfQuarter(t time.Time) time.Time {
	return startOfQuarter(t).AddDate(0, 3, -1)
}

// PresetRange resolves a named display window into an inclusive from/to pair
// of YYYY-MM-DD strings, relative to now. Empty strings mean unbounded;
// "all" (or anything unrecognized) applies no filter.
func (p *MetricsProcessor) PresetRange(preset string, now time.Time) (from, to string) {
	switch preset {
	case "this-month":
		return startOfMonth(now).Format(dateLayout), endOfMonth(now).Format(dateLayout)
	case "last-month":
		lm := now.AddDate(0, -1, 0)
		return startOfMonth(lm).Format(dateLayout), endOfMonth(lm).Format(dateLayout)
	case "this-quarter":
		return startOfQuarter(now).Format(dateLayout), endOfQuarter(now).Format(dateLayout)
	case "last-quarter":
		lq := startOfQuarter(now).AddDate(0, -3, 0)
		return lq.Format(dateLayout), endOfQuarter(lq).Format(dateLayout)
	case "ytd":
		return time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location()).Format(dateLayout),
			now.Format(dateLayout)
	case "last-year":
		y := now.Year() - 1
		return time.Date(y, 1, 1, 0, 0, 0, 0, now.Location()).Format(dateLayout),
			time.Date(y, 12, 31, 0, 0, 0, 0, now.Location()).Format(dateLayout)
	}
	return "", ""
}

// FilterByRange keeps entries whose date falls inside the inclusive window.
// YYYY-MM-DD strings compare correctly as plain strings, so no parsing here.
func (p *MetricsProcessor) FilterByRange(entries []models.NetWorthEntry, from, to string) []models.NetWorthEntry {
	if from == "" && to == "" {
		return entries
	}
	var out []models.NetWorthEntry
	for _, e := range entries {
		if from != "" && e.Date < from {
			continue
		}
		if to != "" && e.Date > to {
			continue
		}
		out = append(out, e)
	}
	return out
}

func sortAscending(entries []models.NetWorthEntry) []models.NetWorthEntry {
	sorted := make([]models.NetWorthEntry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Date < sorted[j].Date })
	return sorted
}

// LatestPrevious returns the two most recent snapshots of the filtered window
// plus the change between them. Percent change is 0 when the previous net
// worth is 0.
func (p *MetricsProcessor) LatestPrevious(entries []models.NetWorthEntry) (latest, previous *models.NetWorthEntry, change, changePercent float64) {
	sorted := sortAscending(entries)
	n := len(sorted)
	if n == 0 {
		return nil, nil, 0, 0
	}
	latest = &sorted[n-1]
	if n < 2 {
		return latest, nil, 0, 0
	}
	previous = &sorted[n-2]
	change = latest.NetWorth() - previous.NetWorth()
	if previous.NetWorth() != 0 {
		changePercent = change / previous.NetWorth() * 100
	}
	return latest, previous, change, changePercent
}

// growthBase picks the base snapshot for a window anchored at boundary:
// the earliest snapshot on or after the boundary, else the latest snapshot
// strictly before it, else the oldest snapshot overall. The chosen tier is
// deliberately not surfaced.
func growthBase(sorted []models.NetWorthEntry, boundary string) *models.NetWorthEntry {
	for i := range sorted {
		if sorted[i].Date >= boundary {
			return &sorted[i]
		}
	}
	for i := len(sorted) - 1; i >= 0; i-- {
		if sorted[i].Date < boundary {
			return &sorted[i]
		}
	}
	if len(sorted) == 0 {
		return nil
	}
	return &sorted[0]
}

func window(newest *models.NetWorthEntry, base *models.NetWorthEntry) models.GrowthWindow {
	if base == nil {
		return models.GrowthWindow{}
	}
	amount := newest.NetWorth() - base.NetWorth()
	percent := 0.0
	if base.NetWorth() != 0 {
		percent = amount / base.NetWorth() * 100
	}
	return models.GrowthWindow{Amount: amount, Percent: percent}
}

// ComputeGrowth computes the growth metrics over the entire unfiltered
// history, independent of the display filter.
func (p *MetricsProcessor) ComputeGrowth(entries []models.NetWorthEntry, now time.Time) models.GrowthMetrics {
	if len(entries) == 0 {
		return models.GrowthMetrics{}
	}

	sorted := sortAscending(entries)
	oldest := &sorted[0]
	newest := &sorted[len(sorted)-1]

	monthStart := startOfMonth(now).Format(dateLayout)
	yearStart := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location()).Format(dateLayout)

	allTime := window(newest, oldest)

	// A month approximates to 30 days; at least one month so a single
	// snapshot does not divide by zero.
	monthsDiff := 1.0
	if oldestT, ok := parseDay(oldest.Date); ok {
		if newestT, ok2 := parseDay(newest.Date); ok2 {
			monthsDiff = math.Max(1, newestT.Sub(oldestT).Hours()/24/30)
		}
	}
	avgMonthly := allTime.Amount / monthsDiff

	monthsRemaining := 12 - (int(now.Month()) - 1)
	projected := newest.NetWorth() + avgMonthly*float64(monthsRemaining)

	return models.GrowthMetrics{
		ThisMonth:        window(newest, growthBase(sorted, monthStart)),
		YTD:              window(newest, growthBase(sorted, yearStart)),
		AllTime:          allTime,
		AvgMonthlyGrowth: avgMonthly,
		ProjectedYearEnd: projected,
	}
}

// ChartSeries projects the filtered snapshots into chronological chart
// points, applying the secondary chart-only window (3m/6m/1y/all) on top of
// the display filter.
func (p *MetricsProcessor) ChartSeries(entries []models.NetWorthEntry, chartRange string, now time.Time) []models.ChartPoint {
	var cutoff string
	switch chartRange {
	case "3m":
		cutoff = now.AddDate(0, -3, 0).Format(dateLayout)
	case "6m":
		cutoff = now.AddDate(0, -6, 0).Format(dateLayout)
	case "1y":
		cutoff = now.AddDate(-1, 0, 0).Format(dateLayout)
	}

	sorted := sortAscending(entries)
	points := make([]models.ChartPoint, 0, len(sorted))
	for _, e := range sorted {
		if cutoff != "" && e.Date < cutoff {
			continue
		}
		label := e.Date
		if t, ok := parseDay(e.Date); ok {
			label = t.Format("Jan 2006")
		}
		points = append(points, models.ChartPoint{
			Label:       label,
			Date:        e.Date,
			EntryID:     e.ID,
			NetWorth:    e.NetWorth(),
			Stocks:      e.Stocks,
			Bonds:       e.Bonds,
			Cash:        e.Cash,
			RealEstate:  e.RealEstate,
			PointsValue: e.PointsValue,
			OtherAssets: e.OtherAssets,
			TotalDebts:  e.TotalDebts,
		})
	}
	return points
}

// AllocationSnapshot breaks the latest snapshot's assets down by category,
// excluding zero-amount categories. Empty when there is no snapshot or its
// asset total is 0.
func (p *MetricsProcessor) AllocationSnapshot(latest *models.NetWorthEntry) []models.AllocationSlice {
	if latest == nil || latest.TotalAssets() == 0 {
		return []models.AllocationSlice{}
	}
	all := []models.AllocationSlice{
		{Category: "Stocks", Amount: latest.Stocks},
		{Category: "Bonds", Amount: latest.Bonds},
		{Category: "Cash", Amount: latest.Cash},
		{Category: "Real Estate", Amount: latest.RealEstate},
		{Category: "Points", Amount: latest.PointsValue},
		{Category: "Other", Amount: latest.OtherAssets},
	}
	out := make([]models.AllocationSlice, 0, len(all))
	for _, s := range all {
		if s.Amount > 0 {
			out = append(out, s)
		}
	}
	return out
}

// AllocationOverTime expresses each charted snapshot's categories as
// percentages of that snapshot's own asset total. A zero total reports 0%
// across the board.
func (p *MetricsProcessor) AllocationOverTime(chart []models.ChartPoint) []models.AllocationPoint {
	out := make([]models.AllocationPoint, 0, len(chart))
	for _, c := range chart {
		total := c.Stocks + c.Bonds + c.Cash + c.RealEstate + c.PointsValue + c.OtherAssets
		point := models.AllocationPoint{Date: c.Date}
		if total != 0 {
			point.Stocks = c.Stocks / total * 100
			point.Bonds = c.Bonds / total * 100
			point.Cash = c.Cash / total * 100
			point.RealEstate = c.RealEstate / total * 100
			point.PointsValue = c.PointsValue / total * 100
			point.OtherAssets = c.OtherAssets / total * 100
		}
		out = append(out, point)
	}
	return out
}
