// backend/src/models/dashboard.go
package models

// GrowthWindow is a change over one time window, as an absolute amount and as
// a percentage of the window's base value.
type GrowthWindow struct {
	Amount  float64 `json:"amount"`
	Percent float64 `json:"percent"`
}

// GrowthMetrics are computed over the entire unfiltered history, independent
// of whatever display filter the dashboard currently has applied.
type GrowthMetrics struct {
	ThisMonth        GrowthWindow `json:"this_month"`
	YTD              GrowthWindow `json:"ytd"`
	AllTime          GrowthWindow `json:"all_time"`
	AvgMonthlyGrowth float64      `json:"avg_monthly_growth"`
	ProjectedYearEnd float64      `json:"projected_year_end"`
}

// ChartPoint is one charted snapshot, oldest-first.
type ChartPoint struct {
	Label       string  `json:"label"`
	Date        string  `json:"date"`
	EntryID     int64   `json:"entry_id"`
	NetWorth    float64 `json:"net_worth"`
	Stocks      float64 `json:"stocks"`
	Bonds       float64 `json:"bonds"`
	Cash        float64 `json:"cash"`
	RealEstate  float64 `json:"real_estate"`
	PointsValue float64 `json:"points_value"`
	OtherAssets float64 `json:"other_assets"`
	TotalDebts  float64 `json:"total_debts"`
}

// AllocationSlice is one non-zero asset category of the latest snapshot.
type AllocationSlice struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

// AllocationPoint expresses each category as a percentage of that snapshot's
// own asset total.
type AllocationPoint struct {
	Date        string  `json:"date"`
	Stocks      float64 `json:"stocks_pct"`
	Bonds       float64 `json:"bonds_pct"`
	Cash        float64 `json:"cash_pct"`
	RealEstate  float64 `json:"real_estate_pct"`
	PointsValue float64 `json:"points_pct"`
	OtherAssets float64 `json:"other_pct"`
}

// DashboardSummary is the full dashboard view-model for one user.
type DashboardSummary struct {
	Latest               *NetWorthEntry    `json:"latest"`
	Previous             *NetWorthEntry    `json:"previous"`
	MonthlyChange        float64           `json:"monthly_change"`
	MonthlyChangePercent float64           `json:"monthly_change_percent"`
	Growth               GrowthMetrics     `json:"growth"`
	Chart                []ChartPoint      `json:"chart"`
	Allocation           []AllocationSlice `json:"allocation"`
	AllocationOverTime   []AllocationPoint `json:"allocation_over_time"`
	EntryCount           int               `json:"entry_count"`
}

// CardStatus is the per-card dashboard view-model produced by the progress
// evaluator.
type CardStatus struct {
	Card               CreditCard `json:"card"`
	Progress           float64    `json:"progress"`
	IsComplete         bool       `json:"is_complete"`
	Remaining          float64    `json:"remaining"`
	DaysUntilDeadline  *int       `json:"days_until_deadline"`
	DaysUntilAnnualFee *int       `json:"days_until_annual_fee"`
	Urgency            string     `json:"urgency"` // "", "soon", "urgent"
	FeeRenewalSoon     bool       `json:"fee_renewal_soon"`
}
