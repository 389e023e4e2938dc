package models

// YoYPoint is one day of the trailing-30-day revenue trend, current year
// against the same window last year.
type YoYPoint struct {
	Day         string  `json:"day"`
	CurrentYear float64 `json:"current_year"`
	LastYear    float64 `json:"last_year"`
}

// TopBuyerRow is one (customer, year) slice of the top-buyer breakdown.
// CustomerTotal repeats the customer's all-year total on every slice so the
// chart can sort segments without re-aggregating.
type TopBuyerRow struct {
	Customer      string  `json:"customer"`
	Year          int     `json:"year"`
	Revenue       float64 `json:"revenue"`
	CustomerTotal float64 `json:"total_revenue_for_customer"`
}

// CompositionSlice is one labelled share of the transaction-type mix.
type CompositionSlice struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// KPISet holds the derived headline figures for the executive panel.
type KPISet struct {
	TotalRevenue      float64 `json:"total_revenue"`
	ActiveCustomers   int     `json:"active_customers"`
	LowStockCount     int     `json:"low_stock_count"`
	AvgTicket         float64 `json:"avg_ticket"`
	GrowthRatePercent float64 `json:"growth_rate_percent"`
}

// DashboardStats is rebuilt wholesale on every refresh; panels are never
// partially mutated. ActiveDate is the reference date all windows in this
// refresh were computed from.
type DashboardStats struct {
	SalesYoY    []YoYPoint         `json:"sales_yoy"`
	TopBuyers   []TopBuyerRow      `json:"top_buyers"`
	Composition []CompositionSlice `json:"composition"`
	ActiveDate  string             `json:"active_date"`
	KPIs        KPISet             `json:"kpis"`
	Brief       string             `json:"brief"`
}
