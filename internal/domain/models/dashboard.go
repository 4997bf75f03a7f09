package models

// DashboardStats is the headline figures block.
type DashboardStats struct {
	TotalBikes     int     `json:"totalBikes"`
	InStock        int     `json:"inStock"`
	SoldToday      int     `json:"soldToday"`
	RevenueToday   float64 `json:"revenueToday"`
	LowStock       int     `json:"lowStock"`
	TotalCustomers int     `json:"totalCustomers"`
}

// Sales overview periods accepted by the backend.
const (
	PeriodWeekly  = "weekly"
	PeriodMonthly = "monthly"
	PeriodYearly  = "yearly"
)

// SalesOverviewPoint is one bucket of the sales-overview series.
type SalesOverviewPoint struct {
	Label   string  `json:"label"`
	Count   int     `json:"count"`
	Revenue float64 `json:"revenue"`
}

// TopBike is one entry of the top-selling list.
type TopBike struct {
	BikeID   string `json:"bikeId"`
	Model    string `json:"model"`
	UnitsSold int   `json:"unitsSold"`
}

// RevenueStats summarizes revenue over standard windows.
type RevenueStats struct {
	Today     float64 `json:"today"`
	ThisWeek  float64 `json:"thisWeek"`
	ThisMonth float64 `json:"thisMonth"`
	Total     float64 `json:"total"`
}
