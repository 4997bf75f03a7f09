package mockapi

import (
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"bikedesk/internal/domain/models"
)

// lowStockThreshold marks a bike as running low on the dashboard.
const lowStockThreshold = 3

func saleRevenue(s models.Sale) float64 {
	return s.UnitPrice*float64(s.Quantity) - s.DiscountAmount
}

func saleTime(s models.Sale) time.Time {
	t, err := time.Parse(time.RFC3339, s.SaleDate)
	if err != nil {
		return time.Time{}
	}
	return t
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func (s *Server) handleDashboardStats(c *gin.Context) {
	bikes := s.db.listBikes()
	sales := s.db.listSales()
	now := time.Now().UTC()

	stats := models.DashboardStats{
		TotalBikes:     len(bikes),
		TotalCustomers: len(s.db.listCustomers()),
	}
	for _, b := range bikes {
		if b.Status == models.BikeStatusInStock {
			stats.InStock++
		}
		if b.Stock > 0 && b.Stock <= lowStockThreshold {
			stats.LowStock++
		}
	}
	for _, sale := range sales {
		if sameDay(saleTime(sale).UTC(), now) {
			stats.SoldToday += sale.Quantity
			stats.RevenueToday += saleRevenue(sale)
		}
	}

	c.JSON(http.StatusOK, stats)
}

func (s *Server) handleSalesOverview(c *gin.Context) {
	period := c.DefaultQuery("period", models.PeriodWeekly)
	now := time.Now().UTC()

	var buckets int
	var step time.Duration
	var label func(t time.Time) string

	switch period {
	case models.PeriodWeekly:
		buckets, step = 7, 24*time.Hour
		label = func(t time.Time) string { return t.Format("Mon") }
	case models.PeriodMonthly:
		buckets, step = 30, 24*time.Hour
		label = func(t time.Time) string { return t.Format("Jan 2") }
	case models.PeriodYearly:
		buckets, step = 12, 0
		label = func(t time.Time) string { return t.Format("Jan") }
	default:
		c.JSON(http.StatusBadRequest, gin.H{"message": "period must be weekly, monthly or yearly"})
		return
	}

	points := make([]models.SalesOverviewPoint, buckets)
	starts := make([]time.Time, buckets)
	for i := 0; i < buckets; i++ {
		var start time.Time
		if period == models.PeriodYearly {
			start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, i-buckets+1, 0)
		} else {
			start = now.Truncate(24 * time.Hour).Add(-time.Duration(buckets-1-i) * step)
		}
		starts[i] = start
		points[i] = models.SalesOverviewPoint{Label: label(start)}
	}

	for _, sale := range s.db.listSales() {
		t := saleTime(sale).UTC()
		if t.IsZero() {
			continue
		}
		for i := buckets - 1; i >= 0; i-- {
			if !t.Before(starts[i]) {
				points[i].Count += sale.Quantity
				points[i].Revenue += saleRevenue(sale)
				break
			}
		}
	}

	c.JSON(http.StatusOK, points)
}

func (s *Server) handleTopBikes(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "5"))
	if err != nil || limit <= 0 {
		limit = 5
	}

	units := map[string]int{}
	for _, sale := range s.db.listSales() {
		units[sale.BikeID] += sale.Quantity
	}

	modelsByID := map[string]string{}
	for _, b := range s.db.listBikes() {
		modelsByID[b.ID] = b.Model
	}

	top := make([]models.TopBike, 0, len(units))
	for id, n := range units {
		top = append(top, models.TopBike{BikeID: id, Model: modelsByID[id], UnitsSold: n})
	}
	sort.Slice(top, func(i, j int) bool {
		if top[i].UnitsSold != top[j].UnitsSold {
			return top[i].UnitsSold > top[j].UnitsSold
		}
		return top[i].BikeID < top[j].BikeID
	})
	if len(top) > limit {
		top = top[:limit]
	}

	c.JSON(http.StatusOK, top)
}

func (s *Server) handleRevenue(c *gin.Context) {
	now := time.Now().UTC()
	weekAgo := now.AddDate(0, 0, -7)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	var stats models.RevenueStats
	for _, sale := range s.db.listSales() {
		revenue := saleRevenue(sale)
		stats.Total += revenue

		t := saleTime(sale).UTC()
		if t.IsZero() {
			continue
		}
		if sameDay(t, now) {
			stats.Today += revenue
		}
		if t.After(weekAgo) {
			stats.ThisWeek += revenue
		}
		if !t.Before(monthStart) {
			stats.ThisMonth += revenue
		}
	}

	c.JSON(http.StatusOK, stats)
}
