package models

// Bike status values. Status is set explicitly by the operator; stock reaching
// zero does not flip a bike to SOLD on its own.
const (
	BikeStatusInStock = "IN_STOCK"
	BikeStatusSold    = "SOLD"
)

// DefaultBrand is the only brand this dealership carries; the backend expects
// it on every created bike.
const DefaultBrand = "TVS"

// Bike is a single inventory line. Field names mirror the backend wire format.
type Bike struct {
	ID            string  `json:"_id"`
	Brand         string  `json:"brand"`
	Model         string  `json:"model"`
	Color         string  `json:"color"`
	EngineCC      int     `json:"engineCC"`
	PurchasePrice float64 `json:"purchasePrice"`
	SellingPrice  float64 `json:"sellingPrice"`
	Stock         int     `json:"stock"`
	Status        string  `json:"status"`
	CreatedAt     string  `json:"createdAt,omitempty"`
	UpdatedAt     string  `json:"updatedAt,omitempty"`
}

// BikeInput carries the operator-editable fields for create and update calls.
// Brand is omitted; it is fixed to DefaultBrand on the create path.
type BikeInput struct {
	Model         string  `json:"model"`
	Color         string  `json:"color"`
	EngineCC      int     `json:"engineCC"`
	PurchasePrice float64 `json:"purchasePrice"`
	SellingPrice  float64 `json:"sellingPrice"`
	Stock         int     `json:"stock"`
	Status        string  `json:"status"`
}

// InventoryStats is the client-side aggregation shown on the inventory screen.
type InventoryStats struct {
	TotalBikes int
	InStock    int
	Sold       int
	TotalStock int
	StockValue float64
}

// AggregateInventory computes inventory stats over the cached bikes.
func AggregateInventory(bikes []Bike) InventoryStats {
	var s InventoryStats
	s.TotalBikes = len(bikes)
	for _, b := range bikes {
		switch b.Status {
		case BikeStatusInStock:
			s.InStock++
		case BikeStatusSold:
			s.Sold++
		}
		s.TotalStock += b.Stock
		s.StockValue += b.SellingPrice * float64(b.Stock)
	}
	return s
}
