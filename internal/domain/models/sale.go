package models

// Payment methods accepted at the counter.
const (
	PaymentCash   = "cash"
	PaymentCard   = "card"
	PaymentUPI    = "upi"
	PaymentCheque = "cheque"
)

// Sale is a completed transaction. Sales are immutable once recorded; the
// backend exposes no update endpoint for them.
type Sale struct {
	ID                 string  `json:"_id"`
	BikeID             string  `json:"bikeId"`
	CustomerID         string  `json:"customerId"`
	Quantity           int     `json:"quantity"`
	UnitPrice          float64 `json:"unitPrice"`
	DiscountAmount     float64 `json:"discountAmount"`
	DiscountPercentage float64 `json:"discountPercentage"`
	PaymentMethod      string  `json:"paymentMethod"`
	SaleDate           string  `json:"saleDate"`
}

// SaleInput is the payload submitted when recording a sale.
type SaleInput struct {
	BikeID             string  `json:"bikeId"`
	CustomerID         string  `json:"customerId"`
	Quantity           int     `json:"quantity"`
	DiscountAmount     float64 `json:"discountAmount"`
	DiscountPercentage float64 `json:"discountPercentage"`
	PaymentMethod      string  `json:"paymentMethod"`
	SaleDate           string  `json:"saleDate"`
}

// SaleDraft is the in-progress sale form. It lives in the cache so a reset
// after a successful sale is observable by every screen.
type SaleDraft struct {
	Bike               *Bike
	Customer           *Customer
	Quantity           int
	DiscountPercentage float64
	PaymentMethod      string
}

// NewSaleDraft returns the form defaults: nothing selected, one unit, no
// discount, cash.
func NewSaleDraft() SaleDraft {
	return SaleDraft{Quantity: 1, PaymentMethod: PaymentCash}
}

// Subtotal is selling price times quantity, zero while no bike is selected.
func (d SaleDraft) Subtotal() float64 {
	if d.Bike == nil {
		return 0
	}
	qty := d.Quantity
	if qty < 1 {
		qty = 1
	}
	return d.Bike.SellingPrice * float64(qty)
}

// DiscountAmount is the discounted portion of the subtotal.
func (d SaleDraft) DiscountAmount() float64 {
	return d.Subtotal() * d.DiscountPercentage / 100
}

// Total is the subtotal minus the discount.
func (d SaleDraft) Total() float64 {
	return d.Subtotal() - d.DiscountAmount()
}

// GrandTotal equals Total; no tax is layered on top of the summary figure.
func (d SaleDraft) GrandTotal() float64 {
	return d.Total()
}
