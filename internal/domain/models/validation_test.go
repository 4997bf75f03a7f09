package models

import (
	"errors"
	"strings"
	"testing"
)

func TestCustomerInputValidate(t *testing.T) {
	tests := []struct {
		name      string
		input     CustomerInput
		wantField string
	}{
		{
			name:  "valid customer",
			input: CustomerInput{Name: "Rajesh Kumar", Email: "rajesh@example.com", Phone: "9876543210", Address: "12 MG Road"},
		},
		{
			name:  "phone with separators still ten digits",
			input: CustomerInput{Name: "Priya", Email: "priya@example.com", Phone: "98-765 432.10"},
		},
		{
			name:      "missing name",
			input:     CustomerInput{Email: "a@b.co", Phone: "9876543210"},
			wantField: "name",
		},
		{
			name:      "missing email",
			input:     CustomerInput{Name: "X", Phone: "9876543210"},
			wantField: "email",
		},
		{
			name:      "bad email format",
			input:     CustomerInput{Name: "X", Email: "not-an-email", Phone: "9876543210"},
			wantField: "email",
		},
		{
			name:      "phone too short",
			input:     CustomerInput{Name: "X", Email: "a@b.co", Phone: "12345"},
			wantField: "phone",
		},
		{
			name:      "phone too long",
			input:     CustomerInput{Name: "X", Email: "a@b.co", Phone: "98765432100"},
			wantField: "phone",
		},
		{
			name:      "missing phone",
			input:     CustomerInput{Name: "X", Email: "a@b.co"},
			wantField: "phone",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.input.Validate()
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("expected valid input, got %v", err)
				}
				return
			}

			var fields FieldErrors
			if !errors.As(err, &fields) {
				t.Fatalf("expected FieldErrors, got %T (%v)", err, err)
			}
			if _, ok := fields[tt.wantField]; !ok {
				t.Fatalf("expected error on field %q, got %v", tt.wantField, fields)
			}
		})
	}
}

func TestBikeInputValidate(t *testing.T) {
	valid := BikeInput{Model: "Raider 125", PurchasePrice: 80000, SellingPrice: 95000, Stock: 5, Status: BikeStatusInStock}

	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid bike, got %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*BikeInput)
		field  string
	}{
		{"negative purchase price", func(b *BikeInput) { b.PurchasePrice = -1 }, "purchasePrice"},
		{"negative selling price", func(b *BikeInput) { b.SellingPrice = -1 }, "sellingPrice"},
		{"negative stock", func(b *BikeInput) { b.Stock = -1 }, "stock"},
		{"unknown status", func(b *BikeInput) { b.Status = "RESERVED" }, "status"},
		{"missing model", func(b *BikeInput) { b.Model = " " }, "model"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := valid
			tt.mutate(&input)

			var fields FieldErrors
			if !errors.As(input.Validate(), &fields) {
				t.Fatal("expected FieldErrors")
			}
			if _, ok := fields[tt.field]; !ok {
				t.Fatalf("expected error on field %q, got %v", tt.field, fields)
			}
		})
	}

	t.Run("zero stock does not force SOLD", func(t *testing.T) {
		input := valid
		input.Stock = 0
		input.Status = BikeStatusInStock
		if err := input.Validate(); err != nil {
			t.Fatalf("stock=0 with IN_STOCK should be allowed, got %v", err)
		}
	})
}

func TestSaleDraftValidate(t *testing.T) {
	bike := &Bike{ID: "b1", SellingPrice: 95000, Stock: 5}
	customer := &Customer{ID: "c1"}

	tests := []struct {
		name    string
		draft   SaleDraft
		wantErr error
	}{
		{
			name:    "valid draft",
			draft:   SaleDraft{Bike: bike, Customer: customer, Quantity: 5, PaymentMethod: PaymentCash},
			wantErr: nil,
		},
		{
			name:    "no bike",
			draft:   SaleDraft{Customer: customer, Quantity: 1, PaymentMethod: PaymentCash},
			wantErr: ErrNoBikeSelected,
		},
		{
			name:    "no customer",
			draft:   SaleDraft{Bike: bike, Quantity: 1, PaymentMethod: PaymentCash},
			wantErr: ErrNoCustomerSelected,
		},
		{
			name:    "zero quantity",
			draft:   SaleDraft{Bike: bike, Customer: customer, Quantity: 0, PaymentMethod: PaymentCash},
			wantErr: ErrInvalidQuantity,
		},
		{
			name:    "quantity above stock",
			draft:   SaleDraft{Bike: bike, Customer: customer, Quantity: 6, PaymentMethod: PaymentCash},
			wantErr: ErrInsufficientStock,
		},
		{
			name:    "discount above 100",
			draft:   SaleDraft{Bike: bike, Customer: customer, Quantity: 1, DiscountPercentage: 120, PaymentMethod: PaymentCash},
			wantErr: ErrInvalidDiscount,
		},
		{
			name:    "unsupported payment",
			draft:   SaleDraft{Bike: bike, Customer: customer, Quantity: 1, PaymentMethod: "crypto"},
			wantErr: ErrInvalidPayment,
		},
		{
			name:    "cheque accepted",
			draft:   SaleDraft{Bike: bike, Customer: customer, Quantity: 1, PaymentMethod: PaymentCheque},
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.draft.Validate(); !errors.Is(err, tt.wantErr) {
				t.Fatalf("got %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSaleDraftArithmetic(t *testing.T) {
	bike := &Bike{ID: "b1", SellingPrice: 95000, Stock: 10}
	draft := SaleDraft{Bike: bike, Customer: &Customer{ID: "c1"}, Quantity: 2, DiscountPercentage: 10, PaymentMethod: PaymentCash}

	if got := draft.Subtotal(); got != 190000 {
		t.Errorf("Subtotal = %v, want 190000", got)
	}
	if got := draft.DiscountAmount(); got != 19000 {
		t.Errorf("DiscountAmount = %v, want 19000", got)
	}
	if got := draft.Total(); got != 171000 {
		t.Errorf("Total = %v, want 171000", got)
	}
	// Grand total is the same figure; nothing is layered on top.
	if draft.GrandTotal() != draft.Total() {
		t.Errorf("GrandTotal = %v, want %v", draft.GrandTotal(), draft.Total())
	}
}

func TestNewSaleDraftDefaults(t *testing.T) {
	d := NewSaleDraft()
	if d.Bike != nil || d.Customer != nil {
		t.Error("new draft should have no selections")
	}
	if d.Quantity != 1 {
		t.Errorf("Quantity = %d, want 1", d.Quantity)
	}
	if d.DiscountPercentage != 0 {
		t.Errorf("DiscountPercentage = %v, want 0", d.DiscountPercentage)
	}
	if d.PaymentMethod != PaymentCash {
		t.Errorf("PaymentMethod = %q, want cash", d.PaymentMethod)
	}
}

func TestAggregateInventory(t *testing.T) {
	bikes := []Bike{
		{Status: BikeStatusInStock, Stock: 5, SellingPrice: 100},
		{Status: BikeStatusInStock, Stock: 2, SellingPrice: 200},
		{Status: BikeStatusSold, Stock: 0, SellingPrice: 300},
	}

	got := AggregateInventory(bikes)
	want := InventoryStats{TotalBikes: 3, InStock: 2, Sold: 1, TotalStock: 7, StockValue: 900}
	if got != want {
		t.Fatalf("AggregateInventory = %+v, want %+v", got, want)
	}
}

func TestFieldErrorsMessage(t *testing.T) {
	err := FieldErrors{"phone": "Invalid phone number (10 digits required)"}
	if !strings.Contains(err.Error(), "phone") {
		t.Fatalf("message should mention the field, got %q", err.Error())
	}
}
