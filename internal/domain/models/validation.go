package models

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Sentinel errors for sale submission, so callers can branch on the exact
// failure instead of matching message text.
var (
	ErrNoBikeSelected     = errors.New("no bike selected")
	ErrNoCustomerSelected = errors.New("no customer selected")
	ErrInvalidQuantity    = errors.New("quantity must be at least 1")
	ErrInsufficientStock  = errors.New("insufficient stock available")
	ErrInvalidDiscount    = errors.New("discount percentage must be between 0 and 100")
	ErrInvalidPayment     = errors.New("unsupported payment method")
)

var (
	emailPattern  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	nonDigit      = regexp.MustCompile(`\D`)
	tenDigitPhone = regexp.MustCompile(`^[0-9]{10}$`)
)

// FieldErrors maps a form field to its validation message. It satisfies error
// so a failed validation can travel the normal error path.
type FieldErrors map[string]string

func (f FieldErrors) Error() string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, f[k]))
	}
	return strings.Join(parts, "; ")
}

// Validate checks the customer form fields. A nil return means the input may
// be sent to the backend.
func (c CustomerInput) Validate() error {
	errs := FieldErrors{}

	if strings.TrimSpace(c.Name) == "" {
		errs["name"] = "Name is required"
	}

	if strings.TrimSpace(c.Email) == "" {
		errs["email"] = "Email is required"
	} else if !emailPattern.MatchString(c.Email) {
		errs["email"] = "Invalid email format"
	}

	if strings.TrimSpace(c.Phone) == "" {
		errs["phone"] = "Phone number is required"
	} else if !tenDigitPhone.MatchString(nonDigit.ReplaceAllString(c.Phone, "")) {
		errs["phone"] = "Invalid phone number (10 digits required)"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Validate checks the bike form fields.
func (b BikeInput) Validate() error {
	errs := FieldErrors{}

	if strings.TrimSpace(b.Model) == "" {
		errs["model"] = "Model is required"
	}
	if b.PurchasePrice < 0 {
		errs["purchasePrice"] = "Purchase price cannot be negative"
	}
	if b.SellingPrice < 0 {
		errs["sellingPrice"] = "Selling price cannot be negative"
	}
	if b.Stock < 0 {
		errs["stock"] = "Stock cannot be negative"
	}
	if b.Status != BikeStatusInStock && b.Status != BikeStatusSold {
		errs["status"] = "Status must be IN_STOCK or SOLD"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Validate checks the draft against the cached stock of the selected bike.
// This runs before any network call; the backend repeats the stock check on
// its side.
func (d SaleDraft) Validate() error {
	if d.Bike == nil {
		return ErrNoBikeSelected
	}
	if d.Customer == nil {
		return ErrNoCustomerSelected
	}
	if d.Quantity < 1 {
		return ErrInvalidQuantity
	}
	if d.Quantity > d.Bike.Stock {
		return ErrInsufficientStock
	}
	if d.DiscountPercentage < 0 || d.DiscountPercentage > 100 {
		return ErrInvalidDiscount
	}
	switch d.PaymentMethod {
	case PaymentCash, PaymentCard, PaymentUPI, PaymentCheque:
	default:
		return ErrInvalidPayment
	}
	return nil
}
