package store

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"bikedesk/internal/domain/models"
	"bikedesk/pkg/clients/dealer"
)

// Draft returns a snapshot of the in-progress sale form.
func (s *Store) Draft() models.SaleDraft {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.draft
}

// SelectBike puts the cached bike with the given id on the draft.
func (s *Store) SelectBike(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.bikes {
		if s.bikes[i].ID == id {
			bike := s.bikes[i]
			s.draft.Bike = &bike
			return nil
		}
	}
	return ErrNotFound
}

// SelectCustomer puts the cached customer with the given id on the draft.
func (s *Store) SelectCustomer(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.customers {
		if s.customers[i].ID == id {
			customer := s.customers[i]
			s.draft.Customer = &customer
			return nil
		}
	}
	return ErrNotFound
}

// SetQuantity sets the draft quantity.
func (s *Store) SetQuantity(qty int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.Quantity = qty
}

// SetDiscount sets the draft discount percentage.
func (s *Store) SetDiscount(pct float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.DiscountPercentage = pct
}

// SetPaymentMethod sets the draft payment method.
func (s *Store) SetPaymentMethod(method string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.PaymentMethod = method
}

// RecordSale validates the draft against cached stock and submits it. On
// success the draft resets to its defaults.
//
// The cached bike stock is NOT decremented here and the sale is NOT appended
// to the cached sales; both are reconciled by the next Refresh. The backend
// owns the stock movement, so a local decrement would only drift from it.
func (s *Store) RecordSale(ctx context.Context) (*models.Sale, error) {
	s.mu.RLock()
	draft := s.draft
	s.mu.RUnlock()

	if err := draft.Validate(); err != nil {
		return nil, err
	}

	input := models.SaleInput{
		BikeID:             draft.Bike.ID,
		CustomerID:         draft.Customer.ID,
		Quantity:           draft.Quantity,
		DiscountAmount:     draft.DiscountAmount(),
		DiscountPercentage: draft.DiscountPercentage,
		PaymentMethod:      draft.PaymentMethod,
		SaleDate:           time.Now().UTC().Format(time.RFC3339),
	}

	sale, err := s.client.CreateSale(ctx, input)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.draft = models.NewSaleDraft()
	s.mu.Unlock()

	s.logger.Info("sale recorded",
		zap.String("sale_id", sale.ID),
		zap.String("bike_id", input.BikeID),
		zap.Int("quantity", input.Quantity))
	return sale, nil
}

// FetchCustomerSales loads one customer's sales history straight from the
// backend; the history screen wants fresher data than the cached list.
func (s *Store) FetchCustomerSales(ctx context.Context, customerID string) ([]models.Sale, error) {
	return s.client.SalesByCustomer(ctx, customerID)
}

// UserFacingMessage maps an operation error to the text shown to the
// operator: the server-provided message when the backend rejected the call,
// the error text for transport failures, else the fallback.
func UserFacingMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var apiErr *dealer.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return fallback
}
