// Package store holds the session and the in-memory collections for the
// current launch. It is the single source of truth for who is logged in and
// which bikes, customers and sales are currently known; screens read
// snapshots and call mutation methods, never the backend directly.
package store

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"bikedesk/internal/domain/models"
	"bikedesk/pkg/clients/dealer"
)

// Session states.
const (
	StateUnauthenticated = "UNAUTHENTICATED"
	StateVerifying       = "VERIFYING"
	StateAuthenticated   = "AUTHENTICATED"
)

// ErrNotFound is returned when a draft selection references an id that is not
// in the cached collection.
var ErrNotFound = errors.New("not found in cache")

// Store is the session and collection cache.
//
// Mutations are pessimistic: the local collection changes only after the
// backend confirms the operation. No ordering is enforced across overlapping
// calls; when two edits to the same record race, the last response to arrive
// wins. That weak consistency is intentional for a single-operator tool.
type Store struct {
	client dealer.Client
	tokens TokenStore
	logger *zap.Logger

	mu        sync.RWMutex
	state     string
	session   *models.Session
	bikes     []models.Bike
	customers []models.Customer
	sales     []models.Sale
	draft     models.SaleDraft
}

// New wires a store around the backend client and token storage.
func New(client dealer.Client, tokens TokenStore, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		client: client,
		tokens: tokens,
		logger: logger,
		state:  StateUnauthenticated,
		draft:  models.NewSaleDraft(),
	}
}

// Initialize restores the session at launch. It reads any persisted token,
// asks the backend to verify the device, and either becomes Authenticated or
// quietly stays Unauthenticated. It never returns an error; every failure is
// absorbed here.
func (s *Store) Initialize(ctx context.Context) {
	s.mu.Lock()
	s.state = StateVerifying
	s.mu.Unlock()

	saved, err := s.tokens.Load()
	if err != nil {
		s.logger.Warn("could not read persisted token", zap.Error(err))
		saved = ""
	}
	if saved != "" {
		s.client.SetToken(saved)
	}

	user, err := s.client.Verify(ctx)
	if err != nil {
		s.logger.Warn("session verification failed", zap.Error(err))
		s.mu.Lock()
		s.state = StateUnauthenticated
		s.session = nil
		s.mu.Unlock()
		return
	}

	s.mu.Lock()
	s.session = &models.Session{User: *user, Token: saved}
	s.state = StateAuthenticated
	s.mu.Unlock()

	s.logger.Info("session restored", zap.String("user_id", user.ID))
	s.Refresh(ctx)
}

// Login authenticates with the backend. On success the token is persisted,
// the session becomes active and the collections are repopulated. Overlapping
// calls are not deduplicated.
func (s *Store) Login(ctx context.Context, email, password string) error {
	result, err := s.client.Login(ctx, strings.TrimSpace(email), strings.TrimSpace(password))
	if err != nil {
		return err
	}

	if err := s.tokens.Save(result.Token); err != nil {
		// The session still works for this launch; only restore-at-launch
		// is affected.
		s.logger.Warn("could not persist token", zap.Error(err))
	}
	s.client.SetToken(result.Token)

	s.mu.Lock()
	s.session = &models.Session{User: result.User, Token: result.Token}
	s.state = StateAuthenticated
	s.mu.Unlock()

	s.logger.Info("logged in", zap.String("user_id", result.User.ID))
	s.Refresh(ctx)
	return nil
}

// Logout clears the persisted token and the active session. Collections
// loaded during the session are left in place until the next login replaces
// them, matching the behavior operators already rely on.
func (s *Store) Logout() error {
	s.mu.Lock()
	s.session = nil
	s.state = StateUnauthenticated
	s.mu.Unlock()

	s.client.ClearToken()

	if err := s.tokens.Clear(); err != nil {
		s.logger.Warn("could not clear persisted token", zap.Error(err))
		return err
	}
	return nil
}

// Refresh repopulates bikes, customers and sales from the backend. Each fetch
// is independent: a failure replaces nothing for that collection, is logged
// as a warning, and does not block the other two.
func (s *Store) Refresh(ctx context.Context) {
	if bikes, err := s.client.ListBikes(ctx); err != nil {
		s.logger.Warn("bike refresh failed", zap.Error(err))
	} else {
		s.mu.Lock()
		s.bikes = bikes
		s.mu.Unlock()
	}

	if customers, err := s.client.ListCustomers(ctx); err != nil {
		s.logger.Warn("customer refresh failed", zap.Error(err))
	} else {
		s.mu.Lock()
		s.customers = customers
		s.mu.Unlock()
	}

	if sales, err := s.client.ListSales(ctx); err != nil {
		s.logger.Warn("sales refresh failed", zap.Error(err))
	} else {
		s.mu.Lock()
		s.sales = sales
		s.mu.Unlock()
	}
}

// State reports the current session state.
func (s *Store) State() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Session returns the active session, or nil when unauthenticated.
func (s *Store) Session() *models.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return nil
	}
	copied := *s.session
	return &copied
}

// Bikes returns a snapshot of the cached bikes.
func (s *Store) Bikes() []models.Bike {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Bike(nil), s.bikes...)
}

// Customers returns a snapshot of the cached customers.
func (s *Store) Customers() []models.Customer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Customer(nil), s.customers...)
}

// Sales returns a snapshot of the cached sales.
func (s *Store) Sales() []models.Sale {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Sale(nil), s.sales...)
}

// SalesForCustomer filters the cached sales by customer id.
func (s *Store) SalesForCustomer(customerID string) []models.Sale {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Sale
	for _, sale := range s.sales {
		if sale.CustomerID == customerID {
			out = append(out, sale)
		}
	}
	return out
}

// CreateCustomer validates the form, submits it, and on success prepends the
// server-returned customer to the cache. Invalid input never reaches the
// network.
func (s *Store) CreateCustomer(ctx context.Context, input models.CustomerInput) (*models.Customer, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	created, err := s.client.CreateCustomer(ctx, input)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.customers = append([]models.Customer{*created}, s.customers...)
	s.mu.Unlock()

	s.logger.Info("customer created", zap.String("customer_id", created.ID))
	return created, nil
}

// UpdateCustomer validates the form, submits it, and on success merges the
// new field values into the cached record in place.
func (s *Store) UpdateCustomer(ctx context.Context, id string, input models.CustomerInput) error {
	if err := input.Validate(); err != nil {
		return err
	}

	updated, err := s.client.UpdateCustomer(ctx, id, input)
	if err != nil {
		return err
	}

	s.mu.Lock()
	for i := range s.customers {
		if s.customers[i].ID != id {
			continue
		}
		s.customers[i].Name = input.Name
		s.customers[i].Email = input.Email
		s.customers[i].Phone = input.Phone
		s.customers[i].Address = input.Address
		if updated != nil && updated.UpdatedAt != "" {
			s.customers[i].UpdatedAt = updated.UpdatedAt
		} else {
			s.customers[i].UpdatedAt = time.Now().UTC().Format(time.RFC3339)
		}
		break
	}
	s.mu.Unlock()
	return nil
}

// DeleteCustomer removes the customer remotely, then drops exactly that id
// from the cache.
func (s *Store) DeleteCustomer(ctx context.Context, id string) error {
	if err := s.client.DeleteCustomer(ctx, id); err != nil {
		return err
	}

	s.mu.Lock()
	kept := s.customers[:0]
	for _, c := range s.customers {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	s.customers = kept
	s.mu.Unlock()
	return nil
}

// CreateBike validates the form, submits it (brand is fixed server-side), and
// prepends the server-returned bike to the cache.
func (s *Store) CreateBike(ctx context.Context, input models.BikeInput) (*models.Bike, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	created, err := s.client.CreateBike(ctx, input)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.bikes = append([]models.Bike{*created}, s.bikes...)
	s.mu.Unlock()

	s.logger.Info("bike created", zap.String("bike_id", created.ID), zap.String("model", created.Model))
	return created, nil
}

// UpdateBike validates the form, submits it, and merges the new field values
// into the cached record in place.
func (s *Store) UpdateBike(ctx context.Context, id string, input models.BikeInput) error {
	if err := input.Validate(); err != nil {
		return err
	}

	updated, err := s.client.UpdateBike(ctx, id, input)
	if err != nil {
		return err
	}

	s.mu.Lock()
	for i := range s.bikes {
		if s.bikes[i].ID != id {
			continue
		}
		s.bikes[i].Model = input.Model
		s.bikes[i].Color = input.Color
		s.bikes[i].EngineCC = input.EngineCC
		s.bikes[i].PurchasePrice = input.PurchasePrice
		s.bikes[i].SellingPrice = input.SellingPrice
		s.bikes[i].Stock = input.Stock
		s.bikes[i].Status = input.Status
		if updated != nil && updated.UpdatedAt != "" {
			s.bikes[i].UpdatedAt = updated.UpdatedAt
		}
		break
	}
	s.mu.Unlock()
	return nil
}

// DeleteBike removes the bike remotely, then drops exactly that id from the
// cache.
func (s *Store) DeleteBike(ctx context.Context, id string) error {
	if err := s.client.DeleteBike(ctx, id); err != nil {
		return err
	}

	s.mu.Lock()
	kept := s.bikes[:0]
	for _, b := range s.bikes {
		if b.ID != id {
			kept = append(kept, b)
		}
	}
	s.bikes = kept
	s.mu.Unlock()
	return nil
}
