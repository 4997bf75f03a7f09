package store_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"bikedesk/internal/config"
	"bikedesk/internal/domain/models"
	"bikedesk/internal/mockapi"
	"bikedesk/internal/store"
	"bikedesk/pkg/clients/dealer"
)

// newBackend starts a mock backend and returns its base URL.
func newBackend(t *testing.T) string {
	t.Helper()

	srv, err := mockapi.NewServer(config.MockAPIConfig{
		Port:          "0",
		JWTSecret:     "it-secret",
		AdminEmail:    "admin@example.com",
		AdminPassword: "admin123",
	}, nil)
	if err != nil {
		t.Fatal(err)
	}

	ts := httptest.NewServer(srv.Engine())
	t.Cleanup(ts.Close)
	return ts.URL
}

// The full client path: store -> resty client -> mock backend over HTTP.
func newIntegrationStore(t *testing.T) (*store.Store, *store.FileTokenStore) {
	t.Helper()
	baseURL := newBackend(t)
	client := dealer.NewClient(config.APIConfig{BaseURL: baseURL})
	tokens := store.NewFileTokenStore(filepath.Join(t.TempDir(), "token"))
	return store.New(client, tokens, nil), tokens
}

func TestLoginAgainstBackend(t *testing.T) {
	s, tokens := newIntegrationStore(t)
	ctx := context.Background()

	if err := s.Login(ctx, " admin@example.com ", "admin123"); err != nil {
		t.Fatalf("login: %v", err)
	}

	if s.State() != store.StateAuthenticated {
		t.Fatalf("state = %q", s.State())
	}
	if s.Session().User.ID != "1" {
		t.Errorf("user id = %q, want 1", s.Session().User.ID)
	}
	if token, _ := tokens.Load(); token == "" {
		t.Error("token should be persisted after login")
	}

	// Seeded collections arrive with the login.
	if len(s.Bikes()) == 0 || len(s.Customers()) == 0 {
		t.Error("collections should be populated from the backend")
	}
}

func TestLoginRejectionSurfacesServerMessage(t *testing.T) {
	s, _ := newIntegrationStore(t)

	err := s.Login(context.Background(), "admin@example.com", "wrong")
	if err == nil {
		t.Fatal("expected rejection")
	}
	var apiErr *dealer.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *APIError", err)
	}
	if got := store.UserFacingMessage(err, "generic"); got != "Invalid email or password" {
		t.Errorf("user message = %q", got)
	}
}

func TestInitializeAfterPreviousLogin(t *testing.T) {
	baseURL := newBackend(t)
	tokens := store.NewFileTokenStore(filepath.Join(t.TempDir(), "token"))
	ctx := context.Background()

	s := store.New(dealer.NewClient(config.APIConfig{BaseURL: baseURL}), tokens, nil)
	if err := s.Login(ctx, "admin@example.com", "admin123"); err != nil {
		t.Fatal(err)
	}
	token, _ := tokens.Load()

	// A fresh launch sharing the same token file restores the session.
	s2 := store.New(dealer.NewClient(config.APIConfig{BaseURL: baseURL}), tokens, nil)
	s2.Initialize(ctx)

	if s2.State() != store.StateAuthenticated {
		t.Fatalf("state = %q, want authenticated after restore", s2.State())
	}
	if s2.Session().Token != token {
		t.Error("restored session should adopt the persisted token")
	}
	if len(s2.Bikes()) == 0 {
		t.Error("restored session should repopulate collections")
	}
}

func TestSaleFlowEndToEnd(t *testing.T) {
	s, _ := newIntegrationStore(t)
	ctx := context.Background()

	if err := s.Login(ctx, "admin@example.com", "admin123"); err != nil {
		t.Fatal(err)
	}

	bikes := s.Bikes()
	customers := s.Customers()
	bike := bikes[0]

	if err := s.SelectBike(bike.ID); err != nil {
		t.Fatal(err)
	}
	if err := s.SelectCustomer(customers[0].ID); err != nil {
		t.Fatal(err)
	}
	s.SetQuantity(2)
	s.SetDiscount(5)

	sale, err := s.RecordSale(ctx)
	if err != nil {
		t.Fatalf("record sale: %v", err)
	}
	if sale.UnitPrice != bike.SellingPrice {
		t.Errorf("unit price = %v, want %v", sale.UnitPrice, bike.SellingPrice)
	}

	// The cache is stale by contract until the next refresh.
	for _, b := range s.Bikes() {
		if b.ID == bike.ID && b.Stock != bike.Stock {
			t.Error("cached stock changed without a refresh")
		}
	}
	if len(s.Sales()) != 0 {
		t.Error("cached sales changed without a refresh")
	}

	s.Refresh(ctx)

	for _, b := range s.Bikes() {
		if b.ID == bike.ID && b.Stock != bike.Stock-2 {
			t.Errorf("stock after refresh = %d, want %d", b.Stock, bike.Stock-2)
		}
	}
	if len(s.Sales()) != 1 {
		t.Errorf("sales after refresh = %d, want 1", len(s.Sales()))
	}
	if got := s.SalesForCustomer(customers[0].ID); len(got) != 1 {
		t.Errorf("sales history = %d, want 1", len(got))
	}
}

func TestCustomerLifecycleEndToEnd(t *testing.T) {
	s, _ := newIntegrationStore(t)
	ctx := context.Background()

	if err := s.Login(ctx, "admin@example.com", "admin123"); err != nil {
		t.Fatal(err)
	}
	before := len(s.Customers())

	created, err := s.CreateCustomer(ctx, models.CustomerInput{
		Name: "Priya Sharma", Email: "priya@example.com", Phone: "9123456780", Address: "4 Park St",
	})
	if err != nil {
		t.Fatal(err)
	}

	got := s.Customers()
	if len(got) != before+1 || got[0].ID != created.ID {
		t.Fatalf("created customer should be at the head: %+v", got)
	}

	if err := s.UpdateCustomer(ctx, created.ID, models.CustomerInput{
		Name: "Priya S", Email: "priya@example.com", Phone: "9123456780", Address: "5 Park St",
	}); err != nil {
		t.Fatal(err)
	}
	if s.Customers()[0].Name != "Priya S" {
		t.Error("update should merge into the cached record")
	}

	if err := s.DeleteCustomer(ctx, created.ID); err != nil {
		t.Fatal(err)
	}
	if len(s.Customers()) != before {
		t.Error("delete should remove exactly the created customer")
	}
}
