// Package dealer is the HTTP client for the dealership backend API.
package dealer

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"bikedesk/internal/config"
	"bikedesk/internal/domain/models"
)

// Client exposes the backend operations used by the application.
type Client interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Verify(ctx context.Context) (*models.User, error)

	ListBikes(ctx context.Context) ([]models.Bike, error)
	CreateBike(ctx context.Context, input models.BikeInput) (*models.Bike, error)
	UpdateBike(ctx context.Context, id string, input models.BikeInput) (*models.Bike, error)
	DeleteBike(ctx context.Context, id string) error

	ListCustomers(ctx context.Context) ([]models.Customer, error)
	CreateCustomer(ctx context.Context, input models.CustomerInput) (*models.Customer, error)
	UpdateCustomer(ctx context.Context, id string, input models.CustomerInput) (*models.Customer, error)
	DeleteCustomer(ctx context.Context, id string) error

	CreateSale(ctx context.Context, input models.SaleInput) (*models.Sale, error)
	ListSales(ctx context.Context) ([]models.Sale, error)
	SalesByCustomer(ctx context.Context, customerID string) ([]models.Sale, error)

	DashboardStats(ctx context.Context) (*models.DashboardStats, error)
	SalesOverview(ctx context.Context, period string) ([]models.SalesOverviewPoint, error)
	TopBikes(ctx context.Context, limit int) ([]models.TopBike, error)
	RevenueStats(ctx context.Context) (*models.RevenueStats, error)

	SetToken(token string)
	ClearToken()
}

// LoginResult mirrors the successful login response.
type LoginResult struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// APIError is a request the backend rejected with a non-2xx status. Message
// carries the server-provided text when the body had one.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error: status=%d, message=%s", e.Status, e.Message)
	}
	return fmt.Sprintf("api error: status=%d", e.Status)
}

// apiErrorBody is the backend's error payload shape.
type apiErrorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (b apiErrorBody) text() string {
	if b.Message != "" {
		return b.Message
	}
	return b.Error
}

// APIClient is a resty-backed implementation of Client.
type APIClient struct {
	httpClient *resty.Client

	mu    sync.RWMutex
	token string
}

// NewClient builds a dealership API client from configuration.
func NewClient(cfg config.APIConfig) *APIClient {
	restyClient := resty.New()
	restyClient.
		SetBaseURL(strings.TrimSuffix(cfg.BaseURL, "/")).
		SetHeader("Content-Type", "application/json").
		SetTimeout(15 * time.Second)

	return &APIClient{httpClient: restyClient}
}

// SetToken sets the bearer token attached to subsequent requests.
func (c *APIClient) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// ClearToken drops the bearer token.
func (c *APIClient) ClearToken() {
	c.SetToken("")
}

func (c *APIClient) request(ctx context.Context) *resty.Request {
	req := c.httpClient.R().SetContext(ctx)

	c.mu.RLock()
	token := c.token
	c.mu.RUnlock()

	if token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}

// checkStatus converts a non-2xx response into an *APIError.
func checkStatus(resp *resty.Response, errBody *apiErrorBody) error {
	if !resp.IsError() {
		return nil
	}
	apiErr := &APIError{Status: resp.StatusCode()}
	if errBody != nil {
		apiErr.Message = errBody.text()
	}
	return apiErr
}

func (c *APIClient) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	result := new(LoginResult)
	errBody := new(apiErrorBody)

	resp, err := c.request(ctx).
		SetBody(map[string]string{"email": email, "password": password}).
		SetResult(result).
		SetError(errBody).
		Post("/api/auth/login")
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if err := checkStatus(resp, errBody); err != nil {
		return nil, err
	}
	return result, nil
}

// Verify checks whether the backend recognizes this device. The bearer token
// is attached when present but the endpoint accepts anonymous calls too.
func (c *APIClient) Verify(ctx context.Context) (*models.User, error) {
	result := new(struct {
		User models.User `json:"user"`
	})
	errBody := new(apiErrorBody)

	resp, err := c.request(ctx).
		SetResult(result).
		SetError(errBody).
		Get("/")
	if err != nil {
		return nil, fmt.Errorf("verify session: %w", err)
	}
	if err := checkStatus(resp, errBody); err != nil {
		return nil, err
	}
	return &result.User, nil
}

func (c *APIClient) ListBikes(ctx context.Context) ([]models.Bike, error) {
	var bikes []models.Bike
	errBody := new(apiErrorBody)

	resp, err := c.request(ctx).
		SetResult(&bikes).
		SetError(errBody).
		Get("/api/bikes")
	if err != nil {
		return nil, fmt.Errorf("list bikes: %w", err)
	}
	if err := checkStatus(resp, errBody); err != nil {
		return nil, err
	}
	return bikes, nil
}

func (c *APIClient) CreateBike(ctx context.Context, input models.BikeInput) (*models.Bike, error) {
	payload := struct {
		models.BikeInput
		Brand string `json:"brand"`
	}{BikeInput: input, Brand: models.DefaultBrand}

	bike := new(models.Bike)
	errBody := new(apiErrorBody)

	resp, err := c.request(ctx).
		SetBody(payload).
		SetResult(bike).
		SetError(errBody).
		Post("/api/bikes")
	if err != nil {
		return nil, fmt.Errorf("create bike: %w", err)
	}
	if err := checkStatus(resp, errBody); err != nil {
		return nil, err
	}
	return bike, nil
}

func (c *APIClient) UpdateBike(ctx context.Context, id string, input models.BikeInput) (*models.Bike, error) {
	bike := new(models.Bike)
	errBody := new(apiErrorBody)

	resp, err := c.request(ctx).
		SetBody(input).
		SetResult(bike).
		SetError(errBody).
		Put("/api/bikes/" + id)
	if err != nil {
		return nil, fmt.Errorf("update bike: %w", err)
	}
	if err := checkStatus(resp, errBody); err != nil {
		return nil, err
	}
	return bike, nil
}

func (c *APIClient) DeleteBike(ctx context.Context, id string) error {
	errBody := new(apiErrorBody)

	resp, err := c.request(ctx).
		SetError(errBody).
		Delete("/api/bikes/" + id)
	if err != nil {
		return fmt.Errorf("delete bike: %w", err)
	}
	return checkStatus(resp, errBody)
}

func (c *APIClient) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	var customers []models.Customer
	errBody := new(apiErrorBody)

	resp, err := c.request(ctx).
		SetResult(&customers).
		SetError(errBody).
		Get("/api/customers")
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	if err := checkStatus(resp, errBody); err != nil {
		return nil, err
	}
	return customers, nil
}

func (c *APIClient) CreateCustomer(ctx context.Context, input models.CustomerInput) (*models.Customer, error) {
	customer := new(models.Customer)
	errBody := new(apiErrorBody)

	resp, err := c.request(ctx).
		SetBody(input).
		SetResult(customer).
		SetError(errBody).
		Post("/api/customers")
	if err != nil {
		return nil, fmt.Errorf("create customer: %w", err)
	}
	if err := checkStatus(resp, errBody); err != nil {
		return nil, err
	}
	return customer, nil
}

func (c *APIClient) UpdateCustomer(ctx context.Context, id string, input models.CustomerInput) (*models.Customer, error) {
	customer := new(models.Customer)
	errBody := new(apiErrorBody)

	resp, err := c.request(ctx).
		SetBody(input).
		SetResult(customer).
		SetError(errBody).
		Put("/api/customers/" + id)
	if err != nil {
		return nil, fmt.Errorf("update customer: %w", err)
	}
	if err := checkStatus(resp, errBody); err != nil {
		return nil, err
	}
	return customer, nil
}

func (c *APIClient) DeleteCustomer(ctx context.Context, id string) error {
	errBody := new(apiErrorBody)

	resp, err := c.request(ctx).
		SetError(errBody).
		Delete("/api/customers/" + id)
	if err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}
	return checkStatus(resp, errBody)
}

func (c *APIClient) CreateSale(ctx context.Context, input models.SaleInput) (*models.Sale, error) {
	sale := new(models.Sale)
	errBody := new(apiErrorBody)

	resp, err := c.request(ctx).
		SetBody(input).
		SetResult(sale).
		SetError(errBody).
		Post("/api/sales")
	if err != nil {
		return nil, fmt.Errorf("create sale: %w", err)
	}
	if err := checkStatus(resp, errBody); err != nil {
		return nil, err
	}
	return sale, nil
}

func (c *APIClient) ListSales(ctx context.Context) ([]models.Sale, error) {
	var sales []models.Sale
	errBody := new(apiErrorBody)

	resp, err := c.request(ctx).
		SetResult(&sales).
		SetError(errBody).
		Get("/api/sales/")
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	if err := checkStatus(resp, errBody); err != nil {
		return nil, err
	}
	return sales, nil
}

func (c *APIClient) SalesByCustomer(ctx context.Context, customerID string) ([]models.Sale, error) {
	var sales []models.Sale
	errBody := new(apiErrorBody)

	resp, err := c.request(ctx).
		SetResult(&sales).
		SetError(errBody).
		Get("/api/sales/" + customerID)
	if err != nil {
		return nil, fmt.Errorf("sales by customer: %w", err)
	}
	if err := checkStatus(resp, errBody); err != nil {
		return nil, err
	}
	return sales, nil
}

func (c *APIClient) DashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	stats := new(models.DashboardStats)
	errBody := new(apiErrorBody)

	resp, err := c.request(ctx).
		SetResult(stats).
		SetError(errBody).
		Get("/api/dashboard/stats")
	if err != nil {
		return nil, fmt.Errorf("dashboard stats: %w", err)
	}
	if err := checkStatus(resp, errBody); err != nil {
		return nil, err
	}
	return stats, nil
}

func (c *APIClient) SalesOverview(ctx context.Context, period string) ([]models.SalesOverviewPoint, error) {
	var points []models.SalesOverviewPoint
	errBody := new(apiErrorBody)

	resp, err := c.request(ctx).
		SetQueryParam("period", period).
		SetResult(&points).
		SetError(errBody).
		Get("/api/dashboard/sales-overview")
	if err != nil {
		return nil, fmt.Errorf("sales overview: %w", err)
	}
	if err := checkStatus(resp, errBody); err != nil {
		return nil, err
	}
	return points, nil
}

func (c *APIClient) TopBikes(ctx context.Context, limit int) ([]models.TopBike, error) {
	if limit <= 0 {
		limit = 5
	}

	var top []models.TopBike
	errBody := new(apiErrorBody)

	resp, err := c.request(ctx).
		SetQueryParam("limit", fmt.Sprintf("%d", limit)).
		SetResult(&top).
		SetError(errBody).
		Get("/api/dashboard/top-bikes")
	if err != nil {
		return nil, fmt.Errorf("top bikes: %w", err)
	}
	if err := checkStatus(resp, errBody); err != nil {
		return nil, err
	}
	return top, nil
}

func (c *APIClient) RevenueStats(ctx context.Context) (*models.RevenueStats, error) {
	stats := new(models.RevenueStats)
	errBody := new(apiErrorBody)

	resp, err := c.request(ctx).
		SetResult(stats).
		SetError(errBody).
		Get("/api/dashboard/revenue")
	if err != nil {
		return nil, fmt.Errorf("revenue stats: %w", err)
	}
	if err := checkStatus(resp, errBody); err != nil {
		return nil, err
	}
	return stats, nil
}
