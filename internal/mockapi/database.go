package mockapi

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"bikedesk/internal/config"
	"bikedesk/internal/domain/models"
)

// Errors surfaced to handlers as business rejections.
var (
	errNotFound          = errors.New("not found")
	errInsufficientStock = errors.New("insufficient stock")
)

type account struct {
	User         models.User
	PasswordHash []byte
}

// database is the in-memory backing state of the development backend. It is
// a stand-in for the production store and resets on restart.
type database struct {
	mu        sync.RWMutex
	admin     account
	bikes     []models.Bike
	customers []models.Customer
	sales     []models.Sale
}

func newDatabase(cfg config.MockAPIConfig) (*database, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	db := &database{
		admin: account{
			User: models.User{
				ID:    "1",
				Name:  "Admin",
				Email: cfg.AdminEmail,
				Role:  "admin",
			},
			PasswordHash: hash,
		},
	}
	db.seed()
	return db, nil
}

// seed loads a small starter inventory so the client has something to show.
func (db *database) seed() {
	now := time.Now().UTC().Format(time.RFC3339)

	db.bikes = []models.Bike{
		{ID: uuid.NewString(), Brand: models.DefaultBrand, Model: "Apache RTR 200", Color: "Matte Black", EngineCC: 197, PurchasePrice: 115000, SellingPrice: 132000, Stock: 4, Status: models.BikeStatusInStock, CreatedAt: now},
		{ID: uuid.NewString(), Brand: models.DefaultBrand, Model: "Raider 125", Color: "Wicked Black", EngineCC: 124, PurchasePrice: 80000, SellingPrice: 95000, Stock: 7, Status: models.BikeStatusInStock, CreatedAt: now},
		{ID: uuid.NewString(), Brand: models.DefaultBrand, Model: "Jupiter", Color: "Pristine White", EngineCC: 113, PurchasePrice: 68000, SellingPrice: 78000, Stock: 1, Status: models.BikeStatusInStock, CreatedAt: now},
	}

	db.customers = []models.Customer{
		{ID: uuid.NewString(), Name: "Rajesh Kumar", Email: "rajesh@example.com", Phone: "9876543210", Address: "12 MG Road", CreatedAt: now},
	}
}

func (db *database) authenticate(email, password string) (*models.User, bool) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	if email != db.admin.User.Email {
		return nil, false
	}
	if bcrypt.CompareHashAndPassword(db.admin.PasswordHash, []byte(password)) != nil {
		return nil, false
	}
	user := db.admin.User
	return &user, true
}

func (db *database) userByID(id string) (*models.User, bool) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	if id != db.admin.User.ID {
		return nil, false
	}
	user := db.admin.User
	return &user, true
}

func (db *database) listBikes() []models.Bike {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return append([]models.Bike(nil), db.bikes...)
}

func (db *database) createBike(bike models.Bike) models.Bike {
	db.mu.Lock()
	defer db.mu.Unlock()
	bike.ID = uuid.NewString()
	bike.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	db.bikes = append(db.bikes, bike)
	return bike
}

func (db *database) updateBike(id string, input models.BikeInput) (*models.Bike, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	for i := range db.bikes {
		if db.bikes[i].ID != id {
			continue
		}
		db.bikes[i].Model = input.Model
		db.bikes[i].Color = input.Color
		db.bikes[i].EngineCC = input.EngineCC
		db.bikes[i].PurchasePrice = input.PurchasePrice
		db.bikes[i].SellingPrice = input.SellingPrice
		db.bikes[i].Stock = input.Stock
		db.bikes[i].Status = input.Status
		db.bikes[i].UpdatedAt = time.Now().UTC().Format(time.RFC3339)
		bike := db.bikes[i]
		return &bike, nil
	}
	return nil, errNotFound
}

func (db *database) deleteBike(id string) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	for i := range db.bikes {
		if db.bikes[i].ID == id {
			db.bikes = append(db.bikes[:i], db.bikes[i+1:]...)
			return nil
		}
	}
	return errNotFound
}

func (db *database) listCustomers() []models.Customer {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return append([]models.Customer(nil), db.customers...)
}

func (db *database) createCustomer(input models.CustomerInput) models.Customer {
	db.mu.Lock()
	defer db.mu.Unlock()
	customer := models.Customer{
		ID:        uuid.NewString(),
		Name:      input.Name,
		Email:     input.Email,
		Phone:     input.Phone,
		Address:   input.Address,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	db.customers = append(db.customers, customer)
	return customer
}

func (db *database) updateCustomer(id string, input models.CustomerInput) (*models.Customer, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	for i := range db.customers {
		if db.customers[i].ID != id {
			continue
		}
		db.customers[i].Name = input.Name
		db.customers[i].Email = input.Email
		db.customers[i].Phone = input.Phone
		db.customers[i].Address = input.Address
		db.customers[i].UpdatedAt = time.Now().UTC().Format(time.RFC3339)
		customer := db.customers[i]
		return &customer, nil
	}
	return nil, errNotFound
}

func (db *database) deleteCustomer(id string) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	for i := range db.customers {
		if db.customers[i].ID == id {
			db.customers = append(db.customers[:i], db.customers[i+1:]...)
			return nil
		}
	}
	return errNotFound
}

// createSale enforces the stock invariant on the server side and moves stock
// atomically with the sale record, under the single write lock.
func (db *database) createSale(input models.SaleInput) (*models.Sale, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var bike *models.Bike
	for i := range db.bikes {
		if db.bikes[i].ID == input.BikeID {
			bike = &db.bikes[i]
			break
		}
	}
	if bike == nil {
		return nil, errNotFound
	}

	found := false
	for i := range db.customers {
		if db.customers[i].ID == input.CustomerID {
			found = true
			break
		}
	}
	if !found {
		return nil, errNotFound
	}

	if input.Quantity < 1 || input.Quantity > bike.Stock {
		return nil, errInsufficientStock
	}

	bike.Stock -= input.Quantity

	sale := models.Sale{
		ID:                 uuid.NewString(),
		BikeID:             input.BikeID,
		CustomerID:         input.CustomerID,
		Quantity:           input.Quantity,
		UnitPrice:          bike.SellingPrice,
		DiscountAmount:     input.DiscountAmount,
		DiscountPercentage: input.DiscountPercentage,
		PaymentMethod:      input.PaymentMethod,
		SaleDate:           input.SaleDate,
	}
	if sale.SaleDate == "" {
		sale.SaleDate = time.Now().UTC().Format(time.RFC3339)
	}
	db.sales = append(db.sales, sale)
	return &sale, nil
}

func (db *database) listSales() []models.Sale {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return append([]models.Sale(nil), db.sales...)
}

func (db *database) salesByCustomer(customerID string) []models.Sale {
	db.mu.RLock()
	defer db.mu.RUnlock()
	out := []models.Sale{}
	for _, sale := range db.sales {
		if sale.CustomerID == customerID {
			out = append(out, sale)
		}
	}
	return out
}
