// Package cli is the terminal front-end. Screens here only read store
// snapshots and invoke store methods; none of them hold state of their own
// beyond the current prompt.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"bikedesk/internal/domain/models"
	"bikedesk/internal/store"
	"bikedesk/pkg/clients/dealer"
)

// Shell drives the interactive session.
type Shell struct {
	store  *store.Store
	client dealer.Client
	logger *zap.Logger
	in     *bufio.Scanner
	out    io.Writer
}

// New builds a shell over the given input and output streams.
func New(st *store.Store, client dealer.Client, in io.Reader, out io.Writer, logger *zap.Logger) *Shell {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Shell{
		store:  st,
		client: client,
		logger: logger,
		in:     bufio.NewScanner(in),
		out:    out,
	}
}

// Run owns the main loop until the operator quits or input ends.
func (sh *Shell) Run(ctx context.Context) {
	sh.store.Initialize(ctx)

	for {
		if sh.store.State() != store.StateAuthenticated {
			if !sh.loginScreen(ctx) {
				return
			}
			continue
		}
		if !sh.menu(ctx) {
			return
		}
	}
}

func (sh *Shell) loginScreen(ctx context.Context) bool {
	fmt.Fprintln(sh.out, "\n== Login (q to quit) ==")
	email, ok := sh.prompt("Email: ")
	if !ok || email == "q" {
		return false
	}
	password, ok := sh.prompt("Password: ")
	if !ok {
		return false
	}

	if err := sh.store.Login(ctx, email, password); err != nil {
		sh.alert("Login Failed", store.UserFacingMessage(err, "Unable to login. Please try again."))
		return true
	}

	session := sh.store.Session()
	fmt.Fprintf(sh.out, "Welcome, %s\n", session.User.Name)
	return true
}

func (sh *Shell) menu(ctx context.Context) bool {
	fmt.Fprintln(sh.out, "\n1) Dashboard  2) Inventory  3) Customers  4) New sale  5) Customer sales  6) Refresh  7) Logout  q) Quit")
	choice, ok := sh.prompt("> ")
	if !ok {
		return false
	}

	switch choice {
	case "1":
		sh.dashboardScreen(ctx)
	case "2":
		sh.inventoryScreen(ctx)
	case "3":
		sh.customersScreen(ctx)
	case "4":
		sh.sellScreen(ctx)
	case "5":
		sh.customerSalesScreen(ctx)
	case "6":
		sh.store.Refresh(ctx)
		fmt.Fprintln(sh.out, "Collections refreshed.")
	case "7":
		if err := sh.store.Logout(); err != nil {
			sh.alert("Logout", store.UserFacingMessage(err, "Could not clear saved session."))
		}
	case "q":
		return false
	}
	return true
}

func (sh *Shell) dashboardScreen(ctx context.Context) {
	stats, err := sh.client.DashboardStats(ctx)
	if err != nil {
		sh.alert("Dashboard", store.UserFacingMessage(err, "Could not load dashboard."))
		return
	}
	fmt.Fprintf(sh.out, "Bikes: %d  In stock: %d  Sold today: %d  Revenue today: %.2f  Low stock: %d  Customers: %d\n",
		stats.TotalBikes, stats.InStock, stats.SoldToday, stats.RevenueToday, stats.LowStock, stats.TotalCustomers)

	revenue, err := sh.client.RevenueStats(ctx)
	if err == nil {
		fmt.Fprintf(sh.out, "Revenue  today: %.2f  week: %.2f  month: %.2f  total: %.2f\n",
			revenue.Today, revenue.ThisWeek, revenue.ThisMonth, revenue.Total)
	}

	top, err := sh.client.TopBikes(ctx, 5)
	if err == nil && len(top) > 0 {
		fmt.Fprintln(sh.out, "Top sellers:")
		for _, t := range top {
			fmt.Fprintf(sh.out, "  %-20s %d units\n", t.Model, t.UnitsSold)
		}
	}
}

func (sh *Shell) inventoryScreen(ctx context.Context) {
	bikes := sh.store.Bikes()
	stats := models.AggregateInventory(bikes)
	fmt.Fprintf(sh.out, "Inventory: %d models, %d in stock, %d sold, %d units, value %.2f\n",
		stats.TotalBikes, stats.InStock, stats.Sold, stats.TotalStock, stats.StockValue)
	for _, b := range bikes {
		fmt.Fprintf(sh.out, "  [%s] %s %s %s %dcc  sell %.2f  stock %d  %s\n",
			b.ID, b.Brand, b.Model, b.Color, b.EngineCC, b.SellingPrice, b.Stock, b.Status)
	}

	action, ok := sh.prompt("a)dd  e)dit  d)elete  enter to go back: ")
	if !ok {
		return
	}
	switch action {
	case "a":
		input, ok := sh.promptBike(models.BikeInput{Status: models.BikeStatusInStock, Stock: 1})
		if !ok {
			return
		}
		if _, err := sh.store.CreateBike(ctx, input); err != nil {
			sh.alert("Inventory", store.UserFacingMessage(err, "Failed to add bike. Please try again."))
		} else {
			fmt.Fprintln(sh.out, "Bike added successfully")
		}
	case "e":
		id, ok := sh.prompt("Bike id: ")
		if !ok {
			return
		}
		input, ok := sh.promptBike(models.BikeInput{Status: models.BikeStatusInStock})
		if !ok {
			return
		}
		if err := sh.store.UpdateBike(ctx, id, input); err != nil {
			sh.alert("Inventory", store.UserFacingMessage(err, "Failed to update bike. Please try again."))
		} else {
			fmt.Fprintln(sh.out, "Bike updated successfully")
		}
	case "d":
		id, ok := sh.prompt("Bike id: ")
		if !ok {
			return
		}
		if err := sh.store.DeleteBike(ctx, id); err != nil {
			sh.alert("Inventory", store.UserFacingMessage(err, "Failed to delete bike. Please try again."))
		} else {
			fmt.Fprintln(sh.out, "Bike deleted successfully")
		}
	}
}

func (sh *Shell) promptBike(def models.BikeInput) (models.BikeInput, bool) {
	model, ok := sh.prompt("Model: ")
	if !ok {
		return def, false
	}
	color, ok := sh.prompt("Color: ")
	if !ok {
		return def, false
	}
	cc, ok := sh.promptInt("Engine CC: ", 0)
	if !ok {
		return def, false
	}
	purchase, ok := sh.promptFloat("Purchase price: ", 0)
	if !ok {
		return def, false
	}
	selling, ok := sh.promptFloat("Selling price: ", 0)
	if !ok {
		return def, false
	}
	stock, ok := sh.promptInt("Stock: ", def.Stock)
	if !ok {
		return def, false
	}

	def.Model = model
	def.Color = color
	def.EngineCC = cc
	def.PurchasePrice = purchase
	def.SellingPrice = selling
	def.Stock = stock
	return def, true
}

func (sh *Shell) customersScreen(ctx context.Context) {
	for _, c := range sh.store.Customers() {
		fmt.Fprintf(sh.out, "  [%s] %s  %s  %s  %s\n", c.ID, c.Name, c.Phone, c.Email, c.Address)
	}

	action, ok := sh.prompt("a)dd  e)dit  d)elete  enter to go back: ")
	if !ok {
		return
	}
	switch action {
	case "a":
		input, ok := sh.promptCustomer()
		if !ok {
			return
		}
		if _, err := sh.store.CreateCustomer(ctx, input); err != nil {
			sh.alert("Customers", store.UserFacingMessage(err, "Failed to add customer"))
		} else {
			fmt.Fprintln(sh.out, "Customer created successfully!")
		}
	case "e":
		id, ok := sh.prompt("Customer id: ")
		if !ok {
			return
		}
		input, ok := sh.promptCustomer()
		if !ok {
			return
		}
		if err := sh.store.UpdateCustomer(ctx, id, input); err != nil {
			sh.alert("Customers", store.UserFacingMessage(err, "Failed to update customer"))
		} else {
			fmt.Fprintln(sh.out, "Customer updated successfully!")
		}
	case "d":
		id, ok := sh.prompt("Customer id: ")
		if !ok {
			return
		}
		if err := sh.store.DeleteCustomer(ctx, id); err != nil {
			sh.alert("Customers", store.UserFacingMessage(err, "Failed to delete customer"))
		} else {
			fmt.Fprintln(sh.out, "Customer deleted")
		}
	}
}

func (sh *Shell) promptCustomer() (models.CustomerInput, bool) {
	var input models.CustomerInput
	var ok bool
	if input.Name, ok = sh.prompt("Name: "); !ok {
		return input, false
	}
	if input.Email, ok = sh.prompt("Email: "); !ok {
		return input, false
	}
	if input.Phone, ok = sh.prompt("Phone: "); !ok {
		return input, false
	}
	if input.Address, ok = sh.prompt("Address: "); !ok {
		return input, false
	}
	return input, true
}

func (sh *Shell) sellScreen(ctx context.Context) {
	bikeID, ok := sh.prompt("Bike id: ")
	if !ok {
		return
	}
	if err := sh.store.SelectBike(bikeID); err != nil {
		sh.alert("New Sale", "Please select a bike")
		return
	}

	customerID, ok := sh.prompt("Customer id: ")
	if !ok {
		return
	}
	if err := sh.store.SelectCustomer(customerID); err != nil {
		sh.alert("New Sale", "Please select a customer")
		return
	}

	qty, ok := sh.promptInt("Quantity: ", 1)
	if !ok {
		return
	}
	sh.store.SetQuantity(qty)

	discount, ok := sh.promptFloat("Discount %: ", 0)
	if !ok {
		return
	}
	sh.store.SetDiscount(discount)

	method, ok := sh.prompt("Payment (cash/card/upi/cheque): ")
	if !ok {
		return
	}
	if method != "" {
		sh.store.SetPaymentMethod(method)
	}

	draft := sh.store.Draft()
	fmt.Fprintf(sh.out, "Subtotal %.2f  Discount %.2f  Total %.2f\n",
		draft.Subtotal(), draft.DiscountAmount(), draft.GrandTotal())

	confirm, ok := sh.prompt("Confirm sale? (y/n): ")
	if !ok || confirm != "y" {
		return
	}

	sale, err := sh.store.RecordSale(ctx)
	if err != nil {
		sh.alert("New Sale", store.UserFacingMessage(err, "Sale Error!"))
		return
	}
	fmt.Fprintf(sh.out, "Sale completed successfully! (id %s)\n", sale.ID)
}

func (sh *Shell) customerSalesScreen(ctx context.Context) {
	id, ok := sh.prompt("Customer id: ")
	if !ok {
		return
	}

	sales, err := sh.store.FetchCustomerSales(ctx, id)
	if err != nil {
		sh.alert("Sales History", store.UserFacingMessage(err, "Could not load sales."))
		return
	}
	if len(sales) == 0 {
		fmt.Fprintln(sh.out, "No sales for this customer.")
		return
	}
	for _, s := range sales {
		total := s.UnitPrice*float64(s.Quantity) - s.DiscountAmount
		fmt.Fprintf(sh.out, "  %s  qty %d  unit %.2f  total %.2f  %s  %s\n",
			s.ID, s.Quantity, s.UnitPrice, total, s.PaymentMethod, s.SaleDate)
	}
}

func (sh *Shell) prompt(label string) (string, bool) {
	fmt.Fprint(sh.out, label)
	if !sh.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(sh.in.Text()), true
}

func (sh *Shell) promptInt(label string, def int) (int, bool) {
	text, ok := sh.prompt(label)
	if !ok {
		return 0, false
	}
	if text == "" {
		return def, true
	}
	n, err := strconv.Atoi(text)
	if err != nil {
		return def, true
	}
	return n, true
}

func (sh *Shell) promptFloat(label string, def float64) (float64, bool) {
	text, ok := sh.prompt(label)
	if !ok {
		return 0, false
	}
	if text == "" {
		return def, true
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return def, true
	}
	return f, true
}

func (sh *Shell) alert(title, message string) {
	fmt.Fprintf(sh.out, "[%s] %s\n", title, message)
}
