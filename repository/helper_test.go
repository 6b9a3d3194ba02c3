/*
 * Copyright 2025 tomoncle.
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/tomoncle/retaildao/catalog"
	"github.com/tomoncle/retaildao/database"
	"github.com/tomoncle/retaildao/model"
)

var epoch = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

// stepClock advances one second on every reading.
type stepClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Second)
	return c.now
}

type fixture struct {
	provider   *database.Provider
	customers  *CustomerRepository
	products   *ProductRepository
	orders     *OrderRepository
	items      *OrderItemRepository
	invoices   *InvoiceRepository
	suppliers  *SupplierRepository
	employees  *EmployeeRepository
	categories *CategoryRepository
}

func newFixture(t *testing.T, tweaks ...func(*database.ConnectionConfig)) *fixture {
	t.Helper()
	ctx := context.Background()

	cfg := database.DefaultConnectionConfig()
	cfg.DBName = filepath.Join(t.TempDir(), "retail")
	for _, tweak := range tweaks {
		tweak(&cfg)
	}
	clock := &stepClock{now: epoch}

	p, err := database.Open(ctx, &cfg,
		database.WithClock(clock.Now),
		database.WithLogger(database.NopLogger()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close() })

	schema, err := os.ReadFile(filepath.Join("testdata", "schema.sql"))
	require.NoError(t, err)
	_, err = database.NewScriptRunner(p).Run(ctx, "schema.sql", string(schema))
	require.NoError(t, err)

	c := catalog.Default()
	return &fixture{
		provider:   p,
		customers:  NewCustomerRepository(p, c),
		products:   NewProductRepository(p, c),
		orders:     NewOrderRepository(p, c),
		items:      NewOrderItemRepository(p, c),
		invoices:   NewInvoiceRepository(p, c),
		suppliers:  NewSupplierRepository(p, c),
		employees:  NewEmployeeRepository(p, c),
		categories: NewCategoryRepository(p, c),
	}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// requireDecimal compares at cent precision; SQLite stores NUMERIC as REAL.
func requireDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	require.Truef(t, dec(want).Equal(got.Round(2)), "want %s, got %s", want, got)
}

func customer(id int64, first, last, email, city, state string, limit string) *model.Customer {
	return &model.Customer{
		ID:           id,
		FirstName:    first,
		LastName:     last,
		Email:        email,
		Phone:        fmt.Sprintf("555-%04d", id),
		City:         city,
		State:        state,
		Country:      "US",
		Status:       model.CustomerActive,
		CreditLimit:  dec(limit),
		CustomerType: model.CustomerStandard,
	}
}

func product(id int64, code, name, category, price string, stock, reorder int) *model.Product {
	return &model.Product{
		ID:            id,
		Code:          code,
		Name:          name,
		Category:      category,
		Price:         dec(price),
		Cost:          dec(price).Div(decimal.NewFromInt(2)),
		StockQuantity: stock,
		ReorderLevel:  reorder,
		Status:        model.ProductActive,
		Barcode:       "BC-" + code,
	}
}

func order(id, customerID int64, status model.OrderStatus, placed time.Time) *model.Order {
	return &model.Order{
		ID:            id,
		CustomerID:    customerID,
		OrderDate:     placed,
		Status:        status,
		ShippingState: "CA",
		PaymentMethod: "CARD",
		PaymentStatus: model.PaymentUnpaid,
	}
}

func item(id, orderID, productID int64, qty int, unitPrice, discount string) *model.OrderItem {
	return &model.OrderItem{
		ID:        id,
		OrderID:   orderID,
		ProductID: productID,
		Quantity:  qty,
		UnitPrice: dec(unitPrice),
		Discount:  dec(discount),
	}
}

func invoice(id, customerID int64, number string, due time.Time, total, paid string, status model.PaymentStatus) *model.Invoice {
	return &model.Invoice{
		ID:            id,
		OrderID:       id,
		CustomerID:    customerID,
		Number:        number,
		InvoiceDate:   due.AddDate(0, 0, -30),
		DueDate:       due,
		Subtotal:      dec(total),
		TotalAmount:   dec(total),
		PaidAmount:    dec(paid),
		PaymentStatus: status,
	}
}

func category(id int64, name string, parent *int64, order int) *model.Category {
	return &model.Category{
		ID:               id,
		Name:             name,
		ParentCategoryID: parent,
		DisplayOrder:     order,
		Status:           model.StatusActive,
	}
}

func employee(id int64, first, last, department string, manager *int64) *model.Employee {
	return &model.Employee{
		ID:         id,
		FirstName:  first,
		LastName:   last,
		Email:      first + "." + last + "@retail.example",
		Department: department,
		Position:   "Associate",
		ManagerID:  manager,
		HireDate:   epoch.AddDate(-1, 0, int(id)),
		Status:     model.StatusActive,
	}
}
