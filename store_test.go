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

package retaildao

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tomoncle/retaildao/catalog"
	"github.com/tomoncle/retaildao/database"
	"github.com/tomoncle/retaildao/model"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	ctx := context.Background()

	cfg := database.DefaultConfig()
	cfg.Connection.DBName = filepath.Join(t.TempDir(), "retail")

	s, err := Open(ctx, cfg, database.WithLogger(database.NopLogger()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	schema, err := os.ReadFile(filepath.Join("repository", "testdata", "schema.sql"))
	require.NoError(t, err)
	_, err = database.NewScriptRunner(s.Provider()).Run(ctx, "schema.sql", string(schema))
	require.NoError(t, err)
	return s
}

func TestOpenRejectsNilConfig(t *testing.T) {
	_, err := Open(context.Background(), nil)
	require.Error(t, err)
}

func TestStoreWiring(t *testing.T) {
	s := openStore(t)

	assert.Same(t, catalog.Default(), s.Catalog())
	assert.Equal(t, catalog.Customer, s.Customers.Entity())
	assert.Equal(t, catalog.Product, s.Products.Entity())
	assert.Equal(t, catalog.Order, s.Orders.Entity())
	assert.Equal(t, catalog.OrderItem, s.OrderItems.Entity())
	assert.Equal(t, catalog.Invoice, s.Invoices.Entity())
	assert.Equal(t, catalog.Supplier, s.Suppliers.Entity())
	assert.Equal(t, catalog.Employee, s.Employees.Entity())
	assert.Equal(t, catalog.Category, s.Categories.Entity())

	health := s.HealthCheck(context.Background())
	assert.True(t, health.Healthy)
	assert.Empty(t, health.LastError)
}

func TestStoreRoundTrip(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	c := &model.Customer{
		ID:           1,
		FirstName:    "Ada",
		LastName:     "Lovelace",
		Email:        "ada@example.com",
		City:         "London",
		Country:      "UK",
		Status:       model.CustomerActive,
		CreditLimit:  decimal.NewFromInt(500),
		CustomerType: model.CustomerStandard,
	}
	require.NoError(t, s.Customers.Insert(ctx, c))

	o := &model.Order{
		ID:            10,
		CustomerID:    1,
		OrderDate:     time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
		Status:        model.OrderPending,
		PaymentStatus: model.PaymentUnpaid,
		TotalAmount:   decimal.NewFromInt(42),
	}
	require.NoError(t, s.Orders.Insert(ctx, o))

	got, found, err := s.Customers.FindByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Ada Lovelace", got.FullName())

	orders, err := s.Orders.FindByCustomer(ctx, 1)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.EqualValues(t, 10, orders[0].ID)
}
