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
	"fmt"

	"github.com/tomoncle/retaildao/catalog"
	"github.com/tomoncle/retaildao/database"
	"github.com/tomoncle/retaildao/repository"
	"github.com/tomoncle/retaildao/utils"
)

// Store bundles a connected Provider with one repository per retail entity.
// All repositories share the Provider and the Catalog.
type Store struct {
	provider *database.Provider
	catalog  *catalog.Catalog

	Customers  *repository.CustomerRepository
	Products   *repository.ProductRepository
	Orders     *repository.OrderRepository
	OrderItems *repository.OrderItemRepository
	Invoices   *repository.InvoiceRepository
	Suppliers  *repository.SupplierRepository
	Employees  *repository.EmployeeRepository
	Categories *repository.CategoryRepository
}

// Open applies the log settings of cfg, connects a Provider and builds a Store
// on the default catalog.
func Open(ctx context.Context, cfg *database.Config, opts ...database.Option) (*Store, error) {
	if cfg == nil {
		return nil, fmt.Errorf("store configuration cannot be empty")
	}
	if cfg.Log.Format != "" {
		utils.ConfigureConsoleLogFormat(cfg.Log.Format)
	}
	if cfg.Log.Level != "" {
		utils.ConfigureLogLevel(cfg.Log.Level)
	}

	p, err := database.Open(ctx, &cfg.Connection, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	return New(p, nil), nil
}

// New wires the repositories over an existing Provider. A nil catalog selects
// catalog.Default().
func New(p *database.Provider, c *catalog.Catalog) *Store {
	if c == nil {
		c = catalog.Default()
	}
	return &Store{
		provider:   p,
		catalog:    c,
		Customers:  repository.NewCustomerRepository(p, c),
		Products:   repository.NewProductRepository(p, c),
		Orders:     repository.NewOrderRepository(p, c),
		OrderItems: repository.NewOrderItemRepository(p, c),
		Invoices:   repository.NewInvoiceRepository(p, c),
		Suppliers:  repository.NewSupplierRepository(p, c),
		Employees:  repository.NewEmployeeRepository(p, c),
		Categories: repository.NewCategoryRepository(p, c),
	}
}

func (s *Store) Provider() *database.Provider { return s.provider }

func (s *Store) Catalog() *catalog.Catalog { return s.catalog }

// HealthCheck reports on the underlying connection pool.
func (s *Store) HealthCheck(ctx context.Context) *database.HealthStatus {
	return s.provider.HealthCheck(ctx)
}

// Close releases the pool. Repositories must not be used afterwards.
func (s *Store) Close() error {
	return s.provider.Close()
}
