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
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tomoncle/retaildao/catalog"
	"github.com/tomoncle/retaildao/database"
	"github.com/tomoncle/retaildao/model"
	"github.com/tomoncle/retaildao/types"
	"github.com/uptrace/bun"
)

type CustomerRepository struct {
	*baseRepositoryImpl[model.Customer]
}

var _ Repository[model.Customer] = (*CustomerRepository)(nil)

func NewCustomerRepository(p *database.Provider, c *catalog.Catalog) *CustomerRepository {
	return &CustomerRepository{newBaseRepository[model.Customer](catalog.Customer, p, c)}
}

// FindByEmail returns the customer with email; emails are unique.
func (r *CustomerRepository) FindByEmail(ctx context.Context, email string) (*model.Customer, bool, error) {
	return r.queryOne(ctx, "findByEmail", catalog.Params{"email": email})
}

func (r *CustomerRepository) FindByPhone(ctx context.Context, phone string) ([]*model.Customer, error) {
	return r.query(ctx, "findByPhone", catalog.Params{"phone": phone})
}

func (r *CustomerRepository) FindByStatus(ctx context.Context, status model.CustomerStatus) ([]*model.Customer, error) {
	return r.query(ctx, "findByStatus", catalog.Params{"status": status})
}

func (r *CustomerRepository) FindByType(ctx context.Context, customerType model.CustomerType) ([]*model.Customer, error) {
	return r.query(ctx, "findByType", catalog.Params{"customer_type": customerType})
}

func (r *CustomerRepository) FindByCityAndState(ctx context.Context, city, state string) ([]*model.Customer, error) {
	return r.query(ctx, "findByCityAndState", catalog.Params{"city": city, "state": state})
}

// FindByLastNamePrefix matches last names starting with prefix.
func (r *CustomerRepository) FindByLastNamePrefix(ctx context.Context, prefix string) ([]*model.Customer, error) {
	return r.query(ctx, "findByLastNameLike", catalog.Params{"pattern": escapeLike(prefix) + "%"})
}

// SearchByName matches term anywhere in the first or last name, ignoring case.
func (r *CustomerRepository) SearchByName(ctx context.Context, term string) ([]*model.Customer, error) {
	return r.query(ctx, "searchByName", catalog.Params{"pattern": like(term)})
}

// FindByEmailDomain matches addresses ending in "@"+domain, ignoring case.
func (r *CustomerRepository) FindByEmailDomain(ctx context.Context, domain string) ([]*model.Customer, error) {
	return r.query(ctx, "findByEmailDomain", catalog.Params{"pattern": "%@" + escapeLike(strings.ToLower(domain))})
}

// FindByCreditLimitRange is inclusive on both ends.
func (r *CustomerRepository) FindByCreditLimitRange(ctx context.Context, min, max decimal.Decimal) ([]*model.Customer, error) {
	return r.query(ctx, "findByCreditLimitRange", catalog.Params{"min": min, "max": max})
}

func (r *CustomerRepository) FindByStatesIn(ctx context.Context, states ...string) ([]*model.Customer, error) {
	if len(states) == 0 {
		return []*model.Customer{}, nil
	}
	return r.query(ctx, "findByStatesIn", catalog.Params{"states": bun.In(states)})
}

func (r *CustomerRepository) FindWithoutPhone(ctx context.Context) ([]*model.Customer, error) {
	return r.query(ctx, "findWithoutPhone", nil)
}

// FindCreatedBetween returns customers created in [from, to).
func (r *CustomerRepository) FindCreatedBetween(ctx context.Context, from, to time.Time) ([]*model.Customer, error) {
	return r.query(ctx, "findCreatedBetween", catalog.Params{"from": from.UTC(), "to": to.UTC()})
}

func (r *CustomerRepository) FindAboveAverageCredit(ctx context.Context) ([]*model.Customer, error) {
	return r.query(ctx, "findAboveAverageCredit", nil)
}

func (r *CustomerRepository) UpdateStatus(ctx context.Context, id int64, status model.CustomerStatus) error {
	if !status.IsValid() {
		return r.invalid("updateStatus", "unknown customer status %q", status)
	}
	return r.execOne(ctx, "updateStatus", catalog.Params{"id": id, "status": status})
}

func (r *CustomerRepository) UpdateEmail(ctx context.Context, id int64, email string) error {
	return r.execOne(ctx, "updateEmail", catalog.Params{"id": id, "email": email})
}

func (r *CustomerRepository) UpdateCreditLimit(ctx context.Context, id int64, limit decimal.Decimal) error {
	return r.execOne(ctx, "updateCreditLimit", catalog.Params{"id": id, "credit_limit": limit})
}

// IncreaseCreditLimit adds amount, which may be negative, to the current limit.
func (r *CustomerRepository) IncreaseCreditLimit(ctx context.Context, id int64, amount decimal.Decimal) error {
	return r.execOne(ctx, "increaseCreditLimit", catalog.Params{"id": id, "amount": amount})
}

// UpdateStatusByCity sets status on every customer in city and returns how
// many rows changed.
func (r *CustomerRepository) UpdateStatusByCity(ctx context.Context, city string, status model.CustomerStatus) (int64, error) {
	if !status.IsValid() {
		return 0, r.invalid("updateStatusByCity", "unknown customer status %q", status)
	}
	return r.exec(ctx, "updateStatusByCity", catalog.Params{"city": city, "status": status})
}

func (r *CustomerRepository) CountAll(ctx context.Context) (int64, error) {
	return r.count(ctx, "countAll", nil)
}

func (r *CustomerRepository) CountByStatus(ctx context.Context, status model.CustomerStatus) (int64, error) {
	return r.count(ctx, "countByStatus", catalog.Params{"status": status})
}

func (r *CustomerRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, "existsByEmail", catalog.Params{"email": email})
}

func (r *CustomerRepository) SumCreditLimit(ctx context.Context) (decimal.Decimal, error) {
	return r.sum(ctx, "sumCreditLimit", nil)
}

// AvgCreditLimit is invalid when there are no customers. MaxCreditLimit and
// MinCreditLimit behave the same way.
func (r *CustomerRepository) AvgCreditLimit(ctx context.Context) (decimal.NullDecimal, error) {
	return r.decimalValue(ctx, "avgCreditLimit", nil)
}

func (r *CustomerRepository) MaxCreditLimit(ctx context.Context) (decimal.NullDecimal, error) {
	return r.decimalValue(ctx, "maxCreditLimit", nil)
}

func (r *CustomerRepository) MinCreditLimit(ctx context.Context) (decimal.NullDecimal, error) {
	return r.decimalValue(ctx, "minCreditLimit", nil)
}

func (r *CustomerRepository) CountByState(ctx context.Context) ([]types.Grouped[string, int64], error) {
	return grouped[string, int64](ctx, r.baseRepositoryImpl, "countByState", nil)
}

func (r *CustomerRepository) SumCreditByType(ctx context.Context) ([]types.Grouped[model.CustomerType, decimal.Decimal], error) {
	return grouped[model.CustomerType, decimal.Decimal](ctx, r.baseRepositoryImpl, "sumCreditByType", nil)
}

// StatesWithMinCustomers returns states having at least minCount customers.
func (r *CustomerRepository) StatesWithMinCustomers(ctx context.Context, minCount int64) ([]types.Grouped[string, int64], error) {
	return grouped[string, int64](ctx, r.baseRepositoryImpl, "statesWithMinCustomers", catalog.Params{"min_count": minCount})
}

func (r *CustomerRepository) DeleteByStatus(ctx context.Context, status model.CustomerStatus) (int64, error) {
	return r.exec(ctx, "deleteByStatus", catalog.Params{"status": status})
}

// CustomersWithoutOrders returns customers that no order references.
func (r *CustomerRepository) CustomersWithoutOrders(ctx context.Context) ([]*model.Customer, error) {
	return r.query(ctx, "customersWithoutOrders", nil)
}
