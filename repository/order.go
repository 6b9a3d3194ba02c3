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
	"time"

	"github.com/shopspring/decimal"
	"github.com/tomoncle/retaildao/catalog"
	"github.com/tomoncle/retaildao/database"
	"github.com/tomoncle/retaildao/model"
	"github.com/tomoncle/retaildao/types"
	"github.com/uptrace/bun"
)

type OrderRepository struct {
	*baseRepositoryImpl[model.Order]
}

var _ Repository[model.Order] = (*OrderRepository)(nil)

func NewOrderRepository(p *database.Provider, c *catalog.Catalog) *OrderRepository {
	return &OrderRepository{newBaseRepository[model.Order](catalog.Order, p, c)}
}

// FindByCustomer returns the customer's orders, newest first.
func (r *OrderRepository) FindByCustomer(ctx context.Context, customerID int64) ([]*model.Order, error) {
	return r.query(ctx, "findByCustomer", catalog.Params{"customer_id": customerID})
}

func (r *OrderRepository) FindByStatus(ctx context.Context, status model.OrderStatus) ([]*model.Order, error) {
	return r.query(ctx, "findByStatus", catalog.Params{"status": status})
}

func (r *OrderRepository) FindByPaymentStatus(ctx context.Context, status model.PaymentStatus) ([]*model.Order, error) {
	return r.query(ctx, "findByPaymentStatus", catalog.Params{"payment_status": status})
}

// FindByOrderDateRange returns orders placed in [from, to).
func (r *OrderRepository) FindByOrderDateRange(ctx context.Context, from, to time.Time) ([]*model.Order, error) {
	return r.query(ctx, "findByOrderDateRange", catalog.Params{"from": from.UTC(), "to": to.UTC()})
}

func (r *OrderRepository) FindByTotalRange(ctx context.Context, min, max decimal.Decimal) ([]*model.Order, error) {
	return r.query(ctx, "findByTotalRange", catalog.Params{"min": min, "max": max})
}

func (r *OrderRepository) FindByShippingState(ctx context.Context, state string) ([]*model.Order, error) {
	return r.query(ctx, "findByShippingState", catalog.Params{"state": state})
}

func (r *OrderRepository) FindByStatusesIn(ctx context.Context, statuses ...model.OrderStatus) ([]*model.Order, error) {
	if len(statuses) == 0 {
		return []*model.Order{}, nil
	}
	return r.query(ctx, "findByStatusesIn", catalog.Params{"statuses": bun.In(statuses)})
}

func (r *OrderRepository) FindShippedNotDelivered(ctx context.Context) ([]*model.Order, error) {
	return r.query(ctx, "findShippedNotDelivered", nil)
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id int64, status model.OrderStatus) error {
	if !status.IsValid() {
		return r.invalid("updateStatus", "unknown order status %q", status)
	}
	return r.execOne(ctx, "updateStatus", catalog.Params{"id": id, "status": status})
}

func (r *OrderRepository) UpdatePaymentStatus(ctx context.Context, id int64, status model.PaymentStatus) error {
	if !status.IsValid() {
		return r.invalid("updatePaymentStatus", "unknown payment status %q", status)
	}
	return r.execOne(ctx, "updatePaymentStatus", catalog.Params{"id": id, "payment_status": status})
}

// MarkShipped moves the order to SHIPPED with the given ship date.
func (r *OrderRepository) MarkShipped(ctx context.Context, id int64, shipped time.Time) error {
	return r.execOne(ctx, "markShipped", catalog.Params{
		"id":           id,
		"status":       model.OrderShipped,
		"shipped_date": shipped.UTC(),
	})
}

// MarkDelivered moves the order to DELIVERED with the given delivery date.
func (r *OrderRepository) MarkDelivered(ctx context.Context, id int64, delivered time.Time) error {
	return r.execOne(ctx, "markDelivered", catalog.Params{
		"id":             id,
		"status":         model.OrderDelivered,
		"delivered_date": delivered.UTC(),
	})
}

// UpdateTotalAmount overwrites the stored total. RecalculateTotal is the
// path that keeps it equal to the item sum.
func (r *OrderRepository) UpdateTotalAmount(ctx context.Context, id int64, total decimal.Decimal) error {
	return r.execOne(ctx, "updateTotalAmount", catalog.Params{"id": id, "total_amount": total})
}

// RecalculateTotal sets total_amount to the sum of the order's item totals.
func (r *OrderRepository) RecalculateTotal(ctx context.Context, id int64) error {
	return r.execOne(ctx, "recalculateTotal", catalog.Params{"id": id})
}

func (r *OrderRepository) CountByCustomer(ctx context.Context, customerID int64) (int64, error) {
	return r.count(ctx, "countByCustomer", catalog.Params{"customer_id": customerID})
}

func (r *OrderRepository) SumTotalByCustomer(ctx context.Context, customerID int64) (decimal.Decimal, error) {
	return r.sum(ctx, "sumTotalByCustomer", catalog.Params{"customer_id": customerID})
}

func (r *OrderRepository) SumAll(ctx context.Context) (decimal.Decimal, error) {
	return r.sum(ctx, "sumAll", nil)
}

func (r *OrderRepository) AvgOrderValue(ctx context.Context) (decimal.NullDecimal, error) {
	return r.decimalValue(ctx, "avgOrderValue", nil)
}

func (r *OrderRepository) CountByStatusGroup(ctx context.Context) ([]types.Grouped[model.OrderStatus, int64], error) {
	return grouped[model.OrderStatus, int64](ctx, r.baseRepositoryImpl, "countByStatusGroup", nil)
}

func (r *OrderRepository) SumByStatusGroup(ctx context.Context) ([]types.Grouped[model.OrderStatus, decimal.Decimal], error) {
	return grouped[model.OrderStatus, decimal.Decimal](ctx, r.baseRepositoryImpl, "sumByStatusGroup", nil)
}

// CustomersWithMultipleOrders returns customer ids with at least minCount orders.
func (r *OrderRepository) CustomersWithMultipleOrders(ctx context.Context, minCount int64) ([]types.Grouped[int64, int64], error) {
	return grouped[int64, int64](ctx, r.baseRepositoryImpl, "customersWithMultipleOrders", catalog.Params{"min_count": minCount})
}

// DeleteByCustomer removes the customer's orders. Their items are left in place.
func (r *OrderRepository) DeleteByCustomer(ctx context.Context, customerID int64) (int64, error) {
	return r.exec(ctx, "deleteByCustomer", catalog.Params{"customer_id": customerID})
}

// OrdersWithCustomerInfo joins each order with its customer's name and email.
func (r *OrderRepository) OrdersWithCustomerInfo(ctx context.Context) ([]types.Row, error) {
	return r.report(ctx, "ordersWithCustomerInfo", nil)
}
