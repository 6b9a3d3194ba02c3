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

	"github.com/shopspring/decimal"
	"github.com/tomoncle/retaildao/catalog"
	"github.com/tomoncle/retaildao/database"
	"github.com/tomoncle/retaildao/model"
	"github.com/tomoncle/retaildao/types"
)

type OrderItemRepository struct {
	*baseRepositoryImpl[model.OrderItem]
}

var _ Repository[model.OrderItem] = (*OrderItemRepository)(nil)

func NewOrderItemRepository(p *database.Provider, c *catalog.Catalog) *OrderItemRepository {
	return &OrderItemRepository{newBaseRepository[model.OrderItem](catalog.OrderItem, p, c)}
}

// Insert writes item, deriving TotalPrice from the line formula when the
// caller left it zero.
func (r *OrderItemRepository) Insert(ctx context.Context, item *model.OrderItem) error {
	if item == nil {
		return r.invalid(catalog.OpInsert, "entity is nil")
	}
	if item.Quantity < 0 {
		return r.invalid(catalog.OpInsert, "quantity %d is negative", item.Quantity)
	}
	if item.TotalPrice.IsZero() {
		item.TotalPrice = item.LineTotal()
	}
	return r.baseRepositoryImpl.Insert(ctx, item)
}

func (r *OrderItemRepository) FindByOrder(ctx context.Context, orderID int64) ([]*model.OrderItem, error) {
	return r.query(ctx, "findByOrder", catalog.Params{"order_id": orderID})
}

func (r *OrderItemRepository) FindByProduct(ctx context.Context, productID int64) ([]*model.OrderItem, error) {
	return r.query(ctx, "findByProduct", catalog.Params{"product_id": productID})
}

func (r *OrderItemRepository) FindByOrderAndProduct(ctx context.Context, orderID, productID int64) ([]*model.OrderItem, error) {
	return r.query(ctx, "findByOrderAndProduct", catalog.Params{"order_id": orderID, "product_id": productID})
}

func (r *OrderItemRepository) FindByQuantityRange(ctx context.Context, min, max int) ([]*model.OrderItem, error) {
	return r.query(ctx, "findByQuantityRange", catalog.Params{"min": min, "max": max})
}

func (r *OrderItemRepository) FindWithDiscount(ctx context.Context) ([]*model.OrderItem, error) {
	return r.query(ctx, "findWithDiscount", nil)
}

// UpdateQuantity sets the quantity and re-derives total_price.
func (r *OrderItemRepository) UpdateQuantity(ctx context.Context, id int64, quantity int) error {
	if quantity < 0 {
		return r.invalid("updateQuantity", "quantity %d is negative", quantity)
	}
	return r.execOne(ctx, "updateQuantity", catalog.Params{"id": id, "quantity": quantity})
}

// UpdateUnitPrice sets the unit price and re-derives total_price.
func (r *OrderItemRepository) UpdateUnitPrice(ctx context.Context, id int64, price decimal.Decimal) error {
	if price.IsNegative() {
		return r.invalid("updateUnitPrice", "unit price %s is negative", price)
	}
	return r.execOne(ctx, "updateUnitPrice", catalog.Params{"id": id, "unit_price": price})
}

// ApplyDiscount replaces the line discount and re-derives total_price.
func (r *OrderItemRepository) ApplyDiscount(ctx context.Context, id int64, discount decimal.Decimal) error {
	if discount.IsNegative() {
		return r.invalid("applyDiscount", "discount %s is negative", discount)
	}
	return r.execOne(ctx, "applyDiscount", catalog.Params{"id": id, "discount": discount})
}

// IncrementQuantity adds delta, which may be negative, and re-derives total_price.
func (r *OrderItemRepository) IncrementQuantity(ctx context.Context, id int64, delta int) error {
	return r.execOne(ctx, "incrementQuantity", catalog.Params{"id": id, "delta": delta})
}

func (r *OrderItemRepository) CountByOrder(ctx context.Context, orderID int64) (int64, error) {
	return r.count(ctx, "countByOrder", catalog.Params{"order_id": orderID})
}

// SumByOrder is the sum of the order's line totals.
func (r *OrderItemRepository) SumByOrder(ctx context.Context, orderID int64) (decimal.Decimal, error) {
	return r.sum(ctx, "sumByOrder", catalog.Params{"order_id": orderID})
}

func (r *OrderItemRepository) SumQuantityByProduct(ctx context.Context, productID int64) (int64, error) {
	return r.count(ctx, "sumQuantityByProduct", catalog.Params{"product_id": productID})
}

func (r *OrderItemRepository) SumRevenueByProduct(ctx context.Context) ([]types.Grouped[int64, decimal.Decimal], error) {
	return grouped[int64, decimal.Decimal](ctx, r.baseRepositoryImpl, "sumRevenueByProduct", nil)
}

func (r *OrderItemRepository) AvgUnitPrice(ctx context.Context) (decimal.NullDecimal, error) {
	return r.decimalValue(ctx, "avgUnitPrice", nil)
}

// TopSellers returns up to limit product ids by quantity sold, highest first.
func (r *OrderItemRepository) TopSellers(ctx context.Context, limit int) ([]types.Grouped[int64, int64], error) {
	if limit < 0 {
		return nil, r.invalid("topSellers", "limit %d is negative", limit)
	}
	return grouped[int64, int64](ctx, r.baseRepositoryImpl, "topSellers", catalog.Params{"limit": limit})
}

func (r *OrderItemRepository) OrdersWithMultipleItems(ctx context.Context, minCount int64) ([]types.Grouped[int64, int64], error) {
	return grouped[int64, int64](ctx, r.baseRepositoryImpl, "ordersWithMultipleItems", catalog.Params{"min_count": minCount})
}

func (r *OrderItemRepository) DeleteByOrder(ctx context.Context, orderID int64) (int64, error) {
	return r.exec(ctx, "deleteByOrder", catalog.Params{"order_id": orderID})
}

// ItemsWithProductInfo joins the order's items with product code and name.
func (r *OrderItemRepository) ItemsWithProductInfo(ctx context.Context, orderID int64) ([]types.Row, error) {
	return r.report(ctx, "itemsWithProductInfo", catalog.Params{"order_id": orderID})
}
