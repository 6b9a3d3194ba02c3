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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tomoncle/retaildao/database"
	"github.com/tomoncle/retaildao/model"
	"github.com/tomoncle/retaildao/types"
)

func orderID(o *model.Order) int64 { return o.ID }

func itemID(i *model.OrderItem) int64 { return i.ID }

func seedOrders(t *testing.T, f *fixture) {
	t.Helper()
	ctx := context.Background()
	seedCustomers(t, f)

	orders := []*model.Order{
		order(100, 1, model.OrderPending, epoch.AddDate(0, 0, -3)),
		order(101, 1, model.OrderShipped, epoch.AddDate(0, 0, -2)),
		order(102, 2, model.OrderDelivered, epoch.AddDate(0, 0, -1)),
	}
	orders[1].ShippingState = "NV"
	orders[2].PaymentStatus = model.PaymentPaid
	for _, o := range orders {
		require.NoError(t, f.orders.Insert(ctx, o))
	}

	require.NoError(t, f.products.Insert(ctx, product(1, "P-1", "Widget", "Tools", "9.99", 50, 10)))
	require.NoError(t, f.products.Insert(ctx, product(2, "P-2", "Gadget", "Tools", "5.00", 5, 10)))

	for _, it := range []*model.OrderItem{
		item(1000, 100, 1, 3, "9.99", "0"),
		item(1001, 101, 1, 1, "9.99", "0"),
		item(1002, 101, 2, 2, "5.00", "1.00"),
		item(1003, 102, 2, 4, "5.00", "0"),
	} {
		require.NoError(t, f.items.Insert(ctx, it))
	}
}

func TestOrderItemInsertDerivesTotal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	it := item(1, 1, 1, 3, "9.99", "0")
	require.NoError(t, f.items.Insert(ctx, it))
	requireDecimal(t, "29.97", it.TotalPrice)

	sum, err := f.items.SumByOrder(ctx, 1)
	require.NoError(t, err)
	requireDecimal(t, "29.97", sum)

	explicit := item(2, 1, 1, 1, "9.99", "0")
	explicit.TotalPrice = dec("8.00")
	require.NoError(t, f.items.Insert(ctx, explicit))
	got, found, err := f.items.FindByID(ctx, 2)
	require.NoError(t, err)
	require.True(t, found)
	requireDecimal(t, "8.00", got.TotalPrice)

	require.ErrorIs(t, f.items.Insert(ctx, item(3, 1, 1, -1, "1", "0")), database.ErrInvalidArgument)
}

func TestOrderItemUpdatesRederiveTotal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.items.Insert(ctx, item(1, 1, 1, 2, "10.00", "1.00")))

	check := func(wantQty int, wantUnit, wantDiscount, wantTotal string) {
		t.Helper()
		got, found, err := f.items.FindByID(ctx, 1)
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, wantQty, got.Quantity)
		requireDecimal(t, wantUnit, got.UnitPrice)
		requireDecimal(t, wantDiscount, got.Discount)
		requireDecimal(t, wantTotal, got.TotalPrice)
		requireDecimal(t, got.LineTotal().Round(2).String(), got.TotalPrice)
	}
	check(2, "10.00", "1.00", "19.00")

	require.NoError(t, f.items.UpdateQuantity(ctx, 1, 5))
	check(5, "10.00", "1.00", "49.00")

	require.NoError(t, f.items.UpdateUnitPrice(ctx, 1, dec("12.50")))
	check(5, "12.50", "1.00", "61.50")

	require.NoError(t, f.items.ApplyDiscount(ctx, 1, dec("2.50")))
	check(5, "12.50", "2.50", "60.00")

	require.NoError(t, f.items.IncrementQuantity(ctx, 1, 2))
	check(7, "12.50", "2.50", "85.00")

	require.NoError(t, f.items.IncrementQuantity(ctx, 1, -3))
	check(4, "12.50", "2.50", "47.50")

	require.ErrorIs(t, f.items.UpdateQuantity(ctx, 99, 1), database.ErrNoRowsAffected)
	require.ErrorIs(t, f.items.ApplyDiscount(ctx, 1, dec("-1")), database.ErrInvalidArgument)
}

func TestOrderItemQueries(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	seedOrders(t, f)

	byOrder, err := f.items.FindByOrder(ctx, 101)
	require.NoError(t, err)
	assert.Equal(t, []int64{1001, 1002}, ids(byOrder, itemID))

	byProduct, err := f.items.FindByProduct(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []int64{1002, 1003}, ids(byProduct, itemID))

	pair, err := f.items.FindByOrderAndProduct(ctx, 101, 2)
	require.NoError(t, err)
	assert.Equal(t, []int64{1002}, ids(pair, itemID))

	qty, err := f.items.FindByQuantityRange(ctx, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, []int64{1002, 1000}, ids(qty, itemID))

	discounted, err := f.items.FindWithDiscount(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{1002}, ids(discounted, itemID))

	n, err := f.items.CountByOrder(ctx, 101)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	sold, err := f.items.SumQuantityByProduct(ctx, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 6, sold)

	revenue, err := f.items.SumRevenueByProduct(ctx)
	require.NoError(t, err)
	byProductRevenue := types.GroupedMap(revenue)
	requireDecimal(t, "39.96", byProductRevenue[1])
	requireDecimal(t, "29.00", byProductRevenue[2])

	avg, err := f.items.AvgUnitPrice(ctx)
	require.NoError(t, err)
	require.True(t, avg.Valid)
	mean, _ := avg.Decimal.Float64()
	assert.InDelta(t, 7.495, mean, 1e-6)

	top, err := f.items.TopSellers(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []types.Grouped[int64, int64]{{Key: 2, Value: 6}}, top)

	multi, err := f.items.OrdersWithMultipleItems(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []types.Grouped[int64, int64]{{Key: 101, Value: 2}}, multi)

	rows, err := f.items.ItemsWithProductInfo(ctx, 101)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "P-1", rows[0].String("product_code"))
	assert.Equal(t, "Gadget", rows[1].String("product_name"))
	assert.EqualValues(t, 2, rows[1].Int64("quantity"))
	requireDecimal(t, "9.00", rows[1].Decimal("total_price"))

	removed, err := f.items.DeleteByOrder(ctx, 101)
	require.NoError(t, err)
	assert.EqualValues(t, 2, removed)
}

func TestOrderTotalMatchesItemSum(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	seedOrders(t, f)

	for _, id := range []int64{100, 101, 102} {
		require.NoError(t, f.orders.RecalculateTotal(ctx, id))

		o, found, err := f.orders.FindByID(ctx, id)
		require.NoError(t, err)
		require.True(t, found)
		sum, err := f.items.SumByOrder(ctx, id)
		require.NoError(t, err)
		requireDecimal(t, sum.Round(2).String(), o.TotalAmount)
	}

	o, _, err := f.orders.FindByID(ctx, 101)
	require.NoError(t, err)
	requireDecimal(t, "18.99", o.TotalAmount)

	require.NoError(t, f.items.IncrementQuantity(ctx, 1000, 1))
	require.NoError(t, f.orders.RecalculateTotal(ctx, 100))
	o, _, err = f.orders.FindByID(ctx, 100)
	require.NoError(t, err)
	requireDecimal(t, "39.96", o.TotalAmount)

	require.NoError(t, f.orders.Insert(ctx, order(103, 4, model.OrderPending, epoch)))
	require.NoError(t, f.orders.RecalculateTotal(ctx, 103))
	o, _, err = f.orders.FindByID(ctx, 103)
	require.NoError(t, err)
	assert.True(t, o.TotalAmount.IsZero())

	require.ErrorIs(t, f.orders.RecalculateTotal(ctx, 999), database.ErrNoRowsAffected)
}

func TestOrderLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	seedOrders(t, f)

	shipped := epoch.Add(2 * time.Hour)
	require.NoError(t, f.orders.MarkShipped(ctx, 100, shipped))

	inTransit, err := f.orders.FindShippedNotDelivered(ctx)
	require.NoError(t, err)
	require.Equal(t, []int64{100}, ids(inTransit, orderID))
	assert.Equal(t, model.OrderShipped, inTransit[0].Status)
	require.False(t, inTransit[0].ShippedDate.IsZero())
	assert.True(t, inTransit[0].ShippedDate.Time.Equal(shipped))
	assert.True(t, inTransit[0].DeliveredDate.IsZero())

	require.NoError(t, f.orders.MarkDelivered(ctx, 100, shipped.Add(24*time.Hour)))
	inTransit, err = f.orders.FindShippedNotDelivered(ctx)
	require.NoError(t, err)
	assert.Empty(t, inTransit)

	require.NoError(t, f.orders.UpdateStatus(ctx, 101, model.OrderCancelled))
	require.NoError(t, f.orders.UpdatePaymentStatus(ctx, 101, model.PaymentRefunded))
	require.NoError(t, f.orders.UpdateTotalAmount(ctx, 101, dec("0")))

	o, _, err := f.orders.FindByID(ctx, 101)
	require.NoError(t, err)
	assert.Equal(t, model.OrderCancelled, o.Status)
	assert.Equal(t, model.PaymentRefunded, o.PaymentStatus)

	require.ErrorIs(t, f.orders.UpdateStatus(ctx, 101, model.OrderStatus("LOST")), database.ErrInvalidArgument)
	require.ErrorIs(t, f.orders.MarkShipped(ctx, 999, shipped), database.ErrNoRowsAffected)
}

func TestOrderQueries(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	seedOrders(t, f)
	for _, id := range []int64{100, 101, 102} {
		require.NoError(t, f.orders.RecalculateTotal(ctx, id))
	}

	byCustomer, err := f.orders.FindByCustomer(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{101, 100}, ids(byCustomer, orderID))

	byStatus, err := f.orders.FindByStatus(ctx, model.OrderShipped)
	require.NoError(t, err)
	assert.Equal(t, []int64{101}, ids(byStatus, orderID))

	paid, err := f.orders.FindByPaymentStatus(ctx, model.PaymentPaid)
	require.NoError(t, err)
	assert.Equal(t, []int64{102}, ids(paid, orderID))

	recent, err := f.orders.FindByOrderDateRange(ctx, epoch.AddDate(0, 0, -2), epoch)
	require.NoError(t, err)
	assert.Equal(t, []int64{101, 102}, ids(recent, orderID))

	ranged, err := f.orders.FindByTotalRange(ctx, dec("18"), dec("25"))
	require.NoError(t, err)
	assert.Equal(t, []int64{101, 102}, ids(ranged, orderID))

	nv, err := f.orders.FindByShippingState(ctx, "NV")
	require.NoError(t, err)
	assert.Equal(t, []int64{101}, ids(nv, orderID))

	open, err := f.orders.FindByStatusesIn(ctx, model.OrderPending, model.OrderShipped)
	require.NoError(t, err)
	assert.Equal(t, []int64{100, 101}, ids(open, orderID))

	n, err := f.orders.CountByCustomer(ctx, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	spent, err := f.orders.SumTotalByCustomer(ctx, 1)
	require.NoError(t, err)
	requireDecimal(t, "48.96", spent)

	all, err := f.orders.SumAll(ctx)
	require.NoError(t, err)
	requireDecimal(t, "68.96", all)

	avg, err := f.orders.AvgOrderValue(ctx)
	require.NoError(t, err)
	requireDecimal(t, "22.99", avg.Decimal.Round(2))

	counts, err := f.orders.CountByStatusGroup(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[model.OrderStatus]int64{
		model.OrderDelivered: 1, model.OrderPending: 1, model.OrderShipped: 1,
	}, types.GroupedMap(counts))

	sums, err := f.orders.SumByStatusGroup(ctx)
	require.NoError(t, err)
	requireDecimal(t, "20.00", types.GroupedMap(sums)[model.OrderDelivered])

	repeat, err := f.orders.CustomersWithMultipleOrders(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []types.Grouped[int64, int64]{{Key: 1, Value: 2}}, repeat)

	rows, err := f.orders.OrdersWithCustomerInfo(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Alan", rows[2].String("first_name"))
	assert.EqualValues(t, 102, rows[2].Int64("order_id"))

	removed, err := f.orders.DeleteByCustomer(ctx, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 2, removed)

	orphans, err := f.items.FindByOrder(ctx, 100)
	require.NoError(t, err)
	assert.Len(t, orphans, 1, "items are not cascaded")
}
