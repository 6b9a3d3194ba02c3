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

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tomoncle/retaildao/database"
	"github.com/tomoncle/retaildao/model"
	"github.com/tomoncle/retaildao/types"
)

func productID(p *model.Product) int64 { return p.ID }

func seedProducts(t *testing.T, f *fixture) {
	t.Helper()
	ctx := context.Background()
	seed := []*model.Product{
		product(1, "TL-100", "Claw Hammer", "Tools", "19.99", 40, 10),
		product(2, "TL-200", "Hand Saw", "Tools", "24.50", 8, 10),
		product(3, "GD-100", "Garden Hose", "Garden", "35.00", 0, 5),
		product(4, "EL-100", "LED Bulb", "Electrical", "4.25", 200, 50),
	}
	seed[1].Supplier = "Acme"
	seed[3].Barcode = ""
	for _, p := range seed {
		require.NoError(t, f.products.Insert(ctx, p))
	}
}

func TestProductFinders(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	seedProducts(t, f)

	p, found, err := f.products.FindByCode(ctx, "GD-100")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Garden Hose", p.Name)
	requireDecimal(t, "17.50", p.Cost)

	tools, err := f.products.FindByCategory(ctx, "Tools")
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, ids(tools, productID))

	acme, err := f.products.FindBySupplier(ctx, "Acme")
	require.NoError(t, err)
	assert.Equal(t, []int64{2}, ids(acme, productID))

	active, err := f.products.FindByStatus(ctx, model.ProductActive)
	require.NoError(t, err)
	assert.Len(t, active, 4)

	hose, err := f.products.FindByNameLike(ctx, "HOSE")
	require.NoError(t, err)
	assert.Equal(t, []int64{3}, ids(hose, productID))

	mid, err := f.products.FindByPriceRange(ctx, dec("10"), dec("30"))
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, ids(mid, productID))

	low, err := f.products.FindLowStock(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 2}, ids(low, productID))

	out, err := f.products.FindOutOfStock(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{3}, ids(out, productID))

	in, err := f.products.FindByCategoriesIn(ctx, "Garden", "Electrical")
	require.NoError(t, err)
	assert.Equal(t, []int64{4, 3}, ids(in, productID))

	empty, err := f.products.FindByCategoriesIn(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty)

	noBarcode, err := f.products.FindWithoutBarcode(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{4}, ids(noBarcode, productID))
}

func TestProductStock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	seedProducts(t, f)

	stock := func(id int64) int {
		t.Helper()
		p, found, err := f.products.FindByID(ctx, id)
		require.NoError(t, err)
		require.True(t, found)
		return p.StockQuantity
	}

	require.NoError(t, f.products.IncrementStock(ctx, 2, 12))
	assert.Equal(t, 20, stock(2))

	require.NoError(t, f.products.DecrementStock(ctx, 2, 20))
	assert.Equal(t, 0, stock(2))

	err := f.products.DecrementStock(ctx, 2, 1)
	require.ErrorIs(t, err, database.ErrNoRowsAffected)
	assert.Equal(t, 0, stock(2))

	require.NoError(t, f.products.UpdateStock(ctx, 2, 7))
	assert.Equal(t, 7, stock(2))

	require.ErrorIs(t, f.products.UpdateStock(ctx, 2, -1), database.ErrInvalidArgument)
	require.ErrorIs(t, f.products.DecrementStock(ctx, 2, 0), database.ErrInvalidArgument)
	require.ErrorIs(t, f.products.IncrementStock(ctx, 99, 1), database.ErrNoRowsAffected)
}

func TestProductPricing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	seedProducts(t, f)

	require.NoError(t, f.products.UpdatePrice(ctx, 4, dec("5.00")))
	require.ErrorIs(t, f.products.UpdatePrice(ctx, 4, dec("-5.00")), database.ErrInvalidArgument)

	n, err := f.products.IncreasePriceByCategory(ctx, "Tools", dec("1.10"))
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	hammer, _, err := f.products.FindByID(ctx, 1)
	require.NoError(t, err)
	requireDecimal(t, "21.99", hammer.Price)

	_, err = f.products.IncreasePriceByCategory(ctx, "Tools", dec("0"))
	require.ErrorIs(t, err, database.ErrInvalidArgument)

	require.NoError(t, f.products.UpdateStatus(ctx, 3, model.ProductDiscontinued))
	removed, err := f.products.DeleteDiscontinued(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, removed)

	left, err := f.products.CountAll(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, left)
}

func TestProductAggregates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	none, err := f.products.MaxPrice(ctx)
	require.NoError(t, err)
	assert.False(t, none.Valid)

	seedProducts(t, f)

	n, err := f.products.CountByCategory(ctx, "Tools")
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	exists, err := f.products.ExistsByCode(ctx, "EL-100")
	require.NoError(t, err)
	assert.True(t, exists)

	value, err := f.products.SumStockValue(ctx)
	require.NoError(t, err)
	// 19.99*40 + 24.50*8 + 35*0 + 4.25*200
	requireDecimal(t, "1845.60", value)

	max, err := f.products.MaxPrice(ctx)
	require.NoError(t, err)
	requireDecimal(t, "35.00", max.Decimal)

	min, err := f.products.MinPrice(ctx)
	require.NoError(t, err)
	requireDecimal(t, "4.25", min.Decimal)

	avg, err := f.products.AvgPrice(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 20.935, avg.Decimal.InexactFloat64(), 0.0001)

	counts, err := f.products.CountByCategoryGroup(ctx)
	require.NoError(t, err)
	assert.Equal(t, []types.Grouped[string, int64]{
		{Key: "Electrical", Value: 1}, {Key: "Garden", Value: 1}, {Key: "Tools", Value: 2},
	}, counts)

	avgs, err := f.products.AvgPriceByCategory(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 22.245, types.GroupedMap(avgs)["Tools"].InexactFloat64(), 0.0001)

	big, err := f.products.CategoriesWithMinProducts(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []types.Grouped[string, int64]{{Key: "Tools", Value: 2}}, big)

	report, err := f.products.InventoryReport(ctx)
	require.NoError(t, err)
	require.Len(t, report, 4)
	assert.Equal(t, "EL-100", report[0].String("product_code"))
	requireDecimal(t, "850.00", report[0].Decimal("stock_value"))
	assert.Equal(t, "TL-200", report[3].String("product_code"))
	assert.EqualValues(t, 8, report[3].Int64("stock_quantity"))
}
