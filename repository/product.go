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
	"github.com/uptrace/bun"
)

type ProductRepository struct {
	*baseRepositoryImpl[model.Product]
}

var _ Repository[model.Product] = (*ProductRepository)(nil)

func NewProductRepository(p *database.Provider, c *catalog.Catalog) *ProductRepository {
	return &ProductRepository{newBaseRepository[model.Product](catalog.Product, p, c)}
}

func (r *ProductRepository) FindByCode(ctx context.Context, code string) (*model.Product, bool, error) {
	return r.queryOne(ctx, "findByCode", catalog.Params{"code": code})
}

func (r *ProductRepository) FindByCategory(ctx context.Context, category string) ([]*model.Product, error) {
	return r.query(ctx, "findByCategory", catalog.Params{"category": category})
}

func (r *ProductRepository) FindBySupplier(ctx context.Context, supplier string) ([]*model.Product, error) {
	return r.query(ctx, "findBySupplier", catalog.Params{"supplier": supplier})
}

func (r *ProductRepository) FindByStatus(ctx context.Context, status model.ProductStatus) ([]*model.Product, error) {
	return r.query(ctx, "findByStatus", catalog.Params{"status": status})
}

// FindByNameLike matches term anywhere in the product name, ignoring case.
func (r *ProductRepository) FindByNameLike(ctx context.Context, term string) ([]*model.Product, error) {
	return r.query(ctx, "findByNameLike", catalog.Params{"pattern": like(term)})
}

func (r *ProductRepository) FindByPriceRange(ctx context.Context, min, max decimal.Decimal) ([]*model.Product, error) {
	return r.query(ctx, "findByPriceRange", catalog.Params{"min": min, "max": max})
}

// FindLowStock returns products at or below their reorder level.
func (r *ProductRepository) FindLowStock(ctx context.Context) ([]*model.Product, error) {
	return r.query(ctx, "findLowStock", nil)
}

func (r *ProductRepository) FindOutOfStock(ctx context.Context) ([]*model.Product, error) {
	return r.query(ctx, "findOutOfStock", nil)
}

func (r *ProductRepository) FindByCategoriesIn(ctx context.Context, categories ...string) ([]*model.Product, error) {
	if len(categories) == 0 {
		return []*model.Product{}, nil
	}
	return r.query(ctx, "findByCategoriesIn", catalog.Params{"categories": bun.In(categories)})
}

func (r *ProductRepository) FindWithoutBarcode(ctx context.Context) ([]*model.Product, error) {
	return r.query(ctx, "findWithoutBarcode", nil)
}

func (r *ProductRepository) UpdatePrice(ctx context.Context, id int64, price decimal.Decimal) error {
	if price.IsNegative() {
		return r.invalid("updatePrice", "price %s is negative", price)
	}
	return r.execOne(ctx, "updatePrice", catalog.Params{"id": id, "price": price})
}

func (r *ProductRepository) UpdateStatus(ctx context.Context, id int64, status model.ProductStatus) error {
	if !status.IsValid() {
		return r.invalid("updateStatus", "unknown product status %q", status)
	}
	return r.execOne(ctx, "updateStatus", catalog.Params{"id": id, "status": status})
}

func (r *ProductRepository) UpdateStock(ctx context.Context, id int64, quantity int) error {
	if quantity < 0 {
		return r.invalid("updateStock", "stock quantity %d is negative", quantity)
	}
	return r.execOne(ctx, "updateStock", catalog.Params{"id": id, "quantity": quantity})
}

func (r *ProductRepository) IncrementStock(ctx context.Context, id int64, quantity int) error {
	if quantity <= 0 {
		return r.invalid("incrementStock", "quantity %d must be positive", quantity)
	}
	return r.execOne(ctx, "incrementStock", catalog.Params{"id": id, "quantity": quantity})
}

// DecrementStock removes quantity from stock. It fails with
// database.ErrNoRowsAffected when the product is missing or holds fewer
// than quantity units; stock never goes negative.
func (r *ProductRepository) DecrementStock(ctx context.Context, id int64, quantity int) error {
	if quantity <= 0 {
		return r.invalid("decrementStock", "quantity %d must be positive", quantity)
	}
	return r.execOne(ctx, "decrementStock", catalog.Params{"id": id, "quantity": quantity})
}

// IncreasePriceByCategory multiplies every price in category by factor.
func (r *ProductRepository) IncreasePriceByCategory(ctx context.Context, category string, factor decimal.Decimal) (int64, error) {
	if !factor.IsPositive() {
		return 0, r.invalid("increasePriceByCategory", "factor %s must be positive", factor)
	}
	return r.exec(ctx, "increasePriceByCategory", catalog.Params{"category": category, "factor": factor})
}

func (r *ProductRepository) CountAll(ctx context.Context) (int64, error) {
	return r.count(ctx, "countAll", nil)
}

func (r *ProductRepository) CountByCategory(ctx context.Context, category string) (int64, error) {
	return r.count(ctx, "countByCategory", catalog.Params{"category": category})
}

func (r *ProductRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	return r.exists(ctx, "existsByCode", catalog.Params{"code": code})
}

// SumStockValue is the sum of price times stock quantity.
func (r *ProductRepository) SumStockValue(ctx context.Context) (decimal.Decimal, error) {
	return r.sum(ctx, "sumStockValue", nil)
}

func (r *ProductRepository) AvgPrice(ctx context.Context) (decimal.NullDecimal, error) {
	return r.decimalValue(ctx, "avgPrice", nil)
}

func (r *ProductRepository) MaxPrice(ctx context.Context) (decimal.NullDecimal, error) {
	return r.decimalValue(ctx, "maxPrice", nil)
}

func (r *ProductRepository) MinPrice(ctx context.Context) (decimal.NullDecimal, error) {
	return r.decimalValue(ctx, "minPrice", nil)
}

func (r *ProductRepository) CountByCategoryGroup(ctx context.Context) ([]types.Grouped[string, int64], error) {
	return grouped[string, int64](ctx, r.baseRepositoryImpl, "countByCategoryGroup", nil)
}

func (r *ProductRepository) AvgPriceByCategory(ctx context.Context) ([]types.Grouped[string, decimal.Decimal], error) {
	return grouped[string, decimal.Decimal](ctx, r.baseRepositoryImpl, "avgPriceByCategory", nil)
}

func (r *ProductRepository) CategoriesWithMinProducts(ctx context.Context, minCount int64) ([]types.Grouped[string, int64], error) {
	return grouped[string, int64](ctx, r.baseRepositoryImpl, "categoriesWithMinProducts", catalog.Params{"min_count": minCount})
}

// DeleteDiscontinued removes every DISCONTINUED product.
func (r *ProductRepository) DeleteDiscontinued(ctx context.Context) (int64, error) {
	return r.exec(ctx, "deleteDiscontinued", catalog.Params{"status": model.ProductDiscontinued})
}

// InventoryReport lists stock per product with a stock_value column, ordered
// by category and code.
func (r *ProductRepository) InventoryReport(ctx context.Context) ([]types.Row, error) {
	return r.report(ctx, "inventoryReport", nil)
}
