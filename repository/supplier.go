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

// MaxRating is the top of the supplier rating scale.
var MaxRating = decimal.NewFromInt(5)

type SupplierRepository struct {
	*baseRepositoryImpl[model.Supplier]
}

var _ Repository[model.Supplier] = (*SupplierRepository)(nil)

func NewSupplierRepository(p *database.Provider, c *catalog.Catalog) *SupplierRepository {
	return &SupplierRepository{newBaseRepository[model.Supplier](catalog.Supplier, p, c)}
}

func (r *SupplierRepository) FindByName(ctx context.Context, name string) (*model.Supplier, bool, error) {
	return r.queryOne(ctx, "findByName", catalog.Params{"name": name})
}

func (r *SupplierRepository) FindByCountry(ctx context.Context, country string) ([]*model.Supplier, error) {
	return r.query(ctx, "findByCountry", catalog.Params{"country": country})
}

func (r *SupplierRepository) FindByStatus(ctx context.Context, status model.RecordStatus) ([]*model.Supplier, error) {
	return r.query(ctx, "findByStatus", catalog.Params{"status": status})
}

func (r *SupplierRepository) FindByRatingRange(ctx context.Context, min, max decimal.Decimal) ([]*model.Supplier, error) {
	return r.query(ctx, "findByRatingRange", catalog.Params{"min": min, "max": max})
}

// FindTopRated returns up to limit ACTIVE suppliers, best rated first.
func (r *SupplierRepository) FindTopRated(ctx context.Context, limit int) ([]*model.Supplier, error) {
	if limit < 0 {
		return nil, r.invalid("findTopRated", "limit %d is negative", limit)
	}
	return r.query(ctx, "findTopRated", catalog.Params{"limit": limit})
}

func (r *SupplierRepository) FindByNameLike(ctx context.Context, term string) ([]*model.Supplier, error) {
	return r.query(ctx, "findByNameLike", catalog.Params{"pattern": like(term)})
}

func (r *SupplierRepository) UpdateStatus(ctx context.Context, id int64, status model.RecordStatus) error {
	if !status.IsValid() {
		return r.invalid("updateStatus", "unknown supplier status %q", status)
	}
	return r.execOne(ctx, "updateStatus", catalog.Params{"id": id, "status": status})
}

func (r *SupplierRepository) UpdateRating(ctx context.Context, id int64, rating decimal.Decimal) error {
	if rating.IsNegative() || rating.GreaterThan(MaxRating) {
		return r.invalid("updateRating", "rating %s is outside 0..%s", rating, MaxRating)
	}
	return r.execOne(ctx, "updateRating", catalog.Params{"id": id, "rating": rating})
}

// IncrementRating adds delta, clamping the result to 0..MaxRating.
func (r *SupplierRepository) IncrementRating(ctx context.Context, id int64, delta decimal.Decimal) error {
	return r.execOne(ctx, "incrementRating", catalog.Params{"id": id, "delta": delta, "max_rating": MaxRating})
}

func (r *SupplierRepository) CountByStatus(ctx context.Context, status model.RecordStatus) (int64, error) {
	return r.count(ctx, "countByStatus", catalog.Params{"status": status})
}

func (r *SupplierRepository) AvgRating(ctx context.Context) (decimal.NullDecimal, error) {
	return r.decimalValue(ctx, "avgRating", nil)
}

func (r *SupplierRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	return r.exists(ctx, "existsByName", catalog.Params{"name": name})
}

func (r *SupplierRepository) CountByCountry(ctx context.Context) ([]types.Grouped[string, int64], error) {
	return grouped[string, int64](ctx, r.baseRepositoryImpl, "countByCountry", nil)
}

func (r *SupplierRepository) AvgRatingByCountry(ctx context.Context) ([]types.Grouped[string, decimal.Decimal], error) {
	return grouped[string, decimal.Decimal](ctx, r.baseRepositoryImpl, "avgRatingByCountry", nil)
}
