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

func supplierID(s *model.Supplier) int64 { return s.ID }

func seedSuppliers(t *testing.T, f *fixture) {
	t.Helper()
	ctx := context.Background()
	seed := []*model.Supplier{
		{ID: 1, Name: "Acme", Country: "US", Rating: dec("4.5"), Status: model.StatusActive},
		{ID: 2, Name: "Bolt Works", Country: "US", Rating: dec("3.0"), Status: model.StatusActive},
		{ID: 3, Name: "Crane GmbH", Country: "DE", Rating: dec("4.8"), Status: model.StatusActive},
		{ID: 4, Name: "Delta Tools", Country: "DE", Rating: dec("2.0"), Status: model.StatusInactive},
	}
	for _, s := range seed {
		require.NoError(t, f.suppliers.Insert(ctx, s))
	}
}

func TestSupplierFinders(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	seedSuppliers(t, f)

	s, found, err := f.suppliers.FindByName(ctx, "Bolt Works")
	require.NoError(t, err)
	require.True(t, found)
	assert.EqualValues(t, 2, s.ID)

	de, err := f.suppliers.FindByCountry(ctx, "DE")
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 4}, ids(de, supplierID))

	active, err := f.suppliers.FindByStatus(ctx, model.StatusActive)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, ids(active, supplierID))

	ranged, err := f.suppliers.FindByRatingRange(ctx, dec("3"), dec("4.6"))
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, ids(ranged, supplierID))

	top, err := f.suppliers.FindTopRated(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 1}, ids(top, supplierID))

	_, err = f.suppliers.FindTopRated(ctx, -1)
	require.ErrorIs(t, err, database.ErrInvalidArgument)

	like, err := f.suppliers.FindByNameLike(ctx, "CR")
	require.NoError(t, err)
	assert.Equal(t, []int64{3}, ids(like, supplierID))
}

func TestSupplierRating(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	seedSuppliers(t, f)

	rating := func(id int64) *model.Supplier {
		t.Helper()
		s, found, err := f.suppliers.FindByID(ctx, id)
		require.NoError(t, err)
		require.True(t, found)
		return s
	}

	require.NoError(t, f.suppliers.IncrementRating(ctx, 1, dec("0.8")))
	requireDecimal(t, "5", rating(1).Rating)

	require.NoError(t, f.suppliers.IncrementRating(ctx, 4, dec("-3")))
	requireDecimal(t, "0", rating(4).Rating)

	require.NoError(t, f.suppliers.IncrementRating(ctx, 2, dec("0.25")))
	requireDecimal(t, "3.25", rating(2).Rating)

	require.NoError(t, f.suppliers.UpdateRating(ctx, 2, dec("4.1")))
	requireDecimal(t, "4.1", rating(2).Rating)

	require.ErrorIs(t, f.suppliers.UpdateRating(ctx, 2, dec("5.01")), database.ErrInvalidArgument)
	require.ErrorIs(t, f.suppliers.UpdateRating(ctx, 2, dec("-0.1")), database.ErrInvalidArgument)
	require.ErrorIs(t, f.suppliers.IncrementRating(ctx, 9, dec("1")), database.ErrNoRowsAffected)

	require.NoError(t, f.suppliers.UpdateStatus(ctx, 4, model.StatusActive))
	assert.Equal(t, model.StatusActive, rating(4).Status)
	require.ErrorIs(t, f.suppliers.UpdateStatus(ctx, 4, model.RecordStatus("ARCHIVED")), database.ErrInvalidArgument)
}

func TestSupplierAggregates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	avg, err := f.suppliers.AvgRating(ctx)
	require.NoError(t, err)
	assert.False(t, avg.Valid)

	seedSuppliers(t, f)

	avg, err = f.suppliers.AvgRating(ctx)
	require.NoError(t, err)
	require.True(t, avg.Valid)
	assert.InDelta(t, 3.575, avg.Decimal.InexactFloat64(), 0.0001)

	inactive, err := f.suppliers.CountByStatus(ctx, model.StatusInactive)
	require.NoError(t, err)
	assert.EqualValues(t, 1, inactive)

	exists, err := f.suppliers.ExistsByName(ctx, "Acme")
	require.NoError(t, err)
	assert.True(t, exists)

	byCountry, err := f.suppliers.CountByCountry(ctx)
	require.NoError(t, err)
	assert.Equal(t, []types.Grouped[string, int64]{{Key: "DE", Value: 2}, {Key: "US", Value: 2}}, byCountry)

	ratings, err := f.suppliers.AvgRatingByCountry(ctx)
	require.NoError(t, err)
	require.Len(t, ratings, 2)
	assert.Equal(t, "DE", ratings[0].Key)
	assert.InDelta(t, 3.4, ratings[0].Value.InexactFloat64(), 0.0001)
	assert.InDelta(t, 3.75, ratings[1].Value.InexactFloat64(), 0.0001)
}
