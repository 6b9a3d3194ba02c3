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
	"github.com/tomoncle/retaildao/catalog"
	"github.com/tomoncle/retaildao/database"
	"github.com/tomoncle/retaildao/model"
	"github.com/tomoncle/retaildao/types"
)

func TestInsertAndFindByID(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	c := customer(1, "Ada", "Lovelace", "ada@example.com", "London", "LN", "1500.50")
	require.NoError(t, f.customers.Insert(ctx, c))
	assert.False(t, c.CreatedDate.IsZero())
	assert.True(t, c.CreatedDate.Equal(c.ModifiedDate))

	got, found, err := f.customers.FindByID(ctx, 1)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Ada", got.FirstName)
	assert.Equal(t, "ada@example.com", got.Email)
	assert.Equal(t, model.CustomerActive, got.Status)
	assert.Equal(t, model.CustomerStandard, got.CustomerType)
	requireDecimal(t, "1500.50", got.CreditLimit)
	assert.True(t, got.CreatedDate.Equal(c.CreatedDate), "created %s vs %s", got.CreatedDate, c.CreatedDate)
}

func TestFindByIDMissing(t *testing.T) {
	f := newFixture(t)

	got, found, err := f.customers.FindByID(context.Background(), 404)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, got)
}

func TestUpdateStampsModified(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	c := customer(1, "Ada", "Lovelace", "ada@example.com", "London", "LN", "100")
	require.NoError(t, f.customers.Insert(ctx, c))
	created := c.CreatedDate

	c.City = "Oxford"
	c.CreditLimit = dec("250.25")
	require.NoError(t, f.customers.Update(ctx, c))
	assert.True(t, c.ModifiedDate.After(created))
	assert.True(t, c.CreatedDate.Equal(created))

	got, found, err := f.customers.FindByID(ctx, 1)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Oxford", got.City)
	requireDecimal(t, "250.25", got.CreditLimit)
	assert.True(t, got.ModifiedDate.After(got.CreatedDate))
	assert.True(t, got.CreatedDate.Equal(created))
}

func TestUpdateMissingRow(t *testing.T) {
	f := newFixture(t)

	err := f.customers.Update(context.Background(), customer(9, "No", "One", "none@example.com", "X", "XX", "0"))
	require.ErrorIs(t, err, database.ErrNoRowsAffected)

	var opErr *database.OperationError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, "customer", opErr.Entity)
	assert.Equal(t, catalog.OpUpdate, opErr.Operation)
}

func TestDeleteIsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.customers.Insert(ctx, customer(1, "Ada", "Lovelace", "ada@example.com", "London", "LN", "0")))
	require.NoError(t, f.customers.Delete(ctx, 1))
	require.NoError(t, f.customers.Delete(ctx, 1))

	_, found, err := f.customers.FindByID(ctx, 1)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestInsertDuplicateIsConstraintViolation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.customers.Insert(ctx, customer(1, "Ada", "Lovelace", "ada@example.com", "London", "LN", "0")))

	err := f.customers.Insert(ctx, customer(2, "Ada", "Byron", "ada@example.com", "London", "LN", "0"))
	require.ErrorIs(t, err, database.ErrConstraintViolation)
	assert.NotErrorIs(t, err, database.ErrQuery)

	err = f.customers.Insert(ctx, customer(1, "Other", "Person", "other@example.com", "London", "LN", "0"))
	require.ErrorIs(t, err, database.ErrConstraintViolation)

	n, err := f.customers.CountAll(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestFindAllOrderedByID(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	all, err := f.customers.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	for _, id := range []int64{3, 1, 2} {
		email := string(rune('a'+id)) + "@example.com"
		require.NoError(t, f.customers.Insert(ctx, customer(id, "C", "Customer", email, "Austin", "TX", "0")))
	}
	all, err = f.customers.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	for i, c := range all {
		assert.EqualValues(t, i+1, c.ID)
	}
}

func TestPaginate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for id := int64(1); id <= 5; id++ {
		email := string(rune('a'+id)) + "@example.com"
		require.NoError(t, f.customers.Insert(ctx, customer(id, "C", "Customer", email, "Austin", "TX", "0")))
	}

	page, err := f.customers.Paginate(ctx, types.NewPageRequest(0, 2))
	require.NoError(t, err)
	require.Equal(t, 2, page.Len())
	assert.True(t, page.Full())
	assert.EqualValues(t, 1, page.Items[0].ID)
	assert.EqualValues(t, 2, page.Items[1].ID)

	page, err = f.customers.Paginate(ctx, types.NewPageRequest(0, 2).Next().Next())
	require.NoError(t, err)
	require.Equal(t, 1, page.Len())
	assert.False(t, page.Full())
	assert.EqualValues(t, 5, page.Items[0].ID)

	page, err = f.customers.Paginate(ctx, types.NewPageRequest(10, 2))
	require.NoError(t, err)
	assert.Equal(t, 0, page.Len())

	_, err = f.customers.Paginate(ctx, types.PageRequest{Offset: -1, Limit: 2})
	require.ErrorIs(t, err, database.ErrInvalidArgument)
	_, err = f.customers.Paginate(ctx, types.PageRequest{Offset: 0, Limit: -2})
	require.ErrorIs(t, err, database.ErrInvalidArgument)
}

func TestUnknownOperation(t *testing.T) {
	f := newFixture(t)

	_, err := f.customers.query(context.Background(), "findByShoeSize", nil)
	require.ErrorIs(t, err, catalog.ErrUnknownOperation)
	for _, kind := range []error{database.ErrConnection, database.ErrConstraintViolation, database.ErrQuery, database.ErrInvalidArgument} {
		assert.NotErrorIs(t, err, kind)
	}

	var opErr *database.OperationError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, "customer", opErr.Entity)
	assert.Equal(t, "findByShoeSize", opErr.Operation)
	assert.Equal(t, "customer.findByShoeSize: unknown operation", err.Error())
}

func TestMissingParameterIsInvalidArgument(t *testing.T) {
	f := newFixture(t)

	_, err := f.customers.count(context.Background(), "countByStatus", catalog.Params{"state": "CA"})
	require.ErrorIs(t, err, database.ErrInvalidArgument)
}

func TestGenericRepositoryOverCustomCatalog(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	c, err := catalog.New(map[catalog.Entity][]catalog.Definition{
		catalog.Supplier: catalog.DefaultTables()[catalog.Supplier],
	})
	require.NoError(t, err)

	repo := NewRepository[model.Supplier](catalog.Supplier, f.provider, c)
	assert.Equal(t, catalog.Supplier, repo.Entity())
	require.NoError(t, repo.Insert(ctx, &model.Supplier{ID: 1, Name: "Acme", Rating: dec("4.5"), Status: model.StatusActive}))

	got, found, err := repo.FindByID(ctx, 1)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Acme", got.Name)

	customers := NewRepository[model.Customer](catalog.Customer, f.provider, c)
	_, err = customers.FindAll(ctx)
	require.ErrorIs(t, err, catalog.ErrUnknownOperation)
}

func TestNotConnectedIsConnectionError(t *testing.T) {
	cfg := database.DefaultConnectionConfig()
	p, err := database.NewProvider(&cfg, database.WithLogger(database.NopLogger()))
	require.NoError(t, err)

	repo := NewCustomerRepository(p, nil)
	_, err = repo.FindAll(context.Background())
	require.ErrorIs(t, err, database.ErrConnection)

	err = repo.Insert(context.Background(), customer(1, "A", "B", "a@b.c", "X", "XX", "0"))
	require.ErrorIs(t, err, database.ErrConnection)
}

func TestNilEntityIsInvalidArgument(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.ErrorIs(t, f.customers.Insert(ctx, nil), database.ErrInvalidArgument)
	require.ErrorIs(t, f.customers.Update(ctx, nil), database.ErrInvalidArgument)
	require.ErrorIs(t, f.categories.Update(ctx, nil), database.ErrInvalidArgument)
}
