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
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/tomoncle/retaildao/catalog"
	"github.com/tomoncle/retaildao/database"
	"github.com/tomoncle/retaildao/types"
	"github.com/uptrace/bun"
)

type baseRepositoryImpl[T any] struct {
	entity   catalog.Entity
	provider *database.Provider
	catalog  *catalog.Catalog
}

// NewRepository returns the generic repository for T, running the templates
// registered under entity in c.
func NewRepository[T any](entity catalog.Entity, p *database.Provider, c *catalog.Catalog) Repository[T] {
	return newBaseRepository[T](entity, p, c)
}

func newBaseRepository[T any](entity catalog.Entity, p *database.Provider, c *catalog.Catalog) *baseRepositoryImpl[T] {
	if c == nil {
		c = catalog.Default()
	}
	return &baseRepositoryImpl[T]{entity: entity, provider: p, catalog: c}
}

func (r *baseRepositoryImpl[T]) Entity() catalog.Entity { return r.entity }

// Mapper returns the row mapper for T under the connected dialect.
func (r *baseRepositoryImpl[T]) Mapper() (*RowMapper[T], error) {
	db := r.provider.DB()
	if db == nil {
		return nil, database.NewOperationError(database.ErrConnection, string(r.entity), "mapper",
			errors.New("database not connected"))
	}
	return NewRowMapper[T](db.Dialect()), nil
}

func (r *baseRepositoryImpl[T]) Insert(ctx context.Context, entity *T) error {
	if entity == nil {
		return r.invalid(catalog.OpInsert, "entity is nil")
	}
	m, err := r.Mapper()
	if err != nil {
		return err
	}
	now := r.provider.Now()
	if _, err = r.exec(ctx, catalog.OpInsert, m.Params(entity, now)); err != nil {
		return err
	}
	m.Stamp(entity, now, true)
	return nil
}

func (r *baseRepositoryImpl[T]) Update(ctx context.Context, entity *T) error {
	if entity == nil {
		return r.invalid(catalog.OpUpdate, "entity is nil")
	}
	m, err := r.Mapper()
	if err != nil {
		return err
	}
	now := r.provider.Now()
	if err = r.execOne(ctx, catalog.OpUpdate, m.Params(entity, now)); err != nil {
		return err
	}
	m.Stamp(entity, now, false)
	return nil
}

func (r *baseRepositoryImpl[T]) Delete(ctx context.Context, id int64) error {
	_, err := r.exec(ctx, catalog.OpDelete, catalog.Params{"id": id})
	return err
}

func (r *baseRepositoryImpl[T]) FindByID(ctx context.Context, id int64) (*T, bool, error) {
	return r.queryOne(ctx, catalog.OpFindByID, catalog.Params{"id": id})
}

func (r *baseRepositoryImpl[T]) FindAll(ctx context.Context) ([]*T, error) {
	return r.query(ctx, catalog.OpFindAll, nil)
}

func (r *baseRepositoryImpl[T]) Paginate(ctx context.Context, page types.PageRequest) (*types.Page[T], error) {
	if err := page.Validate(); err != nil {
		return nil, database.NewOperationError(database.ErrInvalidArgument, string(r.entity), catalog.OpPaginate, err)
	}
	items, err := r.query(ctx, catalog.OpPaginate, catalog.Params{"offset": page.Offset, "limit": page.Limit})
	if err != nil {
		return nil, err
	}
	return types.NewPage(page, items), nil
}

func (r *baseRepositoryImpl[T]) invalid(op, format string, args ...interface{}) error {
	return database.NewOperationError(database.ErrInvalidArgument, string(r.entity), op, fmt.Errorf(format, args...))
}

// prepare looks up op and binds params. "now" is filled from the provider
// clock when the caller did not set it.
func (r *baseRepositoryImpl[T]) prepare(op string, params catalog.Params) (*catalog.Template, []interface{}, error) {
	tpl, err := r.catalog.Get(r.entity, op)
	if err != nil {
		return nil, nil, database.NewOperationError(catalog.ErrUnknownOperation, string(r.entity), op, nil)
	}
	if _, ok := params[nowParam]; !ok {
		p := make(catalog.Params, len(params)+1)
		for k, v := range params {
			p[k] = v
		}
		p[nowParam] = r.provider.Now()
		params = p
	}
	args, err := tpl.Bind(params)
	if err != nil {
		return nil, nil, database.NewOperationError(database.ErrInvalidArgument, string(r.entity), op, err)
	}
	return tpl, args, nil
}

// run binds op and executes fn on its own connection.
func (r *baseRepositoryImpl[T]) run(ctx context.Context, op string, params catalog.Params,
	fn func(conn bun.Conn, tpl *catalog.Template, args []interface{}) error) error {
	tpl, args, err := r.prepare(op, params)
	if err != nil {
		return err
	}
	return r.provider.WithConn(ctx, string(r.entity), op, func(conn bun.Conn) error {
		return fn(conn, tpl, args)
	})
}

// scan materializes the result of op into dest by column name.
func (r *baseRepositoryImpl[T]) scan(ctx context.Context, op string, params catalog.Params, dest interface{}) error {
	return r.run(ctx, op, params, func(conn bun.Conn, tpl *catalog.Template, args []interface{}) error {
		return conn.NewRaw(tpl.SQL, args...).Scan(ctx, dest)
	})
}

func (r *baseRepositoryImpl[T]) query(ctx context.Context, op string, params catalog.Params) ([]*T, error) {
	items := make([]*T, 0)
	if err := r.scan(ctx, op, params, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *baseRepositoryImpl[T]) queryOne(ctx context.Context, op string, params catalog.Params) (*T, bool, error) {
	var (
		item  T
		found = true
	)
	err := r.run(ctx, op, params, func(conn bun.Conn, tpl *catalog.Template, args []interface{}) error {
		err := conn.NewRaw(tpl.SQL, args...).Scan(ctx, &item)
		if errors.Is(err, sql.ErrNoRows) {
			found = false
			return nil
		}
		return err
	})
	if err != nil || !found {
		return nil, false, err
	}
	return &item, true, nil
}

// exec runs a mutation and returns the number of rows it touched.
func (r *baseRepositoryImpl[T]) exec(ctx context.Context, op string, params catalog.Params) (int64, error) {
	var affected int64
	err := r.run(ctx, op, params, func(conn bun.Conn, tpl *catalog.Template, args []interface{}) error {
		n, err := execOn(ctx, conn, tpl, args)
		affected = n
		return err
	})
	return affected, err
}

// execOne runs a single-row mutation; zero rows is ErrNoRowsAffected.
func (r *baseRepositoryImpl[T]) execOne(ctx context.Context, op string, params catalog.Params) error {
	n, err := r.exec(ctx, op, params)
	if err != nil {
		return err
	}
	if n == 0 {
		return database.NewOperationError(database.ErrNoRowsAffected, string(r.entity), op, nil)
	}
	return nil
}

func (r *baseRepositoryImpl[T]) count(ctx context.Context, op string, params catalog.Params) (int64, error) {
	var n int64
	if err := r.scan(ctx, op, params, &n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *baseRepositoryImpl[T]) exists(ctx context.Context, op string, params catalog.Params) (bool, error) {
	n, err := r.count(ctx, op, params)
	return n > 0, err
}

// decimalValue scans a single aggregate. AVG/MAX/MIN over no rows is NULL,
// reported as an invalid NullDecimal.
func (r *baseRepositoryImpl[T]) decimalValue(ctx context.Context, op string, params catalog.Params) (decimal.NullDecimal, error) {
	var v decimal.NullDecimal
	if err := r.scan(ctx, op, params, &v); err != nil {
		return decimal.NullDecimal{}, err
	}
	return v, nil
}

// sum scans a COALESCEd SUM.
func (r *baseRepositoryImpl[T]) sum(ctx context.Context, op string, params catalog.Params) (decimal.Decimal, error) {
	v, err := r.decimalValue(ctx, op, params)
	return v.Decimal, err
}

func (r *baseRepositoryImpl[T]) report(ctx context.Context, op string, params catalog.Params) ([]types.Row, error) {
	var rows []map[string]interface{}
	if err := r.scan(ctx, op, params, &rows); err != nil {
		return nil, err
	}
	return types.Rows(rows), nil
}

// grouped scans group_key/group_value rows of op.
func grouped[K comparable, V any, T any](ctx context.Context, r *baseRepositoryImpl[T], op string, params catalog.Params) ([]types.Grouped[K, V], error) {
	rows := make([]types.Grouped[K, V], 0)
	if err := r.scan(ctx, op, params, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func execOn(ctx context.Context, conn bun.Conn, tpl *catalog.Template, args []interface{}) (int64, error) {
	res, err := conn.NewRaw(tpl.SQL, args...).Exec(ctx)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows of %s: %w", tpl.Key, err)
	}
	return n, nil
}

// likeEscaper neutralizes LIKE wildcards; templates declare ESCAPE '!'.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// like wraps s for a case-insensitive contains match. Wildcards inside s match
// literally.
func like(s string) string {
	return "%" + escapeLike(strings.ToLower(s)) + "%"
}
