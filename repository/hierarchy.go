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

	"github.com/tomoncle/retaildao/catalog"
	"github.com/tomoncle/retaildao/database"
	"github.com/tomoncle/retaildao/types"
	"github.com/uptrace/bun"
)

// ErrCycle reports a parent or manager assignment that would make an entity
// its own ancestor, or an ancestor chain deeper than the configured limit.
var ErrCycle = types.ErrCycle

// ancestry walks parent references with the parentOf template, which selects
// the parent column of the row with :id.
type ancestry struct {
	parentOf *catalog.Template
	maxDepth int
}

// check fails with ErrCycle when giving id the parent would close a loop.
// A parent that does not exist ends the walk; referential integrity is the
// engine's concern.
func (a ancestry) check(ctx context.Context, conn bun.Conn, id int64, parent *int64) error {
	if parent == nil {
		return nil
	}
	cur := *parent
	for depth := 0; ; depth++ {
		if cur == id {
			return fmt.Errorf("%w: %w: %d would become its own ancestor", database.ErrInvalidArgument, ErrCycle, id)
		}
		if depth >= a.maxDepth {
			return fmt.Errorf("%w: %w: ancestors of %d exceed %d levels", database.ErrInvalidArgument, ErrCycle, id, a.maxDepth)
		}
		next, ok, err := a.parent(ctx, conn, cur)
		if err != nil || !ok {
			return err
		}
		cur = next
	}
}

func (a ancestry) parent(ctx context.Context, conn bun.Conn, id int64) (int64, bool, error) {
	args, err := a.parentOf.Bind(catalog.Params{"id": id})
	if err != nil {
		return 0, false, err
	}
	var parent sql.NullInt64
	err = conn.NewRaw(a.parentOf.SQL, args...).Scan(ctx, &parent)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return 0, false, nil
	case err != nil:
		return 0, false, err
	}
	return parent.Int64, parent.Valid, nil
}

// reparent checks the new parent and applies op on a single connection.
// params must carry :id.
func (r *baseRepositoryImpl[T]) reparent(ctx context.Context, parentOf, op string, id int64, parent *int64, params catalog.Params) error {
	walk, err := r.ancestry(parentOf)
	if err != nil {
		return err
	}
	tpl, args, err := r.prepare(op, params)
	if err != nil {
		return err
	}
	return r.provider.WithConn(ctx, string(r.entity), op, func(conn bun.Conn) error {
		if err := walk.check(ctx, conn, id, parent); err != nil {
			return err
		}
		n, err := execOn(ctx, conn, tpl, args)
		if err != nil {
			return err
		}
		if n == 0 {
			return database.NewOperationError(database.ErrNoRowsAffected, string(r.entity), op, nil)
		}
		return nil
	})
}

func (r *baseRepositoryImpl[T]) ancestry(parentOf string) (ancestry, error) {
	tpl, err := r.catalog.Get(r.entity, parentOf)
	if err != nil {
		return ancestry{}, database.NewOperationError(catalog.ErrUnknownOperation, string(r.entity), parentOf, nil)
	}
	return ancestry{parentOf: tpl, maxDepth: r.provider.MaxHierarchyDepth()}, nil
}

// writeTree inserts or updates entity after checking its parent reference.
func (r *baseRepositoryImpl[T]) writeTree(ctx context.Context, op, parentOf string, entity *T, parent *int64) error {
	if entity == nil {
		return r.invalid(op, "entity is nil")
	}
	m, err := r.Mapper()
	if err != nil {
		return err
	}
	now := r.provider.Now()
	if err = r.reparent(ctx, parentOf, op, m.ID(entity), parent, m.Params(entity, now)); err != nil {
		return err
	}
	m.Stamp(entity, now, op == catalog.OpInsert)
	return nil
}
