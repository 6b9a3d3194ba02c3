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

	"github.com/tomoncle/retaildao/catalog"
	"github.com/tomoncle/retaildao/types"
)

// CrudRepository defines the generic operations every entity supports.
type CrudRepository[T any] interface {
	// Insert writes every persisted field, stamping created/modified.
	Insert(ctx context.Context, entity *T) error

	// Update rewrites every mutable field of the row with entity's id.
	// A missing row is reported as database.ErrNoRowsAffected.
	Update(ctx context.Context, entity *T) error

	// Delete removes the row with id. A missing row is not an error.
	Delete(ctx context.Context, id int64) error

	// FindByID returns the row with id; found is false when there is none.
	FindByID(ctx context.Context, id int64) (entity *T, found bool, err error)

	// FindAll returns every row ordered by id.
	FindAll(ctx context.Context) ([]*T, error)
}

// PageQueryRepository defines pagination over the id ordering.
type PageQueryRepository[T any] interface {
	Paginate(ctx context.Context, page types.PageRequest) (*types.Page[T], error)
}

// Repository combines the generic operations with the entity's catalog key.
type Repository[T any] interface {
	CrudRepository[T]
	PageQueryRepository[T]
	Entity() catalog.Entity
}
