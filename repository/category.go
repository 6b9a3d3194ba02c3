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
	"github.com/tomoncle/retaildao/database"
	"github.com/tomoncle/retaildao/model"
	"github.com/tomoncle/retaildao/types"
)

const parentOf = "parentOf"

type CategoryRepository struct {
	*baseRepositoryImpl[model.Category]
}

var _ Repository[model.Category] = (*CategoryRepository)(nil)

func NewCategoryRepository(p *database.Provider, c *catalog.Catalog) *CategoryRepository {
	return &CategoryRepository{newBaseRepository[model.Category](catalog.Category, p, c)}
}

func (r *CategoryRepository) Insert(ctx context.Context, cat *model.Category) error {
	if cat == nil {
		return r.invalid(catalog.OpInsert, "entity is nil")
	}
	return r.writeTree(ctx, catalog.OpInsert, parentOf, cat, cat.ParentCategoryID)
}

// Update rewrites cat, failing with ErrCycle if cat would become its own
// ancestor.
func (r *CategoryRepository) Update(ctx context.Context, cat *model.Category) error {
	if cat == nil {
		return r.invalid(catalog.OpUpdate, "entity is nil")
	}
	return r.writeTree(ctx, catalog.OpUpdate, parentOf, cat, cat.ParentCategoryID)
}

func (r *CategoryRepository) FindByName(ctx context.Context, name string) (*model.Category, bool, error) {
	return r.queryOne(ctx, "findByName", catalog.Params{"name": name})
}

// FindByParent returns the direct children of parentID in display order.
func (r *CategoryRepository) FindByParent(ctx context.Context, parentID int64) ([]*model.Category, error) {
	return r.query(ctx, "findByParent", catalog.Params{"parent_id": parentID})
}

func (r *CategoryRepository) FindRoots(ctx context.Context) ([]*model.Category, error) {
	return r.query(ctx, "findRoots", nil)
}

func (r *CategoryRepository) FindByStatus(ctx context.Context, status model.RecordStatus) ([]*model.Category, error) {
	return r.query(ctx, "findByStatus", catalog.Params{"status": status})
}

func (r *CategoryRepository) FindByNameLike(ctx context.Context, term string) ([]*model.Category, error) {
	return r.query(ctx, "findByNameLike", catalog.Params{"pattern": like(term)})
}

// UpdateParent moves id under parentID; nil makes it a root.
func (r *CategoryRepository) UpdateParent(ctx context.Context, id int64, parentID *int64) error {
	return r.reparent(ctx, parentOf, "updateParent", id, parentID,
		catalog.Params{"id": id, "parent_id": parentID})
}

func (r *CategoryRepository) UpdateStatus(ctx context.Context, id int64, status model.RecordStatus) error {
	if !status.IsValid() {
		return r.invalid("updateStatus", "unknown category status %q", status)
	}
	return r.execOne(ctx, "updateStatus", catalog.Params{"id": id, "status": status})
}

func (r *CategoryRepository) UpdateDisplayOrder(ctx context.Context, id int64, order int) error {
	return r.execOne(ctx, "updateDisplayOrder", catalog.Params{"id": id, "display_order": order})
}

func (r *CategoryRepository) CountAll(ctx context.Context) (int64, error) {
	return r.count(ctx, "countAll", nil)
}

func (r *CategoryRepository) CountChildren(ctx context.Context, parentID int64) (int64, error) {
	return r.count(ctx, "countChildren", catalog.Params{"parent_id": parentID})
}

func (r *CategoryRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	return r.exists(ctx, "existsByName", catalog.Params{"name": name})
}

// Tree loads every category into an index keyed by parent, siblings in
// display order.
func (r *CategoryRepository) Tree(ctx context.Context) (*types.Index[model.Category], error) {
	all, err := r.query(ctx, "tree", nil)
	if err != nil {
		return nil, err
	}
	return types.NewIndex(all, model.CategoryID, model.CategoryParent), nil
}

// Path returns the categories from the root down to id, inclusive. found is
// false when id does not exist.
func (r *CategoryRepository) Path(ctx context.Context, id int64) (path []*model.Category, found bool, err error) {
	ix, err := r.Tree(ctx)
	if err != nil {
		return nil, false, err
	}
	self, ok := ix.Get(id)
	if !ok {
		return nil, false, nil
	}
	ancestors, err := ix.Ancestors(id)
	if err != nil {
		return nil, true, database.NewOperationError(database.ErrQuery, string(r.entity), "path", err)
	}
	path = make([]*model.Category, 0, len(ancestors)+1)
	for i := len(ancestors) - 1; i >= 0; i-- {
		path = append(path, ancestors[i])
	}
	return append(path, self), true, nil
}
