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
	"time"

	"github.com/tomoncle/retaildao/catalog"
	"github.com/tomoncle/retaildao/database"
	"github.com/tomoncle/retaildao/model"
	"github.com/tomoncle/retaildao/types"
	"github.com/uptrace/bun"
)

const managerOf = "managerOf"

type EmployeeRepository struct {
	*baseRepositoryImpl[model.Employee]
}

var _ Repository[model.Employee] = (*EmployeeRepository)(nil)

func NewEmployeeRepository(p *database.Provider, c *catalog.Catalog) *EmployeeRepository {
	return &EmployeeRepository{newBaseRepository[model.Employee](catalog.Employee, p, c)}
}

// Insert writes e after checking its manager chain does not lead back to e.
func (r *EmployeeRepository) Insert(ctx context.Context, e *model.Employee) error {
	if e == nil {
		return r.invalid(catalog.OpInsert, "entity is nil")
	}
	return r.writeTree(ctx, catalog.OpInsert, managerOf, e, e.ManagerID)
}

// Update rewrites e, failing with ErrCycle if its manager chain would lead
// back to e.
func (r *EmployeeRepository) Update(ctx context.Context, e *model.Employee) error {
	if e == nil {
		return r.invalid(catalog.OpUpdate, "entity is nil")
	}
	return r.writeTree(ctx, catalog.OpUpdate, managerOf, e, e.ManagerID)
}

func (r *EmployeeRepository) FindByEmail(ctx context.Context, email string) (*model.Employee, bool, error) {
	return r.queryOne(ctx, "findByEmail", catalog.Params{"email": email})
}

func (r *EmployeeRepository) FindByDepartment(ctx context.Context, department string) ([]*model.Employee, error) {
	return r.query(ctx, "findByDepartment", catalog.Params{"department": department})
}

// FindByManager returns the direct reports of managerID.
func (r *EmployeeRepository) FindByManager(ctx context.Context, managerID int64) ([]*model.Employee, error) {
	return r.query(ctx, "findByManager", catalog.Params{"manager_id": managerID})
}

func (r *EmployeeRepository) FindByStatus(ctx context.Context, status model.RecordStatus) ([]*model.Employee, error) {
	return r.query(ctx, "findByStatus", catalog.Params{"status": status})
}

func (r *EmployeeRepository) FindWithoutManager(ctx context.Context) ([]*model.Employee, error) {
	return r.query(ctx, "findWithoutManager", nil)
}

// FindByHireDateRange returns employees hired in [from, to).
func (r *EmployeeRepository) FindByHireDateRange(ctx context.Context, from, to time.Time) ([]*model.Employee, error) {
	return r.query(ctx, "findByHireDateRange", catalog.Params{"from": from.UTC(), "to": to.UTC()})
}

func (r *EmployeeRepository) FindByNameLike(ctx context.Context, term string) ([]*model.Employee, error) {
	return r.query(ctx, "findByNameLike", catalog.Params{"pattern": like(term)})
}

func (r *EmployeeRepository) FindByDepartmentsIn(ctx context.Context, departments ...string) ([]*model.Employee, error) {
	if len(departments) == 0 {
		return []*model.Employee{}, nil
	}
	return r.query(ctx, "findByDepartmentsIn", catalog.Params{"departments": bun.In(departments)})
}

func (r *EmployeeRepository) UpdateStatus(ctx context.Context, id int64, status model.RecordStatus) error {
	if !status.IsValid() {
		return r.invalid("updateStatus", "unknown employee status %q", status)
	}
	return r.execOne(ctx, "updateStatus", catalog.Params{"id": id, "status": status})
}

// UpdateManager reassigns id to managerID; nil clears the manager.
func (r *EmployeeRepository) UpdateManager(ctx context.Context, id int64, managerID *int64) error {
	return r.reparent(ctx, managerOf, "updateManager", id, managerID,
		catalog.Params{"id": id, "manager_id": managerID})
}

// Transfer moves id to department under managerID.
func (r *EmployeeRepository) Transfer(ctx context.Context, id int64, department string, managerID *int64) error {
	return r.reparent(ctx, managerOf, "transfer", id, managerID,
		catalog.Params{"id": id, "department": department, "manager_id": managerID})
}

func (r *EmployeeRepository) Promote(ctx context.Context, id int64, position string) error {
	return r.execOne(ctx, "promote", catalog.Params{"id": id, "position": position})
}

func (r *EmployeeRepository) CountAll(ctx context.Context) (int64, error) {
	return r.count(ctx, "countAll", nil)
}

// HeadcountByDepartment counts ACTIVE employees per department.
func (r *EmployeeRepository) HeadcountByDepartment(ctx context.Context) ([]types.Grouped[string, int64], error) {
	return grouped[string, int64](ctx, r.baseRepositoryImpl, "headcountByDepartment", nil)
}

// CountByManagerGroup counts direct reports per manager id.
func (r *EmployeeRepository) CountByManagerGroup(ctx context.Context) ([]types.Grouped[int64, int64], error) {
	return grouped[int64, int64](ctx, r.baseRepositoryImpl, "countByManagerGroup", nil)
}

// OrgChart lists every employee with the manager's first and last name.
func (r *EmployeeRepository) OrgChart(ctx context.Context) ([]types.Row, error) {
	return r.report(ctx, "orgChart", nil)
}

// Hierarchy loads every employee into an index keyed by manager.
func (r *EmployeeRepository) Hierarchy(ctx context.Context) (*types.Index[model.Employee], error) {
	all, err := r.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return types.NewIndex(all, model.EmployeeID, model.EmployeeManager), nil
}

// ManagementChain returns id's managers, nearest first. found is false when
// id does not exist.
func (r *EmployeeRepository) ManagementChain(ctx context.Context, id int64) (chain []*model.Employee, found bool, err error) {
	ix, err := r.Hierarchy(ctx)
	if err != nil {
		return nil, false, err
	}
	if _, ok := ix.Get(id); !ok {
		return nil, false, nil
	}
	chain, err = ix.Ancestors(id)
	if err != nil {
		return nil, true, database.NewOperationError(database.ErrQuery, string(r.entity), managerOf, err)
	}
	return chain, true, nil
}
