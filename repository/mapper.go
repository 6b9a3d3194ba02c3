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
	"fmt"
	"reflect"
	"time"

	"github.com/tomoncle/retaildao/catalog"
	"github.com/tomoncle/retaildao/types"
	"github.com/uptrace/bun/schema"
)

const (
	createdColumn  = "created_date"
	modifiedColumn = "modified_date"
	nowParam       = "now"
)

var timeType = reflect.TypeOf(time.Time{})

// RowMapper converts between an entity and named statement parameters using
// the column names in its bun tags, so binding never depends on placeholder
// order.
type RowMapper[T any] struct {
	table *schema.Table
}

// NewRowMapper reads T's column metadata from dialect.
func NewRowMapper[T any](dialect schema.Dialect) *RowMapper[T] {
	return &RowMapper[T]{table: dialect.Tables().Get(reflect.TypeOf((*T)(nil)).Elem())}
}

// Table returns the SQL table name.
func (m *RowMapper[T]) Table() string { return m.table.Name }

// PK returns the primary key column.
func (m *RowMapper[T]) PK() string {
	if len(m.table.PKs) == 0 {
		return ""
	}
	return m.table.PKs[0].Name
}

// Columns returns every mapped column in declaration order.
func (m *RowMapper[T]) Columns() []string {
	cols := make([]string, len(m.table.Fields))
	for i, f := range m.table.Fields {
		cols[i] = f.Name
	}
	return cols
}

// Params returns one entry per column plus "now".
func (m *RowMapper[T]) Params(entity *T, now time.Time) catalog.Params {
	strct := reflect.ValueOf(entity).Elem()
	params := make(catalog.Params, len(m.table.Fields)+1)
	for _, f := range m.table.Fields {
		params[f.Name] = f.Value(strct).Interface()
	}
	params[nowParam] = now
	return params
}

// ID returns the primary key value of entity.
func (m *RowMapper[T]) ID(entity *T) int64 {
	if len(m.table.PKs) == 0 {
		return 0
	}
	v := m.table.PKs[0].Value(reflect.ValueOf(entity).Elem())
	if v.CanInt() {
		return v.Int()
	}
	return 0
}

// Stamp sets the created and/or modified columns of entity to now.
func (m *RowMapper[T]) Stamp(entity *T, now time.Time, created bool) {
	strct := reflect.ValueOf(entity).Elem()
	cols := []string{modifiedColumn}
	if created {
		cols = append(cols, createdColumn)
	}
	for _, col := range cols {
		f, ok := m.table.FieldMap[col]
		if !ok || f.IndirectType != timeType {
			continue
		}
		fv := f.Value(strct)
		if fv.CanSet() && fv.Type() == timeType {
			fv.Set(reflect.ValueOf(now))
		}
	}
}

// FromRow builds an entity from a report row. Columns the entity does not
// map are ignored; NULLs leave the zero value.
func (m *RowMapper[T]) FromRow(row types.Row) (*T, error) {
	entity := new(T)
	strct := reflect.ValueOf(entity).Elem()
	for col, src := range row {
		f, ok := m.table.FieldMap[col]
		if !ok {
			continue
		}
		if err := f.ScanValue(strct, src); err != nil {
			return nil, fmt.Errorf("failed to map column %s of %s: %w", col, m.table.Name, err)
		}
	}
	return entity, nil
}
