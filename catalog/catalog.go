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

package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/tomoncle/retaildao/database"
)

// ErrUnknownOperation is returned by Get for a key with no template.
var ErrUnknownOperation = errors.New("unknown operation")

// Entity names the table family a template belongs to.
type Entity string

const (
	Customer  Entity = "customer"
	Product   Entity = "product"
	Order     Entity = "order"
	OrderItem Entity = "order_item"
	Invoice   Entity = "invoice"
	Supplier  Entity = "supplier"
	Employee  Entity = "employee"
	Category  Entity = "category"
)

// Entities lists every entity with a template table.
func Entities() []Entity {
	return []Entity{Customer, Product, Order, OrderItem, Invoice, Supplier, Employee, Category}
}

// Operations every entity supports.
const (
	OpInsert   = "insert"
	OpUpdate   = "update"
	OpDelete   = "delete"
	OpFindByID = "findById"
	OpFindAll  = "findAll"
	OpPaginate = "paginate"
)

// GenericOperations lists the operations every entity registers.
func GenericOperations() []string {
	return []string{OpInsert, OpUpdate, OpDelete, OpFindByID, OpFindAll, OpPaginate}
}

// Key identifies one template.
type Key struct {
	Entity    Entity
	Operation string
}

func (k Key) String() string {
	return string(k.Entity) + "." + k.Operation
}

// Params carries named values for a template. Unused entries are ignored.
type Params map[string]interface{}

// Template is one compiled statement.
type Template struct {
	Key    Key
	Text   string   // as written, with :name placeholders
	SQL    string   // with ? placeholders, ready for bun
	Params []string // placeholder names in order
}

// Bind orders params to match the template's placeholders. A missing name is
// an ErrInvalidArgument.
func (t *Template) Bind(params Params) ([]interface{}, error) {
	args := make([]interface{}, len(t.Params))
	for i, name := range t.Params {
		v, ok := params[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s requires parameter %q", database.ErrInvalidArgument, t.Key, name)
		}
		args[i] = v
	}
	return args, nil
}

// Definition is one row of an entity's declarative template table.
type Definition struct {
	Operation string
	Text      string
}

// Catalog maps keys to compiled templates. It is read-only once built.
type Catalog struct {
	templates map[Key]*Template
	keys      []Key
}

// New compiles every definition. Duplicate keys and malformed text fail.
func New(tables map[Entity][]Definition) (*Catalog, error) {
	c := &Catalog{templates: make(map[Key]*Template)}
	for entity, defs := range tables {
		for _, def := range defs {
			key := Key{Entity: entity, Operation: def.Operation}
			if _, dup := c.templates[key]; dup {
				return nil, fmt.Errorf("duplicate template %s", key)
			}
			sqlText, params, err := Compile(def.Text)
			if err != nil {
				return nil, fmt.Errorf("template %s: %w", key, err)
			}
			c.templates[key] = &Template{
				Key:    key,
				Text:   def.Text,
				SQL:    sqlText,
				Params: params,
			}
			c.keys = append(c.keys, key)
		}
	}
	sort.Slice(c.keys, func(i, j int) bool {
		if c.keys[i].Entity != c.keys[j].Entity {
			return c.keys[i].Entity < c.keys[j].Entity
		}
		return c.keys[i].Operation < c.keys[j].Operation
	})
	return c, nil
}

// MustNew is New that panics on error.
func MustNew(tables map[Entity][]Definition) *Catalog {
	c, err := New(tables)
	if err != nil {
		panic(err)
	}
	return c
}

// Get returns the template registered for (entity, operation).
func (c *Catalog) Get(entity Entity, operation string) (*Template, error) {
	t, ok := c.templates[Key{Entity: entity, Operation: operation}]
	if !ok {
		return nil, fmt.Errorf("%w: %s.%s", ErrUnknownOperation, entity, operation)
	}
	return t, nil
}

// Keys returns every registered key, sorted.
func (c *Catalog) Keys() []Key {
	out := make([]Key, len(c.keys))
	copy(out, c.keys)
	return out
}

// Operations returns the sorted operation names registered for entity.
func (c *Catalog) Operations(entity Entity) []string {
	var ops []string
	for _, k := range c.keys {
		if k.Entity == entity {
			ops = append(ops, k.Operation)
		}
	}
	return ops
}

// Len returns the number of templates.
func (c *Catalog) Len() int { return len(c.keys) }

var defaultCatalog = sync.OnceValue(func() *Catalog {
	return MustNew(DefaultTables())
})

// Default returns the process-wide catalog of retail statements.
func Default() *Catalog { return defaultCatalog() }

// DefaultTables returns the template table of every entity.
func DefaultTables() map[Entity][]Definition {
	return map[Entity][]Definition{
		Customer:  customerDefinitions(),
		Product:   productDefinitions(),
		Order:     orderDefinitions(),
		OrderItem: orderItemDefinitions(),
		Invoice:   invoiceDefinitions(),
		Supplier:  supplierDefinitions(),
		Employee:  employeeDefinitions(),
		Category:  categoryDefinitions(),
	}
}

// table describes the shape shared by the generic statements.
type table struct {
	name    string
	pk      string
	columns []string // persisted columns besides pk, created_date and modified_date
}

func (t table) allColumns() []string {
	cols := make([]string, 0, len(t.columns)+3)
	cols = append(cols, t.pk)
	cols = append(cols, t.columns...)
	return append(cols, "created_date", "modified_date")
}

// money casts a bound amount to fixed point; decimals are bound as text.
func money(param string) string {
	return "CAST(" + param + " AS DECIMAL(12,2))"
}

// cents rounds a computed money expression to two decimal places.
func cents(expr string) string {
	return "ROUND(" + expr + ", 2)"
}

// selectFrom returns "SELECT <every column> FROM <table>", optionally with a
// table alias prefixed to each column.
func (t table) selectFrom(alias string) string {
	cols := t.allColumns()
	if alias != "" {
		for i, c := range cols {
			cols[i] = alias + "." + c
		}
		return "SELECT " + strings.Join(cols, ", ") + " FROM " + t.name + " " + alias
	}
	return "SELECT " + strings.Join(cols, ", ") + " FROM " + t.name
}

// crud returns the generic statements for t.
func (t table) crud() []Definition {
	insertCols := append([]string{t.pk}, t.columns...)
	values := make([]string, 0, len(insertCols)+2)
	for _, c := range insertCols {
		values = append(values, ":"+c)
	}
	values = append(values, ":now", ":now")

	sets := make([]string, 0, len(t.columns)+1)
	for _, c := range t.columns {
		sets = append(sets, c+" = :"+c)
	}
	sets = append(sets, "modified_date = :now")

	return []Definition{
		{OpInsert, "INSERT INTO " + t.name + " (" + strings.Join(insertCols, ", ") +
			", created_date, modified_date) VALUES (" + strings.Join(values, ", ") + ")"},
		{OpUpdate, "UPDATE " + t.name + " SET " + strings.Join(sets, ", ") + " WHERE " + t.pk + " = :" + t.pk},
		{OpDelete, "DELETE FROM " + t.name + " WHERE " + t.pk + " = :id"},
		{OpFindByID, t.selectFrom("") + " WHERE " + t.pk + " = :id"},
		{OpFindAll, t.selectFrom("") + " ORDER BY " + t.pk},
		{OpPaginate, t.selectFrom("") + " ORDER BY " + t.pk + " LIMIT :limit OFFSET :offset"},
	}
}
