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

package model

import (
	"time"

	"github.com/uptrace/bun"
)

type Category struct {
	bun.BaseModel `bun:"table:category,alias:cat"`

	ID               int64        `bun:"category_id,pk"`
	Name             string       `bun:"category_name"`
	ParentCategoryID *int64       `bun:"parent_category_id"`
	Description      string       `bun:"description"`
	DisplayOrder     int          `bun:"display_order"`
	Status           RecordStatus `bun:"status"`
	CreatedDate      time.Time    `bun:"created_date"`
	ModifiedDate     time.Time    `bun:"modified_date"`
}

// Parent returns the parent category id, if any.
func (c *Category) Parent() (int64, bool) {
	if c.ParentCategoryID == nil {
		return 0, false
	}
	return *c.ParentCategoryID, true
}

// CategoryID is the index key of c.
func CategoryID(c *Category) int64 { return c.ID }

// CategoryParent is the index parent of c.
func CategoryParent(c *Category) (int64, bool) { return c.Parent() }

// Ref returns a pointer to id, for optional parent/manager references.
func Ref(id int64) *int64 { return &id }
