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

var categoryTable = table{
	name: "category",
	pk:   "category_id",
	columns: []string{
		"category_name", "parent_category_id", "description", "display_order", "status",
	},
}

func categoryDefinitions() []Definition {
	sel := categoryTable.selectFrom("")
	return append(categoryTable.crud(), []Definition{
		{"findByName", sel + " WHERE category_name = :name"},
		{"findByParent", sel + " WHERE parent_category_id = :parent_id ORDER BY display_order, category_id"},
		{"findRoots", sel + " WHERE parent_category_id IS NULL ORDER BY display_order, category_id"},
		{"findByStatus", sel + " WHERE status = :status ORDER BY display_order, category_id"},
		{"findByNameLike", sel + " WHERE LOWER(category_name) LIKE :pattern ESCAPE '!' ORDER BY category_name, category_id"},
		{"parentOf", "SELECT parent_category_id FROM category WHERE category_id = :id"},

		{"updateParent", "UPDATE category SET parent_category_id = :parent_id, modified_date = :now WHERE category_id = :id"},
		{"updateStatus", "UPDATE category SET status = :status, modified_date = :now WHERE category_id = :id"},
		{"updateDisplayOrder", "UPDATE category SET display_order = :display_order, modified_date = :now WHERE category_id = :id"},

		{"countAll", "SELECT COUNT(*) FROM category"},
		{"countChildren", "SELECT COUNT(*) FROM category WHERE parent_category_id = :parent_id"},
		{"existsByName", "SELECT COUNT(*) FROM category WHERE category_name = :name"},
		{"tree", sel + " ORDER BY display_order, category_id"},
	}...)
}
