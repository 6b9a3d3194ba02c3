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

var supplierTable = table{
	name: "supplier",
	pk:   "supplier_id",
	columns: []string{
		"supplier_name", "contact_person", "email", "phone", "address", "city", "state",
		"zip_code", "country", "rating", "status",
	},
}

var rated = cents("rating + CAST(:delta AS DECIMAL(3,2))")

func supplierDefinitions() []Definition {
	sel := supplierTable.selectFrom("")
	return append(supplierTable.crud(), []Definition{
		{"findByName", sel + " WHERE supplier_name = :name"},
		{"findByCountry", sel + " WHERE country = :country ORDER BY supplier_id"},
		{"findByStatus", sel + " WHERE status = :status ORDER BY supplier_id"},
		{"findByRatingRange", sel + " WHERE rating BETWEEN :min AND :max ORDER BY rating DESC, supplier_id"},
		{"findTopRated", sel + " WHERE status = 'ACTIVE' ORDER BY rating DESC, supplier_id LIMIT :limit"},
		{"findByNameLike", sel + " WHERE LOWER(supplier_name) LIKE :pattern ESCAPE '!' ORDER BY supplier_name, supplier_id"},

		{"updateStatus", "UPDATE supplier SET status = :status, modified_date = :now WHERE supplier_id = :id"},
		{"updateRating", "UPDATE supplier SET rating = :rating, modified_date = :now WHERE supplier_id = :id"},
		{"incrementRating", "UPDATE supplier SET rating = CASE WHEN " + rated + " > CAST(:max_rating AS DECIMAL(3,2)) THEN :max_rating " +
			"WHEN " + rated + " < 0 THEN 0 ELSE " + rated + " END, modified_date = :now WHERE supplier_id = :id"},

		{"countByStatus", "SELECT COUNT(*) FROM supplier WHERE status = :status"},
		{"avgRating", "SELECT AVG(rating) FROM supplier"},
		{"existsByName", "SELECT COUNT(*) FROM supplier WHERE supplier_name = :name"},
		{"countByCountry", "SELECT country AS group_key, COUNT(*) AS group_value FROM supplier GROUP BY country ORDER BY country"},
		{"avgRatingByCountry", "SELECT country AS group_key, AVG(rating) AS group_value FROM supplier GROUP BY country ORDER BY country"},
	}...)
}
