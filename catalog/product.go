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

var productTable = table{
	name: "product",
	pk:   "product_id",
	columns: []string{
		"product_code", "product_name", "description", "category", "sub_category", "price", "cost",
		"stock_quantity", "reorder_level", "supplier", "manufacturer", "status", "barcode",
	},
}

func productDefinitions() []Definition {
	sel := productTable.selectFrom("")
	return append(productTable.crud(), []Definition{
		{"findByCode", sel + " WHERE product_code = :code"},
		{"findByCategory", sel + " WHERE category = :category ORDER BY product_id"},
		{"findBySupplier", sel + " WHERE supplier = :supplier ORDER BY product_id"},
		{"findByStatus", sel + " WHERE status = :status ORDER BY product_id"},
		{"findByNameLike", sel + " WHERE LOWER(product_name) LIKE :pattern ESCAPE '!' ORDER BY product_name, product_id"},
		{"findByPriceRange", sel + " WHERE price BETWEEN :min AND :max ORDER BY price, product_id"},
		{"findLowStock", sel + " WHERE stock_quantity <= reorder_level ORDER BY stock_quantity, product_id"},
		{"findOutOfStock", sel + " WHERE stock_quantity <= 0 ORDER BY product_id"},
		{"findByCategoriesIn", sel + " WHERE category IN (:categories) ORDER BY category, product_id"},
		{"findWithoutBarcode", sel + " WHERE barcode IS NULL OR barcode = '' ORDER BY product_id"},

		{"updatePrice", "UPDATE product SET price = :price, modified_date = :now WHERE product_id = :id"},
		{"updateStatus", "UPDATE product SET status = :status, modified_date = :now WHERE product_id = :id"},
		{"updateStock", "UPDATE product SET stock_quantity = :quantity, modified_date = :now WHERE product_id = :id"},
		{"incrementStock", "UPDATE product SET stock_quantity = stock_quantity + :quantity, modified_date = :now WHERE product_id = :id"},
		{"decrementStock", "UPDATE product SET stock_quantity = stock_quantity - :quantity, modified_date = :now WHERE product_id = :id AND stock_quantity >= :quantity"},
		{"increasePriceByCategory", "UPDATE product SET price = " + cents("price * CAST(:factor AS DECIMAL(12,4))") + ", modified_date = :now WHERE category = :category"},

		{"countAll", "SELECT COUNT(*) FROM product"},
		{"countByCategory", "SELECT COUNT(*) FROM product WHERE category = :category"},
		{"existsByCode", "SELECT COUNT(*) FROM product WHERE product_code = :code"},
		{"sumStockValue", "SELECT COALESCE(SUM(price * stock_quantity), 0) FROM product"},
		{"avgPrice", "SELECT AVG(price) FROM product"},
		{"maxPrice", "SELECT MAX(price) FROM product"},
		{"minPrice", "SELECT MIN(price) FROM product"},
		{"countByCategoryGroup", "SELECT category AS group_key, COUNT(*) AS group_value FROM product GROUP BY category ORDER BY category"},
		{"avgPriceByCategory", "SELECT category AS group_key, AVG(price) AS group_value FROM product GROUP BY category ORDER BY category"},
		{"categoriesWithMinProducts", "SELECT category AS group_key, COUNT(*) AS group_value FROM product GROUP BY category HAVING COUNT(*) >= :min_count ORDER BY category"},

		{"deleteDiscontinued", "DELETE FROM product WHERE status = :status"},

		{"inventoryReport", "SELECT product_id, product_code, product_name, category, stock_quantity, reorder_level, price, " +
			"price * stock_quantity AS stock_value FROM product ORDER BY category, product_code"},
	}...)
}
