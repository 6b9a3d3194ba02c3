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

var orderItemTable = table{
	name: "order_items",
	pk:   "order_item_id",
	columns: []string{
		"order_id", "product_id", "quantity", "unit_price", "discount", "total_price",
	},
}

func orderItemDefinitions() []Definition {
	sel := orderItemTable.selectFrom("")
	return append(orderItemTable.crud(), []Definition{
		{"findByOrder", sel + " WHERE order_id = :order_id ORDER BY order_item_id"},
		{"findByProduct", sel + " WHERE product_id = :product_id ORDER BY order_item_id"},
		{"findByOrderAndProduct", sel + " WHERE order_id = :order_id AND product_id = :product_id ORDER BY order_item_id"},
		{"findByQuantityRange", sel + " WHERE quantity BETWEEN :min AND :max ORDER BY quantity, order_item_id"},
		{"findWithDiscount", sel + " WHERE discount > 0 ORDER BY order_item_id"},

		{"updateQuantity", "UPDATE order_items SET quantity = :quantity, total_price = " + cents("unit_price * :quantity - discount") + ", " +
			"modified_date = :now WHERE order_item_id = :id"},
		{"updateUnitPrice", "UPDATE order_items SET unit_price = :unit_price, total_price = " + cents(money(":unit_price")+" * quantity - discount") + ", " +
			"modified_date = :now WHERE order_item_id = :id"},
		{"applyDiscount", "UPDATE order_items SET discount = :discount, total_price = " + cents("unit_price * quantity - "+money(":discount")) + ", " +
			"modified_date = :now WHERE order_item_id = :id"},
		{"incrementQuantity", "UPDATE order_items SET total_price = " + cents("unit_price * (quantity + :delta) - discount") + ", quantity = quantity + :delta, " +
			"modified_date = :now WHERE order_item_id = :id"},

		{"countByOrder", "SELECT COUNT(*) FROM order_items WHERE order_id = :order_id"},
		{"sumByOrder", "SELECT COALESCE(SUM(total_price), 0) FROM order_items WHERE order_id = :order_id"},
		{"sumQuantityByProduct", "SELECT COALESCE(SUM(quantity), 0) FROM order_items WHERE product_id = :product_id"},
		{"sumRevenueByProduct", "SELECT product_id AS group_key, COALESCE(SUM(total_price), 0) AS group_value FROM order_items " +
			"GROUP BY product_id ORDER BY product_id"},
		{"avgUnitPrice", "SELECT AVG(unit_price) FROM order_items"},
		{"topSellers", "SELECT product_id AS group_key, SUM(quantity) AS group_value FROM order_items " +
			"GROUP BY product_id ORDER BY SUM(quantity) DESC, product_id LIMIT :limit"},
		{"ordersWithMultipleItems", "SELECT order_id AS group_key, COUNT(*) AS group_value FROM order_items GROUP BY order_id " +
			"HAVING COUNT(*) >= :min_count ORDER BY order_id"},

		{"deleteByOrder", "DELETE FROM order_items WHERE order_id = :order_id"},

		{"itemsWithProductInfo", "SELECT oi.order_item_id, oi.order_id, oi.product_id, p.product_code, p.product_name, " +
			"oi.quantity, oi.unit_price, oi.discount, oi.total_price FROM order_items oi " +
			"INNER JOIN product p ON p.product_id = oi.product_id WHERE oi.order_id = :order_id ORDER BY oi.order_item_id"},
	}...)
}
