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

var orderTable = table{
	name: "orders",
	pk:   "order_id",
	columns: []string{
		"customer_id", "order_date", "shipped_date", "delivered_date", "order_status",
		"total_amount", "tax_amount", "shipping_amount", "shipping_address", "shipping_city",
		"shipping_state", "shipping_zip", "payment_method", "payment_status",
	},
}

func orderDefinitions() []Definition {
	sel := orderTable.selectFrom("")
	return append(orderTable.crud(), []Definition{
		{"findByCustomer", sel + " WHERE customer_id = :customer_id ORDER BY order_date DESC, order_id"},
		{"findByStatus", sel + " WHERE order_status = :status ORDER BY order_id"},
		{"findByPaymentStatus", sel + " WHERE payment_status = :payment_status ORDER BY order_id"},
		{"findByOrderDateRange", sel + " WHERE order_date >= :from AND order_date < :to ORDER BY order_date, order_id"},
		{"findByTotalRange", sel + " WHERE total_amount BETWEEN :min AND :max ORDER BY total_amount, order_id"},
		{"findByShippingState", sel + " WHERE shipping_state = :state ORDER BY order_id"},
		{"findByStatusesIn", sel + " WHERE order_status IN (:statuses) ORDER BY order_id"},
		{"findShippedNotDelivered", sel + " WHERE shipped_date IS NOT NULL AND delivered_date IS NULL ORDER BY shipped_date, order_id"},

		{"updateStatus", "UPDATE orders SET order_status = :status, modified_date = :now WHERE order_id = :id"},
		{"updatePaymentStatus", "UPDATE orders SET payment_status = :payment_status, modified_date = :now WHERE order_id = :id"},
		{"markShipped", "UPDATE orders SET order_status = :status, shipped_date = :shipped_date, modified_date = :now WHERE order_id = :id"},
		{"markDelivered", "UPDATE orders SET order_status = :status, delivered_date = :delivered_date, modified_date = :now WHERE order_id = :id"},
		{"updateTotalAmount", "UPDATE orders SET total_amount = :total_amount, modified_date = :now WHERE order_id = :id"},
		{"recalculateTotal", "UPDATE orders SET total_amount = (SELECT COALESCE(SUM(oi.total_price), 0) FROM order_items oi " +
			"WHERE oi.order_id = :id), modified_date = :now WHERE order_id = :id"},

		{"countByCustomer", "SELECT COUNT(*) FROM orders WHERE customer_id = :customer_id"},
		{"sumTotalByCustomer", "SELECT COALESCE(SUM(total_amount), 0) FROM orders WHERE customer_id = :customer_id"},
		{"sumAll", "SELECT COALESCE(SUM(total_amount), 0) FROM orders"},
		{"avgOrderValue", "SELECT AVG(total_amount) FROM orders"},
		{"countByStatusGroup", "SELECT order_status AS group_key, COUNT(*) AS group_value FROM orders GROUP BY order_status ORDER BY order_status"},
		{"sumByStatusGroup", "SELECT order_status AS group_key, COALESCE(SUM(total_amount), 0) AS group_value FROM orders GROUP BY order_status ORDER BY order_status"},
		{"customersWithMultipleOrders", "SELECT customer_id AS group_key, COUNT(*) AS group_value FROM orders GROUP BY customer_id " +
			"HAVING COUNT(*) >= :min_count ORDER BY customer_id"},

		{"deleteByCustomer", "DELETE FROM orders WHERE customer_id = :customer_id"},

		{"ordersWithCustomerInfo", "SELECT o.order_id, o.order_date, o.order_status, o.total_amount, o.payment_status, " +
			"c.customer_id, c.first_name, c.last_name, c.email FROM orders o " +
			"INNER JOIN customer c ON c.customer_id = o.customer_id ORDER BY o.order_id"},
	}...)
}
