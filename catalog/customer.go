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

var customerTable = table{
	name: "customer",
	pk:   "customer_id",
	columns: []string{
		"first_name", "last_name", "email", "phone", "address", "city", "state",
		"zip_code", "country", "status", "credit_limit", "customer_type",
	},
}

func customerDefinitions() []Definition {
	sel := customerTable.selectFrom("")
	return append(customerTable.crud(), []Definition{
		{"findByEmail", sel + " WHERE email = :email"},
		{"findByPhone", sel + " WHERE phone = :phone ORDER BY customer_id"},
		{"findByStatus", sel + " WHERE status = :status ORDER BY customer_id"},
		{"findByType", sel + " WHERE customer_type = :customer_type ORDER BY customer_id"},
		{"findByCityAndState", sel + " WHERE city = :city AND state = :state ORDER BY customer_id"},
		{"findByLastNameLike", sel + " WHERE last_name LIKE :pattern ESCAPE '!' ORDER BY last_name, customer_id"},
		{"searchByName", sel + " WHERE LOWER(first_name) LIKE :pattern ESCAPE '!' OR LOWER(last_name) LIKE :pattern ESCAPE '!' ORDER BY last_name, first_name, customer_id"},
		{"findByEmailDomain", sel + " WHERE LOWER(email) LIKE :pattern ESCAPE '!' ORDER BY customer_id"},
		{"findByCreditLimitRange", sel + " WHERE credit_limit BETWEEN :min AND :max ORDER BY credit_limit, customer_id"},
		{"findByStatesIn", sel + " WHERE state IN (:states) ORDER BY state, customer_id"},
		{"findWithoutPhone", sel + " WHERE phone IS NULL OR phone = '' ORDER BY customer_id"},
		{"findCreatedBetween", sel + " WHERE created_date >= :from AND created_date < :to ORDER BY created_date, customer_id"},
		{"findAboveAverageCredit", sel + " WHERE credit_limit > (SELECT AVG(credit_limit) FROM customer) ORDER BY credit_limit DESC, customer_id"},

		{"updateStatus", "UPDATE customer SET status = :status, modified_date = :now WHERE customer_id = :id"},
		{"updateEmail", "UPDATE customer SET email = :email, modified_date = :now WHERE customer_id = :id"},
		{"updateCreditLimit", "UPDATE customer SET credit_limit = :credit_limit, modified_date = :now WHERE customer_id = :id"},
		{"increaseCreditLimit", "UPDATE customer SET credit_limit = " + cents("credit_limit + "+money(":amount")) + ", modified_date = :now WHERE customer_id = :id"},
		{"updateStatusByCity", "UPDATE customer SET status = :status, modified_date = :now WHERE city = :city"},

		{"countAll", "SELECT COUNT(*) FROM customer"},
		{"countByStatus", "SELECT COUNT(*) FROM customer WHERE status = :status"},
		{"existsByEmail", "SELECT COUNT(*) FROM customer WHERE email = :email"},
		{"sumCreditLimit", "SELECT COALESCE(SUM(credit_limit), 0) FROM customer"},
		{"avgCreditLimit", "SELECT AVG(credit_limit) FROM customer"},
		{"maxCreditLimit", "SELECT MAX(credit_limit) FROM customer"},
		{"minCreditLimit", "SELECT MIN(credit_limit) FROM customer"},
		{"countByState", "SELECT state AS group_key, COUNT(*) AS group_value FROM customer GROUP BY state ORDER BY state"},
		{"sumCreditByType", "SELECT customer_type AS group_key, COALESCE(SUM(credit_limit), 0) AS group_value FROM customer GROUP BY customer_type ORDER BY customer_type"},
		{"statesWithMinCustomers", "SELECT state AS group_key, COUNT(*) AS group_value FROM customer GROUP BY state HAVING COUNT(*) >= :min_count ORDER BY state"},

		{"deleteByStatus", "DELETE FROM customer WHERE status = :status"},

		{"customersWithoutOrders", customerTable.selectFrom("c") +
			" LEFT JOIN orders o ON o.customer_id = c.customer_id WHERE o.order_id IS NULL ORDER BY c.customer_id"},
	}...)
}
