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

var invoiceTable = table{
	name: "invoice",
	pk:   "invoice_id",
	columns: []string{
		"order_id", "customer_id", "invoice_number", "invoice_date", "due_date", "subtotal",
		"tax_amount", "total_amount", "paid_amount", "payment_status", "notes",
	},
}

const outstanding = "payment_status IN ('UNPAID', 'PARTIAL')"

var paidAfter = cents("paid_amount + " + money(":amount"))

func invoiceDefinitions() []Definition {
	sel := invoiceTable.selectFrom("")
	return append(invoiceTable.crud(), []Definition{
		{"findByNumber", sel + " WHERE invoice_number = :invoice_number"},
		{"findByOrder", sel + " WHERE order_id = :order_id ORDER BY invoice_id"},
		{"findByCustomer", sel + " WHERE customer_id = :customer_id ORDER BY invoice_date, invoice_id"},
		{"findByPaymentStatus", sel + " WHERE payment_status = :payment_status ORDER BY invoice_id"},
		{"findOverdue", sel + " WHERE due_date < :as_of AND " + outstanding + " ORDER BY due_date, invoice_id"},
		{"findByDueDateRange", sel + " WHERE due_date >= :from AND due_date < :to ORDER BY due_date, invoice_id"},
		{"findByTotalRange", sel + " WHERE total_amount BETWEEN :min AND :max ORDER BY total_amount, invoice_id"},

		{"updatePaymentStatus", "UPDATE invoice SET payment_status = :payment_status, modified_date = :now WHERE invoice_id = :id"},
		{"markPaid", "UPDATE invoice SET paid_amount = total_amount, payment_status = 'PAID', modified_date = :now WHERE invoice_id = :id"},
		{"addPayment", "UPDATE invoice SET payment_status = CASE WHEN " + paidAfter + " >= total_amount THEN 'PAID' ELSE 'PARTIAL' END, " +
			"paid_amount = " + paidAfter + ", modified_date = :now WHERE invoice_id = :id AND " + outstanding},
		{"void", "UPDATE invoice SET payment_status = 'VOID', notes = :notes, modified_date = :now WHERE invoice_id = :id"},
		{"updateDueDate", "UPDATE invoice SET due_date = :due_date, modified_date = :now WHERE invoice_id = :id"},

		{"countByStatusGroup", "SELECT payment_status AS group_key, COUNT(*) AS group_value FROM invoice GROUP BY payment_status ORDER BY payment_status"},
		{"sumOutstanding", "SELECT COALESCE(SUM(total_amount - paid_amount), 0) FROM invoice WHERE " + outstanding},
		{"sumByCustomer", "SELECT COALESCE(SUM(total_amount), 0) FROM invoice WHERE customer_id = :customer_id"},
		{"outstandingByCustomer", "SELECT customer_id AS group_key, COALESCE(SUM(total_amount - paid_amount), 0) AS group_value FROM invoice " +
			"WHERE " + outstanding + " GROUP BY customer_id ORDER BY customer_id"},
		{"customersHighOutstanding", "SELECT customer_id AS group_key, SUM(total_amount - paid_amount) AS group_value FROM invoice " +
			"WHERE " + outstanding + " GROUP BY customer_id HAVING SUM(total_amount - paid_amount) > " + money(":threshold") + " ORDER BY customer_id"},
	}...)
}
