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

var employeeTable = table{
	name: "employee",
	pk:   "employee_id",
	columns: []string{
		"first_name", "last_name", "email", "phone", "department", "position", "manager_id",
		"hire_date", "birth_date", "status", "address", "city", "state", "zip_code",
	},
}

func employeeDefinitions() []Definition {
	sel := employeeTable.selectFrom("")
	return append(employeeTable.crud(), []Definition{
		{"findByEmail", sel + " WHERE email = :email"},
		{"findByDepartment", sel + " WHERE department = :department ORDER BY employee_id"},
		{"findByManager", sel + " WHERE manager_id = :manager_id ORDER BY employee_id"},
		{"findByStatus", sel + " WHERE status = :status ORDER BY employee_id"},
		{"findWithoutManager", sel + " WHERE manager_id IS NULL ORDER BY employee_id"},
		{"findByHireDateRange", sel + " WHERE hire_date >= :from AND hire_date < :to ORDER BY hire_date, employee_id"},
		{"findByNameLike", sel + " WHERE LOWER(first_name) LIKE :pattern ESCAPE '!' OR LOWER(last_name) LIKE :pattern ESCAPE '!' ORDER BY last_name, first_name, employee_id"},
		{"findByDepartmentsIn", sel + " WHERE department IN (:departments) ORDER BY department, employee_id"},
		{"managerOf", "SELECT manager_id FROM employee WHERE employee_id = :id"},

		{"updateStatus", "UPDATE employee SET status = :status, modified_date = :now WHERE employee_id = :id"},
		{"updateManager", "UPDATE employee SET manager_id = :manager_id, modified_date = :now WHERE employee_id = :id"},
		{"transfer", "UPDATE employee SET department = :department, manager_id = :manager_id, modified_date = :now WHERE employee_id = :id"},
		{"promote", "UPDATE employee SET position = :position, modified_date = :now WHERE employee_id = :id"},

		{"countAll", "SELECT COUNT(*) FROM employee"},
		{"headcountByDepartment", "SELECT department AS group_key, COUNT(*) AS group_value FROM employee " +
			"WHERE status = 'ACTIVE' GROUP BY department ORDER BY department"},
		{"countByManagerGroup", "SELECT manager_id AS group_key, COUNT(*) AS group_value FROM employee " +
			"WHERE manager_id IS NOT NULL GROUP BY manager_id ORDER BY manager_id"},

		{"orgChart", "SELECT e.employee_id, e.first_name, e.last_name, e.department, e.position, e.manager_id, " +
			"m.first_name AS manager_first_name, m.last_name AS manager_last_name FROM employee e " +
			"LEFT JOIN employee m ON m.employee_id = e.manager_id ORDER BY e.employee_id"},
	}...)
}
