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

type Employee struct {
	bun.BaseModel `bun:"table:employee,alias:e"`

	ID           int64        `bun:"employee_id,pk"`
	FirstName    string       `bun:"first_name"`
	LastName     string       `bun:"last_name"`
	Email        string       `bun:"email"`
	Phone        string       `bun:"phone"`
	Department   string       `bun:"department"`
	Position     string       `bun:"position"`
	ManagerID    *int64       `bun:"manager_id"`
	HireDate     time.Time    `bun:"hire_date"`
	BirthDate    bun.NullTime `bun:"birth_date"`
	Status       RecordStatus `bun:"status"`
	Address      string       `bun:"address"`
	City         string       `bun:"city"`
	State        string       `bun:"state"`
	ZipCode      string       `bun:"zip_code"`
	CreatedDate  time.Time    `bun:"created_date"`
	ModifiedDate time.Time    `bun:"modified_date"`
}

// Manager returns the manager id, if any.
func (e *Employee) Manager() (int64, bool) {
	if e.ManagerID == nil {
		return 0, false
	}
	return *e.ManagerID, true
}

// EmployeeID is the index key of e.
func EmployeeID(e *Employee) int64 { return e.ID }

// EmployeeManager is the index parent of e.
func EmployeeManager(e *Employee) (int64, bool) { return e.Manager() }
