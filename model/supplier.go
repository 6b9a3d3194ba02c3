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

	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

type Supplier struct {
	bun.BaseModel `bun:"table:supplier,alias:s"`

	ID            int64           `bun:"supplier_id,pk"`
	Name          string          `bun:"supplier_name"`
	ContactPerson string          `bun:"contact_person"`
	Email         string          `bun:"email"`
	Phone         string          `bun:"phone"`
	Address       string          `bun:"address"`
	City          string          `bun:"city"`
	State         string          `bun:"state"`
	ZipCode       string          `bun:"zip_code"`
	Country       string          `bun:"country"`
	Rating        decimal.Decimal `bun:"rating"`
	Status        RecordStatus    `bun:"status"`
	CreatedDate   time.Time       `bun:"created_date"`
	ModifiedDate  time.Time       `bun:"modified_date"`
}
