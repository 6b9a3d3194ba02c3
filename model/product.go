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

type Product struct {
	bun.BaseModel `bun:"table:product,alias:p"`

	ID            int64           `bun:"product_id,pk"`
	Code          string          `bun:"product_code"`
	Name          string          `bun:"product_name"`
	Description   string          `bun:"description"`
	Category      string          `bun:"category"`
	SubCategory   string          `bun:"sub_category"`
	Price         decimal.Decimal `bun:"price"`
	Cost          decimal.Decimal `bun:"cost"`
	StockQuantity int             `bun:"stock_quantity"`
	ReorderLevel  int             `bun:"reorder_level"`
	Supplier      string          `bun:"supplier"`
	Manufacturer  string          `bun:"manufacturer"`
	CreatedDate   time.Time       `bun:"created_date"`
	ModifiedDate  time.Time       `bun:"modified_date"`
	Status        ProductStatus   `bun:"status"`
	Barcode       string          `bun:"barcode"`
}

// Margin is price minus cost.
func (p *Product) Margin() decimal.Decimal {
	return p.Price.Sub(p.Cost)
}

// NeedsReorder reports whether stock is at or below the reorder level.
func (p *Product) NeedsReorder() bool {
	return p.StockQuantity <= p.ReorderLevel
}
