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

type OrderItem struct {
	bun.BaseModel `bun:"table:order_items,alias:oi"`

	ID           int64           `bun:"order_item_id,pk"`
	OrderID      int64           `bun:"order_id"`
	ProductID    int64           `bun:"product_id"`
	Quantity     int             `bun:"quantity"`
	UnitPrice    decimal.Decimal `bun:"unit_price"`
	Discount     decimal.Decimal `bun:"discount"`
	TotalPrice   decimal.Decimal `bun:"total_price"`
	CreatedDate  time.Time       `bun:"created_date"`
	ModifiedDate time.Time       `bun:"modified_date"`
}

// LineTotal returns unit_price * quantity - discount.
func LineTotal(unitPrice decimal.Decimal, quantity int, discount decimal.Decimal) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity))).Sub(discount)
}

// LineTotal applies the line formula to the item's own fields.
func (i *OrderItem) LineTotal() decimal.Decimal {
	return LineTotal(i.UnitPrice, i.Quantity, i.Discount)
}
