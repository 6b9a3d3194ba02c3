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

type Order struct {
	bun.BaseModel `bun:"table:orders,alias:o"`

	ID              int64           `bun:"order_id,pk"`
	CustomerID      int64           `bun:"customer_id"`
	OrderDate       time.Time       `bun:"order_date"`
	ShippedDate     bun.NullTime    `bun:"shipped_date"`
	DeliveredDate   bun.NullTime    `bun:"delivered_date"`
	Status          OrderStatus     `bun:"order_status"`
	TotalAmount     decimal.Decimal `bun:"total_amount"`
	TaxAmount       decimal.Decimal `bun:"tax_amount"`
	ShippingAmount  decimal.Decimal `bun:"shipping_amount"`
	ShippingAddress string          `bun:"shipping_address"`
	ShippingCity    string          `bun:"shipping_city"`
	ShippingState   string          `bun:"shipping_state"`
	ShippingZip     string          `bun:"shipping_zip"`
	PaymentMethod   string          `bun:"payment_method"`
	PaymentStatus   PaymentStatus   `bun:"payment_status"`
	CreatedDate     time.Time       `bun:"created_date"`
	ModifiedDate    time.Time       `bun:"modified_date"`
}

// GrandTotal is the order total plus tax and shipping.
func (o *Order) GrandTotal() decimal.Decimal {
	return o.TotalAmount.Add(o.TaxAmount).Add(o.ShippingAmount)
}
