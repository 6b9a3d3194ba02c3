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

type Invoice struct {
	bun.BaseModel `bun:"table:invoice,alias:i"`

	ID            int64           `bun:"invoice_id,pk"`
	OrderID       int64           `bun:"order_id"`
	CustomerID    int64           `bun:"customer_id"`
	Number        string          `bun:"invoice_number"`
	InvoiceDate   time.Time       `bun:"invoice_date"`
	DueDate       time.Time       `bun:"due_date"`
	Subtotal      decimal.Decimal `bun:"subtotal"`
	TaxAmount     decimal.Decimal `bun:"tax_amount"`
	TotalAmount   decimal.Decimal `bun:"total_amount"`
	PaidAmount    decimal.Decimal `bun:"paid_amount"`
	PaymentStatus PaymentStatus   `bun:"payment_status"`
	Notes         string          `bun:"notes"`
	CreatedDate   time.Time       `bun:"created_date"`
	ModifiedDate  time.Time       `bun:"modified_date"`
}

// Balance is the amount still owed.
func (i *Invoice) Balance() decimal.Decimal {
	return i.TotalAmount.Sub(i.PaidAmount)
}

// Overdue reports whether the invoice is past due at asOf and not settled.
func (i *Invoice) Overdue(asOf time.Time) bool {
	return i.PaymentStatus.Outstanding() && i.DueDate.Before(asOf)
}
