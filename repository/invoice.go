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

package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tomoncle/retaildao/catalog"
	"github.com/tomoncle/retaildao/database"
	"github.com/tomoncle/retaildao/model"
	"github.com/tomoncle/retaildao/types"
)

type InvoiceRepository struct {
	*baseRepositoryImpl[model.Invoice]
}

var _ Repository[model.Invoice] = (*InvoiceRepository)(nil)

func NewInvoiceRepository(p *database.Provider, c *catalog.Catalog) *InvoiceRepository {
	return &InvoiceRepository{newBaseRepository[model.Invoice](catalog.Invoice, p, c)}
}

func (r *InvoiceRepository) FindByNumber(ctx context.Context, number string) (*model.Invoice, bool, error) {
	return r.queryOne(ctx, "findByNumber", catalog.Params{"invoice_number": number})
}

func (r *InvoiceRepository) FindByOrder(ctx context.Context, orderID int64) ([]*model.Invoice, error) {
	return r.query(ctx, "findByOrder", catalog.Params{"order_id": orderID})
}

func (r *InvoiceRepository) FindByCustomer(ctx context.Context, customerID int64) ([]*model.Invoice, error) {
	return r.query(ctx, "findByCustomer", catalog.Params{"customer_id": customerID})
}

func (r *InvoiceRepository) FindByPaymentStatus(ctx context.Context, status model.PaymentStatus) ([]*model.Invoice, error) {
	return r.query(ctx, "findByPaymentStatus", catalog.Params{"payment_status": status})
}

// FindOverdue returns UNPAID or PARTIAL invoices due before asOf, oldest due first.
func (r *InvoiceRepository) FindOverdue(ctx context.Context, asOf time.Time) ([]*model.Invoice, error) {
	return r.query(ctx, "findOverdue", catalog.Params{"as_of": asOf.UTC()})
}

// FindByDueDateRange returns invoices due in [from, to).
func (r *InvoiceRepository) FindByDueDateRange(ctx context.Context, from, to time.Time) ([]*model.Invoice, error) {
	return r.query(ctx, "findByDueDateRange", catalog.Params{"from": from.UTC(), "to": to.UTC()})
}

func (r *InvoiceRepository) FindByTotalRange(ctx context.Context, min, max decimal.Decimal) ([]*model.Invoice, error) {
	return r.query(ctx, "findByTotalRange", catalog.Params{"min": min, "max": max})
}

func (r *InvoiceRepository) UpdatePaymentStatus(ctx context.Context, id int64, status model.PaymentStatus) error {
	if !status.IsValid() {
		return r.invalid("updatePaymentStatus", "unknown payment status %q", status)
	}
	return r.execOne(ctx, "updatePaymentStatus", catalog.Params{"id": id, "payment_status": status})
}

// MarkPaid settles the invoice in full.
func (r *InvoiceRepository) MarkPaid(ctx context.Context, id int64) error {
	return r.execOne(ctx, "markPaid", catalog.Params{"id": id})
}

// AddPayment records amount against an UNPAID or PARTIAL invoice, moving it to
// PAID once the total is covered. Settled, refunded or voided invoices are
// left alone and reported as database.ErrNoRowsAffected.
func (r *InvoiceRepository) AddPayment(ctx context.Context, id int64, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return r.invalid("addPayment", "payment %s must be positive", amount)
	}
	return r.execOne(ctx, "addPayment", catalog.Params{"id": id, "amount": amount})
}

// Void cancels the invoice and records why in its notes.
func (r *InvoiceRepository) Void(ctx context.Context, id int64, notes string) error {
	return r.execOne(ctx, "void", catalog.Params{"id": id, "notes": notes})
}

func (r *InvoiceRepository) UpdateDueDate(ctx context.Context, id int64, due time.Time) error {
	return r.execOne(ctx, "updateDueDate", catalog.Params{"id": id, "due_date": due.UTC()})
}

func (r *InvoiceRepository) CountByStatusGroup(ctx context.Context) ([]types.Grouped[model.PaymentStatus, int64], error) {
	return grouped[model.PaymentStatus, int64](ctx, r.baseRepositoryImpl, "countByStatusGroup", nil)
}

// SumOutstanding is the unpaid balance of every UNPAID or PARTIAL invoice.
func (r *InvoiceRepository) SumOutstanding(ctx context.Context) (decimal.Decimal, error) {
	return r.sum(ctx, "sumOutstanding", nil)
}

func (r *InvoiceRepository) SumByCustomer(ctx context.Context, customerID int64) (decimal.Decimal, error) {
	return r.sum(ctx, "sumByCustomer", catalog.Params{"customer_id": customerID})
}

func (r *InvoiceRepository) OutstandingByCustomer(ctx context.Context) ([]types.Grouped[int64, decimal.Decimal], error) {
	return grouped[int64, decimal.Decimal](ctx, r.baseRepositoryImpl, "outstandingByCustomer", nil)
}

// CustomersHighOutstanding returns customers owing more than threshold.
func (r *InvoiceRepository) CustomersHighOutstanding(ctx context.Context, threshold decimal.Decimal) ([]types.Grouped[int64, decimal.Decimal], error) {
	return grouped[int64, decimal.Decimal](ctx, r.baseRepositoryImpl, "customersHighOutstanding", catalog.Params{"threshold": threshold})
}

// AgingReport buckets the balances of invoices overdue at asOf.
func (r *InvoiceRepository) AgingReport(ctx context.Context, asOf time.Time) (*model.AgingReport, error) {
	overdue, err := r.FindOverdue(ctx, asOf)
	if err != nil {
		return nil, err
	}
	return model.NewAgingReport(asOf, overdue), nil
}
