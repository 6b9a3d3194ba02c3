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
)

// AgingBucket groups overdue invoices by days past due.
type AgingBucket string

const (
	AgingCurrent AgingBucket = "CURRENT"
	Aging1To30   AgingBucket = "1-30"
	Aging31To60  AgingBucket = "31-60"
	Aging61To90  AgingBucket = "61-90"
	AgingOver90  AgingBucket = "90+"
)

// AgingBuckets lists the overdue buckets in ascending order.
func AgingBuckets() []AgingBucket {
	return []AgingBucket{Aging1To30, Aging31To60, Aging61To90, AgingOver90}
}

// DaysOverdue counts whole calendar days from due to asOf, both taken in UTC.
// It is zero or negative when asOf is not after the due date.
func DaysOverdue(due, asOf time.Time) int {
	d := time.Date(due.UTC().Year(), due.UTC().Month(), due.UTC().Day(), 0, 0, 0, 0, time.UTC)
	a := time.Date(asOf.UTC().Year(), asOf.UTC().Month(), asOf.UTC().Day(), 0, 0, 0, 0, time.UTC)
	return int(a.Sub(d).Hours() / 24)
}

// BucketFor places a days-overdue count into its bucket.
func BucketFor(days int) AgingBucket {
	switch {
	case days <= 0:
		return AgingCurrent
	case days <= 30:
		return Aging1To30
	case days <= 60:
		return Aging31To60
	case days <= 90:
		return Aging61To90
	default:
		return AgingOver90
	}
}

// AgingEntry is one overdue invoice in an aging report.
type AgingEntry struct {
	Invoice     *Invoice
	DaysOverdue int
	Bucket      AgingBucket
	Balance     decimal.Decimal
}

// AgingReport is the overdue balance picture at AsOf.
type AgingReport struct {
	AsOf    time.Time
	Entries []AgingEntry
	Totals  map[AgingBucket]decimal.Decimal
	Counts  map[AgingBucket]int
}

// NewAgingReport buckets invoices that are overdue at asOf. Invoices that are
// settled or not yet due are left out.
func NewAgingReport(asOf time.Time, invoices []*Invoice) *AgingReport {
	r := &AgingReport{
		AsOf:   asOf,
		Totals: make(map[AgingBucket]decimal.Decimal, 4),
		Counts: make(map[AgingBucket]int, 4),
	}
	for _, b := range AgingBuckets() {
		r.Totals[b] = decimal.Zero
	}
	for _, inv := range invoices {
		if !inv.PaymentStatus.Outstanding() {
			continue
		}
		days := DaysOverdue(inv.DueDate, asOf)
		if days <= 0 {
			continue
		}
		bucket := BucketFor(days)
		balance := inv.Balance()
		r.Entries = append(r.Entries, AgingEntry{Invoice: inv, DaysOverdue: days, Bucket: bucket, Balance: balance})
		r.Totals[bucket] = r.Totals[bucket].Add(balance)
		r.Counts[bucket]++
	}
	return r
}

// Total is the overdue balance across all buckets.
func (r *AgingReport) Total() decimal.Decimal {
	sum := decimal.Zero
	for _, v := range r.Totals {
		sum = sum.Add(v)
	}
	return sum
}
