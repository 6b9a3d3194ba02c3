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

import "github.com/tomoncle/retaildao/types"

// CustomerStatus is stored in customer.status.
type CustomerStatus string

const (
	CustomerActive    CustomerStatus = "ACTIVE"
	CustomerInactive  CustomerStatus = "INACTIVE"
	CustomerSuspended CustomerStatus = "SUSPENDED"
	CustomerPending   CustomerStatus = "PENDING"
)

var _ types.BaseEnum = CustomerStatus("")

// CustomerStatuses lists the customer status vocabulary.
func CustomerStatuses() []CustomerStatus {
	return []CustomerStatus{CustomerActive, CustomerInactive, CustomerSuspended, CustomerPending}
}

func (s CustomerStatus) IsValid() bool {
	v, ok := types.ParseEnum(string(s), CustomerStatuses())
	return ok && v == s
}

func (s CustomerStatus) String() string { return string(s) }

func (s CustomerStatus) Desc() string {
	switch s {
	case CustomerActive:
		return "customer may place orders"
	case CustomerInactive:
		return "customer closed or dormant"
	case CustomerSuspended:
		return "ordering blocked"
	case CustomerPending:
		return "awaiting verification"
	}
	return types.IllegalName
}

// CustomerType is stored in customer.customer_type.
type CustomerType string

const (
	CustomerStandard CustomerType = "STANDARD"
	CustomerPremium  CustomerType = "PREMIUM"
	CustomerVIP      CustomerType = "VIP"
)

// CustomerTypes lists the customer type vocabulary.
func CustomerTypes() []CustomerType {
	return []CustomerType{CustomerStandard, CustomerPremium, CustomerVIP}
}

func (t CustomerType) IsValid() bool {
	v, ok := types.ParseEnum(string(t), CustomerTypes())
	return ok && v == t
}

func (t CustomerType) String() string { return string(t) }

func (t CustomerType) Desc() string {
	if t.IsValid() {
		return string(t) + " customer"
	}
	return types.IllegalName
}

// ProductStatus is stored in product.status.
type ProductStatus string

const (
	ProductActive       ProductStatus = "ACTIVE"
	ProductDiscontinued ProductStatus = "DISCONTINUED"
)

// ProductStatuses lists the product status vocabulary.
func ProductStatuses() []ProductStatus {
	return []ProductStatus{ProductActive, ProductDiscontinued}
}

func (s ProductStatus) IsValid() bool {
	v, ok := types.ParseEnum(string(s), ProductStatuses())
	return ok && v == s
}

func (s ProductStatus) String() string { return string(s) }

func (s ProductStatus) Desc() string {
	switch s {
	case ProductActive:
		return "available for sale"
	case ProductDiscontinued:
		return "no longer sold"
	}
	return types.IllegalName
}

// OrderStatus is stored in orders.order_status.
type OrderStatus string

const (
	OrderPending    OrderStatus = "PENDING"
	OrderProcessing OrderStatus = "PROCESSING"
	OrderShipped    OrderStatus = "SHIPPED"
	OrderDelivered  OrderStatus = "DELIVERED"
	OrderCancelled  OrderStatus = "CANCELLED"
)

// OrderStatuses lists the order status vocabulary.
func OrderStatuses() []OrderStatus {
	return []OrderStatus{OrderPending, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled}
}

func (s OrderStatus) IsValid() bool {
	v, ok := types.ParseEnum(string(s), OrderStatuses())
	return ok && v == s
}

func (s OrderStatus) String() string { return string(s) }

func (s OrderStatus) Desc() string {
	switch s {
	case OrderPending:
		return "placed, not yet processed"
	case OrderProcessing:
		return "being picked and packed"
	case OrderShipped:
		return "handed to the carrier"
	case OrderDelivered:
		return "received by the customer"
	case OrderCancelled:
		return "cancelled before delivery"
	}
	return types.IllegalName
}

// PaymentStatus is stored in orders.payment_status and invoice.payment_status.
type PaymentStatus string

const (
	PaymentPaid     PaymentStatus = "PAID"
	PaymentUnpaid   PaymentStatus = "UNPAID"
	PaymentPartial  PaymentStatus = "PARTIAL"
	PaymentRefunded PaymentStatus = "REFUNDED"
	PaymentVoid     PaymentStatus = "VOID"
)

// PaymentStatuses lists the payment status vocabulary.
func PaymentStatuses() []PaymentStatus {
	return []PaymentStatus{PaymentPaid, PaymentUnpaid, PaymentPartial, PaymentRefunded, PaymentVoid}
}

func (s PaymentStatus) IsValid() bool {
	v, ok := types.ParseEnum(string(s), PaymentStatuses())
	return ok && v == s
}

func (s PaymentStatus) String() string { return string(s) }

func (s PaymentStatus) Desc() string {
	switch s {
	case PaymentPaid:
		return "settled in full"
	case PaymentUnpaid:
		return "nothing received"
	case PaymentPartial:
		return "partly settled"
	case PaymentRefunded:
		return "returned to the payer"
	case PaymentVoid:
		return "cancelled"
	}
	return types.IllegalName
}

// Outstanding reports whether money is still owed.
func (s PaymentStatus) Outstanding() bool {
	return s == PaymentUnpaid || s == PaymentPartial
}

// RecordStatus is the ACTIVE/INACTIVE vocabulary of suppliers, employees and categories.
type RecordStatus string

const (
	StatusActive   RecordStatus = "ACTIVE"
	StatusInactive RecordStatus = "INACTIVE"
)

// RecordStatuses lists the ACTIVE/INACTIVE vocabulary.
func RecordStatuses() []RecordStatus {
	return []RecordStatus{StatusActive, StatusInactive}
}

func (s RecordStatus) IsValid() bool {
	v, ok := types.ParseEnum(string(s), RecordStatuses())
	return ok && v == s
}

func (s RecordStatus) String() string { return string(s) }

func (s RecordStatus) Desc() string {
	switch s {
	case StatusActive:
		return "in use"
	case StatusInactive:
		return "retired"
	}
	return types.IllegalName
}
