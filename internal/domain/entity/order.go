package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the fulfilment state of an order.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderShipped   OrderStatus = "shipped"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"
)

var orderTransitions = transitionTable[OrderStatus]{
	OrderPending: {OrderShipped, OrderCancelled},
	OrderShipped: {OrderDelivered, OrderCancelled},
}

// String returns the string representation of the OrderStatus.
func (s OrderStatus) String() string {
	return string(s)
}

// IsValid checks if the OrderStatus is a known value.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderPending, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	default:
		return false
	}
}

// CanTransitionTo reports whether an order in s may move to next.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	return orderTransitions.allows(s, next)
}

// IsTerminal reports whether no further transition is possible.
func (s OrderStatus) IsTerminal() bool {
	return orderTransitions.terminal(s)
}

// Order is a customer purchase made of batch line items.
type Order struct {
	ID             int64           `json:"id"`
	CustomerID     int64           `json:"customer_id"`
	MemberID       *int64          `json:"member_id,omitempty"`
	PrescriptionID *int64          `json:"prescription_id,omitempty"`
	Status         OrderStatus     `json:"status"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	Items          []OrderItem     `json:"items"`
	Payments       []Payment       `json:"payments"`
	InvoiceID      *int64          `json:"invoice_id,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      *time.Time      `json:"updated_at,omitempty"`
}

// RecalculateTotal sets the total to the sum of the item line totals.
func (o *Order) RecalculateTotal() {
	o.TotalAmount = SumLineTotals(o.Items)
}

// SumLineTotals adds up quantity times price over items.
func SumLineTotals(items []OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.LineTotal())
	}

	return total
}

// OrderItem is one batch line of an order. Price is the unit price at the time of sale.
type OrderItem struct {
	ID       int64           `json:"id"`
	OrderID  int64           `json:"order_id"`
	BatchID  int64           `json:"batch_id"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// LineTotal is quantity times unit price.
func (i OrderItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// NewOrder is the input of order creation.
type NewOrder struct {
	CustomerID     int64
	MemberID       *int64
	PrescriptionID *int64
	Items          []NewOrderItem
}

// NewOrderItem is one requested line. A nil price defaults to the batch selling price.
type NewOrderItem struct {
	BatchID  int64
	Quantity int
	Price    *decimal.Decimal
}

// OrderItemPatch carries the optional changes to an order item.
type OrderItemPatch struct {
	Quantity *int
	Price    *decimal.Decimal
}
