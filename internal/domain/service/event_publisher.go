package service

import (
	"context"
	"time"
)

// Event types published by the order workflow.
const (
	EventOrderStatusChanged = "order.status_changed"
	EventOrderCreated       = "order.created"
)

// OrderEvent describes a change to an order after it has been committed.
type OrderEvent struct {
	Type       string    `json:"type"`
	RequestID  string    `json:"request_id,omitempty"`
	OrderID    int64     `json:"order_id"`
	CustomerID int64     `json:"customer_id"`
	FromStatus string    `json:"from_status,omitempty"`
	ToStatus   string    `json:"to_status"`
	ChangedBy  int64     `json:"changed_by,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishOrderEvent publishes an order event. Delivery is best-effort.
	PublishOrderEvent(ctx context.Context, event *OrderEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
