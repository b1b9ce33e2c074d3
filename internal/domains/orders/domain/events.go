package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BaseEvent provides common event metadata.
type BaseEvent struct {
	Timestamp time.Time `json:"-"`
}

func (e BaseEvent) OccurredAt() time.Time {
	return e.Timestamp
}

// OrderPlaced is raised once the placement transaction commits.
type OrderPlaced struct {
	BaseEvent
	OrderID       string          `json:"orderId"`
	CustomerEmail string          `json:"customerEmail"`
	Total         decimal.Decimal `json:"total"`
	Lines         []Line          `json:"lines"`
}

func (e OrderPlaced) EventName() string   { return "orders.order.placed" }
func (e OrderPlaced) AggregateID() string { return e.OrderID }

// OrderStatusChanged is raised when an administrator or a payment moves the order.
type OrderStatusChanged struct {
	BaseEvent
	OrderID string `json:"orderId"`
	From    Status `json:"from"`
	To      Status `json:"to"`
}

func (e OrderStatusChanged) EventName() string   { return "orders.order.status_changed" }
func (e OrderStatusChanged) AggregateID() string { return e.OrderID }
