package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type BaseEvent struct {
	Timestamp time.Time `json:"-"`
}

func (e BaseEvent) OccurredAt() time.Time {
	return e.Timestamp
}

// PaymentRecorded is raised for every completed or pending payment.
type PaymentRecorded struct {
	BaseEvent
	PaymentID     string          `json:"paymentId"`
	OrderID       string          `json:"orderId"`
	Method        Method          `json:"method"`
	Status        Status          `json:"status"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	TransactionID string          `json:"transactionId,omitempty"`
}

func (e PaymentRecorded) EventName() string   { return "payments.payment.recorded" }
func (e PaymentRecorded) AggregateID() string { return e.OrderID }
