package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Method is how the customer settles an order.
type Method string

const (
	MethodCOD          Method = "COD"
	MethodBankTransfer Method = "bank_transfer"
	MethodPayHere      Method = "payhere_direct"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusCancelled Status = "cancelled"
)

const (
	Currency          = "LKR"
	BankAccountNumber = "9535942775533"
	BankName          = "ABC Bank"
)

var (
	ErrInvalidMethod = errors.New("invalid payment method")
	ErrCardDeclined  = errors.New("card declined")
	ErrMissingCard   = errors.New("card details are required")
	ErrMissingOrder  = errors.New("order id is required")
)

// DefaultDeclineReason is reported for cards the simulator does not know.
const DefaultDeclineReason = "Card declined"

// DeclineError carries the issuer message for a refused card.
type DeclineError struct {
	Reason string
}

func (e *DeclineError) Error() string { return e.Reason }

func (e *DeclineError) Unwrap() error { return ErrCardDeclined }

// CustomerInfo is the billing contact captured with the payment.
type CustomerInfo struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Province   string `json:"province"`
}

// Item is a line of the paid order.
type Item struct {
	ItemType string          `json:"itemType"`
	ItemID   string          `json:"itemId"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
	Image    string          `json:"image,omitempty"`
}

// Details records how the payment was taken.
type Details struct {
	CardLast4      string `json:"cardLast4,omitempty"`
	CardholderName string `json:"cardholderName,omitempty"`
	PaymentMethod  string `json:"paymentMethod"`
	StatusMessage  string `json:"statusMessage"`
}

type Payment struct {
	ID            string
	OrderID       string
	Email         string
	Amount        decimal.Decimal
	Currency      string
	Method        Method
	Status        Status
	TransactionID string
	PaymentDate   *time.Time
	Customer      CustomerInfo
	Items         []Item
	Details       Details
	CreatedAt     time.Time
}

// CardDetails is what the checkout form submits for a card payment.
type CardDetails struct {
	Number         string
	CardholderName string
	Expiry         string
	CVV            string
}

// Normalized strips whitespace from the card number.
func (c CardDetails) Normalized() string {
	return strings.Join(strings.Fields(c.Number), "")
}

// Last4 returns the trailing four digits of the normalized number.
func (c CardDetails) Last4() string {
	n := c.Normalized()
	if len(n) <= 4 {
		return n
	}
	return n[len(n)-4:]
}

// Clone returns a deep copy.
func (p *Payment) Clone() *Payment {
	if p == nil {
		return nil
	}
	clone := *p
	clone.Items = append([]Item(nil), p.Items...)
	if p.PaymentDate != nil {
		d := *p.PaymentDate
		clone.PaymentDate = &d
	}
	return &clone
}

// Settles reports whether the payment counts against its order.
func (p *Payment) Settles() bool {
	return p.Status == StatusPending || p.Status == StatusCompleted
}
