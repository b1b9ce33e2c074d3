package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Status enumerates order progression.
type Status string

const (
	StatusPending    Status = "Pending"
	StatusPreparing  Status = "Preparing"
	StatusProcessing Status = "Processing"
	StatusShipped    Status = "Shipped"
	StatusDelivered  Status = "Delivered"
	StatusCancelled  Status = "Cancelled"
)

// ItemType names the source entity a line refers to.
type ItemType string

const (
	ItemProduct ItemType = "product"
	ItemPet     ItemType = "pet"
	ItemService ItemType = "service"
)

var (
	ErrNoLines           = errors.New("order needs at least one line")
	ErrMissingItemID     = errors.New("line item id is required")
	ErrInvalidQuantity   = errors.New("quantity must be at least 1")
	ErrInvalidItemType   = errors.New("invalid item type")
	ErrInvalidStatus     = errors.New("order status is invalid")
	ErrMissingCustomer   = errors.New("order needs a customer email")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrPetUnavailable    = errors.New("pet is already adopted")
)

// Line is an immutable snapshot of one ordered item, priced at order time.
type Line struct {
	Type      ItemType        `json:"type"`
	ItemID    string          `json:"itemId"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Image     string          `json:"image,omitempty"`
}

// Subtotal is price times quantity.
func (l Line) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Contact is the optional delivery contact captured at checkout.
type Contact struct {
	Name    string
	Address string
	Phone   string
}

// Order is the checkout aggregate.
type Order struct {
	ID            string
	CustomerEmail string
	Lines         []Line
	Total         decimal.Decimal
	Status        Status
	Shipping      Contact
	PaymentID     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewOrder builds a Pending order whose total is derived from the line snapshots.
func NewOrder(id, customerEmail string, lines []Line, shipping Contact, now time.Time) (*Order, error) {
	customerEmail = strings.TrimSpace(customerEmail)
	if customerEmail == "" {
		return nil, ErrMissingCustomer
	}
	if len(lines) == 0 {
		return nil, ErrNoLines
	}
	order := &Order{
		ID:            id,
		CustomerEmail: customerEmail,
		Lines:         append([]Line(nil), lines...),
		Total:         Total(lines),
		Status:        StatusPending,
		Shipping:      shipping,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	return order, nil
}

// Total sums the line subtotals.
func Total(lines []Line) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// ParseItemType accepts exactly one of the three lowercase item types.
func ParseItemType(raw string) (ItemType, error) {
	switch t := ItemType(raw); t {
	case ItemProduct, ItemPet, ItemService:
		return t, nil
	default:
		return "", ErrInvalidItemType
	}
}

// ParseStatus accepts a known lifecycle status.
func ParseStatus(raw string) (Status, error) {
	switch s := Status(strings.TrimSpace(raw)); s {
	case StatusPending, StatusPreparing, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return s, nil
	default:
		return "", ErrInvalidStatus
	}
}

// UpdateStatus moves the order to status.
func (o *Order) UpdateStatus(status Status, now time.Time) error {
	if _, err := ParseStatus(string(status)); err != nil {
		return err
	}
	o.Status = status
	o.UpdatedAt = now
	return nil
}

// AttachPayment records the payment reference and starts processing the order.
func (o *Order) AttachPayment(paymentID string, now time.Time) {
	o.PaymentID = paymentID
	o.Status = StatusProcessing
	o.UpdatedAt = now
}

// Clone returns a deep copy.
func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	clone := *o
	clone.Lines = append([]Line(nil), o.Lines...)
	return &clone
}
