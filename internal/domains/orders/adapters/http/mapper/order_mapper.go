package mapper

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Apurer/petcare-api/internal/domains/orders/application"
	"github.com/Apurer/petcare-api/internal/domains/orders/domain"
	"github.com/Apurer/petcare-api/internal/domains/orders/ports"
	sharederrors "github.com/Apurer/petcare-api/internal/shared/errors"
)

// OrderedItem is a line as submitted by the storefront. Client prices are ignored.
type OrderedItem struct {
	ItemType string `json:"itemType"`
	ItemID   string `json:"itemId"`
	Quantity int    `json:"quantity"`
}

// PlaceOrderRequest is the checkout payload.
type PlaceOrderRequest struct {
	OrderedItems []OrderedItem `json:"orderedItems"`
	Name         string        `json:"name"`
	Address      string        `json:"address"`
	Phone        string        `json:"phone"`
}

// PlaceOrderResponse echoes the allocated id and computed total.
type PlaceOrderResponse struct {
	Message     string          `json:"message"`
	OrderID     string          `json:"orderId"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
}

// StatusRequest updates an order's lifecycle status.
type StatusRequest struct {
	Status string `json:"status"`
}

type Line struct {
	ItemType string          `json:"itemType"`
	ItemID   string          `json:"itemId"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
	Image    string          `json:"image,omitempty"`
}

type Order struct {
	OrderID      string          `json:"orderId"`
	Email        string          `json:"email"`
	OrderedItems []Line          `json:"orderedItems"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`
	Status       string          `json:"status"`
	Name         string          `json:"name,omitempty"`
	Address      string          `json:"address,omitempty"`
	Phone        string          `json:"phone,omitempty"`
	PaymentID    string          `json:"paymentId,omitempty"`
	Date         time.Time       `json:"date"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// OrderList is the list envelope.
type OrderList struct {
	Count  int     `json:"count"`
	Orders []Order `json:"orders"`
}

func (r PlaceOrderRequest) ToCommand(idempotencyKey string) ports.PlaceOrderCommand {
	cmd := ports.PlaceOrderCommand{
		Lines:          make([]ports.LineRequest, 0, len(r.OrderedItems)),
		Shipping:       domain.Contact{Name: r.Name, Address: r.Address, Phone: r.Phone},
		IdempotencyKey: idempotencyKey,
	}
	for _, item := range r.OrderedItems {
		cmd.Lines = append(cmd.Lines, ports.LineRequest{ItemType: item.ItemType, ItemID: item.ItemID, Quantity: item.Quantity})
	}
	return cmd
}

func FromDomain(o *domain.Order) Order {
	if o == nil {
		return Order{}
	}
	out := Order{
		OrderID:      o.ID,
		Email:        o.CustomerEmail,
		OrderedItems: make([]Line, 0, len(o.Lines)),
		TotalAmount:  o.Total,
		Status:       string(o.Status),
		Name:         o.Shipping.Name,
		Address:      o.Shipping.Address,
		Phone:        o.Shipping.Phone,
		PaymentID:    o.PaymentID,
		Date:         o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
	}
	for _, l := range o.Lines {
		out.OrderedItems = append(out.OrderedItems, Line{
			ItemType: string(l.Type),
			ItemID:   l.ItemID,
			Name:     l.Name,
			Price:    l.UnitPrice,
			Quantity: l.Quantity,
			Image:    l.Image,
		})
	}
	return out
}

func FromDomainList(list []*domain.Order) OrderList {
	out := OrderList{Count: len(list), Orders: make([]Order, 0, len(list))}
	for _, o := range list {
		out.Orders = append(out.Orders, FromDomain(o))
	}
	return out
}

// ErrorMapper translates order errors to problem details.
func ErrorMapper(err error) (sharederrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, ports.ErrNotFound), errors.Is(err, ports.ErrItemNotFound):
		return sharederrors.FromError(sharederrors.ErrNotFound, err), true
	case errors.Is(err, application.ErrInvalidInput):
		return sharederrors.FromError(sharederrors.ErrValidation, err), true
	case errors.Is(err, application.ErrConflict):
		return sharederrors.FromError(sharederrors.ErrConflict, err), true
	default:
		return sharederrors.ProblemDetail{}, false
	}
}
