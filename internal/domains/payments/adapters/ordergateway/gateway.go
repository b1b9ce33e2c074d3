// Package ordergateway adapts the orders context to the payments OrderGateway port.
package ordergateway

import (
	"context"
	"errors"
	"fmt"

	ordersdomain "github.com/Apurer/petcare-api/internal/domains/orders/domain"
	ordersports "github.com/Apurer/petcare-api/internal/domains/orders/ports"
	"github.com/Apurer/petcare-api/internal/domains/payments/domain"
	"github.com/Apurer/petcare-api/internal/domains/payments/ports"
)

var _ ports.OrderGateway = (*Gateway)(nil)

// PaymentAttacher is the slice of the orders service that records a payment.
type PaymentAttacher interface {
	AttachPayment(ctx context.Context, orderID, paymentID string) (*ordersdomain.Order, error)
}

type Gateway struct {
	orders   ordersports.Repository
	attacher PaymentAttacher
}

func New(orders ordersports.Repository, attacher PaymentAttacher) *Gateway {
	return &Gateway{orders: orders, attacher: attacher}
}

func (g *Gateway) Get(ctx context.Context, orderID string) (ports.OrderSummary, error) {
	order, err := g.orders.GetByID(ctx, orderID)
	if err != nil {
		return ports.OrderSummary{}, translate(err, orderID)
	}
	items := make([]domain.Item, 0, len(order.Lines))
	for _, line := range order.Lines {
		items = append(items, domain.Item{
			ItemType: string(line.Type),
			ItemID:   line.ItemID,
			Name:     line.Name,
			Price:    line.UnitPrice,
			Quantity: line.Quantity,
			Image:    line.Image,
		})
	}
	return ports.OrderSummary{
		ID:     order.ID,
		Email:  order.CustomerEmail,
		Total:  order.Total,
		Status: string(order.Status),
		Items:  items,
		Shipping: ports.Contact{
			Name:    order.Shipping.Name,
			Address: order.Shipping.Address,
			Phone:   order.Shipping.Phone,
		},
	}, nil
}

func (g *Gateway) AttachPayment(ctx context.Context, orderID, paymentID string) error {
	_, err := g.attacher.AttachPayment(ctx, orderID, paymentID)
	return translate(err, orderID)
}

func translate(err error, orderID string) error {
	if errors.Is(err, ordersports.ErrNotFound) {
		return fmt.Errorf("%w: %s", ports.ErrOrderNotFound, orderID)
	}
	return err
}
