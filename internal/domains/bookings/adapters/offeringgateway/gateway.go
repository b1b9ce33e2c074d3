// Package offeringgateway adapts the offerings repository to the bookings ServiceCatalog port.
package offeringgateway

import (
	"context"
	"errors"
	"fmt"

	"github.com/Apurer/petcare-api/internal/domains/bookings/ports"
	offeringsports "github.com/Apurer/petcare-api/internal/domains/offerings/ports"
)

var _ ports.ServiceCatalog = (*Gateway)(nil)

type Gateway struct {
	offerings offeringsports.Repository
}

func New(offerings offeringsports.Repository) *Gateway {
	return &Gateway{offerings: offerings}
}

func (g *Gateway) Lookup(ctx context.Context, serviceID string) (ports.ServiceSummary, error) {
	offering, err := g.offerings.GetByID(ctx, serviceID)
	if err != nil {
		if errors.Is(err, offeringsports.ErrNotFound) {
			return ports.ServiceSummary{}, fmt.Errorf("%w: %s", ports.ErrServiceNotFound, serviceID)
		}
		return ports.ServiceSummary{}, err
	}
	return ports.ServiceSummary{ID: offering.ID, Name: offering.Name, Price: offering.Price}, nil
}
