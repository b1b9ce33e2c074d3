package mapper

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Apurer/petcare-api/internal/domains/bookings/application"
	"github.com/Apurer/petcare-api/internal/domains/bookings/domain"
	"github.com/Apurer/petcare-api/internal/domains/bookings/ports"
	sharederrors "github.com/Apurer/petcare-api/internal/shared/errors"
)

type Booking struct {
	BookingID string    `json:"bookingId"`
	ServiceID string    `json:"serviceId"`
	UserEmail string    `json:"userEmail"`
	Date      time.Time `json:"date"`
	Notes     string    `json:"notes,omitempty"`
	Status    string    `json:"status"`
	PaymentID string    `json:"paymentId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateRequest accepts an RFC 3339 timestamp or a plain YYYY-MM-DD date.
type CreateRequest struct {
	ServiceID string `json:"serviceId"`
	Date      string `json:"date"`
	Notes     string `json:"notes"`
}

type CreateResponse struct {
	Message string          `json:"message"`
	Booking Booking         `json:"booking"`
	Amount  decimal.Decimal `json:"amount"`
}

type LinkPaymentRequest struct {
	BookingID string `json:"bookingId"`
	PaymentID string `json:"paymentId"`
}

type StatusRequest struct {
	Status string `json:"status"`
}

// ErrInvalidDate is returned by ToInput for unparseable dates.
var ErrInvalidDate = errors.New("date must be RFC 3339 or YYYY-MM-DD")

func (r CreateRequest) ToInput() (ports.CreateInput, error) {
	input := ports.CreateInput{ServiceID: r.ServiceID, Notes: r.Notes}
	raw := strings.TrimSpace(r.Date)
	if raw == "" {
		return input, nil
	}
	for _, layout := range []string{time.RFC3339, time.DateOnly} {
		if t, err := time.Parse(layout, raw); err == nil {
			input.Date = t
			return input, nil
		}
	}
	return input, fmt.Errorf("%w: %w", application.ErrInvalidInput, ErrInvalidDate)
}

func FromDomain(b *domain.Booking) Booking {
	if b == nil {
		return Booking{}
	}
	return Booking{
		BookingID: b.ID,
		ServiceID: b.ServiceID,
		UserEmail: b.UserEmail,
		Date:      b.Date,
		Notes:     b.Notes,
		Status:    string(b.Status),
		PaymentID: b.PaymentID,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

func FromDomainList(list []*domain.Booking) []Booking {
	out := make([]Booking, 0, len(list))
	for _, b := range list {
		out = append(out, FromDomain(b))
	}
	return out
}

func FromCreateResult(result ports.CreateResult) CreateResponse {
	return CreateResponse{
		Message: "Booking created successfully. Please complete payment.",
		Booking: FromDomain(result.Booking),
		Amount:  result.AmountDue,
	}
}

// ErrorMapper translates booking errors to problem details.
func ErrorMapper(err error) (sharederrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, ports.ErrNotFound), errors.Is(err, ports.ErrServiceNotFound):
		return sharederrors.FromError(sharederrors.ErrNotFound, err), true
	case errors.Is(err, application.ErrInvalidInput):
		return sharederrors.FromError(sharederrors.ErrValidation, err), true
	default:
		return sharederrors.ProblemDetail{}, false
	}
}
