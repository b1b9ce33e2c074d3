package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"

	"github.com/Apurer/petcare-api/internal/domains/payments/domain"
	"github.com/Apurer/petcare-api/internal/domains/payments/ports"
	"github.com/Apurer/petcare-api/internal/platform/events"
	"github.com/Apurer/petcare-api/internal/shared/auth"
)

// Placeholders fill contact fields the order does not carry.
const (
	PlaceholderName       = "Customer"
	PlaceholderPhone      = "0000000000"
	PlaceholderAddress    = "Address not provided"
	PlaceholderCity       = "City not provided"
	PlaceholderPostalCode = "00000"
	PlaceholderProvince   = "Province not provided"
)

// Service simulates order payment.
type Service struct {
	repo     ports.Repository
	orders   ports.OrderGateway
	events   events.Publisher
	now      func() time.Time
	newID    func() string
	txSuffix func() string
}

func NewService(repo ports.Repository, orders ports.OrderGateway, publisher events.Publisher) *Service {
	if publisher == nil {
		publisher = events.Noop
	}
	return &Service{
		repo:     repo,
		orders:   orders,
		events:   publisher,
		now:      time.Now,
		newID:    func() string { return uuid.NewString() },
		txSuffix: randomSuffix,
	}
}

// WithClock overrides the time source for deterministic testing.
func (s *Service) WithClock(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

func (s *Service) TestCards() []domain.TestCard {
	return domain.TestCards()
}

// Checkout returns the order as the payment page shows it.
func (s *Service) Checkout(ctx context.Context, caller auth.Principal, orderID string) (ports.Checkout, error) {
	order, err := s.loadOrder(ctx, caller, orderID)
	if err != nil {
		return ports.Checkout{}, err
	}
	return ports.Checkout{
		OrderID:  order.ID,
		Email:    order.Email,
		Total:    order.Total,
		Status:   order.Status,
		Items:    append([]domain.Item(nil), order.Items...),
		Customer: customerInfo(order),
	}, nil
}

// Process records a payment for the order using the chosen method.
func (s *Service) Process(ctx context.Context, caller auth.Principal, input ports.ProcessInput) (ports.ProcessResult, error) {
	order, err := s.loadOrder(ctx, caller, input.OrderID)
	if err != nil {
		return ports.ProcessResult{}, err
	}
	existing, err := s.repo.FindByOrder(ctx, order.ID)
	switch {
	case err == nil && existing.Settles():
		return ports.ProcessResult{}, mapError(fmt.Errorf("%w: %s", ports.ErrAlreadyPaid, order.ID))
	case err != nil && !isNotFound(err):
		return ports.ProcessResult{}, err
	}

	now := s.now()
	payment := &domain.Payment{
		ID:        s.newID(),
		OrderID:   order.ID,
		Email:     strings.ToLower(order.Email),
		Amount:    order.Total,
		Currency:  domain.Currency,
		Customer:  customerInfo(order),
		Items:     append([]domain.Item(nil), order.Items...),
		CreatedAt: now,
	}
	result := ports.ProcessResult{}

	switch strings.ToLower(strings.TrimSpace(input.Method)) {
	case "cod":
		payment.Method = domain.MethodCOD
		payment.Status = domain.StatusPending
		payment.Details = domain.Details{
			PaymentMethod: "cash_on_delivery",
			StatusMessage: "Cash on Delivery - Pay when you receive your order",
		}
		result.Message = "Order confirmed - Cash on Delivery"
	case "bank_transfer":
		payment.Method = domain.MethodBankTransfer
		payment.Status = domain.StatusPending
		payment.Details = domain.Details{
			PaymentMethod: "bank_transfer",
			StatusMessage: fmt.Sprintf("Please transfer to Account: %s (%s)", domain.BankAccountNumber, domain.BankName),
		}
		result.Message = "Bank transfer details provided"
		result.Bank = &ports.BankDetails{AccountNumber: domain.BankAccountNumber, BankName: domain.BankName}
	case "payhere":
		if input.Card == nil {
			return ports.ProcessResult{}, mapError(domain.ErrInvalidMethod)
		}
		card, err := domain.Charge(*input.Card)
		if err != nil {
			return ports.ProcessResult{}, mapError(err)
		}
		paidAt := now
		payment.Method = domain.MethodPayHere
		payment.Status = domain.StatusCompleted
		payment.TransactionID = fmt.Sprintf("PH_%d_%s", now.UnixMilli(), s.txSuffix())
		payment.PaymentDate = &paidAt
		payment.Details = domain.Details{
			CardLast4:      input.Card.Last4(),
			CardholderName: strings.TrimSpace(input.Card.CardholderName),
			PaymentMethod:  "payhere_card",
			StatusMessage:  card.Message,
		}
		result.Message = card.Message
	default:
		return ports.ProcessResult{}, mapError(domain.ErrInvalidMethod)
	}

	created, err := s.repo.Create(ctx, payment)
	if err != nil {
		return ports.ProcessResult{}, mapError(err)
	}
	if err := s.orders.AttachPayment(ctx, order.ID, created.ID); err != nil {
		return ports.ProcessResult{}, err
	}
	_ = s.events.Publish(ctx, domain.PaymentRecorded{
		BaseEvent:     domain.BaseEvent{Timestamp: now},
		PaymentID:     created.ID,
		OrderID:       created.OrderID,
		Method:        created.Method,
		Status:        created.Status,
		Amount:        created.Amount,
		Currency:      created.Currency,
		TransactionID: created.TransactionID,
	})
	result.Payment = created
	return result, nil
}

func (s *Service) List(ctx context.Context, caller auth.Principal) ([]*domain.Payment, error) {
	if err := auth.Authorize(caller, auth.CapViewAllPayments); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, "")
}

func (s *Service) ListMine(ctx context.Context, caller auth.Principal) ([]*domain.Payment, error) {
	if err := auth.RequireAuthenticated(caller); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, strings.ToLower(caller.Email))
}

func (s *Service) loadOrder(ctx context.Context, caller auth.Principal, orderID string) (ports.OrderSummary, error) {
	if err := auth.RequireAuthenticated(caller); err != nil {
		return ports.OrderSummary{}, err
	}
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return ports.OrderSummary{}, mapError(domain.ErrMissingOrder)
	}
	order, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return ports.OrderSummary{}, err
	}
	if err := auth.AuthorizeOwner(caller, order.Email, auth.CapManagePayments); err != nil {
		return ports.OrderSummary{}, err
	}
	return order, nil
}

func customerInfo(order ports.OrderSummary) domain.CustomerInfo {
	return domain.CustomerInfo{
		Name:       fallback(order.Shipping.Name, PlaceholderName),
		Email:      order.Email,
		Phone:      fallback(order.Shipping.Phone, PlaceholderPhone),
		Address:    fallback(order.Shipping.Address, PlaceholderAddress),
		City:       PlaceholderCity,
		PostalCode: PlaceholderPostalCode,
		Province:   PlaceholderProvince,
	}
}

func fallback(value, placeholder string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return placeholder
}

func isNotFound(err error) bool {
	return err != nil && errors.Is(err, ports.ErrNotFound)
}

// randomSuffix takes nine characters from the random half of a ULID.
func randomSuffix() string {
	id := strings.ToLower(ulid.Make().String())
	return id[len(id)-9:]
}

var _ ports.Service = (*Service)(nil)
