package mapper

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Apurer/petcare-api/internal/domains/payments/application"
	"github.com/Apurer/petcare-api/internal/domains/payments/domain"
	"github.com/Apurer/petcare-api/internal/domains/payments/ports"
	sharederrors "github.com/Apurer/petcare-api/internal/shared/errors"
)

type Payment struct {
	ID             string              `json:"id"`
	OrderID        string              `json:"orderId"`
	Email          string              `json:"email"`
	Amount         decimal.Decimal     `json:"amount"`
	Currency       string              `json:"currency"`
	Method         string              `json:"method"`
	Status         string              `json:"status"`
	TransactionID  string              `json:"transactionId,omitempty"`
	PaymentDate    *time.Time          `json:"paymentDate,omitempty"`
	CustomerInfo   domain.CustomerInfo `json:"customerInfo"`
	Items          []domain.Item       `json:"items"`
	PaymentDetails domain.Details      `json:"paymentDetails"`
	CreatedAt      time.Time           `json:"createdAt"`
}

type TestCardsResponse struct {
	Success   bool              `json:"success"`
	TestCards []domain.TestCard `json:"testCards"`
}

type CheckoutOrder struct {
	OrderID      string              `json:"orderId"`
	Email        string              `json:"email"`
	TotalAmount  decimal.Decimal     `json:"totalAmount"`
	Status       string              `json:"status"`
	OrderedItems []domain.Item       `json:"orderedItems"`
	CustomerInfo domain.CustomerInfo `json:"customerInfo"`
}

type CheckoutResponse struct {
	Success bool          `json:"success"`
	Order   CheckoutOrder `json:"order"`
}

type CardDetails struct {
	CardNumber     string `json:"cardNumber"`
	CardholderName string `json:"cardholderName"`
	ExpiryDate     string `json:"expiryDate"`
	CVV            string `json:"cvv"`
}

type ProcessRequest struct {
	OrderID       string       `json:"orderId"`
	PaymentMethod string       `json:"paymentMethod"`
	CardDetails   *CardDetails `json:"cardDetails"`
}

type BankDetails struct {
	AccountNumber string `json:"accountNumber"`
	BankName      string `json:"bankName"`
}

type ProcessResponse struct {
	Success       bool         `json:"success"`
	Message       string       `json:"message"`
	PaymentMethod string       `json:"paymentMethod"`
	Status        string       `json:"status"`
	PaymentID     string       `json:"paymentId"`
	TransactionID string       `json:"transactionId,omitempty"`
	CardLast4     string       `json:"cardLast4,omitempty"`
	Amount        string       `json:"amount"`
	BankDetails   *BankDetails `json:"bankDetails,omitempty"`
}

func (r ProcessRequest) ToInput() ports.ProcessInput {
	input := ports.ProcessInput{OrderID: r.OrderID, Method: r.PaymentMethod}
	if r.CardDetails != nil {
		input.Card = &domain.CardDetails{
			Number:         r.CardDetails.CardNumber,
			CardholderName: r.CardDetails.CardholderName,
			Expiry:         r.CardDetails.ExpiryDate,
			CVV:            r.CardDetails.CVV,
		}
	}
	return input
}

func FromTestCards(cards []domain.TestCard) TestCardsResponse {
	return TestCardsResponse{Success: true, TestCards: cards}
}

func FromCheckout(c ports.Checkout) CheckoutResponse {
	items := c.Items
	if items == nil {
		items = []domain.Item{}
	}
	return CheckoutResponse{
		Success: true,
		Order: CheckoutOrder{
			OrderID:      c.OrderID,
			Email:        c.Email,
			TotalAmount:  c.Total,
			Status:       c.Status,
			OrderedItems: items,
			CustomerInfo: c.Customer,
		},
	}
}

// FromProcess echoes the checkout choice the client sent alongside the recorded payment.
func FromProcess(method string, result ports.ProcessResult) ProcessResponse {
	p := result.Payment
	resp := ProcessResponse{
		Success:       true,
		Message:       result.Message,
		PaymentMethod: method,
		Status:        string(p.Status),
		PaymentID:     p.ID,
		TransactionID: p.TransactionID,
		CardLast4:     p.Details.CardLast4,
		Amount:        p.Amount.StringFixed(2),
	}
	if p.Status == domain.StatusPending && p.Method == domain.MethodCOD {
		resp.Status = "confirmed"
	}
	if result.Bank != nil {
		resp.BankDetails = &BankDetails{AccountNumber: result.Bank.AccountNumber, BankName: result.Bank.BankName}
	}
	return resp
}

func FromDomain(p *domain.Payment) Payment {
	if p == nil {
		return Payment{}
	}
	return Payment{
		ID:             p.ID,
		OrderID:        p.OrderID,
		Email:          p.Email,
		Amount:         p.Amount,
		Currency:       p.Currency,
		Method:         string(p.Method),
		Status:         string(p.Status),
		TransactionID:  p.TransactionID,
		PaymentDate:    p.PaymentDate,
		CustomerInfo:   p.Customer,
		Items:          p.Items,
		PaymentDetails: p.Details,
		CreatedAt:      p.CreatedAt,
	}
}

func FromDomainList(list []*domain.Payment) []Payment {
	out := make([]Payment, 0, len(list))
	for _, p := range list {
		out = append(out, FromDomain(p))
	}
	return out
}

// ErrorMapper translates payment errors to problem details.
func ErrorMapper(err error) (sharederrors.ProblemDetail, bool) {
	var decline *domain.DeclineError
	switch {
	case errors.As(err, &decline):
		return sharederrors.FromError(sharederrors.ErrValidation, decline), true
	case errors.Is(err, ports.ErrNotFound), errors.Is(err, ports.ErrOrderNotFound):
		return sharederrors.FromError(sharederrors.ErrNotFound, err), true
	case errors.Is(err, application.ErrInvalidInput):
		return sharederrors.FromError(sharederrors.ErrValidation, err), true
	case errors.Is(err, application.ErrConflict):
		return sharederrors.FromError(sharederrors.ErrConflict, err), true
	default:
		return sharederrors.ProblemDetail{}, false
	}
}
