package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/Apurer/petcare-api/internal/domains/payments/domain"
	"github.com/Apurer/petcare-api/internal/shared/auth"
)

// Checkout is the order view the payment page renders.
type Checkout struct {
	OrderID  string
	Email    string
	Total    decimal.Decimal
	Status   string
	Items    []domain.Item
	Customer domain.CustomerInfo
}

type ProcessInput struct {
	OrderID string
	// Method is the checkout choice: cod, bank_transfer or payhere.
	Method string
	Card   *domain.CardDetails
}

// BankDetails tells the customer where to transfer.
type BankDetails struct {
	AccountNumber string
	BankName      string
}

type ProcessResult struct {
	Payment *domain.Payment
	Message string
	Bank    *BankDetails
}

// Service exposes payment use cases to adapters.
type Service interface {
	TestCards() []domain.TestCard
	Checkout(ctx context.Context, caller auth.Principal, orderID string) (Checkout, error)
	Process(ctx context.Context, caller auth.Principal, input ProcessInput) (ProcessResult, error)
	List(ctx context.Context, caller auth.Principal) ([]*domain.Payment, error)
	ListMine(ctx context.Context, caller auth.Principal) ([]*domain.Payment, error)
}
