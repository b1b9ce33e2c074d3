package ports

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrIdempotencyConflict indicates the same key was reused with a different request body.
	ErrIdempotencyConflict = errors.New("idempotency key reused with a different request")
	// ErrIdempotencyInProgress indicates another request holds the key and has not finished placing its order.
	ErrIdempotencyInProgress = errors.New("idempotency key is already being processed")
)

// IdempotencyRecord ties a client-supplied key to the order it produced.
// A reserved record has no OrderID until the placement completes.
type IdempotencyRecord struct {
	Key         string
	RequestHash string
	OrderID     string
	Total       decimal.Decimal
	CreatedAt   time.Time
}

// Pending reports whether the key is reserved but its order is not recorded yet.
func (r IdempotencyRecord) Pending() bool { return r.OrderID == "" }

// IdempotencyStore persists idempotency keys so retried checkouts replay the first result.
type IdempotencyStore interface {
	// Get returns the stored record for the key, or nil when unknown.
	Get(ctx context.Context, key string) (*IdempotencyRecord, error)
	// Reserve atomically claims the key for a request hash. It returns nil when the claim
	// succeeded. Otherwise it returns the stored record, together with ErrIdempotencyConflict
	// if its hash differs.
	Reserve(ctx context.Context, key, requestHash string) (*IdempotencyRecord, error)
	// Complete records the order produced for a reserved key.
	Complete(ctx context.Context, record IdempotencyRecord) error
	// Release drops a pending reservation held for requestHash so the key can be retried.
	Release(ctx context.Context, key, requestHash string) error
}
