// Package redis keeps checkout idempotency keys in Redis with a TTL.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/Apurer/petcare-api/internal/domains/orders/ports"
)

var _ ports.IdempotencyStore = (*IdempotencyStore)(nil)

const keyPrefix = "petcare:idempotency:orders:"

// DefaultTTL bounds how long a checkout key can be replayed.
const DefaultTTL = 24 * time.Hour

// IdempotencyStore stores one JSON document per key. Reservations are written with SET NX.
type IdempotencyStore struct {
	rdb goredis.UniversalClient
	ttl time.Duration
	now func() time.Time
}

func NewIdempotencyStore(rdb goredis.UniversalClient, ttl time.Duration) *IdempotencyStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &IdempotencyStore{rdb: rdb, ttl: ttl, now: time.Now}
}

type entry struct {
	RequestHash string          `json:"requestHash"`
	OrderID     string          `json:"orderId"`
	Total       decimal.Decimal `json:"total"`
	CreatedAt   time.Time       `json:"createdAt"`
}

func (s *IdempotencyStore) Get(ctx context.Context, key string) (*ports.IdempotencyRecord, error) {
	raw, err := s.rdb.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var e entry
	if err := json.Unmarshal(raw, &e); err != nil {
		return nil, err
	}
	return &ports.IdempotencyRecord{
		Key:         key,
		RequestHash: e.RequestHash,
		OrderID:     e.OrderID,
		Total:       e.Total,
		CreatedAt:   e.CreatedAt,
	}, nil
}

// Reserve writes a pending entry with SET NX and reads the stored entry when the key is taken.
func (s *IdempotencyStore) Reserve(ctx context.Context, key, requestHash string) (*ports.IdempotencyRecord, error) {
	payload, err := json.Marshal(entry{RequestHash: requestHash, CreatedAt: s.now().UTC()})
	if err != nil {
		return nil, err
	}
	stored, err := s.rdb.SetNX(ctx, keyPrefix+key, payload, s.ttl).Result()
	if err != nil {
		return nil, err
	}
	if stored {
		return nil, nil
	}
	existing, err := s.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		// Expired between SETNX and GET; the caller may retry.
		return nil, errors.New("idempotency key expired during reserve")
	}
	if existing.RequestHash != requestHash {
		return existing, ports.ErrIdempotencyConflict
	}
	return existing, nil
}

// Complete overwrites the pending entry and restarts its TTL.
func (s *IdempotencyStore) Complete(ctx context.Context, record ports.IdempotencyRecord) error {
	if record.CreatedAt.IsZero() {
		record.CreatedAt = s.now().UTC()
	}
	payload, err := json.Marshal(entry{
		RequestHash: record.RequestHash,
		OrderID:     record.OrderID,
		Total:       record.Total,
		CreatedAt:   record.CreatedAt,
	})
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, keyPrefix+record.Key, payload, s.ttl).Err()
}

// releaseScript deletes the key only while it still holds a pending entry for the same request.
var releaseScript = goredis.NewScript(`
local raw = redis.call("GET", KEYS[1])
if not raw then return 0 end
local e = cjson.decode(raw)
if e.requestHash == ARGV[1] and (e.orderId == nil or e.orderId == "") then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

func (s *IdempotencyStore) Release(ctx context.Context, key, requestHash string) error {
	return releaseScript.Run(ctx, s.rdb, []string{keyPrefix + key}, requestHash).Err()
}
