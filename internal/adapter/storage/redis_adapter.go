package storage

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rl1809/shop-cart/internal/core/domain"
)

const (
	ledgerKeyPrefix  = "shopcart:"
	defaultLedgerTTL = 24 * time.Hour
)

// Moves ARGV[2] units of ARGV[1] from KEYS[1] to KEYS[2] when the source
// holds enough. ARGV[3] == '1' keeps a zero entry in the source.
var transferScript = redis.NewScript(`
local src = KEYS[1]
local dst = KEYS[2]
local article = ARGV[1]
local quantity = tonumber(ARGV[2])
local keepEmpty = ARGV[3] == '1'
local ttl = tonumber(ARGV[4])

local current = redis.call('HGET', src, article)
if not current then
	return 0
end

current = tonumber(current)
if current < quantity then
	return 0
end

local left = redis.call('HINCRBY', src, article, -quantity)
if left == 0 and not keepEmpty then
	redis.call('HDEL', src, article)
end
redis.call('HINCRBY', dst, article, quantity)

redis.call('EXPIRE', src, ttl)
redis.call('EXPIRE', dst, ttl)
return 1
`)

// RedisAdapter keeps both ledgers as hashes in a per-session namespace.
// The hash tag keeps the two keys of a session in one cluster slot.
type RedisAdapter struct {
	client    *redis.Client
	sessionID string
	ttl       time.Duration
}

func NewRedisAdapter(client *redis.Client, sessionID string, ttl time.Duration) *RedisAdapter {
	if ttl <= 0 {
		ttl = defaultLedgerTTL
	}
	return &RedisAdapter{client: client, sessionID: sessionID, ttl: ttl}
}

func (r *RedisAdapter) key(ledger domain.LedgerKind) string {
	return fmt.Sprintf("%s{%s}:%s", ledgerKeyPrefix, r.sessionID, ledger)
}

func (r *RedisAdapter) Quantity(ctx context.Context, ledger domain.LedgerKind, article string) (int, bool, error) {
	quantity, err := r.client.HGet(ctx, r.key(ledger), article).Int()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("get %s quantity: %w", ledger, err)
	}
	return quantity, true, nil
}

func (r *RedisAdapter) Stock(ctx context.Context, article string, quantity int) (bool, error) {
	key := r.key(domain.LedgerInventory)

	var inserted *redis.BoolCmd
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		inserted = pipe.HSetNX(ctx, key, article, quantity)
		pipe.Expire(ctx, key, r.ttl)
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("stock article: %w", err)
	}

	return inserted.Val(), nil
}

func (r *RedisAdapter) Transfer(ctx context.Context, from, to domain.LedgerKind, article string, quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("transfer %d of %s: %w", quantity, article, domain.ErrInvalidQuantity)
	}

	keepEmpty := "0"
	if from.KeepsEmpty() {
		keepEmpty = "1"
	}

	result, err := transferScript.Run(ctx, r.client,
		[]string{r.key(from), r.key(to)},
		article, quantity, keepEmpty, int64(r.ttl/time.Second),
	).Int()
	if err != nil {
		return fmt.Errorf("transfer script: %w", err)
	}
	if result != 1 {
		return ErrInsufficientQuantity
	}

	return nil
}

func (r *RedisAdapter) Entries(ctx context.Context, ledger domain.LedgerKind) ([]domain.Entry, error) {
	fields, err := r.client.HGetAll(ctx, r.key(ledger)).Result()
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", ledger, err)
	}

	entries := make([]domain.Entry, 0, len(fields))
	for article, value := range fields {
		quantity, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("parse %s quantity of %s: %w", ledger, article, err)
		}
		entries = append(entries, domain.Entry{Article: article, Quantity: quantity})
	}
	sortEntries(entries)
	return entries, nil
}

func (r *RedisAdapter) Close(ctx context.Context) error {
	return r.client.Del(ctx, r.key(domain.LedgerInventory), r.key(domain.LedgerCart)).Err()
}
