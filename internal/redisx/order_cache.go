package redisx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/ariefcatur/go-pancake-orders/internal/orders"
)

// OrderCache sits in front of an orders.Store. Orders never change after
// creation, so a cached copy is never stale; the TTL only bounds memory.
type OrderCache struct {
	RDB *redis.Client
}

func NewOrderCache(rdb *redis.Client) *OrderCache { return &OrderCache{RDB: rdb} }

// GetOrder returns ok=false on a cache miss.
func (c *OrderCache) GetOrder(ctx context.Context, id int64) (orders.Order, bool, error) {
	s, err := c.RDB.Get(ctx, fmt.Sprintf(KeyOrder, id)).Result()
	if errors.Is(err, redis.Nil) {
		return orders.Order{}, false, nil
	}
	if err != nil {
		return orders.Order{}, false, err
	}
	var o orders.Order
	if err := json.Unmarshal([]byte(s), &o); err != nil {
		return orders.Order{}, false, fmt.Errorf("decode cached order %d: %w", id, err)
	}
	return o, true, nil
}

func (c *OrderCache) PutOrder(ctx context.Context, o orders.Order) error {
	b, err := json.Marshal(o)
	if err != nil {
		return err
	}
	return c.RDB.Set(ctx, fmt.Sprintf(KeyOrder, o.ID), b, TTLOrderCache).Err()
}

// LookupIdempotency returns the order id remembered for key, if any.
func (c *OrderCache) LookupIdempotency(ctx context.Context, key string) (int64, bool, error) {
	s, err := c.RDB.Get(ctx, fmt.Sprintf(KeyIdemOrderCreate, key)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("idempotency key %q holds %q: %w", key, s, err)
	}
	return id, true, nil
}

// RememberIdempotency binds key to orderID unless another request got there
// first. It returns the id that ends up bound to key.
func (c *OrderCache) RememberIdempotency(ctx context.Context, key string, orderID int64) (int64, error) {
	k := fmt.Sprintf(KeyIdemOrderCreate, key)
	ok, err := c.RDB.SetNX(ctx, k, orderID, TTLIdempotency).Result()
	if err != nil {
		return 0, err
	}
	if ok {
		return orderID, nil
	}
	id, found, err := c.LookupIdempotency(ctx, key)
	if err != nil {
		return 0, err
	}
	if !found {
		// expired between SetNX and Get
		return orderID, nil
	}
	return id, nil
}
