package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"pet-care-marketplace/internal/domain/cart"

	"github.com/redis/go-redis/v9"
)

const DefaultTTL = 24 * time.Hour

// CartCache guarda la vista armada del carrito como JSON bajo cart:<userID>
// con TTL. Es un cache read-through: el service lo consulta antes de armar la
// vista y lo invalida en cada mutación.
type CartCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCartCache(client *redis.Client, ttl time.Duration) *CartCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &CartCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *CartCache) Get(ctx context.Context, userID string) (*cart.View, error) {
	raw, err := c.client.Get(ctx, cartKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil // miss
		}
		return nil, fmt.Errorf("cart cache get: %w", err)
	}

	var v cart.View
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("cart cache decode: %w", err)
	}
	return &v, nil
}

func (c *CartCache) Set(ctx context.Context, userID string, v cart.View) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("cart cache encode: %w", err)
	}
	if err := c.client.Set(ctx, cartKey(userID), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("cart cache set: %w", err)
	}
	return nil
}

func (c *CartCache) Invalidate(ctx context.Context, userID string) error {
	if err := c.client.Del(ctx, cartKey(userID)).Err(); err != nil {
		return fmt.Errorf("cart cache invalidate: %w", err)
	}
	return nil
}

func cartKey(userID string) string {
	return "cart:" + userID
}
