package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/estatehub/marketplace/internal/property/domain"
)

const propertyTTL = time.Hour

// PropertyCache is a Redis cache-aside for single-property reads.
type PropertyCache struct {
	client *redis.Client
}

func NewPropertyCache(ctx context.Context, addr string) (*PropertyCache, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return &PropertyCache{client: client}, nil
}

// Get returns nil, nil on a cache miss.
func (c *PropertyCache) Get(ctx context.Context, id string) (*domain.Property, error) {
	data, err := c.client.Get(ctx, key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var property domain.Property
	if err := json.Unmarshal(data, &property); err != nil {
		return nil, err
	}
	return &property, nil
}

func (c *PropertyCache) Set(ctx context.Context, property *domain.Property) error {
	data, err := json.Marshal(property)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key(property.ID), data, propertyTTL).Err()
}

func (c *PropertyCache) Delete(ctx context.Context, id string) error {
	return c.client.Del(ctx, key(id)).Err()
}

func (c *PropertyCache) Close() error {
	return c.client.Close()
}

func key(id string) string {
	return "property:" + id
}
