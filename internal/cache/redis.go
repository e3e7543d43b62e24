package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/romain-38530/rdv-planning/internal/domain"
)

// RedisCache caches hot pending-appointment lists. Values are small JSON
// documents with a short TTL; every write path invalidates the whole
// organization to keep the lists honest.
type RedisCache struct {
	client     *redis.Client
	pendingTTL time.Duration
}

func NewRedisCache(addr, password string, db int, pendingTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:     redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db}),
		pendingTTL: pendingTTL,
	}
}

// GetPending returns the cached pending list. ok is false on a miss.
func (c *RedisCache) GetPending(ctx context.Context, organizationID, siteID string) ([]domain.AppointmentRequest, bool, error) {
	data, err := c.client.Get(ctx, pendingKey(organizationID, siteID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, false, nil
		}
		return nil, false, err
	}

	var items []domain.AppointmentRequest
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, false, err
	}
	return items, true, nil
}

func (c *RedisCache) SetPending(ctx context.Context, organizationID, siteID string, items []domain.AppointmentRequest) error {
	payload, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, pendingKey(organizationID, siteID), payload, c.pendingTTL).Err()
}

// InvalidatePending drops every cached list for the organization,
// site-scoped variants included.
func (c *RedisCache) InvalidatePending(ctx context.Context, organizationID string) error {
	iter := c.client.Scan(ctx, 0, pendingKey(organizationID, "*"), 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

func pendingKey(organizationID, siteID string) string {
	if siteID == "" {
		siteID = "-"
	}
	return fmt.Sprintf("cache:pending:%s:%s", organizationID, siteID)
}
