package locations

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/TaxiClass-ReservationService/internal/domain"
)

const activeKey = "locations:active"

// Cache кеш списка активных точек посадки
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisClient создает клиент Redis
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

// NewCache создает кеш; ttl <= 0 означает хранение без срока
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{
		client: client,
		ttl:    ttl,
	}
}

// GetActive возвращает закешированный список или ErrCacheMiss
func (c *Cache) GetActive(ctx context.Context) ([]*domain.PredefinedLocation, error) {
	val, err := c.client.Get(ctx, activeKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get: %v", ErrCache, err)
	}

	var items []*domain.PredefinedLocation
	if err := json.Unmarshal(val, &items); err != nil {
		// Битая запись считается промахом, следующий SetActive её перезапишет
		return nil, ErrCacheMiss
	}
	return items, nil
}

// SetActive сохраняет список активных точек
func (c *Cache) SetActive(ctx context.Context, items []*domain.PredefinedLocation) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("%w: marshal: %v", ErrCache, err)
	}

	ttl := c.ttl
	if ttl < 0 {
		ttl = 0
	}
	if err := c.client.Set(ctx, activeKey, data, ttl).Err(); err != nil {
		return fmt.Errorf("%w: set: %v", ErrCache, err)
	}
	return nil
}

// Invalidate удаляет закешированный список
func (c *Cache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, activeKey).Err(); err != nil {
		return fmt.Errorf("%w: del: %v", ErrCache, err)
	}
	return nil
}
