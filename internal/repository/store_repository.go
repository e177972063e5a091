package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	appErrors "github.com/timerpro/timer-api/pkg/errors"
)

// Namespace identifies a logical partition of the key-value store.
type Namespace string

const (
	// NamespaceLive holds ephemeral running-timer records.
	NamespaceLive Namespace = "live"
	// NamespaceConfigs holds persisted timer configurations.
	NamespaceConfigs Namespace = "configs"
)

// StoreRepository provides namespaced JSON get/put/delete/list over
// Redis. Each namespace is backed by its own client bound to a separate
// logical database; the namespace is an explicit argument on every call.
type StoreRepository struct {
	clients map[Namespace]*redis.Client
	logger  *zap.Logger
}

// NewStoreRepository constructs a store repository over per-namespace
// clients.
func NewStoreRepository(live, configs *redis.Client, logger *zap.Logger) *StoreRepository {
	return &StoreRepository{
		clients: map[Namespace]*redis.Client{
			NamespaceLive:    live,
			NamespaceConfigs: configs,
		},
		logger: logger,
	}
}

func (r *StoreRepository) client(ns Namespace) (*redis.Client, error) {
	c, ok := r.clients[ns]
	if !ok || c == nil {
		return nil, fmt.Errorf("no client for namespace %q", ns)
	}
	return c, nil
}

// Get retrieves and unmarshals the value at key into dest. An absent key
// returns ErrKeyNotFound; invalid stored JSON indicates corruption and
// surfaces as an error.
func (r *StoreRepository) Get(ctx context.Context, ns Namespace, key string, dest interface{}) error {
	c, err := r.client(ns)
	if err != nil {
		return err
	}

	raw, err := c.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return appErrors.ErrKeyNotFound
		}
		return fmt.Errorf("redis get %s/%s: %w", ns, key, err)
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("unmarshal value for %s/%s: %w", ns, key, err)
	}

	return nil
}

// Put marshals value and writes it at key, overwriting any existing
// value. A zero TTL stores the record without expiry.
func (r *StoreRepository) Put(ctx context.Context, ns Namespace, key string, value interface{}, ttl time.Duration) error {
	c, err := r.client(ns)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal value for %s/%s: %w", ns, key, err)
	}

	if err := c.Set(ctx, key, payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s/%s: %w", ns, key, err)
	}

	return nil
}

// Delete removes the key if present; deleting an absent key is a no-op.
func (r *StoreRepository) Delete(ctx context.Context, ns Namespace, key string) error {
	c, err := r.client(ns)
	if err != nil {
		return err
	}

	if err := c.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis del %s/%s: %w", ns, key, err)
	}

	return nil
}

// List returns the raw JSON value of every key in the namespace, in no
// particular order.
func (r *StoreRepository) List(ctx context.Context, ns Namespace) ([]json.RawMessage, error) {
	c, err := r.client(ns)
	if err != nil {
		return nil, err
	}

	var keys []string
	iter := c.Scan(ctx, 0, "*", 0).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("redis scan %s: %w", ns, err)
	}

	if len(keys) == 0 {
		return []json.RawMessage{}, nil
	}

	values, err := c.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("redis mget %s: %w", ns, err)
	}

	result := make([]json.RawMessage, 0, len(values))
	for i, v := range values {
		s, ok := v.(string)
		if !ok {
			// Key expired or was deleted between SCAN and MGET.
			if r.logger != nil {
				r.logger.Debug("skipping vanished key", zap.String("namespace", string(ns)), zap.String("key", keys[i]))
			}
			continue
		}
		if !json.Valid([]byte(s)) {
			return nil, fmt.Errorf("corrupt value at %s/%s", ns, keys[i])
		}
		result = append(result, json.RawMessage(s))
	}

	return result, nil
}

// Close releases all underlying Redis connections.
func (r *StoreRepository) Close() error {
	var firstErr error
	for _, c := range r.clients {
		if c == nil {
			continue
		}
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
