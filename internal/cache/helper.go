package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
)

// HandleHitCache decodes the cached value of key into model. Any error,
// including a plain miss, means the caller should load from the source.
func HandleHitCache(ctx context.Context, model any, c CacheEngine, key string) error {
	data, exists, err := c.Get(ctx, key)
	if exists && err == nil {
		if err := json.Unmarshal(data, model); err != nil {
			return errors.Wrap(err, "failed to unmarshal cache")
		}
		return nil
	}
	if err == nil {
		err = ErrKeyNotFound
	}
	return errors.Wrap(err, "miss cache")
}

func HandleSetCache(ctx context.Context, model any, c CacheEngine, key string, ttl time.Duration) error {
	return errors.Wrap(c.Set(ctx, key, model, ttl), "failed to set cache")
}

func HandleDeleteCache(ctx context.Context, c CacheEngine, key string) error {
	return errors.Wrap(c.Delete(ctx, key), "failed to delete cache")
}

// IsMiss reports whether err came from a missing key rather than a broken
// cache.
func IsMiss(err error) bool {
	return errors.Is(err, ErrKeyNotFound)
}
