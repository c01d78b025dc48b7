package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"inmobiliaria_backend/internal/properties/domain"
	"inmobiliaria_backend/platform/logger"
	"inmobiliaria_backend/platform/metrics"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix   = "catalog:"
	keyAll      = keyPrefix + "all"
	keyFeatured = keyPrefix + "featured"
	keySlug     = keyPrefix + "slug:"

	// notFoundMarker caches unknown slugs so crawlers do not hammer the CMS.
	notFoundMarker = "null"

	defaultCacheTTL = 5 * time.Minute
)

// Metric source labels.
const (
	sourceCache  = "cache"
	sourceOrigin = "origin"
)

// CachedSource keeps origin answers in Redis for ttl. Redis failures are
// logged and the origin is queried directly.
type CachedSource struct {
	origin Source
	rdb    redis.UniversalClient
	ttl    time.Duration
	log    *logger.Logger
}

func NewCachedSource(origin Source, rdb redis.UniversalClient, ttl time.Duration, log *logger.Logger) *CachedSource {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &CachedSource{origin: origin, rdb: rdb, ttl: ttl, log: log}
}

func (c *CachedSource) All(ctx context.Context) ([]domain.Property, error) {
	return c.list(ctx, keyAll, c.origin.All)
}

func (c *CachedSource) Featured(ctx context.Context) ([]domain.Property, error) {
	return c.list(ctx, keyFeatured, c.origin.Featured)
}

func (c *CachedSource) BySlug(ctx context.Context, slug string) (domain.Property, error) {
	key := keySlug + slug
	if raw, ok := c.get(ctx, key); ok {
		if raw == notFoundMarker {
			return domain.Property{}, ErrNotFound
		}
		var prop domain.Property
		if err := json.Unmarshal([]byte(raw), &prop); err == nil {
			return prop, nil
		}
	}

	prop, err := c.origin.BySlug(ctx, slug)
	if errors.Is(err, ErrNotFound) {
		metrics.CatalogFetches.WithLabelValues(sourceOrigin, metrics.OutcomeOK).Inc()
		c.set(ctx, key, []byte(notFoundMarker))
		return domain.Property{}, err
	}
	if err != nil {
		metrics.CatalogFetches.WithLabelValues(sourceOrigin, metrics.OutcomeError).Inc()
		return domain.Property{}, err
	}
	metrics.CatalogFetches.WithLabelValues(sourceOrigin, metrics.OutcomeOK).Inc()

	if data, err := json.Marshal(prop); err == nil {
		c.set(ctx, key, data)
	}
	return prop, nil
}

func (c *CachedSource) list(ctx context.Context, key string, load func(context.Context) ([]domain.Property, error)) ([]domain.Property, error) {
	if raw, ok := c.get(ctx, key); ok {
		var props []domain.Property
		if err := json.Unmarshal([]byte(raw), &props); err == nil {
			return props, nil
		}
	}

	props, err := load(ctx)
	if err != nil {
		metrics.CatalogFetches.WithLabelValues(sourceOrigin, metrics.OutcomeError).Inc()
		return nil, err
	}
	metrics.CatalogFetches.WithLabelValues(sourceOrigin, metrics.OutcomeOK).Inc()

	if data, err := json.Marshal(props); err == nil {
		c.set(ctx, key, data)
	}
	return props, nil
}

func (c *CachedSource) get(ctx context.Context, key string) (string, bool) {
	raw, err := c.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false
	}
	if err != nil {
		c.log.Warn("catalog cache read failed", "key", key, "error", err)
		metrics.CatalogFetches.WithLabelValues(sourceCache, metrics.OutcomeError).Inc()
		return "", false
	}
	metrics.CatalogFetches.WithLabelValues(sourceCache, metrics.OutcomeOK).Inc()
	return raw, true
}

func (c *CachedSource) set(ctx context.Context, key string, value []byte) {
	if err := c.rdb.Set(ctx, key, value, c.ttl).Err(); err != nil {
		c.log.Warn("catalog cache write failed", "key", key, "error", err)
	}
}

// Invalidate drops every cached catalog entry.
func (c *CachedSource) Invalidate(ctx context.Context) error {
	iter := c.rdb.Scan(ctx, 0, keyPrefix+"*", 100).Iterator()
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
	return c.rdb.Del(ctx, keys...).Err()
}
