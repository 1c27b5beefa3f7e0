// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"rentorsale_backend/internal/feature/apartments/domain/entity"
	"rentorsale_backend/internal/feature/apartments/usecase"
)

// CachingApartmentRepository decorates an ApartmentRepository with Redis
// caching. It implements the decorator pattern, transparently adding caching
// without modifying the underlying repository. The apartment directory only
// changes on create, so every cached read is invalidated there.
type CachingApartmentRepository struct {
	inner     usecase.ApartmentRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// CachingApartmentRepositoryがApartmentRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.ApartmentRepository = (*CachingApartmentRepository)(nil)

// NewCachingApartmentRepository decorates an ApartmentRepository with Redis
// caching. If ttl is 0, it defaults to 10 minutes. If namespace is empty, it
// uses "apartments".
func NewCachingApartmentRepository(rdb *redis.Client, ttl time.Duration, inner usecase.ApartmentRepository, namespace string) *CachingApartmentRepository {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	if namespace == "" {
		namespace = "apartments"
	}
	return &CachingApartmentRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// FindAll retrieves all apartments, checking cache first then falling back to
// the database.
func (c *CachingApartmentRepository) FindAll(ctx context.Context) ([]entity.Apartment, error) {
	return c.cached(ctx, c.namespace+":all", func() ([]entity.Apartment, error) {
		return c.inner.FindAll(ctx)
	})
}

// SearchByNamePrefix retrieves apartments matching a name prefix and pincode,
// caching per query.
func (c *CachingApartmentRepository) SearchByNamePrefix(ctx context.Context, pattern, pincode string) ([]entity.Apartment, error) {
	return c.cached(ctx, c.searchKey(pattern, pincode), func() ([]entity.Apartment, error) {
		return c.inner.SearchByNamePrefix(ctx, pattern, pincode)
	})
}

// Create inserts the apartment and invalidates every cached read.
func (c *CachingApartmentRepository) Create(ctx context.Context, apartment *entity.Apartment) error {
	if err := c.inner.Create(ctx, apartment); err != nil {
		return err
	}
	if c.rdb == nil {
		return nil
	}
	_ = c.deleteByPattern(ctx, c.namespace+":*") // Best effort: don't fail the write if invalidation fails
	return nil
}

// cached serves one read through the cache.
func (c *CachingApartmentRepository) cached(ctx context.Context, key string, load func() ([]entity.Apartment, error)) ([]entity.Apartment, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return load()
	}

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.Apartment
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to database
	out, err := load()
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return out, nil
}

// searchKey generates a cache key for a specific search query.
func (c *CachingApartmentRepository) searchKey(pattern, pincode string) string {
	return fmt.Sprintf("%s:search:%s:%s", c.namespace, safe(pattern), safe(pincode))
}

// deleteByPattern deletes all cache keys matching a given pattern using SCAN.
func (c *CachingApartmentRepository) deleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, cur, err := c.rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = cur
		if cursor == 0 {
			break
		}
	}
	return nil
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
