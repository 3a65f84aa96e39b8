package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// product:{products_id} -> product JSON
	keyProduct = "product:%d"
)

var ttlProduct = 5 * time.Minute

// ProductCache is a read-through cache in front of the catalog. Optional; a
// nil cache disables all operations. The database remains the source of
// truth, so every write path invalidates.
type ProductCache struct {
	rdb *redis.Client
}

func New(addr string) *ProductCache {
	if addr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:        addr,
		DialTimeout: 2 * time.Second,
		ReadTimeout: 2 * time.Second,
	})
	return &ProductCache{rdb: client}
}

func (c *ProductCache) Close() {
	if c != nil {
		_ = c.rdb.Close()
	}
}

// GetProduct decodes a cached product into dest. Returns false on miss or any
// redis error; misses are never fatal.
func (c *ProductCache) GetProduct(ctx context.Context, id int64, dest any) bool {
	if c == nil {
		return false
	}
	raw, err := c.rdb.Get(ctx, fmt.Sprintf(keyProduct, id)).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(raw, dest) == nil
}

func (c *ProductCache) SetProduct(ctx context.Context, id int64, value any) {
	if c == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	_ = c.rdb.Set(ctx, fmt.Sprintf(keyProduct, id), raw, ttlProduct).Err()
}

// InvalidateProduct drops the cached entry after any admin write or stock
// movement touching the product.
func (c *ProductCache) InvalidateProduct(ctx context.Context, id int64) {
	if c == nil {
		return
	}
	_ = c.rdb.Del(ctx, fmt.Sprintf(keyProduct, id)).Err()
}
