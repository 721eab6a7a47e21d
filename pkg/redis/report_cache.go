package redis

import (
	"context"
	"errors"
	"time"

	rd "github.com/redis/go-redis/v9"
)

// ReportCache 缓存报表结果；每次加载成功后整体失效。
type ReportCache struct {
	rdb *rd.Client
	ttl time.Duration
}

func NewReportCache(rdb *rd.Client, ttl time.Duration) *ReportCache {
	return &ReportCache{rdb: rdb, ttl: ttl}
}

// Get 读取缓存。found=false 表示未命中。
func (c *ReportCache) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := c.rdb.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, rd.Nil) {
			return "", false, nil
		}
		return "", false, err
	}
	return v, true, nil
}

func (c *ReportCache) Put(ctx context.Context, key, value string) error {
	return c.rdb.Set(ctx, key, value, c.ttl).Err()
}

// Invalidate 删除全部报表缓存键。
func (c *ReportCache) Invalidate(ctx context.Context) error {
	return c.rdb.Del(ctx, ReportTableKey(), ReportRowsKey()).Err()
}
