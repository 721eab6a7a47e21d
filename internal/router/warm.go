package router

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"ecomdata/internal/queue"
	"ecomdata/internal/report"
	rediskey "ecomdata/pkg/redis"

	"gorm.io/gorm"
)

// WarmCache 返回加载事件处理器：新数据入库后重新渲染报表并写入缓存。
func WarmCache(db *gorm.DB, cache *rediskey.ReportCache) queue.Handler {
	return func(ctx context.Context, ev queue.LoadEvent) error {
		if err := cache.Invalidate(ctx); err != nil {
			return err
		}
		rows, err := report.Fetch(ctx, db)
		if errors.Is(err, report.ErrNoData) {
			log.Printf("warm cache: load %s has no report rows", ev.LoadID)
			return nil
		}
		if err != nil {
			return err
		}
		b, err := json.Marshal(rows)
		if err != nil {
			return err
		}
		if err := cache.Put(ctx, rediskey.ReportRowsKey(), string(b)); err != nil {
			return err
		}
		if err := cache.Put(ctx, rediskey.ReportTableKey(), report.Render(rows)); err != nil {
			return err
		}
		log.Printf("warm cache: load %s (dataset %s) cached %d rows", ev.LoadID, ev.DatasetID, len(rows))
		return nil
	}
}
