package router

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"ecomdata/internal/report"
	"ecomdata/internal/store"
	rediskey "ecomdata/pkg/redis"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Deps 路由依赖；Cache 与 Limit 为空时不启用缓存与限流。
type Deps struct {
	DB    *gorm.DB
	Cache *rediskey.ReportCache
	Limit gin.HandlerFunc
}

// Setup 注册全部 HTTP 路由。
func Setup(r *gin.Engine, d Deps) {
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"msg": "pong"})
	})

	api := r.Group("/api")
	if d.Limit != nil {
		api.Use(d.Limit)
	}
	api.GET("/report", reportRows(d))
	api.GET("/report/table", reportTable(d))
	api.GET("/stats", stats(d.DB))
}

// reportRows 以 JSON 返回报表明细行。
func reportRows(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		if cached, ok := cacheGet(ctx, d.Cache, rediskey.ReportRowsKey()); ok {
			var rows []report.Row
			if err := json.Unmarshal([]byte(cached), &rows); err == nil {
				c.JSON(http.StatusOK, gin.H{"code": 0, "data": rows})
				return
			}
		}

		rows, ok := fetch(c, d.DB)
		if !ok {
			return
		}
		if b, err := json.Marshal(rows); err == nil {
			cachePut(ctx, d.Cache, rediskey.ReportRowsKey(), string(b))
		}
		c.JSON(http.StatusOK, gin.H{"code": 0, "data": rows})
	}
}

// reportTable 返回定宽文本表格。
func reportTable(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		if cached, ok := cacheGet(ctx, d.Cache, rediskey.ReportTableKey()); ok {
			c.String(http.StatusOK, cached)
			return
		}

		rows, ok := fetch(c, d.DB)
		if !ok {
			return
		}
		table := report.Render(rows)
		cachePut(ctx, d.Cache, rediskey.ReportTableKey(), table)
		c.String(http.StatusOK, table)
	}
}

// stats 返回各表行数。
func stats(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		counts, err := store.CountRows(c.Request.Context(), db)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"code": 500, "msg": err.Error()})
			return
		}
		data := make(gin.H, len(counts))
		for _, tc := range counts {
			data[tc.Table] = tc.Rows
		}
		c.JSON(http.StatusOK, gin.H{"code": 0, "data": data})
	}
}

// fetch 查询报表并处理错误响应；返回 false 表示已写出错误。
func fetch(c *gin.Context, db *gorm.DB) ([]report.Row, bool) {
	rows, err := report.Fetch(c.Request.Context(), db)
	if err != nil {
		if errors.Is(err, report.ErrNoData) {
			c.JSON(http.StatusNotFound, gin.H{"code": 404, "msg": report.NoDataMessage})
			return nil, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"code": 500, "msg": err.Error()})
		return nil, false
	}
	return rows, true
}

// 缓存读写失败只记录日志，回源数据库。
func cacheGet(ctx context.Context, cache *rediskey.ReportCache, key string) (string, bool) {
	if cache == nil {
		return "", false
	}
	v, found, err := cache.Get(ctx, key)
	if err != nil {
		log.Printf("report cache get %s: %v", key, err)
		return "", false
	}
	return v, found
}

func cachePut(ctx context.Context, cache *rediskey.ReportCache, key, value string) {
	if cache == nil {
		return
	}
	if err := cache.Put(ctx, key, value); err != nil {
		log.Printf("report cache put %s: %v", key, err)
	}
}
