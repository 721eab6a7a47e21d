package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ecomdata/internal/config"
	"ecomdata/internal/middleware"
	"ecomdata/internal/queue"
	"ecomdata/internal/router"
	"ecomdata/internal/store"
	rediskey "ecomdata/pkg/redis"

	"github.com/gin-gonic/gin"
	rd "github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. 连接关系库，自动建表（空库时报表接口返回 404）
	db, err := store.Open(store.Config{Driver: cfg.DBDriver, DSN: cfg.DBDSN})
	if err != nil {
		log.Fatalf("db open: %v", err)
	}
	defer store.Close(db)
	if err := store.Migrate(ctx, db); err != nil {
		log.Fatalf("db migrate: %v", err)
	}

	deps := router.Deps{DB: db}

	// 2. Redis：报表缓存 + 按 IP 限流
	if cfg.RedisEnabled() {
		rdb := rd.NewClient(&rd.Options{Addr: cfg.RedisAddr, DB: cfg.RedisDB})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatalf("redis ping: %v", err)
		}
		deps.Cache = rediskey.NewReportCache(rdb, cfg.ReportCacheTTL)
		deps.Limit = middleware.RedisRateLimit(rdb, cfg.RateLimit, cfg.RateWindow)
	}

	// 3. Kafka：收到加载完成事件后预热报表缓存
	if cfg.KafkaEnabled() && deps.Cache != nil {
		consumer := queue.NewConsumer(cfg.KafkaBrokers, cfg.KafkaTopic, cfg.KafkaGroupID, router.WarmCache(db, deps.Cache))
		defer consumer.Close()
		go consumer.Run(ctx)
		log.Printf("load event consumer started: topic=%s group=%s", cfg.KafkaTopic, cfg.KafkaGroupID)
	}

	r := gin.Default()
	router.Setup(r, deps)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: r}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("http shutdown: %v", err)
		}
	}()

	log.Printf("listening on %s", cfg.HTTPAddr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("http: %v", err)
	}
}
