package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"ecomdata/internal/config"
	"ecomdata/internal/ingest"
	"ecomdata/internal/queue"
	"ecomdata/internal/store"
	rediskey "ecomdata/pkg/redis"

	rd "github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, cfg, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, cfg config.AppConfig, stdout, stderr io.Writer) int {
	// 先完整解析导出目录：输入缺失或格式错误时不创建、不修改库
	in, err := ingest.ReadInput(cfg.DataDir)
	if err != nil {
		fmt.Fprintln(stderr, "ingest:", err)
		return 1
	}

	db, err := store.Open(store.Config{Driver: cfg.DBDriver, DSN: cfg.DBDSN})
	if err != nil {
		fmt.Fprintln(stderr, "open store:", err)
		return 1
	}
	defer store.Close(db)

	loader := &ingest.Loader{DB: db}
	if cfg.RedisEnabled() {
		rdb := rd.NewClient(&rd.Options{Addr: cfg.RedisAddr, DB: cfg.RedisDB})
		defer rdb.Close()
		loader.Cache = rediskey.NewReportCache(rdb, cfg.ReportCacheTTL)
	}
	if cfg.KafkaEnabled() {
		p := queue.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer p.Close()
		loader.Notifier = p
	}

	res, err := loader.Load(ctx, in)
	if err != nil {
		fmt.Fprintln(stderr, "ingest:", err)
		return 1
	}
	if err := ingest.PrintCounts(stdout, res.Counts); err != nil {
		fmt.Fprintln(stderr, "ingest:", err)
		return 1
	}
	return 0
}
