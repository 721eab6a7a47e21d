package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"ecomdata/internal/config"
	"ecomdata/internal/report"
	"ecomdata/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	os.Exit(run(context.Background(), cfg, os.Stdout, os.Stderr))
}

func run(ctx context.Context, cfg config.AppConfig, stdout, stderr io.Writer) int {
	// 报表只读：库文件不存在时直接失败，不创建空库
	db, err := store.OpenExisting(store.Config{Driver: cfg.DBDriver, DSN: cfg.DBDSN})
	if err != nil {
		fmt.Fprintln(stderr, "open store:", err)
		return 1
	}
	defer store.Close(db)

	rows, err := report.Fetch(ctx, db)
	if errors.Is(err, report.ErrNoData) {
		fmt.Fprintln(stdout, report.NoDataMessage)
		return 0
	}
	if err != nil {
		fmt.Fprintln(stderr, "report:", err)
		return 1
	}
	fmt.Fprintln(stdout, report.Render(rows))
	return 0
}
