package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"ecomdata/internal/config"
	"ecomdata/internal/export"
	"ecomdata/internal/generate"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	os.Exit(run(os.Args[1:], cfg, time.Now(), os.Stdout, os.Stderr))
}

func run(args []string, cfg config.AppConfig, now time.Time, stdout, stderr io.Writer) int {
	def := generate.DefaultCounts
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	fs.SetOutput(stderr)
	users := fs.Int("users", def.Users, "number of users")
	products := fs.Int("products", def.Products, "number of products")
	orders := fs.Int("orders", def.Orders, "number of orders")
	withJSON := fs.Bool("json", false, "also write one JSON document per table")
	seed := fs.Uint64("seed", cfg.Seed, "random seed")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	// 先校验数量，非法时不写任何文件
	counts := generate.Counts{Users: *users, Products: *products, Orders: *orders}
	if err := counts.Validate(); err != nil {
		fmt.Fprintln(stderr, "generate:", err)
		return 1
	}

	ds, err := generate.New(generate.NewSource(*seed), now).Generate(counts)
	if err != nil {
		fmt.Fprintln(stderr, "generate:", err)
		return 1
	}

	dir := cfg.DataDir
	if err := export.WriteCSV(dir, ds); err != nil {
		fmt.Fprintln(stderr, "write csv:", err)
		return 1
	}
	// 每次运行覆盖上一次的输出，未要求 JSON 时清掉旧副本
	writeJSON := export.RemoveJSON
	if *withJSON {
		writeJSON = func(dir string) error { return export.WriteJSON(dir, ds) }
	}
	if err := writeJSON(dir); err != nil {
		fmt.Fprintln(stderr, "write json:", err)
		return 1
	}
	manifest := export.Manifest{
		RunID:       export.NewRunID(),
		Seed:        *seed,
		GeneratedAt: now.UTC(),
		Users:       len(ds.Users),
		Products:    len(ds.Products),
		Orders:      len(ds.Orders),
		OrderItems:  len(ds.OrderItems),
		Payments:    len(ds.Payments),
	}
	if err := export.WriteManifest(dir, manifest); err != nil {
		fmt.Fprintln(stderr, "write manifest:", err)
		return 1
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		abs = dir
	}
	fmt.Fprintf(stdout, "Data written to %s\n", abs)
	return 0
}
