package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

// Result 记录单次请求的 HTTP 结果，便于聚合统计。
type Result struct {
	Status int
	Body   string
	Err    error
}

func main() {
	baseURL := flag.String("base", "http://localhost:8080", "server base url")
	total := flag.Int("n", 200, "total report requests")
	concurrency := flag.Int("c", 50, "max concurrency")
	path := flag.String("path", "/api/report/table", "report endpoint to hit")
	flag.Parse()

	client := &http.Client{Timeout: 5 * time.Second}

	stats, err := getStats(client, *baseURL)
	if err != nil {
		fmt.Println("stats err:", err)
	} else {
		fmt.Println("rows per table:")
		for _, t := range []string{"users", "products", "orders", "order_items", "payments"} {
			fmt.Printf("  %s: %d\n", t, stats[t])
		}
	}

	// 并发读报表：同一 IP 大量请求，验证缓存命中后的一致性与 429 限流
	fmt.Printf("\nstart report test: path=%s n=%d concurrency=%d\n", *path, *total, *concurrency)
	start := time.Now()
	results := runGets(client, *baseURL+*path, *total, *concurrency)
	fmt.Printf("elapsed: %s\n", time.Since(start))

	printSummary("report", results)
	fmt.Println("distinct 200 bodies:", distinctBodies(results))
}

func runGets(client *http.Client, url string, total int, concurrency int) []Result {
	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup
	results := make([]Result, total)

	for i := 0; i < total; i++ {
		wg.Add(1)
		sem <- struct{}{}
		go func(idx int) {
			defer wg.Done()
			defer func() { <-sem }()
			results[idx] = getOnce(client, url)
		}(i)
	}

	wg.Wait()
	return results
}

func getOnce(client *http.Client, url string) Result {
	resp, err := client.Get(url)
	if err != nil {
		return Result{Err: err}
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return Result{Status: resp.StatusCode, Body: string(body)}
}

// printSummary 聚合输出不同状态码分布。
func printSummary(name string, results []Result) {
	count := map[int]int{}
	errCount := 0
	for _, r := range results {
		if r.Err != nil {
			errCount++
			continue
		}
		count[r.Status]++
	}
	fmt.Printf("[%s] http status summary:\n", name)
	for _, code := range []int{200, 404, 429, 500} {
		if count[code] > 0 {
			fmt.Printf("  %d -> %d\n", code, count[code])
		}
	}
	if errCount > 0 {
		fmt.Printf("  errors -> %d\n", errCount)
	}
}

// distinctBodies 报表在两次加载之间应当完全一致，正常情况下为 1。
func distinctBodies(results []Result) int {
	seen := map[string]struct{}{}
	for _, r := range results {
		if r.Err == nil && r.Status == http.StatusOK {
			seen[r.Body] = struct{}{}
		}
	}
	return len(seen)
}

// getStats 查询各表行数。
func getStats(client *http.Client, baseURL string) (map[string]int64, error) {
	resp, err := client.Get(baseURL + "/api/stats")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("status=%d body=%s", resp.StatusCode, string(b))
	}

	var out struct {
		Code int              `json:"code"`
		Data map[string]int64 `json:"data"`
	}
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}
