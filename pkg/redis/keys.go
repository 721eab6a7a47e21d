package redis

import "fmt"

// ReportTableKey 渲染后报表文本的缓存键。
func ReportTableKey() string {
	return "ecomdata:report:table"
}

// ReportRowsKey 报表 JSON 行的缓存键。
func ReportRowsKey() string {
	return "ecomdata:report:rows"
}

// RateLimitKey 报表接口按客户端 IP 限流的键。
func RateLimitKey(clientIP string) string {
	return fmt.Sprintf("ecomdata:rate_limit:ip:%s", clientIP)
}
