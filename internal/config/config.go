package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig 聚合各阶段共用的运行时配置，通过环境变量注入，避免硬编码。
type AppConfig struct {
	// 导出目录（生成写入、加载读取）
	DataDir string

	// 关系库：sqlite（默认，DSN 为文件路径）或 postgres
	DBDriver string
	DBDSN    string

	HTTPAddr string

	// Redis 为空表示不启用报表缓存与限流
	RedisAddr      string
	RedisDB        int
	ReportCacheTTL time.Duration
	RateLimit      int
	RateWindow     time.Duration

	// Kafka 为空表示不发布加载完成事件
	KafkaBrokers []string
	KafkaTopic   string
	KafkaGroupID string

	// 生成器默认种子
	Seed uint64
}

// RedisEnabled 是否配置了 Redis。
func (c AppConfig) RedisEnabled() bool { return c.RedisAddr != "" }

// KafkaEnabled 是否配置了 Kafka。
func (c AppConfig) KafkaEnabled() bool { return len(c.KafkaBrokers) > 0 }

// Load 先尝试读取 .env（不存在不报错），再读取并校验环境变量，缺失时使用默认值。
func Load() (AppConfig, error) {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv 只读取进程环境变量。
func FromEnv() (AppConfig, error) {
	cfg := AppConfig{
		DataDir:        getEnv("DATA_DIR", "data"),
		DBDriver:       strings.ToLower(getEnv("DB_DRIVER", "sqlite")),
		DBDSN:          getEnv("DB_DSN", "ecom.db"),
		HTTPAddr:       getEnv("HTTP_ADDR", ":8080"),
		RedisAddr:      getEnv("REDIS_ADDR", ""),
		RedisDB:        0,
		ReportCacheTTL: time.Minute,
		RateLimit:      100,
		RateWindow:     time.Second,
		KafkaBrokers:   splitCSV(getEnv("KAFKA_BROKERS", "")),
		KafkaTopic:     getEnv("KAFKA_TOPIC", "ecomdata.loads"),
		KafkaGroupID:   getEnv("KAFKA_GROUP_ID", "ecomdata-report-warmer"),
		Seed:           42,
	}

	switch cfg.DBDriver {
	case "sqlite", "postgres":
	default:
		return AppConfig{}, fmt.Errorf("invalid DB_DRIVER %q: want sqlite or postgres", cfg.DBDriver)
	}

	redisDB, err := getEnvInt("REDIS_DB", cfg.RedisDB)
	if err != nil {
		return AppConfig{}, fmt.Errorf("invalid REDIS_DB: %w", err)
	}
	cfg.RedisDB = redisDB

	ttlSec, err := getEnvInt("REPORT_CACHE_TTL_SEC", int(cfg.ReportCacheTTL.Seconds()))
	if err != nil {
		return AppConfig{}, fmt.Errorf("invalid REPORT_CACHE_TTL_SEC: %w", err)
	}
	if ttlSec <= 0 {
		return AppConfig{}, fmt.Errorf("REPORT_CACHE_TTL_SEC must be > 0")
	}
	cfg.ReportCacheTTL = time.Duration(ttlSec) * time.Second

	rateLimit, err := getEnvInt("RATE_LIMIT", cfg.RateLimit)
	if err != nil {
		return AppConfig{}, fmt.Errorf("invalid RATE_LIMIT: %w", err)
	}
	if rateLimit <= 0 {
		return AppConfig{}, fmt.Errorf("RATE_LIMIT must be > 0")
	}
	cfg.RateLimit = rateLimit

	rateWindowSec, err := getEnvInt("RATE_WINDOW_SEC", int(cfg.RateWindow.Seconds()))
	if err != nil {
		return AppConfig{}, fmt.Errorf("invalid RATE_WINDOW_SEC: %w", err)
	}
	if rateWindowSec <= 0 {
		return AppConfig{}, fmt.Errorf("RATE_WINDOW_SEC must be > 0")
	}
	cfg.RateWindow = time.Duration(rateWindowSec) * time.Second

	if v := getEnv("SEED", ""); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return AppConfig{}, fmt.Errorf("invalid SEED: %w", err)
		}
		cfg.Seed = seed
	}

	if cfg.DataDir == "" {
		return AppConfig{}, fmt.Errorf("DATA_DIR must not be empty")
	}
	if cfg.KafkaEnabled() && cfg.KafkaTopic == "" {
		return AppConfig{}, fmt.Errorf("KAFKA_TOPIC must not be empty")
	}
	if cfg.KafkaEnabled() && cfg.KafkaGroupID == "" {
		return AppConfig{}, fmt.Errorf("KAFKA_GROUP_ID must not be empty")
	}

	return cfg, nil
}

// getEnv 读取字符串环境变量，若为空则返回默认值。
func getEnv(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

// getEnvInt 读取整数环境变量，若为空则返回默认值。
func getEnvInt(key string, fallback int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	return strconv.Atoi(v)
}

// splitCSV 将逗号分隔字符串解析为字符串切片。
func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		s := strings.TrimSpace(p)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
