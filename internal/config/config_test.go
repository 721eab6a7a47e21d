package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, k := range []string{"DATA_DIR", "DB_DRIVER", "DB_DSN", "REDIS_ADDR", "KAFKA_BROKERS", "KAFKA_GROUP_ID", "SEED", "RATE_LIMIT"} {
		t.Setenv(k, "")
	}
	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "data", cfg.DataDir)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "ecom.db", cfg.DBDSN)
	assert.Equal(t, time.Minute, cfg.ReportCacheTTL)
	assert.Equal(t, uint64(42), cfg.Seed)
	assert.Equal(t, "ecomdata-report-warmer", cfg.KafkaGroupID)
	assert.False(t, cfg.RedisEnabled())
	assert.False(t, cfg.KafkaEnabled())
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("DATA_DIR", "/tmp/out")
	t.Setenv("DB_DRIVER", "Postgres")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("KAFKA_BROKERS", "a:9092, b:9092,")
	t.Setenv("REPORT_CACHE_TTL_SEC", "5")
	t.Setenv("SEED", "7")
	t.Setenv("KAFKA_GROUP_ID", "warmer-b")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/out", cfg.DataDir)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, []string{"a:9092", "b:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 5*time.Second, cfg.ReportCacheTTL)
	assert.Equal(t, uint64(7), cfg.Seed)
	assert.Equal(t, "warmer-b", cfg.KafkaGroupID)
	assert.True(t, cfg.RedisEnabled())
	assert.True(t, cfg.KafkaEnabled())
}

func TestFromEnvRejectsInvalid(t *testing.T) {
	tests := map[string]string{
		"DB_DRIVER":            "mysql",
		"REDIS_DB":             "one",
		"REPORT_CACHE_TTL_SEC": "0",
		"RATE_LIMIT":           "-1",
		"RATE_WINDOW_SEC":      "x",
		"SEED":                 "-3",
	}
	for key, val := range tests {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, val)
			_, err := FromEnv()
			assert.Error(t, err)
		})
	}
}
