package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"SHOPCART_BACKEND", "REDIS_ADDR", "SHOPCART_SESSION_TTL", "MYSQL_DSN", "LOG_LEVEL", "LOG_FORMAT"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, BackendMemory, cfg.Backend)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFormat)
}

func TestLoad_RedisBackend(t *testing.T) {
	t.Setenv("SHOPCART_BACKEND", "redis")
	t.Setenv("REDIS_ADDR", "cache:6380")
	t.Setenv("SHOPCART_SESSION_TTL", "90m")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, BackendRedis, cfg.Backend)
	assert.Equal(t, "cache:6380", cfg.RedisAddr)
	assert.Equal(t, 90*time.Minute, cfg.SessionTTL)
}

func TestLoad_InvalidBackend(t *testing.T) {
	t.Setenv("SHOPCART_BACKEND", "postgres")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_InvalidTTL(t *testing.T) {
	t.Setenv("SHOPCART_SESSION_TTL", "soon")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := Config{Backend: BackendMemory, LogFormat: "console"}
	assert.NoError(t, valid.Validate())

	redisNoTTL := Config{Backend: BackendRedis, RedisAddr: "localhost:6379", LogFormat: "json"}
	assert.Error(t, redisNoTTL.Validate())

	mysqlNoDSN := Config{Backend: BackendMySQL, LogFormat: "console"}
	assert.Error(t, mysqlNoDSN.Validate())

	badFormat := Config{Backend: BackendMemory, LogFormat: "xml"}
	assert.Error(t, badFormat.Validate())
}
