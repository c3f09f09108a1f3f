package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "development", cfg.Server.Env)
	assert.Equal(t, "offline_bookings.db", cfg.Store.Path)
	assert.Equal(t, 15*time.Second, cfg.Monitor.Interval)
	assert.Equal(t, 1500*time.Millisecond, cfg.Monitor.SlowThreshold)
	assert.Equal(t, 24*time.Hour, cfg.Sync.SyncedRetention)
	assert.Equal(t, time.Hour, cfg.Sync.PurgeInterval)
	assert.Equal(t, 4.0, cfg.Queueing.ArrivalRate)
	assert.Equal(t, 6.0, cfg.Queueing.ServiceRate)
	assert.Equal(t, 1, cfg.Queueing.Servers)
	assert.Empty(t, cfg.Submission.BaseURL)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("OFFLINE_STORE_PATH", "/var/lib/app/store.db")
	t.Setenv("MONITOR_SLOW_THRESHOLD", "2s")
	t.Setenv("SYNC_SYNCED_RETENTION", "48h")
	t.Setenv("QUEUEING_ARRIVAL_RATE", "7.5")
	t.Setenv("QUEUEING_SERVERS", "3")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "/var/lib/app/store.db", cfg.Store.Path)
	assert.Equal(t, 2*time.Second, cfg.Monitor.SlowThreshold)
	assert.Equal(t, 48*time.Hour, cfg.Sync.SyncedRetention)
	assert.Equal(t, 7.5, cfg.Queueing.ArrivalRate)
	assert.Equal(t, 3, cfg.Queueing.Servers)
}

func TestLoad_MalformedValuesFallBack(t *testing.T) {
	t.Setenv("SERVER_PORT", "not-a-number")
	t.Setenv("MONITOR_INTERVAL", "soon")
	t.Setenv("QUEUEING_ARRIVAL_RATE", "many")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Monitor.Interval)
	assert.Equal(t, 4.0, cfg.Queueing.ArrivalRate)
}

func TestDatabaseDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "db.internal",
		Port:     5433,
		User:     "app",
		Password: "pw",
		Database: "med_appoint",
		SSLMode:  "require",
	}

	assert.Equal(t,
		"host=db.internal port=5433 user=app password=pw dbname=med_appoint sslmode=require",
		cfg.DatabaseDSN())
}

func TestRedisAddr(t *testing.T) {
	cfg := RedisConfig{Host: "cache.internal", Port: 6380}
	assert.Equal(t, "cache.internal:6380", cfg.RedisAddr())
}
