package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Server     ServerConfig
	Store      StoreConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	Submission SubmissionConfig
	Monitor    MonitorConfig
	Sync       SyncConfig
	Queueing   QueueingConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host string
	Port int
	Env  string
}

// StoreConfig holds the local offline booking store configuration
type StoreConfig struct {
	Path string
}

// DatabaseConfig holds the doctor-load database configuration
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// SubmissionConfig holds remote booking backend configuration
type SubmissionConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// MonitorConfig holds connectivity monitor configuration
type MonitorConfig struct {
	ProbeURL      string
	Interval      time.Duration
	ProbeTimeout  time.Duration
	SlowThreshold time.Duration
}

// SyncConfig holds sync coordinator configuration
type SyncConfig struct {
	SubmissionTimeout time.Duration
	SyncedRetention   time.Duration
	PurgeInterval     time.Duration
}

// QueueingConfig holds default arrival/service rates for wait estimation.
// Rates are per hour.
type QueueingConfig struct {
	ArrivalRate float64
	ServiceRate float64
	Servers     int
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	return &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvAsInt("SERVER_PORT", 8080),
			Env:  getEnv("APP_ENV", "development"),
		},
		Store: StoreConfig{
			Path: getEnv("OFFLINE_STORE_PATH", "offline_bookings.db"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "med_appoint"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvAsInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Submission: SubmissionConfig{
			BaseURL: getEnv("SUBMISSION_BASE_URL", ""),
			APIKey:  getEnv("SUBMISSION_API_KEY", ""),
			Timeout: getEnvAsDuration("SUBMISSION_TIMEOUT", 10*time.Second),
		},
		Monitor: MonitorConfig{
			ProbeURL:      getEnv("MONITOR_PROBE_URL", "https://www.gstatic.com/generate_204"),
			Interval:      getEnvAsDuration("MONITOR_INTERVAL", 15*time.Second),
			ProbeTimeout:  getEnvAsDuration("MONITOR_PROBE_TIMEOUT", 5*time.Second),
			SlowThreshold: getEnvAsDuration("MONITOR_SLOW_THRESHOLD", 1500*time.Millisecond),
		},
		Sync: SyncConfig{
			SubmissionTimeout: getEnvAsDuration("SYNC_SUBMISSION_TIMEOUT", 15*time.Second),
			SyncedRetention:   getEnvAsDuration("SYNC_SYNCED_RETENTION", 24*time.Hour),
			PurgeInterval:     getEnvAsDuration("SYNC_PURGE_INTERVAL", time.Hour),
		},
		Queueing: QueueingConfig{
			ArrivalRate: getEnvAsFloat("QUEUEING_ARRIVAL_RATE", 4.0),
			ServiceRate: getEnvAsFloat("QUEUEING_SERVICE_RATE", 6.0),
			Servers:     getEnvAsInt("QUEUEING_SERVERS", 1),
		},
	}, nil
}

// DatabaseDSN returns the PostgreSQL connection string
func (c *DatabaseConfig) DatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

// RedisAddr returns the Redis address
func (c *RedisConfig) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
