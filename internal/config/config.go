package config

import (
	"os"
	"strings"
	"time"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	AppName     string
	Port        string
	CORSOrigins string
	LogLevel    string

	DBDriver    string
	DatabaseURL string
	DBHost      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBPort      string
	DBTimeZone  string
	SQLitePath  string

	JWTSecret     string
	JWTExpiration time.Duration

	KafkaBrokers  []string
	MovementTopic string
	AssetTopic    string

	SeedDefaults bool
}

func Load() *Config {
	return &Config{
		AppName:     getEnv("APP_NAME", "IT Asset Inventory v1.0"),
		Port:        getEnv("PORT", "3000"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		DBDriver:    strings.ToLower(getEnv("DB_DRIVER", DriverPostgres)),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBUser:      getEnv("DB_USER", "postgres"),
		DBPassword:  getEnv("DB_PASSWORD", ""),
		DBName:      getEnv("DB_NAME", "inventory"),
		DBPort:      getEnv("DB_PORT", "5432"),
		DBTimeZone:  getEnv("DB_TIMEZONE", "Asia/Jakarta"),
		SQLitePath:  getEnv("SQLITE_PATH", "inventory.db"),

		JWTSecret:     getEnv("JWT_SECRET", "your-super-secret-key-change-in-production"),
		JWTExpiration: getDuration("JWT_EXPIRATION", 24*time.Hour),

		KafkaBrokers:  splitList(getEnv("KAFKA_BROKERS", "")),
		MovementTopic: getEnv("EVENT_TOPIC_MOVEMENT_STATUS", "inventory.movement.status"),
		AssetTopic:    getEnv("EVENT_TOPIC_ASSET_STATUS", "inventory.asset.status"),

		SeedDefaults: getEnv("SEED_DEFAULTS", "true") != "false",
	}
}

func getEnv(key, defaultVal string) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	return defaultVal
}

func getDuration(key string, defaultVal time.Duration) time.Duration {
	val, exists := os.LookupEnv(key)
	if !exists {
		return defaultVal
	}
	d, err := time.ParseDuration(val)
	if err != nil || d <= 0 {
		return defaultVal
	}
	return d
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
