package config

import (
	"fmt"
	"os"
	"strings"
)

type Config struct {
	Port         string
	DBHost       string
	DBPort       string
	DBUser       string
	DBPassword   string
	DBName       string
	DBSSLMode    string
	RedisAddr    string
	KafkaBrokers []string
	AutoMigrate  bool
	GinMode      string
}

func Load() *Config {
	return &Config{
		Port:         getEnv("PORT", "8080"),
		DBHost:       getEnv("DB_HOST", "localhost"),
		DBPort:       getEnv("DB_PORT", "5432"),
		DBUser:       getEnv("DB_USER", "remitroute"),
		DBPassword:   getEnv("DB_PASSWORD", "remitroute_secret"),
		DBName:       getEnv("DB_NAME", "remitroute"),
		DBSSLMode:    getEnv("DB_SSLMODE", "disable"),
		RedisAddr:    getEnv("REDIS_ADDR", ""),
		KafkaBrokers: splitEnv("KAFKA_BROKERS"),
		AutoMigrate:  getEnv("AUTO_MIGRATE", "false") == "true",
		GinMode:      getEnv("GIN_MODE", "debug"),
	}
}

func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func splitEnv(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(value, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
