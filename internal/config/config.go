package config

import (
	"context"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Env  string
	Port int

	DBURL string

	// JWTPrivateKey signs every issued token. An empty value is a fatal
	// startup condition, enforced in main.
	JWTPrivateKey string
	TokenTTL      time.Duration

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	RateLimitEnabled bool
	RateLimitMax     int
	RateLimitWindow  time.Duration

	AllowedOrigins []string
	MaxBodyBytes   int64

	OTLPEndpoint string

	AdminName     string
	AdminEmail    string
	AdminPassword string
}

func Load() Config {
	return Config{
		Env:   getEnv("APP_ENV", "dev"),
		Port:  getEnvInt("PORT", 3000),
		DBURL: buildDBURL(),

		JWTPrivateKey: getEnv("JWT_PRIVATE_KEY", ""),
		TokenTTL:      getEnvDuration("TOKEN_TTL", 24*time.Hour),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		// disabled unless explicitly switched on
		RateLimitEnabled: getEnvBool("RATE_LIMIT_ENABLED", false),
		RateLimitMax:     getEnvInt("RATE_LIMIT_MAX", 60),
		RateLimitWindow:  getEnvDuration("RATE_LIMIT_WINDOW", time.Minute),

		AllowedOrigins: splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "")),
		MaxBodyBytes:   int64(getEnvInt("MAX_BODY_BYTES", 1<<20)),

		OTLPEndpoint: getEnv("OTLP_ENDPOINT", ""),

		AdminName:     getEnv("ADMIN_NAME", "admin"),
		AdminEmail:    getEnv("ADMIN_EMAIL", ""),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),
	}
}

func buildDBURL() string {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}

	host := getEnv("DB_HOST", "127.0.0.1")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "eventsapi")
	pass := getEnv("DB_PASSWORD", "eventsapi")
	name := getEnv("DB_NAME", "eventsapi")
	ssl := getEnv("DB_SSLMODE", "disable")

	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=" + ssl
}

func WithTimeout(duration time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), duration)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		num, err := strconv.Atoi(v)

		if err == nil {
			return num
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)

		if err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)

		if err == nil {
			return d
		}
	}
	return fallback
}

func splitCSV(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))

	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}

	return out
}
