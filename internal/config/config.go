package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/hrishav2004/Gamified-CS-Fundamentals/internal/logger"
)

type Config struct {
	Addr                string
	DBPath              string
	LogLevel            string
	JWTSecret           string
	JWTTTL              time.Duration
	AdminSecretKey      string
	RedisAddr           string
	RedisPassword       string
	RedisDB             int
	LeaderboardCacheTTL time.Duration
	QuizCacheTTL        time.Duration
	WorkerCount         int
	QueueSize           int
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:                envOr("ADDR", ":5000"),
		DBPath:              envOr("DB_PATH", "file:quiz.db"),
		LogLevel:            envOr("LOG_LEVEL", "INFO"),
		JWTSecret:           envOr("JWT_SECRET", ""),
		JWTTTL:              envDurationOr("JWT_TTL", 7*24*time.Hour),
		AdminSecretKey:      envOr("ADMIN_SECRET_KEY", ""),
		RedisAddr:           envOr("REDIS_ADDR", ""),
		RedisPassword:       envOr("REDIS_PASSWORD", ""),
		RedisDB:             envIntOr("REDIS_DB", 0),
		LeaderboardCacheTTL: envDurationOr("LEADERBOARD_CACHE_TTL", time.Minute),
		QuizCacheTTL:        envDurationOr("QUIZ_CACHE_TTL", 10*time.Minute),
		WorkerCount:         envIntOr("WORKER_COUNT", 2),
		QueueSize:           envIntOr("QUEUE_SIZE", 64),
	}
}

// Validate checks that the configuration can start a server.
func (c Config) Validate() error {
	var problems []string
	if strings.TrimSpace(c.Addr) == "" {
		problems = append(problems, "ADDR cannot be empty")
	}
	if strings.TrimSpace(c.DBPath) == "" {
		problems = append(problems, "DB_PATH cannot be empty")
	}
	if !logger.ValidLevel(c.LogLevel) {
		problems = append(problems, fmt.Sprintf("LOG_LEVEL %q is not one of DEBUG, INFO, WARN, ERROR", c.LogLevel))
	}
	if len(c.JWTSecret) < 16 {
		problems = append(problems, "JWT_SECRET must be at least 16 characters")
	}
	if c.JWTTTL <= 0 {
		problems = append(problems, "JWT_TTL must be positive")
	}
	if c.AdminSecretKey == "" {
		problems = append(problems, "ADMIN_SECRET_KEY cannot be empty")
	}
	if c.RedisDB < 0 {
		problems = append(problems, "REDIS_DB cannot be negative")
	}
	if c.WorkerCount <= 0 {
		problems = append(problems, "WORKER_COUNT must be positive")
	}
	if c.QueueSize <= 0 {
		problems = append(problems, "QUEUE_SIZE must be positive")
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}

func envDurationOr(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		log.Printf("invalid value for %s=%q, using default %s", key, v, def)
	}
	return def
}
