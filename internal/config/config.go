package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration loaded from environment.
type Config struct {
	Server ServerConfig
	DB     DBConfig
	Redis  RedisConfig
	JWT    JWTConfig
	Email  EmailConfig
	Runner RunnerConfig
}

// ServerConfig holds HTTP server settings. AllowedOrigins lists the
// browser origins the API answers CORS requests for.
type ServerConfig struct {
	Addr           string
	Mode           string // gin mode: debug, release, test
	AllowedOrigins []string
}

// DBConfig holds the database DSN.
type DBConfig struct {
	DSN string
}

// RedisConfig holds the optional Redis address for cross-instance
// chat fan-out. Empty means single-instance mode, no Redis.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// JWTConfig holds token signing settings. OTPPepper salts OTP hashes
// before storage.
type JWTConfig struct {
	Secret    string
	TTL       time.Duration
	OTPPepper string
}

// EmailConfig holds SMTP settings for the notification boundary.
type EmailConfig struct {
	FromAddress string
	FromName    string
	SMTPHost    string
	SMTPPort    int
	SMTPUser    string
	SMTPPass    string
}

// RunnerConfig holds ad-run executor settings.
type RunnerConfig struct {
	CronSpec     string
	ReminderCron string
	MaxRetries   int
}

// Load reads .env (if present) and builds the Config from environment
// variables. DATABASE_URL and JWT_SECRET are required.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Addr:           getEnv("SERVER_ADDR", ":8080"),
			Mode:           getEnv("GIN_MODE", "debug"),
			AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")),
		},
		DB: DBConfig{
			DSN: os.Getenv("DATABASE_URL"),
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret:    os.Getenv("JWT_SECRET"),
			TTL:       getEnvDuration("JWT_TTL", 24*time.Hour),
			OTPPepper: getEnv("OTP_PEPPER", "evorgs-otp"),
		},
		Email: EmailConfig{
			FromAddress: getEnv("EMAIL_FROM", "no-reply@evorgs.local"),
			FromName:    getEnv("EMAIL_FROM_NAME", "EvOrgs"),
			SMTPHost:    os.Getenv("SMTP_HOST"),
			SMTPPort:    getEnvInt("SMTP_PORT", 587),
			SMTPUser:    os.Getenv("SMTP_USER"),
			SMTPPass:    os.Getenv("SMTP_PASS"),
		},
		Runner: RunnerConfig{
			CronSpec:     getEnv("RUNNER_CRON", "* * * * *"),
			ReminderCron: getEnv("REMINDER_CRON", "0 9 * * *"),
			MaxRetries:   getEnvInt("RUNNER_MAX_RETRIES", 3),
		},
	}

	if cfg.DB.DSN == "" {
		return nil, fmt.Errorf("DATABASE_URL is empty")
	}
	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is empty")
	}
	return cfg, nil
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
