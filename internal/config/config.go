package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int
	ServiceName string
	Version     string
	LogLevel    string
	LogFormat   string
	LogDir      string
	Environment string
	DBUser      string
	DBPassword  string
	DBHost      string
	DBPort      string
	DBName      string
	APIKey      string // API key for authentication

	// TrustedProxies are source IPs whose X-Forwarded-For headers are honored
	TrustedProxies []string

	// Database pool tuning
	DBMaxConns        int
	DBMaxConnIdleTime time.Duration
	DBMaxConnLifetime time.Duration

	// Reasoning service (AI backend used for generation and evaluation)
	ReasoningBaseURL string
	ReasoningAPIKey  string
	ReasoningModel   string
	ReasoningTimeout time.Duration

	// Battle tuning
	BattleTimeLimit  time.Duration
	CleanupInterval  time.Duration
	ProfileCacheSize int

	// Notifications
	NotifyFrom     string
	SMTPHost       string
	SMTPPort       string
	SMTPUser       string
	SMTPPassword   string
	DeadLetterPath string
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		ServiceName: getEnv("SERVICE_NAME", "bossquest"),
		Version:     getEnv("VERSION", "dev"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "text"),
		LogDir:      getEnv("LOG_DIR", "logs"),
		Environment: getEnv("ENVIRONMENT", "dev"),
		DBUser:      getEnv("DB_USER", "postgres"),
		DBPassword:  getEnv("DB_PASSWORD", "postgres"),
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBPort:      getEnv("DB_PORT", "5432"),
		DBName:      getEnv("DB_NAME", "bossquest"),
		APIKey:      getEnv("API_KEY", ""),

		TrustedProxies: splitList(getEnv("TRUSTED_PROXIES", "")),

		DBMaxConns:        getEnvAsInt("DB_MAX_CONNS", 20),
		DBMaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", 5*time.Minute),
		DBMaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", 30*time.Minute),

		ReasoningBaseURL: getEnv("REASONING_BASE_URL", "https://text.pollinations.ai/openai"),
		ReasoningAPIKey:  getEnv("REASONING_API_KEY", ""),
		ReasoningModel:   getEnv("REASONING_MODEL", "openai"),
		ReasoningTimeout: getEnvAsDuration("REASONING_TIMEOUT", 60*time.Second),

		BattleTimeLimit:  getEnvAsDuration("BATTLE_TIME_LIMIT", 72*time.Hour),
		CleanupInterval:  getEnvAsDuration("CLEANUP_INTERVAL", time.Hour),
		ProfileCacheSize: getEnvAsInt("PROFILE_CACHE_SIZE", 512),

		NotifyFrom:     getEnv("NOTIFY_FROM", "bossquest@localhost"),
		SMTPHost:       getEnv("SMTP_HOST", ""),
		SMTPPort:       getEnv("SMTP_PORT", "587"),
		SMTPUser:       getEnv("SMTP_USER", ""),
		SMTPPassword:   getEnv("SMTP_PASSWORD", ""),
		DeadLetterPath: getEnv("DEAD_LETTER_PATH", "dead_letter_events.json"),
	}

	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	// Validate API key is set
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API_KEY environment variable must be set for security")
	}

	// Production requires the full env schema; elsewhere misconfiguration is a warning
	if cfg.Environment == "production" {
		if err := ValidateEnv(); err != nil {
			return nil, err
		}
	} else if warnings, err := ValidateEnvWithWarnings(); err == nil {
		for _, w := range warnings {
			slog.Warn("Configuration warning", "warning", w)
		}
	}

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an integer environment variable, falling back to the
// default on missing or unparseable values
func getEnvAsInt(key string, defaultValue int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

// getEnvAsDuration retrieves a duration environment variable, falling back to
// the default on missing or unparseable values
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}

// splitList splits a comma-separated env value into trimmed entries
func splitList(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
