package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port   string
	AppEnv string

	DBHost       string
	DBUser       string
	DBPassword   string
	DBName       string
	DBPort       string
	DBSSLMode    string
	DBMaxRetries int

	RedisAddr   string
	KafkaBroker string
	JWTSecret   string

	OutboxPollInterval    time.Duration
	NotificationInboxSize int

	Leave LeavePolicy
}

// LeavePolicy carries the configurable parts of the leave workflow.
type LeavePolicy struct {
	AllowCancelApproved bool
	DeletableStatuses   []string
}

var allowedDeletable = map[string]bool{
	"pending":   true,
	"rejected":  true,
	"cancelled": true,
}

func Load() (Config, error) {
	cfg := Config{
		Port:        getEnv("PORT", "3000"),
		AppEnv:      getEnv("APP_ENV", "development"),
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBUser:      getEnv("DB_USER", "postgres"),
		DBPassword:  os.Getenv("DB_PASSWORD"),
		DBName:      getEnv("DB_NAME", "employee_portal"),
		DBPort:      getEnv("DB_PORT", "5432"),
		DBSSLMode:   getEnv("DB_SSLMODE", "disable"),
		RedisAddr:   getEnv("REDIS_ADDR", "localhost:6379"),
		KafkaBroker: os.Getenv("KAFKA_BROKER"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}

	var err error
	if cfg.DBMaxRetries, err = getEnvInt("DB_MAX_RETRIES", 5); err != nil {
		return Config{}, err
	}
	if cfg.NotificationInboxSize, err = getEnvInt("NOTIFICATION_INBOX_SIZE", 50); err != nil {
		return Config{}, err
	}
	if cfg.OutboxPollInterval, err = getEnvDuration("OUTBOX_POLL_INTERVAL", 3*time.Second); err != nil {
		return Config{}, err
	}

	if cfg.Leave.AllowCancelApproved, err = getEnvBool("LEAVE_ALLOW_CANCEL_APPROVED", false); err != nil {
		return Config{}, err
	}
	cfg.Leave.DeletableStatuses, err = parseDeletable(getEnv("LEAVE_DELETABLE_STATUSES", "pending"))
	if err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func parseDeletable(raw string) ([]string, error) {
	var statuses []string
	for _, part := range strings.Split(raw, ",") {
		s := strings.ToLower(strings.TrimSpace(part))
		if s == "" {
			continue
		}
		if !allowedDeletable[s] {
			return nil, fmt.Errorf("LEAVE_DELETABLE_STATUSES: status %q cannot be deletable", s)
		}
		statuses = append(statuses, s)
	}
	if len(statuses) == 0 {
		return nil, fmt.Errorf("LEAVE_DELETABLE_STATUSES must name at least one status")
	}
	return statuses, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func getEnvBool(key string, defaultValue bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
