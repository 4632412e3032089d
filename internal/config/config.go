package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config - структура для хранения конфигурации приложения
type Config struct {
	DatabaseURL string `env:"DATABASE_URL"`
	HTTPPort    string `env:"HTTP_PORT" envDefault:"8080"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// Redis Config
	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass string `env:"REDIS_PASSWORD"`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	// SOS transport
	SOSEndpointURL string        `env:"SOS_ENDPOINT_URL"`
	SOSTimeout     time.Duration `env:"SOS_TIMEOUT" envDefault:"10s"`
	SOSInFlightTTL time.Duration `env:"SOS_INFLIGHT_TTL" envDefault:"30s"`

	// Webhook Config (события для клиентского приложения)
	PresentationWebhookURL string        `env:"PRESENTATION_WEBHOOK_URL"`
	WebhookSecret          string        `env:"WEBHOOK_SECRET"`
	WebhookTimeout         time.Duration `env:"WEBHOOK_TIMEOUT" envDefault:"5s"`
	WebhookMaxRetries      int           `env:"WEBHOOK_MAX_RETRIES" envDefault:"3"`
	WebhookBaseDelay       time.Duration `env:"WEBHOOK_BASE_DELAY" envDefault:"1s"`

	// API Keys for authentication
	APIKeys []string `env:"API_KEYS"`

	Monitor MonitorConfig
}

// MonitorConfig - пороги и интервалы движка мониторинга
type MonitorConfig struct {
	MovementThresholdMeters     float64 `yaml:"movementThresholdMeters"`
	IdleTimeoutSeconds          int     `yaml:"idleTimeoutSeconds"`
	IdleCheckIntervalSeconds    int     `yaml:"idleCheckIntervalSeconds"`
	ConfirmationGraceSeconds    int     `yaml:"confirmationGraceSeconds"`
	DistressEscalationThreshold float64 `yaml:"distressEscalationThreshold"`
}

// DefaultMonitorConfig возвращает значения по умолчанию
func DefaultMonitorConfig() MonitorConfig {
	return MonitorConfig{
		MovementThresholdMeters:     10,
		IdleTimeoutSeconds:          120,
		IdleCheckIntervalSeconds:    10,
		ConfirmationGraceSeconds:    5,
		DistressEscalationThreshold: 0.8,
	}
}

func (m MonitorConfig) IdleTimeout() time.Duration {
	return time.Duration(m.IdleTimeoutSeconds) * time.Second
}

func (m MonitorConfig) IdleCheckInterval() time.Duration {
	return time.Duration(m.IdleCheckIntervalSeconds) * time.Second
}

func (m MonitorConfig) ConfirmationGrace() time.Duration {
	return time.Duration(m.ConfirmationGraceSeconds) * time.Second
}

// Validate проверяет, что пороги имеют смысл
func (m MonitorConfig) Validate() error {
	if m.MovementThresholdMeters <= 0 {
		return fmt.Errorf("movementThresholdMeters must be positive, got %v", m.MovementThresholdMeters)
	}
	if m.IdleTimeoutSeconds <= 0 {
		return fmt.Errorf("idleTimeoutSeconds must be positive, got %d", m.IdleTimeoutSeconds)
	}
	if m.IdleCheckIntervalSeconds <= 0 {
		return fmt.Errorf("idleCheckIntervalSeconds must be positive, got %d", m.IdleCheckIntervalSeconds)
	}
	if m.ConfirmationGraceSeconds <= 0 {
		return fmt.Errorf("confirmationGraceSeconds must be positive, got %d", m.ConfirmationGraceSeconds)
	}
	if m.DistressEscalationThreshold <= 0 || m.DistressEscalationThreshold > 1 {
		return fmt.Errorf("distressEscalationThreshold must be in (0, 1], got %v", m.DistressEscalationThreshold)
	}
	return nil
}

// LoadConfig загружает конфигурацию из переменных окружения и .env файла
func LoadConfig() (*Config, error) {
	// Загрузка переменных окружения из .env файла (если есть)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("ошибка загрузки файла .env: %w", err)
	}

	cfg := &Config{
		DatabaseURL:            os.Getenv("DATABASE_URL"),
		HTTPPort:               getEnv("HTTP_PORT", "8080"),
		LogLevel:               getEnv("LOG_LEVEL", "info"),
		RedisAddr:              getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass:              os.Getenv("REDIS_PASSWORD"),
		RedisDB:                getEnvAsInt("REDIS_DB", 0),
		SOSEndpointURL:         os.Getenv("SOS_ENDPOINT_URL"),
		SOSTimeout:             getEnvAsDuration("SOS_TIMEOUT", 10*time.Second),
		SOSInFlightTTL:         getEnvAsDuration("SOS_INFLIGHT_TTL", 30*time.Second),
		PresentationWebhookURL: os.Getenv("PRESENTATION_WEBHOOK_URL"),
		WebhookSecret:          os.Getenv("WEBHOOK_SECRET"),
		WebhookTimeout:         getEnvAsDuration("WEBHOOK_TIMEOUT", 5*time.Second),
		WebhookMaxRetries:      getEnvAsInt("WEBHOOK_MAX_RETRIES", 3),
		WebhookBaseDelay:       getEnvAsDuration("WEBHOOK_BASE_DELAY", time.Second),
	}

	// Загрузка API ключей
	apiKeysStr := os.Getenv("API_KEYS")
	if apiKeysStr != "" {
		cfg.APIKeys = strings.Split(apiKeysStr, ",")
		for i, key := range cfg.APIKeys {
			cfg.APIKeys[i] = strings.TrimSpace(key)
		}
	}

	monitorCfg, err := LoadMonitorConfig(os.Getenv("MONITOR_CONFIG_FILE"))
	if err != nil {
		return nil, err
	}
	cfg.Monitor = monitorCfg

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	return cfg, nil
}

// LoadMonitorConfig собирает настройки монитора: значения по умолчанию,
// затем YAML файл (если путь задан), затем переменные окружения
func LoadMonitorConfig(path string) (MonitorConfig, error) {
	mc := DefaultMonitorConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return mc, fmt.Errorf("failed to read monitor config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &mc); err != nil {
			return mc, fmt.Errorf("failed to parse monitor config %s: %w", path, err)
		}
	}

	mc.MovementThresholdMeters = getEnvAsFloat("MOVEMENT_THRESHOLD_METERS", mc.MovementThresholdMeters)
	mc.IdleTimeoutSeconds = getEnvAsInt("IDLE_TIMEOUT_SECONDS", mc.IdleTimeoutSeconds)
	mc.IdleCheckIntervalSeconds = getEnvAsInt("IDLE_CHECK_INTERVAL_SECONDS", mc.IdleCheckIntervalSeconds)
	mc.ConfirmationGraceSeconds = getEnvAsInt("CONFIRMATION_GRACE_SECONDS", mc.ConfirmationGraceSeconds)
	mc.DistressEscalationThreshold = getEnvAsFloat("DISTRESS_ESCALATION_THRESHOLD", mc.DistressEscalationThreshold)

	if err := mc.Validate(); err != nil {
		return mc, fmt.Errorf("invalid monitor config: %w", err)
	}
	return mc, nil
}

// getEnv возвращает значение переменной окружения или значение по умолчанию
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt возвращает значение переменной окружения как int или значение по умолчанию
func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsFloat возвращает значение переменной окружения как float64 или значение по умолчанию
func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// getEnvAsDuration возвращает значение переменной окружения как time.Duration или значение по умолчанию
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if durationValue, err := time.ParseDuration(value); err == nil {
			return durationValue
		}
	}
	return defaultValue
}
