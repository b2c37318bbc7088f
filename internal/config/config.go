package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config - структура для хранения конфигурации приложения
type Config struct {
	// Пустой DATABASE_URL включает хранилище в памяти
	DatabaseURL string `env:"DATABASE_URL"`
	DBMaxConns  int    `env:"DB_MAX_CONNS" envDefault:"10"`
	HTTPPort    string `env:"HTTP_PORT" envDefault:"8080"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat   string `env:"LOG_FORMAT" envDefault:"json"`

	// Redis Config. Пустой REDIS_ADDR отключает кеш и вебхуки
	RedisAddr        string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass        string        `env:"REDIS_PASSWORD"`
	RedisDB          int           `env:"REDIS_DB" envDefault:"0"`
	IncidentCacheTTL time.Duration `env:"INCIDENT_CACHE_TTL" envDefault:"5m"`

	// Webhook Config
	WebhookURL        string        `env:"WEBHOOK_URL"`
	WebhookSecret     string        `env:"WEBHOOK_SECRET"`
	WebhookTimeout    time.Duration `env:"WEBHOOK_TIMEOUT" envDefault:"5s"`
	WebhookMaxRetries int           `env:"WEBHOOK_MAX_RETRIES" envDefault:"3"`
	WebhookBaseDelay  time.Duration `env:"WEBHOOK_BASE_DELAY" envDefault:"1s"`

	// Presence / Help Config
	PresenceTTL    time.Duration `env:"PRESENCE_TTL" envDefault:"5m"`
	HelpRequestTTL time.Duration `env:"HELP_REQUEST_TTL" envDefault:"15m"`
	FuzzDegrees    float64       `env:"FUZZ_DEGREES" envDefault:"0.002"`

	// ENFORCE_OFFER_OWNERSHIP=false возвращает поведение без проверки автора ответа
	EnforceOfferOwnership bool `env:"ENFORCE_OFFER_OWNERSHIP" envDefault:"true"`
	// EXCLUSIVE_ACCEPT=true отклоняет остальные ожидающие предложения при принятии одного
	ExclusiveAccept bool `env:"EXCLUSIVE_ACCEPT" envDefault:"false"`

	// Risk Config
	RiskRadiusKm      float64 `env:"RISK_RADIUS_KM" envDefault:"2"`
	RiskIncidentLimit int     `env:"RISK_INCIDENT_LIMIT" envDefault:"100"`
	RiskTimezone      string  `env:"RISK_TIMEZONE" envDefault:"Local"`
	RiskDatasetPath   string  `env:"RISK_DATASET_PATH"`

	// Sentry Config
	SentryDSN         string `env:"SENTRY_DSN"`
	SentryEnvironment string `env:"SENTRY_ENVIRONMENT" envDefault:"development"`

	// API Keys for authentication
	APIKeys []string `env:"API_KEYS"`
}

// LoadConfig загружает конфигурацию из переменных окружения и .env файла
func LoadConfig() (*Config, error) {
	// Загрузка переменных окружения из .env файла (если есть)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("ошибка загрузки файла .env: %w", err)
	}

	cfg := &Config{
		DatabaseURL:           os.Getenv("DATABASE_URL"),
		DBMaxConns:            getEnvAsInt("DB_MAX_CONNS", 10),
		HTTPPort:              getEnv("HTTP_PORT", "8080"),
		LogLevel:              getEnv("LOG_LEVEL", "info"),
		LogFormat:             getEnv("LOG_FORMAT", "json"),
		RedisAddr:             getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass:             os.Getenv("REDIS_PASSWORD"),
		RedisDB:               getEnvAsInt("REDIS_DB", 0),
		IncidentCacheTTL:      getEnvAsDuration("INCIDENT_CACHE_TTL", 5*time.Minute),
		WebhookURL:            os.Getenv("WEBHOOK_URL"),
		WebhookSecret:         os.Getenv("WEBHOOK_SECRET"),
		WebhookTimeout:        getEnvAsDuration("WEBHOOK_TIMEOUT", 5*time.Second),
		WebhookMaxRetries:     getEnvAsInt("WEBHOOK_MAX_RETRIES", 3),
		WebhookBaseDelay:      getEnvAsDuration("WEBHOOK_BASE_DELAY", time.Second),
		PresenceTTL:           getEnvAsDuration("PRESENCE_TTL", 5*time.Minute),
		HelpRequestTTL:        getEnvAsDuration("HELP_REQUEST_TTL", 15*time.Minute),
		FuzzDegrees:           getEnvAsFloat("FUZZ_DEGREES", 0.002),
		EnforceOfferOwnership: getEnvAsBool("ENFORCE_OFFER_OWNERSHIP", true),
		ExclusiveAccept:       getEnvAsBool("EXCLUSIVE_ACCEPT", false),
		RiskRadiusKm:          getEnvAsFloat("RISK_RADIUS_KM", 2),
		RiskIncidentLimit:     getEnvAsInt("RISK_INCIDENT_LIMIT", 100),
		RiskTimezone:          getEnv("RISK_TIMEZONE", "Local"),
		RiskDatasetPath:       os.Getenv("RISK_DATASET_PATH"),
		SentryDSN:             os.Getenv("SENTRY_DSN"),
		SentryEnvironment:     getEnv("SENTRY_ENVIRONMENT", "development"),
	}

	// Загрузка API ключей
	apiKeysStr := os.Getenv("API_KEYS")
	if apiKeysStr != "" {
		cfg.APIKeys = strings.Split(apiKeysStr, ",")
		for i, key := range cfg.APIKeys {
			cfg.APIKeys[i] = strings.TrimSpace(key)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate проверяет значения, без которых сервис работать не может
func (c *Config) Validate() error {
	if c.PresenceTTL <= 0 {
		return fmt.Errorf("PRESENCE_TTL must be positive")
	}
	if c.HelpRequestTTL <= 0 {
		return fmt.Errorf("HELP_REQUEST_TTL must be positive")
	}
	if c.FuzzDegrees <= 0 {
		return fmt.Errorf("FUZZ_DEGREES must be positive")
	}
	if c.RiskRadiusKm <= 0 {
		return fmt.Errorf("RISK_RADIUS_KM must be positive")
	}
	if c.RiskIncidentLimit < 1 || c.RiskIncidentLimit > 500 {
		return fmt.Errorf("RISK_INCIDENT_LIMIT must be between 1 and 500")
	}
	if _, err := time.LoadLocation(c.RiskTimezone); err != nil {
		return fmt.Errorf("RISK_TIMEZONE: %w", err)
	}
	return nil
}

// Location возвращает часовой пояс для оценки времени суток инцидентов
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.RiskTimezone)
	if err != nil {
		return time.Local
	}
	return loc
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

// getEnvAsBool возвращает значение переменной окружения как bool или значение по умолчанию
func getEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
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
