package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config содержит всю конфигурацию приложения
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Security SecurityConfig
	Engine   EngineConfig
	Logging  LoggingConfig
}

// ServerConfig - настройки HTTP сервера
type ServerConfig struct {
	Port     int
	Host     string
	UseHTTPS bool
	CertFile string
	KeyFile  string
}

// DatabaseConfig - настройки подключения к БД
type DatabaseConfig struct {
	Driver   string
	Host     string
	Port     int
	Name     string
	User     string
	Password string
	SSLMode  string

	// Retry логика для подключения при старте
	MaxRetries   int
	RetryBackoff time.Duration
}

// SecurityConfig - настройки безопасности
type SecurityConfig struct {
	// Bcrypt-хеш API ключа для защищенных endpoints.
	// Пустая строка отключает проверку (только для development).
	APIKeyHash string

	// Лимит запросов в секунду на клиента (0 = без лимита)
	RateLimitPerSecond int
}

// EngineConfig - настройки аналитического движка
type EngineConfig struct {
	// Parallel включает параллельный запуск детекторов
	Parallel bool

	// MaxInsights ограничивает размер финального списка инсайтов
	MaxInsights int
}

// LoggingConfig - настройки логирования
type LoggingConfig struct {
	Level  string
	Format string
}

// Load загружает конфигурацию из переменных окружения
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:     getEnvAsInt("SERVER_PORT", 8080),
			Host:     getEnv("SERVER_HOST", "0.0.0.0"),
			UseHTTPS: getEnvAsBool("USE_HTTPS", false),
			CertFile: getEnv("CERT_FILE", ""),
			KeyFile:  getEnv("KEY_FILE", ""),
		},
		Database: DatabaseConfig{
			Driver:   getEnv("DB_DRIVER", "postgres"),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			Name:     getEnv("DB_NAME", "tradeinsight"),
			User:     getEnv("DB_USER", "user"),
			Password: getEnv("DB_PASSWORD", "password"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),

			MaxRetries:   getEnvAsInt("DB_MAX_RETRIES", 4),
			RetryBackoff: getEnvAsDuration("DB_RETRY_BACKOFF", 500*time.Millisecond),
		},
		Security: SecurityConfig{
			APIKeyHash:         getEnv("API_KEY_HASH", ""),
			RateLimitPerSecond: getEnvAsInt("RATE_LIMIT_PER_SECOND", 20),
		},
		Engine: EngineConfig{
			Parallel:    getEnvAsBool("ENGINE_PARALLEL", true),
			MaxInsights: getEnvAsInt("ENGINE_MAX_INSIGHTS", 20),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	if err := cfg.validateRanges(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validateRanges проверяет числовые диапазоны параметров
func (c *Config) validateRanges() error {
	// Валидация портов
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}

	if c.Database.Port < 1 || c.Database.Port > 65535 {
		return fmt.Errorf("DB_PORT must be between 1 and 65535, got %d", c.Database.Port)
	}

	// Валидация retry параметров
	if c.Database.MaxRetries < 0 {
		return fmt.Errorf("DB_MAX_RETRIES cannot be negative, got %d", c.Database.MaxRetries)
	}

	if c.Database.MaxRetries > 10 {
		return fmt.Errorf("DB_MAX_RETRIES should not exceed 10, got %d", c.Database.MaxRetries)
	}

	if c.Database.RetryBackoff <= 0 {
		return fmt.Errorf("DB_RETRY_BACKOFF must be positive, got %v", c.Database.RetryBackoff)
	}

	// Валидация лимитов движка
	if c.Engine.MaxInsights < 1 {
		return fmt.Errorf("ENGINE_MAX_INSIGHTS must be at least 1, got %d", c.Engine.MaxInsights)
	}

	if c.Security.RateLimitPerSecond < 0 {
		return fmt.Errorf("RATE_LIMIT_PER_SECOND cannot be negative, got %d", c.Security.RateLimitPerSecond)
	}

	return nil
}

// DSN возвращает строку подключения к базе данных
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

// DSNWithoutPassword возвращает строку подключения без пароля (для логирования)
func (d DatabaseConfig) DSNWithoutPassword() string {
	return fmt.Sprintf("host=%s port=%d user=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Name, d.SSLMode)
}

// Вспомогательные функции для чтения переменных окружения

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
