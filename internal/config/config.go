package config

import (
	"fmt"
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

type Config struct {
	TelegramToken string `env:"TELEGRAM_TOKEN,required,notEmpty"`
	Environment   string `env:"ENV" envDefault:"development"`

	StorageDriver string `env:"STORAGE_DRIVER" envDefault:"postgres"`
	DBDSN         string `env:"DB_DSN"`

	// Telegram ID администраторов через запятую
	AdminIDs []int64 `env:"ADMIN_IDS" envSeparator:","`

	GoogleCredentialsFile string `env:"GOOGLE_CREDENTIALS_FILE" envDefault:"credentials.json"`
	SpreadsheetID         string `env:"GOOGLE_SPREADSHEET_ID"`

	NotifyTimeout  time.Duration `env:"NOTIFY_TIMEOUT" envDefault:"10s"`
	SessionTTL     time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	ExportInterval time.Duration `env:"EXPORT_INTERVAL" envDefault:"0s"` // 0 - без автоматической выгрузки
}

// Load читает .env (если есть) и переменные окружения
func Load() (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found, using environment variables")
	} else {
		log.Println("✅ Loaded configuration from .env file")
	}

	return Parse()
}

// Parse разбирает конфигурацию только из переменных окружения
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate проверяет согласованность настроек
func (c *Config) Validate() error {
	switch c.StorageDriver {
	case StoragePostgres:
		if c.DBDSN == "" {
			return fmt.Errorf("DB_DSN is required but not set")
		}
	case StorageMemory:
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver)
	}

	if c.NotifyTimeout <= 0 {
		return fmt.Errorf("NOTIFY_TIMEOUT must be positive")
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}
	if c.ExportInterval < 0 {
		return fmt.Errorf("EXPORT_INTERVAL must not be negative")
	}
	return nil
}

// ExportEnabled сообщает, задана ли таблица для выгрузки
func (c *Config) ExportEnabled() bool {
	return c.SpreadsheetID != ""
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
