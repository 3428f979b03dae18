// Package config содержит логику чтения конфигурации сервиса расчёта комиссионных.
package config

import (
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	defaultRunAddress = "localhost:8080"
	defaultSessionTTL = 12 * time.Hour
	defaultLogLevel   = "info"
)

// Config содержит параметры конфигурации сервиса расчёта комиссионных.
type Config struct {
	RunAddress    string        `env:"RUN_ADDRESS"`
	SessionSecret string        `env:"SESSION_SECRET"`
	SessionTTL    time.Duration `env:"SESSION_TTL"`
	LogLevel      string        `env:"LOG_LEVEL"`
}

// Parse считывает конфигурацию из файла .env (если он есть), флагов командной строки
// и переменных окружения. Переменные окружения имеют приоритет над флагами.
func Parse() (*Config, error) {
	// Отсутствие .env не ошибка: конфигурация может целиком прийти из окружения.
	_ = godotenv.Load()

	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	envRunAddress := cfg.RunAddress
	envSessionSecret := cfg.SessionSecret
	envSessionTTL := cfg.SessionTTL
	envLogLevel := cfg.LogLevel

	flag.StringVar(&cfg.RunAddress, "a", defaultRunAddress, "address and port for HTTP server")
	flag.StringVar(&cfg.SessionSecret, "s", "", "secret for signing session cookies")
	flag.DurationVar(&cfg.SessionTTL, "t", defaultSessionTTL, "idle lifetime of a session and its records")
	flag.StringVar(&cfg.LogLevel, "l", defaultLogLevel, "log level")

	flag.Parse()

	if envRunAddress != "" {
		cfg.RunAddress = envRunAddress
	}
	if envSessionSecret != "" {
		cfg.SessionSecret = envSessionSecret
	}
	if envSessionTTL != 0 {
		cfg.SessionTTL = envSessionTTL
	}
	if envLogLevel != "" {
		cfg.LogLevel = envLogLevel
	}

	if cfg.RunAddress == "" {
		cfg.RunAddress = defaultRunAddress
	}
	if cfg.SessionTTL <= 0 {
		return nil, fmt.Errorf("session ttl must be positive, got %s", cfg.SessionTTL)
	}

	return cfg, nil
}
