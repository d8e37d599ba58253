package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
)

// APIConfig настройки подключения к backend маркетплейса
type APIConfig struct {
	BaseURL string `toml:"base_url"`
	Timeout int    `toml:"timeout"` // секунды
}

// StorageConfig настройки локального хранилища
type StorageConfig struct {
	File string `toml:"file"`
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки метрик.
// Когда Enabled и Addr заданы, в интерактивном режиме поднимается
// отладочный HTTP listener с prometheus-метриками.
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
	Addr        string `toml:"addr"`
	Path        string `toml:"path"`
}

// Config конфигурация клиента
type Config struct {
	API     APIConfig     `toml:"api"`
	Storage StorageConfig `toml:"storage"`
	Logs    LogsConfig    `toml:"logs"`
	Metrics MetricsConfig `toml:"metrics"`
}

// Load читает конфигурацию из TOML-файла и применяет переопределения
// из переменных окружения. Отсутствующий файл не ошибка: остаются
// значения по умолчанию.
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to decode config %s: %w", path, err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: "http://127.0.0.1:8000/api/v1",
			Timeout: 10,
		},
		Storage: StorageConfig{
			File: "booking_data.json",
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			ServiceName: "ql-booking-client",
			Path:        "/metrics",
		},
	}
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("QL_API_BASE_URL"); v != "" {
		cfg.API.BaseURL = v
	}
	if v := os.Getenv("QL_API_TIMEOUT"); v != "" {
		if timeout, err := strconv.Atoi(v); err == nil {
			cfg.API.Timeout = timeout
		}
	}
	if v := os.Getenv("QL_STORAGE_FILE"); v != "" {
		cfg.Storage.File = v
	}
	if v := os.Getenv("QL_LOG_FILE"); v != "" {
		cfg.Logs.File = v
	}
	if v := os.Getenv("QL_LOG_LEVEL"); v != "" {
		cfg.Logs.Level = v
	}
	if v := os.Getenv("QL_METRICS_ADDR"); v != "" {
		cfg.Metrics.Enabled = true
		cfg.Metrics.Addr = v
	}
}

func (c *Config) validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("config: api.base_url is required")
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("config: api.timeout must be positive")
	}
	if c.Storage.File == "" {
		return fmt.Errorf("config: storage.file is required")
	}
	if c.Metrics.Enabled && c.Metrics.Addr == "" {
		return fmt.Errorf("config: metrics.addr is required when metrics are enabled")
	}
	return nil
}
