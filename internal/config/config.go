package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Log        LoggingConfig    `yaml:"log"`
	Server     ServerConfig     `yaml:"server"`
	Metrics    MetricsConfig    `yaml:"metrics"`
	Calculator CalculatorConfig `yaml:"calculator"`
	Client     ClientConfig     `yaml:"client"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type ServerConfig struct {
	Address         string        `yaml:"address"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type MetricsConfig struct {
	Enabled *bool  `yaml:"enabled"`
	Path    string `yaml:"path"`
}

func (m MetricsConfig) EnabledValue() bool {
	return m.Enabled == nil || *m.Enabled
}

// CalculatorConfig holds input defaults and floors. Fee constants live in package calc.
type CalculatorConfig struct {
	MinTotalValueUSD     *float64 `yaml:"min_total_value_usd"`
	DefaultTotalValueUSD float64  `yaml:"default_total_value_usd"`
	DefaultMinPrice      float64  `yaml:"default_min_price"`
	DefaultMaxPrice      float64  `yaml:"default_max_price"`
}

func (c CalculatorConfig) MinTotalValue() float64 {
	if c.MinTotalValueUSD == nil {
		return defaultMinTotalValueUSD
	}
	return *c.MinTotalValueUSD
}

type ClientConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

const (
	defaultMinTotalValueUSD      = 100.0
	defaultTotalValueUSD         = 1000.0
	defaultMinPrice              = 0.0394
	defaultMaxPrice              = 0.0438
	defaultServerAddress         = "127.0.0.1:8080"
	defaultMetricsPath           = "/metrics"
	defaultClientTimeout         = 10 * time.Second
	defaultServerReadTimeout     = 5 * time.Second
	defaultServerWriteTimeout    = 10 * time.Second
	defaultServerShutdownTimeout = 5 * time.Second
)

func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	applyEnvOverrides(&cfg)
	return &cfg, validate(&cfg)
}

// Default returns a config for runs without a file. Env overrides still apply.
func Default() *Config {
	var cfg Config
	applyDefaults(&cfg)
	applyEnvOverrides(&cfg)
	return &cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.Server.Address == "" {
		cfg.Server.Address = defaultServerAddress
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = defaultServerReadTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = defaultServerWriteTimeout
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = defaultServerShutdownTimeout
	}
	if cfg.Metrics.Enabled == nil {
		enabled := true
		cfg.Metrics.Enabled = &enabled
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = defaultMetricsPath
	}
	if cfg.Calculator.MinTotalValueUSD == nil {
		floor := defaultMinTotalValueUSD
		cfg.Calculator.MinTotalValueUSD = &floor
	}
	if cfg.Calculator.DefaultTotalValueUSD == 0 {
		cfg.Calculator.DefaultTotalValueUSD = defaultTotalValueUSD
	}
	if cfg.Calculator.DefaultMinPrice == 0 && cfg.Calculator.DefaultMaxPrice == 0 {
		cfg.Calculator.DefaultMinPrice = defaultMinPrice
		cfg.Calculator.DefaultMaxPrice = defaultMaxPrice
	}
	if cfg.Client.Timeout == 0 {
		cfg.Client.Timeout = defaultClientTimeout
	}
}

func applyEnvOverrides(cfg *Config) {
	if level := strings.TrimSpace(os.Getenv("LPCALC_LOG_LEVEL")); level != "" {
		cfg.Log.Level = level
	}
	if addr := strings.TrimSpace(os.Getenv("LPCALC_SERVER_ADDRESS")); addr != "" {
		cfg.Server.Address = addr
	}
	if baseURL := strings.TrimSpace(os.Getenv("LPCALC_CLIENT_BASE_URL")); baseURL != "" {
		cfg.Client.BaseURL = baseURL
	}
}

func validate(cfg *Config) error {
	if cfg.Log.Format != "json" && cfg.Log.Format != "console" {
		return errors.New("log.format must be json or console")
	}
	if cfg.Server.Address == "" {
		return errors.New("server.address is required")
	}
	if cfg.Server.ReadTimeout < 0 || cfg.Server.WriteTimeout < 0 || cfg.Server.ShutdownTimeout < 0 {
		return errors.New("server timeouts must be >= 0")
	}
	if cfg.Metrics.EnabledValue() && !strings.HasPrefix(cfg.Metrics.Path, "/") {
		return errors.New("metrics.path must start with /")
	}
	if cfg.Calculator.MinTotalValue() < 0 {
		return errors.New("calculator.min_total_value_usd must be >= 0")
	}
	if cfg.Calculator.DefaultTotalValueUSD < cfg.Calculator.MinTotalValue() {
		return errors.New("calculator.default_total_value_usd is below calculator.min_total_value_usd")
	}
	if cfg.Calculator.DefaultMinPrice < 0 {
		return errors.New("calculator.default_min_price must be >= 0")
	}
	if cfg.Calculator.DefaultMaxPrice <= cfg.Calculator.DefaultMinPrice {
		return errors.New("calculator.default_max_price must be > calculator.default_min_price")
	}
	if cfg.Client.Timeout < 0 {
		return errors.New("client.timeout must be >= 0")
	}
	return nil
}
