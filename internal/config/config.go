package config

import (
	"time"

	"github.com/spf13/viper"

	"waitfor/internal/models"
)

/**
 * Server configuration parameters
 * @property {string} address - Server listening address (e.g. ":8080")
 * @property {string} mode - Application mode (debug/release/test)
 */
type ServerConfig struct {
	Address string `mapstructure:"address"`
	Mode    string `mapstructure:"mode"`
}

/**
 * Logging configuration
 * @property {string} level - Log level (debug/info/warn/error)
 * @property {string} path - Log file path, "console" for stdout
 */
type LogConfig struct {
	Level string `mapstructure:"level"`
	Path  string `mapstructure:"path"`
}

/**
 * Connection retry configuration for the data access layer
 * @property {int} max_attempts - Attempt budget, 0 means unbounded
 * @property {int} interval_ms - Fixed wait between attempts in milliseconds
 * @property {int} connect_timeout_ms - Per-attempt deadline in milliseconds
 */
type RetryConfig struct {
	MaxAttempts      int `mapstructure:"max_attempts"`
	IntervalMs       int `mapstructure:"interval_ms"`
	ConnectTimeoutMs int `mapstructure:"connect_timeout_ms"`
}

// Policy 将配置转换为数据访问层使用的重试策略
func (rc RetryConfig) Policy() models.RetryPolicy {
	return models.RetryPolicy{
		MaxAttempts:    rc.MaxAttempts,
		Interval:       time.Duration(rc.IntervalMs) * time.Millisecond,
		ConnectTimeout: time.Duration(rc.ConnectTimeoutMs) * time.Millisecond,
	}
}

type AppConfig struct {
	Server ServerConfig `mapstructure:"server"`
	Log    LogConfig    `mapstructure:"log"`
	Retry  RetryConfig  `mapstructure:"retry"`
}

/**
 * Load application configuration from YAML file
 */
func LoadConfig() (*AppConfig, error) {
	viper.SetConfigName("waitfor")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg AppConfig
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

var Config AppConfig

func collectConfig(cfg *AppConfig) *AppConfig {
	if cfg.Server.Address == "" {
		cfg.Server.Address = ":8080"
	}
	if cfg.Server.Mode == "" {
		cfg.Server.Mode = "release"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Retry.IntervalMs <= 0 {
		cfg.Retry.IntervalMs = 5000
	}
	if cfg.Retry.ConnectTimeoutMs <= 0 {
		cfg.Retry.ConnectTimeoutMs = 10000
	}
	return cfg
}

func init() {
	// 配置文件是可选的，读取失败时使用内置缺省值
	cfg, err := LoadConfig()
	if err == nil {
		Config = *cfg
	}
	collectConfig(&Config)
}
