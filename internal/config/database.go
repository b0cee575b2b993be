package config

import (
	"fmt"
	"net/url"

	"github.com/spf13/viper"

	"waitfor/internal/models"
)

// 数据库连接参数约定的环境变量名，由编排拓扑注入
var databaseEnvNames = map[string]string{
	"username": "USERNAME",
	"password": "PASSWORD",
	"hostname": "HOSTNAME",
	"port":     "PORT",
	"database": "DATABASE",
}

/**
 * Database connection parameters for the dependency service
 * @property {string} username - Authentication user
 * @property {string} password - Authentication password
 * @property {string} hostname - Database host
 * @property {int} port - Database TCP port
 * @property {string} database - Database name to select after authentication
 * @description
 * - Built once at process start from the environment and threaded through calls
 * - The connection logic never reads the environment directly
 */
type DatabaseConfig struct {
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	Hostname string `mapstructure:"hostname"`
	Port     int    `mapstructure:"port"`
	Database string `mapstructure:"database"`
}

/**
 * Load database configuration from the enumerated environment names
 * @returns {*DatabaseConfig} Configuration value ready to thread through the data access layer
 * @returns {error} Returns error if a required value is missing or malformed
 */
func LoadDatabaseConfig() (*DatabaseConfig, error) {
	v := viper.New()
	for key, env := range databaseEnvNames {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind %s failed: %w", env, err)
		}
	}

	cfg := DatabaseConfig{
		Username: v.GetString("username"),
		Password: v.GetString("password"),
		Hostname: v.GetString("hostname"),
		Port:     v.GetInt("port"),
		Database: v.GetString("database"),
	}

	if cfg.Hostname == "" {
		return nil, fmt.Errorf("environment value HOSTNAME is required")
	}
	if cfg.Port < 1 || cfg.Port > 65535 {
		return nil, fmt.Errorf("environment value PORT must be in 1-65535, got %d", cfg.Port)
	}
	if cfg.Database == "" {
		return nil, fmt.Errorf("environment value DATABASE is required")
	}
	return &cfg, nil
}

// Endpoint 返回数据库的网络端点
func (c *DatabaseConfig) Endpoint() models.Endpoint {
	return models.Endpoint{Host: c.Hostname, Port: c.Port}
}

// URI 组装MongoDB连接串，凭据做URL转义
func (c *DatabaseConfig) URI() string {
	if c.Username == "" {
		return fmt.Sprintf("mongodb://%s/%s", c.Endpoint().Addr(), c.Database)
	}
	return fmt.Sprintf("mongodb://%s@%s/%s?authSource=admin",
		url.UserPassword(c.Username, c.Password).String(),
		c.Endpoint().Addr(), c.Database)
}
