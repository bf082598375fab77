package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/xxxsen/common/logger"
)

type Config struct {
	Database        DatabaseConfig   `json:"database"`
	JWTSecret       string           `json:"jwt_secret"`
	JWTTTLMinutes   int              `json:"jwt_ttl_minutes"`
	Port            int              `json:"port"`
	LogConfig       logger.LogConfig `json:"log_config"`
	CORSAllowlist   []string         `json:"cors_allowlist"`
	LoginRateMs     int              `json:"login_rate_ms"`
	UserCache       UserCacheConfig  `json:"user_cache"`
	UsageReportCron string           `json:"usage_report_cron"`
}

type DatabaseConfig struct {
	DSN      string `json:"dsn"`
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	DBName   string `json:"db_name"`
	SSLMode  string `json:"ssl_mode"`
}

type UserCacheConfig struct {
	Size       int `json:"size"`
	TTLSeconds int `json:"ttl_seconds"`
}

func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err := json.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Database.DSN == "" && cfg.Database.Host == "" {
		return nil, fmt.Errorf("database.dsn or database.host is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("jwt_secret is required")
	}
	if cfg.Port == 0 {
		return nil, fmt.Errorf("port is required")
	}
	if cfg.JWTTTLMinutes == 0 {
		cfg.JWTTTLMinutes = 15
	}
	if cfg.LogConfig.Level == "" {
		cfg.LogConfig.Level = "info"
	}
	if cfg.UserCache.Size == 0 {
		cfg.UserCache.Size = 1024
	}
	if cfg.UserCache.TTLSeconds == 0 {
		cfg.UserCache.TTLSeconds = 60
	}
	return &cfg, nil
}
