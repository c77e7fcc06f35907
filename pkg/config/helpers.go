package config

import (
	"strconv"

	"github.com/narwhalmedia/catalog/pkg/database"
	"github.com/narwhalmedia/catalog/pkg/logger"
)

// Postgres converts the database section for pkg/database.
func (c DatabaseConfig) Postgres() *database.PostgresConfig {
	cfg := &database.PostgresConfig{
		Host:            c.Host,
		Port:            c.Port,
		User:            c.User,
		Password:        c.Password,
		Database:        c.Database,
		SSLMode:         c.SSLMode,
		MaxConnections:  c.MaxConnections,
		MinConnections:  c.MinConnections,
		MaxConnLifetime: c.MaxConnLifetime,
		MaxConnIdleTime: c.MaxConnIdleTime,
		LogSQL:          c.LogSQL,
	}
	if cfg.SSLMode == "" {
		cfg.SSLMode = "disable"
	}
	return cfg
}

// Zap converts the logger section for pkg/logger. Empty fields keep the
// preset's value.
func (c LoggerConfig) Zap() *logger.Config {
	cfg := logger.DefaultConfig()
	if c.Development {
		cfg = logger.DevelopmentConfig()
	}
	if c.Level != "" {
		cfg.Level = c.Level
	}
	if c.Format != "" {
		cfg.Encoding = c.Format
	}
	if c.OutputPath != "" {
		cfg.OutputPaths = []string{c.OutputPath}
	}
	return cfg
}

// IsProduction reports whether the service runs in production.
func (c ServiceConfig) IsProduction() bool {
	return c.Environment == "production" || c.Environment == "prod"
}

// ListenAddress is the address the HTTP listener binds to.
func (c ServiceConfig) ListenAddress() string {
	return ":" + strconv.Itoa(c.Port)
}
