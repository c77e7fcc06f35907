package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// Config is implemented by every loadable configuration.
type Config interface {
	Validate() error
}

// BaseConfig holds the sections every process shares.
type BaseConfig struct {
	Service  ServiceConfig  `koanf:"service"`
	Database DatabaseConfig `koanf:"database"`
	Logger   LoggerConfig   `koanf:"logger"`
}

// ServiceConfig identifies the running process.
type ServiceConfig struct {
	Name            string        `koanf:"name"`
	Version         string        `koanf:"version"`
	Environment     string        `koanf:"environment"` // dev, staging, production
	Port            int           `koanf:"port"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// DatabaseConfig holds the postgres connection and pool settings.
type DatabaseConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	User            string        `koanf:"user"`
	Password        string        `koanf:"password"`
	Database        string        `koanf:"database"`
	SSLMode         string        `koanf:"ssl_mode"`
	MaxConnections  int           `koanf:"max_connections"`
	MinConnections  int           `koanf:"min_connections"`
	MaxConnLifetime time.Duration `koanf:"max_conn_lifetime"`
	MaxConnIdleTime time.Duration `koanf:"max_conn_idle_time"`
	LogSQL          bool          `koanf:"log_sql"`
}

// LoggerConfig selects level, encoding and sink.
type LoggerConfig struct {
	Level       string `koanf:"level"`  // debug, info, warn, error
	Format      string `koanf:"format"` // json, console
	Development bool   `koanf:"development"`
	OutputPath  string `koanf:"output_path"`
}

// parsers maps a config file extension to its koanf parser.
var parsers = map[string]func() koanf.Parser{
	".yaml": func() koanf.Parser { return yaml.Parser() },
	".yml":  func() koanf.Parser { return yaml.Parser() },
	".json": func() koanf.Parser { return json.Parser() },
}

// Loader layers struct defaults, config files and environment variables.
// Later layers win.
type Loader struct {
	k         *koanf.Koanf
	envPrefix string
	files     []string
}

// Option customises a Loader.
type Option func(*Loader)

// WithFiles replaces the candidate config files. Missing files are skipped.
func WithFiles(paths ...string) Option {
	return func(l *Loader) {
		l.files = paths
	}
}

// WithEnvPrefix overrides the environment variable prefix.
func WithEnvPrefix(prefix string) Option {
	return func(l *Loader) {
		l.envPrefix = prefix
	}
}

// NewLoader creates a loader for the named service. By default it reads
// "<name>.yaml" style files from the working directory and configs/, and
// variables prefixed with EnvPrefix(name).
func NewLoader(serviceName string, opts ...Option) *Loader {
	l := &Loader{
		k:         koanf.New("."),
		envPrefix: EnvPrefix(serviceName),
		files:     DefaultFiles(serviceName),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load fills cfg, which must already carry its defaults, and validates it.
func (l *Loader) Load(cfg Config) error {
	if err := l.k.Load(structs.Provider(cfg, "koanf"), nil); err != nil {
		return fmt.Errorf("load defaults: %w", err)
	}

	for _, path := range l.files {
		if err := l.loadFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
	}

	prefix := l.envPrefix
	if err := l.k.Load(env.Provider(prefix, ".", func(key string) string {
		return EnvKey(prefix, key)
	}), nil); err != nil {
		return fmt.Errorf("load environment: %w", err)
	}

	if err := l.k.Unmarshal("", cfg); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// String returns the merged value for a dotted key.
func (l *Loader) String(key string) string {
	return l.k.String(key)
}

func (l *Loader) loadFile(path string) error {
	newParser, ok := parsers[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return fmt.Errorf("unsupported config file format %q", filepath.Ext(path))
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return l.k.Load(file.Provider(path), newParser())
}

// EnvPrefix returns the variable prefix for a service, e.g. CATALOG_.
func EnvPrefix(serviceName string) string {
	return strings.ToUpper(strings.ReplaceAll(serviceName, "-", "_")) + "_"
}

// EnvKey maps a variable name to a config key. A double underscore
// separates levels so keys keep their single underscores:
// CATALOG_DATABASE__MAX_CONNECTIONS becomes database.max_connections.
func EnvKey(prefix, name string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimPrefix(name, prefix), "__", "."))
}

// DefaultFiles lists the config files checked when none are given.
// CONFIG_PATH, when set, is checked first.
func DefaultFiles(serviceName string) []string {
	var paths []string
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		paths = append(paths, p)
	}
	for _, dir := range []string{".", "configs"} {
		paths = append(paths,
			filepath.Join(dir, serviceName+".yaml"),
			filepath.Join(dir, serviceName+".json"),
		)
	}
	if environment := os.Getenv("ENVIRONMENT"); environment != "" {
		paths = append(paths, filepath.Join("configs", serviceName+"."+environment+".yaml"))
	}
	return paths
}

// Validate reports every missing or out of range shared setting.
func (c *BaseConfig) Validate() error {
	var errs []error
	if c.Service.Name == "" {
		errs = append(errs, errors.New("service.name is required"))
	}
	if !validPort(c.Service.Port) {
		errs = append(errs, fmt.Errorf("service.port %d is out of range", c.Service.Port))
	}
	if c.Database.Host == "" {
		errs = append(errs, errors.New("database.host is required"))
	}
	if !validPort(c.Database.Port) {
		errs = append(errs, fmt.Errorf("database.port %d is out of range", c.Database.Port))
	}
	if c.Database.Database == "" {
		errs = append(errs, errors.New("database.database is required"))
	}
	if c.Database.MinConnections > c.Database.MaxConnections {
		errs = append(errs, errors.New("database.min_connections exceeds database.max_connections"))
	}
	return errors.Join(errs...)
}

func validPort(p int) bool {
	return p > 0 && p <= 65535
}

// Defaults returns the shared defaults for a service. The database and
// its role are both named after the service.
func Defaults(serviceName string) BaseConfig {
	return BaseConfig{
		Service: ServiceConfig{
			Name:            serviceName,
			Environment:     "dev",
			Port:            DefaultHTTPPort,
			ShutdownTimeout: DefaultShutdownTimeout,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            DefaultPostgresPort,
			User:            serviceName,
			Password:        serviceName,
			Database:        serviceName,
			SSLMode:         "disable",
			MaxConnections:  DefaultMaxConnections,
			MinConnections:  DefaultMinConnections,
			MaxConnLifetime: DefaultMaxConnLifetime,
			MaxConnIdleTime: DefaultMaxConnIdleTime,
		},
		Logger: LoggerConfig{
			Level:      "info",
			Format:     "json",
			OutputPath: "stdout",
		},
	}
}
