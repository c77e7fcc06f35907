package config

import "time"

// Defaults shared by every service.
const (
	DefaultHTTPPort     = 8080
	DefaultPostgresPort = 5432

	DefaultMaxConnections  = 25
	DefaultMinConnections  = 5
	DefaultMaxConnLifetime = time.Hour
	DefaultMaxConnIdleTime = 30 * time.Minute

	DefaultShutdownTimeout = 30 * time.Second
)
