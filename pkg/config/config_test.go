package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	BaseConfig `koanf:",squash"`
	Extra      string `koanf:"extra"`
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "database.max_connections", EnvKey("CATALOG_", "CATALOG_DATABASE__MAX_CONNECTIONS"))
	assert.Equal(t, "extra", EnvKey("CATALOG_", "CATALOG_EXTRA"))
	assert.Equal(t, "CATALOG_", EnvPrefix("catalog"))
	assert.Equal(t, "MEDIA_CATALOG_", EnvPrefix("media-catalog"))
}

func TestLoader_Layers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "svc.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"extra":"from-file","service":{"port":9090}}`), 0o600))
	t.Setenv("SVC_EXTRA", "from-env")

	cfg := &testConfig{BaseConfig: Defaults("svc")}
	loader := NewLoader("svc", WithFiles(path, filepath.Join(t.TempDir(), "absent.yaml")))
	require.NoError(t, loader.Load(cfg))

	assert.Equal(t, "from-env", cfg.Extra)
	assert.Equal(t, 9090, cfg.Service.Port)
	assert.Equal(t, "svc", cfg.Database.Database)
	assert.Equal(t, "from-env", loader.String("extra"))
}

func TestLoader_RejectsUnknownFormat(t *testing.T) {
	cfg := &testConfig{BaseConfig: Defaults("svc")}
	err := NewLoader("svc", WithFiles("svc.toml")).Load(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported config file format")
}

func TestBaseConfig_ValidateReportsEverything(t *testing.T) {
	cfg := Defaults("svc")
	cfg.Service.Port = 0
	cfg.Database.Host = ""
	cfg.Database.MinConnections = 100

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "service.port")
	assert.Contains(t, err.Error(), "database.host")
	assert.Contains(t, err.Error(), "min_connections")
}

func TestServiceConfig(t *testing.T) {
	cfg := ServiceConfig{Port: 8081, Environment: "prod"}
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, ":8081", cfg.ListenAddress())
}
