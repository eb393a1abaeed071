package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "budget.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfigFromFile(t *testing.T) {
	path := writeConfig(t, `
service:
  name: budget-test
server:
  http:
    port: 9090
database:
  driver: memory
  conn_max_lifetime: 1h
storage:
  upload_dir: /tmp/uploads
log:
  level: debug
policy:
  strict_metadata: true
`)
	t.Setenv("CONFIG_PATH", path)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "budget-test", cfg.Service.Name)
	assert.Equal(t, "0.0.0.0:9090", cfg.Server.HTTP.Address())
	assert.Equal(t, DriverMemory, cfg.Database.Driver)
	assert.Equal(t, time.Hour, cfg.Database.ConnMaxLifetime)
	assert.Equal(t, 5*time.Minute, cfg.Database.ConnMaxIdleTime)
	assert.Equal(t, "/tmp/uploads", cfg.Storage.UploadDir)
	assert.Equal(t, "debug", cfg.Log.Logger().Level)
	assert.True(t, cfg.Policy.StrictMetadata)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
database:
  driver: postgres
  host: db.internal
  name: budget
`)
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("BUDGET_DATABASE_HOST", "override.internal")
	t.Setenv("BUDGET_POLICY_STRICT_METADATA", "true")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "override.internal", cfg.Database.Host)
	assert.True(t, cfg.Policy.StrictMetadata)
	assert.Equal(t, "host=override.internal port=5432 user=postgres password= dbname=budget sslmode=disable", cfg.Database.DSN())
}

func TestLoadConfigRejectsUnknownDriver(t *testing.T) {
	t.Setenv("CONFIG_PATH", writeConfig(t, "database:\n  driver: sqlite\n"))

	_, err := LoadConfig()
	assert.ErrorContains(t, err, "unsupported database driver")
}

func TestLoadConfigMissingExplicitFile(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "absent.yaml"))

	_, err := LoadConfig()
	assert.ErrorContains(t, err, "failed to read config file")
}
