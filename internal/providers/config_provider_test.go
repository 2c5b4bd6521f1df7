package providers

import (
	"dropxhub/internal/structures"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testYAML = `webServer:
  host: 127.0.0.1
  port: 9000
storage:
  filePath: /tmp/dropxhub-test.db
  compress: true
logger:
  level: debug
  mode: 420
  dir: /tmp/dropxhub-logs
cache:
  enabled: true
  size: 1048576
  ttl: 2s
metrics:
  enabled: true
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestNewConfigProvider_ReadsFile(t *testing.T) {
	path := writeConfig(t, testYAML)

	conf, err := NewConfigProvider(&structures.CliFlags{ConfigPath: path, DebugMode: true})
	require.NoError(t, err)

	assert.Equal(t, "DropXHub", conf.AppName)
	assert.True(t, conf.Debug)
	assert.Equal(t, path, conf.Path)
	assert.Equal(t, "127.0.0.1", conf.WebServer.Host)
	assert.Equal(t, 9000, conf.WebServer.Port)
	assert.True(t, conf.Storage.Compress)
	assert.Equal(t, uint32(0644), conf.Logger.Mode)
	assert.Equal(t, 2*time.Second, conf.Cache.TTL)
	assert.True(t, conf.Metrics.Enabled)
}

func TestNewConfigProvider_Defaults(t *testing.T) {
	path := writeConfig(t, testYAML)

	conf, err := NewConfigProvider(&structures.CliFlags{ConfigPath: path})
	require.NoError(t, err)

	assert.True(t, conf.Catalog.SeedSamples)
	assert.Equal(t, 4, conf.Catalog.RelatedLimit)
	assert.Empty(t, conf.Admin.PasswordHash)
}

func TestNewConfigProvider_EnvOverride(t *testing.T) {
	path := writeConfig(t, testYAML)
	t.Setenv("DROPX_LOG_LEVEL", "warn")
	t.Setenv("DROPX_ADMIN_PASSWORD_HASH", "$2a$10$abc")

	conf, err := NewConfigProvider(&structures.CliFlags{ConfigPath: path})
	require.NoError(t, err)
	assert.Equal(t, "warn", conf.Logger.Level)
	assert.Equal(t, "$2a$10$abc", conf.Admin.PasswordHash)
}

func TestNewConfigProvider_MissingFile(t *testing.T) {
	_, err := NewConfigProvider(&structures.CliFlags{ConfigPath: filepath.Join(t.TempDir(), "nope.yaml")})
	assert.Error(t, err)
}

func TestNewConfigProvider_InvalidSection(t *testing.T) {
	path := writeConfig(t, `webServer:
  host: ""
  port: 9000
storage:
  filePath: /tmp/x.db
logger:
  level: info
  mode: 420
  dir: /tmp
`)
	_, err := NewConfigProvider(&structures.CliFlags{ConfigPath: path})
	assert.Error(t, err)
}
