package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Webapp.ListenAddr)
	assert.Equal(t, ":8081", cfg.Webhook.ListenAddr)
	assert.Equal(t, "admin123", cfg.Webapp.Users["admin"])
	assert.Len(t, cfg.Webapp.Users, 5)
	assert.Equal(t, 10000, cfg.Webapp.AttemptCapacity)
	assert.Equal(t, 30*time.Second, cfg.Webhook.CommandTimeout)
	assert.Equal(t, "http://logstash:5044", cfg.SIEM.CollectorURL)
	assert.Equal(t, 5*time.Second, cfg.SIEM.Timeout)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := `
webapp:
  listen_addr: ":9090"
  users:
    alice: wonderland
webhook:
  script_path: /usr/local/bin/ip_blocker.sh
  command_timeout: 10s
siem:
  collector_url: http://collector:5044
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Webapp.ListenAddr)
	assert.Equal(t, "wonderland", cfg.Webapp.Users["alice"])
	assert.Equal(t, "/usr/local/bin/ip_blocker.sh", cfg.Webhook.ScriptPath)
	assert.Equal(t, 10*time.Second, cfg.Webhook.CommandTimeout)
	assert.Equal(t, "http://collector:5044", cfg.SIEM.CollectorURL)
	// Untouched sections keep their defaults.
	assert.Equal(t, ":8081", cfg.Webhook.ListenAddr)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Webapp.ListenAddr)
}

func TestValidateRejectsBadConfig(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	cfg.Webapp.Users = nil
	cfg.Webhook.CommandTimeout = 0
	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "webapp.users")
	assert.Contains(t, err.Error(), "webhook.command_timeout")
}
