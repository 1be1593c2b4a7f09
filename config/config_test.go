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
	path := filepath.Join(t.TempDir(), "gorange.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "[1, 20]", cfg.Segment.Span().String())
}

func TestLoadOverrides(t *testing.T) {
	path := writeConfig(t, `
http:
  addr: 0.0.0.0:8080
redis:
  addr: cache:6379
  ttl: 5m
segment:
  begin: 0
  end: 1000
  exclude_end: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr)
	assert.Equal(t, "cache:6379", cfg.Redis.Addr)
	assert.Equal(t, 5*time.Minute, cfg.Redis.TTL)
	assert.Equal(t, "Basic", cfg.MySQL.Table)
	assert.Equal(t, "[0, 1000)", cfg.Segment.Span().String())
}

func TestLoadInvalid(t *testing.T) {
	tests := map[string]string{
		"http addr": "http:\n  addr: nowhere\n",
		"table":     "mysql:\n  table: \"Basic;\"\n",
		"dsn":       "mysql:\n  dsn: \"gaux:dontenter@tcp(\"\n",
		"span":      "segment:\n  begin: 10\n  end: 1\n",
		"negative":  "redis:\n  ttl: -1s\n",
		"not yaml":  "http: [",
	}

	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
