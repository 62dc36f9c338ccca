package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
app:
  server:
    http:
      address: ":8080"
      read_timeout_seconds: 15
database:
  mongodb:
    max_pool_size: 100
    retry_attempts: 3
mail:
  port: 1025
  attachments: " ./a.txt:text/plain, ,./b.pdf:application/pdf,"
instrument:
  enabled: true
  trace_sample_ratio: 0.5
`

func TestNewViperFromBytes(t *testing.T) {
	_, err := NewViperFromBytes("", []byte(sample))
	assert.ErrorIs(t, err, ErrConfigTypeRequired)

	cfg, err := NewViperFromBytes("yaml", []byte(sample))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.GetString("app.server.http.address"))
	assert.Equal(t, 15*time.Second, cfg.GetSecond("app.server.http.read_timeout_seconds"))
	assert.Equal(t, uint64(100), cfg.GetUint64("database.mongodb.max_pool_size"))
	assert.Equal(t, 1025, cfg.GetInt("mail.port"))
	assert.Equal(t, []string{"./a.txt:text/plain", "./b.pdf:application/pdf"}, cfg.GetArray("mail.attachments"))
	assert.Empty(t, cfg.GetArray("mail.cc"))
	assert.True(t, cfg.GetBool("instrument.enabled"))
	assert.InDelta(t, 0.5, cfg.GetFloat64("instrument.trace_sample_ratio"), 0.0001)
	assert.NoError(t, cfg.Close())
}

func TestNewViper_EnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))
	t.Setenv("APP_SERVER_HTTP_ADDRESS", ":9090")

	cfg, err := NewViper(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.GetString("app.server.http.address"))
	assert.Equal(t, 1025, cfg.GetInt("mail.port"))
}

func TestNewViper_MissingFile(t *testing.T) {
	_, err := NewViper(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
