package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vomadrid", "config.toml")

	require.NoError(t, WriteDefault(path), "WriteDefault failed")

	content, err := os.ReadFile(path)
	require.NoError(t, err, "failed to read written file")

	assert.Contains(t, string(content), "[server]")
	assert.Contains(t, string(content), "[airtable.tables]")
	assert.Contains(t, string(content), "${AIRTABLE_API_TOKEN:-}")
}

func TestWriteDefault_CreatesDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deep", "config.toml")

	require.NoError(t, WriteDefault(path), "WriteDefault failed")

	_, err := os.Stat(path)
	assert.False(t, os.IsNotExist(err), "file was not created")
}

func TestConfig_Write(t *testing.T) {
	clearAirtableEnv(t)
	cfg := validConfig()
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = 9000
	cfg.Cache.TTL = 2 * time.Minute
	cfg.Fields.Cinemas = map[string]string{"name": "Nombre"}

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, cfg.Write(path), "Write failed")

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "127.0.0.1")
	assert.Contains(t, string(content), "9000")

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Cache.TTL, loaded.Cache.TTL)
	assert.Equal(t, "Nombre", loaded.Fields.Cinemas["name"])
	assert.Equal(t, cfg.Addr(), loaded.Addr())
}

func TestConfig_Write_OmitsToken(t *testing.T) {
	clearAirtableEnv(t)
	cfg := validConfig()
	cfg.Airtable.APIToken = "patSECRET.1234"
	cfg.Airtable.BaseID = "appBASE"

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, cfg.Write(path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(content), "patSECRET")
	assert.Contains(t, string(content), "${AIRTABLE_API_TOKEN:-}")
	assert.Equal(t, "patSECRET.1234", cfg.Airtable.APIToken, "receiver must not change")

	t.Setenv(EnvAPIToken, "patFROMENV")
	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "patFROMENV", loaded.Airtable.APIToken)
	assert.Equal(t, "appBASE", loaded.Airtable.BaseID)
}
