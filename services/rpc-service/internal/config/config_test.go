package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("BACKEND_ANON_KEY", "anon")
	t.Setenv("DB_HOST", "db")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "anon", cfg.AnonKey)
	assert.Equal(t, "db", cfg.DBHost)
	assert.Equal(t, ":50051", cfg.GRPCPort)
	assert.Contains(t, cfg.DSN(), "host=db")
}

func TestLoadConfig_FromFile(t *testing.T) {
	t.Setenv("BACKEND_ANON_KEY", "")
	t.Setenv("GRPC_PORT", "")
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.env"), []byte("BACKEND_ANON_KEY=file-key\nGRPC_PORT=:6000\n"), 0o600))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "file-key", cfg.AnonKey)
	assert.Equal(t, ":6000", cfg.GRPCPort)
}

func TestLoadConfig_RequiresAnonKey(t *testing.T) {
	t.Setenv("BACKEND_ANON_KEY", "")
	_, err := LoadConfig(t.TempDir())
	assert.ErrorIs(t, err, ErrMissingAnonKey)
}
