package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("gateway", "", "")
	fs.String("token-file", "", "")
	return fs
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir(), newFlags(), "/tmp/token")
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:3000", cfg.GatewayURL)
	assert.Equal(t, "/tmp/token", cfg.TokenFile)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoadConfig_Precedence(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.env"), []byte("GATEWAY_URL=http://file:3000\nTOKEN_FILE=/file/token\n"), 0o600))
	t.Setenv("TOKEN_FILE", "/env/token")

	flags := newFlags()
	require.NoError(t, flags.Parse([]string{"--gateway", "http://flag:3000"}))

	cfg, err := LoadConfig(dir, flags, "/tmp/token")
	require.NoError(t, err)

	assert.Equal(t, "http://flag:3000", cfg.GatewayURL)
	assert.Equal(t, "/env/token", cfg.TokenFile)
}
