package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_RequiresSecret(t *testing.T) {
	t.Setenv("ACCESS_SECRET", "")

	_, err := LoadConfig(t.TempDir())
	assert.ErrorIs(t, err, ErrMissingSecret)
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("ACCESS_SECRET", "s3cret")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, ":8000", cfg.Port)
	assert.Equal(t, 30*time.Minute, cfg.TokenTTL)
	assert.Equal(t, 3, cfg.MaxUnfinishedPlans)
	assert.Equal(t, "s3cret", cfg.AccessSecret)
}

func TestLoadConfig_File(t *testing.T) {
	dir := t.TempDir()
	content := "ACCESS_SECRET=abc\nDB_HOST=db\nDB_USER=plans\nDB_PASSWORD=pw\nDB_NAME=learn\nMAX_UNFINISHED_PLANS=5\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.env"), []byte(content), 0o600))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.MaxUnfinishedPlans)
	assert.Equal(t, "host=db user=plans password=pw dbname=learn port=5432 sslmode=disable", cfg.DSN())
}
