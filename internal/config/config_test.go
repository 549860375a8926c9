package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/tada/internal/ids"
	"github.com/Makepad-fr/tada/internal/ui"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0o644))
	return dir
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(NewViper(), t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, Config{
		Theme:    "classic",
		IDs:      "ulid",
		LogLevel: log.InfoLevel,
	}, cfg)
}

func TestLoadFile(t *testing.T) {
	dir := writeConfig(t, "theme: neon\nids: counter\nlog_level: debug\nno_color: true\n")

	cfg, err := Load(NewViper(), dir)
	require.NoError(t, err)
	assert.Equal(t, "neon", cfg.Theme)
	assert.Equal(t, "counter", cfg.IDs)
	assert.Equal(t, log.DebugLevel, cfg.LogLevel)
	assert.True(t, cfg.NoColor)
}

func TestEnvOverridesFile(t *testing.T) {
	dir := writeConfig(t, "theme: neon\n")
	t.Setenv("TADA_THEME", "mono")

	cfg, err := Load(NewViper(), dir)
	require.NoError(t, err)
	assert.Equal(t, "mono", cfg.Theme)
}

func TestSetOverridesEnv(t *testing.T) {
	t.Setenv("TADA_IDS", "uuid")
	v := NewViper()
	v.Set(KeyIDs, "counter")

	cfg, err := Load(v, "")
	require.NoError(t, err)
	assert.Equal(t, "counter", cfg.IDs)
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr error
	}{
		{name: "theme", body: "theme: sepia\n", wantErr: ui.ErrUnknownTheme},
		{name: "ids", body: "ids: snowflake\n", wantErr: ids.ErrUnknownKind},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(NewViper(), writeConfig(t, tt.body))
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoadBadLevel(t *testing.T) {
	_, err := Load(NewViper(), writeConfig(t, "log_level: loud\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), KeyLogLevel)
}

func TestLoadMalformedFile(t *testing.T) {
	_, err := Load(NewViper(), writeConfig(t, "theme: [unclosed\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}

func TestDir(t *testing.T) {
	assert.Equal(t, DefaultDir(), Dir(NewViper()))

	t.Setenv("TADA_CONFIG_DIR", "/tmp/tada-conf")
	assert.Equal(t, "/tmp/tada-conf", Dir(NewViper()))
}
