package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "tada dev")
	assert.Contains(t, out, modulePath)
}

func TestShellCommand(t *testing.T) {
	dir := t.TempDir()
	out, err := execute(t, "add buy milk\ndone 1\njson\n",
		"shell", "--config-dir", dir, "--theme", "mono", "--ids", "counter")
	require.NoError(t, err)

	assert.Contains(t, out, "x added")
	assert.Contains(t, out, `"id": "1"`)
	assert.Contains(t, out, `"text": "buy milk"`)
	assert.Contains(t, out, `"completed": true`)
}

func TestShellCommandReadsConfigFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("theme: mono\nids: counter\n"), 0o644))

	out, err := execute(t, "add a\nls\n", "shell", "--config-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, " 1. [ ] a")
}

func TestShellCommandDebugLog(t *testing.T) {
	dir := t.TempDir()
	logFile := filepath.Join(dir, "tada.log")
	_, err := execute(t, "add a\n",
		"shell", "--config-dir", dir, "--ids", "counter", "--log-level", "debug", "--log-file", logFile)
	require.NoError(t, err)

	b, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(b), "configured")
	assert.Contains(t, string(b), "list changed")
}

func TestBadConfig(t *testing.T) {
	_, err := execute(t, "", "shell", "--config-dir", t.TempDir(), "--ids", "snowflake")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown id generator")
}

func TestRootRejectsArgs(t *testing.T) {
	_, err := execute(t, "", "stray")
	require.Error(t, err)
}

func TestShellCommandConfigDirFromEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("theme: mono\nids: counter\n"), 0o644))
	t.Setenv("TADA_CONFIG_DIR", dir)

	out, err := execute(t, "add a\nls\n", "shell")
	require.NoError(t, err)
	assert.Contains(t, out, " 1. [ ] a")
}
