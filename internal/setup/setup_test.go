package setup

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeBinary(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "chatbot-mcp")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"), 0o755))
	return path
}

func TestRegisterPreservesOtherServers(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "client", "config.json")
	require.NoError(t, SaveConfig(configPath, &ClientConfig{MCPServers: map[string]MCPServerConfig{
		"other": {Command: "/usr/bin/other"},
	}}))

	binary := fakeBinary(t)
	written, err := Register(Options{ConfigPath: configPath, BinaryPath: binary, DataDir: "/data"})
	require.NoError(t, err)
	assert.Equal(t, configPath, written)

	config, err := LoadConfig(configPath)
	require.NoError(t, err)
	assert.Equal(t, "/usr/bin/other", config.MCPServers["other"].Command)
	assert.Equal(t, binary, config.MCPServers[ServerName].Command)
	assert.Equal(t, "/data", config.MCPServers[ServerName].Env[DataDirEnv])
}

func TestRegisterRequiresBinary(t *testing.T) {
	_, err := Register(Options{ConfigPath: filepath.Join(t.TempDir(), "c.json")})
	assert.Error(t, err)
}

func TestLoadConfig(t *testing.T) {
	config, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	require.NoError(t, err)
	assert.Empty(t, config.MCPServers)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0o600))
	_, err = LoadConfig(bad)
	assert.Error(t, err)
}

func TestStatusAndUnregister(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.json")
	dataDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "feedback.db"), nil, 0o600))

	status, err := GetStatus(configPath)
	require.NoError(t, err)
	assert.False(t, status.Registered)
	assert.NotEmpty(t, status.Issues)

	_, err = Register(Options{ConfigPath: configPath, BinaryPath: fakeBinary(t), DataDir: dataDir})
	require.NoError(t, err)

	status, err = GetStatus(configPath)
	require.NoError(t, err)
	assert.True(t, status.Registered)
	assert.True(t, status.BinaryExists)
	assert.True(t, status.FeedbackDB)
	assert.Empty(t, status.Issues)

	removed, err := Unregister(configPath)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = Unregister(configPath)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestCLI(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.json")
	binary := fakeBinary(t)

	var out bytes.Buffer
	cli := NewCLI(&out)
	cli.executable = func() (string, error) { return binary, nil }

	require.NoError(t, cli.Run([]string{"register", "--config", configPath}))
	assert.Contains(t, out.String(), "Registered "+binary)

	out.Reset()
	require.NoError(t, cli.Run([]string{"status", "--config", configPath}))
	assert.Contains(t, out.String(), "Registered:  true")

	out.Reset()
	require.NoError(t, cli.Run(nil))
	assert.Contains(t, out.String(), "Usage:")

	assert.Error(t, cli.Run([]string{"register", "--config"}))
	assert.Error(t, cli.Run([]string{"register", "--bogus", "x"}))
	assert.Error(t, cli.Run([]string{"frobnicate"}))
}
