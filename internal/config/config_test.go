package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c := Default()

	assert.Equal(t, BackendNative, c.UI.Backend)
	assert.Equal(t, 1024, c.UI.QueueSize)
	assert.Equal(t, 50*time.Millisecond, c.UI.TickInterval)
	assert.Equal(t, 7777, c.UI.DefaultPort)
	assert.Equal(t, 3*time.Second, c.Web.ReconnectGrace)
	assert.NotEmpty(t, c.Host.Aircraft)
	require.NoError(t, Validate(c))
}

func TestLoad_FileAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	contents := []byte("ui:\n  backend: web\n  tick_interval: 20ms\nweb:\n  addr: 127.0.0.1:0\n")
	require.NoError(t, os.WriteFile(path, contents, 0o644))
	t.Setenv("YOURCONTROLS_UI_TITLE", "Test Cockpit")

	c, err := Load(New(), path)
	require.NoError(t, err)

	assert.Equal(t, BackendWeb, c.UI.Backend)
	assert.Equal(t, 20*time.Millisecond, c.UI.TickInterval)
	assert.Equal(t, "127.0.0.1:0", c.Web.Addr)
	assert.Equal(t, "Test Cockpit", c.UI.Title)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(New(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown backend", func(c *Config) { c.UI.Backend = "gtk" }},
		{"zero queue", func(c *Config) { c.UI.QueueSize = 0 }},
		{"zero tick", func(c *Config) { c.UI.TickInterval = 0 }},
		{"port out of range", func(c *Config) { c.UI.DefaultPort = 70000 }},
		{"web without addr", func(c *Config) { c.UI.Backend = BackendWeb; c.Web.Addr = "" }},
		{"zero poll", func(c *Config) { c.Host.PollInterval = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mutate(&c)
			assert.Error(t, Validate(c))
		})
	}
}

func TestDump_RoundTrip(t *testing.T) {
	c := Default()
	c.UI.Backend = BackendWeb

	out, err := Dump(c)
	require.NoError(t, err)
	assert.Contains(t, string(out), "backend: web")

	path := filepath.Join(t.TempDir(), "dumped.yaml")
	require.NoError(t, os.WriteFile(path, out, 0o644))

	loaded, err := Load(New(), path)
	require.NoError(t, err)
	assert.Equal(t, c, loaded)
}
