package config

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HYDRA_CONFIG_PATH", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 9999, cfg.SeasonalYear)
	assert.Equal(t, 1, cfg.FlattenLevels)
	assert.Equal(t, "admin", cfg.AdminRole)
	assert.Equal(t, 8*time.Hour, cfg.TokenLifetime())
	assert.Equal(t, "default", cfg.Source("seasonal_year"))
}

func TestLoadFileThenEnvironment(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "seasonal_year: 1678\nflatten_levels: 2\nlog_format: json\n")
	t.Setenv("HYDRA_CONFIG_PATH", dir)
	t.Setenv("HYDRA_FLATTEN_LEVELS", "3")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 1678, cfg.SeasonalYear)
	assert.Equal(t, "file", cfg.Source("seasonal_year"))
	assert.Equal(t, 3, cfg.FlattenLevels)
	assert.Equal(t, "environment", cfg.Source("flatten_levels"))
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, filepath.Join(dir, ConfigFileName), cfg.ConfigFilePath())
}

func TestLoadRejectsBadYAML(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "seasonal_year: [\n")
	t.Setenv("HYDRA_CONFIG_PATH", dir)

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *HydraConfig)
		wantErr bool
	}{
		{"defaults", func(c *HydraConfig) {}, false},
		{"seasonal year zero", func(c *HydraConfig) { c.SeasonalYear = 0 }, true},
		{"negative levels", func(c *HydraConfig) { c.FlattenLevels = -1 }, true},
		{"no timesteps", func(c *HydraConfig) { c.MaxTimesteps = 0 }, true},
		{"empty admin role", func(c *HydraConfig) { c.AdminRole = "" }, true},
		{"bad log format", func(c *HydraConfig) { c.LogFormat = "xml" }, true},
		{"negative rate", func(c *HydraConfig) { c.RateLimit = -5 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mutate(c)
			err := c.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFormatJSON(t *testing.T) {
	cfg := Default()
	out, err := cfg.FormatJSON()
	require.NoError(t, err)

	var parsed struct {
		Attributes []Attribute `json:"attributes"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &parsed))
	assert.Len(t, parsed.Attributes, len(attributeNames()))
	assert.Contains(t, cfg.FormatText(), "seasonal_year")
}

func TestWatchReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "flatten_levels: 2\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan *HydraConfig, 16)
	go func() {
		_ = Watch(ctx, path, func(cfg *HydraConfig, err error) {
			if err != nil {
				return
			}
			select {
			case changes <- cfg:
			default:
			}
		})
	}()

	// Give the watcher time to register before writing.
	time.Sleep(100 * time.Millisecond)
	writeConfig(t, dir, "flatten_levels: 4\n")

	// A write may be observed as truncate then write; wait for the final content.
	deadline := time.After(5 * time.Second)
	for {
		select {
		case cfg := <-changes:
			if cfg.FlattenLevels != 4 {
				continue
			}
			assert.Equal(t, 4, Get().FlattenLevels)
			return
		case <-deadline:
			t.Fatal("config change was not observed")
		}
	}
}
