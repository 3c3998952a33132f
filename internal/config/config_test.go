// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "http://localhost:8000", cfg.API.BaseURL)
	assert.Equal(t, DefaultSplitRatio, cfg.UI.SplitRatio)
	assert.Equal(t, "dark", cfg.UI.Theme)
	assert.True(t, cfg.UI.MouseEnabled)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
version = "1"

[api]
base_url = "https://docchat.example.com"
timeout_secs = 30

[ui]
theme = "light"
split_ratio = 65
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, "https://docchat.example.com", cfg.API.BaseURL)
	assert.Equal(t, 30, cfg.API.TimeoutSecs)
	assert.Equal(t, "light", cfg.UI.Theme)
	assert.Equal(t, 65, cfg.UI.SplitRatio)

	// Unset fields pick up defaults
	assert.Equal(t, 25, cfg.Upload.MaxFileSizeMB)
}

func TestLoadFromPath_FixesPermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`version = "1"`), 0644))

	_, err := LoadFromPath(path)
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestSetDefaults_SplitRatioOutOfRange(t *testing.T) {
	tests := []struct {
		name  string
		ratio int
		want  int
	}{
		{"in range", 35, 35},
		{"lower bound is exclusive", SplitRatioMin, DefaultSplitRatio},
		{"upper bound is exclusive", SplitRatioMax, DefaultSplitRatio},
		{"below range", 5, DefaultSplitRatio},
		{"above range", 95, DefaultSplitRatio},
		{"zero value", 0, DefaultSplitRatio},
		{"negative", -10, DefaultSplitRatio},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.UI.SplitRatio = tt.ratio
			cfg.SetDefaults()
			assert.Equal(t, tt.want, cfg.UI.SplitRatio)
		})
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.API.BaseURL = "not a url"
	cfg.UI.Theme = "solarized"

	err := cfg.Validate()
	require.Error(t, err)

	var errs ValidateErrors
	require.ErrorAs(t, err, &errs)
	assert.Len(t, errs, 2)
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv(EnvAPIURL, "https://env.example.com")
	t.Setenv(EnvTheme, "light")
	t.Setenv(EnvNoLog, "1")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	assert.Equal(t, "https://env.example.com", cfg.API.BaseURL)
	assert.Equal(t, "light", cfg.UI.Theme)
	assert.False(t, cfg.Log.Enabled)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg := Default()
	cfg.API.BaseURL = "https://saved.example.com"
	cfg.UI.SplitRatio = 42
	require.NoError(t, SaveTOML(cfg, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "https://saved.example.com", loaded.API.BaseURL)
	assert.Equal(t, 42, loaded.UI.SplitRatio)
}

func TestGetSet_DotNotation(t *testing.T) {
	cfg := Default()

	v, err := cfg.Get("ui.theme")
	require.NoError(t, err)
	assert.Equal(t, "dark", v)

	require.NoError(t, cfg.Set("ui.split_ratio", "33"))
	assert.Equal(t, 33, cfg.UI.SplitRatio)

	require.NoError(t, cfg.Set("api.base_url", "https://set.example.com"))
	assert.Equal(t, "https://set.example.com", cfg.API.BaseURL)

	require.NoError(t, cfg.Set("ui.mouse_enabled", "false"))
	assert.False(t, cfg.UI.MouseEnabled)

	_, err = cfg.Get("no.such.key")
	assert.Error(t, err)
	assert.Error(t, cfg.Set("ui.nonexistent", "x"))
}

// TestConfig_ConcurrentAccess verifies Global() and SetGlobal() are safe to
// call concurrently. Run with: go test -race ./internal/config/
func TestConfig_ConcurrentAccess(t *testing.T) {
	ResetGlobalForTesting()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)

		go func() {
			defer wg.Done()
			SetGlobal(Default())
		}()

		go func() {
			defer wg.Done()
			if Global() == nil {
				t.Error("Global() returned nil")
			}
		}()
	}
	wg.Wait()
}

func TestConfig_GlobalInitialization(t *testing.T) {
	ResetGlobalForTesting()

	cfg := Global()
	require.NotNil(t, cfg)
	assert.NotEmpty(t, cfg.Version)
	assert.NotEmpty(t, cfg.API.BaseURL)
}
