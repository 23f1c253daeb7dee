package config

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWhenNoFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "fandom-data.csv", cfg.Input)
	assert.Equal(t, "star-wars-reuse.html", cfg.Output)
	assert.Equal(t, 140, cfg.Words)
	assert.False(t, cfg.Static)
	assert.Equal(t, "LOWERCASE", cfg.Columns.Word)
	assert.Equal(t, "Frequency of Reuse (Exact)", cfg.Columns.Frequency)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "Average Quantity of Text Reuse by 140-word Section", cfg.ChartOptions().Title)
	assert.Equal(t, 140, cfg.ReuseOptions().ChunkSize)
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := filepath.Join(home, "reuse.toml")
	content := `
input = "~/data/script.csv"
words = 100
static = true
names = ["Luke", "Leia"]

[columns]
frequency = "reuse"

[chart]
color = "#112233"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "data", "script.csv"), cfg.Input)
	assert.Equal(t, 100, cfg.Words)
	assert.True(t, cfg.Static)
	assert.Equal(t, []string{"Luke", "Leia"}, cfg.Names)
	assert.Equal(t, "reuse", cfg.Columns.Frequency)
	assert.Equal(t, "LOWERCASE", cfg.Columns.Word, "unset columns keep defaults")
	assert.Equal(t, 800, cfg.Chart.Width)
	assert.Equal(t, "#112233", cfg.ChartOptions().Color)
	assert.Equal(t, "Average Quantity of Text Reuse by 100-word Section", cfg.ChartOptions().Title)
}

func TestLoadExplicitMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("words = ["), 0o644))
	_, err := Load(path)
	assert.ErrorContains(t, err, "parse config")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"zero words", func(c *Config) { c.Words = 0 }, "Words"},
		{"bad format", func(c *Config) { c.Format = "xml" }, "Format"},
		{"bad color", func(c *Config) { c.Chart.Color = "purple" }, "Color"},
		{"tiny chart", func(c *Config) { c.Chart.Width = 10 }, "Width"},
		{"no input", func(c *Config) { c.Input = "" }, "Input"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLogLevel("debug"))
	assert.Equal(t, slog.LevelWarn, ParseLogLevel("WARNING"))
	assert.Equal(t, slog.LevelError, ParseLogLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLogLevel("bogus"))
}

func TestSetupLoggerWithWriters(t *testing.T) {
	var stderr, file bytes.Buffer
	logger := SetupLoggerWithWriters(&stderr, &file, slog.LevelInfo)

	logger.Debug("hidden")
	logger.Info("chart written", "chunks", 2)

	assert.Contains(t, stderr.String(), "chart written")
	assert.NotContains(t, stderr.String(), "hidden")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(file.Bytes(), &rec))
	assert.Equal(t, "chart written", rec["msg"])
	assert.EqualValues(t, 2, rec["chunks"])
}

func TestSetupLoggerFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reusevis.log")
	logger, cleanup := SetupLogger(path, slog.LevelInfo)
	logger.Info("hello")
	require.NoError(t, cleanup())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
}
