package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"

	"github.com/Zuo-Peng/reusevis/internal/chart"
	"github.com/Zuo-Peng/reusevis/internal/dataset"
	"github.com/Zuo-Peng/reusevis/internal/reuse"
)

type Config struct {
	Input    string          `toml:"input" validate:"required"`
	Table    string          `toml:"table"`
	Output   string          `toml:"output" validate:"required"`
	Words    int             `toml:"words" validate:"min=1"`
	Static   bool            `toml:"static"`
	Title    string          `toml:"title"`
	Names    []string        `toml:"names"`
	Format   string          `toml:"format" validate:"oneof=tsv json yaml"`
	LogLevel string          `toml:"log_level" validate:"oneof=debug info warn warning error DEBUG INFO WARN WARNING ERROR"`
	LogFile  string          `toml:"log_file"`
	Columns  dataset.Columns `toml:"columns"`
	Chart    Chart           `toml:"chart"`
}

type Chart struct {
	Width      int    `toml:"width" validate:"min=100"`
	Height     int    `toml:"height" validate:"min=100"`
	Color      string `toml:"color" validate:"hexcolor"`
	AssetsHost string `toml:"assets_host"`
}

// Default mirrors the settings the tool has always shipped with.
func Default() *Config {
	return &Config{
		Input:    "fandom-data.csv",
		Output:   "star-wars-reuse.html",
		Words:    reuse.DefaultChunkSize,
		Title:    chart.DefaultTitle,
		Format:   "tsv",
		LogLevel: "info",
		Columns:  dataset.DefaultColumns(),
		Chart: Chart{
			Width:  800,
			Height: 600,
			Color:  "#CAB2D6",
		},
	}
}

// DefaultPath is where Load looks when no config path is given.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "reusevis", "config.toml")
}

// Load decodes the TOML file at path over the defaults. An empty path falls
// back to DefaultPath, which may be absent; an explicit path must exist.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	home, _ := os.UserHomeDir()
	path = expandHome(path, home)

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		} else if explicit || !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config %s: %w", path, err)
		}
	}

	cfg.Input = expandHome(cfg.Input, home)
	cfg.Output = expandHome(cfg.Output, home)
	cfg.LogFile = expandHome(cfg.LogFile, home)

	return cfg, nil
}

var validate = validator.New()

// Validate checks ranges and enumerations after flags have been applied.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s: failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// ReuseOptions returns the analysis settings.
func (c *Config) ReuseOptions() reuse.Options {
	return reuse.Options{ChunkSize: c.Words, Names: c.Names}
}

// ChartOptions returns the chart settings with the title expanded.
func (c *Config) ChartOptions() chart.Options {
	return chart.Options{
		Title:      chart.Title(c.Title, c.Words),
		Width:      c.Chart.Width,
		Height:     c.Chart.Height,
		Color:      c.Chart.Color,
		AssetsHost: c.Chart.AssetsHost,
	}
}

func expandHome(path, home string) string {
	if home != "" && len(path) > 1 && path[0] == '~' && path[1] == '/' {
		return filepath.Join(home, path[2:])
	}
	return path
}
