// Package config resolves sift's two configuration surfaces: the
// per-invocation search request built from positional arguments and the
// environment, and the ambient settings file covering everything else
// (history, index, logging, UI).
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

type Config struct {
	History HistoryConfig `mapstructure:"history"`
	Index   IndexConfig   `mapstructure:"index"`
	Log     LogConfig     `mapstructure:"log"`
	UI      UIConfig      `mapstructure:"ui"`
}

type HistoryConfig struct {
	Path    string `mapstructure:"path"`
	Enabled bool   `mapstructure:"enabled"`
	Limit   int    `mapstructure:"limit"`
}

type IndexConfig struct {
	Dir string `mapstructure:"dir"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	Path  string `mapstructure:"path"`
}

type UIConfig struct {
	Colors       UIColors `mapstructure:"colors"`
	PreviewWidth int      `mapstructure:"preview_width"`
}

type UIColors struct {
	Primary string `mapstructure:"primary"`
	Accent  string `mapstructure:"accent"`
	Muted   string `mapstructure:"muted"`
	Error   string `mapstructure:"error"`
}

func defaultConfig() *Config {
	homeDir, _ := os.UserHomeDir()

	return &Config{
		History: HistoryConfig{
			Path:    filepath.Join(homeDir, ".sift", "history.db"),
			Enabled: false,
			Limit:   100,
		},
		Index: IndexConfig{
			Dir: filepath.Join(homeDir, ".sift", "index.bleve"),
		},
		Log: LogConfig{
			Level: "off",
			Path:  filepath.Join(homeDir, ".sift", "sift.log"),
		},
		UI: UIConfig{
			Colors: UIColors{
				Primary: "#FF6B6B",
				Accent:  "#4ECDC4",
				Muted:   "#94A3B8",
				Error:   "#F87171",
			},
			PreviewWidth: 120,
		},
	}
}

// Load reads the ambient configuration. A missing config file is not an
// error; defaults and SIFT_* environment variables still apply. The
// search request contract (pattern, path, IGNORE_CASE) is never sourced
// from here.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	cfg := defaultConfig()
	v.SetDefault("history", cfg.History)
	v.SetDefault("index", cfg.Index)
	v.SetDefault("log", cfg.Log)
	v.SetDefault("ui", cfg.UI)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		homeDir, _ := os.UserHomeDir()
		configDir := filepath.Join(homeDir, ".config", "sift")

		v.SetConfigName("config")
		v.SetConfigType("toml")
		v.AddConfigPath(configDir)
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("SIFT")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	expandPaths(&config)

	return &config, nil
}

// expandPath expands ~ to the home directory and converts to an absolute path.
func expandPath(path string) string {
	if path == "" {
		return path
	}

	if len(path) >= 2 && path[:2] == "~/" {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}

	if !filepath.IsAbs(path) {
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
	}

	return path
}

func expandPaths(cfg *Config) {
	cfg.History.Path = expandPath(cfg.History.Path)
	cfg.Index.Dir = expandPath(cfg.Index.Dir)
	cfg.Log.Path = expandPath(cfg.Log.Path)
}

func Save(config *Config, path string) error {
	v := viper.New()

	v.Set("history", map[string]interface{}{
		"path":    config.History.Path,
		"enabled": config.History.Enabled,
		"limit":   config.History.Limit,
	})
	v.Set("index", map[string]interface{}{
		"dir": config.Index.Dir,
	})
	v.Set("log", map[string]interface{}{
		"level": config.Log.Level,
		"path":  config.Log.Path,
	})
	v.Set("ui", map[string]interface{}{
		"preview_width": config.UI.PreviewWidth,
		"colors": map[string]interface{}{
			"primary": config.UI.Colors.Primary,
			"accent":  config.UI.Colors.Accent,
			"muted":   config.UI.Colors.Muted,
			"error":   config.UI.Colors.Error,
		},
	})

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	return v.WriteConfigAs(path)
}

func GenerateDefaultConfig(path string) error {
	return Save(defaultConfig(), path)
}
