// Package config loads the YAML configuration and sets up logging.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
)

// Config is the root of the YAML configuration file.
type Config struct {
	Data    DataConfig    `yaml:"data"`
	Logger  LoggerConfig  `yaml:"logger"`
	Server  ServerConfig  `yaml:"server"`
	Analyze AnalyzeConfig `yaml:"analyze"`
}

type DataConfig struct {
	Path   string `yaml:"path"`
	Comma  string `yaml:"comma"` // "" = detect from header
	Season string `yaml:"season"`
}

type LoggerConfig struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

type ServerConfig struct {
	Port           int      `yaml:"port"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type AnalyzeConfig struct {
	Model  string `yaml:"model"`
	APIKey string `yaml:"api_key"` // falls back to $ANTHROPIC_API_KEY
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Data: DataConfig{
			Path:   "nba_data_processed.csv",
			Season: "2023-2024",
		},
		Logger: LoggerConfig{
			Level: "info",
		},
		Server: ServerConfig{
			Port:           8080,
			AllowedOrigins: []string{"http://localhost:3000"},
		},
		Analyze: AnalyzeConfig{
			Model: "claude-haiku-4-5-20251001",
		},
	}
}

// Load reads a YAML config file over Default(). A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			slog.Debug("config file not found, using defaults", "path", path)
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks values a YAML file could get wrong.
func (c Config) Validate() error {
	if _, err := ParseLevel(c.Logger.Level); err != nil {
		return err
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	if _, err := c.Data.CommaRune(); err != nil {
		return err
	}
	return nil
}

// CommaRune returns the configured delimiter, or 0 for auto-detection.
func (d DataConfig) CommaRune() (rune, error) {
	switch d.Comma {
	case "":
		return 0, nil
	case `\t`, "tab":
		return '\t', nil
	}
	r := []rune(d.Comma)
	if len(r) != 1 {
		return 0, fmt.Errorf("data.comma must be a single character, got %q", d.Comma)
	}
	return r[0], nil
}

// ParseLevel maps a level name to a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

// InitLogger installs the default slog logger writing to w.
func InitLogger(w io.Writer, cfg LoggerConfig) {
	level, _ := ParseLevel(cfg.Level)
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.JSON {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	slog.SetDefault(slog.New(handler))
}
