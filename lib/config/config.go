// Copyright 2026 The Scenepanel Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the master configuration for the scene panel.
type Config struct {
	// Host configures the connection to the embedding 3D host.
	Host HostConfig `yaml:"host"`

	// Panel configures presentation and interaction.
	Panel PanelConfig `yaml:"panel"`

	// Log configures diagnostic output.
	Log LogConfig `yaml:"log"`
}

// HostConfig configures the transport to the embedding host.
type HostConfig struct {
	// SocketPath is the Unix socket the host exposes for its event
	// channel. Ignored when Mock is set.
	// Default: ${XDG_RUNTIME_DIR:-/tmp}/scenepanel.sock
	SocketPath string `yaml:"socket_path"`

	// CallTimeout bounds each event-channel call, as a Go duration
	// string. Default: 5s
	CallTimeout string `yaml:"call_timeout"`

	// Mock replaces the host connection with the built-in mock scene.
	// Default: false
	Mock bool `yaml:"mock"`
}

// Timeout parses CallTimeout.
func (h HostConfig) Timeout() (time.Duration, error) {
	duration, err := time.ParseDuration(h.CallTimeout)
	if err != nil {
		return 0, fmt.Errorf("host.call_timeout: %w", err)
	}
	return duration, nil
}

// PanelConfig configures presentation and interaction.
type PanelConfig struct {
	// Title is shown in the panel header.
	// Default: Scene
	Title string `yaml:"title"`

	// ShowShortcuts renders shortcut hints in context menus.
	// Default: true
	ShowShortcuts bool `yaml:"show_shortcuts"`

	// ColorProfile pins the terminal color handling.
	// Values: "auto", "truecolor", "ansi256", "ansi", "none"
	// Default: auto
	ColorProfile string `yaml:"color_profile"`
}

// LogConfig configures diagnostic output. The panel owns the terminal
// while running, so logs default to a file rather than stderr.
type LogConfig struct {
	// Level is the minimum level emitted.
	// Values: "debug", "info", "warn", "error"
	// Default: info
	Level string `yaml:"level"`

	// Format selects the handler.
	// Values: "auto" (text on a terminal, JSON otherwise), "text", "json"
	// Default: auto
	Format string `yaml:"format"`

	// File, when set, receives log output instead of stderr.
	File string `yaml:"file"`
}

// SlogLevel parses Level.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	switch l.Level {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("log.level: unknown level %q", l.Level)
	}
}

// Default returns the built-in configuration. Unlike most fields here,
// these are real operating defaults: the panel runs without any config
// file at all.
func Default() *Config {
	return &Config{
		Host: HostConfig{
			SocketPath:  "${XDG_RUNTIME_DIR:-/tmp}/scenepanel.sock",
			CallTimeout: "5s",
		},
		Panel: PanelConfig{
			Title:         "Scene",
			ShowShortcuts: true,
			ColorProfile:  "auto",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "auto",
		},
	}
}

// Load loads configuration from the SCENEPANEL_CONFIG environment
// variable. There are no fallbacks: if SCENEPANEL_CONFIG is not set,
// this fails. Use [Default] directly when running without a file.
func Load() (*Config, error) {
	configPath := os.Getenv("SCENEPANEL_CONFIG")
	if configPath == "" {
		return nil, fmt.Errorf("SCENEPANEL_CONFIG environment variable not set; " +
			"set it to the path of your scenepanel.yaml config file, or use --config flag")
	}

	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path. The file is
// merged over [Default] values; environment variables do not override
// config values. The only expansion performed is ${VAR} and
// ${VAR:-default} in path fields.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	cfg.expandVariables()

	return cfg, nil
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in path
// fields.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME":            os.Getenv("HOME"),
		"XDG_RUNTIME_DIR": os.Getenv("XDG_RUNTIME_DIR"),
	}

	c.Host.SocketPath = expandVars(c.Host.SocketPath, vars)
	c.Log.File = expandVars(c.Log.File, vars)
}

// expandVars expands ${VAR} and ${VAR:-default} patterns.
var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		// Check provided vars first, then environment.
		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if !c.Host.Mock && c.Host.SocketPath == "" {
		errs = append(errs, fmt.Errorf("host.socket_path is required unless host.mock is set"))
	}
	if _, err := c.Host.Timeout(); err != nil {
		errs = append(errs, err)
	}

	profiles := []string{"auto", "truecolor", "ansi256", "ansi", "none"}
	if !contains(profiles, c.Panel.ColorProfile) {
		errs = append(errs, fmt.Errorf("panel.color_profile must be one of: %v", profiles))
	}

	if _, err := c.Log.SlogLevel(); err != nil {
		errs = append(errs, err)
	}
	formats := []string{"auto", "text", "json"}
	if !contains(formats, c.Log.Format) {
		errs = append(errs, fmt.Errorf("log.format must be one of: %v", formats))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

func contains(slice []string, s string) bool {
	for _, v := range slice {
		if v == s {
			return true
		}
	}
	return false
}
