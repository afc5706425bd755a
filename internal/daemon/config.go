// Package daemon manages the CheerLink daemon lifecycle and configuration.
package daemon

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds all daemon configuration.
type Config struct {
	API        APIConfig        `toml:"api"`
	Engagement EngagementConfig `toml:"engagement"`
	Feedback   FeedbackConfig   `toml:"feedback"`
	Telemetry  TelemetryConfig  `toml:"telemetry"`
	Logging    LoggingConfig    `toml:"logging"`
}

// APIConfig controls the HTTP API server.
type APIConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// EngagementConfig tunes the heat engine. Thresholds are the window hit
// counts for levels 1 through 4, ascending.
type EngagementConfig struct {
	WindowMS         int    `toml:"window_ms"`
	LevelDownDelayMS int    `toml:"level_down_delay_ms"`
	Thresholds       [4]int `toml:"thresholds"`
}

// FeedbackConfig controls the haptic transport. An empty bridge URL falls
// back to log-only delivery.
type FeedbackConfig struct {
	BridgeURL string `toml:"bridge_url"`
}

// TelemetryConfig controls observability endpoints.
type TelemetryConfig struct {
	Prometheus bool `toml:"prometheus"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// DefaultConfig returns the shipped configuration.
func DefaultConfig() Config {
	homeDir := cheerHome()
	return Config{
		API: APIConfig{
			Host: "127.0.0.1",
			Port: 11721,
		},
		Engagement: EngagementConfig{
			WindowMS:         30000,
			LevelDownDelayMS: 3000,
			Thresholds:       [4]int{10, 15, 20, 25},
		},
		Feedback: FeedbackConfig{
			BridgeURL: "",
		},
		Telemetry: TelemetryConfig{
			Prometheus: false,
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  filepath.Join(homeDir, "cheerlink.log"),
		},
	}
}

// LoadConfig reads config from ~/.cheerlink/config.toml, falling back to
// defaults.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()
	path := filepath.Join(cheerHome(), "config.toml")

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// SaveConfig writes the config to ~/.cheerlink/config.toml.
func SaveConfig(cfg Config) error {
	path := filepath.Join(cheerHome(), "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	return encoder.Encode(cfg)
}

// cheerHome returns the CheerLink data directory.
func cheerHome() string {
	if env := os.Getenv("CHEERLINK_HOME"); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".cheerlink")
}

// CheerHome is exported for use by other packages.
func CheerHome() string {
	return cheerHome()
}
