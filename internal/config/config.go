// Package config loads and persists budgetcast configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds all budgetcast configuration.
type Config struct {
	General     GeneralConfig     `toml:"general"`
	YNAB        YNABConfig        `toml:"ynab"`
	Simulations SimulationsConfig `toml:"simulations"`
	Server      ServerConfig      `toml:"server"`
	Appearance  AppearanceConfig  `toml:"appearance"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	DefaultDays int    `toml:"default_days"`
	Currency    string `toml:"currency"`
}

// YNABConfig holds budget API access settings.
type YNABConfig struct {
	Token    string `toml:"token,omitempty"`
	BudgetID string `toml:"budget_id,omitempty"`
	BaseURL  string `toml:"base_url,omitempty"`
}

// SimulationsConfig holds the what-if scenario settings.
type SimulationsConfig struct {
	Dir string `toml:"dir,omitempty"`
}

// ServerConfig holds HTTP API settings.
type ServerConfig struct {
	Addr string `toml:"addr,omitempty"`
}

// AppearanceConfig holds terminal UI preferences.
type AppearanceConfig struct {
	Theme string `toml:"theme,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			DefaultDays: 300,
			Currency:    "EUR",
		},
		Server: ServerConfig{
			Addr: "127.0.0.1:8484",
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "budgetcast")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "budgetcast")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// DataDir returns the XDG-compliant data directory for local state.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "budgetcast")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "budgetcast")
}

// SnapshotPath returns the path of the SQLite snapshot cache.
func SnapshotPath() string {
	return filepath.Join(DataDir(), "snapshots.db")
}

// SimulationsDir returns the configured simulations directory, defaulting to
// a folder next to the config file.
func (c Config) SimulationsDir() string {
	if c.Simulations.Dir != "" {
		return c.Simulations.Dir
	}
	return filepath.Join(ConfigDir(), "simulations")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Token returns the YNAB access token from the environment or config, in
// that order. A .env file in the working directory is honored by the CLI
// before this runs.
func Token(cfg Config) string {
	if tok := os.Getenv("BUDGETCAST_YNAB_TOKEN"); tok != "" {
		return tok
	}
	return cfg.YNAB.Token
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}
