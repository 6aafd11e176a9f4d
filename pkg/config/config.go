/*
Package config manages TOML config for the spellserve services.
*/
package config

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/spellserve/spellserve/internal/utils"
)

// Config holds the entire config structure
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Lexicon LexiconConfig `toml:"lexicon"`
	CLI     CliConfig     `toml:"cli"`
}

// ServerConfig has server related options.
type ServerConfig struct {
	Enabled        bool `toml:"enabled"`
	MaxSuggestions int  `toml:"max_suggestions"`
	MaxTokenLen    int  `toml:"max_token_len"`
	MaxLimit       int  `toml:"max_limit"`
}

// LexiconConfig holds lexicon data options.
type LexiconConfig struct {
	DataDir         string `toml:"data_dir"`
	DefaultLanguage string `toml:"default_language"`
}

// CliConfig holds cli interface options.
type CliConfig struct {
	DefaultLanguage string `toml:"default_language"`
	ShowScores      bool   `toml:"show_scores"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Enabled:        true,
			MaxSuggestions: 5,
			MaxTokenLen:    60,
			MaxLimit:       64,
		},
		Lexicon: LexiconConfig{
			DataDir:         "data/",
			DefaultLanguage: "en-US",
		},
		CLI: CliConfig{
			DefaultLanguage: "en-US",
			ShowScores:      false,
		},
	}
}

// GetConfigDir returns the config directory with fallback priority:
// 1. ~/.config/spellserve
// 2. Current executable dir
// 3. builtin defaults
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Errorf("Failed to get home directory: %v", err)
		return utils.GetExecutableDir()
	}
	primaryPath := filepath.Join(homeDir, ".config", "spellserve")
	if err := utils.EnsureDir(primaryPath); err == nil {
		return primaryPath, nil
	}
	return utils.GetExecutableDir()
}

// GetDefaultConfigPath returns the default path for config.toml
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}

	config, err := LoadConfig(configPath)
	if err != nil {
		log.Warnf("Failed to load config from %s: %v. Using built-in defaults...", configPath, err)
		return DefaultConfig(), nil
	}
	return config, nil
}

// LoadConfig loads from a TOML file. Missing keys keep their defaults.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()
	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		return nil, err
	}
	return config, nil
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}

// Update changes the config values and saves to file
func (c *Config) Update(configPath string, enabled *bool, maxSuggestions *int) error {
	if enabled != nil {
		c.Server.Enabled = *enabled
	}
	if maxSuggestions != nil {
		c.Server.MaxSuggestions = *maxSuggestions
	}
	return SaveConfig(c, configPath)
}
