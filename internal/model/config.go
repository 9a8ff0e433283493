package model

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// StorageConfig holds paths for the local snapshot file and the remote
// database.
type StorageConfig struct {
	// DataDir is where the local snapshot database lives.
	DataDir string `mapstructure:"data_dir" yaml:"data_dir"`

	// RemoteDSN is the sqlx data source name for the remote backend.
	RemoteDSN string `mapstructure:"remote_dsn" yaml:"remote_dsn"`
}

// ChatConfig holds settings for the chat completion integration.
type ChatConfig struct {
	TimeoutSec int `mapstructure:"timeout_sec" yaml:"timeout_sec"`
	CacheSize  int `mapstructure:"cache_size" yaml:"cache_size"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	Storage  StorageConfig `mapstructure:"storage" yaml:"storage"`
	Chat     ChatConfig    `mapstructure:"chat" yaml:"chat"`
	LogLevel string        `mapstructure:"log_level" yaml:"log_level"`
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/severino/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "severino", "config.yaml")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	dataDir := filepath.Join(".", "data")
	if home, err := os.UserHomeDir(); err == nil {
		dataDir = filepath.Join(home, ".local", "share", "severino")
	}
	return &AppConfig{
		Storage: StorageConfig{
			DataDir:   dataDir,
			RemoteDSN: filepath.Join(dataDir, "remote.db"),
		},
		Chat: ChatConfig{
			TimeoutSec: 15,
			CacheSize:  128,
		},
		LogLevel: "info",
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// If the file does not exist, it returns a default configuration.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	defaults := defaultAppConfig()
	v.SetDefault("storage.data_dir", defaults.Storage.DataDir)
	v.SetDefault("storage.remote_dsn", defaults.Storage.RemoteDSN)
	v.SetDefault("chat.timeout_sec", defaults.Chat.TimeoutSec)
	v.SetDefault("chat.cache_size", defaults.Chat.CacheSize)
	v.SetDefault("log_level", defaults.LogLevel)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return defaults, nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return defaults, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := defaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("storage", cfg.Storage)
	v.Set("chat", cfg.Chat)
	v.Set("log_level", cfg.LogLevel)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
