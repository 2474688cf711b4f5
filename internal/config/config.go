// Package config provides configuration management for wowvault using Viper.
package config

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/tdalbo/wowvault/internal/paths"
)

// Config represents the top-level configuration structure.
type Config struct {
	Version  int            `mapstructure:"version" yaml:"version"`
	Backup   BackupConfig   `mapstructure:"backup" yaml:"backup"`
	Conflict ConflictConfig `mapstructure:"conflict" yaml:"conflict"`
	Scan     ScanConfig     `mapstructure:"scan" yaml:"scan"`
}

// BackupConfig controls where and how backups are written.
type BackupConfig struct {
	// Destination is the directory backups are written under.
	Destination string `mapstructure:"destination" yaml:"destination"`

	// TimestampFolder appends a timestamp to each backup directory name.
	TimestampFolder bool `mapstructure:"timestamp_folder" yaml:"timestamp_folder"`

	// ValidateIntegrity verifies every copied file against its source
	// hashes after the copy phase.
	ValidateIntegrity bool `mapstructure:"validate_integrity" yaml:"validate_integrity"`

	// WriteMetadata writes a manifest into each backup directory.
	WriteMetadata bool `mapstructure:"write_metadata" yaml:"write_metadata"`
}

// ConflictConfig controls destination-collision handling.
type ConflictConfig struct {
	// Strategy is one of overwrite, skip, backup, prompt.
	Strategy string `mapstructure:"strategy" yaml:"strategy"`

	// BackupSuffix is appended to files copied aside under the backup
	// strategy.
	BackupSuffix string `mapstructure:"backup_suffix" yaml:"backup_suffix"`
}

// ScanConfig controls installation discovery.
type ScanConfig struct {
	// Paths are the directories searched for WoW installations.
	Paths []string `mapstructure:"paths" yaml:"paths"`

	// MaxDepth bounds how deep the scan descends below each path.
	MaxDepth int `mapstructure:"max_depth" yaml:"max_depth"`

	// IncludePTR includes test-realm installations in scan results.
	IncludePTR bool `mapstructure:"include_ptr" yaml:"include_ptr"`

	// IncludeBeta includes beta installations in scan results.
	IncludeBeta bool `mapstructure:"include_beta" yaml:"include_beta"`
}

// Init initializes Viper with default configuration.
// Call this once at application startup before accessing config values.
func Init() {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Search paths (in order of precedence)
	viper.AddConfigPath(".")
	viper.AddConfigPath(filepath.Join(paths.ConfigHome(), paths.AppName))

	viper.SetEnvPrefix("WOWVAULT")
	viper.AutomaticEnv()

	viper.SetDefault("version", 1)
	viper.SetDefault("backup.destination", paths.DefaultBackupDir())
	viper.SetDefault("backup.timestamp_folder", true)
	viper.SetDefault("backup.validate_integrity", true)
	viper.SetDefault("backup.write_metadata", true)
	viper.SetDefault("conflict.strategy", "overwrite")
	viper.SetDefault("conflict.backup_suffix", ".backup")
	viper.SetDefault("scan.paths", paths.DefaultScanPaths())
	viper.SetDefault("scan.max_depth", 3)
	viper.SetDefault("scan.include_ptr", false)
	viper.SetDefault("scan.include_beta", false)
}

// Load reads the configuration file.
// If path is provided, it reads from that specific file.
// If path is empty, it searches in the default locations.
// Returns the loaded configuration or default values if no file is found (when path is empty).
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// An explicit path must exist; implicit loads fall back to
			// defaults.
			if path != "" {
				return nil, fmt.Errorf("config file not found at %s: %w", path, err)
			}
		} else {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// Default returns the configuration wowvault starts from when no file
// exists. It is what `wowvault init` writes to disk.
func Default() *Config {
	return &Config{
		Version: 1,
		Backup: BackupConfig{
			Destination:       paths.DefaultBackupDir(),
			TimestampFolder:   true,
			ValidateIntegrity: true,
			WriteMetadata:     true,
		},
		Conflict: ConflictConfig{
			Strategy:     "overwrite",
			BackupSuffix: ".backup",
		},
		Scan: ScanConfig{
			Paths:    paths.DefaultScanPaths(),
			MaxDepth: 3,
		},
	}
}

// DefaultPath returns where `wowvault init` writes the config file.
func DefaultPath() string {
	return filepath.Join(paths.ConfigHome(), paths.AppName, "config.yaml")
}
