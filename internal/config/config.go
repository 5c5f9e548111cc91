package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jfmyers9/playlog/internal/pager"
	"github.com/jfmyers9/playlog/pkg/trackapi"
	"github.com/spf13/viper"
)

const (
	// DefaultRequestTimeout bounds a single page fetch
	DefaultRequestTimeout = 15 * time.Second

	envPrefix = "PLAYLOG"
)

// Config holds application configuration
type Config struct {
	// Tracks API origin including the /api prefix
	// Default: "http://localhost:6789/api"
	APIURL string

	// Records per page, used to derive the last page
	PageSize int

	// Per-request timeout; zero disables it
	RequestTimeout time.Duration

	// Row template for the page command's text output
	// Default: render.DefaultRowFormat (empty here)
	RowFormat string

	Log LogConfig
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string // debug, info, warn, error
	File  string // Empty logs to stderr, except for browse
}

// Load reads configuration from file and environment
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// Config file locations (in order of precedence)
	configDir := getConfigDir()
	v.AddConfigPath(configDir)
	v.AddConfigPath(".")

	// Set defaults
	v.SetDefault("api_url", trackapi.DefaultBaseURL)
	v.SetDefault("page_size", pager.DefaultPageSize)
	v.SetDefault("request_timeout", int(DefaultRequestTimeout/time.Second))
	v.SetDefault("row_format", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")

	// Read config file (optional - don't fail if missing)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	// Read from environment variables (log.level -> PLAYLOG_LOG_LEVEL)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Map config to struct
	cfg := &Config{
		APIURL:         v.GetString("api_url"),
		PageSize:       v.GetInt("page_size"),
		RequestTimeout: time.Duration(v.GetInt("request_timeout")) * time.Second,
		RowFormat:      v.GetString("row_format"),
		Log: LogConfig{
			Level: v.GetString("log.level"),
			File:  v.GetString("log.file"),
		},
	}

	return cfg, nil
}

// getConfigDir returns the configuration directory path
// Creates the directory if it doesn't exist
func getConfigDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "."
	}

	configDir := filepath.Join(homeDir, ".config", "playlog")

	// Create config directory if it doesn't exist
	_ = os.MkdirAll(configDir, 0755)

	return configDir
}

// GetConfigDir returns the configuration directory path (public helper)
func GetConfigDir() string {
	return getConfigDir()
}

// GetDataDir returns the directory for the browse log file
func GetDataDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(homeDir, ".local", "share", "playlog")
}

// Save writes configuration to file
func (c *Config) Save() error {
	v := viper.New()

	// Set config file path
	configDir := getConfigDir()
	configFile := filepath.Join(configDir, "config.yaml")

	// Set values in viper
	v.Set("api_url", c.APIURL)
	v.Set("page_size", c.PageSize)
	v.Set("request_timeout", int(c.RequestTimeout/time.Second))
	v.Set("row_format", c.RowFormat)
	v.Set("log.level", c.Log.Level)
	v.Set("log.file", c.Log.File)

	// Write to file
	return v.WriteConfigAs(configFile)
}
