package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/viper"
)

// Config holds all application settings, read from
// ~/.timeledger/config.yaml (created with defaults on first run).
type Config struct {
	DataDir       string // base directory for database, logs and session file
	DatabasePath  string // SQLite database file
	ReportsDir    string // where generated PDFs are written
	LogoPath      string // optional image embedded in report headers
	SessionSecret string // HS256 key for the session token file
	LogLevel      string // zap level name: debug, info, warn, error
}

// Load reads the config file, creating it with generated defaults the
// first time the tool runs.
func Load() (*Config, error) {
	dataDir, err := defaultDataDir()
	if err != nil {
		return nil, err
	}
	return LoadFrom(dataDir)
}

// LoadFrom is Load with an explicit data directory, used by tests.
func LoadFrom(dataDir string) (*Config, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dataDir)

	v.SetDefault("database", filepath.Join(dataDir, "timeledger.db"))
	v.SetDefault("reports_dir", filepath.Join(dataDir, "reports"))
	v.SetDefault("logo", "")
	v.SetDefault("log_level", "info")

	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// First run: persist defaults plus a generated session secret
		// so every invocation validates the same tokens.
		v.Set("session_secret", uuid.NewString())
		if err := v.WriteConfigAs(filepath.Join(dataDir, "config.yaml")); err != nil {
			return nil, fmt.Errorf("failed to write default config: %w", err)
		}
	}

	if v.GetString("session_secret") == "" {
		v.Set("session_secret", uuid.NewString())
		if err := v.WriteConfigAs(filepath.Join(dataDir, "config.yaml")); err != nil {
			return nil, fmt.Errorf("failed to persist session secret: %w", err)
		}
	}

	cfg := &Config{
		DataDir:       dataDir,
		DatabasePath:  v.GetString("database"),
		ReportsDir:    v.GetString("reports_dir"),
		LogoPath:      v.GetString("logo"),
		SessionSecret: v.GetString("session_secret"),
		LogLevel:      v.GetString("log_level"),
	}

	if err := os.MkdirAll(cfg.ReportsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create reports directory: %w", err)
	}

	return cfg, nil
}

// SessionPath returns the path of the persisted login token.
func (c *Config) SessionPath() string {
	return filepath.Join(c.DataDir, "session")
}

// LogPath returns the path of the application log file.
func (c *Config) LogPath() string {
	return filepath.Join(c.DataDir, "timeledger.log")
}

func defaultDataDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".timeledger"), nil
}
