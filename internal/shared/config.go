package shared

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	TMDB    TMDBConfig    `toml:"tmdb"`
	Storage StorageConfig `toml:"storage"`
	Logging LoggingConfig `toml:"logging"`
	Import  ImportConfig  `toml:"import"`
}

// TMDBConfig contains The Movie Database API credentials.
type TMDBConfig struct {
	APIKey      string `toml:"api_key"`
	AccessToken string `toml:"access_token"`
	BaseURL     string `toml:"base_url"`
	Language    string `toml:"language"`
}

// HasCredentials reports whether either an API key or a read access token is configured.
func (c TMDBConfig) HasCredentials() bool {
	return strings.TrimSpace(c.APIKey) != "" || strings.TrimSpace(c.AccessToken) != ""
}

// StorageConfig contains durable storage settings.
type StorageConfig struct {
	Driver       string `toml:"driver"`
	Path         string `toml:"path"`
	Key          string `toml:"key"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// LoggingConfig contains log level and the log file used by the TUI.
type LoggingConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// ImportConfig contains bulk import settings.
type ImportConfig struct {
	RateLimit float64 `toml:"rate_limit"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Keys missing from the file keep the values of [DefaultConfig].
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config: %v", ErrInvalidConfig, err)
	}

	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ApplyEnv loads the given dotenv files (missing files are ignored) and overrides credentials
// and the storage path from TMDB_API_KEY, TMDB_ACCESS_TOKEN and MVK_STORAGE_PATH.
func (c *Config) ApplyEnv(files ...string) error {
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("failed to load env file %s: %w", f, err)
		}
	}

	if v := os.Getenv("TMDB_API_KEY"); v != "" {
		c.TMDB.APIKey = v
	}
	if v := os.Getenv("TMDB_ACCESS_TOKEN"); v != "" {
		c.TMDB.AccessToken = v
	}
	if v := os.Getenv("MVK_STORAGE_PATH"); v != "" {
		c.Storage.Path = v
	}
	return nil
}
