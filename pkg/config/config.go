package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

type Config struct {
	// Directory archive files are written to. Relative paths are
	// resolved against the process working directory.
	ArchiveDir string `mapstructure:"archive_dir"`

	// Path of the sqlite database holding backup records and settings.
	DBPath string `mapstructure:"db_path"`

	APIHost string `mapstructure:"api_host"`
	APIPort int    `mapstructure:"api_port"`

	// Base URL the CLI commands use to reach the running server.
	ServerURL string `mapstructure:"server_url"`

	SSLCert string `mapstructure:"ssl_cert"`
	SSLKey  string `mapstructure:"ssl_key"`

	CORSOrigins []string `mapstructure:"cors_origins"`

	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"` // "console" or "json"
}

const (
	DefaultArchiveDir = "backups"
	DefaultDBPath     = "pharmvault.db"
	DefaultAPIHost    = "0.0.0.0"
	DefaultAPIPort    = 8240
	DefaultServerURL  = "http://127.0.0.1:8240"
	DefaultLogLevel   = "info"
	DefaultLogFormat  = "console"
)

// Load reads configuration from an optional YAML file with environment
// overrides (PHARMVAULT_ prefix). An empty path means defaults plus
// environment only.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetDefault("archive_dir", DefaultArchiveDir)
	v.SetDefault("db_path", DefaultDBPath)
	v.SetDefault("api_host", DefaultAPIHost)
	v.SetDefault("api_port", DefaultAPIPort)
	v.SetDefault("server_url", DefaultServerURL)
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("log_format", DefaultLogFormat)

	v.SetEnvPrefix("PHARMVAULT")
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.ArchiveDir == "" {
		return fmt.Errorf("archive_dir is required")
	}

	if c.DBPath == "" {
		return fmt.Errorf("db_path is required")
	}

	if c.APIPort <= 0 || c.APIPort > 65535 {
		return fmt.Errorf("api_port must be between 1 and 65535")
	}

	if c.ServerURL == "" {
		return fmt.Errorf("server_url is required")
	}

	if c.SSLCert != "" || c.SSLKey != "" {
		if c.SSLCert == "" || c.SSLKey == "" {
			return fmt.Errorf("both ssl_cert and ssl_key must be provided")
		}
		if _, err := os.Stat(c.SSLCert); os.IsNotExist(err) {
			return fmt.Errorf("ssl_cert file does not exist: %s", c.SSLCert)
		}
		if _, err := os.Stat(c.SSLKey); os.IsNotExist(err) {
			return fmt.Errorf("ssl_key file does not exist: %s", c.SSLKey)
		}
	}

	return nil
}

func (c *Config) IsDevMode() bool {
	return os.Getenv("PHARMVAULT_DEV_MODE") == "1"
}
