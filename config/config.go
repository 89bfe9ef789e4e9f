package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Load loads the configuration from file and environment.
//
// Credentials may come from a yaml config file or from CHIRP_* environment
// variables (e.g. CHIRP_TWITTER_CONSUMER_KEY maps to twitter.consumer_key).
// Values are read once; the returned Config is immutable for the process
// lifetime.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set default values
	setDefaults(v)

	// Bind environment variables
	v.SetEnvPrefix("CHIRP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Look for config in standard locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		// Check current directory first
		v.AddConfigPath(".")

		// Check home directory
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".chirp"))
		}

		// Check /etc
		v.AddConfigPath("/etc/chirp/")
	}

	// Read config file; a missing file is fine when credentials come from
	// the environment.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Register credential keys so env-only values survive Unmarshal.
	v.SetDefault("twitter.consumer_key", "")
	v.SetDefault("twitter.consumer_secret", "")
	v.SetDefault("twitter.client_id", "")
	v.SetDefault("twitter.client_secret", "")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	// Each credential pair must be complete or absent.
	if (cfg.Twitter.ConsumerKey == "") != (cfg.Twitter.ConsumerSecret == "") {
		return fmt.Errorf("twitter.consumer_key and twitter.consumer_secret must be set together")
	}
	if (cfg.Twitter.ClientID == "") != (cfg.Twitter.ClientSecret == "") {
		return fmt.Errorf("twitter.client_id and twitter.client_secret must be set together")
	}

	// Validate logging level
	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	// Validate logging format
	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	return nil
}
