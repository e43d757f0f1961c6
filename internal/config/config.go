package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	QtpDiversityConfigPathEnvVar = "QTP_DIVERSITY_CONFIG_PATH" // Environment variable for config path
)

// Config holds all configuration for the plugin
type Config struct {
	// Debug enables verbose logging and additional debug information
	Debug bool `mapstructure:"debug"`

	// Qiita holds the host platform connection settings
	Qiita struct {
		URL          string        `mapstructure:"url"`
		ClientID     string        `mapstructure:"client_id"`
		ClientSecret string        `mapstructure:"client_secret"`
		Timeout      time.Duration `mapstructure:"timeout"`
		// VerifyCert disables TLS certificate verification when false;
		// development Qiita deployments use self-signed certificates
		VerifyCert bool `mapstructure:"verify_cert"`
	} `mapstructure:"qiita"`

	// Plugin holds the plugin identity used at registration time
	Plugin struct {
		Name        string `mapstructure:"name"`
		Version     string `mapstructure:"version"`
		Description string `mapstructure:"description"`
	} `mapstructure:"plugin"`

	// Server configuration for the development host server
	Server struct {
		Host     string        `mapstructure:"host"`
		Port     int           `mapstructure:"port"`
		Timeout  time.Duration `mapstructure:"timeout"`
		LogLevel string        `mapstructure:"log_level"`
	} `mapstructure:"server"`
}

// Load initializes and returns the configuration from all sources:
// 1. Command-line flags (highest priority)
// 2. Environment variables (prefixed with QTP_DIVERSITY_)
// 3. Configuration file (lowest priority)
func Load(configPath string) (*Config, error) {
	// Check for environment variable config path if not explicitly provided
	if configPath == "" {
		if envPath := os.Getenv(QtpDiversityConfigPathEnvVar); envPath != "" {
			if _, err := os.Stat(envPath); os.IsNotExist(err) {
				return nil, fmt.Errorf("config file specified in %s not found: %s", QtpDiversityConfigPathEnvVar, envPath)
			}
			configPath = envPath
		}
	} else {
		// Verify explicitly provided config file exists
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s", configPath)
		}
	}
	v := viper.New()

	// Set default values
	setDefaults(v)

	// Read config file if specified
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Look for config.yml in the current directory
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	// Read environment variables
	v.SetEnvPrefix("QTP_DIVERSITY")
	v.AutomaticEnv()
	// Replace dots with underscores in env vars
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		} else if configPath != "" {
			// Only error if config file was explicitly specified
			return nil, fmt.Errorf("specified config file not found: %s", configPath)
		}
		// If no config file was specified, we'll use defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &config, nil
}

// setDefaults sets default values for all configuration options
func setDefaults(v *viper.Viper) {
	// Qiita host defaults
	v.SetDefault("qiita.url", "https://localhost:21174")
	v.SetDefault("qiita.client_id", "")
	v.SetDefault("qiita.client_secret", "")
	v.SetDefault("qiita.timeout", "30s")
	v.SetDefault("qiita.verify_cert", true)

	// Plugin identity defaults
	v.SetDefault("plugin.name", "Diversity types")
	v.SetDefault("plugin.version", "2023.02")
	v.SetDefault("plugin.description", "Diversity artifacts type plugin")

	// Development server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.timeout", "30s")
	v.SetDefault("server.log_level", "info")
}
