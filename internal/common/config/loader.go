package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

func Load() (*Config, error) {
	loadEnvFile()

	// Base config
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("../../configs")
	viper.AddConfigPath(".")

	// Enable ENV override like API_BASE_URL
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	// Environment-specific overlay, ignored if absent.
	envConfigFile := fmt.Sprintf("config.%s", env)
	viper.SetConfigName(envConfigFile)
	_ = viper.MergeInConfig()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// loadEnvFile loads .env from the working directory or the project root.
func loadEnvFile() {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
	}

	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

// findProjectRoot walks up directories looking for go.mod.
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "portalctl"
	}
	if cfg.App.Environment == "" {
		cfg.App.Environment = "development"
	}
	if cfg.API.Timeout == 0 {
		cfg.API.Timeout = 15000
	}
	if cfg.Channel.DialTimeout == 0 {
		cfg.Channel.DialTimeout = 10000
	}
	if cfg.Channel.WriteTimeout == 0 {
		cfg.Channel.WriteTimeout = 5000
	}
	if cfg.Channel.PingInterval == 0 {
		cfg.Channel.PingInterval = 30000
	}
	if cfg.Channel.MessageBuffer == 0 {
		cfg.Channel.MessageBuffer = 500
	}
	if cfg.Channel.Backoff.Initial == 0 {
		cfg.Channel.Backoff.Initial = 1000
	}
	if cfg.Channel.Backoff.Max == 0 {
		cfg.Channel.Backoff.Max = 30000
	}
	if cfg.Channel.Backoff.Multiplier == 0 {
		cfg.Channel.Backoff.Multiplier = 2.0
	}
	if cfg.Channel.Backoff.Jitter == 0 {
		cfg.Channel.Backoff.Jitter = 0.2
	}
	if cfg.Session.ServiceName == "" {
		cfg.Session.ServiceName = "jobportal"
	}
	if cfg.Session.FileDir == "" {
		cfg.Session.FileDir = "~/.config/jobportal/credentials"
	}
	if cfg.Toast.TTL == 0 {
		cfg.Toast.TTL = 3000
	}
	if cfg.Toast.MaxQueue == 0 {
		cfg.Toast.MaxQueue = 64
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "console"
	}
	if cfg.Metrics.Address == "" {
		cfg.Metrics.Address = ":9091"
	}
}

func validateConfig(cfg *Config) error {
	if cfg.API.BaseURL == "" {
		return fmt.Errorf("api.base_url is required")
	}
	if cfg.Channel.URL == "" {
		return fmt.Errorf("channel.url is required")
	}
	if cfg.Channel.Backoff.Jitter < 0 || cfg.Channel.Backoff.Jitter > 1 {
		return fmt.Errorf("channel.backoff.jitter must be within [0, 1]")
	}
	if cfg.Channel.Backoff.Multiplier < 1 {
		return fmt.Errorf("channel.backoff.multiplier must be >= 1")
	}
	return nil
}
