// Package config loads the uploader configuration from a YAML file, the
// environment, and command line flags. Flags win over file values.
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// Environment variables consulted when the config file and flags leave the
// credentials unset.
const (
	EnvAccessKey = "BUCKETUP_ACCESS_KEY"
	EnvSecretKey = "BUCKETUP_SECRET_KEY"
)

// Config represents the application configuration.
type Config struct {
	Storage     StorageConfig `yaml:"storage" validate:"required"`
	Upload      UploadConfig  `yaml:"upload" validate:"required"`
	LogLevel    string        `yaml:"log_level" validate:"required,oneof=debug info warn error"`
	MetricsAddr string        `yaml:"metrics_addr" validate:"omitempty,hostname_port"`
	Journal     string        `yaml:"journal"`
}

// StorageConfig represents the destination bucket and its credentials.
type StorageConfig struct {
	Endpoint  string `yaml:"endpoint" validate:"required,min=1"`
	Bucket    string `yaml:"bucket" validate:"required,min=1"`
	Region    string `yaml:"region"`
	AccessKey string `yaml:"access_key" validate:"required,min=1"`
	SecretKey string `yaml:"secret_key" validate:"required,min=1"`
	Secure    bool   `yaml:"secure"`
}

// UploadConfig represents upload behaviour.
type UploadConfig struct {
	Workers      int  `yaml:"workers" validate:"min=1,max=256"`
	SkipExisting bool `yaml:"skip_existing"`
	DryRun       bool `yaml:"dry_run"`
}

// Load loads configuration from file, environment, and command line flags.
func Load(configFile string, flags *pflag.FlagSet) (*Config, error) {
	cfg := &Config{
		LogLevel: "info",
		Upload: UploadConfig{
			Workers: 10,
		},
		Storage: StorageConfig{
			Secure: true,
		},
	}

	if configFile != "" {
		if err := loadFromFile(cfg, configFile); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	if err := loadFromFlags(cfg, flags); err != nil {
		return nil, fmt.Errorf("failed to load flags: %w", err)
	}

	loadFromEnv(cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func loadFromFile(cfg *Config, filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return err
	}

	return yaml.Unmarshal(data, cfg)
}

func loadFromFlags(cfg *Config, flags *pflag.FlagSet) error {
	if flags == nil {
		return nil
	}

	if flags.Changed("endpoint") {
		cfg.Storage.Endpoint, _ = flags.GetString("endpoint")
	}
	if flags.Changed("bucket") {
		cfg.Storage.Bucket, _ = flags.GetString("bucket")
	}
	if flags.Changed("region") {
		cfg.Storage.Region, _ = flags.GetString("region")
	}
	if flags.Changed("access-key") {
		cfg.Storage.AccessKey, _ = flags.GetString("access-key")
	}
	if flags.Changed("secret-key") {
		cfg.Storage.SecretKey, _ = flags.GetString("secret-key")
	}
	if flags.Changed("secure") {
		cfg.Storage.Secure, _ = flags.GetBool("secure")
	}

	if flags.Changed("workers") {
		cfg.Upload.Workers, _ = flags.GetInt("workers")
	}
	if flags.Changed("skip-existing") {
		cfg.Upload.SkipExisting, _ = flags.GetBool("skip-existing")
	}
	if flags.Changed("dry-run") {
		cfg.Upload.DryRun, _ = flags.GetBool("dry-run")
	}

	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	if flags.Changed("metrics-addr") {
		cfg.MetricsAddr, _ = flags.GetString("metrics-addr")
	}
	if flags.Changed("journal") {
		cfg.Journal, _ = flags.GetString("journal")
	}

	return nil
}

func loadFromEnv(cfg *Config) {
	if cfg.Storage.AccessKey == "" {
		cfg.Storage.AccessKey = os.Getenv(EnvAccessKey)
	}
	if cfg.Storage.SecretKey == "" {
		cfg.Storage.SecretKey = os.Getenv(EnvSecretKey)
	}
}

func (c *Config) validate() error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	return validate.Struct(c)
}
