package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Defaults that reproduce the tool's stock behavior when no configuration
// file is supplied.
const (
	DefaultBlocklistPath     = "disposable_email_blocklist.conf"
	DefaultOutputPath        = "validated_emails.csv"
	DefaultDNSTimeoutSeconds = 5
	DefaultWorkers           = 1
)

// Config holds all configuration for the validator.
type Config struct {
	Blocklist BlocklistConfig `yaml:"blocklist"`
	DNS       DNSConfig       `yaml:"dns"`
	Runner    RunnerConfig    `yaml:"runner"`
	Output    OutputConfig    `yaml:"output"`
	Log       LogConfig       `yaml:"log"`
}

// BlocklistConfig holds the disposable-domain list location.
type BlocklistConfig struct {
	Path string `yaml:"path"`
}

// DNSConfig holds MX lookup settings.
type DNSConfig struct {
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

// Timeout returns the configured lookup timeout as a duration.
func (c DNSConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// RunnerConfig holds batch execution settings. Workers of 1 keeps the
// strictly sequential behavior; higher values parallelize MX lookups only.
type RunnerConfig struct {
	Workers int `yaml:"workers"`
}

// OutputConfig holds the result file location.
type OutputConfig struct {
	Path string `yaml:"path"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level        string `yaml:"level"`
	RedactEmails bool   `yaml:"redact_emails"`
}

// Default returns a configuration populated with stock values.
func Default() *Config {
	return &Config{
		Blocklist: BlocklistConfig{Path: DefaultBlocklistPath},
		DNS:       DNSConfig{TimeoutSeconds: DefaultDNSTimeoutSeconds},
		Runner:    RunnerConfig{Workers: DefaultWorkers},
		Output:    OutputConfig{Path: DefaultOutputPath},
		Log:       LogConfig{Level: "info", RedactEmails: true},
	}
}

// Load reads and parses the configuration file. Fields absent from the
// file keep their stock values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	return cfg, nil
}

// applyDefaults backfills zero values so an explicit `workers: 0` cannot
// stall the runner.
func (c *Config) applyDefaults() {
	if c.Blocklist.Path == "" {
		c.Blocklist.Path = DefaultBlocklistPath
	}
	if c.DNS.TimeoutSeconds <= 0 {
		c.DNS.TimeoutSeconds = DefaultDNSTimeoutSeconds
	}
	if c.Runner.Workers <= 0 {
		c.Runner.Workers = DefaultWorkers
	}
	if c.Output.Path == "" {
		c.Output.Path = DefaultOutputPath
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// LoadFromEnv loads configuration with environment variable overrides.
// It automatically loads a .env file (if present) before reading env vars.
// An empty path yields the stock configuration rather than an error, since
// the tool runs without a config file by default.
func LoadFromEnv(path string) (*Config, error) {
	// Load .env file if it exists (no error if missing)
	_ = godotenv.Load()

	var cfg *Config
	if path != "" {
		loaded, err := Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else {
		cfg = Default()
	}

	// Override with environment variables if present
	if v := os.Getenv("BLOCKLIST_PATH"); v != "" {
		cfg.Blocklist.Path = v
	}
	if v := os.Getenv("DNS_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.DNS.TimeoutSeconds = n
		}
	}
	if v := os.Getenv("VALIDATOR_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Runner.Workers = n
		}
	}
	if v := os.Getenv("OUTPUT_PATH"); v != "" {
		cfg.Output.Path = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_REDACT_EMAILS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Log.RedactEmails = b
		}
	}

	return cfg, nil
}
