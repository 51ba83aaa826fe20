// =============================================================================
// Order Transformer - Configuration Module
// =============================================================================
//
// This module loads the application configuration from a YAML file, applies
// defaults and validates the result. Configuration covers the three
// concerns surrounding the transformation core: where blobs live (storage),
// how the polling worker behaves, and how the process logs.
//
// The transformation pipeline itself is configuration-free: its schema,
// validation rules and lookup tables are fixed.
//
// =============================================================================

package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultPath is where the configuration file is looked up when the
// --config flag is not given.
const DefaultPath = "config.yaml"

// =============================================================================
// CONFIGURATION STRUCTURES
// =============================================================================

// Config is the full application configuration.
type Config struct {
	Storage StorageConfig `yaml:"storage"`
	Worker  WorkerConfig  `yaml:"worker"`
	Logging LoggingConfig `yaml:"logging"`
}

// StorageConfig selects and parameterizes the blob storage backend.
type StorageConfig struct {
	// Provider selects the backend: "local" or "gcs".
	// Default: "local"
	Provider string `yaml:"provider"`

	// RootDir is the root directory for the local provider.
	// Default: "./data"
	RootDir string `yaml:"root_dir"`

	// Bucket is the bucket name for the gcs provider. When empty, the
	// GCS_BUCKET environment variable is consulted.
	Bucket string `yaml:"bucket"`

	// InputPrefix is the key prefix the worker polls for new documents.
	// Default: "input/"
	InputPrefix string `yaml:"input_prefix"`

	// OutputPrefix is where rendered JSON documents are written.
	// Default: "output/"
	OutputPrefix string `yaml:"output_prefix"`

	// ProcessedPrefix is where successfully processed inputs are moved.
	// Default: "processed/"
	ProcessedPrefix string `yaml:"processed_prefix"`

	// FailedPrefix is where failed inputs are moved.
	// Default: "failed/"
	FailedPrefix string `yaml:"failed_prefix"`

	// ReportsPrefix is where validation report workbooks are written.
	// Default: "reports/"
	ReportsPrefix string `yaml:"reports_prefix"`
}

// WorkerConfig controls the polling loop.
type WorkerConfig struct {
	// PollingIntervalSeconds is the delay between storage scans.
	// Default: 5
	PollingIntervalSeconds int `yaml:"polling_interval_seconds"`

	// MaxConcurrency caps how many blobs are transformed at once.
	// Set to 1 for sequential processing.
	// Default: 4
	MaxConcurrency int `yaml:"max_concurrency"`

	// DisableValidationReports turns off the XLSX validation report
	// artifact for batches that produced findings.
	// Default: false (reports are written)
	DisableValidationReports bool `yaml:"disable_validation_reports"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	// Level is one of "debug", "info", "warn", "error".
	// Default: "info"
	Level string `yaml:"level"`

	// Format is "text" or "json".
	// Default: "text"
	Format string `yaml:"format"`
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads the configuration from the given path, applies defaults and
// validates it. A missing file at the default path is not an error: the
// defaults describe a working local setup.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	case os.IsNotExist(err) && path == DefaultPath:
		cfg = Config{}
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset options.
func applyDefaults(cfg *Config) {
	if cfg.Storage.Provider == "" {
		cfg.Storage.Provider = "local"
	}
	if cfg.Storage.RootDir == "" {
		cfg.Storage.RootDir = "./data"
	}
	if cfg.Storage.Bucket == "" {
		cfg.Storage.Bucket = os.Getenv("GCS_BUCKET")
	}
	if cfg.Storage.InputPrefix == "" {
		cfg.Storage.InputPrefix = "input/"
	}
	if cfg.Storage.OutputPrefix == "" {
		cfg.Storage.OutputPrefix = "output/"
	}
	if cfg.Storage.ProcessedPrefix == "" {
		cfg.Storage.ProcessedPrefix = "processed/"
	}
	if cfg.Storage.FailedPrefix == "" {
		cfg.Storage.FailedPrefix = "failed/"
	}
	if cfg.Storage.ReportsPrefix == "" {
		cfg.Storage.ReportsPrefix = "reports/"
	}

	if cfg.Worker.PollingIntervalSeconds == 0 {
		cfg.Worker.PollingIntervalSeconds = 5
	}
	if cfg.Worker.MaxConcurrency == 0 {
		cfg.Worker.MaxConcurrency = 4
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
}

// validate rejects configurations the worker could not run with.
func validate(cfg *Config) error {
	switch strings.ToLower(cfg.Storage.Provider) {
	case "local":
		if cfg.Storage.RootDir == "" {
			return fmt.Errorf("storage.root_dir is required for the local provider")
		}
	case "gcs":
		if cfg.Storage.Bucket == "" {
			return fmt.Errorf("storage.bucket (or GCS_BUCKET) is required for the gcs provider")
		}
	default:
		return fmt.Errorf("unknown storage provider %q", cfg.Storage.Provider)
	}

	prefixes := map[string]string{
		"storage.input_prefix":     cfg.Storage.InputPrefix,
		"storage.output_prefix":    cfg.Storage.OutputPrefix,
		"storage.processed_prefix": cfg.Storage.ProcessedPrefix,
		"storage.failed_prefix":    cfg.Storage.FailedPrefix,
		"storage.reports_prefix":   cfg.Storage.ReportsPrefix,
	}
	for name, prefix := range prefixes {
		if !strings.HasSuffix(prefix, "/") {
			return fmt.Errorf("%s must end with '/': %q", name, prefix)
		}
	}

	if cfg.Worker.PollingIntervalSeconds < 1 {
		return fmt.Errorf("worker.polling_interval_seconds must be at least 1")
	}
	if cfg.Worker.MaxConcurrency < 1 {
		return fmt.Errorf("worker.max_concurrency must be at least 1")
	}

	return nil
}
