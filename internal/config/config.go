// Package config provides configuration types and defaults for strand.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/zjrosen/strand/internal/log"
)

// Config holds all configuration options for strand.
type Config struct {
	// DBPath is the SQLite database file for saved programs.
	// Default: ~/.strand/strand.db
	DBPath string `mapstructure:"db_path"`

	// Catalogs lists directories containing kind catalog YAML files.
	// Every *.yaml file in each directory is loaded at startup.
	Catalogs []string `mapstructure:"catalogs"`

	// AutoReload watches catalog directories and reloads on change.
	AutoReload bool `mapstructure:"auto_reload"`

	UI      UIConfig        `mapstructure:"ui"`
	Cache   CacheConfig     `mapstructure:"cache"`
	Tracing TracingConfig   `mapstructure:"tracing"`
	Flags   map[string]bool `mapstructure:"flags"`
}

// UIConfig holds user interface configuration options.
type UIConfig struct {
	ShowKeys      bool   `mapstructure:"show_keys"`      // Show lookup key column in the browser
	ShowStatusBar bool   `mapstructure:"show_status_bar"`
	MarkdownStyle string `mapstructure:"markdown_style"` // "dark" (default) or "light"
}

// CacheConfig holds program cache tuning.
type CacheConfig struct {
	// TTL is how long a cached program stays valid.
	// Default: 5m
	TTL time.Duration `mapstructure:"ttl"`

	// CleanupInterval is how often expired entries are purged.
	// Default: 10m
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
}

// TracingConfig holds distributed tracing configuration.
type TracingConfig struct {
	// Enabled controls whether tracing is active.
	// Default: false
	Enabled bool `mapstructure:"enabled"`

	// Exporter selects the trace export backend.
	// Options: "none", "file", "stdout", "otlp"
	// Default: "file"
	Exporter string `mapstructure:"exporter"`

	// FilePath is the output file for "file" exporter.
	// Default: ~/.config/strand/traces/traces.jsonl
	FilePath string `mapstructure:"file_path"`

	// OTLPEndpoint is the collector endpoint for "otlp" exporter.
	// Default: "localhost:4317"
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`

	// SampleRate controls trace sampling (0.0 to 1.0).
	// 1.0 = all traces, 0.1 = 10% of traces
	// Default: 1.0
	SampleRate float64 `mapstructure:"sample_rate"`
}

// DefaultDBPath returns the default path for the program database.
// Returns ~/.strand/strand.db or empty string if home dir unavailable.
func DefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".strand", "strand.db")
}

// DefaultCatalogDir returns the default directory for user catalogs.
// Returns ~/.config/strand/catalogs or empty string if home dir unavailable.
func DefaultCatalogDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "strand", "catalogs")
}

// DefaultTracesFilePath returns the default path for trace file export.
// Returns ~/.config/strand/traces/traces.jsonl or empty string if home dir unavailable.
func DefaultTracesFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "strand", "traces", "traces.jsonl")
}

// ValidateCatalogs checks catalog directory configuration for errors.
// Returns nil if catalogs are valid or empty (no catalogs loaded).
func ValidateCatalogs(dirs []string) error {
	seen := make(map[string]int, len(dirs))
	for i, dir := range dirs {
		if dir == "" {
			return fmt.Errorf("catalogs[%d]: directory is required", i)
		}
		if prev, dup := seen[dir]; dup {
			return fmt.Errorf("catalogs[%d]: duplicate of catalogs[%d] (%s)", i, prev, dir)
		}
		seen[dir] = i
	}
	return nil
}

// ValidateCache checks cache configuration for errors.
// Returns nil if the configuration is valid (zero values use defaults).
func ValidateCache(cache CacheConfig) error {
	if cache.TTL < 0 {
		return fmt.Errorf("cache.ttl must not be negative, got %v", cache.TTL)
	}
	if cache.CleanupInterval < 0 {
		return fmt.Errorf("cache.cleanup_interval must not be negative, got %v", cache.CleanupInterval)
	}
	return nil
}

// ValidateTracing checks tracing configuration for errors.
// Returns nil if the configuration is valid (empty values use defaults).
func ValidateTracing(tracing TracingConfig) error {
	// Validate SampleRate is in range [0.0, 1.0]
	if tracing.SampleRate < 0.0 || tracing.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", tracing.SampleRate)
	}

	// Validate Exporter is a valid option
	if tracing.Exporter != "" {
		switch tracing.Exporter {
		case "none", "file", "stdout", "otlp":
			// Valid
		default:
			return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", tracing.Exporter)
		}
	}

	// Only validate path requirements when tracing is enabled
	if tracing.Enabled {
		// FilePath is required when Exporter is "file"
		if tracing.Exporter == "file" && tracing.FilePath == "" {
			return fmt.Errorf("tracing.file_path is required when exporter is \"file\"")
		}

		// OTLPEndpoint is required when Exporter is "otlp"
		if tracing.Exporter == "otlp" && tracing.OTLPEndpoint == "" {
			return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
		}
	}

	return nil
}

// Validate checks the whole configuration for errors.
func Validate(cfg Config) error {
	if err := ValidateCatalogs(cfg.Catalogs); err != nil {
		return err
	}
	if err := ValidateCache(cfg.Cache); err != nil {
		return err
	}
	if err := ValidateTracing(cfg.Tracing); err != nil {
		return err
	}
	return nil
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		DBPath:     "", // Derived from home dir at runtime
		Catalogs:   nil,
		AutoReload: true,
		UI: UIConfig{
			ShowKeys:      true,
			ShowStatusBar: true,
			MarkdownStyle: "dark",
		},
		Cache: CacheConfig{
			TTL:             5 * time.Minute,
			CleanupInterval: 10 * time.Minute,
		},
		Tracing: TracingConfig{
			Enabled:      false,
			Exporter:     "file",
			FilePath:     "", // Derived from config dir at runtime
			OTLPEndpoint: "localhost:4317",
			SampleRate:   1.0,
		},
		Flags: map[string]bool{
			"program-cache": true,
		},
	}
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# Strand Configuration

# Path to the program database (default: ~/.strand/strand.db)
# db_path: /path/to/strand.db

# Catalog directories - every *.yaml file in each directory defines kinds
# catalogs:
#   - ~/.config/strand/catalogs
#   - ./catalogs

# Reload catalogs automatically when their files change
auto_reload: true

# UI settings
ui:
  show_keys: true         # Show lookup key column in the kind browser
  show_status_bar: true   # Show status bar at bottom
  # markdown_style: dark  # Markdown rendering style: "dark" (default) or "light"

# Program cache settings
# cache:
#   ttl: 5m               # How long cached programs stay valid
#   cleanup_interval: 10m # How often expired entries are purged

# Tracing configuration
# Enables visibility into catalog loads, program reads, and decodes
# tracing:
#   enabled: false                 # Enable/disable tracing (default: false)
#   exporter: file                 # Export backend: none, file, stdout, otlp (default: file)
#   file_path: ~/.config/strand/traces/traces.jsonl  # Output file for file exporter
#   otlp_endpoint: localhost:4317  # OTLP collector endpoint (for otlp exporter)
#   sample_rate: 1.0               # Trace sampling rate 0.0-1.0 (default: 1.0)
#
# Example: Send traces to Jaeger via OTLP
# tracing:
#   enabled: true
#   exporter: otlp
#   otlp_endpoint: jaeger.internal:4317
#   sample_rate: 0.1  # Sample 10% of traces

# Feature flags
flags:
  program-cache: true   # Serve program reads through the in-memory cache
  # strict-decode: true # Reject envelopes with unknown fields
  # catalog-watch: true # Watch catalog directories for changes
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	// Create parent directory if needed
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	// Write the template
	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
