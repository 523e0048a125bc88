package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/strand/internal/cachemanager"
	"github.com/zjrosen/strand/internal/catalog"
	"github.com/zjrosen/strand/internal/config"
	"github.com/zjrosen/strand/internal/flags"
	"github.com/zjrosen/strand/internal/flow"
	"github.com/zjrosen/strand/internal/infrastructure/sqlite"
	"github.com/zjrosen/strand/internal/log"
	"github.com/zjrosen/strand/internal/programs"
	"github.com/zjrosen/strand/internal/programs/domain"
	"github.com/zjrosen/strand/internal/tracing"

	// Register the built-in kinds before any command touches the catalog.
	_ "github.com/zjrosen/strand/internal/opset"
)

func init() {
	// Force lipgloss/termenv to query the terminal background color BEFORE
	// any Bubble Tea program starts. This prevents the terminal's OSC 11
	// response from racing with Bubble Tea's input loop and appearing as
	// garbage text in the UI.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

var (
	version   = "dev"
	cfgFile   string
	debugFlag bool
	cfg       config.Config
)

var rootCmd = &cobra.Command{
	Use:   "strand",
	Short: "A registry and browser for interned operation kinds",
	Long: `Strand manages a process-wide catalog of operation kinds with canonical,
shared instances. Browse kinds interactively, encode and decode operation
chains, and keep reusable programs in a local database.`,
	Version: version,
	RunE:    runBrowse,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/strand/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false,
		"write debug logs to strand-debug.log")
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("auto_reload", defaults.AutoReload)
	viper.SetDefault("ui.show_keys", defaults.UI.ShowKeys)
	viper.SetDefault("ui.show_status_bar", defaults.UI.ShowStatusBar)
	viper.SetDefault("ui.markdown_style", defaults.UI.MarkdownStyle)
	viper.SetDefault("cache.ttl", defaults.Cache.TTL)
	viper.SetDefault("cache.cleanup_interval", defaults.Cache.CleanupInterval)
	viper.SetDefault("tracing.enabled", defaults.Tracing.Enabled)
	viper.SetDefault("tracing.exporter", defaults.Tracing.Exporter)
	viper.SetDefault("tracing.otlp_endpoint", defaults.Tracing.OTLPEndpoint)
	viper.SetDefault("tracing.sample_rate", defaults.Tracing.SampleRate)
	viper.SetDefault("flags", defaults.Flags)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .strand/config.yaml (current directory)
		// 2. ~/.config/strand/config.yaml (user config)
		if _, err := os.Stat(".strand/config.yaml"); err == nil {
			viper.SetConfigFile(".strand/config.yaml")
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "strand"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		// No config file found anywhere - create default at .strand/config.yaml
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			defaultPath := filepath.Join(".strand", "config.yaml")
			if writeErr := config.WriteDefaultConfig(defaultPath); writeErr == nil {
				viper.SetConfigFile(defaultPath)
				_ = viper.ReadInConfig()
			}
			// If write fails, just continue with defaults (no config file)
		}
	}

	_ = viper.Unmarshal(&cfg)
}

// initLogging enables debug logging when requested via the --debug flag
// or the STRAND_DEBUG environment variable. The returned cleanup is safe
// to call either way.
func initLogging(prefix string) (func(), error) {
	if os.Getenv("STRAND_DEBUG") == "" && !debugFlag {
		return func() {}, nil
	}
	logPath := os.Getenv("STRAND_LOG")
	if logPath == "" {
		logPath = "strand-debug.log"
	}
	return log.InitWithTeaLog(logPath, prefix)
}

// catalogDirs returns the configured catalog directories, falling back to
// the default user catalog directory.
func catalogDirs() []string {
	if len(cfg.Catalogs) > 0 {
		return cfg.Catalogs
	}
	if dir := config.DefaultCatalogDir(); dir != "" {
		return []string{dir}
	}
	return nil
}

// loadCatalogs loads every configured catalog directory into the kind
// catalog. Missing directories are skipped; malformed YAML fails.
func loadCatalogs() error {
	for _, dir := range catalogDirs() {
		if _, err := os.Stat(dir); err != nil {
			continue
		}
		if _, err := catalog.LoadDir(dir); err != nil {
			return fmt.Errorf("loading catalog %s: %w", dir, err)
		}
	}
	return nil
}

// decodeChain decodes a chain document with the codec selected by the
// strict-decode feature flag.
func decodeChain(data []byte) (*flow.Chain, error) {
	if flags.New(cfg.Flags).Enabled(flags.FlagStrictDecode) {
		return flow.DecodeStrict(data)
	}
	return flow.Decode(data)
}

// newTracing builds the trace provider from config. Disabled tracing
// yields a no-op provider.
func newTracing() (*tracing.Provider, error) {
	tc := tracing.Config{
		Enabled:      cfg.Tracing.Enabled,
		Exporter:     cfg.Tracing.Exporter,
		FilePath:     cfg.Tracing.FilePath,
		OTLPEndpoint: cfg.Tracing.OTLPEndpoint,
		SampleRate:   cfg.Tracing.SampleRate,
		ServiceName:  "strand",
	}
	if tc.FilePath == "" {
		tc.FilePath = config.DefaultTracesFilePath()
	}
	return tracing.NewProvider(tc)
}

// openPrograms builds the program service stack from config. The cleanup
// closes the service, the database, and the trace provider.
func openPrograms() (*programs.Service, func(), error) {
	dbPath := cfg.DBPath
	if dbPath == "" {
		dbPath = config.DefaultDBPath()
	}
	if dbPath == "" {
		return nil, nil, fmt.Errorf("cannot determine database path; set db_path in config")
	}

	db, err := sqlite.NewDB(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("opening program database: %w", err)
	}

	provider, err := newTracing()
	if err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("initializing tracing: %w", err)
	}

	reg := flags.New(cfg.Flags)
	cache := cachemanager.NewInMemoryCacheManager[string, *domain.Program](
		"programs", cfg.Cache.TTL, cfg.Cache.CleanupInterval)
	svc := programs.NewService(db.ProgramRepository(), cache, provider.Tracer(),
		!reg.Enabled(flags.FlagProgramCache))

	cleanup := func() {
		_ = svc.Close()
		_ = db.Close()
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = provider.Shutdown(ctx)
	}
	return svc, cleanup, nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
