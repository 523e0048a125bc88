package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/zjrosen/strand/internal/catalog"
	"github.com/zjrosen/strand/internal/config"
	"github.com/zjrosen/strand/internal/flags"
	"github.com/zjrosen/strand/internal/pubsub"
)

var watchDebounce time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch catalog directories and reload on change",
	Long: `Watch the configured catalog directories and reload kind definitions
whenever a file changes. Each reload prints a summary.

Requires the catalog-watch feature flag:

  flags:
    catalog-watch: true

Examples:
  strand watch
  strand watch --debounce 1s`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 500*time.Millisecond,
		"Quiet period before reloading after a change")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(_ *cobra.Command, _ []string) error {
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	reg := flags.New(cfg.Flags)
	if !reg.Enabled(flags.FlagCatalogWatch) {
		return fmt.Errorf("catalog watching is disabled; enable the %q flag in config", flags.FlagCatalogWatch)
	}

	cleanup, err := initLogging("strand-watch")
	if err != nil {
		return fmt.Errorf("initializing logging: %w", err)
	}
	defer cleanup()

	provider, err := newTracing()
	if err != nil {
		return fmt.Errorf("initializing tracing: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = provider.Shutdown(shutdownCtx)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	broker := pubsub.NewBroker[catalog.Result]()
	defer broker.Close()
	svc := catalog.NewService(catalogDirs(), broker, provider.Tracer())

	res, err := svc.Load(ctx)
	if err != nil {
		return fmt.Errorf("initial catalog load: %w", err)
	}
	printCatalogResult(res)

	events := broker.Subscribe(ctx)
	go func() {
		for ev := range events {
			printCatalogResult(ev.Payload)
		}
	}()

	fmt.Println("Watching for catalog changes. Press Ctrl+C to stop.")
	return svc.Watch(ctx, watchDebounce)
}

// printCatalogResult prints one reload summary.
func printCatalogResult(res catalog.Result) {
	fmt.Printf("Loaded %d catalog file(s): %d kind(s) defined, %d skipped\n",
		res.Files, len(res.Defined), len(res.Skipped))
	for _, name := range res.Skipped {
		fmt.Printf("  skipped: %s\n", name)
	}
}
