package catalog

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/strand/internal/log"
	"github.com/zjrosen/strand/internal/pubsub"
	"github.com/zjrosen/strand/internal/tracing"
	"github.com/zjrosen/strand/internal/watcher"
)

// Service loads catalog search paths and announces reloads.
type Service struct {
	dirs   []string
	broker *pubsub.Broker[Result]
	tracer trace.Tracer
}

// NewService creates a catalog service over the given search paths.
// Broker and tracer may be nil.
func NewService(dirs []string, broker *pubsub.Broker[Result], tracer trace.Tracer) *Service {
	return &Service{dirs: dirs, broker: broker, tracer: tracer}
}

// Dirs returns the configured search paths.
func (s *Service) Dirs() []string {
	return s.dirs
}

// Load walks every configured directory and defines the kinds its catalog
// files declare. Missing directories are skipped so a fresh install works
// before any catalog exists. A reload event with the merged result is
// published on success.
func (s *Service) Load(ctx context.Context) (Result, error) {
	var res Result
	err := tracing.WithSpan(ctx, s.tracer, tracing.SpanPrefixCatalog+"load", func(ctx context.Context) error {
		for _, dir := range s.dirs {
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				log.Debug(log.CatCatalog, "catalog directory missing, skipping", "dir", dir)
				continue
			}

			dirRes, err := LoadDir(dir)
			if err != nil {
				return fmt.Errorf("loading catalog dir %s: %w", dir, err)
			}
			log.Info(log.CatCatalog, "catalog directory loaded",
				"dir", dir,
				"files", dirRes.Files,
				"defined", len(dirRes.Defined),
				"skipped", len(dirRes.Skipped))
			res.merge(dirRes)
		}
		trace.SpanFromContext(ctx).SetAttributes(
			attribute.Int(tracing.AttrKindCount, len(res.Defined)),
		)
		return nil
	}, attribute.Int("catalog.dirs", len(s.dirs)))
	if err != nil {
		return Result{}, err
	}

	if s.broker != nil {
		s.broker.Publish(pubsub.ReloadedEvent, res)
	}
	return res, nil
}

// Watch reloads catalogs whenever their files change, until ctx is done.
// Only directories that exist when Watch is called are monitored.
func (s *Service) Watch(ctx context.Context, debounce time.Duration) error {
	dirs := make([]string, 0, len(s.dirs))
	for _, dir := range s.dirs {
		if _, err := os.Stat(dir); err == nil {
			dirs = append(dirs, dir)
		}
	}
	if len(dirs) == 0 {
		return fmt.Errorf("no catalog directories exist to watch")
	}

	w, err := watcher.New(watcher.Config{Dirs: dirs, DebounceDur: debounce})
	if err != nil {
		return err
	}
	defer func() { _ = w.Stop() }()

	onChange, err := w.Start()
	if err != nil {
		return err
	}

	log.Info(log.CatWatch, "watching catalog directories", "dirs", len(dirs), "debounce", debounce)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-onChange:
			log.Debug(log.CatWatch, "catalog change detected, reloading")
			if _, err := s.Load(ctx); err != nil {
				// Keep watching; a half-written file will settle on the next save
				log.ErrorErr(log.CatWatch, "catalog reload failed", err)
			}
		}
	}
}
