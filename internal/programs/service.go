// Package programs provides the application service for stored programs:
// chains encoded to their wire form and persisted by name through a
// repository, behind an optional read-through cache, with lifecycle
// events published for anything that wants to react to changes.
package programs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/strand/internal/cachemanager"
	"github.com/zjrosen/strand/internal/flow"
	"github.com/zjrosen/strand/internal/log"
	"github.com/zjrosen/strand/internal/programs/domain"
	"github.com/zjrosen/strand/internal/pubsub"
	"github.com/zjrosen/strand/internal/tracing"
)

// Service errors
var (
	ErrEmptyName = errors.New("program name cannot be empty")
	ErrNilChain  = errors.New("program chain cannot be nil")
)

// CacheTTL is how long a loaded program stays cached before the next
// read goes back to the store.
const CacheTTL = 5 * time.Minute

// cacheName labels this service's cache in logs and span events.
const cacheName = "program-cache"

// Event is the payload published on program lifecycle changes. Deleted
// events carry the identity the program had when it was removed.
type Event struct {
	GUID string
	Name string
}

// Service coordinates program persistence: chain encoding, the
// repository, the read-through cache, and lifecycle events.
type Service struct {
	repo   domain.ProgramRepository
	cache  cachemanager.CacheManager[string, *domain.Program]
	reads  *cachemanager.ReadThroughCache[string, *domain.Program, string]
	broker *pubsub.Broker[Event]
	tracer trace.Tracer
}

// NewService creates a service around the repository. cache and tracer
// may be nil; skipCache sends every read to the store even when a cache
// is present.
func NewService(repo domain.ProgramRepository, cache cachemanager.CacheManager[string, *domain.Program], tracer trace.Tracer, skipCache bool) *Service {
	if cache == nil {
		skipCache = true
	}
	s := &Service{
		repo:   repo,
		cache:  cache,
		broker: pubsub.NewBroker[Event](),
		tracer: tracer,
	}
	s.reads = cachemanager.NewReadThroughCache(cache, s.findStored, skipCache)
	return s
}

// Broker returns the lifecycle event broker for subscribers.
func (s *Service) Broker() *pubsub.Broker[Event] {
	return s.broker
}

// Save encodes the chain and stores it under name, creating a program on
// first save and replacing the stored payload afterwards. An empty
// description leaves any stored description untouched.
func (s *Service) Save(ctx context.Context, name, description string, chain *flow.Chain) (*domain.Program, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if chain == nil {
		return nil, ErrNilChain
	}

	data, err := json.Marshal(chain)
	if err != nil {
		return nil, fmt.Errorf("encoding chain: %w", err)
	}

	var prog *domain.Program
	created := false
	err = tracing.WithSpan(ctx, s.tracer, tracing.SpanPrefixService+"programs.save", func(ctx context.Context) error {
		existing, err := s.repo.FindByName(name)
		var notFound *domain.ProgramNotFoundError
		switch {
		case err == nil:
			existing.SetChain(string(data))
			if description != "" {
				existing.SetDescription(description)
			}
			prog = existing
		case errors.As(err, &notFound):
			prog = domain.NewProgram(uuid.New().String(), name, string(data))
			if description != "" {
				prog.SetDescription(description)
			}
			created = true
		default:
			return fmt.Errorf("looking up program %q: %w", name, err)
		}

		if err := s.repo.Save(prog); err != nil {
			return fmt.Errorf("saving program %q: %w", name, err)
		}

		trace.SpanFromContext(ctx).SetAttributes(attribute.String(tracing.AttrProgramID, prog.GUID()))
		return nil
	},
		attribute.String(tracing.AttrProgramName, name),
		attribute.Int(tracing.AttrOpCount, chain.Len()),
	)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set(ctx, name, prog, CacheTTL)
	}

	eventType := pubsub.UpdatedEvent
	if created {
		eventType = pubsub.CreatedEvent
	}
	s.broker.Publish(eventType, Event{GUID: prog.GUID(), Name: prog.Name()})

	log.Info(log.CatStore, "program saved", "name", prog.Name(), "guid", prog.GUID(), "ops", chain.Len())

	return prog, nil
}

// Load returns the stored program and its decoded chain. Decoding runs on
// every load so canonical operations come back as the registry's current
// shared references rather than stale copies.
func (s *Service) Load(ctx context.Context, name string) (*domain.Program, *flow.Chain, error) {
	if name == "" {
		return nil, nil, ErrEmptyName
	}

	var (
		prog  *domain.Program
		chain *flow.Chain
	)
	err := tracing.WithSpan(ctx, s.tracer, tracing.SpanPrefixService+"programs.get", func(ctx context.Context) error {
		p, err := s.reads.Get(ctx, name, name, CacheTTL)
		if err != nil {
			return err
		}

		c, err := flow.Decode([]byte(p.Chain()))
		if err != nil {
			return fmt.Errorf("decoding program %q: %w", name, err)
		}

		span := trace.SpanFromContext(ctx)
		span.AddEvent(tracing.EventProgramDecoded)
		span.SetAttributes(
			attribute.String(tracing.AttrProgramID, p.GUID()),
			attribute.Int(tracing.AttrOpCount, c.Len()),
		)
		prog, chain = p, c
		return nil
	}, attribute.String(tracing.AttrProgramName, name))
	if err != nil {
		return nil, nil, err
	}

	log.Debug(log.CatStore, "program loaded", "name", name, "ops", chain.Len())

	return prog, chain, nil
}

// List returns stored programs matching the filter, ordered by name.
func (s *Service) List(ctx context.Context, filter domain.ListFilter) ([]*domain.Program, error) {
	var progs []*domain.Program
	err := tracing.WithSpan(ctx, s.tracer, tracing.SpanPrefixService+"programs.list", func(ctx context.Context) error {
		var err error
		progs, err = s.repo.List(filter)
		if err != nil {
			return fmt.Errorf("listing programs: %w", err)
		}
		trace.SpanFromContext(ctx).SetAttributes(attribute.Int(tracing.AttrProgramCount, len(progs)))
		return nil
	})
	return progs, err
}

// Delete removes the named program, drops its cache entry, and publishes
// a deleted event carrying the identity it had.
func (s *Service) Delete(ctx context.Context, name string) error {
	if name == "" {
		return ErrEmptyName
	}

	var removed Event
	err := tracing.WithSpan(ctx, s.tracer, tracing.SpanPrefixService+"programs.delete", func(ctx context.Context) error {
		prog, err := s.repo.FindByName(name)
		if err != nil {
			return err
		}
		if err := s.repo.Delete(name); err != nil {
			return err
		}
		removed = Event{GUID: prog.GUID(), Name: prog.Name()}
		return nil
	}, attribute.String(tracing.AttrProgramName, name))
	if err != nil {
		return err
	}

	if s.cache != nil {
		if err := s.cache.Delete(ctx, name); err != nil {
			log.Warn(log.CatCache, "failed to drop cached program", "cache", cacheName, "name", name, "error", err)
		}
	}
	s.broker.Publish(pubsub.DeletedEvent, removed)

	log.Info(log.CatStore, "program deleted", "name", removed.Name, "guid", removed.GUID)

	return nil
}

// Close shuts down the event broker and releases the repository.
func (s *Service) Close() error {
	s.broker.Close()
	return s.repo.Close()
}

// findStored is the read-through loader. It only runs when the cache
// misses or is skipped, so the miss event doubles as a cache probe.
func (s *Service) findStored(ctx context.Context, name string) (*domain.Program, error) {
	trace.SpanFromContext(ctx).AddEvent(tracing.EventCacheMiss,
		trace.WithAttributes(attribute.String("cache", cacheName)))

	var prog *domain.Program
	err := tracing.WithSpan(ctx, s.tracer, tracing.SpanPrefixRepo+"programs.find", func(context.Context) error {
		var err error
		prog, err = s.repo.FindByName(name)
		return err
	}, attribute.String(tracing.AttrProgramName, name))
	return prog, err
}
