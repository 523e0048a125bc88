package op

import (
	"fmt"
	"slices"
	"sync"
)

// Spec declares a concrete operation kind.
type Spec struct {
	// Name uniquely identifies the kind; encoded operations reference it.
	Name string
	// Doc is markdown describing the kind, shown by inspection tooling.
	Doc string
	// Params are the kind's declared default params.
	Params []int
	// Resolver overrides the built-in lookup-key policy for this kind.
	Resolver KeyFunc
	// Additional pre-registers canonical entries for non-default argument
	// records. Each must resolve to a distinct, previously unused key.
	Additional []Args
	// SuppressDefault disables the default-arguments canonical entry:
	// every construction yields a standalone instance.
	SuppressDefault bool
}

// Kind describes one concrete operation type and owns its registry
// namespace. Kinds are created through DefineKind or Derive, never directly.
type Kind struct {
	name            string
	doc             string
	parent          *Kind
	defaults        Args
	resolver        KeyFunc // nil selects the built-in default policy
	suppressDefault bool
	registered      map[Key]Args
	keys            []Key // registration order, default entry first

	seedOnce sync.Once
	mu       sync.RWMutex
	entries  map[Key]*Op
}

// DefineKind validates a spec, registers the kind in the process-wide
// catalog, and returns it. Key collisions between declared entries fail
// here, before any instance exists.
func DefineKind(spec Spec) (*Kind, error) {
	k, err := newKind(spec, nil)
	if err != nil {
		return nil, err
	}
	if err := catalog.add(k); err != nil {
		return nil, err
	}
	return k, nil
}

// MustDefineKind is DefineKind that panics on error, for static definitions.
func MustDefineKind(spec Spec) *Kind {
	k, err := DefineKind(spec)
	if err != nil {
		panic(err)
	}
	return k
}

// Derive defines a child kind with its own independent registry namespace.
// Nil Params or Resolver in the child spec inherit the parent's; entries are
// still seeded separately, so the child's default instance and the parent's
// are always distinct references.
func (k *Kind) Derive(spec Spec) (*Kind, error) {
	child, err := newKind(spec, k)
	if err != nil {
		return nil, err
	}
	if err := catalog.add(child); err != nil {
		return nil, err
	}
	return child, nil
}

// newKind builds and validates a kind without touching the catalog.
func newKind(spec Spec, parent *Kind) (*Kind, error) {
	if spec.Name == "" {
		return nil, ErrEmptyKindName
	}

	defaults := Args{Params: spec.Params}.normalized()
	resolver := spec.Resolver
	if parent != nil {
		if spec.Params == nil {
			defaults = parent.defaults.normalized()
		}
		if resolver == nil {
			resolver = parent.resolver
		}
	}

	k := &Kind{
		name:            spec.Name,
		doc:             spec.Doc,
		parent:          parent,
		defaults:        defaults,
		resolver:        resolver,
		suppressDefault: spec.SuppressDefault,
		registered:      make(map[Key]Args),
		entries:         make(map[Key]*Op),
	}

	if !spec.SuppressDefault {
		if key, ok := k.resolve(k.defaults); ok {
			k.registered[key] = k.defaults
			k.keys = append(k.keys, key)
		}
	}

	for i, args := range spec.Additional {
		args = args.normalized()
		key, ok := k.resolve(args)
		if !ok {
			return nil, fmt.Errorf("kind %q: additional entry %d: %w", spec.Name, i, ErrUnkeyedArgs)
		}
		if _, dup := k.registered[key]; dup {
			return nil, fmt.Errorf("kind %q: additional entry %d: key %q: %w", spec.Name, i, key, ErrKeyCollision)
		}
		k.registered[key] = args
		k.keys = append(k.keys, key)
	}

	return k, nil
}

// New constructs an operation. Arguments resolving to a registered key
// return that canonical instance; anything else returns a fresh standalone
// instance that is never cached.
func (k *Kind) New(opts ...Option) *Op {
	args := k.defaults
	args.Params = slices.Clone(k.defaults.Params)
	for _, opt := range opts {
		opt(&args)
	}
	args = args.normalized()

	key, ok := k.resolve(args)
	if !ok {
		return newStandalone(k, args)
	}

	k.ensureSeeded()
	k.mu.RLock()
	entry, found := k.entries[key]
	k.mu.RUnlock()
	if found {
		return entry
	}
	return newStandalone(k, args)
}

// resolve applies the kind's resolver, falling back to the default policy.
func (k *Kind) resolve(args Args) (Key, bool) {
	if k.resolver != nil {
		return k.resolver(args)
	}
	return defaultResolve(k.defaults, args)
}

// ensureSeeded constructs every registered canonical entry exactly once.
func (k *Kind) ensureSeeded() {
	k.seedOnce.Do(func() {
		for _, key := range k.keys {
			args := k.registered[key]
			k.getOrCreate(key, func() *Op {
				return newStandalone(k, args)
			})
		}
	})
}

// getOrCreate returns the canonical entry for key, building and installing
// one if absent. Concurrent builders may race; the first installed value
// wins and later builds are discarded, so one reference ever escapes per
// key. Installed instances are permanently locked.
func (k *Kind) getOrCreate(key Key, build func() *Op) *Op {
	k.mu.RLock()
	existing, ok := k.entries[key]
	k.mu.RUnlock()
	if ok {
		return existing
	}

	candidate := build()

	k.mu.Lock()
	defer k.mu.Unlock()
	if existing, ok := k.entries[key]; ok {
		return existing
	}
	candidate.mutable = false
	k.entries[key] = candidate
	return candidate
}

// Name returns the kind's unique name.
func (k *Kind) Name() string {
	return k.name
}

// Doc returns the kind's markdown documentation.
func (k *Kind) Doc() string {
	return k.doc
}

// Parent returns the kind this one was derived from, or nil.
func (k *Kind) Parent() *Kind {
	return k.parent
}

// SuppressesDefault reports whether the default-arguments entry is disabled.
func (k *Kind) SuppressesDefault() bool {
	return k.suppressDefault
}

// Defaults returns a copy of the kind's declared default argument record.
func (k *Kind) Defaults() Args {
	return k.defaults.normalized()
}

// Keys returns the registered lookup keys in registration order, default
// entry first.
func (k *Kind) Keys() []Key {
	return slices.Clone(k.keys)
}

// Entries returns the canonical instances in registration order, seeding
// them if this is the kind's first use.
func (k *Kind) Entries() []*Op {
	k.ensureSeeded()
	k.mu.RLock()
	defer k.mu.RUnlock()
	result := make([]*Op, 0, len(k.keys))
	for _, key := range k.keys {
		if entry, ok := k.entries[key]; ok {
			result = append(result, entry)
		}
	}
	return result
}

// Is reports whether k is other or derives from it, directly or not.
func (k *Kind) Is(other *Kind) bool {
	for current := k; current != nil; current = current.parent {
		if current == other {
			return true
		}
	}
	return false
}
