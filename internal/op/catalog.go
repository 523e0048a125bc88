package op

import (
	"fmt"
	"sort"
	"sync"
)

// kindCatalog is the process-wide table of defined kinds, keyed by name.
// Decoding resolves kind names against it.
type kindCatalog struct {
	mu    sync.RWMutex
	kinds map[string]*Kind
}

var catalog = &kindCatalog{
	kinds: make(map[string]*Kind),
}

// add installs a kind, rejecting duplicate names.
func (c *kindCatalog) add(k *Kind) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.kinds[k.name]; exists {
		return fmt.Errorf("kind %q: %w", k.name, ErrDuplicateKind)
	}
	c.kinds[k.name] = k
	return nil
}

// lookup returns the kind for a name.
func (c *kindCatalog) lookup(name string) (*Kind, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	k, ok := c.kinds[name]
	return k, ok
}

// list returns all kinds sorted by name.
func (c *kindCatalog) list() []*Kind {
	c.mu.RLock()
	defer c.mu.RUnlock()
	result := make([]*Kind, 0, len(c.kinds))
	for _, k := range c.kinds {
		result = append(result, k)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].name < result[j].name
	})
	return result
}

// LookupKind resolves a kind by name.
func LookupKind(name string) (*Kind, error) {
	k, ok := catalog.lookup(name)
	if !ok {
		return nil, fmt.Errorf("kind %q: %w", name, ErrUnresolvedKind)
	}
	return k, nil
}

// Kinds returns every defined kind, sorted by name.
func Kinds() []*Kind {
	return catalog.list()
}
