package component

import (
	"fmt"
	"sort"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/tacogips/clismith/internal/debug"
)

// CachedStore keeps recently used templates of another store in memory.
// Misses are not cached.
type CachedStore struct {
	inner Store
	cache *lru.Cache[string, string]
}

// NewCached wraps inner with an LRU cache holding up to size templates.
func NewCached(inner Store, size int) (*CachedStore, error) {
	if size <= 0 {
		return nil, fmt.Errorf("cache size must be positive, got %d", size)
	}
	cache, err := lru.New[string, string](size)
	if err != nil {
		return nil, err
	}
	return &CachedStore{inner: inner, cache: cache}, nil
}

// Name identifies the wrapped store.
func (s *CachedStore) Name() string {
	return s.inner.Name()
}

// Has reports whether name is cached or held by the wrapped store.
func (s *CachedStore) Has(name string) bool {
	if s.cache.Contains(name) {
		return true
	}
	return s.inner.Has(name)
}

// Get returns the cached template, loading it on a miss.
func (s *CachedStore) Get(name string) (string, error) {
	if text, ok := s.cache.Get(name); ok {
		return text, nil
	}
	text, err := s.inner.Get(name)
	if err != nil {
		return "", err
	}
	debug.Debug("[component] cached %s from %s store", name, s.inner.Name())
	s.cache.Add(name, text)
	return text, nil
}

// List delegates to the wrapped store when it can enumerate.
func (s *CachedStore) List() ([]string, error) {
	if l, ok := s.inner.(Lister); ok {
		return l.List()
	}
	keys := s.cache.Keys()
	sort.Strings(keys)
	return keys, nil
}

// Len returns the number of cached templates.
func (s *CachedStore) Len() int {
	return s.cache.Len()
}

// Purge drops every cached template, e.g. after templates changed on disk.
func (s *CachedStore) Purge() {
	s.cache.Purge()
}
