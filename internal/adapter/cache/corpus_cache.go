// Package cache keeps recently loaded corpora in memory in front of a
// slower store.
package cache

import (
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"pdfqa/internal/domain"
	"pdfqa/internal/port"
)

var _ port.CorpusStore = (*CachedStore)(nil)

// CorpusCache is a bounded LRU of loaded corpora with a time-to-live.
type CorpusCache struct {
	lru *expirable.LRU[string, domain.Corpus]
}

func NewCorpusCache(maxSize int, ttl time.Duration) *CorpusCache {
	if maxSize <= 0 {
		maxSize = 64
	}
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &CorpusCache{
		lru: expirable.NewLRU[string, domain.Corpus](maxSize, nil, ttl),
	}
}

// Get returns the cached corpus for id. Expired entries are never returned.
func (c *CorpusCache) Get(id string) (domain.Corpus, bool) {
	return c.lru.Get(id)
}

func (c *CorpusCache) Put(id string, corpus domain.Corpus) {
	c.lru.Add(id, corpus)
}

// Invalidate drops id from the cache.
func (c *CorpusCache) Invalidate(id string) {
	c.lru.Remove(id)
}

func (c *CorpusCache) Size() int {
	return c.lru.Len()
}

// CachedStore serves Load from a CorpusCache and invalidates on writes
// made through it. Writes made by other processes become visible once
// the cached entry expires.
//
// Every completed write bumps a per-corpus generation. A Load only fills
// the cache when no write finished while it was reading, so a slow read
// of the old corpus cannot overwrite a newer one.
type CachedStore struct {
	store port.CorpusStore
	cache *CorpusCache

	mu  sync.Mutex
	gen map[string]uint64
}

func NewCachedStore(store port.CorpusStore, cache *CorpusCache) *CachedStore {
	return &CachedStore{
		store: store,
		cache: cache,
		gen:   make(map[string]uint64),
	}
}

// Load returns a copy so callers cannot alter the cached corpus.
func (s *CachedStore) Load(id string) (domain.Corpus, error) {
	if corpus, ok := s.cache.Get(id); ok {
		return append(domain.Corpus(nil), corpus...), nil
	}

	s.mu.Lock()
	start := s.gen[id]
	s.mu.Unlock()

	corpus, err := s.store.Load(id)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.gen[id] == start {
		s.cache.Put(id, append(domain.Corpus(nil), corpus...))
	}
	s.mu.Unlock()
	return corpus, nil
}

func (s *CachedStore) Save(id string, corpus domain.Corpus) error {
	s.cache.Invalidate(id)
	defer s.written(id)
	return s.store.Save(id, corpus)
}

func (s *CachedStore) Delete(id string) error {
	s.cache.Invalidate(id)
	defer s.written(id)
	return s.store.Delete(id)
}

// written drops anything cached for id while the write was in flight.
func (s *CachedStore) written(id string) {
	s.mu.Lock()
	s.gen[id]++
	s.cache.Invalidate(id)
	s.mu.Unlock()
}

func (s *CachedStore) List() ([]domain.CorpusInfo, error) {
	return s.store.List()
}

func (s *CachedStore) Close() error {
	return s.store.Close()
}
