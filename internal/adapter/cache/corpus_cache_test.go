package cache

import (
	"errors"
	"sync"
	"testing"
	"time"

	"pdfqa/internal/adapter/memstore"
	"pdfqa/internal/domain"
)

func TestCorpusCacheLRU(t *testing.T) {
	c := NewCorpusCache(2, time.Minute)
	c.Put("a", domain.Corpus{{Text: "a"}})
	c.Put("b", domain.Corpus{{Text: "b"}})

	if _, ok := c.Get("a"); !ok {
		t.Fatal("expected a cached")
	}
	c.Put("c", domain.Corpus{{Text: "c"}})

	if _, ok := c.Get("b"); ok {
		t.Error("expected b evicted as least recently used")
	}
	if _, ok := c.Get("a"); !ok {
		t.Error("expected a kept")
	}
	if c.Size() != 2 {
		t.Errorf("expected size 2, got %d", c.Size())
	}
}

func TestCorpusCacheTTL(t *testing.T) {
	c := NewCorpusCache(10, 20*time.Millisecond)
	c.Put("a", domain.Corpus{{Text: "a"}})

	time.Sleep(60 * time.Millisecond)

	if _, ok := c.Get("a"); ok {
		t.Error("expected entry expired")
	}
}

func TestCorpusCacheInvalidate(t *testing.T) {
	c := NewCorpusCache(10, time.Minute)
	c.Put("a", domain.Corpus{{Text: "a"}})
	c.Invalidate("a")

	if _, ok := c.Get("a"); ok {
		t.Error("expected entry removed")
	}
	if c.Size() != 0 {
		t.Errorf("expected empty cache, size %d", c.Size())
	}
}

type countingStore struct {
	*memstore.MemoryStore
	loads int
}

func (s *countingStore) Load(id string) (domain.Corpus, error) {
	s.loads++
	return s.MemoryStore.Load(id)
}

func TestCachedStore(t *testing.T) {
	backing := &countingStore{MemoryStore: memstore.NewMemoryStore()}
	st := NewCachedStore(backing, NewCorpusCache(10, time.Minute))

	if err := st.Save("doc", domain.Corpus{{Text: "one"}}); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 3; i++ {
		corpus, err := st.Load("doc")
		if err != nil {
			t.Fatal(err)
		}
		corpus[0].Text = "mutated"
	}
	if backing.loads != 1 {
		t.Errorf("expected 1 backing load, got %d", backing.loads)
	}

	corpus, _ := st.Load("doc")
	if corpus[0].Text != "one" {
		t.Errorf("cached corpus was mutated: %q", corpus[0].Text)
	}

	if err := st.Save("doc", domain.Corpus{{Text: "two"}}); err != nil {
		t.Fatal(err)
	}
	corpus, _ = st.Load("doc")
	if corpus[0].Text != "two" {
		t.Errorf("expected save to invalidate, got %q", corpus[0].Text)
	}

	if err := st.Delete("doc"); err != nil {
		t.Fatal(err)
	}
	if _, err := st.Load("doc"); !errors.Is(err, domain.ErrCorpusNotFound) {
		t.Errorf("expected ErrCorpusNotFound after delete, got %v", err)
	}
}

func TestCachedStoreDoesNotCacheErrors(t *testing.T) {
	backing := &countingStore{MemoryStore: memstore.NewMemoryStore()}
	st := NewCachedStore(backing, NewCorpusCache(10, time.Minute))

	st.Load("missing")
	st.Load("missing")
	if backing.loads != 2 {
		t.Errorf("expected misses to reach the store, got %d loads", backing.loads)
	}
}

// pausingStore blocks the first Load after it has read the corpus, until
// release is closed.
type pausingStore struct {
	*memstore.MemoryStore
	once    sync.Once
	loaded  chan struct{}
	release chan struct{}
}

func (s *pausingStore) Load(id string) (domain.Corpus, error) {
	corpus, err := s.MemoryStore.Load(id)
	s.once.Do(func() {
		close(s.loaded)
		<-s.release
	})
	return corpus, err
}

func TestCachedStoreSlowLoadDoesNotOutliveSave(t *testing.T) {
	backing := &pausingStore{
		MemoryStore: memstore.NewMemoryStore(),
		loaded:      make(chan struct{}),
		release:     make(chan struct{}),
	}
	if err := backing.MemoryStore.Save("doc", domain.Corpus{{Text: "old"}}); err != nil {
		t.Fatal(err)
	}
	st := NewCachedStore(backing, NewCorpusCache(10, time.Minute))

	done := make(chan struct{})
	go func() {
		defer close(done)
		st.Load("doc")
	}()

	<-backing.loaded
	if err := st.Save("doc", domain.Corpus{{Text: "new"}}); err != nil {
		t.Fatal(err)
	}
	close(backing.release)
	<-done

	corpus, err := st.Load("doc")
	if err != nil {
		t.Fatal(err)
	}
	if corpus[0].Text != "new" {
		t.Errorf("stale corpus after save: %q", corpus[0].Text)
	}
}

func TestCachedStoreSlowLoadDoesNotOutliveDelete(t *testing.T) {
	backing := &pausingStore{
		MemoryStore: memstore.NewMemoryStore(),
		loaded:      make(chan struct{}),
		release:     make(chan struct{}),
	}
	backing.MemoryStore.Save("doc", domain.Corpus{{Text: "old"}})
	st := NewCachedStore(backing, NewCorpusCache(10, time.Minute))

	done := make(chan struct{})
	go func() {
		defer close(done)
		st.Load("doc")
	}()

	<-backing.loaded
	if err := st.Delete("doc"); err != nil {
		t.Fatal(err)
	}
	close(backing.release)
	<-done

	if _, err := st.Load("doc"); !errors.Is(err, domain.ErrCorpusNotFound) {
		t.Errorf("expected ErrCorpusNotFound after delete, got %v", err)
	}
}
