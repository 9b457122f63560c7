package memstore

import (
	"fmt"
	"sort"
	"sync"

	"pdfqa/internal/domain"
	"pdfqa/internal/port"
)

var _ port.CorpusStore = (*MemoryStore)(nil)

// MemoryStore keeps corpora in process memory. Used by the server when no
// persistence is wanted and by tests.
type MemoryStore struct {
	mu      sync.RWMutex
	corpora map[string]domain.Corpus
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		corpora: make(map[string]domain.Corpus),
	}
}

func (s *MemoryStore) Save(id string, corpus domain.Corpus) error {
	if err := domain.ValidateID(id); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.corpora[id] = append(domain.Corpus{}, corpus...)
	return nil
}

func (s *MemoryStore) Load(id string) (domain.Corpus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	corpus, ok := s.corpora[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrCorpusNotFound, id)
	}
	return append(domain.Corpus{}, corpus...), nil
}

func (s *MemoryStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.corpora[id]; !ok {
		return fmt.Errorf("%w: %s", domain.ErrCorpusNotFound, id)
	}
	delete(s.corpora, id)
	return nil
}

func (s *MemoryStore) List() ([]domain.CorpusInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	infos := make([]domain.CorpusInfo, 0, len(s.corpora))
	for id, corpus := range s.corpora {
		infos = append(infos, domain.CorpusInfo{ID: id, Chunks: len(corpus)})
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].ID < infos[j].ID
	})
	return infos, nil
}

func (s *MemoryStore) Close() error {
	return nil
}
