package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"pdfqa/internal/domain"
	"pdfqa/internal/port"
)

var _ port.CorpusStore = (*JSONStore)(nil)

// JSONStore keeps each corpus in <dir>/<id>.json.
type JSONStore struct {
	dir string
}

func NewJSONStore(dir string) (*JSONStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create corpus directory: %w", err)
	}
	return &JSONStore{dir: dir}, nil
}

func (s *JSONStore) path(id string) string {
	return filepath.Join(s.dir, id+".json")
}

func (s *JSONStore) Save(id string, corpus domain.Corpus) error {
	if err := domain.ValidateID(id); err != nil {
		return err
	}
	data, err := encodeCorpus(corpus)
	if err != nil {
		return fmt.Errorf("failed to encode corpus: %w", err)
	}

	// Write then rename so readers never observe a partial file.
	tmp, err := os.CreateTemp(s.dir, "."+id+"-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write corpus: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write corpus: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path(id)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to store corpus: %w", err)
	}
	return nil
}

func (s *JSONStore) Load(id string) (domain.Corpus, error) {
	if err := domain.ValidateID(id); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path(id))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrCorpusNotFound, id)
		}
		return nil, fmt.Errorf("failed to read corpus: %w", err)
	}
	return decodeCorpus(data)
}

func (s *JSONStore) Delete(id string) error {
	if err := domain.ValidateID(id); err != nil {
		return err
	}
	if err := os.Remove(s.path(id)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", domain.ErrCorpusNotFound, id)
		}
		return fmt.Errorf("failed to delete corpus: %w", err)
	}
	return nil
}

// List returns the stored corpora sorted by identifier. Files that do not
// decode are listed with zero chunks.
func (s *JSONStore) List() ([]domain.CorpusInfo, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read corpus directory: %w", err)
	}

	var infos []domain.CorpusInfo
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, ".") || filepath.Ext(name) != ".json" {
			continue
		}
		id := strings.TrimSuffix(name, ".json")
		info := domain.CorpusInfo{ID: id}
		if corpus, err := s.Load(id); err == nil {
			info.Chunks = len(corpus)
		}
		infos = append(infos, info)
	}

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].ID < infos[j].ID
	})
	return infos, nil
}

func (s *JSONStore) Close() error {
	return nil
}
