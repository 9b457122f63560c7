package store

import (
	"fmt"
	"sort"

	"go.etcd.io/bbolt"

	"pdfqa/internal/domain"
	"pdfqa/internal/port"
)

var (
	bucketCorpora = []byte("corpora")
	bucketMeta    = []byte("meta")
)

var _ port.CorpusStore = (*BoltStore)(nil)

// BoltStore keeps every corpus in a single bbolt file, one key per
// identifier, values in the same JSON format as the file store.
type BoltStore struct {
	db *bbolt.DB
}

func NewBoltStore(path string) (*BoltStore, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, b := range [][]byte{bucketCorpora, bucketMeta} {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", b, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &BoltStore{db: db}, nil
}

func (s *BoltStore) Save(id string, corpus domain.Corpus) error {
	if err := domain.ValidateID(id); err != nil {
		return err
	}
	data, err := encodeCorpus(corpus)
	if err != nil {
		return fmt.Errorf("failed to encode corpus: %w", err)
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketCorpora).Put([]byte(id), data)
	})
}

func (s *BoltStore) Load(id string) (domain.Corpus, error) {
	if err := domain.ValidateID(id); err != nil {
		return nil, err
	}
	var corpus domain.Corpus
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketCorpora).Get([]byte(id))
		if data == nil {
			return fmt.Errorf("%w: %s", domain.ErrCorpusNotFound, id)
		}
		// data is only valid inside the transaction; decoding copies it.
		var err error
		corpus, err = decodeCorpus(data)
		return err
	})
	return corpus, err
}

func (s *BoltStore) Delete(id string) error {
	if err := domain.ValidateID(id); err != nil {
		return err
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketCorpora)
		if b.Get([]byte(id)) == nil {
			return fmt.Errorf("%w: %s", domain.ErrCorpusNotFound, id)
		}
		return b.Delete([]byte(id))
	})
}

func (s *BoltStore) List() ([]domain.CorpusInfo, error) {
	var infos []domain.CorpusInfo
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketCorpora).ForEach(func(k, v []byte) error {
			info := domain.CorpusInfo{ID: string(k)}
			if corpus, err := decodeCorpus(v); err == nil {
				info.Chunks = len(corpus)
			}
			infos = append(infos, info)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].ID < infos[j].ID
	})
	return infos, nil
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}
