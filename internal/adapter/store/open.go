package store

import (
	"fmt"

	"pdfqa/config"
	"pdfqa/internal/adapter/memstore"
	"pdfqa/internal/port"
)

// Open returns the corpus store selected by cfg.Storage.Backend. Bolt
// stores are migrated to the current schema before being returned.
func Open(cfg *config.Config) (port.CorpusStore, error) {
	switch cfg.Storage.Backend {
	case "json", "":
		return NewJSONStore(cfg.Storage.Dir)
	case "bolt":
		if err := cfg.EnsureDataDir(); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
		st, err := NewBoltStore(cfg.Storage.BoltPath)
		if err != nil {
			return nil, err
		}
		info, err := st.GetSchemaInfo()
		if err != nil {
			st.Close()
			return nil, err
		}
		if info.Version < CurrentSchemaVersion {
			if err := st.Migrate(cfg); err != nil {
				st.Close()
				return nil, fmt.Errorf("failed to migrate store: %w", err)
			}
		}
		return st, nil
	case "memory":
		return memstore.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", cfg.Storage.Backend)
	}
}
