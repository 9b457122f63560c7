package store

import (
	"path/filepath"
	"testing"

	"pdfqa/config"
	"pdfqa/internal/domain"
)

func TestMigrationsFreshDatabase(t *testing.T) {
	st, err := NewBoltStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()

	cfg := config.DefaultConfig()

	result, err := st.CheckMigration(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if !result.NeedsMigration {
		t.Error("fresh database should need migration")
	}

	if err := st.Migrate(cfg); err != nil {
		t.Fatal(err)
	}

	info, err := st.GetSchemaInfo()
	if err != nil {
		t.Fatal(err)
	}
	if info.Version != CurrentSchemaVersion {
		t.Errorf("expected version %d, got %d", CurrentSchemaVersion, info.Version)
	}
	if info.ConfigHash != ComputeConfigHash(cfg) {
		t.Errorf("config hash not recorded")
	}

	result, err = st.CheckMigration(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if result.NeedsMigration || result.NeedsRebuild {
		t.Errorf("migrated database should be current: %+v", result)
	}
}

func TestMigrationsChunkSizeChange(t *testing.T) {
	st, err := NewBoltStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()

	cfg := config.DefaultConfig()
	if err := st.Migrate(cfg); err != nil {
		t.Fatal(err)
	}

	changed := config.DefaultConfig()
	changed.Chunk.MaxSize = 400
	result, err := st.CheckMigration(changed)
	if err != nil {
		t.Fatal(err)
	}
	if !result.NeedsRebuild {
		t.Error("expected rebuild after chunk size change")
	}

	// Ranking settings do not affect stored corpora.
	ranking := config.DefaultConfig()
	ranking.Retrieve.TopK = 10
	if ComputeConfigHash(ranking) != ComputeConfigHash(cfg) {
		t.Error("ranking settings should not change the config hash")
	}
}

func TestClear(t *testing.T) {
	st, err := NewBoltStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()

	cfg := config.DefaultConfig()
	st.Migrate(cfg)
	st.Save("a", domain.Corpus{{Text: "x"}})
	st.Save("b", domain.Corpus{{Text: "y"}})

	if err := st.Clear(); err != nil {
		t.Fatal(err)
	}

	infos, err := st.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(infos) != 0 {
		t.Errorf("expected no corpora after clear, got %d", len(infos))
	}

	info, _ := st.GetSchemaInfo()
	if info.Version != CurrentSchemaVersion {
		t.Error("clear should keep schema metadata")
	}
}

func TestOpenBackends(t *testing.T) {
	for _, backend := range []string{"json", "bolt", "memory"} {
		cfg := config.DefaultConfig()
		cfg.Storage.Backend = backend
		cfg.Resolve(t.TempDir())

		st, err := Open(cfg)
		if err != nil {
			t.Fatalf("%s: %v", backend, err)
		}
		if err := st.Save("doc", domain.Corpus{{Text: "x"}}); err != nil {
			t.Errorf("%s: save failed: %v", backend, err)
		}
		if _, err := st.Load("doc"); err != nil {
			t.Errorf("%s: load failed: %v", backend, err)
		}
		st.Close()
	}

	cfg := config.DefaultConfig()
	cfg.Storage.Backend = "s3"
	if _, err := Open(cfg); err == nil {
		t.Error("expected error for unknown backend")
	}
}
