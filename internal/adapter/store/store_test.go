package store

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pdfqa/internal/domain"
	"pdfqa/internal/port"
)

func newJSONStore(t *testing.T) port.CorpusStore {
	st, err := NewJSONStore(filepath.Join(t.TempDir(), "chunks"))
	if err != nil {
		t.Fatal(err)
	}
	return st
}

func newBoltStore(t *testing.T) port.CorpusStore {
	st, err := NewBoltStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func TestCorpusStores(t *testing.T) {
	backends := map[string]func(*testing.T) port.CorpusStore{
		"json": newJSONStore,
		"bolt": newBoltStore,
	}

	for name, open := range backends {
		t.Run(name+"/round trip", func(t *testing.T) {
			st := open(t)
			corpus := domain.Corpus{{Text: "the cat sat on the mat"}, {Text: "dogs are loyal animals"}}

			if err := st.Save("animals", corpus); err != nil {
				t.Fatal(err)
			}
			loaded, err := st.Load("animals")
			if err != nil {
				t.Fatal(err)
			}
			if len(loaded) != 2 || loaded[0] != corpus[0] || loaded[1] != corpus[1] {
				t.Errorf("unexpected corpus: %+v", loaded)
			}
		})

		t.Run(name+"/overwrite", func(t *testing.T) {
			st := open(t)
			st.Save("doc", domain.Corpus{{Text: "old"}, {Text: "older"}})
			if err := st.Save("doc", domain.Corpus{{Text: "new"}}); err != nil {
				t.Fatal(err)
			}
			loaded, err := st.Load("doc")
			if err != nil {
				t.Fatal(err)
			}
			if len(loaded) != 1 || loaded[0].Text != "new" {
				t.Errorf("expected overwritten corpus, got %+v", loaded)
			}
		})

		t.Run(name+"/empty corpus", func(t *testing.T) {
			st := open(t)
			if err := st.Save("empty", nil); err != nil {
				t.Fatal(err)
			}
			loaded, err := st.Load("empty")
			if err != nil {
				t.Fatal(err)
			}
			if len(loaded) != 0 {
				t.Errorf("expected empty corpus, got %+v", loaded)
			}
		})

		t.Run(name+"/not found", func(t *testing.T) {
			st := open(t)
			if _, err := st.Load("missing"); !errors.Is(err, domain.ErrCorpusNotFound) {
				t.Errorf("expected ErrCorpusNotFound, got %v", err)
			}
			if err := st.Delete("missing"); !errors.Is(err, domain.ErrCorpusNotFound) {
				t.Errorf("expected ErrCorpusNotFound on delete, got %v", err)
			}
		})

		t.Run(name+"/list and delete", func(t *testing.T) {
			st := open(t)
			st.Save("zeta", domain.Corpus{{Text: "a"}})
			st.Save("alpha", domain.Corpus{{Text: "a"}, {Text: "b"}, {Text: "c"}})

			infos, err := st.List()
			if err != nil {
				t.Fatal(err)
			}
			if len(infos) != 2 {
				t.Fatalf("expected 2 corpora, got %d", len(infos))
			}
			if infos[0].ID != "alpha" || infos[0].Chunks != 3 || infos[1].ID != "zeta" || infos[1].Chunks != 1 {
				t.Errorf("unexpected listing: %+v", infos)
			}

			if err := st.Delete("alpha"); err != nil {
				t.Fatal(err)
			}
			if _, err := st.Load("alpha"); !errors.Is(err, domain.ErrCorpusNotFound) {
				t.Errorf("expected deleted corpus to be gone, got %v", err)
			}
		})

		t.Run(name+"/bad identifier", func(t *testing.T) {
			st := open(t)
			for _, id := range []string{"", "..", "../escape", "a/b"} {
				if err := st.Save(id, domain.Corpus{{Text: "x"}}); !errors.Is(err, domain.ErrInvalidInput) {
					t.Errorf("Save(%q): expected ErrInvalidInput, got %v", id, err)
				}
			}
		})
	}
}

func TestJSONStoreFileFormat(t *testing.T) {
	dir := t.TempDir()
	st, err := NewJSONStore(dir)
	if err != nil {
		t.Fatal(err)
	}

	if err := st.Save("report", domain.Corpus{{Text: "hello world"}}); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "report.json"))
	if err != nil {
		t.Fatal(err)
	}
	want := "[\n  {\n    \"chunk\": \"hello world\"\n  }\n]"
	if string(data) != want {
		t.Errorf("unexpected file contents:\n%s", data)
	}
}

func TestJSONStoreMalformed(t *testing.T) {
	dir := t.TempDir()
	st, err := NewJSONStore(dir)
	if err != nil {
		t.Fatal(err)
	}

	cases := map[string]string{
		"notjson":  "{{{",
		"object":   `{"chunk": "x"}`,
		"nochunk":  `[{"text": "x"}]`,
		"wrongtyp": `[{"chunk": 42}]`,
		"null":     `null`,
	}
	for id, content := range cases {
		if err := os.WriteFile(filepath.Join(dir, id+".json"), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := st.Load(id); !errors.Is(err, domain.ErrMalformedCorpus) {
			t.Errorf("%s: expected ErrMalformedCorpus, got %v", id, err)
		}
	}

	// Malformed files still appear in the listing.
	infos, err := st.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(infos) != len(cases) {
		t.Errorf("expected %d listed corpora, got %d", len(cases), len(infos))
	}
}

func TestJSONStoreIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	st, _ := NewJSONStore(dir)
	os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644)
	os.Mkdir(filepath.Join(dir, "sub.json"), 0755)
	st.Save("real", domain.Corpus{{Text: "x"}})

	infos, err := st.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(infos) != 1 || infos[0].ID != "real" {
		t.Errorf("unexpected listing: %+v", infos)
	}
	entries, _ := os.ReadDir(dir)
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".tmp") {
			t.Errorf("temp file left behind: %s", e.Name())
		}
	}
}
