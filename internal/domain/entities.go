package domain

import (
	"fmt"
	"strings"
)

// Document is the text extracted from one uploaded file. It only lives
// for the duration of an ingestion.
type Document struct {
	Name string
	Text string
}

// Chunk is one retrieval unit of a corpus. Its identity is its position
// in the corpus slice.
type Chunk struct {
	Text string `json:"chunk"`
}

// Corpus is the ordered chunk list produced from a single document.
type Corpus []Chunk

// Texts returns the chunk texts in corpus order.
func (c Corpus) Texts() []string {
	texts := make([]string, len(c))
	for i, ch := range c {
		texts[i] = ch.Text
	}
	return texts
}

type RankedChunk struct {
	Chunk
	Similarity float64 `json:"similarity"`
}

// QueryRequest asks a question against a stored corpus.
type QueryRequest struct {
	Prompt   string `json:"prompt"`
	CorpusID string `json:"filename"`
}

// QueryResponse carries the ranked context and the generated answer.
// AllChunks is only populated when the prompt is empty.
type QueryResponse struct {
	Chunks         []RankedChunk `json:"chunks"`
	AllChunks      []Chunk       `json:"allChunks,omitempty"`
	GeminiResponse string        `json:"geminiResponse"`
}

// Turn is one prompt/answer exchange of a chat session.
type Turn struct {
	Prompt string `json:"prompt"`
	Answer string `json:"answer"`
}

// Session is the chat state owned by the caller. The query core never
// keeps it between calls; it receives a session and returns the next one.
type Session struct {
	CorpusID string `json:"filename"`
	History  []Turn `json:"history"`
}

// With returns a copy of the session with one more turn appended.
func (s Session) With(turn Turn) Session {
	history := make([]Turn, len(s.History), len(s.History)+1)
	copy(history, s.History)
	return Session{
		CorpusID: s.CorpusID,
		History:  append(history, turn),
	}
}

// CorpusInfo describes a stored corpus.
type CorpusInfo struct {
	ID     string `json:"id"`
	Chunks int    `json:"chunks"`
}

// NormalizeID turns a file name into a corpus identifier: the base name
// without its extension.
func NormalizeID(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.LastIndex(name, "."); i > 0 {
		name = name[:i]
	}
	return strings.TrimSpace(name)
}

// ValidateID rejects identifiers that cannot name a stored corpus. Names
// starting with a dot are reserved for store-internal files.
func ValidateID(id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: empty corpus identifier", ErrInvalidInput)
	}
	if strings.HasPrefix(id, ".") || strings.ContainsAny(id, "/\\\x00") {
		return fmt.Errorf("%w: bad corpus identifier %q", ErrInvalidInput, id)
	}
	return nil
}
