package store

import (
	"encoding/json"
	"fmt"

	"pdfqa/internal/domain"
)

type chunkRecord struct {
	Chunk *string `json:"chunk"`
}

// encodeCorpus renders a corpus in the on-disk format: an indented JSON
// array of {"chunk": "..."} objects.
func encodeCorpus(corpus domain.Corpus) ([]byte, error) {
	if corpus == nil {
		corpus = domain.Corpus{}
	}
	return json.MarshalIndent(corpus, "", "  ")
}

// decodeCorpus parses stored data, rejecting anything that is not an array
// of objects carrying a string "chunk" field.
func decodeCorpus(data []byte) (domain.Corpus, error) {
	var records []chunkRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedCorpus, err)
	}
	if records == nil {
		return nil, fmt.Errorf("%w: not a chunk list", domain.ErrMalformedCorpus)
	}

	corpus := make(domain.Corpus, len(records))
	for i, r := range records {
		if r.Chunk == nil {
			return nil, fmt.Errorf("%w: entry %d has no chunk text", domain.ErrMalformedCorpus, i)
		}
		corpus[i] = domain.Chunk{Text: *r.Chunk}
	}
	return corpus, nil
}
