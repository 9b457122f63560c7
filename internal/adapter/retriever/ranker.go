package retriever

import (
	"sort"
	"strings"

	"pdfqa/internal/domain"
	"pdfqa/internal/port"
)

const (
	DefaultTopK          = 5
	DefaultMinScore      = 0.01
	DefaultSurfaceWeight = 0.6
)

var _ port.Ranker = (*TFIDFRanker)(nil)

// TFIDFRanker scores chunks against a prompt with the larger of TF-IDF
// cosine similarity and a dampened bigram Dice similarity. The vector space
// is rebuilt on every call; nothing is cached between queries.
type TFIDFRanker struct {
	tokenizer     port.Tokenizer
	topK          int
	minScore      float64
	surfaceWeight float64
}

func NewTFIDFRanker(tokenizer port.Tokenizer, topK int, minScore, surfaceWeight float64) *TFIDFRanker {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &TFIDFRanker{
		tokenizer:     tokenizer,
		topK:          topK,
		minScore:      minScore,
		surfaceWeight: surfaceWeight,
	}
}

// Rank returns at most topK chunks scoring at least minScore, best first.
// Ties keep corpus order. An empty result is not an error.
func (r *TFIDFRanker) Rank(prompt string, chunks []domain.Chunk) []domain.RankedChunk {
	if len(chunks) == 0 {
		return []domain.RankedChunk{}
	}

	docs := make([][]string, 0, len(chunks)+1)
	docs = append(docs, r.tokenizer.Tokenize(prompt))
	for _, c := range chunks {
		docs = append(docs, r.tokenizer.Tokenize(c.Text))
	}
	space := Vectorize(docs)
	query := space.Vectors[0]

	lowerPrompt := strings.ToLower(prompt)
	ranked := make([]domain.RankedChunk, len(chunks))
	for i, c := range chunks {
		cos := CosineSimilarity(query, space.Vectors[i+1])
		surface := DiceCoefficient(lowerPrompt, strings.ToLower(c.Text)) * r.surfaceWeight
		ranked[i] = domain.RankedChunk{
			Chunk:      c,
			Similarity: combine(cos, surface),
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Similarity > ranked[j].Similarity
	})

	limit := r.topK
	if len(chunks) < limit {
		limit = len(chunks)
	}

	results := make([]domain.RankedChunk, 0, limit)
	for _, rc := range ranked {
		if rc.Similarity < r.minScore {
			continue
		}
		results = append(results, rc)
		if len(results) == limit {
			break
		}
	}
	return results
}

func combine(cos, surface float64) float64 {
	score := cos
	if surface > score {
		score = surface
	}
	if score > 1 {
		return 1
	}
	if score < 0 {
		return 0
	}
	return score
}
