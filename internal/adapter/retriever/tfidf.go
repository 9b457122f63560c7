package retriever

import "math"

// VectorSpace is a TF-IDF space built over one query and its candidate
// chunks. Vectors[0] belongs to the query, Vectors[i] to chunk i-1.
type VectorSpace struct {
	Vocabulary []string
	IDF        []float64
	Vectors    [][]float64
}

// Vectorize builds the TF-IDF space for already tokenized documents.
//
// Term frequency is count/len(doc). Document frequency counts documents
// containing the term, and idf = ln(N / (1 + df)). The idf is not clamped,
// so a term present in every document carries a negative weight. Weights
// that come out NaN or infinite are stored as 0.
func Vectorize(docs [][]string) VectorSpace {
	index := make(map[string]int)
	var vocab []string
	for _, doc := range docs {
		for _, term := range doc {
			if _, ok := index[term]; !ok {
				index[term] = len(vocab)
				vocab = append(vocab, term)
			}
		}
	}

	df := make([]int, len(vocab))
	counts := make([]map[int]int, len(docs))
	for i, doc := range docs {
		counts[i] = make(map[int]int, len(doc))
		for _, term := range doc {
			counts[i][index[term]]++
		}
		for idx := range counts[i] {
			df[idx]++
		}
	}

	total := float64(len(docs))
	idf := make([]float64, len(vocab))
	for i := range vocab {
		idf[i] = math.Log(total / float64(1+df[i]))
	}

	vectors := make([][]float64, len(docs))
	for i, doc := range docs {
		vec := make([]float64, len(vocab))
		n := float64(len(doc))
		for idx, c := range counts[i] {
			vec[idx] = finiteOrZero(float64(c) / n * idf[idx])
		}
		vectors[i] = vec
	}

	return VectorSpace{
		Vocabulary: vocab,
		IDF:        idf,
		Vectors:    vectors,
	}
}

func finiteOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
