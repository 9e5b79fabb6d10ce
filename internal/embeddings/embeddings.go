// Package embeddings stores dense word vectors keyed by a vocabulary and
// answers nearest-neighbor queries over them. Training the vectors is an
// external concern; this package only loads, saves and serves them.
package embeddings

import (
	"fmt"
	"math"
	"sort"

	"vec-go/internal/vocab"
)

// WordEmbeddings is a vocabulary plus one dense vector per token.
type WordEmbeddings struct {
	vocabulary *vocab.Vocabulary
	matrix     [][]float32
	dim        int
	normalized bool
}

// Neighbor is one nearest-neighbor result.
type Neighbor struct {
	Token string  `json:"token"`
	Score float32 `json:"score"`
}

// New creates embeddings from a vocabulary and a matrix with one row per
// vocabulary entry.
func New(v *vocab.Vocabulary, matrix [][]float32) (*WordEmbeddings, error) {
	if v.Size() != len(matrix) {
		return nil, fmt.Errorf("vocabulary size %d does not match %d vector rows", v.Size(), len(matrix))
	}
	if len(matrix) == 0 {
		return nil, fmt.Errorf("empty embedding matrix")
	}
	dim := len(matrix[0])
	for i, row := range matrix {
		if len(row) != dim {
			return nil, fmt.Errorf("row %d has dimension %d, expected %d", i, len(row), dim)
		}
	}
	return &WordEmbeddings{vocabulary: v, matrix: matrix, dim: dim}, nil
}

// Dim returns the vector dimensionality.
func (e *WordEmbeddings) Dim() int {
	return e.dim
}

// Vocabulary returns the backing vocabulary.
func (e *WordEmbeddings) Vocabulary() *vocab.Vocabulary {
	return e.vocabulary
}

// Get returns the vector for a token, or nil if the token is out of
// vocabulary. The returned slice is shared; do not mutate.
func (e *WordEmbeddings) Get(token string) []float32 {
	return e.GetByID(e.vocabulary.GetID(token))
}

// GetByID returns the vector for a token id, or nil if out of range.
func (e *WordEmbeddings) GetByID(id int) []float32 {
	if id < 0 || id >= len(e.matrix) {
		return nil
	}
	return e.matrix[id]
}

// Normalize scales every row to unit length in place. Zero rows are left
// untouched.
func (e *WordEmbeddings) Normalize() {
	if e.normalized {
		return
	}
	for _, row := range e.matrix {
		var sum float64
		for _, x := range row {
			sum += float64(x) * float64(x)
		}
		if sum == 0 {
			continue
		}
		norm := float32(math.Sqrt(sum))
		for i := range row {
			row[i] /= norm
		}
	}
	e.normalized = true
}

// NearestNeighbors returns the k tokens closest to token by cosine
// similarity, excluding the token itself. An OOV token yields an error.
func (e *WordEmbeddings) NearestNeighbors(token string, k int) ([]Neighbor, error) {
	query := e.Get(token)
	if query == nil {
		return nil, fmt.Errorf("token %q not in vocabulary", token)
	}
	return e.NearestToVector(query, k, token)
}

// NearestToVector returns the k tokens closest to query by cosine
// similarity. exclude, if non-empty, names a token to leave out.
func (e *WordEmbeddings) NearestToVector(query []float32, k int, exclude string) ([]Neighbor, error) {
	if len(query) != e.dim {
		return nil, fmt.Errorf("query dimension %d does not match embedding dimension %d", len(query), e.dim)
	}
	neighbors := make([]Neighbor, 0, e.vocabulary.Size())
	for id, row := range e.matrix {
		candidate := e.vocabulary.GetToken(id)
		if candidate == exclude && exclude != "" {
			continue
		}
		neighbors = append(neighbors, Neighbor{Token: candidate, Score: cosine(query, row)})
	}
	sort.Slice(neighbors, func(i, j int) bool {
		if neighbors[i].Score != neighbors[j].Score {
			return neighbors[i].Score > neighbors[j].Score
		}
		return neighbors[i].Token < neighbors[j].Token
	})
	if k < len(neighbors) {
		neighbors = neighbors[:k]
	}
	return neighbors, nil
}

func cosine(a, b []float32) float32 {
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(na) * math.Sqrt(nb)))
}
