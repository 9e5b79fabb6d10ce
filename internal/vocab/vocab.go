// Package vocab builds and persists token vocabularies from corpus pipelines.
// IDs are dense, ordered by descending frequency (ties broken lexically), so
// id 0 is always the most frequent token.
package vocab

import (
	"fmt"
	"sort"
	"time"

	"vec-go/internal/corpus"
)

// Vocabulary maps tokens to dense integer ids with frequency counts attached.
type Vocabulary struct {
	tokenToID   map[string]int
	tokens      []string
	frequencies []int64
	totalTokens int64
	metadata    map[string]interface{}
}

// GetID returns the token's id, or -1 if the token is out of vocabulary.
// -1 doubles as the padding sentinel downstream consumers rely on.
func (v *Vocabulary) GetID(token string) int {
	if id, ok := v.tokenToID[token]; ok {
		return id
	}
	return -1
}

// GetToken returns the token for an id, or "" if out of range.
func (v *Vocabulary) GetToken(id int) string {
	if id < 0 || id >= len(v.tokens) {
		return ""
	}
	return v.tokens[id]
}

// GetFrequency returns the corpus frequency of a token, 0 if unknown.
func (v *Vocabulary) GetFrequency(token string) int64 {
	if id, ok := v.tokenToID[token]; ok {
		return v.frequencies[id]
	}
	return 0
}

// Size returns the number of distinct tokens.
func (v *Vocabulary) Size() int {
	return len(v.tokens)
}

// TotalTokens returns the number of token occurrences counted, including
// occurrences of tokens later dropped by the frequency threshold.
func (v *Vocabulary) TotalTokens() int64 {
	return v.totalTokens
}

// Tokens returns all tokens in id order. The slice is shared; do not mutate.
func (v *Vocabulary) Tokens() []string {
	return v.tokens
}

// Metadata describes how the vocabulary was built.
func (v *Vocabulary) Metadata() map[string]interface{} {
	out := make(map[string]interface{}, len(v.metadata))
	for k, val := range v.metadata {
		out[k] = val
	}
	return out
}

// countTokens exhausts a token iterator into frequency counts.
func countTokens(it corpus.Iterator[string]) (map[string]int64, int64, error) {
	counts := make(map[string]int64)
	var total int64
	for {
		token, err := it.Next()
		if err == corpus.Done {
			return counts, total, nil
		}
		if err != nil {
			return nil, 0, fmt.Errorf("counting tokens: %w", err)
		}
		counts[token]++
		total++
	}
}

// fromCounts assigns ids by descending frequency, dropping tokens below
// minFrequency. minFrequency <= 1 keeps everything.
func fromCounts(counts map[string]int64, total int64, minFrequency int64, source corpus.Metadata) *Vocabulary {
	kept := make([]string, 0, len(counts))
	for token, cnt := range counts {
		if minFrequency > 1 && cnt < minFrequency {
			continue
		}
		kept = append(kept, token)
	}
	sort.Slice(kept, func(i, j int) bool {
		if counts[kept[i]] != counts[kept[j]] {
			return counts[kept[i]] > counts[kept[j]]
		}
		return kept[i] < kept[j]
	})

	v := &Vocabulary{
		tokenToID:   make(map[string]int, len(kept)),
		tokens:      kept,
		frequencies: make([]int64, len(kept)),
		totalTokens: total,
	}
	for id, token := range kept {
		v.tokenToID[token] = id
		v.frequencies[id] = counts[token]
	}
	v.metadata = map[string]interface{}{
		"cnt_tokens_total":  total,
		"cnt_tokens_unique": len(kept),
		"min_frequency":     minFrequency,
		"created_at":        time.Now().UTC().Format(time.RFC3339),
	}
	if source != nil {
		v.metadata["base_corpus"] = source
	}
	return v
}

// FromTokens builds a vocabulary from an ordered token list, ids following
// the given order and frequencies unknown. Used when loading embeddings whose
// vector file fixes the token order.
func FromTokens(tokens []string) (*Vocabulary, error) {
	v := &Vocabulary{
		tokenToID:   make(map[string]int, len(tokens)),
		tokens:      make([]string, len(tokens)),
		frequencies: make([]int64, len(tokens)),
		metadata: map[string]interface{}{
			"cnt_tokens_unique": len(tokens),
		},
	}
	copy(v.tokens, tokens)
	for id, token := range tokens {
		if _, dup := v.tokenToID[token]; dup {
			return nil, fmt.Errorf("duplicate token %q at id %d", token, id)
		}
		v.tokenToID[token] = id
	}
	return v, nil
}
