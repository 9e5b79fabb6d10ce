package vocab

import (
	"fmt"

	"go.uber.org/zap"

	"vec-go/internal/corpus"
	"vec-go/internal/tokenizer"
)

// CreateFromDir builds a vocabulary from every file under dir, tokenized
// with tok. Tokens occurring fewer than minFrequency times are dropped.
func CreateFromDir(dir string, tok tokenizer.Tokenizer, minFrequency int64, logger *zap.Logger) (*Vocabulary, error) {
	it := corpus.NewDirTokenCorpus(dir, tok, logger)
	counts, total, err := countTokens(it)
	if err != nil {
		return nil, err
	}
	v := fromCounts(counts, total, minFrequency, it.Metadata())
	if logger != nil {
		logger.Info("built vocabulary",
			zap.String("dir", dir),
			zap.Int64("tokens_total", total),
			zap.Int("tokens_unique", v.Size()),
		)
	}
	return v, nil
}

// CreateFromFile builds a vocabulary from a single file.
func CreateFromFile(filename string, tok tokenizer.Tokenizer, minFrequency int64) (*Vocabulary, error) {
	it := corpus.NewTokenIterator(corpus.NewTokenizedSequenceIterator(corpus.NewFileCorpus(filename), tok))
	counts, total, err := countTokens(it)
	if err != nil {
		return nil, err
	}
	return fromCounts(counts, total, minFrequency, it.Metadata()), nil
}

// CreateFromAnnotatedDir builds a vocabulary from pre-annotated text
// (token/TAG pairs), stripping the annotations.
func CreateFromAnnotatedDir(dir string, minFrequency int64, logger *zap.Logger) (*Vocabulary, error) {
	return CreateFromDir(dir, tokenizer.NewAnnotatedTokenizer("/"), minFrequency, logger)
}

// CreateNgramTokensFromDir builds a vocabulary of character n-grams: each
// corpus token is decomposed into its rune n-grams and those are counted.
func CreateNgramTokensFromDir(dir string, tok tokenizer.Tokenizer, n int, minFrequency int64, logger *zap.Logger) (*Vocabulary, error) {
	if n < 1 {
		return nil, fmt.Errorf("ngram size must be positive, got %d", n)
	}
	it := corpus.NewDirTokenCorpus(dir, tok, logger)
	counts := make(map[string]int64)
	var total int64
	for {
		token, err := it.Next()
		if err == corpus.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("counting ngram tokens: %w", err)
		}
		for _, gram := range runeNgrams(token, n) {
			counts[gram]++
			total++
		}
	}
	meta := it.Metadata()
	meta["ngram_size"] = n
	return fromCounts(counts, total, minFrequency, meta), nil
}

func runeNgrams(token string, n int) []string {
	runes := []rune(token)
	if len(runes) < n {
		return []string{token}
	}
	grams := make([]string, 0, len(runes)-n+1)
	for i := 0; i+n <= len(runes); i++ {
		grams = append(grams, string(runes[i:i+n]))
	}
	return grams
}
