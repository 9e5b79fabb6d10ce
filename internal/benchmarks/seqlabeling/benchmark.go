package seqlabeling

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"vec-go/internal/embeddings"
)

// Options configures one benchmark run.
type Options struct {
	// WindowSize is the total feature window per token (the token plus
	// WindowSize-1 neighbors, split evenly left and right).
	WindowSize int
	// Normalize scales embedding rows to unit length before featurizing.
	Normalize bool
}

// Result is the experiment record written as JSON.
type Result struct {
	RunID        string         `json:"run_id"`
	Dataset      string         `json:"dataset"`
	WindowSize   int            `json:"window_size"`
	Normalize    bool           `json:"normalize"`
	EmbeddingDim int            `json:"embedding_dim"`
	CntSentences int            `json:"cnt_sentences"`
	CntTokens    int            `json:"cnt_tokens"`
	CntOOV       int            `json:"cnt_oov"`
	OOVRate      float64        `json:"oov_rate"`
	TagCounts    map[string]int `json:"tag_counts"`
	FeatureWidth int            `json:"feature_width"`
	StartedAt    time.Time      `json:"started_at"`
	FinishedAt   time.Time      `json:"finished_at"`
}

// Run reads the dataset under datasetDir, featurizes every sentence against
// emb, and returns the experiment record.
func Run(emb *embeddings.WordEmbeddings, datasetDir string, opts Options, logger *zap.Logger) (*Result, error) {
	if opts.WindowSize < 1 {
		return nil, fmt.Errorf("window size must be positive, got %d", opts.WindowSize)
	}
	result := &Result{
		RunID:      uuid.NewString(),
		Dataset:    datasetDir,
		WindowSize: opts.WindowSize,
		Normalize:  opts.Normalize,
		TagCounts:  make(map[string]int),
		StartedAt:  time.Now().UTC(),
	}

	if opts.Normalize {
		emb.Normalize()
	}
	result.EmbeddingDim = emb.Dim()
	result.FeatureWidth = opts.WindowSize * emb.Dim()

	sentences, err := ReadDataset(datasetDir, logger)
	if err != nil {
		return nil, err
	}
	result.CntSentences = len(sentences)

	for _, sentence := range sentences {
		features := Featurize(emb, sentence.Tokens, opts.WindowSize)
		if len(features) != len(sentence.Tokens) {
			return nil, fmt.Errorf("featurizer produced %d rows for %d tokens", len(features), len(sentence.Tokens))
		}
		for i, token := range sentence.Tokens {
			result.CntTokens++
			if emb.Get(token) == nil {
				result.CntOOV++
			}
			result.TagCounts[sentence.Tags[i]]++
		}
	}
	if result.CntTokens > 0 {
		result.OOVRate = float64(result.CntOOV) / float64(result.CntTokens)
	}
	result.FinishedAt = time.Now().UTC()

	logger.Info("benchmark run complete",
		zap.String("run_id", result.RunID),
		zap.Int("sentences", result.CntSentences),
		zap.Int("tokens", result.CntTokens),
		zap.Float64("oov_rate", result.OOVRate),
	)
	return result, nil
}

// Featurize builds one feature row per token: the concatenated embedding
// vectors of a window of windowSize tokens centered on it (left-heavy for
// even sizes). Positions past the sentence boundary and OOV tokens
// contribute zero vectors; boundary padding is this consumer's job, not the
// corpus pipeline's.
func Featurize(emb *embeddings.WordEmbeddings, tokens []string, windowSize int) [][]float32 {
	dim := emb.Dim()
	left := windowSize / 2
	right := windowSize - left - 1

	features := make([][]float32, len(tokens))
	for i := range tokens {
		row := make([]float32, 0, windowSize*dim)
		for j := i - left; j <= i+right; j++ {
			var vec []float32
			if j >= 0 && j < len(tokens) {
				vec = emb.Get(tokens[j])
			}
			if vec == nil {
				row = append(row, make([]float32, dim)...)
			} else {
				row = append(row, vec...)
			}
		}
		features[i] = row
	}
	return features
}
