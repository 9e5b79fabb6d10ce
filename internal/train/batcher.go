// Package train turns sliding-window corpus samples into fixed-shape id
// batches for embedding-model trainers. The neural network itself (forward,
// backward, optimizers) is a framework concern outside this repository; this
// package only owns the data plumbing: id lookup, context padding and epoch
// accounting.
package train

import (
	"fmt"

	"go.uber.org/zap"

	"vec-go/internal/corpus"
	"vec-go/internal/tokenizer"
	"vec-go/internal/vocab"
)

// PadID fills context slots that have no token: window shrinkage near
// sentence boundaries and out-of-vocabulary tokens both map here.
const PadID int32 = -1

// WindowBatcher drives a dir sliding-window pipeline and emits id batches.
// The underlying pipeline is single-use, so the batcher rebuilds it whenever
// it exhausts, bumping the epoch counter. With repeat disabled the batcher
// returns corpus.Done after the first epoch instead.
type WindowBatcher struct {
	path       string
	vocabulary *vocab.Vocabulary
	tok        tokenizer.Tokenizer
	left       int
	right      int
	repeat     bool
	logger     *zap.Logger

	it            *corpus.SlidingWindowIterator
	epoch         int
	isNewEpoch    bool
	cntWordsTotal int64
	cntWordsRead  int64
}

// NewWindowBatcher creates a batcher over every file under path. left and
// right fix the context window; contexts are padded to left+right ids.
func NewWindowBatcher(path string, v *vocab.Vocabulary, tok tokenizer.Tokenizer, left, right int, repeat bool, logger *zap.Logger) (*WindowBatcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	it, err := corpus.NewDirSlidingWindowCorpus(path, tok, left, right, logger)
	if err != nil {
		return nil, fmt.Errorf("building window corpus: %w", err)
	}
	b := &WindowBatcher{
		path:       path,
		vocabulary: v,
		tok:        tok,
		left:       left,
		right:      right,
		repeat:     repeat,
		logger:     logger,
		it:         it,
		// avoids a zero denominator in EpochDetail before the first full epoch
		cntWordsTotal: 1,
	}
	logger.Debug("created window batcher",
		zap.String("path", path),
		zap.Int("left_ctx_size", left),
		zap.Int("right_ctx_size", right),
	)
	return b, nil
}

// Epoch returns the number of completed passes over the corpus.
func (b *WindowBatcher) Epoch() int {
	return b.epoch
}

// IsNewEpoch reports whether the last NextBatch call crossed an epoch
// boundary.
func (b *WindowBatcher) IsNewEpoch() bool {
	return b.isNewEpoch
}

// EpochDetail returns fractional epoch progress, e.g. 2.5 halfway through
// the third pass.
func (b *WindowBatcher) EpochDetail() float64 {
	return float64(b.cntWordsRead) / float64(b.cntWordsTotal)
}

// NextSample returns one (center id, padded context ids) pair, wrapping to a
// new epoch when the corpus exhausts. A corpus with fewer than 3 words is
// rejected once a full pass proves it.
func (b *WindowBatcher) NextSample() (int32, []int32, error) {
	if !b.repeat && b.epoch > 0 {
		return 0, nil, corpus.Done
	}
	var sample corpus.Sample
	for {
		var err error
		sample, err = b.it.Next()
		if err == nil {
			b.cntWordsRead++
			if b.epoch == 0 {
				b.cntWordsTotal++
			}
			break
		}
		if err != corpus.Done {
			return 0, nil, err
		}
		b.epoch++
		b.isNewEpoch = true
		if b.cntWordsTotal < 3 {
			return 0, nil, fmt.Errorf("corpus under %s is empty", b.path)
		}
		if !b.repeat {
			return 0, nil, corpus.Done
		}
		it, err := corpus.NewDirSlidingWindowCorpus(b.path, b.tok, b.left, b.right, b.logger)
		if err != nil {
			return 0, nil, fmt.Errorf("restarting window corpus: %w", err)
		}
		b.it = it
	}

	center := int32(b.vocabulary.GetID(sample.Current))
	context := make([]int32, 0, b.left+b.right)
	for _, w := range sample.Context {
		context = append(context, int32(b.vocabulary.GetID(w)))
	}
	// pad so every context in a batch has equal width
	for len(context) < b.left+b.right {
		context = append(context, PadID)
	}
	return center, context, nil
}

// NextBatch collects size samples into parallel center/context slices.
func (b *WindowBatcher) NextBatch(size int) ([]int32, [][]int32, error) {
	b.isNewEpoch = false
	centers := make([]int32, 0, size)
	contexts := make([][]int32, 0, size)
	for i := 0; i < size; i++ {
		center, context, err := b.NextSample()
		if err != nil {
			return nil, nil, err
		}
		centers = append(centers, center)
		contexts = append(contexts, context)
	}
	return centers, contexts, nil
}
