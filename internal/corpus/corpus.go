// Package corpus implements the lazy, pull-based iteration pipeline over text
// corpora: file discovery, line reading with transparent decompression,
// tokenization, token streaming and sliding-window sample generation. Stages
// compose by pulling from an upstream stage on demand, so memory stays
// bounded regardless of corpus size.
package corpus

import (
	"go.uber.org/zap"

	"vec-go/internal/tokenizer"
)

// NewFileCorpus returns the stripped non-empty lines of a single file.
func NewFileCorpus(filename string) *LineIterator {
	return NewLineIterator(NewFileIterator(filename))
}

// NewDirCorpus returns the stripped non-empty lines of every file under dir.
func NewDirCorpus(dir string, logger *zap.Logger) *LineIterator {
	return NewLineIterator(NewDirIterator(dir, logger))
}

// NewDirTokenCorpus returns the flat token stream of every file under dir.
func NewDirTokenCorpus(dir string, tok tokenizer.Tokenizer, logger *zap.Logger) *TokenIterator {
	return NewTokenIterator(NewTokenizedSequenceIterator(NewDirCorpus(dir, logger), tok))
}

// NewDirSlidingWindowCorpus returns (center, context) training samples over
// every tokenized sentence of every file under dir.
func NewDirSlidingWindowCorpus(dir string, tok tokenizer.Tokenizer, leftCtxSize, rightCtxSize int, logger *zap.Logger) (*SlidingWindowIterator, error) {
	sentences := NewTokenizedSequenceIterator(NewDirCorpus(dir, logger), tok)
	return NewSlidingWindowIterator(sentences, leftCtxSize, rightCtxSize)
}
