package corpus

import (
	"strings"

	"vec-go/internal/tokenizer"
)

// TokenizedSequenceIterator receives text lines and applies a tokenizer,
// yielding each resulting tokenized sentence individually. A line may expand
// into zero, one, or many sentences.
//
// Known limitation: a sentence physically split across two input lines is not
// reassembled; each line is tokenized independently. Prepare data accordingly
// (e.g. one line per document).
type TokenizedSequenceIterator struct {
	source  Iterator[string]
	tok     tokenizer.Tokenizer
	pending [][]string
	done    bool
}

// NewTokenizedSequenceIterator creates a tokenizing stage over a source of
// text lines
func NewTokenizedSequenceIterator(source Iterator[string], tok tokenizer.Tokenizer) *TokenizedSequenceIterator {
	return &TokenizedSequenceIterator{source: source, tok: tok}
}

func (it *TokenizedSequenceIterator) Next() ([]string, error) {
	if it.done {
		return nil, Done
	}
	for {
		if len(it.pending) > 0 {
			sentence := it.pending[0]
			it.pending = it.pending[1:]
			return sentence, nil
		}
		line, err := it.source.Next()
		if err != nil {
			it.done = true
			return nil, err
		}
		it.pending = it.tok.Tokenize(strings.TrimSpace(line))
	}
}

func (it *TokenizedSequenceIterator) Metadata() Metadata {
	return Metadata{
		"class":       "TokenizedSequenceIterator",
		"tokenizer":   it.tok.Name(),
		"base_corpus": it.source.Metadata(),
	}
}

// TokenIterator flattens tokenized sentences into a single stream of tokens,
// preserving order.
type TokenIterator struct {
	source  Iterator[[]string]
	pending []string
	done    bool
}

// NewTokenIterator creates a flattening stage over a source of tokenized
// sentences
func NewTokenIterator(source Iterator[[]string]) *TokenIterator {
	return &TokenIterator{source: source}
}

func (it *TokenIterator) Next() (string, error) {
	if it.done {
		return "", Done
	}
	for {
		if len(it.pending) > 0 {
			token := it.pending[0]
			it.pending = it.pending[1:]
			return token, nil
		}
		sentence, err := it.source.Next()
		if err != nil {
			it.done = true
			return "", err
		}
		it.pending = sentence
	}
}

func (it *TokenIterator) Metadata() Metadata {
	return Metadata{
		"class":       "TokenIterator",
		"base_corpus": it.source.Metadata(),
	}
}
