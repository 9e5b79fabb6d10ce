package corpus

// ChainIterator concatenates several same-typed iterators, exhausting each in
// turn. Metadata lists every part's metadata in order.
type ChainIterator[T any] struct {
	parts []Iterator[T]
	idx   int
}

// NewChainIterator creates an iterator over parts back to back
func NewChainIterator[T any](parts ...Iterator[T]) *ChainIterator[T] {
	return &ChainIterator[T]{parts: parts}
}

func (it *ChainIterator[T]) Next() (T, error) {
	var zero T
	for it.idx < len(it.parts) {
		sample, err := it.parts[it.idx].Next()
		if err == Done {
			it.idx++
			continue
		}
		if err != nil {
			it.idx = len(it.parts)
			return zero, err
		}
		return sample, nil
	}
	return zero, Done
}

func (it *ChainIterator[T]) Metadata() Metadata {
	metas := make([]Metadata, 0, len(it.parts))
	for _, p := range it.parts {
		metas = append(metas, p.Metadata())
	}
	return Metadata{
		"class":          "ChainIterator",
		"base_iterators": metas,
	}
}

// TruncatedIterator yields at most the first limit upstream samples. Handy
// for debugging against a slice of a large corpus.
type TruncatedIterator[T any] struct {
	source Iterator[T]
	limit  int
	count  int
	done   bool
}

// NewTruncatedIterator creates a truncating stage over source
func NewTruncatedIterator[T any](source Iterator[T], limit int) *TruncatedIterator[T] {
	return &TruncatedIterator[T]{source: source, limit: limit}
}

func (it *TruncatedIterator[T]) Next() (T, error) {
	var zero T
	if it.done || it.count >= it.limit {
		it.done = true
		return zero, Done
	}
	sample, err := it.source.Next()
	if err != nil {
		it.done = true
		return zero, err
	}
	it.count++
	return sample, nil
}

func (it *TruncatedIterator[T]) Metadata() Metadata {
	return Metadata{
		"class":       "TruncatedIterator",
		"limit":       it.limit,
		"base_corpus": it.source.Metadata(),
	}
}
