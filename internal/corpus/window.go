package corpus

import "fmt"

// Sample is one sliding-window training sample: a center token and its
// surrounding context. Context holds left-context tokens in original order
// followed by right-context tokens in original order, never includes the
// center itself, and shrinks near sequence boundaries (padding to fixed
// width, if needed, is the downstream consumer's responsibility).
type Sample struct {
	Current string   `json:"current"`
	Context []string `json:"context"`
}

// SlidingWindowIterator receives token sequences (each treated as one bounded
// context, e.g. one sentence) and produces (center, context) samples via a
// symmetric fixed-size window. Each sequence is windowed independently;
// contexts never cross sequence boundaries.
//
// Construction pulls the first upstream element to fail fast on degenerate
// input, so one instance is effectively single-use: rebuild the pipeline to
// iterate again.
type SlidingWindowIterator struct {
	source       Iterator[[]string]
	leftCtxSize  int
	rightCtxSize int

	seq   []string
	pos   int
	first []string
	done  bool
}

// NewSlidingWindowIterator creates a windowing stage over a source of token
// sequences. leftCtxSize and rightCtxSize must be non-negative; an upstream
// that yields nothing at all, or whose first element is not a usable
// sequence, is rejected here rather than at first pull.
func NewSlidingWindowIterator(source Iterator[[]string], leftCtxSize, rightCtxSize int) (*SlidingWindowIterator, error) {
	if leftCtxSize < 0 || rightCtxSize < 0 {
		return nil, fmt.Errorf("window sizes must be non-negative, got left=%d right=%d", leftCtxSize, rightCtxSize)
	}
	first, err := source.Next()
	if err == Done {
		return nil, fmt.Errorf("sliding window over empty corpus")
	}
	if err != nil {
		return nil, fmt.Errorf("pulling first corpus element: %w", err)
	}
	if first == nil {
		return nil, fmt.Errorf("sliding window requires token sequences, got nil first element")
	}
	return &SlidingWindowIterator{
		source:       source,
		leftCtxSize:  leftCtxSize,
		rightCtxSize: rightCtxSize,
		first:        first,
	}, nil
}

func (it *SlidingWindowIterator) Next() (Sample, error) {
	if it.done {
		return Sample{}, Done
	}
	for {
		if it.pos < len(it.seq) {
			sample := WindowAt(it.seq, it.pos, it.leftCtxSize, it.rightCtxSize)
			it.pos++
			return sample, nil
		}
		if it.first != nil {
			it.seq = it.first
			it.first = nil
		} else {
			seq, err := it.source.Next()
			if err != nil {
				it.done = true
				return Sample{}, err
			}
			it.seq = seq
		}
		it.pos = 0
	}
}

func (it *SlidingWindowIterator) Metadata() Metadata {
	return Metadata{
		"class":          "SlidingWindowIterator",
		"left_ctx_size":  it.leftCtxSize,
		"right_ctx_size": it.rightCtxSize,
		"base_corpus":    it.source.Metadata(),
	}
}

// WindowAt builds the sample for seq[i]: context is seq[max(0,i-left):i]
// followed by seq[i+1:min(n,i+right+1)]. left and right must be
// non-negative; callers taking sizes from external input validate first.
func WindowAt(seq []string, i, left, right int) Sample {
	lo := i - left
	if lo < 0 {
		lo = 0
	}
	hi := i + right + 1
	if hi > len(seq) {
		hi = len(seq)
	}
	ctx := make([]string, 0, (i-lo)+(hi-i-1))
	ctx = append(ctx, seq[lo:i]...)
	ctx = append(ctx, seq[i+1:hi]...)
	return Sample{Current: seq[i], Context: ctx}
}
