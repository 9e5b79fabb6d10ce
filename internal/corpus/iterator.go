package corpus

import "errors"

// Done is returned by Next when an iterator has no more samples to yield.
// It marks normal exhaustion, not a fault; once returned, every later call
// to Next on the same instance returns Done again.
var Done = errors.New("corpus: no more samples")

// Iterator is the pull contract shared by every pipeline stage. A stage pulls
// from its upstream on demand, so a chain of iterators evaluates lazily
// file-by-file, line-by-line, token-by-token regardless of corpus size.
//
// Instances are single-pass: iterate a fresh instance to restart. Errors from
// the underlying source (e.g. an unreadable file) surface from Next at the
// point the failing item is reached, never at construction.
type Iterator[T any] interface {
	// Next returns the next sample, Done on exhaustion, or the error that
	// stopped iteration.
	Next() (T, error)

	// Metadata describes how this stage (and, nested, its upstream) was
	// configured. It is safe to call at any time, including before the
	// first pull, and is stable across the instance's lifetime.
	Metadata() Metadata
}

// Metadata is a generic key/value rendering of a stage's configuration, used
// for provenance and logging only; it never drives data flow. Each stage
// nests its upstream's metadata under "base_corpus", so the full record
// mirrors the pipeline's composition order.
type Metadata map[string]interface{}
