package corpus

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// lineScannerBufSize must handle very long corpus lines (web-crawled text
// routinely exceeds bufio's 64K default).
const lineScannerBufSize = 4 * 1024 * 1024

// LineIterator receives a sequence of file paths and reads each file
// line-by-line, transparently decompressing recognized archive formats.
// Lines are stripped of surrounding whitespace; lines that become empty are
// skipped. Exactly one file is held open at a time and it is closed before
// the next path is pulled, or as soon as a read error surfaces.
type LineIterator struct {
	source Iterator[string]

	cur     io.ReadCloser
	scanner *bufio.Scanner
	path    string
	done    bool
}

// NewLineIterator creates a line stage over a source of file paths
func NewLineIterator(source Iterator[string]) *LineIterator {
	return &LineIterator{source: source}
}

func (it *LineIterator) Next() (string, error) {
	if it.done {
		return "", Done
	}
	for {
		if it.cur == nil {
			path, err := it.source.Next()
			if err == Done {
				it.done = true
				return "", Done
			}
			if err != nil {
				it.done = true
				return "", err
			}
			rc, err := Open(path)
			if err != nil {
				it.done = true
				return "", fmt.Errorf("opening corpus file: %w", err)
			}
			it.cur = rc
			it.path = path
			it.scanner = bufio.NewScanner(rc)
			it.scanner.Buffer(make([]byte, 64*1024), lineScannerBufSize)
		}
		for it.scanner.Scan() {
			line := strings.TrimSpace(it.scanner.Text())
			if line != "" {
				return line, nil
			}
		}
		err := it.scanner.Err()
		it.cur.Close()
		it.cur = nil
		it.scanner = nil
		if err != nil {
			it.done = true
			return "", fmt.Errorf("reading %s: %w", it.path, err)
		}
	}
}

func (it *LineIterator) Metadata() Metadata {
	return Metadata{
		"class":       "LineIterator",
		"base_corpus": it.source.Metadata(),
	}
}
