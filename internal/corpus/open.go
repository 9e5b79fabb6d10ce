package corpus

import (
	"bufio"
	"bytes"
	"compress/bzip2"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

var (
	gzipMagic  = []byte{0x1f, 0x8b}
	zstdMagic  = []byte{0x28, 0xb5, 0x2f, 0xfd}
	bzip2Magic = []byte("BZh")
)

// Open opens path for reading, transparently decompressing gzip, zstd and
// bzip2 files. The format is detected from the magic bytes first and the
// file extension as a fallback, so a .txt file holding gzip data still
// decompresses. Closing the returned reader closes the underlying file.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	br := bufio.NewReader(f)
	head, err := br.Peek(4)
	if err != nil && err != io.EOF {
		f.Close()
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	switch {
	case bytes.HasPrefix(head, gzipMagic) || strings.HasSuffix(path, ".gz"):
		zr, err := gzip.NewReader(br)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("opening gzip %s: %w", path, err)
		}
		return &decompressedFile{r: zr, closers: []io.Closer{zr, f}}, nil
	case bytes.HasPrefix(head, zstdMagic) || strings.HasSuffix(path, ".zst"):
		zr, err := zstd.NewReader(br)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("opening zstd %s: %w", path, err)
		}
		return &decompressedFile{r: zr, closers: []io.Closer{zr.IOReadCloser(), f}}, nil
	case bytes.HasPrefix(head, bzip2Magic) || strings.HasSuffix(path, ".bz2"):
		return &decompressedFile{r: bzip2.NewReader(br), closers: []io.Closer{f}}, nil
	default:
		return &decompressedFile{r: br, closers: []io.Closer{f}}, nil
	}
}

type decompressedFile struct {
	r       io.Reader
	closers []io.Closer
}

func (d *decompressedFile) Read(p []byte) (int, error) {
	return d.r.Read(p)
}

func (d *decompressedFile) Close() error {
	var first error
	for _, c := range d.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
