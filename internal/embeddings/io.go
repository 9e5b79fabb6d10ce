package embeddings

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"

	"vec-go/internal/corpus"
	"vec-go/internal/vocab"
)

const vectorsFileName = "vectors.txt"

// LoadFromDir reads embeddings written by SaveToDir (or any word2vec
// text-format dump): a vectors.txt or vectors.txt.gz whose first line is
// "<count> <dim>" followed by one "<token> <v1> ... <vd>" row per token.
// If the directory also holds a vocab.tsv, its frequencies are attached;
// otherwise the vocabulary is derived from the vector rows alone. A count
// mismatch between header and rows is a load error.
func LoadFromDir(dir string) (*WordEmbeddings, error) {
	path := filepath.Join(dir, vectorsFileName)
	if _, err := os.Stat(path); err != nil {
		gz := path + ".gz"
		if _, err2 := os.Stat(gz); err2 != nil {
			return nil, fmt.Errorf("no %s or %s.gz under %s", vectorsFileName, vectorsFileName, dir)
		}
		path = gz
	}
	rc, err := corpus.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening vectors file: %w", err)
	}
	defer rc.Close()

	tokens, matrix, err := readWord2VecText(rc)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	var v *vocab.Vocabulary
	if _, err := os.Stat(filepath.Join(dir, "vocab.tsv")); err == nil {
		v, err = vocab.LoadFromDir(dir)
		if err != nil {
			return nil, err
		}
		if v.Size() != len(tokens) {
			return nil, fmt.Errorf("vocab.tsv has %d tokens but vectors file has %d rows", v.Size(), len(tokens))
		}
		// the vectors file fixes row order; reorder to vocab ids
		reordered := make([][]float32, len(matrix))
		for i, token := range tokens {
			id := v.GetID(token)
			if id < 0 {
				return nil, fmt.Errorf("vector row token %q missing from vocab.tsv", token)
			}
			reordered[id] = matrix[i]
		}
		matrix = reordered
	} else {
		v, err = vocab.FromTokens(tokens)
		if err != nil {
			return nil, err
		}
	}
	return New(v, matrix)
}

// SaveToDir writes the embeddings in word2vec text format plus the
// vocabulary files. gzipVectors compresses vectors.txt.
func (e *WordEmbeddings) SaveToDir(dir string, gzipVectors bool) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating embeddings dir: %w", err)
	}
	if err := e.vocabulary.SaveToDir(dir); err != nil {
		return err
	}

	name := vectorsFileName
	if gzipVectors {
		name += ".gz"
	}
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return fmt.Errorf("creating vectors file: %w", err)
	}
	defer f.Close()

	var w io.Writer = f
	var zw *gzip.Writer
	if gzipVectors {
		zw = gzip.NewWriter(f)
		w = zw
	}
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "%d %d\n", e.vocabulary.Size(), e.dim); err != nil {
		return fmt.Errorf("writing vectors header: %w", err)
	}
	for id := 0; id < e.vocabulary.Size(); id++ {
		if _, err := bw.WriteString(e.vocabulary.GetToken(id)); err != nil {
			return fmt.Errorf("writing vector row: %w", err)
		}
		for _, x := range e.matrix[id] {
			if _, err := fmt.Fprintf(bw, " %g", x); err != nil {
				return fmt.Errorf("writing vector row: %w", err)
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return fmt.Errorf("writing vector row: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flushing vectors file: %w", err)
	}
	if zw != nil {
		if err := zw.Close(); err != nil {
			return fmt.Errorf("closing gzip stream: %w", err)
		}
	}
	return nil
}

func readWord2VecText(r io.Reader) ([]string, [][]float32, error) {
	br := bufio.NewReader(r)
	header, err := br.ReadString('\n')
	if err != nil {
		return nil, nil, fmt.Errorf("reading header: %w", err)
	}
	parts := strings.Fields(header)
	if len(parts) != 2 {
		return nil, nil, fmt.Errorf("malformed header %q", strings.TrimSpace(header))
	}
	count, err := strconv.Atoi(parts[0])
	if err != nil {
		return nil, nil, fmt.Errorf("malformed count: %w", err)
	}
	dim, err := strconv.Atoi(parts[1])
	if err != nil {
		return nil, nil, fmt.Errorf("malformed dimension: %w", err)
	}

	tokens := make([]string, 0, count)
	matrix := make([][]float32, 0, count)
	scanner := bufio.NewScanner(br)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != dim+1 {
			return nil, nil, fmt.Errorf("row %d has %d fields, expected %d", len(tokens), len(fields), dim+1)
		}
		row := make([]float32, dim)
		for i, fstr := range fields[1:] {
			x, err := strconv.ParseFloat(fstr, 32)
			if err != nil {
				return nil, nil, fmt.Errorf("row %d: malformed value %q: %w", len(tokens), fstr, err)
			}
			row[i] = float32(x)
		}
		tokens = append(tokens, fields[0])
		matrix = append(matrix, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("reading rows: %w", err)
	}
	if len(tokens) != count {
		return nil, nil, fmt.Errorf("header promises %d rows, found %d", count, len(tokens))
	}
	return tokens, matrix, nil
}
