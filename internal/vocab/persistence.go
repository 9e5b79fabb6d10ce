package vocab

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"vec-go/internal/util"
)

const (
	vocabFileName    = "vocab.tsv"
	metadataFileName = "metadata.json"
)

// SaveToDir writes the vocabulary as vocab.tsv (token<TAB>frequency, one
// entry per line in id order) plus a metadata.json provenance record.
func (v *Vocabulary) SaveToDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating vocab dir: %w", err)
	}
	f, err := os.Create(filepath.Join(dir, vocabFileName))
	if err != nil {
		return fmt.Errorf("creating vocab file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for id, token := range v.tokens {
		if _, err := fmt.Fprintf(w, "%s\t%d\n", token, v.frequencies[id]); err != nil {
			return fmt.Errorf("writing vocab entry: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing vocab file: %w", err)
	}
	return util.SaveJSON(v.metadata, filepath.Join(dir, metadataFileName))
}

// LoadFromDir reads a vocabulary previously written by SaveToDir. A missing
// metadata.json is tolerated; a missing vocab.tsv is not.
func LoadFromDir(dir string) (*Vocabulary, error) {
	f, err := os.Open(filepath.Join(dir, vocabFileName))
	if err != nil {
		return nil, fmt.Errorf("opening vocab file: %w", err)
	}
	defer f.Close()

	v := &Vocabulary{
		tokenToID: make(map[string]int),
	}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		token, freqStr, ok := strings.Cut(line, "\t")
		if !ok {
			return nil, fmt.Errorf("malformed vocab entry %q", line)
		}
		freq, err := strconv.ParseInt(freqStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("malformed frequency in %q: %w", line, err)
		}
		if _, dup := v.tokenToID[token]; dup {
			return nil, fmt.Errorf("duplicate token %q in vocab file", token)
		}
		v.tokenToID[token] = len(v.tokens)
		v.tokens = append(v.tokens, token)
		v.frequencies = append(v.frequencies, freq)
		v.totalTokens += freq
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading vocab file: %w", err)
	}

	v.metadata = make(map[string]interface{})
	metaPath := filepath.Join(dir, metadataFileName)
	if _, err := os.Stat(metaPath); err == nil {
		if err := util.LoadJSON(metaPath, &v.metadata); err != nil {
			return nil, err
		}
	}
	return v, nil
}
