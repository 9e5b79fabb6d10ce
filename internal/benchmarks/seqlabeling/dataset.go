// Package seqlabeling is the sequence-labeling benchmark driver: it loads
// word embeddings and a token/tag dataset, builds windowed feature vectors,
// and reports the experiment as JSON. Classifier training and scoring happen
// in external tooling; this driver owns data preparation and bookkeeping.
package seqlabeling

import (
	"bufio"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"vec-go/internal/corpus"
)

// Sentence is one labeled sentence: parallel token and tag slices.
type Sentence struct {
	Tokens []string
	Tags   []string
}

// ReadDataset loads a CoNLL-style dataset: one "token<TAB>tag" pair per line
// (a single space also accepted), blank line between sentences. Every file
// under dir contributes; compressed files are handled transparently.
func ReadDataset(dir string, logger *zap.Logger) ([]Sentence, error) {
	files := corpus.NewDirIterator(dir, logger)
	var sentences []Sentence
	for {
		path, err := files.Next()
		if err == corpus.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		fileSentences, err := readDatasetFile(path)
		if err != nil {
			return nil, err
		}
		sentences = append(sentences, fileSentences...)
	}
	if len(sentences) == 0 {
		return nil, fmt.Errorf("no labeled sentences found under %s", dir)
	}
	return sentences, nil
}

func readDatasetFile(path string) ([]Sentence, error) {
	rc, err := corpus.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dataset file: %w", err)
	}
	defer rc.Close()

	var sentences []Sentence
	var current Sentence
	flush := func() {
		if len(current.Tokens) > 0 {
			sentences = append(sentences, current)
			current = Sentence{}
		}
	}

	scanner := bufio.NewScanner(rc)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			// blank line is a sentence boundary, not skippable noise
			flush()
			continue
		}
		token, tag, ok := strings.Cut(line, "\t")
		if !ok {
			token, tag, ok = strings.Cut(line, " ")
		}
		if !ok {
			return nil, fmt.Errorf("%s:%d: expected token and tag, got %q", path, lineNo, line)
		}
		current.Tokens = append(current.Tokens, strings.TrimSpace(token))
		current.Tags = append(current.Tags, strings.TrimSpace(tag))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	flush()
	return sentences, nil
}
