package tokenizer

import "strings"

// SentenceTokenizer splits text into sentences only; each yielded sentence is
// a single-element token sequence holding the raw sentence text. Useful for
// consumers that run their own downstream tokenization.
type SentenceTokenizer struct{}

// NewSentenceTokenizer creates a new sentence-only tokenizer
func NewSentenceTokenizer() *SentenceTokenizer {
	return &SentenceTokenizer{}
}

func (t *SentenceTokenizer) Tokenize(text string) [][]string {
	var sentences [][]string
	for _, sent := range splitSentences(text) {
		sent = strings.TrimSpace(sent)
		if sent != "" {
			sentences = append(sentences, []string{sent})
		}
	}
	return sentences
}

func (t *SentenceTokenizer) Name() string {
	return "sentence"
}
