package tokenizer

import (
	"regexp"
	"strings"
)

// reSentence matches one sentence up to and including its terminator.
// Text after the last terminator is handled separately as a trailing sentence.
var reSentence = regexp.MustCompile(`[^.!?]+[.!?]+`)

// reWordToken matches a word (letters/digits, with internal apostrophes) or a
// single non-space punctuation character. Punctuation is kept as its own token.
var reWordToken = regexp.MustCompile(`[\pL\pN]+(?:['’][\pL\pN]+)*|[^\s]`)

// WordTokenizer splits text into sentences on .!? boundaries, then into word
// and punctuation tokens. It is the default tokenizer for space-separated
// languages.
type WordTokenizer struct{}

// NewWordTokenizer creates a new generic word tokenizer
func NewWordTokenizer() *WordTokenizer {
	return &WordTokenizer{}
}

func (t *WordTokenizer) Tokenize(text string) [][]string {
	var sentences [][]string
	for _, sent := range splitSentences(text) {
		tokens := reWordToken.FindAllString(sent, -1)
		if len(tokens) > 0 {
			sentences = append(sentences, tokens)
		}
	}
	return sentences
}

func (t *WordTokenizer) Name() string {
	return "word"
}

// splitSentences returns the sentence substrings of text, including a
// trailing fragment with no terminator.
func splitSentences(text string) []string {
	matches := reSentence.FindAllStringIndex(text, -1)
	var out []string
	last := 0
	for _, m := range matches {
		out = append(out, text[m[0]:m[1]])
		last = m[1]
	}
	if rest := strings.TrimSpace(text[last:]); rest != "" {
		out = append(out, rest)
	}
	return out
}
