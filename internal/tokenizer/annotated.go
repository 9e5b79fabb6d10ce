package tokenizer

import "strings"

// AnnotatedTokenizer handles pre-tokenized text: tokens are separated by
// whitespace and optionally carry a trailing annotation ("word/POS"). Each
// input line is treated as one sentence and annotations are stripped.
type AnnotatedTokenizer struct {
	sep string
}

// NewAnnotatedTokenizer creates a passthrough tokenizer for annotated text.
// sep is the token/annotation separator, typically "/". An empty sep keeps
// tokens as-is.
func NewAnnotatedTokenizer(sep string) *AnnotatedTokenizer {
	return &AnnotatedTokenizer{sep: sep}
}

func (t *AnnotatedTokenizer) Tokenize(text string) [][]string {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return nil
	}
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if t.sep != "" {
			// annotation follows the last separator: "can/MD", "1/2/CD"
			if idx := strings.LastIndex(f, t.sep); idx > 0 {
				f = f[:idx]
			}
		}
		tokens = append(tokens, f)
	}
	return [][]string{tokens}
}

func (t *AnnotatedTokenizer) Name() string {
	return "annotated"
}
