package tokenizer

// Tokenizer defines the interface for language-specific text tokenization.
// Tokenize maps one piece of raw text to an ordered sequence of sentences,
// each an ordered sequence of token strings. A text may produce zero, one,
// or many sentences.
type Tokenizer interface {
	// Tokenize converts raw text into tokenized sentences
	Tokenize(text string) [][]string

	// Name returns a stable identifier for this tokenizer, used in
	// pipeline metadata
	Name() string
}

// Registry manages tokenizers for different languages
type Registry struct {
	tokenizers map[string]Tokenizer
}

// NewRegistry creates a new tokenizer registry
func NewRegistry() *Registry {
	return &Registry{
		tokenizers: make(map[string]Tokenizer),
	}
}

// NewDefaultRegistry creates a registry with all built-in tokenizers registered
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register("eng", NewWordTokenizer())
	r.Register("jap", NewJapaneseTokenizer())
	r.Register("sent", NewSentenceTokenizer())
	r.Register("annotated", NewAnnotatedTokenizer("/"))
	return r
}

// Register adds a tokenizer for a specific language
func (r *Registry) Register(language string, tokenizer Tokenizer) {
	r.tokenizers[language] = tokenizer
}

// Get returns the tokenizer for a given language
func (r *Registry) Get(language string) (Tokenizer, bool) {
	tokenizer, ok := r.tokenizers[language]
	return tokenizer, ok
}

// SupportedLanguages returns a list of all registered languages
func (r *Registry) SupportedLanguages() []string {
	languages := make([]string, 0, len(r.tokenizers))
	for lang := range r.tokenizers {
		languages = append(languages, lang)
	}
	return languages
}
