package tokenizer

import "unicode"

// JapaneseTokenizer segments Japanese text without an external morphology
// engine: sentences split on 。！？ (and their ASCII equivalents), han
// characters become single-rune tokens, kana and latin/digit runs are kept
// whole. This is a coarse segmentation adequate for building count-based
// vocabularies and window samples.
type JapaneseTokenizer struct{}

// NewJapaneseTokenizer creates a new Japanese tokenizer
func NewJapaneseTokenizer() *JapaneseTokenizer {
	return &JapaneseTokenizer{}
}

func (t *JapaneseTokenizer) Tokenize(text string) [][]string {
	var sentences [][]string
	var current []rune
	flush := func() {
		if len(current) == 0 {
			return
		}
		tokens := segmentRunes(current)
		if len(tokens) > 0 {
			sentences = append(sentences, tokens)
		}
		current = current[:0]
	}
	for _, r := range text {
		current = append(current, r)
		switch r {
		case '。', '！', '？', '.', '!', '?':
			flush()
		}
	}
	flush()
	return sentences
}

func (t *JapaneseTokenizer) Name() string {
	return "japanese"
}

type runeClass int

const (
	classSpace runeClass = iota
	classHan
	classHiragana
	classKatakana
	classLatin
	classPunct
)

func classify(r rune) runeClass {
	switch {
	case unicode.IsSpace(r):
		return classSpace
	case unicode.Is(unicode.Han, r):
		return classHan
	case unicode.Is(unicode.Hiragana, r):
		return classHiragana
	case unicode.Is(unicode.Katakana, r) || r == 'ー':
		return classKatakana
	case unicode.IsLetter(r) || unicode.IsDigit(r):
		return classLatin
	default:
		return classPunct
	}
}

func segmentRunes(runes []rune) []string {
	var tokens []string
	var run []rune
	var runClass runeClass = classSpace
	flush := func() {
		if len(run) > 0 {
			tokens = append(tokens, string(run))
			run = run[:0]
		}
	}
	for _, r := range runes {
		c := classify(r)
		if c == classSpace {
			flush()
			runClass = classSpace
			continue
		}
		// han runes are emitted one per token; other classes group by run
		if c == classHan {
			flush()
			tokens = append(tokens, string(r))
			runClass = classHan
			continue
		}
		if c != runClass {
			flush()
		}
		run = append(run, r)
		runClass = c
	}
	flush()
	return tokens
}
