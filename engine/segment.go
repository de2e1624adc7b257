package engine

import (
	"strings"
	"unicode"
)

// Segment splits a message into sentences on '.' and ','. Empty sentences
// are kept, so Segment("") returns a single empty sentence.
func Segment(msg string) []string {
	var (
		out   []string
		start int
	)
	for i, r := range msg {
		if r == '.' || r == ',' {
			out = append(out, msg[start:i])
			start = i + 1
		}
	}
	return append(out, msg[start:])
}

// punctuation characters become tokens of their own.
const punctuation = ".,?;!"

// Tokenize splits a sentence on whitespace and separates the punctuation
// characters . , ? ; ! into single tokens. Tokens are substrings of
// sentence, so invalid UTF-8 bytes pass through unchanged.
func Tokenize(sentence string) []string {
	var tokens []string
	start := -1
	flush := func(end int) {
		if start >= 0 {
			tokens = append(tokens, sentence[start:end])
			start = -1
		}
	}
	for i, r := range sentence {
		switch {
		case unicode.IsSpace(r):
			flush(i)
		case strings.ContainsRune(punctuation, r):
			flush(i)
			tokens = append(tokens, sentence[i:i+1])
		case start < 0:
			start = i
		}
	}
	flush(len(sentence))
	return tokens
}
