package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSegment(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", []string{""}},
		{"no separator", "hello there", []string{"hello there"}},
		{"comma and period", "hello Eliza, nice to meet you. how are you?", []string{"hello Eliza", " nice to meet you", " how are you?"}},
		{"trailing period", "I'm first.", []string{"I'm first", ""}},
		{"consecutive separators", "a.,b", []string{"a", "", "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Segment(tt.in))
		})
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", nil},
		{"whitespace only", "  \t ", nil},
		{"words", "I remember  my mother", []string{"I", "remember", "my", "mother"}},
		{"punctuation", "I'm first. second. You're", []string{"I'm", "first", ".", "second", ".", "You're"}},
		{"punctuation inside word", "what?now!ok;", []string{"what", "?", "now", "!", "ok", ";"}},
		{"leading and trailing space", "  hi ", []string{"hi"}},
		{"invalid utf8 kept verbatim", "\xff\xfe my\xffword", []string{"\xff\xfe", "my\xffword"}},
		{"multibyte runes", "größe, ok", []string{"größe", ",", "ok"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Tokenize(tt.in))
		})
	}
}
