package engine

import (
	"fmt"
	"strings"
)

// Key is a keystack entry.
type Key struct {
	Keyword string
	Rank    int
}

// Keystack is the ordered list of keywords found in a sentence.
type Keystack []Key

// Push inserts k in front when its rank is strictly greater than the rank
// of the current head and appends it otherwise. Only the head is compared,
// so the stack is not fully sorted.
func (ks *Keystack) Push(k Key) {
	if len(*ks) > 0 && k.Rank > (*ks)[0].Rank {
		*ks = append(Keystack{k}, *ks...)
		return
	}
	*ks = append(*ks, k)
}

// Keywords returns the keywords in stack order.
func (ks Keystack) Keywords() []string {
	out := make([]string, len(ks))
	for i, k := range ks {
		out[i] = k.Keyword
	}
	return out
}

// String renders the stack for logs.
func (ks Keystack) String() string {
	parts := make([]string, len(ks))
	for i, k := range ks {
		parts[i] = fmt.Sprintf("%q (rank: %d)", k.Keyword, k.Rank)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
