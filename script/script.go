package script

import (
	"sort"
	"strings"
)

const (
	// KeywordStart is the reserved keyword answering the session-start signal
	// (an empty input).
	KeywordStart = ""

	// KeywordNone is the reserved keyword used when neither the rules nor the
	// memory stack produce a response.
	KeywordNone = "NONE"
)

// Kind discriminates the variants of a Reassembly entry.
type Kind int

const (
	// KindLiteral is a response template consumed by pattern substitution.
	KindLiteral Kind = iota
	// KindRedirect resumes rule matching under another keyword.
	KindRedirect
	// KindNewKey abandons the current keyword without producing output.
	KindNewKey
)

// String returns a readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindLiteral:
		return "literal"
	case KindRedirect:
		return "redirect"
	case KindNewKey:
		return "newkey"
	default:
		return "unknown"
	}
}

// newKeyMarker is the authoring form of a KindNewKey entry.
const newKeyMarker = "NEWKEY"

// Reassembly is one entry of a rule's reassembly list: a literal template,
// a redirection to another keyword or the NEWKEY instruction.
type Reassembly struct {
	Kind Kind
	// Template holds the response template of a literal entry.
	Template string
	// Target holds the uppercased keyword of a redirect entry.
	Target string
}

// Say returns a literal reassembly template. Back references use the \N form.
func Say(template string) Reassembly {
	return Reassembly{Kind: KindLiteral, Template: template}
}

// Redirect returns an entry continuing with the rules of keyword.
func Redirect(keyword string) Reassembly {
	return Reassembly{Kind: KindRedirect, Target: Canonical(keyword)}
}

// NewKey returns the instruction to drop the current keyword.
func NewKey() Reassembly {
	return Reassembly{Kind: KindNewKey}
}

// ParseReassembly decodes the authoring form of an entry: "=KEY" is a
// redirect, "NEWKEY" drops the keyword and anything else is a literal.
func ParseReassembly(s string) Reassembly {
	switch {
	case s == newKeyMarker:
		return NewKey()
	case strings.HasPrefix(s, "="):
		return Redirect(s[1:])
	default:
		return Say(s)
	}
}

// String returns the authoring form of the entry.
func (r Reassembly) String() string {
	switch r.Kind {
	case KindRedirect:
		return "=" + r.Target
	case KindNewKey:
		return newKeyMarker
	default:
		return r.Template
	}
}

// Rule pairs an optional decomposition pattern with its reassembly list.
type Rule struct {
	// Decomposition is a case-insensitive regular expression gating the rule.
	// An empty decomposition always matches.
	Decomposition string
	// Pre rewrites the sentence (substitution over Decomposition) before a
	// redirect is followed.
	Pre string
	// Reassembly is used round-robin by the engine.
	Reassembly []Reassembly
}

// Keyword is the rule set attached to one script keyword.
type Keyword struct {
	Rank int
	// Substitution replaces the keyword token in the scanned sentence,
	// verbatim as authored. Empty means no substitution.
	Substitution string
	Rules        []Rule
	// Memory rules feed the memory stack when the keyword heads a keystack.
	Memory []Rule
}

// HasRules reports whether the keyword takes part in keystack construction.
func (k Keyword) HasRules() bool { return len(k.Rules) > 0 }

// Script maps canonical (uppercased) keywords to their rule sets.
type Script struct {
	Name string
	// Tags maps placeholders such as "/FAMILY" to regex alternations that are
	// expanded inside decomposition and pre patterns.
	Tags     map[string]string
	Keywords map[string]Keyword
}

// New returns an empty named script.
func New(name string) Script {
	return Script{
		Name:     name,
		Tags:     map[string]string{},
		Keywords: map[string]Keyword{},
	}
}

// Canonical returns the canonical form of a keyword.
func Canonical(word string) string { return strings.ToUpper(word) }

// Set stores kw under the canonical form of word.
func (s *Script) Set(word string, kw Keyword) {
	if s.Keywords == nil {
		s.Keywords = map[string]Keyword{}
	}
	s.Keywords[Canonical(word)] = kw
}

// Lookup returns the keyword entry for word in any casing.
func (s Script) Lookup(word string) (Keyword, bool) {
	kw, ok := s.Keywords[Canonical(word)]
	return kw, ok
}

// Clone returns a deep copy sharing no mutable state with s.
func (s Script) Clone() Script {
	out := Script{
		Name:     s.Name,
		Tags:     make(map[string]string, len(s.Tags)),
		Keywords: make(map[string]Keyword, len(s.Keywords)),
	}
	for k, v := range s.Tags {
		out.Tags[k] = v
	}
	for k, kw := range s.Keywords {
		kw.Rules = cloneRules(kw.Rules)
		kw.Memory = cloneRules(kw.Memory)
		out.Keywords[k] = kw
	}
	return out
}

func cloneRules(rules []Rule) []Rule {
	if rules == nil {
		return nil
	}
	out := make([]Rule, len(rules))
	for i, r := range rules {
		r.Reassembly = append([]Reassembly(nil), r.Reassembly...)
		out[i] = r
	}
	return out
}

// ExpandTags replaces tag placeholders in pattern with their alternations.
// Longer tag names are replaced first so that "/NOUNS" wins over "/NOUN".
func (s Script) ExpandTags(pattern string) string {
	if len(s.Tags) == 0 || !strings.Contains(pattern, "/") {
		return pattern
	}
	names := make([]string, 0, len(s.Tags))
	for name := range s.Tags {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if len(names[i]) != len(names[j]) {
			return len(names[i]) > len(names[j])
		}
		return names[i] < names[j]
	})
	pairs := make([]string, 0, 2*len(names))
	for _, name := range names {
		pairs = append(pairs, name, s.Tags[name])
	}
	return strings.NewReplacer(pairs...).Replace(pattern)
}

// Words returns the canonical keywords in sorted order.
func (s Script) Words() []string {
	words := make([]string, 0, len(s.Keywords))
	for w := range s.Keywords {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}
