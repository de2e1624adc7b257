package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/dlclark/regexp2"

	"github.com/hupe1980/eliza/script"
)

// reassembly is a script entry with its template translated to the
// replacement syntax of regexp2.
type reassembly struct {
	script.Reassembly
	replacement string
}

// rule is a compiled script.Rule. The reassembly slice is owned by the
// chatbot and rotated after every use.
type rule struct {
	pattern       string
	decomposition *regexp2.Regexp // nil matches everything
	pre           string
	reassembly    []reassembly
}

// next returns the head entry and moves it to the tail.
func (r *rule) next() reassembly {
	head := r.reassembly[0]
	copy(r.reassembly, r.reassembly[1:])
	r.reassembly[len(r.reassembly)-1] = head
	return head
}

type entry struct {
	rank         int
	substitution string
	rules        []*rule
	memory       []*rule
}

// store is the compiled, per chatbot copy of a script.
type store struct {
	name    string
	entries map[string]*entry
}

func (s *store) lookup(keyword string) (*entry, bool) {
	e, ok := s.entries[keyword]
	return e, ok
}

// compile validates s and compiles every pattern. The returned store shares
// no state with s.
func compile(s script.Script, timeout time.Duration) (*store, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	s = s.Clone()
	st := &store{name: s.Name, entries: make(map[string]*entry, len(s.Keywords))}

	for _, word := range s.Words() {
		kw := s.Keywords[word]
		rules, err := compileRules(s, word, "rules", kw.Rules, timeout)
		if err != nil {
			return nil, err
		}
		memory, err := compileRules(s, word, "memory", kw.Memory, timeout)
		if err != nil {
			return nil, err
		}
		st.entries[word] = &entry{
			rank:         kw.Rank,
			substitution: kw.Substitution,
			rules:        rules,
			memory:       memory,
		}
	}
	return st, nil
}

func compileRules(s script.Script, word, section string, rules []script.Rule, timeout time.Duration) ([]*rule, error) {
	out := make([]*rule, 0, len(rules))
	for i, r := range rules {
		cr := &rule{pattern: r.Decomposition, reassembly: make([]reassembly, len(r.Reassembly))}
		if r.Decomposition != "" {
			pattern := s.ExpandTags(r.Decomposition)
			re, err := regexp2.Compile(pattern, regexp2.IgnoreCase)
			if err != nil {
				return nil, fmt.Errorf("%w: keyword %q %s[%d] %q: %w", ErrInvalidPattern, word, section, i, pattern, err)
			}
			if timeout > 0 {
				re.MatchTimeout = timeout
			}
			cr.pattern = pattern
			cr.decomposition = re
		}
		if r.Pre != "" {
			cr.pre = convertTemplate(s.ExpandTags(r.Pre))
		}
		for j, ra := range r.Reassembly {
			cr.reassembly[j] = reassembly{Reassembly: ra}
			if ra.Kind == script.KindLiteral && r.Decomposition != "" {
				cr.reassembly[j].replacement = convertTemplate(ra.Template)
			}
		}
		out = append(out, cr)
	}
	return out, nil
}

// convertTemplate translates a template using \N and \g<N> back references
// into the $ based replacement syntax of regexp2. Literal dollar signs are
// escaped; \\, \n and \t keep their usual meaning.
func convertTemplate(t string) string {
	if !strings.ContainsAny(t, `\$`) {
		return t
	}
	var b strings.Builder
	b.Grow(len(t) + 8)
	for i := 0; i < len(t); i++ {
		c := t[i]
		if c == '$' {
			b.WriteString("$$")
			continue
		}
		if c != '\\' || i+1 == len(t) {
			b.WriteByte(c)
			continue
		}
		n := t[i+1]
		switch {
		case isDigit(n):
			j := i + 2
			if j < len(t) && isDigit(t[j]) {
				j++
			}
			b.WriteString("${" + t[i+1:j] + "}")
			i = j - 1
		case n == 'g' && i+2 < len(t) && t[i+2] == '<':
			end := strings.IndexByte(t[i+3:], '>')
			if end < 0 {
				b.WriteByte(c)
				continue
			}
			b.WriteString("${" + t[i+3:i+3+end] + "}")
			i += 3 + end
		case n == '\\':
			b.WriteByte('\\')
			i++
		case n == 'n':
			b.WriteByte('\n')
			i++
		case n == 't':
			b.WriteByte('\t')
			i++
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
