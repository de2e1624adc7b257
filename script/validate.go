package script

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingKeyword is returned when a reserved keyword has no rules.
	ErrMissingKeyword = errors.New("missing reserved keyword")
	// ErrEmptyReassembly is returned for a rule without reassembly entries.
	ErrEmptyReassembly = errors.New("empty reassembly list")
	// ErrUnknownRedirect is returned when a redirect targets a keyword without rules.
	ErrUnknownRedirect = errors.New("redirect to unknown keyword")
	// ErrPreWithoutDecomposition is returned for a pre rewrite on a rule that
	// has no decomposition to substitute over.
	ErrPreWithoutDecomposition = errors.New("pre rewrite without decomposition")
)

// ValidationError locates a script problem.
type ValidationError struct {
	Keyword string
	// Section is "rules" or "memory".
	Section string
	// Rule is the index of the rule inside Section, or -1 for keyword level problems.
	Rule int
	Err  error
}

// Error implements error.
func (e *ValidationError) Error() string {
	if e.Rule < 0 {
		return fmt.Sprintf("keyword %q: %v", e.Keyword, e.Err)
	}
	return fmt.Sprintf("keyword %q %s[%d]: %v", e.Keyword, e.Section, e.Rule, e.Err)
}

// Unwrap returns the underlying sentinel error.
func (e *ValidationError) Unwrap() error { return e.Err }

// Validate checks the structural invariants the engine relies on. All
// problems are reported, joined with errors.Join. Pattern syntax is checked
// by the engine when it compiles the script.
func (s Script) Validate() error {
	var errs []error

	for _, reserved := range []string{KeywordStart, KeywordNone} {
		if kw, ok := s.Keywords[reserved]; !ok || !kw.HasRules() {
			errs = append(errs, &ValidationError{Keyword: reserved, Rule: -1, Err: ErrMissingKeyword})
		}
	}

	for _, word := range s.Words() {
		kw := s.Keywords[word]
		errs = append(errs, s.validateRules(word, "rules", kw.Rules)...)
		errs = append(errs, s.validateRules(word, "memory", kw.Memory)...)
	}

	return errors.Join(errs...)
}

func (s Script) validateRules(word, section string, rules []Rule) []error {
	var errs []error
	for i, r := range rules {
		if len(r.Reassembly) == 0 {
			errs = append(errs, &ValidationError{Keyword: word, Section: section, Rule: i, Err: ErrEmptyReassembly})
		}
		if r.Pre != "" && r.Decomposition == "" {
			errs = append(errs, &ValidationError{Keyword: word, Section: section, Rule: i, Err: ErrPreWithoutDecomposition})
		}
		for _, ra := range r.Reassembly {
			if ra.Kind != KindRedirect {
				continue
			}
			if target, ok := s.Keywords[ra.Target]; !ok || !target.HasRules() {
				errs = append(errs, &ValidationError{
					Keyword: word,
					Section: section,
					Rule:    i,
					Err:     fmt.Errorf("%w: %q", ErrUnknownRedirect, ra.Target),
				})
			}
		}
	}
	return errs
}
