package testutil

import (
	"github.com/hupe1980/eliza/script"
)

// ScriptBuilder provides a fluent helper for constructing scripts in tests.
// Example:
//
//	s := NewScriptBuilder("test").
//		Start("Hello").
//		None("Go on").
//		Keyword("NO", 0).Rule("", "Why not", "=WHY").
//		Build()
//
// Reassembly entries use the authoring form: "=KEY" redirects, "NEWKEY"
// drops the keyword and anything else is a literal template.
type ScriptBuilder struct {
	s       script.Script
	current string
}

// NewScriptBuilder creates a builder for an empty script.
func NewScriptBuilder(name string) *ScriptBuilder {
	return &ScriptBuilder{s: script.New(name)}
}

// Start adds a rule without decomposition to the start keyword (chainable).
func (b *ScriptBuilder) Start(entries ...string) *ScriptBuilder {
	return b.Keyword(script.KeywordStart, 0).Rule("", entries...)
}

// None adds a rule without decomposition to the NONE keyword (chainable).
func (b *ScriptBuilder) None(entries ...string) *ScriptBuilder {
	return b.Keyword(script.KeywordNone, 0).Rule("", entries...)
}

// Keyword selects (creating if needed) the keyword following calls apply to
// and sets its rank (chainable).
func (b *ScriptBuilder) Keyword(word string, rank int) *ScriptBuilder {
	b.current = script.Canonical(word)
	kw := b.s.Keywords[b.current]
	kw.Rank = rank
	b.s.Keywords[b.current] = kw
	return b
}

// Substitution sets the substitution of the current keyword (chainable).
func (b *ScriptBuilder) Substitution(sub string) *ScriptBuilder {
	kw := b.s.Keywords[b.current]
	kw.Substitution = sub
	b.s.Keywords[b.current] = kw
	return b
}

// Rule appends a rule to the current keyword (chainable).
func (b *ScriptBuilder) Rule(decomposition string, entries ...string) *ScriptBuilder {
	return b.RuleWithPre(decomposition, "", entries...)
}

// RuleWithPre appends a rule carrying a pre rewrite (chainable).
func (b *ScriptBuilder) RuleWithPre(decomposition, pre string, entries ...string) *ScriptBuilder {
	kw := b.s.Keywords[b.current]
	kw.Rules = append(kw.Rules, newRule(decomposition, pre, entries))
	b.s.Keywords[b.current] = kw
	return b
}

// Memory appends a memory rule to the current keyword (chainable).
func (b *ScriptBuilder) Memory(decomposition string, entries ...string) *ScriptBuilder {
	kw := b.s.Keywords[b.current]
	kw.Memory = append(kw.Memory, newRule(decomposition, "", entries))
	b.s.Keywords[b.current] = kw
	return b
}

// Tag registers a tag placeholder such as "/FAMILY" (chainable).
func (b *ScriptBuilder) Tag(name, alternation string) *ScriptBuilder {
	b.s.Tags[name] = alternation
	return b
}

// Build returns an independent copy of the constructed script.
func (b *ScriptBuilder) Build() script.Script {
	return b.s.Clone()
}

func newRule(decomposition, pre string, entries []string) script.Rule {
	r := script.Rule{Decomposition: decomposition, Pre: pre}
	for _, e := range entries {
		r.Reassembly = append(r.Reassembly, script.ParseReassembly(e))
	}
	return r
}
