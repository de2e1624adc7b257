package script

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

type document struct {
	Name     string                 `yaml:"name"`
	Tags     map[string]string      `yaml:"tags"`
	Keywords map[string]keywordNode `yaml:"keywords"`
}

type keywordNode struct {
	Rank         int        `yaml:"rank"`
	Substitution string     `yaml:"substitution"`
	Equals       string     `yaml:"="` // spelling used by the original scripts
	Rules        []ruleNode `yaml:"rules"`
	Memory       []ruleNode `yaml:"memory"`
}

type ruleNode struct {
	Decomposition string   `yaml:"decomposition"`
	Pre           string   `yaml:"pre"`
	Reassembly    []string `yaml:"reassembly"`
}

// Decode reads a YAML (or JSON) script document. Keywords are canonicalized
// and the result is validated.
func Decode(r io.Reader) (Script, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc document
	if err := dec.Decode(&doc); err != nil {
		if err == io.EOF {
			return Script{}, fmt.Errorf("decode script: empty document")
		}
		return Script{}, fmt.Errorf("decode script: %w", err)
	}

	s := New(doc.Name)
	for name, alt := range doc.Tags {
		s.Tags[name] = alt
	}
	for word, node := range doc.Keywords {
		key := Canonical(word)
		if _, dup := s.Keywords[key]; dup {
			return Script{}, fmt.Errorf("decode script: keyword %q defined twice", key)
		}
		sub := node.Substitution
		if sub == "" {
			sub = node.Equals
		}
		s.Keywords[key] = Keyword{
			Rank:         node.Rank,
			Substitution: sub,
			Rules:        decodeRules(node.Rules),
			Memory:       decodeRules(node.Memory),
		}
	}

	if err := s.Validate(); err != nil {
		return Script{}, err
	}
	return s, nil
}

func decodeRules(nodes []ruleNode) []Rule {
	if len(nodes) == 0 {
		return nil
	}
	rules := make([]Rule, len(nodes))
	for i, n := range nodes {
		ra := make([]Reassembly, len(n.Reassembly))
		for j, entry := range n.Reassembly {
			ra[j] = ParseReassembly(entry)
		}
		rules[i] = Rule{Decomposition: n.Decomposition, Pre: n.Pre, Reassembly: ra}
	}
	return rules
}

// LoadFile decodes the script stored at path. When the document has no
// name the file name without extension is used.
func LoadFile(path string) (Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Script{}, fmt.Errorf("load script: %w", err)
	}
	s, err := Decode(bytes.NewReader(data))
	if err != nil {
		return Script{}, fmt.Errorf("load script %s: %w", path, err)
	}
	if s.Name == "" {
		base := filepath.Base(path)
		s.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return s, nil
}
