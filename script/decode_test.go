package script

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile(t *testing.T) {
	s, err := LoadFile("testdata/parrot.yaml")
	require.NoError(t, err)

	assert.Equal(t, "parrot", s.Name)
	assert.Equal(t, "cat|dog|parrot", s.Tags["/PET"])
	assert.ElementsMatch(t, []string{"", "NONE", "DONT", "MY", "PET"}, s.Words())

	assert.Equal(t, "don't", s.Keywords["DONT"].Substitution)

	my := s.Keywords["MY"]
	assert.Equal(t, 2, my.Rank)
	assert.Equal(t, "your", my.Substitution)
	require.Len(t, my.Rules, 2)
	assert.Equal(t, []Reassembly{Say(`Your \1 sounds lovely`), Redirect("PET")}, my.Rules[0].Reassembly)
	assert.Equal(t, []Reassembly{NewKey()}, my.Rules[1].Reassembly)
	require.Len(t, my.Memory, 1)
	assert.Equal(t, `^.*\byour (.*)$`, my.Memory[0].Decomposition)
}

func TestDecode_JSON(t *testing.T) {
	doc := `{"name": "tiny", "keywords": {` +
		`"": {"rules": [{"reassembly": ["hello"]}]}, ` +
		`"NONE": {"rules": [{"reassembly": ["go on"]}]}}}`

	s, err := Decode(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, "tiny", s.Name)
	assert.Equal(t, "hello", s.Keywords[KeywordStart].Rules[0].Reassembly[0].Template)
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"empty", "", "empty document"},
		{"unknown field", "keywords:\n  NONE:\n    ranking: 1\n", "ranking"},
		{"duplicate keyword", "keywords:\n  my: {rank: 1}\n  MY: {rank: 2}\n", "defined twice"},
		{"missing reserved", "keywords:\n  NO:\n    rules: [{reassembly: [nope]}]\n", ErrMissingKeyword.Error()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile("testdata/does-not-exist.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load script")
}
