package script

// Blank returns the identity template: the two reserved keywords and one
// sample keyword, meant as a starting point for custom scripts.
func Blank() Script {
	s := New("blank")
	s.Set(KeywordStart, Keyword{Rules: []Rule{
		{Reassembly: says("MY KEYWORD_START ANSWER: I'm Blank! Feed my script!")},
	}})
	s.Set(KeywordNone, Keyword{Rules: []Rule{
		{Reassembly: says("MY KEYWORD_NONE ANSWER: I'm Blank! Feed my script!")},
	}})
	s.Set("MYKEYWORD", Keyword{Rules: []Rule{
		{Reassembly: says("MYANSWER")},
	}})
	return s
}

// Builtin returns the built-in script registered under name.
func Builtin(name string) (Script, bool) {
	switch Canonical(name) {
	case "ELIZA", "DOCTOR":
		return Doctor(), true
	case "BLANK":
		return Blank(), true
	default:
		return Script{}, false
	}
}
