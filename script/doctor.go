package script

// Tag placeholders used by the DOCTOR script.
const (
	TagBelief = "/BELIEF"
	TagFamily = "/FAMILY"
	TagNoun   = "/NOUN"
)

func says(templates ...string) []Reassembly {
	out := make([]Reassembly, len(templates))
	for i, t := range templates {
		out[i] = Say(t)
	}
	return out
}

func redirectTo(keyword string) []Rule {
	return []Rule{{Reassembly: []Reassembly{Redirect(keyword)}}}
}

// Doctor returns a fresh copy of Weizenbaum's DOCTOR script, the
// psychotherapist persona of the original ELIZA paper (CACM 9, 1966).
func Doctor() Script {
	s := New("Eliza")
	s.Tags[TagBelief] = "feel|think|believe|wish"
	s.Tags[TagFamily] = "mother|father|sister|brother|wife|children"
	s.Tags[TagNoun] = "mother|father"

	s.Set(KeywordStart, Keyword{Rules: []Rule{
		{Reassembly: says("How do you do. Please tell me your problem")},
	}})

	s.Set(KeywordNone, Keyword{Rules: []Rule{
		{Reassembly: says(
			"I am not sure I understand you fully",
			"Please go on",
			"What does that suggest to you",
			"Do you feel strongly about discussing such things",
		)},
	}})

	s.Set("SORRY", Keyword{Rules: []Rule{
		{Reassembly: says(
			"Please don't apologize",
			"Apologies are not necessary",
			"What feelings do you have when you apologize",
			"I've told you that apologies are not required",
		)},
	}})

	s.Set("DONT", Keyword{Substitution: "don't"})
	s.Set("CANT", Keyword{Substitution: "can't"})
	s.Set("WONT", Keyword{Substitution: "won't"})

	s.Set("REMEMBER", Keyword{Rank: 5, Rules: []Rule{
		{
			Decomposition: `^.*\byou remember (.*)$`,
			Reassembly: says(
				`Do you often think of \1`,
				`Does thinking of \1 bring anything else to mind`,
				"What else do you remember",
				`Why do you remember \1 just now`,
				`What in the present situation reminds you of \1`,
				`What is the connection between me and \1`,
			),
		},
		{
			Decomposition: `^.*\bdo I remember (.*)$`,
			Reassembly: []Reassembly{
				Say(`Did you think I would forget \1`),
				Say(`Why do you think I should recall \1 now`),
				Say(`What about \1`),
				Redirect("WHAT"),
				Say(`You mentioned \1`),
			},
		},
		{Reassembly: []Reassembly{NewKey()}},
	}})

	s.Set("IF", Keyword{Rank: 3, Rules: []Rule{
		{
			Decomposition: `^.*\bif (.*)$`,
			Reassembly: says(
				`Do you think its likely that \1`,
				`Do you wish that \1`,
				`What do you think about \1`,
				`Really, if \1`,
			),
		},
	}})

	s.Set("DREAMT", Keyword{Rank: 4, Rules: []Rule{
		{
			Decomposition: `^.*\byou dreamt (.*)$`,
			Reassembly: []Reassembly{
				Say(`Really, \1`),
				Say(`Have you ever fantasied \1 while you were awake`),
				Say(`Have you dreamt \1 before`),
				Redirect("DREAM"),
				NewKey(),
			},
		},
	}})

	s.Set("DREAMED", Keyword{Rank: 4, Substitution: "dreamt", Rules: redirectTo("DREAMT")})

	s.Set("DREAM", Keyword{Rank: 3, Rules: []Rule{
		{Reassembly: append(says(
			"What does that dream suggest to you",
			"Do you dream often",
			"What persons appear in your dreams",
			"Don't you believe that dream has something to do with your problem",
		), NewKey())},
	}})

	s.Set("DREAMS", Keyword{Rank: 3, Substitution: "dream", Rules: redirectTo("DREAM")})

	s.Set("HOW", Keyword{Rules: redirectTo("WHAT")})
	s.Set("WHEN", Keyword{Rules: redirectTo("WHAT")})
	s.Set("ALIKE", Keyword{Rank: 10, Rules: redirectTo("DIT")})
	s.Set("SAME", Keyword{Rank: 10, Rules: redirectTo("DIT")})
	s.Set("CERTAINLY", Keyword{Rank: 10, Rules: redirectTo("YES")})

	s.Set("PERHAPS", Keyword{Rules: []Rule{
		{Reassembly: says(
			"You don't seem quite certain",
			"Why the uncertain tone",
			"Can't you be more positive",
			"You aren't sure",
			"Don't you know",
		)},
	}})
	s.Set("MAYBE", Keyword{Rules: redirectTo("PERHAPS")})

	s.Set("NAME", Keyword{Rank: 15, Rules: []Rule{
		{Reassembly: says(
			"I am not interested in names",
			"I've told you before, I don't care about names - please continue",
		)},
	}})

	for _, lang := range []string{"DEUTSCH", "FRANCAIS", "ITALIANO", "ESPANOL"} {
		s.Set(lang, Keyword{Rules: redirectTo("XFREMD")})
	}
	s.Set("XFREMD", Keyword{Rules: []Rule{
		{Reassembly: says("I am sorry, I speak only english")},
	}})

	s.Set("HELLO", Keyword{Rules: []Rule{
		{Reassembly: says("How do you do. Please state your problem")},
	}})

	s.Set("COMPUTER", Keyword{Rank: 50, Rules: []Rule{
		{Reassembly: says(
			"Do computer worry you",
			"Why do you mention computers",
			"What do you think machines have to do with your problem",
			"Don't you think computers can help people",
			"What about machines worries you",
			"What do you think about machines",
		)},
	}})
	for _, alias := range []string{"MACHINE", "MACHINES", "COMPUTERS"} {
		s.Set(alias, Keyword{Rank: 50, Rules: redirectTo("COMPUTER")})
	}

	s.Set("AM", Keyword{Substitution: "are", Rules: []Rule{
		{
			Decomposition: `^.*\bare you (.*)$`,
			Reassembly: []Reassembly{
				Say(`Do you believe you are \1`),
				Say(`Would you want to be \1`),
				Say(`You wish I would tell you you are \1`),
				Say(`What would it mean if you were \1`),
				Redirect("WHAT"),
			},
		},
		{Reassembly: says(
			"Why do you say 'AM'",
			"I don't understand that",
		)},
	}})

	s.Set("ARE", Keyword{Rules: []Rule{
		{
			Decomposition: `^.*\bare I (.*)$`,
			Reassembly: []Reassembly{
				Say(`Why are you interested in whether I am \1 or not`),
				Say(`Would you prefer if I weren't \1`),
				Say(`Perhaps I am \1 in your fantasies`),
				Say(`Do you sometimes think I am \1`),
				Redirect("WHAT"),
			},
		},
		{
			Decomposition: `^.*\bare (.*)$`,
			Reassembly: says(
				`Did you think they might not be \1`,
				`Woud you like it if they were not \1`,
				`What if they were not \1`,
				`Possibly they are \1`,
			),
		},
	}})

	s.Set("YOUR", Keyword{Substitution: "my", Rules: []Rule{
		{
			Decomposition: `^.*\bmy (.*)$`,
			Reassembly: says(
				`Why are you concerned over my \1`,
				`What about your own \1`,
				`Are you worried about someone elses \1`,
				`Really, my \1`,
			),
		},
	}})

	s.Set("WAS", Keyword{Rank: 2, Rules: []Rule{
		{
			Decomposition: `^.*\bwas you (.*)$`,
			Reassembly: append(says(
				`What if you were \1`,
				`Do you think you were \1`,
				`Were you \1`,
				`What would it mean if you were \1`,
				`What does '\1' suggest to you`,
			), Redirect("WHAT")),
		},
		{
			Decomposition: `^.*\byou was (.*)$`,
			Reassembly: says(
				`Were you really \1`,
				`Why do you tell me you were \1 now`,
				`Perhaps I already knew you were \1`,
			),
		},
		{
			Decomposition: `^.*\bwas I (.*)$`,
			Reassembly: says(
				`Would you like to believe I was \1`,
				`What suggests that I was \1`,
				"What do you think",
				`Perhaps I was \1`,
				`What if I had been \1`,
			),
		},
		{Reassembly: []Reassembly{NewKey()}},
	}})

	s.Set("WERE", Keyword{Substitution: "was", Rules: redirectTo("WAS")})

	s.Set("ME", Keyword{Substitution: "you"})

	s.Set("YOU'RE", Keyword{Substitution: "I'm", Rules: []Rule{
		{
			Decomposition: `^.*\bI'm (.*)$`,
			Pre:           `I are \1`,
			Reassembly:    []Reassembly{Redirect("YOU")},
		},
	}})

	s.Set("I'M", Keyword{Substitution: "You're", Rules: []Rule{
		{
			Decomposition: `^.*\byou're (.*)$`,
			Pre:           `You are \1`,
			Reassembly:    []Reassembly{Redirect("I")},
		},
	}})

	s.Set("MYSELF", Keyword{Substitution: "yourself"})
	s.Set("YOURSELF", Keyword{Substitution: "myself"})
	s.Set("MOM", Keyword{Substitution: "mother"})
	s.Set("DAD", Keyword{Substitution: "father"})

	s.Set("I", Keyword{Substitution: "you", Rules: []Rule{
		{
			Decomposition: `^.*\byou (want|need) (.*)$`,
			Reassembly: says(
				`What would it mean to you if you got \2`,
				`Why do you want \2`,
				`Suppose you got \2 soon`,
				`What if you never got \2`,
				`What would getting \2 mean to you`,
				`What does wanting \2 have to do with this discussion`,
			),
		},
		{
			Decomposition: `^.*\byou are (.*) (sad|unhappy|depressed|sick) (.*)$`,
			Reassembly: says(
				`I am sorry to hear you are \2`,
				`Do you think coming here will help you not to be \2`,
				`I'm sure its not pleasant to be \2`,
				`Can you explin what made you \2`,
			),
		},
		{
			Decomposition: `^.*\byou are (.*) (happy|elated|glad|better) (.*)$`,
			Reassembly: says(
				`How have I helped you to be \2`,
				`Has your treatment made you \2`,
				`What makes you \2 just now`,
				`Can you explin why you are suddenly \2`,
			),
		},
		{
			Decomposition: `^.*\byou was (.*)$`,
			Reassembly:    []Reassembly{Redirect("WAS")},
		},
		{
			Decomposition: `.*\byou (` + TagBelief + `) you (.*)$`,
			Reassembly: says(
				"Do you really think so",
				`But you are not sure you \2`,
				`Do you really doubt you \2`,
			),
		},
		{
			Decomposition: `.*\byou (.*) (` + TagBelief + `) (.*) you (.*)$`,
			Reassembly:    []Reassembly{Redirect("YOU")},
		},
		{
			Decomposition: `^.*\byou are (.*)$`,
			Reassembly: says(
				`Is it because you are \1 that you came to me`,
				`How long have you been \1`,
				`Do you enjoy being \1`,
			),
		},
		{
			Decomposition: `^.*\byou (can't|cannot) (.*)$`,
			Reassembly: says(
				`How do you know you can't \2`,
				"Have you tried",
				`Perhaps you could \2 now`,
				`Do you really want to be able to \2`,
			),
		},
		{
			Decomposition: `^.*\byou don't (.*)$`,
			Reassembly: says(
				`Don't you really \1`,
				`Why don't you \1`,
				`Do you wish to be able to \1`,
				"Does that trouble you",
			),
		},
		{
			Decomposition: `^.*\byou feel (.*)$`,
			Reassembly: says(
				"Tell me more about such feelings",
				`Do you often feel \1`,
				`Do you enjoy feeling \1`,
				`Of what does feeling \1 reming you`,
			),
		},
		{Reassembly: says(
			"You say I",
			"Can you elaborate on that",
			"Do you say I for some special reason",
			"That's quite interesting",
		)},
	}})

	s.Set("YOU", Keyword{Substitution: "I", Rules: []Rule{
		{
			Decomposition: `^.*\bI remind you of .+`,
			Reassembly:    []Reassembly{Redirect("DIT")},
		},
		{
			Decomposition: `^.*\bI are (.*)$`,
			Reassembly: says(
				`What makes you think I am \1`,
				`Does it please you to believe I am \1`,
				`Do you sometimes wish you were \1`,
				`Perhaps you would like to be \1`,
			),
		},
		{
			Decomposition: `^.*\bI (.*) you`,
			Reassembly: says(
				`Why do you think I \1 you`,
				`You like to think I \1 you - don't you`,
				`What makes you think I \1 you`,
				`Really, I \1 you`,
				`Do you wish to believe I \1 you`,
				`Suppose I did \1 you - what would that mean`,
				`Does someone else believe I \1 you`,
			),
		},
		{
			Decomposition: `^.*\bI (.*)$`,
			Reassembly: says(
				"We were discussing you - not me",
				`Oh, I \1`,
				"You're not really talking about me - are you",
				"What are your feelings now",
			),
		},
	}})

	s.Set("YES", Keyword{Rules: []Rule{
		{Reassembly: says(
			"You seem quite positive",
			"You are sure",
			"I see",
			"I understand",
		)},
	}})

	s.Set("NO", Keyword{Rules: []Rule{
		{Reassembly: says(
			"Are you saying 'no' just to be negative",
			"You are being a bit negative",
			"Why not",
			"Why 'no'",
		)},
	}})

	s.Set("MY", Keyword{
		Rank:         2,
		Substitution: "your",
		Rules: []Rule{
			{
				Decomposition: `.*\byour (` + TagFamily + `) (.*)$`,
				Reassembly: says(
					"Tell me more about your family",
					`Who else if your family \2`,
					`Your \1`,
					`What else comes to mind when you think of your \1`,
				),
			},
			{
				Decomposition: `^.*\byour (.*)$`,
				Reassembly: says(
					`Your \1`,
					`Why do you say your \1`,
					"Does that suggest anything else which belongs to you",
					`Is it important to you that your \1`,
				),
			},
		},
		Memory: []Rule{
			{
				Decomposition: `^.*\byour (.*)$`,
				Reassembly: says(
					`Lets discuss further why your \1`,
					`Earlier you said your \1`,
					`But your \1`,
					`Does that have anything to do with the fact that your \1`,
				),
			},
		},
	})

	s.Set("CAN", Keyword{Rules: []Rule{
		{
			Decomposition: `^.*\bcan I (.*)$`,
			Reassembly: []Reassembly{
				Say(`You believe I can \1 don't you`),
				Redirect("WHAT"),
				Say(`You want me to be able to \1`),
				Say(`Perhaps you would like to be able to \1 yourself`),
			},
		},
		{
			Decomposition: `^.*\bcan you (.*)$`,
			Reassembly: append(says(
				`Whether or not you can \1 depends on you more than on me`,
				`Do you want to be able to \1`,
				`Perhaps you don't want to \1`,
			), Redirect("WHAT")),
		},
	}})

	s.Set("WHAT", Keyword{Rules: []Rule{
		{Reassembly: says(
			"Why do you ask",
			"Does that question interest you",
			"What is it you really want to know",
			"Are such questions much on your mind",
			"What answer would please you most",
			"What do you think",
			"What comes to your mind when you ask that",
			"Have you asked such question before",
			"Have you asked anyone else",
		)},
	}})

	s.Set("BECAUSE", Keyword{Rules: []Rule{
		{Reassembly: says(
			"Is that the real reason",
			"Don't any other reasons come to mind",
			"Does that reason seem to explain anything else",
			"What other reasons might there be",
		)},
	}})

	s.Set("WHY", Keyword{Rules: []Rule{
		{
			Decomposition: `^.*\bwhy don't I (.*)$`,
			Reassembly: append(says(
				`Do you believe I don't \1`,
				`Perhaps I will \1 in good time`,
				`Should you \1 yourself`,
				`You want me to \1`,
			), Redirect("WHAT")),
		},
		{
			Decomposition: `^.*\bwhy can't you (.*)$`,
			Reassembly: append(says(
				`Do you think you should be able to \1`,
				`Do you want to be able to \1`,
				`Do you believe this will help you to \1`,
				`Have you any idea why you can't \1`,
			), Redirect("WHAT")),
		},
	}})

	s.Set("EVERYONE", Keyword{Rank: 2, Rules: []Rule{
		{
			Decomposition: `^.*\b(everyone|everybody|nobody|noone) (.*)$`,
			Reassembly: says(
				`Really, \1`,
				`Surely not \1`,
				"Can you think of anyone in particular",
				"Who, for example",
				"You are thinking of a very special person",
				"Who, may I ask",
				"Someone special perhaps",
				"You have a particular person in mind, don't you",
				"Who do you think you're talking about",
			),
		},
	}})
	for _, alias := range []string{"EVERYBODY", "NOBODY", "NOONE"} {
		s.Set(alias, Keyword{Rank: 2, Rules: redirectTo("EVERYONE")})
	}

	s.Set("ALWAYS", Keyword{Rank: 1, Rules: []Rule{
		{Reassembly: says(
			"Can you think of a specific example",
			"When",
			"What inciden are you thinking of",
			"Really, always",
		)},
	}})

	s.Set("LIKE", Keyword{Rank: 10, Rules: []Rule{
		{
			Decomposition: `^.*\b(am|is|are|was) (.*) like (.*)$`,
			Reassembly:    []Reassembly{Redirect("DIT")},
		},
		{Reassembly: []Reassembly{NewKey()}},
	}})

	s.Set("DIT", Keyword{Rules: []Rule{
		{Reassembly: says(
			"In what way",
			"What resemblance do you see",
			"What does that similarity suggest to you",
			"What other connections do you see",
			"What do you suppose that resemblance means",
			"What is the connection, do you suppose",
			"Could there really be some connection",
			"How",
		)},
	}})

	return s
}
