// Package engine implements the ELIZA conversation engine: a script driven
// keyword, decomposition and reassembly responder.
//
// A Chatbot owns a private copy of its script. Each user message is handled
// in one turn:
//
//  1. The message is split into sentences on '.' and ','.
//  2. Each sentence is tokenized and scanned for keywords. Substitutions are
//     applied to produce the altered sentence and keywords with rules are
//     pushed on the keystack, higher ranks in front.
//  3. The memory rules of the head keyword may store a deferred response.
//  4. Keywords are tried in keystack order. The first decomposition pattern
//     that matches selects a rule and its next reassembly entry is used:
//     literal templates are substituted over the sentence, redirects
//     continue with another keyword and NEWKEY drops the keyword.
//  5. Without a response the oldest memory entry is returned, otherwise the
//     NONE keyword answers.
//
// An empty message is the session start signal and is answered by the rules
// of the reserved start keyword.
//
// Usage:
//
//	bot, err := engine.New("Eliza", script.Doctor())
//	if err != nil {
//		return err
//	}
//	greeting, _ := bot.Start()
//	answer, err := bot.Respond("I remember my mother")
//
// Patterns are compiled with github.com/dlclark/regexp2 using case
// insensitive matching and a per match timeout. A Chatbot is not safe for
// concurrent use.
package engine
