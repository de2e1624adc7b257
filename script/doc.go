// Package script defines the declarative rule data that drives an ELIZA
// chatbot: keywords, their ranks and word substitutions, decomposition
// patterns and the reassembly templates paired with them.
//
// A Script is a template value. Engines never mutate it; they take a deep
// copy at construction (see Script.Clone) because reassembly rotation is
// per-conversation state. The package also ships the classic DOCTOR script
// (Doctor) and an empty identity template (Blank), and decodes scripts
// authored as YAML or JSON documents (Decode, LoadFile).
//
// Authoring shape:
//
//	name: Eliza
//	tags:
//	  /FAMILY: mother|father|sister|brother|wife|children
//	keywords:
//	  "":   {rules: [{reassembly: ["How do you do. Please tell me your problem"]}]}
//	  NONE: {rules: [{reassembly: ["Please go on"]}]}
//	  MY:
//	    rank: 2
//	    substitution: your
//	    rules:
//	      - decomposition: '.*\byour (/FAMILY) (.*)$'
//	        reassembly: ['Tell me more about your family', 'Your \1']
//	    memory:
//	      - decomposition: '^.*\byour (.*)$'
//	        reassembly: ['Earlier you said your \1']
//
// Reassembly entries starting with "=" redirect to another keyword and the
// entry "NEWKEY" drops the current keyword; every other entry is a literal
// template using back references (\1, \2, ...) into the decomposition.
package script
