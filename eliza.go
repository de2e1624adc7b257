// Package eliza provides a high-level façade over the engine and script
// packages. Most applications interact with this package by:
//  1. Creating a chatbot via New() (optionally overriding the default name,
//     script or logger)
//  2. Sending the empty session start message (Chatbot.Start)
//  3. Calling Chatbot.Respond for every user message
//
// New defaults to the classic DOCTOR script under the name "Eliza". Custom
// scripts are built with the script package or decoded from YAML/JSON files
// via script.LoadFile.
package eliza

import (
	"fmt"
	"io"
	"time"

	"github.com/hupe1980/eliza/engine"
	"github.com/hupe1980/eliza/logging"
	"github.com/hupe1980/eliza/script"
)

// DefaultName is the chatbot name used when none is configured.
const DefaultName = "Eliza"

// Options configures the chatbot created by New.
type Options struct {
	// Name is the display name (defaults to DefaultName).
	Name string
	// Script drives the conversation (defaults to script.Doctor()).
	Script *script.Script
	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger
	// MaxRedirects bounds redirect chains (engine default if zero).
	MaxRedirects int
	// MatchTimeout bounds a single pattern match (engine default if zero).
	MatchTimeout time.Duration
	// MemoryLimit bounds the memory stack (unbounded if zero).
	MemoryLimit int
}

// New creates a chatbot with optional overrides.
func New(optFns ...func(o *Options)) (*engine.Chatbot, error) {
	opts := Options{
		Name:   DefaultName,
		Logger: logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	s := script.Doctor()
	if opts.Script != nil {
		s = *opts.Script
	}

	return engine.New(opts.Name, s, func(o *engine.Options) {
		o.Logger = opts.Logger
		if opts.MaxRedirects > 0 {
			o.MaxRedirects = opts.MaxRedirects
		}
		if opts.MatchTimeout > 0 {
			o.MatchTimeout = opts.MatchTimeout
		}
		o.MemoryLimit = opts.MemoryLimit
	})
}

// ExampleMessages is the example conversation used to demonstrate and
// debug the DOCTOR script.
var ExampleMessages = []string{
	"hello Eliza, nice to meet you. how are you?",
	"no",
	"no",
	"no no no",
	"just no",
	"no",
	"nej",
	"perhaps we can look into natural language understanding problem, why not",
	"yes but maybe everyone has problems even a computer",
	"what if they start to think",
	"are you thinking yourself",
	"because my children have fun talking with chatbots",
	"you remind me of a family member",
	"hmm",
}

// RunExample plays the first n ExampleMessages against a fresh chatbot and
// writes the transcript to w. A non-positive n or one larger than the
// example plays all messages.
func RunExample(w io.Writer, n int, optFns ...func(o *Options)) error {
	bot, err := New(optFns...)
	if err != nil {
		return err
	}

	msgs := ExampleMessages
	if n > 0 && n < len(msgs) {
		msgs = msgs[:n]
	}

	for i, msg := range msgs {
		resp, err := bot.Respond(msg)
		if err != nil {
			return fmt.Errorf("round %d: %w", i+1, err)
		}
		if _, err := fmt.Fprintf(w, "****** Round #%d ******\nUser: %s\n%s: %s\n\n", i+1, msg, bot.Name(), resp); err != nil {
			return err
		}
	}
	return nil
}
