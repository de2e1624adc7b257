package engine

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hupe1980/eliza/logging"
	"github.com/hupe1980/eliza/memory"
	"github.com/hupe1980/eliza/script"
)

// Source tells which stage of a turn produced the response.
type Source int

const (
	// SourceStart marks the answer to the session start signal.
	SourceStart Source = iota
	// SourceRule marks a response produced by keyword rules.
	SourceRule
	// SourceMemory marks a response popped from the memory stack.
	SourceMemory
	// SourceDefault marks a response of the NONE keyword.
	SourceDefault
)

// String returns the lowercase name of the source.
func (s Source) String() string {
	switch s {
	case SourceStart:
		return "start"
	case SourceRule:
		return "rule"
	case SourceMemory:
		return "memory"
	case SourceDefault:
		return "default"
	default:
		return "unknown"
	}
}

// Reply describes the outcome of one turn.
type Reply struct {
	Text string
	// Keyword is the keyword whose rules produced Text, after redirects.
	// It is empty for memory responses.
	Keyword string
	Source  Source
	// Keystack is the keystack of the selected sentence.
	Keystack Keystack
	// Sentence is the selected sentence after substitutions.
	Sentence string
}

// Options configures a Chatbot.
type Options struct {
	// Logger receives turn diagnostics. Defaults to logging.NoOpLogger.
	Logger logging.Logger
	// MaxRedirects bounds the redirects followed for one keyword.
	MaxRedirects int
	// MatchTimeout bounds a single pattern match. Zero disables the timeout.
	MatchTimeout time.Duration
	// MemoryLimit bounds the memory stack. Zero means unbounded.
	MemoryLimit int
}

// DefaultOptions provides the defaults applied by New.
var DefaultOptions = Options{
	MaxRedirects: 20,
	MatchTimeout: 100 * time.Millisecond,
}

// Chatbot answers messages according to its private copy of a script.
type Chatbot struct {
	name   string
	store  *store
	memory *memory.Stack
	opts   Options
	logger logging.Logger
}

// New validates and compiles s for a chatbot called name. The chatbot owns
// a deep copy of s, so later changes to s and the rotation state of other
// chatbots do not affect it.
func New(name string, s script.Script, optFns ...func(o *Options)) (*Chatbot, error) {
	opts := DefaultOptions
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}
	if opts.MaxRedirects <= 0 {
		opts.MaxRedirects = DefaultOptions.MaxRedirects
	}

	st, err := compile(s, opts.MatchTimeout)
	if err != nil {
		return nil, fmt.Errorf("script %q: %w", s.Name, err)
	}

	return &Chatbot{
		name:   name,
		store:  st,
		memory: memory.NewStack(opts.MemoryLimit),
		opts:   opts,
		logger: opts.Logger,
	}, nil
}

// Name returns the chatbot's display name.
func (c *Chatbot) Name() string { return c.name }

// Memory returns a copy of the pending memory responses, oldest first.
func (c *Chatbot) Memory() []string { return c.memory.Items() }

// Start answers the session start signal.
func (c *Chatbot) Start() (string, error) { return c.Respond("") }

// Respond returns the response text for msg.
func (c *Chatbot) Respond(msg string) (string, error) {
	r, err := c.Reply(msg)
	return r.Text, err
}

// Reply runs one turn for msg and reports how the response was produced.
// An empty msg is the session start signal.
func (c *Chatbot) Reply(msg string) (Reply, error) {
	if msg == "" {
		c.logger.Debug("Session start", "agent", c.name)
		text, keyword, err := c.respondTo(script.KeywordStart, "")
		if err != nil {
			return Reply{}, err
		}
		if text == "" {
			return Reply{}, fmt.Errorf("%w: start keyword", ErrNoResponse)
		}
		return Reply{Text: text, Keyword: keyword, Source: SourceStart}, nil
	}

	c.logger.Info("Message received", "agent", c.name, "input", msg)

	var reply Reply
	for _, sentence := range Segment(msg) {
		reply.Keystack, reply.Sentence = c.Scan(Tokenize(sentence))
		if len(reply.Keystack) > 0 {
			break
		}
	}

	if len(reply.Keystack) > 0 {
		c.logger.Info("Keystack", "agent", c.name, "keystack", reply.Keystack.String(), "sentence", reply.Sentence)
		c.remember(reply.Keystack[0].Keyword, reply.Sentence)
		reply.Text, reply.Keyword = c.process(reply.Keystack, reply.Sentence)
		reply.Source = SourceRule
	}

	if reply.Text != "" {
		return reply, nil
	}

	if text, ok := c.memory.Pop(); ok {
		c.logger.Info("Using memory", "agent", c.name, "response", text)
		reply.Text, reply.Keyword, reply.Source = text, "", SourceMemory
		return reply, nil
	}

	text, keyword, err := c.respondTo(script.KeywordNone, "")
	if err != nil {
		return Reply{}, err
	}
	if text == "" {
		return Reply{}, fmt.Errorf("%w: %q", ErrNoResponse, msg)
	}
	reply.Text, reply.Keyword, reply.Source = text, keyword, SourceDefault
	return reply, nil
}

// Scan walks the tokens of one sentence, applies keyword substitutions and
// builds the keystack from keywords that carry rules. Scanning does not
// change the chatbot's state.
func (c *Chatbot) Scan(tokens []string) (Keystack, string) {
	var ks Keystack
	altered := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		word := script.Canonical(tok)
		e, ok := c.store.lookup(word)
		if !ok {
			altered = append(altered, tok)
			continue
		}
		if e.substitution != "" {
			c.logger.Debug("Substitution", "agent", c.name, "token", tok, "substitution", e.substitution)
			altered = append(altered, e.substitution)
		} else {
			altered = append(altered, tok)
		}
		if len(e.rules) > 0 {
			ks.Push(Key{Keyword: word, Rank: e.rank})
		}
	}
	return ks, strings.Join(altered, " ")
}

// process tries the keystack in order and returns the first response.
func (c *Chatbot) process(ks Keystack, sentence string) (string, string) {
	for _, key := range ks {
		text, keyword, err := c.respondTo(key.Keyword, sentence)
		if err != nil {
			c.logger.Warn("Dropping keyword", "agent", c.name, "keyword", key.Keyword, "error", err)
			continue
		}
		if text != "" {
			c.logger.Info("Found response", "agent", c.name, "keyword", keyword, "response", text)
			return text, keyword
		}
	}
	return "", ""
}

// respondTo runs the rules of keyword against sentence, following
// redirects. An empty text means the keyword produced nothing.
func (c *Chatbot) respondTo(keyword, sentence string) (string, string, error) {
	limiter := NewRedirectLimiter(c.opts.MaxRedirects)
	for {
		e, ok := c.store.lookup(keyword)
		if !ok || len(e.rules) == 0 {
			c.logger.Error("Keyword without rules", "agent", c.name, "keyword", keyword)
			return "", keyword, nil
		}

		r, ra, text := c.match(e.rules, sentence)
		if r == nil {
			c.logger.Debug("No rule matched", "agent", c.name, "keyword", keyword)
			return "", keyword, nil
		}

		switch ra.Kind {
		case script.KindNewKey:
			c.logger.Debug("NEWKEY", "agent", c.name, "keyword", keyword)
			return "", keyword, nil
		case script.KindRedirect:
			if err := limiter.Increment(); err != nil {
				c.logger.Warn("Redirect limit exceeded", "agent", c.name, "keyword", keyword, "redirects", limiter.Count())
				return "", keyword, err
			}
			if r.pre != "" {
				rewritten, err := r.decomposition.Replace(sentence, r.pre, 0, -1)
				if err != nil {
					c.logger.Warn("Pre rewrite failed", "agent", c.name, "keyword", keyword, "error", err)
				} else {
					sentence = rewritten
				}
			}
			c.logger.Debug("Redirect", "agent", c.name, "from", keyword, "to", ra.Target, "sentence", sentence, "remaining", limiter.Remaining())
			keyword = ra.Target
		default:
			return text, keyword, nil
		}
	}
}

// match selects the first rule whose decomposition matches sentence and
// rotates its reassembly list. For literal entries the substituted
// response is returned as well.
func (c *Chatbot) match(rules []*rule, sentence string) (*rule, reassembly, string) {
	for _, r := range rules {
		if r.decomposition != nil {
			ok, err := r.decomposition.MatchString(sentence)
			if err != nil {
				c.logger.Warn("Pattern match failed", "agent", c.name, "pattern", r.pattern, "error", err)
				continue
			}
			if !ok {
				continue
			}
		}

		ra := r.next()
		if ra.Kind != script.KindLiteral {
			return r, ra, ""
		}
		if r.decomposition == nil {
			return r, ra, ra.Template
		}
		text, err := r.decomposition.Replace(sentence, ra.replacement, 0, -1)
		if err != nil {
			c.logger.Warn("Reassembly failed", "agent", c.name, "pattern", r.pattern, "error", err)
			return r, ra, ""
		}
		return r, ra, text
	}
	return nil, reassembly{}, ""
}

// remember applies the memory rules of keyword and stores a literal
// response on the memory stack.
func (c *Chatbot) remember(keyword, sentence string) {
	e, ok := c.store.lookup(keyword)
	if !ok || len(e.memory) == 0 {
		return
	}
	r, ra, text := c.match(e.memory, sentence)
	switch {
	case r == nil:
		c.logger.Debug("No memory rule matched", "agent", c.name, "keyword", keyword)
	case ra.Kind != script.KindLiteral:
		c.logger.Debug("Skipping non literal memory entry", "agent", c.name, "keyword", keyword, "entry", ra.String())
	case text != "":
		c.memory.Push(text)
		c.logger.Debug("Memory stored", "agent", c.name, "keyword", keyword, "response", text)
	}
}

// IsNoResponse reports whether err signals that no response was available.
func IsNoResponse(err error) bool { return errors.Is(err, ErrNoResponse) }
