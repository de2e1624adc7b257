package model

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/hupe1980/eliza/internal/util"
	"github.com/hupe1980/eliza/logging"
)

// DefaultPatientInstructions casts a model as the patient of a DOCTOR session.
const DefaultPatientInstructions = "You are {{.name}}, a patient talking to a psychotherapist. " +
	"Answer in one or two short sentences and talk about your feelings and your family."

// ParticipantOptions configures a Participant.
type ParticipantOptions struct {
	// Instructions is the system prompt (defaults to DefaultPatientInstructions).
	// It is a text/template rendered with Vars; {{.name}} is the
	// participant's name unless Vars sets it.
	Instructions string
	// Vars are the template variables of Instructions.
	Vars map[string]any
	// Opening is said when the participant opens the conversation. Without
	// it the model is asked to start.
	Opening string
	// MaxHistory bounds the messages sent to the model. Zero keeps all.
	MaxHistory int
	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger
}

// Participant lets a Model take part in a conversation. It keeps the
// conversation history and is safe for concurrent use.
type Participant struct {
	name  string
	model Model
	opts  ParticipantOptions

	mu      sync.Mutex
	history []Message
}

// NewParticipant creates a model backed conversation participant.
func NewParticipant(name string, m Model, optFns ...func(o *ParticipantOptions)) *Participant {
	opts := ParticipantOptions{
		Instructions: DefaultPatientInstructions,
		Logger:       logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}
	return &Participant{name: name, model: m, opts: opts}
}

// Name returns the participant's display name.
func (p *Participant) Name() string { return p.name }

// History returns a copy of the conversation so far.
func (p *Participant) History() []Message {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Message(nil), p.history...)
}

// Respond asks the model to answer msg. An empty msg opens the conversation.
func (p *Participant) Respond(ctx context.Context, msg string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if msg == "" && p.opts.Opening != "" && len(p.history) == 0 {
		p.history = append(p.history, Message{Role: RoleAssistant, Text: p.opts.Opening})
		return p.opts.Opening, nil
	}
	if msg == "" {
		msg = "Please start the conversation."
	}

	p.history = append(p.history, Message{Role: RoleUser, Text: msg})
	info := p.model.Info()

	instructions, err := p.instructions()
	if err != nil {
		p.history = p.history[:len(p.history)-1]
		return "", fmt.Errorf("instructions of %s: %w", p.name, err)
	}
	req := Request{Instructions: instructions, Messages: p.window()}

	p.opts.Logger.Debug("Generating", "participant", p.name, "provider", info.Provider, "model", info.Name, "messages", len(req.Messages))

	resp, err := Collect(p.model.Generate(ctx, req))
	if err != nil {
		p.history = p.history[:len(p.history)-1]
		return "", fmt.Errorf("%s (%s): %w", info.Provider, info.Name, err)
	}

	text := strings.TrimSpace(resp.Text)
	p.history = append(p.history, Message{Role: RoleAssistant, Text: text})
	return text, nil
}

func (p *Participant) instructions() (string, error) {
	vars := make(map[string]any, len(p.opts.Vars)+1)
	vars["name"] = p.name
	for k, v := range p.opts.Vars {
		vars[k] = v
	}
	return util.RenderTemplate(p.opts.Instructions, vars)
}

// window returns the trailing history sent to the model. It always starts
// with a user message, as required by some providers.
func (p *Participant) window() []Message {
	msgs := p.history
	if p.opts.MaxHistory > 0 && len(msgs) > p.opts.MaxHistory {
		msgs = msgs[len(msgs)-p.opts.MaxHistory:]
	}
	for len(msgs) > 1 && msgs[0].Role != RoleUser {
		msgs = msgs[1:]
	}
	return append([]Message(nil), msgs...)
}
