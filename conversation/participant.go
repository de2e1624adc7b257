package conversation

import (
	"context"
	"errors"
	"sync"

	"github.com/hupe1980/eliza/engine"
)

// ErrEnd is returned by a participant that has nothing more to say.
var ErrEnd = errors.New("conversation ended")

// Participant takes part in a conversation.
type Participant interface {
	Name() string
	// Respond answers msg. An empty msg opens the conversation.
	Respond(ctx context.Context, msg string) (string, error)
}

// chatbotParticipant serializes access to a chatbot, which is not safe for
// concurrent use.
type chatbotParticipant struct {
	mu  sync.Mutex
	bot *engine.Chatbot
}

// FromChatbot adapts an ELIZA chatbot to the Participant interface.
func FromChatbot(bot *engine.Chatbot) Participant {
	return &chatbotParticipant{bot: bot}
}

func (p *chatbotParticipant) Name() string { return p.bot.Name() }

func (p *chatbotParticipant) Respond(ctx context.Context, msg string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.bot.Respond(msg)
}

type scripted struct {
	mu    sync.Mutex
	name  string
	lines []string
	next  int
}

// Scripted returns a participant that says lines in order, ignoring the
// messages it receives, and then ends the conversation.
func Scripted(name string, lines ...string) Participant {
	return &scripted{name: name, lines: append([]string(nil), lines...)}
}

func (s *scripted) Name() string { return s.name }

func (s *scripted) Respond(ctx context.Context, _ string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.next >= len(s.lines) {
		return "", ErrEnd
	}
	line := s.lines[s.next]
	s.next++
	return line, nil
}
