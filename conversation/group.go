package conversation

import (
	"context"
	"errors"
	"fmt"

	"github.com/hupe1980/eliza/logging"
)

// Turn is one utterance of a group chat.
type Turn struct {
	// Round starts at 1 and increases once every participant has spoken.
	Round   int
	Speaker string
	Text    string
	// Ended is set on the turn of a participant that ended the conversation.
	Ended bool
}

// GroupChatOptions configures a GroupChat.
type GroupChatOptions struct {
	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger
	// Opening is the message handed to the first participant.
	Opening string
}

// GroupChat passes each reply on to the next participant round-robin. The
// last participant's reply goes back to the first one. A GroupChat is not
// safe for concurrent use.
type GroupChat struct {
	participants []Participant
	logger       logging.Logger
	msg          string
	idx          int
	ended        bool
}

// NewGroupChat creates a group chat over at least one participant.
func NewGroupChat(participants []Participant, optFns ...func(o *GroupChatOptions)) (*GroupChat, error) {
	if len(participants) == 0 {
		return nil, errors.New("group chat needs at least one participant")
	}

	opts := GroupChatOptions{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}

	return &GroupChat{
		participants: append([]Participant(nil), participants...),
		logger:       opts.Logger,
		msg:          opts.Opening,
	}, nil
}

// Participants returns the participants in speaking order.
func (g *GroupChat) Participants() []Participant {
	return append([]Participant(nil), g.participants...)
}

// Next lets the next participant answer the previous reply. Once a
// participant returns ErrEnd, Next returns its turn with Ended set together
// with ErrEnd, and every later call returns ErrEnd.
func (g *GroupChat) Next(ctx context.Context) (Turn, error) {
	if g.ended {
		return Turn{}, ErrEnd
	}

	p := g.participants[g.idx%len(g.participants)]
	turn := Turn{Round: g.idx/len(g.participants) + 1, Speaker: p.Name()}

	reply, err := p.Respond(ctx, g.msg)
	if errors.Is(err, ErrEnd) {
		g.ended = true
		g.logger.Info("Participant ended the conversation", "speaker", p.Name(), "round", turn.Round)
		turn.Ended = true
		return turn, ErrEnd
	}
	if err != nil {
		return turn, fmt.Errorf("participant %s: %w", p.Name(), err)
	}

	g.logger.Debug("Turn", "speaker", p.Name(), "round", turn.Round, "input", g.msg, "reply", reply)
	g.msg = reply
	g.idx++
	turn.Text = reply
	return turn, nil
}
