package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/hupe1980/eliza/engine"
	"github.com/hupe1980/eliza/logging"
	"github.com/hupe1980/eliza/metrics"
)

// DefaultMaxSessions bounds the store when Options.MaxSessions is zero.
const DefaultMaxSessions = 1000

// Factory creates the chatbot of a new session.
type Factory func() (*engine.Chatbot, error)

// Session is one conversation with a chatbot. It is safe for concurrent use.
type Session struct {
	ID      string
	Created time.Time

	mu      sync.Mutex
	bot     *engine.Chatbot
	metrics *metrics.Metrics
	logger  logging.Logger
}

// Name returns the chatbot's name.
func (s *Session) Name() string { return s.bot.Name() }

// Reply runs one turn. Turns of the same session never overlap.
func (s *Session) Reply(input string) (engine.Reply, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()
	r, err := s.bot.Reply(input)
	dur := time.Since(start)

	source := r.Source.String()
	if err != nil {
		source = "error"
	}

	s.metrics.ObserveTurn(source, dur, err)
	if tl, ok := s.logger.(logging.TurnLogger); ok {
		tl.LogTurn(s.bot.Name(), r.Keyword, source, dur, err)
	} else if err != nil {
		s.logger.Error("Turn failed", "session_id", s.ID, "error", err)
	} else {
		s.logger.Debug("Turn", "session_id", s.ID, "keyword", r.Keyword, "source", source, "duration", dur)
	}
	return r, err
}

// Options configures a Store.
type Options struct {
	// MaxSessions bounds the number of live sessions (defaults to DefaultMaxSessions).
	MaxSessions int
	// Metrics is optional.
	Metrics *metrics.Metrics
	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger
}

// Store is a bounded, concurrency safe set of sessions.
type Store struct {
	mu       sync.Mutex
	cache    *lru.Cache[string, *Session]
	factory  Factory
	opts     Options
	removing string
}

// NewStore creates a store whose sessions are created by factory.
func NewStore(factory Factory, optFns ...func(o *Options)) (*Store, error) {
	if factory == nil {
		return nil, errors.New("session factory is required")
	}

	opts := Options{MaxSessions: DefaultMaxSessions, Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.MaxSessions <= 0 {
		opts.MaxSessions = DefaultMaxSessions
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}

	s := &Store{factory: factory, opts: opts}
	cache, err := lru.NewWithEvict(opts.MaxSessions, s.onEvict)
	if err != nil {
		return nil, fmt.Errorf("session cache: %w", err)
	}
	s.cache = cache
	return s, nil
}

// onEvict runs with s.mu held, from Add (capacity eviction) or Remove.
func (s *Store) onEvict(id string, _ *Session) {
	if id == s.removing {
		s.opts.Metrics.SessionClosed()
		return
	}
	s.opts.Metrics.SessionEvicted()
	s.opts.Logger.Info("Session evicted", "session_id", id)
}

// Create starts a new session with a fresh chatbot.
func (s *Store) Create() (*Session, error) {
	bot, err := s.factory()
	if err != nil {
		return nil, fmt.Errorf("create chatbot: %w", err)
	}

	id := uuid.NewString()
	logger := s.opts.Logger
	if sl, ok := logger.(*logging.StructuredLogger); ok {
		logger = sl.WithSession(id)
	}

	sess := &Session{
		ID:      id,
		Created: time.Now(),
		bot:     bot,
		metrics: s.opts.Metrics,
		logger:  logger,
	}

	s.mu.Lock()
	s.cache.Add(sess.ID, sess)
	s.mu.Unlock()

	s.opts.Metrics.SessionOpened()
	s.opts.Logger.Info("Session created", "session_id", sess.ID, "agent", bot.Name())
	return sess, nil
}

// Get returns the session with id and marks it as recently used.
func (s *Store) Get(id string) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.Get(id)
}

// Delete removes the session with id. It reports whether it existed.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removing = id
	defer func() { s.removing = "" }()
	ok := s.cache.Remove(id)
	if ok {
		s.opts.Logger.Info("Session deleted", "session_id", id)
	}
	return ok
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.Len()
}
