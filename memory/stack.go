package memory

// Stack is a FIFO queue of deferred responses. Despite the historical name
// it pops from the front. A Stack is not safe for concurrent use; its owner
// serializes access.
type Stack struct {
	items []string
	limit int
}

// NewStack creates an empty stack. A positive limit bounds the number of
// retained responses by discarding the oldest ones; zero means unbounded.
func NewStack(limit int) *Stack {
	return &Stack{limit: limit}
}

// Push appends a response to the tail. Empty responses are ignored.
func (s *Stack) Push(resp string) {
	if resp == "" {
		return
	}
	s.items = append(s.items, resp)
	if s.limit > 0 && len(s.items) > s.limit {
		s.items = append([]string(nil), s.items[len(s.items)-s.limit:]...)
	}
}

// Pop removes and returns the head. ok is false when the stack is empty.
func (s *Stack) Pop() (resp string, ok bool) {
	if len(s.items) == 0 {
		return "", false
	}
	resp = s.items[0]
	s.items[0] = ""
	s.items = s.items[1:]
	return resp, true
}

// Len returns the number of stored responses.
func (s *Stack) Len() int { return len(s.items) }

// Items returns a copy of the stored responses, head first.
func (s *Stack) Items() []string {
	return append([]string(nil), s.items...)
}
