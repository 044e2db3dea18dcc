package ws

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

type emitted struct {
	event string
	args  []any
}

// fakeSocket records what the router writes to a client.
type fakeSocket struct {
	id string
	// ack answers EmitWithAck; nil blocks until the context is done.
	ack func(event string, args []any) ([]json.RawMessage, error)

	mu      sync.Mutex
	emits   []emitted
	replies map[uint64][]any
	broken  bool
}

func newSocket(id string) *fakeSocket {
	return &fakeSocket{id: id, replies: make(map[uint64][]any)}
}

func (s *fakeSocket) ID() string { return s.id }

func (s *fakeSocket) Emit(event string, args ...any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.broken {
		return fmt.Errorf("broken socket")
	}
	s.emits = append(s.emits, emitted{event: event, args: args})
	return nil
}

func (s *fakeSocket) EmitWithAck(ctx context.Context, event string, args ...any) ([]json.RawMessage, error) {
	if err := s.Emit(event, args...); err != nil {
		return nil, err
	}
	if s.ack == nil {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return s.ack(event, args)
}

func (s *fakeSocket) Reply(id uint64, args ...any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replies[id] = args
	return nil
}

func (s *fakeSocket) events() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var events []string
	for _, e := range s.emits {
		events = append(events, e.event)
	}
	return events
}

func (s *fakeSocket) last(event string) (emitted, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.emits) - 1; i >= 0; i-- {
		if s.emits[i].event == event {
			return s.emits[i], true
		}
	}
	return emitted{}, false
}

func (s *fakeSocket) reply(id uint64) []any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.replies[id]
}

// frame builds an inbound frame the way a client encodes it.
func frame(t *testing.T, event string, id uint64, args ...any) Frame {
	f := Frame{Event: event, ID: id}
	for _, arg := range args {
		raw, err := json.Marshal(arg)
		require.NoError(t, err)
		f.Args = append(f.Args, raw)
	}
	return f
}

func ackWith(args ...string) func(string, []any) ([]json.RawMessage, error) {
	return func(string, []any) ([]json.RawMessage, error) {
		var resp []json.RawMessage
		for _, a := range args {
			resp = append(resp, json.RawMessage(a))
		}
		return resp, nil
	}
}
