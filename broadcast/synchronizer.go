package broadcast

import (
	"chat-router/contract"
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/wI2L/jsondiff"
)

// Synchronizer diffs the projection against the last one sent and pushes
// (oldVersion, newVersion, patch) when something visible changed.
//
// Recomputation is coalesced: the first change after idle starts a quiet
// period that every further change restarts, and a flush happens at the
// latest maxLatency after that first change.
type Synchronizer struct {
	log        *slog.Logger
	source     contract.StateSource
	publisher  contract.PatchPublisher
	quiet      time.Duration
	maxLatency time.Duration
	changed    chan struct{}

	mu      sync.RWMutex
	version string
	last    []byte
}

func NewSynchronizer(
	log *slog.Logger,
	source contract.StateSource,
	publisher contract.PatchPublisher,
	quiet, maxLatency time.Duration,
) (*Synchronizer, error) {
	initial, err := Project(source.View()).Encode()
	if err != nil {
		return nil, err
	}
	return &Synchronizer{
		log:        log,
		source:     source,
		publisher:  publisher,
		quiet:      quiet,
		maxLatency: maxLatency,
		changed:    make(chan struct{}, 1),
		version:    uuid.NewString(),
		last:       initial,
	}, nil
}

// Notify records that the state changed. It never blocks.
func (s *Synchronizer) Notify() {
	select {
	case s.changed <- struct{}{}:
	default:
	}
}

// State returns the last sent projection and its version.
func (s *Synchronizer) State() (string, json.RawMessage) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version, json.RawMessage(s.last)
}

func (s *Synchronizer) Run(ctx context.Context) error {
	quiet := time.NewTimer(s.quiet)
	quiet.Stop()
	deadline := time.NewTimer(s.maxLatency)
	deadline.Stop()
	pending := false

	flush := func() {
		quiet.Stop()
		deadline.Stop()
		pending = false
		if _, err := s.Flush(); err != nil {
			s.log.Error("Broadcast flush failed", "error", err)
		}
	}

	for {
		select {
		case <-ctx.Done():
			quiet.Stop()
			deadline.Stop()
			return nil
		case <-s.changed:
			if !pending {
				pending = true
				deadline.Reset(s.maxLatency)
			}
			quiet.Reset(s.quiet)
		case <-quiet.C:
			if pending {
				flush()
			}
		case <-deadline.C:
			if pending {
				flush()
			}
		}
	}
}

// Flush diffs the current projection immediately and reports whether a patch was sent.
func (s *Synchronizer) Flush() (bool, error) {
	next, err := Project(s.source.View()).Encode()
	if err != nil {
		return false, err
	}

	s.mu.Lock()
	patch, err := jsondiff.CompareJSON(s.last, next)
	if err != nil {
		s.mu.Unlock()
		return false, err
	}
	if len(patch) == 0 {
		s.mu.Unlock()
		return false, nil
	}
	oldVersion := s.version
	s.version = uuid.NewString()
	s.last = next
	newVersion := s.version
	s.mu.Unlock()

	data, err := json.Marshal(patch)
	if err != nil {
		return false, err
	}
	s.log.Debug("Broadcasting patch", "from", oldVersion, "to", newVersion, "operations", len(patch))
	s.publisher.Update(oldVersion, newVersion, data)
	return true, nil
}
