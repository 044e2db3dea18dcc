package workers

import (
	"chat-router/contract"
	"chat-router/domain"
	"context"
	"log/slog"
	"sync"
	"time"
)

// EventFanout relays lifecycle events to every registered sink.
//
// It provides best-effort fan-out with no guarantees regarding delivery,
// ordering across sinks, durability, or retries. A slow sink is abandoned
// after sinkTimeout so it cannot hold the others back.
type EventFanout struct {
	log         *slog.Logger
	events      <-chan domain.LifecycleEvent
	sinks       []contract.EventSink
	sinkTimeout time.Duration
}

func NewEventFanout(log *slog.Logger, events <-chan domain.LifecycleEvent, sinkTimeout time.Duration, sinks ...contract.EventSink) *EventFanout {
	return &EventFanout{log: log, events: events, sinks: sinks, sinkTimeout: sinkTimeout}
}

func (w *EventFanout) Add(sinks ...contract.EventSink) *EventFanout {
	w.sinks = append(w.sinks, sinks...)
	return w
}

func (w *EventFanout) Run(ctx context.Context) error {
	for {
		select {
		case evt := <-w.events:
			w.Fanout(ctx, evt)
		case <-ctx.Done():
			w.log.Debug("Context done, stopping lifecycle event fanout")
			return nil
		}
	}
}

// Fanout One goroutine per sink, all bounded by the sink timeout
func (w *EventFanout) Fanout(ctx context.Context, evt domain.LifecycleEvent) {
	var wg sync.WaitGroup
	for _, sink := range w.sinks {
		wg.Add(1)
		go func(s contract.EventSink) {
			defer wg.Done()
			sinkCtx, cancel := context.WithTimeout(ctx, w.sinkTimeout)
			defer cancel()
			if err := s.Consume(sinkCtx, evt); err != nil {
				w.log.Warn("Sink failed to consume lifecycle event", "kind", evt.Kind, "chat_id", evt.ChatID, "error", err)
			}
		}(sink)
	}
	wg.Wait()
}
