// Package runtime runs the chat lifecycle pipeline.
// All state mutation is serialized through Coordinator.Run; network waits
// resume by dispatching a follow-up action, never by touching state directly.
package runtime

import (
	"chat-router/contract"
	"chat-router/domain"
	"chat-router/errors"
	"chat-router/state"
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

type Gateways struct {
	Customers contract.CustomerNotifier
	Operators contract.OperatorNotifier
	Agents    contract.AgentNotifier
}

// Coordinator owns the chat store and the operator directory.
// Inbound actions are processed strictly in order; actions dispatched by the
// reducer itself are processed first-in first-out before the next inbound one.
type Coordinator struct {
	log          *slog.Logger
	reducer      *state.Reducer
	state        *state.State
	gateways     Gateways
	timers       *Timers[state.Action]
	inbox        chan state.Action
	events       chan<- domain.LifecycleEvent
	observers    []contract.Observer
	offerTimeout time.Duration
	view         atomic.Pointer[state.View]
	lastActive   atomic.Int64
	stopped      chan struct{}
	stopOnce     sync.Once
}

func NewCoordinator(
	log *slog.Logger,
	reducer *state.Reducer,
	st *state.State,
	bufferSize int,
	offerTimeout time.Duration,
) *Coordinator {
	c := &Coordinator{
		log:          log,
		reducer:      reducer,
		state:        st,
		inbox:        make(chan state.Action, bufferSize),
		offerTimeout: offerTimeout,
		stopped:      make(chan struct{}),
	}
	c.timers = NewTimers(func(f Fired[state.Action]) {
		if err := c.Dispatch(state.TimerFired{Key: f.Key, Seq: f.Seq, Action: f.Payload}); err != nil {
			c.log.Debug("Timer fired after shutdown", "key", f.Key)
		}
	})
	c.lastActive.Store(time.Now().UnixNano())
	c.publishView()
	return c
}

// WithGateways plugs the connection gateways effects are executed against.
// It must be called before Run.
func (c *Coordinator) WithGateways(g Gateways) *Coordinator {
	c.gateways = g
	return c
}

// WithEvents makes the coordinator publish lifecycle events on ch.
// Events are dropped when ch is full; they never slow the pipeline down.
func (c *Coordinator) WithEvents(ch chan<- domain.LifecycleEvent) *Coordinator {
	c.events = ch
	return c
}

func (c *Coordinator) Observe(observers ...contract.Observer) *Coordinator {
	c.observers = append(c.observers, observers...)
	return c
}

func (c *Coordinator) Timers() *Timers[state.Action] { return c.timers }

// Dispatch enqueues an action. It blocks while the inbox is full.
func (c *Coordinator) Dispatch(action state.Action) error {
	select {
	case <-c.stopped:
		return errors.ErrCoordinatorDown
	default:
	}
	select {
	case c.inbox <- action:
		return nil
	case <-c.stopped:
		return errors.ErrCoordinatorDown
	}
}

// View returns the state committed by the last processed action.
func (c *Coordinator) View() state.View {
	return *c.view.Load()
}

// Stalled reports whether queued actions have waited longer than d without any progress.
func (c *Coordinator) Stalled(d time.Duration) bool {
	select {
	case <-c.stopped:
		return true
	default:
	}
	if len(c.inbox) == 0 {
		return false
	}
	return time.Since(time.Unix(0, c.lastActive.Load())) > d
}

func (c *Coordinator) Run(ctx context.Context) error {
	c.log.Info("Starting chat coordinator", "chats", c.state.Chats.Len(), "operators", c.state.Operators.Len())
	for {
		select {
		case <-ctx.Done():
			c.stopOnce.Do(func() { close(c.stopped) })
			c.timers.Stop()
			c.log.Debug("Context done, stopping chat coordinator")
			return nil
		case action := <-c.inbox:
			c.process(ctx, action)
		}
	}
}

func (c *Coordinator) process(ctx context.Context, first state.Action) {
	queue := []state.Action{first}
	for len(queue) > 0 {
		action := queue[0]
		queue = queue[1:]

		if fired, ok := action.(state.TimerFired); ok {
			if !c.timers.Claim(fired.Key, fired.Seq) {
				c.log.Debug("Canceled timer ignored", "key", fired.Key)
				continue
			}
			action = fired.Action
		}

		for _, effect := range c.reduce(action) {
			if d, ok := effect.(state.Dispatch); ok {
				queue = append(queue, d.Action)
				continue
			}
			c.execute(ctx, effect)
		}
	}
	c.lastActive.Store(time.Now().UnixNano())
	c.publishView()
	for _, o := range c.observers {
		o.Notify()
	}
}

// reduce never lets a malformed action take the pipeline down.
func (c *Coordinator) reduce(action state.Action) (effects []state.Effect) {
	defer func() {
		if r := recover(); r != nil {
			c.log.Error("Action processing panicked", "type", action.ActionType(), "chat_id", state.ChatIDOf(action), "panic", fmt.Sprint(r))
			effects = nil
		}
	}()
	c.log.Debug("Processing action", "type", action.ActionType(), "chat_id", state.ChatIDOf(action))
	return c.reducer.Reduce(c.state, action)
}

func (c *Coordinator) execute(ctx context.Context, effect state.Effect) {
	g := c.gateways
	switch e := effect.(type) {
	case state.Schedule:
		c.timers.Schedule(e.Key, e.Delay, e.Action)
	case state.Cancel:
		c.timers.Cancel(e.Key)
	case state.Offer:
		c.offer(ctx, e)
	case state.Relay:
		g.Customers.Message(e.Message.ChatID, e.Message)
		g.Operators.Message(e.Message.ChatID, e.Message)
		g.Agents.Message(e.Message)
	case state.CustomerAccept:
		g.Customers.Accept(e.ChatID, e.Accept)
	case state.CustomerStatus:
		g.Customers.Status(e.ChatID, e.Status)
	case state.CloseRoom:
		g.Operators.Close(e.Chat, e.By)
		g.Customers.Close(e.Chat.ID, e.By)
	case state.LeaveRoom:
		g.Operators.Leave(e.Chat, e.OperatorID)
	case state.NotifyOperator:
		g.Operators.Notify(e.OperatorID, e.Event, e.Chat)
	case state.Publish:
		if c.events == nil {
			return
		}
		select {
		case c.events <- e.Event:
		default:
			c.log.Warn("Lifecycle event lost", "kind", e.Event.Kind, "chat_id", e.Event.ChatID)
		}
	default:
		c.log.Warn("Unknown effect ignored", "type", fmt.Sprintf("%T", effect))
	}
}

// offer waits for the operator outside the pipeline and re-enters it with the outcome.
func (c *Coordinator) offer(ctx context.Context, o state.Offer) {
	go func() {
		err := WithTimeout(ctx, c.offerTimeout, func(ctx context.Context) error {
			return c.gateways.Operators.Open(ctx, o.Chat, o.Operator.ID, o.ConnID)
		})
		resolved := state.OfferResolved{
			ChatID:   o.Chat.ID,
			Purpose:  o.Purpose,
			Operator: o.Operator,
			From:     o.From,
			ConnID:   o.ConnID,
			Err:      err,
		}
		if err := c.Dispatch(resolved); err != nil {
			c.log.Debug("Offer outcome dropped", "chat_id", o.Chat.ID, "error", err)
		}
	}()
}

func (c *Coordinator) publishView() {
	v := c.state.View()
	c.view.Store(&v)
}
