package runtime

import (
	"chat-router/domain"
	"chat-router/errors"
	"chat-router/mocks"
	"chat-router/state"
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	coordinator *Coordinator
	customers   *mocks.MockCustomerNotifier
	operators   *mocks.MockOperatorNotifier
	agents      *mocks.MockAgentNotifier
	events      chan domain.LifecycleEvent

	mu   sync.Mutex
	seen []domain.LifecycleEvent
}

func newFixture(t *testing.T, cfg state.Config, offerTimeout time.Duration) *fixture {
	ctrl := gomock.NewController(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)

	f := &fixture{
		customers: mocks.NewMockCustomerNotifier(ctrl),
		operators: mocks.NewMockOperatorNotifier(ctrl),
		agents:    mocks.NewMockAgentNotifier(ctrl),
		events:    make(chan domain.LifecycleEvent, 256),
	}
	// Pushes that do not matter for the scenarios
	f.customers.EXPECT().Accept(gomock.Any(), gomock.Any()).AnyTimes()
	f.customers.EXPECT().Status(gomock.Any(), gomock.Any()).AnyTimes()
	f.customers.EXPECT().Message(gomock.Any(), gomock.Any()).AnyTimes()
	f.operators.EXPECT().Message(gomock.Any(), gomock.Any()).AnyTimes()
	f.operators.EXPECT().Leave(gomock.Any(), gomock.Any()).AnyTimes()
	f.agents.EXPECT().Message(gomock.Any()).AnyTimes()

	st := state.New()
	st.System.AcceptsCustomers = true
	f.coordinator = NewCoordinator(log, state.NewReducer(log, cfg), st, 16, offerTimeout).
		WithGateways(Gateways{Customers: f.customers, Operators: f.operators, Agents: f.agents}).
		WithEvents(f.events)
	return f
}

func (f *fixture) start(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = f.coordinator.Run(ctx)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
}

func (f *fixture) status(chatID string) domain.ChatStatus {
	chat, ok := f.coordinator.View().Chat(chatID)
	if !ok {
		return ""
	}
	return chat.Status
}

// event reports whether a lifecycle event matching fn was published so far.
func (f *fixture) event(fn func(domain.LifecycleEvent) bool) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for {
		select {
		case e := <-f.events:
			f.seen = append(f.seen, e)
			continue
		default:
		}
		break
	}
	for _, e := range f.seen {
		if fn(e) {
			return true
		}
	}
	return false
}

func connectOperator(req *require.Assertions, c *Coordinator, id string, capacity int) {
	req.NoError(c.Dispatch(state.OperatorConnect{
		Operator: domain.Identity{ID: id},
		ConnID:   "conn-" + id,
		Capacity: &capacity,
		Status:   domain.StatusAvailable,
	}))
}

func customerMessage(req *require.Assertions, c *Coordinator, chatID string) {
	req.NoError(c.Dispatch(state.CustomerMessage{
		Chat:    domain.ChatDescriptor{ID: chatID, Customer: domain.Identity{ID: "customer-" + chatID}},
		Message: domain.Message{ID: "m1", Text: "hello"},
	}))
}

var defaultConfig = state.Config{CustomerLeftDelay: time.Minute, AutocloseDelay: time.Minute, DefaultCapacity: 1}

func TestCoordinator_AssignsChatOnceOperatorAccepts(t *testing.T) {
	req := require.New(t)
	f := newFixture(t, defaultConfig, time.Second)

	// Given an operator accepting every offer
	f.operators.EXPECT().Open(gomock.Any(), gomock.Any(), "op1", "").Return(nil).Times(1)
	f.start(t)
	connectOperator(req, f.coordinator, "op1", 1)

	// When a customer writes
	customerMessage(req, f.coordinator, "chat1")

	// Then the chat ends up assigned and the assignment is published
	req.Eventually(func() bool { return f.status("chat1") == domain.StatusAssigned }, time.Second, 5*time.Millisecond)
	req.Eventually(func() bool {
		return f.event(func(e domain.LifecycleEvent) bool { return e.Kind == domain.KindChatFound && e.ChatID == "chat1" })
	}, time.Second, 5*time.Millisecond)

	op, ok := f.coordinator.View().Operator("op1")
	req.True(ok)
	req.Equal(1, op.Load)
}

func TestCoordinator_UnansweredOfferIsMissedWithTimeout(t *testing.T) {
	req := require.New(t)
	f := newFixture(t, defaultConfig, 20*time.Millisecond)

	// Given an operator that never answers
	f.operators.EXPECT().Open(gomock.Any(), gomock.Any(), "op1", "").
		DoAndReturn(func(ctx context.Context, _ domain.Chat, _, _ string) error {
			<-ctx.Done()
			return ctx.Err()
		}).AnyTimes()
	f.start(t)
	connectOperator(req, f.coordinator, "op1", 1)

	// When a customer writes
	customerMessage(req, f.coordinator, "chat1")

	// Then the miss is published with the timeout reason
	req.Eventually(func() bool {
		return f.event(func(e domain.LifecycleEvent) bool {
			return e.Kind == domain.KindChatMiss && e.Reason == errors.ErrOfferTimeout.Error()
		})
	}, time.Second, 5*time.Millisecond)
}

func TestCoordinator_AutocloseAfterCustomerLeft(t *testing.T) {
	req := require.New(t)
	f := newFixture(t, state.Config{CustomerLeftDelay: 10 * time.Millisecond, AutocloseDelay: 40 * time.Millisecond, DefaultCapacity: 1}, time.Second)

	// Given an assigned chat
	f.operators.EXPECT().Open(gomock.Any(), gomock.Any(), "op1", "").Return(nil).Times(1)
	f.operators.EXPECT().Close(gomock.Any(), gomock.Nil()).Times(1)
	f.customers.EXPECT().Close("chat1", gomock.Nil()).Times(1)
	f.start(t)
	connectOperator(req, f.coordinator, "op1", 1)
	customerMessage(req, f.coordinator, "chat1")
	req.Eventually(func() bool { return f.status("chat1") == domain.StatusAssigned }, time.Second, 5*time.Millisecond)

	// When the customer goes away for good
	req.NoError(f.coordinator.Dispatch(state.CustomerDisconnect{ChatID: "chat1"}))

	// Then the chat is closed by the autoclose timer
	req.Eventually(func() bool { return f.status("chat1") == domain.StatusClosed }, time.Second, 5*time.Millisecond)
	req.Equal(0, f.coordinator.Timers().Len())
}

func TestCoordinator_ReturningCustomerCancelsTimers(t *testing.T) {
	req := require.New(t)
	f := newFixture(t, state.Config{CustomerLeftDelay: 20 * time.Millisecond, AutocloseDelay: 30 * time.Millisecond, DefaultCapacity: 1}, time.Second)

	f.operators.EXPECT().Open(gomock.Any(), gomock.Any(), "op1", "").Return(nil).Times(1)
	f.start(t)
	connectOperator(req, f.coordinator, "op1", 1)
	customerMessage(req, f.coordinator, "chat1")
	req.Eventually(func() bool { return f.status("chat1") == domain.StatusAssigned }, time.Second, 5*time.Millisecond)

	// When the customer reconnects right after a disconnect
	desc := domain.ChatDescriptor{ID: "chat1", Customer: domain.Identity{ID: "customer-chat1"}}
	req.NoError(f.coordinator.Dispatch(state.CustomerDisconnect{ChatID: "chat1"}))
	req.NoError(f.coordinator.Dispatch(state.CustomerJoin{ConnID: "c2", Chat: desc}))

	// Then no timer survives and the chat stays assigned past the autoclose delay
	req.Eventually(func() bool { return f.status("chat1") == domain.StatusAssigned }, time.Second, 5*time.Millisecond)
	time.Sleep(80 * time.Millisecond)
	req.Equal(domain.StatusAssigned, f.status("chat1"))
	req.Equal(0, f.coordinator.Timers().Len())
}

func TestCoordinator_NotifiesObservers(t *testing.T) {
	req := require.New(t)
	f := newFixture(t, defaultConfig, time.Second)

	notified := make(chan struct{}, 8)
	observer := mocks.NewMockObserver(gomock.NewController(t))
	observer.EXPECT().Notify().Do(func() {
		select {
		case notified <- struct{}{}:
		default:
		}
	}).MinTimes(1)
	f.coordinator.Observe(observer)
	f.start(t)

	req.NoError(f.coordinator.Dispatch(state.SetAcceptsCustomers{Accepts: false}))

	select {
	case <-notified:
	case <-time.After(time.Second):
		req.Fail("observer never notified")
	}
	req.Eventually(func() bool { return !f.coordinator.View().System.AcceptsCustomers }, time.Second, 5*time.Millisecond)
}

func TestCoordinator_DispatchAfterStop(t *testing.T) {
	req := require.New(t)
	f := newFixture(t, defaultConfig, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- f.coordinator.Run(ctx) }()
	cancel()
	req.NoError(<-done)

	req.ErrorIs(f.coordinator.Dispatch(state.AssignNext{}), errors.ErrCoordinatorDown)
}

func TestCoordinator_Stalled(t *testing.T) {
	req := require.New(t)
	f := newFixture(t, defaultConfig, time.Second)

	// Given a coordinator that is not running yet, an empty inbox is never stalled
	req.False(f.coordinator.Stalled(time.Millisecond))

	// When an action waits with nobody processing it
	req.NoError(f.coordinator.Dispatch(state.AssignNext{}))
	time.Sleep(5 * time.Millisecond)

	// Then the pipeline reports a stall
	req.True(f.coordinator.Stalled(time.Millisecond))
	req.False(f.coordinator.Stalled(time.Hour))

	// And it recovers once running
	f.start(t)
	req.Eventually(func() bool { return !f.coordinator.Stalled(time.Millisecond) }, time.Second, 5*time.Millisecond)
}
