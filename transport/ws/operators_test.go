package ws

import (
	"chat-router/domain"
	"chat-router/errors"
	"chat-router/mocks"
	"chat-router/state"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type operatorFixture struct {
	gateway    *OperatorGateway
	hub        *Hub
	customers  *Hub
	dispatcher *mocks.MockDispatcher
	source     *mocks.MockStateSource
}

type fixedState struct{}

func (fixedState) State() (string, json.RawMessage) {
	return "v1", json.RawMessage(`{"chatlist":{}}`)
}

func newOperatorFixture(t *testing.T) operatorFixture {
	ctrl := gomock.NewController(t)
	f := operatorFixture{
		hub:        NewHub(),
		customers:  NewHub(),
		dispatcher: mocks.NewMockDispatcher(ctrl),
		source:     mocks.NewMockStateSource(ctrl),
	}
	f.gateway = NewOperatorGateway(logs.GetLoggerFromLevel(slog.LevelDebug), f.hub, f.customers, f.dispatcher, f.source, nil).
		WithBroadcast(fixedState{})
	return f
}

var alice = &domain.Identity{ID: "op1", DisplayName: "Alice"}

func TestOperatorGateway_Attach(t *testing.T) {
	req := require.New(t)
	f := newOperatorFixture(t)
	s := newSocket("conn1")

	f.dispatcher.EXPECT().Dispatch(state.OperatorConnect{Operator: *alice, ConnID: "conn1"}).Return(nil)
	f.gateway.Attach(s, alice)

	req.True(f.hub.In(OperatorRoom("op1"), s))
	req.True(f.hub.In(AuthorizedRoom, s))
	req.Equal([]string{"init"}, s.events())

	f.dispatcher.EXPECT().Dispatch(state.OperatorDisconnect{OperatorID: "op1", ConnID: "conn1"}).Return(nil)
	f.gateway.Detach(s, alice)
	req.Equal(0, f.hub.Count(AuthorizedRoom))
}

func TestOperatorGateway_AnonymousSocket(t *testing.T) {
	req := require.New(t)
	f := newOperatorFixture(t)
	s := newSocket("anon")

	// Given an unauthenticated dashboard
	f.dispatcher.EXPECT().Dispatch(gomock.Any()).Times(0)
	f.gateway.Attach(s, nil)
	req.Equal(0, f.hub.Count(AuthorizedRoom))

	// Then every broadcast request and operator event is refused
	f.gateway.Handle(s, nil, frame(t, "broadcast.state", 1))
	f.gateway.Handle(s, nil, frame(t, "broadcast.dispatch", 2, map[string]any{"type": "SET_OPERATOR_STATUS", "status": "away"}))
	f.gateway.Handle(s, nil, frame(t, "chat.close", 3, "chat1"))

	for id := uint64(1); id <= 3; id++ {
		req.Equal([]any{errors.ErrSocketNotAuthorized.Error()}, s.reply(id))
	}
}

func TestOperatorGateway_BroadcastState(t *testing.T) {
	req := require.New(t)
	f := newOperatorFixture(t)
	s := newSocket("conn1")

	f.gateway.Handle(s, alice, frame(t, "broadcast.state", 4))

	req.Equal([]any{nil, "v1", json.RawMessage(`{"chatlist":{}}`)}, s.reply(4))
}

func TestOperatorGateway_RemoteDispatch(t *testing.T) {
	req := require.New(t)
	f := newOperatorFixture(t)
	s := newSocket("conn1")

	// Given an allowed command
	f.dispatcher.EXPECT().Dispatch(state.SetOperatorCapacity{OperatorID: "op1", Capacity: 3}).Return(nil)
	f.gateway.Handle(s, alice, frame(t, "broadcast.dispatch", 1, map[string]any{"type": "SET_OPERATOR_CAPACITY", "capacity": "3"}))
	req.Equal([]any{nil}, s.reply(1))

	// Given a command outside the allow list
	f.gateway.Handle(s, alice, frame(t, "broadcast.dispatch", 2, map[string]any{"type": "REMOVE_OPERATOR"}))
	req.Equal([]any{errors.ErrRemoteDispatchNotAllowed.Error()}, s.reply(2))
}

func TestOperatorGateway_ChatEvents(t *testing.T) {
	req := require.New(t)
	f := newOperatorFixture(t)
	s := newSocket("conn1")

	gomock.InOrder(
		f.dispatcher.EXPECT().Dispatch(state.JoinChat{ChatID: "chat1", Operator: *alice}).Return(nil),
		f.dispatcher.EXPECT().Dispatch(state.LeaveChat{ChatID: "chat1", Operator: *alice}).Return(nil),
		f.dispatcher.EXPECT().Dispatch(state.TransferChat{ChatID: "chat1", Operator: *alice, TargetID: "op2"}).Return(nil),
		f.dispatcher.EXPECT().Dispatch(state.CloseChat{ChatID: "chat1", Operator: *alice}).Return(nil),
		f.dispatcher.EXPECT().Dispatch(state.OperatorReady{OperatorID: "op1", Status: "away"}).Return(nil),
	)

	f.gateway.Handle(s, alice, frame(t, "chat.join", 1, "chat1"))
	f.gateway.Handle(s, alice, frame(t, "chat.leave", 2, "chat1"))
	f.gateway.Handle(s, alice, frame(t, "chat.transfer", 3, "chat1", "op2"))
	f.gateway.Handle(s, alice, frame(t, "chat.close", 4, "chat1"))
	f.gateway.Handle(s, alice, frame(t, "status", 5, "away"))

	for id := uint64(1); id <= 5; id++ {
		req.Equal([]any{nil}, s.reply(id))
	}

	// A transfer without target is rejected
	f.gateway.Handle(s, alice, frame(t, "chat.transfer", 6, "chat1"))
	req.Len(s.reply(6), 1)
	req.NotNil(s.reply(6)[0])
}

func TestOperatorGateway_Message(t *testing.T) {
	f := newOperatorFixture(t)
	f.dispatcher.EXPECT().Dispatch(gomock.Any()).DoAndReturn(func(action state.Action) error {
		msg, ok := action.(state.OperatorMessage)
		require.True(t, ok)
		require.Equal(t, "chat1", msg.ChatID)
		require.Equal(t, "hello", msg.Message.Text)
		require.NotEmpty(t, msg.Message.ID)
		return nil
	})

	f.gateway.Handle(newSocket("conn1"), alice, frame(t, "message", 0, "chat1", map[string]any{"text": "hello"}))
}

func TestOperatorGateway_Available(t *testing.T) {
	req := require.New(t)
	f := newOperatorFixture(t)
	s := newSocket("conn1")
	capacity := 2

	f.dispatcher.EXPECT().Dispatch(state.OperatorReady{OperatorID: "op1", Capacity: &capacity, Status: "available"}).Return(nil)
	f.source.EXPECT().View().Return(state.View{Operators: []domain.Operator{{Identity: *alice, Capacity: 2, Load: 1}}})

	f.gateway.Handle(s, alice, frame(t, "available", 9, map[string]any{"capacity": 2, "status": "available"}))

	req.Equal([]any{nil, load{Capacity: 2, Load: 1}}, s.reply(9))
}

func TestOperatorGateway_Typing(t *testing.T) {
	req := require.New(t)
	f := newOperatorFixture(t)
	customer, colleague := newSocket("tab1"), newSocket("conn2")
	f.customers.Join(CustomerRoom("chat1"), customer)
	f.hub.Join(ChatRoom("chat1"), colleague)

	f.gateway.Handle(newSocket("conn1"), alice, frame(t, "typing", 0, "chat1", "hel"))

	e, ok := customer.last("typing")
	req.True(ok)
	req.Equal([]any{true}, e.args)
	e, ok = colleague.last("typing")
	req.True(ok)
	req.Equal([]any{"chat1", alice.Public(), "hel"}, e.args)
}

func TestOperatorGateway_Open(t *testing.T) {
	req := require.New(t)
	f := newOperatorFixture(t)
	chat := domain.Chat{ID: "chat1", Status: domain.StatusAssigning}

	// Given one socket declining and one accepting
	declining, accepting := newSocket("conn1"), newSocket("conn2")
	declining.ack = ackWith("null", "false")
	accepting.ack = ackWith("null", "true")
	f.hub.Join(OperatorRoom("op1"), declining)
	f.hub.Join(OperatorRoom("op1"), accepting)

	// When the chat is offered
	err := f.gateway.Open(context.Background(), chat, "op1", "")

	// Then the accepting socket joined the chat room
	req.NoError(err)
	req.Eventually(func() bool { return f.hub.In(ChatRoom("chat1"), accepting) }, time.Second, 5*time.Millisecond)
	req.False(f.hub.In(ChatRoom("chat1"), declining))
	req.Eventually(func() bool {
		_, offered := declining.last("chat.open")
		return offered
	}, time.Second, 5*time.Millisecond)
}

func TestOperatorGateway_OpenRejected(t *testing.T) {
	req := require.New(t)
	f := newOperatorFixture(t)
	s := newSocket("conn1")
	s.ack = ackWith(`"busy"`)
	f.hub.Join(OperatorRoom("op1"), s)

	err := f.gateway.Open(context.Background(), domain.Chat{ID: "chat1"}, "op1", "")

	req.ErrorIs(err, errors.ErrOfferRejected)
	req.False(f.hub.In(ChatRoom("chat1"), s))
}

func TestOperatorGateway_OpenWithoutSockets(t *testing.T) {
	req := require.New(t)
	f := newOperatorFixture(t)
	req.ErrorIs(f.gateway.Open(context.Background(), domain.Chat{ID: "chat1"}, "op1", ""), errors.ErrOperatorNotAvailable)

	// A known operator but another connection
	f.hub.Join(OperatorRoom("op1"), newSocket("conn1"))
	req.ErrorIs(f.gateway.Open(context.Background(), domain.Chat{ID: "chat1"}, "op1", "conn9"), errors.ErrOperatorNotAvailable)
}

func TestOperatorGateway_OpenSingleConnection(t *testing.T) {
	req := require.New(t)
	f := newOperatorFixture(t)
	first, second := newSocket("conn1"), newSocket("conn2")
	first.ack = ackWith("null")
	second.ack = ackWith("null")
	f.hub.Join(OperatorRoom("op1"), first)
	f.hub.Join(OperatorRoom("op1"), second)

	req.NoError(f.gateway.Open(context.Background(), domain.Chat{ID: "chat1"}, "op1", "conn2"))

	req.True(f.hub.In(ChatRoom("chat1"), second))
	req.Empty(first.events())
}

func TestOperatorGateway_OpenTimesOut(t *testing.T) {
	req := require.New(t)
	f := newOperatorFixture(t)
	f.hub.Join(OperatorRoom("op1"), newSocket("silent"))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	req.ErrorIs(f.gateway.Open(ctx, domain.Chat{ID: "chat1"}, "op1", ""), context.DeadlineExceeded)
}

func TestOperatorGateway_LateAcceptDoesNotJoin(t *testing.T) {
	req := require.New(t)
	f := newOperatorFixture(t)

	// Given a socket accepting only once the offer deadline passed
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	late := newSocket("late")
	late.ack = func(string, []any) ([]json.RawMessage, error) {
		<-ctx.Done()
		return []json.RawMessage{json.RawMessage("null"), json.RawMessage("true")}, nil
	}
	f.hub.Join(OperatorRoom("op1"), late)

	// When the offer times out
	err := f.gateway.Open(ctx, domain.Chat{ID: "chat1"}, "op1", "")

	// Then the socket stays out of the chat room
	req.ErrorIs(err, context.DeadlineExceeded)
	req.Never(func() bool { return f.hub.In(ChatRoom("chat1"), late) }, 50*time.Millisecond, 5*time.Millisecond)
}

func TestOperatorGateway_Deregister(t *testing.T) {
	req := require.New(t)
	f := newOperatorFixture(t)
	s := newSocket("conn1")

	// When an operator deregisters from its socket
	f.dispatcher.EXPECT().Dispatch(state.RemoveOperator{OperatorID: "op1"}).Return(nil)
	f.gateway.Handle(s, alice, frame(t, "operator.deregister", 1))

	// Then the removal is acknowledged
	req.Equal([]any{nil}, s.reply(1))

	// And an anonymous socket cannot deregister anybody
	f.gateway.Handle(s, nil, frame(t, "operator.deregister", 2))
	req.Equal([]any{errors.ErrSocketNotAuthorized.Error()}, s.reply(2))
}

func TestOperatorGateway_CloseAndUpdate(t *testing.T) {
	req := require.New(t)
	f := newOperatorFixture(t)
	s := newSocket("conn1")
	f.hub.Join(AuthorizedRoom, s)
	f.hub.Join(ChatRoom("chat1"), s)

	f.gateway.Close(domain.Chat{ID: "chat1", Status: domain.StatusClosed}, alice)
	req.False(f.hub.In(ChatRoom("chat1"), s))

	f.gateway.Update("v1", "v2", []byte(`[]`))
	e, ok := s.last("broadcast.update")
	req.True(ok)
	req.Equal([]any{"v1", "v2", json.RawMessage(`[]`)}, e.args)
	req.Equal([]string{"chat.close", "broadcast.update"}, s.events())
}
