package ws

import (
	"chat-router/domain"
	"chat-router/mocks"
	"chat-router/state"
	"log/slog"
	"testing"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type customerFixture struct {
	gateway    *CustomerGateway
	hub        *Hub
	operators  *Hub
	dispatcher *mocks.MockDispatcher
	filter     *mocks.MockMessageFilter
	detector   *mocks.MockLocaleDetector
}

func newCustomerFixture(t *testing.T) customerFixture {
	ctrl := gomock.NewController(t)
	f := customerFixture{
		hub:        NewHub(),
		operators:  NewHub(),
		dispatcher: mocks.NewMockDispatcher(ctrl),
		filter:     mocks.NewMockMessageFilter(ctrl),
		detector:   mocks.NewMockLocaleDetector(ctrl),
	}
	f.gateway = NewCustomerGateway(logs.GetLoggerFromLevel(slog.LevelDebug), f.hub, f.operators, f.dispatcher, f.filter, f.detector)
	return f
}

var customerDesc = domain.ChatDescriptor{ID: "chat1", Customer: domain.Identity{ID: "cust1", DisplayName: "Bob"}}

func TestCustomerGateway_AttachAndDetach(t *testing.T) {
	req := require.New(t)
	f := newCustomerFixture(t)
	tab1, tab2 := newSocket("tab1"), newSocket("tab2")

	// Given a customer with two tabs
	f.dispatcher.EXPECT().Dispatch(state.CustomerJoin{ConnID: "tab1", Chat: customerDesc}).Return(nil)
	f.dispatcher.EXPECT().Dispatch(state.CustomerJoin{ConnID: "tab2", Chat: customerDesc}).Return(nil)
	f.gateway.Attach(tab1, customerDesc)
	f.gateway.Attach(tab2, customerDesc)
	req.Equal([]string{"init"}, tab1.events())

	// When the first tab closes nothing is reported
	f.gateway.Detach(tab1, customerDesc)

	// Then the disconnect comes with the last one
	f.dispatcher.EXPECT().Dispatch(state.CustomerDisconnect{ChatID: "chat1"}).Return(nil).Times(1)
	f.gateway.Detach(tab2, customerDesc)
}

func TestCustomerGateway_Message(t *testing.T) {
	req := require.New(t)
	f := newCustomerFixture(t)
	s := newSocket("tab1")

	// Given a filter masking the text and a detected language
	f.filter.EXPECT().Filter(gomock.Any()).DoAndReturn(func(msg domain.Message) domain.Message {
		msg.Text = "****"
		return msg
	})
	f.detector.EXPECT().Detect("scam").Return("en", true)
	f.dispatcher.EXPECT().Dispatch(gomock.Any()).DoAndReturn(func(action state.Action) error {
		msg, ok := action.(state.CustomerMessage)
		req.True(ok)
		req.Equal("chat1", msg.Chat.ID)
		req.Equal("m1", msg.Message.ID)
		req.Equal("****", msg.Message.Text)
		req.Equal("en", msg.DetectedLocale)
		return nil
	})

	// When the customer writes with an ack
	f.gateway.Handle(s, customerDesc, frame(t, "message", 7, map[string]any{"id": "m1", "text": "scam"}))

	// Then the ack carries the message id
	req.Equal([]any{nil, "m1"}, s.reply(7))
}

func TestCustomerGateway_DeclaredLocaleSkipsDetection(t *testing.T) {
	f := newCustomerFixture(t)
	desc := customerDesc
	desc.Locale = "de"

	f.filter.EXPECT().Filter(gomock.Any()).DoAndReturn(func(msg domain.Message) domain.Message { return msg })
	f.detector.EXPECT().Detect(gomock.Any()).Times(0)
	f.dispatcher.EXPECT().Dispatch(gomock.AssignableToTypeOf(state.CustomerMessage{})).Return(nil)

	f.gateway.Handle(newSocket("tab1"), desc, frame(t, "message", 0, map[string]any{"text": "hallo zusammen"}))
}

func TestCustomerGateway_MalformedMessage(t *testing.T) {
	req := require.New(t)
	f := newCustomerFixture(t)
	s := newSocket("tab1")

	f.dispatcher.EXPECT().Dispatch(gomock.Any()).Times(0)
	f.gateway.Handle(s, customerDesc, frame(t, "message", 3))

	reply := s.reply(3)
	req.Len(reply, 1)
	req.Contains(reply[0], "invalid frame")
}

func TestCustomerGateway_TypingReachesChatRoom(t *testing.T) {
	req := require.New(t)
	f := newCustomerFixture(t)
	operator, other := newSocket("op-conn"), newSocket("other")
	f.operators.Join(ChatRoom("chat1"), operator)
	f.operators.Join(ChatRoom("chat2"), other)

	f.gateway.Handle(newSocket("tab1"), customerDesc, frame(t, "typing", 0, "hel"))

	e, ok := operator.last("typing")
	req.True(ok)
	req.Equal([]any{"chat1", customerDesc.Customer.Public(), "hel"}, e.args)
	req.Empty(other.events())
}

func TestCustomerGateway_Pushes(t *testing.T) {
	req := require.New(t)
	f := newCustomerFixture(t)
	s := newSocket("tab1")
	f.hub.Join(CustomerRoom("chat1"), s)

	f.gateway.Accept("chat1", true)
	f.gateway.Status("chat1", domain.StatusAssigned)
	f.gateway.Message("chat1", domain.Message{ID: "m1"})
	f.gateway.Close("chat1", &domain.Identity{ID: "op1", DisplayName: "Alice", Locale: "fr"})

	req.Equal([]string{"accept", "status", "message", "close"}, s.events())
	closed, _ := s.last("close")
	by, ok := closed.args[0].(*domain.Identity)
	req.True(ok)
	req.Equal("Alice", by.DisplayName)
	req.Empty(by.Locale)
}
