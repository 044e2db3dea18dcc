package ws

import (
	"chat-router/contract"
	"chat-router/domain"
	"chat-router/state"
	"log/slog"
)

// CustomerGateway serves customer sockets. Every socket of a customer joins the
// room of its chat, so pushes reach all of the customer's tabs.
type CustomerGateway struct {
	log        *slog.Logger
	hub        *Hub
	operators  *Hub
	dispatcher contract.Dispatcher
	filter     contract.MessageFilter
	detector   contract.LocaleDetector
}

func NewCustomerGateway(
	log *slog.Logger,
	hub, operators *Hub,
	dispatcher contract.Dispatcher,
	filter contract.MessageFilter,
	detector contract.LocaleDetector,
) *CustomerGateway {
	return &CustomerGateway{
		log:        log,
		hub:        hub,
		operators:  operators,
		dispatcher: dispatcher,
		filter:     filter,
		detector:   detector,
	}
}

// Serve runs the session of an authenticated customer until the socket closes.
func (g *CustomerGateway) Serve(conn *Conn, desc domain.ChatDescriptor) {
	g.Attach(conn, desc)
	if err := conn.ReadLoop(func(f Frame) { g.Handle(conn, desc, f) }); err != nil {
		g.log.Debug("Customer socket closed unexpectedly", "chat_id", desc.ID, "error", err)
	}
	g.Detach(conn, desc)
}

func (g *CustomerGateway) Attach(s Socket, desc domain.ChatDescriptor) {
	g.hub.Join(CustomerRoom(desc.ID), s)
	_ = s.Emit("init", desc.Customer)
	g.dispatch(state.CustomerJoin{ConnID: s.ID(), Chat: desc})
}

// Detach reports a customer disconnect once the last socket of the chat is gone.
func (g *CustomerGateway) Detach(s Socket, desc domain.ChatDescriptor) {
	g.hub.Detach(s)
	if g.hub.Count(CustomerRoom(desc.ID)) == 0 {
		g.dispatch(state.CustomerDisconnect{ChatID: desc.ID})
	}
}

func (g *CustomerGateway) Handle(s Socket, desc domain.ChatDescriptor, f Frame) {
	switch f.Event {
	case "message":
		var p messagePayload
		if err := f.Arg(0, &p); err != nil {
			g.reject(s, f, err)
			return
		}
		msg := p.toMessage()
		if g.filter != nil {
			msg = g.filter.Filter(msg)
		}
		action := state.CustomerMessage{Chat: desc, Message: msg}
		if desc.Locale == "" && g.detector != nil {
			if locale, ok := g.detector.Detect(p.Text); ok {
				action.DetectedLocale = locale
			}
		}
		g.dispatch(action)
		if f.WantsAck() {
			_ = s.Reply(f.ID, nil, msg.ID)
		}
	case "typing":
		var text string
		if err := f.Arg(0, &text); err != nil {
			g.reject(s, f, err)
			return
		}
		g.operators.Emit(ChatRoom(desc.ID), "typing", desc.ID, desc.Customer.Public(), text)
	default:
		g.log.Debug("Unknown customer event", "event", f.Event, "chat_id", desc.ID)
	}
}

func (g *CustomerGateway) Accept(chatID string, accept bool) {
	g.hub.Emit(CustomerRoom(chatID), "accept", accept)
}

func (g *CustomerGateway) Message(chatID string, msg domain.Message) {
	g.hub.Emit(CustomerRoom(chatID), "message", msg)
}

func (g *CustomerGateway) Status(chatID string, status domain.ChatStatus) {
	g.hub.Emit(CustomerRoom(chatID), "status", status)
}

func (g *CustomerGateway) Close(chatID string, by *domain.Identity) {
	var public *domain.Identity
	if by != nil {
		p := by.Public()
		public = &p
	}
	g.hub.Emit(CustomerRoom(chatID), "close", public)
}

func (g *CustomerGateway) dispatch(action state.Action) {
	if err := g.dispatcher.Dispatch(action); err != nil {
		g.log.Warn("Customer action dropped", "type", action.ActionType(), "error", err)
	}
}

func (g *CustomerGateway) reject(s Socket, f Frame, err error) {
	g.log.Debug("Customer frame rejected", "event", f.Event, "error", err)
	if f.WantsAck() {
		_ = s.Reply(f.ID, ackError(err))
	}
}
