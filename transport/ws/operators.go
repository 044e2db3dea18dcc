package ws

import (
	"chat-router/broadcast"
	"chat-router/contract"
	"chat-router/domain"
	"chat-router/errors"
	"chat-router/state"
	"context"
	"encoding/json"
	"log/slog"
)

// BroadcastState is the local broadcast synchronizer as seen by dashboards.
type BroadcastState interface {
	State() (string, json.RawMessage)
}

// OperatorGateway serves operator and dashboard sockets.
// Authenticated sockets join their operator room and the authorized room;
// anonymous ones may connect but every broadcast request is refused.
type OperatorGateway struct {
	log        *slog.Logger
	hub        *Hub
	customers  *Hub
	dispatcher contract.Dispatcher
	source     contract.StateSource
	broadcast  BroadcastState
	gate       *broadcast.Gate
	filter     contract.MessageFilter
}

func NewOperatorGateway(
	log *slog.Logger,
	hub, customers *Hub,
	dispatcher contract.Dispatcher,
	source contract.StateSource,
	filter contract.MessageFilter,
) *OperatorGateway {
	return &OperatorGateway{
		log:        log,
		hub:        hub,
		customers:  customers,
		dispatcher: dispatcher,
		source:     source,
		gate:       broadcast.NewGate(),
		filter:     filter,
	}
}

// WithBroadcast plugs the synchronizer answering broadcast.state requests.
func (g *OperatorGateway) WithBroadcast(b BroadcastState) *OperatorGateway {
	g.broadcast = b
	return g
}

// Serve runs an operator session; identity is nil for anonymous sockets.
func (g *OperatorGateway) Serve(conn *Conn, identity *domain.Identity) {
	g.Attach(conn, identity)
	if err := conn.ReadLoop(func(f Frame) { g.Handle(conn, identity, f) }); err != nil {
		g.log.Debug("Operator socket closed unexpectedly", "conn_id", conn.ID(), "error", err)
	}
	g.Detach(conn, identity)
}

func (g *OperatorGateway) Attach(s Socket, identity *domain.Identity) {
	if identity == nil {
		return
	}
	g.hub.Join(OperatorRoom(identity.ID), s)
	g.hub.Join(AuthorizedRoom, s)
	_ = s.Emit("init", identity)
	g.dispatch(state.OperatorConnect{Operator: *identity, ConnID: s.ID()})
}

func (g *OperatorGateway) Detach(s Socket, identity *domain.Identity) {
	g.hub.Detach(s)
	if identity != nil {
		g.dispatch(state.OperatorDisconnect{OperatorID: identity.ID, ConnID: s.ID()})
	}
}

func (g *OperatorGateway) Handle(s Socket, identity *domain.Identity, f Frame) {
	switch f.Event {
	case "broadcast.state":
		g.state(s, identity, f)
		return
	case "broadcast.dispatch":
		g.remoteDispatch(s, identity, f)
		return
	}
	if identity == nil {
		g.reject(s, f, errors.ErrSocketNotAuthorized)
		return
	}

	var err error
	switch f.Event {
	case "status":
		var status string
		if err = f.Arg(0, &status); err == nil {
			g.dispatch(state.OperatorReady{OperatorID: identity.ID, Status: status})
		}
	case "capacity":
		var capacity int
		if err = f.Arg(0, &capacity); err == nil {
			g.dispatch(state.OperatorReady{OperatorID: identity.ID, Capacity: &capacity})
		}
	case "available":
		g.available(s, identity, f)
		return
	case "message":
		var chatID string
		var p messagePayload
		if err = f.Arg(0, &chatID); err == nil {
			err = f.Arg(1, &p)
		}
		if err == nil {
			msg := p.toMessage()
			if g.filter != nil {
				msg = g.filter.Filter(msg)
			}
			g.dispatch(state.OperatorMessage{ChatID: chatID, Operator: *identity, Message: msg})
		}
	case "typing":
		var chatID, text string
		if err = f.Arg(0, &chatID); err == nil {
			err = f.Arg(1, &text)
		}
		if err == nil {
			g.customers.Emit(CustomerRoom(chatID), "typing", text != "")
			g.hub.Emit(ChatRoom(chatID), "typing", chatID, identity.Public(), text)
		}
	case "chat.join", "chat.leave", "chat.close":
		var chatID string
		if err = f.Arg(0, &chatID); err == nil {
			g.dispatch(chatAction(f.Event, chatID, *identity))
		}
	case "operator.deregister":
		g.dispatch(state.RemoveOperator{OperatorID: identity.ID})
	case "chat.transfer":
		var chatID, targetID string
		if err = f.Arg(0, &chatID); err == nil {
			err = f.Arg(1, &targetID)
		}
		if err == nil {
			g.dispatch(state.TransferChat{ChatID: chatID, Operator: *identity, TargetID: targetID})
		}
	default:
		g.log.Debug("Unknown operator event", "event", f.Event, "operator_id", identity.ID)
		return
	}

	if err != nil {
		g.reject(s, f, err)
		return
	}
	if f.WantsAck() {
		_ = s.Reply(f.ID, nil)
	}
}

func chatAction(event, chatID string, operator domain.Identity) state.Action {
	switch event {
	case "chat.join":
		return state.JoinChat{ChatID: chatID, Operator: operator}
	case "chat.leave":
		return state.LeaveChat{ChatID: chatID, Operator: operator}
	default:
		return state.CloseChat{ChatID: chatID, Operator: operator}
	}
}

type availability struct {
	Capacity *int   `json:"capacity,omitempty"`
	Status   string `json:"status,omitempty"`
}

type load struct {
	Capacity int `json:"capacity"`
	Load     int `json:"load"`
}

// available optionally updates readiness and answers with the current capacity and load.
func (g *OperatorGateway) available(s Socket, identity *domain.Identity, f Frame) {
	if len(f.Args) > 0 {
		var a availability
		if err := f.Arg(0, &a); err != nil {
			g.reject(s, f, err)
			return
		}
		if a.Capacity != nil || a.Status != "" {
			g.dispatch(state.OperatorReady{OperatorID: identity.ID, Capacity: a.Capacity, Status: a.Status})
		}
	}
	if !f.WantsAck() {
		return
	}
	op, ok := g.source.View().Operator(identity.ID)
	if !ok {
		_ = s.Reply(f.ID, nil, load{})
		return
	}
	_ = s.Reply(f.ID, nil, load{Capacity: op.Capacity, Load: op.Load})
}

func (g *OperatorGateway) state(s Socket, identity *domain.Identity, f Frame) {
	if !f.WantsAck() {
		return
	}
	if identity == nil {
		_ = s.Reply(f.ID, ackError(errors.ErrSocketNotAuthorized))
		return
	}
	if g.broadcast == nil {
		_ = s.Reply(f.ID, nil, "", nil)
		return
	}
	version, doc := g.broadcast.State()
	_ = s.Reply(f.ID, nil, version, doc)
}

func (g *OperatorGateway) remoteDispatch(s Socket, identity *domain.Identity, f Frame) {
	var raw json.RawMessage
	if len(f.Args) > 0 {
		raw = f.Args[0]
	}
	action, err := g.gate.Admit(identity, raw)
	if err == nil {
		err = g.dispatcher.Dispatch(action)
	}
	if err != nil {
		g.log.Debug("Remote dispatch refused", "error", err)
	}
	if f.WantsAck() {
		_ = s.Reply(f.ID, ackError(err))
	}
}

// Open offers the chat to the operator sockets (or only connID) and returns
// once one accepted it; accepting sockets join the chat room.
func (g *OperatorGateway) Open(ctx context.Context, chat domain.Chat, operatorID, connID string) error {
	sockets := g.hub.Members(OperatorRoom(operatorID))
	if connID != "" {
		for _, s := range sockets {
			if s.ID() == connID {
				sockets = []Socket{s}
				break
			}
		}
		if len(sockets) != 1 || sockets[0].ID() != connID {
			return errors.ErrOperatorNotAvailable
		}
	}
	if len(sockets) == 0 {
		return errors.ErrOperatorNotAvailable
	}

	entry := broadcast.EntryOf(chat)
	results := make(chan error, len(sockets))
	for _, s := range sockets {
		go func(s Socket) {
			resp, err := s.EmitWithAck(ctx, "chat.open", entry)
			if err == nil && !accepted(resp) {
				err = errors.ErrOfferRejected
			}
			if err == nil && ctx.Err() != nil {
				err = ctx.Err()
			}
			if err == nil {
				g.hub.Join(ChatRoom(chat.ID), s)
			}
			results <- err
		}(s)
	}

	var last error
	for range sockets {
		select {
		case err := <-results:
			if err == nil {
				return nil
			}
			last = err
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return last
}

// accepted reads an offer acknowledgment. A bare ack accepts; an error
// argument or an explicit false rejects.
func accepted(resp []json.RawMessage) bool {
	if len(resp) == 0 {
		return true
	}
	var failure string
	if err := json.Unmarshal(resp[0], &failure); err == nil && failure != "" {
		return false
	}
	for _, raw := range resp {
		var ok bool
		if string(raw) != "null" && json.Unmarshal(raw, &ok) == nil && !ok {
			return false
		}
	}
	return true
}

func (g *OperatorGateway) Notify(operatorID, event string, chat domain.Chat) {
	g.hub.Emit(OperatorRoom(operatorID), event, broadcast.EntryOf(chat))
}

func (g *OperatorGateway) Close(chat domain.Chat, by *domain.Identity) {
	g.hub.Emit(ChatRoom(chat.ID), "chat.close", broadcast.EntryOf(chat), by)
	g.hub.LeaveAll(ChatRoom(chat.ID))
}

func (g *OperatorGateway) Leave(chat domain.Chat, operatorID string) {
	for _, s := range g.hub.Members(OperatorRoom(operatorID)) {
		g.hub.Leave(ChatRoom(chat.ID), s)
	}
	g.hub.Emit(OperatorRoom(operatorID), "chat.leave", broadcast.EntryOf(chat))
}

func (g *OperatorGateway) Message(chatID string, msg domain.Message) {
	g.hub.Emit(ChatRoom(chatID), "message", msg)
}

// Update forwards a broadcast patch to authorized dashboards.
func (g *OperatorGateway) Update(oldVersion, newVersion string, patch []byte) {
	g.hub.Emit(AuthorizedRoom, "broadcast.update", oldVersion, newVersion, json.RawMessage(patch))
}

func (g *OperatorGateway) dispatch(action state.Action) {
	if err := g.dispatcher.Dispatch(action); err != nil {
		g.log.Warn("Operator action dropped", "type", action.ActionType(), "error", err)
	}
}

func (g *OperatorGateway) reject(s Socket, f Frame, err error) {
	g.log.Debug("Operator frame rejected", "event", f.Event, "error", err)
	if f.WantsAck() {
		_ = s.Reply(f.ID, ackError(err))
	}
}
