package ws

import (
	"chat-router/broadcast"
	"chat-router/contract"
	"chat-router/domain"
	"chat-router/state"
	"log/slog"
)

// AgentIdentity is how a bot agent appears to customers and operators.
var AgentIdentity = domain.Identity{ID: "agent", DisplayName: "Agent", Username: "agent"}

// AgentGateway serves trusted bot agents. Agents see every chat message and may
// answer in any chat.
type AgentGateway struct {
	log        *slog.Logger
	hub        *Hub
	dispatcher contract.Dispatcher
	source     contract.StateSource
}

func NewAgentGateway(log *slog.Logger, hub *Hub, dispatcher contract.Dispatcher, source contract.StateSource) *AgentGateway {
	return &AgentGateway{log: log, hub: hub, dispatcher: dispatcher, source: source}
}

func (g *AgentGateway) Serve(conn *Conn) {
	g.Attach(conn)
	if err := conn.ReadLoop(func(f Frame) { g.Handle(conn, f) }); err != nil {
		g.log.Debug("Agent socket closed unexpectedly", "conn_id", conn.ID(), "error", err)
	}
	g.hub.Detach(conn)
}

func (g *AgentGateway) Attach(s Socket) {
	g.hub.Join(AgentsRoom, s)
	_ = s.Emit("init", AgentIdentity)
}

type systemInfo struct {
	Chats     map[string]broadcast.ChatEntry     `json:"chats"`
	Operators map[string]broadcast.OperatorEntry `json:"operators"`
	System    state.System                       `json:"system"`
}

func (g *AgentGateway) Handle(s Socket, f Frame) {
	switch f.Event {
	case "message":
		var p messagePayload
		if err := f.Arg(0, &p); err != nil || p.SessionID == "" {
			g.log.Debug("Agent message rejected", "error", err)
			if f.WantsAck() {
				_ = s.Reply(f.ID, "session_id is required")
			}
			return
		}
		msg := p.toMessage()
		if err := g.dispatcher.Dispatch(state.AgentMessage{ChatID: p.SessionID, Agent: AgentIdentity, Message: msg}); err != nil {
			g.log.Warn("Agent action dropped", "error", err)
		}
		if f.WantsAck() {
			_ = s.Reply(f.ID, nil, msg.ID)
		}
	case "system.info":
		if !f.WantsAck() {
			return
		}
		p := broadcast.Project(g.source.View())
		_ = s.Reply(f.ID, nil, systemInfo{
			Chats:     p.Chatlist,
			Operators: p.Operators.Identities,
			System:    p.Operators.System,
		})
	default:
		g.log.Debug("Unknown agent event", "event", f.Event)
	}
}

func (g *AgentGateway) Message(msg domain.Message) {
	g.hub.Emit(AgentsRoom, "message", msg)
}
