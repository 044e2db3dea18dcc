package state

import (
	"chat-router/domain"
	"chat-router/errors"
	"time"
)

type System struct {
	AcceptsCustomers bool `cbor:"1,keyasint" json:"acceptsCustomers"`
}

// State groups the stores owned by the coordinator.
// Records are replaced on every change and never mutated in place, so a View
// may share them with readers.
type State struct {
	Chats     *ChatStore
	Operators *Directory
	System    System
}

func New() *State {
	return &State{Chats: NewChatStore(), Operators: NewDirectory()}
}

// View is a read-only copy handed to components outside the pipeline.
type View struct {
	Chats     []domain.Chat
	Operators []domain.Operator
	System    System
}

func (s *State) View() View {
	return View{
		Chats:     s.Chats.List(),
		Operators: s.Operators.List(),
		System:    s.System,
	}
}

func (v View) Chat(id string) (domain.Chat, bool) {
	for _, c := range v.Chats {
		if c.ID == id {
			return c, true
		}
	}
	return domain.Chat{}, false
}

func (v View) Operator(id string) (domain.Operator, bool) {
	for _, op := range v.Operators {
		if op.ID == id {
			return op, true
		}
	}
	return domain.Operator{}, false
}

// Snapshot is the persisted form of the state; live connections are never saved.
type Snapshot struct {
	Chats     []domain.Chat     `cbor:"1,keyasint"`
	Operators []domain.Operator `cbor:"2,keyasint"`
	System    System            `cbor:"3,keyasint"`
	TakenAt   time.Time         `cbor:"4,keyasint"`
}

func (v View) Snapshot(now time.Time) Snapshot {
	return Snapshot{Chats: v.Chats, Operators: v.Operators, System: v.System, TakenAt: now}
}

// Restore rebuilds a state from a snapshot. Nobody is connected after a restart:
// chats held by an operator become abandoned until that operator reconnects,
// and an assignment that was in flight counts as missed.
func Restore(snap Snapshot) *State {
	s := New()
	s.System = snap.System
	for _, op := range snap.Operators {
		s.Operators.Restore(op)
	}
	for _, chat := range snap.Chats {
		switch chat.Status {
		case domain.StatusAssigned, domain.StatusCustomerDisconnect:
			chat = chat.WithStatus(domain.StatusAbandoned)
		case domain.StatusAssigning:
			chat = chat.WithStatus(domain.StatusMissed)
			chat.MissedReason = errors.ErrOfferTimeout.Error()
		}
		s.Chats.Put(chat)
	}
	syncLoads(s)
	return s
}
