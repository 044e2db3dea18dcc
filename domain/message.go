package domain

import (
	"time"

	"github.com/google/uuid"
)

type MessageSource string

const (
	SourceCustomer MessageSource = "customer"
	SourceOperator MessageSource = "operator"
	SourceAgent    MessageSource = "agent"
	SourceSystem   MessageSource = "system"
)

// Event types carried in Meta["event_type"] of system messages.
const (
	EventAssigned      = "assigned"
	EventJoin          = "join"
	EventLeave         = "leave"
	EventTransfer      = "transfer"
	EventClose         = "close"
	EventCustomerLeave = "customer-leave"
)

// Message is relayed between customers, operators and agents; the router never stores it.
type Message struct {
	ID        string         `json:"id"`
	ChatID    string         `json:"session_id"`
	Text      string         `json:"text"`
	Type      string         `json:"type,omitempty"`
	Source    MessageSource  `json:"source"`
	Timestamp int64          `json:"timestamp"`
	User      *Identity      `json:"user,omitempty"`
	Meta      map[string]any `json:"meta,omitempty"`
}

func NewEventMessage(chatID, text, eventType string, meta map[string]any) Message {
	m := map[string]any{"event_type": eventType}
	for k, v := range meta {
		m[k] = v
	}
	return Message{
		ID:        uuid.NewString(),
		ChatID:    chatID,
		Text:      text,
		Type:      "event",
		Source:    SourceSystem,
		Timestamp: time.Now().Unix(),
		Meta:      m,
	}
}

func (m Message) EventType() string {
	if m.Meta == nil {
		return ""
	}
	s, _ := m.Meta["event_type"].(string)
	return s
}
