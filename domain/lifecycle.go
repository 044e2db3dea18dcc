package domain

import "time"

type LifecycleKind string

const (
	KindChatStatus     LifecycleKind = "chat.status"
	KindChatMiss       LifecycleKind = "chat.miss"
	KindChatFound      LifecycleKind = "chat.found"
	KindChatTransfer   LifecycleKind = "chat.transfer"
	KindOperatorStatus LifecycleKind = "operator.status"
)

// LifecycleEvent is published after a state transition has been committed.
type LifecycleEvent struct {
	Kind       LifecycleKind `json:"kind"`
	ChatID     string        `json:"chat_id,omitempty"`
	Status     ChatStatus    `json:"status,omitempty"`
	LastStatus ChatStatus    `json:"last_status,omitempty"`
	OperatorID string        `json:"operator_id,omitempty"`
	TargetID   string        `json:"target_id,omitempty"`
	Presence   Presence      `json:"presence,omitempty"`
	Reason     string        `json:"reason,omitempty"`
	At         time.Time     `json:"at"`
}

// RoutingKey is the topic used when relaying the event to a broker.
func (e LifecycleEvent) RoutingKey() string {
	return "router." + string(e.Kind)
}
