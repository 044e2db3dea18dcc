// Package events relays committed lifecycle events outside the router.
package events

import (
	"chat-router/domain"
	"time"

	"github.com/google/uuid"
)

type Meta struct {
	ID            string    `json:"id"`
	Source        string    `json:"source"`
	Type          string    `json:"type"`
	Version       int       `json:"version"`
	CorrelationID *string   `json:"correlation_id,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}

type Envelope struct {
	Meta Meta                  `json:"meta"`
	Data domain.LifecycleEvent `json:"data"`
}

func NewEnvelope(e domain.LifecycleEvent) Envelope {
	var correlation *string
	if e.ChatID != "" {
		id := e.ChatID
		correlation = &id
	}
	return Envelope{
		Meta: Meta{
			ID:            uuid.NewString(),
			Source:        "chat-router",
			Type:          string(e.Kind),
			Version:       1,
			CorrelationID: correlation,
			OccurredAt:    e.At,
		},
		Data: e,
	}
}
