package ws

import (
	"chat-router/domain"
	"time"

	"github.com/google/uuid"
)

// messagePayload is what clients send for a chat message.
type messagePayload struct {
	ID        string         `json:"id"`
	SessionID string         `json:"session_id,omitempty"`
	Text      string         `json:"text"`
	Type      string         `json:"type,omitempty"`
	Meta      map[string]any `json:"meta,omitempty"`
}

func (p messagePayload) toMessage() domain.Message {
	id := p.ID
	if id == "" {
		id = uuid.NewString()
	}
	return domain.Message{
		ID:        id,
		ChatID:    p.SessionID,
		Text:      p.Text,
		Type:      p.Type,
		Timestamp: time.Now().UnixMilli(),
		Meta:      p.Meta,
	}
}

// ackError is the first acknowledgment argument: null on success, the error message otherwise.
func ackError(err error) any {
	if err == nil {
		return nil
	}
	return err.Error()
}
