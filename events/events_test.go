package events

import (
	"bytes"
	"chat-router/domain"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewEnvelope(t *testing.T) {
	req := require.New(t)
	at := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	evt := domain.LifecycleEvent{Kind: domain.KindChatMiss, ChatID: "chat1", Reason: "timeout", At: at}

	envelope := NewEnvelope(evt)

	req.NotEmpty(envelope.Meta.ID)
	req.Equal("chat-router", envelope.Meta.Source)
	req.Equal("chat.miss", envelope.Meta.Type)
	req.Equal(1, envelope.Meta.Version)
	req.NotNil(envelope.Meta.CorrelationID)
	req.Equal("chat1", *envelope.Meta.CorrelationID)
	req.Equal(at, envelope.Meta.OccurredAt)
	req.Equal("router.chat.miss", evt.RoutingKey())

	body, err := json.Marshal(envelope)
	req.NoError(err)
	req.Contains(string(body), `"reason":"timeout"`)
}

func TestNewEnvelope_OperatorEventHasNoCorrelation(t *testing.T) {
	req := require.New(t)
	envelope := NewEnvelope(domain.LifecycleEvent{Kind: domain.KindOperatorStatus, OperatorID: "op1", Presence: domain.PresenceAway})
	req.Nil(envelope.Meta.CorrelationID)
	req.NotEqual(envelope.Meta.ID, NewEnvelope(domain.LifecycleEvent{}).Meta.ID)
}

func TestLogSink_Consume(t *testing.T) {
	req := require.New(t)
	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
	sink := NewLogSink(log)

	// Status changes stay at debug level
	req.NoError(sink.Consume(context.Background(), domain.LifecycleEvent{Kind: domain.KindChatStatus, ChatID: "chat1"}))
	req.Empty(buf.String())

	// Misses are reported at info
	req.NoError(sink.Consume(context.Background(), domain.LifecycleEvent{Kind: domain.KindChatMiss, ChatID: "chat2", Reason: "timeout"}))
	req.Contains(buf.String(), `"chat_id":"chat2"`)
	req.Contains(buf.String(), `"reason":"timeout"`)
}
