package events

import (
	"chat-router/domain"
	"context"
	"log/slog"
)

// LogSink writes lifecycle events to the structured log; misses are reported at info.
type LogSink struct {
	log *slog.Logger
}

func NewLogSink(log *slog.Logger) *LogSink {
	return &LogSink{log: log}
}

func (s *LogSink) Consume(ctx context.Context, e domain.LifecycleEvent) error {
	level := slog.LevelDebug
	if e.Kind == domain.KindChatMiss || e.Kind == domain.KindChatTransfer {
		level = slog.LevelInfo
	}
	s.log.Log(ctx, level, "Lifecycle event",
		"kind", e.Kind,
		"chat_id", e.ChatID,
		"status", e.Status,
		"last_status", e.LastStatus,
		"operator_id", e.OperatorID,
		"target_id", e.TargetID,
		"presence", e.Presence,
		"reason", e.Reason,
	)
	return nil
}
